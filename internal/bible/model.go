package bible

type Verse struct {
	ID          int64  `json:"id"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	VerseNumber int    `json:"verseNumber"`
	Text        string `json:"text"`
}

type NewVerse struct {
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	VerseNumber int    `json:"verseNumber"`
	Text        string `json:"text"`
}

// VersePatch carries the fields of a partial update. A nil field was not
// supplied; JSON null is treated the same way.
type VersePatch struct {
	Book        *string `json:"book"`
	Chapter     *int    `json:"chapter"`
	VerseNumber *int    `json:"verseNumber"`
	Text        *string `json:"text"`
}

func (p VersePatch) IsEmpty() bool {
	return p.Book == nil && p.Chapter == nil && p.VerseNumber == nil && p.Text == nil
}

// Apply returns v with every supplied field of p overlaid.
func (p VersePatch) Apply(v Verse) Verse {
	if p.Book != nil {
		v.Book = *p.Book
	}
	if p.Chapter != nil {
		v.Chapter = *p.Chapter
	}
	if p.VerseNumber != nil {
		v.VerseNumber = *p.VerseNumber
	}
	if p.Text != nil {
		v.Text = *p.Text
	}
	return v
}

type WriteResult struct {
	ID           int64
	RowsAffected int64
}
