package bible

// verseTable is resolved through the connection's search_path on Postgres.
const verseTable = "t_kjv"

// Statements issued by the repository. Values are always bound through
// $n placeholders, which both pgx and modernc sqlite accept.
const (
	readBooksQuery = `
		SELECT book
		FROM ` + verseTable + `
		GROUP BY book
		ORDER BY MIN(id)`

	readChaptersByBookQuery = `
		SELECT DISTINCT chapter
		FROM ` + verseTable + `
		WHERE book = $1
		ORDER BY chapter`

	readVersesByChapterQuery = `
		SELECT id, book, chapter, verse, text
		FROM ` + verseTable + `
		WHERE book = $1 AND chapter = $2
		ORDER BY verse, id`

	searchVersesByTextQuery = `
		SELECT id, book, chapter, verse, text
		FROM ` + verseTable + `
		WHERE text LIKE $1
		ORDER BY id`

	readVersesQuery = `
		SELECT id, book, chapter, verse, text
		FROM ` + verseTable + `
		ORDER BY id`

	readVerseByIDQuery = `
		SELECT id, book, chapter, verse, text
		FROM ` + verseTable + `
		WHERE id = $1`

	createVerseQuery = `
		INSERT INTO ` + verseTable + ` (book, chapter, verse, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	// updateVerseQuery is the full-column form. UpdateVerse builds the
	// same statement restricted to the columns present in a patch.
	updateVerseQuery = `
		UPDATE ` + verseTable + `
		SET book = $1, chapter = $2, verse = $3, text = $4
		WHERE id = $5`

	deleteVerseQuery = `
		DELETE FROM ` + verseTable + `
		WHERE id = $1`
)
