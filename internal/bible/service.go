package bible

import (
	"context"

	"go.uber.org/zap"
)

type BibleService struct {
	repo   Repository
	logger *zap.Logger
}

func NewBibleService(repo Repository, logger *zap.Logger) BibleService {
	return BibleService{
		repo:   repo,
		logger: logger.Named("bible.service"),
	}
}

func (s *BibleService) ListBooks(ctx context.Context) ([]string, error) {
	return s.repo.ListBooks(ctx)
}

func (s *BibleService) ListChapters(ctx context.Context, book string) ([]int, error) {
	return s.repo.ListChapters(ctx, book)
}

func (s *BibleService) ListVersesInChapter(ctx context.Context, book string, chapter int) ([]Verse, error) {
	return s.repo.ListVersesInChapter(ctx, book, chapter)
}

func (s *BibleService) SearchVerses(ctx context.Context, text string) ([]Verse, error) {
	return s.repo.SearchVerses(ctx, text)
}

func (s *BibleService) GetVerse(ctx context.Context, id int64) (*Verse, error) {
	verses, err := s.repo.GetVerseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, ErrNotFound
	}
	return &verses[0], nil
}

// ListVerses returns every verse, or only the verse with the given id when
// id is non-nil. A filter matching nothing is ErrNotFound.
func (s *BibleService) ListVerses(ctx context.Context, id *int64) ([]Verse, error) {
	if id == nil {
		return s.repo.ListAllVerses(ctx)
	}

	verses, err := s.repo.GetVerseByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, ErrNotFound
	}
	return verses, nil
}

func (s *BibleService) CreateVerse(ctx context.Context, in NewVerse) (*Verse, error) {
	res, err := s.repo.CreateVerse(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("verse created", zap.Int64("id", res.ID), zap.String("book", in.Book),
		zap.Int("chapter", in.Chapter), zap.Int("verse", in.VerseNumber))

	return &Verse{
		ID:          res.ID,
		Book:        in.Book,
		Chapter:     in.Chapter,
		VerseNumber: in.VerseNumber,
		Text:        in.Text,
	}, nil
}

// UpdateVerse reads the current verse, writes only the supplied fields and
// returns the current verse with the patch applied. The read and the write
// are separate round trips.
func (s *BibleService) UpdateVerse(ctx context.Context, id int64, patch VersePatch) (*Verse, error) {
	existing, err := s.repo.GetVerseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, ErrNotFound
	}

	res, err := s.repo.UpdateVerse(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		// deleted between the read and the write
		return nil, ErrNotFound
	}

	updated := patch.Apply(existing[0])
	return &updated, nil
}

func (s *BibleService) DeleteVerse(ctx context.Context, id int64) error {
	res, err := s.repo.DeleteVerseByID(ctx, id)
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("verse deleted", zap.Int64("id", id))
	return nil
}
