package bible

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("verse not found")
	ErrNothingToUpdate = errors.New("no valid fields to update")
)

// DBTX is the subset of *sql.DB the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repository interface {
	ListBooks(ctx context.Context) ([]string, error)
	ListChapters(ctx context.Context, book string) ([]int, error)
	ListVersesInChapter(ctx context.Context, book string, chapter int) ([]Verse, error)
	SearchVerses(ctx context.Context, substring string) ([]Verse, error)
	ListAllVerses(ctx context.Context) ([]Verse, error)

	// GetVerseByID returns zero or one verse. An empty slice means the id
	// does not exist.
	GetVerseByID(ctx context.Context, id int64) ([]Verse, error)

	CreateVerse(ctx context.Context, verse NewVerse) (WriteResult, error)
	UpdateVerse(ctx context.Context, id int64, patch VersePatch) (WriteResult, error)
	DeleteVerseByID(ctx context.Context, id int64) (WriteResult, error)
}

type repository struct {
	db     DBTX
	logger *zap.Logger
}

func NewRepository(db DBTX, logger *zap.Logger) Repository {
	return &repository{db: db, logger: logger.Named("bible.repository")}
}

func (r *repository) ListBooks(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, readBooksQuery)
	if err != nil {
		r.logger.Error("failed to read books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	books := []string{}
	for rows.Next() {
		var book string
		if err := rows.Scan(&book); err != nil {
			r.logger.Error("failed to scan book", zap.Error(err))
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to read books", zap.Error(err))
		return nil, err
	}
	return books, nil
}

func (r *repository) ListChapters(ctx context.Context, book string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, readChaptersByBookQuery, book)
	if err != nil {
		r.logger.Error("failed to read chapters", zap.String("book", book), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	chapters := []int{}
	for rows.Next() {
		var chapter int
		if err := rows.Scan(&chapter); err != nil {
			r.logger.Error("failed to scan chapter", zap.String("book", book), zap.Error(err))
			return nil, err
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("failed to read chapters", zap.String("book", book), zap.Error(err))
		return nil, err
	}
	return chapters, nil
}

func (r *repository) ListVersesInChapter(ctx context.Context, book string, chapter int) ([]Verse, error) {
	verses, err := r.queryVerses(ctx, readVersesByChapterQuery, book, chapter)
	if err != nil {
		r.logger.Error("failed to read verses by chapter",
			zap.String("book", book), zap.Int("chapter", chapter), zap.Error(err))
		return nil, err
	}
	return verses, nil
}

func (r *repository) SearchVerses(ctx context.Context, substring string) ([]Verse, error) {
	verses, err := r.queryVerses(ctx, searchVersesByTextQuery, "%"+substring+"%")
	if err != nil {
		r.logger.Error("failed to search verses", zap.String("search", substring), zap.Error(err))
		return nil, err
	}
	return verses, nil
}

func (r *repository) ListAllVerses(ctx context.Context) ([]Verse, error) {
	verses, err := r.queryVerses(ctx, readVersesQuery)
	if err != nil {
		r.logger.Error("failed to read verses", zap.Error(err))
		return nil, err
	}
	return verses, nil
}

func (r *repository) GetVerseByID(ctx context.Context, id int64) ([]Verse, error) {
	verses, err := r.queryVerses(ctx, readVerseByIDQuery, id)
	if err != nil {
		r.logger.Error("failed to read verse", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return verses, nil
}

func (r *repository) CreateVerse(ctx context.Context, verse NewVerse) (WriteResult, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, createVerseQuery,
		verse.Book,
		verse.Chapter,
		verse.VerseNumber,
		verse.Text,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create verse", zap.Error(err))
		return WriteResult{}, err
	}

	return WriteResult{ID: id, RowsAffected: 1}, nil
}

func (r *repository) UpdateVerse(ctx context.Context, id int64, patch VersePatch) (WriteResult, error) {
	query, args, err := buildVerseUpdate(id, patch)
	if err != nil {
		r.logger.Warn("rejected verse update", zap.Int64("id", id), zap.Error(err))
		return WriteResult{}, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update verse", zap.Int64("id", id), zap.Error(err))
		return WriteResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("failed to read affected rows", zap.Int64("id", id), zap.Error(err))
		return WriteResult{}, err
	}
	return WriteResult{ID: id, RowsAffected: affected}, nil
}

func (r *repository) DeleteVerseByID(ctx context.Context, id int64) (WriteResult, error) {
	res, err := r.db.ExecContext(ctx, deleteVerseQuery, id)
	if err != nil {
		r.logger.Error("failed to delete verse", zap.Int64("id", id), zap.Error(err))
		return WriteResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("failed to read affected rows", zap.Int64("id", id), zap.Error(err))
		return WriteResult{}, err
	}
	return WriteResult{ID: id, RowsAffected: affected}, nil
}

func (r *repository) queryVerses(ctx context.Context, query string, args ...any) ([]Verse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	verses := []Verse{}
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.ID, &v.Book, &v.Chapter, &v.VerseNumber, &v.Text); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return verses, nil
}

// patchField maps one optional VersePatch field to its column.
type patchField struct {
	column string
	value  func(p VersePatch) (any, bool)
}

// patchFields is ordered; SET clauses and bound values follow this order.
var patchFields = []patchField{
	{column: "book", value: func(p VersePatch) (any, bool) {
		if p.Book == nil {
			return nil, false
		}
		return *p.Book, true
	}},
	{column: "chapter", value: func(p VersePatch) (any, bool) {
		if p.Chapter == nil {
			return nil, false
		}
		return *p.Chapter, true
	}},
	{column: "verse", value: func(p VersePatch) (any, bool) {
		if p.VerseNumber == nil {
			return nil, false
		}
		return *p.VerseNumber, true
	}},
	{column: "text", value: func(p VersePatch) (any, bool) {
		if p.Text == nil {
			return nil, false
		}
		return *p.Text, true
	}},
}

// buildVerseUpdate renders an UPDATE touching only the supplied columns.
// Only column names from patchFields reach the SQL text.
func buildVerseUpdate(id int64, patch VersePatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	sets := make([]string, 0, len(patchFields))
	args := make([]any, 0, len(patchFields)+1)

	for _, f := range patchFields {
		v, ok := f.value(patch)
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", verseTable, strings.Join(sets, ", "), len(args))
	return query, args, nil
}
