package bible

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-api/internal/database"
	"github.com/taiwoajasa245/bible-api/pkg/config"
)

var seedVerses = []NewVerse{
	{Book: "Genesis", Chapter: 1, VerseNumber: 1, Text: "In the beginning God created the heaven and the earth."},
	{Book: "John", Chapter: 3, VerseNumber: 16, Text: "For God so loved the world, that he gave his only begotten Son"},
	{Book: "John", Chapter: 1, VerseNumber: 1, Text: "In the beginning was the Word"},
	{Book: "1 John", Chapter: 4, VerseNumber: 8, Text: "He that loveth not knoweth not God; for God is love."},
	{Book: "John", Chapter: 3, VerseNumber: 17, Text: "For God sent not his Son into the world to condemn the world"},
}

// newTestDB opens an in-memory SQLite database with the verse table created.
func newTestDB(t *testing.T) database.Service {
	t.Helper()

	db, err := database.New(&config.Config{
		DBDriver:    database.DriverSQLite,
		SQLitePath:  ":memory:",
		DBBootstrap: true,
	}, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// newSeededRepo returns a repository over seedVerses and the ids assigned
// to them, in seed order.
func newSeededRepo(t *testing.T) (Repository, []int64) {
	t.Helper()

	repo := NewRepository(newTestDB(t).DB(), zap.NewNop())

	ids := make([]int64, 0, len(seedVerses))
	for _, v := range seedVerses {
		res, err := repo.CreateVerse(context.Background(), v)
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}
	return repo, ids
}
