package database

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-api/internal/bible"
	"github.com/taiwoajasa245/bible-api/pkg/config"
)

// pgConfig is filled in by TestMain once the container is up.
var pgConfig *config.Config

func mustStartPostgresContainer() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	pgConfig = &config.Config{
		DBDriver:    DriverPostgres,
		DBHost:      dbHost,
		DBPort:      dbPort.Port(),
		DBName:      dbName,
		DBUser:      dbUser,
		DBPassword:  dbPwd,
		DBSchema:    "bible",
		DBBootstrap: true,
	}

	return dbContainer.Terminate, err
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	teardown, err := mustStartPostgresContainer()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func newPostgres(t *testing.T) Service {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}

	srv, err := New(pgConfig, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestNew(t *testing.T) {
	srv := newPostgres(t)
	assert.Equal(t, DriverPostgres, srv.Driver())
	assert.NotNil(t, srv.DB())
}

func TestHealth(t *testing.T) {
	srv := newPostgres(t)

	stats := srv.Health()

	assert.Equal(t, "up", stats["status"])
	assert.NotContains(t, stats, "error")
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestBootstrapIsIdempotent(t *testing.T) {
	srv := newPostgres(t)

	require.NoError(t, srv.Bootstrap(context.Background()))
	require.NoError(t, srv.Bootstrap(context.Background()))

	var schema string
	err := srv.DB().QueryRowContext(context.Background(),
		`SELECT table_schema FROM information_schema.tables WHERE table_name = 't_kjv'`).Scan(&schema)
	require.NoError(t, err)
	assert.Equal(t, "bible", schema)
}

func TestVerseRoundTripOnPostgres(t *testing.T) {
	srv := newPostgres(t)
	ctx := context.Background()
	repo := bible.NewRepository(srv.DB(), zap.NewNop())

	res, err := repo.CreateVerse(ctx, bible.NewVerse{Book: "John", Chapter: 3, VerseNumber: 16, Text: "For God so loved the world"})
	require.NoError(t, err)
	require.NotZero(t, res.ID)

	text := "updated"
	upd, err := repo.UpdateVerse(ctx, res.ID, bible.VersePatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.RowsAffected)

	got, err := repo.GetVerseByID(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, bible.Verse{ID: res.ID, Book: "John", Chapter: 3, VerseNumber: 16, Text: "updated"}, got[0])

	// Postgres LIKE is case sensitive
	found, err := repo.SearchVerses(ctx, "UPDATED")
	require.NoError(t, err)
	assert.Empty(t, found)

	del, err := repo.DeleteVerseByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.RowsAffected)

	got, err = repo.GetVerseByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIDsBeyondInt32OnPostgres(t *testing.T) {
	srv := newPostgres(t)
	ctx := context.Background()
	repo := bible.NewRepository(srv.DB(), zap.NewNop())

	id := int64(1 << 32)

	got, err := repo.GetVerseByID(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, got)

	del, err := repo.DeleteVerseByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, del.RowsAffected)

	text := "x"
	upd, err := repo.UpdateVerse(ctx, id, bible.VersePatch{Text: &text})
	require.NoError(t, err)
	assert.Zero(t, upd.RowsAffected)

	var dataType string
	err = srv.DB().QueryRowContext(ctx,
		`SELECT data_type FROM information_schema.columns WHERE table_name = 't_kjv' AND column_name = 'id'`).Scan(&dataType)
	require.NoError(t, err)
	assert.Equal(t, "bigint", dataType)
}

func TestClose(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}

	srv, err := New(pgConfig, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, srv.Close())
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLiteHealth(t *testing.T) {
	srv, err := New(&config.Config{DBDriver: DriverSQLite, SQLitePath: ":memory:", DBBootstrap: true}, zap.NewNop())
	require.NoError(t, err)
	defer srv.Close()

	assert.Equal(t, "up", srv.Health()["status"])
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "bible",
		DBUser:     "postgres",
		DBPassword: "p@ss",
		DBSchema:   "bible",
	})
	assert.Equal(t, "postgres://postgres:p%40ss@db:5432/bible?search_path=bible&sslmode=disable", dsn)
}
