package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/taiwoajasa245/bible-api/pkg/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Bootstrap creates the verse table when it does not exist yet.
	Bootstrap(ctx context.Context) error

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error

	DB() *sql.DB
	Driver() string
}

type service struct {
	db     *sql.DB
	driver string
	schema string
	logger *zap.Logger
}

// New opens the database selected by cfg.DBDriver. The returned service
// owns the pool; callers must Close it.
func New(cfg *config.Config, logger *zap.Logger) (Service, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.DBDriver {
	case DriverPostgres:
		db, err = sql.Open("pgx", PostgresDSN(cfg))
	case DriverSQLite:
		db, err = sql.Open("sqlite", cfg.SQLitePath)
		if err == nil {
			// one connection keeps :memory: databases alive and serializes writers
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBDriver, err)
	}

	s := &service{
		db:     db,
		driver: cfg.DBDriver,
		schema: cfg.DBSchema,
		logger: logger,
	}

	if cfg.DBBootstrap {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Bootstrap(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// PostgresDSN builds the pgx connection string. search_path points at the
// configured schema so queries can use unqualified table names.
func PostgresDSN(cfg *config.Config) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:   cfg.DBHost + ":" + cfg.DBPort,
		Path:   "/" + cfg.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	if cfg.DBSchema != "" {
		q.Set("search_path", cfg.DBSchema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *service) DB() *sql.DB {
	return s.db
}

func (s *service) Driver() string {
	return s.driver
}

func (s *service) Bootstrap(ctx context.Context) error {
	var statements []string

	switch s.driver {
	case DriverPostgres:
		if s.schema != "" {
			statements = append(statements, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{s.schema}.Sanitize())
		}
		statements = append(statements, postgresVerseTable)
	case DriverSQLite:
		statements = append(statements, sqliteVerseTable)
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	s.logger.Info("database schema ready", zap.String("driver", s.driver))
	return nil
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		s.logger.Error("database ping failed", zap.Error(err))
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["driver"] = s.driver

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	if dbStats.MaxIdleClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many idle connections are being closed, consider revising the connection pool settings."
	}

	if dbStats.MaxLifetimeClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many connections are being closed due to max lifetime, consider increasing max lifetime or revising the connection usage pattern."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	s.logger.Info("disconnected from database", zap.String("driver", s.driver))
	return s.db.Close()
}
