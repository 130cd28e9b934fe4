// Package store persists catalog documents (categories, products,
// inquiries) in SQLite or Postgres.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour and driver.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the dialect from a connection string. postgres:// and
// postgresql:// URLs use Postgres; anything else is treated as a SQLite path.
func DialectFor(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

func (d Dialect) driver() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// rebind rewrites ? placeholders to $n for Postgres.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Store is the document store. All methods are safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect Dialect
	logger  zerolog.Logger

	categories collection[Category]
	products   collection[Product]
	inquiries  collection[Inquiry]

	now   func() time.Time
	newID func() string
}

// ErrEmptyDSN is returned by Open for a blank connection string.
var ErrEmptyDSN = errors.New("store: empty connection string")

// Open connects to the database named by dsn and runs migrations.
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}

	dialect := DialectFor(dsn)
	db, err := sql.Open(dialect.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch dialect {
	case DialectPostgres:
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(15 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	default:
		// Pragmas are per connection; a single connection keeps them applied
		// and makes in-memory databases usable.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	s := NewWithDB(db, dialect, logger)
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	s.logger.Info().Str("dialect", string(dialect)).Msg("store initialized")
	return s, nil
}

// NewWithDB wraps an already opened database without running migrations.
func NewWithDB(db *sql.DB, dialect Dialect, logger zerolog.Logger) *Store {
	return &Store{
		db:         db,
		dialect:    dialect,
		logger:     logger.With().Str("component", "store").Logger(),
		categories: collection[Category]{db: db, table: "categories", dialect: dialect},
		products:   collection[Product]{db: db, table: "products", dialect: dialect},
		inquiries:  collection[Inquiry]{db: db, table: "inquiries", dialect: dialect},
		now:        time.Now,
		newID:      newID,
	}
}

// Dialect returns the SQL dialect in use.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection (for testing).
func (s *Store) DB() *sql.DB {
	return s.db
}
