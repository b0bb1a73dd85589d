package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/matchbook/matchbook/internal/domain"
	"github.com/matchbook/matchbook/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection pool and hands out repositories bound to it.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := migrations.Run(ctx, d.SqlDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Users() *UserRepository { return NewUserRepository(d) }

func (d *DB) Posts() domain.PostRepository { return &postRepo{db: d.SqlDB} }

func (d *DB) Follows() domain.FollowRepository { return &followRepo{db: d.SqlDB} }

// FileStore returns a BLOB-backed store for avatar bytes.
func (d *DB) FileStore() domain.FileStore { return &fileStore{db: d.SqlDB} }

// isUniqueConstraintError reports whether err is a SQLite UNIQUE violation.
// The returned column name (e.g. "users.email") lets callers pick a sentinel.
func isUniqueConstraintError(err error) (string, bool) {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	msg := err.Error()
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	column := msg[i+len(marker):]
	if j := strings.IndexAny(column, " ,)"); j >= 0 {
		column = column[:j]
	}
	return column, true
}
