// Package repo is the relational persistence boundary (spec §4.2, "C2").
// Every repository wraps a shared *sql.DB behind a narrow, testable
// interface; only TreasureRoomRepository.Save wraps its writes in a
// transaction (see doc.go), and failures surface
// as *rpgerr.Error rather than panics so callers can match on Code.
package repo

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// builder is the shared squirrel statement builder, bound to SQLite's `?`
// placeholder style (the driver does not understand squirrel's default `$N`).
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DB wraps the SQLite connection pool all repositories share.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and runs any
// pending goose migrations. path may be ":memory:" for tests.
func Open(ctx context.Context, path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("repo: open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1) // SQLite: one writer; avoids SQLITE_BUSY under the world executor's FIFO.

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repo: ping sqlite: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repo: goose dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("repo: migrate: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn exposes the raw *sql.DB for repositories in this package.
func (d *DB) Conn() *sql.DB {
	return d.conn
}
