package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/natman/internal/client/storage/migrations"
	"github.com/dmitrijs2005/natman/internal/common"

	_ "modernc.org/sqlite"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteKV struct {
	db dbtx
}

func (r *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &common.StorageError{Op: "get", Key: key, Err: err}
	}
	return value, nil
}

func (r *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return &common.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (r *sqliteKV) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return &common.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// SQLiteStore keeps values in a single SQLite table.
type SQLiteStore struct {
	sqliteKV
	conn *sql.DB
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{sqliteKV: sqliteKV{db: db}, conn: db}
}

// OpenSQLite opens (or creates) the database file at dsn and applies the
// embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &common.StorageError{Op: "open", Err: err}
	}
	// SQLite has a single writer; one connection also keeps ":memory:"
	// databases from splitting across the pool.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, &common.StorageError{Op: "migrate", Err: err}
	}
	return NewSQLiteStore(db), nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Update runs fn inside one SQL transaction. It commits when fn succeeds and
// rolls back on error or panic; panics are rethrown.
func (s *SQLiteStore) Update(ctx context.Context, fn func(ctx context.Context, tx KV) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return &common.StorageError{Op: "begin", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = &common.StorageError{Op: "commit", Err: cerr}
		}
	}()

	return fn(ctx, &sqliteKV{db: tx})
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
