// Package sqlite keeps a shop's ledger in a single local database file.
// It mirrors the Postgres store for installs without a hosted database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"duka/manager/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sqlx.DB
}

// Open connects to the database file at path and applies the schema.
// A single connection is used, so transactions are serialized.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type txKey struct{}

// RunAtomic executes fn within a transaction carried by the context passed to it.
func (s *Store) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return s.db
}

func (s *Store) get(ctx context.Context, dest any, what, query string, args ...any) error {
	return mapError(sqlx.GetContext(ctx, s.exec(ctx), dest, query, args...), what)
}

func (s *Store) selectAll(ctx context.Context, dest any, what, query string, args ...any) error {
	return mapError(sqlx.SelectContext(ctx, s.exec(ctx), dest, query, args...), what)
}

// mutate runs a write and, when mustMatch is set, fails with ErrNotFound if no row changed.
func (s *Store) mutate(ctx context.Context, what string, mustMatch bool, query string, args ...any) error {
	res, err := s.exec(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, what)
	}
	if !mustMatch {
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	return nil
}

func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, model.ErrNotFound)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w", what, model.ErrConflict)
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%s: %w: %s", what, model.ErrInvalidInput, sqliteErr.Error())
		}
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

func utc(t time.Time) time.Time {
	return t.UTC()
}
