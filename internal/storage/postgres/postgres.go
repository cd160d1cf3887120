// Package postgres implements the tabular Store on PostgreSQL, for
// households that want shared durability instead of local CSV files.
// Logical tables are kept in two relations: a registry holding each
// table's column schema and a rows relation holding its records, so the
// whole-table read/write contract maps to a delete-then-insert
// transaction rather than DDL per member.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"familymedt/internal/storage"
)

// Store persists tables in PostgreSQL via a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database, verifies the connection, and bootstraps
// the backing relations.
func Open(ctx context.Context, connStr string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) bootstrap(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tabular_tables (
			name    text PRIMARY KEY,
			columns text[] NOT NULL
		);
		CREATE TABLE IF NOT EXISTS tabular_rows (
			tbl text NOT NULL REFERENCES tabular_tables(name) ON DELETE CASCADE,
			seq int  NOT NULL,
			row jsonb NOT NULL,
			PRIMARY KEY (tbl, seq)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to bootstrap tabular schema: %w", err)
	}
	return nil
}

// Read returns the full contents of the named table.
func (s *Store) Read(ctx context.Context, name string) (*storage.Table, error) {
	var columns []string
	err := s.pool.QueryRow(ctx,
		"SELECT columns FROM tabular_tables WHERE name = $1", name,
	).Scan(&columns)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotExist
		}
		return nil, fmt.Errorf("failed to resolve table %s: %w", name, err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT row FROM tabular_rows WHERE tbl = $1 ORDER BY seq", name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", name, err)
	}
	defer rows.Close()

	table := storage.NewTable(columns...)
	for rows.Next() {
		var row map[string]string
		if err := rows.Scan(&row); err != nil {
			return nil, fmt.Errorf("failed to scan row of table %s: %w", name, err)
		}
		table.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table %s: %w", name, err)
	}
	return table, nil
}

// Write replaces the named table in a single transaction.
func (s *Store) Write(ctx context.Context, name string, table *storage.Table) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tabular_tables (name, columns) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET columns = EXCLUDED.columns
	`, name, table.Columns)
	if err != nil {
		return fmt.Errorf("failed to upsert table %s: %w", name, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM tabular_rows WHERE tbl = $1", name); err != nil {
		return fmt.Errorf("failed to clear table %s: %w", name, err)
	}

	for i, row := range table.Rows {
		_, err := tx.Exec(ctx,
			"INSERT INTO tabular_rows (tbl, seq, row) VALUES ($1, $2, $3)",
			name, i, map[string]string(row),
		)
		if err != nil {
			return fmt.Errorf("failed to insert row %d of table %s: %w", i, name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named table is registered.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM tabular_tables WHERE name = $1)", name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return exists, nil
}

// Remove drops the named table; its rows go with it via the cascade.
func (s *Store) Remove(ctx context.Context, name string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM tabular_tables WHERE name = $1", name); err != nil {
		return fmt.Errorf("failed to remove table %s: %w", name, err)
	}
	return nil
}
