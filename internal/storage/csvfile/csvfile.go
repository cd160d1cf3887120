// Package csvfile implements the tabular Store on one CSV file per table.
// It is the default backend: every logical table becomes <name>.csv under
// a single data directory, with the header row as the column schema.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"familymedt/internal/storage"
)

// Store persists tables as CSV files under dir.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a CSV-backed store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Read loads a full table. Rows shorter than the header are padded with
// empty fields rather than rejected; row-level validation belongs to the
// caller, which skips records it cannot reconstruct.
func (s *Store) Read(ctx context.Context, name string) (*storage.Table, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotExist
		}
		return nil, fmt.Errorf("failed to open table %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return storage.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of table %s: %w", name, err)
	}

	table := storage.NewTable(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", name, err)
		}
		row := make(storage.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}

// Write replaces the table atomically: the snapshot is written to a
// temporary file in the same directory and renamed over the target, so a
// failure mid-write never leaves a truncated table behind.
func (s *Store) Write(ctx context.Context, name string, table *storage.Table) error {
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for table %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header of table %s: %w", name, err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write table %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush table %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for table %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the table's file is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat table %s: %w", name, err)
}

// Remove deletes the table's file. An absent file is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove table %s: %w", name, err)
	}
	return nil
}
