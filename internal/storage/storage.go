package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Read when the named table has never been written.
var ErrNotExist = errors.New("table does not exist")

// Row is a single record keyed by column name. Absent columns read as "".
type Row map[string]string

// Table is a full tabular snapshot: an ordered column set plus its rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given column schema.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Store is the tabular repository the core services persist through.
// The contract is deliberately whole-table: every mutating call in the
// core rewrites its full table from the current in-memory state, so
// implementations never need partial updates or queries.
type Store interface {
	// Read returns the full contents of the named table.
	// It returns ErrNotExist if the table has never been written.
	Read(ctx context.Context, name string) (*Table, error)

	// Write replaces the named table with the given snapshot.
	// Writing an empty table is valid and records the schema.
	Write(ctx context.Context, name string, table *Table) error

	// Exists reports whether the named table has been written.
	Exists(ctx context.Context, name string) (bool, error)

	// Remove deletes the named table and its backing artifacts.
	// Removing an absent table is not an error.
	Remove(ctx context.Context, name string) error
}
