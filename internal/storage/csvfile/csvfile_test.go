package csvfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"familymedt/internal/storage"
	"familymedt/internal/storage/csvfile"
)

func setupStore(t *testing.T) (storage.Store, string, context.Context) {
	t.Helper()
	dir := t.TempDir()
	store, err := csvfile.New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, dir, context.Background()
}

func TestStore_RoundTrip(t *testing.T) {
	store, dir, ctx := setupStore(t)

	table := storage.NewTable("med_id", "name", "doctor_name")
	table.Append(storage.Row{"med_id": "1", "name": "Aspirin", "doctor_name": ""})
	table.Append(storage.Row{"med_id": "2", "name": "Lisinopril", "doctor_name": "Dr. Lee"})

	if err := store.Write(ctx, "alice_inventory", table); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "alice_inventory.csv")); err != nil {
		t.Fatalf("expected csv file on disk: %v", err)
	}

	got, err := store.Read(ctx, "alice_inventory")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Columns) != 3 || got.Columns[0] != "med_id" {
		t.Fatalf("unexpected columns: %v", got.Columns)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.Rows[0]["doctor_name"] != "" {
		t.Errorf("blank cell must round-trip empty, got %q", got.Rows[0]["doctor_name"])
	}
	if got.Rows[1]["doctor_name"] != "Dr. Lee" {
		t.Errorf("unexpected cell: %q", got.Rows[1]["doctor_name"])
	}
}

func TestStore_ReadMissing(t *testing.T) {
	store, _, ctx := setupStore(t)

	if _, err := store.Read(ctx, "missing"); !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestStore_Exists(t *testing.T) {
	store, _, ctx := setupStore(t)

	exists, err := store.Exists(ctx, "members")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("expected false before write")
	}

	if err := store.Write(ctx, "members", storage.NewTable("name")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	exists, err = store.Exists(ctx, "members")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected true after write")
	}
}

func TestStore_Remove(t *testing.T) {
	store, _, ctx := setupStore(t)

	if err := store.Write(ctx, "members", storage.NewTable("name")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.Remove(ctx, "members"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if exists, _ := store.Exists(ctx, "members"); exists {
		t.Fatal("expected file gone after remove")
	}

	// Removing an absent table is a no-op.
	if err := store.Remove(ctx, "members"); err != nil {
		t.Fatalf("second remove must not error: %v", err)
	}
}

func TestStore_WriteReplacesWholeTable(t *testing.T) {
	store, _, ctx := setupStore(t)

	first := storage.NewTable("name")
	first.Append(storage.Row{"name": "alice"})
	first.Append(storage.Row{"name": "bob"})
	if err := store.Write(ctx, "members", first); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	second := storage.NewTable("name")
	second.Append(storage.Row{"name": "carol"})
	if err := store.Write(ctx, "members", second); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	got, err := store.Read(ctx, "members")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0]["name"] != "carol" {
		t.Fatalf("expected full replacement, got %+v", got.Rows)
	}
}

func TestStore_PadsRaggedRows(t *testing.T) {
	store, dir, ctx := setupStore(t)

	// A hand-edited file with a short row.
	raw := "med_id,name,doctor_name\n1,Aspirin\n"
	if err := os.WriteFile(filepath.Join(dir, "ragged.csv"), []byte(raw), 0o644); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	got, err := store.Read(ctx, "ragged")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got.Rows))
	}
	if got.Rows[0]["doctor_name"] != "" {
		t.Errorf("missing trailing cell must read empty, got %q", got.Rows[0]["doctor_name"])
	}
}

func TestStore_HeaderOnlyFile(t *testing.T) {
	store, _, ctx := setupStore(t)

	if err := store.Write(ctx, "empty", storage.NewTable("a", "b")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := store.Read(ctx, "empty")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Rows) != 0 {
		t.Fatalf("expected no rows, got %+v", got.Rows)
	}
	if len(got.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %v", got.Columns)
	}
}
