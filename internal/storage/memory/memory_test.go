package memory_test

import (
	"context"
	"errors"
	"testing"

	"familymedt/internal/storage"
	"familymedt/internal/storage/memory"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	table := storage.NewTable("name")
	table.Append(storage.Row{"name": "alice"})
	if err := store.Write(ctx, "members", table); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := store.Read(ctx, "members")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0]["name"] != "alice" {
		t.Fatalf("unexpected table: %+v", got)
	}

	if _, err := store.Read(ctx, "missing"); !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestStore_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	table := storage.NewTable("name")
	table.Append(storage.Row{"name": "alice"})
	if err := store.Write(ctx, "members", table); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Mutating the caller's copy after the write must not leak in.
	table.Rows[0]["name"] = "mallory"

	got, err := store.Read(ctx, "members")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Rows[0]["name"] != "alice" {
		t.Fatalf("store must hold its own copy, got %q", got.Rows[0]["name"])
	}

	// Mutating a read result must not leak back either.
	got.Rows[0]["name"] = "mallory"
	again, _ := store.Read(ctx, "members")
	if again.Rows[0]["name"] != "alice" {
		t.Fatalf("read must return a copy, got %q", again.Rows[0]["name"])
	}
}

func TestStore_ExistsAndRemove(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	if exists, _ := store.Exists(ctx, "members"); exists {
		t.Fatal("expected false before write")
	}
	if err := store.Write(ctx, "members", storage.NewTable("name")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if exists, _ := store.Exists(ctx, "members"); !exists {
		t.Fatal("expected true after write")
	}
	if err := store.Remove(ctx, "members"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if exists, _ := store.Exists(ctx, "members"); exists {
		t.Fatal("expected false after remove")
	}
}
