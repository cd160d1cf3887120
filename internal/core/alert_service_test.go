package core_test

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"familymedt/internal/core"
	"familymedt/internal/storage"
	"familymedt/internal/storage/memory"
)

func setupAlertService(t *testing.T) (core.AlertService, storage.Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	return core.NewAlertService(ctx, store, zap.NewNop().Sugar()), store, ctx
}

func TestAlertService_SetClearList(t *testing.T) {
	alerts, _, ctx := setupAlertService(t)

	alerts.Set(ctx, "alice", 2, "Low stock alert for Ibuprofen (ID 2)! Only 1 days left.")
	alerts.Set(ctx, "alice", 1, "Low stock alert for Aspirin (ID 1)! Only 2 days left.")
	alerts.Set(ctx, "bob", 1, "Low stock alert for Zyrtec (ID 1)! Only 0 days left.")

	got := alerts.ListForMember("alice")
	if len(got) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(got))
	}
	// Ordered by medication id.
	if got[0].MedID != 1 || got[1].MedID != 2 {
		t.Errorf("expected id order [1 2], got [%d %d]", got[0].MedID, got[1].MedID)
	}

	// Overwrite keeps one entry per key.
	alerts.Set(ctx, "alice", 1, "Low stock alert for Aspirin (ID 1)! Only 1 days left.")
	got = alerts.ListForMember("alice")
	if len(got) != 2 {
		t.Fatalf("expected overwrite, got %d entries", len(got))
	}
	if got[0].Message != "Low stock alert for Aspirin (ID 1)! Only 1 days left." {
		t.Errorf("expected overwritten message, got %q", got[0].Message)
	}

	alerts.Clear(ctx, "alice", 1)
	if got := alerts.ListForMember("alice"); len(got) != 1 || got[0].MedID != 2 {
		t.Fatalf("expected only med 2 left, got %+v", got)
	}

	// Clearing an absent key is a no-op.
	alerts.Clear(ctx, "alice", 99)
	alerts.Clear(ctx, "nobody", 1)

	if got := alerts.ListForMember("nobody"); len(got) != 0 {
		t.Errorf("unknown member must yield empty list, got %+v", got)
	}

	all := alerts.ListAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 alerts across household, got %d", len(all))
	}
	if all[0].Member != "alice" || all[1].Member != "bob" {
		t.Errorf("expected member order [alice bob], got [%s %s]", all[0].Member, all[1].Member)
	}
}

func TestAlertService_ClearAllForMember(t *testing.T) {
	alerts, _, ctx := setupAlertService(t)

	alerts.Set(ctx, "alice", 1, "msg")
	alerts.Set(ctx, "alice", 2, "msg")
	alerts.Set(ctx, "bob", 1, "msg")

	alerts.ClearAllForMember(ctx, "alice")
	if got := alerts.ListForMember("alice"); len(got) != 0 {
		t.Fatalf("expected empty partition, got %+v", got)
	}
	if got := alerts.ListForMember("bob"); len(got) != 1 {
		t.Fatalf("other members must be untouched, got %+v", got)
	}

	// Second clear is a no-op.
	alerts.ClearAllForMember(ctx, "alice")
}

func TestAlertService_RaiseBatchMessageFormat(t *testing.T) {
	alerts, _, ctx := setupAlertService(t)

	alerts.RaiseBatch(ctx, "alice", []core.LowStockWarning{
		{MedID: 3, Name: "Ibuprofen", DaysLeft: 2},
	})

	got := alerts.ListForMember("alice")
	if len(got) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(got))
	}
	want := "Low stock alert for Ibuprofen (ID 3)! Only 2 days left."
	if got[0].Message != want {
		t.Errorf("message mismatch:\n got  %q\n want %q", got[0].Message, want)
	}
}

func TestAlertService_ReloadRoundTrip(t *testing.T) {
	alerts, store, ctx := setupAlertService(t)

	alerts.Set(ctx, "alice", 1, "Low stock alert for Aspirin (ID 1)! Only 2 days left.")
	alerts.Set(ctx, "bob", 4, "Low stock alert for Zyrtec (ID 4)! Only 0 days left.")

	reloaded := core.NewAlertService(ctx, store, zap.NewNop().Sugar())
	all := reloaded.ListAll()
	if len(all) != 2 {
		t.Fatalf("expected 2 alerts after reload, got %d", len(all))
	}
	if all[0].Member != "alice" || all[0].MedID != 1 {
		t.Errorf("unexpected first alert: %+v", all[0])
	}
	if all[1].Member != "bob" || all[1].MedID != 4 {
		t.Errorf("unexpected second alert: %+v", all[1])
	}
}

func TestAlertService_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	table := storage.NewTable("member", "med_id", "message")
	table.Append(storage.Row{"member": "alice", "med_id": "1", "message": "good"})
	table.Append(storage.Row{"member": "alice", "med_id": "not-a-number", "message": "bad"})
	table.Append(storage.Row{"member": "", "med_id": "2", "message": "bad"})
	if err := store.Write(ctx, "reminders", table); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	alerts := core.NewAlertService(ctx, store, zap.NewNop().Sugar())
	got := alerts.ListAll()
	if len(got) != 1 {
		t.Fatalf("expected only the valid row to survive, got %+v", got)
	}
	if got[0].Message != "good" {
		t.Errorf("unexpected survivor: %+v", got[0])
	}
}

func TestAlertService_InitializesAbsentTable(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	core.NewAlertService(ctx, store, zap.NewNop().Sugar())

	exists, err := store.Exists(ctx, "reminders")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatal("constructor must write the empty schema")
	}
	table, err := store.Read(ctx, "reminders")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if fmt.Sprint(table.Columns) != fmt.Sprint([]string{"member", "med_id", "message"}) {
		t.Errorf("unexpected columns: %v", table.Columns)
	}
}
