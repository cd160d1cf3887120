package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"familymedt/internal/storage"
)

const remindersTable = "reminders"

var reminderColumns = []string{"member", "med_id", "message"}

// Alert is one active low-stock alert.
type Alert struct {
	Member  string
	MedID   int
	Message string
}

// AlertService owns the durable (member, medication id) → message registry.
// Entries exist only while an alert is active; there is no timestamp or
// severity. The registry is not self-consistent with stock levels: it is
// kept current by the inventory services re-evaluating on every mutation.
type AlertService interface {
	// Set upserts an alert and persists the registry.
	Set(ctx context.Context, member string, medID int, message string)

	// Clear removes an alert if present and persists; clearing an absent
	// key is a no-op.
	Clear(ctx context.Context, member string, medID int)

	// RaiseBatch formats the standard low-stock message for each warning
	// and sets the corresponding alerts.
	RaiseBatch(ctx context.Context, member string, warnings []LowStockWarning)

	// ClearAllForMember empties a member's partition; no-op when the
	// member has no entries.
	ClearAllForMember(ctx context.Context, member string)

	// ListForMember returns a member's active alerts ordered by
	// medication id. Unknown members yield an empty list.
	ListForMember(member string) []Alert

	// ListAll returns every active alert ordered by member, then id.
	ListAll() []Alert
}

type alertService struct {
	store  storage.Store
	log    *zap.SugaredLogger
	alerts map[string]map[int]string
}

// NewAlertService reconstructs the registry from storage. Malformed rows
// are skipped individually; an absent table is treated as empty and its
// schema written immediately.
func NewAlertService(ctx context.Context, store storage.Store, log *zap.SugaredLogger) AlertService {
	s := &alertService{
		store:  store,
		log:    log,
		alerts: make(map[string]map[int]string),
	}
	s.load(ctx)
	return s
}

// alertMessage is the standard low-stock alert text.
func alertMessage(name string, medID, daysLeft int) string {
	return fmt.Sprintf("Low stock alert for %s (ID %d)! Only %d days left.", name, medID, daysLeft)
}

func (s *alertService) load(ctx context.Context) {
	table, err := s.store.Read(ctx, remindersTable)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			s.log.Warnw("failed to load reminders, starting empty", "error", err)
		}
		s.persist(ctx)
		return
	}

	for _, row := range table.Rows {
		member := row["member"]
		medID, err := strconv.Atoi(row["med_id"])
		if member == "" || err != nil {
			s.log.Warnw("skipping malformed reminder row",
				"member", row["member"], "med_id", row["med_id"])
			continue
		}
		if s.alerts[member] == nil {
			s.alerts[member] = make(map[int]string)
		}
		s.alerts[member][medID] = row["message"]
	}

	if len(table.Rows) == 0 {
		// Self-heal an empty or headerless file into a valid schema.
		s.persist(ctx)
	}
}

// persist rewrites the whole registry. A write failure is logged, not
// propagated: the in-memory registry stays authoritative for the session.
func (s *alertService) persist(ctx context.Context) {
	table := storage.NewTable(reminderColumns...)
	for _, member := range sortedKeys(s.alerts) {
		entries := s.alerts[member]
		ids := make([]int, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			table.Append(storage.Row{
				"member":  member,
				"med_id":  strconv.Itoa(id),
				"message": entries[id],
			})
		}
	}
	if err := s.store.Write(ctx, remindersTable, table); err != nil {
		s.log.Warnw("failed to persist reminders", "error", err)
	}
}

func (s *alertService) Set(ctx context.Context, member string, medID int, message string) {
	if s.alerts[member] == nil {
		s.alerts[member] = make(map[int]string)
	}
	s.alerts[member][medID] = message
	s.persist(ctx)
}

func (s *alertService) Clear(ctx context.Context, member string, medID int) {
	entries, ok := s.alerts[member]
	if !ok {
		return
	}
	if _, ok := entries[medID]; !ok {
		return
	}
	delete(entries, medID)
	s.persist(ctx)
}

func (s *alertService) RaiseBatch(ctx context.Context, member string, warnings []LowStockWarning) {
	for _, w := range warnings {
		s.Set(ctx, member, w.MedID, alertMessage(w.Name, w.MedID, w.DaysLeft))
	}
}

func (s *alertService) ClearAllForMember(ctx context.Context, member string) {
	if len(s.alerts[member]) == 0 {
		delete(s.alerts, member)
		return
	}
	delete(s.alerts, member)
	s.persist(ctx)
}

func (s *alertService) ListForMember(member string) []Alert {
	entries := s.alerts[member]
	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Alert, 0, len(ids))
	for _, id := range ids {
		out = append(out, Alert{Member: member, MedID: id, Message: entries[id]})
	}
	return out
}

func (s *alertService) ListAll() []Alert {
	var out []Alert
	for _, member := range sortedKeys(s.alerts) {
		out = append(out, s.ListForMember(member)...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
