package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"familymedt/internal/storage"
)

const membersTable = "members"

var memberColumns = []string{"name"}

// MemberInfo is a read view of one directory entry.
type MemberInfo struct {
	Name   string
	Active bool
}

// MemberLowStock is one low-stock finding in a household-wide scan.
type MemberLowStock struct {
	Member   string
	MedID    int
	Name     string
	DaysLeft int
}

// MemberService owns the household member directory. Each member has
// exactly one inventory store; all stores share the single alert
// registry passed at construction.
type MemberService interface {
	// AddMember registers a new member with an empty inventory and
	// persists the directory. An empty name is a validation error; a
	// duplicate name returns false without side effects.
	AddMember(ctx context.Context, name string) (bool, error)

	// SwitchMember selects the active member and immediately runs a
	// low-stock check on their store, forwarding any warnings to the
	// registry. Switching can therefore re-raise stale alerts even when
	// no stock changed — an intentional on-entry refresh. Returns false
	// for an unknown name.
	SwitchMember(ctx context.Context, name string) bool

	// DeleteMember removes the member's backing inventory table, clears
	// all of the member's alerts, drops the member, resets the active
	// pointer if it pointed here, and persists the directory. A second
	// delete returns false with no further side effects.
	DeleteMember(ctx context.Context, name string) bool

	// ListMembers enumerates the directory, marking the active member.
	ListMembers() []MemberInfo

	// ActiveMember returns the active member's name, or "" when none is
	// selected.
	ActiveMember() string

	// ActiveInventory returns the active member's inventory store, or
	// ErrNoActiveMember when none is selected.
	ActiveInventory() (InventoryService, error)

	// Inventory returns the named member's inventory store.
	Inventory(name string) (InventoryService, bool)

	// AggregateLowStock flattens CheckLowStock across every member's
	// store. It inherits the per-store re-raise side effect: iterating
	// all stores re-sets alerts for every member.
	AggregateLowStock(ctx context.Context) []MemberLowStock

	// SaveAll persists the member list and forces every member's store
	// to rewrite its backing table; used for the full flush before
	// shutdown.
	SaveAll(ctx context.Context) error
}

type memberService struct {
	store   storage.Store
	alerts  AlertService
	log     *zap.SugaredLogger
	members map[string]InventoryService
	active  string
}

// NewMemberService reconstructs the directory from storage and builds an
// inventory store per member, each bound to the shared alert registry.
// An absent member table is initialized empty and written immediately.
func NewMemberService(ctx context.Context, store storage.Store, alerts AlertService, log *zap.SugaredLogger) MemberService {
	s := &memberService{
		store:   store,
		alerts:  alerts,
		log:     log,
		members: make(map[string]InventoryService),
	}
	s.load(ctx)
	return s
}

func (s *memberService) load(ctx context.Context) {
	table, err := s.store.Read(ctx, membersTable)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			s.log.Warnw("failed to load members, starting empty", "error", err)
		}
		s.persistMembers(ctx)
		return
	}

	for _, row := range table.Rows {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			s.log.Warnw("skipping blank member row")
			continue
		}
		s.members[name] = NewInventoryService(ctx, name, s.store, s.alerts, s.log)
	}
}

// persistMembers rewrites the directory table, logging on failure.
func (s *memberService) persistMembers(ctx context.Context) {
	table := storage.NewTable(memberColumns...)
	for _, name := range sortedKeys(s.members) {
		table.Append(storage.Row{"name": name})
	}
	if err := s.store.Write(ctx, membersTable, table); err != nil {
		s.log.Warnw("failed to persist members", "error", err)
	}
}

func (s *memberService) AddMember(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, fmt.Errorf("member name: %w", ErrEmptyName)
	}
	if _, exists := s.members[name]; exists {
		s.log.Infow("member already exists", "member", name)
		return false, nil
	}

	s.members[name] = NewInventoryService(ctx, name, s.store, s.alerts, s.log)
	s.persistMembers(ctx)
	s.log.Infow("member added", "member", name)
	return true, nil
}

func (s *memberService) SwitchMember(ctx context.Context, name string) bool {
	inv, ok := s.members[name]
	if !ok {
		s.log.Infow("member not found", "member", name)
		return false
	}

	s.active = name
	// On-entry refresh: re-raise anything currently low for this member.
	if warnings := inv.CheckLowStock(ctx); len(warnings) > 0 {
		s.alerts.RaiseBatch(ctx, name, warnings)
	}
	return true
}

func (s *memberService) DeleteMember(ctx context.Context, name string) bool {
	inv, ok := s.members[name]
	if !ok {
		s.log.Infow("member not found", "member", name)
		return false
	}

	if err := inv.DropStorage(ctx); err != nil {
		s.log.Warnw("failed to remove inventory artifacts", "member", name, "error", err)
	}
	s.alerts.ClearAllForMember(ctx, name)
	delete(s.members, name)
	if s.active == name {
		s.active = ""
	}
	s.persistMembers(ctx)
	s.log.Infow("member deleted", "member", name)
	return true
}

func (s *memberService) ListMembers() []MemberInfo {
	names := sortedKeys(s.members)
	out := make([]MemberInfo, 0, len(names))
	for _, name := range names {
		out = append(out, MemberInfo{Name: name, Active: name == s.active})
	}
	return out
}

func (s *memberService) ActiveMember() string {
	return s.active
}

func (s *memberService) ActiveInventory() (InventoryService, error) {
	if s.active == "" {
		return nil, ErrNoActiveMember
	}
	return s.members[s.active], nil
}

func (s *memberService) Inventory(name string) (InventoryService, bool) {
	inv, ok := s.members[name]
	return inv, ok
}

func (s *memberService) AggregateLowStock(ctx context.Context) []MemberLowStock {
	var out []MemberLowStock
	for _, name := range sortedKeys(s.members) {
		for _, w := range s.members[name].CheckLowStock(ctx) {
			out = append(out, MemberLowStock{
				Member:   name,
				MedID:    w.MedID,
				Name:     w.Name,
				DaysLeft: w.DaysLeft,
			})
		}
	}
	return out
}

func (s *memberService) SaveAll(ctx context.Context) error {
	table := storage.NewTable(memberColumns...)
	for _, name := range sortedKeys(s.members) {
		table.Append(storage.Row{"name": name})
	}

	var errs []error
	if err := s.store.Write(ctx, membersTable, table); err != nil {
		errs = append(errs, fmt.Errorf("failed to write member list: %w", err))
	}
	for _, name := range sortedKeys(s.members) {
		if err := s.members[name].Save(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
