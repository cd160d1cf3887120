package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"familymedt/internal/storage"
)

// LowStockWarning is one low-stock finding from an inventory scan.
type LowStockWarning struct {
	MedID    int
	Name     string
	DaysLeft int
}

// StockLine is a read view of one medication for the stock report.
// DaysLeftKnown is false when the forecast cannot be computed because the
// medication has a non-positive daily dosage.
type StockLine struct {
	MedID         int
	Name          string
	Stock         int
	DaysLeft      int
	DaysLeftKnown bool
}

// PrescriptionLine is a read view of one prescription medication.
type PrescriptionLine struct {
	MedID            int
	Name             string
	DoctorName       string
	PrescriptionDate string
	Indication       string
	Warnings         string
	ExpirationDate   string
}

// InventoryService manages one member's medication inventory: identity
// assignment, whole-table persistence, and the low-stock evaluation that
// drives the alert registry. Every mutating call rewrites the member's
// full backing table; a persistence failure is logged and the in-memory
// state stays authoritative for the rest of the session.
type InventoryService interface {
	// Member returns the owning member's name.
	Member() string

	// AddMedication assigns the next sequential id, persists, evaluates
	// the new record's forecast, and returns the assigned id. Ids are
	// never reused, even after deletion.
	AddMedication(ctx context.Context, med *Medication) int

	// UpdateStock applies a signed delta to a medication's stock.
	// It returns false for an unknown id or an insufficient-stock
	// rejection; a rejection neither persists nor touches alerts. On
	// success the record's alert is set (forecast <= 3 days) or cleared
	// (> 3 days).
	UpdateStock(ctx context.Context, medID, delta int) bool

	// DeleteMedication removes a record, persists, and unconditionally
	// clears its alert. Returns false for an unknown id.
	DeleteMedication(ctx context.Context, medID int) bool

	// CheckLowStock returns every record whose forecast is at or below
	// three days and re-sets the alert for each. It never clears alerts
	// for recovered records — only UpdateStock and DeleteMedication
	// clear. Inherited asymmetry; revisit with product before changing.
	CheckLowStock(ctx context.Context) []LowStockWarning

	// StockReport returns all records ordered by id. Pure read.
	StockReport() []StockLine

	// PrescriptionReport returns the prescription records ordered by id.
	// Pure read.
	PrescriptionReport() []PrescriptionLine

	// ListPrescriptions returns the prescription records ordered by id.
	// Pure read.
	ListPrescriptions() []PrescriptionLine

	// Save rewrites the backing table and reports the outcome; used for
	// the explicit full flush before shutdown.
	Save(ctx context.Context) error

	// DropStorage removes the member's backing table. Called by the
	// directory when the member is deleted.
	DropStorage(ctx context.Context) error
}

type inventoryService struct {
	member string
	store  storage.Store
	alerts AlertService // may be nil; evaluation is then skipped
	log    *zap.SugaredLogger
	meds   map[int]*Medication
	nextID int
}

// NewInventoryService reconstructs a member's inventory from storage.
// Rows that cannot be reconstructed are skipped individually with a
// warning; an absent or empty table initializes an empty store and writes
// the schema immediately. nextID resumes at max(existing ids) + 1.
func NewInventoryService(ctx context.Context, member string, store storage.Store, alerts AlertService, log *zap.SugaredLogger) InventoryService {
	s := &inventoryService{
		member: member,
		store:  store,
		alerts: alerts,
		log:    log,
		meds:   make(map[int]*Medication),
		nextID: 1,
	}
	s.load(ctx)
	return s
}

func (s *inventoryService) Member() string {
	return s.member
}

func (s *inventoryService) tableName() string {
	return s.member + "_inventory"
}

func (s *inventoryService) load(ctx context.Context) {
	table, err := s.store.Read(ctx, s.tableName())
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			s.log.Warnw("failed to load inventory, starting empty",
				"member", s.member, "error", err)
		}
		s.persist(ctx)
		return
	}

	maxID := 0
	for _, row := range table.Rows {
		med, err := medicationFromRow(row)
		if err != nil {
			s.log.Warnw("skipping unreadable medication row",
				"member", s.member, "med_id", row["med_id"], "error", err)
			continue
		}
		s.meds[med.ID] = med
		if med.ID > maxID {
			maxID = med.ID
		}
	}
	s.nextID = maxID + 1

	if len(table.Rows) == 0 {
		// Self-heal an empty file into a valid schema.
		s.persist(ctx)
	}
}

// persist rewrites the full table, logging instead of failing: durability
// gaps are accepted, the session keeps running on memory.
func (s *inventoryService) persist(ctx context.Context) {
	if err := s.writeTable(ctx); err != nil {
		s.log.Warnw("failed to persist inventory", "member", s.member, "error", err)
	}
}

func (s *inventoryService) writeTable(ctx context.Context) error {
	table := storage.NewTable(inventoryColumns...)
	for _, id := range s.sortedIDs() {
		table.Append(s.meds[id].toRow())
	}
	if err := s.store.Write(ctx, s.tableName(), table); err != nil {
		return fmt.Errorf("failed to write inventory for %s: %w", s.member, err)
	}
	return nil
}

func (s *inventoryService) sortedIDs() []int {
	ids := make([]int, 0, len(s.meds))
	for id := range s.meds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *inventoryService) AddMedication(ctx context.Context, med *Medication) int {
	id := s.nextID
	med.ID = id
	s.meds[id] = med
	s.nextID++

	s.persist(ctx)
	s.log.Infow("medication added", "member", s.member, "med_id", id, "name", med.Name)

	days, err := med.DaysRemaining()
	if err != nil {
		s.log.Warnw("cannot forecast new medication",
			"member", s.member, "med_id", id, "error", err)
		return id
	}
	if days <= lowStockThresholdDays && s.alerts != nil {
		s.alerts.Set(ctx, s.member, id, alertMessage(med.Name, id, days))
	}
	return id
}

func (s *inventoryService) UpdateStock(ctx context.Context, medID, delta int) bool {
	med, ok := s.meds[medID]
	if !ok {
		s.log.Infow("medication not found", "member", s.member, "med_id", medID)
		return false
	}

	if !med.ApplyStockDelta(delta) {
		s.log.Infow("insufficient stock, update rejected",
			"member", s.member, "med_id", medID, "stock", med.Stock, "delta", delta)
		return false
	}
	s.persist(ctx)

	days, err := med.DaysRemaining()
	if err != nil {
		s.log.Warnw("cannot forecast after stock update",
			"member", s.member, "med_id", medID, "error", err)
		return true
	}
	if s.alerts != nil {
		if days <= lowStockThresholdDays {
			s.alerts.Set(ctx, s.member, medID, alertMessage(med.Name, medID, days))
		} else {
			s.alerts.Clear(ctx, s.member, medID)
		}
	}
	return true
}

func (s *inventoryService) DeleteMedication(ctx context.Context, medID int) bool {
	med, ok := s.meds[medID]
	if !ok {
		s.log.Infow("medication not found", "member", s.member, "med_id", medID)
		return false
	}

	delete(s.meds, medID)
	s.persist(ctx)

	if s.alerts != nil {
		s.alerts.Clear(ctx, s.member, medID)
	}
	s.log.Infow("medication deleted", "member", s.member, "med_id", medID, "name", med.Name)
	return true
}

func (s *inventoryService) CheckLowStock(ctx context.Context) []LowStockWarning {
	var warnings []LowStockWarning
	for _, id := range s.sortedIDs() {
		med := s.meds[id]
		days, err := med.DaysRemaining()
		if err != nil {
			s.log.Warnw("cannot forecast medication",
				"member", s.member, "med_id", id, "error", err)
			continue
		}
		if days > lowStockThresholdDays {
			continue
		}
		warnings = append(warnings, LowStockWarning{MedID: id, Name: med.Name, DaysLeft: days})
		if s.alerts != nil {
			s.alerts.Set(ctx, s.member, id, alertMessage(med.Name, id, days))
		}
	}
	return warnings
}

func (s *inventoryService) StockReport() []StockLine {
	lines := make([]StockLine, 0, len(s.meds))
	for _, id := range s.sortedIDs() {
		med := s.meds[id]
		line := StockLine{MedID: id, Name: med.Name, Stock: med.Stock}
		if days, err := med.DaysRemaining(); err == nil {
			line.DaysLeft = days
			line.DaysLeftKnown = true
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *inventoryService) PrescriptionReport() []PrescriptionLine {
	return s.ListPrescriptions()
}

func (s *inventoryService) ListPrescriptions() []PrescriptionLine {
	var lines []PrescriptionLine
	for _, id := range s.sortedIDs() {
		med := s.meds[id]
		if !med.IsPrescription() {
			continue
		}
		p := med.Prescription
		lines = append(lines, PrescriptionLine{
			MedID:            id,
			Name:             med.Name,
			DoctorName:       p.DoctorName,
			PrescriptionDate: p.PrescriptionDate,
			Indication:       p.Indication,
			Warnings:         p.Warnings,
			ExpirationDate:   p.ExpirationDate,
		})
	}
	return lines
}

func (s *inventoryService) Save(ctx context.Context) error {
	return s.writeTable(ctx)
}

func (s *inventoryService) DropStorage(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.tableName()); err != nil {
		return fmt.Errorf("failed to remove inventory for %s: %w", s.member, err)
	}
	return nil
}
