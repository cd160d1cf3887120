package app

import (
	"context"

	"familymedt/internal/core"
)

type appService struct {
	members core.MemberService
	alerts  core.AlertService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(members core.MemberService, alerts core.AlertService) ApplicationService {
	return &appService{
		members: members,
		alerts:  alerts,
	}
}

// AddMember registers a new household member.
func (s *appService) AddMember(ctx context.Context, name string) (*MemberResult, error) {
	created, err := s.members.AddMember(ctx, name)
	if err != nil {
		return nil, err
	}
	return &MemberResult{Name: name, Created: created, Found: created}, nil
}

// SwitchMember selects the active member.
func (s *appService) SwitchMember(ctx context.Context, name string) (*MemberResult, error) {
	found := s.members.SwitchMember(ctx, name)
	return &MemberResult{Name: name, Found: found}, nil
}

// DeleteMember removes a member and everything they own.
func (s *appService) DeleteMember(ctx context.Context, name string) (*MemberResult, error) {
	found := s.members.DeleteMember(ctx, name)
	return &MemberResult{Name: name, Found: found}, nil
}

// ListMembers returns the member directory.
func (s *appService) ListMembers(ctx context.Context) (*MemberListResult, error) {
	return &MemberListResult{
		Members: s.members.ListMembers(),
		Active:  s.members.ActiveMember(),
	}, nil
}

// AddMedication adds a medication to the active member's inventory.
func (s *appService) AddMedication(ctx context.Context, req AddMedicationRequest) (*AddMedicationResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}

	var med *core.Medication
	if req.IsPrescription {
		med, err = core.NewPrescriptionMedication(
			req.Name, req.Dosage, req.Frequency, req.DailyDosage, req.Stock,
			core.PrescriptionDetails{
				DoctorName:       req.DoctorName,
				PrescriptionDate: req.PrescriptionDate,
				Indication:       req.Indication,
				Warnings:         req.Warnings,
				ExpirationDate:   req.ExpirationDate,
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		med = core.NewMedication(req.Name, req.Dosage, req.Frequency, req.DailyDosage, req.Stock)
	}

	id := inv.AddMedication(ctx, med)
	return &AddMedicationResult{Member: inv.Member(), MedID: id, Name: req.Name}, nil
}

// UpdateStock applies a signed delta to a medication's stock.
func (s *appService) UpdateStock(ctx context.Context, medID, delta int) (*UpdateStockResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}
	applied := inv.UpdateStock(ctx, medID, delta)
	return &UpdateStockResult{Member: inv.Member(), MedID: medID, Applied: applied}, nil
}

// DeleteMedication removes a medication from the active member's inventory.
func (s *appService) DeleteMedication(ctx context.Context, medID int) (*DeleteMedicationResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}
	found := inv.DeleteMedication(ctx, medID)
	return &DeleteMedicationResult{Member: inv.Member(), MedID: medID, Found: found}, nil
}

// GetStockReport returns the active member's inventory with forecasts.
func (s *appService) GetStockReport(ctx context.Context) (*StockReportResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}
	return &StockReportResult{Member: inv.Member(), Lines: inv.StockReport()}, nil
}

// GetPrescriptionReport returns the active member's prescriptions.
func (s *appService) GetPrescriptionReport(ctx context.Context) (*PrescriptionReportResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}
	return &PrescriptionReportResult{Member: inv.Member(), Lines: inv.PrescriptionReport()}, nil
}

// CheckLowStock scans the active member's inventory.
func (s *appService) CheckLowStock(ctx context.Context) (*LowStockResult, error) {
	inv, err := s.members.ActiveInventory()
	if err != nil {
		return nil, err
	}
	return &LowStockResult{Member: inv.Member(), Warnings: inv.CheckLowStock(ctx)}, nil
}

// CheckHouseholdLowStock scans every member's inventory.
func (s *appService) CheckHouseholdLowStock(ctx context.Context) (*HouseholdLowStockResult, error) {
	return &HouseholdLowStockResult{Entries: s.members.AggregateLowStock(ctx)}, nil
}

// ListAlerts returns active alerts for one member or the whole household.
func (s *appService) ListAlerts(ctx context.Context, member string) (*AlertListResult, error) {
	if member == "" {
		return &AlertListResult{Alerts: s.alerts.ListAll()}, nil
	}
	return &AlertListResult{Alerts: s.alerts.ListForMember(member)}, nil
}

// SaveAll flushes the directory and every inventory to storage.
func (s *appService) SaveAll(ctx context.Context) error {
	return s.members.SaveAll(ctx)
}

// ActiveMember returns the currently selected member's name.
func (s *appService) ActiveMember() string {
	return s.members.ActiveMember()
}
