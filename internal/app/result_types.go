package app

import "familymedt/internal/core"

// MemberResult is returned by member lifecycle operations. Created is
// meaningful for AddMember, Found for SwitchMember and DeleteMember.
type MemberResult struct {
	Name    string
	Created bool
	Found   bool
}

// MemberListResult is returned by ListMembers.
type MemberListResult struct {
	Members []core.MemberInfo
	Active  string
}

// AddMedicationResult is returned by AddMedication.
type AddMedicationResult struct {
	Member string
	MedID  int
	Name   string
}

// UpdateStockResult is returned by UpdateStock.
type UpdateStockResult struct {
	Member  string
	MedID   int
	Applied bool
}

// DeleteMedicationResult is returned by DeleteMedication.
type DeleteMedicationResult struct {
	Member string
	MedID  int
	Found  bool
}

// StockReportResult is returned by GetStockReport.
type StockReportResult struct {
	Member string
	Lines  []core.StockLine
}

// PrescriptionReportResult is returned by GetPrescriptionReport.
type PrescriptionReportResult struct {
	Member string
	Lines  []core.PrescriptionLine
}

// LowStockResult is returned by CheckLowStock.
type LowStockResult struct {
	Member   string
	Warnings []core.LowStockWarning
}

// HouseholdLowStockResult is returned by CheckHouseholdLowStock.
type HouseholdLowStockResult struct {
	Entries []core.MemberLowStock
}

// AlertListResult is returned by ListAlerts.
type AlertListResult struct {
	Alerts []core.Alert
}
