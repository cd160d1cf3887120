package app

import "context"

// ApplicationService is the single interface all UI adapters (REPL, CLI)
// call. It decouples presentation from business logic. Implementations
// must contain no fmt.Println, no ANSI codes, and no display logic of
// any kind.
type ApplicationService interface {
	// AddMember registers a new household member. Created is false when
	// the name is already taken.
	AddMember(ctx context.Context, name string) (*MemberResult, error)

	// SwitchMember selects the active member and refreshes their
	// low-stock alerts. Found is false for an unknown name.
	SwitchMember(ctx context.Context, name string) (*MemberResult, error)

	// DeleteMember removes a member, their inventory, and their alerts.
	// Found is false for an unknown name.
	DeleteMember(ctx context.Context, name string) (*MemberResult, error)

	// ListMembers returns the member directory with the active member
	// marked.
	ListMembers(ctx context.Context) (*MemberListResult, error)

	// AddMedication adds a medication to the active member's inventory
	// and returns the assigned id.
	AddMedication(ctx context.Context, req AddMedicationRequest) (*AddMedicationResult, error)

	// UpdateStock applies a signed delta to a medication's stock for the
	// active member. Applied is false for an unknown id or an
	// insufficient-stock rejection.
	UpdateStock(ctx context.Context, medID, delta int) (*UpdateStockResult, error)

	// DeleteMedication removes a medication from the active member's
	// inventory. Found is false for an unknown id.
	DeleteMedication(ctx context.Context, medID int) (*DeleteMedicationResult, error)

	// GetStockReport returns the active member's full inventory with
	// day forecasts.
	GetStockReport(ctx context.Context) (*StockReportResult, error)

	// GetPrescriptionReport returns the active member's prescription
	// medications.
	GetPrescriptionReport(ctx context.Context) (*PrescriptionReportResult, error)

	// CheckLowStock scans the active member's inventory, raising alerts
	// for everything at or below the threshold.
	CheckLowStock(ctx context.Context) (*LowStockResult, error)

	// CheckHouseholdLowStock scans every member's inventory.
	CheckHouseholdLowStock(ctx context.Context) (*HouseholdLowStockResult, error)

	// ListAlerts returns active alerts, for one member when member is
	// non-empty, otherwise for the whole household.
	ListAlerts(ctx context.Context, member string) (*AlertListResult, error)

	// SaveAll flushes the member directory and every inventory to
	// storage.
	SaveAll(ctx context.Context) error

	// ActiveMember returns the currently selected member's name, or ""
	// when none is selected.
	ActiveMember() string
}
