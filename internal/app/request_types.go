package app

// AddMedicationRequest carries the fields for AddMedication. The five
// prescription fields are read only when IsPrescription is true.
type AddMedicationRequest struct {
	Name        string
	Dosage      string
	Frequency   string
	DailyDosage int
	Stock       int

	IsPrescription   bool
	DoctorName       string
	PrescriptionDate string // YYYY-MM-DD
	Indication       string
	Warnings         string
	ExpirationDate   string // YYYY-MM-DD
}
