package core

import (
	"fmt"
	"strconv"
	"time"

	"familymedt/internal/storage"
)

const dateLayout = "2006-01-02"

// lowStockThresholdDays is the forecast at or below which a medication is
// considered low on stock.
const lowStockThresholdDays = 3

// inventoryColumns is the persisted schema of a member's inventory table.
// Plain medications leave the five prescription columns blank.
var inventoryColumns = []string{
	"med_id", "name", "dosage", "frequency", "daily_dosage", "stock",
	"is_prescription", "doctor_name", "prescription_date",
	"indication", "warnings", "expiration_date",
}

// Medication is one medication line in a member's inventory. The
// prescription variant is the same struct carrying a non-nil Prescription
// payload; callers branch on IsPrescription, not on type identity.
type Medication struct {
	ID           int
	Name         string
	Dosage       string // e.g. "500mg"
	Frequency    string // e.g. "2 times/day"
	DailyDosage  int    // units consumed per day
	Stock        int    // units on hand, never negative
	Prescription *PrescriptionDetails
}

// PrescriptionDetails holds the fields only prescription medications carry.
type PrescriptionDetails struct {
	DoctorName       string
	PrescriptionDate string // YYYY-MM-DD, validated at construction
	Indication       string
	Warnings         string
	ExpirationDate   string // YYYY-MM-DD, validated at construction
}

// NewMedication builds a plain (over-the-counter) medication. The daily
// dosage is not validated here: an invalid value surfaces as a forecast
// error, not a construction error.
func NewMedication(name, dosage, frequency string, dailyDosage, stock int) *Medication {
	return &Medication{
		Name:        name,
		Dosage:      dosage,
		Frequency:   frequency,
		DailyDosage: dailyDosage,
		Stock:       stock,
	}
}

// NewPrescriptionMedication builds a prescription medication. Both dates
// must parse as YYYY-MM-DD; a malformed date fails construction.
func NewPrescriptionMedication(name, dosage, frequency string, dailyDosage, stock int, details PrescriptionDetails) (*Medication, error) {
	if _, err := time.Parse(dateLayout, details.PrescriptionDate); err != nil {
		return nil, fmt.Errorf("prescription date %q: %w", details.PrescriptionDate, ErrInvalidDate)
	}
	if _, err := time.Parse(dateLayout, details.ExpirationDate); err != nil {
		return nil, fmt.Errorf("expiration date %q: %w", details.ExpirationDate, ErrInvalidDate)
	}
	med := NewMedication(name, dosage, frequency, dailyDosage, stock)
	med.Prescription = &details
	return med, nil
}

// IsPrescription reports whether this is the prescription variant.
func (m *Medication) IsPrescription() bool {
	return m.Prescription != nil
}

// DaysRemaining forecasts how many whole days the current stock lasts.
func (m *Medication) DaysRemaining() (int, error) {
	if m.DailyDosage <= 0 {
		return 0, ErrInvalidDailyDosage
	}
	return m.Stock / m.DailyDosage, nil
}

// ApplyStockDelta commits stock + delta. Negative deltas record
// consumption, positive deltas replenishment. A delta that would drive
// stock negative is rejected without mutating.
func (m *Medication) ApplyStockDelta(delta int) bool {
	if m.Stock+delta < 0 {
		return false
	}
	m.Stock += delta
	return true
}

// Info returns a one-line human-readable description.
func (m *Medication) Info() string {
	base := fmt.Sprintf("Medication: %s, Dosage: %s, Frequency: %s, Daily Dosage: %d, Stock: %d",
		m.Name, m.Dosage, m.Frequency, m.DailyDosage, m.Stock)
	if p := m.Prescription; p != nil {
		return fmt.Sprintf("%s, Prescribed by: %s, Prescription Date: %s, Indication: %s, Warnings: %s, Expiration Date: %s",
			base, p.DoctorName, p.PrescriptionDate, p.Indication, p.Warnings, p.ExpirationDate)
	}
	return base
}

// IsExpired reports whether the prescription's expiration date lies
// strictly before now. An unparseable date counts as expired.
func (p *PrescriptionDetails) IsExpired(now time.Time) bool {
	expiry, err := time.Parse(dateLayout, p.ExpirationDate)
	if err != nil {
		return true
	}
	return now.After(expiry)
}

// toRow flattens the medication into its persisted column mapping.
func (m *Medication) toRow() storage.Row {
	row := storage.Row{
		"med_id":          strconv.Itoa(m.ID),
		"name":            m.Name,
		"dosage":          m.Dosage,
		"frequency":       m.Frequency,
		"daily_dosage":    strconv.Itoa(m.DailyDosage),
		"stock":           strconv.Itoa(m.Stock),
		"is_prescription": strconv.FormatBool(m.IsPrescription()),
	}
	if p := m.Prescription; p != nil {
		row["doctor_name"] = p.DoctorName
		row["prescription_date"] = p.PrescriptionDate
		row["indication"] = p.Indication
		row["warnings"] = p.Warnings
		row["expiration_date"] = p.ExpirationDate
	}
	return row
}

// medicationFromRow reconstructs a medication from its persisted mapping.
// Any malformed field makes the whole row unusable; the caller skips it.
func medicationFromRow(row storage.Row) (*Medication, error) {
	id, err := strconv.Atoi(row["med_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid med_id %q: %w", row["med_id"], err)
	}
	dailyDosage, err := strconv.Atoi(row["daily_dosage"])
	if err != nil {
		return nil, fmt.Errorf("invalid daily_dosage %q: %w", row["daily_dosage"], err)
	}
	stock, err := strconv.Atoi(row["stock"])
	if err != nil {
		return nil, fmt.Errorf("invalid stock %q: %w", row["stock"], err)
	}
	isPrescription, err := strconv.ParseBool(row["is_prescription"])
	if err != nil {
		return nil, fmt.Errorf("invalid is_prescription %q: %w", row["is_prescription"], err)
	}

	var med *Medication
	if isPrescription {
		med, err = NewPrescriptionMedication(
			row["name"], row["dosage"], row["frequency"], dailyDosage, stock,
			PrescriptionDetails{
				DoctorName:       row["doctor_name"],
				PrescriptionDate: row["prescription_date"],
				Indication:       row["indication"],
				Warnings:         row["warnings"],
				ExpirationDate:   row["expiration_date"],
			},
		)
		if err != nil {
			return nil, err
		}
	} else {
		med = NewMedication(row["name"], row["dosage"], row["frequency"], dailyDosage, stock)
	}
	med.ID = id
	return med, nil
}
