package core_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"familymedt/internal/core"
)

func TestMedication_DaysRemaining(t *testing.T) {
	tests := []struct {
		name        string
		dailyDosage int
		stock       int
		wantDays    int
		wantErr     bool
	}{
		{name: "even division", dailyDosage: 2, stock: 10, wantDays: 5},
		{name: "truncates partial days", dailyDosage: 3, stock: 10, wantDays: 3},
		{name: "zero stock", dailyDosage: 2, stock: 0, wantDays: 0},
		{name: "zero daily dosage", dailyDosage: 0, stock: 10, wantErr: true},
		{name: "negative daily dosage", dailyDosage: -1, stock: 10, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			med := core.NewMedication("Ibuprofen", "200mg", "2 times/day", tc.dailyDosage, tc.stock)
			days, err := med.DaysRemaining()
			if tc.wantErr {
				if !errors.Is(err, core.ErrInvalidDailyDosage) {
					t.Fatalf("expected ErrInvalidDailyDosage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if days != tc.wantDays {
				t.Errorf("expected %d days, got %d", tc.wantDays, days)
			}
		})
	}
}

func TestMedication_ApplyStockDelta(t *testing.T) {
	med := core.NewMedication("Ibuprofen", "200mg", "2 times/day", 2, 10)

	if !med.ApplyStockDelta(-4) {
		t.Fatal("expected consumption within stock to succeed")
	}
	if med.Stock != 6 {
		t.Fatalf("expected stock 6, got %d", med.Stock)
	}

	if med.ApplyStockDelta(-7) {
		t.Fatal("expected overdraw to be rejected")
	}
	if med.Stock != 6 {
		t.Fatalf("rejected delta must not mutate stock, got %d", med.Stock)
	}

	if !med.ApplyStockDelta(-6) {
		t.Fatal("expected draining to exactly zero to succeed")
	}
	if med.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", med.Stock)
	}

	if !med.ApplyStockDelta(30) {
		t.Fatal("expected refill to succeed")
	}
	if med.Stock != 30 {
		t.Fatalf("expected stock 30, got %d", med.Stock)
	}
}

func TestNewPrescriptionMedication_DateValidation(t *testing.T) {
	details := core.PrescriptionDetails{
		DoctorName:       "Dr. Lee",
		PrescriptionDate: "2026-01-15",
		Indication:       "hypertension",
		ExpirationDate:   "2027-01-15",
	}

	med, err := core.NewPrescriptionMedication("Lisinopril", "10mg", "1 time/day", 1, 30, details)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !med.IsPrescription() {
		t.Fatal("expected prescription variant")
	}

	bad := details
	bad.PrescriptionDate = "15/01/2026"
	if _, err := core.NewPrescriptionMedication("Lisinopril", "10mg", "1 time/day", 1, 30, bad); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for malformed prescription date, got %v", err)
	}

	bad = details
	bad.ExpirationDate = "soon"
	if _, err := core.NewPrescriptionMedication("Lisinopril", "10mg", "1 time/day", 1, 30, bad); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate for malformed expiration date, got %v", err)
	}
}

func TestPrescriptionDetails_IsExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	p := core.PrescriptionDetails{ExpirationDate: "2026-12-31"}
	if p.IsExpired(now) {
		t.Error("future expiration must not be expired")
	}

	p = core.PrescriptionDetails{ExpirationDate: "2026-01-01"}
	if !p.IsExpired(now) {
		t.Error("past expiration must be expired")
	}
}

func TestMedication_Info(t *testing.T) {
	med := core.NewMedication("Ibuprofen", "200mg", "2 times/day", 2, 10)
	want := "Medication: Ibuprofen, Dosage: 200mg, Frequency: 2 times/day, Daily Dosage: 2, Stock: 10"
	if got := med.Info(); got != want {
		t.Errorf("plain info mismatch:\n got  %q\n want %q", got, want)
	}

	rx, err := core.NewPrescriptionMedication("Lisinopril", "10mg", "1 time/day", 1, 30, core.PrescriptionDetails{
		DoctorName:       "Dr. Lee",
		PrescriptionDate: "2026-01-15",
		Indication:       "hypertension",
		Warnings:         "dizziness",
		ExpirationDate:   "2027-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info := rx.Info()
	if want := "Prescribed by: Dr. Lee"; !strings.Contains(info, want) {
		t.Errorf("expected %q in %q", want, info)
	}
}
