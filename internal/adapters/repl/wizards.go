package repl

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"familymedt/internal/app"
)

// handleAddMedication runs an interactive medication entry session.
func handleAddMedication(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService) {
	if svc.ActiveMember() == "" {
		fmt.Println("Select a member first with /switch <name>.")
		return
	}

	prompt := func(label string) string {
		fmt.Printf("  %s: ", label)
		raw, _ := reader.ReadString('\n')
		return strings.TrimSpace(raw)
	}

	promptInt := func(label string) (int, bool) {
		for {
			raw := prompt(label)
			if strings.ToLower(raw) == "cancel" {
				return 0, false
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				fmt.Println("  Enter a whole number (or 'cancel' to abort).")
				continue
			}
			return n, true
		}
	}

	fmt.Printf("Adding a medication for %s. Type 'cancel' at a prompt to abort.\n", svc.ActiveMember())

	req := app.AddMedicationRequest{}
	req.Name = prompt("Name")
	if strings.ToLower(req.Name) == "cancel" || req.Name == "" {
		fmt.Println("Medication entry cancelled.")
		return
	}
	req.Dosage = prompt("Dosage (e.g. 500mg)")
	req.Frequency = prompt("Frequency (e.g. 2 times/day)")

	var ok bool
	if req.DailyDosage, ok = promptInt("Daily dosage (units per day)"); !ok {
		fmt.Println("Medication entry cancelled.")
		return
	}
	if req.Stock, ok = promptInt("Stock (units on hand)"); !ok {
		fmt.Println("Medication entry cancelled.")
		return
	}

	answer := strings.ToLower(prompt("Prescription medication? (y/n)"))
	if answer == "y" || answer == "yes" {
		req.IsPrescription = true
		req.DoctorName = prompt("Doctor name")
		req.PrescriptionDate = prompt("Prescription date (YYYY-MM-DD)")
		req.Indication = prompt("Indication")
		req.Warnings = prompt("Warnings")
		req.ExpirationDate = prompt("Expiration date (YYYY-MM-DD)")
	}

	result, err := svc.AddMedication(ctx, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Medication %s added with ID %d.\n", result.Name, result.MedID)
}
