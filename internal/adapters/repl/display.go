package repl

import (
	"fmt"
	"strings"

	"familymedt/internal/app"
)

func printMembers(result *app.MemberListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("  HOUSEHOLD MEMBERS")
	fmt.Println(strings.Repeat("=", 40))
	if len(result.Members) == 0 {
		fmt.Println("  No members yet. Use /add-member <name>.")
		fmt.Println(strings.Repeat("=", 40))
		return
	}
	for _, m := range result.Members {
		marker := " "
		if m.Active {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, m.Name)
	}
	fmt.Println(strings.Repeat("=", 40))
}

func printStockReport(result *app.StockReportResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  STOCK REPORT — %s\n", result.Member)
	fmt.Println(strings.Repeat("=", 62))
	if len(result.Lines) == 0 {
		fmt.Println("  Inventory is empty.")
		fmt.Println(strings.Repeat("=", 62))
		return
	}
	fmt.Printf("  %-5s %-25s %10s %12s\n", "ID", "NAME", "STOCK", "DAYS LEFT")
	fmt.Println(strings.Repeat("-", 62))
	for _, l := range result.Lines {
		days := "?"
		if l.DaysLeftKnown {
			days = fmt.Sprintf("%d", l.DaysLeft)
		}
		fmt.Printf("  %-5d %-25s %10d %12s\n", l.MedID, l.Name, l.Stock, days)
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printPrescriptionReport(result *app.PrescriptionReportResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  PRESCRIPTIONS — %s\n", result.Member)
	fmt.Println(strings.Repeat("=", 70))
	if len(result.Lines) == 0 {
		fmt.Println("  No prescription medications.")
		fmt.Println(strings.Repeat("=", 70))
		return
	}
	for _, l := range result.Lines {
		fmt.Printf("  [%d] %s\n", l.MedID, l.Name)
		fmt.Printf("      Prescribed by %s on %s, expires %s\n", l.DoctorName, l.PrescriptionDate, l.ExpirationDate)
		fmt.Printf("      Indication: %s\n", l.Indication)
		if l.Warnings != "" {
			fmt.Printf("      Warnings: %s\n", l.Warnings)
		}
	}
	fmt.Println(strings.Repeat("=", 70))
}

func printLowStock(result *app.LowStockResult) {
	fmt.Println()
	if len(result.Warnings) == 0 {
		fmt.Printf("No low-stock medications for %s.\n", result.Member)
		return
	}
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  LOW STOCK — %s\n", result.Member)
	fmt.Println(strings.Repeat("=", 62))
	for _, w := range result.Warnings {
		fmt.Printf("  [%d] %s — %d days left\n", w.MedID, w.Name, w.DaysLeft)
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printHouseholdLowStock(result *app.HouseholdLowStockResult) {
	fmt.Println()
	if len(result.Entries) == 0 {
		fmt.Println("No low-stock medications in the household.")
		return
	}
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println("  LOW STOCK — HOUSEHOLD")
	fmt.Println(strings.Repeat("=", 62))
	for _, e := range result.Entries {
		fmt.Printf("  %-12s [%d] %s — %d days left\n", e.Member, e.MedID, e.Name, e.DaysLeft)
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printAlerts(result *app.AlertListResult, member string) {
	fmt.Println()
	header := "  ACTIVE REMINDERS"
	if member != "" {
		header = fmt.Sprintf("  ACTIVE REMINDERS — %s", member)
	}
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println(header)
	fmt.Println(strings.Repeat("=", 62))
	if len(result.Alerts) == 0 {
		fmt.Println("  No active reminders.")
		fmt.Println(strings.Repeat("=", 62))
		return
	}
	for _, a := range result.Alerts {
		fmt.Printf("  %-12s %s\n", a.Member, a.Message)
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printHelp() {
	fmt.Println(`
Member commands:
  /add-member <name>        Add a household member
  /switch <name>            Select the active member
  /members                  List members (* marks active)
  /del-member <name>        Delete a member and their inventory

Medication commands (need an active member):
  /add-med                  Add a medication interactively
  /update <id> <delta>      Adjust stock (negative = taken, positive = refill)
  /del-med <id>             Delete a medication
  /report                   Stock report with day forecasts
  /rx-report                Prescription details
  /lowstock                 Check low stock for the active member

Household commands:
  /lowstock-all             Check low stock for every member
  /reminders [member]       Show active reminders
  /save                     Save everything now
  /exit                     Save and quit`)
}
