package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"familymedt/internal/app"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
// Subcommands that read a member's inventory select that member first,
// which also refreshes their low-stock alerts.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "members":
		result, err := svc.ListMembers(ctx)
		if err != nil {
			log.Fatalf("Failed to list members: %v", err)
		}
		printMembers(result)

	case "report":
		if len(args) < 2 {
			log.Fatal("Usage: familymedt report <member>")
		}
		selectMember(ctx, svc, args[1])
		result, err := svc.GetStockReport(ctx)
		if err != nil {
			log.Fatalf("Failed to build stock report: %v", err)
		}
		printStockReport(result)

	case "rx-report":
		if len(args) < 2 {
			log.Fatal("Usage: familymedt rx-report <member>")
		}
		selectMember(ctx, svc, args[1])
		result, err := svc.GetPrescriptionReport(ctx)
		if err != nil {
			log.Fatalf("Failed to build prescription report: %v", err)
		}
		printPrescriptionReport(result)

	case "alerts", "reminders":
		member := ""
		if len(args) >= 2 {
			member = args[1]
		}
		result, err := svc.ListAlerts(ctx, member)
		if err != nil {
			log.Fatalf("Failed to list reminders: %v", err)
		}
		printAlerts(result)

	case "lowstock":
		result, err := svc.CheckHouseholdLowStock(ctx)
		if err != nil {
			log.Fatalf("Failed to check low stock: %v", err)
		}
		printHouseholdLowStock(result)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: members, report, rx-report, alerts, lowstock", args[0])
	}
}

func selectMember(ctx context.Context, svc app.ApplicationService, name string) {
	result, err := svc.SwitchMember(ctx, name)
	if err != nil {
		log.Fatalf("Failed to select member: %v", err)
	}
	if !result.Found {
		log.Fatalf("Member %s not found", name)
	}
}

func printMembers(result *app.MemberListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("  HOUSEHOLD MEMBERS")
	fmt.Println(strings.Repeat("=", 40))
	if len(result.Members) == 0 {
		fmt.Println("  No members registered.")
	}
	for _, m := range result.Members {
		fmt.Printf("  %s\n", m.Name)
	}
	fmt.Println(strings.Repeat("=", 40))
}

func printStockReport(result *app.StockReportResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  STOCK REPORT — %s\n", result.Member)
	fmt.Println(strings.Repeat("=", 62))
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
	for _, l := range result.Lines {
		fmt.Printf("  [%d] %s — prescribed by %s on %s, expires %s\n",
			l.MedID, l.Name, l.DoctorName, l.PrescriptionDate, l.ExpirationDate)
		fmt.Printf("      Indication: %s  Warnings: %s\n", l.Indication, l.Warnings)
	}
	fmt.Println(strings.Repeat("=", 70))
}

func printAlerts(result *app.AlertListResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println("  ACTIVE REMINDERS")
	fmt.Println(strings.Repeat("=", 62))
	if len(result.Alerts) == 0 {
		fmt.Println("  No active reminders.")
	}
	for _, a := range result.Alerts {
		fmt.Printf("  %-12s %s\n", a.Member, a.Message)
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printHouseholdLowStock(result *app.HouseholdLowStockResult) {
	fmt.Println()
	if len(result.Entries) == 0 {
		fmt.Println("No low-stock medications in the household.")
		return
	}
	for _, e := range result.Entries {
		fmt.Printf("%-12s [%d] %s — %d days left\n", e.Member, e.MedID, e.Name, e.DaysLeft)
	}
}
