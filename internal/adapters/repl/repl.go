package repl

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"familymedt/internal/app"
)

// Run starts the interactive REPL loop. It reads slash commands from
// reader and dispatches them deterministically against the application
// service. On exit it flushes everything to storage.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	fmt.Println("FamilyMedT — household medication tracker")
	fmt.Println("Add a member with /add-member, then /switch to them. Type /help for all commands.")
	fmt.Println(strings.Repeat("-", 70))

	// Surface anything that was already low when the app last ran.
	if result, err := svc.ListAlerts(ctx, ""); err == nil && len(result.Alerts) > 0 {
		printAlerts(result, "")
	}

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "add-member":
			if len(args) < 1 {
				fmt.Println("Usage: /add-member <name>")
				return nil
			}
			result, err := svc.AddMember(ctx, args[0])
			if err != nil {
				return err
			}
			if !result.Created {
				fmt.Printf("Member %s already exists.\n", result.Name)
				return nil
			}
			fmt.Printf("Member %s added.\n", result.Name)

		case "switch":
			if len(args) < 1 {
				fmt.Println("Usage: /switch <name>")
				return nil
			}
			result, err := svc.SwitchMember(ctx, args[0])
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Printf("Member %s not found.\n", result.Name)
				return nil
			}
			fmt.Printf("Switched to %s.\n", result.Name)
			if alerts, err := svc.ListAlerts(ctx, result.Name); err == nil && len(alerts.Alerts) > 0 {
				printAlerts(alerts, result.Name)
			}

		case "members":
			result, err := svc.ListMembers(ctx)
			if err != nil {
				return err
			}
			printMembers(result)

		case "del-member":
			if len(args) < 1 {
				fmt.Println("Usage: /del-member <name>")
				return nil
			}
			result, err := svc.DeleteMember(ctx, args[0])
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Printf("Member %s not found.\n", result.Name)
				return nil
			}
			fmt.Printf("Member %s and their inventory deleted.\n", result.Name)

		case "add-med":
			handleAddMedication(ctx, reader, svc)

		case "update":
			if len(args) < 2 {
				fmt.Println("Usage: /update <med-id> <delta>")
				fmt.Println("  Negative delta records doses taken, positive records a refill.")
				return nil
			}
			medID, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("Invalid medication id: %s\n", args[0])
				return nil
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Printf("Invalid delta: %s\n", args[1])
				return nil
			}
			result, err := svc.UpdateStock(ctx, medID, delta)
			if err != nil {
				return err
			}
			if !result.Applied {
				fmt.Printf("Update rejected for medication %d (unknown id or insufficient stock).\n", medID)
				return nil
			}
			fmt.Printf("Stock updated for medication %d.\n", medID)

		case "del-med":
			if len(args) < 1 {
				fmt.Println("Usage: /del-med <med-id>")
				return nil
			}
			medID, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Printf("Invalid medication id: %s\n", args[0])
				return nil
			}
			result, err := svc.DeleteMedication(ctx, medID)
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Printf("Medication %d not found.\n", medID)
				return nil
			}
			fmt.Printf("Medication %d deleted.\n", medID)

		case "report":
			result, err := svc.GetStockReport(ctx)
			if err != nil {
				return err
			}
			printStockReport(result)

		case "rx-report", "prescriptions":
			result, err := svc.GetPrescriptionReport(ctx)
			if err != nil {
				return err
			}
			printPrescriptionReport(result)

		case "lowstock":
			result, err := svc.CheckLowStock(ctx)
			if err != nil {
				return err
			}
			printLowStock(result)

		case "lowstock-all":
			result, err := svc.CheckHouseholdLowStock(ctx)
			if err != nil {
				return err
			}
			printHouseholdLowStock(result)

		case "reminders", "alerts":
			member := ""
			if len(args) > 0 {
				member = args[0]
			}
			result, err := svc.ListAlerts(ctx, member)
			if err != nil {
				return err
			}
			printAlerts(result, member)

		case "save":
			if err := svc.SaveAll(ctx); err != nil {
				return err
			}
			fmt.Println("All data saved.")

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		prompt := "> "
		if active := svc.ActiveMember(); active != "" {
			prompt = fmt.Sprintf("[%s] > ", active)
		}
		fmt.Printf("\n%s", prompt)
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if readErr != nil {
				break
			}
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Println("Commands start with /  (type /help)")
			continue
		}

		if err := dispatchSlash(input); err != nil {
			if err == errExit {
				break
			}
			fmt.Printf("Error: %v\n", err)
		}
		if readErr != nil {
			break
		}
	}

	if err := svc.SaveAll(ctx); err != nil {
		fmt.Printf("Warning: failed to save on exit: %v\n", err)
	}
	fmt.Println("Goodbye!")
}
