package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/config"
	"finplan/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var paidCmd = &cobra.Command{
	Use:   "paid",
	Short: "Mark a bill as paid for the current period",
	Long:  "Marks a non-autopay bill as paid so it drops out of upcoming projections.",
	RunE:  runPaid,
}

func init() {
	rootCmd.AddCommand(paidCmd)
}

func runPaid(_ *cobra.Command, _ []string) error {
	cfg, path, err := loadSnapshot()
	if err != nil {
		return err
	}

	today := model.Today()

	var options []huh.Option[string]
	for _, bill := range cfg.Bills {
		if bill.Autopay {
			continue
		}
		status := "UNPAID"
		if bill.LastPaid != nil && bill.LastPaid.SameMonth(today) {
			status = "paid " + bill.LastPaid.String()
		}
		label := fmt.Sprintf("%s — %s (due day %d) [%s]",
			bill.Name, cli.FormatMoney(bill.Amount), bill.DueDay, status)
		options = append(options, huh.NewOption(label, bill.ID))
	}
	if len(options) == 0 {
		fmt.Println("\n  No non-autopay bills in this snapshot.")
		return nil
	}

	var billID string
	useToday := true
	var dateStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which bill did you pay?").
				Options(options...).
				Value(&billID),
			huh.NewConfirm().
				Title("Paid today?").
				Value(&useToday),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Payment date").
				Placeholder(today.String()).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := model.ParseDate(s)
					return err
				}).
				Value(&dateStr),
		).WithHideFunc(func() bool { return useToday }),
	)
	if err := form.Run(); err != nil {
		return err
	}

	paidOn := today
	if !useToday && dateStr != "" {
		if paidOn, err = model.ParseDate(dateStr); err != nil {
			return err
		}
	}

	for i := range cfg.Bills {
		if cfg.Bills[i].ID == billID {
			d := paidOn
			cfg.Bills[i].LastPaid = &d

			if err := saveAndRecord(cfg, path, today); err != nil {
				return err
			}
			fmt.Printf("\n  %s\n\n", cli.Good(fmt.Sprintf("Marked %s as paid on %s", cfg.Bills[i].Name, paidOn)))
			return nil
		}
	}
	return fmt.Errorf("bill %s not found in snapshot", billID)
}

// saveAndRecord backs up the previous snapshot, saves the new one, and
// appends a summary row to the history ledger. Ledger failures do not
// block the save.
func saveAndRecord(cfg *model.Config, path string, asOf model.Date) error {
	if config.Exists(path) {
		if _, err := config.Backup(path, asOf); err != nil && !flagQuiet {
			fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("backup failed: %v", err)))
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	recordHistory(cfg, path, asOf)
	return nil
}
