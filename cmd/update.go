package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Quick balance refresh",
	Long:  "Walk through accounts and credit cards updating balances, then save a new snapshot.",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(_ *cobra.Command, _ []string) error {
	cfg, path, err := loadSnapshot()
	if err != nil {
		return err
	}

	fmt.Println()
	for i := range cfg.Accounts {
		acc := &cfg.Accounts[i]
		updated, err := promptBalance(
			fmt.Sprintf("%s balance (was %s)", acc.Name, cli.FormatMoney(acc.Balance)),
			acc.Balance,
		)
		if err != nil {
			return err
		}
		acc.Balance = updated
	}

	for i := range cfg.CreditCards {
		cc := &cfg.CreditCards[i]
		updated, err := promptBalance(
			fmt.Sprintf("%s balance (was %s)", cc.Name, cli.FormatMoney(cc.Balance)),
			cc.Balance,
		)
		if err != nil {
			return err
		}
		cc.Balance = updated
	}

	if err := saveAndRecord(cfg, path, model.Today()); err != nil {
		return err
	}

	fmt.Printf("\n  %s\n\n", cli.Good("Balances updated and snapshot saved."))
	return nil
}

func promptBalance(title string, current decimal.Decimal) (decimal.Decimal, error) {
	s := current.StringFixed(2)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Validate(validMoney).Value(&s),
	))
	if err := form.Run(); err != nil {
		return current, err
	}
	return decimal.NewFromString(s)
}
