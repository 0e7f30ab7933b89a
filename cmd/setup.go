package cmd

import (
	"fmt"

	"finplan/internal/cli"
	"finplan/internal/config"
	"finplan/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println("  Welcome to finplan!")
	fmt.Println("  Let's capture your accounts, income, bills, and cards.")
	fmt.Println()

	cfg := &model.Config{Settings: model.DefaultSettings()}

	if err := promptSettings(&cfg.Settings); err != nil {
		return err
	}

	for {
		acc, more, err := promptAccount()
		if err != nil {
			return err
		}
		cfg.Accounts = append(cfg.Accounts, acc)
		if !more {
			break
		}
	}

	for {
		var more bool
		if err := confirm("Add an income source?", &more); err != nil {
			return err
		}
		if !more {
			break
		}
		inc, err := promptIncome(cfg.Accounts)
		if err != nil {
			return err
		}
		cfg.Incomes = append(cfg.Incomes, inc)
	}

	for {
		var more bool
		if err := confirm("Add a recurring bill?", &more); err != nil {
			return err
		}
		if !more {
			break
		}
		bill, err := promptBill(cfg.Accounts)
		if err != nil {
			return err
		}
		cfg.Bills = append(cfg.Bills, bill)
	}

	for {
		var more bool
		if err := confirm("Add a credit card?", &more); err != nil {
			return err
		}
		if !more {
			break
		}
		cc, err := promptCard(cfg.Accounts)
		if err != nil {
			return err
		}
		cfg.CreditCards = append(cfg.CreditCards, cc)
	}

	path := config.DefaultPath()
	if flagConfig != "" {
		path = flagConfig
	}
	if err := saveAndRecord(cfg, path, model.Today()); err != nil {
		return err
	}

	fmt.Printf("\n  %s\n", cli.Good("Snapshot saved to "+path))
	fmt.Println("  Run `finplan` to see today's plan.")
	fmt.Println()
	return nil
}

func promptSettings(s *model.Settings) error {
	efTarget := s.EmergencyFundTarget.String()
	horizonStr := fmt.Sprintf("%d", s.PlanningHorizonDays)
	strategy := string(s.Priority)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Emergency fund target").
			Validate(validMoney).
			Value(&efTarget),
		huh.NewInput().
			Title("Planning horizon (days, 1-30)").
			Validate(validInt(1, 30)).
			Value(&horizonStr),
		huh.NewSelect[string]().
			Title("Debt payoff strategy").
			Options(
				huh.NewOption("Avalanche — highest APR first", string(model.Avalanche)),
				huh.NewOption("Snowball — lowest balance first", string(model.Snowball)),
				huh.NewOption("Balanced — blend of both", string(model.Balanced)),
			).
			Value(&strategy),
	))
	if err := form.Run(); err != nil {
		return err
	}

	s.EmergencyFundTarget = decimal.RequireFromString(efTarget)
	fmt.Sscanf(horizonStr, "%d", &s.PlanningHorizonDays)
	s.Priority = model.Strategy(strategy)
	return nil
}

func promptAccount() (model.Account, bool, error) {
	acc := model.Account{ID: uuid.NewString(), Type: model.AccountChecking}
	accType := string(acc.Type)
	balance, minimum := "0", "0"
	more := false

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Account name").Validate(nonEmpty).Value(&acc.Name),
		huh.NewSelect[string]().
			Title("Account type").
			Options(
				huh.NewOption("Checking", string(model.AccountChecking)),
				huh.NewOption("Savings", string(model.AccountSavings)),
				huh.NewOption("Cash", string(model.AccountCash)),
			).
			Value(&accType),
		huh.NewInput().Title("Current balance").Validate(validMoney).Value(&balance),
		huh.NewInput().Title("Minimum balance to maintain").Validate(validMoney).Value(&minimum),
		huh.NewConfirm().Title("Add another account?").Value(&more),
	))
	if err := form.Run(); err != nil {
		return acc, false, err
	}

	acc.Type = model.AccountType(accType)
	acc.Balance = decimal.RequireFromString(balance)
	acc.MinimumBalance = decimal.RequireFromString(minimum)
	return acc, more, nil
}

func promptIncome(accounts []model.Account) (model.Income, error) {
	inc := model.Income{ID: uuid.NewString()}
	amount := "0"
	freq := string(model.Biweekly)
	nextDate := model.Today().String()
	split := false

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Income source").Validate(nonEmpty).Value(&inc.Source),
		huh.NewInput().Title("Amount per deposit").Validate(validMoney).Value(&amount),
		huh.NewSelect[string]().Title("Frequency").Options(frequencyOptions()...).Value(&freq),
		huh.NewInput().Title("Next deposit date (YYYY-MM-DD)").Validate(validDate).Value(&nextDate),
		huh.NewSelect[string]().Title("Deposit account").Options(accountOptions(accounts)...).Value(&inc.DepositAccount),
		huh.NewConfirm().Title("Split the deposit across accounts?").Value(&split),
	))
	if err := form.Run(); err != nil {
		return inc, err
	}

	inc.Amount = decimal.RequireFromString(amount)
	inc.Frequency = model.Frequency(freq)
	inc.NextDate = model.MustDate(nextDate)

	if split && len(accounts) > 1 {
		splits, err := promptSplits(accounts, inc.Amount)
		if err != nil {
			return inc, err
		}
		inc.Splits = splits
	}
	return inc, nil
}

// promptSplits asks for a fixed amount per account; the last account
// with a blank amount becomes the remainder entry.
func promptSplits(accounts []model.Account, total decimal.Decimal) ([]model.IncomeSplit, error) {
	var splits []model.IncomeSplit
	allocated := decimal.Zero

	for i, acc := range accounts {
		remaining := total.Sub(allocated)
		if !remaining.IsPositive() {
			break
		}

		amountStr := ""
		title := fmt.Sprintf("Amount to %s (%s unallocated, blank = remainder)", acc.Name, cli.FormatMoney(remaining))
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(title).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validMoney(s)
				}).
				Value(&amountStr),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}

		if amountStr == "" {
			splits = append(splits, model.IncomeSplit{AccountID: acc.ID})
			break
		}

		amount := decimal.RequireFromString(amountStr)
		if amount.IsPositive() {
			splits = append(splits, model.IncomeSplit{AccountID: acc.ID, Amount: &amount})
			allocated = allocated.Add(amount)
		}

		// Last account absorbs the remainder implicitly.
		if i == len(accounts)-1 && allocated.LessThan(total) {
			splits = append(splits, model.IncomeSplit{AccountID: acc.ID})
		}
	}
	return splits, nil
}

func promptBill(accounts []model.Account) (model.Bill, error) {
	bill := model.Bill{ID: uuid.NewString(), Frequency: model.Monthly}
	amount, dueDay := "0", "1"
	freq := string(model.Monthly)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Bill name").Validate(nonEmpty).Value(&bill.Name),
		huh.NewInput().Title("Amount").Validate(validMoney).Value(&amount),
		huh.NewInput().Title("Due day of month (1-31)").Validate(validInt(1, 31)).Value(&dueDay),
		huh.NewSelect[string]().
			Title("Frequency").
			Options(
				huh.NewOption("Monthly", string(model.Monthly)),
				huh.NewOption("Semi-monthly", string(model.SemiMonthly)),
				huh.NewOption("Quarterly", string(model.Quarterly)),
				huh.NewOption("Annual", string(model.Annual)),
			).
			Value(&freq),
		huh.NewConfirm().Title("On autopay?").Value(&bill.Autopay),
		huh.NewSelect[string]().Title("Paid from").Options(accountOptions(accounts)...).Value(&bill.PaymentAccount),
		huh.NewInput().Title("Category (optional)").Value(&bill.Category),
	))
	if err := form.Run(); err != nil {
		return bill, err
	}

	bill.Amount = decimal.RequireFromString(amount)
	fmt.Sscanf(dueDay, "%d", &bill.DueDay)
	bill.Frequency = model.Frequency(freq)
	return bill, nil
}

func promptCard(accounts []model.Account) (model.CreditCard, error) {
	cc := model.CreditCard{ID: uuid.NewString()}
	balance, limit, apr, dueDay, minPayment := "0", "0", "0", "1", "0"

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Card name").Validate(nonEmpty).Value(&cc.Name),
		huh.NewInput().Title("Current balance").Validate(validMoney).Value(&balance),
		huh.NewInput().Title("Credit limit").Validate(validMoney).Value(&limit),
		huh.NewInput().Title("APR as a percentage (e.g. 18.99)").Validate(validMoney).Value(&apr),
		huh.NewInput().Title("Due day of month (1-31)").Validate(validInt(1, 31)).Value(&dueDay),
		huh.NewInput().Title("Minimum payment").Validate(validMoney).Value(&minPayment),
		huh.NewSelect[string]().Title("Paid from").Options(accountOptions(accounts)...).Value(&cc.PaymentAccount),
	))
	if err := form.Run(); err != nil {
		return cc, err
	}

	cc.Balance = decimal.RequireFromString(balance)
	cc.CreditLimit = decimal.RequireFromString(limit)
	cc.APR = decimal.RequireFromString(apr).Div(decimal.NewFromInt(100))
	fmt.Sscanf(dueDay, "%d", &cc.DueDay)
	cc.MinimumPayment = decimal.RequireFromString(minPayment)
	return cc, nil
}

func frequencyOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Weekly", string(model.Weekly)),
		huh.NewOption("Biweekly", string(model.Biweekly)),
		huh.NewOption("Semi-monthly", string(model.SemiMonthly)),
		huh.NewOption("Monthly", string(model.Monthly)),
	}
}

func accountOptions(accounts []model.Account) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(accounts))
	for _, acc := range accounts {
		opts = append(opts, huh.NewOption(acc.Name, acc.ID))
	}
	return opts
}

func confirm(title string, out *bool) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(out),
	)).Run()
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validMoney(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validDate(s string) error {
	_, err := model.ParseDate(s)
	return err
}

func validInt(min, max int) func(string) error {
	return func(s string) error {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}
