package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"finplan/internal/config"
	"finplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagDate     string
	flagDays     int
	flagStrategy string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "finplan",
	Short: "Personal cash-flow planner",
	Long:  "Plan daily money moves: bills, income, emergency fund, and credit card paydown.",
	RunE:  runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Snapshot file (default: newest in config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Plan date, YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Horizon in days (default: from settings)")
	rootCmd.PersistentFlags().StringVarP(&flagStrategy, "strategy", "s", "", "Payoff strategy: avalanche, snowball, balanced")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// snapshotPath resolves the snapshot to operate on: the --config flag,
// or the newest dated snapshot in the config directory.
func snapshotPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.MostRecent(config.Dir())
}

// loadSnapshot is the shared loading path used by all commands.
func loadSnapshot() (*model.Config, string, error) {
	path := snapshotPath()
	if !config.Exists(path) {
		return nil, path, fmt.Errorf("no snapshot at %s — run `finplan setup` first", path)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Using snapshot %s\n", filepath.Base(path))
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// planDate resolves the --date flag, defaulting to today.
func planDate() (model.Date, error) {
	if flagDate == "" {
		return model.Today(), nil
	}
	return model.ParseDate(flagDate)
}

// horizon resolves the --days flag against the snapshot settings.
func horizon(cfg *model.Config) int {
	if flagDays > 0 {
		return flagDays
	}
	return cfg.Settings.PlanningHorizonDays
}

// strategy resolves the --strategy flag against the snapshot settings.
func strategy(cfg *model.Config) (model.Strategy, error) {
	if flagStrategy == "" {
		return cfg.Settings.Priority, nil
	}
	return model.ParseStrategy(flagStrategy)
}

// ledgerPath is where the snapshot history database lives.
func ledgerPath() string {
	return filepath.Join(config.Dir(), "history.db")
}
