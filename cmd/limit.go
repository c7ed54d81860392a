package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/config"
	"github.com/indiekitai/budget-cli/models"
)

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Manage the spending limit",
	Long: `Set, view, and clear the spending limit: the share of income that
expenses may take before summaries and the TUI flag the session in red.

Examples:
  budget limit set 80         # Warn when expenses exceed 80% of income
  budget limit status         # Show the current limit
  budget limit clear          # Remove the limit`,
}

var limitSetCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Set the spending limit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLimitSet,
}

var limitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the spending limit",
	RunE:  runLimitStatus,
}

var limitClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the spending limit",
	RunE:  runLimitClear,
}

func init() {
	limitCmd.AddCommand(limitSetCmd)
	limitCmd.AddCommand(limitStatusCmd)
	limitCmd.AddCommand(limitClearCmd)
}

// loadFileConfig reads the config file alone, so environment overrides
// are never written back
func loadFileConfig() (string, *config.Config, error) {
	path, err := configPath()
	if err != nil {
		return "", nil, err
	}
	c, err := config.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, c, nil
}

func runLimitSet(cmd *cobra.Command, args []string) error {
	percent, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
	if err != nil {
		return fmt.Errorf("invalid percent: %s", args[0])
	}
	if percent <= 0 {
		return fmt.Errorf("limit must be positive")
	}

	path, c, err := loadFileConfig()
	if err != nil {
		return err
	}
	c.SpendingLimit = percent
	if err := config.Save(path, c); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "\n  %s Spending limit set: %s of income\n\n", green("✓"), models.FormatPercentage(percent))
	return nil
}

func runLimitStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if cfg.SpendingLimit <= 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "\n  %s No spending limit set. Use 'budget limit set <percent>' to set one.\n\n", yellow("⚠"))
		return nil
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "\n  %s %s of income\n\n", cyan("Spending limit:"), models.FormatPercentage(cfg.SpendingLimit))
	return nil
}

func runLimitClear(cmd *cobra.Command, args []string) error {
	path, c, err := loadFileConfig()
	if err != nil {
		return err
	}
	if c.SpendingLimit == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No spending limit to clear.")
		return nil
	}

	c.SpendingLimit = 0
	if err := config.Save(path, c); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Spending limit cleared\n", green("✓"))
	return nil
}
