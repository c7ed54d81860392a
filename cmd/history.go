package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/console"
	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/models"
	"github.com/indiekitai/budget-cli/report"
)

var historyForce bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived sessions",
	Long: `List, show and delete archived sessions.
Session ids may be shortened to any unique prefix.

Examples:
  budget history                    # List archived sessions
  budget history show 3f2a          # Show one session
  budget history delete 3f2a        # Delete a session (with confirmation)
  budget history delete 3f2a -f     # Delete without confirmation`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show an archived session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete an archived session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyDeleteCmd.Flags().BoolVarP(&historyForce, "force", "f", false, "Skip confirmation")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := openArchive(); err != nil {
		return err
	}

	sessions, err := db.ListSessions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "%s No archived sessions. Use 'budget run --archive' or 's' in the TUI.\n", yellow("⚠"))
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Name", "Archived", "Entries", "Income", "Expenses", "Budget", "%"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, s := range sessions {
		budgetColor := tablewriter.FgGreenColor
		if s.Budget.IsNegative() {
			budgetColor = tablewriter.FgRedColor
		}
		table.Rich([]string{
			s.ID[:8],
			s.Name,
			humanize.Time(s.CreatedAt),
			fmt.Sprintf("%d", s.EntryCount),
			models.FormatAmount(s.TotalIncome, models.Income),
			models.FormatAmount(s.TotalExpense, models.Expense),
			models.FormatBudget(s.Budget),
			models.FormatPercentage(s.SpendingPercentage),
		}, []tablewriter.Colors{
			{tablewriter.FgMagentaColor},
			{},
			{},
			{},
			{},
			{},
			{budgetColor},
			{},
		})
	}

	fmt.Fprintln(out)
	table.Render()
	fmt.Fprintln(out)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := openArchive(); err != nil {
		return err
	}

	session, err := db.GetSession(args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Session %s", session.ID[:8])
	if session.Name != "" {
		title += " (" + session.Name + ")"
	}
	title += ", archived " + session.CreatedAt.Local().Format("Jan 2, 2006 15:04")

	report.PrintSummary(cmd.OutOrStdout(), title, session.Snapshot, cfg.SpendingLimit)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := openArchive(); err != nil {
		return err
	}

	session, err := db.GetSession(args[0])
	if err != nil {
		return err
	}

	if !historyForce {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete session %s (%s, %d entries)? [y/N]: ",
			session.ID[:8], session.Name, session.EntryCount)
		var confirm string
		fmt.Fscanln(cmd.InOrStdin(), &confirm)
		if strings.ToLower(confirm) != "y" {
			console.Info("Cancelled")
			return nil
		}
	}

	id, err := db.DeleteSession(session.ID)
	if err != nil {
		return err
	}
	console.Success("Deleted session %s", id[:8])
	return nil
}
