package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/console"
	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/report"
	"github.com/indiekitai/budget-cli/script"
)

var (
	badgeOutput  string
	badgeSession string
)

var badgeCmd = &cobra.Command{
	Use:   "badge [script.csv]",
	Short: "Generate SVG badge showing the budget",
	Long: `Generate an SVG badge displaying the available budget of a replayed
script or an archived session. Similar to shields.io badges, suitable for
README files.

Examples:
  budget badge march.csv                     # Output to stdout
  budget badge --session 3f2a                # Badge for an archived session
  budget badge march.csv --output budget.svg # Save to file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadge,
}

func init() {
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "", "Output file path")
	badgeCmd.Flags().StringVarP(&badgeSession, "session", "s", "", "Archived session id")
}

func runBadge(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (badgeSession != "") {
		return fmt.Errorf("provide either a script file or --session")
	}

	summary, err := badgeSummary(args)
	if err != nil {
		return err
	}
	svg := report.BudgetBadge(summary)

	if badgeOutput != "" {
		if err := os.WriteFile(badgeOutput, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		console.Success("Badge saved to %s", badgeOutput)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), svg)
	return nil
}

func badgeSummary(args []string) (ledger.Summary, error) {
	if badgeSession != "" {
		if err := openArchive(); err != nil {
			return ledger.Summary{}, err
		}
		session, err := db.GetSession(badgeSession)
		if err != nil {
			return ledger.Summary{}, err
		}
		return session.Snapshot.Summary, nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	l := newLedger()
	res, err := script.Run(l, file)
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("failed to replay %s: %w", args[0], err)
	}
	if res.Skipped() > 0 {
		console.Warning("%d rows skipped, run 'budget run %s' for details", res.Skipped(), args[0])
	}
	return l.Summary(), nil
}
