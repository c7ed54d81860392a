package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/console"
	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/report"
	"github.com/indiekitai/budget-cli/script"
)

var (
	runJSON    bool
	runArchive bool
	runName    string
)

var runCmd = &cobra.Command{
	Use:   "run <script.csv>",
	Short: "Replay a session script and print the summary",
	Long: `Replay a CSV session script into a fresh budget and print the result.

CSV format:
  action,type,description,value,id
  add,inc,Salary,2000,
  add,exp,Rent,800,
  add,exp,Food,150.50,
  delete,exp,,,1

Rows that cannot be applied are reported and skipped.

Examples:
  budget run march.csv
  budget run march.csv --json
  budget run march.csv --archive --name march`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runJSON, "json", "j", false, "Output as JSON")
	runCmd.Flags().BoolVarP(&runArchive, "archive", "a", false, "Archive the resulting session")
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "Session name (defaults to the script file name)")
}

func runRun(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	l := newLedger()
	res, err := script.Run(l, file)
	if err != nil {
		return fmt.Errorf("failed to replay %s: %w", filePath, err)
	}

	for _, p := range res.Problems {
		console.Warning("Line %d: %v, skipping", p.Line, p.Err)
	}
	if res.Missing > 0 {
		console.Warning("%d deletes matched no entry", res.Missing)
	}
	logger.Info("script replayed",
		"file", filePath,
		"added", res.Added,
		"deleted", res.Deleted,
		"skipped", res.Skipped(),
	)

	snap := l.Snapshot()

	if runArchive {
		if err := openArchive(); err != nil {
			return err
		}
		name := runName
		if name == "" {
			name = sessionName(filePath)
		}
		id, err := db.ArchiveSession(name, snap)
		if err != nil {
			return err
		}
		console.Success("Archived session %s (%s)", id[:8], name)
	}

	out := cmd.OutOrStdout()
	if runJSON {
		return report.WriteJSON(out, snap)
	}

	report.PrintSummary(out, fmt.Sprintf("Budget (%s)", filepath.Base(filePath)), snap, cfg.SpendingLimit)
	return nil
}

// sessionName derives a session name from a script path
func sessionName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
