package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/console"
	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/report"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export an archived session",
	Long: `Export an archived session as CSV, JSON or PDF.

Examples:
  budget export 3f2a                              # CSV to stdout
  budget export 3f2a --format json                # JSON to stdout
  budget export 3f2a --format pdf -o march.pdf    # PDF report`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format (csv, json, pdf)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	switch format {
	case "csv", "json", "pdf":
	default:
		return fmt.Errorf("invalid format: %s (valid: csv, json, pdf)", exportFormat)
	}

	if err := openArchive(); err != nil {
		return err
	}
	session, err := db.GetSession(args[0])
	if err != nil {
		return err
	}

	var output io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create file: %w", err)
		}
		defer file.Close()
		output = file
	}

	switch format {
	case "json":
		err = report.WriteJSON(output, session.Snapshot)
	case "pdf":
		title := "Budget report"
		if session.Name != "" {
			title += ": " + session.Name
		}
		err = report.WritePDF(output, title, session.Snapshot)
	default:
		err = report.WriteCSV(output, session.Snapshot)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		console.Success("Exported session %s to %s", session.ID[:8], exportOutput)
	}
	return nil
}
