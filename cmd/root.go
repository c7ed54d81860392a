package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/config"
	"github.com/indiekitai/budget-cli/console"
	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/logging"
)

var (
	cfgFile string
	noColor bool

	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget - Track income and expenses for one session",
	Long: `Budget is a terminal tool for keeping a quick tally of income and
expenses. Each session starts empty: add entries, see the remaining budget
and what share of income every expense takes.

Finished sessions can be archived to a local SQLite file and exported later.

Examples:
  budget tui
  budget run march.csv
  budget run march.csv --archive --name march
  budget history
  budget export 3f2a --format pdf --output march.pdf
  budget serve --port 3000`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		console.SetOutput(cmd.ErrOrStderr())
		if noColor {
			console.Plain()
		}
		return loadSettings()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		db.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.budget-cli/config.json)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured status output")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(badgeCmd)
	rootCmd.AddCommand(limitCmd)
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultPath()
}

func loadSettings() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	logger = logging.New(logging.Config{
		Level:     c.Level(),
		Component: "budget",
		Writer:    os.Stderr,
	})
	logger.Debug("configuration loaded", "path", path, "archive", c.ArchivePath)
	return nil
}

// openArchive opens the session archive; only commands that read or
// write history call it
func openArchive() error {
	if err := db.Init(cfg.ArchivePath); err != nil {
		return fmt.Errorf("failed to open archive %s: %w", cfg.ArchivePath, err)
	}
	return nil
}

func newLedger() *ledger.Ledger {
	return ledger.New(ledger.WithLogger(logger))
}
