package cmd

import (
	"github.com/spf13/cobra"

	"github.com/indiekitai/budget-cli/db"
	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/ui"
)

var tuiName string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive terminal UI",
	Long: `Launch an interactive budget session with vim-style keybindings.
The session starts empty and is gone when you quit unless you archive it.

Keybindings:
  j/k     - Navigate up/down
  g/G     - Go to first/last entry
  i       - Add income
  e       - Add expense
  d       - Delete selected entry
  s       - Archive the session
  r       - Recompute totals
  q/Esc   - Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := ui.Options{SpendingLimit: cfg.SpendingLimit}
		if err := openArchive(); err != nil {
			logger.Warn("archive unavailable, 's' disabled", "error", err)
		} else {
			opts.Archive = func(snap ledger.Snapshot) (string, error) {
				return db.ArchiveSession(tuiName, snap)
			}
		}
		return ui.Run(newLedger(), opts)
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiName, "name", "n", "", "Name for archived sessions")
}
