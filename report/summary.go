// Package report renders ledger snapshots as terminal tables, CSV, JSON,
// PDF and SVG badges.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

// OverLimit reports whether spending exceeds a positive limit
func OverLimit(s ledger.Summary, limit float64) bool {
	return limit > 0 && s.SpendingPercentage > limit
}

// PrintSummary prints the budget header and an entry table
func PrintSummary(w io.Writer, title string, snap ledger.Snapshot, limit float64) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	s := snap.Summary

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cyan(title))
	fmt.Fprintln(w, "  "+strings.Repeat("─", 35))
	fmt.Fprintln(w)

	budget := models.FormatBudget(s.Budget)
	if s.Budget.IsNegative() {
		budget = red(budget)
	} else {
		budget = green(budget)
	}
	fmt.Fprintf(w, "  %s    %s\n", bold("Budget:"), budget)
	fmt.Fprintf(w, "  %s    %s\n", bold("Income:"), green(models.FormatAmount(s.TotalIncome, models.Income)))
	fmt.Fprintf(w, "  %s  %s (%s)\n", bold("Expenses:"),
		red(models.FormatAmount(s.TotalExpense, models.Expense)),
		models.FormatPercentage(s.SpendingPercentage))

	if s.Stale {
		fmt.Fprintf(w, "  %s Totals are out of date.\n", yellow("⚠"))
	}
	if OverLimit(s, limit) {
		fmt.Fprintf(w, "  %s Spending %s of income, over the %s limit.\n",
			red("✗"), models.FormatPercentage(s.SpendingPercentage), models.FormatPercentage(limit))
	}
	fmt.Fprintln(w)

	entries := allEntries(snap)
	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s No entries.\n\n", yellow("⚠"))
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "ID", "Description", "Value", "%"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
		tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
	)

	for _, e := range entries {
		desc := e.Description
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}

		valueColor := tablewriter.FgGreenColor
		pct := ""
		if e.Category == models.Expense {
			valueColor = tablewriter.FgRedColor
			pct = models.FormatPercentage(e.Percentage)
		}

		table.Rich([]string{
			e.Category.Short(),
			fmt.Sprintf("%d", e.ID),
			desc,
			models.FormatAmount(e.Value, e.Category),
			pct,
		}, []tablewriter.Colors{
			{tablewriter.FgMagentaColor},
			{},
			{},
			{valueColor},
			{},
		})
	}

	table.Render()
	fmt.Fprintln(w)
}
