package server

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.ledger.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, generateHTML(snap, time.Now()))
}

func generateHTML(snap ledger.Snapshot, now time.Time) string {
	sum := snap.Summary

	budgetClass := "green"
	if sum.Budget.IsNegative() {
		budgetClass = "red"
	}

	var rows strings.Builder
	for _, entries := range [][]models.Entry{snap.Income, snap.Expense} {
		for _, e := range entries {
			pct := ""
			class := "inc"
			if e.Category == models.Expense {
				pct = models.FormatPercentage(e.Percentage)
				class = "exp"
			}
			fmt.Fprintf(&rows, `
				<tr>
					<td>%s</td>
					<td>%d</td>
					<td>%s</td>
					<td class="amount %s">%s</td>
					<td>%s</td>
				</tr>`,
				e.Category.Short(),
				e.ID,
				html.EscapeString(e.Description),
				class,
				html.EscapeString(models.FormatAmount(e.Value, e.Category)),
				html.EscapeString(pct),
			)
		}
	}

	entriesHTML := `<p class="empty">No entries yet.</p>`
	if rows.Len() > 0 {
		entriesHTML = fmt.Sprintf(`
			<table class="entries-table">
				<thead>
					<tr><th>Type</th><th>ID</th><th>Description</th><th>Value</th><th>%%</th></tr>
				</thead>
				<tbody>%s</tbody>
			</table>`, rows.String())
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Budget</title>
	<style>
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body {
			font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
			background: #f1f5f9;
			padding: 40px 20px;
			color: #1a1a2e;
		}
		.container { max-width: 640px; margin: 0 auto; }
		.card { background: white; border-radius: 16px; padding: 32px; box-shadow: 0 10px 30px rgba(0,0,0,0.1); }
		.label { font-size: 14px; text-transform: uppercase; letter-spacing: 2px; color: #666; text-align: center; }
		.budget { font-size: 56px; font-weight: 700; text-align: center; margin: 8px 0 20px; }
		.green { color: #155724; }
		.red { color: #b91c1c; }
		.totals { display: flex; justify-content: space-around; margin-bottom: 30px; }
		.totals div { text-align: center; }
		.totals .value { font-size: 20px; font-weight: 600; }
		.entries-table { width: 100%%; border-collapse: collapse; font-size: 14px; }
		.entries-table th { text-align: left; padding: 10px 8px; border-bottom: 2px solid #e2e8f0; color: #666; }
		.entries-table td { padding: 10px 8px; border-bottom: 1px solid #f0f0f0; }
		.amount { font-weight: 600; }
		.amount.inc { color: #155724; }
		.amount.exp { color: #b91c1c; }
		.empty { text-align: center; color: #999; }
		.footer { text-align: center; margin-top: 24px; color: #999; font-size: 12px; }
	</style>
</head>
<body>
	<div class="container">
		<div class="card">
			<div class="label">Available budget, %s</div>
			<div class="budget %s">%s</div>
			<div class="totals">
				<div><div class="label">Income</div><div class="value green">%s</div></div>
				<div><div class="label">Expenses</div><div class="value red">%s</div></div>
				<div><div class="label">Spent</div><div class="value">%s</div></div>
			</div>
			%s
			<div class="footer">Last updated: %s</div>
		</div>
	</div>
</body>
</html>`,
		html.EscapeString(now.Format("January 2006")),
		budgetClass,
		html.EscapeString(models.FormatBudget(sum.Budget)),
		html.EscapeString(models.FormatAmount(sum.TotalIncome, models.Income)),
		html.EscapeString(models.FormatAmount(sum.TotalExpense, models.Expense)),
		html.EscapeString(models.FormatPercentage(sum.SpendingPercentage)),
		entriesHTML,
		html.EscapeString(now.Format("Jan 2, 2006 at 3:04 PM")),
	)
}
