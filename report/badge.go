package report

import (
	"fmt"
	"html"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

const (
	badgeGreen = "#4c1"
	badgeRed   = "#e05d44"
)

// BudgetBadge renders the net budget as a badge, red when negative
func BudgetBadge(s ledger.Summary) string {
	fill := badgeGreen
	if s.Budget.IsNegative() {
		fill = badgeRed
	}
	return Badge("budget", models.FormatBudget(s.Budget), fill)
}

// Badge renders a shields.io style SVG badge
func Badge(label, value, fill string) string {
	label = html.EscapeString(label)
	value = html.EscapeString(value)

	labelWidth := len(label)*7 + 10
	valueWidth := len(value)*7 + 10
	totalWidth := labelWidth + valueWidth

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="20" role="img" aria-label="%s: %s">
  <title>%s: %s</title>
  <linearGradient id="s" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="r">
    <rect width="%d" height="20" rx="3" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#r)">
    <rect width="%d" height="20" fill="#555"/>
    <rect x="%d" width="%d" height="20" fill="%s"/>
    <rect width="%d" height="20" fill="url(#s)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="110">
    <text x="%d" y="140" transform="scale(.1)" textLength="%d">%s</text>
    <text x="%d" y="140" transform="scale(.1)" textLength="%d">%s</text>
  </g>
</svg>
`,
		totalWidth, label, value,
		label, value,
		totalWidth,
		labelWidth,
		labelWidth, valueWidth, fill,
		totalWidth,
		(labelWidth*10)/2, (labelWidth-10)*10, label,
		labelWidth*10+(valueWidth*10)/2, (valueWidth-10)*10, value,
	)
}
