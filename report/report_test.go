package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

func sampleSnapshot(t *testing.T) ledger.Snapshot {
	t.Helper()
	l := ledger.New()
	adds := []struct {
		c    models.Category
		desc string
		v    int64
	}{
		{models.Income, "Salary", 2000},
		{models.Expense, "Rent", 800},
		{models.Expense, "Groceries", 150},
	}
	for _, a := range adds {
		if _, err := l.Add(a.c, a.desc, decimal.NewFromInt(a.v)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	l.Recompute()
	return l.Snapshot()
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSnapshot(t)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		Summary map[string]any   `json:"summary"`
		Income  []map[string]any `json:"income"`
		Expense []map[string]any `json:"expense"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}

	if doc.Summary["budget"] != "1050.00" || doc.Summary["spending_percentage"] != 47.5 {
		t.Errorf("summary = %v", doc.Summary)
	}
	if _, ok := doc.Summary["stale"]; ok {
		t.Error("fresh summary should omit stale")
	}
	if len(doc.Income) != 1 || doc.Income[0]["type"] != "inc" {
		t.Fatalf("income = %v", doc.Income)
	}
	if _, ok := doc.Income[0]["percentage"]; ok {
		t.Error("income entries must not carry a percentage")
	}
	if len(doc.Expense) != 2 || doc.Expense[0]["percentage"] != 40.0 || doc.Expense[1]["percentage"] != 7.5 {
		t.Errorf("expense = %v", doc.Expense)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSnapshot(t)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{
		{"type", "id", "description", "value", "percentage"},
		{"inc", "0", "Salary", "2000.00", ""},
		{"exp", "0", "Rent", "800.00", "40"},
		{"exp", "1", "Groceries", "150.00", "7.5"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i := range want {
		if strings.Join(records[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, records[i], want[i])
		}
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, "March budget", sampleSnapshot(t)); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a pdf (%d bytes)", buf.Len())
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	snap := sampleSnapshot(t)

	var buf bytes.Buffer
	PrintSummary(&buf, "Session", snap, 40)
	out := buf.String()

	for _, want := range []string{"Session", "+ 1,050.00", "+ 2,000.00", "- 950.00", "47.5%", "over the 40% limit", "Groceries", "7.5%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintSummary(&buf, "Empty", ledger.New().Snapshot(), 0)
	if !strings.Contains(buf.String(), "No entries.") || !strings.Contains(buf.String(), "---") {
		t.Errorf("empty summary:\n%s", buf.String())
	}
}

func TestOverLimit(t *testing.T) {
	s := ledger.Summary{SpendingPercentage: 85}
	if !OverLimit(s, 80) || OverLimit(s, 90) || OverLimit(s, 0) {
		t.Error("OverLimit thresholds wrong")
	}
}

func TestBudgetBadge(t *testing.T) {
	svg := BudgetBadge(ledger.Summary{Budget: decimal.NewFromInt(-20)})
	if !strings.Contains(svg, "- 20.00") || !strings.Contains(svg, badgeRed) {
		t.Errorf("negative badge:\n%s", svg)
	}

	svg = Badge("a<b", "1", badgeGreen)
	if strings.Contains(svg, "a<b") || !strings.Contains(svg, "a&lt;b") {
		t.Error("badge label not escaped")
	}
}
