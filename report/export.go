package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

// Document is the JSON shape shared by exports and the HTTP API
type Document struct {
	Summary SummaryDoc `json:"summary"`
	Income  []EntryDoc `json:"income"`
	Expense []EntryDoc `json:"expense"`
}

// SummaryDoc is the JSON form of ledger.Summary
type SummaryDoc struct {
	Budget             string  `json:"budget"`
	TotalIncome        string  `json:"total_income"`
	TotalExpense       string  `json:"total_expense"`
	SpendingPercentage float64 `json:"spending_percentage"`
	Stale              bool    `json:"stale,omitempty"`
}

// EntryDoc is the JSON form of models.Entry
type EntryDoc struct {
	ID          int64           `json:"id"`
	Type        models.Category `json:"type"`
	Description string          `json:"description"`
	Value       string          `json:"value"`
	Percentage  *float64        `json:"percentage,omitempty"`
}

// NewSummaryDoc converts a summary for JSON output
func NewSummaryDoc(s ledger.Summary) SummaryDoc {
	return SummaryDoc{
		Budget:             s.Budget.StringFixed(2),
		TotalIncome:        s.TotalIncome.StringFixed(2),
		TotalExpense:       s.TotalExpense.StringFixed(2),
		SpendingPercentage: s.SpendingPercentage,
		Stale:              s.Stale,
	}
}

// NewEntryDoc converts an entry for JSON output. Income entries carry no
// percentage.
func NewEntryDoc(e models.Entry) EntryDoc {
	doc := EntryDoc{
		ID:          e.ID,
		Type:        e.Category,
		Description: e.Description,
		Value:       e.Value.String(),
	}
	if e.Category == models.Expense {
		p := e.Percentage
		doc.Percentage = &p
	}
	return doc
}

// NewDocument converts a snapshot for JSON output
func NewDocument(snap ledger.Snapshot) Document {
	doc := Document{
		Summary: NewSummaryDoc(snap.Summary),
		Income:  make([]EntryDoc, 0, len(snap.Income)),
		Expense: make([]EntryDoc, 0, len(snap.Expense)),
	}
	for _, e := range snap.Income {
		doc.Income = append(doc.Income, NewEntryDoc(e))
	}
	for _, e := range snap.Expense {
		doc.Expense = append(doc.Expense, NewEntryDoc(e))
	}
	return doc
}

// WriteJSON writes the snapshot as indented JSON
func WriteJSON(w io.Writer, snap ledger.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(snap))
}

// WriteCSV writes one row per entry, income first
func WriteCSV(w io.Writer, snap ledger.Snapshot) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"type", "id", "description", "value", "percentage"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range allEntries(snap) {
		pct := ""
		if e.Category == models.Expense {
			pct = strconv.FormatFloat(e.Percentage, 'f', -1, 64)
		}
		record := []string{
			e.Category.Short(),
			strconv.FormatInt(e.ID, 10),
			e.Description,
			e.Value.StringFixed(2),
			pct,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func allEntries(snap ledger.Snapshot) []models.Entry {
	out := make([]models.Entry, 0, len(snap.Income)+len(snap.Expense))
	out = append(out, snap.Income...)
	return append(out, snap.Expense...)
}
