// Package ledger holds the in-memory list of income and expense entries
// and the aggregates derived from them.
//
// Mutations never recompute. Callers add or delete, then call Recompute
// before reading Summary or ExpensePercentages; until they do, Summary
// reports Stale.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/indiekitai/budget-cli/logging"
	"github.com/indiekitai/budget-cli/models"
)

// ErrInvalidValue is returned when an entry value is negative
var ErrInvalidValue = errors.New("invalid value")

var hundred = decimal.NewFromInt(100)

// Summary is the aggregate state as of the last Recompute
type Summary struct {
	Budget             decimal.Decimal
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	SpendingPercentage float64 // models.NoPercentage when income is zero
	Stale              bool    // entries changed since the last Recompute
}

// ExpensePercentage is one expense's share of total income
type ExpensePercentage struct {
	ID         int64
	Percentage float64
}

// Snapshot is a detached copy of the ledger contents
type Snapshot struct {
	Income  []models.Entry
	Expense []models.Entry
	Summary Summary
}

// Ledger owns the income and expense sequences of one session
type Ledger struct {
	entries [2][]models.Entry
	nextID  [2]int64
	summary Summary
	log     *logging.Logger
}

// Option configures a Ledger
type Option func(*Ledger)

// WithLogger attaches a logger for add/delete tracing
func WithLogger(l *logging.Logger) Option {
	return func(lg *Ledger) {
		lg.log = l.WithComponent("ledger")
	}
}

// New creates an empty ledger with zeroed totals
func New(opts ...Option) *Ledger {
	l := &Ledger{
		summary: Summary{SpendingPercentage: models.NoPercentage},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func checkCategory(c models.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", models.ErrInvalidCategory, int(c))
	}
	return nil
}

// Add appends a new entry to its category and returns it.
// IDs are never reused within a category, even after deletions.
func (l *Ledger) Add(c models.Category, description string, value decimal.Decimal) (models.Entry, error) {
	if err := checkCategory(c); err != nil {
		return models.Entry{}, err
	}
	if value.IsNegative() {
		return models.Entry{}, fmt.Errorf("%w: %s", ErrInvalidValue, value)
	}

	entry := models.Entry{
		ID:          l.nextID[c],
		Category:    c,
		Description: description,
		Value:       value,
		Percentage:  models.NoPercentage,
	}
	l.nextID[c]++
	l.entries[c] = append(l.entries[c], entry)
	l.summary.Stale = true

	l.log.Debug("entry added", "category", c.String(), "id", entry.ID, "value", value.String())
	return entry, nil
}

// Delete removes the entry with the given id. It reports false, with no
// change, when the category holds no such entry.
func (l *Ledger) Delete(c models.Category, id int64) (bool, error) {
	if err := checkCategory(c); err != nil {
		return false, err
	}

	items := l.entries[c]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		l.entries[c] = append(items[:i], items[i+1:]...)
		l.summary.Stale = true
		l.log.Debug("entry deleted", "category", c.String(), "id", id)
		return true, nil
	}

	l.log.Debug("delete missed", "category", c.String(), "id", id)
	return false, nil
}

// Recompute re-sums both categories and refreshes every percentage
func (l *Ledger) Recompute() {
	income := sum(l.entries[models.Income])
	expense := sum(l.entries[models.Expense])

	l.summary = Summary{
		Budget:             income.Sub(expense),
		TotalIncome:        income,
		TotalExpense:       expense,
		SpendingPercentage: percentOf(expense, income),
	}

	for i := range l.entries[models.Expense] {
		e := &l.entries[models.Expense][i]
		e.Percentage = percentOf(e.Value, income)
	}
}

// Summary returns the aggregates without recomputing them
func (l *Ledger) Summary() Summary {
	return l.summary
}

// ExpensePercentages lists each expense's share of income in insertion order
func (l *Ledger) ExpensePercentages() []ExpensePercentage {
	out := make([]ExpensePercentage, 0, len(l.entries[models.Expense]))
	for _, e := range l.entries[models.Expense] {
		out = append(out, ExpensePercentage{ID: e.ID, Percentage: e.Percentage})
	}
	return out
}

// Entries returns a copy of one category's entries in insertion order
func (l *Ledger) Entries(c models.Category) ([]models.Entry, error) {
	if err := checkCategory(c); err != nil {
		return nil, err
	}
	return cloneEntries(l.entries[c]), nil
}

// Entry looks up a single entry
func (l *Ledger) Entry(c models.Category, id int64) (models.Entry, bool) {
	if !c.Valid() {
		return models.Entry{}, false
	}
	for _, e := range l.entries[c] {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

// Len returns the number of entries across both categories
func (l *Ledger) Len() int {
	return len(l.entries[models.Income]) + len(l.entries[models.Expense])
}

// Snapshot copies the current entries and summary
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		Income:  cloneEntries(l.entries[models.Income]),
		Expense: cloneEntries(l.entries[models.Expense]),
		Summary: l.summary,
	}
}

func sum(entries []models.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Value)
	}
	return total
}

// percentOf returns part/whole*100 rounded to two places, or
// models.NoPercentage when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return models.NoPercentage
	}
	return part.Div(whole).Mul(hundred).Round(2).InexactFloat64()
}

func cloneEntries(in []models.Entry) []models.Entry {
	out := make([]models.Entry, len(in))
	copy(out, in)
	return out
}
