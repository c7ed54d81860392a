package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// NoPercentage marks a share of income that cannot be computed
const NoPercentage = -1.0

// Entry represents one income or expense line
type Entry struct {
	ID          int64
	Category    Category
	Description string
	Value       decimal.Decimal
	Percentage  float64 // share of total income, expenses only
}

// HasPercentage reports whether the entry carries a computed share of income
func (e Entry) HasPercentage() bool {
	return e.Category == Expense && e.Percentage >= 0
}

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// ParseValue parses a user-typed amount such as "1,250.50" or "$20"
func ParseValue(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "$€£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !v.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return v, nil
}

// ValidateInput checks a form submission before it reaches the ledger
func ValidateInput(description, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(description) == "" {
		return decimal.Zero, ErrEmptyDescription
	}
	return ParseValue(raw)
}

// FormatAmount formats a value with thousands separators and the category sign
func FormatAmount(v decimal.Decimal, c Category) string {
	return c.Sign() + " " + formatNumber(v.Abs())
}

// FormatBudget formats a net budget, signed by its own value
func FormatBudget(v decimal.Decimal) string {
	if v.IsNegative() {
		return "- " + formatNumber(v.Abs())
	}
	return "+ " + formatNumber(v)
}

// FormatPercentage renders a share of income, "---" when not computable
func FormatPercentage(p float64) string {
	if p <= 0 {
		return "---"
	}
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func formatNumber(v decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", v.Round(2).InexactFloat64())
}
