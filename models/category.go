package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the two partitions of the ledger
type Category int

const (
	Income Category = iota
	Expense
)

// Categories lists every valid category in display order
var Categories = []Category{Income, Expense}

// ErrInvalidCategory is returned for any category outside {Income, Expense}
var ErrInvalidCategory = errors.New("invalid category")

// ParseCategory accepts inc/income/+ and exp/expense/-
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inc", "income", "+":
		return Income, nil
	case "exp", "expense", "-":
		return Expense, nil
	}
	return 0, fmt.Errorf("%w: %q (valid: inc, exp)", ErrInvalidCategory, s)
}

// Valid reports whether c is Income or Expense
func (c Category) Valid() bool {
	return c == Income || c == Expense
}

func (c Category) String() string {
	switch c {
	case Income:
		return "income"
	case Expense:
		return "expense"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Short returns the compact form used in scripts and exports
func (c Category) Short() string {
	switch c {
	case Income:
		return "inc"
	case Expense:
		return "exp"
	}
	return c.String()
}

// Sign returns the display prefix for amounts of this category
func (c Category) Sign() string {
	if c == Expense {
		return "-"
	}
	return "+"
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.Short()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
