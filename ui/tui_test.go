package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

func newTestTUI(t *testing.T, l *ledger.Ledger, opts Options) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 24)
	t.Cleanup(screen.Fini)

	tui := New(screen, l, opts)
	tui.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	return tui, screen
}

func typeKeys(tui *TUI, keys string) {
	for _, r := range keys {
		tui.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func pressEnter(tui *TUI) {
	tui.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
}

func screenText(tui *TUI, screen tcell.SimulationScreen) string {
	tui.render()
	screen.Show()
	cells, width, height := screen.GetContents()

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := cells[y*width+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestAddEntries(t *testing.T) {
	l := ledger.New()
	tui, _ := newTestTUI(t, l, Options{})

	typeKeys(tui, "i")
	typeKeys(tui, "Salary")
	pressEnter(tui)
	typeKeys(tui, "2,000")
	pressEnter(tui)

	typeKeys(tui, "e")
	typeKeys(tui, "Rent")
	pressEnter(tui)
	typeKeys(tui, "500")
	pressEnter(tui)

	if tui.inputMode != modeNone {
		t.Fatalf("still in input mode %q", tui.inputMode)
	}
	s := l.Summary()
	if !s.Budget.Equal(decimal.NewFromInt(1500)) || s.SpendingPercentage != 25 || s.Stale {
		t.Errorf("summary = %+v", s)
	}
	if len(tui.rows) != 2 || tui.selected != 1 {
		t.Errorf("rows = %d selected = %d", len(tui.rows), tui.selected)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		desc  string
		value string
	}{
		{name: "blank description", desc: "  ", value: "10"},
		{name: "zero value", desc: "Coffee", value: "0"},
		{name: "text value", desc: "Coffee", value: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			tui, _ := newTestTUI(t, l, Options{})

			typeKeys(tui, "e")
			typeKeys(tui, tt.desc)
			pressEnter(tui)
			if tui.inputMode == modeValue {
				typeKeys(tui, tt.value)
				pressEnter(tui)
			}

			if l.Len() != 0 {
				t.Errorf("invalid input was added")
			}
			if tui.inputMode != modeNone || tui.message == "" {
				t.Errorf("mode = %q message = %q", tui.inputMode, tui.message)
			}
		})
	}
}

func TestDeleteConfirm(t *testing.T) {
	l := ledger.New()
	l.Add(models.Income, "Salary", decimal.NewFromInt(100))
	l.Add(models.Expense, "Food", decimal.NewFromInt(40))
	l.Recompute()
	tui, _ := newTestTUI(t, l, Options{})

	typeKeys(tui, "G")
	typeKeys(tui, "d")
	typeKeys(tui, "n")
	pressEnter(tui)
	if l.Len() != 2 {
		t.Fatal("entry deleted without confirmation")
	}

	typeKeys(tui, "d")
	typeKeys(tui, "y")
	pressEnter(tui)
	if _, ok := l.Entry(models.Expense, 0); ok || l.Len() != 1 {
		t.Fatal("entry not deleted")
	}
	if s := l.Summary(); !s.Budget.Equal(decimal.NewFromInt(100)) || s.SpendingPercentage != 0 {
		t.Errorf("summary after delete = %+v", s)
	}
	if tui.selected != 0 {
		t.Errorf("selected = %d, want 0", tui.selected)
	}
}

func TestNavigation(t *testing.T) {
	l := ledger.New()
	for i := 0; i < 3; i++ {
		l.Add(models.Expense, "x", decimal.NewFromInt(1))
	}
	tui, _ := newTestTUI(t, l, Options{})

	tests := []struct {
		keys string
		want int
	}{
		{keys: "j", want: 1},
		{keys: "jj", want: 2},
		{keys: "j", want: 2},
		{keys: "k", want: 1},
		{keys: "g", want: 0},
		{keys: "G", want: 2},
	}
	for _, tt := range tests {
		typeKeys(tui, tt.keys)
		if tui.selected != tt.want {
			t.Errorf("after %q selected = %d, want %d", tt.keys, tui.selected, tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	tui, _ := newTestTUI(t, ledger.New(), Options{})
	if !tui.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q did not quit")
	}
	if !tui.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("esc did not quit")
	}

	typeKeys(tui, "i")
	if tui.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q quit while typing a description")
	}
}

func TestArchive(t *testing.T) {
	l := ledger.New()
	l.Add(models.Income, "Salary", decimal.NewFromInt(100))

	var got ledger.Snapshot
	tui, _ := newTestTUI(t, l, Options{Archive: func(snap ledger.Snapshot) (string, error) {
		got = snap
		return "abc123", nil
	}})
	typeKeys(tui, "s")

	if len(got.Income) != 1 || got.Summary.Stale {
		t.Errorf("archived snapshot = %+v", got)
	}
	if !strings.Contains(tui.message, "abc123") {
		t.Errorf("message = %q", tui.message)
	}

	tui.opts.Archive = func(ledger.Snapshot) (string, error) { return "", errors.New("disk full") }
	typeKeys(tui, "s")
	if !strings.Contains(tui.message, "disk full") {
		t.Errorf("message = %q", tui.message)
	}

	tui.opts.Archive = nil
	typeKeys(tui, "s")
	if !strings.Contains(tui.message, "not configured") {
		t.Errorf("message = %q", tui.message)
	}
}

func TestRender(t *testing.T) {
	l := ledger.New()
	l.Add(models.Income, "Salary", decimal.NewFromInt(1000))
	l.Add(models.Expense, "Rent", decimal.NewFromInt(900))
	l.Recompute()

	tests := []struct {
		name  string
		limit float64
		want  []string
		skip  []string
	}{
		{
			name: "under limit",
			want: []string{"Budget for March 2026", "+ 1,000.00", "Salary", "Rent", "- 900", "90%"},
			skip: []string{"limit"},
		},
		{
			name:  "over limit",
			limit: 80,
			want:  []string{"over 80% limit"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tui, screen := newTestTUI(t, l, Options{SpendingLimit: tt.limit})
			text := screenText(tui, screen)
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("screen missing %q:\n%s", w, text)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(text, s) {
					t.Errorf("screen unexpectedly has %q", s)
				}
			}
		})
	}
}
