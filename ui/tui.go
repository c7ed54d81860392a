package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
	"github.com/indiekitai/budget-cli/report"
)

const (
	modeNone        = ""
	modeDescription = "description"
	modeValue       = "value"
	modeDelete      = "delete"
)

// Options configures a TUI session
type Options struct {
	SpendingLimit float64
	// Archive stores the session report; nil disables the 's' key
	Archive func(snap ledger.Snapshot) (string, error)
}

// TUI represents the terminal UI
type TUI struct {
	screen    tcell.Screen
	ledger    *ledger.Ledger
	opts      Options
	rows      []models.Entry
	selected  int
	offset    int
	width     int
	height    int
	inputMode string
	inputCat  models.Category
	pending   string
	inputBuf  string
	message   string
	msgStyle  tcell.Style
	now       func() time.Time
}

// Run starts the TUI on the real terminal
func Run(l *ledger.Ledger, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	return New(screen, l, opts).run()
}

// New creates a TUI on an initialised screen
func New(screen tcell.Screen, l *ledger.Ledger, opts Options) *TUI {
	t := &TUI{
		screen:   screen,
		ledger:   l,
		opts:     opts,
		msgStyle: tcell.StyleDefault,
		now:      time.Now,
	}
	t.refresh()
	return t
}

func (t *TUI) run() error {
	t.render()

	for {
		t.screen.Show()

		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.width, t.height = ev.Size()
			t.screen.Sync()
		case *tcell.EventKey:
			if t.handleKey(ev) {
				return nil
			}
		case nil:
			return nil
		}
		t.render()
	}
}

// handleKey processes one key press and reports whether to quit
func (t *TUI) handleKey(ev *tcell.EventKey) bool {
	if t.inputMode != modeNone {
		if t.handleInput(ev) {
			t.inputMode = modeNone
			t.inputBuf = ""
			t.pending = ""
			t.refresh()
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyDown:
		t.moveDown()
	case tcell.KeyUp:
		t.moveUp()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'j':
			t.moveDown()
		case 'k':
			t.moveUp()
		case 'g':
			t.selected = 0
			t.offset = 0
		case 'G':
			if len(t.rows) > 0 {
				t.selected = len(t.rows) - 1
				t.adjustOffset()
			}
		case 'i', '+':
			t.startAdd(models.Income)
		case 'e', '-':
			t.startAdd(models.Expense)
		case 'd':
			if len(t.rows) > 0 {
				e := t.rows[t.selected]
				t.inputMode = modeDelete
				t.inputBuf = ""
				t.setMessage(fmt.Sprintf("Delete %s #%d %q? (y/n): ", e.Category, e.ID, e.Description), tcell.StyleDefault)
			}
		case 's':
			t.archive()
		case 'r':
			t.ledger.Recompute()
			t.refresh()
			t.setMessage("Recomputed", tcell.StyleDefault.Foreground(tcell.ColorGreen))
		}
	}
	return false
}

func (t *TUI) startAdd(c models.Category) {
	t.inputMode = modeDescription
	t.inputCat = c
	t.inputBuf = ""
	t.pending = ""
	t.setMessage(fmt.Sprintf("Add %s (description): ", c), tcell.StyleDefault)
}

func (t *TUI) handleInput(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		t.message = ""
		return true
	case tcell.KeyEnter:
		return t.submitInput()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.inputBuf) > 0 {
			r := []rune(t.inputBuf)
			t.inputBuf = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		t.inputBuf += string(ev.Rune())
	}
	return false
}

func (t *TUI) submitInput() bool {
	switch t.inputMode {
	case modeDescription:
		desc := strings.TrimSpace(t.inputBuf)
		if desc == "" {
			t.setMessage("Description required", errorStyle())
			return true
		}
		t.pending = desc
		t.inputMode = modeValue
		t.inputBuf = ""
		t.setMessage(fmt.Sprintf("Add %s %q (value): ", t.inputCat, desc), tcell.StyleDefault)
		return false

	case modeValue:
		value, err := models.ValidateInput(t.pending, t.inputBuf)
		if err != nil {
			t.setMessage("Invalid value: "+t.inputBuf, errorStyle())
			return true
		}
		entry, err := t.ledger.Add(t.inputCat, t.pending, value)
		if err != nil {
			t.setMessage("Error: "+err.Error(), errorStyle())
			return true
		}
		t.ledger.Recompute()
		t.refresh()
		t.selectEntry(entry)
		t.setMessage(fmt.Sprintf("Added %s #%d", entry.Category, entry.ID), successStyle())

	case modeDelete:
		if strings.ToLower(t.inputBuf) != "y" || len(t.rows) == 0 {
			t.message = ""
			return true
		}
		e := t.rows[t.selected]
		ok, err := t.ledger.Delete(e.Category, e.ID)
		if err != nil {
			t.setMessage("Error: "+err.Error(), errorStyle())
			return true
		}
		if !ok {
			t.setMessage("Entry already gone", errorStyle())
			return true
		}
		t.ledger.Recompute()
		t.setMessage(fmt.Sprintf("Deleted %s #%d", e.Category, e.ID), successStyle())
		if t.selected > 0 && t.selected >= len(t.rows)-1 {
			t.selected--
		}
	}
	return true
}

func (t *TUI) archive() {
	if t.opts.Archive == nil {
		t.setMessage("Archive is not configured", errorStyle())
		return
	}
	t.ledger.Recompute()
	id, err := t.opts.Archive(t.ledger.Snapshot())
	if err != nil {
		t.setMessage("Archive failed: "+err.Error(), errorStyle())
		return
	}
	t.setMessage("Archived session "+id, successStyle())
}

// refresh rebuilds the row list, income first
func (t *TUI) refresh() {
	snap := t.ledger.Snapshot()
	t.rows = append(snap.Income, snap.Expense...)
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
}

func (t *TUI) selectEntry(e models.Entry) {
	for i, r := range t.rows {
		if r.Category == e.Category && r.ID == e.ID {
			t.selected = i
			t.adjustOffset()
			return
		}
	}
}

func (t *TUI) moveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		t.adjustOffset()
	}
}

func (t *TUI) moveUp() {
	if t.selected > 0 {
		t.selected--
		t.adjustOffset()
	}
}

func (t *TUI) adjustOffset() {
	visibleRows := t.visibleRows()
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+visibleRows {
		t.offset = t.selected - visibleRows + 1
	}
}

func (t *TUI) visibleRows() int {
	rows := t.height - 8 // header + footer
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (t *TUI) setMessage(msg string, style tcell.Style) {
	t.message = msg
	t.msgStyle = style
}

func errorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorRed)
}

func successStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorGreen)
}

func (t *TUI) render() {
	t.screen.Clear()
	t.width, t.height = t.screen.Size()

	headerStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorTeal)
	selectedStyle := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	normalStyle := tcell.StyleDefault
	incomeStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	expenseStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	helpStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	// Title and budget
	t.drawString(2, 0, "Budget for "+t.now().Format("January 2006"), headerStyle)

	s := t.ledger.Summary()
	budgetStr := "Available: " + models.FormatBudget(s.Budget)
	budgetStyle := incomeStyle.Bold(true)
	if s.Budget.IsNegative() {
		budgetStyle = expenseStyle.Bold(true)
	}
	t.drawString(t.width-len(budgetStr)-2, 0, budgetStr, budgetStyle)

	t.drawString(2, 1, "Income   "+models.FormatAmount(s.TotalIncome, models.Income), incomeStyle)
	spent := "Expenses " + models.FormatAmount(s.TotalExpense, models.Expense) + "  " + models.FormatPercentage(s.SpendingPercentage)
	spentStyle := normalStyle
	if report.OverLimit(s, t.opts.SpendingLimit) {
		spent += fmt.Sprintf("  over %s limit", models.FormatPercentage(t.opts.SpendingLimit))
		spentStyle = expenseStyle.Bold(true)
	}
	t.drawString(32, 1, spent, spentStyle)

	// Column headers
	y := 3
	t.drawString(2, y, "Type", headerStyle)
	t.drawString(12, y, "ID", headerStyle)
	t.drawString(18, y, "Description", headerStyle)
	t.drawString(48, y, "Value", headerStyle)
	t.drawString(64, y, "%", headerStyle)

	// Separator
	y++
	for x := 2; x < t.width-2; x++ {
		t.screen.SetContent(x, y, '─', nil, helpStyle)
	}

	visibleRows := t.visibleRows()
	for i := t.offset; i < len(t.rows) && i-t.offset < visibleRows; i++ {
		y++
		e := t.rows[i]

		style := normalStyle
		valueStyle := incomeStyle
		if e.Category == models.Expense {
			valueStyle = expenseStyle
		}
		if i == t.selected {
			style = selectedStyle
			valueStyle = selectedStyle
			for x := 0; x < t.width; x++ {
				t.screen.SetContent(x, y, ' ', nil, selectedStyle)
			}
		}

		desc := e.Description
		if len(desc) > 28 {
			desc = desc[:25] + "..."
		}

		t.drawString(2, y, e.Category.String(), style)
		t.drawString(12, y, fmt.Sprintf("%d", e.ID), style)
		t.drawString(18, y, desc, style)
		t.drawString(48, y, models.FormatAmount(e.Value, e.Category), valueStyle)
		if e.Category == models.Expense {
			t.drawString(64, y, models.FormatPercentage(e.Percentage), style)
		}
	}

	// Footer / Help
	footerY := t.height - 2
	if t.message != "" || t.inputMode != modeNone {
		msg := t.message
		if t.inputMode != modeNone {
			msg = t.message + t.inputBuf + "_"
		}
		t.drawString(2, footerY, msg, t.msgStyle)
	} else {
		help := "i: income | e: expense | d: delete | j/k: navigate | s: archive | q: quit"
		t.drawString(2, footerY, help, helpStyle)
	}

	// Status bar
	statusY := t.height - 1
	status := fmt.Sprintf(" %d entries ", len(t.rows))
	if len(t.rows) > 0 {
		status += fmt.Sprintf("| %d/%d ", t.selected+1, len(t.rows))
	}
	t.drawString(0, statusY, status, tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite))
}

func (t *TUI) drawString(x, y int, str string, style tcell.Style) {
	col := x
	for _, r := range str {
		if col >= t.width {
			break
		}
		if col >= 0 {
			t.screen.SetContent(col, y, r, nil, style)
		}
		col++
	}
}
