// Package db stores finished session reports in SQLite. Archived sessions
// are history only; a ledger is never rebuilt from them.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

var db *sql.DB

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAmbiguousSession = errors.New("session id prefix is ambiguous")
	ErrNotInitialized   = errors.New("archive not initialized")
)

// SessionInfo is one archived session without its entries
type SessionInfo struct {
	ID                 string
	Name               string
	CreatedAt          time.Time
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	Budget             decimal.Decimal
	SpendingPercentage float64
	EntryCount         int
}

// Session is an archived session with its entries
type Session struct {
	SessionInfo
	Snapshot ledger.Snapshot
}

// Init opens the archive at path and creates tables
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var err error
	db, err = sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		total_income TEXT NOT NULL,
		total_expense TEXT NOT NULL,
		budget TEXT NOT NULL,
		spending_percentage REAL NOT NULL,
		entry_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS session_entries (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		entry_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		value TEXT NOT NULL,
		percentage REAL NOT NULL,
		PRIMARY KEY (session_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close() {
	if db != nil {
		db.Close()
		db = nil
	}
}

// ArchiveSession stores a snapshot under a new session id and returns it
func ArchiveSession(name string, snap ledger.Snapshot) (string, error) {
	if db == nil {
		return "", ErrNotInitialized
	}

	id := uuid.New().String()
	s := snap.Summary
	entries := append(append([]models.Entry{}, snap.Income...), snap.Expense...)

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin archive: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, name, total_income, total_expense, budget, spending_percentage, entry_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, s.TotalIncome.String(), s.TotalExpense.String(), s.Budget.String(),
		s.SpendingPercentage, len(entries), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to archive session: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO session_entries (session_id, position, category, entry_id, description, value, percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(id, i, e.Category.Short(), e.ID, e.Description, e.Value.String(), e.Percentage); err != nil {
			return "", fmt.Errorf("failed to archive entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit archive: %w", err)
	}
	return id, nil
}

// ListSessions lists archived sessions, newest first
func ListSessions() ([]SessionInfo, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := db.Query(sessionSelect + " ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		info, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// GetSession loads a session by id or unique id prefix
func GetSession(idOrPrefix string) (*Session, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}

	info, err := findSession(idOrPrefix)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT category, entry_id, description, value, percentage
		FROM session_entries WHERE session_id = ? ORDER BY position`,
		info.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get session entries: %w", err)
	}
	defer rows.Close()

	session := &Session{SessionInfo: info}
	session.Snapshot.Summary = ledger.Summary{
		Budget:             info.Budget,
		TotalIncome:        info.TotalIncome,
		TotalExpense:       info.TotalExpense,
		SpendingPercentage: info.SpendingPercentage,
	}

	for rows.Next() {
		var (
			e        models.Entry
			category string
			value    string
		)
		if err := rows.Scan(&category, &e.ID, &e.Description, &value, &e.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Category, err = models.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("corrupt entry in session %s: %w", info.ID, err)
		}
		if e.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("corrupt entry value in session %s: %w", info.ID, err)
		}

		if e.Category == models.Income {
			session.Snapshot.Income = append(session.Snapshot.Income, e)
		} else {
			session.Snapshot.Expense = append(session.Snapshot.Expense, e)
		}
	}
	return session, rows.Err()
}

// DeleteSession removes a session and its entries
func DeleteSession(idOrPrefix string) (string, error) {
	if db == nil {
		return "", ErrNotInitialized
	}

	info, err := findSession(idOrPrefix)
	if err != nil {
		return "", err
	}

	if _, err := db.Exec("DELETE FROM sessions WHERE id = ?", info.ID); err != nil {
		return "", fmt.Errorf("failed to delete session: %w", err)
	}
	return info.ID, nil
}

const sessionSelect = `SELECT id, name, total_income, total_expense, budget, spending_percentage, entry_count, created_at FROM sessions`

func findSession(idOrPrefix string) (SessionInfo, error) {
	if idOrPrefix == "" {
		return SessionInfo{}, fmt.Errorf("%w: empty id", ErrSessionNotFound)
	}

	rows, err := db.Query(sessionSelect+" WHERE id LIKE ? || '%' LIMIT 2", idOrPrefix)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("failed to get session: %w", err)
	}
	defer rows.Close()

	var matches []SessionInfo
	for rows.Next() {
		info, err := scanSession(rows)
		if err != nil {
			return SessionInfo{}, err
		}
		matches = append(matches, info)
	}
	if err := rows.Err(); err != nil {
		return SessionInfo{}, fmt.Errorf("failed to get session: %w", err)
	}

	switch len(matches) {
	case 0:
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrSessionNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	}
	return SessionInfo{}, fmt.Errorf("%w: %s", ErrAmbiguousSession, idOrPrefix)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionInfo, error) {
	var (
		info                    SessionInfo
		income, expense, budget string
		createdAt               string
	)
	err := row.Scan(&info.ID, &info.Name, &income, &expense, &budget,
		&info.SpendingPercentage, &info.EntryCount, &createdAt)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("failed to scan session: %w", err)
	}

	info.TotalIncome, _ = decimal.NewFromString(income)
	info.TotalExpense, _ = decimal.NewFromString(expense)
	info.Budget, _ = decimal.NewFromString(budget)
	info.CreatedAt = parseDateTime(createdAt)
	return info, nil
}

// parseDateTime parses various datetime formats from SQLite
func parseDateTime(s string) time.Time {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
