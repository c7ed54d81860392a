// Package script replays a CSV session script into a ledger.
//
// Format:
//
//	action,type,description,value,id
//	add,inc,Salary,2000,
//	add,exp,Rent,800,
//	delete,exp,,,0
package script

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indiekitai/budget-cli/ledger"
	"github.com/indiekitai/budget-cli/models"
)

// Header is the required first row of a script
var Header = []string{"action", "type", "description", "value", "id"}

var (
	ErrMissingHeader = errors.New("missing script header")
	ErrUnknownAction = errors.New("unknown action")
	ErrShortRow      = errors.New("insufficient fields")
	ErrInvalidID     = errors.New("invalid id")
)

// Problem is a skipped row
type Problem struct {
	Line int
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("line %d: %v", p.Line, p.Err)
}

// Result counts what happened during a replay
type Result struct {
	Added    int
	Deleted  int
	Missing  int // deletes that found nothing
	Problems []Problem
}

// Skipped returns the number of rows that could not be applied
func (r Result) Skipped() int {
	return len(r.Problems)
}

// Run applies every row of the script to l in order and recomputes once
// at the end. Bad rows are skipped and reported in Result.Problems.
func Run(l *ledger.Ledger, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var res Result
	header, err := reader.Read()
	if err == io.EOF {
		return res, ErrMissingHeader
	}
	if err != nil {
		return res, fmt.Errorf("failed to read script: %w", err)
	}
	if !isHeader(header) {
		return res, fmt.Errorf("%w, expected: %s", ErrMissingHeader, strings.Join(Header, ","))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("failed to read script: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isBlank(record) {
			continue
		}
		if err := apply(l, record, &res); err != nil {
			res.Problems = append(res.Problems, Problem{Line: line, Err: err})
		}
	}

	l.Recompute()
	return res, nil
}

func apply(l *ledger.Ledger, record []string, res *Result) error {
	if len(record) < 2 {
		return ErrShortRow
	}
	action := strings.ToLower(strings.TrimSpace(record[0]))
	c, err := models.ParseCategory(record[1])
	if err != nil {
		return err
	}

	switch action {
	case "add":
		if len(record) < 4 {
			return ErrShortRow
		}
		desc := strings.TrimSpace(record[2])
		value, err := models.ValidateInput(desc, record[3])
		if err != nil {
			return err
		}
		if _, err := l.Add(c, desc, value); err != nil {
			return err
		}
		res.Added++

	case "delete":
		if len(record) < 5 {
			return ErrShortRow
		}
		id, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		if err != nil || id < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidID, record[4])
		}
		ok, err := l.Delete(c, id)
		if err != nil {
			return err
		}
		if ok {
			res.Deleted++
		} else {
			res.Missing++
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, record[0])
	}
	return nil
}

func isHeader(record []string) bool {
	if len(record) < len(Header) {
		return false
	}
	for i, h := range Header {
		if strings.ToLower(strings.TrimSpace(record[i])) != h {
			return false
		}
	}
	return true
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
