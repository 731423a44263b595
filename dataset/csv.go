package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoRows is returned when an input contains no data rows.
var ErrNoRows = errors.New("dataset: no rows")

// RowError reports a value that could not be parsed as an integer.
type RowError struct {
	Row    int // zero-based
	Column int // zero-based
	Value  string
	cause  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("dataset: row %d column %d: invalid integer %q", e.Row, e.Column, e.Value)
}

func (e *RowError) Unwrap() error { return e.cause }

// ReadRows parses every row of r. Rows may differ in length; callers that
// need a fixed dimensionality check it themselves.
func ReadRows(r io.Reader) ([][]int64, error) {
	cr := newReader(r)

	var rows [][]int64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}

		row, err := parseRecord(len(rows), rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// Scanner streams rows one at a time.
type Scanner struct {
	cr  *csv.Reader
	row []int64
	n   int
	err error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{cr: newReader(r)}
}

// Scan advances to the next row. It returns false at end of input or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.cr.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("dataset: %w", err)
		}
		return false
	}
	row, err := parseRecord(s.n, rec)
	if err != nil {
		s.err = err
		return false
	}
	s.row = row
	s.n++
	return true
}

// Row returns the most recent row. Its index is Count()-1.
func (s *Scanner) Row() []int64 { return s.row }

// Count returns the number of rows scanned so far.
func (s *Scanner) Count() int { return s.n }

// Err returns the first error encountered.
func (s *Scanner) Err() error { return s.err }

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func parseRecord(row int, rec []string) ([]int64, error) {
	out := make([]int64, len(rec))
	for i, f := range rec {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &RowError{Row: row, Column: i, Value: f, cause: err}
		}
		out[i] = v
	}
	return out, nil
}
