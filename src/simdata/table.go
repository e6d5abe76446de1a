// Package simdata loads the simulation CSV into an immutable, column-wise table.
//
// The file is produced by the external battery simulation with a header row naming
// at least the columns time, voltage, soc and hysteresis. Columns are matched by
// name; their order does not matter and any other columns are ignored.
package simdata

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Required column names.
const (
	ColTime       = "time"
	ColVoltage    = "voltage"
	ColSOC        = "soc"
	ColHysteresis = "hysteresis"
)

// RequiredColumns in the order they are looked up.
var RequiredColumns = []string{ColTime, ColVoltage, ColSOC, ColHysteresis}

// MissingColumnError reports a required header that is absent.
type MissingColumnError struct {
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q (header: %s)", e.Column, strings.Join(e.Header, ","))
}

// ParseError reports a cell that is not a number. Row is 1-based over data rows.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one simulation sample.
type Record struct {
	Time       float64 // seconds
	Voltage    float64 // volts
	SOC        float64
	Hysteresis float64
}

// Table is the whole simulation run, stored by column so plotting can share slices.
// All four slices have the same length. Callers must not modify them.
type Table struct {
	Source     string
	Time       []float64
	Voltage    []float64
	SOC        []float64
	Hysteresis []float64
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Time) }

// Record returns row i.
func (t *Table) Record(i int) Record {
	return Record{Time: t.Time[i], Voltage: t.Voltage[i], SOC: t.SOC[i], Hysteresis: t.Hysteresis[i]}
}

// Load opens path and reads it. A missing file surfaces as an error matching fs.ErrNotExist.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(bufio.NewReader(f), path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from r. source is only used to label the table.
func Read(r io.Reader, source string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: header row expected")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = normalizeHeader(header)

	idx := make([]int, len(RequiredColumns))
	for i, name := range RequiredColumns {
		j := indexOf(header, name)
		if j < 0 {
			return nil, &MissingColumnError{Column: name, Header: header}
		}
		idx[i] = j
	}

	t := &Table{Source: source}
	cols := []*[]float64{&t.Time, &t.Voltage, &t.SOC, &t.Hysteresis}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		for i, j := range idx {
			v, perr := parseCell(rec[j])
			if perr != nil {
				return nil, &ParseError{Row: row, Column: RequiredColumns[i], Value: strings.TrimSpace(rec[j]), Err: perr}
			}
			*cols[i] = append(*cols[i], v)
		}
	}
	return t, nil
}

// parseCell reads one numeric cell. An empty cell is a missing sample and
// becomes NaN, which the renderers draw as a gap.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func normalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, s := range h {
		if i == 0 {
			s = strings.TrimPrefix(s, "\ufeff")
		}
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// indexOf returns the first column named name, or -1.
func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
