// Package report loads the per-run performance table written by the
// divide-and-conquer benchmark harness.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Measurement is one recorded run of an algorithm at a given input size.
type Measurement struct {
	Algorithm   string
	N           int64
	TimeNs      float64
	MaxDepth    int64
	Comparisons int64
	Allocations int64
}

// TimeMicros returns the elapsed time in microseconds.
func (m Measurement) TimeMicros() float64 {
	return m.TimeNs / 1000
}

var requiredColumns = []string{"algorithm", "n", "time_ns", "max_depth", "comparisons"}

// Report is the loaded table, in file order. It is not modified after loading.
type Report struct {
	rows       []Measurement
	algorithms []string
	byName     map[string][]Measurement
}

// Load reads the table at path. A missing file yields an error matching
// os.ErrNotExist.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s not found: %w", path, os.ErrNotExist)
		}
		return nil, err
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse reads a header row followed by one measurement per line. Columns are
// located by header name; unknown columns are ignored.
func Parse(in io.Reader) (*Report, error) {
	reader := csv.NewReader(in)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty report: missing header row")
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	allocCol, hasAlloc := index["allocations"]

	rep := &Report{byName: make(map[string][]Measurement)}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		field := func(name string) string {
			return strings.TrimSpace(record[index[name]])
		}
		m := Measurement{Algorithm: field("algorithm")}
		if m.N, err = parseInt(line, "n", field("n")); err != nil {
			return nil, err
		}
		if m.TimeNs, err = strconv.ParseFloat(field("time_ns"), 64); err != nil {
			return nil, fmt.Errorf("line %d: column %q: %w", line, "time_ns", err)
		}
		if m.MaxDepth, err = parseInt(line, "max_depth", field("max_depth")); err != nil {
			return nil, err
		}
		if m.Comparisons, err = parseInt(line, "comparisons", field("comparisons")); err != nil {
			return nil, err
		}
		if hasAlloc {
			if m.Allocations, err = parseInt(line, "allocations", strings.TrimSpace(record[allocCol])); err != nil {
				return nil, err
			}
		}
		rep.add(m)
	}
	return rep, nil
}

func parseInt(line int, column, value string) (int64, error) {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", line, column, err)
	}
	return v, nil
}

func (r *Report) add(m Measurement) {
	if _, seen := r.byName[m.Algorithm]; !seen {
		r.algorithms = append(r.algorithms, m.Algorithm)
	}
	r.rows = append(r.rows, m)
	r.byName[m.Algorithm] = append(r.byName[m.Algorithm], m)
}

// Len returns the number of measurements.
func (r *Report) Len() int { return len(r.rows) }

// Rows returns every measurement in file order.
func (r *Report) Rows() []Measurement {
	return append([]Measurement(nil), r.rows...)
}

// Algorithms returns the distinct algorithm names in first-seen order.
func (r *Report) Algorithms() []string {
	return append([]string(nil), r.algorithms...)
}

// Measurements returns the rows recorded for algorithm, in file order.
func (r *Report) Measurements(algorithm string) []Measurement {
	return append([]Measurement(nil), r.byName[algorithm]...)
}

// SortedByN returns the rows recorded for algorithm ordered by input size.
// Rows with equal sizes keep their file order.
func (r *Report) SortedByN(algorithm string) []Measurement {
	rows := r.Measurements(algorithm)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].N < rows[j].N
	})
	return rows
}
