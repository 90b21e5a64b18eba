// Package scaling compares the observed growth of each algorithm's running
// time with its theoretical complexity.
package scaling

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/PlakarKorp/dnc-benchmarks/report"
)

// NLogN lists the algorithms expected to scale as n·log2(n). Everything else
// is treated as linear.
var NLogN = []string{"MergeSort", "QuickSort", "ClosestPair"}

// Result holds the endpoint comparison for one algorithm. First and Last are
// the first and last rows after a stable sort by input size.
type Result struct {
	Algorithm string
	First     report.Measurement
	Last      report.Measurement

	NFactor      float64
	TimeFactor   float64
	Expected     float64
	Linearithmic bool
}

// Efficiency is the expected factor divided by the observed time factor.
// Values near 1 mean the observed growth matches the expected factor.
func (r Result) Efficiency() float64 {
	return r.Expected / r.TimeFactor
}

// Compute derives the scaling figures from rows. It reports false when fewer
// than two rows are available.
func Compute(algorithm string, rows []report.Measurement, nlogn []string) (Result, bool) {
	if len(rows) < 2 {
		return Result{}, false
	}
	first, last := rows[0], rows[len(rows)-1]

	res := Result{
		Algorithm:  algorithm,
		First:      first,
		Last:       last,
		NFactor:    float64(last.N) / float64(first.N),
		TimeFactor: last.TimeNs / first.TimeNs,
	}
	res.Expected = res.NFactor
	for _, name := range nlogn {
		if name == algorithm {
			res.Linearithmic = true
			res.Expected = res.NFactor * math.Log2(res.NFactor)
			break
		}
	}
	return res, true
}

// Summarize computes a Result for every algorithm in r with at least two
// measurements, in first-seen order.
func Summarize(r *report.Report, nlogn []string) []Result {
	var results []Result
	for _, algorithm := range r.Algorithms() {
		if res, ok := Compute(algorithm, r.SortedByN(algorithm), nlogn); ok {
			results = append(results, res)
		}
	}
	return results
}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

// Write prints the summary banner followed by one block per result.
func Write(w io.Writer, results []Result) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, bannerStyle.Render("PERFORMANCE SUMMARY"), rule)

	for _, res := range results {
		fmt.Fprintf(w, "\n%s:\n", nameStyle.Render(res.Algorithm))
		fmt.Fprintf(w, "  Size range: %s → %s (%.1fx)\n",
			humanize.Comma(res.First.N), humanize.Comma(res.Last.N), res.NFactor)
		fmt.Fprintf(w, "  Time range: %sns → %sns (%.1fx)\n",
			humanize.Commaf(res.First.TimeNs), humanize.Commaf(res.Last.TimeNs), res.TimeFactor)
		fmt.Fprintf(w, "  Depth range: %d → %d\n", res.First.MaxDepth, res.Last.MaxDepth)
		if res.Linearithmic {
			fmt.Fprintf(w, "  Expected (n log n): %.1fx\n", res.Expected)
		} else {
			fmt.Fprintf(w, "  Expected (linear): %.1fx\n", res.Expected)
		}
		fmt.Fprintf(w, "  Efficiency ratio: %.2f\n", res.Efficiency())
	}
}
