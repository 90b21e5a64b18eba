package charts

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/PlakarKorp/dnc-benchmarks/report"
)

const sample = `algorithm,n,time_ns,max_depth,comparisons
A,100,12000,7,540
B,100,9000,5,300
A,1000,150000,10,8700
B,1000,70000,8,2600
A,10000,1900000,14,120000
B,10000,700000,11,27000
`

func testOptions() Options {
	return Options{Width: 6 * vg.Inch, Height: 5 * vg.Inch, DPI: 40}
}

func load(t *testing.T, in string) *report.Report {
	t.Helper()
	r, err := report.Parse(strings.NewReader(in))
	require.NoError(t, err)
	return r
}

func TestPanels(t *testing.T) {
	panels, err := Panels(load(t, sample))
	require.NoError(t, err)
	require.Len(t, panels, 4)

	for _, p := range panels {
		assert.Equal(t, []string{"A", "B"}, p.Series, p.Title)
		assert.Equal(t, "Input Size (n)", p.Plot.X.Label.Text)
	}

	assert.Empty(t, panels[0].References)
	assert.Equal(t, []string{"O(n log n)", "O(n)"}, panels[1].References)
	assert.Equal(t, []string{"log₂(n)"}, panels[2].References)
	assert.Equal(t, []string{"O(n log n)", "O(n)"}, panels[3].References)

	assert.Equal(t, "Time (microseconds)", panels[0].Plot.Y.Label.Text)
	assert.Equal(t, "Maximum Recursion Depth", panels[2].Plot.Y.Label.Text)
	assert.Equal(t, "Number of Comparisons", panels[3].Plot.Y.Label.Text)
}

func TestPointsDropsNonPositiveOnLogAxes(t *testing.T) {
	rows := []report.Measurement{
		{N: 10, TimeNs: 0, Comparisons: 0},
		{N: 100, TimeNs: 2000, Comparisons: 40},
	}

	lin := points(rows, timeMetric, false)
	require.Len(t, lin, 2)
	assert.Equal(t, 0.0, lin[0].Y)
	assert.Equal(t, 2.0, lin[1].Y)

	logPts := points(rows, comparisonMetric, true)
	require.Len(t, logPts, 1)
	assert.Equal(t, 100.0, logPts[0].X)
	assert.Equal(t, 40.0, logPts[0].Y)
}

func TestPanelsWithZeroValues(t *testing.T) {
	in := "algorithm,n,time_ns,max_depth,comparisons\n" +
		"Select,100,0,0,0\n" +
		"Select,1000,5000,3,900\n" +
		"Empty,200,0,0,0\n"
	panels, err := Panels(load(t, in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Select", "Empty"}, panels[0].Series)
	assert.Equal(t, []string{"Select"}, panels[1].Series)
	assert.Equal(t, []string{"Select"}, panels[3].Series)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, load(t, in), testOptions()))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, load(t, sample), testOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderIsDeterministic(t *testing.T) {
	r := load(t, sample)

	var first, second bytes.Buffer
	require.NoError(t, Render(&first, r, testOptions()))
	require.NoError(t, Render(&second, r, testOptions()))
	assert.True(t, bytes.Equal(first.Bytes(), second.Bytes()))
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algorithm_analysis_plots.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, Save(path, load(t, sample), testOptions()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 15*vg.Inch, opts.Width)
	assert.Equal(t, 12*vg.Inch, opts.Height)
	assert.Equal(t, 300, opts.DPI)
}
