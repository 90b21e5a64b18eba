package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PlakarKorp/dnc-benchmarks/charts"
	"github.com/PlakarKorp/dnc-benchmarks/report"
	"github.com/PlakarKorp/dnc-benchmarks/scaling"
)

type config struct {
	input  string
	output string
	chart  charts.Options
	nlogn  []string
}

func defaultConfig() config {
	return config{
		input:  "performance_report.csv",
		output: "algorithm_analysis_plots.png",
		chart:  charts.DefaultOptions(),
		nlogn:  scaling.NLogN,
	}
}

func newRootCmd(cfg config) *cobra.Command {
	return &cobra.Command{
		Use:          "benchplot",
		Short:        "Plot divide-and-conquer benchmark results",
		Long:         `Reads ` + cfg.input + `, renders time, recursion depth and comparison charts to ` + cfg.output + ` and prints how each algorithm scales against its expected complexity.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cfg)
		},
	}
}

func run(w io.Writer, cfg config) error {
	fmt.Fprintln(w, "Loading performance data...")
	r, err := report.Load(cfg.input)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "Error: %s not found. Run the algorithms first!\n", cfg.input)
		return nil
	}
	if err != nil {
		return err
	}

	algorithms := r.Algorithms()
	fmt.Fprintf(w, "Loaded %d data points for %d algorithms\n", r.Len(), len(algorithms))
	fmt.Fprintf(w, "Algorithms: %s\n", strings.Join(algorithms, ", "))

	if err := charts.Save(cfg.output, r, cfg.chart); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved: %s\n", cfg.output)

	scaling.Write(w, scaling.Summarize(r, cfg.nlogn))

	fmt.Fprintf(w, "\nAnalysis complete! Generated %s\n", cfg.output)
	return nil
}

func main() {
	if err := newRootCmd(defaultConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}
