package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	// integration flags
	preset    string
	duration  float64
	start     float64
	radius    float64
	order     int
	tol       float64
	step      float64
	fixed     bool
	parts     int
	policy    string
	params    []string
	initState []float64
	noSave    bool
	promFile  string

	// compare
	rkStep float64

	// plot
	phase   bool
	xAxis   int
	yAxis   int
	svgFile string

	// show
	asJSON  bool
	outFile string

	// analyze
	bins int

	// sweep and check
	orders []int
	tols   []float64
	trials int
	seed   int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rigsim",
		Short:         "rigorous interval integration of ODEs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	integrateCmd := &cobra.Command{
		Use:   "integrate [model]",
		Short: "enclose the flow of an initial box",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegrate,
	}
	addRunFlags(integrateCmd)
	integrateCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	integrateCmd.Flags().StringVar(&promFile, "metrics-file", "", "write solver metrics in Prometheus text format")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate with a live progress view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "check RK4 solutions against the rigorous enclosure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompare,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64Var(&rkStep, "dt", 1e-3, "RK4 step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	showCmd.Flags().StringVar(&outFile, "out", "", "write the JSON export to a file")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot enclosure centers and widths",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&phase, "phase", false, "draw the enclosures in a phase plane")
	plotCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	plotCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the plot as SVG instead (phase plane with --phase, x-axis bounds otherwise)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate growth, Lyapunov exponent and spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&rkStep, "dt", 1e-3, "RK4 step for the Lyapunov estimate")
	analyzeCmd.Flags().IntVar(&bins, "bins", 256, "resampled points for the spectrum")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and their parameters",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	intervalCmd := &cobra.Command{
		Use:   "interval [op] [args...]",
		Short: "evaluate an interval operation",
		Long: "Evaluate an interval operation on decimal, hex or bit-image operands.\n" +
			"Operations: " + strings.Join(opNames(), ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: runInterval,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run and store every step of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "compare solver orders and tolerances",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&orders, "orders", []int{10, 15, 20}, "Taylor orders")
	sweepCmd.Flags().Float64SliceVar(&tols, "tols", []float64{1e-10, 1e-12, 1e-14}, "tolerances")

	checkCmd := &cobra.Command{
		Use:   "check [model]",
		Short: "check random point solutions against the enclosure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	addRunFlags(checkCmd)
	checkCmd.Flags().IntVar(&trials, "trials", 100, "number of random starts")
	checkCmd.Flags().Float64Var(&rkStep, "dt", 1e-3, "RK4 step")
	checkCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 means time based)")

	rootCmd.AddCommand(integrateCmd, liveCmd, compareCmd, listCmd, showCmd, plotCmd, analyzeCmd, modelsCmd, presetsCmd, intervalCmd, batchCmd, sweepCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&duration, "time", 0, "duration")
	f.Float64Var(&start, "start", 0, "initial time")
	f.Float64Var(&radius, "radius", 0, "half width of the initial box")
	f.IntVar(&order, "order", 0, "Taylor order")
	f.Float64Var(&tol, "tol", 0, "absolute and relative tolerance")
	f.Float64Var(&step, "step", 0, "step size (fixed mode) or initial step")
	f.BoolVar(&fixed, "fixed", false, "use a fixed step")
	f.IntVar(&parts, "parts", 0, "split the box into parts per coordinate")
	f.StringVar(&policy, "policy", "", "basis policy (qr, identity)")
	f.StringSliceVar(&params, "param", nil, "model parameter name=value")
	f.Float64SliceVar(&initState, "state", nil, "center of the initial box")
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}
