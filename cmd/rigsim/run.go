package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigsim/internal/config"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/experiment"
	"github.com/san-kum/rigsim/internal/metrics"
	"github.com/san-kum/rigsim/internal/storage"
	"github.com/san-kum/rigsim/internal/tui"
)

// resolveConfig builds the run configuration: the preset or config file
// first, then the model argument, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	model := ""
	if len(args) > 0 {
		model = args[0]
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if model == "" {
			model = cfg.Model
		}
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}
	if model != "" && model != cfg.Model {
		cfg.Model = model
		cfg.InitState = nil
		cfg.Params = nil
	}

	f := cmd.Flags()
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("start") {
		cfg.Start = start
	}
	if f.Changed("radius") {
		cfg.Radius = radius
	}
	if f.Changed("order") {
		cfg.Solver.Order = order
	}
	if f.Changed("tol") {
		cfg.Solver.AbsTol = tol
		cfg.Solver.RelTol = tol
	}
	if f.Changed("step") {
		cfg.Solver.Step = step
	}
	if f.Changed("fixed") {
		cfg.Solver.Adaptive = !fixed
	}
	if f.Changed("parts") {
		cfg.Parts = parts
	}
	if f.Changed("policy") {
		cfg.Policy = policy
	}
	if f.Changed("state") {
		cfg.InitState = initState
	}
	if len(params) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for _, kv := range params {
			name, val, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("parameter %q: want name=value", kv)
			}
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", kv, err)
			}
			cfg.Params[name] = v
		}
	}
	return cfg, cfg.Validate()
}

func newExperiment(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg, experiment.NewRegistry(), slog.Default())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	reg := prometheus.NewRegistry()
	exp.AddObserver(metrics.NewCollector(reg, cfg.Model))

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("integrating %s over [%g, %g]...\n", cfg.Model, cfg.Start, cfg.End())
	began := time.Now()
	out, runErr := exp.Run(ctx)
	elapsed := time.Since(began)

	if out != nil {
		printOutcome(out, elapsed)
	}
	if promFile != "" {
		if err := prometheus.WriteToTextfile(promFile, reg); err != nil {
			return err
		}
	}
	if out != nil && !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		results := []*dynamo.Result{out.Result}
		if out.Cover != nil {
			results = out.Cover.Parts
		}
		runID, err := st.Save(cfg, results, runErr)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return runErr
}

func printOutcome(out *experiment.Outcome, elapsed time.Duration) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", out.Steps())
	if out.Result != nil {
		fmt.Printf("rejections: %d\n", out.Result.Rejections)
		fmt.Printf("final time: %s\n", out.Result.Final.Time)
	} else {
		fmt.Printf("parts: %d\n", len(out.Cover.Parts))
	}

	fmt.Println("\nenclosure:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, x := range out.FinalBox() {
		fmt.Fprintf(w, "  x%d\t%s\twidth %.3e\n", i, x, x.Width())
	}
	w.Flush()

	if out.Result != nil && len(out.Result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(out.Result.Metrics))
		for name := range out.Result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.6g\n", name, out.Result.Metrics[name])
		}
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	tm, err := exp.TimeMap()
	if err != nil {
		return err
	}
	// Solver diagnostics would draw over the view.
	tm.SetLogger(slog.New(slog.DiscardHandler))

	ctx, cancel := signalContext()
	defer cancel()
	cfg := exp.Config()
	return tui.Run(ctx, cfg.Model, tm, exp.InitialSet(), cfg.End())
}

func runCompare(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	cmp, err := exp.Compare(ctx, rkStep)
	if err != nil {
		return err
	}

	fmt.Printf("%s: RK4 (dt=%g) against the rigorous enclosure at t=%g\n\n", exp.Config().Model, rkStep, exp.Config().End())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "START\tRK4\tCONTAINED")
	for i, p := range cmp.Points {
		label := "center"
		if i > 0 {
			label = fmt.Sprintf("vertex %d", i-1)
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", label, formatPoint(p), cmp.Contained[i])
	}
	w.Flush()

	fmt.Println("\nenclosure:")
	for i, x := range cmp.Enclosure {
		fmt.Printf("  x%d %s\n", i, x)
	}
	if !cmp.AllContained() {
		fmt.Printf("\nlargest excursion: %.3e\n", cmp.Distance)
	}
	return nil
}

func formatPoint(p []float64) string {
	s := make([]string, len(p))
	for i, v := range p {
		s[i] = strconv.FormatFloat(v, 'g', 10, 64)
	}
	return "(" + strings.Join(s, ", ") + ")"
}
