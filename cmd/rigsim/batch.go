package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigsim/internal/automation"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/experiment"
	"github.com/san-kum/rigsim/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), slog.Default())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODEL\tNAME\tSTEPS\tWIDTH\tRUN")
	for i, r := range results {
		width, runID := "-", "-"
		if r.Outcome != nil {
			parts := []*dynamo.Result{r.Outcome.Result}
			if r.Outcome.Cover != nil {
				parts = r.Outcome.Cover.Parts
			}
			if id, serr := st.Save(r.Step.Config, parts, r.Err); serr == nil {
				runID = id
			} else {
				slog.Warn("saving step failed", "step", i+1, "err", serr)
			}
			if r.Err == nil {
				width = fmt.Sprintf("%.3e", r.Outcome.FinalBox().MaxWidth())
			}
		}
		if r.Err != nil {
			width = failure.Render("failed")
		}
		steps := 0
		if r.Outcome != nil {
			steps = r.Outcome.Steps()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", i+1, r.Step.Config.Model, r.Step.SaveAs, steps, width, runID)
	}
	w.Flush()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	points, best, err := automation.RunSweep(ctx, cfg, experiment.NewRegistry(),
		automation.Sweep{Orders: orders, Tolerances: tols}, slog.Default())
	if err != nil {
		return err
	}

	fmt.Printf("%s over [%g, %g]\n\n", cfg.Model, cfg.Start, cfg.End())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tTOL\tSTEPS\tWIDTH\tTIME")
	for _, p := range points {
		width := fmt.Sprintf("%.3e", p.Width)
		if p.Err != nil {
			width = failure.Render("failed")
		}
		mark := ""
		if best != nil && p.Order == best.Order && p.Tolerance == best.Tolerance {
			mark = heading.Render(" ◂")
		}
		fmt.Fprintf(w, "%d\t%g\t%d\t%s\t%v%s\n", p.Order, p.Tolerance, p.Steps, width, p.Elapsed.Round(time.Millisecond), mark)
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	res, err := automation.RunMonteCarlo(ctx, exp, automation.MonteCarloConfig{Trials: trials, Step: rkStep, Seed: seed})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d random starts, %d outside the enclosure\n", exp.Config().Model, len(res.Finals), res.Escaped)
	if res.Escaped > 0 {
		fmt.Printf("largest excursion: %.3e\n", res.Distance)
	}
	return nil
}
