package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigsim/internal/analysis"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/experiment"
	"github.com/san-kum/rigsim/internal/integrators"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/storage"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadRecords(args[0])
	if err != nil {
		return err
	}

	// Split runs are analyzed on their first part.
	var times []interval.Interval
	var widths []float64
	var boxes []interval.Vector
	for _, r := range records {
		if r.Part != 0 {
			continue
		}
		times = append(times, r.Time)
		widths = append(widths, r.Width)
		boxes = append(boxes, r.Box)
	}
	if len(boxes) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	fmt.Println(heading.Render(meta.ID))
	rate, err := analysis.GrowthRate(times, widths)
	switch {
	case errors.Is(err, analysis.ErrTooFewSamples):
		fmt.Println("width growth rate: too few steps")
	case err != nil:
		return err
	default:
		fmt.Printf("width growth rate: %.4g /time\n", rate)
	}

	model, err := experiment.NewRegistry().GetModel(meta.Model)
	if err != nil {
		return err
	}
	for name, v := range meta.Params {
		if err := model.SetParam(name, v); err != nil {
			return err
		}
	}
	g, err := model.Field()
	if err != nil {
		return err
	}
	x0 := dynamo.State(boxes[0].Mid())
	lambda := analysis.LyapunovExponent(integrators.NewPointSystem(g), x0, meta.Start, meta.Duration, rkStep, 1e-8)
	fmt.Printf("lyapunov exponent: %.4g (RK4 from the initial center, dt=%g)\n", lambda, rkStep)

	ts := make([]float64, len(times))
	for i, tm := range times {
		ts[i] = tm.Mid()
	}
	fmt.Println("\ndominant frequencies of the enclosure centers:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i := range boxes[0] {
		vs := make([]float64, len(boxes))
		for k, b := range boxes {
			vs[k] = b[i].Mid()
		}
		freqs, power, err := analysis.Spectrum(ts, vs, bins)
		if err != nil {
			fmt.Fprintf(w, "  x%d\t%s\n", i, faint.Render("too few steps"))
			continue
		}
		fmt.Fprintf(w, "  x%d\t%.4g\n", i, analysis.DominantFrequency(freqs, power))
	}
	return w.Flush()
}
