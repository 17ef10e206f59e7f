package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigsim/internal/config"
	"github.com/san-kum/rigsim/internal/experiment"
	"github.com/san-kum/rigsim/internal/export"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/storage"
	"github.com/san-kum/rigsim/internal/tui"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	faint   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	failure = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tORDER\tSTEPS\tWIDTH\tSTATUS")

	for _, run := range runs {
		width := math.NaN()
		if box, err := run.FinalBox(); err == nil {
			width = box.MaxWidth()
		}
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\t%d\t%.3e\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Solver.Order,
			run.Steps,
			width,
			status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if asJSON || outFile != "" {
		records, err := st.LoadRecords(runID)
		if err != nil {
			return err
		}
		if outFile != "" {
			return storage.ExportJSONFile(outFile, meta, records)
		}
		return storage.ExportJSON(os.Stdout, meta, records)
	}

	box, err := meta.FinalBox()
	if err != nil {
		return err
	}

	fmt.Println(heading.Render(meta.ID))
	fmt.Printf("model:     %s\n", meta.Model)
	fmt.Printf("time:      [%g, %g]\n", meta.Start, meta.Start+meta.Duration)
	fmt.Printf("radius:    %g\n", meta.Radius)
	fmt.Printf("parts:     %d\n", meta.Parts)
	fmt.Printf("solver:    order %d, tol %g/%g, adaptive %v\n", meta.Solver.Order, meta.Solver.AbsTol, meta.Solver.RelTol, meta.Solver.Adaptive)
	fmt.Printf("steps:     %d (%d rejected)\n", meta.Steps, meta.Rejections)
	if meta.Error != "" {
		fmt.Println(failure.Render("error:     " + meta.Error))
	}
	if len(meta.Params) > 0 {
		fmt.Println("\nparams:")
		for _, name := range sortedKeys(meta.Params) {
			fmt.Printf("  %s = %g\n", name, meta.Params[name])
		}
	}

	fmt.Println("\nfinal enclosure:")
	for i, x := range box {
		fmt.Printf("  x%d %s\n", i, x)
		fmt.Println(faint.Render("     " + meta.Final[i]))
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, name := range sortedKeys(meta.Metrics) {
			fmt.Printf("  %s: %.6g\n", name, meta.Metrics[name])
		}
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadRecords(runID)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if svgFile != "" {
		return writeSVG(records)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("records: %d\n\n", len(records))

	if phase {
		plane := tui.NewPhasePlane(72, 24, xAxis, yAxis)
		for _, r := range records {
			plane.Add(r.Box)
		}
		fmt.Printf("x%d × x%d\n", xAxis, yAxis)
		for _, row := range plane.Render() {
			fmt.Println("│" + row)
		}
		return nil
	}

	// Parts are plotted one after another.
	widths := make([]float64, len(records))
	for i, r := range records {
		widths[i] = math.Log10(math.Max(r.Width, 1e-300))
	}
	fmt.Println(asciigraph.Plot(widths,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 enclosure width per step"),
	))
	fmt.Println()

	numVars := min(len(records[0].Box), 6)
	for varIdx := 0; varIdx < numVars; varIdx++ {
		lo := make([]float64, len(records))
		hi := make([]float64, len(records))
		for i, r := range records {
			lo[i], hi[i] = r.Box[varIdx].Lo(), r.Box[varIdx].Hi()
		}
		graph := asciigraph.PlotMany([][]float64{lo, hi},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption(fmt.Sprintf("x%d bounds vs step", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func writeSVG(records []storage.Record) error {
	times := make([]interval.Interval, len(records))
	boxes := make([]interval.Vector, len(records))
	for i, r := range records {
		times[i], boxes[i] = r.Time, r.Box
	}
	var svg string
	if phase {
		svg = export.ProjectionSVG(boxes, xAxis, yAxis, 800, 800)
	} else {
		svg = export.TubeSVG(times, boxes, xAxis, 1000, 400)
	}
	if svg == "" {
		return fmt.Errorf("nothing to draw for x%d", xAxis)
	}
	if err := os.WriteFile(svgFile, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tDIM\tSTATE\tPARAMS")
	for _, name := range registry.ListModels() {
		m, err := registry.GetModel(name)
		if err != nil {
			return err
		}
		p := m.GetParams()
		kv := make([]string, 0, len(p))
		for _, k := range sortedKeys(p) {
			kv = append(kv, fmt.Sprintf("%s=%g", k, p[k]))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, m.StateDim(), formatPoint(m.DefaultState()), strings.Join(kv, " "))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for model: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		cfg := config.GetPreset(args[0], p)
		fmt.Printf("  %-12s %s\n", p, faint.Render(fmt.Sprintf("t=%g radius=%g order=%d", cfg.Duration, cfg.Radius, cfg.Solver.Order)))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
