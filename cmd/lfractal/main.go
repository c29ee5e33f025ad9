package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lfractal/internal/config"
	"github.com/san-kum/lfractal/internal/experiment"
	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/storage"
	"github.com/san-kum/lfractal/internal/viz"
)

const defaultFractal = "plant"

var (
	dataDir     string
	verbose     bool
	iterations  int
	unit        float64
	maxSequence int
	precision   int
	width       int
	height      int
	tileWidth   int
	tileHeight  int
	timeout     time.Duration
	save        bool
	surface     string
	metricNames []string
	settings    config.Settings
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lfractal",
		Short:        "L-system fractal lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if settings, err = config.LoadSettings(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("data") {
				dataDir = settings.DataDir
			}
			viz.SetTheme(settings.Theme)
			logger := newLogger(os.Stderr, levelFor(verbose, settings.LogLevel))
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		Args: cobra.MaximumNArgs(1),
		RunE: liveView,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lfractal", "run store directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	addDrawFlags(rootCmd)

	drawCmd := &cobra.Command{
		Use:   "draw [preset|file]",
		Short: "draw a fractal on the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawFractal,
	}
	addDrawFlags(drawCmd)
	drawCmd.Flags().IntVar(&width, "width", 80, "canvas width in cells")
	drawCmd.Flags().IntVar(&height, "height", 32, "canvas height in cells")
	drawCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the draw after this long (0 disables)")
	drawCmd.Flags().BoolVar(&save, "save", false, "store the run")
	drawCmd.Flags().StringVar(&surface, "surface", "recorder", "drawing surface (recorder, logged)")
	drawCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to collect (default all)")

	liveCmd := &cobra.Command{
		Use:   "live [preset|file]",
		Short: "interactive viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveView,
	}
	addDrawFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "redraw a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&width, "width", 80, "canvas width in cells")
	showCmd.Flags().IntVar(&height, "height", 32, "canvas height in cells")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	growthCmd := &cobra.Command{
		Use:   "growth [preset|file]",
		Short: "plot sequence length per rewriting round",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotGrowth,
	}
	addDrawFlags(growthCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [preset|file]",
		Short: "time draws at every depth up to --iterations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchFractal,
	}
	addDrawFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in fractals",
		RunE:  listPresets,
	}

	stateCmd := &cobra.Command{
		Use:   "state [preset|file]",
		Short: "print the grammar state tuple as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printState,
	}

	galleryCmd := &cobra.Command{
		Use:   "gallery [preset|file...]",
		Short: "draw several fractals side by side (default every preset)",
		RunE:  drawGallery,
	}
	galleryCmd.Flags().IntVar(&tileWidth, "width", 24, "canvas width per fractal in cells")
	galleryCmd.Flags().IntVar(&tileHeight, "height", 10, "canvas height per fractal in cells")

	initCmd := &cobra.Command{
		Use:   "init [preset] [file]",
		Short: "write a preset to a YAML or TOML definition file",
		Args:  cobra.ExactArgs(2),
		RunE:  initDefinition,
	}

	rootCmd.AddCommand(drawCmd, liveCmd, listCmd, showCmd, exportCmd, growthCmd, benchCmd, presetsCmd, stateCmd, galleryCmd, initCmd)
	return rootCmd
}

func addDrawFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&iterations, "iterations", "n", config.DefaultIterations, "rewriting rounds")
	cmd.Flags().Float64Var(&unit, "unit", config.DefaultUnit, "step length")
	cmd.Flags().IntVar(&maxSequence, "max", lsystem.DefaultMaxSequence, "maximum sequence length")
	cmd.Flags().IntVar(&precision, "precision", lsystem.DefaultPrecision, "fractional digits kept by the simulator, at most 15 (negative disables rounding)")
}

// loadDefinition resolves the fractal argument and applies settings and any
// flags the user set explicitly.
func loadDefinition(cmd *cobra.Command, args []string) (*config.Definition, error) {
	name := defaultFractal
	if len(args) > 0 {
		name = args[0]
	}
	def, err := config.Resolve(name)
	if err != nil {
		return nil, err
	}
	settings.Apply(def)

	flags := cmd.Flags()
	if flags.Changed("iterations") {
		def.Iterations = iterations
	}
	if flags.Changed("unit") {
		def.Unit = unit
	}
	if flags.Changed("max") {
		def.MaxSequence = maxSequence
	}
	if flags.Changed("precision") {
		def.Precision = precision
	}
	return def, nil
}

func newExperiment(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return nil, err
	}
	return experiment.New(experiment.NewRegistry(), experiment.Config{
		Definition: def,
		Surface:    surface,
		Metrics:    metricNames,
		Logger:     loggerFromContext(cmd.Context()),
	})
}

// warnIfTooLarge logs when the predicted sequence length breaks the cap.
func warnIfTooLarge(cmd *cobra.Command, exp *experiment.Experiment) {
	def := exp.Definition()
	lengths, err := exp.System().PredictLengths(def.Iterations)
	if err != nil {
		return
	}
	limit := def.MaxSequence
	if limit <= 0 {
		limit = lsystem.DefaultMaxSequence
	}
	for i, n := range lengths {
		if n > uint64(limit) {
			loggerFromContext(cmd.Context()).Warn("sequence will exceed the length cap",
				"iteration", i, "predicted", n, "max", limit)
			return
		}
	}
}

func drawFractal(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	warnIfTooLarge(cmd, exp)

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p := newProgress(logger)
	run, err := exp.Run(ctx)
	if errors.Is(err, lsystem.ErrAborted) {
		return fmt.Errorf("draw of %s aborted: %w", exp.Name(), err)
	}
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("drew %s at depth %d", exp.Name(), run.Iterations))

	canvas := viz.NewCanvas(width, height)
	canvas.Plot(run.Segments)
	fmt.Print(viz.CurrentTheme.Ink().Render(canvas.String()))
	fmt.Println()
	fmt.Println(summary(exp.Name(), run))

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		cfg := exp.Definition().DrawConfig()
		runID, err := st.Save(exp.Name(), exp.System().State(), cfg, run.Result, run.Segments)
		if err != nil {
			return err
		}
		logger.Info("saved run", "id", runID, "dir", dataDir)
	}
	return nil
}

func summary(name string, run *experiment.Run) string {
	var b strings.Builder
	b.WriteString(viz.CurrentTheme.Heading().Render(strings.ToUpper(name)) + "\n")
	b.WriteString(viz.Field("iterations", run.Iterations) + "\n")
	b.WriteString(viz.Field("length", run.Length) + "\n")
	b.WriteString(viz.Field("elapsed", run.Elapsed.Round(time.Microsecond)) + "\n")
	b.WriteString(viz.Field("size", fmt.Sprintf("%.2f x %.2f", run.Box.Width(), run.Box.Height())) + "\n")

	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(viz.Field(name, fmt.Sprintf("%.6g", run.Metrics[name])) + "\n")
	}
	return viz.Panel.Render(strings.TrimSuffix(b.String(), "\n"))
}

func drawGallery(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	members := make([]*experiment.Experiment, 0, len(names))
	for _, name := range names {
		exp, err := newExperiment(cmd, []string{name})
		if err != nil {
			return err
		}
		members = append(members, exp)
	}

	p := newProgress(loggerFromContext(cmd.Context()))
	runs, err := experiment.NewEnsemble(members...).Run(cmd.Context())
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("drew %d fractals", len(runs)))

	const perRow = 3
	ink := viz.CurrentTheme.Ink()
	for start := 0; start < len(runs); start += perRow {
		var tiles []string
		for i := start; i < min(start+perRow, len(runs)); i++ {
			canvas := viz.NewCanvas(tileWidth, tileHeight)
			canvas.Plot(runs[i].Segments)
			label := viz.CurrentTheme.Heading().Render(members[i].Name())
			tiles = append(tiles, viz.Panel.Render(label+"\n"+ink.Render(strings.TrimSuffix(canvas.String(), "\n"))))
		}
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return nil
}

func liveView(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	v := viz.NewViewer(cmd.Context(), exp, exp.Definition().Iterations)
	_, err = tea.NewProgram(v, tea.WithAltScreen()).Run()
	return err
}

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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tITER\tLENGTH\tSEGMENTS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			run.Length,
			run.Segments,
			run.Elapsed.Round(time.Microsecond),
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
	segments, err := st.LoadSegments(runID)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(width, height)
	canvas.Plot(segments)
	fmt.Print(viz.CurrentTheme.Ink().Render(canvas.String()))
	fmt.Println()
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("fractal: %s (axiom %s, angle %g)\n", meta.Name, meta.State.Axiom, meta.State.Angle)
	fmt.Printf("iterations: %d, length: %d, segments: %d\n", meta.Iterations, meta.Length, meta.Segments)
	fmt.Printf("drawn: %s in %s\n", meta.Timestamp.Format(time.RFC3339), meta.Elapsed)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotGrowth(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return err
	}
	sys, err := def.Snapshot()
	if err != nil {
		return err
	}
	lengths, err := sys.PredictLengths(def.Iterations)
	if err != nil {
		return err
	}

	data := make([]float64, len(lengths))
	for i, n := range lengths {
		data[i] = math.Log10(max(float64(n), 1))
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("%s: log10(sequence length) per round", def.Name)),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROUND\tLENGTH\t")
	for i, n := range lengths {
		mark := ""
		if n > uint64(def.MaxSequence) && def.MaxSequence > 0 {
			mark = "over cap"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\n", i, n, mark)
	}
	return w.Flush()
}

func benchFractal(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	maxIter := exp.Definition().Iterations

	fmt.Printf("benchmarking %s\n\n", exp.Name())
	samples, err := exp.Sweep(cmd.Context(), maxIter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITER\tLENGTH\tSEGMENTS\tELAPSED\tSYMBOLS/MS")
	for _, s := range samples {
		if s.Err != nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t%v\n", s.Iterations, s.Err)
			continue
		}
		ms := float64(s.Run.Elapsed) / float64(time.Millisecond)
		rate := 0.0
		if ms > 0 {
			rate = float64(s.Run.Length) / ms
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%.0f\n",
			s.Iterations, s.Run.Length, len(s.Run.Segments), s.Run.Elapsed.Round(time.Microsecond), rate)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tANGLE\tAXIOM\tITER\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		def, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%s\t%d\t%s\n", def.Name, def.Angle, def.Axiom, def.Iterations, def.Description)
	}
	return w.Flush()
}

func printState(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(cmd, args)
	if err != nil {
		return err
	}
	sys, err := def.Snapshot()
	if err != nil {
		return err
	}
	data, err := json.Marshal(sys.State())
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func initDefinition(cmd *cobra.Command, args []string) error {
	def, err := config.GetPreset(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Stat(args[1]); err == nil {
		return fmt.Errorf("%s already exists", args[1])
	}
	if err := config.Save(args[1], def); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("wrote definition", "preset", def.Name, "file", args[1])
	return nil
}
