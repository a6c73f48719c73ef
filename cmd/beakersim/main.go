package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/beakersim/internal/analysis"
	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/config"
	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/export"
	"github.com/san-kum/beakersim/internal/metrics"
	"github.com/san-kum/beakersim/internal/particle"
	"github.com/san-kum/beakersim/internal/sim"
	"github.com/san-kum/beakersim/internal/storage"
	"github.com/san-kum/beakersim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	fps        int
	duration   float64
	protons    int
	strong     int
	weak       int
	svgScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beakersim",
		Short: "acid/base conjugate equilibrium particle lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beakersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the result",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live terminal visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the bonded-pair series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run a scenario and emit an SVG snapshot of the final state",
		RunE:  exportSVG,
	}
	addScenarioFlags(exportSVGCmd)
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 2.0, "svg pixels per solution unit")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd(), listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds")
	cmd.Flags().IntVar(&protons, "protons", -1, "proton count")
	cmd.Flags().IntVar(&strong, "strong", -1, "strong conjugate base count")
	cmd.Flags().IntVar(&weak, "weak", -1, "weak conjugate base count")
}

// loadScenario resolves the scenario config: preset, then config file, then
// CLI flag overrides, in increasing precedence.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("protons") {
		cfg.Species.Protons = protons
	}
	if cmd.Flags().Changed("strong") {
		cfg.Species.StrongBases = strong
	}
	if cmd.Flags().Changed("weak") {
		cfg.Species.WeakBases = weak
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// buildBeaker constructs and populates a beaker for a scenario.
func buildBeaker(cfg *config.Config, clock engine.Clock, rng *rand.Rand) *beaker.Beaker {
	solution := engine.Rect{
		X:      cfg.Solution.X,
		Y:      cfg.Solution.Y,
		Width:  cfg.Solution.Width,
		Height: cfg.Solution.Height,
	}
	b := beaker.New(solution, clock, rng)
	for kind, traits := range cfg.BuildTraits() {
		b.SetTraits(kind, traits)
	}
	b.AddParticles(particle.KindProton, cfg.Species.Protons)
	b.AddParticles(particle.KindStrongBase, cfg.Species.StrongBases)
	b.AddParticles(particle.KindWeakBase, cfg.Species.WeakBases)
	return b
}

func scenarioName() string {
	if preset != "" {
		return preset
	}
	return "custom"
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	clock := engine.NewFrameClock(time.Now(), time.Second/time.Duration(cfg.FPS))
	b := buildBeaker(cfg, clock, rand.New(rand.NewSource(cfg.Seed)))

	runner := sim.New(b, clock)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s scenario...\n", scenarioName())
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		FPS:      cfg.FPS,
		Duration: time.Duration(cfg.Duration * float64(time.Second)),
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenarioName(), cfg.FPS, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	// The live view runs on the wall clock so bond timers are frame-rate
	// independent; reset re-seeds identically.
	newBeaker := func() *beaker.Beaker {
		return buildBeaker(cfg, engine.SystemClock{}, rand.New(rand.NewSource(cfg.Seed)))
	}

	m := viz.NewModel(newBeaker, scenarioName(), cfg.FPS)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tFPS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := map[string][]float64{
		"bonded pairs": make([]float64, len(frames)),
		"free protons": make([]float64, len(frames)),
	}
	for i, f := range frames {
		series["bonded pairs"][i] = float64(f.BondedPairs)
		series["free protons"][i] = float64(f.FreeProtons)
	}

	for _, caption := range []string{"bonded pairs", "free protons"} {
		graph := asciigraph.Plot(series[caption],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	series := make([]float64, len(frames))
	for i, f := range frames {
		series[i] = float64(f.BondedPairs)
	}

	ps := analysis.PowerSpectrum(series)
	plotData := ps
	if len(plotData) > len(ps)/4 && len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (bonded pairs)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(series, float64(meta.FPS))
	fmt.Printf("dominant frequency: %.3f hz (power %.2f)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	clock := engine.NewFrameClock(time.Now(), time.Second/time.Duration(cfg.FPS))
	b := buildBeaker(cfg, clock, rand.New(rand.NewSource(cfg.Seed)))

	runner := sim.New(b, clock)
	if _, err := runner.Run(context.Background(), sim.Config{
		FPS:      cfg.FPS,
		Duration: time.Duration(cfg.Duration * float64(time.Second)),
	}); err != nil {
		return err
	}

	fmt.Println(export.BeakerSVG(b, svgScale))
	return nil
}
