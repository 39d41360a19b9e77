package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pdelab/internal/analysis"
	"github.com/san-kum/pdelab/internal/config"
	"github.com/san-kum/pdelab/internal/experiment"
	"github.com/san-kum/pdelab/internal/field"
	"github.com/san-kum/pdelab/internal/pde"
	"github.com/san-kum/pdelab/internal/render"
	"github.com/san-kum/pdelab/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string

	gridPoints int
	length     float64
	boundary   string
	dt         float64
	margin     float64
	frames     int
	skip       int
	seed       int64

	diffusion  float64
	growth     float64
	capacity   float64
	diffusionV float64
	feed       float64
	kill       float64
	noise      float64
	speed      float64

	initShape     string
	initFrom      float64
	initTo        float64
	initAmplitude float64

	frameRate int
	component int
	point     int
	center    float64
	width     int
	height    int
	scale     int
	outPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdelab",
		Short: "finite-difference PDE simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pdelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and save the history",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a simulation with live terminal animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot profiles and point trajectories of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", 0, "component index")
	plotCmd.Flags().IntVar(&point, "point", -1, "grid point for the time series (-1 = center)")

	heatmapCmd := &cobra.Command{
		Use:   "heatmap [run_id]",
		Short: "render the space-time history as a terminal heat map",
		Args:  cobra.ExactArgs(1),
		RunE:  heatmapRun,
	}
	heatmapCmd.Flags().IntVar(&component, "component", 0, "component index")
	heatmapCmd.Flags().Float64Var(&center, "center", 0, "colormap midpoint (0 = carrying capacity or range midpoint)")
	heatmapCmd.Flags().IntVar(&width, "width", 100, "heat map width in cells")
	heatmapCmd.Flags().IntVar(&height, "height", 40, "heat map height in cells")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spatial spectrum of the final profile",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&component, "component", 0, "component index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the saved history CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write the saved history to stdout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "write the space-time heat map as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().IntVar(&component, "component", 0, "component index")
	exportPNGCmd.Flags().Float64Var(&center, "center", 0, "colormap midpoint (0 = carrying capacity or range midpoint)")
	exportPNGCmd.Flags().IntVar(&scale, "scale", 4, "pixels per sample")
	exportPNGCmd.Flags().StringVar(&outPath, "out", "heatmap.png", "output file")

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "write profile and point-trajectory line charts as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().IntVar(&component, "component", 0, "component index")
	chartCmd.Flags().IntVar(&point, "point", -1, "grid point for the time series (-1 = center)")
	chartCmd.Flags().StringVar(&outPath, "out", "profiles.png", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark stepping throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListModels() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, heatmapCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportPNGCmd, chartCmd, presetsCmd, benchCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&gridPoints, "n", config.DefaultN, "grid points")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	cmd.Flags().StringVar(&boundary, "boundary", "reflecting", "boundary condition (heat model)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "sub-step size (0 = from stability margin)")
	cmd.Flags().Float64Var(&margin, "margin", config.DefaultMargin, "stability margin d*dt")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "output frames")
	cmd.Flags().IntVar(&skip, "skip", config.DefaultSkip, "sub-steps per frame")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed (stochastic model)")
	cmd.Flags().Float64Var(&diffusion, "diffusion", config.DefaultDiffusion, "diffusion coefficient D")
	cmd.Flags().Float64Var(&growth, "growth", config.DefaultGrowth, "logistic growth rate a")
	cmd.Flags().Float64Var(&capacity, "capacity", config.DefaultCapacity, "carrying capacity K")
	cmd.Flags().Float64Var(&diffusionV, "diffusion-v", 0.001, "activator diffusion (grayscott)")
	cmd.Flags().Float64Var(&feed, "feed", 0.025, "feed rate F (grayscott)")
	cmd.Flags().Float64Var(&kill, "kill", 0.055, "kill rate k (grayscott)")
	cmd.Flags().Float64Var(&noise, "noise", 0.1, "noise amplitude (stochastic)")
	cmd.Flags().Float64Var(&speed, "speed", 16.0, "soliton speed (kdv)")
	cmd.Flags().StringVar(&initShape, "init-shape", "default", "initial condition shape")
	cmd.Flags().Float64Var(&initFrom, "init-from", 0.6, "pulse start (fraction of length)")
	cmd.Flags().Float64Var(&initTo, "init-to", 0.7, "pulse end (fraction of length)")
	cmd.Flags().Float64Var(&initAmplitude, "init-amplitude", 0, "pulse/uniform amplitude")
}

// buildConfig resolves the run configuration: defaults, then preset, then
// config file, then explicitly changed CLI flags.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Model = model
		cfg = loaded
	}

	flagSets := map[string]func(){
		"n":              func() { cfg.N = gridPoints },
		"length":         func() { cfg.Length = length },
		"boundary":       func() { cfg.Boundary = boundary },
		"dt":             func() { cfg.Dt = dt },
		"margin":         func() { cfg.StabilityMargin = margin },
		"frames":         func() { cfg.Frames = frames },
		"skip":           func() { cfg.Skip = skip },
		"seed":           func() { cfg.Seed = seed },
		"diffusion":      func() { cfg.Params.Diffusion = diffusion },
		"growth":         func() { cfg.Params.Growth = growth },
		"capacity":       func() { cfg.Params.Capacity = capacity },
		"diffusion-v":    func() { cfg.Params.DiffusionV = diffusionV },
		"feed":           func() { cfg.Params.Feed = feed },
		"kill":           func() { cfg.Params.Kill = kill },
		"noise":          func() { cfg.Params.Noise = noise },
		"speed":          func() { cfg.Params.Speed = speed },
		"init-shape":     func() { cfg.Init.Shape = initShape },
		"init-from":      func() { cfg.Init.From = initFrom },
		"init-to":        func() { cfg.Init.To = initTo },
		"init-amplitude": func() { cfg.Init.Amplitude = initAmplitude },
	}
	for name, apply := range flagSets {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	// Stochastic runs still want a seed even when none was given explicitly.
	if cfg.Model == "stochastic" && cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	warning, err := exp.Setup(registry)
	if err != nil {
		return err
	}
	if warning != nil {
		fmt.Printf("warning: %v (run will likely diverge)\n", warning)
	}

	fmt.Printf("running %s: n=%d dt=%g frames=%d skip=%d\n",
		cfg.Model, cfg.N, cfg.Timestep(), cfg.Frames, cfg.Skip)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	params := map[string]float64{}
	if c, ok := exp.System().(pde.Configurable); ok {
		params = c.GetParams()
	}

	runID, err := st.Save(cfg, params, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (history rows: %d)\n", result.Frames, result.History.Rows())
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	build := func() (*pde.Engine, pde.System, error) {
		sys, err := registry.GetSystem(cfg)
		if err != nil {
			return nil, nil, err
		}
		init, err := registry.InitialState(sys, cfg)
		if err != nil {
			return nil, nil, err
		}
		engine, err := pde.New(sys, init, pde.Config{
			Dt:       cfg.Timestep(),
			Frames:   cfg.Frames,
			Skip:     cfg.Skip,
			Validate: true,
		})
		if err != nil {
			return nil, nil, err
		}
		if warn := engine.CheckStability(); warn != nil {
			fmt.Printf("warning: %v\n", warn)
		}
		return engine, sys, nil
	}

	m, err := render.NewLive(cfg.Model, build, cfg.Frames, frameRate)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tN\tDT\tFRAMES\tSKIP\tBOUNDARY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3g\t%d\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Dt,
			run.Frames,
			run.Skip,
			run.Boundary,
		)
	}
	return w.Flush()
}

func loadComponent(runID string) (*storage.RunMetadata, []float64, [][]float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	times, traj, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if component < 0 || component >= meta.Components {
		return nil, nil, nil, fmt.Errorf("component %d out of range (run has %d)", component, meta.Components)
	}
	rows := make([][]float64, len(traj[component]))
	for k, f := range traj[component] {
		rows[k] = f
	}
	return meta, times, rows, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, times, rows, err := loadComponent(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("rows: %d\n\n", len(rows))

	final := rows[len(rows)-1]
	graph := asciigraph.Plot(final,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("final profile (t=%.4g)", times[len(times)-1])),
	)
	fmt.Println(graph)
	fmt.Println()

	p := point
	if p < 0 {
		p = meta.N / 2
	}
	if p >= meta.N {
		return fmt.Errorf("grid point %d out of range", p)
	}
	series := make([]float64, len(rows))
	for k := range rows {
		series[k] = rows[k][p]
	}
	graph = asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("u[%d] vs time", p)),
	)
	fmt.Println(graph)
	return nil
}

// resolveCenter picks the colormap midpoint: an explicit flag wins, then
// the run's carrying capacity, then the range midpoint.
func resolveCenter(meta *storage.RunMetadata, rows [][]float64) float64 {
	if center != 0 {
		return center
	}
	if k, ok := meta.Params["capacity"]; ok && k != 0 {
		return k
	}
	min, max := rows[0][0], rows[0][0]
	for _, row := range rows {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return (min + max) / 2
}

func heatmapRun(cmd *cobra.Command, args []string) error {
	meta, _, rows, err := loadComponent(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no data to render")
	}

	mid := resolveCenter(meta, rows)
	fmt.Printf("%s: space →, time ↓, colormap centered at %.4g\n\n", meta.ID, mid)
	fmt.Print(render.HeatmapString(rows, mid, width, height))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, times, rows, err := loadComponent(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no data to analyze")
	}

	final := rows[len(rows)-1]
	ps := analysis.PowerSpectrum(final)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("spatial spectrum at t=%.4g", times[len(times)-1])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	k := analysis.DominantWavenumber(final)
	if k == 0 {
		fmt.Println("profile is flat: no dominant mode")
		return nil
	}
	fmt.Printf("dominant wavenumber: %d\n", k)
	fmt.Printf("dominant wavelength: %.4g\n", analysis.DominantWavelength(final, meta.Length))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filepath.Join(dataDir, args[0], "history.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, traj, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, times, traj)
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, _, rows, err := loadComponent(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no data to render")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	mid := resolveCenter(meta, rows)
	if err := render.WriteHeatmapPNG(f, rows, mid, scale); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d samples, center %.4g)\n", outPath, len(rows[0]), len(rows), mid)
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	meta, times, rows, err := loadComponent(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no data to chart")
	}

	xs := field.Coords(meta.N, meta.Length)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := render.WriteProfileChart(f, xs, rows, times); err != nil {
		return err
	}

	p := point
	if p < 0 {
		p = meta.N / 2
	}
	pointPath := pointChartPath(outPath)
	pf, err := os.Create(pointPath)
	if err != nil {
		return err
	}
	defer pf.Close()
	if err := render.WritePointChart(pf, times, rows, p); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s\n", outPath, pointPath)
	return nil
}

func pointChartPath(profilePath string) string {
	ext := filepath.Ext(profilePath)
	return profilePath[:len(profilePath)-len(ext)] + "_point" + ext
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]
	registry := experiment.NewRegistry()

	sizes := []int{100, 400, 1600}
	frameCounts := []int{200, 1000}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tFRAMES\tSUBSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range sizes {
		for _, fc := range frameCounts {
			cfg := config.DefaultConfig()
			cfg.Model = model
			cfg.N = n
			cfg.Frames = fc
			cfg.Skip = 4
			cfg.Seed = 42

			exp := experiment.New(cfg)
			if _, err := exp.Setup(registry); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			substeps := result.Frames * cfg.Skip
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
				n, fc, substeps, elapsed, float64(substeps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
