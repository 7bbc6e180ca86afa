package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const debugLog = "orrery-debug.log"

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	theme      string
	debug      bool

	// simulate / snapshot
	ticks    int
	every    int
	plotBody string
	csvPath  string
	svgPath  string
	save     bool
	outPath  string
	width    int
	height   int
	labels   bool

	noOrbits  bool
	writePath string
)

// main registers the orrery commands and runs the terminal view when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "orrery",
		Short:        "interactive solar system",
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for planet phases and stars")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "colour theme (dark, light)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log to "+debugLog)
	rootCmd.Flags().BoolVar(&noOrbits, "no-orbits", false, "hide orbit rings")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal view",
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&noOrbits, "no-orbits", false, "hide orbit rings")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&noOrbits, "no-orbits", false, "hide orbit rings")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "advance the orbits headless and report positions",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	simulateCmd.Flags().IntVar(&every, "every", 10, "keep a frame every n ticks")
	simulateCmd.Flags().StringVar(&plotBody, "body", "", "plot a body's x position")
	simulateCmd.Flags().StringVar(&csvPath, "csv", "", "write frames to a CSV file")
	simulateCmd.Flags().StringVar(&svgPath, "svg", "", "write orbit traces to an SVG file")
	simulateCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "Earth", "body to plot")

	transitionCmd := &cobra.Command{
		Use:   "transition [body|reset]",
		Short: "run a camera transition headless and report its convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransition,
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the configured bodies",
		RunE:  listBodies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "save the configuration to a file instead")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the scene to a PNG or SVG file",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to advance before rendering")
	snapshotCmd.Flags().StringVar(&outPath, "out", "orrery.png", "output file (.png or .svg)")
	snapshotCmd.Flags().IntVar(&width, "width", 1280, "image width")
	snapshotCmd.Flags().IntVar(&height, "height", 720, "image height")
	snapshotCmd.Flags().BoolVar(&labels, "labels", true, "draw body names (png)")

	rootCmd.AddCommand(tuiCmd, guiCmd, simulateCmd, runsCmd, plotCmd, transitionCmd, bodiesCmd, presetsCmd, configCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: a file, else a preset, else the
// defaults, with any explicitly set flags applied on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging routes the std logger to a file when --debug is set and
// discards it otherwise.
func setupLogging() (*log.Logger, func(), error) {
	if !debug {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(debugLog, "orrery ")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return log.Default(), func() { f.Close() }, nil
}

// newScene loads the configuration and logging and builds a scene.
func newScene(cmd *cobra.Command) (*scene.Scene, *config.Config, *log.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, closeLog, err := setupLogging()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	// pin the seed so saved runs and debug logs can be reproduced
	cfg.Seed = cfg.ResolveSeed()
	logger.Printf("seed %d", cfg.Seed)
	s, err := scene.New(cfg, scene.WithLogger(logger))
	if err != nil {
		closeLog()
		return nil, nil, nil, nil, err
	}
	return s, cfg, logger, closeLog, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, cfg, logger, closeLog, err := newScene(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	m := viz.NewModel(s, viz.WithFPS(cfg.FPS), viz.WithLogger(logger), viz.WithOrbits(!noOrbits))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()
	return gui.Run(cfg, gui.WithLogger(logger), gui.WithOrbits(!noOrbits))
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if ticks < 1 {
		return fmt.Errorf("--ticks must be positive, got %d", ticks)
	}
	s, cfg, logger, closeLog, err := newScene(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	if plotBody != "" {
		if _, ok := s.System().Body(plotBody); !ok {
			return fmt.Errorf("unknown body %q", plotBody)
		}
	}

	frames := export.Record(s.System(), ticks, every)

	if csvPath != "" {
		if err := writeFile(csvPath, func(w io.Writer) error { return export.WriteCSV(w, frames) }); err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", len(frames), csvPath)
	}
	if svgPath != "" {
		colors := make(map[string]string)
		for _, b := range s.Bodies() {
			colors[b.Name] = b.Color
		}
		svg := export.OrbitsToSVG(frames, colors, 800, viz.GetTheme(s.Theme()))
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote orbit traces to %s\n", svgPath)
	}
	if save {
		id, err := saveRun(cfg, s, frames)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Printf("saved run %s", id)
		fmt.Printf("saved run %s\n", id)
	}

	if plotBody != "" {
		var xs []float64
		for _, f := range frames {
			for _, b := range f.Bodies {
				if b.Name == plotBody {
					xs = append(xs, b.X)
				}
			}
		}
		graph := asciigraph.Plot(xs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s x over %d ticks", plotBody, ticks)),
		)
		fmt.Println(graph)
		return nil
	}

	if csvPath != "" || svgPath != "" || save {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BODY\tANGLE\tX\tZ\tSPEED\n")
	for _, b := range s.Bodies() {
		fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%.3f\t%.3f\n", b.Name, b.Angle, b.Position.X(), b.Position.Z(), b.AngularSpeed)
	}
	w.Flush()
	return nil
}

func saveRun(cfg *config.Config, s *scene.Scene, frames []export.Frame) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	speeds := make(map[string]float64)
	for _, b := range s.Planets() {
		speeds[b.Name] = b.AngularSpeed
	}
	return st.Save(storage.RunMetadata{
		Preset: preset,
		Seed:   cfg.Seed,
		Ticks:  ticks,
		Every:  every,
		Speeds: speeds,
	}, frames)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tPRESET\tSEED\tTICKS\tTIME\n")
	for _, r := range runs {
		p := r.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, p, r.Seed, r.Ticks, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	var xs, zs []float64
	for _, f := range frames {
		for _, b := range f.Bodies {
			if b.Name == plotBody {
				xs = append(xs, b.X)
				zs = append(zs, b.Z)
			}
		}
	}
	if len(xs) == 0 {
		return fmt.Errorf("run %s has no body %q", meta.ID, plotBody)
	}

	fmt.Printf("run %s: %d ticks, seed %d\n\n", meta.ID, meta.Ticks, meta.Seed)
	fmt.Println(asciigraph.PlotMany([][]float64{xs, zs},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(fmt.Sprintf("%s x (red) and z (blue)", plotBody)),
	))
	return nil
}

func runTransition(cmd *cobra.Command, args []string) error {
	s, _, _, closeLog, err := newScene(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	var gen uint64
	if args[0] == "reset" {
		gen = s.ResetCamera()
	} else {
		gen, err = s.ZoomTo(args[0])
		if err != nil {
			return err
		}
	}

	tr := s.Transition()
	start := tr.Remaining()
	remaining := []float64{start}
	for s.StepTransition(gen) {
		remaining = append(remaining, tr.Remaining())
	}
	remaining = append(remaining, tr.Remaining())

	bound := camera.MaxSteps(start, tr.Alpha(), tr.Epsilon())
	cam := s.Camera()
	fmt.Printf("target:    %s\n", args[0])
	fmt.Printf("distance:  %.3f\n", start)
	fmt.Printf("steps:     %d (bound %d)\n", tr.Steps(), bound)
	fmt.Printf("position:  %.2f %.2f %.2f\n", cam.Position.X(), cam.Position.Y(), cam.Position.Z())
	fmt.Printf("look at:   %.2f %.2f %.2f\n", cam.LookAt.X(), cam.LookAt.Y(), cam.LookAt.Z())

	if len(remaining) > 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(remaining,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("distance to goal"),
		))
	}
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tCOLOR\tSIZE\tDISTANCE\tSPEED\tPHASE\n")
	fmt.Fprintf(w, "%s\t%s\t%.2f\t-\t-\t-\n", cfg.Sun.Name, cfg.Sun.Color, cfg.Sun.Size)
	for _, b := range cfg.Bodies {
		phase := "random"
		if b.Phase != nil {
			phase = fmt.Sprintf("%.3f", *b.Phase)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f\t%.3f\t%s\n", b.Name, b.Color, b.Size, b.Distance, b.Speed, phase)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, _, _, closeLog, err := newScene(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	for i := 0; i < ticks; i++ {
		s.Frame()
	}
	th := viz.GetTheme(s.Theme())

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".png":
		opts := export.SnapshotOptions{Width: width, Height: height, Labels: labels}
		err = writeFile(outPath, func(w io.Writer) error { return export.WritePNG(w, s, th, opts) })
	case ".svg":
		// one canvas cell per 8×16 pixels, matching a terminal cell
		c := viz.NewCanvas(max(10, width/8), max(5, height/16))
		s.SetAspect(c.Aspect())
		viz.RenderScene(c, s, th, viz.RenderOptions{Orbits: true})
		err = os.WriteFile(outPath, []byte(export.CanvasToSVG(c, 4, th)), 0644)
	default:
		return fmt.Errorf("unsupported snapshot format %q", ext)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
