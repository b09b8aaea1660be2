package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cartsim/internal/config"
	"github.com/san-kum/cartsim/internal/export"
	"github.com/san-kum/cartsim/internal/metrics"
	"github.com/san-kum/cartsim/internal/sim"
	"github.com/san-kum/cartsim/internal/storage"
	"github.com/san-kum/cartsim/internal/track"
	"github.com/san-kum/cartsim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	debug      bool
	preset     string
	maxTicks   int
	noSave     bool
	trace      bool
	frameRate  int
	ticks      int
	svgOut     string
)

// main registers the commands and flags and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cartsim",
		Short:         "mine cart collision simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debug, trace)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log crashes and progress to stderr")

	runCmd := &cobra.Command{
		Use:   "run [map]",
		Short: "run a map until one cart is left",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a built-in map")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "give up after this many ticks")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&trace, "trace", false, "log the map after every tick")

	liveCmd := &cobra.Command{
		Use:   "live [map]",
		Short: "watch a map run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a built-in map")
	liveCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "give up after this many ticks")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "ticks per second")

	renderCmd := &cobra.Command{
		Use:   "render [map]",
		Short: "print a map after a number of ticks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderMap,
	}
	renderCmd.Flags().StringVar(&preset, "preset", "", "use a built-in map")
	renderCmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to run before printing")
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "also write the map as SVG to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run with its tick history as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return storage.New(cfg.DataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot active carts per tick",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot as SVG to this file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, renderCmd, listCmd, exportCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with flags the user set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
		cfg.Map = ""
	}
	if len(args) > 0 {
		cfg.Map = args[0]
		cfg.Preset = ""
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("no-save") {
		cfg.Save = !noSave
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setupLogging(cfg.Debug, trace)
	return cfg, nil
}

// loadLayout parses the map named by cfg and returns a short name for it.
func loadLayout(cfg *config.Config) (string, *track.Layout, error) {
	src, err := cfg.Source()
	if err != nil {
		return "", nil, err
	}
	layout, err := track.ParseString(src)
	if err != nil {
		return "", nil, err
	}

	name := cfg.Preset
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(cfg.Map), filepath.Ext(cfg.Map))
	}
	log.WithFields(logrus.Fields{
		"map":   name,
		"grid":  fmt.Sprintf("%dx%d", layout.Grid.Width(), layout.Grid.Height()),
		"carts": len(layout.Spawns),
	}).Debug("loaded map")
	return name, layout, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	name, layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	engine := sim.New(layout)
	for _, m := range metrics.Defaults() {
		engine.AddMetric(m)
	}
	history := sim.NewHistory(engine.ActiveCount())
	engine.AddObserver(history)
	engine.AddObserver(&logObserver{grid: layout.Grid})

	start := time.Now()
	result, runErr := engine.Run(context.Background(), sim.Config{MaxTicks: cfg.MaxTicks})
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	if result != nil {
		log.WithFields(logrus.Fields{
			"map":     name,
			"ticks":   result.Ticks,
			"elapsed": elapsed,
		}).Debug("run finished")
		report(out, result)
	}

	if cfg.Save && result != nil {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Map:      name,
			MaxTicks: cfg.MaxTicks,
			Result:   result,
			History:  history,
			Err:      runErr,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	name, layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(layout, name, sim.Config{MaxTicks: cfg.MaxTicks}, cfg.FPS)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil && !errors.Is(fm.Err(), sim.ErrDidNotConverge) {
		return fm.Err()
	}
	return nil
}

func renderMap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	_, layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	engine := sim.New(layout)
	for i := 0; i < ticks && engine.Status() == sim.Running; i++ {
		if _, err := engine.Step(); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tick %d, %d active\n", engine.Tick(), engine.ActiveCount())
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderPlain(layout.Grid, engine.Carts()))

	if svgOut != "" {
		return writeFile(svgOut, export.MapToSVG(layout.Grid, engine.Carts(), 12))
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.WithField("path", path).Debug("wrote file")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMAP\tTIME\tCARTS\tTICKS\tFIRST CRASH\tLAST CART")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Map,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Carts,
			run.Ticks,
			coordOrNone(run.FirstCrash),
			coordOrNone(run.LastCart),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	series := h.Series()
	if len(series) < 2 {
		return fmt.Errorf("no ticks to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "map: %s\n", meta.Map)
	fmt.Fprintf(out, "ticks: %d\n\n", meta.Ticks)

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("active carts per tick"),
	)
	fmt.Fprintln(out, graph)

	if svgOut != "" {
		return writeFile(svgOut, export.SeriesToSVG(series, 800, 300, "#00ff00"))
	}
	return nil
}
