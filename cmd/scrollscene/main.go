package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/analyzer"
	"github.com/ivlev/scrollscene/internal/camera"
	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/core"
	"github.com/ivlev/scrollscene/internal/director"
	"github.com/ivlev/scrollscene/internal/engine"
	"github.com/ivlev/scrollscene/internal/geometry"
	"github.com/ivlev/scrollscene/internal/renderer"
	"github.com/ivlev/scrollscene/internal/system"
	"github.com/ivlev/scrollscene/internal/track"
)

var version = "dev"

const (
	outputDir      = "output"
	defaultPresets = "desktop=1440x900,tablet=768x1024,mobile=390x844"
)

func usage() {
	fmt.Fprintf(os.Stderr, `scrollscene %s

Usage: scrollscene [-log-level LEVEL] <command> [flags]

Commands:
  bake   sweep the scenario and write camera tracks per viewport preset
  lint   check section ranges and channel values
  plot   draw the channel curves to a PNG
  probe  print channel values and camera target at one progress value
  init   write a starter scenario into %s/

Run "scrollscene <command> -h" for command flags.
`, version, director.ScenariosDir)
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	if err := core.SetLevel(*logLevel); err != nil {
		core.LogFatal("invalid -log-level: %v", err)
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "bake":
		err = runBake(ctx, args, *logLevel)
	case "lint":
		err = runLint(args)
	case "plot":
		err = runPlot(args)
	case "probe":
		err = runProbe(args)
	case "init":
		err = runInit(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			core.LogWarn("interrupted")
			os.Exit(130)
		}
		core.LogFatal("%s: %v", cmd, err)
	}
}

// loadScenario reads path, or the newest scenario in scenarios/ when empty
func loadScenario(path string) (*director.Scenario, string, error) {
	if path == "" {
		latest, err := director.FindLatestScenario(director.ScenariosDir)
		if err != nil {
			return nil, "", errors.Wrapf(err, "no -scenario given and none found in %s/", director.ScenariosDir)
		}
		path = latest
		core.LogInfo("using scenario %s", path)
	}

	s, err := director.ReadScenario(path)
	if err != nil {
		return nil, path, err
	}
	return s, path, nil
}

func runBake(ctx context.Context, args []string, logLevel string) error {
	fs := flag.NewFlagSet("bake", flag.ExitOnError)
	scenarioPtr := fs.String("scenario", "", "Scenario file (default: newest in scenarios/)")
	outputPtr := fs.String("output", "", "Track file (default: output/tracks_<time>.<format>)")
	formatPtr := fs.String("format", track.FormatYAML, "Track format: yaml, csv")
	framesPtr := fs.Int("frames", 240, "Frames in the 0..1 sweep")
	holdPtr := fs.Int("hold", 30, "Extra frames held at each end so smoothing settles")
	workersPtr := fs.Int("workers", runtime.NumCPU(), "Presets baked in parallel")
	presetsPtr := fs.String("presets", defaultPresets, "Viewport presets name=WxH, comma separated")
	statsPtr := fs.Bool("stats", false, "Log process resource usage after each bake")
	watchPtr := fs.Bool("watch", false, "Re-bake whenever the scenario file changes")
	fs.Parse(args)

	presets, err := config.ParsePresets(*presetsPtr)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		ScenarioPath: *scenarioPtr,
		OutputPath:   *outputPtr,
		Format:       strings.ToLower(*formatPtr),
		Frames:       *framesPtr,
		HoldFrames:   *holdPtr,
		Workers:      *workersPtr,
		Presets:      presets,
		LogLevel:     logLevel,
		ShowStats:    *statsPtr,
		Watch:        *watchPtr,
		BuildVersion: version,
	}

	if cfg.ScenarioPath == "" {
		latest, err := director.FindLatestScenario(director.ScenariosDir)
		if err != nil {
			return errors.Wrapf(err, "no -scenario given and none found in %s/", director.ScenariosDir)
		}
		cfg.ScenarioPath = latest
	}
	if cfg.OutputPath == "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		cfg.OutputPath = filepath.Join(outputDir,
			fmt.Sprintf("tracks_%s.%s", time.Now().Format("2006-01-02_15-04-05"), cfg.Format))
	}

	if err := bakeOnce(ctx, cfg); err != nil {
		if !cfg.Watch {
			return err
		}
		core.LogError("bake: %v", err)
	}
	if !cfg.Watch {
		return nil
	}

	core.LogInfo("watching %s, Ctrl+C to stop", cfg.ScenarioPath)
	return system.WatchFile(ctx, cfg.ScenarioPath, func(string) {
		if err := bakeOnce(ctx, cfg); err != nil {
			core.LogError("bake: %v", err)
		}
	})
}

func bakeOnce(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	s, _, err := loadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	if issues, err := analyzer.NewContiguityDetector().Detect(s.Sections); err == nil {
		for _, i := range issues {
			core.LogWarn("%s", i)
		}
	}

	tracks, err := engine.Bake(ctx, s, cfg.Presets, engine.BakeOptions{
		Frames:     cfg.Frames,
		HoldFrames: cfg.HoldFrames,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}
	if err := track.WriteFile(cfg.OutputPath, cfg.Format, tracks); err != nil {
		return err
	}

	core.LogInfo("baked %d presets to %s in %v", len(tracks), cfg.OutputPath, time.Since(start).Round(time.Millisecond))
	if cfg.ShowStats {
		system.ReportUsage("bake")
	}
	return nil
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	scenarioPtr := fs.String("scenario", "", "Scenario file (default: newest in scenarios/)")
	detectorPtr := fs.String("detector", "all", "Detector: contiguity, range, all")
	fs.Parse(args)

	s, path, err := loadScenario(*scenarioPtr)
	if err != nil {
		return err
	}
	if err := s.Scene.Validate(); err != nil {
		return err
	}

	d, err := analyzer.NewDetector(*detectorPtr)
	if err != nil {
		return err
	}
	issues, err := d.Detect(s.Sections)
	if err != nil {
		return err
	}

	for _, i := range issues {
		fmt.Println(i)
	}
	if analyzer.HasErrors(issues) {
		return errors.Errorf("%s has errors", path)
	}
	fmt.Printf("%s: %d sections, %d issues\n", path, len(s.Sections), len(issues))
	return nil
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	scenarioPtr := fs.String("scenario", "", "Scenario file (default: newest in scenarios/)")
	outputPtr := fs.String("output", filepath.Join(outputDir, "curves.png"), "PNG path")
	widthPtr := fs.Int("width", 960, "Width")
	heightPtr := fs.Int("height", 480, "Height")
	fs.Parse(args)

	s, _, err := loadScenario(*scenarioPtr)
	if err != nil {
		return err
	}
	table, err := renderer.NewBreakpointTable(s.Sections)
	if err != nil {
		return err
	}

	img, err := renderer.PlotChannels(renderer.NewKeyframeInterpolator(table), *widthPtr, *heightPtr)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*outputPtr), 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	if err := renderer.SavePNG(*outputPtr, img); err != nil {
		return err
	}
	core.LogInfo("curves written to %s", *outputPtr)
	return nil
}

func runProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	scenarioPtr := fs.String("scenario", "", "Scenario file (default: newest in scenarios/)")
	progressPtr := fs.Float64("progress", 0, "Scroll progress 0..1")
	widthPtr := fs.Int("width", 1440, "Viewport width")
	heightPtr := fs.Int("height", 900, "Viewport height")
	fs.Parse(args)

	s, _, err := loadScenario(*scenarioPtr)
	if err != nil {
		return err
	}
	scene, err := engine.NewScene(s)
	if err != nil {
		return err
	}
	scene.Resize(*widthPtr, *heightPtr)

	bounds := geometry.BoundsFromConfig(s.Scene.Subject.Bounds)
	if err := scene.LoadSubject(bounds); err != nil {
		if !errors.Is(err, geometry.ErrDegenerateGeometry) {
			return err
		}
		core.LogWarn("%v, using placeholder bounds", err)
		if err := scene.LoadSubject(geometry.PlaceholderBounds()); err != nil {
			return err
		}
	}

	progress := float32(*progressPtr)
	state := scene.Interpolator().Interpolate(progress)
	fmt.Printf("progress %.4f\n", progress)
	for _, c := range renderer.Channels {
		fmt.Printf("  %-24s %.4f\n", c, state.Value(c))
	}

	target, err := camera.TargetPosition(state, scene.Viewport(), camera.ParamsFromConfig(s.Scene.Camera))
	if err != nil {
		fmt.Printf("camera target: %v\n", err)
	} else {
		fmt.Printf("camera target %+v\n", target)
	}

	t := scene.Transform()
	fmt.Printf("layout %s, subject scale %.4f, translation %+v\n", scene.Layout(), t.Scale, t.Translation)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	outputPtr := fs.String("output", "", "Scenario path (default: scenarios/scenario_<time>.yaml)")
	fs.Parse(args)

	path := *outputPtr
	if path == "" {
		path = director.GenerateScenarioPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create scenarios directory")
	}

	s := director.NewScenario()
	d := director.NewDirector(900)
	sections, err := d.Layout(starterSections(), []float32{900, 1400, 1400, 1000, 1000})
	if err != nil {
		return err
	}
	s.Sections = sections

	if err := director.WriteScenario(s, path); err != nil {
		return err
	}
	core.LogInfo("scenario written to %s", path)
	return nil
}

func starterSections() []director.Section {
	return []director.Section{
		{ID: "hero", Rotation: 0.35, Zoom: 1, Opacity: 1},
		{ID: "about", Rotation: 1.2, Zoom: 1.2, CameraVerticalOffset: 0.2, CameraHorizontalOffset: -0.5, Opacity: 1},
		{ID: "skills", Rotation: 2.356, Zoom: 1.5, CameraVerticalOffset: -0.1, CameraHorizontalOffset: 0.4, Opacity: 1},
		{ID: "projects", Rotation: 2.0, Zoom: 1.1, Opacity: 1},
		{ID: "contact", Rotation: 2.2, Zoom: 1.3, CameraVerticalOffset: 0.3, Opacity: 0},
	}
}
