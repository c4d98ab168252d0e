package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/config"
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/logger"
	"github.com/df07/go-weekend-pathtracer/pkg/output"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
	"github.com/df07/go-weekend-pathtracer/pkg/watch"
)

// cliFlags holds the parsed command line. set records which flags were given
// explicitly, so only those override the config file.
type cliFlags struct {
	configPath string
	envPath    string
	scene      string
	output     string
	width      int
	height     int
	samples    int
	depth      int
	workers    int
	seed       int64
	noBVH      bool
	watch      bool
	help       bool
	list       bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{set: map[string]bool{}}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.envPath, "env", ".env", "Env file with PATHTRACER_* overrides")
	fs.StringVar(&f.scene, "scene", "", "Scene name (see -list)")
	fs.StringVar(&f.output, "output", "", "Output image path (.png, .jpg, .bmp, .tiff, .ppm)")
	fs.IntVar(&f.width, "width", 0, "Image width in pixels")
	fs.IntVar(&f.height, "height", 0, "Image height in pixels")
	fs.IntVar(&f.samples, "samples", 0, "Samples per pixel")
	fs.IntVar(&f.depth, "depth", 0, "Maximum ray bounce depth")
	fs.IntVar(&f.workers, "workers", 0, "Concurrent tile workers (0 = one per CPU)")
	fs.Int64Var(&f.seed, "seed", 0, "Random seed for scene layout and sampling")
	fs.BoolVar(&f.noBVH, "no-bvh", false, "Intersect the flat object list instead of a BVH")
	fs.BoolVar(&f.watch, "watch", false, "Re-render whenever the config file changes")
	fs.BoolVar(&f.help, "help", false, "Show help information")
	fs.BoolVar(&f.list, "list", false, "List available scenes")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, fs, nil
}

// applyFlags copies explicitly set flags onto cfg
func applyFlags(cfg *config.Config, f *cliFlags) {
	if f.set["scene"] {
		cfg.Render.Scene = f.scene
	}
	if f.set["output"] {
		cfg.Output.Path = f.output
	}
	if f.set["width"] {
		cfg.Render.Width = f.width
	}
	if f.set["height"] {
		cfg.Render.Height = f.height
	}
	if f.set["samples"] {
		cfg.Render.SamplesPerPixel = f.samples
	}
	if f.set["depth"] {
		cfg.Render.MaxDepth = f.depth
	}
	if f.set["workers"] {
		cfg.Render.Workers = f.workers
	}
	if f.set["seed"] {
		cfg.Render.Seed = f.seed
	}
	if f.set["no-bvh"] {
		cfg.Render.UseBVH = !f.noBVH
	}
}

// loadConfig resolves the configuration: defaults, then file, then environment, then flags
func loadConfig(f *cliFlags, getenv func(string) string) (*config.Config, error) {
	if err := config.LoadEnvFile(f.envPath); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	applyFlags(cfg, f)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// expandOutputPath fills the {scene} and {timestamp} placeholders
func expandOutputPath(path, sceneName string, now time.Time) string {
	return strings.NewReplacer(
		"{scene}", sceneName,
		"{timestamp}", now.Format("20060102_150405"),
	).Replace(path)
}

// publisher uploads a saved render
type publisher interface {
	PublishFile(ctx context.Context, path string) (string, error)
}

var newPublisher = func(cfg config.PublishConfig, log core.Logger) (publisher, error) {
	return output.NewS3Publisher(cfg, log)
}

// renderOnce builds, renders and saves one image and returns its path
func renderOnce(ctx context.Context, cfg *config.Config, log *logger.Logger) (string, error) {
	s, err := scene.Create(cfg.Render.Scene, scene.Options{
		Sampling: renderer.SamplingConfig{
			Width:           cfg.Render.Width,
			Height:          cfg.Render.Height,
			SamplesPerPixel: cfg.Render.SamplesPerPixel,
			MaxDepth:        cfg.Render.MaxDepth,
			TileSize:        cfg.Render.TileSize,
			NumWorkers:      cfg.Render.Workers,
			Seed:            cfg.Render.Seed,
		},
		TexturePath: cfg.Render.TexturePath,
		Logger:      log,
	})
	if err != nil {
		return "", err
	}

	sc := s.SamplingConfig
	log.Infof("Scene %q: %d objects, %dx%d, %d spp, depth %d, seed %d",
		s.Name, s.GetPrimitiveCount(), sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth, sc.Seed)

	if err := s.Preprocess(cfg.Render.UseBVH, core.NewSeededSampler(sc.Seed)); err != nil {
		return "", err
	}
	if bvh, ok := s.World.(*geometry.BVHNode); ok {
		st := bvh.Stats()
		log.Debugf("BVH: %d nodes, %d leaves, depth max %d avg %.1f",
			st.TotalNodes, st.LeafNodes, st.MaxDepth, st.AvgDepth)
	}

	rt, err := s.NewRaytracer(log)
	if err != nil {
		return "", err
	}
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}
	log.Infof("Render completed in %v: %d tiles on %d workers, %.1f spp, %.0f samples/s",
		stats.Duration.Round(time.Millisecond), stats.TilesRendered, stats.Workers,
		stats.AverageSamples, stats.SamplesPerSecond())

	path := expandOutputPath(cfg.Output.Path, s.Name, time.Now())
	if err := output.Save(path, img); err != nil {
		return "", err
	}
	log.Infof("Render saved as %s", path)

	if cfg.Output.ThumbnailWidth > 0 {
		thumbPath, err := output.SaveThumbnail(path, img, cfg.Output.ThumbnailWidth)
		if err != nil {
			return "", err
		}
		log.Infof("Thumbnail saved as %s", thumbPath)
	}

	if cfg.Publish.Enabled {
		pub, err := newPublisher(cfg.Publish, log)
		if err != nil {
			return "", err
		}
		if _, err := pub.PublishFile(ctx, path); err != nil {
			return "", err
		}
	}

	return path, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.LogFile != "" {
		return logger.NewMultiLogger(cfg.LogLevel, cfg.LogFile)
	}
	return logger.NewLogger(cfg.LogLevel), nil
}

// watchAndRender re-renders whenever the config file changes until ctx is done
func watchAndRender(ctx context.Context, f *cliFlags, log *logger.Logger) error {
	w, err := watch.NewFileWatcher(f.configPath, watch.DefaultDebounce, log)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Infof("Watching %s for changes (Ctrl+C to stop)", w.Path())
	return w.Run(ctx, func(path string) {
		cfg, err := loadConfig(f, os.Getenv)
		if err != nil {
			log.Errorf("Reloading %s: %v", path, err)
			return
		}
		log.SetLevel(cfg.LogLevel)
		if _, err := renderOnce(ctx, cfg, log); err != nil {
			log.Errorf("Render failed: %v", err)
		}
	})
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Weekend Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	printScenes(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings are resolved from defaults, then -config, then PATHTRACER_* variables, then flags.")
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s %s - %s\n", info.ID, info.DisplayName, info.Description)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if f.help {
		printHelp(stdout, fs)
		return nil
	}
	if f.list {
		printScenes(stdout)
		return nil
	}
	if f.watch && f.configPath == "" {
		return errors.New("-watch requires -config")
	}

	cfg, err := loadConfig(f, os.Getenv)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if _, err := renderOnce(ctx, cfg, log); err != nil {
		if !f.watch {
			return err
		}
		log.Errorf("Render failed: %v", err)
	}

	if f.watch {
		return watchAndRender(ctx, f, log)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
