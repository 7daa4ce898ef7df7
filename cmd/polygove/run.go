package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polygove/internal/audio"
	"github.com/vovakirdan/polygove/internal/config"
	"github.com/vovakirdan/polygove/internal/engine"
	"github.com/vovakirdan/polygove/internal/input"
	"github.com/vovakirdan/polygove/internal/logging"
	"github.com/vovakirdan/polygove/internal/platform/tui"
	"github.com/vovakirdan/polygove/internal/render"
	"github.com/vovakirdan/polygove/internal/scene"
	"github.com/vovakirdan/polygove/internal/storage"
	"github.com/vovakirdan/polygove/internal/world"
)

var (
	flagSceneFile string
	flagHeadless  bool
	flagTicks     int
	flagFrameMS   int
	flagNoSave    bool
)

var runCmd = &cobra.Command{
	Use:   "run [scene]",
	Short: "Run a scene",
	Long: `Start the game loop on a built-in scene (default: demo) or a YAML
scene file.

Controls (demo scene):
  q          - End the scene
  a          - Turn the cubes by 10 degrees
  s / d      - Toggle step / collision logging
  Esc/Ctrl+C - Quit
  ?          - Help

Headless runs draw into a recorder instead of the terminal and print a
summary; combine with --ticks to bound them.

Examples:
  polygove run
  polygove run orbit
  polygove run pinball --headless --ticks 600
  polygove run --scene-file ./garage.yaml --frame-ms 16`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagSceneFile, "scene-file", "", "Path to a scene YAML file")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the terminal UI")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = config)")
	runCmd.Flags().IntVar(&flagFrameMS, "frame-ms", 0, "Target frame time in milliseconds (0 = config)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the journal")
}

// runOptions is everything a run needs besides the configuration.
type runOptions struct {
	Scene     string
	SceneFile string
	Headless  bool
	Save      bool
	// Out receives the summary of headless runs.
	Out io.Writer
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagTicks > 0 {
		cfg.Engine.MaxTicks = flagTicks
	}
	if flagFrameMS > 0 {
		cfg.Engine.FrameTimeMS = flagFrameMS
	}

	opts := runOptions{
		Scene:     "demo",
		SceneFile: flagSceneFile,
		Headless:  flagHeadless,
		Save:      !flagNoSave,
		Out:       cmd.OutOrStdout(),
	}
	if len(args) == 1 {
		opts.Scene = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	_, err = runScene(ctx, cfg, opts)
	return err
}

func pickScene(opts runOptions) (scene.Scene, error) {
	if opts.SceneFile != "" {
		f, err := scene.LoadFile(config.ExpandHome(opts.SceneFile))
		if err != nil {
			return nil, err
		}
		return f.Scene(), nil
	}
	if !scene.Exists(opts.Scene) {
		return nil, fmt.Errorf("unknown scene %q; run 'polygove scenes' to see available scenes", opts.Scene)
	}
	return scene.Create(opts.Scene)
}

// runScene builds the service stack, populates the world and drives the
// loop until it ends.
func runScene(ctx context.Context, cfg config.Config, opts runOptions) (engine.Stats, error) {
	sc, err := pickScene(opts)
	if err != nil {
		return engine.Stats{}, err
	}

	// Logging to the terminal would tear the UI apart.
	var console io.Writer = os.Stderr
	if !opts.Headless && cfg.Logging.File == "" {
		console = io.Discard
	}
	logSvc := logging.New(cfg.Logging, console)
	logger := logSvc.Logger()

	lens := render.Lens{FOV: cfg.Render.FOV, Near: cfg.Render.Near, Far: cfg.Render.Far}
	var (
		backend  world.Renderer
		terminal *render.Terminal
	)
	if opts.Headless {
		backend = render.NewRecorder()
	} else {
		width, height := viewport(cfg)
		terminal = render.NewTerminal(width, height, lens)
		backend = terminal
	}

	display := render.NewDisplay(backend)
	queue := input.NewQueue()
	sounds := audio.New(logger)
	w := world.New(logger)
	w.SetDrawBoxes(cfg.Render.Boxes)

	game := engine.New(engine.Options{
		Runtime:  cfg.Runtime(),
		Logger:   logger,
		World:    w,
		Input:    queue,
		Renderer: display,
		Services: []engine.Service{logSvc, display, queue, sounds},
	})
	if err := game.StartUp(); err != nil {
		return engine.Stats{}, err
	}
	defer func() {
		if err := game.ShutDown(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
		}
	}()

	if err := sounds.LoadTone(scene.PickupSound, 880, 120*time.Millisecond); err != nil {
		logger.Warn("cannot load sound", "label", scene.PickupSound, "err", err)
	}
	w.SetCamera(cfg.InitialCamera())
	env := scene.Env{
		Logger: logger,
		Quit:   func() { game.SetGameOver(true) },
		Sounds: sounds,
	}
	if err := sc.Build(w, env); err != nil {
		return engine.Stats{}, err
	}
	logger.Info("scene ready", "scene", sc.ID(), "entities", w.Len())

	if opts.Headless {
		err = game.Run(ctx)
	} else {
		err = tui.Run(ctx, game, queue, terminal, sc.Title())
	}
	stats := game.Stats()
	if err != nil {
		return stats, err
	}

	if opts.Save {
		saveRun(cfg, sc.ID(), stats, logger)
	}
	if opts.Headless && opts.Out != nil {
		printSummary(opts.Out, sc, stats)
	}
	return stats, nil
}

// viewport returns the render area: the terminal minus the status lines,
// or the configured size when stdout is not a terminal.
func viewport(cfg config.Config) (int, int) {
	width, height := cfg.Render.Width, cfg.Render.Height
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, max(height-2, 1)
}

func saveRun(cfg config.Config, id string, s engine.Stats, logger *log.Logger) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("run journal unavailable", "err", err)
		return
	}
	defer store.Close()

	_, err = store.SaveRun(storage.RunRecord{
		Scene:      id,
		Ticks:      int64(s.Ticks),
		Steps:      int64(s.Steps),
		Collisions: int64(s.Collisions),
		Rejected:   int64(s.Rejected),
		Removed:    int64(s.Removed),
		Duration:   s.Elapsed,
	})
	if err != nil {
		logger.Warn("cannot save run", "err", err)
	}
}

func printSummary(out io.Writer, sc scene.Scene, s engine.Stats) {
	fmt.Fprintf(out, "%s (%s)\n", sc.Title(), sc.ID())
	fmt.Fprintf(out, "  ticks       %s\n", humanize.Comma(int64(s.Ticks)))
	fmt.Fprintf(out, "  steps       %s\n", humanize.Comma(int64(s.Steps)))
	fmt.Fprintf(out, "  moves       %s\n", humanize.Comma(int64(s.Moves)))
	fmt.Fprintf(out, "  collisions  %s\n", humanize.Comma(int64(s.Collisions)))
	fmt.Fprintf(out, "  blocked     %s\n", humanize.Comma(int64(s.Rejected)))
	fmt.Fprintf(out, "  removed     %s\n", humanize.Comma(int64(s.Removed)))
	fmt.Fprintf(out, "  entities    %d\n", s.Entities)
	fmt.Fprintf(out, "  elapsed     %s (overshoot %s)\n", s.Elapsed.Round(time.Millisecond), s.Overshoot)
}
