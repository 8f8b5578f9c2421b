// cmd/tankgame/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-tankgame/pkg/audio"
	"github.com/opd-ai/go-tankgame/pkg/config"
	"github.com/opd-ai/go-tankgame/pkg/engine"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/input"
	"github.com/opd-ai/go-tankgame/pkg/logging"
	"github.com/opd-ai/go-tankgame/pkg/render"
	engorender "github.com/opd-ai/go-tankgame/pkg/render/engo"
)

// Terminals only report presses and auto-repeat, so a key stays down for a
// short while after each report.
const holdWindow = 150 * time.Millisecond

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	width := flag.Int("width", 0, "Window width (Engo only, defaults to the world width)")
	height := flag.Int("height", 0, "Window height (Engo only, defaults to the world height)")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath, *renderer == "terminal")
	if err != nil {
		logging.NewLogger().Error(context.Background(), "Failed to open log file", err, "path", *logPath)
		os.Exit(1)
	}
	defer closeLog()

	ctx, session := logging.WithSession(context.Background())

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	bus := event.NewEventBus()
	game, err := engine.NewGame(ctx, cfg, bus, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Game created", "session", session, "players", len(game.Players), "renderer", *renderer)

	if cfg.Audio.Enabled && !*mute {
		player, err := audio.OpenSpeaker(cfg.Audio.SampleRate, cfg.Audio.Volume)
		if err != nil {
			logger.Warn(ctx, "Sound disabled", "error", err.Error())
		} else {
			player.Attach(bus)
			defer player.Detach()
		}
	}

	switch *renderer {
	case "engo":
		w, h := *width, *height
		if w <= 0 || h <= 0 {
			w, h = int(cfg.World.Width), int(cfg.World.Height)
		}
		engorender.Run(game, bus, logger, engorender.RunOptions{
			Title:  "Go Tankgame",
			Width:  w,
			Height: h,
			FPS:    cfg.Frame.FPS,
		})
	case "terminal":
		if err := runTerminal(ctx, game, logger); err != nil {
			logger.Error(ctx, "Terminal front-end failed", err)
			os.Exit(1)
		}
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(2)
	}

	logger.Info(ctx, "Game over", "status", game.StatusLine(), "elapsed", game.ElapsedTime)
}

// openLogger returns a logger writing to path. Without a path, the terminal
// front-end discards logs so they do not garble the screen.
func openLogger(path string, terminal bool) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(os.Getenv(logging.LevelEnvVar))
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerTo(f, level), func() { f.Close() }, nil
	case terminal:
		return logging.NewLoggerTo(io.Discard, level), func() {}, nil
	default:
		return logging.NewLogger(), func() {}, nil
	}
}

// loadConfig reads path, falling back to the defaults (still overlaid with
// the environment) when the file does not exist.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		return config.LoadConfig("")
	}
	return config.LoadConfig(path)
}

// pumpEvents forwards polled events until poll returns nil or ctx is done.
func pumpEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// runTerminal plays the game in the terminal until escape or Ctrl-C. The
// final scene stays on screen after the match ends.
func runTerminal(ctx context.Context, game *engine.Game, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialize screen")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 100)
	go pumpEvents(ctx, screen.PollEvent, events)

	r := render.NewTerminalRenderer(screen, game.Config.World.Width, game.Config.World.Height)
	keys := input.NewHoldWindow(holdWindow)

	fps := max(game.Config.Frame.FPS, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	game.Start()
	defer game.Stop()
	last := time.Now()
	announced := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if k, ok := render.KeyFromEvent(ev); ok {
					keys.Press(k, time.Now())
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			keys.Advance(now)
			game.ApplyInput(keys)
			game.Update(now.Sub(last).Seconds())
			last = now

			r.SetStatus(game.StatusLine())
			game.World.Render(r)

			if game.Status == engine.GameStatusEnded && !announced {
				announced = true
				logger.Info(ctx, "Match finished", "status", game.StatusLine())
			}
		}
	}
}
