// cmd/simulate/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/opd-ai/go-tankgame/pkg/config"
	"github.com/opd-ai/go-tankgame/pkg/engine"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/input"
	"github.com/opd-ai/go-tankgame/pkg/logging"
	"github.com/opd-ai/go-tankgame/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx, session := logging.WithSession(context.Background())

	configPath := flag.String("config", "", "Path to configuration file (defaults when empty)")
	frames := flag.Int("frames", 600, "Number of frames to simulate")
	seed := flag.Uint64("seed", 0, "Override the world seed (0 keeps the configured seed)")
	held := flag.String("keys", "", "Comma-separated keys held for the whole run, e.g. 'w,d,tab'")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}

	bus := event.NewEventBus()
	counts := countEvents(bus)

	game, err := engine.NewGame(ctx, cfg, bus, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}

	keys := parseKeys(*held)
	r := render.NewNullRenderer(logger)
	dt := 1 / float64(max(cfg.Frame.FPS, 1))

	game.Start()
	for i := 0; i < *frames && game.Status == engine.GameStatusActive; i++ {
		game.ApplyInput(keys)
		game.Update(dt)
		game.World.Render(r)
	}
	if game.Status == engine.GameStatusActive {
		game.Stop()
	}

	logger.Info(ctx, "Simulation finished",
		"session", session,
		"ticks", game.World.CurrentTick,
		"elapsed", game.ElapsedTime,
		"fired", counts[event.ProjectileFired],
		"hits", counts[event.ProjectileHit],
		"bounces", counts[event.WallBounced],
		"destroyed", counts[event.VehicleDestroyed],
	)
	for _, s := range game.PlayerStatuses() {
		fmt.Println(s)
	}
	if game.Winner != nil {
		fmt.Printf("%s wins\n", game.Winner.Name)
	}
}

func countEvents(bus *event.Bus) map[event.Type]int {
	counts := make(map[event.Type]int)
	for _, typ := range []event.Type{event.ProjectileFired, event.ProjectileHit, event.WallBounced, event.VehicleDestroyed} {
		bus.Subscribe(typ, func(e event.Event) { counts[e.GetType()]++ })
	}
	return counts
}

func parseKeys(list string) input.KeySet {
	keys := make(input.KeySet)
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
			keys[input.Key(k)] = true
		}
	}
	return keys
}
