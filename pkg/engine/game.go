// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opd-ai/go-tankgame/pkg/config"
	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/input"
	"github.com/opd-ai/go-tankgame/pkg/logging"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// GameStatus is the lifecycle state of a match.
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "waiting"
	}
}

// Player is a configured participant and the entities spawned for it.
type Player struct {
	Name      string
	Scheme    input.Scheme
	VehicleID entity.ID
	TurretID  entity.ID // zero without a turret

	tracker *input.Tracker
}

// PlayerStatus is the status-line summary of one player.
type PlayerStatus struct {
	Name      string
	Alive     bool
	Position  physics.Vector2D
	Rotation  float64
	Speed     float64
	Hitpoints float64
	Aim       float64
	Charge    float64
}

func (s PlayerStatus) String() string {
	if !s.Alive {
		return s.Name + ": destroyed"
	}
	return fmt.Sprintf("%s: (%.0f,%.0f) %.0f° v%.0f hp%.0f", s.Name,
		s.Position.X, s.Position.Y, physics.NormalizeDeg(s.Rotation), s.Speed, s.Hitpoints)
}

// Game is a configured match: the world, the players and their inputs, and
// the last-vehicle-standing rule.
type Game struct {
	Config  *config.Config
	World   *World
	Players []*Player
	Status  GameStatus
	Winner  *Player // nil while running or after a draw

	StartTime   time.Time
	EndTime     time.Time
	ElapsedTime float64 // simulated seconds

	ctx context.Context
}

// NewGame validates cfg and spawns every configured player into a new world.
func NewGame(ctx context.Context, cfg *config.Config, bus *event.Bus, logger *logging.Logger) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	game := &Game{
		Config: cfg,
		World:  NewWorld(ctx, newContextFromConfig(cfg), bus, logger),
		ctx:    ctx,
	}
	for i, pc := range cfg.Players {
		player, err := game.spawnPlayer(pc)
		if err != nil {
			return nil, logging.WrapError(err, "player %d (%s)", i, pc.Name)
		}
		game.Players = append(game.Players, player)
	}
	return game, nil
}

// newContextFromConfig builds the simulation context for cfg.
func newContextFromConfig(cfg *config.Config) *Context {
	sim := NewContext(cfg.World.Width, cfg.World.Height, cfg.World.Seed)
	sim.Gravity = physics.Vector2D{X: cfg.World.GravityX, Y: cfg.World.GravityY}
	sim.Wind = physics.Vector2D{X: cfg.World.WindX, Y: cfg.World.WindY}
	sim.BounceDebris = cfg.Combat.BounceDebris
	sim.HitDebris = cfg.Combat.HitDebris
	return sim
}

// spawnPlayer creates the vehicle, its bar, its turret and the turret's
// charge bar.
func (g *Game) spawnPlayer(pc config.PlayerConfig) (*Player, error) {
	scheme, _ := input.LookupScheme(pc.Keys)
	player := &Player{Name: pc.Name, Scheme: scheme, tracker: input.NewTracker(scheme)}

	common, err := commonFromConfig(pc)
	if err != nil {
		return nil, err
	}

	switch pc.Vehicle {
	case config.VehicleTank:
		player.VehicleID, err = g.World.SpawnTank(entity.TankParams{Common: common})
	default:
		player.VehicleID, err = g.World.SpawnSpaceship(entity.SpaceshipParams{Common: common})
	}
	if err != nil {
		return nil, err
	}

	thresholds := entity.Thresholds{
		Good:   g.Config.HealthBar.Good,
		Medium: g.Config.HealthBar.Medium,
		Bad:    g.Config.HealthBar.Bad,
	}
	if pc.HealthBar {
		if _, err := g.World.SpawnHealthBar(entity.HealthBarParams{Host: player.VehicleID, Thresholds: thresholds}); err != nil {
			return nil, err
		}
	}

	if pc.Turret == nil {
		return player, nil
	}
	player.TurretID, err = g.World.SpawnTurret(g.turretParams(player.VehicleID, pc.Turret))
	if err != nil {
		return nil, err
	}
	if pc.Turret.ChargeBar {
		_, err = g.World.SpawnHealthBar(entity.HealthBarParams{
			Host:       player.TurretID,
			Source:     entity.BarCharge,
			Thresholds: thresholds,
		})
		if err != nil {
			return nil, err
		}
	}
	return player, nil
}

func commonFromConfig(pc config.PlayerConfig) (entity.Common, error) {
	common := entity.Common{
		Position:  physics.Vector2D{X: pc.X, Y: pc.Y},
		Rotation:  pc.Rotation,
		Speed:     pc.Speed,
		Radius:    pc.Radius,
		Hitpoints: pc.Hitpoints,
	}
	if pc.Color != "" {
		c, err := config.ParseColor(pc.Color)
		if err != nil {
			return common, err
		}
		common.Color = c
	}
	if pc.CycleTo != "" {
		end, err := config.ParseColor(pc.CycleTo)
		if err != nil {
			return common, err
		}
		common.Cycle = &entity.CycleParams{End: end, Period: pc.CyclePeriod}
	}
	return common, nil
}

func (g *Game) turretParams(host entity.ID, tc *config.TurretConfig) entity.TurretParams {
	f := g.Config.Firing
	p := entity.TurretParams{
		Host:                 host,
		Offset:               physics.Vector2D{X: tc.OffsetX, Y: tc.OffsetY},
		Radius:               tc.Radius,
		FacingLeft:           tc.FacingLeft,
		AimRate:              f.AimRate,
		ChargeRate:           f.ChargeRate,
		ChargeBaseline:       f.ChargeBaseline,
		FullCharge:           f.FullCharge,
		LaunchSpeedPerCharge: f.LaunchSpeedPerCharge,
		ProjectileDamage:     f.ProjectileDamage,
		ProjectileRadius:     f.ProjectileRadius,
		NoGravity:            !f.ProjectileGravity,
	}
	if c, err := config.ParseColor(tc.Color); err == nil {
		p.Color = c
	}
	return p
}

// Start begins the match.
func (g *Game) Start() {
	g.Status = GameStatusActive
	g.StartTime = time.Now()
	g.World.Logger.Info(g.ctx, "game started", "players", len(g.Players))
}

// Stop ends the match without a winner.
func (g *Game) Stop() {
	g.endGame(nil)
}

// ApplyInput samples keys for every player whose vehicle is still live.
func (g *Game) ApplyInput(keys input.KeyState) {
	for _, p := range g.Players {
		if g.World.IsLive(p.VehicleID) {
			g.World.SetInput(p.VehicleID, p.tracker.Commands(keys))
		}
	}
}

// Update advances the world by deltaTime, capped at the configured maximum
// frame length, and checks the win condition.
func (g *Game) Update(deltaTime float64) {
	if limit := g.Config.Frame.MaxDelta; deltaTime > limit {
		deltaTime = limit
	}
	g.World.Update(deltaTime)
	if g.Status == GameStatusActive {
		g.ElapsedTime += deltaTime
		g.checkWinConditions()
	}
}

// checkWinConditions ends a match of two or more players once at most one
// vehicle is left.
func (g *Game) checkWinConditions() {
	if len(g.Players) < 2 {
		return
	}
	var survivors []*Player
	for _, p := range g.Players {
		if g.World.IsLive(p.VehicleID) {
			survivors = append(survivors, p)
		}
	}
	switch len(survivors) {
	case 0:
		g.endGame(nil)
	case 1:
		g.endGame(survivors[0])
	}
}

func (g *Game) endGame(winner *Player) {
	if g.Status == GameStatusEnded {
		return
	}
	g.Status = GameStatusEnded
	g.EndTime = time.Now()
	g.Winner = winner

	name := ""
	if winner != nil {
		name = winner.Name
	}
	g.World.Logger.Info(g.ctx, "game ended", "winner", name, "elapsed", g.ElapsedTime)
}

// PlayerStatuses summarizes every player for a status line.
func (g *Game) PlayerStatuses() []PlayerStatus {
	statuses := make([]PlayerStatus, 0, len(g.Players))
	for _, p := range g.Players {
		s := PlayerStatus{Name: p.Name}
		if e, ok := g.World.Get(p.VehicleID); ok {
			base := e.Base()
			s.Alive = true
			s.Position = base.Position
			s.Rotation = base.Rotation
			s.Speed = base.Speed
			s.Hitpoints = base.Hitpoints
		}
		if e, ok := g.World.Get(p.TurretID); ok {
			if t, isTurret := e.(*entity.Turret); isTurret {
				s.Aim = t.AimAngle()
				s.Charge = t.Charge
			}
		}
		statuses = append(statuses, s)
	}
	return statuses
}

// StatusLine joins the player statuses into one line, followed by the result
// once the match has ended.
func (g *Game) StatusLine() string {
	parts := make([]string, 0, len(g.Players)+1)
	for _, s := range g.PlayerStatuses() {
		parts = append(parts, s.String())
	}
	if g.Status == GameStatusEnded {
		if g.Winner != nil {
			parts = append(parts, g.Winner.Name+" wins")
		} else {
			parts = append(parts, "draw")
		}
	}
	return strings.Join(parts, " | ")
}
