// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tankgame/pkg/engine"
	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/logging"
)

// GameScene runs a game inside an Engo window.
type GameScene struct {
	game   *engine.Game
	bus    *event.Bus
	logger *logging.Logger
	title  string

	screenWidth, screenHeight float64

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
	assets   *AssetManager

	background struct {
		basic  ecs.BasicEntity
		render common.RenderComponent
		space  common.SpaceComponent
	}
}

// NewGameScene creates a scene for game in a window of the given size.
func NewGameScene(game *engine.Game, bus *event.Bus, logger *logging.Logger, title string, width, height int) *GameScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &GameScene{
		game:         game,
		bus:          bus,
		logger:       logger,
		title:        title,
		screenWidth:  float64(width),
		screenHeight: float64(height),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "TankGame"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(context.Background(), "unexpected updater", "type", u)
		return
	}

	SetupInputBindings()
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	cfg := scene.game.Config
	scene.camera = NewCameraSystem(cfg.World.Width, cfg.World.Height, scene.screenWidth, scene.screenHeight)
	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(int(scene.screenWidth), int(scene.screenHeight), cfg.World.Seed); err != nil {
		scene.logger.Error(context.Background(), "failed to load assets", err)
	} else {
		scene.addBackground(renderSystem)
	}

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, scene.assets)
	scene.input = NewInputSystem(scene.game.ApplyInput)
	scene.hud = NewHUDSystem(scene.title, scene.game.StatusLine)
	if scene.bus != nil {
		scene.hud.Attach(scene.bus, scene.game.Players)
	}

	world.AddSystem(scene.input)
	world.AddSystem(NewSimulationSystem(scene.game, scene.renderer))
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.game.Start()
}

func (scene *GameScene) addBackground(system SpriteSystem) {
	bg := &scene.background
	bg.basic = ecs.NewBasic()
	bg.render = common.RenderComponent{Drawable: scene.assets.GetBackgroundTexture()}
	bg.render.SetZIndex(-1)
	bg.space = common.SpaceComponent{
		Width:  float32(scene.screenWidth),
		Height: float32(scene.screenHeight),
	}
	system.Add(&bg.basic, &bg.render, &bg.space)
}

// Exit is called when the scene is exiting
func (scene *GameScene) Exit() {
	if scene.hud != nil {
		scene.hud.Detach()
	}
	scene.game.Stop()
}

// SimulationSystem advances the game once per Engo frame and redraws it.
type SimulationSystem struct {
	game     *engine.Game
	renderer entity.Renderer
}

// NewSimulationSystem creates the system driving game.
func NewSimulationSystem(game *engine.Game, renderer entity.Renderer) *SimulationSystem {
	return &SimulationSystem{game: game, renderer: renderer}
}

// Priority runs the simulation after input and before the camera.
func (s *SimulationSystem) Priority() int { return 20 }

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update steps the game by dt and renders the world.
func (s *SimulationSystem) Update(dt float32) {
	s.game.Update(float64(dt))
	s.game.World.Render(s.renderer)
}

// RunOptions configures the window.
type RunOptions struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// Run opens a window and plays game until it is closed or escape is
// pressed. It blocks.
func Run(game *engine.Game, bus *event.Bus, logger *logging.Logger, opts RunOptions) {
	scene := NewGameScene(game, bus, logger, opts.Title, opts.Width, opts.Height)
	engo.Run(engo.RunOptions{
		Title:        opts.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		FPSLimit:     opts.FPS,
		VSync:        true,
		NotResizable: true,
	}, scene)
}
