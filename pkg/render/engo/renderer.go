// pkg/render/engo/renderer.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// SpriteSystem receives the sprites of drawn entities. *common.RenderSystem
// satisfies it.
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	seen   bool
}

// Sprite draw order: bars above vehicles above everything else.
const (
	zoneDefault float32 = iota
	zoneVehicle
	zoneTurret
	zoneBar
)

// EngoRenderer implements entity.Renderer by keeping one Engo sprite per
// live entity. Sprites of entities that were not drawn in a frame are
// removed on Present.
type EngoRenderer struct {
	system  SpriteSystem
	camera  *CameraSystem
	assets  *AssetManager
	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer feeding system.
func NewEngoRenderer(system SpriteSystem, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	if assets == nil {
		assets = NewAssetManager()
	}
	return &EngoRenderer{
		system:  system,
		camera:  camera,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Draw implements entity.Renderer
func (r *EngoRenderer) Draw(v entity.View) {
	s := r.getOrCreateSprite(v)
	s.seen = true
	r.updateComponents(s, v)
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.basic)
			delete(r.sprites, id)
		}
	}
}

// Len returns the number of sprites currently shown.
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

func (r *EngoRenderer) getOrCreateSprite(v entity.View) *sprite {
	if s, ok := r.sprites[v.ID]; ok {
		return s
	}

	s := &sprite{basic: ecs.NewBasic()}
	s.render = common.RenderComponent{Drawable: r.assets.Drawable(v.Kind)}
	s.render.SetZIndex(zIndex(v.Kind))
	r.sprites[v.ID] = s
	r.system.Add(&s.basic, &s.render, &s.space)
	return s
}

// updateComponents places the sprite for v. Engo rotates sprites clockwise
// around their top left corner while world rotation is counter-clockwise, so
// the corner is offset to keep each shape on its pivot.
func (r *EngoRenderer) updateComponents(s *sprite, v entity.View) {
	w, h := Extent(v)
	width, height := r.camera.ScreenLength(w), r.camera.ScreenLength(h)
	pos := r.camera.WorldToScreen(v.Position)

	s.space.Width = width
	s.space.Height = height
	s.render.Color = v.Color

	var corner physics.Vector2D
	rotation := 0.0
	switch v.Kind {
	case entity.KindHealthBar:
		// left aligned so the bar shrinks toward its left end
		left := float64(r.camera.ScreenLength(v.Width)) / 2
		corner = pos.Sub(physics.Vector2D{X: left, Y: float64(height) / 2})
	case entity.KindTurret:
		// barrel pivots on the turret position
		rotation = -(v.Rotation + v.Facing)
		corner = pos.Sub(rotateScreen(physics.Vector2D{Y: float64(height) / 2}, rotation))
	case entity.KindSpaceship:
		// the triangle points up at rotation zero
		rotation = 90 - (v.Rotation + v.Facing)
		corner = pos.Sub(rotateScreen(physics.Vector2D{X: float64(width) / 2, Y: float64(height) / 2}, rotation))
	default:
		corner = pos.Sub(physics.Vector2D{X: float64(width) / 2, Y: float64(height) / 2})
	}
	s.space.Position = engo.Point{X: float32(corner.X), Y: float32(corner.Y)}
	s.space.Rotation = float32(physics.NormalizeDeg(rotation))
}

// rotateScreen turns v clockwise on screen by deg degrees.
func rotateScreen(v physics.Vector2D, deg float64) physics.Vector2D {
	return v.RotateDeg(deg)
}

func zIndex(kind entity.Kind) float32 {
	switch kind {
	case entity.KindTank, entity.KindSpaceship:
		return zoneVehicle
	case entity.KindTurret:
		return zoneTurret
	case entity.KindHealthBar:
		return zoneBar
	default:
		return zoneDefault
	}
}

var _ entity.Renderer = (*EngoRenderer)(nil)
