// pkg/entity/renderer.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// View is a read-only snapshot of one entity handed to a Renderer.
type View struct {
	ID       ID
	Kind     Kind
	Position physics.Vector2D
	Rotation float64
	Facing   float64
	Radius   float64
	Width    float64 // bars only
	Color    color.RGBA
	Fill     float64 // bar fill ratio, 1 for everything else
	Tier     Tier
	Flipped  bool
	Speed    float64

	Hitpoints     float64
	HitpointsFull float64

	// Revision changes whenever the silhouette must be redrawn.
	Revision uint64
}

// Renderer draws a frame of entity views.
type Renderer interface {
	Clear()
	Draw(v View)
	Present()
}
