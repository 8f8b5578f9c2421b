// pkg/entity/debris.go
package entity

import (
	"image/color"
	"math/rand/v2"

	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// Debris particle ranges.
const (
	DebrisMinRadius = 1
	DebrisMaxRadius = 4
	DebrisMinSpeed  = 50
	DebrisMaxSpeed  = 300
	DebrisMaxAge    = 1.5
)

// Debris is a short-lived spark emitted by bounces and hits.
type Debris struct {
	BaseEntity
}

// NewDebris builds one particle from p.
func NewDebris(id ID, p DebrisParams) (*Debris, error) {
	if err := p.validate(); err != nil {
		return nil, invalid(KindDebris, err)
	}
	if p.Radius == 0 {
		p.Radius = DebrisMinRadius
	}
	if p.Color == (color.RGBA{}) {
		p.Color = color.RGBA{R: 255, G: 64, A: 255}
	}

	d := &Debris{BaseEntity: newBase(id, KindDebris)}
	d.Position = p.Position
	d.Speed = p.Speed
	d.SetRotation(p.Rotation)
	d.Radius = p.Radius
	d.MaxAge = p.MaxAge
	d.Color = p.Color
	d.Boundary = BoundaryDestroy
	d.Hitpoints, d.HitpointsFull = 1, 1
	return d, nil
}

// RandomDebris draws a particle at pos: radius 1-4, speed 50-300, a random
// heading, a lifetime below 1.5 s and a red-orange color.
func RandomDebris(rng *rand.Rand, pos physics.Vector2D) DebrisParams {
	return DebrisParams{
		Position: pos,
		Rotation: rng.Float64() * 360,
		Speed:    float64(DebrisMinSpeed + rng.IntN(DebrisMaxSpeed-DebrisMinSpeed+1)),
		Radius:   float64(DebrisMinRadius + rng.IntN(DebrisMaxRadius-DebrisMinRadius+1)),
		// never zero, which would mean an unlimited lifetime
		MaxAge: (rng.Float64()*0.99 + 0.01) * DebrisMaxAge,
		Color: color.RGBA{
			R: uint8(128 + rng.IntN(128)),
			G: uint8(rng.IntN(91)),
			A: 255,
		},
	}
}
