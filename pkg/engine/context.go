// pkg/engine/context.go
package engine

import (
	"math/rand/v2"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// Defaults for a new simulation context.
const (
	DefaultWidth        = 1440.0
	DefaultHeight       = 800.0
	DefaultGravity      = -90.0
	DefaultBounceDebris = 5
	DefaultHitDebris    = 10
	spatialCapacity     = 8
)

// Context is the explicit simulation state shared by one world: the ID
// counter, the world rectangle, the forces and the random source used for
// debris. Two contexts never share IDs or random state.
type Context struct {
	Bounds  physics.Rect
	Gravity physics.Vector2D
	Wind    physics.Vector2D
	Rand    *rand.Rand

	BounceDebris int
	HitDebris    int

	lastID entity.ID
}

// NewContext creates a context for a world spanning (0,0) to (width,height)
// with the default gravity and no wind. The same seed reproduces the same
// debris.
func NewContext(width, height float64, seed uint64) *Context {
	return &Context{
		Bounds:       physics.NewRectFromBounds(0, 0, width, height),
		Gravity:      physics.Vector2D{Y: DefaultGravity},
		Rand:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		BounceDebris: DefaultBounceDebris,
		HitDebris:    DefaultHitDebris,
	}
}

// NextID returns the next entity ID. IDs start at 1 and increase by one.
func (c *Context) NextID() entity.ID {
	c.lastID++
	return c.lastID
}

func (c *Context) peekID() entity.ID {
	return c.lastID + 1
}

// Environment is the read-only view handed to entity updates.
func (c *Context) Environment() entity.Environment {
	return entity.Environment{
		Bounds:  c.Bounds,
		Gravity: c.Gravity,
		Wind:    c.Wind,
	}
}
