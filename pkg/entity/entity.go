// pkg/entity/entity.go
package entity

import (
	"errors"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// ID is a unique identifier for an entity. Zero is never assigned.
type ID uint64

// ErrInvalidParams is wrapped by every rejected spawn parameter set.
var ErrInvalidParams = errors.New("invalid spawn parameters")

// Kind is the closed set of entity variants.
type Kind int

const (
	KindTank Kind = iota + 1
	KindSpaceship
	KindTurret
	KindHealthBar
	KindProjectile
	KindDebris
)

var kindNames = map[Kind]string{
	KindTank:       "tank",
	KindSpaceship:  "spaceship",
	KindTurret:     "turret",
	KindHealthBar:  "healthbar",
	KindProjectile: "projectile",
	KindDebris:     "debris",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsVehicle reports whether k is a player-controlled vehicle.
func (k Kind) IsVehicle() bool {
	return k == KindTank || k == KindSpaceship
}

// IsAttachment reports whether k is always hosted by another entity.
func (k Kind) IsAttachment() bool {
	return k == KindTurret || k == KindHealthBar
}

// BoundaryPolicy decides what happens when an entity reaches the world edge.
type BoundaryPolicy int

const (
	// BoundaryDefault selects the kind's own policy.
	BoundaryDefault BoundaryPolicy = iota
	BoundaryIgnore
	BoundaryBounce
	BoundaryDestroy
)

func (b BoundaryPolicy) String() string {
	switch b {
	case BoundaryIgnore:
		return "ignore"
	case BoundaryBounce:
		return "bounce"
	case BoundaryDestroy:
		return "destroy"
	default:
		return "default"
	}
}

// Environment is the read-only world state an entity sees while updating.
type Environment struct {
	Bounds  physics.Rect
	Gravity physics.Vector2D
	Wind    physics.Vector2D
}

// Outcome reports what happened to an entity during one update. The world
// turns it into debris, events and removals.
type Outcome struct {
	Bounces []physics.WallContact
	Exited  bool
	Expired bool
}

// Remove reports whether the entity asked to be removed.
func (o Outcome) Remove() bool {
	return o.Exited || o.Expired
}

// Entity is implemented by every simulated object.
type Entity interface {
	GetID() ID
	Kind() Kind
	Base() *BaseEntity
	Update(deltaTime float64, env Environment) Outcome
	View() View
}

// Controllable entities consume player commands once per frame.
type Controllable interface {
	Entity
	ApplyControl(cmd Commands, deltaTime float64)
}

// BaseEntity holds the state shared by all entity kinds. Rotation is in
// degrees, counter-clockwise from +x. Speed is signed: a negative speed moves
// against the rotation.
type BaseEntity struct {
	basic ecs.BasicEntity
	kind  Kind

	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
	Rotation float64
	Speed    float64
	Facing   float64

	Hitpoints     float64
	HitpointsFull float64
	Mass          float64
	Damage        float64

	Age    float64
	MaxAge float64 // zero means unlimited

	Radius   float64
	Color    color.RGBA
	Cycle    *ColorCycle
	Boundary BoundaryPolicy
	Gravity  bool

	HostID ID
	Offset physics.Vector2D

	removed       bool
	revision      uint64
	drawnRotation float64
}

func newBase(id ID, kind Kind) BaseEntity {
	return BaseEntity{
		basic: ecs.NewBasic(),
		kind:  kind,
		ID:    id,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// Kind returns the entity variant.
func (e *BaseEntity) Kind() Kind {
	return e.kind
}

// Base gives the world access to the shared state.
func (e *BaseEntity) Base() *BaseEntity {
	return e
}

// GetBasicEntity exposes the ecs handle used by the world's systems.
func (e *BaseEntity) GetBasicEntity() *ecs.BasicEntity {
	return &e.basic
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// GetCollider returns the entity's bounding circle.
func (e *BaseEntity) GetCollider() physics.Circle {
	return physics.Circle{Center: e.Position, Radius: e.Radius}
}

// Hosted reports whether the entity follows a host instead of moving itself.
func (e *BaseEntity) Hosted() bool {
	return e.HostID != 0
}

// SetRotation turns the entity and rederives velocity from speed.
func (e *BaseEntity) SetRotation(deg float64) {
	e.Rotation = deg
	e.Velocity = physics.FromAngleDeg(deg, e.Speed)
}

// SetSpeed changes the signed speed along the current rotation.
func (e *BaseEntity) SetSpeed(speed float64) {
	e.Speed = speed
	e.Velocity = physics.FromAngleDeg(e.Rotation, speed)
}

// SetVelocity replaces the velocity and rederives rotation and speed. A zero
// velocity keeps the current rotation.
func (e *BaseEntity) SetVelocity(v physics.Vector2D) {
	e.Velocity = v
	e.Speed = v.Length()
	if e.Speed > 0 {
		e.Rotation = v.AngleDeg()
	}
}

// ApplyDamage subtracts amount from hitpoints. It returns true only on the
// hit that brings hitpoints to zero or below.
func (e *BaseEntity) ApplyDamage(amount float64) bool {
	if e.removed || e.Hitpoints <= 0 {
		return false
	}
	e.Hitpoints -= amount
	return e.Hitpoints <= 0
}

// MarkRemoved flags the entity for the destruction sweep. It returns false if
// the entity was already marked.
func (e *BaseEntity) MarkRemoved() bool {
	if e.removed {
		return false
	}
	e.removed = true
	return true
}

// Removed reports whether the entity is waiting for the sweep.
func (e *BaseEntity) Removed() bool {
	return e.removed
}

// Revision changes whenever the entity's silhouette must be redrawn.
func (e *BaseEntity) Revision() uint64 {
	return e.revision
}

func (e *BaseEntity) touch() {
	e.revision++
}

// Update integrates one step: gravity and wind, position, boundary policy,
// then age and color animation. Hosted entities skip the motion part; the
// world places them after their host has moved.
func (e *BaseEntity) Update(deltaTime float64, env Environment) Outcome {
	var out Outcome
	if e.removed {
		return out
	}

	if !e.Hosted() {
		var accel physics.Vector2D
		if e.Gravity {
			accel = env.Gravity.Add(env.Wind)
		}
		e.Position, e.Velocity = physics.Integrate(e.Position, e.Velocity, accel, deltaTime)
		if e.Gravity {
			e.SetVelocity(e.Velocity)
		}

		switch e.Boundary {
		case BoundaryBounce:
			pos, vel, contacts := physics.BounceInside(e.Position, e.Velocity, e.Radius, env.Bounds)
			e.Position = pos
			if len(contacts) > 0 {
				e.SetVelocity(vel)
				out.Bounces = contacts
			}
		case BoundaryDestroy:
			out.Exited = physics.Exits(e.Position, e.Radius, env.Bounds)
		}
	}

	if e.Rotation != e.drawnRotation {
		e.drawnRotation = e.Rotation
		e.touch()
	}

	e.Age += deltaTime
	if e.MaxAge > 0 && e.Age > e.MaxAge {
		out.Expired = true
	}
	if e.Cycle != nil {
		e.Color = e.Cycle.Step(deltaTime)
	}
	return out
}

// View returns the render snapshot of the entity.
func (e *BaseEntity) View() View {
	return View{
		ID:            e.ID,
		Kind:          e.kind,
		Position:      e.Position,
		Rotation:      e.Rotation,
		Facing:        e.Facing,
		Radius:        e.Radius,
		Color:         e.Color,
		Fill:          1,
		Speed:         e.Speed,
		Hitpoints:     e.Hitpoints,
		HitpointsFull: e.HitpointsFull,
		Revision:      e.revision,
	}
}
