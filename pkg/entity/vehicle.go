// pkg/entity/vehicle.go
package entity

import (
	"math"

	"github.com/opd-ai/go-tankgame/pkg/validation"
)

// Tank is a ground vehicle with an absolute control mapping: each direction
// key selects a fixed heading and speed, and releasing all keys stops it.
type Tank struct {
	BaseEntity
	DriveSpeed float64
	ClimbSpeed float64
	Flipped    bool
}

// NewTank builds a tank from p. Tanks bounce off the world edges unless told
// otherwise.
func NewTank(id ID, p TankParams) (*Tank, error) {
	p.Common = p.Common.withDefaults(0, BoundaryBounce)
	if p.DriveSpeed == 0 {
		p.DriveSpeed = DefaultTankDriveSpeed
	}
	if p.ClimbSpeed == 0 {
		p.ClimbSpeed = DefaultTankClimbSpeed
	}
	err := validation.Collect(
		p.Common.validate(),
		validation.NonNegative("drive_speed", p.DriveSpeed),
		validation.NonNegative("climb_speed", p.ClimbSpeed),
	)
	if err != nil {
		return nil, invalid(KindTank, err)
	}

	t := &Tank{
		BaseEntity: newBase(id, KindTank),
		DriveSpeed: p.DriveSpeed,
		ClimbSpeed: p.ClimbSpeed,
	}
	p.Common.apply(&t.BaseEntity)
	t.Flipped = math.Cos(t.Rotation*math.Pi/180) < 0
	return t, nil
}

// ApplyControl maps the directional keys onto heading and speed. With several
// keys held the last in the order left, right, accelerate, decelerate wins.
func (t *Tank) ApplyControl(cmd Commands, deltaTime float64) {
	heading, speed := t.Rotation, 0.0
	switch {
	case cmd.Decelerate:
		heading, speed = 270, t.ClimbSpeed
	case cmd.Accelerate:
		heading, speed = 90, t.ClimbSpeed
	case cmd.TurnRight:
		heading, speed = 0, t.DriveSpeed
	case cmd.TurnLeft:
		heading, speed = 180, t.DriveSpeed
	}

	if heading != t.Rotation {
		switch heading {
		case 180:
			t.setFlipped(true)
		case 0:
			t.setFlipped(false)
		}
	}
	t.Speed = speed
	t.SetRotation(heading)
}

func (t *Tank) setFlipped(flipped bool) {
	if t.Flipped != flipped {
		t.Flipped = flipped
		t.touch()
	}
}

// View adds the horizontal flip to the base snapshot.
func (t *Tank) View() View {
	v := t.BaseEntity.View()
	v.Flipped = t.Flipped
	return v
}

// Spaceship steers relative to its own heading: turning changes rotation at
// TurnRate, thrust changes the signed speed, clamped to MaxSpeed.
type Spaceship struct {
	BaseEntity
	TurnRate float64
	Thrust   float64
	MaxSpeed float64
}

// NewSpaceship builds a spaceship from p. Spaceships drift at DefaultSpeed
// unless given another speed.
func NewSpaceship(id ID, p SpaceshipParams) (*Spaceship, error) {
	p.Common = p.Common.withDefaults(DefaultSpeed, BoundaryBounce)
	if p.TurnRate == 0 {
		p.TurnRate = DefaultTurnRate
	}
	if p.Thrust == 0 {
		p.Thrust = DefaultThrust
	}
	if p.MaxSpeed == 0 {
		p.MaxSpeed = DefaultMaxSpeed
	}
	err := validation.Collect(
		p.Common.validate(),
		validation.NonNegative("turn_rate", p.TurnRate),
		validation.NonNegative("thrust", p.Thrust),
		validation.Positive("max_speed", p.MaxSpeed),
	)
	if err != nil {
		return nil, invalid(KindSpaceship, err)
	}

	s := &Spaceship{
		BaseEntity: newBase(id, KindSpaceship),
		TurnRate:   p.TurnRate,
		Thrust:     p.Thrust,
		MaxSpeed:   p.MaxSpeed,
	}
	p.Common.apply(&s.BaseEntity)
	s.clampSpeed()
	return s, nil
}

// ApplyControl turns, thrusts and rotates the facing of the ship.
func (s *Spaceship) ApplyControl(cmd Commands, deltaTime float64) {
	rotation := s.Rotation
	if cmd.TurnLeft {
		rotation += s.TurnRate * deltaTime
	}
	if cmd.TurnRight {
		rotation -= s.TurnRate * deltaTime
	}
	if cmd.Accelerate {
		s.Speed += s.Thrust * deltaTime
	}
	if cmd.Decelerate {
		s.Speed -= s.Thrust * deltaTime
	}
	if cmd.AimLeft {
		s.Facing += s.TurnRate * deltaTime
		s.touch()
	}
	if cmd.AimRight {
		s.Facing -= s.TurnRate * deltaTime
		s.touch()
	}
	s.clampSpeed()
	s.SetRotation(rotation)
}

func (s *Spaceship) clampSpeed() {
	s.Speed = math.Max(-s.MaxSpeed, math.Min(s.MaxSpeed, s.Speed))
}
