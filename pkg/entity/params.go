// pkg/entity/params.go
package entity

import (
	"fmt"
	"image/color"

	"github.com/opd-ai/go-tankgame/pkg/physics"
	"github.com/opd-ai/go-tankgame/pkg/validation"
)

// Defaults applied to zero-valued parameter fields.
const (
	DefaultSpeed       = 50.0
	DefaultHitpoints   = 100.0
	DefaultMass        = 10.0
	DefaultDamage      = 10.0
	DefaultRadius      = 10.0
	DefaultCyclePeriod = 1.0

	DefaultTankDriveSpeed = 40.0
	DefaultTankClimbSpeed = 20.0

	DefaultTurnRate = 60.0
	DefaultThrust   = 60.0
	DefaultMaxSpeed = 300.0

	DefaultAimRate              = 60.0
	DefaultChargeRate           = 60.0
	DefaultChargeBaseline       = 1.0
	DefaultFullCharge           = 100.0
	DefaultLaunchSpeedPerCharge = 5.0

	DefaultBarGap    = 8.0
	DefaultBarHeight = 5.0
)

// DefaultColor is used when no color is given.
var DefaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Params is implemented by every per-kind spawn parameter struct.
type Params interface {
	Kind() Kind
}

// CycleParams turn a static color into a cycle towards End.
type CycleParams struct {
	End    color.RGBA
	Period float64 // full round trip in seconds, zero means DefaultCyclePeriod
}

// Common holds the fields shared by free-moving kinds. Zero values select
// the package defaults.
type Common struct {
	Position      physics.Vector2D
	Rotation      float64
	Speed         float64
	Hitpoints     float64
	HitpointsFull float64
	Mass          float64
	Radius        float64
	MaxAge        float64
	Color         color.RGBA
	Cycle         *CycleParams
	Boundary      BoundaryPolicy
}

func (c Common) withDefaults(speed float64, boundary BoundaryPolicy) Common {
	if c.Speed == 0 {
		c.Speed = speed
	}
	switch {
	case c.HitpointsFull == 0 && c.Hitpoints == 0:
		c.Hitpoints, c.HitpointsFull = DefaultHitpoints, DefaultHitpoints
	case c.HitpointsFull == 0:
		c.HitpointsFull = c.Hitpoints
	case c.Hitpoints == 0:
		c.Hitpoints = c.HitpointsFull
	}
	if c.Mass == 0 {
		c.Mass = DefaultMass
	}
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	if c.Color == (color.RGBA{}) {
		c.Color = DefaultColor
	}
	if c.Cycle != nil && c.Cycle.Period == 0 {
		cycle := *c.Cycle
		cycle.Period = DefaultCyclePeriod
		c.Cycle = &cycle
	}
	if c.Boundary == BoundaryDefault {
		c.Boundary = boundary
	}
	return c
}

func (c Common) validate() error {
	errs := []error{
		validation.Finite("position.x", c.Position.X),
		validation.Finite("position.y", c.Position.Y),
		validation.Finite("rotation", c.Rotation),
		validation.Finite("speed", c.Speed),
		validation.NonNegative("radius", c.Radius),
		validation.NonNegative("mass", c.Mass),
		validation.NonNegative("hitpoints", c.Hitpoints),
		validation.NonNegative("hitpoints_full", c.HitpointsFull),
		validation.AtMost("hitpoints", c.Hitpoints, c.HitpointsFull),
		validation.NonNegative("max_age", c.MaxAge),
	}
	if c.Cycle != nil {
		errs = append(errs, validation.Positive("cycle.period", c.Cycle.Period))
	}
	return validation.Collect(errs...)
}

func (c Common) apply(e *BaseEntity) {
	e.Position = c.Position
	e.Speed = c.Speed
	e.SetRotation(c.Rotation)
	e.Hitpoints = c.Hitpoints
	e.HitpointsFull = c.HitpointsFull
	e.Mass = c.Mass
	e.Radius = c.Radius
	e.MaxAge = c.MaxAge
	e.Color = c.Color
	e.Boundary = c.Boundary
	if c.Cycle != nil {
		e.Cycle = NewColorCycle(c.Color, c.Cycle.End, c.Cycle.Period)
	}
}

func invalid(kind Kind, err error) error {
	return fmt.Errorf("%s: %w: %w", kind, ErrInvalidParams, err)
}

// TankParams configure a tank. Speed defaults to zero: tanks only move while
// a direction key is held.
type TankParams struct {
	Common
	DriveSpeed float64 // left/right
	ClimbSpeed float64 // up/down
}

func (TankParams) Kind() Kind { return KindTank }

// SpaceshipParams configure a spaceship.
type SpaceshipParams struct {
	Common
	TurnRate float64 // degrees per second
	Thrust   float64 // speed change per second
	MaxSpeed float64
}

func (SpaceshipParams) Kind() Kind { return KindSpaceship }

// TurretParams configure a turret mounted on Host at Offset.
type TurretParams struct {
	Host       ID
	Offset     physics.Vector2D
	Radius     float64
	Color      color.RGBA
	Rotation   float64
	FacingLeft bool

	AimRate              float64
	ChargeRate           float64
	ChargeBaseline       float64
	FullCharge           float64
	LaunchSpeedPerCharge float64

	// MuzzleOffset is measured along the barrel; nil places the muzzle at
	// the barrel tip (Radius, 0).
	MuzzleOffset     *physics.Vector2D
	ProjectileDamage float64
	ProjectileRadius float64
	NoGravity        bool
}

func (TurretParams) Kind() Kind { return KindTurret }

func (p TurretParams) withDefaults() TurretParams {
	if p.Radius == 0 {
		p.Radius = DefaultRadius
	}
	if p.Color == (color.RGBA{}) {
		p.Color = DefaultColor
	}
	if p.FacingLeft && p.Rotation == 0 {
		p.Rotation = 180
	}
	if p.AimRate == 0 {
		p.AimRate = DefaultAimRate
	}
	if p.ChargeRate == 0 {
		p.ChargeRate = DefaultChargeRate
	}
	if p.ChargeBaseline == 0 {
		p.ChargeBaseline = DefaultChargeBaseline
	}
	if p.FullCharge == 0 {
		p.FullCharge = DefaultFullCharge
	}
	if p.LaunchSpeedPerCharge == 0 {
		p.LaunchSpeedPerCharge = DefaultLaunchSpeedPerCharge
	}
	if p.MuzzleOffset == nil {
		p.MuzzleOffset = &physics.Vector2D{X: p.Radius}
	}
	if p.ProjectileDamage == 0 {
		p.ProjectileDamage = DefaultDamage
	}
	if p.ProjectileRadius == 0 {
		p.ProjectileRadius = DefaultRadius
	}
	return p
}

func (p TurretParams) validate() error {
	return validation.Collect(
		validation.NonNegative("radius", p.Radius),
		validation.Finite("rotation", p.Rotation),
		validation.NonNegative("aim_rate", p.AimRate),
		validation.NonNegative("charge_rate", p.ChargeRate),
		validation.NonNegative("charge_baseline", p.ChargeBaseline),
		validation.Positive("full_charge", p.FullCharge),
		validation.NonNegative("launch_speed_per_charge", p.LaunchSpeedPerCharge),
		validation.NonNegative("projectile_damage", p.ProjectileDamage),
		validation.NonNegative("projectile_radius", p.ProjectileRadius),
	)
}

// BarSource selects what a bar displays.
type BarSource int

const (
	BarHitpoints BarSource = iota
	BarCharge
)

func (s BarSource) String() string {
	if s == BarCharge {
		return "charge"
	}
	return "hitpoints"
}

// HealthBarParams configure a bar above Host. A nil Offset places the bar
// DefaultBarGap above the host's bounding circle; a zero Width spans the
// host's diameter.
type HealthBarParams struct {
	Host       ID
	Source     BarSource
	Offset     *physics.Vector2D
	Width      float64
	Thresholds Thresholds
}

func (HealthBarParams) Kind() Kind { return KindHealthBar }

func (p HealthBarParams) withDefaults(hostRadius float64) HealthBarParams {
	if p.Offset == nil {
		p.Offset = &physics.Vector2D{Y: hostRadius + DefaultBarGap}
	}
	if p.Width == 0 {
		p.Width = 2 * hostRadius
	}
	if p.Thresholds == (Thresholds{}) {
		p.Thresholds = DefaultThresholds()
	}
	return p
}

func (p HealthBarParams) validate() error {
	return validation.Collect(
		validation.NonNegative("width", p.Width),
		p.Thresholds.validate(),
	)
}

// ProjectileParams configure a projectile. With a Launcher the projectile
// takes its position, velocity and aim from that entity at creation and the
// Common position and rotation are ignored.
type ProjectileParams struct {
	Common
	Launcher    ID
	LaunchSpeed float64
	Damage      float64
	Gravity     bool
}

func (ProjectileParams) Kind() Kind { return KindProjectile }

// DebrisParams configure one debris particle. Use RandomDebris for the
// usual burst.
type DebrisParams struct {
	Position physics.Vector2D
	Rotation float64
	Speed    float64
	Radius   float64
	MaxAge   float64
	Color    color.RGBA
}

func (DebrisParams) Kind() Kind { return KindDebris }

func (p DebrisParams) validate() error {
	return validation.Collect(
		validation.Finite("position.x", p.Position.X),
		validation.Finite("position.y", p.Position.Y),
		validation.NonNegative("radius", p.Radius),
		validation.NonNegative("max_age", p.MaxAge),
	)
}
