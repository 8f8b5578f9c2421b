// pkg/entity/turret.go
package entity

import (
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// Turret is a charge launcher mounted on a vehicle. Its aim is absolute and
// does not follow the host's rotation. Holding fire builds charge; releasing
// it queues exactly one launch whose speed is proportional to the charge.
type Turret struct {
	BaseEntity
	AimRate float64

	Charge               float64
	ChargeRate           float64
	ChargeBaseline       float64
	FullCharge           float64
	LaunchSpeedPerCharge float64

	MuzzleOffset      physics.Vector2D
	ProjectileDamage  float64
	ProjectileRadius  float64
	ProjectileGravity bool

	pending    float64
	hasPending bool
}

// NewTurret builds a turret from p. The host is resolved by the world; the
// turret's position is filled in during the attachment refresh.
func NewTurret(id ID, p TurretParams) (*Turret, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, invalid(KindTurret, err)
	}

	t := &Turret{
		BaseEntity:           newBase(id, KindTurret),
		AimRate:              p.AimRate,
		Charge:               p.ChargeBaseline,
		ChargeRate:           p.ChargeRate,
		ChargeBaseline:       p.ChargeBaseline,
		FullCharge:           p.FullCharge,
		LaunchSpeedPerCharge: p.LaunchSpeedPerCharge,
		MuzzleOffset:         *p.MuzzleOffset,
		ProjectileDamage:     p.ProjectileDamage,
		ProjectileRadius:     p.ProjectileRadius,
		ProjectileGravity:    !p.NoGravity,
	}
	t.HostID = p.Host
	t.Offset = p.Offset
	t.Radius = p.Radius
	t.Color = p.Color
	t.Rotation = p.Rotation
	t.Boundary = BoundaryIgnore
	t.Hitpoints, t.HitpointsFull = DefaultHitpoints, DefaultHitpoints
	return t, nil
}

// ApplyControl aims the barrel and handles the charge cycle.
func (t *Turret) ApplyControl(cmd Commands, deltaTime float64) {
	if cmd.AimLeft {
		t.SetRotation(t.Rotation + t.AimRate*deltaTime)
	}
	if cmd.AimRight {
		t.SetRotation(t.Rotation - t.AimRate*deltaTime)
	}
	if cmd.FireHeld {
		t.Charge += t.ChargeRate * deltaTime
	}
	if cmd.FireReleased {
		t.pending = t.Charge * t.LaunchSpeedPerCharge
		t.hasPending = true
		t.Charge = t.ChargeBaseline
	}
}

// TakeLaunch returns the queued launch speed, if any, and clears it.
func (t *Turret) TakeLaunch() (float64, bool) {
	if !t.hasPending {
		return 0, false
	}
	speed := t.pending
	t.pending, t.hasPending = 0, false
	return speed, true
}

// AimAngle is the absolute direction of the barrel in degrees.
func (t *Turret) AimAngle() float64 {
	return t.Rotation + t.Facing
}

// Muzzle is the world position projectiles leave from.
func (t *Turret) Muzzle() physics.Vector2D {
	return t.Position.Add(t.MuzzleOffset.RotateDeg(t.AimAngle()))
}

// Launch describes a projectile leaving this turret at speed. baseVelocity is
// the velocity the projectile inherits, normally the host's.
func (t *Turret) Launch(baseVelocity physics.Vector2D, speed float64) Launch {
	return Launch{
		Origin:       t.Muzzle(),
		BaseVelocity: baseVelocity,
		Aim:          t.AimAngle(),
		Speed:        speed,
		LauncherID:   t.ID,
		OwnerID:      t.HostID,
		Color:        t.Color,
		Damage:       t.ProjectileDamage,
		Radius:       t.ProjectileRadius,
		Gravity:      t.ProjectileGravity,
	}
}

// ChargeRatio is the charge bar value in [0, 1].
func (t *Turret) ChargeRatio() float64 {
	return Ratio(t.Charge, t.FullCharge)
}
