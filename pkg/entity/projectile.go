// pkg/entity/projectile.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-tankgame/pkg/physics"
	"github.com/opd-ai/go-tankgame/pkg/validation"
)

// Launch is the snapshot of a launcher taken once when a projectile is
// created. Later movement of the launcher does not affect the projectile.
type Launch struct {
	Origin       physics.Vector2D
	BaseVelocity physics.Vector2D
	Aim          float64
	Speed        float64
	LauncherID   ID
	OwnerID      ID
	Color        color.RGBA
	Damage       float64
	Radius       float64
	Gravity      bool
}

// LaunchFrom snapshots a launcher that is not a turret, firing along its
// rotation plus facing from its own position.
func LaunchFrom(launcher *BaseEntity, baseVelocity physics.Vector2D, speed float64) Launch {
	return Launch{
		Origin:       launcher.Position,
		BaseVelocity: baseVelocity,
		Aim:          launcher.Rotation + launcher.Facing,
		Speed:        speed,
		LauncherID:   launcher.ID,
		OwnerID:      launcher.ID,
		Color:        launcher.Color,
	}
}

// Velocity is the initial projectile velocity: the inherited velocity plus
// the launch speed along the aim.
func (l Launch) Velocity() physics.Vector2D {
	return l.BaseVelocity.Add(physics.FromAngleDeg(l.Aim, l.Speed))
}

// Projectile flies until it hits a vehicle or leaves the world.
type Projectile struct {
	BaseEntity
	LauncherID ID
	OwnerID    ID
}

// NewProjectile builds a projectile. When launch is non-nil it supplies
// position, velocity and the launcher identity; values set in p take
// precedence over the launch's damage, radius and color.
func NewProjectile(id ID, p ProjectileParams, launch *Launch) (*Projectile, error) {
	if launch != nil {
		p.Position = launch.Origin
		if p.Damage == 0 {
			p.Damage = launch.Damage
		}
		if p.Radius == 0 {
			p.Radius = launch.Radius
		}
		if p.Color == (color.RGBA{}) {
			p.Color = launch.Color
		}
		p.Gravity = p.Gravity || launch.Gravity
	}
	p.Common = p.Common.withDefaults(DefaultSpeed, BoundaryDestroy)
	p.Boundary = BoundaryDestroy
	if p.Damage == 0 {
		p.Damage = DefaultDamage
	}

	err := validation.Collect(
		p.Common.validate(),
		validation.NonNegative("damage", p.Damage),
		validation.NonNegative("launch_speed", p.LaunchSpeed),
	)
	if err != nil {
		return nil, invalid(KindProjectile, err)
	}

	pr := &Projectile{BaseEntity: newBase(id, KindProjectile)}
	p.Common.apply(&pr.BaseEntity)
	pr.Damage = p.Damage
	pr.Gravity = p.Gravity

	if launch != nil {
		pr.SetVelocity(launch.Velocity())
		if pr.Speed == 0 {
			pr.Rotation = launch.Aim
		}
		pr.LauncherID = launch.LauncherID
		pr.OwnerID = launch.OwnerID
	}
	return pr, nil
}

// Excludes reports whether the projectile must not damage vehicle id.
func (p *Projectile) Excludes(id ID) bool {
	return id == p.LauncherID || id == p.OwnerID
}
