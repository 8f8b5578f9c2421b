// pkg/engine/combat.go
package engine

import (
	"math"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// resolveCombat tests every live vehicle against the live projectiles near
// it. Candidates come from the quadtree and are confirmed with a bounding
// circle test.
func (w *World) resolveCombat(vehicles, projectiles *partition) {
	w.spatial.Clear()
	var stray []*entity.Projectile
	maxRadius := 0.0

	for i := 0; i < projectiles.len(); i++ {
		p := projectiles.at(i).(*entity.Projectile)
		if p.Removed() {
			continue
		}
		maxRadius = math.Max(maxRadius, p.Radius)
		if !w.spatial.Insert(p.Position, p) {
			stray = append(stray, p)
		}
	}
	if projectiles.len() == 0 {
		return
	}

	for i := 0; i < vehicles.len(); i++ {
		v := vehicles.at(i)
		if v.Base().Removed() {
			continue
		}
		w.checkCollisionsForVehicle(v, maxRadius, stray)
	}
}

// checkCollisionsForVehicle finds and handles the projectiles hitting v.
func (w *World) checkCollisionsForVehicle(v entity.Entity, maxRadius float64, stray []*entity.Projectile) {
	base := v.Base()
	reach := 2 * (base.Radius + maxRadius)
	area := physics.Rect{Center: base.Position, Width: reach, Height: reach}

	for _, candidate := range w.spatial.Query(area) {
		if base.Removed() {
			return
		}
		w.handleVehicleProjectileCollision(v, candidate.(*entity.Projectile))
	}
	for _, p := range stray {
		if base.Removed() {
			return
		}
		w.handleVehicleProjectileCollision(v, p)
	}
}

// handleVehicleProjectileCollision resolves one candidate pair.
func (w *World) handleVehicleProjectileCollision(v entity.Entity, p *entity.Projectile) {
	if p.Removed() || p.Excludes(v.GetID()) {
		return
	}
	if v.Base().GetCollider().Collides(p.GetCollider()) {
		w.processVehicleDamage(v, p)
	}
}

// processVehicleDamage applies the projectile's damage, spends the
// projectile and throws debris at the impact point.
func (w *World) processVehicleDamage(v entity.Entity, p *entity.Projectile) {
	base := v.Base()
	destroyed := base.ApplyDamage(p.Damage)
	w.markDestroyed(p.ID)
	w.metrics.recordHit(w.ctx)

	w.EventBus.Publish(event.NewHitEvent(w, uint64(p.ID), uint64(base.ID), p.Damage, base.Hitpoints, p.Position))
	w.spawnBurst(p.Position, physics.Vector2D{}, w.Context.HitDebris)

	if destroyed {
		w.handleVehicleDestruction(v, p)
	}
}

// handleVehicleDestruction removes a vehicle whose hitpoints ran out,
// together with its turrets and bars.
func (w *World) handleVehicleDestruction(v entity.Entity, p *entity.Projectile) {
	base := v.Base()
	w.Logger.Info(w.ctx, "vehicle destroyed",
		"id", base.ID,
		"kind", v.Kind().String(),
		"by", p.OwnerID,
	)
	w.EventBus.Publish(event.NewEntityEvent(event.VehicleDestroyed, w, uint64(base.ID), v.Kind().String(), base.Position))
	w.markDestroyed(base.ID)
}

// spawnBurst emits count random debris particles at point. A non-zero normal
// moves each particle clear of the edge it points away from.
func (w *World) spawnBurst(point, normal physics.Vector2D, count int) {
	for i := 0; i < count; i++ {
		p := entity.RandomDebris(w.Context.Rand, point)
		if normal != (physics.Vector2D{}) {
			p.Position = point.Add(normal.Scale(p.Radius + 1))
		}
		if _, err := w.SpawnDebris(p); err != nil {
			w.Logger.Error(w.ctx, "debris spawn failed", err)
		}
	}
}
