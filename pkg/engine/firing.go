// pkg/engine/firing.go
package engine

import (
	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
)

// applyControls hands each vehicle its commands and each turret the commands
// of the vehicle carrying it, then fires released charges. Commands last
// one frame.
func (w *World) applyControls(controllable *partition) {
	for i := 0; i < controllable.len(); i++ {
		e := controllable.at(i)
		if e.Base().Removed() {
			continue
		}
		c := e.(entity.Controllable)
		c.ApplyControl(w.inputs[w.rootHost(c.GetID())], w.frameDT)

		if t, ok := c.(*entity.Turret); ok {
			w.fire(t)
		}
	}
	clear(w.inputs)
}

// fire spawns the projectile queued by a released charge.
func (w *World) fire(t *entity.Turret) {
	speed, ok := t.TakeLaunch()
	if !ok {
		return
	}
	if _, err := w.SpawnProjectile(entity.ProjectileParams{Launcher: t.ID, LaunchSpeed: speed}); err != nil {
		w.Logger.Error(w.ctx, "launch failed", err, "turret", t.ID)
	}
}

// launchFrom snapshots launcher for a projectile leaving at speed. The
// projectile inherits the velocity of the root host and is owned by it.
func (w *World) launchFrom(launcher entity.Entity, speed float64) entity.Launch {
	owner := w.rootHost(launcher.GetID())
	velocity := launcher.Base().Velocity
	if root, ok := w.entities[owner]; ok {
		velocity = root.Base().Velocity
	}

	var l entity.Launch
	if t, ok := launcher.(*entity.Turret); ok {
		l = t.Launch(velocity, speed)
	} else {
		l = entity.LaunchFrom(launcher.Base(), velocity, speed)
	}
	l.OwnerID = owner
	return l
}

// integrate runs every entity's own update and turns the outcomes into
// debris, bounce events and removals.
func (w *World) integrate(all *partition) {
	env := w.Context.Environment()
	n := all.len()
	for i := 0; i < n; i++ {
		e := all.at(i)
		if e.Base().Removed() {
			continue
		}
		w.resolveOutcome(e, e.Update(w.frameDT, env))
	}
}

func (w *World) resolveOutcome(e entity.Entity, out entity.Outcome) {
	base := e.Base()
	for _, c := range out.Bounces {
		w.EventBus.Publish(event.NewBounceEvent(w, uint64(base.ID), c.Point, c.Normal, base.Speed))
		w.spawnBurst(c.Point, c.Normal, w.Context.BounceDebris)
	}
	if out.Remove() {
		w.markDestroyed(base.ID)
	}
}
