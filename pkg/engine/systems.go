// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

// Phase priorities. The ecs world runs higher priorities first.
const (
	priorityControl    = 50
	priorityMotion     = 40
	priorityCombat     = 30
	priorityAttachment = 20
	prioritySweep      = 10
)

// partition is an insertion-ordered set of entities keyed by their ecs ID.
// Iteration order is spawn order, which keeps runs with the same seed
// reproducible. Removal leaves a hole that the next len call compacts, so a
// sweep of many entities is a single pass.
type partition struct {
	order []entity.Entity
	index map[uint64]int
	holes int
}

func newPartition() *partition {
	return &partition{index: make(map[uint64]int)}
}

func (p *partition) add(e entity.Entity) {
	key := e.Base().GetBasicEntity().ID()
	if _, ok := p.index[key]; ok {
		return
	}
	p.index[key] = len(p.order)
	p.order = append(p.order, e)
}

func (p *partition) remove(key uint64) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	delete(p.index, key)
	p.order[i] = nil
	p.holes++
}

func (p *partition) compact() {
	n := 0
	for _, e := range p.order {
		if e == nil {
			continue
		}
		p.order[n] = e
		p.index[e.Base().GetBasicEntity().ID()] = n
		n++
	}
	clear(p.order[n:])
	p.order = p.order[:n]
	p.holes = 0
}

func (p *partition) len() int {
	if p.holes > 0 {
		p.compact()
	}
	return len(p.order)
}

func (p *partition) at(i int) entity.Entity {
	return p.order[i]
}

// controlSystem applies the frame's commands to vehicles and turrets and
// turns released charges into projectiles.
type controlSystem struct {
	world        *World
	controllable *partition
}

func (s *controlSystem) Priority() int { return priorityControl }

func (s *controlSystem) Remove(e ecs.BasicEntity) { s.controllable.remove(e.ID()) }

func (s *controlSystem) Update(float32) {
	s.world.applyControls(s.controllable)
}

// motionSystem integrates every entity and applies its boundary policy.
type motionSystem struct {
	world *World
	all   *partition
}

func (s *motionSystem) Priority() int { return priorityMotion }

func (s *motionSystem) Remove(e ecs.BasicEntity) { s.all.remove(e.ID()) }

func (s *motionSystem) Update(float32) {
	s.world.integrate(s.all)
}

// combatSystem resolves projectile and vehicle overlaps.
type combatSystem struct {
	world       *World
	vehicles    *partition
	projectiles *partition
}

func (s *combatSystem) Priority() int { return priorityCombat }

func (s *combatSystem) Remove(e ecs.BasicEntity) {
	s.vehicles.remove(e.ID())
	s.projectiles.remove(e.ID())
}

func (s *combatSystem) Update(float32) {
	s.world.resolveCombat(s.vehicles, s.projectiles)
}

// attachmentSystem moves turrets and bars onto their hosts.
type attachmentSystem struct {
	world       *World
	attachments *partition
}

func (s *attachmentSystem) Priority() int { return priorityAttachment }

func (s *attachmentSystem) Remove(e ecs.BasicEntity) { s.attachments.remove(e.ID()) }

func (s *attachmentSystem) Update(float32) {
	for i := 0; i < s.attachments.len(); i++ {
		e := s.attachments.at(i)
		if !e.Base().Removed() {
			s.world.placeAttachment(e)
		}
	}
}

// sweepSystem removes every entity marked during the frame. Its partition is
// the registry's spawn-ordered list of all entities.
type sweepSystem struct {
	world *World
	all   *partition
}

func (s *sweepSystem) Priority() int { return prioritySweep }

func (s *sweepSystem) Remove(e ecs.BasicEntity) { s.all.remove(e.ID()) }

func (s *sweepSystem) Update(float32) {
	s.world.sweepRemoved()
}
