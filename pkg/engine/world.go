// pkg/engine/world.go
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
	"github.com/opd-ai/go-tankgame/pkg/logging"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// World owns every live entity and steps the simulation. Entities are
// registered with a set of ecs systems, one per frame phase; each system owns
// the partition it iterates. A World is not safe for concurrent use: drive it
// from a single goroutine and let collaborators observe it through the event
// bus or the render views.
type World struct {
	Context     *Context
	EventBus    *event.Bus
	Logger      *logging.Logger
	CurrentTick uint64

	ctx        context.Context
	systems    *ecs.World
	entities   map[entity.ID]entity.Entity
	dependents map[entity.ID][]entity.ID
	inputs     map[entity.ID]entity.Commands
	metrics    *worldMetrics
	spatial    *physics.QuadTree

	frameDT  float64
	updating bool

	control *controlSystem
	motion  *motionSystem
	combat  *combatSystem
	attach  *attachmentSystem
	sweep   *sweepSystem
}

// NewWorld creates an empty world. A nil sim gets a default 1440x800
// context, a nil bus a private one and a nil logger discards output.
func NewWorld(ctx context.Context, sim *Context, bus *event.Bus, logger *logging.Logger) *World {
	if ctx == nil {
		ctx = context.Background()
	}
	if sim == nil {
		sim = NewContext(DefaultWidth, DefaultHeight, 1)
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	w := &World{
		Context:    sim,
		EventBus:   bus,
		Logger:     logger,
		ctx:        ctx,
		entities:   make(map[entity.ID]entity.Entity),
		dependents: make(map[entity.ID][]entity.ID),
		inputs:     make(map[entity.ID]entity.Commands),
	}

	w.initSystems()
	w.initSpatialIndex()
	w.initMetrics()
	return w
}

// initSystems registers the frame phases with the ecs world.
func (w *World) initSystems() {
	w.systems = &ecs.World{}
	w.control = &controlSystem{world: w, controllable: newPartition()}
	w.motion = &motionSystem{world: w, all: newPartition()}
	w.combat = &combatSystem{world: w, vehicles: newPartition(), projectiles: newPartition()}
	w.attach = &attachmentSystem{world: w, attachments: newPartition()}
	w.sweep = &sweepSystem{world: w, all: newPartition()}

	w.systems.AddSystem(w.control)
	w.systems.AddSystem(w.motion)
	w.systems.AddSystem(w.combat)
	w.systems.AddSystem(w.attach)
	w.systems.AddSystem(w.sweep)
}

// initSpatialIndex creates the broad-phase index for combat.
func (w *World) initSpatialIndex() {
	w.spatial = physics.NewQuadTree(w.Context.Bounds, spatialCapacity)
}

func (w *World) initMetrics() {
	m, err := newWorldMetrics()
	if err != nil {
		w.Logger.Warn(w.ctx, "world metrics disabled", "error", err)
		return
	}
	w.metrics = m
}

// Spawn builds an entity of the kind p describes.
func (w *World) Spawn(p entity.Params) (entity.ID, error) {
	switch p := p.(type) {
	case entity.TankParams:
		return w.SpawnTank(p)
	case entity.SpaceshipParams:
		return w.SpawnSpaceship(p)
	case entity.TurretParams:
		return w.SpawnTurret(p)
	case entity.HealthBarParams:
		return w.SpawnHealthBar(p)
	case entity.ProjectileParams:
		return w.SpawnProjectile(p)
	case entity.DebrisParams:
		return w.SpawnDebris(p)
	default:
		return 0, fmt.Errorf("spawn %T: %w", p, ErrUnknownKind)
	}
}

// SpawnTank adds a tank.
func (w *World) SpawnTank(p entity.TankParams) (entity.ID, error) {
	return w.spawn(func(id entity.ID) (entity.Entity, error) {
		t, err := entity.NewTank(id, p)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}

// SpawnSpaceship adds a spaceship.
func (w *World) SpawnSpaceship(p entity.SpaceshipParams) (entity.ID, error) {
	return w.spawn(func(id entity.ID) (entity.Entity, error) {
		s, err := entity.NewSpaceship(id, p)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// SpawnTurret mounts a turret on a live host.
func (w *World) SpawnTurret(p entity.TurretParams) (entity.ID, error) {
	if _, ok := w.live(p.Host); !ok {
		return 0, fmt.Errorf("spawn turret: host %d: %w", p.Host, ErrHostNotFound)
	}
	return w.spawn(func(id entity.ID) (entity.Entity, error) {
		t, err := entity.NewTurret(id, p)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
}

// SpawnHealthBar attaches a bar to a live host. A charge bar needs a turret
// host.
func (w *World) SpawnHealthBar(p entity.HealthBarParams) (entity.ID, error) {
	host, ok := w.live(p.Host)
	if !ok {
		return 0, fmt.Errorf("spawn healthbar: host %d: %w", p.Host, ErrHostNotFound)
	}
	if _, isTurret := host.(*entity.Turret); p.Source == entity.BarCharge && !isTurret {
		return 0, fmt.Errorf("spawn healthbar: %w: charge bar on %s", ErrInvalidParams, host.Kind())
	}
	return w.spawn(func(id entity.ID) (entity.Entity, error) {
		b, err := entity.NewHealthBar(id, p, host.Base().Radius)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

// SpawnProjectile adds a projectile. With a Launcher the projectile starts
// at the launcher's muzzle with the launcher's root host velocity plus
// LaunchSpeed along the aim.
func (w *World) SpawnProjectile(p entity.ProjectileParams) (entity.ID, error) {
	var launch *entity.Launch
	if p.Launcher != 0 {
		launcher, ok := w.live(p.Launcher)
		if !ok {
			return 0, fmt.Errorf("spawn projectile: launcher %d: %w", p.Launcher, ErrHostNotFound)
		}
		l := w.launchFrom(launcher, p.LaunchSpeed)
		launch = &l
	}

	id, err := w.spawn(func(id entity.ID) (entity.Entity, error) {
		pr, err := entity.NewProjectile(id, p, launch)
		if err != nil {
			return nil, err
		}
		return pr, nil
	})
	if err == nil && launch != nil {
		w.EventBus.Publish(event.NewFireEvent(w, uint64(id), uint64(launch.LauncherID),
			uint64(launch.OwnerID), launch.Speed, launch.Origin))
	}
	return id, err
}

// SpawnDebris adds one debris particle.
func (w *World) SpawnDebris(p entity.DebrisParams) (entity.ID, error) {
	return w.spawn(func(id entity.ID) (entity.Entity, error) {
		d, err := entity.NewDebris(id, p)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}

// spawn builds with the next free ID and registers the result. The ID is
// only consumed when the build succeeds.
func (w *World) spawn(build func(id entity.ID) (entity.Entity, error)) (entity.ID, error) {
	e, err := build(w.Context.peekID())
	if err != nil {
		return 0, logging.WrapError(err, "spawn")
	}
	w.Context.NextID()
	w.register(e)
	return e.GetID(), nil
}

// register adds e to the registry and to every partition its kind belongs to.
func (w *World) register(e entity.Entity) {
	base := e.Base()
	kind := e.Kind()
	w.entities[base.ID] = e
	w.sweep.all.add(e)
	w.motion.all.add(e)

	if _, ok := e.(entity.Controllable); ok {
		w.control.controllable.add(e)
	}
	switch {
	case kind.IsVehicle():
		w.combat.vehicles.add(e)
	case kind == entity.KindProjectile:
		w.combat.projectiles.add(e)
	case kind.IsAttachment():
		w.attach.attachments.add(e)
		w.dependents[base.HostID] = append(w.dependents[base.HostID], base.ID)
		w.placeAttachment(e)
	}

	w.metrics.recordSpawn(w.ctx, kind)
	w.Logger.Debug(w.ctx, "entity spawned", "id", base.ID, "kind", kind.String())
	w.EventBus.Publish(event.NewEntityEvent(event.EntitySpawned, w, uint64(base.ID), kind.String(), base.Position))
}

// Destroy removes id and everything attached to it. Destroying an unknown or
// already destroyed ID does nothing. Called during Update the removal
// happens at the frame's sweep, otherwise immediately.
func (w *World) Destroy(id entity.ID) {
	w.markDestroyed(id)
	if !w.updating {
		w.sweepRemoved()
	}
}

// markDestroyed flags id and its dependents for the sweep.
func (w *World) markDestroyed(id entity.ID) {
	e, ok := w.entities[id]
	if !ok || !e.Base().MarkRemoved() {
		return
	}
	base := e.Base()
	w.EventBus.Publish(event.NewEntityEvent(event.EntityDestroyed, w, uint64(id), e.Kind().String(), base.Position))
	for _, dep := range w.dependents[id] {
		w.markDestroyed(dep)
	}
}

// sweepRemoved drops every marked entity from the registry and, through the
// ecs world, from every partition.
func (w *World) sweepRemoved() {
	var removed []entity.Entity
	for i := 0; i < w.sweep.all.len(); i++ {
		if e := w.sweep.all.at(i); e.Base().Removed() {
			removed = append(removed, e)
		}
	}

	for _, e := range removed {
		base := e.Base()
		delete(w.entities, base.ID)
		delete(w.dependents, base.ID)
		delete(w.inputs, base.ID)
		if base.Hosted() {
			w.unlink(base.HostID, base.ID)
		}
		w.systems.RemoveEntity(*base.GetBasicEntity())
		w.metrics.recordDestroy(w.ctx, e.Kind())
	}
}

func (w *World) unlink(host, dependent entity.ID) {
	deps := w.dependents[host]
	for i, id := range deps {
		if id == dependent {
			w.dependents[host] = append(deps[:i:i], deps[i+1:]...)
			break
		}
	}
	if len(w.dependents[host]) == 0 {
		delete(w.dependents, host)
	}
}

// live returns the entity for id unless it is unknown or marked.
func (w *World) live(id entity.ID) (entity.Entity, bool) {
	e, ok := w.entities[id]
	if !ok || e.Base().Removed() {
		return nil, false
	}
	return e, true
}

// IsLive reports whether id refers to an entity that has not been destroyed.
func (w *World) IsLive(id entity.ID) bool {
	_, ok := w.live(id)
	return ok
}

// Get returns the live entity for id.
func (w *World) Get(id entity.ID) (entity.Entity, bool) {
	return w.live(id)
}

// View returns the render snapshot of a live entity.
func (w *World) View(id entity.ID) (entity.View, bool) {
	e, ok := w.live(id)
	if !ok {
		return entity.View{}, false
	}
	return e.View(), true
}

// ForEachOfKind calls fn for every live entity of kind in spawn order.
func (w *World) ForEachOfKind(kind entity.Kind, fn func(entity.Entity)) {
	for i := 0; i < w.sweep.all.len(); i++ {
		e := w.sweep.all.at(i)
		if e.Kind() == kind && !e.Base().Removed() {
			fn(e)
		}
	}
}

// Count returns the number of live entities of kind.
func (w *World) Count(kind entity.Kind) int {
	n := 0
	w.ForEachOfKind(kind, func(entity.Entity) { n++ })
	return n
}

// AllLive returns the IDs of all live entities in spawn order.
func (w *World) AllLive() []entity.ID {
	ids := make([]entity.ID, 0, w.sweep.all.len())
	for i := 0; i < w.sweep.all.len(); i++ {
		if e := w.sweep.all.at(i); !e.Base().Removed() {
			ids = append(ids, e.GetID())
		}
	}
	return ids
}

// Views returns the render snapshots of all live entities in spawn order.
func (w *World) Views() []entity.View {
	views := make([]entity.View, 0, w.sweep.all.len())
	for i := 0; i < w.sweep.all.len(); i++ {
		if e := w.sweep.all.at(i); !e.Base().Removed() {
			views = append(views, e.View())
		}
	}
	return views
}

// Render draws one frame with r.
func (w *World) Render(r entity.Renderer) {
	r.Clear()
	for _, v := range w.Views() {
		r.Draw(v)
	}
	r.Present()
}

// SetInput stores the commands a vehicle applies on the next Update. The
// vehicle's turrets receive the same commands. Inputs are consumed by the
// frame; unknown IDs are ignored.
func (w *World) SetInput(id entity.ID, cmd entity.Commands) {
	if !w.IsLive(id) {
		return
	}
	w.inputs[id] = cmd
}

// Update advances the simulation by deltaTime seconds: control, motion and
// boundary, combat, attachment refresh, then the destruction sweep.
// Negative or non-finite steps are treated as zero.
func (w *World) Update(deltaTime float64) {
	if !(deltaTime > 0) || math.IsInf(deltaTime, 0) {
		deltaTime = 0
	}
	w.frameDT = deltaTime
	w.updating = true
	w.systems.Update(float32(deltaTime))
	w.updating = false
	w.CurrentTick++
	w.metrics.recordFrame(w.ctx)
}

// rootHost follows host links from id to the entity that carries no host.
func (w *World) rootHost(id entity.ID) entity.ID {
	for {
		e, ok := w.entities[id]
		if !ok || !e.Base().Hosted() {
			return id
		}
		id = e.Base().HostID
	}
}

// placeAttachment puts a dependent at its host's position plus offset and
// refreshes bars. A dependent whose host is gone is marked.
func (w *World) placeAttachment(e entity.Entity) {
	base := e.Base()
	host, ok := w.live(base.HostID)
	if !ok {
		w.markDestroyed(base.ID)
		return
	}
	hostBase := host.Base()
	base.Position = hostBase.Position.Add(base.Offset)

	bar, ok := e.(*entity.HealthBar)
	if !ok {
		return
	}
	switch t, isTurret := host.(*entity.Turret); {
	case bar.Source == entity.BarCharge && isTurret:
		bar.Refresh(t.Charge, t.FullCharge)
	default:
		bar.Refresh(hostBase.Hitpoints, hostBase.HitpointsFull)
	}
}
