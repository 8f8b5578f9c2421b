// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	EntitySpawned    Type = "entity_spawned"
	EntityDestroyed  Type = "entity_destroyed"
	ProjectileFired  Type = "projectile_fired"
	ProjectileHit    Type = "projectile_hit"
	VehicleDestroyed Type = "vehicle_destroyed"
	WallBounced      Type = "wall_bounced"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Subscription is returned by Subscribe and cancels the registration.
type Subscription struct {
	bus       *Bus
	eventType Type
	id        uint64
}

// Cancel removes the handler from the bus. Calling it again is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.eventType, s.id)
	s.bus = nil
}

// Bus dispatches events synchronously on the publishing goroutine.
// Subscribing and cancelling are safe from any goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})
	return &Subscription{bus: b, eventType: eventType, id: id}
}

func (b *Bus) remove(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// copy so that a Publish iterating the old slice is unaffected
		remaining := make([]subscriber, 0, len(subs)-1)
		remaining = append(remaining, subs[:i]...)
		remaining = append(remaining, subs[i+1:]...)
		if len(remaining) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = remaining
		}
		return
	}
}

// Publish sends an event to all subscribed handlers in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// HandlerCount returns the number of handlers subscribed to eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Specific event implementations

// EntityEvent reports the spawn or destruction of an entity.
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Kind     string
	Position physics.Vector2D
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, kind string, pos physics.Vector2D) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		EntityID:  entityID,
		Kind:      kind,
		Position:  pos,
	}
}

// FireEvent reports a projectile leaving its launcher.
type FireEvent struct {
	BaseEvent
	ProjectileID uint64
	LauncherID   uint64
	OwnerID      uint64
	Speed        float64
	Position     physics.Vector2D
}

// NewFireEvent creates a new projectile fired event
func NewFireEvent(source interface{}, projectileID, launcherID, ownerID uint64, speed float64, pos physics.Vector2D) *FireEvent {
	return &FireEvent{
		BaseEvent:    BaseEvent{EventType: ProjectileFired, Source: source},
		ProjectileID: projectileID,
		LauncherID:   launcherID,
		OwnerID:      ownerID,
		Speed:        speed,
		Position:     pos,
	}
}

// HitEvent reports a projectile damaging a vehicle.
type HitEvent struct {
	BaseEvent
	ProjectileID uint64
	TargetID     uint64
	Damage       float64
	Remaining    float64
	Point        physics.Vector2D
}

// NewHitEvent creates a new projectile hit event
func NewHitEvent(source interface{}, projectileID, targetID uint64, damage, remaining float64, point physics.Vector2D) *HitEvent {
	return &HitEvent{
		BaseEvent:    BaseEvent{EventType: ProjectileHit, Source: source},
		ProjectileID: projectileID,
		TargetID:     targetID,
		Damage:       damage,
		Remaining:    remaining,
		Point:        point,
	}
}

// BounceEvent reports an entity reflecting off a world edge.
type BounceEvent struct {
	BaseEvent
	EntityID uint64
	Point    physics.Vector2D
	Normal   physics.Vector2D
	Speed    float64
}

// NewBounceEvent creates a new wall bounce event
func NewBounceEvent(source interface{}, entityID uint64, point, normal physics.Vector2D, speed float64) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{EventType: WallBounced, Source: source},
		EntityID:  entityID,
		Point:     point,
		Normal:    normal,
		Speed:     speed,
	}
}
