// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tankgame/pkg/engine"
	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/event"
)

// Message is one line of the HUD event log.
type Message struct {
	Text      string
	Timestamp time.Time
}

// HUDSystem shows the player status line and the most recent event in the
// window title.
type HUDSystem struct {
	title    string
	status   func() string
	setTitle func(string)
	shown    string

	mu       sync.Mutex
	messages []Message
	maxLines int
	linger   time.Duration
	now      func() time.Time

	names map[entity.ID]string
	subs  []*event.Subscription
}

// NewHUDSystem creates a HUD with a fixed window title prefix. status is
// polled once per frame.
func NewHUDSystem(title string, status func() string) *HUDSystem {
	return &HUDSystem{
		title:    title,
		status:   status,
		setTitle: engo.SetTitle,
		maxLines: 10,
		linger:   3 * time.Second,
		now:      time.Now,
		names:    make(map[entity.ID]string),
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the window title when it changed.
func (hud *HUDSystem) Update(dt float32) {
	if t := hud.Title(); t != hud.shown {
		hud.shown = t
		hud.setTitle(t)
	}
}

// Title is the text shown in the window title.
func (hud *HUDSystem) Title() string {
	t := hud.title
	if hud.status != nil {
		if s := hud.status(); s != "" {
			t += " | " + s
		}
	}

	hud.mu.Lock()
	defer hud.mu.Unlock()
	if n := len(hud.messages); n > 0 {
		last := hud.messages[n-1]
		if hud.now().Sub(last.Timestamp) < hud.linger {
			t += " | " + last.Text
		}
	}
	return t
}

// Attach subscribes the HUD to hits and kills of the given players.
func (hud *HUDSystem) Attach(bus *event.Bus, players []*engine.Player) {
	for _, p := range players {
		hud.names[p.VehicleID] = p.Name
	}

	hud.subs = append(hud.subs,
		bus.Subscribe(event.ProjectileHit, func(e event.Event) {
			if hit, ok := e.(*event.HitEvent); ok {
				hud.AddMessage(fmt.Sprintf("%s hit, %.0f hp left", hud.name(entity.ID(hit.TargetID)), hit.Remaining))
			}
		}),
		bus.Subscribe(event.VehicleDestroyed, func(e event.Event) {
			if ev, ok := e.(*event.EntityEvent); ok {
				hud.AddMessage(hud.name(entity.ID(ev.EntityID)) + " destroyed")
			}
		}),
	)
}

// Detach cancels the subscriptions made by Attach.
func (hud *HUDSystem) Detach() {
	for _, s := range hud.subs {
		s.Cancel()
	}
	hud.subs = nil
}

func (hud *HUDSystem) name(id entity.ID) string {
	if n, ok := hud.names[id]; ok {
		return n
	}
	return fmt.Sprintf("#%d", id)
}

// AddMessage appends a line to the event log.
func (hud *HUDSystem) AddMessage(text string) {
	hud.mu.Lock()
	defer hud.mu.Unlock()

	hud.messages = append(hud.messages, Message{Text: text, Timestamp: hud.now()})
	if len(hud.messages) > hud.maxLines {
		hud.messages = hud.messages[len(hud.messages)-hud.maxLines:]
	}
}

// Messages returns a copy of the event log, oldest first.
func (hud *HUDSystem) Messages() []Message {
	hud.mu.Lock()
	defer hud.mu.Unlock()
	return append([]Message(nil), hud.messages...)
}
