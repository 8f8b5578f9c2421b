// pkg/input/input.go
package input

import (
	"sort"
	"time"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

// Key is a front-end independent key name: a lower-case letter or one of
// the named keys below.
type Key string

// Named keys.
const (
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyHome   Key = "home"
	KeyEnd    Key = "end"
	KeyTab    Key = "tab"
	KeySpace  Key = "space"
	KeyEnter  Key = "enter"
	KeyEscape Key = "escape"
)

// Scheme names.
const (
	SchemeCursor = "cursor"
	SchemeWASD   = "wasd"
	SchemeIJKL   = "ijkl"
)

// Scheme binds the player actions to keys.
type Scheme struct {
	Name       string
	Left       Key
	Right      Key
	Accelerate Key
	Decelerate Key
	AimLeft    Key
	AimRight   Key
	Fire       Key
}

var schemes = map[string]Scheme{
	SchemeCursor: {
		Name: SchemeCursor, Left: KeyLeft, Right: KeyRight, Accelerate: KeyUp, Decelerate: KeyDown,
		AimLeft: KeyHome, AimRight: KeyEnd, Fire: KeyEnter,
	},
	SchemeWASD: {
		Name: SchemeWASD, Left: "a", Right: "d", Accelerate: "w", Decelerate: "s",
		AimLeft: "q", AimRight: "e", Fire: KeyTab,
	},
	SchemeIJKL: {
		Name: SchemeIJKL, Left: "j", Right: "l", Accelerate: "i", Decelerate: "k",
		AimLeft: "u", AimRight: "o", Fire: KeySpace,
	},
}

// LookupScheme returns the scheme called name.
func LookupScheme(name string) (Scheme, bool) {
	s, ok := schemes[name]
	return s, ok
}

// SchemeNames lists the known schemes in alphabetical order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns every key the scheme uses.
func (s Scheme) Keys() []Key {
	return []Key{s.Left, s.Right, s.Accelerate, s.Decelerate, s.AimLeft, s.AimRight, s.Fire}
}

// KeyState reports which keys are currently down.
type KeyState interface {
	Down(k Key) bool
}

// KeySet is a KeyState for front-ends that know the real key state.
type KeySet map[Key]bool

func (s KeySet) Down(k Key) bool { return s[k] }

// HoldWindow is a KeyState for terminals that only report key presses (and
// their auto-repeat). A key counts as down until Window has passed since it
// was last pressed.
type HoldWindow struct {
	Window time.Duration
	seen   map[Key]time.Time
	now    time.Time
}

// NewHoldWindow creates a hold window of the given length.
func NewHoldWindow(window time.Duration) *HoldWindow {
	return &HoldWindow{Window: window, seen: make(map[Key]time.Time)}
}

// Press records a key press at the given time.
func (h *HoldWindow) Press(k Key, at time.Time) {
	h.seen[k] = at
	if at.After(h.now) {
		h.now = at
	}
}

// Advance moves the window's clock.
func (h *HoldWindow) Advance(now time.Time) {
	h.now = now
}

// Down reports whether k was pressed within the window.
func (h *HoldWindow) Down(k Key) bool {
	at, ok := h.seen[k]
	return ok && h.now.Sub(at) <= h.Window
}

// Tracker turns a key state into one vehicle's commands. It remembers the
// fire key between frames to report the release edge.
type Tracker struct {
	Scheme Scheme
	firing bool
}

// NewTracker creates a tracker for scheme.
func NewTracker(scheme Scheme) *Tracker {
	return &Tracker{Scheme: scheme}
}

// Commands samples keys for one frame.
func (t *Tracker) Commands(keys KeyState) entity.Commands {
	s := t.Scheme
	held := keys.Down(s.Fire)
	cmd := entity.Commands{
		TurnLeft:     keys.Down(s.Left),
		TurnRight:    keys.Down(s.Right),
		Accelerate:   keys.Down(s.Accelerate),
		Decelerate:   keys.Down(s.Decelerate),
		AimLeft:      keys.Down(s.AimLeft),
		AimRight:     keys.Down(s.AimRight),
		FireHeld:     held,
		FireReleased: t.firing && !held,
	}
	t.firing = held
	return cmd
}
