// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tankgame/pkg/input"
)

// Camera buttons.
const (
	buttonZoomIn    = "zoomIn"
	buttonZoomOut   = "zoomOut"
	buttonResetZoom = "resetZoom"
)

// keyBindings maps key names to Engo keys.
var keyBindings = map[input.Key]engo.Key{
	input.KeyLeft:   engo.KeyArrowLeft,
	input.KeyRight:  engo.KeyArrowRight,
	input.KeyUp:     engo.KeyArrowUp,
	input.KeyDown:   engo.KeyArrowDown,
	input.KeyHome:   engo.KeyHome,
	input.KeyEnd:    engo.KeyEnd,
	input.KeyTab:    engo.KeyTab,
	input.KeySpace:  engo.KeySpace,
	input.KeyEnter:  engo.KeyEnter,
	input.KeyEscape: engo.KeyEscape,
	"a":             engo.KeyA,
	"d":             engo.KeyD,
	"e":             engo.KeyE,
	"i":             engo.KeyI,
	"j":             engo.KeyJ,
	"k":             engo.KeyK,
	"l":             engo.KeyL,
	"o":             engo.KeyO,
	"q":             engo.KeyQ,
	"s":             engo.KeyS,
	"u":             engo.KeyU,
	"w":             engo.KeyW,
}

// BoundKeys lists the key names that have an Engo binding.
func BoundKeys() []input.Key {
	keys := make([]input.Key, 0, len(keyBindings))
	for k := range keyBindings {
		keys = append(keys, k)
	}
	return keys
}

// SetupInputBindings registers one Engo button per bound key, named after
// the key, plus the camera buttons.
func SetupInputBindings() {
	for name, key := range keyBindings {
		engo.Input.RegisterButton(string(name), key)
	}
	engo.Input.RegisterButton(buttonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(buttonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(buttonResetZoom, engo.KeyZero)
}

// InputSystem samples the keyboard once per frame and hands the pressed keys
// to its consumer.
type InputSystem struct {
	pressed func(name string) bool
	apply   func(input.KeyState)
	keys    input.KeySet
	quit    bool
}

// NewInputSystem creates an input system reading Engo buttons.
func NewInputSystem(apply func(input.KeyState)) *InputSystem {
	return &InputSystem{
		pressed: func(name string) bool { return engo.Input.Button(name).Down() },
		apply:   apply,
		keys:    make(input.KeySet),
	}
}

// Priority runs input before the simulation.
func (is *InputSystem) Priority() int { return 30 }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update samples the keys, applies them and exits on escape.
func (is *InputSystem) Update(dt float32) {
	is.sample()
	if is.apply != nil {
		is.apply(is.keys)
	}
	if is.quit {
		engo.Exit()
	}
}

func (is *InputSystem) sample() {
	clear(is.keys)
	for name := range keyBindings {
		if is.pressed(string(name)) {
			is.keys[name] = true
		}
	}
	is.quit = is.keys[input.KeyEscape]
}

// Keys returns the keys pressed in the last sampled frame.
func (is *InputSystem) Keys() input.KeySet {
	return is.keys
}
