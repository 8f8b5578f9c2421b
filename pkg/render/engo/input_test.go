// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-tankgame/pkg/input"
)

func TestKeyBindings_CoverEveryScheme(t *testing.T) {
	for _, name := range input.SchemeNames() {
		scheme, _ := input.LookupScheme(name)
		for _, k := range scheme.Keys() {
			if _, ok := keyBindings[k]; !ok {
				t.Errorf("scheme %s key %q has no binding", name, k)
			}
		}
	}
	if len(BoundKeys()) != len(keyBindings) {
		t.Errorf("BoundKeys() = %d keys", len(BoundKeys()))
	}
}

func TestInputSystem_SamplesAndApplies(t *testing.T) {
	down := map[string]bool{"w": true, "space": true}
	var applied []input.KeyState

	is := NewInputSystem(func(keys input.KeyState) { applied = append(applied, keys) })
	is.pressed = func(name string) bool { return down[name] }

	is.sample()
	is.apply(is.Keys())

	if len(applied) != 1 {
		t.Fatalf("apply called %d times", len(applied))
	}
	keys := applied[0]
	if !keys.Down("w") || !keys.Down(input.KeySpace) || keys.Down("a") {
		t.Errorf("keys = %v", is.Keys())
	}
	if is.quit {
		t.Error("quit without escape")
	}

	down = map[string]bool{"escape": true}
	is.sample()
	if is.Keys().Down("w") {
		t.Error("released key still down")
	}
	if !is.quit {
		t.Error("escape did not request quit")
	}
}
