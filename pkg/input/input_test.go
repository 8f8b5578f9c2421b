// pkg/input/input_test.go
package input

import (
	"testing"
	"time"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

func TestLookupScheme(t *testing.T) {
	tests := []struct {
		name     string
		left     Key
		aimRight Key
		fire     Key
	}{
		{SchemeCursor, KeyLeft, KeyEnd, KeyEnter},
		{SchemeWASD, "a", "e", KeyTab},
		{SchemeIJKL, "j", "o", KeySpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := LookupScheme(tt.name)
			if !ok {
				t.Fatalf("LookupScheme(%q) not found", tt.name)
			}
			if s.Left != tt.left || s.AimRight != tt.aimRight || s.Fire != tt.fire {
				t.Errorf("scheme = %+v", s)
			}
			if len(s.Keys()) != 7 {
				t.Errorf("Keys() = %v", s.Keys())
			}
		})
	}

	if _, ok := LookupScheme("dvorak"); ok {
		t.Error("unknown scheme found")
	}
}

func TestSchemeNames_Sorted(t *testing.T) {
	names := SchemeNames()
	want := []string{SchemeCursor, SchemeIJKL, SchemeWASD}
	if len(names) != len(want) {
		t.Fatalf("SchemeNames() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("SchemeNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTracker_Movement(t *testing.T) {
	s, _ := LookupScheme(SchemeWASD)
	tr := NewTracker(s)

	cmd := tr.Commands(KeySet{"a": true, "w": true, "q": true})
	want := entity.Commands{TurnLeft: true, Accelerate: true, AimLeft: true}
	if cmd != want {
		t.Errorf("Commands() = %+v, want %+v", cmd, want)
	}
	if !tr.Commands(KeySet{}).Idle() {
		t.Error("no keys should give idle commands")
	}
}

func TestTracker_FireEdges(t *testing.T) {
	s, _ := LookupScheme(SchemeIJKL)
	tr := NewTracker(s)

	frames := []struct {
		down     bool
		held     bool
		released bool
	}{
		{false, false, false},
		{true, true, false},
		{true, true, false},
		{false, false, true},
		{false, false, false},
		{true, true, false},
		{false, false, true},
	}

	for i, f := range frames {
		cmd := tr.Commands(KeySet{KeySpace: f.down})
		if cmd.FireHeld != f.held || cmd.FireReleased != f.released {
			t.Errorf("frame %d: held, released = %v, %v; want %v, %v",
				i, cmd.FireHeld, cmd.FireReleased, f.held, f.released)
		}
	}
}

func TestHoldWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldWindow(100 * time.Millisecond)

	if h.Down("a") {
		t.Error("unpressed key is down")
	}

	h.Press("a", start)
	tests := []struct {
		after time.Duration
		down  bool
	}{
		{0, true},
		{50 * time.Millisecond, true},
		{100 * time.Millisecond, true},
		{101 * time.Millisecond, false},
	}
	for _, tt := range tests {
		h.Advance(start.Add(tt.after))
		if got := h.Down("a"); got != tt.down {
			t.Errorf("Down after %v = %v, want %v", tt.after, got, tt.down)
		}
	}

	// auto-repeat keeps the key down
	h.Press("a", start.Add(150*time.Millisecond))
	h.Advance(start.Add(200 * time.Millisecond))
	if !h.Down("a") {
		t.Error("repeated key released early")
	}
}

func TestTracker_HoldWindowRelease(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, _ := LookupScheme(SchemeWASD)
	tr := NewTracker(s)
	h := NewHoldWindow(50 * time.Millisecond)

	h.Press(KeyTab, start)
	if cmd := tr.Commands(h); !cmd.FireHeld {
		t.Fatal("fire not held after press")
	}
	h.Advance(start.Add(time.Second))
	if cmd := tr.Commands(h); !cmd.FireReleased {
		t.Error("fire not released after the window expired")
	}
}
