// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/logging"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

func TestNewNullRenderer_NilLogger(t *testing.T) {
	r := NewNullRenderer(nil)
	if r == nil || r.logger == nil {
		t.Fatal("NewNullRenderer(nil) did not install a logger")
	}
}

func TestNullRenderer_CountsFrames(t *testing.T) {
	var buf bytes.Buffer
	r := NewNullRenderer(logging.NewLoggerTo(&buf, slog.LevelDebug))

	for frame := 0; frame < 3; frame++ {
		r.Clear()
		r.Draw(entity.View{ID: 1, Kind: entity.KindTank, Position: physics.Vector2D{X: 5, Y: 6}})
		r.Draw(entity.View{ID: 2, Kind: entity.KindProjectile})
		r.Present()
	}

	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}
	if r.Drawn() != 2 {
		t.Errorf("Drawn() = %d, want 2", r.Drawn())
	}

	out := buf.String()
	for _, want := range []string{`"kind":"tank"`, `"kind":"projectile"`, "Present called"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s", want)
		}
	}
}

func TestNullRenderer_QuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	r := NewNullRenderer(logging.NewLoggerTo(&buf, slog.LevelInfo))

	r.Clear()
	r.Draw(entity.View{ID: 1, Kind: entity.KindDebris})
	r.Present()

	if buf.Len() != 0 {
		t.Errorf("unexpected output at info level: %s", buf.String())
	}
}
