// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs what it is asked to draw.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
	drawn  int
}

// NewNullRenderer creates a new NullRenderer with structured logging. A nil
// logger selects the environment-configured default.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.drawn = 0
}

// Draw implements entity.Renderer.
func (d *NullRenderer) Draw(v entity.View) {
	d.drawn++
	d.logger.Debug(context.Background(), "Draw called",
		"entity_id", v.ID,
		"kind", v.Kind.String(),
		"x", v.Position.X,
		"y", v.Position.Y,
	)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called",
		"frame", d.frames,
		"drawn", d.drawn,
	)
}

// Frames returns the number of presented frames.
func (d *NullRenderer) Frames() uint64 { return d.frames }

// Drawn returns the number of views drawn since the last Clear.
func (d *NullRenderer) Drawn() int { return d.drawn }

var _ entity.Renderer = (*NullRenderer)(nil)
