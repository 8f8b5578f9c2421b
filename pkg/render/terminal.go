// pkg/render/terminal.go
package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-tankgame/pkg/entity"
	"github.com/opd-ai/go-tankgame/pkg/input"
	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// Screen is the part of tcell.Screen the terminal renderer draws on.
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}

// TerminalRenderer draws the world as coloured characters. The world is
// scaled to fill the screen above a single status row; world y points up,
// screen rows grow downwards.
type TerminalRenderer struct {
	screen      Screen
	worldWidth  float64
	worldHeight float64
	status      string
	background  tcell.Style
}

// NewTerminalRenderer creates a terminal renderer for a world of the given
// size.
func NewTerminalRenderer(screen Screen, worldWidth, worldHeight float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen:      screen,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		background:  tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// SetStatus sets the text of the status row.
func (r *TerminalRenderer) SetStatus(text string) {
	r.status = text
}

// fieldSize is the number of cells available to the playing field.
func (r *TerminalRenderer) fieldSize() (int, int) {
	w, h := r.screen.Size()
	return w, h - 1
}

// worldToScreen converts world coordinates to a cell. ok is false for
// points outside the field.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (x, y int, ok bool) {
	cols, rows := r.fieldSize()
	if cols <= 0 || rows <= 0 || r.worldWidth <= 0 || r.worldHeight <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(pos.X / r.worldWidth * float64(cols)))
	y = rows - 1 - int(math.Floor(pos.Y/r.worldHeight*float64(rows)))
	if x == cols && pos.X == r.worldWidth {
		x--
	}
	if y == -1 && pos.Y == r.worldHeight {
		y = 0
	}
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

func (r *TerminalRenderer) cellsFor(length float64) int {
	cols, _ := r.fieldSize()
	if r.worldWidth <= 0 {
		return 0
	}
	return int(math.Round(length / r.worldWidth * float64(cols)))
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, r.background)
		}
	}
}

// Draw implements entity.Renderer
func (r *TerminalRenderer) Draw(v entity.View) {
	style := r.background.Foreground(rgb(v.Color))

	if v.Kind == entity.KindHealthBar {
		r.drawBar(v, style)
		return
	}

	x, y, ok := r.worldToScreen(v.Position)
	if !ok {
		return
	}
	r.screen.SetContent(x, y, Glyph(v), nil, style)
}

// drawBar draws the filled part of a bar as blocks and the rest as dots,
// centred on the bar position.
func (r *TerminalRenderer) drawBar(v entity.View, style tcell.Style) {
	cx, y, ok := r.worldToScreen(v.Position)
	if !ok {
		return
	}
	cells := max(r.cellsFor(v.Width), 1)
	filled := int(math.Round(v.Fill * float64(cells)))
	cols, _ := r.fieldSize()

	start := cx - cells/2
	for i := 0; i < cells; i++ {
		x := start + i
		if x < 0 || x >= cols {
			continue
		}
		ch := '·'
		if i < filled {
			ch = '█'
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w, h := r.screen.Size()
	if h > 0 {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
		text := []rune(r.status)
		for x := 0; x < w; x++ {
			ch := ' '
			if x < len(text) {
				ch = text[x]
			}
			r.screen.SetContent(x, h-1, ch, nil, style)
		}
	}
	r.screen.Show()
}

// Glyph returns the character used for an entity in the terminal.
func Glyph(v entity.View) rune {
	switch v.Kind {
	case entity.KindTank:
		return 'T'
	case entity.KindSpaceship:
		return directionGlyph(v.Rotation+v.Facing, [8]rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'})
	case entity.KindTurret:
		return directionGlyph(v.Rotation+v.Facing, [8]rune{'-', '/', '|', '\\', '-', '/', '|', '\\'})
	case entity.KindProjectile:
		return 'o'
	case entity.KindDebris:
		return '.'
	case entity.KindHealthBar:
		return '█'
	default:
		return '?'
	}
}

// directionGlyph picks one of eight glyphs for a heading in degrees.
func directionGlyph(deg float64, glyphs [8]rune) rune {
	octant := int(math.Round(physics.NormalizeDeg(deg) / 45))
	return glyphs[(octant%8+8)%8]
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var terminalKeys = map[tcell.Key]input.Key{
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
	tcell.KeyHome:   input.KeyHome,
	tcell.KeyEnd:    input.KeyEnd,
	tcell.KeyTab:    input.KeyTab,
	tcell.KeyEnter:  input.KeyEnter,
	tcell.KeyEscape: input.KeyEscape,
}

// KeyFromEvent translates a terminal key event to a key name.
func KeyFromEvent(ev *tcell.EventKey) (input.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		switch r := ev.Rune(); {
		case r == ' ':
			return input.KeySpace, true
		case r >= 'a' && r <= 'z':
			return input.Key(string(r)), true
		case r >= 'A' && r <= 'Z':
			return input.Key(string(r - 'A' + 'a')), true
		}
		return "", false
	}
	k, ok := terminalKeys[ev.Key()]
	return k, ok
}

var _ entity.Renderer = (*TerminalRenderer)(nil)
