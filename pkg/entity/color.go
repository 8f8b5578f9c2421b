// pkg/entity/color.go
package entity

import (
	"image/color"
	"math"
)

// ColorCycle animates a color back and forth between Start and End. One
// Period covers the full round trip Start -> End -> Start, independent of
// the frame rate.
type ColorCycle struct {
	Start color.RGBA
	End   color.RGBA
	// Period is the round trip time in seconds, so channels move at
	// 2*(End-Start)/Period per second.
	Period float64

	value [3]float64
	dir   [3]float64
}

// NewColorCycle starts a cycle at start, heading towards end.
func NewColorCycle(start, end color.RGBA, period float64) *ColorCycle {
	c := &ColorCycle{Start: start, End: end, Period: period}
	c.Reset()
	return c
}

// Reset moves the cycle back to its start color.
func (c *ColorCycle) Reset() {
	s := channels(c.Start)
	c.value = s
	c.dir = [3]float64{1, 1, 1}
}

// Step advances the animation by deltaTime seconds and returns the new color.
// Overshoot past either bound is folded back and flips that channel's
// direction.
func (c *ColorCycle) Step(deltaTime float64) color.RGBA {
	if c.Period <= 0 || deltaTime <= 0 {
		return c.Color()
	}

	start, end := channels(c.Start), channels(c.End)
	for i := range c.value {
		span := end[i] - start[i]
		if span == 0 {
			continue
		}
		lo, hi := math.Min(start[i], end[i]), math.Max(start[i], end[i])
		width := hi - lo

		// signed travel towards End when dir is positive
		travel := c.dir[i] * 2 * span / c.Period * deltaTime
		travel = math.Mod(travel, 2*width)
		v := c.value[i] + travel

		for v > hi || v < lo {
			if v > hi {
				v = 2*hi - v
			} else {
				v = 2*lo - v
			}
			c.dir[i] = -c.dir[i]
		}
		c.value[i] = v
	}
	return c.Color()
}

// Color returns the current color without advancing the animation.
func (c *ColorCycle) Color() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.value[0])),
		G: uint8(math.Round(c.value[1])),
		B: uint8(math.Round(c.value[2])),
		A: c.Start.A,
	}
}

func channels(c color.RGBA) [3]float64 {
	return [3]float64{float64(c.R), float64(c.G), float64(c.B)}
}
