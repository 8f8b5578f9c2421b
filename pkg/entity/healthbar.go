// pkg/entity/healthbar.go
package entity

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-tankgame/pkg/validation"
)

// Tier is one step of the bar color ramp.
type Tier int

const (
	TierGood Tier = iota
	TierMedium
	TierBad
	TierCritical
)

var tierColors = [...]color.RGBA{
	TierGood:     {R: 0, G: 255, B: 0, A: 255},
	TierMedium:   {R: 255, G: 255, B: 0, A: 255},
	TierBad:      {R: 255, G: 128, B: 0, A: 255},
	TierCritical: {R: 255, G: 0, B: 0, A: 255},
}

func (t Tier) String() string {
	switch t {
	case TierGood:
		return "good"
	case TierMedium:
		return "medium"
	case TierBad:
		return "bad"
	default:
		return "critical"
	}
}

// Color is green, yellow, orange or red.
func (t Tier) Color() color.RGBA {
	if t < TierGood || t > TierCritical {
		return tierColors[TierCritical]
	}
	return tierColors[t]
}

// Thresholds are the fill ratios above which a bar is good, medium or bad.
// Anything at or below Bad is critical.
type Thresholds struct {
	Good   float64
	Medium float64
	Bad    float64
}

// DefaultThresholds returns 0.8 / 0.5 / 0.15.
func DefaultThresholds() Thresholds {
	return Thresholds{Good: 0.8, Medium: 0.5, Bad: 0.15}
}

// Tier classifies ratio.
func (th Thresholds) Tier(ratio float64) Tier {
	switch {
	case ratio > th.Good:
		return TierGood
	case ratio > th.Medium:
		return TierMedium
	case ratio > th.Bad:
		return TierBad
	default:
		return TierCritical
	}
}

func (th Thresholds) validate() error {
	return validation.Collect(
		validation.Range("thresholds.good", th.Good, 0, 1),
		validation.Range("thresholds.medium", th.Medium, 0, th.Good),
		validation.Range("thresholds.bad", th.Bad, 0, th.Medium),
	)
}

// Ratio is value/full clamped to [0, 1]. A non-positive full gives an empty
// bar.
func Ratio(value, full float64) float64 {
	if full <= 0 || math.IsNaN(value) {
		return 0
	}
	return math.Max(0, math.Min(1, value/full))
}

// HealthBar shows a host's hitpoints or a turret's charge.
type HealthBar struct {
	BaseEntity
	Source     BarSource
	Width      float64
	Thresholds Thresholds
	Fill       float64
	Tier       Tier
}

// NewHealthBar builds a bar for a host of the given radius.
func NewHealthBar(id ID, p HealthBarParams, hostRadius float64) (*HealthBar, error) {
	p = p.withDefaults(hostRadius)
	if err := p.validate(); err != nil {
		return nil, invalid(KindHealthBar, err)
	}

	b := &HealthBar{
		BaseEntity: newBase(id, KindHealthBar),
		Source:     p.Source,
		Width:      p.Width,
		Thresholds: p.Thresholds,
	}
	b.HostID = p.Host
	b.Offset = *p.Offset
	b.Radius = p.Width / 2
	b.Boundary = BoundaryIgnore
	b.Refresh(1, 1)
	return b, nil
}

// Refresh recomputes fill, tier and color from value and full.
func (b *HealthBar) Refresh(value, full float64) {
	fill := Ratio(value, full)
	tier := b.Thresholds.Tier(fill)
	if fill != b.Fill || tier != b.Tier {
		b.touch()
	}
	b.Fill = fill
	b.Tier = tier
	b.Color = tier.Color()
}

// View adds the fill ratio, width and tier to the base snapshot.
func (b *HealthBar) View() View {
	v := b.BaseEntity.View()
	v.Fill = b.Fill
	v.Width = b.Width
	v.Tier = b.Tier
	return v
}
