// pkg/audio/effects.go
package audio

import (
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound identifies one effect.
type Sound int

const (
	SoundFire Sound = iota
	SoundBounce
	SoundHit
	SoundDestroy
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundBounce:
		return "bounce"
	case SoundHit:
		return "hit"
	case SoundDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

type tone struct {
	freq     float64
	duration time.Duration
	wave     func(beep.SampleRate, float64) (beep.Streamer, error)
}

var tones = map[Sound]tone{
	SoundFire:    {660, 80 * time.Millisecond, generators.SineTone},
	SoundBounce:  {220, 40 * time.Millisecond, generators.SquareTone},
	SoundHit:     {0, 120 * time.Millisecond, nil},
	SoundDestroy: {110, 300 * time.Millisecond, generators.SawtoothTone},
}

// Duration is the length of sound.
func Duration(sound Sound) time.Duration {
	return tones[sound].duration
}

// Effect synthesizes sound at rate. The streamer ends after Duration(sound)
// and fades out linearly. volume is a base-2 exponent: 0 is unchanged, -1
// half as loud.
func Effect(sound Sound, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	t, ok := tones[sound]
	if !ok {
		return nil, ErrUnknownSound
	}

	var src beep.Streamer
	if t.wave == nil {
		src = noise(rand.New(rand.NewPCG(uint64(sound), 0)))
	} else {
		var err error
		if src, err = t.wave(rate, t.freq); err != nil {
			return nil, err
		}
	}

	n := rate.N(t.duration)
	return &effects.Volume{
		Streamer: fadeOut(beep.Take(n, src), n),
		Base:     2,
		Volume:   volume,
	}, nil
}

// noise is white noise in [-1, 1].
func noise(rng *rand.Rand) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0], samples[i][1] = v, v
		}
		return len(samples), true
	})
}

// fade scales a stream of total samples from full volume down to silence.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
}

func fadeOut(s beep.Streamer, total int) beep.Streamer {
	return &fade{streamer: s, total: total}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 0.0
		if f.total > 0 {
			gain = 1 - float64(f.position)/float64(f.total)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }
