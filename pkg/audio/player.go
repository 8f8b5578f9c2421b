// pkg/audio/player.go
package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-tankgame/pkg/event"
)

// ErrUnknownSound is returned by Effect for sounds it cannot synthesize.
var ErrUnknownSound = errors.New("unknown sound")

// Sink receives streamers to play. *beep.Mixer satisfies it.
type Sink interface {
	Add(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Add(s ...beep.Streamer) { speaker.Play(s...) }

// Player turns simulation events into sound effects.
type Player struct {
	mu     sync.Mutex
	sink   Sink
	rate   beep.SampleRate
	volume float64
	subs   []*event.Subscription
	played map[Sound]int
}

// NewPlayer creates a player writing to sink.
func NewPlayer(sink Sink, rate beep.SampleRate, volume float64) *Player {
	return &Player{
		sink:   sink,
		rate:   rate,
		volume: volume,
		played: make(map[Sound]int),
	}
}

// OpenSpeaker initializes the system speaker at sampleRate and returns a
// player feeding it.
func OpenSpeaker(sampleRate int, volume float64) (*Player, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return NewPlayer(speakerSink{}, rate, volume), nil
}

// Attach subscribes the player to the bus.
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for typ, sound := range map[event.Type]Sound{
		event.ProjectileFired:  SoundFire,
		event.WallBounced:      SoundBounce,
		event.ProjectileHit:    SoundHit,
		event.VehicleDestroyed: SoundDestroy,
	} {
		p.subs = append(p.subs, bus.Subscribe(typ, func(event.Event) { p.Play(sound) }))
	}
}

// Detach cancels every subscription made by Attach.
func (p *Player) Detach() {
	p.mu.Lock()
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

// Play synthesizes sound and hands it to the sink.
func (p *Player) Play(sound Sound) {
	s, err := Effect(sound, p.rate, p.volume)
	if err != nil {
		return
	}
	p.sink.Add(s)

	p.mu.Lock()
	p.played[sound]++
	p.mu.Unlock()
}

// Played returns how often sound was played.
func (p *Player) Played(sound Sound) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[sound]
}
