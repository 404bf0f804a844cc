// Package sound plays short synthesized effects for game events. Audio is
// strictly best effort: if the speaker cannot be opened the player stays
// disabled and every call becomes a no-op.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jvesely/arcade/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Player maps game events to short tones on a shared mixer.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
}

// NewPlayer opens the speaker. On failure it returns a disabled player and
// the init error so callers can log it and keep running without audio.
func NewPlayer() (*Player, error) {
	p := &Player{mixer: &beep.Mixer{}}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return p, err
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return p, nil
}

// Handle plays the effect for ev, if any.
func (p *Player) Handle(ev game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}

	switch ev {
	case game.EventJump:
		p.play(60*time.Millisecond, newTone(440, 660))
	case game.EventDoubleJump:
		p.play(80*time.Millisecond, newTone(520, 880))
	case game.EventWallJump:
		p.play(70*time.Millisecond, newTone(380, 700))
	case game.EventDash:
		p.play(90*time.Millisecond, newTone(700, 300))
	case game.EventBlockHit:
		p.play(50*time.Millisecond, newTone(220, 220))
	case game.EventBlockDestroy:
		p.play(200*time.Millisecond, newRumble())
	case game.EventGraceCollected:
		p.play(160*time.Millisecond, newTone(660, 1320))
	case game.EventDeath:
		p.play(450*time.Millisecond, newTone(320, 60))
	case game.EventVictory:
		p.play(600*time.Millisecond, newTone(440, 1760))
	}
}

// Close silences the mixer. The speaker itself cannot be closed.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}

func (p *Player) play(d time.Duration, s beep.Streamer) {
	p.mixer.Add(beep.Take(sampleRate.N(d), s))
}

// tone is a sine sweep from one frequency to another with an exponential
// fade so clips end without clicking.
type tone struct {
	from, to float64
	pos      int
	phase    float64
}

func newTone(from, to float64) *tone {
	return &tone{from: from, to: to}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		frac := math.Min(t/0.15, 1)
		freq := g.from + (g.to-g.from)*frac
		g.phase += 2 * math.Pi * freq / float64(sampleRate)

		env := math.Exp(-t * 6)
		v := 0.18 * env * math.Sin(g.phase)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

// rumble is filtered noise over a low sine, used for collapsing blocks.
type rumble struct {
	pos  int
	seed int64
}

func newRumble() *rumble {
	return &rumble{seed: time.Now().UnixNano()}
}

func (g *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		env := math.Exp(-t * 10)
		v := env * (0.2*noise + 0.25*math.Sin(2*math.Pi*70*t))

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *rumble) Err() error { return nil }
