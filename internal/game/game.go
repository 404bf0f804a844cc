// Package game implements the Rocket to Heaven gameplay core: entities,
// collision and support resolution, spawning, the rising hazard boundary, and
// session state. The package is single-threaded and frame-driven; the host
// loop calls Advance once per frame and reads Session afterwards.
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/jvesely/arcade/internal/input"
)

// Game owns one play session of Rocket to Heaven.
type Game struct {
	Tuning  Tuning
	Session Session
	Player  *Player
	Arena   *Arena
	Orbs    []*Orb
	Abyss   Abyss
	Spawner *Spawner
	Clock   Clock
	Sched   *Scheduler

	recorder Recorder
	handle   SessionHandle
	rng      *rand.Rand
	events   []Event

	blockScratch []*Block
	ended        bool // Recorder end already sent for this run
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRecorder attaches a session/analytics recorder. Recorder failures never
// affect gameplay.
func WithRecorder(r Recorder) Option {
	return func(g *Game) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithSeed fixes the RNG seed; used by tests for determinism.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithTuning overrides the default tuning.
func WithTuning(t Tuning) Option {
	return func(g *Game) { g.Tuning = t }
}

// New creates a game ready for its first frame.
func New(opts ...Option) *Game {
	g := &Game{
		Tuning:   DefaultTuning(),
		recorder: NoopRecorder{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Sched = NewScheduler(&g.Clock)
	g.start()
	return g
}

// start wires the initial entity state for a fresh run.
func (g *Game) start() {
	t := &g.Tuning
	g.Player = newPlayer(t)
	g.Arena = NewArena()
	g.Orbs = g.Orbs[:0]
	g.Abyss = newAbyss(t)
	g.Spawner = newSpawner(g.rng)
	g.ended = false

	// Spawning begins only after the start delay; the callback is dropped if
	// the session is reset before it fires.
	sp := g.Spawner
	g.Sched.After(t.SpawnStartDelay, func() { sp.enable(g) })

	g.handle, _ = g.recorder.StartSession(context.Background())
}

// Reset atomically replaces all session state with initial values. Must be
// called between frames, never during one; the core is single-threaded so
// there is nothing else to interleave with.
func (g *Game) Reset() {
	g.endRecording()
	g.Session.Reset()
	g.Clock.Reset()
	g.Sched.Invalidate()
	g.events = g.events[:0]
	g.start()
}

// SetPaused freezes or resumes the session. While paused no entity state
// advances; resuming continues from exactly where the session left off.
func (g *Game) SetPaused(p bool) {
	g.Session.Paused = p
	g.Clock.SetPaused(p)
}

// ContinueAfterWin re-enables gravity so the run can keep ascending past the
// goal. A no-op unless the run has been won.
func (g *Game) ContinueAfterWin() {
	if g.Session.Won {
		g.Player.gravityOff = false
	}
}

// Progress returns the player's progress toward the goal altitude in [0, 1].
func (g *Game) Progress() float64 {
	t := &g.Tuning
	if t.GoalAltitude <= 0 {
		return 1
	}
	p := g.Session.MaxAltitude / t.GoalAltitude
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// FinalScore exposes the run result for leaderboard submission by the
// presentation layer. The core never submits scores itself.
func (g *Game) FinalScore() (altitude float64, playTime time.Duration) {
	return g.Session.MaxAltitude, g.Session.PlayTime
}

// Advance runs one frame: input → player → collision resolution → spawner →
// hazard → win/lose → session write. While paused the frame is a no-op.
func (g *Game) Advance(in input.Frame, dt time.Duration) {
	if g.Session.Paused {
		return
	}
	g.events = g.events[:0]
	g.Clock.Advance(dt)
	g.Sched.Run()

	seconds := dt.Seconds()
	now := g.Clock.Now()

	if g.Session.BoostActive && now >= g.Session.BoostExpiry {
		g.Session.BoostActive = false
	}

	g.Player.update(g, in, seconds)
	g.resolveCollisions(seconds)
	g.Spawner.update(g)

	g.Abyss.update(&g.Tuning, now, seconds)
	if !g.Session.Dead && g.Abyss.Engulfs(g.Player.Bottom()) {
		g.killPlayer(DeathCauseLava, "")
	}

	g.checkWin()
	g.writeSession(now)
}

// killPlayer flips the session into the terminal dead state. Re-entrant calls
// while already dead have no additional effect.
func (g *Game) killPlayer(cause, label string) {
	if g.Session.Dead {
		return
	}
	g.Session.Dead = true
	g.Session.DeathCause = cause
	g.Session.KillerLabel = label
	g.Player.kill()
	g.emit(EventDeath)
	g.endRecording()
}

// checkWin fires the victory exactly once per run and suspends gravity until
// the player explicitly continues.
func (g *Game) checkWin() {
	if g.Session.Won || g.Session.Dead {
		return
	}
	if g.Player.Altitude() >= g.Tuning.GoalAltitude {
		g.Session.Won = true
		g.Player.gravityOff = true
		g.Player.VY = 0
		g.emit(EventVictory)
		g.endRecording()
	}
}

// writeSession publishes the per-frame state the presentation layer reads.
func (g *Game) writeSession(now time.Duration) {
	alt := g.Player.Altitude()
	g.Session.Altitude = alt
	if alt > g.Session.MaxAltitude {
		g.Session.MaxAltitude = alt
	}
	g.Session.PlayTime = now
}

// endRecording sends the end-of-session record once. Best effort: the error
// is discarded here and surfaced only through the recorder's own logging.
func (g *Game) endRecording() {
	if g.ended {
		return
	}
	g.ended = true
	_ = g.recorder.EndSession(context.Background(), g.handle,
		g.Session.MaxAltitude, g.Session.PlayTime)
}

// EndSession is called by the host when the player quits mid-run.
func (g *Game) EndSession() {
	g.endRecording()
}
