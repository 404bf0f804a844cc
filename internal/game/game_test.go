package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jvesely/arcade/internal/input"
)

// countingRecorder counts calls for the session lifecycle tests.
type countingRecorder struct {
	starts int
	ends   int
	fail   bool
}

func (r *countingRecorder) StartSession(context.Context) (SessionHandle, error) {
	r.starts++
	if r.fail {
		return 0, errors.New("storage down")
	}
	return SessionHandle(r.starts), nil
}

func (r *countingRecorder) EndSession(context.Context, SessionHandle, float64, time.Duration) error {
	r.ends++
	if r.fail {
		return errors.New("storage down")
	}
	return nil
}

func TestPauseFreezesEverything(t *testing.T) {
	g := newTestGame(quietTuning())
	g.SetPaused(true)

	step(g, input.Frame{Axis: 1, Jump: true}, 30)

	if g.Clock.Now() != 0 {
		t.Fatalf("clock advanced while paused: %v", g.Clock.Now())
	}
	if g.Session.Altitude != 0 || g.Player.X != g.Tuning.WorldWidth/2 {
		t.Fatal("entity state advanced while paused")
	}

	g.SetPaused(false)
	step(g, input.Frame{Axis: 1}, 1)
	if g.Player.X <= g.Tuning.WorldWidth/2 {
		t.Fatal("player did not move after resuming")
	}
}

func TestMaxAltitudeIsMonotonic(t *testing.T) {
	g := newTestGame(quietTuning())
	g.Player.Y = -500
	g.Player.VY = 0
	g.Advance(input.Frame{}, frameDT)
	peak := g.Session.MaxAltitude
	if peak < 400 {
		t.Fatalf("peak = %v, want near 500", peak)
	}

	// Fall back down. The running altitude drops, the best never does.
	step(g, input.Frame{}, 120)
	if g.Session.Altitude >= peak {
		t.Fatalf("altitude did not drop: %v", g.Session.Altitude)
	}
	if g.Session.MaxAltitude < peak {
		t.Fatalf("max altitude regressed: %v < %v", g.Session.MaxAltitude, peak)
	}
}

func TestLavaKillsFromBelow(t *testing.T) {
	g := newTestGame(quietTuning())
	g.Abyss.active = true
	g.Abyss.Top = g.Player.Bottom() - 1

	g.Advance(input.Frame{}, frameDT)

	if !g.Session.Dead {
		t.Fatal("player survived the lava")
	}
	if g.Session.DeathCause != DeathCauseLava {
		t.Fatalf("death cause = %q, want %q", g.Session.DeathCause, DeathCauseLava)
	}
	if !g.Session.Terminal() {
		t.Fatal("session not terminal after death")
	}
}

func TestAbyssActivatesOnceAndRises(t *testing.T) {
	tuning := quietTuning()
	tuning.AbyssStartDelay = 100 * time.Millisecond
	g := newTestGame(tuning)
	g.Player.Y = -5000 // out of reach

	step(g, input.Frame{}, 5)
	if g.Abyss.Active() {
		t.Fatal("hazard active before its start delay")
	}

	step(g, input.Frame{}, 10)
	if !g.Abyss.Active() {
		t.Fatal("hazard still dormant after its start delay")
	}

	top := g.Abyss.Top
	for i := 0; i < 60; i++ {
		g.Advance(input.Frame{}, frameDT)
		if g.Abyss.Top >= top {
			t.Fatalf("lava surface did not rise: %v -> %v", top, g.Abyss.Top)
		}
		top = g.Abyss.Top
	}
}

func TestWinFiresOnceAndSuspendsGravity(t *testing.T) {
	tuning := quietTuning()
	tuning.GoalAltitude = 50
	g := newTestGame(tuning)
	g.Player.Y = -100
	g.Player.VY = 0

	g.Advance(input.Frame{}, frameDT)
	if !g.Session.Won {
		t.Fatal("run not won above the goal altitude")
	}
	if !hasEvent(g.DrainEvents(), EventVictory) {
		t.Fatal("no victory event")
	}

	// Gravity is off: the player hangs in place.
	y := g.Player.Y
	step(g, input.Frame{}, 30)
	if g.Player.Y != y {
		t.Fatalf("player moved with gravity suspended: %v -> %v", y, g.Player.Y)
	}
	for _, e := range g.DrainEvents() {
		if e == EventVictory {
			t.Fatal("victory fired twice")
		}
	}

	g.ContinueAfterWin()
	step(g, input.Frame{}, 5)
	if g.Player.Y == y {
		t.Fatal("gravity still suspended after continue")
	}
	if !g.Session.Won {
		t.Fatal("continuing cleared the won flag")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	g := newTestGame(quietTuning())
	landedBlockAt(g, 150, -9, "junk")
	g.Orbs = append(g.Orbs, &Orb{X: 20, Y: -20})
	g.Session.Charges = 2
	step(g, input.Frame{}, 10)
	g.killPlayer(DeathCauseBlock, "doubt")

	g.Reset()

	if g.Session != (Session{}) {
		t.Fatalf("session not zeroed: %+v", g.Session)
	}
	if g.Clock.Now() != 0 {
		t.Fatalf("clock not reset: %v", g.Clock.Now())
	}
	if g.Arena.Len() != 0 {
		t.Fatalf("arena kept %d blocks", g.Arena.Len())
	}
	if len(g.Orbs) != 0 {
		t.Fatalf("kept %d orbs", len(g.Orbs))
	}
	if g.Player.State != StateGrounded || g.Player.Altitude() != 0 {
		t.Fatalf("player not respawned: state=%v alt=%v", g.Player.State, g.Player.Altitude())
	}
	if g.Abyss.Active() {
		t.Fatal("hazard survived the reset")
	}
}

func TestResetDropsScheduledSpawnerStart(t *testing.T) {
	tuning := DefaultTuning()
	tuning.SpawnStartDelay = 500 * time.Millisecond
	tuning.AbyssStartDelay = time.Hour
	g := newTestGame(tuning)

	// Reset before the spawner start fires; only the new run's timer may act.
	step(g, input.Frame{}, 10)
	g.Reset()
	step(g, input.Frame{}, 10) // 167ms into the new run

	if g.Spawner.enabled {
		t.Fatal("spawner enabled by the previous run's timer")
	}

	step(g, input.Frame{}, 25) // past the new run's start delay
	if !g.Spawner.enabled {
		t.Fatal("new run's spawner start never fired")
	}
}

func TestRecorderLifecycle(t *testing.T) {
	rec := &countingRecorder{}
	g := New(WithSeed(1), WithTuning(quietTuning()), WithRecorder(rec))
	if rec.starts != 1 {
		t.Fatalf("starts after construction = %d, want 1", rec.starts)
	}

	g.killPlayer(DeathCauseLava, "")
	step(g, input.Frame{}, 5)
	if rec.ends != 1 {
		t.Fatalf("ends after death = %d, want 1", rec.ends)
	}

	// Quit after the run already ended must not double-record.
	g.EndSession()
	if rec.ends != 1 {
		t.Fatalf("ends after quit = %d, want 1", rec.ends)
	}

	g.Reset()
	if rec.starts != 2 {
		t.Fatalf("starts after reset = %d, want 2", rec.starts)
	}
}

func TestRecorderFailureNeverStopsPlay(t *testing.T) {
	rec := &countingRecorder{fail: true}
	g := New(WithSeed(1), WithTuning(quietTuning()), WithRecorder(rec))

	g.Advance(input.Frame{Jump: true}, frameDT)
	if g.Player.State != StateAscending {
		t.Fatal("gameplay affected by a failing recorder")
	}

	g.killPlayer(DeathCauseLava, "")
	if !g.Session.Dead {
		t.Fatal("death not applied with a failing recorder")
	}
}

func TestProgressClamped(t *testing.T) {
	g := newTestGame(quietTuning())
	if got := g.Progress(); got != 0 {
		t.Fatalf("initial progress = %v, want 0", got)
	}
	g.Session.MaxAltitude = g.Tuning.GoalAltitude * 2
	if got := g.Progress(); got != 1 {
		t.Fatalf("progress past the goal = %v, want 1", got)
	}
}
