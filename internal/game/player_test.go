package game

import (
	"testing"
	"time"

	"github.com/jvesely/arcade/internal/input"
)

const frameDT = time.Second / 60

// quietTuning pushes the spawner and the hazard far into the future so tests
// can exercise one mechanic at a time.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.SpawnStartDelay = time.Hour
	t.AbyssStartDelay = time.Hour
	return t
}

func newTestGame(t Tuning) *Game {
	return New(WithSeed(1), WithTuning(t))
}

func step(g *Game, f input.Frame, frames int) {
	for i := 0; i < frames; i++ {
		g.Advance(f, frameDT)
	}
}

func hasEvent(events []Event, want Event) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func TestGroundedJumpAscendsAndLands(t *testing.T) {
	g := newTestGame(quietTuning())

	g.Advance(input.Frame{Jump: true}, frameDT)
	if !hasEvent(g.DrainEvents(), EventJump) {
		t.Fatal("no jump event on a grounded jump")
	}
	if g.Player.State != StateAscending {
		t.Fatalf("state after jump = %v, want ascending", g.Player.State)
	}
	if g.Session.Altitude <= 0 {
		t.Fatalf("altitude after jump frame = %v, want > 0", g.Session.Altitude)
	}

	// Let gravity bring the player back down.
	step(g, input.Frame{}, 120)
	if g.Player.State != StateGrounded {
		t.Fatalf("state after falling = %v, want grounded", g.Player.State)
	}
	if g.Session.Altitude != 0 {
		t.Fatalf("altitude back on the floor = %v, want 0", g.Session.Altitude)
	}
	if g.Session.MaxAltitude <= 0 {
		t.Fatal("max altitude not recorded from the jump")
	}
}

func TestJumpCooldownSuppressesFollowups(t *testing.T) {
	g := newTestGame(quietTuning())

	// Hold jump. The grounded jump fires, then the cooldown must block the
	// air actions for its full duration.
	g.Advance(input.Frame{Jump: true}, frameDT)
	jumps := 1
	cooldownFrames := int(g.Tuning.JumpCooldown/frameDT) - 1
	for i := 0; i < cooldownFrames; i++ {
		g.Advance(input.Frame{Jump: true}, frameDT)
		for _, e := range g.DrainEvents() {
			switch e {
			case EventJump, EventDoubleJump, EventWallJump, EventDash:
				jumps++
			}
		}
	}
	if jumps != 1 {
		t.Fatalf("%d jump actions inside the cooldown window, want 1", jumps)
	}
}

func TestChargedAirJumpConsumesOneCharge(t *testing.T) {
	g := newTestGame(quietTuning())
	g.Session.Charges = 2

	g.Advance(input.Frame{Jump: true}, frameDT) // grounded jump
	step(g, input.Frame{}, 12)                  // past the cooldown, still airborne

	g.Advance(input.Frame{Jump: true}, frameDT)
	if !hasEvent(g.DrainEvents(), EventDoubleJump) {
		t.Fatal("no double-jump event for a charged air jump")
	}
	if g.Session.Charges != 1 {
		t.Fatalf("charges after air jump = %d, want 1", g.Session.Charges)
	}
}

func TestAirDodgeWhenOutOfCharges(t *testing.T) {
	g := newTestGame(quietTuning())

	g.Advance(input.Frame{Jump: true}, frameDT)
	step(g, input.Frame{Axis: 1}, 12)

	before := g.Player.VX
	g.Advance(input.Frame{Axis: 1, Jump: true}, frameDT)
	if !hasEvent(g.DrainEvents(), EventDash) {
		t.Fatal("no dash event for an uncharged air action")
	}
	if g.Player.VX <= before {
		t.Fatalf("dash did not boost horizontal speed: before %v, after %v", before, g.Player.VX)
	}

	// The one air action is spent for this excursion.
	step(g, input.Frame{}, 3)
	g.Advance(input.Frame{Jump: true}, frameDT)
	if hasEvent(g.DrainEvents(), EventDash) {
		t.Fatal("second air dodge within one airborne excursion")
	}
}

func TestAirDodgeNeverGainsAltitude(t *testing.T) {
	g := newTestGame(quietTuning())
	p := g.Player
	p.grounded = false
	p.Y = -300
	p.VY = 400 // falling fast

	g.Advance(input.Frame{Jump: true}, frameDT)
	if !hasEvent(g.DrainEvents(), EventDash) {
		t.Fatal("no dash event for a falling air dodge")
	}
	if g.Player.VY < 0 {
		t.Fatalf("dodge reversed the fall: VY = %v", g.Player.VY)
	}
	if g.Session.Charges != 0 {
		t.Fatalf("dodge changed charges: %d", g.Session.Charges)
	}
}

func TestWallJumpNeverConsumesCharge(t *testing.T) {
	g := newTestGame(quietTuning())
	g.Session.Charges = 1

	p := g.Player
	p.grounded = false
	p.onWall = wallLeft
	p.X = p.W / 2
	p.Y = -200
	p.VY = 50

	g.Advance(input.Frame{Jump: true}, frameDT)
	if !hasEvent(g.DrainEvents(), EventWallJump) {
		t.Fatal("no wall-jump event while on a wall")
	}
	if g.Session.Charges != 1 {
		t.Fatalf("wall jump consumed a charge: %d", g.Session.Charges)
	}
	if g.Player.VX <= 0 {
		t.Fatalf("wall jump off the left wall should push right, VX = %v", g.Player.VX)
	}
}

func TestDeceasedIgnoresInput(t *testing.T) {
	g := newTestGame(quietTuning())
	g.killPlayer(DeathCauseLava, "")

	x := g.Player.X
	step(g, input.Frame{Axis: 1, Jump: true}, 10)
	if g.Player.X != x {
		t.Fatalf("deceased player moved horizontally: %v -> %v", x, g.Player.X)
	}
	if g.Player.State != StateDeceased {
		t.Fatalf("state = %v, want deceased", g.Player.State)
	}
}
