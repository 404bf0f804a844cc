package game

import (
	"math"
	"time"

	"github.com/jvesely/arcade/internal/input"
	"github.com/jvesely/arcade/internal/physics"
)

// MoveState is the player's movement state.
type MoveState int

const (
	StateGrounded MoveState = iota
	StateAscending
	StateDescending
	StateWallSliding
	StateDeceased
)

// String returns the state name.
func (s MoveState) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAscending:
		return "ascending"
	case StateDescending:
		return "descending"
	case StateWallSliding:
		return "wall-sliding"
	case StateDeceased:
		return "deceased"
	default:
		return "unknown"
	}
}

// Wall contact sides.
const (
	wallNone  = 0
	wallLeft  = -1
	wallRight = 1
)

// Player is the controllable rocketeer. Y decreases upward; altitude is
// max(0, -Y) measured at the feet.
type Player struct {
	X, Y   float64 // Center position
	VX, VY float64
	W, H   float64
	Facing float64 // -1 left, +1 right
	State  MoveState

	onWall      int     // Side of current wall contact while airborne
	standingOn  BlockID // Block under the feet, 0 when on the floor or airborne
	grounded    bool
	usedAir     bool          // One-per-airborne-excursion air action spent
	dashImpulse float64       // Decaying horizontal dash velocity
	jumpReady   time.Duration // Game-clock instant the next jump is allowed
	gravityOff  bool          // Set after winning until an explicit continue
}

// newPlayer spawns the player standing on the floor at the world center.
func newPlayer(t *Tuning) *Player {
	return &Player{
		X:      t.WorldWidth / 2,
		Y:      t.FloorY - t.PlayerHeight/2,
		W:      t.PlayerWidth,
		H:      t.PlayerHeight,
		Facing: 1,
		State:  StateGrounded,

		grounded: true,
	}
}

// Rect returns the player's bounding rectangle.
func (p *Player) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Bottom returns the y coordinate of the feet.
func (p *Player) Bottom() float64 { return p.Y + p.H/2 }

// Top returns the y coordinate of the head.
func (p *Player) Top() float64 { return p.Y - p.H/2 }

// Altitude returns the climbed height, never negative.
func (p *Player) Altitude() float64 {
	alt := -(p.Bottom())
	if alt < 0 {
		return 0
	}
	return alt
}

// update translates one frame of input into movement. Input is ignored once
// deceased; the body keeps falling under gravity so the camera has something
// to follow.
func (p *Player) update(g *Game, in input.Frame, dt float64) {
	t := &g.Tuning
	now := g.Clock.Now()

	axis := input.ClampAxis(in.Axis)
	if p.State == StateDeceased {
		axis = 0
		in.Jump = false
	}

	if axis < 0 {
		p.Facing = -1
	} else if axis > 0 {
		p.Facing = 1
	}

	p.dashImpulse *= powDrag(t.DashDrag, dt)

	// Gravity is suspended after a win until the player chooses to continue.
	if !p.gravityOff {
		p.VY += t.Gravity * dt
	}
	if p.VY > t.MaxFallSpeed {
		p.VY = t.MaxFallSpeed
	}

	// Wall slide caps the fall while pressed against a wall.
	sliding := !p.grounded && p.onWall != wallNone && axis == float64(p.onWall) && p.VY > 0
	if sliding && p.VY > t.WallSlideMaxFall {
		p.VY = t.WallSlideMaxFall
	}

	if in.Jump && now >= p.jumpReady {
		p.resolveJump(g)
	}

	// Horizontal: direct control plus the decaying dash impulse.
	p.VX = axis*t.MoveSpeed + p.dashImpulse

	// Integrate.
	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Side walls clamp movement and establish wall contact.
	p.onWall = wallNone
	if p.X-p.W/2 <= 0 {
		p.X = p.W / 2
		if !p.grounded {
			p.onWall = wallLeft
		}
	} else if p.X+p.W/2 >= t.WorldWidth {
		p.X = t.WorldWidth - p.W/2
		if !p.grounded {
			p.onWall = wallRight
		}
	}

	// Floor contact. Landing resets the airborne excursion.
	p.grounded = false
	p.standingOn = 0
	if p.Bottom() >= t.FloorY {
		p.Y = t.FloorY - p.H/2
		p.VY = 0
		p.grounded = true
	}

	p.refreshState(sliding)
	if p.grounded || p.State == StateWallSliding {
		p.usedAir = false
	}
}

// resolveJump applies the first matching jump type. Priority: grounded jump,
// wall jump, charged air jump, air dodge. A successful jump of any type arms
// the shared cooldown.
func (p *Player) resolveJump(g *Game) {
	t := &g.Tuning

	switch {
	case p.grounded:
		impulse := t.JumpVelocity
		if g.Session.BoostActive {
			impulse *= t.BoostMultiplier
		}
		p.VY = impulse
		p.grounded = false
		g.emit(EventJump)

	case p.onWall != wallNone:
		// Wall jump: up and away from the wall. Never consumes a charge.
		p.VY = t.JumpVelocity
		p.dashImpulse = -float64(p.onWall) * t.WallJumpVX
		p.Facing = -float64(p.onWall)
		g.emit(EventWallJump)

	case g.Session.Charges > 0 && !p.usedAir:
		g.Session.Charges--
		p.VY = t.JumpVelocity
		p.usedAir = true
		g.emit(EventDoubleJump)

	case !p.usedAir:
		// Air dodge: strong horizontal burst. The fall is slowed but never
		// reversed, so the dodge itself cannot gain altitude.
		p.dashImpulse = p.Facing * t.DashVX
		if p.VY > t.DashFallCap {
			p.VY = t.DashFallCap
		}
		p.usedAir = true
		g.emit(EventDash)

	default:
		return // No action available; cooldown stays disarmed.
	}

	p.jumpReady = g.Clock.Now() + t.JumpCooldown
}

// refreshState derives the movement state from the physical situation.
func (p *Player) refreshState(sliding bool) {
	if p.State == StateDeceased {
		return
	}
	switch {
	case p.grounded:
		p.State = StateGrounded
	case sliding && p.onWall != wallNone:
		p.State = StateWallSliding
	case p.VY < 0:
		p.State = StateAscending
	default:
		p.State = StateDescending
	}
}

// kill puts the player in the terminal deceased state.
func (p *Player) kill() {
	p.State = StateDeceased
	p.dashImpulse = 0
}

// powDrag converts a per-second retention factor into a per-frame multiplier.
func powDrag(perSecond, dt float64) float64 {
	if perSecond <= 0 {
		return 0
	}
	return math.Pow(perSecond, dt)
}
