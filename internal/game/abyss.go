package game

import "time"

// Abyss is the rising lava boundary that forces upward progress. It starts
// dormant, activates once after a fixed delay, and then its top edge rises
// (y strictly decreases) at a speed that grows linearly with time. The
// transition is one-way and the top never moves back down within a session.
type Abyss struct {
	Top float64 // Y coordinate of the lava surface

	active      bool
	activatedAt time.Duration
}

// newAbyss places the dormant boundary below the floor.
func newAbyss(t *Tuning) Abyss {
	return Abyss{Top: t.FloorY + t.AbyssStartBelow}
}

// Active reports whether the boundary has started rising.
func (a *Abyss) Active() bool { return a.active }

// update advances the dormant→rising state machine and moves the surface.
func (a *Abyss) update(t *Tuning, now time.Duration, dt float64) {
	if !a.active {
		if now >= t.AbyssStartDelay {
			a.active = true
			a.activatedAt = now
		}
		return
	}
	speed := t.AbyssBaseRise + t.AbyssRiseAccel*(now-a.activatedAt).Seconds()
	a.Top -= speed * dt
}

// Engulfs reports whether a point at the given y (the player's lower bound)
// has crossed below the lava surface.
func (a *Abyss) Engulfs(bottom float64) bool {
	return a.active && bottom >= a.Top
}
