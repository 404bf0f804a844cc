package game

import (
	"sort"

	"github.com/jvesely/arcade/internal/physics"
)

// resolveCollisions advances block and orb physics and resolves every contact
// for the frame: block landings (floor and block-on-block with support
// bookkeeping), player-vs-block outcomes, near-miss detection, and orb
// collection. It is the sole writer of the support relation.
func (g *Game) resolveCollisions(dt float64) {
	g.advanceBlocks(dt)
	g.resolveBlockLandings()
	g.resolvePlayerBlocks()
	g.resolveOrbs(dt)
	g.cullBlocks()
}

// advanceBlocks integrates falling blocks. Landed blocks are immovable.
func (g *Game) advanceBlocks(dt float64) {
	g.Arena.Each(func(b *Block) {
		if b.Falling() {
			b.Y += b.VY * dt
		}
	})
}

// resolveBlockLandings settles falling blocks onto the floor or onto other
// blocks, maintaining the support forest.
//
// Floor contact zeroes the velocity, marks the block immovable, and detaches
// it from any prior support: a floor-landed block is a new tree root.
//
// For block-on-block contact the higher block is "top" and the lower is
// "bottom". When their horizontal extents overlap and the top block is not
// moving upward, the top block stops and joins the bottom block's support
// set, clearing any previous support first.
func (g *Game) resolveBlockLandings() {
	t := &g.Tuning

	// Work on a height-sorted view so stacks settle bottom-up in one pass.
	blocks := g.sortedBlocks()

	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if !b.Falling() {
			continue
		}

		// Floor first.
		if b.Rect().Bottom() >= t.FloorY {
			b.Y = t.FloorY - b.H/2
			b.VY = 0
			b.Landed = true
			g.Arena.ClearSupport(b.ID)
			continue
		}

		// Then any block below it.
		for j := i + 1; j < len(blocks); j++ {
			lower := blocks[j]
			if lower.ID == b.ID || lower.Falling() {
				continue
			}
			if !b.Rect().OverlapsX(lower.Rect()) {
				continue
			}
			// Only a block falling or stationary can settle; one moving
			// upward passes through.
			if b.VY >= 0 &&
				b.Rect().Bottom() >= lower.Rect().Top() &&
				b.Rect().Bottom() <= lower.Rect().Top()+t.LandBand+b.VY*frameSlack {
				b.Y = lower.Rect().Top() - b.H/2
				b.VY = 0
				b.Landed = true
				g.Arena.SetSupport(b.ID, lower.ID)
				break
			}
		}
	}
}

// frameSlack widens the landing band by one frame of travel at the block's
// own speed so fast blocks cannot tunnel past a surface between frames.
const frameSlack = 1.0 / 30.0

// sortedBlocks returns the live blocks ordered top (smallest y) first.
func (g *Game) sortedBlocks() []*Block {
	out := g.blockScratch[:0]
	g.Arena.Each(func(b *Block) { out = append(out, b) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	g.blockScratch = out
	return out
}

// resolvePlayerBlocks handles every player-vs-block contact. Landings settle
// first so the pinned state is known before any overhead block is examined,
// then crushes, then the punch, which reaches the nearest overhead block only.
func (g *Game) resolvePlayerBlocks() {
	if g.Player.State == StateDeceased {
		return
	}
	t := &g.Tuning
	p := g.Player
	now := g.Clock.Now()

	blocks := g.sortedBlocks()

	// Landing on top of a settled block.
	for _, b := range blocks {
		br := b.Rect()
		if b.Falling() || !p.Rect().OverlapsX(br) {
			continue
		}
		if p.VY >= 0 &&
			p.Bottom() >= br.Top() && p.Bottom() <= br.Top()+t.LandBand+p.VY*frameSlack {
			p.Y = br.Top() - p.H/2
			p.VY = 0
			p.grounded = true
			p.standingOn = b.ID
			p.usedAir = false
			p.refreshState(false)
		}
	}

	var overhead *Block
	for _, b := range blocks {
		br := b.Rect()
		if !p.Rect().OverlapsX(br) {
			g.checkNearMiss(b)
			continue
		}

		// Crush: the block's bottom edge has reached the player's head while
		// the player is pinned against a surface below.
		if b.Falling() && p.grounded &&
			physics.InBand(br.Bottom(), p.Top()-t.CrushTolerance, p.Top()+t.CrushTolerance) {
			g.killPlayer(DeathCauseBlock, b.Label)
			return
		}

		if p.Y > b.Y && // player center below block center
			p.standingOn != b.ID &&
			(overhead == nil || br.Bottom() > overhead.Rect().Bottom()) {
			overhead = b
		}
	}

	// Hit-from-below: punching the nearest overhead block from underneath.
	// Blocks further up are out of the punch's reach.
	if overhead == nil || p.VY >= t.HitMaxFallSpeed {
		return
	}
	br := overhead.Rect()
	if !physics.InBand(p.Top(), br.Bottom()-t.HitBandAbove, br.Bottom()+t.HitBandBelow) {
		return
	}
	if overhead.Hits == 0 || now-overhead.lastHit >= t.HitCooldown {
		g.hitBlock(overhead)
		if g.Arena.Get(overhead.ID) != nil {
			// Survived the hit: small upward rebound.
			p.VY = t.HitRebound
		}
	}
}

// hitBlock registers one hit-from-below, destroying the block when its
// threshold is reached. Destruction releases the whole support subtree and
// removes the block from the arena within the same resolution step.
func (g *Game) hitBlock(b *Block) {
	b.Hits++
	b.lastHit = g.Clock.Now()

	if b.Hits >= b.Limit {
		g.destroyBlock(b.ID)
		return
	}
	g.emit(EventBlockHit)
}

// destroyBlock cascades: every block resting (transitively) on the destroyed
// one resumes falling at the standard rate, then the block itself vanishes
// from the arena and the support relation.
func (g *Game) destroyBlock(id BlockID) {
	g.Arena.ReleaseCascade(id, g.Tuning.BlockFallSpeed)
	g.Arena.Remove(id)
	if g.Player.standingOn == id {
		g.Player.standingOn = 0
	}
	g.emit(EventBlockDestroy)
}

// checkNearMiss grants the temporary jump boost when a falling block passes
// close by without touching. Disabled in the current build unless the tuning
// enables it.
func (g *Game) checkNearMiss(b *Block) {
	t := &g.Tuning
	if !t.NearMissEnabled || !b.Falling() {
		return
	}
	p := g.Player
	if b.Rect().Bottom() > p.Top() && b.Rect().Bottom() < p.Bottom() {
		gap := p.Rect().Left() - b.Rect().Right()
		if gap < 0 {
			gap = b.Rect().Left() - p.Rect().Right()
		}
		if gap >= 0 && gap <= t.NearMissDistance {
			g.Session.BoostActive = true
			g.Session.BoostExpiry = g.Clock.Now() + t.BoostDuration
		}
	}
}

// resolveOrbs advances orbs and collects any within reach. Collection is
// proximity-based and independent of whether the orb is resting.
func (g *Game) resolveOrbs(dt float64) {
	t := &g.Tuning
	p := g.Player

	kept := g.Orbs[:0]
	for _, o := range g.Orbs {
		if !o.update(g, dt) {
			continue
		}
		if p.State != StateDeceased &&
			physics.WithinRadius(p.X, p.Y, o.X, o.Y, t.OrbCollectRadius) {
			if g.Session.Charges < t.MaxCharges {
				g.Session.Charges++
			}
			g.emit(EventGraceCollected)
			continue
		}
		kept = append(kept, o)
	}
	g.Orbs = kept
}

// cullBlocks drops blocks that fell far enough below the action to be
// irrelevant, keeping the arena bounded.
func (g *Game) cullBlocks() {
	t := &g.Tuning
	limit := -g.Session.MaxAltitude + t.CullBelowPlayer
	hazardLimit := g.Abyss.Top + t.CullBelowHazard

	var doomed []BlockID
	g.Arena.Each(func(b *Block) {
		if b.Y > limit || (g.Abyss.Active() && b.Y > hazardLimit) {
			doomed = append(doomed, b.ID)
		}
	})
	for _, id := range doomed {
		g.Arena.ReleaseCascade(id, t.BlockFallSpeed)
		g.Arena.Remove(id)
		if g.Player.standingOn == id {
			g.Player.standingOn = 0
		}
	}
}
