package game

import (
	"math/rand"
	"time"

	"github.com/jvesely/arcade/internal/physics"
)

// Label pools for falling blocks. Burdens dominate near the ground; the odds
// of drawing a virtue grow with the player's progress toward the goal.
var (
	burdenLabels = []string{"doubt", "fear", "debt", "regret", "envy", "sloth", "wrath", "greed"}
	virtueLabels = []string{"hope", "faith", "grace", "mercy", "valor", "light", "peace", "joy"}
)

// Spawner populates the column ahead of the player. It tracks the highest
// point the player has ever reached (not the camera), so blocks keep spawning
// above a player who is temporarily falling back down. Two independent
// cadences fire: a wave whenever spawn elevation lags the player's best, and
// a jittered timer that re-rolls its interval after each fire.
type Spawner struct {
	rng *rand.Rand

	enabled      bool
	highestSpawn float64       // Highest elevation spawned at so far
	nextTimerAt  time.Duration // Game-clock deadline of the timer cadence
}

// newSpawner creates a dormant spawner; the game enables it via a scheduled
// one-shot after the spawn start delay.
func newSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// enable arms both cadences. Called by the start-delay timer.
func (s *Spawner) enable(g *Game) {
	s.enabled = true
	s.nextTimerAt = g.Clock.Now() + s.rollInterval(&g.Tuning)
}

// update runs both spawn cadences for one frame.
func (s *Spawner) update(g *Game) {
	if !s.enabled {
		return
	}
	t := &g.Tuning
	best := g.Session.MaxAltitude

	// Wave cadence: catch up whenever spawn elevation fell behind.
	if best-s.highestSpawn > t.WaveMargin || s.highestSpawn == 0 {
		s.spawnWave(g, best)
	}

	// Timer cadence: one extra block above the highest point, then re-roll.
	if now := g.Clock.Now(); now >= s.nextTimerAt {
		s.spawnBlock(g, best+t.SpawnAhead)
		s.nextTimerAt = now + s.rollInterval(t)
	}
}

// spawnWave places 1-2 blocks plus a probabilistic grace orb ahead of the
// player and records the new spawn elevation.
func (s *Spawner) spawnWave(g *Game, best float64) {
	t := &g.Tuning
	alt := best + t.SpawnAhead

	n := 1 + s.rng.Intn(2)
	for i := 0; i < n; i++ {
		s.spawnBlock(g, alt+float64(i)*t.BlockHeight*1.5)
	}
	if s.rng.Float64() < t.WaveOrbChance {
		s.spawnOrb(g, alt+t.BlockHeight*3)
	}
	if alt > s.highestSpawn {
		s.highestSpawn = alt
	}
}

// rollInterval returns the base timer interval plus fresh jitter.
func (s *Spawner) rollInterval(t *Tuning) time.Duration {
	if t.SpawnTimerJitter <= 0 {
		return t.SpawnTimerBase
	}
	return t.SpawnTimerBase + time.Duration(s.rng.Int63n(int64(t.SpawnTimerJitter)))
}

// spawnBlock creates one block near the given altitude, retrying placement a
// bounded number of times. Exhausting the retries skips the spawn silently:
// a dropped opportunity, not an error.
func (s *Spawner) spawnBlock(g *Game, alt float64) {
	t := &g.Tuning

	for try := 0; try < t.PlaceRetries; try++ {
		x := t.SpawnSideMargin + s.rng.Float64()*(t.WorldWidth-2*t.SpawnSideMargin)
		y := -alt - s.rng.Float64()*t.BlockHeight*2
		candidate := physics.Rect{X: x, Y: y, W: t.BlockWidth, H: t.BlockHeight}

		if s.placementBlocked(g, candidate) {
			continue
		}

		virtue := s.rng.Float64() < g.Progress()
		b := &Block{
			X: x, Y: y,
			W: t.BlockWidth, H: t.BlockHeight,
			VY:     t.BlockFallSpeed,
			Virtue: virtue,
		}
		if virtue {
			b.Limit = t.VirtueThreshold
			b.Label = virtueLabels[s.rng.Intn(len(virtueLabels))]
		} else {
			b.Limit = t.BurdenThreshold
			b.Label = burdenLabels[s.rng.Intn(len(burdenLabels))]
		}
		g.Arena.Add(b)
		return
	}
}

// placementBlocked reports whether the candidate overlaps any active block
// plus padding.
func (s *Spawner) placementBlocked(g *Game, candidate physics.Rect) bool {
	padded := candidate.Inflate(g.Tuning.PlacePadding)
	blocked := false
	g.Arena.Each(func(b *Block) {
		if !blocked && padded.Overlaps(b.Rect()) {
			blocked = true
		}
	})
	return blocked
}

// spawnOrb places a grace orb at a random horizontal position.
func (s *Spawner) spawnOrb(g *Game, alt float64) {
	t := &g.Tuning
	g.Orbs = append(g.Orbs, &Orb{
		X:      t.SpawnSideMargin + s.rng.Float64()*(t.WorldWidth-2*t.SpawnSideMargin),
		Y:      -alt,
		VY:     t.OrbFallSpeed,
		Radius: t.OrbRadius,
	})
}
