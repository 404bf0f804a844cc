package game

import "time"

// Clock is the pause-aware game clock. It advances only when the session is
// running, so every gameplay timer (hit cooldowns, hazard delay, scheduled
// one-shots) freezes during pause and resumes exactly where it left off.
type Clock struct {
	elapsed time.Duration
	paused  bool
}

// Now returns the elapsed game time since the session started.
func (c *Clock) Now() time.Duration { return c.elapsed }

// Advance moves game time forward by dt unless paused.
func (c *Clock) Advance(dt time.Duration) {
	if !c.paused {
		c.elapsed += dt
	}
}

// SetPaused freezes or unfreezes the clock.
func (c *Clock) SetPaused(p bool) { c.paused = p }

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool { return c.paused }

// Reset returns the clock to the session start.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.paused = false
}

// scheduled is a one-shot action pinned to a game-clock deadline and to the
// session generation that created it.
type scheduled struct {
	at  time.Duration
	gen uint64
	fn  func()
}

// Scheduler runs deferred one-shot actions on later frames. Actions scheduled
// by a session that has since been reset are dropped: the generation check is
// the liveness guard required for teardown races.
type Scheduler struct {
	clock   *Clock
	gen     uint64
	pending []scheduled
}

// NewScheduler creates a scheduler bound to the given clock.
func NewScheduler(clock *Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// After registers fn to run once d of game time has passed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, scheduled{
		at:  s.clock.Now() + d,
		gen: s.gen,
		fn:  fn,
	})
}

// Run fires every due action belonging to the current generation. Stale
// actions from previous generations are discarded without running.
func (s *Scheduler) Run() {
	now := s.clock.Now()
	kept := s.pending[:0]
	for _, ev := range s.pending {
		if ev.gen != s.gen {
			continue
		}
		if ev.at <= now {
			ev.fn()
			continue
		}
		kept = append(kept, ev)
	}
	s.pending = kept
}

// Invalidate abandons all pending actions. Called on session reset so timers
// from the torn-down session never act on the new one.
func (s *Scheduler) Invalidate() {
	s.gen++
	s.pending = s.pending[:0]
}

// Pending returns the number of actions still waiting to fire.
func (s *Scheduler) Pending() int { return len(s.pending) }
