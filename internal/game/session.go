package game

import (
	"context"
	"time"
)

// Death causes recorded in the session when the run ends.
const (
	DeathCauseLava  = "lava"
	DeathCauseBlock = "block"
)

// Session holds the run state mutated by the game loop and read by the
// presentation layer. It is owned by the Game; Reset replaces every field
// atomically between frames.
type Session struct {
	Altitude    float64       // Current altitude (max(0, -y))
	MaxAltitude float64       // Highest altitude reached; monotonic within a run
	Charges     int           // Grace charges, always in [0, MaxCharges]
	Dead        bool          // Terminal: the run ended in death
	Won         bool          // Terminal: the goal altitude was reached
	DeathCause  string        // DeathCauseLava or DeathCauseBlock when Dead
	KillerLabel string        // Label of the offending block for block deaths
	Paused      bool
	PlayTime    time.Duration // Elapsed game time (excludes pauses)
	BoostActive bool          // Near-miss jump boost currently applies
	BoostExpiry time.Duration // Game-clock instant the boost lapses
}

// Reset returns every field to its documented initial value.
func (s *Session) Reset() {
	*s = Session{}
}

// Terminal reports whether the run has ended in death or victory.
func (s *Session) Terminal() bool {
	return s.Dead || s.Won
}

// SessionHandle is the opaque identifier returned by a Recorder.
type SessionHandle int64

// Recorder is the session/analytics collaborator. Both calls are best-effort:
// any error is for the caller's logs only and must never affect gameplay.
type Recorder interface {
	StartSession(ctx context.Context) (SessionHandle, error)
	EndSession(ctx context.Context, h SessionHandle, finalAltitude float64, playTime time.Duration) error
}

// NoopRecorder discards session records. Used for local play without a
// database.
type NoopRecorder struct{}

func (NoopRecorder) StartSession(context.Context) (SessionHandle, error) { return 0, nil }

func (NoopRecorder) EndSession(context.Context, SessionHandle, float64, time.Duration) error {
	return nil
}
