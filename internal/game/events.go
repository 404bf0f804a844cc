package game

// Event is a discrete feedback signal emitted by the core for the
// presentation layer (sound, particles). No acknowledgement is expected;
// undrained events are simply dropped on the next frame.
type Event int

const (
	EventJump Event = iota
	EventDoubleJump
	EventWallJump
	EventDash
	EventBlockHit
	EventBlockDestroy
	EventGraceCollected
	EventDeath
	EventVictory
)

// String returns the event name used by presentation-layer lookups.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventDoubleJump:
		return "double-jump"
	case EventWallJump:
		return "wall-jump"
	case EventDash:
		return "dash"
	case EventBlockHit:
		return "block-hit"
	case EventBlockDestroy:
		return "block-destroy"
	case EventGraceCollected:
		return "grace-collected"
	case EventDeath:
		return "death"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents returns the events emitted since the last drain. The returned
// slice is only valid until the next call.
func (g *Game) DrainEvents() []Event {
	ev := g.events
	g.events = g.events[:0]
	return ev
}
