// Package input decodes terminal key bytes into the per-frame movement contract:
// one horizontal axis value in [-1, 1] and one jump edge trigger, plus menu keys.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminal input has no key-up events, so held state is inferred from repeats.
const keyHoldDuration = 120 * time.Millisecond

// Frame is the input consumed by one game frame. All sources (keyboard today,
// joystick or touch through other front-ends) reduce to this shape.
type Frame struct {
	Axis   float64 // Horizontal movement in [-1, 1]
	Jump   bool    // Edge trigger: jump key newly pressed this frame
	Pause  bool    // Edge trigger: pause toggle
	Enter  bool    // Confirm / continue
	Escape bool    // Back to menu
	Quit   bool    // Quit the program
}

// ClampAxis limits an axis value to [-1, 1]. Out-of-range input is clamped,
// never rejected.
func ClampAxis(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// keyState tracks the last time each key was pressed, plus the previous
// frame's held state for edge detection.
type keyState struct {
	left   time.Time
	right  time.Time
	jump   time.Time
	pause  time.Time
	enter  time.Time
	escape time.Time
	quit   time.Time

	jumpHeld  bool
	pauseHeld bool
}

// Stream delivers input bytes via a channel and tracks key state.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset clears edge-tracking state, e.g. when switching screens, so a key that
// confirmed a menu does not also fire in the first gameplay frame.
func (s *Stream) Reset() {
	now := time.Now()
	zero := now.Add(-time.Second)
	s.state = keyState{
		left: zero, right: zero, jump: now, pause: now,
		enter: now, escape: zero, quit: zero,
		jumpHeld: true, pauseHeld: true,
	}
}

// ReadFrame drains all available bytes from the stream (non-blocking) and
// folds them into a Frame. Arrow-key escape sequences are handled; plain ESC
// maps to Escape. Jump and Pause are edge triggers: they fire only on the
// frame where the key transitions from released to pressed.
func ReadFrame(s *Stream) Frame {
	now := time.Now()
	var buf []byte

	// Drain all available bytes
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code> (arrow keys)
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows unused
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }

	var axis float64
	if held(s.state.left) {
		axis -= 1
	}
	if held(s.state.right) {
		axis += 1
	}

	jumpNow := held(s.state.jump)
	pauseNow := held(s.state.pause)

	frame := Frame{
		Axis:   ClampAxis(axis),
		Jump:   jumpNow && !s.state.jumpHeld,
		Pause:  pauseNow && !s.state.pauseHeld,
		Enter:  held(s.state.enter),
		Escape: held(s.state.escape),
		Quit:   held(s.state.quit),
	}

	s.state.jumpHeld = jumpNow
	s.state.pauseHeld = pauseNow

	return frame
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', 'w', 'W', 'i', 'I':
		state.jump = now
	case 'p', 'P':
		state.pause = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'q', 'Q':
		state.quit = now
	}
}
