package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestClampAxis(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-2.5, -1},
		{-1, -1},
		{-0.3, -0.3},
		{0, 0},
		{1, 1},
		{7, 1},
	}
	for _, tc := range cases {
		if got := ClampAxis(tc.in); got != tc.want {
			t.Errorf("ClampAxis(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// readAll waits for the stream goroutine to deliver everything, then reads
// until a frame reflecting the input comes out. The settle delay keeps a
// multi-byte sequence from being parsed half-drained.
func readAll(s *Stream) Frame {
	time.Sleep(20 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		f := ReadFrame(s)
		if f != (Frame{}) {
			return f
		}
		time.Sleep(time.Millisecond)
	}
	return Frame{}
}

func TestReadFrameMovementKeys(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))
	f := readAll(s)
	if f.Axis != 1 {
		t.Fatalf("axis for 'd' = %v, want 1", f.Axis)
	}

	s = StartStream(bufio.NewReader(strings.NewReader("a")))
	f = readAll(s)
	if f.Axis != -1 {
		t.Fatalf("axis for 'a' = %v, want -1", f.Axis)
	}
}

func TestReadFrameArrowSequences(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\x1b[C")))
	f := readAll(s)
	if f.Axis != 1 {
		t.Fatalf("axis for right arrow = %v, want 1", f.Axis)
	}
	if f.Escape {
		t.Fatal("arrow sequence misread as escape")
	}
}

func TestReadFrameOpposedKeysCancel(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("ad ")))
	f := readAll(s)
	if f.Axis != 0 {
		t.Fatalf("axis with both directions held = %v, want 0", f.Axis)
	}
	if !f.Jump {
		t.Fatal("space did not trigger a jump")
	}
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))
	f := readAll(s)
	if !f.Jump {
		t.Fatal("first frame missed the jump press")
	}

	// No new bytes: the key is still "held" but the edge already fired.
	f = ReadFrame(s)
	if f.Jump {
		t.Fatal("jump fired again without a release")
	}
}

func TestQuitKey(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))
	f := readAll(s)
	if !f.Quit {
		t.Fatal("'q' did not request quit")
	}
}
