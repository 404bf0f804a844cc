package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/jvesely/arcade/internal/draw"
	"github.com/jvesely/arcade/internal/game"
	"github.com/jvesely/arcade/internal/input"
)

// Screen is the current presentation phase.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenPlaying
	ScreenDead
	ScreenWon
)

// Options configures a game run.
type Options struct {
	// TermSizeFunc reports the terminal size each frame. Defaults to the
	// local terminal.
	TermSizeFunc draw.TermSizeFunc

	// Recorder receives best-effort session analytics. Defaults to a no-op.
	Recorder game.Recorder

	// Events receives every core feedback event (for sound playback).
	Events func(game.Event)

	// Seed fixes the spawn RNG; zero means time-seeded.
	Seed int64
}

// State carries everything one terminal session needs.
type State struct {
	Game   *game.Game
	Screen Screen
	Stream *input.Stream
	Frame  input.Frame

	opts     Options
	wonShown bool // Victory screen already acknowledged this run
}

// Run starts the presentation loop and blocks until the player quits or the
// reader closes.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}

	state := &State{
		Screen: ScreenMenu,
		Stream: input.StartStream(r),
		opts:   opts,
	}

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termW, termH, err := opts.TermSizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	canvas := newCanvas(termW, termH)
	cw := draw.NewChunkWriter(w, canvas.OffsetCol(), canvas.OffsetRow())

	lastTime := time.Now()
	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		state.Frame = input.ReadFrame(state.Stream)
		if state.Frame.Quit {
			break
		}

		if err := fitCanvas(canvas, cw, opts.TermSizeFunc); err != nil {
			return err
		}

		state.update(dt)

		draw.ClearScreen(cw)
		canvas.Clear()
		state.draw(canvas, cw)
		canvas.Render(cw)
		state.drawOverlay(canvas, cw)
		if err := cw.Flush(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	if state.Game != nil {
		state.Game.EndSession()
	}
	draw.ClearScreen(w)
	return nil
}

// update advances whichever screen is active.
func (s *State) update(dt time.Duration) {
	switch s.Screen {
	case ScreenMenu:
		s.updateMenu()
	case ScreenPlaying:
		s.updatePlaying(dt)
	case ScreenDead, ScreenWon:
		s.updateTerminalScreen()
	}
}

// updateMenu waits for the player to start a run.
func (s *State) updateMenu() {
	if s.Frame.Jump || s.Frame.Enter {
		s.startGame()
	}
}

// startGame builds a fresh game and enters play.
func (s *State) startGame() {
	opts := []game.Option{}
	if s.opts.Recorder != nil {
		opts = append(opts, game.WithRecorder(s.opts.Recorder))
	}
	if s.opts.Seed != 0 {
		opts = append(opts, game.WithSeed(s.opts.Seed))
	}
	s.Game = game.New(opts...)
	s.Stream.Reset()
	s.wonShown = false
	s.Screen = ScreenPlaying
}

// updatePlaying advances one gameplay frame and reacts to terminal states.
func (s *State) updatePlaying(dt time.Duration) {
	g := s.Game

	if s.Frame.Pause {
		g.SetPaused(!g.Session.Paused)
	}
	if s.Frame.Escape && g.Session.Paused {
		g.EndSession()
		s.Screen = ScreenMenu
		return
	}

	g.Advance(s.Frame, dt)
	s.forwardEvents()

	switch {
	case g.Session.Dead:
		s.Screen = ScreenDead
	case g.Session.Won && !s.wonShown:
		s.wonShown = true
		s.Screen = ScreenWon
	}
}

// updateTerminalScreen handles the death and victory screens. Victory offers
// a continue that re-enables gravity and returns to play; death offers a
// restart or the menu.
func (s *State) updateTerminalScreen() {
	g := s.Game

	// The world keeps settling behind the terminal overlay.
	g.Advance(input.Frame{}, TargetFrameTime)
	s.forwardEvents()

	switch {
	case s.Screen == ScreenWon && (s.Frame.Enter || s.Frame.Jump):
		g.ContinueAfterWin()
		s.Stream.Reset()
		s.Screen = ScreenPlaying
	case s.Screen == ScreenDead && (s.Frame.Enter || s.Frame.Jump):
		g.Reset()
		s.Stream.Reset()
		s.wonShown = false
		s.Screen = ScreenPlaying
	case s.Frame.Escape:
		s.Screen = ScreenMenu
	}
}

// forwardEvents hands core feedback events to the configured sink.
func (s *State) forwardEvents() {
	events := s.Game.DrainEvents()
	if s.opts.Events == nil {
		return
	}
	for _, ev := range events {
		s.opts.Events(ev)
	}
}

// newCanvas creates the scaled canvas, capped and centered for very large
// terminals.
func newCanvas(termW, termH int) *draw.Canvas {
	w, h, offC, offR := fitTerminal(termW, termH)
	c := draw.NewScaledCanvas(w, h, ViewWidth, ViewHeight)
	c.SetOffset(offC, offR)
	return c
}

// fitCanvas resizes the canvas when the terminal changed.
func fitCanvas(c *draw.Canvas, cw *draw.ChunkWriter, sizeFunc draw.TermSizeFunc) error {
	termW, termH, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	w, h, offC, offR := fitTerminal(termW, termH)
	if w != c.TerminalWidth() || h != c.TerminalHeight() {
		c.Resize(w, h)
	}
	c.SetOffset(offC, offR)
	cw.SetOffset(offC, offR)
	return nil
}

// fitTerminal caps the render area and centers it in the terminal.
func fitTerminal(termW, termH int) (w, h, offCol, offRow int) {
	w, h = termW, termH
	if w > MaxRenderCols {
		w = MaxRenderCols
	}
	if h > MaxRenderRows {
		h = MaxRenderRows
	}
	return w, h, (termW - w) / 2, (termH - h) / 2
}
