package loop

import (
	"fmt"
	"strings"

	"github.com/jvesely/arcade/internal/draw"
)

// drawOverlay writes the text layer on top of the rendered canvas: menu and
// terminal screens, the HUD, and the pause banner.
func (s *State) drawOverlay(c *draw.Canvas, cw *draw.ChunkWriter) {
	centerX := c.TerminalWidth() / 2
	centerY := c.TerminalHeight() / 2

	switch s.Screen {
	case ScreenMenu:
		s.drawMenu(cw, centerX, centerY)
	case ScreenPlaying:
		s.drawHUD(c, cw)
		if s.Game.Session.Paused {
			drawCentered(cw, centerX, centerY, "P A U S E D")
			drawCentered(cw, centerX, centerY+2, "P to resume, ESC for menu")
		}
	case ScreenDead:
		s.drawHUD(c, cw)
		s.drawDeadScreen(cw, centerX, centerY)
	case ScreenWon:
		s.drawHUD(c, cw)
		s.drawWonScreen(cw, centerX, centerY)
	}
}

// drawMenu draws the title screen.
func (s *State) drawMenu(cw *draw.ChunkWriter, centerX, centerY int) {
	drawCentered(cw, centerX, centerY-3, "R O C K E T   T O   H E A V E N")
	drawCentered(cw, centerX, centerY, "Climb the falling blocks. Outrun the lava.")
	drawCentered(cw, centerX, centerY+2, "Press SPACE to launch")
	drawCentered(cw, centerX, centerY+5,
		"A/D or arrows to move, SPACE to jump, P to pause, Q to quit")
}

// drawHUD draws altitude, best, grace charges and play time along the top.
func (s *State) drawHUD(c *draw.Canvas, cw *draw.ChunkWriter) {
	sess := &s.Game.Session

	cw.WriteAt(2, 1, fmt.Sprintf("ALT %6.0f", sess.Altitude))
	cw.WriteAt(15, 1, fmt.Sprintf("BEST %6.0f", sess.MaxAltitude))

	charges := strings.Repeat("◆", sess.Charges) +
		strings.Repeat("◇", s.Game.Tuning.MaxCharges-sess.Charges)
	cw.WriteAt(30, 1, "GRACE "+charges)

	timeText := fmt.Sprintf("%5.1fs", sess.PlayTime.Seconds())
	cw.WriteAt(c.TerminalWidth()-len(timeText)-1, 1, timeText)
}

// drawDeadScreen draws the game-over overlay with the death cause.
func (s *State) drawDeadScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	sess := &s.Game.Session

	var cause string
	switch sess.DeathCause {
	case "lava":
		cause = "The lava caught you"
	case "block":
		cause = fmt.Sprintf("Crushed by %q", sess.KillerLabel)
	default:
		cause = "The climb is over"
	}

	drawCentered(cw, centerX, centerY-3, "Y O U   F E L L")
	drawCentered(cw, centerX, centerY-1, cause)
	drawCentered(cw, centerX, centerY+1,
		fmt.Sprintf("Altitude %.0f  ·  %.1fs", sess.MaxAltitude, sess.PlayTime.Seconds()))
	drawCentered(cw, centerX, centerY+3, "SPACE to climb again, ESC for menu")
}

// drawWonScreen draws the victory overlay.
func (s *State) drawWonScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	sess := &s.Game.Session

	drawCentered(cw, centerX, centerY-3, "H E A V E N   R E A C H E D")
	drawCentered(cw, centerX, centerY-1,
		fmt.Sprintf("Altitude %.0f in %.1fs", sess.MaxAltitude, sess.PlayTime.Seconds()))
	drawCentered(cw, centerX, centerY+1, "ENTER to keep climbing, ESC for menu")
}

// drawCentered writes text horizontally centered on the given row.
func drawCentered(cw *draw.ChunkWriter, centerX, row int, text string) {
	col := centerX - len(text)/2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, text)
}
