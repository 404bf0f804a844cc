package loop

import (
	"strings"

	"github.com/jvesely/arcade/internal/draw"
	"github.com/jvesely/arcade/internal/game"
)

// draw renders the scene for the active screen onto the canvas.
func (s *State) draw(c *draw.Canvas, cw *draw.ChunkWriter) {
	if s.Screen == ScreenMenu || s.Game == nil {
		return
	}
	s.drawScene(c, cw)
}

// cameraTop returns the world y coordinate mapped to the top of the view.
// The camera follows the player, anchored a fixed fraction down the view,
// and never shows below the floor.
func (s *State) cameraTop() float64 {
	g := s.Game
	top := g.Player.Y - ViewHeight*CameraAnchor
	if top > g.Tuning.FloorY-ViewHeight {
		top = g.Tuning.FloorY - ViewHeight
	}
	return top
}

// drawScene renders floor, lava, blocks, orbs and the player relative to the
// camera.
func (s *State) drawScene(c *draw.Canvas, cw *draw.ChunkWriter) {
	g := s.Game
	camTop := s.cameraTop()

	// Floor, when in view.
	floorY := g.Tuning.FloorY - camTop
	if floorY >= 0 && floorY <= ViewHeight {
		c.DrawLine(draw.Point{X: 0, Y: floorY}, draw.Point{X: ViewWidth, Y: floorY})
	}

	// Blocks, with their labels overlaid as text.
	g.Arena.Each(func(b *game.Block) {
		r := b.Rect()
		y1 := r.Top() - camTop
		y2 := r.Bottom() - camTop
		if y2 < 0 || y1 > ViewHeight {
			return
		}
		if b.Falling() {
			c.FillRect(r.Left(), y1, r.Right(), y2)
		} else {
			c.StrokeRect(r.Left(), y1, r.Right(), y2)
		}
		if label := blockLabel(b); label != "" {
			col, row := c.LogicalToTerminal(b.X, (y1+y2)/2)
			cw.WriteAt(col-len(label)/2, row, label)
		}
	})

	// Grace orbs.
	for _, o := range g.Orbs {
		oy := o.Y - camTop
		if oy < 0 || oy > ViewHeight {
			continue
		}
		c.SetFloat(o.X, oy)
		c.SetFloat(o.X-1, oy)
		c.SetFloat(o.X+1, oy)
		c.SetFloat(o.X, oy-1)
		c.SetFloat(o.X, oy+1)
	}

	// Player.
	p := g.Player.Rect()
	c.FillRect(p.Left(), p.Top()-camTop, p.Right(), p.Bottom()-camTop)

	s.drawLava(c, cw, camTop)
}

// blockLabel shortens a block's label to fit inside its rectangle.
func blockLabel(b *game.Block) string {
	if b.Label == "" {
		return ""
	}
	if len(b.Label) > 6 {
		return b.Label[:6]
	}
	return b.Label
}

// drawLava renders the hazard surface on the canvas and fills the body with
// shaded text rows underneath.
func (s *State) drawLava(c *draw.Canvas, cw *draw.ChunkWriter, camTop float64) {
	g := s.Game
	top := g.Abyss.Top - camTop
	if top > ViewHeight {
		return
	}
	if top < 0 {
		top = 0
	}
	c.DrawLine(draw.Point{X: 0, Y: top}, draw.Point{X: ViewWidth, Y: top})

	_, startRow := c.LogicalToTerminal(0, top)
	width := c.TerminalWidth()
	body := strings.Repeat(string(draw.BlockMedium), width)
	for row := startRow + 1; row <= c.TerminalHeight(); row++ {
		cw.WriteAt(1, row, body)
	}
}
