package game

// Orb is a falling grace pickup. It keeps falling at a slightly slower rate
// than blocks, rests when it touches a surface, and is collected by proximity
// regardless of whether it is resting or still in the air.
type Orb struct {
	X, Y    float64
	VY      float64
	Radius  float64
	Resting bool
}

// update advances the orb, settling it on the floor or the first landed block
// it touches. Returns false when the orb has fallen out of relevance and
// should be dropped.
func (o *Orb) update(g *Game, dt float64) bool {
	t := &g.Tuning

	if !o.Resting {
		o.Y += o.VY * dt

		if o.Y+o.Radius >= t.FloorY {
			o.Y = t.FloorY - o.Radius
			o.VY = 0
			o.Resting = true
		} else {
			g.Arena.Each(func(b *Block) {
				if o.Resting || b.Falling() {
					return
				}
				r := b.Rect()
				if o.X > r.Left() && o.X < r.Right() &&
					o.Y+o.Radius >= r.Top() && o.Y-o.Radius < r.Bottom() {
					o.Y = r.Top() - o.Radius
					o.VY = 0
					o.Resting = true
				}
			})
		}
	}

	// Drop orbs that sank far below the action.
	if o.Y > -g.Session.MaxAltitude+t.CullBelowPlayer {
		return false
	}
	if g.Abyss.Active() && o.Y > g.Abyss.Top+t.CullBelowHazard {
		return false
	}
	return true
}
