// Package loop runs the terminal presentation of Rocket to Heaven: a fixed
// frame cycle of input → game advance → draw, with menu, pause, death and
// victory screens around the gameplay core.
package loop

import "time"

// Frame timing.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Logical view resolution. Width matches the game world so the full playfield
// is always visible horizontally; height is in sub-pixels (2 per row).
const (
	ViewWidth  = 180
	ViewHeight = 120
)

// CameraAnchor places the player this fraction of the view height from the
// top while climbing.
const CameraAnchor = 0.62

// Maximum terminal cells the canvas will use; larger terminals get a
// centered play area.
const (
	MaxRenderCols = 180
	MaxRenderRows = 60
)
