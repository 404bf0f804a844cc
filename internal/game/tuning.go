package game

import "time"

// Tuning centralizes all tunable gameplay parameters. Distances are in world
// units ("pixels"); y grows downward, so upward velocities are negative.
//
// The tolerance bands that separate a hit-from-below from a crush are tuned
// empirically and exposed here so different player/block size ratios can be
// validated against the scenario tests instead of hard-coding them.
type Tuning struct {
	// World
	WorldWidth   float64 // Playfield width; side walls sit at 0 and WorldWidth
	FloorY       float64 // Ground level (altitude 0)
	GoalAltitude float64 // Altitude that triggers the win

	// Player
	PlayerWidth      float64
	PlayerHeight     float64
	Gravity          float64 // Downward acceleration, units/s²
	MoveSpeed        float64 // Horizontal speed at full axis deflection
	JumpVelocity     float64 // Upward impulse (negative)
	JumpCooldown     time.Duration
	WallJumpVX       float64 // Horizontal impulse away from the wall
	WallSlideMaxFall float64 // Fall speed cap while wall-sliding
	DashVX           float64 // Air-dodge horizontal impulse
	DashFallCap      float64 // Air-dodge slows the fall to at most this speed
	DashDrag         float64 // Per-second decay factor of the dash impulse
	MaxFallSpeed     float64
	MaxCharges       int

	// Near-miss boost: temporary jump multiplier granted by narrowly avoiding
	// a falling block. Present but disabled in the current build.
	NearMissEnabled  bool
	NearMissDistance float64
	BoostMultiplier  float64
	BoostDuration    time.Duration

	// Blocks
	BlockFallSpeed   float64
	BlockWidth       float64
	BlockHeight      float64
	BurdenThreshold  int // Hits to destroy a pre-goal ("burden") block
	VirtueThreshold  int // Hits to destroy a post-goal ("virtue") block
	HitCooldown      time.Duration
	HitBandAbove     float64 // Band above the block's bottom edge counting as a hit
	HitBandBelow     float64 // Band below the block's bottom edge counting as a hit
	HitMaxFallSpeed  float64 // Player must not be falling faster than this to hit
	HitRebound       float64 // Upward rebound on a non-fatal hit (negative)
	CrushTolerance   float64 // Block bottom within this of the player's top crushes
	LandBand         float64 // Feet-to-surface snap distance when landing
	CullBelowPlayer  float64 // Blocks this far below the player are dropped
	CullBelowHazard  float64 // Blocks this far below the hazard top are dropped

	// Orbs
	OrbFallSpeed     float64 // Slightly slower than blocks
	OrbRadius        float64
	OrbCollectRadius float64

	// Hazard boundary
	AbyssStartDelay time.Duration
	AbyssStartBelow float64 // Initial distance of the lava top below the floor
	AbyssBaseRise   float64 // Units/s once active
	AbyssRiseAccel  float64 // Units/s² added to the rise speed over time

	// Spawner
	SpawnStartDelay  time.Duration
	SpawnAhead       float64 // Blocks appear this far above the highest point
	WaveMargin       float64 // Wave fires when spawn elevation lags by more than this
	WaveOrbChance    float64
	SpawnTimerBase   time.Duration
	SpawnTimerJitter time.Duration // Uniform jitter re-rolled after each fire
	PlaceRetries     int
	PlacePadding     float64
	SpawnSideMargin  float64
}

// DefaultTuning returns the tuning used by the shipped game.
func DefaultTuning() Tuning {
	return Tuning{
		WorldWidth:   180,
		FloorY:       0,
		GoalAltitude: 10000,

		PlayerWidth:      10,
		PlayerHeight:     14,
		Gravity:          2000,
		MoveSpeed:        260,
		JumpVelocity:     -760,
		JumpCooldown:     150 * time.Millisecond,
		WallJumpVX:       340,
		WallSlideMaxFall: 140,
		DashVX:           480,
		DashFallCap:      80,
		DashDrag:         0.02,
		MaxFallSpeed:     900,
		MaxCharges:       3,

		NearMissEnabled:  false,
		NearMissDistance: 20,
		BoostMultiplier:  1.35,
		BoostDuration:    4 * time.Second,

		BlockFallSpeed:  120,
		BlockWidth:      34,
		BlockHeight:     18,
		BurdenThreshold: 3,
		VirtueThreshold: 5,
		HitCooldown:     200 * time.Millisecond,
		HitBandAbove:    10,
		HitBandBelow:    30,
		HitMaxFallSpeed: 50,
		HitRebound:      -120,
		CrushTolerance:  20,
		LandBand:        12,
		CullBelowPlayer: 1200,
		CullBelowHazard: 200,

		OrbFallSpeed:     90,
		OrbRadius:        5,
		OrbCollectRadius: 18,

		AbyssStartDelay: 8 * time.Second,
		AbyssStartBelow: 120,
		AbyssBaseRise:   26,
		AbyssRiseAccel:  0.9,

		SpawnStartDelay:  1500 * time.Millisecond,
		SpawnAhead:       160,
		WaveMargin:       90,
		WaveOrbChance:    0.25,
		SpawnTimerBase:   2500 * time.Millisecond,
		SpawnTimerJitter: 1800 * time.Millisecond,
		PlaceRetries:     5,
		PlacePadding:     8,
		SpawnSideMargin:  24,
	}
}
