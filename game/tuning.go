package game

import "time"

const (
	WaterTopY       = 80.0   // water line in world coordinates, y grows downward
	MaxDepth        = 2000.0 // fixed depth of the water column below the line
	FallSpeed       = 3.5
	RiseSpeed       = 1.75
	HookSmoothing   = 0.18 // per nominal tick
	HookEdgeMargin  = 20.0
	FishSpeedUnit   = 0.50 // 1x tier speed, world units per nominal tick
	FishCount       = 36
	FishEdgeMargin  = 30.0 // reflection bounds
	SpawnMargin     = 40.0
	SpawnMinDepth   = 40.0
	RarityTolerance = 0.1
	CatchRangeX     = 22.0
	CatchRangeY     = 14.0
	MinNameLength   = 2
	MaxNameLength   = 64 // runes, shared with the leaderboard service
	DefaultWidth    = 1000.0

	MaxFrame     = 33 * time.Millisecond
	NominalFrame = 16670 * time.Microsecond // ~60 Hz
)
