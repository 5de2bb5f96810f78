package game

import "math/rand"

// Reset puts s back to an idle round over a fresh fish population.
func Reset(s *State, width float64, rng *rand.Rand) {
	*s = State{
		Width:    width,
		Phase:    PhaseIdle,
		HookY:    WaterTopY,
		DeepestY: WaterTopY,
	}
	s.HookX = s.centerX()
	s.TargetX = s.HookX
	s.Fish = Spawn(width, rng)
}

// Spawn scatters FishCount fish over the field. Deeper fish draw from a
// wider set of tiers, so rare tiers only show up far below the surface.
func Spawn(width float64, rng *rand.Rand) []*Fish {
	fish := make([]*Fish, 0, FishCount)
	for i := 0; i < FishCount; i++ {
		y := randRange(rng, WaterTopY+SpawnMinDepth, WaterTopY+MaxDepth)
		tier := pickTier(rng, (y-WaterTopY)/MaxDepth)
		vx := tier.Speed()
		if rng.Float64() < 0.5 {
			vx = -vx
		}
		fish = append(fish, &Fish{
			X:    randRange(rng, SpawnMargin, width-SpawnMargin),
			Y:    y,
			VX:   vx,
			Tier: tier,
		})
	}
	return fish
}

func pickTier(rng *rand.Rand, depthRatio float64) Tier {
	candidates := EligibleTiers(depthRatio)
	if len(candidates) == 0 {
		return TierWhite
	}
	return candidates[rng.Intn(len(candidates))]
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
