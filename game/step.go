package game

import "math"

// Step advances the round by dt nominal ticks and reports whether the round
// ended on this tick. A finished round keeps its fish swimming but the hook
// stays at the surface until the state is reset.
func Step(s *State, dt float64) bool {
	s.Tick++
	moveFish(s, dt)

	if s.Phase == PhaseDropping {
		s.HookY += FallSpeed * dt
		s.DeepestY = math.Max(s.DeepestY, s.HookY)
		easeHook(s, dt)
		if s.HookY >= WaterTopY+MaxDepth {
			s.HookY = WaterTopY + MaxDepth
			s.DeepestY = s.HookY
			s.Phase = PhaseRising
		}
	}

	// The turning tick also rises and checks for catches.
	if s.Phase == PhaseRising && !s.Over {
		s.HookY -= RiseSpeed * dt
		easeHook(s, dt)
		collect(s)
		if s.HookY <= WaterTopY {
			s.HookY = WaterTopY
			s.Over = true
			return true
		}
	}
	return false
}

func moveFish(s *State, dt float64) {
	lo, hi := FishEdgeMargin, s.Width-FishEdgeMargin
	for _, f := range s.Fish {
		if f.Caught {
			continue
		}
		f.X += f.VX * dt
		if f.X < lo {
			f.X = lo
			f.VX = -f.VX
		} else if f.X > hi {
			f.X = hi
			f.VX = -f.VX
		}
	}
}

// easeHook moves the hook toward the target by HookSmoothing per nominal tick.
func easeHook(s *State, dt float64) {
	k := 1 - math.Pow(1-HookSmoothing, dt)
	s.HookX += (s.TargetX - s.HookX) * k
}

func collect(s *State) {
	for _, f := range s.Fish {
		if f.Caught {
			continue
		}
		if math.Abs(f.X-s.HookX) < CatchRangeX && math.Abs(f.Y-s.HookY) < CatchRangeY {
			f.Caught = true
			s.Collected = append(s.Collected, f)
			s.Score += f.Tier.Value()
		}
	}
}
