package game

// Phase of a round. Transitions only go idle -> dropping -> rising; a reset
// brings the round back to idle.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDropping
	PhaseRising
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDropping:
		return "dropping"
	case PhaseRising:
		return "rising"
	}
	return "unknown"
}

type Fish struct {
	X, Y, VX float64
	Tier     Tier
	Caught   bool
}

// State is the whole round, owned by a single Loop.
type State struct {
	Tick  int
	Width float64
	Phase Phase
	Over  bool

	HookX, HookY float64
	TargetX      float64
	DeepestY     float64

	Score     int
	Collected []*Fish
	Fish      []*Fish
}

// Depth is the hook's distance below the water line.
func (s *State) Depth() float64 {
	return s.HookY - WaterTopY
}

func (s *State) centerX() float64 {
	return s.Width / 2
}
