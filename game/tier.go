package game

type Tier uint8

const (
	TierWhite Tier = iota
	TierBlue
	TierRed
	TierGolden
)

type TierInfo struct {
	Key             string
	Name            string
	Value           int
	SpeedMultiplier float64
	RarityDepth     float64 // minimum normalised depth, see RarityTolerance
}

// Tiers is indexed by Tier, shallowest first.
var Tiers = [...]TierInfo{
	TierWhite:  {Key: "white", Name: "White", Value: 5, SpeedMultiplier: 1.0, RarityDepth: 0.00},
	TierBlue:   {Key: "blue", Name: "Blue", Value: 15, SpeedMultiplier: 1.5, RarityDepth: 0.40},
	TierRed:    {Key: "red", Name: "Red", Value: 25, SpeedMultiplier: 2.0, RarityDepth: 0.65},
	TierGolden: {Key: "golden", Name: "Golden", Value: 50, SpeedMultiplier: 3.0, RarityDepth: 0.85},
}

func (t Tier) Info() TierInfo {
	if int(t) >= len(Tiers) {
		return Tiers[TierWhite]
	}
	return Tiers[t]
}

func (t Tier) String() string { return t.Info().Key }

func (t Tier) Value() int { return t.Info().Value }

// Speed is the tier's unsigned horizontal speed per nominal tick.
func (t Tier) Speed() float64 {
	return FishSpeedUnit * t.Info().SpeedMultiplier
}

// EligibleTiers lists the tiers that may spawn at normalised depth t.
func EligibleTiers(t float64) []Tier {
	var out []Tier
	for i, info := range Tiers {
		if t >= info.RarityDepth-RarityTolerance {
			out = append(out, Tier(i))
		}
	}
	return out
}
