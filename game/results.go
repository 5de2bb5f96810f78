package game

// Catch is one line of the round summary: Count fish of Tier worth Value each.
type Catch struct {
	Tier  Tier
	Count int
	Value int
	Total int
}

type Results struct {
	Player   string
	Score    int
	TopScore int
	NewTop   bool
	Catches  []Catch
}

// Breakdown groups collected fish by tier, in tier order, skipping empty tiers.
func Breakdown(collected []*Fish) []Catch {
	var counts [len(Tiers)]int
	for _, f := range collected {
		if int(f.Tier) < len(counts) {
			counts[f.Tier]++
		}
	}

	var out []Catch
	for i, n := range counts {
		if n == 0 {
			continue
		}
		t := Tier(i)
		out = append(out, Catch{Tier: t, Count: n, Value: t.Value(), Total: n * t.Value()})
	}
	return out
}
