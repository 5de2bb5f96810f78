package game

import "time"

// FrameDelta turns the wall-clock gap between two frames into nominal 60 Hz
// ticks. Gaps longer than MaxFrame are clamped so a hitch never teleports the
// hook or the fish.
func FrameDelta(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxFrame {
		elapsed = MaxFrame
	}
	return float64(elapsed) / float64(NominalFrame)
}
