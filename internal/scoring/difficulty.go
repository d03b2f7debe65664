package scoring

import (
	"math"
	"time"
)

// Fall-interval model:
//   - level baseLevel..topLevel: a power function with fixed power curvePower
//   - level < baseLevel or level > topLevel: constant
//
// The curve is fitted so the interval is maxDuration at baseLevel and
// minDuration at topLevel, which speeds the game up quickly at low levels
// and flattens out near the top.
const (
	baseLevel   = 0.0
	topLevel    = 10.0
	curvePower  = 0.7
	minDuration = 150.0 // milliseconds
	maxDuration = 600.0 // milliseconds
)

// FallInterval returns how long the active piece rests on each row at the
// given level.
func FallInterval(level int) time.Duration {
	l := float64(level)
	if l < baseLevel {
		return maxDuration * time.Millisecond
	}
	if l > topLevel {
		return minDuration * time.Millisecond
	}

	a := (maxDuration - minDuration) / (math.Pow(baseLevel, curvePower) - math.Pow(topLevel, curvePower))
	c := (maxDuration*math.Pow(topLevel, curvePower) - minDuration*math.Pow(baseLevel, curvePower)) /
		(math.Pow(topLevel, curvePower) - math.Pow(baseLevel, curvePower))
	millis := a*math.Pow(l, curvePower) + c
	return time.Duration(millis * float64(time.Millisecond))
}
