package scoring

import (
	"testing"
	"time"
)

func TestFallInterval_Endpoints(t *testing.T) {
	// The fit pins the curve to the endpoints; allow a millisecond of
	// floating-point slack.
	if d := FallInterval(0); !within(d, 600*time.Millisecond, time.Millisecond) {
		t.Errorf("FallInterval(0) = %v, expected ~600ms", d)
	}
	if d := FallInterval(10); !within(d, 150*time.Millisecond, time.Millisecond) {
		t.Errorf("FallInterval(10) = %v, expected ~150ms", d)
	}
}

func TestFallInterval_ClampsOutsideRange(t *testing.T) {
	for _, level := range []int{-1, -10} {
		if d := FallInterval(level); d != 600*time.Millisecond {
			t.Errorf("FallInterval(%d) = %v, expected 600ms", level, d)
		}
	}
	for _, level := range []int{11, 50} {
		if d := FallInterval(level); d != 150*time.Millisecond {
			t.Errorf("FallInterval(%d) = %v, expected 150ms", level, d)
		}
	}
}

func TestFallInterval_NonIncreasing(t *testing.T) {
	prev := FallInterval(-2)
	for level := -1; level <= 12; level++ {
		cur := FallInterval(level)
		if cur > prev {
			t.Errorf("FallInterval(%d) = %v exceeds FallInterval(%d) = %v", level, cur, level-1, prev)
		}
		prev = cur
	}
}

func TestFallInterval_DiminishingSteps(t *testing.T) {
	// The power curve drops fastest at low levels.
	firstStep := FallInterval(0) - FallInterval(1)
	lastStep := FallInterval(9) - FallInterval(10)
	if firstStep <= lastStep {
		t.Errorf("expected the level 0→1 step (%v) to exceed the 9→10 step (%v)", firstStep, lastStep)
	}
}

func within(got, want, tol time.Duration) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}
