package wordstat

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		rating float64
		want   Tier
	}{
		{1.0, Low},
		{2.49, Low},
		{2.5, Mid},
		{3.0, Mid},
		{3.5, Mid},
		{3.51, High},
		{5.0, High},
		{-10, Low},
		{100, High},
		{math.NaN(), Mid},
	}

	for _, tt := range tests {
		if got := Classify(tt.rating); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestThresholdsClassify(t *testing.T) {
	th := Thresholds{LowBelow: 2, HighAbove: 4}

	if th.Classify(1.99) != Low {
		t.Error("1.99 should be low")
	}
	if th.Classify(2) != Mid || th.Classify(4) != Mid {
		t.Error("Boundaries should be mid")
	}
	if th.Classify(4.01) != High {
		t.Error("4.01 should be high")
	}
}

func TestTierString(t *testing.T) {
	if Low.String() != "low" || Mid.String() != "mid" || High.String() != "high" {
		t.Error("Unexpected tier names")
	}
	if Tier(7).String() != "tier(7)" {
		t.Errorf("Unexpected name for unknown tier: %s", Tier(7))
	}
}

func TestCounts(t *testing.T) {
	a := Counts{1, 2, 3}
	b := Counts{0, 1, 0}

	if a.Total() != 6 {
		t.Errorf("Expected total 6, got %d", a.Total())
	}
	if sum := a.Add(b); sum != (Counts{1, 3, 3}) {
		t.Errorf("Unexpected sum %v", sum)
	}
	if a != (Counts{1, 2, 3}) {
		t.Error("Add should not modify the receiver")
	}
	if a.String() != "[1, 2, 3]" {
		t.Errorf("Unexpected format %q", a.String())
	}
}
