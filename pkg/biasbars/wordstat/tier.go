package wordstat

import "fmt"

// Tier is the discretization bucket for a rating.
type Tier int

const (
	Low Tier = iota
	Mid
	High
)

// NumTiers is the length of every count vector.
const NumTiers = 3

// Tiers lists every tier in index order.
var Tiers = [NumTiers]Tier{Low, Mid, High}

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Mid:
		return "mid"
	case High:
		return "high"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Thresholds holds the rating cut points. Ratings strictly below LowBelow
// are Low, strictly above HighAbove are High, everything else is Mid.
type Thresholds struct {
	LowBelow  float64
	HighAbove float64
}

// DefaultThresholds are the 2.5 / 3.5 cut points of a five-star scale.
var DefaultThresholds = Thresholds{LowBelow: 2.5, HighAbove: 3.5}

// Classify maps a rating to its tier. Both boundaries resolve to Mid.
func (th Thresholds) Classify(rating float64) Tier {
	if rating > th.HighAbove {
		return High
	}
	if rating < th.LowBelow {
		return Low
	}
	return Mid
}

// Classify uses DefaultThresholds.
func Classify(rating float64) Tier {
	return DefaultThresholds.Classify(rating)
}

// Counts is a per-tier occurrence vector.
type Counts [NumTiers]int64

// Total sums all tiers.
func (c Counts) Total() int64 {
	var sum int64
	for _, n := range c {
		sum += n
	}
	return sum
}

// Add returns the element-wise sum.
func (c Counts) Add(o Counts) Counts {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

// String formats the vector as "[low, mid, high]".
func (c Counts) String() string {
	return fmt.Sprintf("[%d, %d, %d]", c[Low], c[Mid], c[High])
}
