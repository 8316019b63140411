package wordstat

import (
	"fmt"
	"sort"
	"strings"
)

// Gender is the code labelling a review author's gender.
type Gender string

const (
	Women Gender = "W"
	Men   Gender = "M"
)

// GenderSet is a sorted set of gender codes.
type GenderSet []Gender

// DefaultGenders holds the two recognized codes.
var DefaultGenders = NewGenderSet(Women, Men)

// NewGenderSet builds a sorted, de-duplicated set.
func NewGenderSet(codes ...Gender) GenderSet {
	seen := make(map[Gender]struct{}, len(codes))
	set := make(GenderSet, 0, len(codes))
	for _, g := range codes {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		set = append(set, g)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Contains reports whether g is in the set.
func (s GenderSet) Contains(g Gender) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= g })
	return i < len(s) && s[i] == g
}

// With returns a copy of the set that also contains g.
func (s GenderSet) With(g Gender) GenderSet {
	if s.Contains(g) {
		return s
	}
	out := make(GenderSet, len(s), len(s)+1)
	copy(out, s)
	return NewGenderSet(append(out, g)...)
}

func (s GenderSet) String() string {
	parts := make([]string, len(s))
	for i, g := range s {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}

// GenderPolicy decides what happens to codes outside the recognized set.
type GenderPolicy int

const (
	// Strict rejects unknown codes with ErrUnrecognizedGender.
	Strict GenderPolicy = iota
	// Open accepts unknown codes as their own bucket.
	Open
)

// ParseGenderPolicy accepts "strict" or "open".
func ParseGenderPolicy(s string) (GenderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "open":
		return Open, nil
	default:
		return Strict, fmt.Errorf("unknown gender policy %q", s)
	}
}

func (p GenderPolicy) String() string {
	if p == Open {
		return "open"
	}
	return "strict"
}
