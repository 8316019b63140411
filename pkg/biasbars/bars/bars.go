package bars

import (
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/biasbars/pkg/biasbars/wordstat"
)

// DefaultWidth is the character width of a full bar.
const DefaultWidth = 40

// Proportions holds, per gender, the share of occurrences in each tier.
// Each gender's shares sum to 1, or are all zero when the gender never
// used the searched words.
type Proportions struct {
	Words   []string
	Genders wordstat.GenderSet
	Totals  map[wordstat.Gender]int64
	shares  map[wordstat.Gender][wordstat.NumTiers]float64
}

// Bar is one gender/tier cell of the chart.
type Bar struct {
	Gender wordstat.Gender
	Tier   wordstat.Tier
	Share  float64
}

// Compute sums the counts of words per gender and normalizes each gender
// against its own total. Words missing from the index are ignored.
func Compute(idx *wordstat.Index, words []string) Proportions {
	genders := idx.Genders()
	sums := make(map[wordstat.Gender]wordstat.Counts, len(genders))
	for _, w := range words {
		entry, ok := idx.Lookup(w)
		if !ok {
			continue
		}
		for g, c := range entry {
			sums[g] = sums[g].Add(c)
		}
	}

	p := Proportions{
		Words:   words,
		Genders: genders,
		Totals:  make(map[wordstat.Gender]int64, len(genders)),
		shares:  make(map[wordstat.Gender][wordstat.NumTiers]float64, len(genders)),
	}
	for _, g := range genders {
		counts := sums[g]
		total := counts.Total()
		p.Totals[g] = total

		var share [wordstat.NumTiers]float64
		if total > 0 {
			for i, n := range counts {
				share[i] = float64(n) / float64(total)
			}
		}
		p.shares[g] = share
	}
	return p
}

// Get returns the share of gender's occurrences that fell in tier.
func (p Proportions) Get(g wordstat.Gender, t wordstat.Tier) float64 {
	return p.shares[g][t]
}

// Rows lists every bar ordered by gender label, then tier.
func (p Proportions) Rows() []Bar {
	rows := make([]Bar, 0, len(p.Genders)*wordstat.NumTiers)
	for _, g := range p.Genders {
		for _, t := range wordstat.Tiers {
			rows = append(rows, Bar{Gender: g, Tier: t, Share: p.shares[g][t]})
		}
	}
	return rows
}

// Render draws one text bar per gender/tier, scaled so a share of 1 fills
// width characters.
func Render(w io.Writer, p Proportions, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	for _, bar := range p.Rows() {
		n := int(bar.Share*float64(width) + 0.5)
		line := fmt.Sprintf("%-2s %-4s |%-*s| %5.1f%% (n=%d)\n",
			bar.Gender, bar.Tier, width, strings.Repeat("#", n), bar.Share*100, p.Totals[bar.Gender])
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
