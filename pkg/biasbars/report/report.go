package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/biasbars/pkg/biasbars/bars"
	"github.com/cognicore/biasbars/pkg/biasbars/wordstat"
)

// Format selects how results are written.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// WordCounts is one word with its per-gender vectors.
type WordCounts struct {
	Word   string                     `json:"word" yaml:"word"`
	Counts map[string]wordstat.Counts `json:"counts" yaml:"counts"`
}

// Dump is the structured form of a full index dump.
type Dump struct {
	RunID   string       `json:"run_id" yaml:"run_id"`
	Source  string       `json:"source,omitempty" yaml:"source,omitempty"`
	Records int64        `json:"records" yaml:"records"`
	Tokens  int64        `json:"tokens" yaml:"tokens"`
	Words   []WordCounts `json:"words" yaml:"words"`
}

// Share is one bar of a search result.
type Share struct {
	Gender string  `json:"gender" yaml:"gender"`
	Tier   string  `json:"tier" yaml:"tier"`
	Share  float64 `json:"share" yaml:"share"`
}

// Search is the structured form of a search result.
type Search struct {
	RunID   string   `json:"run_id" yaml:"run_id"`
	Query   string   `json:"query" yaml:"query"`
	Matches []string `json:"matches" yaml:"matches"`
	Bars    []Share  `json:"bars,omitempty" yaml:"bars,omitempty"`
}

// group folds consecutive Dump rows into per-word records.
func group(idx *wordstat.Index, fn func(WordCounts) error) error {
	var cur *WordCounts
	for row := range idx.Dump() {
		if cur != nil && cur.Word != row.Word {
			if err := fn(*cur); err != nil {
				return err
			}
			cur = nil
		}
		if cur == nil {
			cur = &WordCounts{Word: row.Word, Counts: make(map[string]wordstat.Counts)}
		}
		cur.Counts[string(row.Gender)] = row.Counts
	}
	if cur != nil {
		return fn(*cur)
	}
	return nil
}

// WriteDump writes every word in the index. The text form is one line
// per word: "word M [0, 0, 1] W [2, 0, 0]".
func WriteDump(w io.Writer, idx *wordstat.Index, source string, format Format) error {
	if format == Text || format == "" {
		genders := idx.Genders()
		return group(idx, func(wc WordCounts) error {
			var b strings.Builder
			b.WriteString(wc.Word)
			for _, g := range genders {
				fmt.Fprintf(&b, " %s %s", g, wc.Counts[string(g)])
			}
			b.WriteByte('\n')
			_, err := io.WriteString(w, b.String())
			return err
		})
	}

	stats := idx.Stats()
	out := Dump{
		RunID:   idx.RunID(),
		Source:  source,
		Records: stats.Records,
		Tokens:  stats.Tokens,
		Words:   make([]WordCounts, 0, stats.Words),
	}
	if err := group(idx, func(wc WordCounts) error {
		out.Words = append(out.Words, wc)
		return nil
	}); err != nil {
		return err
	}
	return encode(w, out, format)
}

// WriteSearch writes the words matching query, one per line in text form.
// With withBars set, the text form draws the proportion chart instead.
func WriteSearch(w io.Writer, idx *wordstat.Index, query string, withBars bool, format Format) error {
	matches := idx.Search(query)

	if format == Text || format == "" {
		if withBars {
			return bars.Render(w, bars.Compute(idx, matches), bars.DefaultWidth)
		}
		for _, m := range matches {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return err
			}
		}
		return nil
	}

	out := Search{RunID: idx.RunID(), Query: query, Matches: matches}
	if withBars {
		for _, bar := range bars.Compute(idx, matches).Rows() {
			out.Bars = append(out.Bars, Share{
				Gender: string(bar.Gender),
				Tier:   bar.Tier.String(),
				Share:  bar.Share,
			})
		}
	}
	return encode(w, out, format)
}

func encode(w io.Writer, v any, format Format) error {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case YAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
