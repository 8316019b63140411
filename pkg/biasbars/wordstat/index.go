package wordstat

import (
	"crypto/rand"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/biasbars/pkg/biasbars/internalerr"
	"github.com/cognicore/biasbars/pkg/biasbars/record"
)

// Entry holds one count vector per gender for a single word.
type Entry map[Gender]Counts

// Row is one (word, gender, counts) triple from Dump.
type Row struct {
	Word   string
	Gender Gender
	Counts Counts
}

// Stats summarizes an ingestion pass.
type Stats struct {
	Records int64 // data lines consumed
	Tokens  int64 // words accumulated
	Words   int   // distinct words
}

// Index maps words to per-gender tier counts.
// It is filled once by Ingest and read-only afterwards; it is not safe
// for concurrent mutation.
type Index struct {
	genders    GenderSet
	base       GenderSet
	policy     GenderPolicy
	thresholds Thresholds
	logger     *slog.Logger

	entries map[string]map[Gender]*Counts
	records int64
	tokens  int64
	sealed  bool
	runID   string
	entropy *ulid.MonotonicEntropy
}

// Option configures an Index.
type Option func(*Index)

// WithGenders replaces the recognized gender set.
func WithGenders(set GenderSet) Option {
	return func(idx *Index) {
		if len(set) > 0 {
			idx.genders = NewGenderSet(set...)
		}
	}
}

// WithPolicy sets how unrecognized gender codes are handled.
func WithPolicy(p GenderPolicy) Option {
	return func(idx *Index) { idx.policy = p }
}

// WithThresholds overrides the tier cut points.
func WithThresholds(th Thresholds) Option {
	return func(idx *Index) { idx.thresholds = th }
}

// WithLogger sets the logger used during ingestion.
func WithLogger(l *slog.Logger) Option {
	return func(idx *Index) {
		if l != nil {
			idx.logger = l
		}
	}
}

// New creates an empty index.
func New(opts ...Option) *Index {
	idx := &Index{
		genders:    DefaultGenders,
		policy:     Strict,
		thresholds: DefaultThresholds,
		logger:     slog.Default(),
		entries:    make(map[string]map[Gender]*Counts),
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(idx)
	}
	idx.base = idx.genders
	return idx
}

// newEntry is the factory for a word seen for the first time: a zero
// vector for every gender currently in the set.
func (idx *Index) newEntry() map[Gender]*Counts {
	e := make(map[Gender]*Counts, len(idx.genders))
	for _, g := range idx.genders {
		e[g] = &Counts{}
	}
	return e
}

// Accumulate records one occurrence of word under gender and rating.
func (idx *Index) Accumulate(word string, gender Gender, rating float64) error {
	if idx.sealed {
		return internalerr.ErrSealed
	}
	if !idx.genders.Contains(gender) {
		if idx.policy != Open {
			return fmt.Errorf("%w: %q (want one of %s)", internalerr.ErrUnrecognizedGender, string(gender), idx.genders)
		}
		idx.addGender(gender)
	}

	e, ok := idx.entries[word]
	if !ok {
		e = idx.newEntry()
		idx.entries[word] = e
	}
	e[gender][idx.thresholds.Classify(rating)]++
	idx.tokens++
	return nil
}

// addGender extends the set and back-fills a zero vector into every
// existing entry so no entry is ever missing a gender.
func (idx *Index) addGender(g Gender) {
	idx.genders = idx.genders.With(g)
	for _, e := range idx.entries {
		e[g] = &Counts{}
	}
	idx.logger.Debug("accepted new gender code", "gender", string(g))
}

// Ingest consumes records and accumulates every word of every record.
// The first error aborts the pass and leaves the index empty; a
// successful pass seals the index.
func (idx *Index) Ingest(records iter.Seq2[record.Record, error]) error {
	if idx.sealed {
		return internalerr.ErrSealed
	}

	idx.runID = ulid.MustNew(ulid.Now(), idx.entropy).String()
	log := idx.logger.With("run_id", idx.runID)
	start := time.Now()
	log.Info("ingestion started")

	for rec, err := range records {
		if err != nil {
			idx.reset()
			log.Debug("ingestion aborted", "error", err)
			return err
		}
		gender := Gender(rec.Gender)
		for _, word := range rec.Words {
			if err := idx.Accumulate(word, gender, rec.Rating); err != nil {
				err = &internalerr.RecordError{Line: rec.Line, Err: err}
				idx.reset()
				log.Debug("ingestion aborted", "error", err)
				return err
			}
		}
		idx.records++
	}

	idx.sealed = true
	log.Info("ingestion finished",
		"records", idx.records,
		"tokens", idx.tokens,
		"words", len(idx.entries),
		"elapsed", time.Since(start))
	return nil
}

// IngestFile ingests the delimited file at path.
func (idx *Index) IngestFile(path string) error {
	err := idx.Ingest(record.FileSeq(path))
	if err == nil {
		return nil
	}
	// Attach the file name to errors raised by the index itself.
	var re *internalerr.RecordError
	if errors.As(err, &re) && re.Source == "" {
		re.Source = path
	}
	return err
}

func (idx *Index) reset() {
	idx.genders = idx.base
	idx.entries = make(map[string]map[Gender]*Counts)
	idx.records = 0
	idx.tokens = 0
}

// Search returns every word whose lower-cased form contains the
// lower-cased target, sorted. An empty target matches everything.
func (idx *Index) Search(target string) []string {
	lower := cases.Lower(language.Und)
	needle := lower.String(target)

	matches := make([]string, 0)
	for word := range idx.entries {
		if strings.Contains(lower.String(word), needle) {
			matches = append(matches, word)
		}
	}
	sort.Strings(matches)
	return matches
}

// Dump yields every (word, gender, counts) triple, sorted by word then
// gender label. Each iteration takes a fresh snapshot of the keys, so the
// sequence can be ranged over more than once.
func (idx *Index) Dump() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, word := range idx.Words() {
			e := idx.entries[word]
			for _, g := range idx.genders {
				if !yield(Row{Word: word, Gender: g, Counts: *e[g]}) {
					return
				}
			}
		}
	}
}

// Lookup returns a copy of the entry for word.
func (idx *Index) Lookup(word string) (Entry, bool) {
	e, ok := idx.entries[word]
	if !ok {
		return nil, false
	}
	out := make(Entry, len(e))
	for g, c := range e {
		out[g] = *c
	}
	return out, true
}

// Words returns every indexed word, sorted.
func (idx *Index) Words() []string {
	words := make([]string, 0, len(idx.entries))
	for w := range idx.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of distinct words.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Genders returns the gender codes every entry carries.
func (idx *Index) Genders() GenderSet {
	out := make(GenderSet, len(idx.genders))
	copy(out, idx.genders)
	return out
}

// Sealed reports whether a successful ingestion pass has completed.
func (idx *Index) Sealed() bool {
	return idx.sealed
}

// RunID identifies the last ingestion pass. Empty before Ingest.
func (idx *Index) RunID() string {
	return idx.runID
}

// Stats returns ingestion counters.
func (idx *Index) Stats() Stats {
	return Stats{
		Records: idx.records,
		Tokens:  idx.tokens,
		Words:   len(idx.entries),
	}
}
