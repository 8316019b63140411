package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/biasbars/pkg/biasbars/internalerr"
)

// MinFields is the number of comma-separated fields a record needs:
// rating, gender code and the word list.
const MinFields = 3

var errStop = errors.New("iteration stopped")

// Record is one parsed review line.
type Record struct {
	Line   int // 1-based line in the source, header included
	Rating float64
	Gender string // verbatim code, validation happens in the index
	Words  []string
}

// ParseLine converts one data line into a Record.
// The line is split on every comma; fields past the third are ignored.
func ParseLine(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) < MinFields {
		return Record{}, fmt.Errorf("%w: expected at least %d fields, got %d",
			internalerr.ErrMalformedRecord, MinFields, len(fields))
	}

	raw := strings.TrimSpace(fields[0])
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: rating %q is not a number",
			internalerr.ErrMalformedRecord, raw)
	}

	return Record{
		Rating: rating,
		Gender: fields[1],
		Words:  strings.Fields(fields[2]),
	}, nil
}

// Reader yields records from a delimited source whose first line is a header.
// Lines have no length limit.
type Reader struct {
	source  string
	br      *bufio.Reader
	line    int
	started bool
}

// NewReader wraps r. source names the input in error messages and may be empty.
func NewReader(r io.Reader, source string) *Reader {
	return &Reader{source: source, br: bufio.NewReader(r)}
}

// readLine returns the next line without its terminator, or io.EOF.
// The line counter advances before any read error is returned.
func (r *Reader) readLine() (string, error) {
	text, err := r.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		r.line++
		return "", fmt.Errorf("%w: %v", internalerr.ErrFileAccess, err)
	}
	if err != nil && text == "" {
		return "", io.EOF
	}
	r.line++
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// Next returns the next record, or io.EOF once the input is exhausted.
// Whitespace-only lines are skipped.
func (r *Reader) Next() (Record, error) {
	if !r.started {
		r.started = true
		if _, err := r.readLine(); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, r.wrap(fmt.Errorf("%w: missing header line", internalerr.ErrMalformedRecord))
			}
			return Record{}, r.wrap(err)
		}
	}

	for {
		text, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		if err != nil {
			return Record{}, r.wrap(err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			return Record{}, r.wrap(err)
		}
		rec.Line = r.line
		return rec, nil
	}
}

// All adapts the reader to a sequence. Iteration stops after the first error.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

func (r *Reader) wrap(err error) error {
	return &internalerr.RecordError{Source: r.source, Line: r.line, Err: err}
}

// ReadFile opens path and calls fn for every record in it.
// The file is closed on every return path; the first error from parsing
// or from fn ends the read.
func ReadFile(path string, fn func(Record) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrFileAccess, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", internalerr.ErrFileAccess, path, cerr)
		}
	}()

	for rec, rerr := range NewReader(f, path).All() {
		if rerr != nil {
			return rerr
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// FileSeq exposes a file as a record sequence, opening it lazily on
// each iteration and closing it when iteration ends.
func FileSeq(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		err := ReadFile(path, func(rec Record) error {
			if !yield(rec, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield(Record{}, err)
		}
	}
}
