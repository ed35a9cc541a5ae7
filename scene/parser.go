package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gpu-raytracer/math"
)

var (
	// ErrTruncatedRecord means the file ended before a marker's data lines did.
	ErrTruncatedRecord = errors.New("truncated record")
	// ErrMissingComponent means a data line had fewer than three numbers.
	ErrMissingComponent = errors.New("missing vector component")
	// ErrInvalidNumber means a data line token is not a number.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError locates a malformed record in a scene file.
type ParseError struct {
	Kind   Kind
	Record int // index of the record among records of the same kind
	Field  int // vector within the record, -1 when the record is truncated
	Line   int // 1-based source line
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("%s %d (line %d): %v", e.Kind, e.Record, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %d %s (line %d): %v", e.Kind, e.Record, e.Kind.Field(e.Field), e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type sourceLine struct {
	num  int
	text string
}

// splitLines drops blank lines; they never count as data lines.
func splitLines(text string) []sourceLine {
	var out []sourceLine
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, sourceLine{num: i + 1, text: l})
	}
	return out
}

// Parse reads a scene description. A line whose first character is a kind
// marker (t, s, p or l) consumes the next Kind.Width() lines as the vectors of
// one record; every other line is ignored. Parsing is all-or-nothing: on error
// no scene is returned.
func Parse(text string) (*Scene, error) {
	lines := splitLines(text)
	s := New()

	for i := 0; i < len(lines); i++ {
		k, ok := KindForMarker(lines[i].text[0])
		if !ok {
			continue
		}
		record := s.Records(k)
		width := k.Width()
		if i+width >= len(lines) {
			return nil, &ParseError{Kind: k, Record: record, Field: -1, Line: lines[i].num, Err: ErrTruncatedRecord}
		}
		for f := 0; f < width; f++ {
			line := lines[i+1+f]
			v, err := parseVector(line.text)
			if err != nil {
				return nil, &ParseError{Kind: k, Record: record, Field: f, Line: line.num, Err: err}
			}
			s.vectors[k] = append(s.vectors[k], v)
		}
		i += width
	}
	return s, nil
}

// parseVector reads the first three numbers of a data line. Further tokens
// are ignored.
func parseVector(line string) (math.Vec3, error) {
	var c [3]float32
	toks := tokenize(line)
	for n := range c {
		tok, ok, err := toks.next()
		if err != nil {
			return math.Vec3{}, fmt.Errorf("tokenize: %w", err)
		}
		if !ok {
			return math.Vec3{}, fmt.Errorf("%w: got %d of 3", ErrMissingComponent, n)
		}
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("%w: %q: %w", ErrInvalidNumber, tok, err)
		}
		c[n] = float32(f)
	}
	return math.Vec3FromArray(c), nil
}
