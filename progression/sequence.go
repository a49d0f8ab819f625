package progression

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind is the shape of a parsed sequence.
type Kind int

const (
	Itemized Kind = iota
	Arithmetic
	Geometric
)

var kindNames = map[Kind]string{
	Itemized:   "itemized",
	Arithmetic: "arithmetic",
	Geometric:  "geometric",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Bound is the value after the ellipsis. It may be infinite.
type Bound float64

func (b Bound) IsInf() bool {
	return math.IsInf(float64(b), 0)
}

func (b Bound) String() string {
	return FormatNumber(float64(b))
}

// MarshalJSON writes finite bounds as numbers and infinite ones as the
// strings "Inf" and "-Inf", which JSON numbers cannot express.
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.IsInf() {
		return json.Marshal(b.String())
	}
	return json.Marshal(float64(b))
}

// Sequence describes a parsed spec. It is never modified after Parse
// returns it.
type Sequence struct {
	Numbers     []float64 `json:"numbers"`
	HasEllipsis bool      `json:"has_ellipsis"`
	// LastNumber is only set when the ellipsis is followed by a bound.
	LastNumber *Bound `json:"last_number,omitempty"`
	Kind       Kind   `json:"type"`
	// Step is the common difference or ratio; nil for Itemized sequences.
	Step *float64 `json:"inc,omitempty"`
}

// Bounded reports whether generation stops at a bound. Itemized sequences
// are always bounded by their own numbers.
func (s *Sequence) Bounded() bool {
	return !s.HasEllipsis || s.LastNumber != nil
}

// Parse turns spec into a Sequence. Malformed input yields a *SyntaxError;
// numbers before an ellipsis that follow no pattern yield a
// *ClassificationError.
func Parse(spec string, opts ...Option) (*Sequence, error) {
	o := newOptions(opts)

	tokens, err := NewProgressionScanner().Scan(spec)
	if err != nil {
		return nil, err
	}
	result, err := NewProgressionParser(spec, tokens).spec()
	if err != nil {
		return nil, err
	}

	seq := &Sequence{
		Numbers:     result.numbers,
		HasEllipsis: result.hasEllipsis,
		LastNumber:  result.bound,
		Kind:        Itemized,
	}
	if !seq.HasEllipsis {
		return seq, nil
	}

	kind, step, err := classify(seq.Numbers, o.logger)
	if err != nil {
		return nil, err
	}
	seq.Kind = kind
	seq.Step = &step
	return seq, nil
}

// FormatNumber renders n the way it would be written in a spec.
func FormatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Inf"
	case math.IsInf(n, -1):
		return "-Inf"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
