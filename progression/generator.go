package progression

import "iter"

type generatorState int

const (
	stateReplaying generatorState = iota
	stateProgressing
	stateExhausted
)

// Generator yields the values of a Sequence one at a time: first the
// explicit numbers, then, after an ellipsis, the continued progression.
// A Generator must not be shared between goroutines.
type Generator struct {
	seq     *Sequence
	state   generatorState
	index   int
	current float64
}

func NewGenerator(seq *Sequence) *Generator {
	return &Generator{
		seq:   seq,
		state: stateReplaying,
	}
}

// Next returns the next value. Once the sequence is over it returns
// false, on this and every later call. Without a bound it never does.
func (g *Generator) Next() (float64, bool) {
	switch g.state {
	case stateReplaying:
		if g.index < len(g.seq.Numbers) {
			val := g.seq.Numbers[g.index]
			g.index++
			return val, true
		}
		if !g.seq.HasEllipsis || g.seq.Step == nil {
			g.state = stateExhausted
			return 0, false
		}
		g.state = stateProgressing
		g.current = g.seq.Numbers[len(g.seq.Numbers)-1]
		return g.progress()
	case stateProgressing:
		return g.progress()
	}
	return 0, false
}

func (g *Generator) progress() (float64, bool) {
	step := *g.seq.Step
	if g.seq.Kind == Geometric {
		g.current = g.current * step
	} else {
		g.current = g.current + step
	}

	if g.seq.LastNumber == nil {
		return g.current, true
	}
	if g.exceeds(g.current, float64(*g.seq.LastNumber)) {
		g.state = stateExhausted
		return 0, false
	}
	return g.current, true
}

// exceeds reports whether val lies past bound in the direction the
// progression is moving.
func (g *Generator) exceeds(val, bound float64) bool {
	step := *g.seq.Step
	pivot := 0.0
	if g.seq.Kind == Geometric {
		pivot = 1
	}
	if step >= pivot {
		return val > bound
	}
	return val < bound
}

// Exhausted reports whether Next will only return false from now on.
func (g *Generator) Exhausted() bool {
	return g.state == stateExhausted
}

// All returns the remaining values as an iterator. Ranging over an
// unbounded sequence only ends when the loop breaks.
func (g *Generator) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			val, ok := g.Next()
			if !ok || !yield(val) {
				return
			}
		}
	}
}

// Iterate parses spec and returns a function yielding its values, with the
// same contract as Generator.Next. Parse errors are returned as is.
func Iterate(spec string, opts ...Option) (func() (float64, bool), error) {
	seq, err := Parse(spec, opts...)
	if err != nil {
		return nil, err
	}
	return NewGenerator(seq).Next, nil
}

// Take pulls at most n values from next.
func Take(next func() (float64, bool), n int) []float64 {
	if n <= 0 {
		return nil
	}
	values := make([]float64, 0, min(n, 1024))
	for len(values) < n {
		val, ok := next()
		if !ok {
			break
		}
		values = append(values, val)
	}
	return values
}
