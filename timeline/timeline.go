// Package timeline turns generated sequence values into timestamped
// samples, either backdated in one batch or stamped as they are pulled.
package timeline

import (
	"errors"
	"time"

	"seqgen/progression"
)

// DefaultLimit caps how many samples a backfill produces.
const DefaultLimit = 10000

type Sample struct {
	Value     float64
	Timestamp int64
}

type Option func(*config)

type config struct {
	limit     int
	transform *Transform
}

func WithLimit(limit int) Option {
	return func(c *config) {
		c.limit = limit
	}
}

func WithTransform(t *Transform) Option {
	return func(c *config) {
		c.transform = t
	}
}

func newConfig(opts []Option) *config {
	c := &config{limit: DefaultLimit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Backfill pulls up to the configured limit of values from seq and spaces
// them interval apart so that the last one lands one interval before now.
// Truncated is true when seq had more values than the limit allowed.
func Backfill(seq *progression.Sequence, interval time.Duration, now time.Time, opts ...Option) (samples []Sample, truncated bool, err error) {
	if interval <= 0 {
		return nil, false, errors.New("interval must be positive")
	}
	c := newConfig(opts)
	gen := progression.NewGenerator(seq)

	values := progression.Take(gen.Next, c.limit)
	if len(values) == c.limit {
		_, more := gen.Next()
		truncated = more
	}

	start := now.UnixMilli() - int64(len(values))*interval.Milliseconds()
	samples = make([]Sample, 0, len(values))
	for i, val := range values {
		if c.transform != nil {
			val, err = c.transform.Apply(val, int64(i))
			if err != nil {
				return nil, false, err
			}
		}
		samples = append(samples, Sample{
			Value:     val,
			Timestamp: start + int64(i)*interval.Milliseconds(),
		})
	}
	return samples, truncated, nil
}

// Realtime stamps each value with the time it was pulled. Unbounded
// sequences never run out.
type Realtime struct {
	gen       *progression.Generator
	index     int64
	transform *Transform
}

func NewRealtime(seq *progression.Sequence, opts ...Option) *Realtime {
	c := newConfig(opts)
	return &Realtime{
		gen:       progression.NewGenerator(seq),
		transform: c.transform,
	}
}

// Next returns the next sample stamped with now, or false once the
// sequence is over.
func (r *Realtime) Next(now time.Time) (Sample, bool, error) {
	val, ok := r.gen.Next()
	if !ok {
		return Sample{}, false, nil
	}
	if r.transform != nil {
		var err error
		val, err = r.transform.Apply(val, r.index)
		if err != nil {
			return Sample{}, false, err
		}
	}
	r.index++
	return Sample{
		Value:     val,
		Timestamp: now.UnixMilli(),
	}, true, nil
}
