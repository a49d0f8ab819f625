package timeline

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"seqgen/progression"
)

func mustParse(t *testing.T, spec string) *progression.Sequence {
	t.Helper()
	seq, err := progression.Parse(spec)
	if err != nil {
		t.Fatalf("parse %q: %v", spec, err)
	}
	return seq
}

func TestBackfill(t *testing.T) {
	is := is.New(t)

	now := time.UnixMilli(100_000)
	samples, truncated, err := Backfill(mustParse(t, "1,2,3,...,5"), 10*time.Second, now)
	is.NoErr(err)
	is.True(!truncated)
	is.Equal(samples, []Sample{
		{Value: 1, Timestamp: 50_000},
		{Value: 2, Timestamp: 60_000},
		{Value: 3, Timestamp: 70_000},
		{Value: 4, Timestamp: 80_000},
		{Value: 5, Timestamp: 90_000},
	})
}

func TestBackfillTruncatesUnbounded(t *testing.T) {
	is := is.New(t)

	samples, truncated, err := Backfill(mustParse(t, "1,2,4,..."), time.Second, time.Now(), WithLimit(4))
	is.NoErr(err)
	is.True(truncated)
	is.Equal(len(samples), 4)
	is.Equal(samples[3].Value, 8.0)
}

func TestBackfillExactLimitIsNotTruncated(t *testing.T) {
	is := is.New(t)

	_, truncated, err := Backfill(mustParse(t, "1,2,3"), time.Second, time.Now(), WithLimit(3))
	is.NoErr(err)
	is.True(!truncated)
}

func TestBackfillRejectsInterval(t *testing.T) {
	is := is.New(t)

	_, _, err := Backfill(mustParse(t, "1"), 0, time.Now())
	is.True(err != nil)
}

func TestBackfillTransform(t *testing.T) {
	is := is.New(t)

	tr, err := NewTransform(`function offset(v, i) return v * 10 + i end`, "offset")
	is.NoErr(err)

	samples, _, err := Backfill(mustParse(t, "1,2,3"), time.Second, time.Now(), WithTransform(tr))
	is.NoErr(err)
	is.Equal(samples[0].Value, 10.0)
	is.Equal(samples[1].Value, 21.0)
	is.Equal(samples[2].Value, 32.0)
}

func TestRealtime(t *testing.T) {
	is := is.New(t)

	rt := NewRealtime(mustParse(t, "3,6,9,..."))
	for i, want := range []float64{3, 6, 9, 12, 15} {
		now := time.UnixMilli(int64(i) * 1000)
		sample, ok, err := rt.Next(now)
		is.NoErr(err)
		is.True(ok)
		is.Equal(sample, Sample{Value: want, Timestamp: int64(i) * 1000})
	}
}

func TestRealtimeEnds(t *testing.T) {
	is := is.New(t)

	rt := NewRealtime(mustParse(t, "1,2"))
	_, ok, _ := rt.Next(time.Now())
	is.True(ok)
	_, ok, _ = rt.Next(time.Now())
	is.True(ok)
	_, ok, err := rt.Next(time.Now())
	is.NoErr(err)
	is.True(!ok)
}

func TestTransformErrors(t *testing.T) {
	is := is.New(t)

	_, err := NewTransform(`function f(`, "f")
	is.True(err != nil)

	_, err = NewTransform(`x = 1`, "x")
	is.True(err != nil)

	tr, err := NewTransform(`function s(v, i) return "nope" end`, "s")
	is.NoErr(err)
	_, err = tr.Apply(1, 0)
	is.True(err != nil)

	tr, err = NewTransform(`function boom(v, i) error("boom") end`, "boom")
	is.NoErr(err)
	_, err = tr.Apply(1, 0)
	is.True(err != nil)
}
