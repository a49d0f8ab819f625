package progression

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want *Sequence
	}{
		{
			spec: "1,3,5",
			want: &Sequence{Numbers: []float64{1, 3, 5}, Kind: Itemized},
		},
		{
			spec: "7",
			want: &Sequence{Numbers: []float64{7}, Kind: Itemized},
		},
		{
			spec: "1,3,5,...",
			want: &Sequence{Numbers: []float64{1, 3, 5}, HasEllipsis: true, Kind: Arithmetic, Step: ptr(2.0)},
		},
		{
			spec: "1,3,5,...,13",
			want: &Sequence{Numbers: []float64{1, 3, 5}, HasEllipsis: true, LastNumber: ptr(Bound(13)), Kind: Arithmetic, Step: ptr(2.0)},
		},
		{
			spec: "1, 3, 9, ...",
			want: &Sequence{Numbers: []float64{1, 3, 9}, HasEllipsis: true, Kind: Geometric, Step: ptr(3.0)},
		},
		{
			spec: "10,8,6,...,0",
			want: &Sequence{Numbers: []float64{10, 8, 6}, HasEllipsis: true, LastNumber: ptr(Bound(0)), Kind: Arithmetic, Step: ptr(-2.0)},
		},
		{
			spec: "-1.5,-1,-0.5,...,+2",
			want: &Sequence{Numbers: []float64{-1.5, -1, -0.5}, HasEllipsis: true, LastNumber: ptr(Bound(2)), Kind: Arithmetic, Step: ptr(0.5)},
		},
		{
			spec: "2,6,18,...,-Inf",
			want: &Sequence{Numbers: []float64{2, 6, 18}, HasEllipsis: true, LastNumber: ptr(Bound(math.Inf(-1))), Kind: Geometric, Step: ptr(3.0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.spec, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.spec, diff)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{",1,2,3", "sequence must not start with comma"},
		{"", "must specify one or more numbers"},
		{"abc", "must specify one or more numbers"},
		{"...", "must specify one or more numbers"},
		{"1,2,...", "need at least three numbers before ellipsis"},
		{"1,2,3,", `extraneous token: ","`},
		{"1,2,3 4", `extraneous token: " 4"`},
		{" 1,2,3", "must specify one or more numbers"},
		{"   ", "must specify one or more numbers"},
		{"1,2,3 ", `extraneous token: " "`},
		{"1,2,3,...,10\t", `extraneous token: "\t"`},
		{"1,2,3 ...", `extraneous token: " ..."`},
		{"1,Inf,3", `extraneous token: ",Inf,3"`},
		{"1,2,3,...,10,11", `extraneous token: ",11"`},
		{"1,2,3,...10", `extraneous token: "10"`},
		{"1,2,3...", `extraneous token: "..."`},
		{"1e5", `extraneous token: "e5"`},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			is := is.New(t)

			seq, err := Parse(tt.spec)
			is.True(seq == nil)
			is.True(errors.Is(err, ErrSyntax))
			is.Equal(err.Error(), tt.want)
		})
	}
}

func TestParseClassificationError(t *testing.T) {
	is := is.New(t)

	_, err := Parse("1,2,5,...,100")
	var classErr *ClassificationError
	is.True(errors.As(err, &classErr))
	is.Equal(classErr.Numbers, []float64{1, 2, 5})
}

func TestParseIsIdempotent(t *testing.T) {
	first, err := Parse("3,6,12,...,96")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse("3,6,12,...,96")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parses differ (-first +second):\n%s", diff)
	}
	if first == second {
		t.Error("expected distinct values")
	}
}

func TestParseLogsClassification(t *testing.T) {
	is := is.New(t)

	core, logs := observer.New(zap.DebugLevel)
	_, err := Parse("1,2,4,...", WithLogger(zap.New(core)))
	is.NoErr(err)

	entries := logs.FilterMessage("classified sequence").All()
	is.Equal(len(entries), 1)
	is.Equal(entries[0].ContextMap()["kind"], "geometric")
}

func TestSequenceJSON(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"1,3,5", `{"numbers":[1,3,5],"has_ellipsis":false,"type":"itemized"}`},
		{"1,3,5,...", `{"numbers":[1,3,5],"has_ellipsis":true,"type":"arithmetic","inc":2}`},
		{"1,3,5,...,13", `{"numbers":[1,3,5],"has_ellipsis":true,"last_number":13,"type":"arithmetic","inc":2}`},
		{"5,5,5,...,-Inf", `{"numbers":[5,5,5],"has_ellipsis":true,"last_number":"-Inf","type":"arithmetic","inc":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			is := is.New(t)

			seq, err := Parse(tt.spec)
			is.NoErr(err)
			data, err := json.Marshal(seq)
			is.NoErr(err)
			is.Equal(string(data), tt.want)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	is := is.New(t)

	is.Equal(FormatNumber(2), "2")
	is.Equal(FormatNumber(-0.5), "-0.5")
	is.Equal(FormatNumber(math.Inf(1)), "Inf")
	is.Equal(FormatNumber(math.Inf(-1)), "-Inf")
	is.Equal(FormatNumber(1e21), "1e+21")
}
