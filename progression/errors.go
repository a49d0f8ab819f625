package progression

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax matches every *SyntaxError via errors.Is.
	ErrSyntax = errors.New("syntax error")
	// ErrClassification matches every *ClassificationError via errors.Is.
	ErrClassification = errors.New("classification error")
)

// SyntaxError reports a malformed spec. Remainder holds the offending
// input text when there is any.
type SyntaxError struct {
	Msg       string
	Remainder string
}

func newSyntaxError(msg, remainder string) *SyntaxError {
	return &SyntaxError{Msg: msg, Remainder: remainder}
}

func (e *SyntaxError) Error() string {
	if e.Remainder == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %q", e.Msg, e.Remainder)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// ClassificationError reports that the numbers before an ellipsis follow
// neither a constant difference nor a constant ratio.
type ClassificationError struct {
	Numbers []float64
}

func (e *ClassificationError) Error() string {
	parts := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		parts[i] = FormatNumber(n)
	}
	return "cannot determine pattern from: " + strings.Join(parts, ", ")
}

func (e *ClassificationError) Is(target error) bool {
	return target == ErrClassification
}
