package progression

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Scanner struct {
}

func NewProgressionScanner() *Scanner {
	return &Scanner{}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// Scan splits data into numbers, commas, ellipses and signed Inf literals.
// Text that fits none of these becomes a single TokenTypeInvalid token that
// runs up to the next separator, so the parser can report it verbatim.
// Whitespace not next to a comma is invalid as well.
// The returned list is always terminated by a TokenTypeEOF token.
func (*Scanner) Scan(data string) (TokenList, error) {
	var tokens TokenList
	index := 0

	// number matches ["+"|"-"] digits ["." digits] starting at index and
	// returns the end offset, or -1 if there is no number here.
	number := func() int {
		i := index
		if i < len(data) && (data[i] == '+' || data[i] == '-') {
			i++
		}
		start := i
		for i < len(data) && isDigit(data[i]) {
			i++
		}
		if i == start {
			return -1
		}
		if i+1 < len(data) && data[i] == '.' && isDigit(data[i+1]) {
			i++
			for i < len(data) && isDigit(data[i]) {
				i++
			}
		}
		return i
	}

	// inf matches ["+"|"-"] "Inf" starting at index.
	inf := func() int {
		i := index
		if i < len(data) && (data[i] == '+' || data[i] == '-') {
			i++
		}
		if strings.HasPrefix(data[i:], "Inf") {
			return i + len("Inf")
		}
		return -1
	}

	invalid := func() int {
		i := index
		for i < len(data) {
			r, size := utf8.DecodeRuneInString(data[i:])
			if isSeparator(r) {
				break
			}
			i += size
		}
		return i
	}

	for index < len(data) {
		r, size := utf8.DecodeRuneInString(data[index:])

		// whitespace is only allowed around a comma
		if unicode.IsSpace(r) {
			end := index + size
			for end < len(data) {
				r, size := utf8.DecodeRuneInString(data[end:])
				if !unicode.IsSpace(r) {
					break
				}
				end += size
			}
			afterComma := len(tokens) > 0 && tokens[len(tokens)-1].TokenType == TokenTypeComma
			beforeComma := end < len(data) && data[end] == ','
			if !afterComma && !beforeComma {
				tokens = append(tokens, Token{
					TokenType: TokenTypeInvalid,
					StringVal: data[index:end],
					Pos:       index,
				})
			}
			index = end
			continue
		}

		switch {
		case r == ',':
			tokens = append(tokens, Token{
				TokenType: TokenTypeComma,
				StringVal: ",",
				Pos:       index,
			})
			index += size
		case strings.HasPrefix(data[index:], "..."):
			tokens = append(tokens, Token{
				TokenType: TokenTypeEllipsis,
				StringVal: "...",
				Pos:       index,
			})
			index += len("...")
		default:
			if end := inf(); end > 0 {
				val := math.Inf(1)
				if data[index] == '-' {
					val = math.Inf(-1)
				}
				tokens = append(tokens, Token{
					TokenType: TokenTypeInf,
					StringVal: data[index:end],
					FloatVal:  val,
					Pos:       index,
				})
				index = end
				continue
			}

			if end := number(); end > 0 {
				literal := data[index:end]
				// out of range literals become +Inf or -Inf
				val, err := strconv.ParseFloat(literal, 64)
				if err != nil && !errors.Is(err, strconv.ErrRange) {
					return nil, newSyntaxError("invalid number", literal)
				}
				tokens = append(tokens, Token{
					TokenType: TokenTypeNumber,
					StringVal: literal,
					FloatVal:  val,
					Pos:       index,
				})
				index = end
				continue
			}

			end := invalid()
			tokens = append(tokens, Token{
				TokenType: TokenTypeInvalid,
				StringVal: data[index:end],
				Pos:       index,
			})
			index = end
		}
	}

	tokens = append(tokens, Token{
		TokenType: TokenTypeEOF,
		Pos:       len(data),
	})

	return tokens, nil
}
