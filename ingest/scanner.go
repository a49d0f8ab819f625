package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Scanner struct {
}

func NewSeriesScanner() *Scanner {
	return &Scanner{}
}

func isNameRune(r rune, first bool) bool {
	if r == '_' || r == ':' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}

// Scan tokenizes a series selector such as `requests{job="api",code="200"}`.
func (*Scanner) Scan(data string) (TokenList, error) {
	var tokens TokenList
	index := 0

	name := func() Token {
		start := index
		for index < len(data) {
			r, size := utf8.DecodeRuneInString(data[index:])
			if !isNameRune(r, index == start) {
				break
			}
			index += size
		}
		return Token{
			TokenType: TokenTypeName,
			StringVal: data[start:index],
			Pos:       start,
		}
	}

	quoted := func() (Token, error) {
		start := index
		// skip the opening quote
		index++
		sb := strings.Builder{}
		for index < len(data) {
			c := data[index]
			index++
			switch c {
			case '"':
				return Token{
					TokenType: TokenTypeString,
					StringVal: sb.String(),
					Pos:       start,
				}, nil
			case '\\':
				if index >= len(data) {
					return Token{}, fmt.Errorf("unterminated escape at %d", index-1)
				}
				sb.WriteByte(data[index])
				index++
			default:
				sb.WriteByte(c)
			}
		}
		return Token{}, fmt.Errorf("unterminated string starting at %d", start)
	}

	single := func(t TokenType) {
		tokens = append(tokens, Token{
			TokenType: t,
			StringVal: TokenMapping[t],
			Pos:       index,
		})
		index++
	}

	for index < len(data) {
		r, size := utf8.DecodeRuneInString(data[index:])

		// ignore whitespace
		if unicode.IsSpace(r) {
			index += size
			continue
		}

		switch r {
		case '{':
			single(TokenTypeLBrace)
		case '}':
			single(TokenTypeRBrace)
		case '=':
			single(TokenTypeEquals)
		case ',':
			single(TokenTypeComma)
		case '"':
			token, err := quoted()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
		default:
			if !isNameRune(r, true) {
				return nil, fmt.Errorf("unexpected character %q at %d", r, index)
			}
			tokens = append(tokens, name())
		}
	}

	tokens = append(tokens, Token{
		TokenType: TokenTypeEOF,
		StringVal: TokenMapping[TokenTypeEOF],
		Pos:       len(data),
	})
	return tokens, nil
}
