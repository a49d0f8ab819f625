package progression

import (
	"errors"
)

type ProgressionParser struct {
	index  int
	input  string
	tokens TokenList
}

// NewProgressionParser creates a parser over tokens scanned from input.
// The input is kept to quote unconsumed text in errors.
func NewProgressionParser(input string, tokens TokenList) *ProgressionParser {
	return &ProgressionParser{
		index:  0,
		input:  input,
		tokens: tokens,
	}
}

type parsed struct {
	numbers     []float64
	hasEllipsis bool
	bound       *Bound
}

func (p *ProgressionParser) hasTokens() bool {
	return p.index < len(p.tokens)
}

func (p *ProgressionParser) peek() (*Token, error) {
	if !p.hasTokens() {
		return nil, errors.New("unexpected end of stream")
	}
	return p.tokens.at(p.index), nil
}

// peekAt looks ahead offset tokens without consuming anything.
func (p *ProgressionParser) peekAt(offset int) *Token {
	return p.tokens.at(p.index + offset)
}

// extraneous reports everything from the current token onwards.
func (p *ProgressionParser) extraneous() error {
	token, err := p.peek()
	if err != nil {
		return err
	}
	return newSyntaxError("extraneous token", p.input[token.Pos:])
}

func (p *ProgressionParser) numbers() ([]float64, error) {
	var numbers []float64

	first, err := p.peek()
	if err != nil {
		return nil, err
	}
	if first.TokenType == TokenTypeComma {
		return nil, newSyntaxError("sequence must not start with comma", "")
	}
	if first.TokenType != TokenTypeNumber {
		return nil, newSyntaxError("must specify one or more numbers", "")
	}
	p.index++
	numbers = append(numbers, first.FloatVal)

	for {
		comma, value := p.peekAt(0), p.peekAt(1)
		if comma == nil || value == nil {
			break
		}
		if comma.TokenType != TokenTypeComma || value.TokenType != TokenTypeNumber {
			break
		}
		p.index += 2
		numbers = append(numbers, value.FloatVal)
	}

	return numbers, nil
}

func (p *ProgressionParser) ellipsis(count int) (bool, error) {
	comma, dots := p.peekAt(0), p.peekAt(1)
	if comma == nil || dots == nil {
		return false, nil
	}
	if comma.TokenType != TokenTypeComma || dots.TokenType != TokenTypeEllipsis {
		return false, nil
	}
	if count < 3 {
		return false, newSyntaxError("need at least three numbers before ellipsis", "")
	}
	p.index += 2
	return true, nil
}

func (p *ProgressionParser) bound() *Bound {
	comma, value := p.peekAt(0), p.peekAt(1)
	if comma == nil || value == nil || comma.TokenType != TokenTypeComma {
		return nil
	}
	switch value.TokenType {
	case TokenTypeNumber, TokenTypeInf:
		p.index += 2
		b := Bound(value.FloatVal)
		return &b
	}
	return nil
}

func (p *ProgressionParser) spec() (*parsed, error) {
	numbers, err := p.numbers()
	if err != nil {
		return nil, err
	}
	result := &parsed{numbers: numbers}

	result.hasEllipsis, err = p.ellipsis(len(numbers))
	if err != nil {
		return nil, err
	}
	if result.hasEllipsis {
		result.bound = p.bound()
	}

	end, err := p.peek()
	if err != nil {
		return nil, err
	}
	if end.TokenType != TokenTypeEOF {
		return nil, p.extraneous()
	}
	return result, nil
}
