package ingest

import (
	"errors"
	"fmt"

	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

const MetricNameLabel = "__name__"

// Parser turns a series selector into a Prometheus time series without
// samples.
type Parser struct {
	index  int
	tokens TokenList
}

func NewSeriesParser(tokens TokenList) *Parser {
	return &Parser{
		index:  0,
		tokens: tokens,
	}
}

func (p *Parser) Reset(tokens TokenList) {
	p.index = 0
	p.tokens = tokens
}

func (p *Parser) hasTokens() bool {
	return p.index < len(p.tokens)
}

func (p *Parser) consume() {
	p.index = p.index + 1
}

func (p *Parser) next() (*Token, error) {
	if !p.hasTokens() {
		return nil, errors.New("unexpected end of stream")
	}
	current := p.index
	p.index = p.index + 1
	return p.tokens.at(current), nil
}

func (p *Parser) peek() (*Token, error) {
	if !p.hasTokens() {
		return nil, errors.New("unexpected end of stream")
	}
	return p.tokens.at(p.index), nil
}

func (p *Parser) expect(t TokenType) (*Token, error) {
	token, err := p.next()
	if err != nil {
		return nil, err
	}

	if token.TokenType == t {
		return token, nil
	}

	return nil, fmt.Errorf("unexpected token, expected %v but got %v at %v", TokenMapping[t], token.StringVal, token.Pos)
}

func (p *Parser) label() (*prometheus.Label, error) {
	name, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}
	if name.StringVal == MetricNameLabel {
		return nil, fmt.Errorf("label %v is reserved, at %v", MetricNameLabel, name.Pos)
	}

	_, err = p.expect(TokenTypeEquals)
	if err != nil {
		return nil, err
	}

	value, err := p.expect(TokenTypeString)
	if err != nil {
		return nil, err
	}

	return &prometheus.Label{
		Name:  name.StringVal,
		Value: value.StringVal,
	}, nil
}

func (p *Parser) labels() ([]*prometheus.Label, error) {
	var labels []*prometheus.Label
	seen := map[string]bool{}
	for p.hasTokens() {
		la, err := p.peek()
		if err != nil {
			return nil, err
		}
		if la.TokenType == TokenTypeRBrace {
			break
		}

		label, err := p.label()
		if err != nil {
			return nil, err
		}
		if seen[label.Name] {
			return nil, fmt.Errorf("duplicate label %v", label.Name)
		}
		seen[label.Name] = true
		labels = append(labels, label)

		la, err = p.peek()
		if err != nil {
			return nil, err
		}
		if la.TokenType == TokenTypeComma {
			p.consume()
			continue
		} else if la.TokenType == TokenTypeRBrace {
			break
		} else {
			return nil, fmt.Errorf("unexpected token: expected , or } but got %v at %v", la.StringVal, la.Pos)
		}
	}
	return labels, nil
}

func (p *Parser) timeseries() (*prometheus.TimeSeries, error) {
	// <metric>{<label>="<value>", ...}
	token, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}

	labels := []*prometheus.Label{{
		Name:  MetricNameLabel,
		Value: token.StringVal,
	}}

	la, err := p.peek()
	if err != nil {
		return nil, err
	}

	if la.TokenType == TokenTypeLBrace {
		p.consume()
		parsedLabels, err := p.labels()
		if err != nil {
			return nil, err
		}
		labels = append(labels, parsedLabels...)
		_, err = p.expect(TokenTypeRBrace)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenTypeEOF); err != nil {
		return nil, err
	}

	return &prometheus.TimeSeries{
		Labels: labels,
	}, nil
}

func (p *Parser) Parse() (*prometheus.TimeSeries, error) {
	return p.timeseries()
}

// ParseSeries scans and parses selector in one go.
func ParseSeries(selector string) (*prometheus.TimeSeries, error) {
	tokens, err := NewSeriesScanner().Scan(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid series %q: %w", selector, err)
	}
	ts, err := NewSeriesParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("invalid series %q: %w", selector, err)
	}
	return ts, nil
}
