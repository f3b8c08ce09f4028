package script

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrSyntax = errors.New("script: syntax error")

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWord
	TokenNumber
	TokenSep
	TokenIllegal
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

type Parser struct {
	input   string
	pos     int
	line    int
	current Token
}

func NewParser(input string) *Parser {
	p := &Parser{input: input, line: 1}
	p.next()
	return p
}

func (p *Parser) next() {
	p.skipBlank()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Line: p.line}
		return
	}

	ch := p.input[p.pos]
	switch {
	case ch == '\n':
		p.current = Token{Type: TokenSep, Literal: "\n", Line: p.line}
		p.line++
		p.pos++
	case ch == ';':
		p.current = Token{Type: TokenSep, Literal: ";", Line: p.line}
		p.pos++
	case isLetter(ch):
		start := p.pos
		for p.pos < len(p.input) && isNameChar(p.input[p.pos]) {
			p.pos++
		}
		p.current = Token{Type: TokenWord, Literal: p.input[start:p.pos], Line: p.line}
	case isDigit(ch) || ch == '-' || ch == '+':
		start := p.pos
		p.pos++
		for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			p.pos++
		}
		p.current = Token{Type: TokenNumber, Literal: p.input[start:p.pos], Line: p.line}
	default:
		p.current = Token{Type: TokenIllegal, Literal: string(ch), Line: p.line}
		p.pos++
	}
}

// skipBlank skips spaces and comments, stopping at a newline.
func (p *Parser) skipBlank() {
	for p.pos < len(p.input) {
		switch ch := p.input[p.pos]; {
		case ch == ' ' || ch == '\t' || ch == '\r':
			p.pos++
		case ch == '#':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '.'
}

// Parse reads a whole script.
func Parse(input string) ([]Op, error) {
	return NewParser(input).Parse()
}

func (p *Parser) Parse() ([]Op, error) {
	var ops []Op
	for {
		for p.current.Type == TokenSep {
			p.next()
		}
		if p.current.Type == TokenEOF {
			return ops, nil
		}
		op, err := p.parseOp()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if p.current.Type != TokenSep && p.current.Type != TokenEOF {
			return nil, p.errorf("unexpected %q after %s", p.current.Literal, op.Kind)
		}
	}
}

// Op ::= insert NAME PRIO | remove NAME | prio NAME PRIO | KEYWORD
func (p *Parser) parseOp() (Op, error) {
	if p.current.Type != TokenWord {
		return Op{}, p.errorf("expected a command, got %q", p.current.Literal)
	}
	kind, ok := lookupKind(p.current.Literal)
	if !ok {
		return Op{}, p.errorf("unknown command %q", p.current.Literal)
	}
	op := Op{Kind: kind, Line: p.current.Line}
	p.next()

	if kind.takesName() {
		if p.current.Type != TokenWord {
			return Op{}, p.errorf("%s: expected a waiter name, got %q", kind, p.current.Literal)
		}
		op.Name = p.current.Literal
		p.next()
	}
	if kind.takesPriority() {
		if p.current.Type != TokenNumber {
			return Op{}, p.errorf("%s: expected a priority, got %q", kind, p.current.Literal)
		}
		prio, err := strconv.Atoi(p.current.Literal)
		if err != nil {
			return Op{}, p.errorf("%s: bad priority %q", kind, p.current.Literal)
		}
		op.Priority = prio
		p.next()
	}
	return op, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", p.current.Line, fmt.Sprintf(format, args...), ErrSyntax)
}
