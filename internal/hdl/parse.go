// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements a lexer and parser for i/o specs and connection
// strings.
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{"end of input", "character", "identifier", "'['", "']'", "','", "integer", "'..'", "'='"}

func (t Type) String() string { return typeNames[t] }

// An Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   int // byte offset in the input
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return i.Type.String()
	case Raw:
		return strconv.QuoteRune(i.Value.(rune))
	case Ident:
		return "identifier " + i.Value.(string)
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	}
	return i.Type.String()
}

// Lexer splits i/o specs and connection strings into items.
//
type Lexer struct {
	input string
	pos   int
	eof   bool
}

// NewLexer returns a new lexer for input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) acceptWhile(f func(rune) bool) {
	for {
		r, n := l.next()
		if n == 0 || !f(r) {
			return
		}
		l.pos += n
	}
}

// Lex returns the next item in the input. Once the end of input or an invalid
// character has been reached, Lex only returns EOF items.
//
func (l *Lexer) Lex() Item {
	l.acceptWhile(unicode.IsSpace)
	start := l.pos
	r, n := l.next()
	if l.eof || n == 0 {
		l.eof = true
		return Item{EOF, start, nil}
	}
	l.pos += n
	switch {
	case unicode.IsLetter(r) || r == '_':
		l.acceptWhile(isIdent)
		return Item{Ident, start, l.input[start:l.pos]}
	case '0' <= r && r <= '9':
		l.acceptWhile(isDigit)
		i, err := strconv.Atoi(l.input[start:l.pos])
		if err != nil {
			l.eof = true
			return Item{Raw, start, r}
		}
		return Item{Int, start, i}
	case r == '[':
		return Item{BracketOpen, start, "["}
	case r == ']':
		return Item{BracketClose, start, "]"}
	case r == ',':
		return Item{Comma, start, ","}
	case r == '=':
		return Item{Equal, start, "="}
	case r == '.':
		if r, _ := l.next(); r == '.' {
			l.pos++
			return Item{Range, start, ".."}
		}
	}
	l.eof = true
	return Item{Raw, start, r}
}

func isIdent(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// Pin is a simple pin name
//
type Pin struct {
	Name string
	Pos  int
}

// PinIndex is an indexed pin p[index]
//
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
//
type PinRange struct {
	Pin
	Start int
	End   int
}

// PinAssignment is a part pin to chip pin assignment. pp=pc
//
type PinAssignment struct {
	LHS interface{}
	RHS interface{}
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	state int
}

const (
	stateDone = -1
	stateInit = iota
	stateStarted
)

// Next returns the next item in the input stream: a Pin, PinIndex, PinRange
// or, if allowConns is true, a PinAssignment. It returns nil, nil at the end
// of input.
//
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.state == stateDone {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return nil, nil
	}
	p.state = stateStarted

	pin, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return pin, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.state = stateDone
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	pin2, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return PinAssignment{pin, pin2}, nil
	}

	p.state = stateDone
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name, got "+p.i.String())
	}
	pin := Pin{p.i.Value.(string), p.i.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return nil, parseError(p.Input, p.i.Pos, "integer value expected after '['")
	}
	start := p.i.Value.(int)
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return nil, parseError(p.Input, p.i.Pos, "integer value expected after '..'")
		}
		end = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
