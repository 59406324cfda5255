// SPDX-License-Identifier: GPL-2.0-or-later

package kv

import (
	"strings"
)

// MaxDepth is the deepest block nesting Parse accepts.
const MaxDepth = 256

type parser struct {
	src   string
	pos   int
	depth int
}

// Parse reads a whole document. The returned node is the implicit top level
// block holding the document's keys and blocks.
func Parse(text string) (*Node, error) {
	p := &parser{src: text}
	n, err := p.block()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf(ErrTrailingInput)
	}
	return n, nil
}

func ParseBytes(data []byte) (*Node, error) {
	return Parse(string(data))
}

func (p *parser) errorf(err error) *SyntaxError {
	line := 1 + strings.Count(p.src[:p.pos], "\n")
	col := p.pos + 1
	if i := strings.LastIndexByte(p.src[:p.pos], '\n'); i >= 0 {
		col = p.pos - i
	}
	return &SyntaxError{
		Line:   line,
		Col:    col,
		Offset: p.pos,
		Err:    err,
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// block parses pairs and blocks until the closing brace of the current block
// or, on the top level, the end of input.
func (p *parser) block() (*Node, error) {
	n := New()
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			if p.depth > 0 {
				return nil, p.errorf(ErrUnexpectedEOF)
			}
			return n, nil
		}
		switch c := p.src[p.pos]; {
		case c == '"':
			key, value, err := p.pair()
			if err != nil {
				return nil, err
			}
			n.Add(key, value)
		case c == '}':
			if p.depth == 0 {
				return nil, p.errorf(ErrTrailingInput)
			}
			p.pos++
			return n, nil
		case c == '{':
			return nil, p.errorf(ErrUnexpectedToken)
		default:
			name, err := p.name()
			if err != nil {
				return nil, err
			}
			if p.depth >= MaxDepth {
				return nil, p.errorf(ErrTooDeep)
			}
			p.depth++
			child, err := p.block()
			if err != nil {
				return nil, err
			}
			p.depth--
			n.AddChild(name, child)
		}
	}
}

func (p *parser) quoted() (string, error) {
	// p.src[p.pos] == '"'
	end := strings.IndexByte(p.src[p.pos+1:], '"')
	if end < 0 {
		p.pos = len(p.src)
		return "", p.errorf(ErrUnexpectedEOF)
	}
	s := p.src[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return s, nil
}

func (p *parser) pair() (string, string, error) {
	key, err := p.quoted()
	if err != nil {
		return "", "", err
	}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return "", "", p.errorf(ErrUnexpectedEOF)
	}
	if p.src[p.pos] != '"' {
		return "", "", p.errorf(ErrUnexpectedToken)
	}
	value, err := p.quoted()
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}

// name reads a block name and consumes the opening brace after it. The name
// is everything up to the brace with surrounding space removed; it may not
// contain quotes or braces.
func (p *parser) name() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			name := strings.TrimSpace(p.src[start:p.pos])
			p.pos++
			return name, nil
		case '"', '}':
			return "", p.errorf(ErrUnexpectedToken)
		}
		p.pos++
	}
	return "", p.errorf(ErrUnexpectedEOF)
}
