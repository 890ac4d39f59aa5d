// Package scanner tokenizes pijago source text. It is a hand-written,
// rune-at-a-time lexer in the same style as the front end it was adapted
// from: a single Scan call per token, an explicit current/peek rune pair,
// and errors reported through a callback rather than a return value, so
// scanning continues after a lexical error and ScanAll can report several.
// The parser stops at the first one it receives.
package scanner

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pijago/pijago/lang/token"
)

// TokenAndValue pairs a scanned token with its literal text and (for
// IDENT/INT) decoded value.
type TokenAndValue struct {
	Token token.Token
	Lit   string
	Int   int64
	Loc   token.Location
}

// ErrorHandler is called for every lexical error encountered; scanning
// continues afterward so the caller can collect more than one error.
type ErrorHandler func(loc token.Location, msg string)

// Scanner tokenizes a single source file held entirely in memory.
type Scanner struct {
	src []byte
	err ErrorHandler

	cur rune // current rune, -1 at EOF
	off int  // byte offset of cur
	roff int // byte offset just past cur
}

// New creates a Scanner over src. errHandler may be nil.
func New(src []byte, errHandler ErrorHandler) *Scanner {
	s := &Scanner{src: src, err: errHandler}
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
	return s
}

// ScanAll tokenizes the entire input and returns the token stream, ending
// with a single EOF token. Lexical errors are reported via the Scanner's
// error handler but do not stop scanning.
func ScanAll(src []byte, errHandler ErrorHandler) []TokenAndValue {
	s := New(src, errHandler)
	var out []TokenAndValue
	for {
		tv := s.Scan()
		out = append(out, tv)
		if tv.Token == token.EOF {
			return out
		}
	}
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, s.off+1, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) advanceIf(b byte) bool {
	if rune(b) == s.cur {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) error(start, end int, msg string) {
	if s.err != nil {
		s.err(token.Location{Start: start, End: end}, msg)
	}
}

// Scan returns the next token.
func (s *Scanner) Scan() TokenAndValue {
	s.skipWhitespace()
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok := token.IDENT
		if kw, ok := token.Keywords[lit]; ok {
			tok = kw
		}
		return TokenAndValue{Token: tok, Lit: lit, Loc: token.Location{Start: start, End: s.off}}

	case isDigit(cur):
		lit := s.number()
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			s.error(start, s.off, fmt.Sprintf("invalid integer literal %q: %s", lit, err))
		}
		return TokenAndValue{Token: token.INT, Lit: lit, Int: v, Loc: token.Location{Start: start, End: s.off}}

	default:
		s.advance() // always make progress
		tok := token.ILLEGAL
		switch cur {
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case ',':
			tok = token.COMMA
		case ';':
			tok = token.SEMI
		case '+':
			tok = token.PLUS
		case '-':
			if s.advanceIf('>') {
				tok = token.ARROW
			} else {
				tok = token.MINUS
			}
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '%':
			tok = token.PERCENT
		case '^':
			tok = token.CIRCUMFLEX
		case '&':
			if s.advanceIf('&') {
				tok = token.ANDAND
			} else {
				tok = token.AMPERSAND
			}
		case '|':
			if s.advanceIf('|') {
				tok = token.OROR
			} else {
				tok = token.PIPE
			}
		case '<':
			if s.advanceIf('<') {
				tok = token.LTLT
			} else if s.advanceIf('=') {
				tok = token.LE
			} else {
				tok = token.LT
			}
		case '>':
			if s.advanceIf('>') {
				tok = token.GTGT
			} else if s.advanceIf('=') {
				tok = token.GE
			} else {
				tok = token.GT
			}
		case '=':
			if s.advanceIf('=') {
				tok = token.EQL
			} else {
				tok = token.EQ
			}
		case '!':
			if s.advanceIf('=') {
				tok = token.NEQ
			} else {
				tok = token.BANG
			}
		case ':':
			tok = token.COLON
		case -1:
			tok = token.EOF
		default:
			s.error(start, s.off, fmt.Sprintf("illegal character %#U", cur))
		}
		return TokenAndValue{Token: tok, Lit: string(cur), Loc: token.Location{Start: start, End: s.off}}
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespace() {
	for {
		for isWhitespace(s.cur) {
			s.advance()
		}
		if s.cur == '#' {
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
			continue
		}
		break
	}
}

func isWhitespace(rn rune) bool { return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r' }

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
