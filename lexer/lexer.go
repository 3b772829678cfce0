// Package lexer implements the tokenizer: a peekable byte stream turned
// into an ordered token vector terminated by a single EOF token.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"nilan/token"
)

var punctuation = map[byte]bool{
	'=': true, '!': true, '+': true, '-': true, '*': true, '/': true,
	'&': true, '|': true, '^': true, '%': true, '<': true, '>': true,
	'.': true, ':': true, ',': true, ';': true, '(': true, ')': true,
	'{': true, '}': true, '[': true, ']': true,
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool      { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
func isWhitespace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// Lexer is a peekable byte-stream tokenizer. It accumulates errors rather
// than stopping at the first one, so a single pass reports every bad
// token before failing.
type Lexer struct {
	src  []byte
	pos  int
	line int32

	tokens []token.Token
	errors []error
}

// New constructs a Lexer over source text.
func New(input string) *Lexer {
	return &Lexer{src: []byte(input), line: 1}
}

func (l *Lexer) isFinished() bool { return l.pos >= len(l.src) }

func (l *Lexer) current() byte {
	if l.isFinished() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	b := l.current()
	l.pos++
	return b
}

// Scan performs lexical analysis, returning the full ordered token
// vector (always ending in a single EOF token) and a non-nil error if
// any token failed to scan.
func (l *Lexer) Scan() ([]token.Token, error) {
	errored := false

	for {
		tok, err := l.makeToken()
		if err != nil {
			log.Warn().Err(err).Int32("line", l.line).Msg("tokenize error")
			errored = true
			tok = token.NewErr(err.Error(), l.line)
		}

		l.tokens = append(l.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if errored {
		return l.tokens, fmt.Errorf("failed to tokenize")
	}
	return l.tokens, nil
}

func (l *Lexer) makeToken() (token.Token, error) {
	if l.isFinished() {
		return token.New(token.EOF, "", nil, l.line), nil
	}

	b := l.current()
	switch {
	case isDigit(b):
		return l.makeNumber()
	case b == '\'':
		return l.makeChar()
	case b == '"':
		return l.makeString()
	case b == '_' || isAlpha(b):
		return l.makeKeyword()
	case punctuation[b]:
		return l.makePunctuation()
	case b == '\n':
		l.advance()
		l.line++
		return l.makeToken()
	case isWhitespace(b):
		l.advance()
		return l.makeToken()
	default:
		l.advance()
		return token.Token{}, fmt.Errorf("invalid character %q", rune(b))
	}
}

// makeNumber collects an Int or, if a '.' follows the digit run, a Float.
// No sign, no exponent, no hex.
func (l *Lexer) makeNumber() (token.Token, error) {
	start := l.pos
	isFloat := false

	for isDigit(l.current()) {
		l.advance()
	}
	if l.current() == '.' {
		isFloat = true
		l.advance()
		for isDigit(l.current()) {
			l.advance()
		}
	}

	text := string(l.src[start:l.pos])
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, fmt.Errorf("invalid float literal %q: %w", text, err)
		}
		return token.New(token.Float, text, v, l.line), nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, fmt.Errorf("invalid int literal %q: %w", text, err)
	}
	return token.New(token.Int, text, v, l.line), nil
}

// makeKeyword collects an identifier-like run. Digits are never part of
// it, even mid-run: `x1` lexes as identifier `x` followed by int `1`.
func (l *Lexer) makeKeyword() (token.Token, error) {
	start := l.pos
	for isAlpha(l.current()) || l.current() == '_' {
		l.advance()
	}
	text := string(l.src[start:l.pos])

	if token.Keywords[text] {
		return token.New(token.Keyword, text, text, l.line), nil
	}
	switch text {
	case "null":
		return token.New(token.Null, text, nil, l.line), nil
	case "true":
		return token.New(token.Bool, text, true, l.line), nil
	case "false":
		return token.New(token.Bool, text, false, l.line), nil
	}
	return token.New(token.Identifier, text, text, l.line), nil
}

// makeChar scans a char literal: exactly one character, optionally an
// escape, followed by a closing quote.
func (l *Lexer) makeChar() (token.Token, error) {
	l.advance() // consume opening '

	if l.isFinished() {
		return token.Token{}, fmt.Errorf("expected char, found EOF")
	}
	c := l.advance()

	var value rune
	if c == '\\' {
		if l.isFinished() {
			return token.Token{}, fmt.Errorf("expected char, found EOF")
		}
		esc := l.advance()
		switch esc {
		case '0':
			value = 0
		case 'n':
			value = '\n'
		case 'r':
			value = '\r'
		case 't':
			value = '\t'
		case '\'':
			value = '\''
		case '\\':
			value = '\\'
		default:
			if !l.isFinished() && l.current() == '\'' {
				l.advance()
			}
			return token.Token{}, fmt.Errorf("invalid escaped char '\\%c'", esc)
		}
	} else {
		value = rune(c)
	}

	if l.isFinished() {
		return token.Token{}, fmt.Errorf("expected closing quote, found EOF")
	}
	closing := l.advance()
	if closing != '\'' {
		return token.Token{}, fmt.Errorf("expected closing quote, got %q", rune(closing))
	}
	return token.New(token.Char, string(value), value, l.line), nil
}

// makeString scans a string literal, honoring the escape set `\0 \n \r \t
// \" \\`, preserving `\a \b \f \v` as their literal two-byte sequence, and
// rejecting `\x` as unsupported.
func (l *Lexer) makeString() (token.Token, error) {
	l.advance() // consume opening "

	var sb strings.Builder
	for {
		if l.isFinished() {
			return token.Token{}, fmt.Errorf("unterminated string")
		}
		c := l.advance()
		switch c {
		case '"':
			s := sb.String()
			return token.New(token.Str, s, s, l.line), nil
		case '\n':
			l.line++
			sb.WriteByte('\n')
		case '\\':
			if l.isFinished() {
				return token.Token{}, fmt.Errorf("unexpected EOF in string escape")
			}
			esc := l.advance()
			switch esc {
			case '0':
				sb.WriteByte(0)
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'a':
				sb.WriteString(`\a`)
			case 'b':
				sb.WriteString(`\b`)
			case 'f':
				sb.WriteString(`\f`)
			case 'v':
				sb.WriteString(`\v`)
			case 'x':
				return token.Token{}, fmt.Errorf("ascii escape \\x is not supported")
			default:
				return token.Token{}, fmt.Errorf("invalid escape sequence in string: '\\%c'", esc)
			}
		default:
			sb.WriteByte(c)
		}
	}
}

// makePunctuation dispatches single-character symbols, `//`/`/*` comments,
// and the `&&`/`||` compounds.
func (l *Lexer) makePunctuation() (token.Token, error) {
	p := l.advance()

	switch {
	case p == '/' && l.current() == '/':
		l.skipSingleComment()
		return l.makeToken()
	case p == '/' && l.current() == '*':
		l.advance()
		if err := l.skipMultiComment(); err != nil {
			return token.Token{}, err
		}
		return l.makeToken()
	case p == '&' && l.current() == '&':
		l.advance()
		return token.NewCompound('&', '&', l.line), nil
	case p == '|' && l.current() == '|':
		l.advance()
		return token.NewCompound('|', '|', l.line), nil
	default:
		return token.NewSymbol(p, l.line), nil
	}
}

func (l *Lexer) skipSingleComment() {
	for !l.isFinished() {
		c := l.advance()
		if c == '\n' {
			l.line++
			return
		}
	}
}

// skipMultiComment consumes a `/* ... */` block comment, recursing on
// nested `/*` so a comment can contain balanced comments within it.
func (l *Lexer) skipMultiComment() error {
	for {
		if l.isFinished() {
			return fmt.Errorf("unterminated multi-line comment")
		}
		c := l.advance()
		if c == '\n' {
			l.line++
			continue
		}
		if c == '*' && l.current() == '/' {
			l.advance()
			return nil
		}
		if c == '/' && l.current() == '*' {
			l.advance()
			if err := l.skipMultiComment(); err != nil {
				return err
			}
		}
	}
}
