/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package codec

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

type token int

const (
	tokenError token = iota

	tokenEOF // End of input

	tokenInt    // -?[0-9]+
	tokenFloat  // -?[0-9]+(.[0-9]+)?([eE][+-]?[0-9]+)?, and RON's [+-]inf
	tokenSymbol // [a-zA-Z_][a-zA-Z0-9_]*
	tokenString // "[^"]*"

	tokenComma // ,
	tokenColon // :

	tokenOpenParen    // (
	tokenCloseParen   // )
	tokenOpenBrace    // {
	tokenCloseBrace   // }
	tokenOpenBracket  // [
	tokenCloseBracket // ]
)

func (t token) String() string {
	switch t {
	case tokenError:
		return "<error>"
	case tokenEOF:
		return "<EOF>"
	case tokenInt:
		return "<int>"
	case tokenFloat:
		return "<float>"
	case tokenSymbol:
		return "<symbol>"
	case tokenString:
		return "<string>"

	case tokenComma:
		return ","
	case tokenColon:
		return ":"

	case tokenOpenParen:
		return "("
	case tokenCloseParen:
		return ")"
	case tokenOpenBrace:
		return "{"
	case tokenCloseBrace:
		return "}"
	case tokenOpenBracket:
		return "["
	case tokenCloseBracket:
		return "]"

	default:
		return "<???>"
	}
}

// isOpen returns true for tokens that open a container.
func (t token) isOpen() bool {
	return t == tokenOpenParen || t == tokenOpenBrace || t == tokenOpenBracket
}

// closer returns the token that closes a container opened by t.
func (t token) closer() token {
	switch t {
	case tokenOpenParen:
		return tokenCloseParen
	case tokenOpenBrace:
		return tokenCloseBrace
	case tokenOpenBracket:
		return tokenCloseBracket
	default:
		return tokenError
	}
}

// A tokenizer splits JSON or RON text into tokens. It reads one token ahead:
// after Next, token, val and pos describe the token that was just scanned.
//
// A tokenizer is a small value over a shared input slice, so a copy of it can
// be advanced to look ahead without moving the tokenizer it was copied from.
type tokenizer struct {
	in   []byte
	off  int
	line int
	col  int
	ron  bool

	token token
	val   string   // text of a number or symbol, or the unescaped contents of a string
	pos   Position // where the token starts
}

func tokenizeJSON(in []byte) *tokenizer {
	return &tokenizer{in: in, line: 1, col: 1}
}

func tokenizeRON(in []byte) *tokenizer {
	return &tokenizer{in: in, line: 1, col: 1, ron: true}
}

// Token returns the current token.
func (t *tokenizer) Token() token {
	return t.token
}

// Next scans the next token.
func (t *tokenizer) Next() error {
	if err := t.skipWhitespace(); err != nil {
		t.token = tokenError
		return err
	}

	t.pos = Position{t.line, t.col}
	t.val = ""

	c := t.peek()
	switch {
	case c == -1:
		return t.ok(tokenEOF)

	case c == ',':
		return t.single(tokenComma)
	case c == ':':
		return t.single(tokenColon)
	case c == '(' && t.ron:
		return t.single(tokenOpenParen)
	case c == ')' && t.ron:
		return t.single(tokenCloseParen)
	case c == '{':
		return t.single(tokenOpenBrace)
	case c == '}':
		return t.single(tokenCloseBrace)
	case c == '[':
		return t.single(tokenOpenBracket)
	case c == ']':
		return t.single(tokenCloseBracket)

	case c == '"':
		t.read()
		val, err := t.readString()
		if err != nil {
			t.token = tokenError
			return err
		}
		t.val = val
		return t.ok(tokenString)

	case c == '-' || isDigit(c) || (c == '+' && t.ron):
		val, tok, err := t.readNumber()
		if err != nil {
			t.token = tokenError
			return err
		}
		t.val = val
		return t.ok(tok)

	case isIdentifierStart(c):
		t.val = t.readSymbol()
		return t.ok(tokenSymbol)

	default:
		t.token = tokenError
		return t.invalidChar(c)
	}
}

func (t *tokenizer) ok(tok token) error {
	t.token = tok
	return nil
}

func (t *tokenizer) single(tok token) error {
	t.read()
	return t.ok(tok)
}

// skipWhitespace skips whitespace and, in RON, comments.
func (t *tokenizer) skipWhitespace() error {
	for {
		c := t.peek()
		switch {
		case isWhitespace(c):
			t.read()

		case c == '/' && t.ron:
			if err := t.skipComment(); err != nil {
				return err
			}

		default:
			return nil
		}
	}
}

// skipComment skips a // line comment or a /* block comment */. Block
// comments nest.
func (t *tokenizer) skipComment() error {
	start := Position{t.line, t.col}
	t.read()

	switch t.peek() {
	case '/':
		for c := t.peek(); c != -1 && c != '\n'; c = t.peek() {
			t.read()
		}
		return nil

	case '*':
		t.read()
		depth := 1
		for depth > 0 {
			c := t.read()
			switch {
			case c == -1:
				return t.errorf(start, "unterminated block comment")
			case c == '*' && t.peek() == '/':
				t.read()
				depth--
			case c == '/' && t.peek() == '*':
				t.read()
				depth++
			}
		}
		return nil

	default:
		return t.invalidChar('/')
	}
}

// readNumber reads a number. JSON numbers follow RFC 8259; RON additionally
// allows a leading '+' and the words inf and NaN after a sign.
func (t *tokenizer) readNumber() (string, token, error) {
	start := t.off
	tok := tokenInt

	c := t.peek()
	if c == '-' || c == '+' {
		t.read()
		c = t.peek()
		if t.ron && isIdentifierStart(c) {
			sym := t.readSymbol()
			if sym == "inf" || sym == "NaN" {
				return string(t.in[start:t.off]), tokenFloat, nil
			}
			return "", tokenError, t.errorf(t.pos, fmt.Sprintf("invalid number %q", string(t.in[start:t.off])))
		}
	}

	switch {
	case c == '0':
		t.read()
		if isDigit(t.peek()) {
			return "", tokenError, t.errorf(t.pos, "leading zero in number")
		}
	case isDigit(c):
		t.readDigits()
	default:
		return "", tokenError, t.invalidChar(c)
	}

	if t.peek() == '.' {
		t.read()
		if !isDigit(t.peek()) {
			return "", tokenError, t.invalidChar(t.peek())
		}
		t.readDigits()
		tok = tokenFloat
	}

	if c := t.peek(); c == 'e' || c == 'E' {
		t.read()
		if c := t.peek(); c == '+' || c == '-' {
			t.read()
		}
		if !isDigit(t.peek()) {
			return "", tokenError, t.invalidChar(t.peek())
		}
		t.readDigits()
		tok = tokenFloat
	}

	if c := t.peek(); isIdentifierPart(c) || c == '.' {
		return "", tokenError, t.invalidChar(c)
	}

	return string(t.in[start:t.off]), tok, nil
}

func (t *tokenizer) readDigits() {
	for isDigit(t.peek()) {
		t.read()
	}
}

// readSymbol reads an identifier.
func (t *tokenizer) readSymbol() string {
	start := t.off
	for isIdentifierPart(t.peek()) {
		t.read()
	}
	return string(t.in[start:t.off])
}

// readString reads the rest of a quoted string, the opening quote having
// already been consumed.
func (t *tokenizer) readString() (string, error) {
	ret := strings.Builder{}

	for {
		c := t.read()
		switch {
		case c == -1:
			return "", t.errorf(t.pos, "unterminated string")

		case c == '"':
			return ret.String(), nil

		case c == '\\':
			r, err := t.readEscapedChar()
			if err != nil {
				return "", err
			}
			ret.WriteRune(r)

		case c < 0x20 && !t.ron:
			return "", t.invalidChar(c)

		default:
			ret.WriteByte(byte(c))
		}
	}
}

// readEscapedChar reads the character following a backslash.
func (t *tokenizer) readEscapedChar() (rune, error) {
	c := t.read()
	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		if t.ron {
			return 0, nil
		}
	case 'u':
		if t.ron && t.peek() == '{' {
			return t.readBracedEscape()
		}
		return t.readUTF16Escape()
	}
	return 0, t.invalidChar(c)
}

// readUTF16Escape reads the XXXX of \uXXXX, combining surrogate pairs.
func (t *tokenizer) readUTF16Escape() (rune, error) {
	r, err := t.readHex(4)
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r) {
		return r, nil
	}

	if t.peek() != '\\' {
		return utf8.RuneError, nil
	}
	save := *t
	t.read()
	if t.read() != 'u' {
		*t = save
		return utf8.RuneError, nil
	}
	r2, err := t.readHex(4)
	if err != nil {
		return 0, err
	}
	return utf16.DecodeRune(r, r2), nil
}

// readBracedEscape reads the {X..} of a RON \u{X..} escape.
func (t *tokenizer) readBracedEscape() (rune, error) {
	t.read()

	var r rune
	n := 0
	for ; isHexDigit(t.peek()); n++ {
		r = r<<4 | rune(fromHex(t.read()))
	}
	if n == 0 || n > 6 {
		return 0, t.errorf(t.pos, "invalid unicode escape")
	}
	if c := t.read(); c != '}' {
		return 0, t.invalidChar(c)
	}
	if !utf8.ValidRune(r) {
		return 0, t.errorf(t.pos, "invalid unicode escape")
	}
	return r, nil
}

func (t *tokenizer) readHex(n int) (rune, error) {
	var r rune
	for i := 0; i < n; i++ {
		c := t.read()
		if !isHexDigit(c) {
			return 0, t.invalidChar(c)
		}
		r = r<<4 | rune(fromHex(c))
	}
	return r, nil
}

func fromHex(c int) int {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func (t *tokenizer) invalidChar(c int) error {
	if c == -1 {
		return t.errorf(Position{t.line, t.col}, "unexpected end of input")
	}
	return t.errorf(Position{t.line, t.col}, fmt.Sprintf("unexpected character %q", rune(c)))
}

func (t *tokenizer) errorf(pos Position, msg string) error {
	return &SyntaxError{Msg: msg, Position: pos}
}

// peek returns the next byte without consuming it, or -1 at the end of input.
func (t *tokenizer) peek() int {
	if t.off >= len(t.in) {
		return -1
	}
	return int(t.in[t.off])
}

// read consumes and returns the next byte, or -1 at the end of input.
// Columns count characters, not bytes.
func (t *tokenizer) read() int {
	if t.off >= len(t.in) {
		return -1
	}
	c := t.in[t.off]
	t.off++

	switch {
	case c == '\n':
		t.line++
		t.col = 1
	case c&0xC0 != 0x80:
		t.col++
	}
	return int(c)
}
