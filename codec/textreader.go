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
	"io"
)

// textReader reads JSON or RON text. RON-only constructs, such as parenthesized
// structs, Some(...) and comments, are syntax errors in JSON mode.
type textReader struct {
	reader
	tok *tokenizer
	ron bool
	ctx ctxstack

	// first is true until the current container yields its first value.
	first bool

	// pending is true while the current value is a container that has not
	// been stepped into; the tokenizer is still on its opening token.
	pending bool
	inner   ctx

	// wraps counts the Some( wrappers around the current value, and
	// wrapStack those around each container stepped into.
	wraps     int
	wrapStack []int
}

// NewJSONReader returns a Reader over JSON text. Multiple top-level values
// may follow one another, separated by whitespace.
func NewJSONReader(in []byte) Reader {
	return newTextReader(tokenizeJSON(in), false)
}

// NewRONReader returns a Reader over RON text.
func NewRONReader(in []byte) Reader {
	return newTextReader(tokenizeRON(in), true)
}

// readAll reads everything from in, wrapping failures in an IOError.
func readAll(in io.Reader) ([]byte, error) {
	bs, err := io.ReadAll(in)
	if err != nil {
		return nil, &IOError{err}
	}
	return bs, nil
}

func newTextReader(tok *tokenizer, ron bool) *textReader {
	t := &textReader{tok: tok, ron: ron, first: true}
	if err := tok.Next(); err != nil {
		t.explode(err)
	}
	return t
}

// Next moves the reader to the next value.
func (t *textReader) Next() bool {
	if t.err != nil || t.eof {
		return false
	}

	if err := t.finishValue(); err != nil {
		t.explode(err)
		return false
	}
	t.clear()

	done, err := t.nextSeparator()
	if err != nil {
		t.explode(err)
		return false
	}
	if done {
		t.eof = true
		return false
	}

	if err := t.nextKey(); err != nil {
		t.explode(err)
		return false
	}

	if err := t.nextValue(); err != nil {
		t.explode(err)
		return false
	}
	return true
}

// closer returns the token that ends the current container.
func (t *textReader) closer() token {
	switch t.ctx.peek() {
	case ctxInList:
		return tokenCloseBracket
	case ctxInObject, ctxInMap:
		return tokenCloseBrace
	case ctxInStruct, ctxInTuple:
		return tokenCloseParen
	default:
		return tokenEOF
	}
}

// nextSeparator consumes the comma before a value, returning true if the
// current container has ended instead.
func (t *textReader) nextSeparator() (bool, error) {
	closer := t.closer()
	tok := t.tok.Token()

	if t.first || t.ctx.peek() == ctxAtTopLevel {
		t.first = false
		return tok == closer, nil
	}

	switch tok {
	case closer:
		return true, nil

	case tokenComma:
		if err := t.tok.Next(); err != nil {
			return false, err
		}
		if t.tok.Token() == closer {
			if !t.ron {
				return false, t.unexpected("after ,")
			}
			return true, nil
		}
		return false, nil

	default:
		return false, t.unexpected(fmt.Sprintf("expecting , or %v", closer))
	}
}

// nextKey reads the field name or map key that precedes a value.
func (t *textReader) nextKey() error {
	c := t.ctx.peek()
	if !c.keyed() {
		return nil
	}

	tok := t.tok.Token()
	switch {
	case c == ctxInObject && tok == tokenString:
	case c == ctxInStruct && tok == tokenSymbol:
	case c == ctxInMap && (tok == tokenString || tok == tokenSymbol || tok == tokenInt || tok == tokenFloat):
	case c == ctxInMap && (tok.isOpen()):
		return &SyntaxError{"map keys must be scalars", t.tok.pos}
	default:
		return t.unexpected(fmt.Sprintf("expecting %v key", c))
	}
	t.fieldName = t.tok.val

	if err := t.tok.Next(); err != nil {
		return err
	}
	if t.tok.Token() != tokenColon {
		return t.unexpected("expecting :")
	}
	return t.tok.Next()
}

// nextValue reads the start of a value: all of a scalar, or the opening
// token of a container.
func (t *textReader) nextValue() error {
	t.pos = t.tok.pos
	t.wraps = 0

	for {
		tok := t.tok.Token()
		switch tok {
		case tokenOpenBracket:
			return t.onContainer(ListType, ctxInList)

		case tokenOpenBrace:
			if t.ron {
				return t.onContainer(MapType, ctxInMap)
			}
			return t.onContainer(StructType, ctxInObject)

		case tokenOpenParen:
			isStruct, err := t.isStruct()
			if err != nil {
				return err
			}
			if isStruct {
				return t.onContainer(StructType, ctxInStruct)
			}
			return t.onContainer(ListType, ctxInTuple)

		case tokenInt:
			return t.onScalar(IntType)

		case tokenFloat:
			return t.onScalar(FloatType)

		case tokenString:
			return t.onScalar(StringType)

		case tokenSymbol:
			more, err := t.onSymbol()
			if err != nil || !more {
				return err
			}

		default:
			return t.unexpected("expecting a value")
		}
	}
}

// onSymbol handles a bare word, returning true if it was a prefix such as
// Some( or a struct name and the value proper is still to come.
func (t *textReader) onSymbol() (bool, error) {
	val := t.tok.val

	if !t.ron {
		switch val {
		case "true", "false":
			return false, t.onScalar(BoolType)
		case "null":
			return false, t.onScalar(NullType)
		}
		return false, t.unexpected("expecting a value")
	}

	switch val {
	case "true", "false":
		return false, t.onScalar(BoolType)
	case "None":
		return false, t.onScalar(NullType)
	case "inf", "NaN":
		return false, t.onScalar(FloatType)
	}

	next := t.peekToken()
	if next != tokenOpenParen {
		// A unit enum variant or unit struct name.
		return false, t.onScalar(SymbolType)
	}

	if err := t.tok.Next(); err != nil {
		return false, err
	}
	if val == "Some" {
		if err := t.tok.Next(); err != nil {
			return false, err
		}
		t.wraps++
	}
	// Otherwise the name of a struct or tuple struct, which is ignored.
	return true, nil
}

// isStruct looks past an opening paren to decide between a struct, whose
// first token is a field name followed by a colon, and a tuple. () is an
// empty struct.
func (t *textReader) isStruct() (bool, error) {
	peek := *t.tok
	if err := peek.Next(); err != nil {
		return false, err
	}
	switch peek.Token() {
	case tokenCloseParen:
		return true, nil
	case tokenSymbol:
		if err := peek.Next(); err != nil {
			return false, err
		}
		return peek.Token() == tokenColon, nil
	}
	return false, nil
}

// peekToken returns the token after the current one.
func (t *textReader) peekToken() token {
	peek := *t.tok
	if err := peek.Next(); err != nil {
		return tokenError
	}
	return peek.Token()
}

func (t *textReader) onContainer(typ Type, c ctx) error {
	t.valueType = typ
	t.inner = c
	t.pending = true
	return nil
}

func (t *textReader) onScalar(typ Type) error {
	t.valueType = typ
	t.value = t.tok.val
	if err := t.tok.Next(); err != nil {
		return err
	}
	return t.closeWraps(t.wraps)
}

// closeWraps consumes the closing parens of n Some( wrappers.
func (t *textReader) closeWraps(n int) error {
	for ; n > 0; n-- {
		if t.tok.Token() != tokenCloseParen {
			return t.unexpected("expecting ) to close Some(")
		}
		if err := t.tok.Next(); err != nil {
			return err
		}
	}
	return nil
}

// finishValue skips the current value if it is a container that was never
// stepped into.
func (t *textReader) finishValue() error {
	if !t.pending {
		return nil
	}
	t.pending = false

	var open []token
	for {
		tok := t.tok.Token()
		switch {
		case tok.isOpen():
			open = append(open, tok.closer())
		case tok == tokenEOF:
			return t.unexpected("in container")
		case tok == tokenCloseParen || tok == tokenCloseBrace || tok == tokenCloseBracket:
			if len(open) == 0 || open[len(open)-1] != tok {
				return t.unexpected("in container")
			}
			open = open[:len(open)-1]
		}

		if err := t.tok.Next(); err != nil {
			return err
		}
		if len(open) == 0 {
			return t.closeWraps(t.wraps)
		}
	}
}

// StepIn steps in to the current container.
func (t *textReader) StepIn() error {
	if t.err != nil {
		return t.err
	}
	if !t.pending {
		return &UsageError{"Reader.StepIn", fmt.Sprintf("cannot step in to a %v", t.valueType)}
	}

	t.pending = false
	t.ctx.push(t.inner)
	t.wrapStack = append(t.wrapStack, t.wraps)
	t.wraps = 0
	t.first = true
	t.eof = false
	t.clear()

	if err := t.tok.Next(); err != nil {
		t.explode(err)
		return err
	}
	return nil
}

// StepOut steps out of the current container, skipping any values left in it.
func (t *textReader) StepOut() error {
	if t.err != nil {
		return t.err
	}
	if t.ctx.peek() == ctxAtTopLevel {
		return &UsageError{"Reader.StepOut", "cannot step out of top-level datagram"}
	}

	for t.Next() {
	}
	if t.err != nil {
		return t.err
	}

	wraps := t.wrapStack[len(t.wrapStack)-1]
	t.wrapStack = t.wrapStack[:len(t.wrapStack)-1]
	t.ctx.pop()
	t.first = false
	t.eof = false
	t.clear()

	// The container's closing token.
	err := t.tok.Next()
	if err == nil {
		err = t.closeWraps(wraps)
	}
	if err != nil {
		t.explode(err)
		return err
	}
	return nil
}

func (t *textReader) unexpected(context string) error {
	tok := t.tok.Token()
	what := tok.String()
	if tok == tokenSymbol || tok == tokenInt || tok == tokenFloat {
		what = t.tok.val
	}
	return &SyntaxError{fmt.Sprintf("unexpected %v %v", what, context), t.tok.pos}
}

// explode explodes the reader state when something unexpected
// happens and further calls to Next are a bad idea.
func (t *textReader) explode(err error) {
	t.err = err
	t.clear()
}
