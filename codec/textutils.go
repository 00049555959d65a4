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
	"io"
	"math"
	"strconv"
	"strings"
)

const hexChars = "0123456789abcdef"

// ioWriter wraps errors from the underlying io.Writer in an IOError.
type ioWriter struct {
	out io.Writer
}

func (w ioWriter) Write(p []byte) (int, error) {
	n, err := w.out.Write(p)
	if err != nil {
		return n, &IOError{err}
	}
	return n, nil
}

// Is this a valid RON identifier?
func isIdentifier(s string) bool {
	if s == "" || !isIdentifierStart(int(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentifierPart(int(s[i])) {
			return false
		}
	}
	return true
}

// Is this a valid first character for an identifier?
func isIdentifierStart(c int) bool {
	if c >= 'a' && c <= 'z' {
		return true
	}
	if c >= 'A' && c <= 'Z' {
		return true
	}
	return c == '_'
}

// Is this a valid character for later in an identifier?
func isIdentifierPart(c int) bool {
	return isIdentifierStart(c) || isDigit(c)
}

// Is this a valid hex digit?
func isHexDigit(c int) bool {
	if isDigit(c) {
		return true
	}
	if c >= 'a' && c <= 'f' {
		return true
	}
	if c >= 'A' && c <= 'F' {
		return true
	}
	return false
}

// Is this a digit?
func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

// Is this character whitespace?
func isWhitespace(c int) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// formatFloat formats a float in RON style: the shortest text that reads back
// as the same value at the given bit size, always with a fraction or exponent
// so it is never mistaken for an integer.
func formatFloat(val float64, bitSize int) string {
	switch {
	case math.IsNaN(val):
		return "NaN"
	case math.IsInf(val, 1):
		return "inf"
	case math.IsInf(val, -1):
		return "-inf"
	}

	fmt := byte('f')
	if abs := math.Abs(val); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}

	str := strconv.FormatFloat(val, fmt, -1, bitSize)
	if !strings.ContainsAny(str, ".e") {
		str += ".0"
	}
	return str
}

// Write the given string out quoted, escaping any characters that need escaping.
func writeQuotedString(str string, out io.Writer) error {
	if err := writeRawChar('"', out); err != nil {
		return err
	}
	if err := writeEscapedString(str, out); err != nil {
		return err
	}
	return writeRawChar('"', out)
}

// Write the given string out, escaping any characters that need escaping.
func writeEscapedString(str string, out io.Writer) error {
	start := 0
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c < 32 || c == '\\' || c == '"' {
			if err := writeRawString(str[start:i], out); err != nil {
				return err
			}
			if err := writeEscapedChar(c, out); err != nil {
				return err
			}
			start = i + 1
		}
	}
	return writeRawString(str[start:], out)
}

// Write out the given character in escaped form.
func writeEscapedChar(c byte, out io.Writer) error {
	switch c {
	case '\t':
		return writeRawString("\\t", out)
	case '\n':
		return writeRawString("\\n", out)
	case '\r':
		return writeRawString("\\r", out)
	case '"':
		return writeRawString("\\\"", out)
	case '\\':
		return writeRawString("\\\\", out)
	default:
		buf := []byte{'\\', 'u', '{', hexChars[(c>>4)&0xF], hexChars[c&0xF], '}'}
		return writeRawChars(buf, out)
	}
}

// Write out the given raw string.
func writeRawString(s string, out io.Writer) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(out, s)
	return err
}

// Write out the given raw character sequence.
func writeRawChars(cs []byte, out io.Writer) error {
	_, err := out.Write(cs)
	return err
}

// Write out the given raw character.
func writeRawChar(c byte, out io.Writer) error {
	_, err := out.Write([]byte{c})
	return err
}
