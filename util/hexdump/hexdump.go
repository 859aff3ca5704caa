/*
   hexdump - Fixed-width hex formatting for trace output.

   Copyright 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE.
*/

// Package hexdump formats 32-bit words as fixed-width hex for trace
// logging; the CPU's optional per-cycle trace line is its one user.
package hexdump

import "strings"

var hexDigits = "0123456789abcdef"

// Word appends the 8 hex digits of w to str, followed by a trailing space.
func Word(str *strings.Builder, w uint32) {
	shift := 28
	for i := 0; i < 8; i++ {
		str.WriteByte(hexDigits[(w>>shift)&0xf])
		shift -= 4
	}
	str.WriteByte(' ')
}

// Words formats a sequence of words space-separated, e.g. for a register
// dump or a short memory window in a trace line.
func Words(words []uint32) string {
	var b strings.Builder
	for _, w := range words {
		Word(&b, w)
	}
	return strings.TrimRight(b.String(), " ")
}
