/*
   Memory: sized byte buffer with aligned/unaligned word access.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package memory is the VM's byte-addressable storage: a contiguous buffer
// with word-sized accessors that tolerate unaligned addresses. Every word
// that crosses the Memory boundary is big-endian on the wire; callers get
// back a host-endian Word unless they ask for the raw big-endian pattern.
package memory

import (
	"fmt"

	"github.com/simpleworld/vm/vm/word"
)

// Error is raised for out-of-range accesses.
type Error struct {
	File     string
	Line     uint32
	Function string
	What     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.What)
}

func newError(function, what string) *Error {
	return &Error{Function: function, What: what}
}

// Memory is a contiguous byte buffer whose size is always a multiple of 4.
type Memory struct {
	buf []byte
}

// New creates a zeroed Memory of size bytes. size is rounded up to the next
// multiple of 4.
func New(size uint32) *Memory {
	m := &Memory{}
	m.Resize(size)
	return m
}

// Resize grows or shrinks the buffer in place, zeroing any newly added
// bytes. size is rounded up to the next multiple of 4.
func (m *Memory) Resize(size uint32) {
	if rem := size % 4; rem != 0 {
		size += 4 - rem
	}
	buf := make([]byte, size)
	copy(buf, m.buf)
	m.buf = buf
}

// Size returns the buffer length in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.buf))
}

// GetWord reads the 4 bytes starting at addr. If bigEndian is true (the
// default meaning), the returned Word is the host-endian interpretation of
// those big-endian-on-the-wire bytes; if false, the bytes are returned
// byte-order-swapped (the raw wire pattern reinterpreted host-endian).
// addr need not be word-aligned: an unaligned read combines the two
// aligned words that straddle it.
func (m *Memory) GetWord(addr uint32, bigEndian bool) (word.Word, error) {
	if addr+4 > m.Size() || addr+4 < addr {
		return 0, newError("GetWord", fmt.Sprintf("address %#x out of range", addr))
	}

	var w word.Word
	for i := 0; i < 4; i++ {
		word.SetByte(&w, i, m.buf[addr+uint32(i)])
	}
	if !bigEndian {
		w = word.ChangeByteOrder(w)
	}
	return w, nil
}

// SetWord writes w to the 4 bytes starting at addr, symmetric with GetWord.
func (m *Memory) SetWord(addr uint32, w word.Word, bigEndian bool) error {
	if addr+4 > m.Size() || addr+4 < addr {
		return newError("SetWord", fmt.Sprintf("address %#x out of range", addr))
	}

	if !bigEndian {
		w = word.ChangeByteOrder(w)
	}
	for i := 0; i < 4; i++ {
		m.buf[addr+uint32(i)] = word.GetByte(w, i)
	}
	return nil
}

// At returns the word at addr (shorthand read, host-endian). It has no
// error result: an out-of-range read returns 0.
func (m *Memory) At(addr uint32) word.Word {
	w, err := m.GetWord(addr, true)
	if err != nil {
		return 0
	}
	return w
}

// Bytes exposes the raw underlying buffer, e.g. for loading an object file.
func (m *Memory) Bytes() []byte {
	return m.buf
}
