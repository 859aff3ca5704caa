/*
   Word: byte-level primitives for the 32-bit words the VM operates on.

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

// Package word holds the only primitives in the VM that know about byte
// layout. A Word is an abstract 32-bit value everywhere above this package;
// here it is a concrete byte sequence numbered MSB-first (byte 0 is always
// the most significant byte of the logical value), independent of host
// endianness.
package word

// Word is a 32-bit value, host-endian in registers and Go variables,
// big-endian only when serialized to memory or an object file.
type Word = uint32

// GetByte returns byte i (0 = MSB) of w.
func GetByte(w Word, i int) uint8 {
	return uint8(w >> ((3 - i) * 8))
}

// SetByte sets byte i (0 = MSB) of *w to v.
func SetByte(w *Word, i int, v uint8) {
	shift := uint((3 - i) * 8)
	mask := Word(0xff) << shift
	*w = (*w &^ mask) | (Word(v) << shift)
}

// ChangeByteOrder reverses all four bytes of w.
func ChangeByteOrder(w Word) Word {
	return (w>>24)&0xff | (w>>8)&0xff00 | (w<<8)&0xff0000 | (w << 24)
}

// ChangeByteOrderMiddle swaps byte pairs (0,1) and (2,3), leaving the halves
// in place. Memory does not use it: unaligned accesses copy the four bytes
// one at a time.
func ChangeByteOrderMiddle(w Word) Word {
	return (w>>8)&0x00ff00ff | (w<<8)&0xff00ff00
}
