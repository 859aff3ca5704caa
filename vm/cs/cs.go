/*
   CS: code-segment / interrupt control register.

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

// Package cs models the CPU's control/status register: the interrupt
// table pointer plus the enable/interrupt flags and the nesting cap.
package cs

import "github.com/simpleworld/vm/vm/word"

const (
	// ENABLEFlag gates whether interrupts are delivered at all.
	ENABLEFlag word.Word = 0x00000020
	// INTERRUPTFlag is set while a handler is executing.
	INTERRUPTFlag word.Word = 0x00000010

	maxInterruptsMask word.Word = 0x0000000f
	itpShift                    = 16
)

// CS is the decoded control/status register.
type CS struct {
	ITP           uint16 // interrupt-table pointer: byte address of the first handler descriptor
	Enable        bool   // interrupts globally enabled
	Interrupt     bool   // currently inside a handler
	MaxInterrupts uint8  // maximum nesting depth (4 bits)
}

// Encode packs cs into its 32-bit wire form:
//
//	31            16 15      6   5    4   3    0
//	+---------------+---------+----+----+------+
//	|      itp      |  unused | EN | IR |  max |
//	+---------------+---------+----+----+------+
//
// itp occupies the top 16 bits; ENABLEFlag (bit 5) and INTERRUPTFlag
// (bit 4) sit directly above max_interrupts, which is the low nibble.
func (cs CS) Encode() word.Word {
	w := word.Word(cs.ITP) << itpShift
	if cs.Enable {
		w |= ENABLEFlag
	}
	if cs.Interrupt {
		w |= INTERRUPTFlag
	}
	w |= word.Word(cs.MaxInterrupts) & maxInterruptsMask
	return w
}

// Decode unpacks a 32-bit wire value into a CS, the inverse of Encode.
func Decode(w word.Word) CS {
	return CS{
		ITP:           uint16(w >> itpShift),
		Enable:        w&ENABLEFlag != 0,
		Interrupt:     w&INTERRUPTFlag != 0,
		MaxInterrupts: uint8(w & maxInterruptsMask),
	}
}
