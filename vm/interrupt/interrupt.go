/*
   Interrupt: the CPU's synchronous, prioritised exception/event mechanism.

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

// Package interrupt defines the Interrupt value the CPU carries between a
// handler raising one and the end-of-cycle dispatch that may deliver it,
// plus the registry's predefined codes.
package interrupt

import "github.com/simpleworld/vm/vm/word"

// Predefined interrupt codes every default ISA registers.
const (
	InvalidInstruction   uint8 = 0
	InvalidMemoryLocation uint8 = 1
	DivisionByZero       uint8 = 2
	TimerInterrupt       uint8 = 3
	InvalidWorldCommand  uint8 = 4
	WorldEvent           uint8 = 5
	SoftwareInterrupt    uint8 = 6
)

// Names are the mnemonics bound to the predefined codes above, in code order.
var Names = [...]string{
	InvalidInstruction:    "InvalidInstruction",
	InvalidMemoryLocation: "InvalidMemoryLocation",
	DivisionByZero:        "DivisionByZero",
	TimerInterrupt:        "TimerInterrupt",
	InvalidWorldCommand:   "InvalidWorldCommand",
	WorldEvent:            "WorldEvent",
	SoftwareInterrupt:     "SoftwareInterrupt",
}

// Interrupt is a pending exception/event: a code identifying its handler
// slot in the interrupt table, plus three argument words copied into
// r0..r2 on delivery.
type Interrupt struct {
	Code uint8
	R0   word.Word
	R1   word.Word
	R2   word.Word
}

// New builds an Interrupt carrying no argument words.
func New(code uint8) Interrupt {
	return Interrupt{Code: code}
}
