/*
   Instruction: 32-bit fixed encoding of {opcode, rd, rs, imm16}.

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

// Package instruction defines the VM's single 32-bit instruction format and
// its encode/decode pair.
package instruction

import "github.com/simpleworld/vm/vm/word"

// Instruction is the decoded form of a 32-bit instruction word:
//
//	31        24 23      20 19      16 15             0
//	+-----------+----------+----------+----------------+
//	|    code    |   first  |  second  |     address    |
//	+-----------+----------+----------+----------------+
type Instruction struct {
	Code    uint8  // opcode
	First   uint8  // rd, register index 0..15
	Second  uint8  // rs, register index 0..15
	Address uint16 // 16-bit immediate / address
}

// Encode packs inst into its logical (host-independent) 32-bit word.
func Encode(inst Instruction) word.Word {
	return word.Word(inst.Code)<<24 |
		word.Word(inst.First)<<20 |
		word.Word(inst.Second)<<16 |
		word.Word(inst.Address)
}

// Decode unpacks w into an Instruction, the inverse of Encode.
func Decode(w word.Word) Instruction {
	return Instruction{
		Code:    uint8(w >> 24),
		First:   uint8((w >> 20) & 0xf),
		Second:  uint8((w >> 16) & 0xf),
		Address: uint16(w & 0xffff),
	}
}
