/*
   ISA: instruction-set registry binding opcodes, registers and interrupt
   codes to names and behaviour.

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

// Package isa is the instruction-set registry: three bijective tables
// (opcode<->mnemonic, register code<->name, interrupt code<->name) plus
// an opcode->InstructionInfo map carrying the handler each opcode
// dispatches to. Handler dispatch is data, not inheritance: adding an
// opcode is a map insert, never a new type in a hierarchy.
package isa

import (
	"fmt"

	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/memory"
)

// Register codes for the 16-word register file: r0..r12 are
// general-purpose, sgp is the call segment-prefix register, sp is the
// stack pointer, pc is the program counter. All three of sgp/sp/pc are
// ordinary entries of the same 16-word file, not a separate register
// bank, so that the interrupt save/restore path (4.6) can treat the
// whole file uniformly.
const (
	R0 uint8 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	SGP
	SP
	PC
)

// NumRegisters is the size of the register file in words.
const NumRegisters = 16

// CodeNotFound is returned when a code has no registered name/info.
type CodeNotFound struct {
	Code uint8
	Kind string // "register", "interrupt" or "instruction"
}

func (e *CodeNotFound) Error() string {
	return fmt.Sprintf("isa: %s code %#x not found", e.Kind, e.Code)
}

// NameNotFound is returned when a name has no registered code.
type NameNotFound struct {
	Name string
	Kind string
}

func (e *NameNotFound) Error() string {
	return fmt.Sprintf("isa: %s %q not found", e.Kind, e.Name)
}

// UpdateKind tags the result a Handler returns, replacing the thrown
// exceptions of the design this registry's shape is modelled on.
type UpdateKind uint8

const (
	UpdateNone UpdateKind = iota
	UpdatePC
	UpdateStop
	UpdateRaise
)

// Update is what a Handler returns after executing one instruction.
type Update struct {
	Kind UpdateKind
	// Code is only meaningful when Kind == UpdateRaise.
	Code uint8
}

// None, Advance, Halt and Raise build the four Update variants.
func None() Update          { return Update{Kind: UpdateNone} }
func Advance() Update       { return Update{Kind: UpdatePC} }
func Halt() Update          { return Update{Kind: UpdateStop} }
func Raise(code uint8) Update { return Update{Kind: UpdateRaise, Code: code} }

// Handler is the implementation callable bound to an opcode. regs is the
// 16-word register file, mem is main memory, inst is the decoded
// instruction being executed, and out receives at most one interrupt the
// handler wants raised (out.Code/out.R0.. are only meaningful if the
// handler sets *raised true).
type Handler func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) Update

// InstructionInfo describes one opcode: its canonical name, how many
// register operands it takes, whether it carries a 16-bit immediate,
// and the Handler that implements it.
type InstructionInfo struct {
	Code         uint8
	Name         string
	NRegs        int
	HasImmediate bool
	Handler      Handler
}

// ISA is a mutable registry of the three bijective tables plus the
// instruction table. The zero value has nil maps and cannot be added to;
// use New for an empty registry, Default for one with the register and
// interrupt tables filled in, and the cpu package's NewISA for one that
// also carries every opcode this VM defines.
type ISA struct {
	registerName  map[uint8]string
	registerCode  map[string]uint8
	interruptName map[uint8]string
	interruptCode map[string]uint8
	instructions  map[uint8]InstructionInfo
	instrCode     map[string]uint8
}

// New returns an empty registry.
func New() *ISA {
	return &ISA{
		registerName:  make(map[uint8]string),
		registerCode:  make(map[string]uint8),
		interruptName: make(map[uint8]string),
		interruptCode: make(map[string]uint8),
		instructions:  make(map[uint8]InstructionInfo),
		instrCode:     make(map[string]uint8),
	}
}

// AddRegister registers a register name for code. Both must be unique.
func (isa *ISA) AddRegister(code uint8, name string) {
	isa.registerName[code] = name
	isa.registerCode[name] = code
}

// RemoveRegister drops the registration for code.
func (isa *ISA) RemoveRegister(code uint8) {
	name, ok := isa.registerName[code]
	if !ok {
		return
	}
	delete(isa.registerName, code)
	delete(isa.registerCode, name)
}

// RegisterName looks up the name bound to code.
func (isa *ISA) RegisterName(code uint8) (string, error) {
	name, ok := isa.registerName[code]
	if !ok {
		return "", &CodeNotFound{Code: code, Kind: "register"}
	}
	return name, nil
}

// RegisterCode looks up the code bound to name.
func (isa *ISA) RegisterCode(name string) (uint8, error) {
	code, ok := isa.registerCode[name]
	if !ok {
		return 0, &NameNotFound{Name: name, Kind: "register"}
	}
	return code, nil
}

// RegisterCodes enumerates every registered register code.
func (isa *ISA) RegisterCodes() []uint8 {
	return codes(isa.registerName)
}

// AddInterrupt registers an interrupt name for code.
func (isa *ISA) AddInterrupt(code uint8, name string) {
	isa.interruptName[code] = name
	isa.interruptCode[name] = code
}

// RemoveInterrupt drops the registration for code.
func (isa *ISA) RemoveInterrupt(code uint8) {
	name, ok := isa.interruptName[code]
	if !ok {
		return
	}
	delete(isa.interruptName, code)
	delete(isa.interruptCode, name)
}

// InterruptName looks up the name bound to code.
func (isa *ISA) InterruptName(code uint8) (string, error) {
	name, ok := isa.interruptName[code]
	if !ok {
		return "", &CodeNotFound{Code: code, Kind: "interrupt"}
	}
	return name, nil
}

// InterruptCode looks up the code bound to name.
func (isa *ISA) InterruptCode(name string) (uint8, error) {
	code, ok := isa.interruptCode[name]
	if !ok {
		return 0, &NameNotFound{Name: name, Kind: "interrupt"}
	}
	return code, nil
}

// InterruptCodes enumerates every registered interrupt code.
func (isa *ISA) InterruptCodes() []uint8 {
	return codes(isa.interruptName)
}

// AddInstruction registers info under info.Code and info.Name.
func (isa *ISA) AddInstruction(info InstructionInfo) {
	isa.instructions[info.Code] = info
	isa.instrCode[info.Name] = info.Code
}

// RemoveInstruction drops the registration for code.
func (isa *ISA) RemoveInstruction(code uint8) {
	info, ok := isa.instructions[code]
	if !ok {
		return
	}
	delete(isa.instructions, code)
	delete(isa.instrCode, info.Name)
}

// InstructionInfo looks up the full registration for code.
func (isa *ISA) InstructionInfo(code uint8) (InstructionInfo, error) {
	info, ok := isa.instructions[code]
	if !ok {
		return InstructionInfo{}, &CodeNotFound{Code: code, Kind: "instruction"}
	}
	return info, nil
}

// InstructionCode looks up the opcode bound to a mnemonic.
func (isa *ISA) InstructionCode(name string) (uint8, error) {
	code, ok := isa.instrCode[name]
	if !ok {
		return 0, &NameNotFound{Name: name, Kind: "instruction"}
	}
	return code, nil
}

// InstructionCodes enumerates every registered opcode.
func (isa *ISA) InstructionCodes() []uint8 {
	return codes(isa.instructions)
}

// Default returns a registry with the register and interrupt tables
// pre-populated per the canonical register file (r0..r12, sgp, sp, pc)
// and the predefined interrupt codes. The instruction table is left
// empty: the opcode handlers live in the cpu package (and its world
// handler closes over the CPU), so cpu wires them in itself, which keeps
// isa from depending on cpu.
func Default() *ISA {
	isa := New()

	names := [NumRegisters]string{
		R0: "r0", R1: "r1", R2: "r2", R3: "r3", R4: "r4", R5: "r5", R6: "r6",
		R7: "r7", R8: "r8", R9: "r9", R10: "r10", R11: "r11", R12: "r12",
		SGP: "sgp", SP: "sp", PC: "pc",
	}
	for code, name := range names {
		isa.AddRegister(uint8(code), name)
	}

	for code, name := range interrupt.Names {
		isa.AddInterrupt(uint8(code), name)
	}

	return isa
}

func codes[V any](m map[uint8]V) []uint8 {
	out := make([]uint8, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
