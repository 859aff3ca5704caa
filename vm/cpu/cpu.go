/*
   CPU: fetch/decode/execute cycle, register file, interrupt dispatch.

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

// Package cpu drives the fetch/decode/execute cycle: a 16-word register
// file, main memory, the CS control register, an ISA registry and the
// synchronous interrupt mechanism the registry's opcodes can raise.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/simpleworld/vm/util/hexdump"
	"github.com/simpleworld/vm/vm/cs"
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Stopped is returned by Next when called on a halted machine.
type Stopped struct{}

func (*Stopped) Error() string { return "cpu: next called on a halted machine" }

// ActionBlocked is the error taxonomy's environment-collaborator signal:
// the world the CPU is embedded in refused to perform the requested
// action. It is never raised by this package (the environment is an
// external collaborator, out of this module's scope), and WorldTrap has
// no error result, so it does not pass through that callback either.
type ActionBlocked struct {
	Command uint16
}

func (e *ActionBlocked) Error() string {
	return fmt.Sprintf("cpu: world command %#x blocked", e.Command)
}

// WorldTrap is the injected callback backing the `world` opcode. Only the
// 16-bit immediate crosses into the environment collaborator (see the
// specification's conservative resolution of the trap's parameter
// marshalling); the bool return reports whether an interrupt should be
// raised as a result.
type WorldTrap func(imm uint16) (interrupt.Interrupt, bool)

// CPU is one runnable machine: a register file, main memory, the ISA
// registry driving instruction dispatch, the CS control register and the
// interrupt machinery it gates.
type CPU struct {
	Regs *memory.Memory // 64 bytes: 16 aligned words, see isa.R0..isa.PC
	Mem  *memory.Memory
	ISA  *isa.ISA
	CS   cs.CS

	Running bool

	depth   int // current interrupt nesting depth
	pending *interrupt.Interrupt

	World  WorldTrap
	Logger *slog.Logger // nil-safe; a nil logger silently discards

	// Trace, if set, turns on a per-cycle "fetched word at PC" debug line.
	// vmconfig's Debug.TraceCycles is the matching config toggle, but this
	// package does not read it. Off by default since it is the hottest line
	// in the whole CPU loop.
	Trace bool
}

// New creates a CPU over mem with a freshly built default ISA (all
// opcodes this package implements, wired to their handlers) and the
// register file zeroed. The CPU starts with Running = true, so Next can be
// called straight away.
func New(mem *memory.Memory, world WorldTrap) *CPU {
	c := &CPU{
		Regs:    memory.New(isa.NumRegisters * 4),
		Mem:     mem,
		Running: true,
		World:   world,
	}
	c.ISA = c.NewISA()
	return c
}

func (c *CPU) logf(format string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(fmt.Sprintf(format, args...))
}

func (c *CPU) traceFetch(pc uint32, w uint32) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug(fmt.Sprintf("cpu: pc=%08x word=%s", pc, hexdump.Words([]uint32{w})))
}

func (c *CPU) getReg(code uint8) uint32 {
	return c.Regs.At(uint32(code) * 4)
}

func (c *CPU) setReg(code uint8, v uint32) {
	// Register-file addresses are always in range (fixed 64-byte buffer);
	// the only failure SetWord can report is an out-of-range address.
	_ = c.Regs.SetWord(uint32(code)*4, v, true)
}

// Next runs one fetch/decode/execute cycle. If an interrupt was raised by
// the previous cycle's handler, this call drains it instead of fetching a
// new instruction — see the specification's cycle-ordering rule: an
// interrupt raised during cycle N is observed at the start of cycle N+1.
func (c *CPU) Next() error {
	if !c.Running {
		return &Stopped{}
	}

	if c.pending != nil {
		c.drainInterrupt(*c.pending)
		c.pending = nil
		return nil
	}

	pc := c.getReg(isa.PC)
	w, err := c.Mem.GetWord(pc, true)
	if err != nil {
		c.pending = &interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		c.setReg(isa.PC, pc+4)
		return nil
	}

	if c.Trace {
		c.traceFetch(pc, w)
	}

	inst := instruction.Decode(w)
	info, err := c.ISA.InstructionInfo(inst.Code)
	if err != nil {
		c.pending = &interrupt.Interrupt{Code: interrupt.InvalidInstruction}
		c.setReg(isa.PC, pc+4)
		return nil
	}

	// A handler signals an interrupt one of two ways: filling out/raised
	// directly (it also wants to carry argument words in r0..r2), or
	// simply returning isa.Raise(code) (no arguments; none of the default
	// handlers use this form).
	var out interrupt.Interrupt
	var raised bool
	update := info.Handler(c.Regs, c.Mem, inst, &out, &raised)
	if update.Kind == isa.UpdateRaise && !raised {
		out = interrupt.Interrupt{Code: update.Code}
		raised = true
	}

	switch update.Kind {
	case isa.UpdatePC, isa.UpdateRaise:
		c.setReg(isa.PC, c.getReg(isa.PC)+4)
	case isa.UpdateStop:
		c.Running = false
	case isa.UpdateNone:
		// PC already set by the handler (branch/call).
	}

	// rete's depth/cs.interrupt bookkeeping lives here rather than in the
	// handler itself: the Handler signature only sees (regs, mem, inst),
	// not the CPU's interrupt-nesting state.
	if inst.Code == opRete && c.depth > 0 {
		c.depth--
		if c.depth == 0 {
			c.CS.Interrupt = false
		}
	}

	if raised {
		c.pending = &out
	}
	return nil
}

// Execute runs Next in a tight loop until Running becomes false or Next
// reports an error.
func (c *CPU) Execute() error {
	for c.Running {
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

// drainInterrupt implements 4.6's delivery rule: if enabled and the
// nesting depth has room, push all 16 registers, load r0..r2 from the
// interrupt's argument words, vector through the interrupt table, and
// mark cs.interrupt. Otherwise the interrupt is dropped and logged.
func (c *CPU) drainInterrupt(in interrupt.Interrupt) {
	if !c.CS.Enable || c.depth >= int(c.CS.MaxInterrupts) {
		c.logf("cpu: dropping interrupt code %#x (enable=%v depth=%d max=%d)",
			in.Code, c.CS.Enable, c.depth, c.CS.MaxInterrupts)
		return
	}

	sp := c.getReg(isa.SP)
	for r := uint8(0); r <= isa.PC; r++ {
		_ = c.Mem.SetWord(sp, c.getReg(r), true)
		sp -= 4
	}
	c.setReg(isa.SP, sp)

	c.setReg(isa.R0, in.R0)
	c.setReg(isa.R1, in.R1)
	c.setReg(isa.R2, in.R2)

	handlerAddr := uint32(c.CS.ITP) + uint32(in.Code)*4
	target, err := c.Mem.GetWord(handlerAddr, true)
	if err != nil {
		c.logf("cpu: interrupt table read failed at %#x: %v", handlerAddr, err)
		return
	}
	c.setReg(isa.PC, target)

	c.depth++
	c.CS.Interrupt = true
}

// Raise queues in for delivery at the start of the next cycle, as if a
// handler had raised it. Used by the embedding environment (e.g. a timer
// tick) to inject TimerInterrupt/WorldEvent asynchronously between calls
// to Next.
func (c *CPU) Raise(in interrupt.Interrupt) {
	c.pending = &in
}
