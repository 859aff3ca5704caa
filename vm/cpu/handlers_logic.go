package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Logic: not, or, and, xor, plus the ori/andi/xori zero-extended
// immediate variants. The non-immediate three-register forms repurpose
// the 16-bit address field to hold the third operand's register number
// directly, since the encoding has only two 4-bit register slots (see
// SPEC_FULL.md's Open Question resolutions).

func hNot(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	v := regs.At(uint32(inst.Second) * 4)
	_ = regs.SetWord(uint32(inst.First)*4, ^v, true)
	return isa.Advance()
}

func orOp(a, b uint32) uint32  { return a | b }
func andOp(a, b uint32) uint32 { return a & b }
func xorOp(a, b uint32) uint32 { return a ^ b }
