package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Branches: b (unconditional), plus ten conditional forms split by
// signed/unsigned comparison. A taken branch sets PC directly (Update
// None, so Next does not also add 4); a not-taken branch yields UpdatePC.

func hB(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	_ = regs.SetWord(uint32(isa.PC)*4, uint32(inst.Address), true)
	return isa.None()
}

type cond func(a, b uint32) bool

func branchOp(c cond) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		a := regs.At(uint32(inst.First) * 4)
		b := regs.At(uint32(inst.Second) * 4)
		if c(a, b) {
			_ = regs.SetWord(uint32(isa.PC)*4, uint32(inst.Address), true)
			return isa.None()
		}
		return isa.Advance()
	}
}

func condEq(a, b uint32) bool  { return a == b }
func condNe(a, b uint32) bool  { return a != b }
func condLt(a, b uint32) bool  { return int32(a) < int32(b) }
func condLtu(a, b uint32) bool { return a < b }
func condGt(a, b uint32) bool  { return int32(a) > int32(b) }
func condGtu(a, b uint32) bool { return a > b }
func condLe(a, b uint32) bool  { return int32(a) <= int32(b) }
func condLeu(a, b uint32) bool { return a <= b }
func condGe(a, b uint32) bool  { return int32(a) >= int32(b) }
func condGeu(a, b uint32) bool { return a >= b }
