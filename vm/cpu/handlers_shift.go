package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Shift/rotate: sll/srl logical, sla/sra arithmetic (sra sign-extends the
// vacated high bits), rl/rr rotate. Shift/rotate counts are taken modulo
// 32; a count congruent to 0 is the identity. The three-register forms
// read the count from the register named by inst.Address (see
// SPEC_FULL.md's Open Question resolutions), the *i forms from the raw
// 16-bit immediate.

func sllOp(v, count uint32) uint32 { return shiftLeft(v, count) }

func shiftLeft(v, count uint32) uint32 {
	n := count % 32
	if n == 0 {
		return v
	}
	return v << n
}

func shiftRightLogical(v, count uint32) uint32 {
	n := count % 32
	if n == 0 {
		return v
	}
	return v >> n
}

func shiftRightArithmetic(v, count uint32) uint32 {
	n := count % 32
	if n == 0 {
		return v
	}
	return uint32(int32(v) >> n)
}

func rotateLeft(v, count uint32) uint32 {
	n := count % 32
	if n == 0 {
		return v
	}
	return v<<n | v>>(32-n)
}

func rotateRight(v, count uint32) uint32 {
	n := count % 32
	if n == 0 {
		return v
	}
	return v>>n | v<<(32-n)
}

// regShiftOp builds a Handler reading the shift count from the register
// named by inst.Address (the three-register form).
func regShiftOp(op func(v, count uint32) uint32) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		v := regs.At(uint32(inst.Second) * 4)
		count := regs.At(uint32(inst.Address) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(v, count), true)
		return isa.Advance()
	}
}

// immShiftOp builds a Handler taking the shift count from the raw
// 16-bit immediate directly.
func immShiftOp(op func(v, count uint32) uint32) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		v := regs.At(uint32(inst.Second) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(v, uint32(inst.Address)), true)
		return isa.Advance()
	}
}
