package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Arithmetic: add/sub/mult/div/mod (signed), multu/divu/modu (unsigned),
// and the *i immediate variants (zero-extended, see SPEC_FULL.md's Open
// Question resolutions). div*/mod* raise DivisionByZero on a zero divisor.

type binOp func(a, b uint32) uint32

// regBinOp builds a Handler for the register-register form rd = op(rs, addr-as-reg).
func regBinOp(op binOp) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		a := regs.At(uint32(inst.Second) * 4)
		b := regs.At(uint32(inst.Address) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(a, b), true)
		return isa.Advance()
	}
}

// immBinOp builds a Handler for the register-immediate form rd = op(rs, imm16).
func immBinOp(op binOp) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		a := regs.At(uint32(inst.Second) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(a, uint32(inst.Address)), true)
		return isa.Advance()
	}
}

// regDivOp and immDivOp are like regBinOp/immBinOp but raise
// DivisionByZero instead of calling op when the divisor is 0.
func regDivOp(op binOp) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		b := regs.At(uint32(inst.Address) * 4)
		if b == 0 {
			*out = interrupt.Interrupt{Code: interrupt.DivisionByZero}
			*raised = true
			return isa.Advance()
		}
		a := regs.At(uint32(inst.Second) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(a, b), true)
		return isa.Advance()
	}
}

func immDivOp(op binOp) isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		b := uint32(inst.Address)
		if b == 0 {
			*out = interrupt.Interrupt{Code: interrupt.DivisionByZero}
			*raised = true
			return isa.Advance()
		}
		a := regs.At(uint32(inst.Second) * 4)
		_ = regs.SetWord(uint32(inst.First)*4, op(a, b), true)
		return isa.Advance()
	}
}

func addOp(a, b uint32) uint32  { return a + b }
func subOp(a, b uint32) uint32  { return a - b }
func multOp(a, b uint32) uint32 { return uint32(int32(a) * int32(b)) }
func multuOp(a, b uint32) uint32 { return a * b }

// divOp wraps two's-complement signed division; INT_MIN / -1 wraps to
// INT_MIN rather than trapping (the one case where a signed division
// would overflow the representable range).
func divOp(a, b uint32) uint32 {
	sa, sb := int32(a), int32(b)
	if sa == -1<<31 && sb == -1 {
		return a
	}
	return uint32(sa / sb)
}

func modOp(a, b uint32) uint32 {
	sa, sb := int32(a), int32(b)
	if sa == -1<<31 && sb == -1 {
		return 0
	}
	return uint32(sa % sb)
}

func divuOp(a, b uint32) uint32 { return a / b }
func moduOp(a, b uint32) uint32 { return a % b }
