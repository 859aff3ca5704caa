package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Data movement: move, load, loadi, loadhi, store, push, pop.

func hMove(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	_ = regs.SetWord(uint32(inst.First)*4, regs.At(uint32(inst.Second)*4), true)
	return isa.Advance()
}

// load rd, imm: rd = mem[imm].
func hLoad(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	w, err := mem.GetWord(uint32(inst.Address), true)
	if err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
		return isa.Advance()
	}
	_ = regs.SetWord(uint32(inst.First)*4, uint32(w), true)
	return isa.Advance()
}

// loadi rd, imm16: rd = zero_extend(imm16).
func hLoadi(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	_ = regs.SetWord(uint32(inst.First)*4, uint32(inst.Address), true)
	return isa.Advance()
}

// loadhi rd, imm16: rd = imm16 << 16 (high half set, low half cleared).
func hLoadhi(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	_ = regs.SetWord(uint32(inst.First)*4, uint32(inst.Address)<<16, true)
	return isa.Advance()
}

// store rd, rs: mem[regs[rd]] = regs[rs]; rd holds the target address.
func hStore(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	addr := regs.At(uint32(inst.First) * 4)
	v := regs.At(uint32(inst.Second) * 4)
	if err := mem.SetWord(addr, v, true); err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
	}
	return isa.Advance()
}

// push rd: mem[sp] = regs[rd]; sp -= 4.
func hPush(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	sp := regs.At(uint32(isa.SP) * 4)
	v := regs.At(uint32(inst.First) * 4)
	if err := mem.SetWord(sp, v, true); err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
		return isa.Advance()
	}
	_ = regs.SetWord(uint32(isa.SP)*4, sp-4, true)
	return isa.Advance()
}

// pop rd: sp += 4; regs[rd] = mem[sp].
func hPop(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	sp := regs.At(uint32(isa.SP)*4) + 4
	w, err := mem.GetWord(sp, true)
	if err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
		return isa.Advance()
	}
	_ = regs.SetWord(uint32(isa.SP)*4, sp, true)
	_ = regs.SetWord(uint32(inst.First)*4, uint32(w), true)
	return isa.Advance()
}
