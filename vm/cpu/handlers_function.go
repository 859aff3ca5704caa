package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Function: call, ret, rete. rete's extra bookkeeping (clearing
// cs.interrupt and decrementing the nesting depth) is not visible at the
// Handler level — see (*CPU).Next, which special-cases opRete after
// invoking this handler, since neither belongs to the Handler signature's
// narrow (regs, mem, inst) view of the world.

// call addr: mem[sp] = pc; sp -= 4; pc = (sgp << 16) + addr.
func hCall(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	sp := regs.At(uint32(isa.SP) * 4)
	pc := regs.At(uint32(isa.PC) * 4)
	if err := mem.SetWord(sp, pc, true); err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
		return isa.Advance()
	}
	_ = regs.SetWord(uint32(isa.SP)*4, sp-4, true)

	sgp := regs.At(uint32(isa.SGP) * 4)
	_ = regs.SetWord(uint32(isa.PC)*4, sgp<<16+uint32(inst.Address), true)
	return isa.None()
}

// ret: sp += 4; pc = mem[sp].
func hRet(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	sp := regs.At(uint32(isa.SP)*4) + 4
	w, err := mem.GetWord(sp, true)
	if err != nil {
		*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
		*raised = true
		return isa.Advance()
	}
	_ = regs.SetWord(uint32(isa.SP)*4, sp, true)
	_ = regs.SetWord(uint32(isa.PC)*4, uint32(w), true)
	return isa.Advance()
}

// rete: restore r15..r0 from the stack (the reverse of the interrupt
// entry save order), including PC itself, so it returns isa.None() — like
// hB/hCall/hRestart, it sets PC directly and must not let Next add
// another 4 on top of the restored value.
func hRete(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	sp := regs.At(uint32(isa.SP) * 4)
	for r := int(isa.PC); r >= 0; r-- {
		sp += 4
		w, err := mem.GetWord(sp, true)
		if err != nil {
			*out = interrupt.Interrupt{Code: interrupt.InvalidMemoryLocation}
			*raised = true
			return isa.Advance()
		}
		_ = regs.SetWord(uint32(r)*4, uint32(w), true)
	}
	_ = regs.SetWord(uint32(isa.SP)*4, sp, true)
	return isa.None()
}
