package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// Management: stop halts the machine; restart zeros every register
// (PC included, so execution resumes at address 0).

func hStop(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	return isa.Halt()
}

func hRestart(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
	for r := uint8(0); r < isa.NumRegisters; r++ {
		_ = regs.SetWord(uint32(r)*4, 0, true)
	}
	return isa.None()
}
