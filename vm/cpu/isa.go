package cpu

import (
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/memory"
)

// NewISA builds the default instruction set: isa.Default()'s register and
// interrupt tables, plus every opcode this package implements bound to
// its handler. World is the only handler that needs to close over the
// owning CPU (it forwards into the injected WorldTrap callback); every
// other handler only touches the regs/mem it is given.
func (c *CPU) NewISA() *isa.ISA {
	reg := isa.Default()

	add := func(code uint8, name string, nregs int, hasImm bool, h isa.Handler) {
		reg.AddInstruction(isa.InstructionInfo{
			Code: code, Name: name, NRegs: nregs, HasImmediate: hasImm, Handler: h,
		})
	}

	add(opMove, "move", 2, false, hMove)
	add(opLoad, "load", 1, true, hLoad)
	add(opLoadi, "loadi", 1, true, hLoadi)
	add(opLoadhi, "loadhi", 1, true, hLoadhi)
	add(opStore, "store", 2, false, hStore)
	add(opPush, "push", 1, false, hPush)
	add(opPop, "pop", 1, false, hPop)

	add(opAdd, "add", 3, false, regBinOp(addOp))
	add(opAddi, "addi", 2, true, immBinOp(addOp))
	add(opSub, "sub", 3, false, regBinOp(subOp))
	add(opSubi, "subi", 2, true, immBinOp(subOp))
	add(opMult, "mult", 3, false, regBinOp(multOp))
	add(opMulti, "multi", 2, true, immBinOp(multOp))
	add(opDiv, "div", 3, false, regDivOp(divOp))
	add(opDivi, "divi", 2, true, immDivOp(divOp))
	add(opMod, "mod", 3, false, regDivOp(modOp))
	add(opModi, "modi", 2, true, immDivOp(modOp))
	add(opMultu, "multu", 3, false, regBinOp(multuOp))
	add(opMultui, "multui", 2, true, immBinOp(multuOp))
	add(opDivu, "divu", 3, false, regDivOp(divuOp))
	add(opDivui, "divui", 2, true, immDivOp(divuOp))
	add(opModu, "modu", 3, false, regDivOp(moduOp))
	add(opModui, "modui", 2, true, immDivOp(moduOp))

	add(opNot, "not", 2, false, hNot)
	add(opOr, "or", 3, false, regBinOp(orOp))
	add(opOri, "ori", 2, true, immBinOp(orOp))
	add(opAnd, "and", 3, false, regBinOp(andOp))
	add(opAndi, "andi", 2, true, immBinOp(andOp))
	add(opXor, "xor", 3, false, regBinOp(xorOp))
	add(opXori, "xori", 2, true, immBinOp(xorOp))

	add(opSll, "sll", 3, false, regShiftOp(sllOp))
	add(opSlli, "slli", 2, true, immShiftOp(sllOp))
	add(opSrl, "srl", 3, false, regShiftOp(shiftRightLogical))
	add(opSrli, "srli", 2, true, immShiftOp(shiftRightLogical))
	add(opSla, "sla", 3, false, regShiftOp(sllOp))
	add(opSlai, "slai", 2, true, immShiftOp(sllOp))
	add(opSra, "sra", 3, false, regShiftOp(shiftRightArithmetic))
	add(opSrai, "srai", 2, true, immShiftOp(shiftRightArithmetic))
	add(opRl, "rl", 3, false, regShiftOp(rotateLeft))
	add(opRli, "rli", 2, true, immShiftOp(rotateLeft))
	add(opRr, "rr", 3, false, regShiftOp(rotateRight))
	add(opRri, "rri", 2, true, immShiftOp(rotateRight))

	add(opB, "b", 0, true, hB)
	add(opBeq, "beq", 2, true, branchOp(condEq))
	add(opBne, "bne", 2, true, branchOp(condNe))
	add(opBlt, "blt", 2, true, branchOp(condLt))
	add(opBltu, "bltu", 2, true, branchOp(condLtu))
	add(opBgt, "bgt", 2, true, branchOp(condGt))
	add(opBgtu, "bgtu", 2, true, branchOp(condGtu))
	add(opBle, "ble", 2, true, branchOp(condLe))
	add(opBleu, "bleu", 2, true, branchOp(condLeu))
	add(opBge, "bge", 2, true, branchOp(condGe))
	add(opBgeu, "bgeu", 2, true, branchOp(condGeu))

	add(opCall, "call", 0, true, hCall)
	add(opRet, "ret", 0, false, hRet)
	add(opRete, "rete", 0, false, hRete)

	add(opStop, "stop", 0, false, hStop)
	add(opRestart, "restart", 0, false, hRestart)

	add(opWorld, "world", 0, true, c.worldHandler())

	return reg
}

// worldHandler closes over c so the opcode can forward into the injected
// WorldTrap without the generic Handler signature needing to carry CPU
// state. If no WorldTrap was configured, the trap is a no-op other than
// advancing PC.
func (c *CPU) worldHandler() isa.Handler {
	return func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) isa.Update {
		if c.World == nil {
			return isa.Advance()
		}
		if in, ok := c.World(inst.Address); ok {
			*out = in
			*raised = true
		}
		return isa.Advance()
	}
}
