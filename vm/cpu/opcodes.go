package cpu

// Opcode assignment for the default instruction set. The registry is data,
// not a fixed wire contract: a caller building a custom ISA is free to
// assign different codes via isa.AddInstruction directly. These constants
// only describe the table NewISA() builds.
const (
	opMove uint8 = iota
	opLoad
	opLoadi
	opLoadhi
	opStore
	opPush
	opPop

	opAdd
	opAddi
	opSub
	opSubi
	opMult
	opMulti
	opDiv
	opDivi
	opMod
	opModi
	opMultu
	opMultui
	opDivu
	opDivui
	opModu
	opModui

	opNot
	opOr
	opOri
	opAnd
	opAndi
	opXor
	opXori

	opSll
	opSlli
	opSrl
	opSrli
	opSla
	opSlai
	opSra
	opSrai
	opRl
	opRli
	opRr
	opRri

	opB
	opBeq
	opBne
	opBlt
	opBltu
	opBgt
	opBgtu
	opBle
	opBleu
	opBge
	opBgeu

	opCall
	opRet
	opRete

	opStop
	opRestart

	opWorld
)
