package isa

import (
	"testing"

	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/interrupt"
	"github.com/simpleworld/vm/vm/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveRegister(t *testing.T) {
	reg := New()
	const code, name = 0xfd, "test"

	reg.AddRegister(code, name)

	got, err := reg.RegisterCode(name)
	require.NoError(t, err)
	assert.EqualValues(t, code, got)

	gotName, err := reg.RegisterName(code)
	require.NoError(t, err)
	assert.Equal(t, name, gotName)

	assert.Contains(t, reg.RegisterCodes(), uint8(code))

	reg.RemoveRegister(code)
	_, err = reg.RegisterCode(name)
	assert.Error(t, err)
	_, err = reg.RegisterName(code)
	assert.Error(t, err)
}

func TestAddRemoveInterrupt(t *testing.T) {
	reg := New()
	const code, name = 0xfd, "test"

	reg.AddInterrupt(code, name)

	got, err := reg.InterruptCode(name)
	require.NoError(t, err)
	assert.EqualValues(t, code, got)

	gotName, err := reg.InterruptName(code)
	require.NoError(t, err)
	assert.Equal(t, name, gotName)

	assert.Contains(t, reg.InterruptCodes(), uint8(code))

	reg.RemoveInterrupt(code)
	_, err = reg.InterruptCode(name)
	assert.Error(t, err)
}

func TestAddRemoveInstruction(t *testing.T) {
	reg := New()
	called := false
	info := InstructionInfo{
		Code:         0xfd,
		Name:         "test",
		NRegs:        2,
		HasImmediate: true,
		Handler: func(regs, mem *memory.Memory, inst instruction.Instruction, out *interrupt.Interrupt, raised *bool) Update {
			called = true
			return Advance()
		},
	}

	reg.AddInstruction(info)

	code, err := reg.InstructionCode(info.Name)
	require.NoError(t, err)
	assert.Equal(t, info.Code, code)

	got, err := reg.InstructionInfo(info.Code)
	require.NoError(t, err)
	assert.Equal(t, info.Code, got.Code)
	assert.Equal(t, info.Name, got.Name)
	assert.Equal(t, info.NRegs, got.NRegs)
	assert.Equal(t, info.HasImmediate, got.HasImmediate)
	require.NotNil(t, got.Handler)
	got.Handler(nil, nil, instruction.Instruction{}, nil, nil)
	assert.True(t, called)

	assert.Contains(t, reg.InstructionCodes(), info.Code)

	reg.RemoveInstruction(info.Code)
	_, err = reg.InstructionInfo(info.Code)
	assert.Error(t, err)
	_, err = reg.InstructionCode(info.Name)
	assert.Error(t, err)
}

func TestCodeNotFound(t *testing.T) {
	reg := New()
	_, err := reg.RegisterName(1)
	var cnf *CodeNotFound
	assert.ErrorAs(t, err, &cnf)
}

func TestNameNotFound(t *testing.T) {
	reg := New()
	_, err := reg.RegisterCode("missing")
	var nnf *NameNotFound
	assert.ErrorAs(t, err, &nnf)
}

func TestDefaultRegisters(t *testing.T) {
	reg := Default()

	code, err := reg.RegisterCode("pc")
	require.NoError(t, err)
	assert.EqualValues(t, PC, code)

	code, err = reg.RegisterCode("sp")
	require.NoError(t, err)
	assert.EqualValues(t, SP, code)

	code, err = reg.RegisterCode("sgp")
	require.NoError(t, err)
	assert.EqualValues(t, SGP, code)

	assert.Len(t, reg.RegisterCodes(), NumRegisters)
}

func TestDefaultInterrupts(t *testing.T) {
	reg := Default()

	code, err := reg.InterruptCode("DivisionByZero")
	require.NoError(t, err)
	assert.EqualValues(t, interrupt.DivisionByZero, code)

	assert.Len(t, reg.InterruptCodes(), len(interrupt.Names))
}
