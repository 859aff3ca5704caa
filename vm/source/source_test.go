package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testISA() *isa.ISA {
	set := isa.Default()
	set.AddInstruction(isa.InstructionInfo{Code: 0x00, Name: "loadi", NRegs: 1, HasImmediate: true})
	set.AddInstruction(isa.InstructionInfo{Code: 0x01, Name: "add", NRegs: 3, HasImmediate: false})
	set.AddInstruction(isa.InstructionInfo{Code: 0x02, Name: "stop", NRegs: 0, HasImmediate: false})
	set.AddInstruction(isa.InstructionInfo{Code: 0x03, Name: "beq", NRegs: 2, HasImmediate: true})
	return set
}

// Assemble `.block 3` + `stop` => four words: [0, 0, 0, encode(stop)].
func TestBlockExpansion(t *testing.T) {
	set := testISA()
	words, err := AssembleLines(set, "t.swl", []string{".block 3", "stop"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 0, 0, instruction.Encode(instruction.Instruction{Code: 0x02})}, words)
}

func TestAssembleProgramAddAndStop(t *testing.T) {
	set := testISA()
	lines := []string{
		"loadi r0 10",
		"loadi r1 20",
		"add r0 r0 r1",
		"stop",
	}
	words, err := AssembleLines(set, "t.swl", lines, nil)
	require.NoError(t, err)
	require.Len(t, words, 4)
	assert.Equal(t, instruction.Encode(instruction.Instruction{Code: 0x00, First: 0, Address: 10}), words[0])
	assert.Equal(t, instruction.Encode(instruction.Instruction{Code: 0x01, First: 0, Second: 0, Address: 1}), words[2])
	assert.Equal(t, instruction.Encode(instruction.Instruction{Code: 0x02}), words[3])
}

func TestLabelResolution(t *testing.T) {
	set := testISA()
	lines := []string{
		".label loop:",
		"add r0 r0 r1",
		"beq r0 r1 loop",
	}
	words, err := AssembleLines(set, "t.swl", lines, nil)
	require.NoError(t, err)
	require.Len(t, words, 2)
	inst := instruction.Decode(words[1])
	assert.EqualValues(t, 0, inst.Address)
}

func TestDefineSubstitution(t *testing.T) {
	set := testISA()
	lines := []string{
		".define LIMIT 42",
		"loadi r0 LIMIT",
	}
	words, err := AssembleLines(set, "t.swl", lines, nil)
	require.NoError(t, err)
	inst := instruction.Decode(words[0])
	assert.EqualValues(t, 42, inst.Address)
}

func TestCommentsAreStripped(t *testing.T) {
	set := testISA()
	words, err := AssembleLines(set, "t.swl", []string{"stop # halt the machine"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{instruction.Encode(instruction.Instruction{Code: 0x02})}, words)
}

func TestDataDirectiveWithString(t *testing.T) {
	set := testISA()
	words, err := AssembleLines(set, "t.swl", []string{`.data "hi"`}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{'h', 'i', 0}, words)
}

func TestIncludeResolution(t *testing.T) {
	set := testISA()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.swl"), []byte("stop\n"), 0o644))

	main := filepath.Join(dir, "main.swl")
	require.NoError(t, os.WriteFile(main, []byte(`.include "lib.swl"`+"\n"), 0o644))

	words, err := Assemble(set, main, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{instruction.Encode(instruction.Instruction{Code: 0x02})}, words)
}

func TestIncludeCycleDetected(t *testing.T) {
	set := testISA()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.swl")
	b := filepath.Join(dir, "b.swl")
	require.NoError(t, os.WriteFile(a, []byte(`.include "b.swl"`+"\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`.include "a.swl"`+"\n"), 0o644))

	_, err := Assemble(set, a, nil)
	var ed *ErrorDirective
	assert.ErrorAs(t, err, &ed)
}

func TestUnknownMnemonicIsParseError(t *testing.T) {
	set := testISA()
	_, err := AssembleLines(set, "t.swl", []string{"frobnicate r0"}, nil)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestUnrecognisedDirectiveIsErrorDirective(t *testing.T) {
	set := testISA()
	_, err := AssembleLines(set, "t.swl", []string{".bogus"}, nil)
	var ed *ErrorDirective
	assert.ErrorAs(t, err, &ed)
}

// Disassemble then assemble is the identity: an assembled word
// round-trips through the disassembler's "mnemonic regs imm" text back
// to the same word.
func TestAssembleDisassembleRoundTrip(t *testing.T) {
	set := testISA()
	original := []uint32{
		instruction.Encode(instruction.Instruction{Code: 0x00, First: 5, Address: 7}),
		instruction.Encode(instruction.Instruction{Code: 0x01, First: 2, Second: 3, Address: 4}),
		instruction.Encode(instruction.Instruction{Code: 0x02}),
	}

	lines := object.Disassemble(set, original)
	reassembled, err := AssembleLines(set, "t.swl", lines, nil)
	require.NoError(t, err)
	assert.Equal(t, original, reassembled)
}
