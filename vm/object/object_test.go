package object

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	words := []uint32{0x00112233, 0xdeadbeef, 0x00000000}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, words))
	assert.Equal(t, []byte{0x00, 0x11, 0x22, 0x33, 0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0}, buf.Bytes())

	got, err := Read(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(words, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsShortLength(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.swo")
	words := []uint32{0x12345678, 0x00000000}

	require.NoError(t, WriteFile(path, words))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.swo"))
	var fae *FileAccessError
	assert.ErrorAs(t, err, &fae)
}

func TestChecksumIsDeterministic(t *testing.T) {
	data := []byte("simple world code blob")
	assert.Equal(t, Checksum(data), Checksum(data))
}

func setWithAddAndStop(code uint8) *isa.ISA {
	set := isa.Default()
	set.AddInstruction(isa.InstructionInfo{Code: code, Name: "add", NRegs: 3, HasImmediate: false})
	set.AddInstruction(isa.InstructionInfo{Code: code + 1, Name: "stop", NRegs: 0, HasImmediate: false})
	return set
}

// Disassemble a file that contains an unknown opcode word 0xFF000000 =>
// line ".data 0xff000000".
func TestDisassembleUnknownOpcodeIsData(t *testing.T) {
	set := setWithAddAndStop(0x00)
	lines := Disassemble(set, []uint32{0xff000000})
	assert.Equal(t, []string{".data 0xff000000"}, lines)
}

func TestDisassembleKnownInstruction(t *testing.T) {
	set := setWithAddAndStop(0x00)
	w := instruction.Encode(instruction.Instruction{Code: 0x00, First: 0, Second: 1, Address: 2})
	lines := Disassemble(set, []uint32{w})
	assert.Equal(t, []string{"add r0 r1 r2"}, lines)
}

func TestDisassembleUnknownThirdRegisterIsData(t *testing.T) {
	set := setWithAddAndStop(0x00)
	w := instruction.Encode(instruction.Instruction{Code: 0x00, First: 0, Second: 1, Address: 0xbeef})
	lines := Disassemble(set, []uint32{w})
	assert.Equal(t, []string{".data 0x0001beef"}, lines)
}

func TestDisassembleZeroRegInstruction(t *testing.T) {
	set := setWithAddAndStop(0x00)
	w := instruction.Encode(instruction.Instruction{Code: 0x01})
	lines := Disassemble(set, []uint32{w})
	assert.Equal(t, []string{"stop"}, lines)
}

func TestDecompileWritesListing(t *testing.T) {
	set := setWithAddAndStop(0x00)
	dir := t.TempDir()
	objPath := filepath.Join(dir, "prog.swo")
	srcPath := filepath.Join(dir, "prog.swl")

	words := []uint32{
		instruction.Encode(instruction.Instruction{Code: 0x00, First: 0, Second: 1, Address: 2}),
		instruction.Encode(instruction.Instruction{Code: 0x01}),
	}
	require.NoError(t, WriteFile(objPath, words))
	require.NoError(t, Decompile(set, objPath, srcPath))

	out, err := os.ReadFile(srcPath) //nolint:gosec // test fixture path
	require.NoError(t, err)
	assert.Equal(t, "add r0 r1 r2\nstop\n", string(out))
}
