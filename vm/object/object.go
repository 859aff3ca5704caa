/*
   Object: binary object file I/O and disassembly.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package object reads and writes Simple World object files: a bare
// sequence of 4-byte big-endian words, no header, no footer. It also
// decompiles an object file back to source text, one line per word,
// falling back to a `.data` literal whenever a word doesn't decode to a
// known opcode or register.
package object

import (
	"bufio"
	"crypto/md5" //nolint:gosec // content identity hash, not a security boundary
	"fmt"
	"io"
	"os"

	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/word"
)

// FileAccessError wraps an I/O failure on an object or source file with
// the path that failed.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("object: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Read decodes every 4-byte big-endian word from r. Length must be a
// multiple of 4.
func Read(r io.Reader) ([]word.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("object: length %d is not a multiple of 4", len(data))
	}

	words := make([]word.Word, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		var w word.Word
		for b := 0; b < 4; b++ {
			word.SetByte(&w, b, data[i+b])
		}
		words = append(words, w)
	}
	return words, nil
}

// Write encodes words as a stream of 4-byte big-endian words.
func Write(w io.Writer, words []word.Word) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 4)
	for _, wd := range words {
		for b := 0; b < 4; b++ {
			buf[b] = word.GetByte(wd, b)
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFile loads an object file from disk.
func ReadFile(path string) ([]word.Word, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided object file path
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Op: "read", Err: err}
	}
	return words, nil
}

// WriteFile saves words to path as an object file, creating or
// truncating it.
func WriteFile(path string, words []word.Word) error {
	f, err := os.Create(path) //nolint:gosec // caller-provided object file path
	if err != nil {
		return &FileAccessError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()

	if err := Write(f, words); err != nil {
		return &FileAccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// Checksum is the MD5 digest of a code blob, kept alongside the blob by
// the persistence collaborator so mutation diffing can detect whether
// the underlying code changed independent of the mutation list.
func Checksum(data []byte) [16]byte {
	return md5.Sum(data) //nolint:gosec // identity hash, not a security boundary
}

// Disassemble decodes words against set and returns one source line per
// word. A word whose opcode or any referenced register is not registered
// in set is rendered as a `.data 0xHHHHHHHH` literal instead of failing
// the whole pass, matching the original assembly tool's "assume it's
// data" recovery behaviour.
func Disassemble(set *isa.ISA, words []word.Word) []string {
	lines := make([]string, 0, len(words))
	for _, w := range words {
		lines = append(lines, disassembleWord(set, w))
	}
	return lines
}

func disassembleWord(set *isa.ISA, w word.Word) string {
	inst := instruction.Decode(w)
	info, err := set.InstructionInfo(inst.Code)
	if err != nil {
		return dataLine(w)
	}

	regs := make([]uint8, 0, 3)
	if info.NRegs >= 1 {
		regs = append(regs, inst.First)
	}
	if info.NRegs >= 2 {
		regs = append(regs, inst.Second)
	}
	if info.NRegs >= 3 {
		regs = append(regs, uint8(inst.Address))
	}
	for _, r := range regs {
		if _, err := set.RegisterName(r); err != nil {
			return dataLine(w)
		}
	}

	line := info.Name
	if info.NRegs >= 1 {
		line += fmt.Sprintf(" r%d", inst.First)
	}
	if info.NRegs >= 2 {
		line += fmt.Sprintf(" r%d", inst.Second)
	}
	if info.NRegs >= 3 {
		line += fmt.Sprintf(" r%d", uint8(inst.Address))
	}
	if info.HasImmediate {
		line += fmt.Sprintf(" 0x%04x", inst.Address)
	}
	return line
}

func dataLine(w word.Word) string {
	return fmt.Sprintf(".data 0x%08x", w)
}

// Decompile reads the object file at objPath, disassembles it against
// set, and writes the resulting listing to srcPath, one instruction per
// line.
func Decompile(set *isa.ISA, objPath, srcPath string) error {
	words, err := ReadFile(objPath)
	if err != nil {
		return err
	}

	f, err := os.Create(srcPath) //nolint:gosec // caller-provided source file path
	if err != nil {
		return &FileAccessError{Path: srcPath, Op: "create", Err: err}
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, line := range Disassemble(set, words) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return &FileAccessError{Path: srcPath, Op: "write", Err: err}
		}
	}
	return bw.Flush()
}
