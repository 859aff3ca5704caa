/*
   Source: the two-pass assembler pipeline (include resolution, constant
   substitution, block/data/string expansion, label resolution, encode).

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

package source

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/simpleworld/vm/vm/instruction"
	"github.com/simpleworld/vm/vm/isa"
	"github.com/simpleworld/vm/vm/object"
	"github.com/simpleworld/vm/vm/word"
)

// physLine is one line of source tied back to the file it came from, so
// errors can be reported with a useful location even after include
// expansion has flattened everything into one stream.
type physLine struct {
	file string
	line int
	text string
}

// Assemble reads the source file at path, resolves it against
// includePaths, and returns the assembled word stream.
func Assemble(set *isa.ISA, path string, includePaths []string) ([]word.Word, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided source path
	if err != nil {
		return nil, &object.FileAccessError{Path: path, Op: "open", Err: err}
	}
	return AssembleLines(set, path, splitLines(string(data)), includePaths)
}

// AssembleLines runs the pipeline over an in-memory line list, as if it
// had been loaded from a file called name. It is the entry point used by
// tests and by callers that already hold source text in a File.
func AssembleLines(set *isa.ISA, name string, lines []string, includePaths []string) ([]word.Word, error) {
	expanded, err := resolveIncludes(name, lines, includePaths, map[string]bool{})
	if err != nil {
		return nil, err
	}

	expanded, err = substituteDefines(expanded)
	if err != nil {
		return nil, err
	}

	items, labels, err := expandDirectives(set, expanded)
	if err != nil {
		return nil, err
	}

	return encodeItems(set, items, labels)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// resolveIncludes expands `.include "path"` lines depth-first, detecting
// cycles via the set of absolute paths currently being expanded on the
// current include chain.
func resolveIncludes(name string, lines []string, includePaths []string, stack map[string]bool) ([]physLine, error) {
	abs, err := filepath.Abs(name)
	if err == nil {
		if stack[abs] {
			return nil, &ErrorDirective{File: name, Line: 0, Message: "include cycle at " + name}
		}
		stack = cloneStack(stack)
		stack[abs] = true
	}

	var out []physLine
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if !strings.HasPrefix(trimmed, ".include") {
			out = append(out, physLine{file: name, line: lineNo, text: raw})
			continue
		}

		target, ok := quotedArg(trimmed, ".include")
		if !ok {
			return nil, &ErrorDirective{File: name, Line: lineNo, Message: "malformed .include directive"}
		}

		resolved, err := resolveIncludePath(name, target, includePaths)
		if err != nil {
			return nil, &ErrorDirective{File: name, Line: lineNo, Message: err.Error()}
		}

		data, err := os.ReadFile(resolved) //nolint:gosec // resolved against a caller-provided search path
		if err != nil {
			return nil, &object.FileAccessError{Path: resolved, Op: "open", Err: err}
		}

		included, err := resolveIncludes(resolved, splitLines(string(data)), includePaths, stack)
		if err != nil {
			return nil, err
		}
		out = append(out, included...)
	}
	return out, nil
}

func cloneStack(stack map[string]bool) map[string]bool {
	cp := make(map[string]bool, len(stack)+1)
	for k, v := range stack {
		cp[k] = v
	}
	return cp
}

func quotedArg(line, directive string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, directive))
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

func resolveIncludePath(fromFile, target string, includePaths []string) (string, error) {
	candidates := []string{filepath.Join(filepath.Dir(fromFile), target)}
	for _, p := range includePaths {
		candidates = append(candidates, filepath.Join(p, target))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", &object.FileAccessError{Path: target, Op: "resolve include", Err: os.ErrNotExist}
}

// substituteDefines removes `.define NAME VALUE` lines and textually
// replaces every whole-token occurrence of NAME elsewhere with VALUE.
func substituteDefines(lines []physLine) ([]physLine, error) {
	defines := map[string]string{}
	var rest []physLine

	for _, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if !strings.HasPrefix(trimmed, ".define") {
			rest = append(rest, l)
			continue
		}
		toks := fields(strings.TrimPrefix(trimmed, ".define"))
		if len(toks) < 2 {
			return nil, &ErrorDirective{File: l.file, Line: l.line, Message: "malformed .define directive"}
		}
		defines[toks[0]] = strings.Join(toks[1:], " ")
	}

	for i, l := range rest {
		text := l.text
		for name, value := range defines {
			text = substituteToken(text, name, value)
		}
		rest[i].text = text
	}
	return rest, nil
}

// item is one unit the second pass will emit: either an already-known
// word (from .block/.data/a string literal) or raw instruction text still
// to be tokenised and encoded.
type item struct {
	isWord bool
	word   word.Word
	text   string
	file   string
	line   int
}

// expandDirectives expands `.block`/`.data`/string literals into literal
// word items, records `.label name:` offsets (every item is exactly one
// word, so the running item count times 4 is the byte offset), and
// passes instruction lines through unresolved for the second pass.
func expandDirectives(set *isa.ISA, lines []physLine) ([]item, map[string]uint32, error) {
	var items []item
	labels := map[string]uint32{}

	for _, l := range lines {
		trimmed := strings.TrimSpace(stripComment(l.text))
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, ".label"):
			name, ok := labelName(trimmed)
			if !ok {
				return nil, nil, &ErrorDirective{File: l.file, Line: l.line, Message: "malformed .label directive"}
			}
			labels[name] = uint32(len(items)) * 4

		case strings.HasPrefix(trimmed, ".block"):
			toks := fields(strings.TrimPrefix(trimmed, ".block"))
			if len(toks) != 1 {
				return nil, nil, &ErrorDirective{File: l.file, Line: l.line, Message: "malformed .block directive"}
			}
			n, err := strconv.Atoi(toks[0])
			if err != nil || n < 0 {
				return nil, nil, &ErrorDirective{File: l.file, Line: l.line, Message: "invalid .block count"}
			}
			for i := 0; i < n; i++ {
				items = append(items, item{isWord: true, word: 0})
			}

		case strings.HasPrefix(trimmed, ".data"):
			toks := fields(strings.TrimPrefix(trimmed, ".data"))
			for _, tok := range toks {
				if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
					for _, r := range tok[1 : len(tok)-1] {
						items = append(items, item{isWord: true, word: word.Word(r)})
					}
					items = append(items, item{isWord: true, word: 0})
					continue
				}
				v, ok := parseImmediate(tok, nil)
				if !ok {
					return nil, nil, &ErrorDirective{File: l.file, Line: l.line, Message: "invalid .data operand " + tok}
				}
				items = append(items, item{isWord: true, word: v})
			}

		case strings.HasPrefix(trimmed, "."):
			return nil, nil, &ErrorDirective{File: l.file, Line: l.line, Message: "unrecognised directive " + trimmed}

		default:
			items = append(items, item{text: trimmed, file: l.file, line: l.line})
		}
	}
	return items, labels, nil
}

func labelName(trimmed string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, ".label"))
	rest = strings.TrimSuffix(rest, ":")
	if rest == "" {
		return "", false
	}
	return rest, true
}

// encodeItems is the assembler's second pass: every remaining item is
// either a word already known from the first pass, or an instruction
// line tokenised and resolved against set and labels.
func encodeItems(set *isa.ISA, items []item, labels map[string]uint32) ([]word.Word, error) {
	words := make([]word.Word, 0, len(items))
	for _, it := range items {
		if it.isWord {
			words = append(words, it.word)
			continue
		}
		w, err := encodeInstruction(set, it.text, labels)
		if err != nil {
			return nil, &ParseError{File: it.file, Line: it.line, Message: err.Error()}
		}
		words = append(words, w)
	}
	return words, nil
}

func encodeInstruction(set *isa.ISA, text string, labels map[string]uint32) (word.Word, error) {
	toks := fields(text)
	if len(toks) == 0 {
		return 0, &ParseError{Message: "empty instruction"}
	}

	code, err := set.InstructionCode(toks[0])
	if err != nil {
		return 0, err
	}
	info, err := set.InstructionInfo(code)
	if err != nil {
		return 0, err
	}

	inst := instruction.Instruction{Code: code}
	operands := toks[1:]
	idx := 0

	need := func() error {
		if idx >= len(operands) {
			return &ParseError{Message: "too few operands for " + toks[0]}
		}
		return nil
	}

	if info.NRegs >= 1 {
		if err := need(); err != nil {
			return 0, err
		}
		r, err := parseRegister(operands[idx], set)
		if err != nil {
			return 0, err
		}
		inst.First = r
		idx++
	}
	if info.NRegs >= 2 {
		if err := need(); err != nil {
			return 0, err
		}
		r, err := parseRegister(operands[idx], set)
		if err != nil {
			return 0, err
		}
		inst.Second = r
		idx++
	}
	if info.NRegs >= 3 {
		if err := need(); err != nil {
			return 0, err
		}
		r, err := parseRegister(operands[idx], set)
		if err != nil {
			return 0, err
		}
		inst.Address = uint16(r)
		idx++
	}
	if info.HasImmediate {
		if err := need(); err != nil {
			return 0, err
		}
		v, ok := parseImmediate(operands[idx], labels)
		if !ok {
			return 0, &ParseError{Message: "invalid immediate/label " + operands[idx]}
		}
		inst.Address = uint16(v)
		idx++
	}
	if idx != len(operands) {
		return 0, &ParseError{Message: "extra operands for " + toks[0]}
	}

	return instruction.Encode(inst), nil
}

// parseRegister accepts either a bare "rN" numeric form (matching the
// disassembler's own output, so disassemble-then-assemble round-trips)
// or a symbolic name resolved through the register registry ("sgp",
// "sp", "pc").
func parseRegister(tok string, set *isa.ISA) (uint8, error) {
	if strings.HasPrefix(tok, "r") {
		if n, err := strconv.Atoi(tok[1:]); err == nil && n >= 0 && n <= 255 {
			if _, err := set.RegisterName(uint8(n)); err == nil {
				return uint8(n), nil
			}
		}
	}
	return set.RegisterCode(tok)
}
