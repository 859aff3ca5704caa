/*
   File: zero-indexed line buffer for source text.

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
	"fmt"
	"os"
	"strings"

	"github.com/simpleworld/vm/vm/object"
)

// File is a mutable, zero-indexed sequence of text lines, such as a
// `.swl` source listing. It has no notion of source vs. object; it is
// just lines in, lines out.
type File struct {
	lines []string
}

// NewFile returns an empty File.
func NewFile() *File {
	return &File{}
}

// Load reads path and splits it into lines on LF, dropping a single
// trailing empty line left by a final newline.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided source path
	if err != nil {
		return nil, &object.FileAccessError{Path: path, Op: "open", Err: err}
	}
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	f := &File{}
	if text != "" {
		f.lines = strings.Split(text, "\n")
	}
	return f, nil
}

// Save writes f's lines to path, LF-separated with a trailing newline.
func (f *File) Save(path string) error {
	content := strings.Join(f.lines, "\n")
	if len(f.lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // listing output, not sensitive
		return &object.FileAccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// Lines returns the number of lines in f.
func (f *File) Lines() int {
	return len(f.lines)
}

// Line returns line i (0-indexed).
func (f *File) Line(i int) (string, error) {
	if i < 0 || i >= len(f.lines) {
		return "", fmt.Errorf("source: line %d out of range (0..%d)", i, len(f.lines)-1)
	}
	return f.lines[i], nil
}

// Append adds line to the end of f.
func (f *File) Append(line string) {
	f.lines = append(f.lines, line)
}

// Insert places line at index i, shifting everything at and after i down
// by one.
func (f *File) Insert(i int, line string) error {
	if i < 0 || i > len(f.lines) {
		return fmt.Errorf("source: insert at %d out of range (0..%d)", i, len(f.lines))
	}
	f.lines = append(f.lines, "")
	copy(f.lines[i+1:], f.lines[i:])
	f.lines[i] = line
	return nil
}

// Remove deletes line i, shifting everything after it up by one.
func (f *File) Remove(i int) error {
	if i < 0 || i >= len(f.lines) {
		return fmt.Errorf("source: remove at %d out of range (0..%d)", i, len(f.lines)-1)
	}
	f.lines = append(f.lines[:i], f.lines[i+1:]...)
	return nil
}

// Replace overwrites line i.
func (f *File) Replace(i int, line string) error {
	if i < 0 || i >= len(f.lines) {
		return fmt.Errorf("source: replace at %d out of range (0..%d)", i, len(f.lines)-1)
	}
	f.lines[i] = line
	return nil
}

// All returns every line, in order. The returned slice is a copy.
func (f *File) All() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}
