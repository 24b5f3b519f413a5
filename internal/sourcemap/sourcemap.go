// Package sourcemap holds a source file's text alongside per-line slices so
// diagnostics can cite the offending line without re-scanning the file.
package sourcemap

import "strings"

// File is a loaded source document together with its line index.
type File struct {
	Path string
	Text string

	lineStarts []int // byte offset of the start of each line (0-based line index)
}

// New builds a File from raw text, precomputing line-start offsets.
func New(path, text string) *File {
	f := &File{Path: path, Text: text}
	f.lineStarts = append(f.lineStarts, 0)
	for i, c := range text {
		if c == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}

// Line returns the 1-based line's text with any trailing CR/LF stripped.
// Returns "" for an out-of-range line number.
func (f *File) Line(lineNum int) string {
	if lineNum < 1 || lineNum > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[lineNum-1]
	var end int
	if lineNum == len(f.lineStarts) {
		end = len(f.Text)
	} else {
		end = f.lineStarts[lineNum] - 1 // exclude the newline
	}
	if end < start {
		end = start
	}
	return strings.TrimRight(f.Text[start:end], "\r")
}

// Context returns the lines from lineNum-before to lineNum+after (clamped to
// the file's bounds), 1-based and inclusive.
func (f *File) Context(lineNum, before, after int) []string {
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(f.lineStarts) {
		end = len(f.lineStarts)
	}
	lines := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		lines = append(lines, f.Line(i))
	}
	return lines
}
