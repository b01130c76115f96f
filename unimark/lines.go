package unimark

import (
	"bytes"

	"github.com/hesusruiz/unimark/sliceedit"
)

// tabStop is the column multiple a tab character advances to. A tab expands
// to the next multiple of tabStop computed from the current column, not by a
// fixed width.
const tabStop = 4

// isSpaceOrTab reports whether c is an ASCII space or horizontal tab.
func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// isBlankLine reports whether the line contains only spaces, tabs or
// carriage returns.
func isBlankLine(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

// skipSpaceTab returns the offset of the first byte of line that is not a
// space or tab. If the line is all whitespace it returns len(line).
func skipSpaceTab(line []byte) int {
	i := 0
	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	return i
}

// indentColumns computes the indentation of a line in columns, expanding
// tabs to the next multiple of the tab stop, and returns the columns
// together with the byte offset of the first non-whitespace byte.
// The line splitter and the list parser both use this function, so a line of
// four spaces and a line of one tab produce the same indent value.
func indentColumns(line []byte) (cols int, offset int) {
	for offset < len(line) {
		switch line[offset] {
		case ' ':
			cols++
		case '\t':
			cols += tabStop - cols%tabStop
		default:
			return cols, offset
		}
		offset++
	}
	return cols, offset
}

// skipSpaceTabFrom returns the offset of the first byte at or after pos
// that is not a space or tab.
func skipSpaceTabFrom(line []byte, pos int) int {
	for pos < len(line) && isSpaceOrTab(line[pos]) {
		pos++
	}
	return pos
}

// stripIndentColumns removes up to cols columns of leading whitespace,
// expanding tabs at the tab stop. A tab that straddles the boundary is
// replaced by the spaces of its remainder.
func stripIndentColumns(line []byte, cols int) []byte {
	col, offset := 0, 0
	for offset < len(line) && col < cols {
		switch line[offset] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return line[offset:]
		}
		offset++
	}
	if col > cols {
		padded := make([]byte, 0, col-cols+len(line)-offset)
		for i := 0; i < col-cols; i++ {
			padded = append(padded, ' ')
		}
		return append(padded, line[offset:]...)
	}
	return line[offset:]
}

// trimTrailingSpaceTab returns line without trailing spaces and tabs.
func trimTrailingSpaceTab(line []byte) []byte {
	return bytes.TrimRight(line, " \t")
}

// splitLines normalizes the raw document and splits it into lines.
//
// A UTF-8 BOM at offset 0 is removed and all of LF, CRLF and lone CR are
// accepted as terminators and collapsed to LF before splitting. The bytes
// are copied into a single owning buffer; the returned line slices point
// into that buffer and are valid for the lifetime of the parser. Each line
// has its terminator stripped but inner whitespace preserved. Blank trailing
// lines are retained and a trailing non-newlined line counts as a line.
func splitLines(src []byte) (buf []byte, lines [][]byte) {
	buf = sliceedit.NormalizeNewlines(src)

	if len(buf) == 0 {
		return buf, nil
	}
	start := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' {
			lines = append(lines, buf[start:i])
			start = i + 1
		}
	}
	if start < len(buf) {
		lines = append(lines, buf[start:])
	}
	return buf, lines
}

// lineAt is a bounds-checked line accessor: it returns nil past the end.
func lineAt(lines [][]byte, i int) []byte {
	if i < 0 || i >= len(lines) {
		return nil
	}
	return lines[i]
}
