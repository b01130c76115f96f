package unimark

import (
	"bytes"

	"github.com/hesusruiz/unimark/sliceedit"
)

// parseTable dispatches to the table grammar of the current dialect, with
// a minimal pipe-split fallback.
func (p *Parser) parseTable() Item {
	line := p.currentLine()
	switch p.adapter.Format() {
	case FormatMarkdown:
		if isTableSeparatorRow(p.peekLine(1)) {
			return p.parseGFMTable()
		}
	case FormatAsciiDoc:
		if isAsciiDocTableDelim(line) {
			return p.parseAsciiDocTable()
		}
	case FormatRST:
		if isRSTTableBorder(line) {
			return p.parseRSTTable()
		}
	}
	return p.parseFallbackTable()
}

// parseGFMTable parses the pipe table: header row, separator row with
// alignment markers, body rows. Alignment becomes an align attribute on
// each cell of the column.
func (p *Parser) parseGFMTable() Item {
	startLine := p.cur + 1
	header := p.splitTableRow(p.currentLine())
	aligns := parseAlignRow(p.peekLine(1))
	p.cur += 2

	if len(header) == 0 {
		p.addDiag(TableMalformed, SeverityWarning, startLine, 1, "table has no columns")
		return Undefined
	}

	table := p.builder.CreateElement("table")
	thead := p.builder.CreateElement("thead")
	tr := p.builder.CreateElement("tr")
	for i, cell := range header {
		tr2 := p.makeTableCell("th", cell, alignAt(aligns, i), startLine)
		p.builder.AppendChild(tr, tr2)
	}
	p.builder.AppendChild(thead, ElementItem(tr))
	p.builder.AppendChild(table, ElementItem(thead))

	tbody := p.builder.CreateElement("tbody")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) || bytes.IndexByte(line, '|') == -1 {
			break
		}
		cells := p.splitTableRow(line)
		// Rows are padded with empty cells to the header width; extra
		// cells are dropped.
		for len(cells) < len(header) {
			cells = append(cells, nil)
		}
		cells = cells[:len(header)]
		row := p.builder.CreateElement("tr")
		for i, cell := range cells {
			p.builder.AppendChild(row, p.makeTableCell("td", cell, alignAt(aligns, i), p.cur+1))
		}
		p.builder.AppendChild(tbody, ElementItem(row))
		p.cur++
	}
	p.builder.AppendChild(table, ElementItem(tbody))
	return ElementItem(table)
}

// makeTableCell builds a th or td with optional alignment and the
// unescaped, inline-parsed cell content.
func (p *Parser) makeTableCell(tag string, content []byte, align string, line int) Item {
	cell := p.builder.CreateElement(tag)
	if align != "" {
		p.builder.AddAttribute(cell, "align", align)
	}
	if len(content) > 0 {
		content = sliceedit.Unescape(content, p.adapter.EscapeChar(), "|")
		p.appendInline(cell, content, line)
	}
	return ElementItem(cell)
}

// splitTableRow splits one table row into trimmed cells at unescaped
// pipes. Pipes inside a matched backtick code span do not split.
func (p *Parser) splitTableRow(line []byte) [][]byte {
	line = trimTrailingSpaceTab(line)
	_, off := indentColumns(line)
	line = line[off:]
	if len(line) == 0 {
		return nil
	}
	if line[0] == '|' {
		line = line[1:]
	}
	if n := len(line); n > 0 && line[n-1] == '|' && !p.adapter.IsEscaped(line, n-1) {
		line = line[:n-1]
	}
	var cells [][]byte
	start := 0
	for i := 0; i < len(line); {
		switch {
		case line[i] == '`':
			n := byteRunLen(line, i, '`')
			if end := closingBacktickRun(line, i+n, n); end != -1 {
				i = end
				continue
			}
			i += n
		case line[i] == '|' && !p.adapter.IsEscaped(line, i):
			cells = append(cells, bytes.TrimSpace(line[start:i]))
			start = i + 1
			i++
		default:
			i++
		}
	}
	return append(cells, bytes.TrimSpace(line[start:]))
}

// byteRunLen returns the length of the run of c starting at pos.
func byteRunLen(text []byte, pos int, c byte) int {
	n := 0
	for pos+n < len(text) && text[pos+n] == c {
		n++
	}
	return n
}

// closingBacktickRun finds a backtick run of exactly length n starting at
// or after pos and returns the offset just past it, or -1.
func closingBacktickRun(text []byte, pos, n int) int {
	for i := pos; i < len(text); i++ {
		if text[i] != '`' {
			continue
		}
		run := byteRunLen(text, i, '`')
		if run == n {
			return i + run
		}
		i += run - 1
	}
	return -1
}

// parseAlignRow extracts the per-column alignment of a GFM separator row.
func parseAlignRow(line []byte) []string {
	if line == nil {
		return nil
	}
	var aligns []string
	for _, cell := range bytes.Split(bytes.Trim(trimTrailingSpaceTab(line), "|"), []byte("|")) {
		cell = bytes.TrimSpace(cell)
		left := len(cell) > 0 && cell[0] == ':'
		right := len(cell) > 0 && cell[len(cell)-1] == ':'
		switch {
		case left && right:
			aligns = append(aligns, "center")
		case right:
			aligns = append(aligns, "right")
		case left:
			aligns = append(aligns, "left")
		default:
			aligns = append(aligns, "")
		}
	}
	return aligns
}

func alignAt(aligns []string, i int) string {
	if i < len(aligns) {
		return aligns[i]
	}
	return ""
}

// parseAsciiDocTable parses a |=== delimited table; rows are pipe-split,
// with no header/body distinction.
func (p *Parser) parseAsciiDocTable() Item {
	startLine := p.cur + 1
	p.cur++ // opening |===
	table := p.builder.CreateElement("table")
	closed := false
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isAsciiDocTableDelim(line) {
			closed = true
			p.cur++
			break
		}
		if isBlankLine(line) {
			p.cur++
			continue
		}
		cells := p.splitTableRow(line)
		row := p.builder.CreateElement("tr")
		for _, cell := range cells {
			p.builder.AppendChild(row, p.makeTableCell("td", cell, "", p.cur+1))
		}
		p.builder.AppendChild(table, ElementItem(row))
		p.cur++
	}
	if !closed {
		p.addDiag(UnclosedDelimiter, SeverityWarning, startLine, 1,
			"table opened here is never closed")
	}
	if table.ContentLength == 0 {
		p.addDiag(TableMalformed, SeverityWarning, startLine, 1, "table has no rows")
	}
	return ElementItem(table)
}

// rstColumnSpan is one column of an RST simple table, taken from a run of
// '=' in the border line.
type rstColumnSpan struct {
	start, end int
}

// parseRSTTable parses the simple-table grammar: a border of '=' runs
// defines the column spans; content rows are sliced by those spans until
// the next border or a blank line.
func (p *Parser) parseRSTTable() Item {
	startLine := p.cur + 1
	spans := rstColumnSpans(p.currentLine())
	p.cur++
	if len(spans) == 0 {
		p.addDiag(TableMalformed, SeverityWarning, startLine, 1, "table border defines no columns")
		return Undefined
	}

	table := p.builder.CreateElement("table")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			break
		}
		if isRSTTableBorder(line) {
			p.cur++
			// A border inside the table separates header from body; the
			// final border closes it. Either way rows keep flowing until
			// blank.
			continue
		}
		row := p.builder.CreateElement("tr")
		for i, span := range spans {
			s, e := span.start, span.end
			if i == len(spans)-1 {
				e = len(line)
			}
			if s > len(line) {
				s = len(line)
			}
			if e > len(line) {
				e = len(line)
			}
			p.builder.AppendChild(row, p.makeTableCell("td", bytes.TrimSpace(line[s:e]), "", p.cur+1))
		}
		p.builder.AppendChild(table, ElementItem(row))
		p.cur++
	}
	if table.ContentLength == 0 {
		p.addDiag(TableMalformed, SeverityWarning, startLine, 1, "table has no rows")
	}
	return ElementItem(table)
}

// rstColumnSpans extracts the byte spans of the '=' runs of a border
// line; each span extends through the gap to the next run.
func rstColumnSpans(line []byte) []rstColumnSpan {
	var spans []rstColumnSpan
	i := 0
	for i < len(line) {
		if line[i] != '=' {
			i++
			continue
		}
		start := i
		for i < len(line) && line[i] == '=' {
			i++
		}
		gap := i
		for gap < len(line) && line[gap] == ' ' {
			gap++
		}
		spans = append(spans, rstColumnSpan{start: start, end: gap})
		i = gap
	}
	return spans
}

// parseFallbackTable is the minimal shape: pipe-split rows of td cells
// until a blank or pipe-less line.
func (p *Parser) parseFallbackTable() Item {
	startLine := p.cur + 1
	table := p.builder.CreateElement("table")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if line == nil || isBlankLine(line) || bytes.IndexByte(line, '|') == -1 {
			break
		}
		if p.adapter.Format() == FormatWiki && isWikiTableControl(line) {
			p.cur++
			continue
		}
		cells := p.splitTableRow(line)
		row := p.builder.CreateElement("tr")
		for _, cell := range cells {
			p.builder.AppendChild(row, p.makeTableCell("td", cell, "", p.cur+1))
		}
		p.builder.AppendChild(table, ElementItem(row))
		p.cur++
	}
	if table.ContentLength == 0 {
		p.addDiag(TableMalformed, SeverityWarning, startLine, 1, "table has no rows")
		return Undefined
	}
	return ElementItem(table)
}

// isWikiTableControl reports MediaWiki table control lines: the "{|"
// opener, "|}" closer, and "|-" row separator.
func isWikiTableControl(line []byte) bool {
	trimmed := trimTrailingSpaceTab(line)
	return bytes.HasPrefix(trimmed, []byte("{|")) ||
		bytes.Equal(trimmed, []byte("|}")) ||
		bytes.HasPrefix(trimmed, []byte("|-"))
}
