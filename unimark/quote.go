package unimark

import "bytes"

// parseBlockquote parses angle-marker quotes. Depth transitions recurse,
// so "> > x" followed by "> y" yields a nested blockquote followed by
// sibling text inside the outer quote.
func (p *Parser) parseBlockquote() Item {
	if p.adapter.Format() == FormatAsciiDoc {
		if name, ok := asciidocAttrName(p.currentLine()); ok && (name == "quote" || name == "verse") {
			return p.parseAsciiDocQuote()
		}
	}
	return p.parseQuoteAt(1)
}

// parseQuoteAt collects the lines of one quote nesting level. A local
// buffer is used instead of the shared scratch because the routine
// recurses into itself for deeper levels.
func (p *Parser) parseQuoteAt(base int) Item {
	bq := p.builder.CreateElement("blockquote")
	startLine := p.cur + 1
	var buf bytes.Buffer

	flush := func() {
		text := bytes.TrimSpace(buf.Bytes())
		if len(text) > 0 {
			p.appendInline(bq, append([]byte{}, text...), startLine)
		}
		buf.Reset()
	}

	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			j := p.cur + 1
			for j < len(p.lines) && isBlankLine(p.lines[j]) {
				j++
			}
			if j >= len(p.lines) {
				break
			}
			q := p.adapter.DetectBlockquote(p.dedent(p.lines[j]))
			if !q.Valid || q.Depth < base {
				break
			}
			// Paragraph separator inside the quote.
			buf.WriteByte('\n')
			p.cur = j
			continue
		}
		q := p.adapter.DetectBlockquote(line)
		if !q.Valid || q.Depth < base {
			break
		}
		if q.Depth > base {
			flush()
			nested := p.parseQuoteAt(base + 1)
			if nested.IsElement() {
				p.builder.AppendChild(bq, nested)
			}
			continue
		}
		content := bytes.TrimSpace(line[q.ContentStart:])
		if len(content) == 0 {
			// A marker with no content separates paragraphs.
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			p.cur++
			continue
		}
		if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
			buf.WriteByte(' ')
		}
		buf.Write(content)
		p.cur++
	}
	flush()
	return ElementItem(bq)
}

// parseAsciiDocQuote handles a "[quote]" or "[verse]" attribute line,
// optionally followed by an underscore-delimited block; without the
// delimiter the quote is the following paragraph.
func (p *Parser) parseAsciiDocQuote() Item {
	p.cur++ // attribute line
	bq := p.builder.CreateElement("blockquote")
	startLine := p.cur + 1

	line := p.currentLine()
	if line != nil && isUnderscoreDelim(line) {
		p.cur++
		var buf bytes.Buffer
		closed := false
		for p.cur < len(p.lines) {
			l := p.currentLine()
			if isUnderscoreDelim(l) {
				closed = true
				p.cur++
				break
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.Write(trimTrailingSpaceTab(l))
			p.cur++
		}
		if !closed {
			p.addDiag(UnclosedDelimiter, SeverityWarning, startLine, 1,
				"quote block opened here is never closed")
		}
		p.appendInline(bq, bytes.TrimSpace(buf.Bytes()), startLine)
		return ElementItem(bq)
	}

	// No delimiter: the quote body is the paragraph that follows.
	for p.cur < len(p.lines) {
		l := p.currentLine()
		if isBlankLine(l) {
			break
		}
		para := p.parseParagraph()
		if para.IsElement() {
			p.builder.AppendChild(bq, para)
		}
		break
	}
	return ElementItem(bq)
}

// isUnderscoreDelim reports a line of four or more underscores.
func isUnderscoreDelim(line []byte) bool {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 4 {
		return false
	}
	for _, c := range trimmed {
		if c != '_' {
			return false
		}
	}
	return true
}
