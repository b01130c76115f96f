package unimark

import (
	"bytes"
	"strconv"
)

// parseParagraph collects consecutive text lines into a p element, joined
// with literal newlines (soft breaks). A setext underline promotes the
// collected text to a heading unless the underline line was consumed as a
// lazy continuation earlier, in which case it is plain text.
func (p *Parser) parseParagraph() Item {
	if p.adapter.Format() == FormatMan {
		if item, handled := p.parseManDirective(); handled {
			return item
		}
	}

	buf := p.resetScratch()
	first := p.currentLine()
	buf.Write(bytes.TrimSpace(first))
	startLine := p.cur + 1
	p.cur++

	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			break
		}
		if level := setextUnderlineLevel(line); level > 0 && p.adapter.Format() == FormatMarkdown {
			if !p.state.lazyLines[p.cur] && p.inFrame(lineAt(p.lines, p.cur)) {
				p.cur++
				return p.makeSetextHeading(level, buf.Bytes(), startLine)
			}
		}
		if p.interruptsParagraph(line) {
			break
		}
		if bytes.IndexByte(line, '$') != -1 && buf.Len() > 0 {
			// Math-bearing lines are kept on their own so inline
			// delimiters never straddle a join.
			break
		}
		if !p.inFrame(lineAt(p.lines, p.cur)) {
			// Joining a line shallower than the enclosing frame is a
			// lazy continuation; it can never be a setext underline.
			p.state.lazyLines[p.cur] = true
		}
		buf.WriteByte('\n')
		buf.Write(bytes.TrimSpace(line))
		p.cur++
	}

	text := bytes.TrimRight(buf.Bytes(), " \t\n")

	if p.adapter.Format() == FormatRST && bytes.HasSuffix(text, []byte("::")) {
		return p.parseRSTLiteralIntro(text, startLine)
	}

	e := p.builder.CreateElement("p")
	p.appendInline(e, text, startLine)
	return ElementItem(e)
}

// interruptsParagraph reports whether a candidate continuation line opens
// a new block instead of extending the current paragraph.
func (p *Parser) interruptsParagraph(line []byte) bool {
	a := p.adapter

	if h := a.DetectHeader(line, nil); h.Valid && !h.Underline {
		return true
	}
	if li := a.DetectListItem(line); li.Valid {
		if p.state.parsingListContent {
			return true
		}
		hasContent := li.TextStart < len(trimTrailingSpaceTab(line))
		if hasContent && (!li.Ordered || li.Number == 1) {
			return true
		}
		return false
	}
	if a.DetectBlockquote(line).Valid {
		return true
	}
	if a.DetectThematicBreak(line) {
		return true
	}
	if a.DetectCodeFence(line).Valid {
		return true
	}
	if p.supports(FeatureTables) && a.DetectTable(line, lineAt(p.lines, p.cur+1)) {
		return true
	}
	_, offset := indentColumns(line)
	if bytes.HasPrefix(line[offset:], []byte("$$")) {
		return true
	}
	if a.Format() == FormatMarkdown && htmlCanInterruptParagraph(line) {
		return true
	}
	if a.Format() == FormatMan && len(line) > 0 && (line[0] == '.' || line[0] == '\'') {
		return true
	}
	return false
}

// makeSetextHeading wraps collected paragraph text as h1 or h2.
func (p *Parser) makeSetextHeading(level int, text []byte, line int) Item {
	e := p.builder.CreateElement(headerTags[level])
	p.builder.AddAttribute(e, "level", strconv.Itoa(level))
	p.appendInline(e, bytes.TrimRight(text, " \t\n"), line)
	return ElementItem(e)
}

// parseManDirective handles the troff requests that reach the paragraph
// parser. Font requests produce a one-child paragraph; break and indent
// requests produce nothing; unknown requests are consumed and ignored.
func (p *Parser) parseManDirective() (Item, bool) {
	line := p.currentLine()
	if len(line) == 0 || line[0] != '.' {
		return Undefined, false
	}
	word := line[1:]
	rest := []byte(nil)
	if sp := bytes.IndexAny(word, " \t"); sp != -1 {
		rest = bytes.TrimSpace(word[sp:])
		word = word[:sp]
	}
	p.cur++
	switch string(word) {
	case "B", "I":
		e := p.builder.CreateElement("p")
		tag := "strong"
		if word[0] == 'I' {
			tag = "em"
		}
		inner := p.builder.CreateElement(tag)
		p.builder.AppendText(inner, string(stripManQuotes(rest)))
		p.builder.AppendChild(e, ElementItem(inner))
		return ElementItem(e), true
	case "PP", "P", "LP", "RS", "RE", "br":
		return Undefined, true
	}
	p.log.Debugw("ignoring troff request", "request", string(word), "line", p.cur)
	return Undefined, true
}

// parseRSTLiteralIntro handles a paragraph ending in "::", which
// introduces an indented literal block. An empty remainder emits only the
// block; otherwise the paragraph (with a single trailing colon) and the
// block are wrapped together in a div.
func (p *Parser) parseRSTLiteralIntro(text []byte, line int) Item {
	// text aliases the scratch buffer; parseIndentedLiteral below reuses
	// it, so take a copy of the intro first.
	body := append([]byte(nil), bytes.TrimRight(text[:len(text)-2], " \t")...)
	block := p.parseIndentedLiteral()

	if len(body) == 0 {
		return block
	}
	para := p.builder.CreateElement("p")
	p.appendInline(para, append(body, ':'), line)
	if !block.IsElement() {
		return ElementItem(para)
	}
	div := p.builder.CreateElement("div")
	p.builder.AppendChild(div, ElementItem(para))
	p.builder.AppendChild(div, block)
	return ElementItem(div)
}

// parseIndentedLiteral consumes the indented block following an RST "::"
// intro and emits pre{code{...}}. Blank lines inside the block are kept
// when the indent resumes afterwards.
func (p *Parser) parseIndentedLiteral() Item {
	for p.cur < len(p.lines) && isBlankLine(p.currentLine()) {
		p.cur++
	}
	if p.cur >= len(p.lines) {
		return Undefined
	}
	base, _ := indentColumns(p.currentLine())
	if base == 0 {
		return Undefined
	}
	buf := p.resetScratch()
	pending := 0
	firstLine := true
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			pending++
			p.cur++
			continue
		}
		cols, _ := indentColumns(line)
		if cols < base {
			break
		}
		if !firstLine {
			for i := 0; i <= pending; i++ {
				buf.WriteByte('\n')
			}
		}
		pending = 0
		firstLine = false
		buf.Write(stripIndentColumns(line, base))
		p.cur++
	}
	return p.makeLiteralBlock(buf.String())
}

// makeLiteralBlock wraps literal text as pre{code[type="block"]}.
func (p *Parser) makeLiteralBlock(text string) Item {
	pre := p.builder.CreateElement("pre")
	code := p.builder.CreateElement("code")
	p.builder.AddAttribute(code, "type", "block")
	p.builder.AppendText(code, text)
	p.builder.AppendChild(pre, ElementItem(code))
	return ElementItem(pre)
}
