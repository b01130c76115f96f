package unimark

import (
	"bytes"
	"strings"
)

// parseThematicBreak emits hr and advances one line.
func (p *Parser) parseThematicBreak() Item {
	p.cur++
	return ElementItem(p.builder.CreateElement("hr"))
}

// parseMathBlock parses a $$-delimited display math block into a math
// element with a single String child. A closing $$ on the opening line
// makes a one-line block; otherwise lines accumulate until a line starts
// or ends with $$.
func (p *Parser) parseMathBlock() Item {
	line := p.currentLine()
	startLine := p.cur + 1
	_, offset := indentColumns(line)
	rest := line[offset+2:]

	m := p.builder.CreateElement("math")
	p.builder.AddAttribute(m, "type", "block")

	if idx := bytes.Index(rest, []byte("$$")); idx != -1 {
		p.builder.AppendText(m, string(bytes.TrimSpace(rest[:idx])))
		p.cur++
		return ElementItem(m)
	}

	buf := p.resetScratch()
	if trimmed := bytes.TrimSpace(rest); len(trimmed) > 0 {
		buf.Write(trimmed)
	}
	p.cur++
	closed := false
	for p.cur < len(p.lines) {
		l := p.currentLine()
		trimmed := bytes.TrimSpace(l)
		if bytes.HasPrefix(trimmed, []byte("$$")) {
			closed = true
			p.cur++
			break
		}
		if bytes.HasSuffix(trimmed, []byte("$$")) {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.Write(bytes.TrimSpace(trimmed[:len(trimmed)-2]))
			closed = true
			p.cur++
			break
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(trimmed)
		p.cur++
	}
	if !closed {
		p.addDiag(UnclosedDelimiter, SeverityWarning, startLine, 1,
			"math block opened here is never closed")
	}
	p.builder.AppendText(m, buf.String())
	return ElementItem(m)
}

// parseDefinitionList dispatches to the dialect's definition-list
// grammar, all of which emit dl with alternating dt/dd children.
func (p *Parser) parseDefinitionList() Item {
	switch p.adapter.Format() {
	case FormatAsciiDoc:
		return p.parseAsciiDocDefList()
	case FormatTextile:
		return p.parseTextileDefList()
	case FormatRST:
		return p.parseRSTDefList()
	}
	return p.parseParagraph()
}

// parseAsciiDocDefList parses "term:: definition" lines. The definition
// may follow on the next line instead of sharing the term's line.
func (p *Parser) parseAsciiDocDefList() Item {
	dl := p.builder.CreateElement("dl")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if line == nil || !isAsciiDocDefTerm(line) {
			break
		}
		idx := bytes.Index(line, []byte("::"))
		term := bytes.TrimSpace(line[:idx])
		i := idx
		for i < len(line) && line[i] == ':' {
			i++
		}
		def := bytes.TrimSpace(line[i:])
		p.cur++
		if len(def) == 0 {
			// Definition on the following line.
			if next := p.currentLine(); next != nil && !isBlankLine(next) && !isAsciiDocDefTerm(next) {
				def = bytes.TrimSpace(next)
				p.cur++
			}
		}
		dt := p.builder.CreateElement("dt")
		p.appendInline(dt, term, p.cur)
		p.builder.AppendChild(dl, ElementItem(dt))
		dd := p.builder.CreateElement("dd")
		if len(def) > 0 {
			p.appendInline(dd, def, p.cur)
		}
		p.builder.AppendChild(dl, ElementItem(dd))
	}
	return ElementItem(dl)
}

// parseTextileDefList parses "- term := definition" lines.
func (p *Parser) parseTextileDefList() Item {
	dl := p.builder.CreateElement("dl")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if line == nil || !bytes.HasPrefix(line, []byte("- ")) {
			break
		}
		idx := bytes.Index(line, []byte(" := "))
		if idx == -1 {
			break
		}
		term := bytes.TrimSpace(line[2:idx])
		def := bytes.TrimSpace(line[idx+4:])
		dt := p.builder.CreateElement("dt")
		p.appendInline(dt, term, p.cur+1)
		p.builder.AppendChild(dl, ElementItem(dt))
		dd := p.builder.CreateElement("dd")
		p.appendInline(dd, def, p.cur+1)
		p.builder.AppendChild(dl, ElementItem(dd))
		p.cur++
	}
	return ElementItem(dl)
}

// parseRSTDefList parses term lines followed by indented definition
// lines. Multiple definition lines join with a space.
func (p *Parser) parseRSTDefList() Item {
	dl := p.builder.CreateElement("dl")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if line == nil || isBlankLine(line) {
			break
		}
		cols, _ := indentColumns(line)
		if cols != 0 {
			break
		}
		next := p.peekLine(1)
		if next == nil || isBlankLine(next) {
			break
		}
		if nextCols, _ := indentColumns(next); nextCols == 0 {
			break
		}
		dt := p.builder.CreateElement("dt")
		p.appendInline(dt, trimTrailingSpaceTab(line), p.cur+1)
		p.builder.AppendChild(dl, ElementItem(dt))
		p.cur++

		buf := p.resetScratch()
		for p.cur < len(p.lines) {
			l := p.currentLine()
			if isBlankLine(l) {
				break
			}
			if c, _ := indentColumns(l); c == 0 {
				break
			}
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(bytes.TrimSpace(l))
			p.cur++
		}
		dd := p.builder.CreateElement("dd")
		p.appendInline(dd, append([]byte{}, buf.Bytes()...), p.cur)
		p.builder.AppendChild(dl, ElementItem(dd))

		// A blank line between entries keeps the list going when another
		// term/definition pair follows.
		if p.cur < len(p.lines) && isBlankLine(p.currentLine()) {
			next := p.peekLine(1)
			after := p.peekLine(2)
			if next == nil || after == nil || isBlankLine(next) {
				break
			}
			nc, _ := indentColumns(next)
			ac, _ := indentColumns(after)
			if nc != 0 || ac == 0 {
				break
			}
			p.cur++
		}
	}
	return ElementItem(dl)
}

// parseDirective handles the dialect-specific constructs the detector
// labels Directive: AsciiDoc admonitions and attribute blocks, RST
// directives, comments and line blocks, Textile footnote definitions.
func (p *Parser) parseDirective() Item {
	switch p.adapter.Format() {
	case FormatAsciiDoc:
		line := p.currentLine()
		if kind, start := detectAdmonition(line); kind != "" {
			return p.parseAdmonition(kind, start)
		}
		if name, ok := asciidocAttrName(line); ok {
			return p.parseAsciiDocAttrBlock(name)
		}
	case FormatRST:
		line := p.currentLine()
		if bytes.HasPrefix(line, []byte("| ")) || bytes.Equal(trimTrailingSpaceTab(line), []byte("|")) {
			return p.parseRSTLineBlock()
		}
		return p.parseRSTDirective()
	case FormatTextile:
		return p.parseTextileFootnote()
	}
	p.cur++
	return Undefined
}

// parseAdmonition parses "NOTE: text" style AsciiDoc admonitions into a
// classed div with one p child per line, up to a blank line or a new
// block-structural line.
func (p *Parser) parseAdmonition(kind string, contentStart int) Item {
	div := p.builder.CreateElement("div")
	p.builder.AddAttribute(div, "class", "admonition "+kind)
	p.builder.AddAttribute(div, "data-type", kind)

	line := p.currentLine()
	first := p.builder.CreateElement("p")
	p.appendInline(first, bytes.TrimSpace(line[contentStart:]), p.cur+1)
	p.builder.AppendChild(div, ElementItem(first))
	p.cur++

	for p.cur < len(p.lines) {
		l := p.currentLine()
		if isBlankLine(l) {
			break
		}
		if p.detectBlockType(l, p.peekLine(1)) != BlockParagraph {
			break
		}
		cont := p.builder.CreateElement("p")
		p.appendInline(cont, bytes.TrimSpace(l), p.cur+1)
		p.builder.AppendChild(div, ElementItem(cont))
		p.cur++
	}
	return ElementItem(div)
}

// parseAsciiDocAttrBlock handles an unrecognized "[name]" attribute line:
// the block it introduces becomes a div carrying the attribute name.
func (p *Parser) parseAsciiDocAttrBlock(name string) Item {
	p.cur++
	div := p.builder.CreateElement("div")
	p.builder.AddAttribute(div, "class", name)
	line := p.currentLine()
	if line != nil && !isBlankLine(line) {
		para := p.parseParagraph()
		if para.IsElement() {
			p.builder.AppendChild(div, para)
		}
	}
	return ElementItem(div)
}

// rstImageOptions are the directive options copied onto img attributes.
var rstImageOptions = map[string]string{
	"alt":    "alt",
	"width":  "width",
	"height": "height",
	"class":  "class",
}

// parseRSTDirective handles ".. name:: args" directives. Image and
// figure directives produce img elements with their recognized options;
// comments are consumed silently; anything else is reported and skipped
// with its indented body.
func (p *Parser) parseRSTDirective() Item {
	line := p.currentLine()
	startLine := p.cur + 1
	rest := bytes.TrimSpace(line[2:])

	idx := bytes.Index(rest, []byte("::"))
	if idx <= 0 {
		// ".. text" without a directive marker is a comment.
		p.cur++
		p.skipIndentedBody()
		return Undefined
	}
	name := asciiLower(string(bytes.TrimSpace(rest[:idx])))
	args := bytes.TrimSpace(rest[idx+2:])
	p.cur++

	switch name {
	case "image", "figure":
		img := p.builder.CreateElement("img")
		p.builder.AddAttribute(img, "src", string(args))
		p.parseRSTDirectiveOptions(img)
		if name == "figure" {
			p.skipIndentedBody() // caption lines, not represented
		}
		return ElementItem(img)
	case "code", "code-block", "sourcecode":
		return p.parseRSTCodeDirective(string(args))
	default:
		p.addDiag(UnknownDirective, SeverityNote, startLine, 1, "unknown directive %q", name)
		p.skipIndentedBody()
		return Undefined
	}
}

// parseRSTDirectiveOptions consumes the indented ":name: value" option
// lines following a directive and copies the recognized ones onto e.
func (p *Parser) parseRSTDirectiveOptions(e *Element) {
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			break
		}
		cols, offset := indentColumns(line)
		if cols == 0 || offset >= len(line) || line[offset] != ':' {
			break
		}
		body := line[offset+1:]
		end := bytes.IndexByte(body, ':')
		if end == -1 {
			break
		}
		key := asciiLower(string(bytes.TrimSpace(body[:end])))
		val := string(bytes.TrimSpace(body[end+1:]))
		if attr, ok := rstImageOptions[key]; ok && e != nil {
			p.builder.AddAttribute(e, attr, val)
		}
		p.cur++
	}
}

// parseRSTCodeDirective turns ".. code:: lang" plus its indented body
// into a code block.
func (p *Parser) parseRSTCodeDirective(lang string) Item {
	p.parseRSTDirectiveOptions(nil)
	block := p.parseIndentedLiteral()
	if !block.IsElement() {
		return Undefined
	}
	if lang != "" {
		if code := block.Elem.LastElement(); code != nil {
			p.builder.AddAttribute(code, "language", strings.TrimSpace(lang))
		}
	}
	return block
}

// skipIndentedBody consumes the indented continuation lines of a
// directive, including interior blanks followed by more indent.
func (p *Parser) skipIndentedBody() {
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			next := p.peekLine(1)
			if next == nil || isBlankLine(next) {
				return
			}
			if cols, _ := indentColumns(next); cols == 0 {
				return
			}
			p.cur++
			continue
		}
		if cols, _ := indentColumns(line); cols == 0 {
			return
		}
		p.cur++
	}
}

// parseRSTLineBlock parses consecutive "| " prefixed lines into
// div[class="line-block"] with one p per line.
func (p *Parser) parseRSTLineBlock() Item {
	div := p.builder.CreateElement("div")
	p.builder.AddAttribute(div, "class", "line-block")
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if line == nil {
			break
		}
		trimmed := trimTrailingSpaceTab(line)
		if !bytes.HasPrefix(line, []byte("| ")) && !bytes.Equal(trimmed, []byte("|")) {
			break
		}
		para := p.builder.CreateElement("p")
		if len(trimmed) > 2 {
			p.appendInline(para, bytes.TrimSpace(trimmed[1:]), p.cur+1)
		}
		p.builder.AppendChild(div, ElementItem(para))
		p.cur++
	}
	return ElementItem(div)
}

// parseTextileFootnote parses "fnN. text" into an identified footnote
// div with one p child.
func (p *Parser) parseTextileFootnote() Item {
	line := p.currentLine()
	dot := bytes.IndexByte(line, '.')
	if dot == -1 {
		return p.parseParagraph()
	}
	id := string(line[:dot])
	div := p.builder.CreateElement("div")
	p.builder.AddAttribute(div, "class", "footnote")
	p.builder.AddAttribute(div, "id", id)
	para := p.builder.CreateElement("p")
	p.appendInline(para, bytes.TrimSpace(line[dot+1:]), p.cur+1)
	p.builder.AppendChild(div, ElementItem(para))
	p.cur++
	return ElementItem(div)
}
