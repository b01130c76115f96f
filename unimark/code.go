package unimark

import (
	"bytes"
	"strings"
)

// parseCodeBlock parses a fenced or indented code block. Fenced content
// runs to the matching close fence, or to end of document (implicitly
// closed, with a warning). The content is one String child; no inline
// parsing happens inside code.
func (p *Parser) parseCodeBlock() Item {
	line := p.currentLine()

	var language string
	if p.adapter.Format() == FormatAsciiDoc {
		if name, ok := asciidocAttrName(line); ok {
			language = asciidocAttrLanguage(line, name)
			p.cur++
			line = p.currentLine()
			if line == nil {
				return Undefined
			}
		}
	}

	f := p.adapter.DetectCodeFence(line)
	if !f.Valid {
		return p.parseIndentedCode()
	}
	openLine := p.cur + 1
	p.cur++

	buf := p.resetScratch()
	first := true
	closed := false
	if p.adapter.Format() == FormatTextile {
		// The "bc." marker may carry content on its own line.
		if rest := bytes.TrimPrefix(line, []byte("bc.")); len(rest) < len(line) {
			if t := bytes.TrimSpace(rest); len(t) > 0 {
				buf.Write(t)
				first = false
			}
		}
	}
	for p.cur < len(p.lines) {
		raw := lineAt(p.lines, p.cur)
		if !isBlankLine(raw) && !p.inFrame(raw) {
			// The enclosing list item ended; the fence closes with it.
			break
		}
		l := p.currentLine()
		if p.adapter.IsCodeFenceClose(l, f) {
			closed = true
			p.cur++
			break
		}
		if !first {
			buf.WriteByte('\n')
		}
		first = false
		buf.Write(stripIndentColumns(l, f.Indent))
		p.cur++
	}
	if !closed {
		p.addDiag(UnclosedDelimiter, SeverityWarning, openLine, 1,
			"code fence opened here is never closed")
	}

	info := firstWord(f.Info)
	if language == "" {
		language = info
	}
	if language == "asciimath" || language == "ascii-math" {
		m := p.builder.CreateElement("math")
		p.builder.AddAttribute(m, "type", "block")
		p.builder.AddAttribute(m, "flavor", "ascii")
		p.builder.AppendText(m, buf.String())
		return ElementItem(m)
	}

	code := p.builder.CreateElement("code")
	p.builder.AddAttribute(code, "type", "block")
	if language != "" {
		p.builder.AddAttribute(code, "language", language)
	}
	p.builder.AppendText(code, buf.String())
	return ElementItem(code)
}

// parseIndentedCode consumes a run of lines indented at least the
// indented-code threshold and emits pre{code}. Interior blank lines stay
// in the block when the indent resumes afterwards.
func (p *Parser) parseIndentedCode() Item {
	if _, ok := p.adapter.DetectIndentedCode(p.currentLine()); !ok {
		return p.parseParagraph()
	}
	// Exactly the threshold's worth of columns is stripped; deeper
	// indentation is block content.
	const base = 4

	buf := p.resetScratch()
	pending := 0
	first := true
	for p.cur < len(p.lines) {
		line := p.currentLine()
		if isBlankLine(line) {
			pending++
			p.cur++
			continue
		}
		if _, ok := p.adapter.DetectIndentedCode(line); !ok {
			break
		}
		if !first {
			for i := 0; i <= pending; i++ {
				buf.WriteByte('\n')
			}
		}
		pending = 0
		first = false
		buf.Write(stripIndentColumns(line, base))
		p.cur++
	}
	// Trailing blanks belong to whatever follows.
	p.cur -= pending

	return p.makeLiteralBlock(buf.String())
}

// asciidocAttrLanguage extracts the language of a "[source,lang]"
// attribute line; the first positional attribute after the style names
// the language.
func asciidocAttrLanguage(line []byte, style string) string {
	trimmed := trimTrailingSpaceTab(line)
	body := string(trimmed[1 : len(trimmed)-1])
	parts := strings.Split(body, ",")
	if style == "source" && len(parts) > 1 {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// firstWord returns the first whitespace-separated word of s.
func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i != -1 {
		return s[:i]
	}
	return s
}
