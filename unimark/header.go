package unimark

import "strconv"

// headerTags is indexed by level; level 0 is unused.
var headerTags = [...]string{"", "h1", "h2", "h3", "h4", "h5", "h6"}

// parseHeader emits an h1..h6 element with a level attribute and one
// inline-parsed child. Setext heads consume the underline line too.
func (p *Parser) parseHeader() Item {
	line := p.currentLine()
	h := p.adapter.DetectHeader(line, p.peekLine(1))
	if !h.Valid {
		return p.parseParagraph()
	}
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	e := p.builder.CreateElement(headerTags[level])
	p.builder.AddAttribute(e, "level", strconv.Itoa(level))
	p.appendInline(e, line[h.TextStart:h.TextEnd], p.cur+1)
	p.cur++
	if h.Underline {
		p.cur++
	}
	return ElementItem(e)
}
