package unimark

import (
	"bytes"
	"strings"
)

// roleTags maps a delimiter role to the element it produces. BoldItalic
// and Code are handled specially.
var roleTags = map[DelimiterRole]string{
	RoleBold:      "strong",
	RoleItalic:    "em",
	RoleStrike:    "del",
	RoleSup:       "sup",
	RoleSub:       "sub",
	RoleUnderline: "u",
	RoleCite:      "cite",
	RoleSpan:      "span",
}

// appendInline parses text as inline content and appends the resulting
// items to parent. Every call is independent; no state survives between
// calls.
func (p *Parser) appendInline(parent *Element, text []byte, line int) {
	for _, it := range p.parseInlineItems(text, line) {
		p.builder.AppendChild(parent, it)
	}
}

// parseInline parses text as inline content and returns a single Item: a
// String for plain text, the element itself for a single span, a span
// wrapper for mixed content, Undefined for nothing.
func (p *Parser) parseInline(text []byte, line int) Item {
	items := p.parseInlineItems(text, line)
	switch len(items) {
	case 0:
		return Undefined
	case 1:
		return items[0]
	}
	span := p.builder.CreateElement("span")
	for _, it := range items {
		p.builder.AppendChild(span, it)
	}
	return ElementItem(span)
}

// parseInlineItems runs the inline grammar over text: escapes, code
// spans, images, links, inline math, emphasis delimiters, autolinks.
// Unterminated constructs fall through as plain text.
func (p *Parser) parseInlineItems(text []byte, line int) []Item {
	var items []Item
	var plain bytes.Buffer
	flush := func() {
		if plain.Len() > 0 {
			items = append(items, StringItem(p.builder.InternBytes(plain.Bytes())))
			plain.Reset()
		}
	}

	a := p.adapter
	esc := a.EscapeChar()
	escapable := a.EscapableChars()
	delims := a.EmphasisDelimiters()

	i := 0
	for i < len(text) {
		c := text[i]

		if c == esc && i+1 < len(text) && strings.IndexByte(escapable, text[i+1]) != -1 {
			plain.WriteByte(text[i+1])
			i += 2
			continue
		}

		if c == '`' && delimsHaveBacktickCode(delims) {
			n := byteRunLen(text, i, '`')
			if end := closingBacktickRun(text, i+n, n); end != -1 {
				flush()
				items = append(items, p.makeCodeSpan(text[i+n:end-n]))
				i = end
				continue
			}
			plain.Write(text[i : i+n])
			i += n
			continue
		}

		if img := a.DetectImage(text, i); img.Valid {
			flush()
			items = append(items, p.makeImage(text, img))
			i = img.End
			continue
		}
		if lk := a.DetectLink(text, i); lk.Valid {
			flush()
			items = append(items, p.makeLink(text, lk, line))
			i = lk.End
			continue
		}

		if c == '$' && p.supports(FeatureMath) {
			if end := findUnescaped(text, i+1, '$', a); end != -1 && end > i+1 {
				flush()
				m := p.builder.CreateElement("math")
				p.builder.AddAttribute(m, "type", "inline")
				p.builder.AppendText(m, string(text[i+1:end]))
				items = append(items, ElementItem(m))
				i = end + 1
				continue
			}
		}

		if it, end, ok := p.matchDelimiter(text, i, line, delims); ok {
			flush()
			items = append(items, it)
			i = end
			continue
		}

		if p.supports(FeatureAutolink) && isAutolinkStart(text, i) {
			end := i
			for end < len(text) && text[end] != ' ' && text[end] != '\t' && text[end] != '\n' && text[end] != '<' {
				end++
			}
			url := bytes.TrimRight(text[i:end], ".,;:!?)")
			flush()
			e := p.builder.CreateElement("a")
			p.builder.AddAttribute(e, "href", string(url))
			p.builder.AppendText(e, string(url))
			items = append(items, ElementItem(e))
			i += len(url)
			continue
		}

		plain.WriteByte(c)
		i++
	}
	flush()
	return items
}

// matchDelimiter tries the adapter's emphasis table at text[i]. Returns
// the produced item and the offset past the closer.
func (p *Parser) matchDelimiter(text []byte, i, line int, delims []DelimiterSpec) (Item, int, bool) {
	for _, d := range delims {
		if d.Role == RoleStrike && !p.supports(FeatureStrikethrough) {
			continue
		}
		if !bytes.HasPrefix(text[i:], []byte(d.Open)) {
			continue
		}
		inner := i + len(d.Open)
		end := findDelimClose(text, inner, d.Close, p.adapter)
		if end == -1 || end == inner {
			continue
		}
		if d.RequiresFlanking {
			if isSpaceOrTab(text[inner]) || isSpaceOrTab(text[end-1]) {
				continue
			}
		}
		content := text[inner:end]
		var e *Element
		switch d.Role {
		case RoleCode:
			return p.makeCodeSpan(content), end + len(d.Close), true
		case RoleBoldItalic:
			e = p.builder.CreateElement("strong")
			em := p.builder.CreateElement("em")
			p.fillSpan(em, content, line, d.CanNest)
			p.builder.AppendChild(e, ElementItem(em))
		default:
			e = p.builder.CreateElement(roleTags[d.Role])
			p.fillSpan(e, content, line, d.CanNest)
		}
		return ElementItem(e), end + len(d.Close), true
	}
	return Undefined, 0, false
}

// fillSpan fills an emphasis element with its content, recursing into the
// inline grammar when the delimiter allows nesting.
func (p *Parser) fillSpan(e *Element, content []byte, line int, nest bool) {
	if nest {
		p.appendInline(e, content, line)
		return
	}
	p.builder.AppendText(e, string(content))
}

// makeCodeSpan wraps verbatim span content; interior whitespace is kept,
// surrounding whitespace trimmed.
func (p *Parser) makeCodeSpan(content []byte) Item {
	e := p.builder.CreateElement("code")
	p.builder.AddAttribute(e, "type", "span")
	p.builder.AppendText(e, string(bytes.TrimSpace(content)))
	return ElementItem(e)
}

// makeLink materializes a detected link. Reference links resolve through
// the pre-scanned table; with resolution off, or when the label is
// unknown, the construct stays in place as plain text.
func (p *Parser) makeLink(text []byte, lk LinkInfo, line int) Item {
	label := text[lk.TextStart:lk.TextEnd]
	var dest, title string
	if lk.IsReference {
		ref := text[lk.RefStart:lk.RefEnd]
		if len(ref) == 0 {
			ref = label
		}
		raw := text[lk.TextStart-1 : lk.End]
		if !p.config.ResolveRefs {
			return StringItem(p.builder.InternBytes(raw))
		}
		r, ok := p.resolveLinkRef(string(ref), line)
		if !ok {
			return StringItem(p.builder.InternBytes(raw))
		}
		dest, title = r.dest, r.title
	} else {
		dest = string(text[lk.URLStart:lk.URLEnd])
		if lk.TitleStart < lk.TitleEnd {
			title = string(text[lk.TitleStart:lk.TitleEnd])
		}
	}
	e := p.builder.CreateElement("a")
	p.builder.AddAttribute(e, "href", dest)
	if title != "" {
		p.builder.AddAttribute(e, "title", title)
	}
	switch {
	case len(label) == 0:
		p.builder.AppendText(e, dest)
	case lk.TextStart == lk.URLStart && lk.TextEnd == lk.URLEnd:
		// The label is the URL itself (bare autolinks, [[url]] forms);
		// re-parsing it would detect the same link again.
		p.builder.AppendText(e, string(label))
	default:
		p.appendInline(e, label, line)
	}
	return ElementItem(e)
}

// makeImage materializes a detected image as img[src, alt?, title?].
func (p *Parser) makeImage(text []byte, lk LinkInfo) Item {
	e := p.builder.CreateElement("img")
	p.builder.AddAttribute(e, "src", string(text[lk.URLStart:lk.URLEnd]))
	if lk.TextStart < lk.TextEnd {
		p.builder.AddAttribute(e, "alt", string(text[lk.TextStart:lk.TextEnd]))
	}
	if lk.TitleStart < lk.TitleEnd {
		p.builder.AddAttribute(e, "title", string(text[lk.TitleStart:lk.TitleEnd]))
	}
	return ElementItem(e)
}

// delimsHaveBacktickCode reports whether the dialect uses backtick code
// spans, which need run-length matching rather than plain string match.
func delimsHaveBacktickCode(delims []DelimiterSpec) bool {
	for _, d := range delims {
		if d.Role == RoleCode && d.Open == "`" {
			return true
		}
	}
	return false
}

// findDelimClose finds the first unescaped occurrence of close at or
// after from.
func findDelimClose(text []byte, from int, close string, a FormatAdapter) int {
	if close == "" {
		return -1
	}
	for i := from; i+len(close) <= len(text); i++ {
		if text[i] == close[0] && !a.IsEscaped(text, i) && bytes.HasPrefix(text[i:], []byte(close)) {
			return i
		}
	}
	return -1
}

// findUnescaped finds the first unescaped occurrence of c at or after
// from.
func findUnescaped(text []byte, from int, c byte, a FormatAdapter) int {
	for i := from; i < len(text); i++ {
		if text[i] == c && !a.IsEscaped(text, i) {
			return i
		}
	}
	return -1
}

// isAutolinkStart reports a bare http(s) URL at text[i].
func isAutolinkStart(text []byte, i int) bool {
	rest := text[i:]
	if !bytes.HasPrefix(rest, []byte("http://")) && !bytes.HasPrefix(rest, []byte("https://")) {
		return false
	}
	// Only at a word boundary.
	return i == 0 || text[i-1] == ' ' || text[i-1] == '\t' || text[i-1] == '(' || text[i-1] == '\n'
}
