package unimark

import (
	"bytes"
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// The seven HTML block flavors of CommonMark 4.6, as start conditions.
// Flavors 1-5 end on a line matching their end condition (which may be
// the start line itself); flavors 6 and 7 end at a blank line. Flavor 7
// never interrupts a paragraph.
var (
	html1Start = regexp.MustCompile(`(?i)^ {0,3}<(?:pre|script|style|textarea)(?:[ \t>]|$)`)
	html1End   = regexp.MustCompile(`(?i)</(?:pre|script|style|textarea)>`)
	html2Start = regexp.MustCompile(`^ {0,3}<!--`)
	html3Start = regexp.MustCompile(`^ {0,3}<\?`)
	html4Start = regexp.MustCompile(`^ {0,3}<![a-zA-Z]`)
	html5Start = regexp.MustCompile(`^ {0,3}<!\[CDATA\[`)
	html6Start = regexp.MustCompile(`(?i)^ {0,3}</?(?:address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|h1|h2|h3|h4|h5|h6|head|header|hr|html|iframe|legend|li|link|main|menu|menuitem|nav|noframes|ol|optgroup|option|p|param|section|source|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul)(?:[ \t]|/?>|$)`)

	htmlAttr   = `[a-zA-Z_:][a-zA-Z0-9_.:-]*[ \t]*(?:=[ \t]*(?:[^ \t"'=<>` + "`" + `]+|'[^']*'|"[^"]*"))?`
	html7Start = regexp.MustCompile(
		`^ {0,3}(?:<[a-zA-Z][a-zA-Z0-9-]*(?:[ \t]+` + htmlAttr + `)*[ \t]*/?>|</[a-zA-Z][a-zA-Z0-9-]*[ \t]*>)[ \t]*$`)
)

// htmlBlockKind returns the flavor number that matches the line, or 0.
func htmlBlockKind(line []byte) int {
	switch {
	case html1Start.Match(line):
		return 1
	case html2Start.Match(line):
		return 2
	case html3Start.Match(line):
		return 3
	case html5Start.Match(line):
		// CDATA before the generic <!LETTER declaration form.
		return 5
	case html4Start.Match(line):
		return 4
	case html6Start.Match(line):
		return 6
	case html7Start.Match(line):
		return 7
	}
	return 0
}

// isHTMLBlockStart reports whether the line opens any HTML block flavor.
func isHTMLBlockStart(line []byte) bool {
	return htmlBlockKind(line) != 0
}

// htmlCanInterruptParagraph reports whether the line opens an HTML block
// allowed to interrupt a paragraph (flavors 1-6).
func htmlCanInterruptParagraph(line []byte) bool {
	k := htmlBlockKind(line)
	return k >= 1 && k <= 6
}

// htmlEndToken is the content end marker of flavors 2-5.
func htmlEndToken(kind int) []byte {
	switch kind {
	case 2:
		return []byte("-->")
	case 3:
		return []byte("?>")
	case 4:
		return []byte(">")
	case 5:
		return []byte("]]>")
	}
	return nil
}

// parseRawHTML consumes one HTML block, parses the captured fragment and
// appends its DOM to the accumulated HTML body. It emits Undefined: the
// driver attaches the accumulated body at document end instead of
// appending per-block children.
func (p *Parser) parseRawHTML() Item {
	kind := htmlBlockKind(p.currentLine())
	if kind == 0 {
		return p.parseParagraph()
	}
	buf := p.resetScratch()
	for p.cur < len(p.lines) {
		line := p.currentLine()
		done := false
		switch kind {
		case 1:
			done = html1End.Match(line)
		case 2, 3, 4, 5:
			done = bytes.Contains(line, htmlEndToken(kind))
		case 6, 7:
			if isBlankLine(line) {
				done = true
			}
		}
		if (kind == 6 || kind == 7) && done {
			break
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
		p.cur++
		if done {
			break
		}
	}
	p.appendHTMLFragment(buf.Bytes())
	return Undefined
}

// appendHTMLFragment parses raw HTML as a body fragment and appends the
// converted elements to the parser's accumulated HTML body.
func (p *Parser) appendHTMLFragment(raw []byte) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(raw), ctx)
	if err != nil {
		p.addDiag(InvalidSyntax, SeverityWarning, p.cur, 1, "unparseable HTML block: %v", err)
		return
	}
	if p.htmlBody == nil {
		p.htmlBody = p.builder.CreateElement("html-dom")
	}
	for _, n := range nodes {
		if it := p.convertHTMLNode(n); !it.IsUndefined() {
			p.builder.AppendChild(p.htmlBody, it)
		}
	}
}

// convertHTMLNode maps an html.Node subtree onto the element model. Text
// nodes become Strings; whitespace-only text and comments are dropped.
func (p *Parser) convertHTMLNode(n *html.Node) Item {
	switch n.Type {
	case html.TextNode:
		if len(bytes.TrimSpace([]byte(n.Data))) == 0 {
			return Undefined
		}
		return StringItem(n.Data)
	case html.ElementNode:
		e := p.builder.CreateElement(n.Data)
		for _, a := range n.Attr {
			p.builder.AddAttribute(e, a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if it := p.convertHTMLNode(c); !it.IsUndefined() {
				p.builder.AppendChild(e, it)
			}
		}
		return ElementItem(e)
	}
	return Undefined
}
