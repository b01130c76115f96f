package unimark

// parseList parses a run of list items at one indentation level into a
// ul or ol element. Deeper structure is handled by re-entering the parser
// with the item's content column added to the dedent frame, so nested
// blocks are detected as if they started at the margin.
func (p *Parser) parseList() Item {
	opener := p.adapter.DetectListItem(p.currentLine())
	if !opener.Valid {
		return p.parseParagraph()
	}
	base := opener.Indent
	ordered := opener.Ordered

	if p.state.listDepth < MaxListDepth {
		p.state.listMarkers[p.state.listDepth] = opener.Marker
		p.state.listIndents[p.state.listDepth] = p.state.stripCols + base
	}
	p.state.listDepth++
	defer func() { p.state.listDepth-- }()

	tag := "ul"
	if ordered {
		tag = "ol"
	}
	list := p.builder.CreateElement(tag)
	var last *Element

	for p.cur < len(p.lines) {
		raw := lineAt(p.lines, p.cur)
		if isBlankLine(raw) {
			j := p.cur + 1
			for j < len(p.lines) && isBlankLine(p.lines[j]) {
				j++
			}
			if j >= len(p.lines) || !p.inFrame(p.lines[j]) {
				break
			}
			next := p.dedent(p.lines[j])
			cols, _ := indentColumns(next)
			ni := p.adapter.DetectListItem(next)
			if (ni.Valid && ni.Indent >= base) || (!ni.Valid && cols > base) {
				p.cur = j
				continue
			}
			break
		}
		if !p.inFrame(raw) {
			break
		}
		line := p.currentLine()
		li := p.adapter.DetectListItem(line)
		if !li.Valid {
			cols, _ := indentColumns(line)
			if cols > base && last != nil {
				p.collectListItemContent(last, base, base)
				continue
			}
			break
		}
		if li.Indent < base {
			break
		}
		if li.Indent > base {
			// Deeper item with no preceding sibling content; attach the
			// nested list to the last item when there is one. Marker-run
			// dialects (MediaWiki **, Textile ##, AsciiDoc ..) encode depth
			// in the marker itself, so the line carries no extra leading
			// whitespace and the frame must stay where it is.
			if last == nil {
				break
			}
			var nested Item
			if cols, _ := indentColumns(line); cols >= li.Indent {
				nested = p.parseNestedList(li.Indent)
			} else {
				nested = p.parseList()
			}
			if nested.IsElement() {
				p.builder.AppendChild(last, nested)
			}
			continue
		}
		if li.Ordered != ordered {
			break
		}

		item := p.builder.CreateElement("li")
		if li.Task && p.supports(FeatureTaskLists) {
			p.builder.AddAttribute(item, "task", "true")
			checked := "false"
			if li.TaskChecked {
				checked = "true"
			}
			p.builder.AddAttribute(item, "checked", checked)
		}
		text := trimTrailingSpaceTab(line[li.TextStart:])
		if len(text) > 0 {
			p.appendInline(item, text, p.cur+1)
		}
		p.cur++
		p.collectListItemContent(item, base, li.TextStart)
		p.builder.AppendChild(list, ElementItem(item))
		last = item
	}
	return ElementItem(list)
}

// parseNestedList re-enters the list parser with the frame advanced by
// innerIndent columns.
func (p *Parser) parseNestedList(innerIndent int) Item {
	outer := p.state.stripCols
	p.state.stripCols = outer + innerIndent
	nested := p.parseList()
	p.state.stripCols = outer
	return nested
}

// collectListItemContent gathers the continuation lines of one list item:
// every following line indented strictly beyond base (and blank runs
// followed by such a line). Content is re-parsed with the item's text
// column added to the dedent frame; a list item there starts a nested
// list, a code fence a code block, anything else a paragraph.
func (p *Parser) collectListItemContent(item *Element, base, textCol int) {
	outer := p.state.stripCols
	prevFlag := p.state.parsingListContent
	p.state.parsingListContent = true
	defer func() {
		p.state.stripCols = outer
		p.state.parsingListContent = prevFlag
	}()

	for p.cur < len(p.lines) {
		p.state.stripCols = outer
		raw := lineAt(p.lines, p.cur)
		if isBlankLine(raw) {
			j := p.cur + 1
			for j < len(p.lines) && isBlankLine(p.lines[j]) {
				j++
			}
			if j >= len(p.lines) {
				break
			}
			cols, _ := indentColumns(p.dedent(p.lines[j]))
			if cols <= base {
				break
			}
			p.cur = j
			continue
		}
		cols, _ := indentColumns(p.currentLine())
		if cols <= base {
			break
		}

		p.state.stripCols = outer + textCol
		line := p.currentLine()
		var child Item
		switch {
		case p.adapter.DetectListItem(line).Valid && p.state.listDepth < MaxListDepth:
			child = p.parseList()
		case p.adapter.DetectCodeFence(line).Valid:
			child = p.parseCodeBlock()
		default:
			child = p.parseParagraph()
		}
		if child.IsElement() {
			p.builder.AppendChild(item, child)
		}
	}
}
