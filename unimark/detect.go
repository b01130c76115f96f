package unimark

import (
	"bytes"
	"strconv"
)

// BlockType is the tag the block detector assigns to the current line.
type BlockType uint8

const (
	BlockParagraph BlockType = iota
	BlockHeader
	BlockListItem
	BlockCode
	BlockQuote
	BlockTable
	BlockMath
	BlockDivider
	BlockRawHTML
	BlockDefinitionList
	BlockDirective
)

// String returns a string representation of the BlockType.
func (t BlockType) String() string {
	switch t {
	case BlockParagraph:
		return "Paragraph"
	case BlockHeader:
		return "Header"
	case BlockListItem:
		return "ListItem"
	case BlockCode:
		return "CodeBlock"
	case BlockQuote:
		return "Quote"
	case BlockTable:
		return "Table"
	case BlockMath:
		return "Math"
	case BlockDivider:
		return "Divider"
	case BlockRawHTML:
		return "RawHtml"
	case BlockDefinitionList:
		return "DefinitionList"
	case BlockDirective:
		return "Directive"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// detectBlockType dispatches a single line to a block type, asking the
// adapter first and falling back to generic rules.
//
// The order of the checks is load-bearing: a thematic break is asked before
// a list item because "---" matches both and the break wins; indented code
// is only considered outside lists because indent rules change inside them.
func (p *Parser) detectBlockType(line, next []byte) BlockType {
	if isBlankLine(line) {
		return BlockParagraph
	}
	a := p.adapter

	if a.DetectThematicBreak(line) {
		return BlockDivider
	}
	if a.DetectHeader(line, next).Valid {
		return BlockHeader
	}
	if a.DetectListItem(line).Valid {
		return BlockListItem
	}
	if a.DetectCodeFence(line).Valid {
		return BlockCode
	}
	if a.Format() == FormatMarkdown && isHTMLBlockStart(line) {
		return BlockRawHTML
	}
	if a.DetectBlockquote(line).Valid {
		return BlockQuote
	}
	if p.supports(FeatureTables) && a.DetectTable(line, next) {
		return BlockTable
	}

	switch a.Format() {
	case FormatAsciiDoc:
		if t, ok := p.detectAsciiDocBlock(line); ok {
			return t
		}
	case FormatRST:
		if t, ok := p.detectRSTBlock(line, next); ok {
			return t
		}
	case FormatTextile:
		if t, ok := detectTextileBlock(line); ok {
			return t
		}
	}

	if p.state.listDepth == 0 {
		if _, ok := a.DetectIndentedCode(line); ok {
			return BlockCode
		}
	}

	return p.detectGenericBlock(line, next)
}

// detectAsciiDocBlock covers the AsciiDoc constructs that are not part of
// the shared capability set: admonition prefixes, "term::" definition
// lists and "[attr]" block attribute lines.
func (p *Parser) detectAsciiDocBlock(line []byte) (BlockType, bool) {
	if kind, _ := detectAdmonition(line); kind != "" {
		return BlockDirective, true
	}
	if isAsciiDocDefTerm(line) {
		return BlockDefinitionList, true
	}
	if name, ok := asciidocAttrName(line); ok {
		switch name {
		case "source", "listing", "literal":
			return BlockCode, true
		case "quote", "verse":
			return BlockQuote, true
		default:
			return BlockDirective, true
		}
	}
	return 0, false
}

// isAsciiDocDefTerm reports a "term:: definition" line.
func isAsciiDocDefTerm(line []byte) bool {
	idx := bytes.Index(line, []byte("::"))
	if idx <= 0 {
		return false
	}
	// "::" inside a URL or at the start is not a definition marker; the
	// term must be followed by whitespace or end-of-line after the run
	// of colons.
	i := idx
	for i < len(line) && line[i] == ':' {
		i++
	}
	return i == len(line) || isSpaceOrTab(line[i])
}

// asciidocAttrName extracts the first attribute name of a "[...]" block
// attribute line.
func asciidocAttrName(line []byte) (string, bool) {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 3 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	body := trimmed[1 : len(trimmed)-1]
	if comma := bytes.IndexByte(body, ','); comma != -1 {
		body = body[:comma]
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", false
	}
	return asciiLower(string(body)), true
}

// detectRSTBlock covers RST directives, comments, line blocks and
// definition lists.
func (p *Parser) detectRSTBlock(line, next []byte) (BlockType, bool) {
	if bytes.HasPrefix(line, []byte(".. ")) || bytes.Equal(trimTrailingSpaceTab(line), []byte("..")) {
		return BlockDirective, true
	}
	if bytes.HasPrefix(line, []byte("| ")) || bytes.Equal(trimTrailingSpaceTab(line), []byte("|")) {
		return BlockDirective, true // line block
	}
	// Definition list: unindented term line followed directly by an
	// indented, non-blank definition line.
	if cols, _ := indentColumns(line); cols == 0 && next != nil && !isBlankLine(next) {
		if nextCols, _ := indentColumns(next); nextCols > 0 {
			if !p.adapter.DetectListItem(line).Valid {
				return BlockDefinitionList, true
			}
		}
	}
	return 0, false
}

// detectTextileBlock covers Textile footnote definitions and "- term :=
// definition" definition lists.
func detectTextileBlock(line []byte) (BlockType, bool) {
	if isTextileFootnoteDef(line) {
		return BlockDirective, true
	}
	if bytes.HasPrefix(line, []byte("- ")) && bytes.Contains(line, []byte(" := ")) {
		return BlockDefinitionList, true
	}
	return 0, false
}

// isTextileFootnoteDef reports "fnN. text".
func isTextileFootnoteDef(line []byte) bool {
	if !bytes.HasPrefix(line, []byte("fn")) {
		return false
	}
	i := 2
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 2 && i < len(line) && line[i] == '.' && (i+1 == len(line) || isSpaceOrTab(line[i+1]))
}

// detectGenericBlock applies the leading-character fallbacks shared by all
// dialects.
func (p *Parser) detectGenericBlock(line, next []byte) BlockType {
	_, offset := indentColumns(line)
	if offset >= len(line) {
		return BlockParagraph
	}
	switch line[offset] {
	case '`', '~':
		if genericFence(line).Valid {
			return BlockCode
		}
	case '>':
		if detectAngleQuote(line).Valid {
			return BlockQuote
		}
	case '|':
		if p.supports(FeatureTables) {
			return BlockTable
		}
	case '$':
		if bytes.HasPrefix(line[offset:], []byte("$$")) {
			return BlockMath
		}
	case '#':
		if detectATXHeader(line).Valid {
			return BlockHeader
		}
	}
	if isBreakLine(line, "-*_") {
		return BlockDivider
	}
	if detectMarkdownListItem(line).Valid {
		return BlockListItem
	}
	return BlockParagraph
}
