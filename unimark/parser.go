package unimark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// MaxListDepth is the maximum supported nesting depth for lists. Items
// nested deeper are clamped to this level.
const MaxListDepth = 16

// linkRef is one entry of the link reference table, collected by a
// pre-scan before block parsing starts.
type linkRef struct {
	dest  string
	title string
	line  int
}

// parserState carries the mutable parsing context that block parsers
// consult and must keep consistent while they recurse.
type parserState struct {
	listMarkers [MaxListDepth]byte
	listIndents [MaxListDepth]int
	listDepth   int

	inCodeBlock bool
	inMathBlock bool
	inQuote     bool
	inTable     bool

	// parsingListContent is set while re-parsing the dedented body of a
	// list item, where any list marker interrupts a paragraph.
	parsingListContent bool

	// stripCols is the active dedent frame: the indentation columns
	// consumed by enclosing list items, stripped from every line before
	// block detection.
	stripCols int

	// lazyLines marks, per input line, the lines consumed as lazy
	// paragraph continuations. A marked line can never become a setext
	// underline.
	lazyLines []bool
}

// Parser parses one source document into an element tree.
type Parser struct {
	builder  *Builder
	adapter  FormatAdapter
	config   ParseConfig
	log      *zap.SugaredLogger
	fileName string

	buf   []byte
	lines [][]byte
	cur   int

	state parserState
	refs  map[string]linkRef

	// htmlBody accumulates the DOM fragments of all raw HTML blocks of
	// the document. Attached to the document root when non-empty.
	htmlBody *Element

	// scratch is reused across inline parses. Reset on entry, never on
	// exit, so partial content survives for error reporting.
	scratch       bytes.Buffer
	scratchResets int

	// Doc is the parsed document, set by ParseDocument.
	Doc Item

	// Metadata holds the document frontmatter, when present and
	// collection is enabled.
	Metadata *yaml.YAML

	// Diagnostics collects the problems found while parsing, in source
	// order.
	Diagnostics []*Diagnostic
}

// New creates a Parser for the given source buffer. The buffer is
// normalized (BOM stripped, line endings converted to LF) and split into
// lines; the original slice is not modified.
func New(fileName string, src []byte, cfg ParseConfig) *Parser {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Flavor == "" {
		cfg.Flavor = FlavorGFM
	}
	buf, lines := splitLines(src)
	format := cfg.Format
	if format == FormatAuto {
		format = DetectFormat(fileName, buf)
		cfg.Logger.Debugw("format auto-detected", "file", fileName, "format", format)
	}
	p := &Parser{
		builder:  NewBuilder(),
		adapter:  AdapterFor(format),
		config:   cfg,
		log:      cfg.Logger,
		fileName: fileName,
		buf:      buf,
		lines:    lines,
		refs:     map[string]linkRef{},
	}
	p.state.lazyLines = make([]bool, len(lines))
	return p
}

// ParseFromBytes parses a document held in memory and returns the parser
// with its Doc, Metadata and Diagnostics populated. In strict mode the
// first error-severity diagnostic is returned as the error.
func ParseFromBytes(fileName string, src []byte, cfg ParseConfig) (*Parser, error) {
	p := New(fileName, src, cfg)
	doc, err := p.ParseDocument()
	p.Doc = doc
	return p, err
}

// ParseDocument runs the block parser over the whole buffer and returns
// the document root. The returned element always has the shape
// doc[version="1.0"]{body{...}} with an optional html-dom sibling of body
// holding the parsed raw HTML of the document.
func (p *Parser) ParseDocument() (Item, error) {
	doc := p.builder.CreateElement("doc")
	p.builder.AddAttribute(doc, "version", "1.0")
	body := p.builder.CreateElement("body")

	if p.config.CollectMetadata {
		p.parseFrontmatter()
	}
	if p.adapter.Format() == FormatMarkdown && p.config.ResolveRefs {
		p.scanLinkReferences()
	}

	for p.cur < len(p.lines) {
		start := p.cur
		line := p.lines[p.cur]
		if isBlankLine(line) {
			p.cur++
			continue
		}
		if p.adapter.Format() == FormatMarkdown && p.config.ResolveRefs && p.skipLinkDefinition() {
			continue
		}
		item := p.parseBlock(p.detectBlockType(line, lineAt(p.lines, p.cur+1)))
		if item.IsElement() {
			p.builder.AppendChild(body, item)
		}
		if p.cur == start {
			// Every parser must consume at least one line; this guard
			// turns a stuck parser into a skipped line instead of an
			// infinite loop.
			p.log.Warnw("block parser made no progress", "line", p.cur+1, "type", "skip")
			p.cur++
		}
	}

	p.builder.AppendChild(doc, ElementItem(body))
	if p.htmlBody != nil && p.htmlBody.ContentLength > 0 {
		p.builder.AppendChild(doc, ElementItem(p.htmlBody))
	}

	if p.config.Strict {
		if d := p.firstError(); d != nil {
			return ErrorItem, d
		}
	}
	return ElementItem(doc), nil
}

// parseBlock dispatches to the parser for one detected block type. Each
// parser consumes the lines of its block and leaves cur on the first line
// after it.
func (p *Parser) parseBlock(t BlockType) Item {
	switch t {
	case BlockHeader:
		return p.parseHeader()
	case BlockListItem:
		return p.parseList()
	case BlockCode:
		return p.parseCodeBlock()
	case BlockQuote:
		return p.parseBlockquote()
	case BlockTable:
		return p.parseTable()
	case BlockMath:
		return p.parseMathBlock()
	case BlockDivider:
		return p.parseThematicBreak()
	case BlockRawHTML:
		return p.parseRawHTML()
	case BlockDefinitionList:
		return p.parseDefinitionList()
	case BlockDirective:
		return p.parseDirective()
	default:
		return p.parseParagraph()
	}
}

// supports reports whether a feature is enabled for the current parse,
// combining the adapter capability with the configured flavor.
func (p *Parser) supports(feature string) bool {
	if p.adapter.Format() == FormatMarkdown && p.config.Flavor == FlavorCommonMark {
		switch feature {
		case FeatureTables, FeatureTaskLists, FeatureStrikethrough, FeatureAutolink:
			return false
		}
	}
	return p.adapter.Supports(feature)
}

// resetScratch prepares the shared scratch buffer for a new use.
func (p *Parser) resetScratch() *bytes.Buffer {
	p.scratch.Reset()
	p.scratchResets++
	return &p.scratch
}

// parseFrontmatter consumes a metadata prologue at the top of the file,
// when the dialect has one, and stores it in p.Metadata.
func (p *Parser) parseFrontmatter() {
	if len(p.lines) == 0 || !p.adapter.DetectMetadata(p.buf) {
		return
	}
	switch p.adapter.Format() {
	case FormatMarkdown:
		p.parseYAMLFrontmatter()
	case FormatOrg:
		p.parseOrgKeywords()
	}
}

// parseYAMLFrontmatter handles the "---" delimited YAML prologue.
func (p *Parser) parseYAMLFrontmatter() {
	end := -1
	for i := 1; i < len(p.lines); i++ {
		t := trimTrailingSpaceTab(p.lines[i])
		if bytes.Equal(t, []byte("---")) || bytes.Equal(t, []byte("...")) {
			end = i
			break
		}
	}
	if end == -1 {
		p.addDiag(UnclosedDelimiter, SeverityWarning, 1, 1, "frontmatter block is never closed")
		return
	}
	var sb strings.Builder
	for i := 1; i < end; i++ {
		sb.Write(p.lines[i])
		sb.WriteByte('\n')
	}
	meta, err := yaml.ParseYaml(sb.String())
	if err != nil {
		p.addDiag(InvalidSyntax, SeverityWarning, 2, 1, "invalid frontmatter: %v", err)
	} else {
		p.Metadata = meta
	}
	p.cur = end + 1
}

// parseOrgKeywords collects the leading "#+KEY: value" lines of an
// Org-mode document.
func (p *Parser) parseOrgKeywords() {
	var sb strings.Builder
	for p.cur < len(p.lines) {
		line := p.lines[p.cur]
		if !bytes.HasPrefix(line, []byte("#+")) {
			break
		}
		rest := line[2:]
		colon := bytes.IndexByte(rest, ':')
		if colon <= 0 {
			break
		}
		key := string(rest[:colon])
		// Block keywords like BEGIN_SRC are structure, not metadata.
		if strings.HasPrefix(asciiLower(key), "begin") || strings.HasPrefix(asciiLower(key), "end") {
			break
		}
		val := string(bytes.TrimSpace(rest[colon+1:]))
		sb.WriteString(strings.ToLower(key))
		sb.WriteString(": ")
		sb.WriteString(val)
		sb.WriteByte('\n')
		p.cur++
	}
	if sb.Len() == 0 {
		return
	}
	meta, err := yaml.ParseYaml(sb.String())
	if err != nil {
		p.addDiag(InvalidSyntax, SeverityWarning, 1, 1, "invalid document keywords: %v", err)
		return
	}
	p.Metadata = meta
}

// scanLinkReferences walks the whole buffer once before parsing and
// collects the link reference definitions, so forward references resolve.
// Labels are case-insensitive and duplicate definitions keep the first.
func (p *Parser) scanLinkReferences() {
	inFence := false
	var fence FenceInfo
	for i, line := range p.lines {
		if inFence {
			if p.adapter.IsCodeFenceClose(line, fence) {
				inFence = false
			}
			continue
		}
		if f := p.adapter.DetectCodeFence(line); f.Valid {
			inFence = true
			fence = f
			continue
		}
		label, ref, ok := parseLinkRefDef(line)
		if !ok {
			continue
		}
		key := normalizeLinkLabel(label)
		if prev, dup := p.refs[key]; dup {
			p.addDiag(DuplicateLinkLabel, SeverityWarning, i+1, 1,
				"duplicate link label %q, first defined on line %d", label, prev.line)
			continue
		}
		ref.line = i + 1
		p.refs[key] = ref
	}
}

// skipLinkDefinition consumes the current line when it is a link
// reference definition that the pre-scan registered. Returns true when a
// line was consumed.
func (p *Parser) skipLinkDefinition() bool {
	label, _, ok := parseLinkRefDef(p.lines[p.cur])
	if !ok {
		return false
	}
	if _, known := p.refs[normalizeLinkLabel(label)]; !known {
		return false
	}
	p.cur++
	return true
}

// parseLinkRefDef parses a single-line link reference definition of the
// form [label]: destination "optional title".
func parseLinkRefDef(line []byte) (string, linkRef, bool) {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) || line[offset] != '[' {
		return "", linkRef{}, false
	}
	close := matchBracket(line, offset, markdownAdapter{})
	if close == -1 || close == offset+1 {
		return "", linkRef{}, false
	}
	label := string(line[offset+1 : close])
	i := close + 1
	if i >= len(line) || line[i] != ':' {
		return "", linkRef{}, false
	}
	i = skipSpaceTabFrom(line, i+1)
	if i >= len(line) {
		return "", linkRef{}, false
	}
	destStart := i
	if line[i] == '<' {
		end := bytes.IndexByte(line[i:], '>')
		if end == -1 {
			return "", linkRef{}, false
		}
		destStart = i + 1
		i += end
	} else {
		for i < len(line) && !isSpaceOrTab(line[i]) {
			i++
		}
	}
	ref := linkRef{dest: string(line[destStart:i])}
	if destStart > 0 && line[destStart-1] == '<' {
		i++ // past '>'
	}
	i = skipSpaceTabFrom(line, i)
	if i < len(line) {
		quote := line[i]
		if quote != '"' && quote != '\'' && quote != '(' {
			return "", linkRef{}, false
		}
		closeQ := byte('"')
		switch quote {
		case '\'':
			closeQ = '\''
		case '(':
			closeQ = ')'
		}
		end := bytes.IndexByte(line[i+1:], closeQ)
		if end == -1 {
			return "", linkRef{}, false
		}
		ref.title = string(line[i+1 : i+1+end])
		i += end + 2
		if skipSpaceTabFrom(line, i) != len(line) {
			return "", linkRef{}, false
		}
	}
	if ref.dest == "" {
		return "", linkRef{}, false
	}
	return label, ref, true
}

// normalizeLinkLabel folds a link label for table lookup: trimmed,
// lowercased, internal whitespace collapsed.
func normalizeLinkLabel(label string) string {
	fields := strings.Fields(strings.ToLower(label))
	return strings.Join(fields, " ")
}

// resolveLinkRef looks up a reference label, reporting an unresolved
// reference once per use.
func (p *Parser) resolveLinkRef(label string, line int) (linkRef, bool) {
	ref, ok := p.refs[normalizeLinkLabel(label)]
	if !ok {
		p.addDiag(UnresolvedReference, SeverityNote, line, 1, "unresolved link reference %q", label)
	}
	return ref, ok
}

// currentLine returns the line under the cursor with the active dedent
// frame applied, or nil at EOF.
func (p *Parser) currentLine() []byte {
	return p.dedent(lineAt(p.lines, p.cur))
}

// peekLine returns the line n positions ahead of the cursor, dedented, or
// nil.
func (p *Parser) peekLine(n int) []byte {
	return p.dedent(lineAt(p.lines, p.cur+n))
}

// dedent strips the active frame's indentation columns from a line. Used
// while parsing list item content, where nested structure is detected
// relative to the item's text column.
func (p *Parser) dedent(line []byte) []byte {
	if line == nil || p.state.stripCols == 0 {
		return line
	}
	return stripIndentColumns(line, p.state.stripCols)
}

// inFrame reports whether a raw line carries at least the active frame's
// indentation. A shallower line belongs to an enclosing block.
func (p *Parser) inFrame(line []byte) bool {
	if p.state.stripCols == 0 {
		return true
	}
	cols, _ := indentColumns(line)
	return cols >= p.state.stripCols
}

// Summary returns a one-line description of the parse, for logging.
func (p *Parser) Summary() string {
	return fmt.Sprintf("%s: format=%s lines=%d diagnostics=%d",
		p.fileName, p.adapter.Format(), len(p.lines), len(p.Diagnostics))
}
