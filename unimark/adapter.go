package unimark

import (
	"bytes"
	"path/filepath"
	"strings"
)

// HeaderInfo is the result of a header detection. When Valid, the text span
// bounds carry everything the header parser needs so it does not re-parse
// the line.
type HeaderInfo struct {
	Valid     bool
	Level     int // 1..6
	TextStart int
	TextEnd   int
	Underline bool // setext style: the level comes from the next line
}

// ListItemInfo is the result of a list-item detection.
type ListItemInfo struct {
	Valid       bool
	Marker      byte // the marker punctuation, e.g. '-', '*', '.', ')'
	MarkerEnd   int  // byte offset just past the marker
	TextStart   int  // byte offset of the item content
	Indent      int  // column indentation of the marker
	Ordered     bool
	Number      int // start number; paragraph interruption re-consults it
	Task        bool
	TaskChecked bool
}

// FenceInfo is the result of a code-fence detection. Info is the trimmed
// info string naming the language.
type FenceInfo struct {
	Valid  bool
	Char   byte // fence punctuation; 0 for keyword-fenced dialects (Org)
	Length int  // >= 3 for punctuation fences
	Info   string
	Indent int
}

// QuoteInfo is the result of a blockquote detection.
type QuoteInfo struct {
	Valid        bool
	Depth        int
	ContentStart int
}

// LinkInfo describes an inline link or image occurrence. All offsets are
// into the text passed to DetectLink/DetectImage. End is the offset just
// past the whole construct.
type LinkInfo struct {
	Valid       bool
	TextStart   int
	TextEnd     int
	URLStart    int
	URLEnd      int
	TitleStart  int
	TitleEnd    int
	RefStart    int
	RefEnd      int
	IsReference bool
	End         int
}

// DelimiterRole is the semantic role of an emphasis delimiter pair.
type DelimiterRole uint8

const (
	RoleBold DelimiterRole = iota
	RoleItalic
	RoleBoldItalic
	RoleCode
	RoleStrike
	RoleSup
	RoleSub
	RoleUnderline
	RoleCite
	RoleSpan
)

// DelimiterSpec describes one emphasis delimiter pair of a dialect.
type DelimiterSpec struct {
	Open             string
	Close            string
	Role             DelimiterRole
	CanNest          bool
	RequiresFlanking bool
}

// Feature names accepted by FormatAdapter.Supports.
const (
	FeatureTables          = "tables"
	FeatureTaskLists       = "task_lists"
	FeatureStrikethrough   = "strikethrough"
	FeatureMath            = "math"
	FeatureFootnotes       = "footnotes"
	FeatureDefinitionLists = "definition_lists"
	FeatureAutolink        = "autolink"
	FeatureSmartQuotes     = "smart_quotes"
	FeatureAdmonitions     = "admonitions"
	FeatureDirectives      = "directives"
	FeatureLineBlocks      = "line_blocks"
)

// FormatAdapter is the capability set each dialect implements. Every method
// is pure over its arguments plus adapter-owned static tables; none may
// mutate parser state. Adapter instances are stateless and may be shared
// across goroutines.
type FormatAdapter interface {
	// Identity
	Format() Format
	Name() string
	Extensions() []string

	// Block detection
	DetectHeader(line, next []byte) HeaderInfo
	DetectListItem(line []byte) ListItemInfo
	DetectCodeFence(line []byte) FenceInfo
	IsCodeFenceClose(line []byte, open FenceInfo) bool
	DetectBlockquote(line []byte) QuoteInfo
	DetectTable(line, next []byte) bool
	DetectThematicBreak(line []byte) bool
	DetectIndentedCode(line []byte) (contentStart int, ok bool)
	DetectMetadata(content []byte) bool

	// Inline detection. The tables live here because the adapter owns
	// the dialect grammar; they are consumed by the inline parser.
	EmphasisDelimiters() []DelimiterSpec
	DetectLink(text []byte, pos int) LinkInfo
	DetectImage(text []byte, pos int) LinkInfo
	IsEscaped(text []byte, pos int) bool
	EscapeChar() byte
	EscapableChars() string

	// Feature query
	Supports(feature string) bool
}

// baseAdapter supplies the default behaviors shared by the dialect
// adapters. Every adapter embeds it and overrides what its grammar changes.
type baseAdapter struct{}

func (baseAdapter) DetectHeader(line, next []byte) HeaderInfo   { return HeaderInfo{} }
func (baseAdapter) DetectListItem(line []byte) ListItemInfo     { return ListItemInfo{} }
func (baseAdapter) DetectCodeFence(line []byte) FenceInfo       { return FenceInfo{} }
func (baseAdapter) DetectBlockquote(line []byte) QuoteInfo      { return QuoteInfo{} }
func (baseAdapter) DetectTable(line, next []byte) bool          { return false }
func (baseAdapter) DetectThematicBreak(line []byte) bool        { return false }
func (baseAdapter) DetectMetadata(content []byte) bool          { return false }
func (baseAdapter) EmphasisDelimiters() []DelimiterSpec         { return nil }
func (baseAdapter) DetectLink(text []byte, pos int) LinkInfo    { return LinkInfo{} }
func (baseAdapter) DetectImage(text []byte, pos int) LinkInfo   { return LinkInfo{} }
func (baseAdapter) EscapeChar() byte                            { return '\\' }
func (baseAdapter) EscapableChars() string                      { return asciiPunctuation }
func (baseAdapter) Supports(feature string) bool                { return false }

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsCodeFenceClose implements the generic close rule: same punctuation as
// the opener, at least the opener's length, at most three columns of
// indentation and nothing else on the line.
func (baseAdapter) IsCodeFenceClose(line []byte, open FenceInfo) bool {
	return genericFenceClose(line, open)
}

// DetectIndentedCode implements the default rule of four or more columns of
// leading whitespace on a non-blank line.
func (baseAdapter) DetectIndentedCode(line []byte) (int, bool) {
	if isBlankLine(line) {
		return 0, false
	}
	cols, offset := indentColumns(line)
	if cols >= 4 {
		return offset, true
	}
	return 0, false
}

// IsEscaped implements the default escape rule: an odd number of
// immediately preceding backslashes.
func (baseAdapter) IsEscaped(text []byte, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// genericFence recognizes a run of three or more backticks or tildes with
// at most three columns of indentation and returns the fence description.
// Info strings of backtick fences must not contain a backtick.
func genericFence(line []byte) FenceInfo {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) {
		return FenceInfo{}
	}
	c := line[offset]
	if c != '`' && c != '~' {
		return FenceInfo{}
	}
	n := offset
	for n < len(line) && line[n] == c {
		n++
	}
	if n-offset < 3 {
		return FenceInfo{}
	}
	info := bytes.TrimSpace(line[n:])
	if c == '`' && bytes.IndexByte(info, '`') != -1 {
		return FenceInfo{}
	}
	return FenceInfo{Valid: true, Char: c, Length: n - offset, Info: string(info), Indent: cols}
}

func genericFenceClose(line []byte, open FenceInfo) bool {
	if open.Char == 0 {
		return false
	}
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) || line[offset] != open.Char {
		return false
	}
	n := offset
	for n < len(line) && line[n] == open.Char {
		n++
	}
	if n-offset < open.Length {
		return false
	}
	return isBlankLine(line[n:])
}

// isBreakLine reports whether the line consists of at least three instances
// of one of the given punctuation characters, optionally separated by
// whitespace, with nothing else.
func isBreakLine(line []byte, chars string) bool {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) {
		return false
	}
	c := line[offset]
	if strings.IndexByte(chars, c) == -1 {
		return false
	}
	count := 0
	for _, b := range line[offset:] {
		switch {
		case b == c:
			count++
		case isSpaceOrTab(b):
			// separators are allowed
		default:
			return false
		}
	}
	return count >= 3
}

// detectAngleQuote recognizes runs of '>' markers, each optionally followed
// by a single space, and returns the nesting depth and content offset.
func detectAngleQuote(line []byte) QuoteInfo {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) || line[offset] != '>' {
		return QuoteInfo{}
	}
	depth := 0
	i := offset
	for i < len(line) && line[i] == '>' {
		depth++
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return QuoteInfo{Valid: true, Depth: depth, ContentStart: i}
}

// The adapter registry. It is read-only after initialization; adapters hold
// their delimiter tables inline as static data.
var adapters = map[Format]FormatAdapter{
	FormatMarkdown: markdownAdapter{},
	FormatRST:      rstAdapter{},
	FormatWiki:     wikiAdapter{},
	FormatTextile:  textileAdapter{},
	FormatOrg:      orgAdapter{},
	FormatAsciiDoc: asciidocAdapter{},
	FormatMan:      manAdapter{},
	FormatTypst:    typstAdapter{},
}

// AdapterFor returns the adapter registered for the format. FormatAuto and
// unknown values fall back to Markdown.
func AdapterFor(f Format) FormatAdapter {
	if a, ok := adapters[f]; ok {
		return a
	}
	return adapters[FormatMarkdown]
}

// DetectFormat chooses a format by file extension first and by a
// leading-bytes heuristic second, with Markdown as the ultimate default.
func DetectFormat(filename string, content []byte) Format {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		for _, a := range adapters {
			for _, e := range a.Extensions() {
				if ext == e {
					return a.Format()
				}
			}
		}
	}
	return detectFormatByContent(content)
}

func detectFormatByContent(content []byte) Format {
	// Only the first non-blank portion of the prologue matters.
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimLeft(head, "\n")

	switch {
	case bytes.HasPrefix(head, []byte("---")):
		return FormatMarkdown // YAML frontmatter
	case bytes.HasPrefix(head, []byte("#+")):
		return FormatOrg
	case bytes.HasPrefix(head, []byte(".TH")) || bytes.HasPrefix(head, []byte(".\\\"")):
		return FormatMan
	case bytes.HasPrefix(head, []byte(".. ")):
		return FormatRST
	case bytes.HasPrefix(head, []byte("[[")) || bytes.HasPrefix(head, []byte("==")):
		return FormatWiki
	case len(head) >= 3 && head[0] == 'h' && head[1] >= '1' && head[1] <= '6' && head[2] == '.':
		return FormatTextile
	case bytes.HasPrefix(head, []byte("= ")) || bytes.HasPrefix(head, []byte("[source")):
		return FormatAsciiDoc
	}
	return FormatMarkdown
}
