package unimark

import (
	"bytes"
)

// rstAdapter implements the reStructuredText grammar.
type rstAdapter struct{ baseAdapter }

func (rstAdapter) Format() Format { return FormatRST }
func (rstAdapter) Name() string   { return "reStructuredText" }

func (rstAdapter) Extensions() []string {
	return []string{".rst", ".rest"}
}

// rstSectionChars maps an underline punctuation to a heading level. RST
// itself assigns levels by order of first use; since adapters are stateless
// the conventional docutils ordering is used instead.
var rstSectionChars = map[byte]int{
	'=': 1, '-': 2, '~': 3, '^': 4, '"': 5, '\'': 6,
}

// DetectHeader recognizes a section title by its underline on the next
// line: a run of one punctuation character at least as long as the title.
func (rstAdapter) DetectHeader(line, next []byte) HeaderInfo {
	if isBlankLine(line) || next == nil {
		return HeaderInfo{}
	}
	cols, offset := indentColumns(line)
	if cols > 0 {
		return HeaderInfo{}
	}
	title := trimTrailingSpaceTab(line[offset:])
	level, ok := rstUnderline(next, len(title))
	if !ok {
		return HeaderInfo{}
	}
	// A title that itself looks like an underline is a transition, not a
	// section.
	if _, isRun := rstUnderline(title, 1); isRun && len(title) >= 4 {
		return HeaderInfo{}
	}
	return HeaderInfo{Valid: true, Level: level, TextStart: offset, TextEnd: offset + len(title), Underline: true}
}

// rstUnderline reports whether line is a run of a single section character
// of at least minLen, returning the mapped level.
func rstUnderline(line []byte, minLen int) (int, bool) {
	line = trimTrailingSpaceTab(line)
	if len(line) == 0 || len(line) < minLen {
		return 0, false
	}
	c := line[0]
	level, ok := rstSectionChars[c]
	if !ok {
		return 0, false
	}
	for _, b := range line {
		if b != c {
			return 0, false
		}
	}
	return level, true
}

func (rstAdapter) DetectListItem(line []byte) ListItemInfo {
	cols, offset := indentColumns(line)
	if offset >= len(line) {
		return ListItemInfo{}
	}
	info := ListItemInfo{Indent: cols}
	c := line[offset]
	switch {
	case c == '-' || c == '*' || c == '+':
		info.Marker = c
		info.MarkerEnd = offset + 1
	case c == '#':
		// Auto-enumerated "#." item.
		if offset+1 >= len(line) || line[offset+1] != '.' {
			return ListItemInfo{}
		}
		info.Ordered = true
		info.Number = 1
		info.Marker = '.'
		info.MarkerEnd = offset + 2
	case c >= '0' && c <= '9':
		i := offset
		n := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			n = n*10 + int(line[i]-'0')
			i++
		}
		if i >= len(line) || (line[i] != '.' && line[i] != ')') {
			return ListItemInfo{}
		}
		info.Ordered = true
		info.Number = n
		info.Marker = line[i]
		info.MarkerEnd = i + 1
	default:
		return ListItemInfo{}
	}
	if info.MarkerEnd < len(line) && !isSpaceOrTab(line[info.MarkerEnd]) {
		return ListItemInfo{}
	}
	info.Valid = true
	info.TextStart = info.MarkerEnd + skipSpaceTab(line[info.MarkerEnd:])
	return info
}

// DetectTable recognizes the border line of an RST simple table: runs of
// '=' separated by spaces, with a non-blank line following.
func (rstAdapter) DetectTable(line, next []byte) bool {
	return isRSTTableBorder(line) && next != nil && !isBlankLine(next)
}

// isRSTTableBorder reports whether the line consists of two or more runs of
// '=' separated by spaces.
func isRSTTableBorder(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '=' {
		return false
	}
	runs := 0
	inRun := false
	for _, c := range trimmed {
		switch c {
		case '=':
			if !inRun {
				runs++
				inRun = true
			}
		case ' ':
			inRun = false
		default:
			return false
		}
	}
	return runs >= 2
}

// DetectThematicBreak recognizes an RST transition: a line of four or more
// repeated punctuation characters.
func (rstAdapter) DetectThematicBreak(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) < 4 {
		return false
	}
	c := trimmed[0]
	if bytes.IndexByte([]byte("-=*^~'\"+#_"), c) == -1 {
		return false
	}
	for _, b := range trimmed {
		if b != c {
			return false
		}
	}
	// A '=' run could equally be a simple-table border; the detector asks
	// for tables before thematic breaks only in the generic fallback, so
	// reject it here.
	return c != '='
}

var rstDelimiters = []DelimiterSpec{
	{Open: "**", Close: "**", Role: RoleBold},
	{Open: "``", Close: "``", Role: RoleCode},
	{Open: "*", Close: "*", Role: RoleItalic},
}

func (rstAdapter) EmphasisDelimiters() []DelimiterSpec {
	return rstDelimiters
}

// DetectLink recognizes the inline form `text <url>`_ at pos.
func (rstAdapter) DetectLink(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '`' {
		return LinkInfo{}
	}
	end := bytes.IndexByte(text[pos+1:], '`')
	if end == -1 {
		return LinkInfo{}
	}
	end += pos + 1
	// The closing backquote must be followed by '_' (or '__').
	after := end + 1
	if after >= len(text) || text[after] != '_' {
		return LinkInfo{}
	}
	if after+1 < len(text) && text[after+1] == '_' {
		after++
	}
	body := text[pos+1 : end]
	lt := bytes.LastIndexByte(body, '<')
	gt := bytes.LastIndexByte(body, '>')
	if lt == -1 || gt == -1 || gt < lt {
		return LinkInfo{}
	}
	info := LinkInfo{
		Valid:     true,
		TextStart: pos + 1,
		TextEnd:   pos + 1 + len(trimTrailingSpaceTab(body[:lt])),
		URLStart:  pos + 1 + lt + 1,
		URLEnd:    pos + 1 + gt,
		End:       after + 1,
	}
	return info
}

func (rstAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureDefinitionLists, FeatureDirectives,
		FeatureLineBlocks, FeatureFootnotes, FeatureMath:
		return true
	}
	return false
}
