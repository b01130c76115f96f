package unimark

import (
	"bytes"
)

// markdownAdapter implements the CommonMark grammar with the GFM
// extensions (tables, task lists, strikethrough, autolinks).
type markdownAdapter struct{ baseAdapter }

func (markdownAdapter) Format() Format { return FormatMarkdown }
func (markdownAdapter) Name() string   { return "Markdown" }

func (markdownAdapter) Extensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// DetectHeader recognizes ATX headings on the line itself and setext
// headings via the underline on the next line.
//
// ATX heads consume up to three leading spaces and one to six '#', require
// whitespace or end-of-line after the run, strip a closing hash sequence
// preceded by whitespace and trim trailing whitespace.
func (markdownAdapter) DetectHeader(line, next []byte) HeaderInfo {
	if h := detectATXHeader(line); h.Valid {
		return h
	}
	return detectSetextHeader(line, next)
}

func detectATXHeader(line []byte) HeaderInfo {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) || line[offset] != '#' {
		return HeaderInfo{}
	}
	level := 0
	i := offset
	for i < len(line) && line[i] == '#' {
		level++
		i++
	}
	if level > 6 {
		return HeaderInfo{}
	}
	if i < len(line) && !isSpaceOrTab(line[i]) {
		return HeaderInfo{}
	}
	start := i + skipSpaceTab(line[i:])
	text := trimTrailingSpaceTab(line[start:])
	end := start + len(text)

	// Strip a closing run of '#' if it is preceded by whitespace or makes
	// up the whole text.
	j := end
	for j > start && line[j-1] == '#' {
		j--
	}
	if j < end && (j == start || isSpaceOrTab(line[j-1])) {
		end = start + len(trimTrailingSpaceTab(line[start:j]))
	}
	return HeaderInfo{Valid: true, Level: level, TextStart: start, TextEnd: end}
}

// detectSetextHeader checks whether next is a setext underline for line.
// The preceding line must not itself be a block-structural starter; the
// lazy-continuation restriction is enforced by the paragraph parser, which
// owns that state.
func detectSetextHeader(line, next []byte) HeaderInfo {
	level := setextUnderlineLevel(next)
	if level == 0 || isBlankLine(line) {
		return HeaderInfo{}
	}
	if isBreakLine(line, "-*_") || detectAngleQuote(line).Valid || detectMarkdownListItem(line).Valid {
		return HeaderInfo{}
	}
	cols, offset := indentColumns(line)
	if cols > 3 {
		return HeaderInfo{}
	}
	text := trimTrailingSpaceTab(line[offset:])
	return HeaderInfo{Valid: true, Level: level, TextStart: offset, TextEnd: offset + len(text), Underline: true}
}

// setextUnderlineLevel returns 1 for a '=' underline, 2 for '-', 0 for
// neither.
func setextUnderlineLevel(line []byte) int {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) {
		return 0
	}
	c := line[offset]
	if c != '=' && c != '-' {
		return 0
	}
	rest := trimTrailingSpaceTab(line[offset:])
	for _, b := range rest {
		if b != c {
			return 0
		}
	}
	if c == '=' {
		return 1
	}
	return 2
}

func (markdownAdapter) DetectListItem(line []byte) ListItemInfo {
	return detectMarkdownListItem(line)
}

func detectMarkdownListItem(line []byte) ListItemInfo {
	cols, offset := indentColumns(line)
	if cols > 3 || offset >= len(line) {
		return ListItemInfo{}
	}

	info := ListItemInfo{Indent: cols}
	c := line[offset]
	switch {
	case c == '-' || c == '+' || c == '*':
		info.Marker = c
		info.MarkerEnd = offset + 1
	case c >= '0' && c <= '9':
		i := offset
		n := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			n = n*10 + int(line[i]-'0')
			i++
			if i-offset > 9 {
				return ListItemInfo{}
			}
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

	// The marker must be followed by whitespace or end the line.
	if info.MarkerEnd < len(line) && !isSpaceOrTab(line[info.MarkerEnd]) {
		return ListItemInfo{}
	}
	info.Valid = true
	info.TextStart = info.MarkerEnd + skipSpaceTab(line[info.MarkerEnd:])

	// GFM task list marker: "[ ]" or "[x]" followed by whitespace.
	rest := line[info.TextStart:]
	if len(rest) >= 3 && rest[0] == '[' && rest[2] == ']' &&
		(rest[1] == ' ' || rest[1] == 'x' || rest[1] == 'X') &&
		(len(rest) == 3 || isSpaceOrTab(rest[3])) {
		info.Task = true
		info.TaskChecked = rest[1] != ' '
		info.TextStart += 3
		info.TextStart += skipSpaceTab(line[info.TextStart:])
	}
	return info
}

func (markdownAdapter) DetectCodeFence(line []byte) FenceInfo {
	return genericFence(line)
}

func (markdownAdapter) DetectBlockquote(line []byte) QuoteInfo {
	return detectAngleQuote(line)
}

// DetectTable requires a pipe row followed by a separator row of '-' cells
// with optional ':' alignment markers.
func (markdownAdapter) DetectTable(line, next []byte) bool {
	if bytes.IndexByte(line, '|') == -1 {
		return false
	}
	return isTableSeparatorRow(next)
}

// isTableSeparatorRow reports whether the line is a GFM delimiter row:
// cells of dashes with optional leading/trailing colons, split by pipes.
func isTableSeparatorRow(line []byte) bool {
	if line == nil {
		return false
	}
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	sawDash := false
	for _, cell := range bytes.Split(trimmed, []byte("|")) {
		cell = bytes.TrimSpace(cell)
		if len(cell) == 0 {
			continue // leading/trailing pipe
		}
		body := cell
		if body[0] == ':' {
			body = body[1:]
		}
		if len(body) > 0 && body[len(body)-1] == ':' {
			body = body[:len(body)-1]
		}
		if len(body) == 0 {
			return false
		}
		for _, c := range body {
			if c != '-' {
				return false
			}
		}
		sawDash = true
	}
	return sawDash
}

func (markdownAdapter) DetectThematicBreak(line []byte) bool {
	return isBreakLine(line, "-*_")
}

// DetectMetadata reports YAML frontmatter: the document opens with "---".
func (markdownAdapter) DetectMetadata(content []byte) bool {
	return bytes.HasPrefix(content, []byte("---")) &&
		(len(content) == 3 || content[3] == '\n' || content[3] == '\r')
}

var markdownDelimiters = []DelimiterSpec{
	{Open: "***", Close: "***", Role: RoleBoldItalic, RequiresFlanking: true},
	{Open: "___", Close: "___", Role: RoleBoldItalic, RequiresFlanking: true},
	{Open: "**", Close: "**", Role: RoleBold, CanNest: true, RequiresFlanking: true},
	{Open: "__", Close: "__", Role: RoleBold, CanNest: true, RequiresFlanking: true},
	{Open: "~~", Close: "~~", Role: RoleStrike, CanNest: true, RequiresFlanking: true},
	{Open: "`", Close: "`", Role: RoleCode},
	{Open: "*", Close: "*", Role: RoleItalic, CanNest: true, RequiresFlanking: true},
	{Open: "_", Close: "_", Role: RoleItalic, CanNest: true, RequiresFlanking: true},
}

func (markdownAdapter) EmphasisDelimiters() []DelimiterSpec {
	return markdownDelimiters
}

// DetectLink recognizes the three CommonMark link forms at pos:
// inline [text](dest "title"), full/collapsed reference [text][label] and
// shortcut reference [label].
func (a markdownAdapter) DetectLink(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '[' {
		return LinkInfo{}
	}
	textEnd := matchBracket(text, pos, a)
	if textEnd == -1 {
		return LinkInfo{}
	}
	info := LinkInfo{TextStart: pos + 1, TextEnd: textEnd}
	after := textEnd + 1

	if after < len(text) && text[after] == '(' {
		if fillInlineDestination(text, after, &info) {
			info.Valid = true
			return info
		}
		return LinkInfo{}
	}

	if after < len(text) && text[after] == '[' {
		refEnd := matchBracket(text, after, a)
		if refEnd == -1 {
			return LinkInfo{}
		}
		info.IsReference = true
		info.RefStart = after + 1
		info.RefEnd = refEnd
		if info.RefStart == info.RefEnd {
			// Collapsed reference: the text is the label.
			info.RefStart, info.RefEnd = info.TextStart, info.TextEnd
		}
		info.End = refEnd + 1
		info.Valid = true
		return info
	}

	// Shortcut reference.
	info.IsReference = true
	info.RefStart, info.RefEnd = info.TextStart, info.TextEnd
	info.End = textEnd + 1
	info.Valid = true
	return info
}

// DetectImage recognizes "![...]..." by delegating to DetectLink past the
// bang.
func (a markdownAdapter) DetectImage(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '!' {
		return LinkInfo{}
	}
	info := a.DetectLink(text, pos+1)
	return info
}

// matchBracket returns the offset of the ']' matching the '[' at pos,
// honoring nesting and escapes, or -1.
func matchBracket(text []byte, pos int, a FormatAdapter) int {
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case '[':
			if !a.IsEscaped(text, i) {
				depth++
			}
		case ']':
			if !a.IsEscaped(text, i) {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// fillInlineDestination parses "(dest)" or "(dest \"title\")" starting at
// the opening parenthesis and fills the URL and title spans.
func fillInlineDestination(text []byte, open int, info *LinkInfo) bool {
	i := open + 1
	i += skipSpaceTab(text[i:])
	if i >= len(text) {
		return false
	}

	// Destination, optionally wrapped in angle brackets.
	if text[i] == '<' {
		end := bytes.IndexByte(text[i:], '>')
		if end == -1 {
			return false
		}
		info.URLStart = i + 1
		info.URLEnd = i + end
		i += end + 1
	} else {
		info.URLStart = i
		depth := 0
		for i < len(text) {
			c := text[i]
			if c == ' ' || c == '\t' {
				break
			}
			if c == '(' {
				depth++
			}
			if c == ')' {
				if depth == 0 {
					break
				}
				depth--
			}
			i++
		}
		info.URLEnd = i
	}

	i += skipSpaceTab(text[i:])
	if i < len(text) && (text[i] == '"' || text[i] == '\'') {
		quote := text[i]
		end := bytes.IndexByte(text[i+1:], quote)
		if end == -1 {
			return false
		}
		info.TitleStart = i + 1
		info.TitleEnd = i + 1 + end
		i = info.TitleEnd + 1
		i += skipSpaceTab(text[i:])
	}
	if i >= len(text) || text[i] != ')' {
		return false
	}
	info.End = i + 1
	return true
}

func (markdownAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureTaskLists, FeatureStrikethrough,
		FeatureMath, FeatureAutolink:
		return true
	}
	return false
}
