package unimark

import (
	"bytes"
)

// orgAdapter implements the Org-mode grammar.
type orgAdapter struct{ baseAdapter }

func (orgAdapter) Format() Format { return FormatOrg }
func (orgAdapter) Name() string   { return "Org" }

func (orgAdapter) Extensions() []string {
	return []string{".org"}
}

// DetectHeader recognizes a run of '*' followed by a space; the level is
// the run length, capped at six.
func (orgAdapter) DetectHeader(line, next []byte) HeaderInfo {
	if len(line) == 0 || line[0] != '*' {
		return HeaderInfo{}
	}
	run := 0
	for run < len(line) && line[run] == '*' {
		run++
	}
	if run >= len(line) || line[run] != ' ' {
		return HeaderInfo{}
	}
	level := run
	if level > 6 {
		level = 6
	}
	start := run + skipSpaceTab(line[run:])
	text := trimTrailingSpaceTab(line[start:])
	return HeaderInfo{Valid: true, Level: level, TextStart: start, TextEnd: start + len(text)}
}

func (orgAdapter) DetectListItem(line []byte) ListItemInfo {
	cols, offset := indentColumns(line)
	if offset >= len(line) {
		return ListItemInfo{}
	}
	info := ListItemInfo{Indent: cols}
	c := line[offset]
	switch {
	case c == '-' || c == '+':
		info.Marker = c
		info.MarkerEnd = offset + 1
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
	if info.MarkerEnd >= len(line) || !isSpaceOrTab(line[info.MarkerEnd]) {
		return ListItemInfo{}
	}
	info.Valid = true
	info.TextStart = info.MarkerEnd + skipSpaceTab(line[info.MarkerEnd:])

	// Org checkbox: "[ ]" / "[X]" / "[-]".
	rest := line[info.TextStart:]
	if len(rest) >= 3 && rest[0] == '[' && rest[2] == ']' &&
		(rest[1] == ' ' || rest[1] == 'X' || rest[1] == 'x' || rest[1] == '-') &&
		(len(rest) == 3 || isSpaceOrTab(rest[3])) {
		info.Task = true
		info.TaskChecked = rest[1] == 'X' || rest[1] == 'x'
		info.TextStart += 3
		info.TextStart += skipSpaceTab(line[info.TextStart:])
	}
	return info
}

// DetectCodeFence recognizes "#+BEGIN_SRC lang" (case-insensitive). The
// fence carries no punctuation; the closer is "#+END_SRC".
func (orgAdapter) DetectCodeFence(line []byte) FenceInfo {
	cols, offset := indentColumns(line)
	rest := line[offset:]
	if !hasFoldPrefix(rest, "#+BEGIN_SRC") && !hasFoldPrefix(rest, "#+BEGIN_EXAMPLE") {
		return FenceInfo{}
	}
	sp := bytes.IndexByte(rest, ' ')
	info := ""
	if sp != -1 {
		info = string(bytes.TrimSpace(rest[sp:]))
		// Only the language word; header arguments like ":results" are
		// not part of the info string.
		if i := bytes.IndexByte([]byte(info), ' '); i != -1 {
			info = info[:i]
		}
	}
	return FenceInfo{Valid: true, Char: 0, Info: info, Indent: cols}
}

func (orgAdapter) IsCodeFenceClose(line []byte, open FenceInfo) bool {
	rest := line[skipSpaceTab(line):]
	return hasFoldPrefix(rest, "#+END_SRC") || hasFoldPrefix(rest, "#+END_EXAMPLE")
}

// hasFoldPrefix is an ASCII case-insensitive prefix test.
func hasFoldPrefix(line []byte, prefix string) bool {
	if len(line) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := line[i]
		p := prefix[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if p >= 'a' && p <= 'z' {
			p -= 'a' - 'A'
		}
		if c != p {
			return false
		}
	}
	return true
}

// DetectTable recognizes '|' rows.
func (orgAdapter) DetectTable(line, next []byte) bool {
	trimmed := bytes.TrimSpace(line)
	return len(trimmed) > 0 && trimmed[0] == '|'
}

// DetectThematicBreak recognizes a line of five or more dashes.
func (orgAdapter) DetectThematicBreak(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) < 5 {
		return false
	}
	for _, c := range trimmed {
		if c != '-' {
			return false
		}
	}
	return true
}

// DetectMetadata reports "#+KEY: value" keyword lines at the start of the
// document.
func (orgAdapter) DetectMetadata(content []byte) bool {
	return bytes.HasPrefix(content, []byte("#+"))
}

var orgDelimiters = []DelimiterSpec{
	{Open: "*", Close: "*", Role: RoleBold, CanNest: true, RequiresFlanking: true},
	{Open: "/", Close: "/", Role: RoleItalic, CanNest: true, RequiresFlanking: true},
	{Open: "_", Close: "_", Role: RoleUnderline, RequiresFlanking: true},
	{Open: "+", Close: "+", Role: RoleStrike, RequiresFlanking: true},
	{Open: "~", Close: "~", Role: RoleCode},
	{Open: "=", Close: "=", Role: RoleCode},
}

func (orgAdapter) EmphasisDelimiters() []DelimiterSpec {
	return orgDelimiters
}

// DetectLink recognizes [[url][description]] and [[url]].
func (orgAdapter) DetectLink(text []byte, pos int) LinkInfo {
	if pos+1 >= len(text) || text[pos] != '[' || text[pos+1] != '[' {
		return LinkInfo{}
	}
	urlEnd := bytes.IndexByte(text[pos+2:], ']')
	if urlEnd == -1 {
		return LinkInfo{}
	}
	urlEnd += pos + 2
	info := LinkInfo{URLStart: pos + 2, URLEnd: urlEnd}

	after := urlEnd + 1
	if after < len(text) && text[after] == ']' {
		// [[url]]
		info.TextStart, info.TextEnd = info.URLStart, info.URLEnd
		info.End = after + 1
		info.Valid = true
		return info
	}
	if after < len(text) && text[after] == '[' {
		descEnd := bytes.Index(text[after:], []byte("]]"))
		if descEnd == -1 {
			return LinkInfo{}
		}
		info.TextStart = after + 1
		info.TextEnd = after + descEnd
		info.End = after + descEnd + 2
		info.Valid = true
		return info
	}
	return LinkInfo{}
}

func (orgAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureTaskLists, FeatureMath, FeatureFootnotes:
		return true
	}
	return false
}
