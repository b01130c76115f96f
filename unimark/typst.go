package unimark

import (
	"bytes"
)

// typstAdapter implements the Typst markup-mode grammar. Typst code-mode
// expressions ("#…", "@…", "<label>") are recognized at inline level only;
// block-level code expressions are not segmented.
type typstAdapter struct{ baseAdapter }

func (typstAdapter) Format() Format { return FormatTypst }
func (typstAdapter) Name() string   { return "Typst" }

func (typstAdapter) Extensions() []string {
	return []string{".typ"}
}

// DetectHeader recognizes "= Title": a run of '=' followed by a space.
func (typstAdapter) DetectHeader(line, next []byte) HeaderInfo {
	if len(line) == 0 || line[0] != '=' {
		return HeaderInfo{}
	}
	run := 0
	for run < len(line) && line[run] == '=' {
		run++
	}
	if run > 6 || run >= len(line) || line[run] != ' ' {
		return HeaderInfo{}
	}
	start := run + skipSpaceTab(line[run:])
	text := trimTrailingSpaceTab(line[start:])
	return HeaderInfo{Valid: true, Level: run, TextStart: start, TextEnd: start + len(text)}
}

// DetectListItem recognizes '-' bullets, '+' auto-numbered items and
// "N." explicit numbers.
func (typstAdapter) DetectListItem(line []byte) ListItemInfo {
	cols, offset := indentColumns(line)
	if offset >= len(line) {
		return ListItemInfo{}
	}
	info := ListItemInfo{Indent: cols}
	c := line[offset]
	switch {
	case c == '-' || c == '+':
		if offset+1 < len(line) && !isSpaceOrTab(line[offset+1]) {
			return ListItemInfo{}
		}
		info.Marker = c
		info.MarkerEnd = offset + 1
		info.Ordered = c == '+'
		if info.Ordered {
			info.Number = 1
		}
	case c >= '0' && c <= '9':
		i := offset
		n := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			n = n*10 + int(line[i]-'0')
			i++
		}
		if i >= len(line) || line[i] != '.' {
			return ListItemInfo{}
		}
		if i+1 < len(line) && !isSpaceOrTab(line[i+1]) {
			return ListItemInfo{}
		}
		info.Ordered = true
		info.Number = n
		info.Marker = '.'
		info.MarkerEnd = i + 1
	default:
		return ListItemInfo{}
	}
	info.Valid = true
	info.TextStart = info.MarkerEnd + skipSpaceTab(line[info.MarkerEnd:])
	return info
}

func (typstAdapter) DetectCodeFence(line []byte) FenceInfo {
	return genericFence(line)
}

// Typst has no indented-code convention; indentation is layout.
func (typstAdapter) DetectIndentedCode(line []byte) (int, bool) {
	return 0, false
}

var typstDelimiters = []DelimiterSpec{
	{Open: "*", Close: "*", Role: RoleBold, CanNest: true, RequiresFlanking: true},
	{Open: "_", Close: "_", Role: RoleItalic, CanNest: true, RequiresFlanking: true},
	{Open: "`", Close: "`", Role: RoleCode},
}

func (typstAdapter) EmphasisDelimiters() []DelimiterSpec {
	return typstDelimiters
}

// DetectLink recognizes bare http(s) autolinks.
func (typstAdapter) DetectLink(text []byte, pos int) LinkInfo {
	rest := text[pos:]
	if !bytes.HasPrefix(rest, []byte("http://")) && !bytes.HasPrefix(rest, []byte("https://")) {
		return LinkInfo{}
	}
	end := pos
	for end < len(text) && !isSpaceOrTab(text[end]) {
		end++
	}
	for end > pos && bytes.IndexByte([]byte(".,;:!?)"), text[end-1]) != -1 {
		end--
	}
	return LinkInfo{
		Valid:     true,
		TextStart: pos,
		TextEnd:   end,
		URLStart:  pos,
		URLEnd:    end,
		End:       end,
	}
}

func (typstAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureMath, FeatureAutolink:
		return true
	}
	return false
}
