package unimark

import (
	"bytes"
)

// asciidocAdapter implements the AsciiDoc grammar.
type asciidocAdapter struct{ baseAdapter }

func (asciidocAdapter) Format() Format { return FormatAsciiDoc }
func (asciidocAdapter) Name() string   { return "AsciiDoc" }

func (asciidocAdapter) Extensions() []string {
	return []string{".adoc", ".asciidoc", ".asc"}
}

// admonitionLabels are the five AsciiDoc admonition prefixes, checked by
// the block detector.
var admonitionLabels = []string{"NOTE", "TIP", "IMPORTANT", "WARNING", "CAUTION"}

// detectAdmonition returns the lowercase admonition type and the offset of
// the same-line content, or "".
func detectAdmonition(line []byte) (kind string, contentStart int) {
	for _, label := range admonitionLabels {
		if len(line) > len(label)+1 && bytes.HasPrefix(line, []byte(label)) && line[len(label)] == ':' {
			start := len(label) + 1
			start += skipSpaceTab(line[start:])
			return asciiLower(label), start
		}
	}
	return "", 0
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// DetectHeader recognizes "= Title" style headings: a run of '=' followed
// by a space, level equal to the run length.
func (asciidocAdapter) DetectHeader(line, next []byte) HeaderInfo {
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

func (asciidocAdapter) DetectListItem(line []byte) ListItemInfo {
	cols, offset := indentColumns(line)
	if offset >= len(line) {
		return ListItemInfo{}
	}
	c := line[offset]
	info := ListItemInfo{Indent: cols}

	switch c {
	case '*', '.':
		// Nesting by marker repetition.
		run := offset
		for run < len(line) && line[run] == c {
			run++
		}
		if run >= len(line) || !isSpaceOrTab(line[run]) {
			return ListItemInfo{}
		}
		info.Marker = c
		info.MarkerEnd = run
		info.Indent = cols + (run-offset-1)*tabStop
		info.Ordered = c == '.'
		if info.Ordered {
			info.Number = 1
		}
		info.TextStart = run + skipSpaceTab(line[run:])
	case '-':
		if offset+1 >= len(line) || !isSpaceOrTab(line[offset+1]) {
			return ListItemInfo{}
		}
		info.Marker = '-'
		info.MarkerEnd = offset + 1
		info.TextStart = offset + 1 + skipSpaceTab(line[offset+1:])
	default:
		if c >= '0' && c <= '9' {
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
			info.TextStart = i + 1 + skipSpaceTab(line[i+1:])
		} else {
			return ListItemInfo{}
		}
	}
	info.Valid = true

	// Checklist marker: "[ ]", "[x]" or "[*]".
	rest := line[info.TextStart:]
	if len(rest) >= 3 && rest[0] == '[' && rest[2] == ']' &&
		(rest[1] == ' ' || rest[1] == 'x' || rest[1] == 'X' || rest[1] == '*') &&
		(len(rest) == 3 || isSpaceOrTab(rest[3])) {
		info.Task = true
		info.TaskChecked = rest[1] != ' '
		info.TextStart += 3
		info.TextStart += skipSpaceTab(line[info.TextStart:])
	}
	return info
}

// DetectCodeFence recognizes listing blocks delimited by "----" (four or
// more dashes) or "...." (literal block), plus the generic backtick form.
func (asciidocAdapter) DetectCodeFence(line []byte) FenceInfo {
	if f := genericFence(line); f.Valid {
		return f
	}
	trimmed := trimTrailingSpaceTab(line)
	for _, c := range []byte{'-', '.'} {
		if len(trimmed) >= 4 && trimmed[0] == c && bytes.Count(trimmed, []byte{c}) == len(trimmed) {
			return FenceInfo{Valid: true, Char: c, Length: len(trimmed)}
		}
	}
	return FenceInfo{}
}

func (a asciidocAdapter) IsCodeFenceClose(line []byte, open FenceInfo) bool {
	if open.Char == '-' || open.Char == '.' {
		trimmed := trimTrailingSpaceTab(line)
		if len(trimmed) < 4 || trimmed[0] != open.Char {
			return false
		}
		return bytes.Count(trimmed, []byte{open.Char}) == len(trimmed)
	}
	return genericFenceClose(line, open)
}

func (asciidocAdapter) DetectBlockquote(line []byte) QuoteInfo {
	return detectAngleQuote(line)
}

// DetectTable recognizes the "|===" delimiter.
func (asciidocAdapter) DetectTable(line, next []byte) bool {
	return isAsciiDocTableDelim(line)
}

func isAsciiDocTableDelim(line []byte) bool {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 4 || trimmed[0] != '|' {
		return false
	}
	for _, c := range trimmed[1:] {
		if c != '=' {
			return false
		}
	}
	return true
}

// DetectThematicBreak recognizes "'''".
func (asciidocAdapter) DetectThematicBreak(line []byte) bool {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 3 {
		return false
	}
	for _, c := range trimmed {
		if c != '\'' {
			return false
		}
	}
	return true
}

var asciidocDelimiters = []DelimiterSpec{
	{Open: "*", Close: "*", Role: RoleBold, CanNest: true, RequiresFlanking: true},
	{Open: "_", Close: "_", Role: RoleItalic, CanNest: true, RequiresFlanking: true},
	{Open: "`", Close: "`", Role: RoleCode},
	{Open: "^", Close: "^", Role: RoleSup},
	{Open: "~", Close: "~", Role: RoleSub},
	{Open: "#", Close: "#", Role: RoleSpan},
}

func (asciidocAdapter) EmphasisDelimiters() []DelimiterSpec {
	return asciidocDelimiters
}

// DetectLink recognizes "link:url[text]" and bare "http(s)://url[text]".
func (asciidocAdapter) DetectLink(text []byte, pos int) LinkInfo {
	rest := text[pos:]
	urlStart := pos
	switch {
	case bytes.HasPrefix(rest, []byte("link:")):
		urlStart = pos + len("link:")
	case bytes.HasPrefix(rest, []byte("http://")), bytes.HasPrefix(rest, []byte("https://")):
	default:
		return LinkInfo{}
	}
	open := bytes.IndexByte(text[urlStart:], '[')
	if open == -1 {
		return LinkInfo{}
	}
	open += urlStart
	if bytes.IndexAny(text[urlStart:open], " \t") != -1 {
		return LinkInfo{}
	}
	close_ := bytes.IndexByte(text[open:], ']')
	if close_ == -1 {
		return LinkInfo{}
	}
	close_ += open
	return LinkInfo{
		Valid:     true,
		URLStart:  urlStart,
		URLEnd:    open,
		TextStart: open + 1,
		TextEnd:   close_,
		End:       close_ + 1,
	}
}

// DetectImage recognizes "image::url[alt]" and "image:url[alt]".
func (asciidocAdapter) DetectImage(text []byte, pos int) LinkInfo {
	rest := text[pos:]
	var urlStart int
	switch {
	case bytes.HasPrefix(rest, []byte("image::")):
		urlStart = pos + len("image::")
	case bytes.HasPrefix(rest, []byte("image:")):
		urlStart = pos + len("image:")
	default:
		return LinkInfo{}
	}
	open := bytes.IndexByte(text[urlStart:], '[')
	if open == -1 {
		return LinkInfo{}
	}
	open += urlStart
	close_ := bytes.IndexByte(text[open:], ']')
	if close_ == -1 {
		return LinkInfo{}
	}
	close_ += open
	return LinkInfo{
		Valid:     true,
		URLStart:  urlStart,
		URLEnd:    open,
		TextStart: open + 1,
		TextEnd:   close_,
		End:       close_ + 1,
	}
}

func (asciidocAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureTaskLists, FeatureAdmonitions,
		FeatureDefinitionLists, FeatureDirectives:
		return true
	}
	return false
}
