package unimark

import (
	"bytes"
)

// textileAdapter implements the Textile grammar.
type textileAdapter struct{ baseAdapter }

func (textileAdapter) Format() Format { return FormatTextile }
func (textileAdapter) Name() string   { return "Textile" }

func (textileAdapter) Extensions() []string {
	return []string{".textile"}
}

// DetectHeader recognizes "hN. text" with N in 1..6.
func (textileAdapter) DetectHeader(line, next []byte) HeaderInfo {
	if len(line) < 4 || line[0] != 'h' || line[1] < '1' || line[1] > '6' || line[2] != '.' {
		return HeaderInfo{}
	}
	if !isSpaceOrTab(line[3]) {
		return HeaderInfo{}
	}
	start := 3 + skipSpaceTab(line[3:])
	text := trimTrailingSpaceTab(line[start:])
	return HeaderInfo{Valid: true, Level: int(line[1] - '0'), TextStart: start, TextEnd: start + len(text)}
}

// DetectListItem recognizes '*' and '#' marker runs, nesting by marker
// repetition as in MediaWiki.
func (textileAdapter) DetectListItem(line []byte) ListItemInfo {
	if len(line) == 0 || (line[0] != '*' && line[0] != '#') {
		return ListItemInfo{}
	}
	c := line[0]
	run := 0
	for run < len(line) && line[run] == c {
		run++
	}
	if run >= len(line) || !isSpaceOrTab(line[run]) {
		return ListItemInfo{}
	}
	info := ListItemInfo{
		Valid:     true,
		Marker:    c,
		MarkerEnd: run,
		Indent:    (run - 1) * tabStop,
		Ordered:   c == '#',
	}
	if info.Ordered {
		info.Number = 1
	}
	info.TextStart = run + skipSpaceTab(line[run:])
	return info
}

// DetectCodeFence recognizes the "bc." block-code marker. The fence has no
// punctuation; the block runs to the next blank line.
func (textileAdapter) DetectCodeFence(line []byte) FenceInfo {
	if bytes.HasPrefix(line, []byte("bc. ")) || bytes.Equal(trimTrailingSpaceTab(line), []byte("bc.")) {
		return FenceInfo{Valid: true, Char: 0}
	}
	return FenceInfo{}
}

// IsCodeFenceClose terminates a "bc." block at the first blank line.
func (textileAdapter) IsCodeFenceClose(line []byte, open FenceInfo) bool {
	return isBlankLine(line)
}

// DetectBlockquote recognizes the "bq." paragraph marker.
func (textileAdapter) DetectBlockquote(line []byte) QuoteInfo {
	if bytes.HasPrefix(line, []byte("bq. ")) {
		return QuoteInfo{Valid: true, Depth: 1, ContentStart: 4}
	}
	return QuoteInfo{}
}

// DetectTable recognizes simple "|cell|cell|" rows.
func (textileAdapter) DetectTable(line, next []byte) bool {
	trimmed := bytes.TrimSpace(line)
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

// Textile has no indented-code convention.
func (textileAdapter) DetectIndentedCode(line []byte) (int, bool) {
	return 0, false
}

var textileDelimiters = []DelimiterSpec{
	{Open: "**", Close: "**", Role: RoleBold},
	{Open: "__", Close: "__", Role: RoleItalic},
	{Open: "??", Close: "??", Role: RoleCite},
	{Open: "*", Close: "*", Role: RoleBold, CanNest: true},
	{Open: "_", Close: "_", Role: RoleItalic, CanNest: true},
	{Open: "@", Close: "@", Role: RoleCode},
	{Open: "+", Close: "+", Role: RoleUnderline},
	{Open: "-", Close: "-", Role: RoleStrike, RequiresFlanking: true},
	{Open: "^", Close: "^", Role: RoleSup},
	{Open: "~", Close: "~", Role: RoleSub},
	{Open: "%", Close: "%", Role: RoleSpan},
}

func (textileAdapter) EmphasisDelimiters() []DelimiterSpec {
	return textileDelimiters
}

// DetectLink recognizes the "text":url form.
func (textileAdapter) DetectLink(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '"' {
		return LinkInfo{}
	}
	end := bytes.IndexByte(text[pos+1:], '"')
	if end == -1 {
		return LinkInfo{}
	}
	end += pos + 1
	if end+1 >= len(text) || text[end+1] != ':' {
		return LinkInfo{}
	}
	urlStart := end + 2
	urlEnd := urlStart
	for urlEnd < len(text) && !isSpaceOrTab(text[urlEnd]) {
		urlEnd++
	}
	// Trailing sentence punctuation does not belong to the URL.
	for urlEnd > urlStart && bytes.IndexByte([]byte(".,;:!?"), text[urlEnd-1]) != -1 {
		urlEnd--
	}
	if urlEnd == urlStart {
		return LinkInfo{}
	}
	return LinkInfo{
		Valid:     true,
		TextStart: pos + 1,
		TextEnd:   end,
		URLStart:  urlStart,
		URLEnd:    urlEnd,
		End:       urlEnd,
	}
}

// DetectImage recognizes "!url!" with an optional "(alt)" suffix inside the
// bangs.
func (textileAdapter) DetectImage(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '!' {
		return LinkInfo{}
	}
	end := bytes.IndexByte(text[pos+1:], '!')
	if end == -1 {
		return LinkInfo{}
	}
	end += pos + 1
	body := text[pos+1 : end]
	if len(body) == 0 || bytes.IndexByte(body, ' ') != -1 {
		return LinkInfo{}
	}
	info := LinkInfo{Valid: true, End: end + 1}
	if open := bytes.IndexByte(body, '('); open != -1 && body[len(body)-1] == ')' {
		info.URLStart = pos + 1
		info.URLEnd = pos + 1 + open
		info.TextStart = pos + 1 + open + 1
		info.TextEnd = end - 1
	} else {
		info.URLStart, info.URLEnd = pos+1, end
		info.TextStart, info.TextEnd = pos+1, pos+1
	}
	return info
}

func (textileAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureFootnotes, FeatureDefinitionLists:
		return true
	}
	return false
}
