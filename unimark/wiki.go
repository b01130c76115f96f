package unimark

import (
	"bytes"
)

// wikiAdapter implements the MediaWiki grammar.
type wikiAdapter struct{ baseAdapter }

func (wikiAdapter) Format() Format { return FormatWiki }
func (wikiAdapter) Name() string   { return "MediaWiki" }

func (wikiAdapter) Extensions() []string {
	return []string{".wiki", ".mediawiki"}
}

// DetectHeader recognizes "== Title ==": matching runs of '=' on both
// sides, level equal to the run length.
func (wikiAdapter) DetectHeader(line, next []byte) HeaderInfo {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 3 || trimmed[0] != '=' {
		return HeaderInfo{}
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '=' {
		level++
	}
	if level > 6 {
		return HeaderInfo{}
	}
	tail := 0
	for tail < len(trimmed) && trimmed[len(trimmed)-1-tail] == '=' {
		tail++
	}
	if tail != level || level+tail >= len(trimmed) {
		return HeaderInfo{}
	}
	start := level + skipSpaceTab(trimmed[level:])
	text := trimTrailingSpaceTab(trimmed[start : len(trimmed)-tail])
	return HeaderInfo{Valid: true, Level: level, TextStart: start, TextEnd: start + len(text)}
}

// DetectListItem recognizes '*' (bullet) and '#' (ordered) marker runs.
// Nesting is by marker repetition, so the run length is mapped to the
// indentation column model the shared list parser uses.
func (wikiAdapter) DetectListItem(line []byte) ListItemInfo {
	if len(line) == 0 || (line[0] != '*' && line[0] != '#') {
		return ListItemInfo{}
	}
	c := line[0]
	run := 0
	for run < len(line) && line[run] == c {
		run++
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

func (wikiAdapter) DetectCodeFence(line []byte) FenceInfo {
	// MediaWiki proper uses <syntaxhighlight>, but fenced blocks are
	// common in wiki-adjacent tooling; accept the generic form.
	return genericFence(line)
}

func (wikiAdapter) DetectBlockquote(line []byte) QuoteInfo {
	return detectAngleQuote(line)
}

// DetectTable recognizes the "{|" table opener.
func (wikiAdapter) DetectTable(line, next []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte("{|"))
}

// DetectThematicBreak recognizes "----" (four or more dashes).
func (wikiAdapter) DetectThematicBreak(line []byte) bool {
	trimmed := trimTrailingSpaceTab(line)
	if len(trimmed) < 4 {
		return false
	}
	for _, c := range trimmed {
		if c != '-' {
			return false
		}
	}
	return true
}

var wikiDelimiters = []DelimiterSpec{
	{Open: "'''''", Close: "'''''", Role: RoleBoldItalic},
	{Open: "'''", Close: "'''", Role: RoleBold, CanNest: true},
	{Open: "''", Close: "''", Role: RoleItalic, CanNest: true},
	{Open: "<code>", Close: "</code>", Role: RoleCode},
}

func (wikiAdapter) EmphasisDelimiters() []DelimiterSpec {
	return wikiDelimiters
}

// DetectLink recognizes [[target|text]] internal links and
// [url text] external links.
func (wikiAdapter) DetectLink(text []byte, pos int) LinkInfo {
	if pos >= len(text) || text[pos] != '[' {
		return LinkInfo{}
	}
	if pos+1 < len(text) && text[pos+1] == '[' {
		end := bytes.Index(text[pos:], []byte("]]"))
		if end == -1 {
			return LinkInfo{}
		}
		end += pos
		body := text[pos+2 : end]
		info := LinkInfo{Valid: true, End: end + 2}
		if pipe := bytes.IndexByte(body, '|'); pipe != -1 {
			info.URLStart = pos + 2
			info.URLEnd = pos + 2 + pipe
			info.TextStart = pos + 2 + pipe + 1
			info.TextEnd = end
		} else {
			info.URLStart, info.URLEnd = pos+2, end
			info.TextStart, info.TextEnd = pos+2, end
		}
		return info
	}

	end := bytes.IndexByte(text[pos:], ']')
	if end == -1 {
		return LinkInfo{}
	}
	end += pos
	body := text[pos+1 : end]
	if !bytes.HasPrefix(body, []byte("http://")) && !bytes.HasPrefix(body, []byte("https://")) {
		return LinkInfo{}
	}
	info := LinkInfo{Valid: true, End: end + 1}
	if sp := bytes.IndexByte(body, ' '); sp != -1 {
		info.URLStart, info.URLEnd = pos+1, pos+1+sp
		info.TextStart, info.TextEnd = pos+1+sp+1, end
	} else {
		info.URLStart, info.URLEnd = pos+1, end
		info.TextStart, info.TextEnd = pos+1, end
	}
	return info
}

func (wikiAdapter) Supports(feature string) bool {
	switch feature {
	case FeatureTables, FeatureDefinitionLists:
		return true
	}
	return false
}
