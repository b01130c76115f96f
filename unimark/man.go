package unimark

import (
	"bytes"
)

// manAdapter implements the man-page (troff macro) grammar. Man pages are
// macro-driven rather than markup-driven, so most of the structure falls
// out of the paragraph parser's directive handling; the adapter covers
// section headings and no-fill blocks.
type manAdapter struct{ baseAdapter }

func (manAdapter) Format() Format { return FormatMan }
func (manAdapter) Name() string   { return "Man" }

func (manAdapter) Extensions() []string {
	return []string{".1", ".2", ".3", ".4", ".5", ".6", ".7", ".8", ".9", ".man"}
}

// DetectHeader maps ".TH" to level 1, ".SH" to level 2 and ".SS" to
// level 3. The heading text is the macro argument with surrounding quotes
// removed.
func (manAdapter) DetectHeader(line, next []byte) HeaderInfo {
	var level int
	switch {
	case bytes.HasPrefix(line, []byte(".TH ")):
		level = 1
	case bytes.HasPrefix(line, []byte(".SH ")):
		level = 2
	case bytes.HasPrefix(line, []byte(".SS ")):
		level = 3
	default:
		return HeaderInfo{}
	}
	start := 4 + skipSpaceTab(line[4:])
	end := start + len(trimTrailingSpaceTab(line[start:]))
	if start < end && line[start] == '"' {
		// A quoted first argument is the whole heading text, spaces
		// included, regardless of the macro.
		if close := bytes.IndexByte(line[start+1:end], '"'); close != -1 {
			return HeaderInfo{Valid: true, Level: level, TextStart: start + 1, TextEnd: start + 1 + close}
		}
		start++
	} else if level == 1 {
		// .TH takes "title section date ..."; only the first word is the
		// page title.
		if sp := bytes.IndexAny(line[start:end], " \t"); sp != -1 {
			end = start + sp
		}
	}
	return HeaderInfo{Valid: true, Level: level, TextStart: start, TextEnd: end}
}

// DetectCodeFence recognizes the no-fill macros ".nf" and ".EX".
func (manAdapter) DetectCodeFence(line []byte) FenceInfo {
	trimmed := trimTrailingSpaceTab(line)
	if bytes.Equal(trimmed, []byte(".nf")) || bytes.Equal(trimmed, []byte(".EX")) {
		return FenceInfo{Valid: true, Char: 0}
	}
	return FenceInfo{}
}

// IsCodeFenceClose terminates a no-fill block at ".fi" or ".EE".
func (manAdapter) IsCodeFenceClose(line []byte, open FenceInfo) bool {
	trimmed := trimTrailingSpaceTab(line)
	return bytes.Equal(trimmed, []byte(".fi")) || bytes.Equal(trimmed, []byte(".EE"))
}

// Man pages have no indented-code convention; leading whitespace is
// ordinary fill text.
func (manAdapter) DetectIndentedCode(line []byte) (int, bool) {
	return 0, false
}

// stripManQuotes removes one pair of surrounding double quotes from a
// macro argument.
func stripManQuotes(arg []byte) []byte {
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return arg[1 : len(arg)-1]
	}
	return arg
}

var manDelimiters = []DelimiterSpec{
	{Open: `\fB`, Close: `\fR`, Role: RoleBold},
	{Open: `\fI`, Close: `\fR`, Role: RoleItalic},
}

func (manAdapter) EmphasisDelimiters() []DelimiterSpec {
	return manDelimiters
}

func (manAdapter) EscapeChar() byte { return '\\' }
