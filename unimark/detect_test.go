package unimark

import "testing"

func detectFirst(t *testing.T, cfg ParseConfig, src string) BlockType {
	t.Helper()
	p := New("doc", []byte(src), cfg)
	if len(p.lines) == 0 {
		t.Fatal("no lines to detect")
	}
	return p.detectBlockType(p.lines[0], lineAt(p.lines, 1))
}

func TestDetectBlockType(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
		want   BlockType
	}{
		{"atx header", FormatMarkdown, "# Title\n", BlockHeader},
		{"setext header", FormatMarkdown, "Title\n=====\n", BlockHeader},
		{"bullet item", FormatMarkdown, "- item\n", BlockListItem},
		{"fence", FormatMarkdown, "```go\n", BlockCode},
		{"indented code", FormatMarkdown, "    x := 1\n", BlockCode},
		{"quote", FormatMarkdown, "> quoted\n", BlockQuote},
		{"html block", FormatMarkdown, "<div>\n", BlockRawHTML},
		{"math", FormatMarkdown, "$$\n", BlockMath},
		{"table", FormatMarkdown, "| a | b |\n| --- | --- |\n", BlockTable},
		{"prose", FormatMarkdown, "plain text\n", BlockParagraph},

		// "---" and "* * *" match both the break and other grammars; the
		// break wins.
		{"dashes are a divider", FormatMarkdown, "---\n", BlockDivider},
		{"spaced stars are a divider", FormatMarkdown, "* * *\n", BlockDivider},

		{"admonition", FormatAsciiDoc, "NOTE: careful\n", BlockDirective},
		{"asciidoc def term", FormatAsciiDoc, "term:: definition\n", BlockDefinitionList},
		{"source attr", FormatAsciiDoc, "[source,go]\n", BlockCode},
		{"quote attr", FormatAsciiDoc, "[quote]\n", BlockQuote},
		{"other attr", FormatAsciiDoc, "[sidebar]\n", BlockDirective},

		{"rst directive", FormatRST, ".. image:: x.png\n", BlockDirective},
		{"rst line block", FormatRST, "| a line\n", BlockDirective},
		{"rst def list", FormatRST, "term\n    definition\n", BlockDefinitionList},

		{"textile footnote", FormatTextile, "fn1. note text\n", BlockDirective},
		{"textile def list", FormatTextile, "- a := b\n", BlockDefinitionList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFirst(t, ParseConfig{Format: tt.format}, tt.src)
			if got != tt.want {
				t.Errorf("detected %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectBlockTypeFlavorGating(t *testing.T) {
	cfg := ParseConfig{Format: FormatMarkdown, Flavor: FlavorCommonMark}
	if got := detectFirst(t, cfg, "| a | b |\n| --- | --- |\n"); got != BlockParagraph {
		t.Errorf("commonmark table line detected as %s, want Paragraph", got)
	}
}

func TestBlockTypeString(t *testing.T) {
	if got := BlockDefinitionList.String(); got != "DefinitionList" {
		t.Errorf("String() = %q", got)
	}
	if got := BlockType(99).String(); got != "Invalid(99)" {
		t.Errorf("String() = %q", got)
	}
}
