package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAsciiDocBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "headings",
			src:  "= Title\n\n== Section\n",
			want: `body{h1[level="1"]{"Title"}, h2[level="2"]{"Section"}}`,
		},
		{
			name: "admonition",
			src:  "NOTE: Be careful\n",
			want: `body{div[class="admonition note", data-type="note"]{p{"Be careful"}}}`,
		},
		{
			name: "admonition with continuation",
			src:  "WARNING: first line\nsecond line\n\nafter\n",
			want: `body{div[class="admonition warning", data-type="warning"]{p{"first line"}, p{"second line"}}, p{"after"}}`,
		},
		{
			name: "definition list",
			src:  "CPU:: the processor\nRAM:: the memory\n",
			want: `body{dl{dt{"CPU"}, dd{"the processor"}, dt{"RAM"}, dd{"the memory"}}}`,
		},
		{
			name: "definition on next line",
			src:  "CPU::\nthe processor\n",
			want: `body{dl{dt{"CPU"}, dd{"the processor"}}}`,
		},
		{
			name: "source block with language",
			src:  "[source,py]\n----\nx = 1\n----\n",
			want: `body{code[type="block", language="py"]{"x = 1"}}`,
		},
		{
			name: "listing block",
			src:  "----\nplain listing\n----\n",
			want: `body{code[type="block"]{"plain listing"}}`,
		},
		{
			name: "literal block",
			src:  "....\ndots\n....\n",
			want: `body{code[type="block"]{"dots"}}`,
		},
		{
			name: "quote block",
			src:  "[quote]\n____\nWords to live by.\n____\n",
			want: `body{blockquote{"Words to live by."}}`,
		},
		{
			name: "quote without delimiter",
			src:  "[quote]\nJust this line.\n",
			want: `body{blockquote{p{"Just this line."}}}`,
		},
		{
			name: "table",
			src:  "|===\n| a | b\n| c | d\n|===\n",
			want: `body{table{tr{td{"a"}, td{"b"}}, tr{td{"c"}, td{"d"}}}}`,
		},
		{
			name: "thematic break",
			src:  "'''\n",
			want: `body{hr}`,
		},
		{
			name: "ordered list by dot markers",
			src:  ". first\n. second\n.. nested\n",
			want: `body{ol{li{"first"}, li{"second", ol{li{"nested"}}}}}`,
		},
		{
			name: "checklist",
			src:  "* [x] done\n* [ ] open\n",
			want: `body{ul{li[task="true", checked="true"]{"done"}, li[task="true", checked="false"]{"open"}}}`,
		},
		{
			name: "attribute block",
			src:  "[sidebar]\nSome aside.\n",
			want: `body{div[class="sidebar"]{p{"Some aside."}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatAsciiDoc, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAsciiDocInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bold and italic",
			src:  "*bold* and _em_\n",
			want: `body{p{strong{"bold"}, " and ", em{"em"}}}`,
		},
		{
			name: "link macro",
			src:  "see link:https://x.io[the site]\n",
			want: `body{p{"see ", a[href="https://x.io"]{"the site"}}}`,
		},
		{
			name: "bare url with text",
			src:  "https://x.io[site]\n",
			want: `body{p{a[href="https://x.io"]{"site"}}}`,
		},
		{
			name: "image macro",
			src:  "image::pic.png[A picture]\n",
			want: `body{p{img[src="pic.png", alt="A picture"]}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatAsciiDoc, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAsciiDocUnclosedTable(t *testing.T) {
	p := mustParse(t, ParseConfig{Format: FormatAsciiDoc}, "|===\n| a\n")
	if !hasDiagnostic(p, UnclosedDelimiter, SeverityWarning) {
		t.Errorf("diagnostics = %v, want UnclosedDelimiter warning", p.Diagnostics)
	}
}
