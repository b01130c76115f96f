package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWikiBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "headings",
			src:  "= Title =\n\n== Section ==\n",
			want: `body{h1[level="1"]{"Title"}, h2[level="2"]{"Section"}}`,
		},
		{
			name: "unbalanced marker runs stay text",
			src:  "== Section =\n",
			want: `body{p{"== Section ="}}`,
		},
		{
			name: "bullet list with marker-run nesting",
			src:  "* one\n* two\n** nested\n* three\n",
			want: `body{ul{li{"one"}, li{"two", ul{li{"nested"}}}, li{"three"}}}`,
		},
		{
			name: "ordered list",
			src:  "# first\n# second\n",
			want: `body{ol{li{"first"}, li{"second"}}}`,
		},
		{
			name: "table with control lines",
			src:  "{|\n| a | b\n|-\n| c | d\n|}\n",
			want: `body{table{tr{td{"a"}, td{"b"}}, tr{td{"c"}, td{"d"}}}}`,
		},
		{
			name: "horizontal rule",
			src:  "----\n",
			want: `body{hr}`,
		},
		{
			name: "fenced code",
			src:  "```\nwhile true\n```\n",
			want: `body{code[type="block"]{"while true"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatWiki, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWikiInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bold and italic quotes",
			src:  "'''bold''' and ''italic''\n",
			want: `body{p{strong{"bold"}, " and ", em{"italic"}}}`,
		},
		{
			name: "bold italic",
			src:  "'''''both'''''\n",
			want: `body{p{strong{em{"both"}}}}`,
		},
		{
			name: "code tags",
			src:  "run <code>make all</code> first\n",
			want: `body{p{"run ", code[type="span"]{"make all"}, " first"}}`,
		},
		{
			name: "internal link with label",
			src:  "see [[Main Page|the main page]]\n",
			want: `body{p{"see ", a[href="Main Page"]{"the main page"}}}`,
		},
		{
			name: "internal link bare",
			src:  "see [[Sandbox]]\n",
			want: `body{p{"see ", a[href="Sandbox"]{"Sandbox"}}}`,
		},
		{
			name: "external link with label",
			src:  "see [https://x.io the site]\n",
			want: `body{p{"see ", a[href="https://x.io"]{"the site"}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatWiki, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
