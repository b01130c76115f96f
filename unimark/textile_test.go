package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextileBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "headings",
			src:  "h1. Title\n\nh2. Section\n",
			want: `body{h1[level="1"]{"Title"}, h2[level="2"]{"Section"}}`,
		},
		{
			name: "block quote paragraph",
			src:  "bq. quoted text\n",
			want: `body{blockquote{"quoted text"}}`,
		},
		{
			name: "block code runs to blank line",
			src:  "bc.\nx = 1\ny = 2\n\nafter\n",
			want: `body{code[type="block"]{"x = 1\ny = 2"}, p{"after"}}`,
		},
		{
			name: "block code with content on the marker line",
			src:  "bc. x = 1\n\nafter\n",
			want: `body{code[type="block"]{"x = 1"}, p{"after"}}`,
		},
		{
			name: "footnote definition",
			src:  "fn1. The footnote text.\n",
			want: `body{div[class="footnote", id="fn1"]{p{"The footnote text."}}}`,
		},
		{
			name: "definition list",
			src:  "- CPU := central processing unit\n- RAM := random access memory\n",
			want: `body{dl{dt{"CPU"}, dd{"central processing unit"}, dt{"RAM"}, dd{"random access memory"}}}`,
		},
		{
			name: "marker-run lists",
			src:  "* one\n* two\n** deep\n",
			want: `body{ul{li{"one"}, li{"two", ul{li{"deep"}}}}}`,
		},
		{
			name: "ordered list",
			src:  "# first\n# second\n",
			want: `body{ol{li{"first"}, li{"second"}}}`,
		},
		{
			name: "pipe table",
			src:  "|a|b|\n|c|d|\n",
			want: `body{table{tr{td{"a"}, td{"b"}}, tr{td{"c"}, td{"d"}}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatTextile, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTextileInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "strong and emphasis",
			src:  "*bold* and _italic_ words\n",
			want: `body{p{strong{"bold"}, " and ", em{"italic"}, " words"}}`,
		},
		{
			name: "double markers",
			src:  "**bold** and __italic__\n",
			want: `body{p{strong{"bold"}, " and ", em{"italic"}}}`,
		},
		{
			name: "code span",
			src:  "run @make all@ now\n",
			want: `body{p{"run ", code[type="span"]{"make all"}, " now"}}`,
		},
		{
			name: "superscript and subscript",
			src:  "x^2^ and H~2~O\n",
			want: `body{p{"x", sup{"2"}, " and H", sub{"2"}, "O"}}`,
		},
		{
			name: "citation and span",
			src:  "??The Book?? and %marked%\n",
			want: `body{p{cite{"The Book"}, " and ", span{"marked"}}}`,
		},
		{
			name: "underline",
			src:  "+inserted+ text\n",
			want: `body{p{u{"inserted"}, " text"}}`,
		},
		{
			name: "quoted link",
			src:  "see \"the docs\":https://docs.io now\n",
			want: `body{p{"see ", a[href="https://docs.io"]{"the docs"}, " now"}}`,
		},
		{
			name: "link strips trailing punctuation",
			src:  "see \"docs\":https://docs.io.\n",
			want: `body{p{"see ", a[href="https://docs.io"]{"docs"}, "."}}`,
		},
		{
			name: "image",
			src:  "!logo.png! here\n",
			want: `body{p{img[src="logo.png"], " here"}}`,
		},
		{
			name: "image with alt",
			src:  "!logo.png(Logo)! here\n",
			want: `body{p{img[src="logo.png", alt="Logo"], " here"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatTextile, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
