package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "title and section macros",
			src:  ".TH GREP 1 \"July 2024\"\n.SH NAME\n.SS Options\n",
			want: `body{h1[level="1"]{"GREP"}, h2[level="2"]{"NAME"}, h3[level="3"]{"Options"}}`,
		},
		{
			name: "quoted section heading",
			src:  ".SH \"SEE ALSO\"\n",
			want: `body{h2[level="2"]{"SEE ALSO"}}`,
		},
		{
			name: "quoted page title keeps its spaces",
			src:  ".TH \"My Title\" 1\n",
			want: `body{h1[level="1"]{"My Title"}}`,
		},
		{
			name: "font macros",
			src:  ".B grep\n.I pattern\n",
			want: `body{p{strong{"grep"}}, p{em{"pattern"}}}`,
		},
		{
			name: "quoted font argument",
			src:  ".B \"two words\"\n",
			want: `body{p{strong{"two words"}}}`,
		},
		{
			name: "paragraph break macro",
			src:  "first paragraph\n.PP\nsecond paragraph\n",
			want: `body{p{"first paragraph"}, p{"second paragraph"}}`,
		},
		{
			name: "comment line",
			src:  ".\\\" a troff comment\nvisible text\n",
			want: `body{p{"visible text"}}`,
		},
		{
			name: "no-fill block",
			src:  ".nf\nline one\n  indented\n.fi\nafter\n",
			want: `body{code[type="block"]{"line one\n  indented"}, p{"after"}}`,
		},
		{
			name: "example block",
			src:  ".EX\ngrep -r foo .\n.EE\n",
			want: `body{code[type="block"]{"grep -r foo ."}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatMan, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "font escapes",
			src:  "use \\fBgrep\\fR to search\n",
			want: `body{p{"use ", strong{"grep"}, " to search"}}`,
		},
		{
			name: "italic font escape",
			src:  "the \\fIpattern\\fR argument\n",
			want: `body{p{"the ", em{"pattern"}, " argument"}}`,
		},
		{
			name: "escaped dash",
			src:  "a \\- b\n",
			want: `body{p{"a - b"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatMan, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
