package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRSTBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "section titles by underline",
			src:  "Title\n=====\n\nSection\n-------\n",
			want: `body{h1[level="1"]{"Title"}, h2[level="2"]{"Section"}}`,
		},
		{
			name: "deeper underline characters",
			src:  "Sub\n~~~\n",
			want: `body{h3[level="3"]{"Sub"}}`,
		},
		{
			name: "literal block after double colon",
			src:  "Example::\n\n    code here\n    more code\n",
			want: `body{div{p{"Example:"}, pre{code[type="block"]{"code here\nmore code"}}}}`,
		},
		{
			name: "bare double colon emits only the block",
			src:  "::\n\n    just code\n",
			want: `body{pre{code[type="block"]{"just code"}}}`,
		},
		{
			name: "line block",
			src:  "| line one\n| line two\n",
			want: `body{div[class="line-block"]{p{"line one"}, p{"line two"}}}`,
		},
		{
			name: "definition list",
			src:  "term\n    its definition\n",
			want: `body{dl{dt{"term"}, dd{"its definition"}}}`,
		},
		{
			name: "definition list with joined lines",
			src:  "term\n    part one\n    part two\n",
			want: `body{dl{dt{"term"}, dd{"part one part two"}}}`,
		},
		{
			name: "image directive",
			src:  ".. image:: pic.png\n   :alt: A pic\n   :width: 200\n",
			want: `body{img[src="pic.png", alt="A pic", width="200"]}`,
		},
		{
			name: "code directive",
			src:  ".. code:: python\n\n    print(1)\n",
			want: `body{pre{code[type="block", language="python"]{"print(1)"}}}`,
		},
		{
			name: "comment consumed silently",
			src:  ".. just a comment\n   continued\n\ntext\n",
			want: `body{p{"text"}}`,
		},
		{
			name: "simple table",
			src:  "==  ==\na   b\n==  ==\n",
			want: `body{table{tr{td{"a"}, td{"b"}}}}`,
		},
		{
			name: "transition",
			src:  "before\n\n----\n\nafter\n",
			want: `body{p{"before"}, hr, p{"after"}}`,
		},
		{
			name: "auto-enumerated list",
			src:  "#. one\n#. two\n",
			want: `body{ol{li{"one"}, li{"two"}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatRST, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRSTInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bold and italic",
			src:  "**bold** and *em*\n",
			want: `body{p{strong{"bold"}, " and ", em{"em"}}}`,
		},
		{
			name: "double backquote code",
			src:  "use ``x = 1`` here\n",
			want: `body{p{"use ", code[type="span"]{"x = 1"}, " here"}}`,
		},
		{
			name: "external link",
			src:  "read `Docs <https://d.io>`_ first\n",
			want: `body{p{"read ", a[href="https://d.io"]{"Docs"}, " first"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatRST, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRSTUnknownDirective(t *testing.T) {
	p := mustParse(t, ParseConfig{Format: FormatRST}, ".. wobble:: args\n   body line\n\ntext\n")
	want := `body{p{"text"}}`
	if diff := cmp.Diff(want, p.Doc.Elem.FirstChild().String()); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if !hasDiagnostic(p, UnknownDirective, SeverityNote) {
		t.Errorf("diagnostics = %v, want UnknownDirective note", p.Diagnostics)
	}
}
