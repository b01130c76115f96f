package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrgBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "star headings",
			src:  "* Top\n** Sub\n",
			want: `body{h1[level="1"]{"Top"}, h2[level="2"]{"Sub"}}`,
		},
		{
			name: "source block",
			src:  "#+BEGIN_SRC python\nprint(1)\n#+END_SRC\n",
			want: `body{code[type="block", language="python"]{"print(1)"}}`,
		},
		{
			name: "lowercase block keywords",
			src:  "#+begin_src go\nx := 1\n#+end_src\n",
			want: `body{code[type="block", language="go"]{"x := 1"}}`,
		},
		{
			name: "example block",
			src:  "#+BEGIN_EXAMPLE\nverbatim\n#+END_EXAMPLE\n",
			want: `body{code[type="block"]{"verbatim"}}`,
		},
		{
			name: "plain list",
			src:  "- one\n- two\n",
			want: `body{ul{li{"one"}, li{"two"}}}`,
		},
		{
			name: "checkboxes",
			src:  "- [X] done\n- [ ] open\n",
			want: `body{ul{li[task="true", checked="true"]{"done"}, li[task="true", checked="false"]{"open"}}}`,
		},
		{
			name: "table rows",
			src:  "| a | b |\n| c | d |\n",
			want: `body{table{tr{td{"a"}, td{"b"}}, tr{td{"c"}, td{"d"}}}}`,
		},
		{
			name: "thematic break needs five dashes",
			src:  "-----\n",
			want: `body{hr}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatOrg, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrgInline(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "bold and italic",
			src:  "*bold* and /em/ words\n",
			want: `body{p{strong{"bold"}, " and ", em{"em"}, " words"}}`,
		},
		{
			name: "verbatim",
			src:  "use ~x~ here\n",
			want: `body{p{"use ", code[type="span"]{"x"}, " here"}}`,
		},
		{
			name: "link with description",
			src:  "visit [[https://x.io][the site]] now\n",
			want: `body{p{"visit ", a[href="https://x.io"]{"the site"}, " now"}}`,
		},
		{
			name: "bare bracket link",
			src:  "[[https://x.io]]\n",
			want: `body{p{a[href="https://x.io"]{"https://x.io"}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bodyString(t, FormatOrg, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
