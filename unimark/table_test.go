package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitTableRow(t *testing.T) {
	p := New("doc", nil, ParseConfig{Format: FormatMarkdown})
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"outer pipes", "| a | b |", []string{"a", "b"}},
		{"bare cells", "a|b", []string{"a", "b"}},
		{"empty middle cell", "| a || b |", []string{"a", "", "b"}},
		{"escaped pipe stays", `| a \| b |`, []string{`a \| b`}},
		{"pipe inside code span", "| `a|b` | c |", []string{"`a|b`", "c"}},
		{"unmatched backtick still splits", "| `a | b |", []string{"`a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range p.splitTableRow([]byte(tt.line)) {
				got = append(got, string(c))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAlignRow(t *testing.T) {
	got := parseAlignRow([]byte("|:--|:-:|--:|---|"))
	want := []string{"left", "center", "right", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("aligns mismatch (-want +got):\n%s", diff)
	}
	if parseAlignRow(nil) != nil {
		t.Error("parseAlignRow(nil) is not nil")
	}
}

func TestRSTColumnSpans(t *testing.T) {
	got := rstColumnSpans([]byte("==  ===  =="))
	want := []rstColumnSpan{{0, 4}, {4, 9}, {9, 11}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(rstColumnSpan{})); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
	if rstColumnSpans([]byte("no runs")) != nil {
		t.Error("spans found in a line without '=' runs")
	}
}
