package unimark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"lf", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone cr", "a\rb\r", []string{"a", "b"}},
		{"mixed", "a\r\nb\rc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"bom stripped", "\xEF\xBB\xBFa\n", []string{"a"}},
		{"interior blanks kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, lines := splitLines([]byte(tt.src))
			var got []string
			for _, l := range lines {
				got = append(got, string(l))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("splitLines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndentColumns(t *testing.T) {
	tests := []struct {
		line   string
		cols   int
		offset int
	}{
		{"x", 0, 0},
		{"    x", 4, 4},
		{"\tx", 4, 1},
		{"  \tx", 4, 3},
		{"\t\tx", 8, 2},
		{"   ", 3, 3},
	}
	for _, tt := range tests {
		cols, offset := indentColumns([]byte(tt.line))
		if cols != tt.cols || offset != tt.offset {
			t.Errorf("indentColumns(%q) = (%d, %d), want (%d, %d)",
				tt.line, cols, offset, tt.cols, tt.offset)
		}
	}
}

func TestStripIndentColumns(t *testing.T) {
	tests := []struct {
		line string
		cols int
		want string
	}{
		{"    x", 4, "x"},
		{"      x", 4, "  x"},
		{"\tx", 4, "x"},
		// A tab straddling the boundary pads with its remainder.
		{"\tx", 2, "  x"},
		{"x", 4, "x"},
	}
	for _, tt := range tests {
		if got := string(stripIndentColumns([]byte(tt.line), tt.cols)); got != tt.want {
			t.Errorf("stripIndentColumns(%q, %d) = %q, want %q", tt.line, tt.cols, got, tt.want)
		}
	}
}

func TestSkipAndTrim(t *testing.T) {
	if got := skipSpaceTab([]byte("  \tx")); got != 3 {
		t.Errorf("skipSpaceTab = %d, want 3", got)
	}
	if got := skipSpaceTabFrom([]byte("ab  cd"), 2); got != 4 {
		t.Errorf("skipSpaceTabFrom = %d, want 4", got)
	}
	if got := string(trimTrailingSpaceTab([]byte("x \t "))); got != "x" {
		t.Errorf("trimTrailingSpaceTab = %q, want %q", got, "x")
	}
	if !isBlankLine([]byte(" \t\r")) {
		t.Error("isBlankLine(\" \\t\\r\") = false")
	}
	if isBlankLine([]byte(" .")) {
		t.Error("isBlankLine(\" .\") = true")
	}
}
