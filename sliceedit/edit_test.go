// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package sliceedit

import "testing"

func TestFindAll(t *testing.T) {
	tests := []struct {
		buf  string
		item string
		want []int
	}{
		{"aXbXc", "X", []int{1, 3}},
		{"XXXX", "XX", []int{0, 2}},
		{"abc", "z", []int{}},
		{"abc", "", []int{}},
	}
	for _, tt := range tests {
		got := FindAll([]byte(tt.buf), tt.item)
		if len(got) != len(tt.want) {
			t.Errorf("FindAll(%q, %q) = %v, want %v", tt.buf, tt.item, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FindAll(%q, %q) = %v, want %v", tt.buf, tt.item, got, tt.want)
				break
			}
		}
	}
}

func TestBufferEdits(t *testing.T) {
	b := NewBuffer([]byte("hello cruel world"))
	b.DeleteAllString("cruel ")
	if got := b.String(); got != "hello world" {
		t.Errorf("String() = %q, want %q", got, "hello world")
	}

	b = NewBuffer([]byte("a-b-c"))
	b.ReplaceAllString("-", "+")
	if got := b.String(); got != "a+b+c" {
		t.Errorf("String() = %q, want %q", got, "a+b+c")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"untouched", "a\nb\n", "a\nb\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\n", "a\nb\nc\n"},
		{"bom", "\xEF\xBB\xBFa\n", "a\n"},
		{"bom and crlf", "\xEF\xBB\xBFa\r\n", "a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(NormalizeNewlines([]byte(tt.src))); got != tt.want {
				t.Errorf("NormalizeNewlines(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		text      string
		escapable string
		want      string
	}{
		{`a \| b`, "|", "a | b"},
		{`a \\| b`, `\|`, `a \| b`},
		{`no escapes`, "|", "no escapes"},
		{`trailing \`, "|", `trailing \`},
	}
	for _, tt := range tests {
		if got := string(Unescape([]byte(tt.text), '\\', tt.escapable)); got != tt.want {
			t.Errorf("Unescape(%q, %q) = %q, want %q", tt.text, tt.escapable, got, tt.want)
		}
	}
}
