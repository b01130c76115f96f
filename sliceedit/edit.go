// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// implement eficient buffered editing of byte slices.
// It requires a single allocation for many operations, which matters when
// preparing large markup documents for line splitting.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// utf8BOM is the byte-order mark that may appear at offset 0 of a document.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf // Just for our internal queries, we do not modify anything in it
	b.ed = *edit.NewBuffer(buf)
	return b
}

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// Delete queues the deletion of the byte range [start, end).
func (b *Buffer) Delete(start, end int) {
	b.ed.Delete(start, end)
}

// DeleteAllString queues the deletion of every instance of s.
func (b *Buffer) DeleteAllString(s string) {
	hits := FindAll(b.buf, s)
	for _, hit := range hits {
		b.ed.Delete(hit, hit+len(s))
	}
}

// ReplaceAllString queues the replacement of every instance of old with new.
func (b *Buffer) ReplaceAllString(old string, new string) {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}

// NormalizeNewlines returns a copy of src with a leading UTF-8 BOM removed
// and every CRLF or lone CR line terminator collapsed to a single LF.
// The edits are queued in one pass so the result needs one allocation.
// When src needs no changes it is returned unchanged, without copying.
func NormalizeNewlines(src []byte) []byte {
	if bytes.IndexByte(src, '\r') == -1 && !bytes.HasPrefix(src, utf8BOM) {
		return src
	}

	b := NewBuffer(src)
	if bytes.HasPrefix(src, utf8BOM) {
		b.Delete(0, len(utf8BOM))
	}
	for i := 0; i < len(src); i++ {
		if src[i] != '\r' {
			continue
		}
		if i+1 < len(src) && src[i+1] == '\n' {
			// CRLF: drop the CR, keep the LF
			b.Delete(i, i+1)
			i++
		} else {
			// Lone CR becomes LF
			b.ed.Replace(i, i+1, "\n")
		}
	}
	return b.Bytes()
}

// Unescape returns a copy of text with the escape character removed before
// every occurrence of a byte in escapable. Positions where the escape
// character is itself escaped are left alone.
func Unescape(text []byte, escape byte, escapable string) []byte {
	first := -1
	for i := 0; i+1 < len(text); i++ {
		if text[i] == escape && bytes.IndexByte([]byte(escapable), text[i+1]) != -1 {
			first = i
			break
		}
	}
	if first == -1 {
		return text
	}

	b := NewBuffer(text)
	for i := first; i+1 < len(text); i++ {
		if text[i] == escape && bytes.IndexByte([]byte(escapable), text[i+1]) != -1 {
			b.Delete(i, i+1)
			i++ // the escaped byte is consumed, a following escape starts fresh
		}
	}
	return b.Bytes()
}
