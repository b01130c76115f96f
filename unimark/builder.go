package unimark

import "fmt"

// elementChunkSize is the number of elements allocated at once by the
// builder arena.
const elementChunkSize = 64

// Builder owns the element arena and the string intern table for one parse.
// Elements and interned strings produced by a builder are valid for the
// lifetime of the builder; parsers never free individual elements.
type Builder struct {
	interned map[string]string
	chunks   [][]Element
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		interned: make(map[string]string),
	}
}

// Intern returns the canonical copy of s. Equal byte sequences compare by
// handle equality after interning.
func (b *Builder) Intern(s string) string {
	if canon, ok := b.interned[s]; ok {
		return canon
	}
	b.interned[s] = s
	return s
}

// InternBytes interns the contents of bs.
func (b *Builder) InternBytes(bs []byte) string {
	// Fast path: the string(bs) conversion used as a map key does not
	// allocate when the entry already exists.
	if canon, ok := b.interned[string(bs)]; ok {
		return canon
	}
	s := string(bs)
	b.interned[s] = s
	return s
}

// CreateElement allocates an element with the given tag from the arena.
// The tag is interned.
func (b *Builder) CreateElement(tag string) *Element {
	if len(b.chunks) == 0 || len(b.chunks[len(b.chunks)-1]) == cap(b.chunks[len(b.chunks)-1]) {
		b.chunks = append(b.chunks, make([]Element, 0, elementChunkSize))
	}
	chunk := b.chunks[len(b.chunks)-1]
	chunk = append(chunk, Element{Tag: b.Intern(tag)})
	b.chunks[len(b.chunks)-1] = chunk
	return &chunk[len(chunk)-1]
}

// AddAttribute appends an attribute to the element, preserving insertion
// order. Re-setting an existing key is a parser error: the first write wins
// and an error is returned so the caller can record a diagnostic.
func (b *Builder) AddAttribute(e *Element, key, val string) error {
	key = b.Intern(key)
	for _, a := range e.Attr {
		if a.Key == key {
			return fmt.Errorf("attribute %q already set on <%s>", key, e.Tag)
		}
	}
	e.Attr = append(e.Attr, Attribute{Key: key, Val: val})
	return nil
}

// AppendChild appends an item to the element's child sequence and keeps the
// cached content length in lock-step. The parent takes exclusive ownership
// of the child.
func (b *Builder) AppendChild(e *Element, it Item) {
	e.Children = append(e.Children, it)
	e.ContentLength++
}

// AppendText interns the text and appends it as a String child, skipping
// empty text.
func (b *Builder) AppendText(e *Element, text string) {
	if len(text) == 0 {
		return
	}
	b.AppendChild(e, StringItem(b.Intern(text)))
}
