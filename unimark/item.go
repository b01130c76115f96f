// Package unimark parses lightweight markup documents into a single,
// format-independent element tree.
//
// The supported input dialects are CommonMark-family Markdown (with the GFM
// extensions), reStructuredText, MediaWiki, Textile, Org-mode, AsciiDoc,
// Unix man pages (troff macros) and Typst. Each dialect is described by a
// FormatAdapter which exposes the detection predicates and delimiter tables
// needed by a shared set of block and inline parsing algorithms, so that the
// structural parsers are written exactly once.
package unimark

import (
	"bytes"
	"strconv"
)

// ItemKind discriminates the variants of an Item.
type ItemKind uint8

const (
	// KindUndefined signals "nothing to emit, caller should advance".
	KindUndefined ItemKind = iota
	// KindNull is an explicit empty value.
	KindNull
	// KindError signals "allocation or invariant failure, abort the
	// enclosing block".
	KindError
	// KindString is a text leaf. The string is interned by the Builder.
	KindString
	// KindElement is a structural tree node.
	KindElement
)

// String returns a string representation of the ItemKind.
func (k ItemKind) String() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindNull:
		return "Null"
	case KindError:
		return "Error"
	case KindString:
		return "String"
	case KindElement:
		return "Element"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// Item is the sum type stored as a child of an Element. Text leaves are
// String items; block and inline structural nodes are Element items.
// Undefined, Null and Error are in-band sentinel values used by the block
// parsers.
type Item struct {
	Kind ItemKind
	Str  string   // valid when Kind == KindString
	Elem *Element // valid when Kind == KindElement
}

// The sentinel items. They carry no payload and can be compared directly.
var (
	Undefined = Item{Kind: KindUndefined}
	Null      = Item{Kind: KindNull}
	ErrorItem = Item{Kind: KindError}
)

// StringItem wraps a text leaf as an Item.
func StringItem(s string) Item {
	return Item{Kind: KindString, Str: s}
}

// ElementItem wraps an element as an Item.
func ElementItem(e *Element) Item {
	return Item{Kind: KindElement, Elem: e}
}

// IsUndefined reports whether the item is the Undefined sentinel.
func (it Item) IsUndefined() bool { return it.Kind == KindUndefined }

// IsError reports whether the item is the Error sentinel.
func (it Item) IsError() bool { return it.Kind == KindError }

// IsElement reports whether the item carries an element.
func (it Item) IsElement() bool { return it.Kind == KindElement }

// IsString reports whether the item carries a text leaf.
func (it Item) IsString() bool { return it.Kind == KindString }

// An Attribute is a key-value pair attached to an element. Keys are
// interned; within one element keys are unique and insertion order is
// preserved for serialization.
type Attribute struct {
	Key string
	Val string
}

// Element is a tagged tree node: a tag name, an ordered attribute list and
// an ordered child sequence. ContentLength caches the number of children and
// is maintained in lock-step with child insertion so consumers can read it
// without traversing.
type Element struct {
	Tag           string
	Attr          []Attribute
	Children      []Item
	ContentLength int
}

// Attribute returns the value of the named attribute and whether it is set.
func (e *Element) Attribute(key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the named attribute is set.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.Attribute(key)
	return ok
}

// FirstChild returns the first child, or Undefined if the element is empty.
func (e *Element) FirstChild() Item {
	if len(e.Children) == 0 {
		return Undefined
	}
	return e.Children[0]
}

// LastChild returns the last child, or Undefined if the element is empty.
func (e *Element) LastChild() Item {
	if len(e.Children) == 0 {
		return Undefined
	}
	return e.Children[len(e.Children)-1]
}

// LastElement returns the last child that is an element, or nil.
func (e *Element) LastElement() *Element {
	for i := len(e.Children) - 1; i >= 0; i-- {
		if e.Children[i].Kind == KindElement {
			return e.Children[i].Elem
		}
	}
	return nil
}

// tagString returns a string representation of the element's tag and
// attributes, e.g. `h1 level="1"`.
func (e *Element) tagString() string {
	buf := bytes.NewBufferString(e.Tag)
	for _, a := range e.Attr {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		buf.WriteString(a.Val)
		buf.WriteByte('"')
	}
	return buf.String()
}

// String returns a compact representation of the element in the form
// Tag[attr=val]{children}. Text children are quoted. It is meant for
// debugging and test output, not for serialization.
func (e *Element) String() string {
	var sb bytes.Buffer
	writeElement(&sb, e)
	return sb.String()
}

func writeElement(sb *bytes.Buffer, e *Element) {
	sb.WriteString(e.Tag)
	if len(e.Attr) > 0 {
		sb.WriteByte('[')
		for i, a := range e.Attr {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Key)
			sb.WriteByte('=')
			sb.WriteString(strconv.Quote(a.Val))
		}
		sb.WriteByte(']')
	}
	if len(e.Children) > 0 {
		sb.WriteByte('{')
		for i, c := range e.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeItem(sb, c)
		}
		sb.WriteByte('}')
	}
}

func writeItem(sb *bytes.Buffer, it Item) {
	switch it.Kind {
	case KindElement:
		writeElement(sb, it.Elem)
	case KindString:
		sb.WriteString(strconv.Quote(it.Str))
	default:
		sb.WriteString(it.Kind.String())
	}
}

// String returns the same compact representation used by Element.String.
func (it Item) String() string {
	var sb bytes.Buffer
	writeItem(&sb, it)
	return sb.String()
}
