package unimark

import (
	"fmt"
	"testing"
)

func TestBuilderArenaStability(t *testing.T) {
	// Element pointers must survive arena growth across chunk boundaries.
	b := NewBuilder()
	const n = 5 * elementChunkSize
	elems := make([]*Element, n)
	for i := 0; i < n; i++ {
		elems[i] = b.CreateElement(fmt.Sprintf("tag%d", i))
	}
	for i, e := range elems {
		if want := fmt.Sprintf("tag%d", i); e.Tag != want {
			t.Fatalf("element %d: tag = %q, want %q", i, e.Tag, want)
		}
	}
	for i := 1; i < n; i++ {
		if elems[i] == elems[i-1] {
			t.Fatalf("elements %d and %d share storage", i-1, i)
		}
	}
}

func TestBuilderIntern(t *testing.T) {
	b := NewBuilder()
	s1 := b.Intern("hello")
	s2 := b.InternBytes([]byte("hello"))
	if s1 != s2 {
		t.Errorf("Intern and InternBytes disagree: %q vs %q", s1, s2)
	}
}

func TestAddAttributeDuplicate(t *testing.T) {
	b := NewBuilder()
	e := b.CreateElement("a")
	if err := b.AddAttribute(e, "href", "/first"); err != nil {
		t.Fatalf("first AddAttribute: %v", err)
	}
	if err := b.AddAttribute(e, "href", "/second"); err == nil {
		t.Fatal("duplicate AddAttribute did not fail")
	}
	if v, _ := e.Attribute("href"); v != "/first" {
		t.Errorf("href = %q after duplicate set, want %q", v, "/first")
	}
}

func TestAppendChildContentLength(t *testing.T) {
	b := NewBuilder()
	e := b.CreateElement("p")
	for i := 0; i < 3; i++ {
		b.AppendChild(e, StringItem("x"))
		if e.ContentLength != len(e.Children) {
			t.Fatalf("ContentLength = %d, len(Children) = %d", e.ContentLength, len(e.Children))
		}
	}
}

func TestAppendTextSkipsEmpty(t *testing.T) {
	b := NewBuilder()
	e := b.CreateElement("p")
	b.AppendText(e, "")
	if e.ContentLength != 0 {
		t.Errorf("empty text appended: ContentLength = %d", e.ContentLength)
	}
	b.AppendText(e, "x")
	if e.ContentLength != 1 {
		t.Errorf("ContentLength = %d, want 1", e.ContentLength)
	}
}

func TestElementString(t *testing.T) {
	b := NewBuilder()
	e := b.CreateElement("h1")
	b.AddAttribute(e, "level", "1")
	b.AppendText(e, "Title")
	inner := b.CreateElement("em")
	b.AppendText(inner, "x")
	b.AppendChild(e, ElementItem(inner))
	if got, want := e.String(), `h1[level="1"]{"Title", em{"x"}}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if got, want := b.CreateElement("hr").String(), "hr"; got != want {
		t.Errorf("empty element String() = %s, want %s", got, want)
	}
}

func TestElementNavigation(t *testing.T) {
	b := NewBuilder()
	e := b.CreateElement("li")
	b.AppendText(e, "head")
	sub := b.CreateElement("ul")
	b.AppendChild(e, ElementItem(sub))
	b.AppendText(e, "tail")

	if first := e.FirstChild(); !first.IsString() || first.Str != "head" {
		t.Errorf("FirstChild = %s", first)
	}
	if last := e.LastChild(); !last.IsString() || last.Str != "tail" {
		t.Errorf("LastChild = %s", last)
	}
	if le := e.LastElement(); le != sub {
		t.Errorf("LastElement = %v, want the nested ul", le)
	}
	empty := b.CreateElement("p")
	if !empty.FirstChild().IsUndefined() {
		t.Error("FirstChild of empty element is not Undefined")
	}
	if empty.LastElement() != nil {
		t.Error("LastElement of empty element is not nil")
	}
}
