package unimark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormatByExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"notes.org", FormatOrg},
		{"page.wiki", FormatWiki},
		{"page.mediawiki", FormatWiki},
		{"post.textile", FormatTextile},
		{"doc.typ", FormatTypst},
		{"grep.1", FormatMan},
		{"intro.man", FormatMan},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename, nil))
		})
	}
}

func TestDetectFormatByContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Format
	}{
		{"yaml frontmatter", "---\ntitle: x\n---\n", FormatMarkdown},
		{"org keywords", "#+TITLE: Notes\n", FormatOrg},
		{"troff title", ".TH GREP 1\n", FormatMan},
		{"troff comment", ".\\\" comment\n", FormatMan},
		{"rst directive", ".. note:: text\n", FormatRST},
		{"wiki heading", "== Heading ==\n", FormatWiki},
		{"wiki link", "[[Main Page]]\n", FormatWiki},
		{"textile heading", "h2. Title\n", FormatTextile},
		{"asciidoc title", "= Title\n", FormatAsciiDoc},
		{"asciidoc source", "[source,go]\n", FormatAsciiDoc},
		{"leading blank lines", "\n\n#+TITLE: x\n", FormatOrg},
		{"plain prose", "just some text\n", FormatMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat("README", []byte(tt.content)))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for f := FormatMarkdown; f <= FormatTypst; f++ {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	for _, alias := range []struct {
		s    string
		want Format
	}{
		{"md", FormatMarkdown},
		{"mediawiki", FormatWiki},
		{"adoc", FormatAsciiDoc},
		{"troff", FormatMan},
		{"", FormatAuto},
	} {
		got, err := ParseFormat(alias.s)
		require.NoError(t, err)
		assert.Equal(t, alias.want, got, "alias %q", alias.s)
	}

	_, err := ParseFormat("doc")
	assert.Error(t, err)
}

func TestAdapterFor(t *testing.T) {
	for f := FormatMarkdown; f <= FormatTypst; f++ {
		a := AdapterFor(f)
		require.NotNil(t, a)
		assert.Equal(t, f, a.Format())
	}
	// Auto and out-of-range values fall back to Markdown.
	assert.Equal(t, FormatMarkdown, AdapterFor(FormatAuto).Format())
	assert.Equal(t, FormatMarkdown, AdapterFor(Format(200)).Format())
}

func TestAdapterExtensionsAreDistinct(t *testing.T) {
	seen := map[string]Format{}
	for f, a := range adapters {
		for _, ext := range a.Extensions() {
			if prev, dup := seen[ext]; dup {
				t.Errorf("extension %q claimed by both %s and %s", ext, prev, f)
			}
			seen[ext] = f
		}
	}
}
