package unimark

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// Format identifies one of the supported input dialects.
type Format uint8

const (
	FormatAuto Format = iota
	FormatMarkdown
	FormatRST
	FormatWiki
	FormatTextile
	FormatOrg
	FormatAsciiDoc
	FormatMan
	FormatTypst
)

// String returns the option-value spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatMarkdown:
		return "markdown"
	case FormatRST:
		return "rst"
	case FormatWiki:
		return "wiki"
	case FormatTextile:
		return "textile"
	case FormatOrg:
		return "org"
	case FormatAsciiDoc:
		return "asciidoc"
	case FormatMan:
		return "man"
	case FormatTypst:
		return "typst"
	}
	return "invalid(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat converts an option value to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "auto", "":
		return FormatAuto, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "rst":
		return FormatRST, nil
	case "wiki", "mediawiki":
		return FormatWiki, nil
	case "textile":
		return FormatTextile, nil
	case "org":
		return FormatOrg, nil
	case "asciidoc", "adoc":
		return FormatAsciiDoc, nil
	case "man", "troff":
		return FormatMan, nil
	case "typst":
		return FormatTypst, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q", s)
}

// Flavor values recognized by the Markdown adapter.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ParseConfig holds the options recognized by the parser.
type ParseConfig struct {
	// Format selects the input dialect; FormatAuto selects by filename
	// extension first and content prologue second.
	Format Format

	// Flavor is an adapter-specific variant selector, e.g. "commonmark"
	// vs "gfm" for the Markdown adapter.
	Flavor string

	// Strict promotes parser errors to hard failures. When false, errors
	// accumulate as diagnostics and parsing continues.
	Strict bool

	// CollectMetadata enables frontmatter/properties parsing for formats
	// that support it.
	CollectMetadata bool

	// ResolveRefs enables the Markdown link-reference pre-scan. When
	// false, reference-style links are emitted as raw text.
	ResolveRefs bool

	// Logger receives debug traces. May be nil.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns the configuration used when the caller does not
// care: auto-detected format, GFM flavor, reference resolution on.
func DefaultConfig() ParseConfig {
	return ParseConfig{
		Format:      FormatAuto,
		Flavor:      FlavorGFM,
		ResolveRefs: true,
	}
}
