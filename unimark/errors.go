package unimark

import (
	"fmt"
	"strconv"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a string representation of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "invalid(" + strconv.Itoa(int(s)) + ")"
}

// Category names the kind of problem a diagnostic reports.
type Category uint8

const (
	UnclosedDelimiter Category = iota
	InvalidSyntax
	UnresolvedReference
	TableMalformed
	DuplicateLinkLabel
	UnknownDirective
)

// String returns a string representation of the Category.
func (c Category) String() string {
	switch c {
	case UnclosedDelimiter:
		return "UnclosedDelimiter"
	case InvalidSyntax:
		return "InvalidSyntax"
	case UnresolvedReference:
		return "UnresolvedReference"
	case TableMalformed:
		return "TableMalformed"
	case DuplicateLinkLabel:
		return "DuplicateLinkLabel"
	case UnknownDirective:
		return "UnknownDirective"
	}
	return "Invalid(" + strconv.Itoa(int(c)) + ")"
}

// Diagnostic is one structured parser message. Line and Column are
// one-based source positions; Column may be zero when the problem concerns
// the whole line.
type Diagnostic struct {
	Filename string
	Category Category
	Severity Severity
	Msg      string
	Hint     string
	Line     int
	Column   int
}

// Error implements the error interface in file:line:col format.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Filename, d.Line, d.Column, d.Severity, d.Msg)
}

// addDiag records a diagnostic in the parser's error sink. The current line
// number is used when line is zero.
func (p *Parser) addDiag(cat Category, sev Severity, line, col int, format string, args ...any) *Diagnostic {
	if line == 0 {
		line = p.cur + 1
	}
	d := &Diagnostic{
		Filename: p.fileName,
		Category: cat,
		Severity: sev,
		Msg:      fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	}
	p.Diagnostics = append(p.Diagnostics, d)
	if p.log != nil {
		p.log.Debugw("diagnostic", "category", cat.String(), "severity", sev.String(), "line", line, "msg", d.Msg)
	}
	return d
}

// firstError returns the first error-severity diagnostic, or nil.
func (p *Parser) firstError() *Diagnostic {
	for _, d := range p.Diagnostics {
		if d.Severity == SeverityError {
			return d
		}
	}
	return nil
}
