package errors

import (
	"fmt"
	"strings"

	"github.com/epochlang/go-epoch/internal/source"
)

// Kind classifies a compile error.
type Kind string

const (
	// KindInternal marks a contract violation inside the compiler itself.
	KindInternal Kind = "internal"

	// KindReentrantAST marks a program node visited while another program
	// is still active on the same pass.
	KindReentrantAST Kind = "reentrant_ast"

	// KindUnsupportedFeature marks a construct the language defines but
	// the implementation does not handle yet.
	KindUnsupportedFeature Kind = "unsupported_feature"

	// KindTypeError marks a site rejected by type inference or validation.
	KindTypeError Kind = "type_error"

	// KindOverloadError marks failed or ambiguous overload resolution.
	KindOverloadError Kind = "overload_error"

	// KindUnknownTag marks a function tag referencing an unregistered name.
	KindUnknownTag Kind = "unknown_tag"

	// KindLiteralParseError marks an identifier that looked like a literal
	// but failed to parse as one.
	KindLiteralParseError Kind = "literal_parse_error"

	// KindArenaExhausted marks backing memory refusal.
	KindArenaExhausted Kind = "arena_exhausted"
)

// Severity grades a compile error.
type Severity int

const (
	SeverityHint Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityHint:
		return "hint"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// CompileError is one entry in the diagnostic buffer. Site is the borrowed
// identifier closest to the error; it may be empty when no context was
// available.
type CompileError struct {
	Severity Severity
	Site     source.Ident
	Kind     Kind
	Message  string
}

// CompileErrors is the ordered diagnostic buffer a compilation appends to.
// The buffer tracks the identifier most recently seen by the pass so that
// errors raised between identifiers still point somewhere useful.
type CompileErrors struct {
	entries []CompileError
	context source.Ident
}

// SetContext records the identifier subsequent errors should attach to
// when no site of their own is supplied.
func (ce *CompileErrors) SetContext(id source.Ident) {
	ce.context = id
}

// Context returns the identifier errors currently attach to.
func (ce *CompileErrors) Context() source.Ident {
	return ce.context
}

// AddError appends an error-severity entry at the current context site.
func (ce *CompileErrors) AddError(kind Kind, format string, args ...any) {
	ce.AddAt(SeverityError, ce.context, kind, format, args...)
}

// AddErrorAt appends an error-severity entry at an explicit site.
func (ce *CompileErrors) AddErrorAt(site source.Ident, kind Kind, format string, args ...any) {
	ce.AddAt(SeverityError, site, kind, format, args...)
}

// AddAt appends an entry with full control over severity and site.
func (ce *CompileErrors) AddAt(sev Severity, site source.Ident, kind Kind, format string, args ...any) {
	ce.entries = append(ce.entries, CompileError{
		Severity: sev,
		Site:     site,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Entries returns the accumulated buffer in append order.
func (ce *CompileErrors) Entries() []CompileError {
	return ce.entries
}

// HasErrors reports whether any error-severity entry has accumulated.
func (ce *CompileErrors) HasErrors() bool {
	for _, e := range ce.entries {
		if e.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Len reports the number of buffered entries of any severity.
func (ce *CompileErrors) Len() int { return len(ce.entries) }

// Format renders every entry as "source:line:col: severity: message" using the
// buffer's locator.
func (ce *CompileErrors) Format(buf *source.Buffer) string {
	var sb strings.Builder
	for i, e := range ce.entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		pos := buf.PositionOf(e.Site)
		fmt.Fprintf(&sb, "%s:%d:%d: %s: %s", buf.Name, pos.Line, pos.Column, e.Severity, e.Message)
	}
	return sb.String()
}

// ToCompilerErrors converts the buffer into renderable CompilerErrors.
func (ce *CompileErrors) ToCompilerErrors(buf *source.Buffer) []*CompilerError {
	out := make([]*CompilerError, 0, len(ce.entries))
	for _, e := range ce.entries {
		out = append(out, NewCompilerError(buf.PositionOf(e.Site), e.Message, buf))
	}
	return out
}
