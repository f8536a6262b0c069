// Package errors provides the diagnostic machinery of the Epoch compiler:
// the ordered CompileErrors buffer the passes append to, the fatal error
// kinds that unwind a pass, and terminal rendering of individual errors
// with the offending source line and a caret under the offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/epochlang/go-epoch/internal/source"
)

// ANSI fragments used when rendering to a color terminal.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiBoldRed = "\033[1;31m"
)

// CompilerError is one renderable compile error: a message pinned to a
// position inside a source buffer. The buffer supplies both the file name
// for the locator line and the text for the caret snippet; it may be nil
// when no source is available, in which case only the locator and message
// render.
type CompilerError struct {
	Message string
	Buffer  *source.Buffer
	Pos     source.Position
}

// NewCompilerError pins a message to a position in a buffer.
func NewCompilerError(pos source.Position, message string, buf *source.Buffer) *CompilerError {
	return &CompilerError{
		Pos:     pos,
		Message: message,
		Buffer:  buf,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error as a locator line, the offending source line
// with a caret beneath it, and the message. With color set, the caret and
// message use ANSI styling for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	e.writeLocator(&sb)
	e.writeSnippet(&sb, color)
	e.writeMessage(&sb, color)
	return sb.String()
}

func (e *CompilerError) writeLocator(sb *strings.Builder) {
	if e.Buffer != nil && e.Buffer.Name != "" {
		fmt.Fprintf(sb, "Error in %s:%d:%d\n", e.Buffer.Name, e.Pos.Line, e.Pos.Column)
		return
	}
	fmt.Fprintf(sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
}

func (e *CompilerError) writeSnippet(sb *strings.Builder, color bool) {
	line, ok := e.sourceLine()
	if !ok {
		return
	}

	gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteByte('\n')

	pad := len(gutter) + e.Pos.Column - 1
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(strings.Repeat(" ", pad))
	if color {
		sb.WriteString(ansiBoldRed)
	}
	sb.WriteByte('^')
	if color {
		sb.WriteString(ansiReset)
	}
	sb.WriteByte('\n')
}

// sourceLine extracts the 1-indexed line the error points at.
func (e *CompilerError) sourceLine() (string, bool) {
	if e.Buffer == nil || e.Buffer.Text == "" {
		return "", false
	}

	lines := strings.Split(e.Buffer.Text, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return "", false
	}
	return lines[e.Pos.Line-1], true
}

func (e *CompilerError) writeMessage(sb *strings.Builder, color bool) {
	if color {
		sb.WriteString(ansiBold)
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString(ansiReset)
	}
}

// FormatErrors renders a batch of compiler errors, numbering each entry
// when there is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
