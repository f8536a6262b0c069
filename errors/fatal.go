package errors

import "fmt"

// InternalError is a contract violation inside the compiler: the traverser
// reached a node it does not recognize, the lowering state machine was
// asked to exit into an impossible state, or an undefined AST node appeared
// somewhere it cannot. Internal errors unwind the pass; no IR is produced.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

// Internalf builds an InternalError suitable for panicking across the pass.
func Internalf(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// ReentrantASTError is raised when a program node is visited while another
// program is still active on the same pass instance.
type ReentrantASTError struct{}

func (e *ReentrantASTError) Error() string {
	return "re-entrant AST detected"
}

// UnsupportedFeatureError marks a construct the language defines but this
// implementation does not handle; it unwinds the pass the same way
// internal errors do.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}
