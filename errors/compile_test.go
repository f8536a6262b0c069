package errors

import (
	"strings"
	"testing"

	"github.com/epochlang/go-epoch/internal/source"
)

func TestCompileErrors_OrderPreserved(t *testing.T) {
	var buf CompileErrors

	buf.AddError(KindTypeError, "first problem")
	buf.AddError(KindOverloadError, "second problem")
	buf.AddAt(SeverityWarning, source.Ident{}, KindTypeError, "a warning")

	entries := buf.Entries()
	if len(entries) != 3 {
		t.Fatalf("buffer holds %d entries, want 3", len(entries))
	}
	if entries[0].Message != "first problem" || entries[1].Message != "second problem" {
		t.Error("entries out of order")
	}
	if entries[0].Kind != KindTypeError || entries[1].Kind != KindOverloadError {
		t.Error("kinds not recorded")
	}
}

func TestCompileErrors_HasErrors(t *testing.T) {
	var buf CompileErrors
	if buf.HasErrors() {
		t.Error("empty buffer reports errors")
	}

	buf.AddAt(SeverityHint, source.Ident{}, KindTypeError, "only a hint")
	if buf.HasErrors() {
		t.Error("hints alone must not count as errors")
	}

	buf.AddError(KindTypeError, "real error")
	if !buf.HasErrors() {
		t.Error("error entry not detected")
	}
}

func TestCompileErrors_ContextSite(t *testing.T) {
	src := "alpha\nbeta gamma\n"
	buf := &source.Buffer{Text: src, Name: "ctx.epoch"}

	var errs CompileErrors
	site := source.Ident{Text: "gamma", Off: strings.Index(src, "gamma")}
	errs.SetContext(site)
	errs.AddError(KindTypeError, "something about gamma")

	out := errs.Format(buf)
	if !strings.Contains(out, "ctx.epoch:2:6") {
		t.Errorf("formatted entry lacks line/column locator:\n%s", out)
	}
	if !strings.Contains(out, "error: something about gamma") {
		t.Errorf("formatted entry lacks severity and message:\n%s", out)
	}
}

func TestCompileErrors_ToCompilerErrors(t *testing.T) {
	src := "line one\nline two\n"
	buf := &source.Buffer{Text: src, Name: "conv.epoch"}

	var errs CompileErrors
	errs.AddErrorAt(source.Ident{Text: "two", Off: strings.Index(src, "two")}, KindTypeError, "bad two")

	rendered := errs.ToCompilerErrors(buf)
	if len(rendered) != 1 {
		t.Fatalf("converted %d errors, want 1", len(rendered))
	}
	if rendered[0].Pos.Line != 2 {
		t.Errorf("converted position line = %d, want 2", rendered[0].Pos.Line)
	}
	if !strings.Contains(rendered[0].Format(false), "bad two") {
		t.Error("converted error lost its message")
	}
}

func TestFatalErrors_Messages(t *testing.T) {
	if msg := (&ReentrantASTError{}).Error(); !strings.Contains(msg, "re-entrant") {
		t.Errorf("reentrant message = %q", msg)
	}
	if msg := Internalf("state %s", "broken").Error(); !strings.Contains(msg, "internal error: state broken") {
		t.Errorf("internal message = %q", msg)
	}
	if msg := (&UnsupportedFeatureError{Feature: "nested functions"}).Error(); !strings.Contains(msg, "nested functions") {
		t.Errorf("unsupported message = %q", msg)
	}
}
