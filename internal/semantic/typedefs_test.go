package semantic_test

import (
	"testing"

	"github.com/epochlang/go-epoch/errors"
	"github.com/epochlang/go-epoch/internal/ast"
	"github.com/epochlang/go-epoch/internal/types"
	"github.com/epochlang/go-epoch/pkg/epoch"
)

func TestLower_TypeAlias(t *testing.T) {
	alias := &ast.TypeAlias{
		AliasName:          id("number"),
		RepresentationName: id("integer"),
	}

	compiler, _ := compileOK(t, program(alias))

	got, ok := compiler.Session.Types.Lookup("number")
	if !ok {
		t.Fatal("alias name not registered")
	}
	if got != types.Integer32 {
		t.Errorf("alias resolves to %v, want the integer representation", got)
	}
}

func TestLower_StrongTypeAliasIsDistinct(t *testing.T) {
	alias := &ast.StrongTypeAlias{
		AliasName:          id("handle"),
		RepresentationName: id("integer"),
	}

	compiler, _ := compileOK(t, program(alias))

	got, ok := compiler.Session.Types.Lookup("handle")
	if !ok {
		t.Fatal("strong alias name not registered")
	}
	if got == types.Integer32 {
		t.Error("strong alias must not interchange with its representation")
	}
}

func TestLower_AliasUnknownRepresentation(t *testing.T) {
	alias := &ast.TypeAlias{
		AliasName:          id("mystery"),
		RepresentationName: id("nosuchtype"),
	}

	compiler := epoch.New("", "test.epoch")
	result, errs, fatal := compiler.Compile(program(alias))
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if result != nil {
		t.Fatal("lowering diagnostics must stop the pass at the phase transition")
	}
	if !errs.HasErrors() {
		t.Fatal("unknown representation type produced no diagnostic")
	}
}

func TestLower_SumType(t *testing.T) {
	sum := &ast.SumType{
		Name: id("Shape"),
		BaseTypes: []ast.SumTypeBase{
			{Name: id("Circle")},
			{Name: id("Square")},
		},
	}
	circle := &ast.Structure{
		Identifier: id("Circle"),
		Members: []ast.StructureMember{
			&ast.StructureMemberVariable{Type: id("real"), Name: id("radius")},
		},
	}
	square := &ast.Structure{
		Identifier: id("Square"),
		Members: []ast.StructureMember{
			&ast.StructureMemberVariable{Type: id("real"), Name: id("side")},
		},
	}

	// The sum type precedes its bases; validation resolves the forward
	// references once the whole program is lowered.
	compiler, result := compileOK(t, program(sum, circle, square))

	if len(result.SumTypes()) != 1 {
		t.Fatalf("lowered %d sum types, want 1", len(result.SumTypes()))
	}
	bases := result.SumTypeBases(result.SumTypes()[0])
	if len(bases) != 2 {
		t.Fatalf("sum type has %d bases, want 2", len(bases))
	}
	if result.GetString(bases[0]) != "Circle" || result.GetString(bases[1]) != "Square" {
		t.Error("sum type base order not preserved")
	}
	if _, ok := compiler.Session.Types.Lookup("Shape"); !ok {
		t.Error("sum type name not registered")
	}
}

func TestLower_SumTypeUnknownBase(t *testing.T) {
	sum := &ast.SumType{
		Name: id("Broken"),
		BaseTypes: []ast.SumTypeBase{
			{Name: id("Missing")},
		},
	}

	compiler := epoch.New("", "test.epoch")
	result, errs, fatal := compiler.Compile(program(sum))
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if result != nil {
		t.Fatal("validation should reject a sum type with an unknown base")
	}

	found := false
	for _, e := range errs.Entries() {
		if e.Kind == errors.KindTypeError {
			found = true
		}
	}
	if !found {
		t.Errorf("no type diagnostic recorded: %+v", errs.Entries())
	}
}
