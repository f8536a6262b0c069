package ast

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/epochlang/go-epoch/internal/source"
)

// eventRecorder captures the traversal as "enter/leave TypeName" strings.
type eventRecorder struct {
	events []string
}

func (r *eventRecorder) Enter(n Node) {
	r.events = append(r.events, "enter "+nodeName(n))
}

func (r *eventRecorder) Leave(n Node) {
	r.events = append(r.events, "leave "+nodeName(n))
}

func nodeName(n Node) string {
	t := reflect.TypeOf(n)
	if t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	}
	return t.Name()
}

func ident(text string) source.Ident {
	return source.Ident{Text: text}
}

func TestWalk_FunctionDescentOrder(t *testing.T) {
	// Parameters first, then the bracketed return clause, then the body,
	// then the tags.
	fn := &Function{
		Name: ident("f"),
		Params: []FunctionParameter{
			&NamedFunctionParameter{Type: ident("integer"), Name: ident("x")},
		},
		Return: Undefined{},
		Tags: []*FunctionTag{
			{Name: ident("external")},
		},
		Code: &CodeBlock{},
	}
	program := &Program{MetaEntities: []MetaEntity{fn}}

	rec := &eventRecorder{}
	Walk(rec, program)

	want := []string{
		"enter Program",
		"enter Function",
		"enter NamedFunctionParameter",
		"leave NamedFunctionParameter",
		"enter FunctionReturnExpression",
		"enter Undefined",
		"leave Undefined",
		"leave FunctionReturnExpression",
		"enter CodeBlock",
		"leave CodeBlock",
		"enter FunctionTag",
		"leave FunctionTag",
		"leave Function",
		"leave Program",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("traversal order mismatch:\ngot  %v\nwant %v", rec.events, want)
	}
}

func TestWalk_ExpressionComponentOrder(t *testing.T) {
	// Unary prefixes are bracketed by the prefixes marker before the
	// inner value is visited.
	expr := &Expression{
		First: &ExpressionComponent{
			UnaryPrefixes: []Identifier{{Ident: ident("!")}},
			Value:         Identifier{Ident: ident("flag")},
		},
		Remaining: []*ExpressionFragment{
			{
				Operator:  ident("&&"),
				Component: &ExpressionComponent{Value: Identifier{Ident: ident("other")}},
			},
		},
	}

	rec := &eventRecorder{}
	WalkNode(rec, expr)

	want := []string{
		"enter Expression",
		"enter ExpressionComponent",
		"enter ExpressionComponentPrefixes",
		"enter Identifier",
		"leave Identifier",
		"leave ExpressionComponentPrefixes",
		"enter Identifier",
		"leave Identifier",
		"leave ExpressionComponent",
		"enter ExpressionFragment",
		"enter ExpressionComponent",
		"enter ExpressionComponentPrefixes",
		"leave ExpressionComponentPrefixes",
		"enter Identifier",
		"leave Identifier",
		"leave ExpressionComponent",
		"leave ExpressionFragment",
		"leave Expression",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("traversal order mismatch:\ngot  %v\nwant %v", rec.events, want)
	}
}

func TestWalk_EntityChainOrder(t *testing.T) {
	entity := &Entity{
		Identifier: ident("if"),
		Parameters: []*Expression{
			{First: &ExpressionComponent{Value: Identifier{Ident: ident("cond")}}},
		},
		Code: &CodeBlock{},
		Chain: []*ChainedEntity{
			{Identifier: ident("elseif"), Code: &CodeBlock{}},
			{Identifier: ident("else"), Code: &CodeBlock{}},
		},
	}

	rec := &eventRecorder{}
	WalkNode(rec, entity)

	// Both links of the chain are walked, and each chained entity visits
	// its identifier first.
	var chainNames []string
	for i, ev := range rec.events {
		if ev == "enter ChainedEntity" {
			// The identifier leaf follows immediately.
			if rec.events[i+1] != "enter Identifier" {
				t.Fatalf("chained entity did not visit its identifier first: %v", rec.events[i+1])
			}
			chainNames = append(chainNames, rec.events[i+1])
		}
	}
	if len(chainNames) != 2 {
		t.Errorf("expected 2 chained entities, saw %d", len(chainNames))
	}
}

func TestWalk_PostfixEntityOrder(t *testing.T) {
	entity := &PostfixEntity{
		Identifier:        ident("do"),
		Code:              &CodeBlock{},
		PostfixIdentifier: ident("while"),
		PostfixParameters: []*Expression{
			{First: &ExpressionComponent{Value: Identifier{Ident: ident("cond")}}},
		},
	}

	rec := &eventRecorder{}
	WalkNode(rec, entity)

	want := []string{
		"enter PostfixEntity",
		"enter CodeBlock",
		"leave CodeBlock",
		"enter Identifier",
		"leave Identifier",
		"enter Expression",
		"enter ExpressionComponent",
		"enter ExpressionComponentPrefixes",
		"leave ExpressionComponentPrefixes",
		"enter Identifier",
		"leave Identifier",
		"leave ExpressionComponent",
		"leave Expression",
		"leave PostfixEntity",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("traversal order mismatch:\ngot  %v\nwant %v", rec.events, want)
	}
}

func TestWalk_UnrecognizedNodeIsFatal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an unrecognized node")
		}
		if msg := fmt.Sprint(r); msg == "" {
			t.Error("panic carried no message")
		}
	}()

	WalkNode(&eventRecorder{}, bogusNode{})
}

type bogusNode struct{}

func (bogusNode) astNode() {}

func TestWalkDeferred_EmptyHolderIsSkipped(t *testing.T) {
	rec := &eventRecorder{}
	WalkDeferred(rec, Deferred[Statement]{})
	if len(rec.events) != 0 {
		t.Errorf("empty holder contributed events: %v", rec.events)
	}

	arena := NewArena()
	var d Deferred[Statement]
	d.Ensure(arena).Identifier = ident("call")
	WalkDeferred(rec, d)
	if len(rec.events) != 2 {
		t.Errorf("expected enter/leave for the held statement, got %v", rec.events)
	}
}
