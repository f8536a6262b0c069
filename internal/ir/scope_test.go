package ir

import (
	"testing"

	"github.com/epochlang/go-epoch/internal/stringpool"
	"github.com/epochlang/go-epoch/internal/types"
)

func TestScope_LookupWalksParentChain(t *testing.T) {
	pool := stringpool.NewPool()
	global := NewScopeDescription(nil)
	inner := NewScopeDescription(global)

	g := pool.Pool("globalvar")
	l := pool.Pool("localvar")

	global.AddVariable("globalvar", g, types.Integer32, false, OriginGlobal)
	inner.AddVariable("localvar", l, types.Real32, false, OriginLocal)

	if v, ok := inner.Lookup(l); !ok || v.Type != types.Real32 {
		t.Errorf("local lookup = (%+v, %t)", v, ok)
	}
	if v, ok := inner.Lookup(g); !ok || v.Type != types.Integer32 {
		t.Errorf("parent chain lookup = (%+v, %t)", v, ok)
	}
	if _, ok := global.Lookup(l); ok {
		t.Error("lookup must never descend into child scopes")
	}
}

func TestScope_InnermostBindingWins(t *testing.T) {
	pool := stringpool.NewPool()
	outer := NewScopeDescription(nil)
	inner := NewScopeDescription(outer)

	name := pool.Pool("x")
	outer.AddVariable("x", name, types.Integer32, false, OriginLocal)
	inner.AddVariable("x", name, types.Real32, false, OriginLocal)

	v, ok := inner.Lookup(name)
	if !ok || v.Type != types.Real32 {
		t.Errorf("shadowed lookup = (%+v, %t), want the inner real binding", v, ok)
	}
}

func TestScope_InsertionOrderPreserved(t *testing.T) {
	pool := stringpool.NewPool()
	scope := NewScopeDescription(nil)

	names := []string{"first", "second", "third"}
	for _, n := range names {
		scope.AddVariable(n, pool.Pool(n), types.Integer32, false, OriginLocal)
	}

	for i, v := range scope.Variables {
		if v.Name != names[i] {
			t.Errorf("variable %d = %q, want %q", i, v.Name, names[i])
		}
	}
}

func TestScope_LookupLocal(t *testing.T) {
	pool := stringpool.NewPool()
	parent := NewScopeDescription(nil)
	child := NewScopeDescription(parent)

	name := pool.Pool("only-in-parent")
	parent.AddVariable("only-in-parent", name, types.Boolean, false, OriginLocal)

	if _, ok := child.LookupLocal(name); ok {
		t.Error("LookupLocal must not consult the parent chain")
	}
	if _, ok := parent.LookupLocal(name); !ok {
		t.Error("LookupLocal missed a binding in its own scope")
	}
}
