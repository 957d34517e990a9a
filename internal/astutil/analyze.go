// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package astutil

import (
	"sort"

	set "github.com/hashicorp/go-set/v3"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/internal/graph"
)

// Analysis for consecutive module-level function bindings which may be mutually-recursive; borrowed
// from Haskell.
// https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
//
//   In Haskell 98, a group of bindings is sorted into strongly-connected components, and then type-checked
//   in dependency order (H98 s4.5.1). As each dependency group is type-checked, any binders of the group
//   that have an explicit type signature are put in the type environment with the specified polymorphic type,
//   and all others are monomorphic until the group is generalized (H98 s4.5.2).
//
// GroupBindings returns the indices of decls split into strongly-connected components, in dependency
// order. References to bindings with an explicit type annotation are ignored.
func GroupBindings(decls []*ast.LetDecl) [][]int {
	g := graph.New[int](len(decls))
	index := make(map[string]int, len(decls))
	for i, d := range decls {
		g.AddVertex(i)
		index[d.Name] = i
	}
	for i, d := range decls {
		names := FreeVars(d.Value).Slice()
		sort.Strings(names)
		for _, name := range names {
			if j, ok := index[name]; ok && decls[j].Ann == nil {
				g.AddEdge(i, j)
			}
		}
	}
	return g.SCC()
}

// FreeVars returns the names referenced by e which are not bound within e.
func FreeVars(e ast.Expr) *set.Set[string] {
	fv := freeVars{free: set.New[string](8)}
	fv.expr(e, set.New[string](0))
	return fv.free
}

type freeVars struct {
	free *set.Set[string]
}

func bind(bound *set.Set[string], p ast.Pattern) *set.Set[string] {
	names := ast.PatternVars(p)
	if len(names) == 0 {
		return bound
	}
	scope := bound.Copy()
	scope.InsertSlice(names)
	return scope
}

func (fv *freeVars) expr(e ast.Expr, bound *set.Set[string]) {
	switch e := e.(type) {
	case *ast.Variable:
		if !bound.Contains(e.Name) {
			fv.free.Insert(e.Name)
		}

	case *ast.Literal, *ast.ExtensionAccess, *ast.ModuleAccess, nil:

	case *ast.Unary:
		fv.expr(e.Expr, bound)

	case *ast.Binary:
		fv.expr(e.Lhs, bound)
		fv.expr(e.Rhs, bound)

	case *ast.Block:
		scope := bound
		for _, s := range e.Stmts {
			scope = fv.stmt(s, scope)
		}
		fv.expr(e.Ret, scope)

	case *ast.Tuple:
		fv.exprs(e.Elems, bound)

	case *ast.Array:
		fv.exprs(e.Elems, bound)

	case *ast.Fun:
		scope := bound
		for _, arg := range e.Args {
			scope = bind(scope, arg.Pat)
		}
		fv.expr(e.Body, scope)

	case *ast.Call:
		fv.expr(e.Fun, bound)
		fv.exprs(e.Args, bound)

	case *ast.If:
		fv.expr(e.Cond, bound)
		fv.expr(e.Then, bound)
		fv.expr(e.Else, bound)

	case *ast.UseIn:
		fv.expr(e.Value, bound)
		fv.expr(e.Rhs, bind(bound, e.Lhs))

	case *ast.Match:
		fv.expr(e.Subject, bound)
		for _, c := range e.Cases {
			fv.expr(c.Body, bind(bound, c.Pattern))
		}

	case *ast.FieldAccess:
		fv.expr(e.Lhs, bound)

	case *ast.Struct:
		for _, f := range e.Fields {
			fv.expr(f.Value, bound)
		}

	case *ast.TupleAccess:
		fv.expr(e.Lhs, bound)

	case *ast.VariantShorthand:
		fv.exprs(e.Args, bound)
	}
}

func (fv *freeVars) exprs(es []ast.Expr, bound *set.Set[string]) {
	for _, e := range es {
		fv.expr(e, bound)
	}
}

// stmt visits s and returns the scope following s.
func (fv *freeVars) stmt(s ast.Stmt, bound *set.Set[string]) *set.Set[string] {
	switch s := s.(type) {
	case *ast.Let:
		fv.expr(s.Value, bound)
		return bind(bound, s.Lhs)
	case *ast.ExprStmt:
		fv.expr(s.Expr, bound)
	case *ast.Assign:
		fv.expr(s.Lhs, bound)
		fv.expr(s.Rhs, bound)
	case *ast.While:
		fv.expr(s.Cond, bound)
		fv.expr(s.Body, bound)
	case *ast.For:
		fv.expr(s.Iterator, bound)
		scope := bound.Copy()
		scope.Insert(s.Name)
		fv.expr(s.Body, scope)
	case *ast.Return:
		fv.expr(s.Expr, bound)
	case *ast.Yield:
		fv.expr(s.Expr, bound)
	}
	return bound
}
