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

package poy_test

import (
	"context"
	"testing"

	. "github.com/nathsou/poy-sub000"
	. "github.com/nathsou/poy-sub000/construct"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/types"
)

func mutuallyRecursiveDecls() []ast.Decl {
	somebool := Var("somebool")
	return []ast.Decl{
		DeclareVar("add", nil, TArrow([]types.Type{types.Num, types.Num}, types.Num)),
		DeclareVar("if", []string{"A"}, TArrow([]types.Type{types.Bool, TParam("A"), TParam("A")}, TParam("A"))),
		DeclareVar("somebool", nil, types.Bool),
		FunDecl("id", []string{"x"}, Var("x")),
		FunDecl("f", []string{"x"}, Call(Var("if"),
			Call(Var("id"), somebool),
			Call(Var("id"), Var("x")),
			Call(Var("g"), Call(Var("add"), Var("x"), Var("x"))))),
		FunDecl("g", []string{"x"}, Call(Var("if"), Var("somebool"), Var("x"), Call(Var("id"), Call(Var("f"), Var("x"))))),
		FunDecl("h", []string{"x"}, Call(Var("id"), Call(Var("f"), Var("x")))),
		LetDecl("fns", Tuple(Var("f"), Var("g"), Var("h"))),
	}
}

func recursiveDecls() []ast.Decl {
	return []ast.Decl{
		FunDecl("fact", []string{"n"},
			If(Binary(Var("n"), "==", Num(0)),
				Num(1),
				Binary(Var("n"), "*", Call(Var("fact"), Binary(Var("n"), "-", Num(1)))))),
		LetDecl("x", Call(Var("fact"), Num(5))),
	}
}

func benchmarkDecls(b *testing.B, decls func() []ast.Decl) {
	ctx := NewContext(nil, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		ds := decls()
		b.StartTimer()
		if _, err := ctx.InferModule(context.Background(), "main", ds); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMutuallyRecursiveLet(b *testing.B) {
	benchmarkDecls(b, mutuallyRecursiveDecls)
}

func BenchmarkRecursiveLet(b *testing.B) {
	benchmarkDecls(b, recursiveDecls)
}
