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

package poy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/config"
	. "github.com/nathsou/poy-sub000/construct"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/match"
	"github.com/nathsou/poy-sub000/types"
)

var (
	tNum  = types.Num
	tBool = types.Bool
	tStr  = types.Str
)

func inferModule(t *testing.T, ctx *InferenceContext, decls ...ast.Decl) (*Module, error) {
	ctx.SetTracer(gotestingadapter.New(t))
	return ctx.InferModule(context.Background(), "main", decls)
}

func mustInfer(t *testing.T, decls ...ast.Decl) *Module {
	mod, err := inferModule(t, NewContext(nil, nil), decls...)
	if err != nil {
		t.Fatal(err)
	}
	return mod
}

func expectType(t *testing.T, mod *Module, name, expected string) {
	t.Helper()
	info, ok := mod.Env.Lookup(name)
	if !ok {
		t.Fatalf("%s is not declared", name)
	}
	if typeString := types.TypeString(info.Ty); typeString != expected {
		t.Fatalf("%s: expected %s, got %s", name, expected, typeString)
	}
}

func expectError(t *testing.T, err error, code diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error", code)
	}
	if diag.CodeOf(err) != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
	t.Logf("Passed check for %s error: %v", code, err)
}

func TestLetBindings(t *testing.T) {
	mod := mustInfer(t,
		LetDecl("x", Num(1)),
		LetDecl("y", Binary(Var("x"), "+", Num(1))),
	)
	expectType(t, mod, "x", "Num")
	expectType(t, mod, "y", "Num")
}

func TestGeneralizedIdentity(t *testing.T) {
	mod := mustInfer(t,
		FunDecl("id", []string{"x"}, Var("x")),
		LetDecl("a", Call(Var("id"), Num(1))),
		LetDecl("b", Call(Var("id"), Str("s"))),
	)
	expectType(t, mod, "id", "forall a. a -> a")
	expectType(t, mod, "a", "Num")
	expectType(t, mod, "b", "Str")
}

func TestPolymorphicOperators(t *testing.T) {
	mod := mustInfer(t,
		LetDecl("e1", Binary(Str("a"), "==", Str("b"))),
		LetDecl("e2", Binary(Num(1), "!=", Num(2))),
		LetDecl("s", Binary(Str("a"), "++", Str("b"))),
		LetDecl("n", Unary("-", Num(1))),
	)
	expectType(t, mod, "e1", "Bool")
	expectType(t, mod, "e2", "Bool")
	expectType(t, mod, "s", "Str")
	expectType(t, mod, "n", "Num")

	_, err := inferModule(t, NewContext(nil, nil), LetDecl("x", Binary(Num(1), "<>", Num(2))))
	expectError(t, err, diag.CodeUnknownOperator)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("x", Binary(Num(1), "+", Str("s"))))
	expectError(t, err, diag.CodeTypeMismatch)
}

func TestRecursiveLet(t *testing.T) {
	fact := FunDecl("fact", []string{"n"},
		If(Binary(Var("n"), "==", Num(0)),
			Num(1),
			Binary(Var("n"), "*", Call(Var("fact"), Binary(Var("n"), "-", Num(1))))))

	exprString := ast.ExprString(fact.Value)
	if exprString != "fun(n) -> if n == 0 1 else n * fact(n - 1)" {
		t.Fatalf("expr: %s", exprString)
	}
	t.Logf("expr: %s", exprString)

	mod := mustInfer(t, fact)
	expectType(t, mod, "fact", "Num -> Num")
}

func TestMutuallyRecursiveLet(t *testing.T) {
	newbool := Call(Var("newbool"))
	mod := mustInfer(t,
		DeclareVar("add", nil, TArrow([]types.Type{tNum, tNum}, tNum)),
		DeclareVar("if", []string{"A"}, TArrow([]types.Type{tBool, TParam("A"), TParam("A")}, TParam("A"))),
		DeclareVar("newbool", nil, TArrow(nil, tBool)),
		FunDecl("id", []string{"x"}, Var("x")),
		FunDecl("f", []string{"x"}, Call(Var("if"),
			Call(Var("id"), newbool),
			Call(Var("id"), Var("x")),
			Call(Var("g"), Call(Var("add"), Var("x"), Var("x"))))),
		FunDecl("g", []string{"x"}, Call(Var("if"),
			Call(Var("newbool")),
			Var("x"),
			Call(Var("id"), Call(Var("f"), Var("x"))))),
		FunDecl("h", []string{"x"}, Call(Var("id"), Call(Var("f"), Var("x")))),
	)
	expectType(t, mod, "if", "(Bool, A, A) -> A")
	expectType(t, mod, "id", "forall a. a -> a")
	expectType(t, mod, "f", "Num -> Num")
	expectType(t, mod, "g", "Num -> Num")
	expectType(t, mod, "h", "Num -> Num")

	even := FunDecl("isEven", []string{"n"},
		If(Binary(Var("n"), "==", Num(0)), Bool(true), Call(Var("isOdd"), Binary(Var("n"), "-", Num(1)))))
	odd := FunDecl("isOdd", []string{"n"},
		If(Binary(Var("n"), "==", Num(0)), Bool(false), Call(Var("isEven"), Binary(Var("n"), "-", Num(1)))))
	mod = mustInfer(t, even, odd)
	expectType(t, mod, "isEven", "Num -> Bool")
	expectType(t, mod, "isOdd", "Num -> Bool")
}

func TestExplicitGenerics(t *testing.T) {
	id := func() ast.Decl {
		return LetDecl("id", GenericFunc([]string{"T"}, []ast.Argument{Arg("x", TParam("T"))}, TParam("T"), Var("x")))
	}
	mod := mustInfer(t, id(),
		LetDecl("n", Call(Var("id", tNum), Num(1))),
		LetDecl("s", Call(Var("id"), Str("s"))),
	)
	expectType(t, mod, "id", "T -> T")
	expectType(t, mod, "n", "Num")
	expectType(t, mod, "s", "Str")
	info, _ := mod.Env.Lookup("id")
	assert.Equal(t, []string{"T"}, info.Generics)

	_, err := inferModule(t, NewContext(nil, nil), id(), LetDecl("n", Call(Var("id", tStr), Num(1))))
	expectError(t, err, diag.CodeTypeMismatch)

	_, err = inferModule(t, NewContext(nil, nil), id(), LetDecl("n", Call(Var("id", tNum, tStr), Num(1))))
	expectError(t, err, diag.CodeArityMismatch)

	_, err = inferModule(t, NewContext(nil, nil), id(), LetDecl("n", Call(Var("id"), Num(1), Num(2))))
	expectError(t, err, diag.CodeArityMismatch)
}

func TestUndefinedVariable(t *testing.T) {
	_, err := inferModule(t, NewContext(nil, nil), LetDecl("x", Var("y")))
	expectError(t, err, diag.CodeUndefinedVariable)
	assert.Equal(t, diag.User, diag.ClassOf(err))
}

func TestTuplesAndUse(t *testing.T) {
	swap := Use(PTuple(PVar("a"), PVar("b")), Tuple(Num(1), Str("s")), Tuple(Var("b"), Var("a")))
	mod := mustInfer(t,
		LetDecl("p", swap),
		LetDecl("q", Proj(Var("p"), 1)),
		LetDecl("xs", Array(Num(1), Num(2))),
	)
	expectType(t, mod, "p", "(Str, Num)")
	expectType(t, mod, "q", "Num")
	expectType(t, mod, "xs", "Array<Num>")

	_, err := inferModule(t, NewContext(nil, nil), LetDecl("p", Proj(Tuple(Num(1)), 2)))
	expectError(t, err, diag.CodeArityMismatch)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("xs", Array(Num(1), Str("s"))))
	expectError(t, err, diag.CodeTypeMismatch)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("p", Use(PTuple(PVar("a"), PVar("a")), Tuple(Num(1), Num(2)), Var("a"))))
	expectError(t, err, diag.CodeDuplicateBinding)
}

func TestMatchLiteral(t *testing.T) {
	m := Match(Var("n"), Case(PNum(0), Str("zero")), Case(PAny(), Str("other")))
	mod := mustInfer(t, FunDecl("describe", []string{"n"}, m))
	expectType(t, mod, "describe", "Num -> Str")

	sw, ok := m.DecisionTree.(*match.Switch)
	if !ok {
		t.Fatalf("expected a switch, got:\n%s", spew.Sdump(m.DecisionTree))
	}
	assert.Empty(t, sw.Occurrence)
	require.Len(t, sw.Tests, 1)
	assert.Equal(t, "0", sw.Tests[0].Ctor)
	assert.Equal(t, match.MetaNum, sw.Tests[0].Meta)
	assert.Equal(t, &match.Leaf{Action: 0}, sw.Tests[0].Tree)
	assert.Equal(t, &match.Leaf{Action: 1}, sw.Default)
}

func TestEnumMatch(t *testing.T) {
	option := Enum("Option", []string{"T"}, EnumVariant("None"), EnumVariant("Some", TParam("T")))
	m := Match(Var("opt"),
		Case(PVariant("", "Some", PVar("x")), Var("x")),
		Case(PVariant("Option", "None"), Var("default")))
	mod := mustInfer(t, option,
		FunDecl("unwrapOr", []string{"opt", "default"}, m),
		LetDecl("some", Variant("", "Some", Num(1))),
		LetDecl("none", Variant("Option", "None")),
		LetDecl("n", Call(Var("unwrapOr"), Var("some"), Num(0))),
	)
	expectType(t, mod, "unwrapOr", "forall a. (Option<a>, a) -> a")
	expectType(t, mod, "some", "Option<Num>")
	expectType(t, mod, "none", "forall a. Option<a>")
	expectType(t, mod, "n", "Num")

	sw := m.DecisionTree.(*match.Switch)
	assert.Len(t, sw.Tests, 2)
	assert.Nil(t, sw.Default)
	assert.False(t, match.HasFail(m.DecisionTree))
	assert.Equal(t, option, m.Cases[0].Pattern.(*ast.VariantPattern).ResolvedEnum)

	_, err := inferModule(t, NewContext(nil, nil), option, LetDecl("o", Variant("", "Some")))
	expectError(t, err, diag.CodeArityMismatch)

	_, err = inferModule(t, NewContext(nil, nil), option, LetDecl("o", Variant("", "Nothing")))
	expectError(t, err, diag.CodeUndefinedMember)

	maybe := Enum("Maybe", nil, EnumVariant("None"))
	_, err = inferModule(t, NewContext(nil, nil), option, maybe, LetDecl("o", Variant("", "None")))
	expectError(t, err, diag.CodeAmbiguousVariant)
}

func TestNonExhaustiveMatch(t *testing.T) {
	decls := func() []ast.Decl {
		return []ast.Decl{
			Enum("Color", nil, EnumVariant("Red"), EnumVariant("Green"), EnumVariant("Blue")),
			FunDecl("name", []string{"c"}, Match(Var("c"),
				Case(PVariant("", "Red"), Str("red")),
				Case(PVariant("", "Green"), Str("green")))),
		}
	}
	_, err := inferModule(t, NewContext(nil, nil), decls()...)
	expectError(t, err, diag.CodeNonExhaustiveMatch)

	cfg := config.Default()
	cfg.EnforceExhaustiveMatch = false
	ds := decls()
	mod, err := inferModule(t, NewContext(cfg, nil), ds...)
	require.NoError(t, err)
	expectType(t, mod, "name", "Color -> Str")

	m := ds[1].(*ast.LetDecl).Value.(*ast.Fun).Body.(*ast.Match)
	sw := m.DecisionTree.(*match.Switch)
	assert.Len(t, sw.Tests, 2)
	assert.Equal(t, &match.Fail{}, sw.Default)
}

func TestStructs(t *testing.T) {
	point := StructDecl("Point", nil, StructField("x", tNum, false), StructField("y", tNum, true))
	box := StructDecl("Box", []string{"T"}, StructField("value", TParam("T"), false))
	mod := mustInfer(t, point, box,
		LetDecl("p", Struct("Point", FieldValue("x", Num(1)), FieldValue("y", Num(2)))),
		LetDecl("px", Field(Var("p"), "x")),
		LetDecl("b", Struct("Box", FieldValue("value", Str("s")))),
		LetDecl("v", Field(Var("b"), "value")),
		FunDecl("originX", []string{"p"}, Match(Var("p"),
			Case(PStruct("Point", PField("x", PNum(0)), PField("y", nil)), Var("y")),
			Case(PAny(), Num(1)))),
	)
	expectType(t, mod, "p", "Point")
	expectType(t, mod, "px", "Num")
	expectType(t, mod, "b", "Box<Str>")
	expectType(t, mod, "v", "Str")
	expectType(t, mod, "originX", "Point -> Num")

	_, err := inferModule(t, NewContext(nil, nil), point, LetDecl("p", Struct("Point", FieldValue("x", Num(1)))))
	expectError(t, err, diag.CodeMissingField)

	_, err = inferModule(t, NewContext(nil, nil), point,
		LetDecl("p", Struct("Point", FieldValue("x", Num(1)), FieldValue("y", Num(2)), FieldValue("z", Num(3)))))
	expectError(t, err, diag.CodeExtraField)

	_, err = inferModule(t, NewContext(nil, nil), point,
		LetDecl("p", Struct("Point", FieldValue("x", Num(1)), FieldValue("y", Num(2)))),
		LetDecl("pz", Field(Var("p"), "z")))
	expectError(t, err, diag.CodeUndefinedMember)
}

func TestAssignments(t *testing.T) {
	point := StructDecl("Point", nil, StructField("x", tNum, false), StructField("y", tNum, true))
	newPoint := func() ast.Expr { return Struct("Point", FieldValue("x", Num(1)), FieldValue("y", Num(2))) }

	mod := mustInfer(t, point,
		FunDecl("counter", nil, Block(Var("n"),
			LetMut("n", Num(0)),
			While(Binary(Var("n"), "<", Num(10)), Block(nil, Assign(Var("n"), "+=", Num(1)))))),
		FunDecl("moveY", nil, Block(Var("p"),
			Let("p", newPoint()),
			Assign(Field(Var("p"), "y"), "=", Num(3)))),
	)
	expectType(t, mod, "counter", "() -> Num")
	expectType(t, mod, "moveY", "() -> Point")

	_, err := inferModule(t, NewContext(nil, nil),
		FunDecl("f", nil, Block(Var("x"), Let("x", Num(1)), Assign(Var("x"), "=", Num(2)))))
	expectError(t, err, diag.CodeImmutableAssign)

	_, err = inferModule(t, NewContext(nil, nil), point,
		FunDecl("f", nil, Block(nil, Let("p", newPoint()), Assign(Field(Var("p"), "x"), "=", Num(3)))))
	expectError(t, err, diag.CodeImmutableAssign)

	_, err = inferModule(t, NewContext(nil, nil),
		FunDecl("f", nil, Block(nil, LetMut("s", Str("a")), Assign(Var("s"), "=", Num(3)))))
	expectError(t, err, diag.CodeTypeMismatch)

	_, err = inferModule(t, NewContext(nil, nil),
		FunDecl("f", nil, Block(nil, Assign(Num(1), "=", Num(3)))))
	expectError(t, err, diag.CodeInvalidStatement)
}

func TestControlFlow(t *testing.T) {
	mod := mustInfer(t,
		FunDecl("count", nil, Block(nil, Yield(Num(1)), Yield(Num(2)))),
		FunDecl("sum", nil, Block(Var("total"),
			LetMut("total", Num(0)),
			For("x", Call(Var("count")), Block(nil, Assign(Var("total"), "+=", Var("x")))))),
		FunDecl("first", []string{"xs"}, Block(Num(0),
			For("x", Var("xs"), Block(nil, Return(Var("x")))))),
		FunDecl("loop", nil, Block(nil, While(Bool(true), Block(nil, Break())))),
	)
	expectType(t, mod, "count", "() -> Iterator<Num>")
	expectType(t, mod, "sum", "() -> Num")
	expectType(t, mod, "first", "Iterator<Num> -> Num")
	expectType(t, mod, "loop", "() -> ()")

	_, err := inferModule(t, NewContext(nil, nil), FunDecl("f", nil, Block(nil, Break())))
	expectError(t, err, diag.CodeInvalidStatement)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("x", Block(nil, Return(Num(1)))))
	expectError(t, err, diag.CodeInvalidStatement)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("x", If(Num(1), Unit(), nil)))
	expectError(t, err, diag.CodeTypeMismatch)
}

func TestExtensions(t *testing.T) {
	generic := &ast.ExtendDecl{
		Generics: []string{"T"},
		Subject:  TArray(TParam("T")),
		Members: []ast.ExtendMember{
			{Pub: true, Name: "first", Value: Func(nil, Call(Var("head"), Var("self")))},
			{Pub: true, Name: "len", Value: Func(nil, Num(0))},
		},
	}
	specific := &ast.ExtendDecl{
		Subject: TArray(tNum),
		Members: []ast.ExtendMember{
			{Pub: true, Name: "len", Value: Func(nil, Num(1))},
		},
	}
	native := &ast.DeclareExtension{
		Generics: []string{"T"},
		Subject:  TArray(TParam("T")),
		Members:  []ast.DeclareMember{{Name: "length", Ty: tNum}},
	}
	first := Field(Array(Num(1)), "first")
	numLen := Field(Array(Num(1)), "len")
	strLen := Field(Array(Str("s")), "len")
	length := Field(Array(Str("s")), "length")
	mod := mustInfer(t,
		DeclareVar("head", []string{"A"}, TArrow1(TArray(TParam("A")), TParam("A"))),
		generic, specific, native,
		LetDecl("x", Call(first)),
		LetDecl("n", Call(numLen)),
		LetDecl("s", Call(strLen)),
		LetDecl("l", length),
		LetDecl("f", Ext(TArray(tNum), "len")),
		LetDecl("g", Ext(TArray(TParam("_")), "first", tStr)),
	)
	expectType(t, mod, "x", "Num")
	expectType(t, mod, "n", "Num")
	expectType(t, mod, "s", "Num")
	expectType(t, mod, "l", "Num")
	expectType(t, mod, "f", "Array<Num> -> Num")
	expectType(t, mod, "g", "Array<Str> -> Str")

	assert.NotEmpty(t, generic.Members[0].UUID)
	assert.Equal(t, generic.Members[0].UUID, first.ExtensionUUID)
	assert.Equal(t, specific.Members[0].UUID, numLen.ExtensionUUID)
	assert.Equal(t, generic.Members[1].UUID, strLen.ExtensionUUID)
	assert.True(t, length.IsNative)
	assert.False(t, numLen.IsNative)

	_, err := inferModule(t, NewContext(nil, nil), native, LetDecl("l", Ext(TArray(tNum), "length")))
	expectError(t, err, diag.CodeUndefinedMember)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("l", Field(Num(1), "length")))
	expectError(t, err, diag.CodeNoExtension)
}

func TestTypeRules(t *testing.T) {
	mod := mustInfer(t,
		TypeRule(TCon("Vec", TParam("a")), TArray(TParam("a"))),
		DeclareVar("sum", nil, TArrow1(TCon("Vec", tNum), tNum)),
		LetDecl("s", Call(Var("sum"), Array(Num(1), Num(2)))),
		LetDecl("xs", &ast.Array{}),
	)
	expectType(t, mod, "sum", "Array<Num> -> Num")
	expectType(t, mod, "s", "Num")

	_, err := inferModule(t, NewContext(nil, nil), TypeRule(TCon("Bad"), TParam("a")))
	expectError(t, err, diag.CodeInvalidTypeRule)

	_, err = inferModule(t, NewContext(nil, nil), TypeRule(TParam("a"), tNum))
	expectError(t, err, diag.CodeInvalidTypeRule)

	cfg := config.Default()
	cfg.MaxReductionSteps = 50
	_, err = inferModule(t, NewContext(cfg, nil),
		TypeRule(TCon("Loop", TParam("a")), TCon("Loop", TParam("a"))),
		DeclareVar("l", nil, TCon("Loop", tNum)))
	expectError(t, err, diag.CodeNoNormalForm)
	assert.Equal(t, diag.Resource, diag.ClassOf(err))
	assert.Contains(t, err.Error(), "did not reach a normal form")
}

func TestTypeLevelFunctions(t *testing.T) {
	mod := mustInfer(t,
		// type Apply<a> = @app<@fun<x, Array<x>>, a>
		TypeRule(TCon("Apply", TParam("a")), TCon("@app", TCon("@fun", TParam("x"), TArray(TParam("x"))), TParam("a"))),
		// type Twice<a> = @let<x, (a, a), (x, x)>
		TypeRule(TCon("Twice", TParam("a")), TCon("@let", TParam("x"), TTuple(TParam("a"), TParam("a")), TTuple(TParam("x"), TParam("x")))),
		DeclareVar("v", nil, TCon("Apply", tNum)),
		DeclareVar("w", nil, TCon("Twice", tStr)),
	)
	expectType(t, mod, "v", "Array<Num>")
	expectType(t, mod, "w", "((Str, Str), (Str, Str))")

	// x is only bound within the @fun
	_, err := inferModule(t, NewContext(nil, nil),
		TypeRule(TCon("Leak", TParam("a")), TCon("@app", TCon("@fun", TParam("x"), TParam("a")), TParam("x"))))
	expectError(t, err, diag.CodeInvalidTypeRule)
}

func TestWildcardRulesAreFreshPerUse(t *testing.T) {
	mod := mustInfer(t,
		TypeRule(TCon("AnyArr"), TArray(TParam("_"))),
		&ast.LetDecl{Name: "a", Ann: TCon("AnyArr"), Value: Array(Num(1))},
		&ast.LetDecl{Name: "b", Ann: TCon("AnyArr"), Value: Array(Str("s"))},
	)
	expectType(t, mod, "a", "Array<Num>")
	expectType(t, mod, "b", "Array<Str>")
}

func TestMutableBindingsStayMonomorphic(t *testing.T) {
	mod := mustInfer(t,
		&ast.LetDecl{Mut: true, Name: "r", Value: Array()},
		FunDecl("get", nil, Var("r")),
		LetDecl("xs", Call(Var("get"))),
		FunDecl("push", nil, Block(nil, Assign(Var("r"), "=", Array(Num(1))))),
	)
	expectType(t, mod, "r", "Array<Num>")
	expectType(t, mod, "get", "() -> Array<Num>")
	expectType(t, mod, "xs", "Array<Num>")

	_, err := inferModule(t, NewContext(nil, nil),
		&ast.LetDecl{Mut: true, Name: "r", Value: Array()},
		FunDecl("get", nil, Var("r")),
		LetDecl("n", Array(Num(1))),
		FunDecl("bad", nil, Block(nil,
			Assign(Var("r"), "=", Var("n")),
			Assign(Var("r"), "=", Array(Str("s"))))),
	)
	expectError(t, err, diag.CodeTypeMismatch)
}

func TestModules(t *testing.T) {
	other := Module("Other", false,
		LetDecl("privateThing", Num(1)),
		PubLetDecl("publicThing", Str("s")),
		Module("Inner", false, PubLetDecl("deep", Num(2))),
	)
	mod := mustInfer(t, other, LetDecl("x", ModAccess([]string{"Other"}, "publicThing")))
	expectType(t, mod, "x", "Str")

	_, err := inferModule(t, NewContext(nil, nil), other, LetDecl("x", ModAccess([]string{"Other"}, "privateThing")))
	expectError(t, err, diag.CodePrivateAccess)
	assert.Contains(t, err.Error(), "is private")

	_, err = inferModule(t, NewContext(nil, nil), other, LetDecl("x", ModAccess([]string{"Other", "Inner"}, "deep")))
	expectError(t, err, diag.CodePrivateAccess)

	_, err = inferModule(t, NewContext(nil, nil), LetDecl("x", ModAccess([]string{"Nowhere"}, "x")))
	expectError(t, err, diag.CodeUndefinedModule)
}

func TestImports(t *testing.T) {
	point := StructDecl("Point", nil, StructField("x", tNum, false), StructField("y", tNum, false))
	ctx := NewContext(nil, nil)
	lib, err := inferModule(t, ctx,
		point,
		PubLetDecl("origin", Struct("Point", FieldValue("x", Num(0)), FieldValue("y", Num(0)))),
		LetDecl("secret", Num(1)),
		&ast.TypeDecl{Pub: true, Lhs: TCon("Coord"), Rhs: tNum},
	)
	require.NoError(t, err)

	ctx.resolver = ResolverFunc(func(_ context.Context, path string) (*Module, error) {
		if path != "lib/geo.poy" {
			return nil, errors.New("not found")
		}
		return lib, nil
	})
	mod, err := inferModule(t, ctx,
		&ast.ImportDecl{Path: "lib/geo.poy", Members: []string{"Point", "origin"}},
		LetDecl("o", Var("origin")),
		LetDecl("px", Field(Var("o"), "x")),
		LetDecl("q", ModAccess([]string{"geo"}, "origin")),
		DeclareVar("c", nil, TCon("Coord")),
		DeclareVar("p", nil, TCon("Point")),
	)
	require.NoError(t, err)
	expectType(t, mod, "o", "Point")
	expectType(t, mod, "px", "Num")
	expectType(t, mod, "q", "Point")
	expectType(t, mod, "c", "Num")
	expectType(t, mod, "p", "geo.Point")

	_, err = inferModule(t, ctx, &ast.ImportDecl{Path: "lib/geo.poy", Members: []string{"secret"}})
	expectError(t, err, diag.CodePrivateAccess)

	// a rejected member is never declared
	env := ctx.NewTypeEnv(nil)
	err = env.InferDecls(context.Background(), []ast.Decl{&ast.ImportDecl{Path: "lib/geo.poy", Members: []string{"secret"}}})
	expectError(t, err, diag.CodePrivateAccess)
	_, ok := env.Lookup("secret")
	assert.False(t, ok, "private member secret was declared")

	_, err = inferModule(t, ctx, &ast.ImportDecl{Path: "lib/geo.poy"}, LetDecl("x", Var("secret")))
	expectError(t, err, diag.CodeUndefinedVariable)

	_, err = inferModule(t, ctx, &ast.ImportDecl{Path: "lib/missing.poy"})
	expectError(t, err, diag.CodeImportFailed)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}

func TestInvariantViolationIsRecovered(t *testing.T) {
	// x(x) fails the occurs check
	_, err := inferModule(t, NewContext(nil, nil), FunDecl("f", []string{"x"}, Call(Var("x"), Var("x"))))
	if err == nil {
		t.Fatalf("expected an occurs check violation")
	}
	assert.Equal(t, diag.Internal, diag.ClassOf(err))
	t.Logf("Passed check for invariant violation: %v", err)
}

func TestInferExprWithPrelude(t *testing.T) {
	ctx := NewContext(nil, nil)
	prelude := ctx.NewTypeEnv(nil)
	a := ctx.VarTracker().NewGeneric("a")
	prelude.Declare("pair", TArrow1(a, TTuple(a, a)))
	ctx.Prelude = prelude

	env := ctx.NewTypeEnv(prelude)
	e := Call(Var("pair"), Num(1))
	ty, err := ctx.InferExpr(env, e)
	require.NoError(t, err)
	assert.Equal(t, "(Num, Num)", types.TypeString(ty))
	assert.Equal(t, "(Num, Num)", types.TypeString(e.Type()))

	ty, err = ctx.InferExpr(env, Call(Var("pair"), Str("s")))
	require.NoError(t, err)
	assert.Equal(t, "(Str, Str)", types.TypeString(ty))

	mod, err := inferModule(t, ctx, LetDecl("p", Call(Var("pair"), Bool(true))))
	require.NoError(t, err)
	expectType(t, mod, "p", "(Bool, Bool)")
}
