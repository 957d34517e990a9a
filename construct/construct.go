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

package construct

import (
	"strconv"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/match"
	"github.com/nathsou/poy-sub000/types"
)

// Types

// Create a new type-variable with the given id and binding-level.
func TVar(id, level int) *types.Var {
	return types.NewVar(id, level)
}

// Named type-parameter: `T`, `_`
func TParam(name string) *types.Var {
	return types.NewParam(name)
}

// Type constructor application: `Num`, `Option<T>`
func TCon(name string, args ...types.Type) *types.Fun {
	return types.NewFun(name, args...)
}

// Array type: `Array<Num>`
func TArray(elem types.Type) *types.Fun {
	return types.Array(elem)
}

// Tuple type: `(Num, Str)`
func TTuple(elems ...types.Type) *types.Fun {
	return types.Tuple(elems...)
}

// Function type: `(Num, Num) -> Num`
func TArrow(args []types.Type, ret types.Type) *types.Fun {
	return types.Function(args, ret)
}

// Function type: `Num -> Num`
func TArrow1(arg types.Type, ret types.Type) *types.Fun {
	return types.Function([]types.Type{arg}, ret)
}

// Expressions

// Unit literal: `()`
func Unit() *ast.Literal { return &ast.Literal{Kind: ast.UnitLit, Value: "()"} }

// Numeric literal: `3`
func Num(n int) *ast.Literal { return &ast.Literal{Kind: ast.NumLit, Value: strconv.Itoa(n)} }

// String literal: `"s"`
func Str(s string) *ast.Literal { return &ast.Literal{Kind: ast.StrLit, Value: s} }

// Boolean literal: `true`
func Bool(b bool) *ast.Literal { return &ast.Literal{Kind: ast.BoolLit, Value: strconv.FormatBool(b)} }

// Variable: `x`, `id<Num>`
func Var(name string, typeArgs ...types.Type) *ast.Variable {
	return &ast.Variable{Name: name, TypeArgs: typeArgs}
}

func Unary(op string, e ast.Expr) *ast.Unary { return &ast.Unary{Op: op, Expr: e} }

func Binary(lhs ast.Expr, op string, rhs ast.Expr) *ast.Binary {
	return &ast.Binary{Lhs: lhs, Op: op, Rhs: rhs}
}

// Block: `{ stmts; ret }`. ret may be nil.
func Block(ret ast.Expr, stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts, Ret: ret}
}

func Tuple(elems ...ast.Expr) *ast.Tuple { return &ast.Tuple{Elems: elems} }

func Array(elems ...ast.Expr) *ast.Array { return &ast.Array{Elems: elems} }

// Function with un-annotated parameters: `fun(x, y) -> body`
func Func(args []string, body ast.Expr) *ast.Fun {
	fn := &ast.Fun{Body: body, Args: make([]ast.Argument, len(args))}
	for i, name := range args {
		fn.Args[i] = ast.Argument{Pat: PVar(name)}
	}
	return fn
}

// Generic function with annotated parameters: `fun<T>(x: T): T -> body`. Annotations may be nil.
func GenericFunc(generics []string, args []ast.Argument, ret types.Type, body ast.Expr) *ast.Fun {
	return &ast.Fun{Generics: generics, Args: args, Ret: ret, Body: body}
}

// Function parameter with an optional annotation
func Arg(name string, ann types.Type) ast.Argument {
	return ast.Argument{Pat: PVar(name), Ann: ann}
}

// Application: `f(x, y)`
func Call(fn ast.Expr, args ...ast.Expr) *ast.Call { return &ast.Call{Fun: fn, Args: args} }

// Conditional: `if c { then } else { els }`. els may be nil.
func If(cond, then, els ast.Expr) *ast.If { return &ast.If{Cond: cond, Then: then, Else: els} }

// Scoped binding: `use p = value in rhs`
func Use(lhs ast.Pattern, value, rhs ast.Expr) *ast.UseIn {
	return &ast.UseIn{Lhs: lhs, Value: value, Rhs: rhs}
}

// Pattern-matching expression
func Match(subject ast.Expr, cases ...ast.MatchCase) *ast.Match {
	return &ast.Match{Subject: subject, Cases: cases}
}

// Case within a match expression: `pattern => body`
func Case(p ast.Pattern, body ast.Expr) ast.MatchCase { return ast.MatchCase{Pattern: p, Body: body} }

// Field or extension access: `p.x`
func Field(lhs ast.Expr, name string) *ast.FieldAccess { return &ast.FieldAccess{Lhs: lhs, Field: name} }

// Explicit extension access: `Array<Num>::sum`
func Ext(subject types.Type, member string, typeArgs ...types.Type) *ast.ExtensionAccess {
	return &ast.ExtensionAccess{Subject: subject, Member: member, TypeArgs: typeArgs}
}

// Module member access: `A.B.member`
func ModAccess(path []string, member string) *ast.ModuleAccess {
	return &ast.ModuleAccess{Path: path, Member: member}
}

// Struct construction: `Point { x: 1, y: 2 }`
func Struct(name string, fields ...ast.StructField) *ast.Struct {
	return &ast.Struct{Name: name, Fields: fields}
}

// Field value within a struct construction
func FieldValue(name string, value ast.Expr) ast.StructField {
	return ast.StructField{Name: name, Value: value}
}

// Tuple projection: `t.0`
func Proj(lhs ast.Expr, index int) *ast.TupleAccess { return &ast.TupleAccess{Lhs: lhs, Index: index} }

// Variant construction: `Option.Some(x)`; enum may be empty.
func Variant(enum, variant string, args ...ast.Expr) *ast.VariantShorthand {
	return &ast.VariantShorthand{Enum: enum, Variant: variant, Args: args}
}

// Statements

// `let name = value`
func Let(name string, value ast.Expr) *ast.Let { return &ast.Let{Lhs: PVar(name), Value: value} }

// `let mut name = value`
func LetMut(name string, value ast.Expr) *ast.Let {
	return &ast.Let{Mut: true, Lhs: PVar(name), Value: value}
}

// `let p = value`
func LetPat(p ast.Pattern, value ast.Expr) *ast.Let { return &ast.Let{Lhs: p, Value: value} }

// Expression statement
func Do(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Expr: e} }

// `lhs op rhs` with op one of `=`, `+=`, ...
func Assign(lhs ast.Expr, op string, rhs ast.Expr) *ast.Assign {
	return &ast.Assign{Lhs: lhs, Op: op, Rhs: rhs}
}

func While(cond, body ast.Expr) *ast.While { return &ast.While{Cond: cond, Body: body} }

func For(name string, it, body ast.Expr) *ast.For { return &ast.For{Name: name, Iterator: it, Body: body} }

func Return(e ast.Expr) *ast.Return { return &ast.Return{Expr: e} }

func Yield(e ast.Expr) *ast.Yield { return &ast.Yield{Expr: e} }

func Break() *ast.Break { return &ast.Break{} }

// Patterns

func PAny() *ast.AnyPattern { return &ast.AnyPattern{} }

func PVar(name string) *ast.VariablePattern { return &ast.VariablePattern{Name: name} }

func PNum(n int) *ast.CtorPattern {
	return &ast.CtorPattern{Name: strconv.Itoa(n), Meta: match.MetaNum}
}

func PStr(s string) *ast.CtorPattern {
	return &ast.CtorPattern{Name: strconv.Quote(s), Meta: match.MetaStr}
}

func PBool(b bool) *ast.CtorPattern {
	return &ast.CtorPattern{Name: strconv.FormatBool(b), Meta: match.MetaBool}
}

func PUnit() *ast.CtorPattern { return &ast.CtorPattern{Name: "()", Meta: match.MetaUnit} }

func PTuple(elems ...ast.Pattern) *ast.CtorPattern {
	return &ast.CtorPattern{Name: types.TupleName, Args: elems, Meta: match.MetaTuple}
}

// Variant pattern: `Some(x)`; enum may be empty.
func PVariant(enum, variant string, args ...ast.Pattern) *ast.VariantPattern {
	return &ast.VariantPattern{Enum: enum, Variant: variant, Args: args}
}

// Struct pattern: `Point { x, y: 0 }`
func PStruct(name string, fields ...ast.StructPatternField) *ast.StructPattern {
	return &ast.StructPattern{Name: name, Fields: fields}
}

// Struct pattern field; a nil pattern binds the field name.
func PField(name string, p ast.Pattern) ast.StructPatternField {
	return ast.StructPatternField{Name: name, Pat: p}
}

// Declarations

// `let name = value`
func LetDecl(name string, value ast.Expr) *ast.LetDecl { return &ast.LetDecl{Name: name, Value: value} }

// `pub let name = value`
func PubLetDecl(name string, value ast.Expr) *ast.LetDecl {
	return &ast.LetDecl{Pub: true, Name: name, Value: value}
}

// `fun name(args) { body }`
func FunDecl(name string, args []string, body ast.Expr) *ast.LetDecl {
	return &ast.LetDecl{Name: name, Value: Func(args, body)}
}

// `type lhs = rhs`
func TypeRule(lhs, rhs types.Type) *ast.TypeDecl { return &ast.TypeDecl{Lhs: lhs, Rhs: rhs} }

// `declare name: ty`
func DeclareVar(name string, generics []string, ty types.Type) *ast.DeclareVar {
	return &ast.DeclareVar{Pub: true, Name: name, Generics: generics, Ty: ty}
}

// `enum name<generics> { variants }`
func Enum(name string, generics []string, variants ...ast.EnumVariant) *ast.EnumDecl {
	return &ast.EnumDecl{Pub: true, Name: name, Generics: generics, Variants: variants}
}

// Variant of an enum declaration
func EnumVariant(name string, args ...types.Type) ast.EnumVariant {
	return ast.EnumVariant{Name: name, Args: args}
}

// `struct name<generics> { fields }`
func StructDecl(name string, generics []string, fields ...ast.StructDeclField) *ast.StructDecl {
	return &ast.StructDecl{Pub: true, Name: name, Generics: generics, Fields: fields}
}

// Field of a struct declaration
func StructField(name string, ty types.Type, mut bool) ast.StructDeclField {
	return ast.StructDeclField{Mut: mut, Name: name, Ty: ty}
}

// `module name { decls }`
func Module(name string, pub bool, decls ...ast.Decl) *ast.ModuleDecl {
	return &ast.ModuleDecl{Pub: pub, Name: name, Decls: decls}
}
