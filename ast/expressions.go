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

package ast

import (
	"github.com/nathsou/poy-sub000/match"
	"github.com/nathsou/poy-sub000/types"
)

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Type returns an inferred type of an expression. Expression types are only available after type-inference.
	Type() types.Type
	// Assign a type to the expression. Type assignments should occur indirectly, during inference.
	SetType(t types.Type)
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Array)(nil)
	_ Expr = (*Fun)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*UseIn)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*FieldAccess)(nil)
	_ Expr = (*ExtensionAccess)(nil)
	_ Expr = (*ModuleAccess)(nil)
	_ Expr = (*Struct)(nil)
	_ Expr = (*TupleAccess)(nil)
	_ Expr = (*VariantShorthand)(nil)
)

// LiteralKind identifies the primitive type of a literal.
type LiteralKind uint8

const (
	UnitLit LiteralKind = iota
	BoolLit
	NumLit
	StrLit
)

// Literal value: `()`, `true`, `3.14`, `"hello"`
type Literal struct {
	Kind LiteralKind
	// Syntax of the literal value, printed when the literal is printed.
	Value    string
	inferred types.Type
}

// "Literal"
func (e *Literal) ExprName() string { return "Literal" }

// Get the inferred (or assigned) type of e.
func (e *Literal) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Literal) SetType(t types.Type) { e.inferred = t }

// Variable: `x`, `id<Num>`
type Variable struct {
	Name string
	// Explicit type arguments, matched against the generics of the binding
	TypeArgs []types.Type
	inferred types.Type
}

// "Variable"
func (e *Variable) ExprName() string { return "Variable" }

// Get the inferred (or assigned) type of e.
func (e *Variable) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Variable) SetType(t types.Type) { e.inferred = t }

// Unary operation: `-x`, `!b`
type Unary struct {
	Op       string
	Expr     Expr
	inferred types.Type
}

// "Unary"
func (e *Unary) ExprName() string { return "Unary" }

// Get the inferred (or assigned) type of e.
func (e *Unary) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Unary) SetType(t types.Type) { e.inferred = t }

// Binary operation: `a + b`
type Binary struct {
	Lhs      Expr
	Op       string
	Rhs      Expr
	inferred types.Type
}

// "Binary"
func (e *Binary) ExprName() string { return "Binary" }

// Get the inferred (or assigned) type of e.
func (e *Binary) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Binary) SetType(t types.Type) { e.inferred = t }

// Block: `{ stmt; stmt; ret }`. A block without a trailing expression has type Unit.
type Block struct {
	Stmts    []Stmt
	Ret      Expr
	inferred types.Type
}

// "Block"
func (e *Block) ExprName() string { return "Block" }

// Get the inferred (or assigned) type of e.
func (e *Block) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Block) SetType(t types.Type) { e.inferred = t }

// Tuple: `(a, b)`
type Tuple struct {
	Elems    []Expr
	inferred types.Type
}

// "Tuple"
func (e *Tuple) ExprName() string { return "Tuple" }

// Get the inferred (or assigned) type of e.
func (e *Tuple) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Tuple) SetType(t types.Type) { e.inferred = t }

// Homogeneous array: `[a, b, c]`
type Array struct {
	Elems    []Expr
	inferred types.Type
}

// "Array"
func (e *Array) ExprName() string { return "Array" }

// Get the inferred (or assigned) type of e.
func (e *Array) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Array) SetType(t types.Type) { e.inferred = t }

// Abstraction: `fun<T>(x: T, y) -> T { body }`
type Fun struct {
	Generics []string
	Args     []Argument
	// Optional return type annotation
	Ret  types.Type
	Body Expr
	// IsIterator is set during inference when the body yields.
	IsIterator bool
	inferred   types.Type
}

// Function parameter: a pattern with an optional type annotation
type Argument struct {
	Pat Pattern
	Ann types.Type
}

// "Fun"
func (e *Fun) ExprName() string { return "Fun" }

// Get the inferred (or assigned) type of e.
func (e *Fun) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Fun) SetType(t types.Type) { e.inferred = t }

// Application: `f(x)`
type Call struct {
	Fun      Expr
	Args     []Expr
	inferred types.Type
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Get the inferred (or assigned) type of e.
func (e *Call) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Call) SetType(t types.Type) { e.inferred = t }

// Conditional: `if c { a } else { b }`. Without an else branch, Then must have type Unit.
type If struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	inferred types.Type
}

// "If"
func (e *If) ExprName() string { return "If" }

// Get the inferred (or assigned) type of e.
func (e *If) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *If) SetType(t types.Type) { e.inferred = t }

// Scoped binding: `use (a, b) = value in rhs`
type UseIn struct {
	Lhs      Pattern
	Ann      types.Type
	Value    Expr
	Rhs      Expr
	inferred types.Type
}

// "UseIn"
func (e *UseIn) ExprName() string { return "UseIn" }

// Get the inferred (or assigned) type of e.
func (e *UseIn) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *UseIn) SetType(t types.Type) { e.inferred = t }

// Pattern-matching expression:
//
//	match e {
//	    Some(x) => expr1,
//	    None => expr2,
//	}
type Match struct {
	Subject Expr
	Cases   []MatchCase
	// DecisionTree is compiled during inference. Leaf actions index Cases.
	DecisionTree match.DecisionTree
	inferred     types.Type
}

// Case within Match: `pattern => body`
type MatchCase struct {
	Pattern Pattern
	Body    Expr
}

// "Match"
func (e *Match) ExprName() string { return "Match" }

// Get the inferred (or assigned) type of e.
func (e *Match) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Match) SetType(t types.Type) { e.inferred = t }

// Field or extension member access: `p.x`, `xs.len`
type FieldAccess struct {
	Lhs   Expr
	Field string
	// Resolved during inference when the member is an extension:
	ExtensionUUID string
	// The extension is declared (implemented natively)
	IsNative bool
	// The extension member does not take the receiver as its first argument
	IsStatic bool
	inferred types.Type
}

// "FieldAccess"
func (e *FieldAccess) ExprName() string { return "FieldAccess" }

// Get the inferred (or assigned) type of e.
func (e *FieldAccess) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *FieldAccess) SetType(t types.Type) { e.inferred = t }

// IsExtension reports whether e was resolved to an extension member.
func (e *FieldAccess) IsExtension() bool { return e.ExtensionUUID != "" }

// Explicit extension member access: `Array<Num>::sum`
type ExtensionAccess struct {
	Subject       types.Type
	Member        string
	TypeArgs      []types.Type
	ExtensionUUID string
	inferred      types.Type
}

// "ExtensionAccess"
func (e *ExtensionAccess) ExprName() string { return "ExtensionAccess" }

// Get the inferred (or assigned) type of e.
func (e *ExtensionAccess) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *ExtensionAccess) SetType(t types.Type) { e.inferred = t }

// Module member access: `A.B.member`
type ModuleAccess struct {
	Path     []string
	Member   string
	inferred types.Type
}

// "ModuleAccess"
func (e *ModuleAccess) ExprName() string { return "ModuleAccess" }

// Get the inferred (or assigned) type of e.
func (e *ModuleAccess) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *ModuleAccess) SetType(t types.Type) { e.inferred = t }

// Struct construction: `Point { x: 1, y: 2 }`, `Geo.Point { x: 1, y: 2 }`
type Struct struct {
	Path     []string
	Name     string
	Fields   []StructField
	inferred types.Type
}

// Field value within a Struct construction
type StructField struct {
	Name  string
	Value Expr
}

// "Struct"
func (e *Struct) ExprName() string { return "Struct" }

// Get the inferred (or assigned) type of e.
func (e *Struct) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *Struct) SetType(t types.Type) { e.inferred = t }

// Tuple projection: `t.0`
type TupleAccess struct {
	Lhs      Expr
	Index    int
	inferred types.Type
}

// "TupleAccess"
func (e *TupleAccess) ExprName() string { return "TupleAccess" }

// Get the inferred (or assigned) type of e.
func (e *TupleAccess) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *TupleAccess) SetType(t types.Type) { e.inferred = t }

// Enum variant construction: `Option.Some(1)`, or `.Some(1)` when the variant name is unique among
// the visible enums.
type VariantShorthand struct {
	// Optional enum name
	Enum    string
	Variant string
	Args    []Expr
	// ResolvedEnum is set during inference.
	ResolvedEnum *EnumDecl
	inferred     types.Type
}

// "VariantShorthand"
func (e *VariantShorthand) ExprName() string { return "VariantShorthand" }

// Get the inferred (or assigned) type of e.
func (e *VariantShorthand) Type() types.Type { return realType(e.inferred) }

// Assign a type to e. Type assignments should occur indirectly, during inference.
func (e *VariantShorthand) SetType(t types.Type) { e.inferred = t }

func realType(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return types.RealType(t)
}
