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

// WalkExpr calls f for e and every expression nested within e (including expressions within
// statements), in depth-first order.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Variable, *Literal, *ExtensionAccess, *ModuleAccess:
		f(e)

	case *Unary:
		f(e)
		WalkExpr(e.Expr, f)

	case *Binary:
		f(e)
		WalkExpr(e.Lhs, f)
		WalkExpr(e.Rhs, f)

	case *Block:
		f(e)
		for _, s := range e.Stmts {
			WalkStmt(s, f)
		}
		WalkExpr(e.Ret, f)

	case *Tuple:
		f(e)
		for _, elem := range e.Elems {
			WalkExpr(elem, f)
		}

	case *Array:
		f(e)
		for _, elem := range e.Elems {
			WalkExpr(elem, f)
		}

	case *Fun:
		f(e)
		WalkExpr(e.Body, f)

	case *Call:
		f(e)
		WalkExpr(e.Fun, f)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case *If:
		f(e)
		WalkExpr(e.Cond, f)
		WalkExpr(e.Then, f)
		WalkExpr(e.Else, f)

	case *UseIn:
		f(e)
		WalkExpr(e.Value, f)
		WalkExpr(e.Rhs, f)

	case *Match:
		f(e)
		WalkExpr(e.Subject, f)
		for _, c := range e.Cases {
			WalkExpr(c.Body, f)
		}

	case *FieldAccess:
		f(e)
		WalkExpr(e.Lhs, f)

	case *Struct:
		f(e)
		for _, field := range e.Fields {
			WalkExpr(field.Value, f)
		}

	case *TupleAccess:
		f(e)
		WalkExpr(e.Lhs, f)

	case *VariantShorthand:
		f(e)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// WalkStmt calls f for every expression within s.
func WalkStmt(s Stmt, f func(Expr)) {
	switch s := s.(type) {
	case *Let:
		WalkExpr(s.Value, f)
	case *ExprStmt:
		WalkExpr(s.Expr, f)
	case *Assign:
		WalkExpr(s.Lhs, f)
		WalkExpr(s.Rhs, f)
	case *While:
		WalkExpr(s.Cond, f)
		WalkExpr(s.Body, f)
	case *For:
		WalkExpr(s.Iterator, f)
		WalkExpr(s.Body, f)
	case *Return:
		WalkExpr(s.Expr, f)
	case *Yield:
		WalkExpr(s.Expr, f)
	case *Break, nil:
	default:
		panic("unknown statement type: " + s.StmtName())
	}
}

// WalkPattern calls f for p and every pattern nested within p.
func WalkPattern(p Pattern, f func(Pattern)) {
	switch p := p.(type) {
	case *AnyPattern, *VariablePattern:
		f(p)
	case *CtorPattern:
		f(p)
		for _, arg := range p.Args {
			WalkPattern(arg, f)
		}
	case *VariantPattern:
		f(p)
		for _, arg := range p.Args {
			WalkPattern(arg, f)
		}
	case *StructPattern:
		f(p)
		for _, field := range p.Fields {
			if field.Pat != nil {
				WalkPattern(field.Pat, f)
			}
		}
	case nil:
	default:
		panic("unknown pattern type: " + p.PatternName())
	}
}
