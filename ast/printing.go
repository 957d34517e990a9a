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
	"strconv"
	"strings"

	"github.com/nathsou/poy-sub000/types"
)

// ExprString returns a source-like representation of e.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprList(sb *strings.Builder, open, close byte, exprs []Expr) {
	sb.WriteByte(open)
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		exprString(sb, false, e)
	}
	sb.WriteByte(close)
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case *Literal:
		switch et.Kind {
		case UnitLit:
			sb.WriteString("()")
		case StrLit:
			sb.WriteString(strconv.Quote(et.Value))
		default:
			sb.WriteString(et.Value)
		}

	case *Variable:
		sb.WriteString(et.Name)
		typeArgs(sb, et.TypeArgs)

	case *Unary:
		sb.WriteString(et.Op)
		exprString(sb, true, et.Expr)

	case *Binary:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Lhs)
		sb.WriteByte(' ')
		sb.WriteString(et.Op)
		sb.WriteByte(' ')
		exprString(sb, true, et.Rhs)
		if simple {
			sb.WriteByte(')')
		}

	case *Block:
		sb.WriteString("{ ")
		for _, s := range et.Stmts {
			stmtString(sb, s)
			sb.WriteString("; ")
		}
		if et.Ret != nil {
			exprString(sb, false, et.Ret)
			sb.WriteByte(' ')
		}
		sb.WriteByte('}')

	case *Tuple:
		exprList(sb, '(', ')', et.Elems)

	case *Array:
		exprList(sb, '[', ']', et.Elems)

	case *Fun:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("fun")
		if len(et.Generics) > 0 {
			sb.WriteString("<" + strings.Join(et.Generics, ", ") + ">")
		}
		sb.WriteByte('(')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(PatternString(arg.Pat))
			if arg.Ann != nil {
				sb.WriteString(": ")
				sb.WriteString(types.TypeString(arg.Ann))
			}
		}
		sb.WriteByte(')')
		if et.Ret != nil {
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(et.Ret))
		}
		sb.WriteString(" -> ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *Call:
		exprString(sb, true, et.Fun)
		exprList(sb, '(', ')', et.Args)

	case *If:
		sb.WriteString("if ")
		exprString(sb, false, et.Cond)
		sb.WriteByte(' ')
		exprString(sb, false, et.Then)
		if et.Else != nil {
			sb.WriteString(" else ")
			exprString(sb, false, et.Else)
		}

	case *UseIn:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("use ")
		sb.WriteString(PatternString(et.Lhs))
		sb.WriteString(" = ")
		exprString(sb, false, et.Value)
		sb.WriteString(" in ")
		exprString(sb, false, et.Rhs)
		if simple {
			sb.WriteByte(')')
		}

	case *Match:
		sb.WriteString("match ")
		exprString(sb, false, et.Subject)
		sb.WriteString(" {")
		for i, c := range et.Cases {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(' ')
			sb.WriteString(PatternString(c.Pattern))
			sb.WriteString(" => ")
			exprString(sb, false, c.Body)
		}
		sb.WriteString(" }")

	case *FieldAccess:
		exprString(sb, true, et.Lhs)
		sb.WriteByte('.')
		sb.WriteString(et.Field)

	case *ExtensionAccess:
		sb.WriteString(types.TypeString(et.Subject))
		sb.WriteString("::")
		sb.WriteString(et.Member)
		typeArgs(sb, et.TypeArgs)

	case *ModuleAccess:
		sb.WriteString(strings.Join(append(append([]string{}, et.Path...), et.Member), "."))

	case *Struct:
		sb.WriteString(qualified(et.Path, et.Name))
		sb.WriteString(" {")
		for i, f := range et.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(' ')
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			exprString(sb, false, f.Value)
		}
		sb.WriteString(" }")

	case *TupleAccess:
		exprString(sb, true, et.Lhs)
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(et.Index))

	case *VariantShorthand:
		sb.WriteString(et.Enum)
		sb.WriteByte('.')
		sb.WriteString(et.Variant)
		if len(et.Args) > 0 {
			exprList(sb, '(', ')', et.Args)
		}
	}
}

func stmtString(sb *strings.Builder, s Stmt) {
	switch st := s.(type) {
	case *Let:
		sb.WriteString("let ")
		if st.Mut {
			sb.WriteString("mut ")
		}
		sb.WriteString(PatternString(st.Lhs))
		if st.Ann != nil {
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(st.Ann))
		}
		sb.WriteString(" = ")
		exprString(sb, false, st.Value)
	case *ExprStmt:
		exprString(sb, false, st.Expr)
	case *Assign:
		exprString(sb, false, st.Lhs)
		sb.WriteString(" " + st.Op + " ")
		exprString(sb, false, st.Rhs)
	case *While:
		sb.WriteString("while ")
		exprString(sb, false, st.Cond)
		sb.WriteByte(' ')
		exprString(sb, false, st.Body)
	case *For:
		sb.WriteString("for " + st.Name + " in ")
		exprString(sb, false, st.Iterator)
		sb.WriteByte(' ')
		exprString(sb, false, st.Body)
	case *Return:
		sb.WriteString("return")
		if st.Expr != nil {
			sb.WriteByte(' ')
			exprString(sb, false, st.Expr)
		}
	case *Yield:
		sb.WriteString("yield ")
		exprString(sb, false, st.Expr)
	case *Break:
		sb.WriteString("break")
	}
}

// PatternString returns a source-like representation of p.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, p)
	return sb.String()
}

func patternString(sb *strings.Builder, p Pattern) {
	patterns := func(args []Pattern) {
		sb.WriteByte('(')
		for i, arg := range args {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, arg)
		}
		sb.WriteByte(')')
	}
	switch pt := p.(type) {
	case *AnyPattern:
		sb.WriteByte('_')
	case *VariablePattern:
		if pt.Mut {
			sb.WriteString("mut ")
		}
		sb.WriteString(pt.Name)
	case *CtorPattern:
		if pt.Name == types.TupleName {
			patterns(pt.Args)
			return
		}
		sb.WriteString(pt.Name)
	case *VariantPattern:
		if pt.Enum != "" {
			sb.WriteString(pt.Enum)
			sb.WriteByte('.')
		}
		sb.WriteString(pt.Variant)
		if len(pt.Args) > 0 {
			patterns(pt.Args)
		}
	case *StructPattern:
		sb.WriteString(qualified(pt.Path, pt.Name))
		sb.WriteString(" {")
		for i, f := range pt.Fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(' ')
			sb.WriteString(f.Name)
			if f.Pat != nil {
				sb.WriteString(": ")
				patternString(sb, f.Pat)
			}
		}
		sb.WriteString(" }")
	}
}

func typeArgs(sb *strings.Builder, args []types.Type) {
	if len(args) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(types.TypeString(arg))
	}
	sb.WriteByte('>')
}

func qualified(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}
