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
	"strings"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

func (env *TypeEnv) inferStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Let:
		return env.inferLet(s)

	case *ast.ExprStmt:
		_, err := env.inferExpr(s.Expr)
		return err

	case *ast.Assign:
		return env.inferAssign(s)

	case *ast.While:
		cond, err := env.inferExpr(s.Cond)
		if err != nil {
			return err
		}
		if err := env.unify(cond, types.Bool); err != nil {
			return err
		}
		body := env.child()
		body.loopDepth++
		_, err = body.inferExpr(s.Body)
		return err

	case *ast.For:
		it, err := env.inferExpr(s.Iterator)
		if err != nil {
			return err
		}
		elem := env.newVar()
		if types.IsFun(it, types.ArrayName) {
			err = env.unify(it, types.Array(elem))
		} else {
			err = env.unify(it, types.Iterator(elem))
		}
		if err != nil {
			return err
		}
		body := env.child()
		body.loopDepth++
		body.variables.Declare(s.Name, &VarInfo{Ty: elem})
		_, err = body.inferExpr(s.Body)
		return err

	case *ast.Return:
		if env.fn == nil {
			return diag.Errorf(diag.CodeInvalidStatement, "return outside of a function")
		}
		if s.Expr == nil {
			if env.fn.isIterator {
				return nil
			}
			return env.unify(env.fn.ret, types.Unit)
		}
		t, err := env.inferExpr(s.Expr)
		if err != nil {
			return err
		}
		return env.unify(env.fn.ret, t)

	case *ast.Yield:
		if env.fn == nil {
			return diag.Errorf(diag.CodeInvalidStatement, "yield outside of a function")
		}
		t, err := env.inferExpr(s.Expr)
		if err != nil {
			return err
		}
		env.fn.isIterator = true
		return env.unify(env.fn.ret, t)

	case *ast.Break:
		if env.loopDepth == 0 {
			return diag.Errorf(diag.CodeInvalidStatement, "break outside of a loop")
		}
		return nil
	}
	diag.Violation("unhandled statement %T", s)
	return nil
}

// Only immutable variable bindings are generalized (value restriction).
func (env *TypeEnv) inferLet(s *ast.Let) error {
	if vp, ok := s.Lhs.(*ast.VariablePattern); ok && !s.Mut && !vp.Mut {
		t, generics, err := env.inferBinding(vp.Name, s.Value, s.Ann, true)
		if err != nil {
			return err
		}
		vp.SetType(t)
		env.variables.Declare(vp.Name, &VarInfo{Ty: t, Generics: generics})
		return nil
	}

	t, _, err := env.inferBinding("", s.Value, s.Ann, false)
	if err != nil {
		return err
	}
	vars := make(map[string]*VarInfo)
	if err := env.inferPattern(s.Lhs, t, vars); err != nil {
		return err
	}
	if s.Mut {
		for _, info := range vars {
			info.Mut = true
		}
	}
	env.declareAll(vars)
	return nil
}

func (env *TypeEnv) inferAssign(s *ast.Assign) error {
	lhs, err := env.assignable(s.Lhs)
	if err != nil {
		return err
	}
	rhs, err := env.inferExpr(s.Rhs)
	if err != nil {
		return err
	}
	if s.Op == "=" {
		return env.unify(lhs, rhs)
	}
	op := strings.TrimSuffix(s.Op, "=")
	ret, err := env.applyOperator(env.ctx.ops.binary, op, lhs, rhs)
	if err != nil {
		return err
	}
	return env.unify(lhs, ret)
}

// assignable infers the type of an assignment target, which must be a mutable variable or a mutable
// struct field.
func (env *TypeEnv) assignable(lhs ast.Expr) (types.Type, error) {
	switch l := lhs.(type) {
	case *ast.Variable:
		info, ok := env.variables.Lookup(l.Name)
		if !ok {
			return nil, diag.Errorf(diag.CodeUndefinedVariable, "undefined variable %s", l.Name)
		}
		if !info.Mut {
			return nil, diag.Errorf(diag.CodeImmutableAssign, "cannot assign to immutable variable %s", l.Name)
		}
		return env.inferExpr(l)

	case *ast.FieldAccess:
		t, err := env.inferExpr(l)
		if err != nil {
			return nil, err
		}
		if l.IsExtension() {
			return nil, diag.Errorf(diag.CodeInvalidStatement, "cannot assign to extension member %s", l.Field)
		}
		st := types.RealType(l.Lhs.Type()).(*types.Fun)
		info, _ := env.structs.Lookup(st.Name)
		if field, _, _ := info.Decl.Field(l.Field); !field.Mut {
			return nil, diag.Errorf(diag.CodeImmutableAssign, "field %s of struct %s is immutable", l.Field, st.Name)
		}
		return t, nil
	}
	return nil, diag.Errorf(diag.CodeInvalidStatement, "cannot assign to %s", ast.ExprString(lhs))
}
