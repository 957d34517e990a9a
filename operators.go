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
	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

// Type schemes of the built-in operators. Generic schemes are instantiated per use.
type operators struct {
	unary  map[string]types.Type
	binary map[string]types.Type
}

func newOperators(vt *types.VarTracker) operators {
	fn := func(ret types.Type, args ...types.Type) types.Type { return types.Function(args, ret) }
	num := types.Num
	arith := fn(num, num, num)
	cmp := fn(types.Bool, num, num)
	logic := fn(types.Bool, types.Bool, types.Bool)
	a := vt.NewGeneric("a")
	eq := fn(types.Bool, a, a)

	return operators{
		unary: map[string]types.Type{
			"-": fn(num, num),
			"!": fn(types.Bool, types.Bool),
		},
		binary: map[string]types.Type{
			"+": arith, "-": arith, "*": arith, "/": arith, "%": arith, "**": arith,
			"&": arith, "|": arith, "^": arith, "<<": arith, ">>": arith,
			"++": fn(types.Str, types.Str, types.Str),
			"<":  cmp, "<=": cmp, ">": cmp, ">=": cmp,
			"==": eq, "!=": eq,
			"&&": logic, "||": logic,
		},
	}
}

func (env *TypeEnv) operator(table map[string]types.Type, op string) (types.Type, error) {
	scheme, ok := table[op]
	if !ok {
		return nil, diag.Errorf(diag.CodeUnknownOperator, "unknown operator %s", op)
	}
	t, _ := types.Instantiate(scheme, env.letLevel, nil, &env.ctx.vt)
	return t, nil
}

// applyOperator unifies an operator's instantiated scheme with the operand types.
func (env *TypeEnv) applyOperator(table map[string]types.Type, op string, operands ...types.Type) (types.Type, error) {
	ft, err := env.operator(table, op)
	if err != nil {
		return nil, err
	}
	ret := env.newVar()
	if err := env.unify(ft, types.Function(operands, ret)); err != nil {
		return nil, err
	}
	return ret, nil
}

func (env *TypeEnv) inferUnary(e *ast.Unary) (types.Type, error) {
	t, err := env.inferExpr(e.Expr)
	if err != nil {
		return nil, err
	}
	return env.applyOperator(env.ctx.ops.unary, e.Op, t)
}

func (env *TypeEnv) inferBinary(e *ast.Binary) (types.Type, error) {
	lhs, err := env.inferExpr(e.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := env.inferExpr(e.Rhs)
	if err != nil {
		return nil, err
	}
	return env.applyOperator(env.ctx.ops.binary, e.Op, lhs, rhs)
}
