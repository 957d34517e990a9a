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

package trs

import (
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

func checkArity(f *types.Fun, arity int, atLeast bool) error {
	n := len(f.Args)
	if n == arity || (atLeast && n > arity) {
		return nil
	}
	if atLeast {
		return diag.Errorf(diag.CodeArityMismatch, "%s expects at least %d arguments, got %d", f.Name, arity, n)
	}
	return diag.Errorf(diag.CodeArityMismatch, "%s expects %d arguments, got %d", f.Name, arity, n)
}

// external reduces a built-in type-level function. ok is false when the term is not reducible now,
// in which case the literal term is kept.
func (n *Normalizer) external(f *types.Fun) (reduced types.Type, ok bool, err error) {
	switch f.Name {
	case "@eq":
		if err := checkArity(f, 2, false); err != nil {
			return nil, false, err
		}
		a, err := n.normalize(f.Args[0])
		if err != nil {
			return nil, false, err
		}
		b, err := n.normalize(f.Args[1])
		if err != nil {
			return nil, false, err
		}
		if types.Eq(a, b) {
			return types.True, true, nil
		}
		return types.False, true, nil

	case "@if":
		if err := checkArity(f, 3, false); err != nil {
			return nil, false, err
		}
		cond, err := n.normalize(f.Args[0])
		if err != nil {
			return nil, false, err
		}
		switch {
		case types.IsFun(cond, types.TrueName):
			return f.Args[1], true, nil
		case types.IsFun(cond, types.FalseName):
			return f.Args[2], true, nil
		}
		return nil, false, nil

	case "@fun":
		return nil, false, checkArity(f, 2, true)

	case "@thunk":
		return nil, false, checkArity(f, 1, false)

	case "@app":
		if err := checkArity(f, 1, true); err != nil {
			return nil, false, err
		}
		callee, err := n.normalize(f.Args[0])
		if err != nil {
			return nil, false, err
		}
		args := f.Args[1:]
		lambda, isFun := types.RealType(callee).(*types.Fun)
		if !isFun {
			return nil, false, nil
		}
		if lambda.Name != "@fun" {
			return &types.Fun{Name: lambda.Name, Args: args, Path: lambda.Path}, true, nil
		}
		params, body := lambda.Args[:len(lambda.Args)-1], lambda.Args[len(lambda.Args)-1]
		if len(params) != len(args) {
			return nil, false, diag.Errorf(diag.CodeArityMismatch, "type-level function %s expects %d arguments, got %d",
				types.TypeString(lambda), len(params), len(args))
		}
		subst := make(types.Subst, len(params))
		for i, param := range params {
			pv, ok := types.RealType(param).(*types.Var)
			if !ok || !pv.IsUnboundVar() {
				return nil, false, diag.Errorf(diag.CodeInvalidTypeRule, "parameters of type-level functions must be type-variables, got %s",
					types.TypeString(param))
			}
			subst[pv.Id()] = args[i]
		}
		return types.Substitute(body, subst), true, nil

	case "@symb":
		if err := checkArity(f, 1, false); err != nil {
			return nil, false, err
		}
		arg, err := n.normalize(f.Args[0])
		if err != nil {
			return nil, false, err
		}
		if sym, ok := types.RealType(arg).(*types.Fun); ok {
			return &types.Fun{Name: sym.Name, Path: sym.Path}, true, nil
		}
		return nil, false, nil

	case "@args":
		if err := checkArity(f, 1, false); err != nil {
			return nil, false, err
		}
		arg, err := n.normalize(f.Args[0])
		if err != nil {
			return nil, false, err
		}
		if app, ok := types.RealType(arg).(*types.Fun); ok {
			return types.List(app.Args), true, nil
		}
		return nil, false, nil

	case "@let":
		if err := checkArity(f, 3, false); err != nil {
			return nil, false, err
		}
		x, ok := types.RealType(f.Args[0]).(*types.Var)
		if !ok || !x.IsUnboundVar() {
			return nil, false, diag.Errorf(diag.CodeInvalidTypeRule, "@let expects a type-variable, got %s", types.TypeString(f.Args[0]))
		}
		value, err := n.normalize(f.Args[1])
		if err != nil {
			return nil, false, err
		}
		return types.Substitute(f.Args[2], types.Subst{x.Id(): value}), true, nil

	case "@typeOf":
		if err := checkArity(f, 1, false); err != nil {
			return nil, false, err
		}
		sym, ok := types.RealType(f.Args[0]).(*types.Fun)
		if !ok {
			return nil, false, nil
		}
		if n.Env != nil {
			if ty, ok := n.Env.LookupVarType(sym.Name); ok {
				return ty, true, nil
			}
		}
		return nil, false, diag.Errorf(diag.CodeUndefinedVariable, "@typeOf: variable %s not found", sym.Name)
	}
	return nil, false, diag.Errorf(diag.CodeUnknownExternal, "unknown type-level function %s", f.Name)
}
