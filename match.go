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
	"github.com/nathsou/poy-sub000/match"
	"github.com/nathsou/poy-sub000/types"
)

// inferMatch infers the cases of a match expression, then compiles its patterns into a decision
// tree stored on the expression.
func (env *TypeEnv) inferMatch(e *ast.Match) (types.Type, error) {
	subject, err := env.inferExpr(e.Subject)
	if err != nil {
		return nil, err
	}
	ret := env.newVar()
	for _, c := range e.Cases {
		cenv := env.child()
		vars := make(map[string]*VarInfo)
		if err := cenv.inferPattern(c.Pattern, subject, vars); err != nil {
			return nil, err
		}
		cenv.declareAll(vars)
		body, err := cenv.inferExpr(c.Body)
		if err != nil {
			return nil, err
		}
		if err := env.unify(ret, body); err != nil {
			return nil, err
		}
	}

	rows := make([][]match.Pattern, len(e.Cases))
	for i, c := range e.Cases {
		p, err := env.simplifyPattern(c.Pattern)
		if err != nil {
			return nil, err
		}
		rows[i] = []match.Pattern{p}
	}
	e.DecisionTree = match.Compile(match.NewClauseMatrix(rows), []match.Occurrence{{}}, match.Options{})
	match.Dump(e.DecisionTree)
	if env.ctx.cfg.EnforceExhaustiveMatch && match.HasFail(e.DecisionTree) {
		return nil, diag.Errorf(diag.CodeNonExhaustiveMatch, "non-exhaustive match on %s of type %s",
			ast.ExprString(e.Subject), types.TypeString(subject))
	}
	return ret, nil
}

// simplifyPattern lowers an inferred pattern to the constructor patterns of the decision-tree
// compiler. Struct patterns list every field of the struct in declaration order.
func (env *TypeEnv) simplifyPattern(p ast.Pattern) (match.Pattern, error) {
	switch p := p.(type) {
	case *ast.AnyPattern, *ast.VariablePattern:
		return match.Wildcard, nil

	case *ast.CtorPattern:
		args, err := env.simplifyPatterns(p.Args)
		if err != nil {
			return nil, err
		}
		return &match.Ctor{Name: p.Name, Args: args, Meta: p.Meta}, nil

	case *ast.VariantPattern:
		if p.ResolvedEnum == nil {
			diag.Violation("variant pattern %s was not resolved", p.Variant)
		}
		args, err := env.simplifyPatterns(p.Args)
		if err != nil {
			return nil, err
		}
		return &match.Ctor{Name: p.Variant, Args: args, Meta: match.MetaVariant, Signature: p.ResolvedEnum.VariantNames()}, nil

	case *ast.StructPattern:
		info, err := env.lookupStruct(p.Path, p.Name)
		if err != nil {
			return nil, err
		}
		args := make([]match.Pattern, len(info.Decl.Fields))
		for i := range args {
			args[i] = match.Wildcard
		}
		for _, f := range p.Fields {
			if f.Pat == nil {
				continue
			}
			_, idx, _ := info.Decl.Field(f.Name)
			if args[idx], err = env.simplifyPattern(f.Pat); err != nil {
				return nil, err
			}
		}
		return &match.Ctor{Name: info.Decl.Name, Args: args, Meta: match.MetaStruct}, nil
	}
	diag.Violation("unhandled pattern %T", p)
	return nil, nil
}

func (env *TypeEnv) simplifyPatterns(ps []ast.Pattern) ([]match.Pattern, error) {
	args := make([]match.Pattern, len(ps))
	for i, p := range ps {
		var err error
		if args[i], err = env.simplifyPattern(p); err != nil {
			return nil, err
		}
	}
	return args, nil
}
