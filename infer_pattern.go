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

// inferPattern unifies the type of p with subject, adding the variables bound by p to vars.
func (env *TypeEnv) inferPattern(p ast.Pattern, subject types.Type, vars map[string]*VarInfo) error {
	p.SetType(subject)
	switch p := p.(type) {
	case *ast.AnyPattern:
		return nil

	case *ast.VariablePattern:
		return bindPatternVar(vars, p.Name, &VarInfo{Ty: subject, Mut: p.Mut})

	case *ast.CtorPattern:
		switch p.Meta {
		case match.MetaUnit:
			return env.unify(subject, types.Unit)
		case match.MetaBool:
			return env.unify(subject, types.Bool)
		case match.MetaNum:
			return env.unify(subject, types.Num)
		case match.MetaStr:
			return env.unify(subject, types.Str)
		case match.MetaTuple:
			elems := env.ctx.vt.NewList(env.letLevel, len(p.Args))
			if err := env.unify(subject, types.Tuple(elems...)); err != nil {
				return err
			}
			for i, arg := range p.Args {
				if err := env.inferPattern(arg, elems[i], vars); err != nil {
					return err
				}
			}
			return nil
		}
		return diag.Errorf(diag.CodeInvalidPattern, "invalid %s pattern %s", p.Meta, ast.PatternString(p))

	case *ast.VariantPattern:
		info, idx, err := env.lookupVariant(p.Enum, p.Variant)
		if err != nil {
			return err
		}
		decl := info.Decl
		params := info.Variants[idx]
		if len(params) != len(p.Args) {
			return diag.Errorf(diag.CodeArityMismatch, "variant %s.%s expects %d arguments, got %d", decl.Name, p.Variant, len(params), len(p.Args))
		}
		args := env.ctx.vt.NewList(env.letLevel, len(decl.Generics))
		if err := env.unify(subject, &types.Fun{Name: decl.Name, Args: args, Path: info.Path}); err != nil {
			return err
		}
		for i, arg := range p.Args {
			if err := env.inferPattern(arg, env.instantiateWith(params[i], decl.Generics, args), vars); err != nil {
				return err
			}
		}
		p.ResolvedEnum = decl
		return nil

	case *ast.StructPattern:
		info, err := env.lookupStruct(p.Path, p.Name)
		if err != nil {
			return err
		}
		decl := info.Decl
		args := env.ctx.vt.NewList(env.letLevel, len(decl.Generics))
		if err := env.unify(subject, &types.Fun{Name: decl.Name, Args: args, Path: info.Path}); err != nil {
			return err
		}
		for _, f := range p.Fields {
			_, idx, ok := decl.Field(f.Name)
			if !ok {
				return diag.Errorf(diag.CodeExtraField, "struct %s has no field %s", decl.Name, f.Name)
			}
			ft := env.instantiateWith(info.Fields[idx], decl.Generics, args)
			if f.Pat == nil {
				if err := bindPatternVar(vars, f.Name, &VarInfo{Ty: ft}); err != nil {
					return err
				}
				continue
			}
			if err := env.inferPattern(f.Pat, ft, vars); err != nil {
				return err
			}
		}
		return nil
	}
	diag.Violation("unhandled pattern %T", p)
	return nil
}

func bindPatternVar(vars map[string]*VarInfo, name string, info *VarInfo) error {
	if _, dup := vars[name]; dup {
		return diag.Errorf(diag.CodeDuplicateBinding, "%s is bound more than once in the same pattern", name)
	}
	vars[name] = info
	return nil
}
