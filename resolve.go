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
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/trs"
	"github.com/nathsou/poy-sub000/types"
)

// ResolveType resolves the named parameters of a syntactic type through the active generics, then
// reduces the result with the visible type-rules.
func (env *TypeEnv) ResolveType(t types.Type) (types.Type, error) {
	resolved, err := env.resolveParams(t)
	if err != nil {
		return nil, err
	}
	return env.Normalize(resolved)
}

// resolveParams resolves named parameters without reducing. Wildcard parameters which are not bound
// become fresh type-variables. Type constructors are annotated with the path of their defining
// module, for display.
func (env *TypeEnv) resolveParams(t types.Type) (types.Type, error) {
	switch t := types.RealType(t).(type) {
	case *types.Var:
		if !t.IsParam() {
			return t, nil
		}
		if g, ok := env.generics.Lookup(t.Name()); ok {
			return g, nil
		}
		if t.IsWildcard() {
			return env.newVar(), nil
		}
		return nil, diag.Errorf(diag.CodeUndefinedType, "undefined type parameter %s", t.Name())

	case *types.Fun:
		f := &types.Fun{Name: t.Name, Path: env.typePath(t)}
		if len(t.Args) > 0 {
			f.Args = make([]types.Type, len(t.Args))
			for i, arg := range t.Args {
				var err error
				if f.Args[i], err = env.resolveParams(arg); err != nil {
					return nil, err
				}
			}
		}
		return f, nil
	}
	return t, nil
}

// typePath prefers the alias recorded by an import over the path of the declaring module.
func (env *TypeEnv) typePath(f *types.Fun) []string {
	if path, ok := env.typeImports.Lookup(f.Name); ok {
		return path
	}
	if s, ok := env.structs.Lookup(f.Name); ok {
		return s.Path
	}
	if e, ok := env.enums.Lookup(f.Name); ok {
		return e.Path
	}
	return f.Path
}

// Normalize reduces t with the type-rules visible from env.
func (env *TypeEnv) Normalize(t types.Type) (types.Type, error) {
	n := trs.Normalizer{TRS: env.typeRules, Env: env, MaxSteps: env.ctx.cfg.MaxReductionSteps, Vars: &env.ctx.vt, Level: env.letLevel}
	return n.Normalize(t)
}

// unify makes a and b equal, reducing both through the visible type-rules first.
func (env *TypeEnv) unify(a, b types.Type) error {
	if !env.typeRules.Empty() {
		var err error
		if a, err = env.Normalize(a); err != nil {
			return err
		}
		if b, err = env.Normalize(b); err != nil {
			return err
		}
	}
	if !types.Unify(a, b, env.generics, nil) {
		return diag.Errorf(diag.CodeTypeMismatch, "cannot unify %s with %s", types.TypeString(a), types.TypeString(b))
	}
	return nil
}

// instantiateWith instantiates t, binding the named parameters to args.
func (env *TypeEnv) instantiateWith(t types.Type, names []string, args []types.Type) types.Type {
	params := env.generics.Child()
	for i, name := range names {
		params.Declare(name, args[i])
	}
	inst, _ := types.Instantiate(t, env.letLevel, params, &env.ctx.vt)
	return inst
}

// generalize generalizes t at the current let-level. Type-variables introduced for the generics of
// a function which remain generic are turned back into named parameters, and their names returned.
func (env *TypeEnv) generalize(t types.Type, gvars []*types.Var) (types.Type, []string) {
	gen := types.Generalize(t, env.letLevel)
	if len(gvars) == 0 {
		return gen, nil
	}
	names := make(map[int]string, len(gvars))
	var generics []string
	for _, g := range gvars {
		tv, ok := types.RealType(g).(*types.Var)
		if !ok || !tv.IsUnboundVar() || tv.Level() <= env.letLevel {
			continue
		}
		if _, dup := names[tv.Id()]; dup {
			continue
		}
		names[tv.Id()] = g.Name()
		generics = append(generics, g.Name())
	}
	return types.Parameterize(gen, names), generics
}
