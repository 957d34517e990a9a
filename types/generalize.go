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

package types

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/nathsou/poy-sub000/diag"
)

// Generalize rewrites every unbound type-variable with a binding-level greater than level into a
// generic type-variable. Type-variables are not mutated; repeated occurrences of the same unbound
// type-variable map to the same generic type-variable.
func Generalize(t Type, level int) Type {
	return generalize(t, level, make(map[int]*Var))
}

func generalize(t Type, level int, lookup map[int]*Var) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if !t.IsUnboundVar() || t.level <= level {
			return t
		}
		if g, ok := lookup[t.id]; ok {
			return g
		}
		g := NewGenericVar(t.id, t.name)
		lookup[t.id] = g
		return g
	case *Fun:
		return mapArgs(t, func(arg Type) Type { return generalize(arg, level, lookup) })
	}
	return t
}

// LowerLevels lowers the binding-level of every unbound type-variable within t to at most level, so
// they can no longer be generalized by bindings deeper than level.
func LowerLevels(t Type, level int) {
	switch t := RealType(t).(type) {
	case *Var:
		if t.IsUnboundVar() && t.level > level {
			t.SetLevel(level)
		}
	case *Fun:
		for _, arg := range t.Args {
			LowerLevels(arg, level)
		}
	}
}

// Instantiate replaces every generic type-variable within t with a fresh unbound type-variable at the
// given binding-level, and resolves every named type-parameter through params. Wildcard parameters
// (names starting with an underscore) which are not found in params default to fresh type-variables.
//
// The returned substitution maps the ids of instantiated generic type-variables to their instances.
func Instantiate(t Type, level int, params ParamScope, vt *VarTracker) (Type, Subst) {
	subst := make(Subst)
	return instantiate(t, level, params, vt, subst), subst
}

func instantiate(t Type, level int, params ParamScope, vt *VarTracker, subst Subst) Type {
	switch t := RealType(t).(type) {
	case *Var:
		switch {
		case t.IsGenericVar():
			if inst, ok := subst[t.id]; ok {
				return inst
			}
			inst := vt.NewNamed(level, t.name)
			subst[t.id] = inst
			return inst
		case t.IsParam():
			if params != nil {
				if resolved, ok := params.Lookup(t.name); ok {
					if rv, isVar := resolved.(*Var); isVar && rv.IsParam() && rv.name == t.name {
						return rv
					}
					return instantiate(resolved, level, params, vt, subst)
				}
			}
			if t.IsWildcard() {
				return vt.New(level)
			}
			diag.Violation("unknown type parameter %s", t.name)
		}
		return t
	case *Fun:
		return mapArgs(t, func(arg Type) Type { return instantiate(arg, level, params, vt, subst) })
	}
	return t
}

// Parameterize replaces unbound and generic type-variables whose ids are found in names with named
// type-parameters.
func Parameterize(t Type, names map[int]string) Type {
	if len(names) == 0 {
		return t
	}
	switch t := RealType(t).(type) {
	case *Var:
		if t.IsUnboundVar() || t.IsGenericVar() {
			if name, ok := names[t.id]; ok {
				return NewParam(name)
			}
		}
		return t
	case *Fun:
		return mapArgs(t, func(arg Type) Type { return Parameterize(arg, names) })
	}
	return t
}

// Substitute replaces unbound and generic type-variables found in subst, recursively substituting
// within replacements.
func Substitute(t Type, subst Subst) Type {
	if len(subst) == 0 {
		return t
	}
	return substitute(t, subst, nil)
}

func substitute(t Type, subst Subst, active []int) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if t.IsLinkVar() || t.IsParam() {
			return t
		}
		replacement, ok := subst[t.id]
		if !ok {
			return t
		}
		if rv, isVar := RealType(replacement).(*Var); isVar && rv.id == t.id && rv.kind == t.kind {
			return t
		}
		for _, id := range active {
			if id == t.id {
				diag.Violation("substitution of type-variable %d is recursive", t.id)
			}
		}
		return substitute(replacement, subst, append(active, t.id))
	case *Fun:
		return mapArgs(t, func(arg Type) Type { return substitute(arg, subst, active) })
	}
	return t
}

// FreeVars returns the ids of all unbound and generic type-variables within t.
func FreeVars(t Type) *set.Set[int] {
	vars := set.New[int](4)
	freeVars(t, vars)
	return vars
}

func freeVars(t Type, vars *set.Set[int]) {
	switch t := RealType(t).(type) {
	case *Var:
		if t.IsUnboundVar() || t.IsGenericVar() {
			vars.Insert(t.id)
		}
	case *Fun:
		for _, arg := range t.Args {
			freeVars(arg, vars)
		}
	}
}

// mapArgs rebuilds a type constructor application, sharing the original when no argument changed.
func mapArgs(t *Fun, f func(Type) Type) Type {
	if len(t.Args) == 0 {
		return t
	}
	var args []Type
	for i, arg := range t.Args {
		mapped := f(arg)
		if args == nil && mapped != arg {
			args = make([]Type, len(t.Args))
			copy(args, t.Args[:i])
		}
		if args != nil {
			args[i] = mapped
		}
	}
	if args == nil {
		return t
	}
	return &Fun{Name: t.Name, Args: args, Path: t.Path}
}
