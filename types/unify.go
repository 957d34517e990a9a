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
	"github.com/nathsou/poy-sub000/diag"
)

// ParamScope resolves named type-parameters during unification and instantiation.
type ParamScope interface {
	Lookup(name string) (Type, bool)
}

// Subst maps type-variable ids to types.
type Subst map[int]Type

type equation struct{ a, b Type }

// Unify attempts to make a and b structurally equal by linking unbound type-variables.
//
// When subst is nil, links are performed in place; on failure some links may already have been
// performed. When subst is non-nil, links are recorded into subst and no type-variable is mutated.
//
// Unify returns false on a mismatch. Occurs-check failures, generic type-variables and unresolved
// (non-wildcard) type-parameters are invariant violations and cause a panic.
func Unify(a, b Type, params ParamScope, subst Subst) bool {
	eqs := make([]equation, 1, 8)
	eqs[0] = equation{a, b}
	for len(eqs) > 0 {
		eq := eqs[len(eqs)-1]
		eqs = eqs[:len(eqs)-1]
		s, t := deref(eq.a, subst), deref(eq.b, subst)
		if s == t {
			continue
		}

		// Named parameters are resolved before anything else:
		if sv, ok := s.(*Var); ok && sv.IsParam() {
			if resolved, skip := resolveParam(sv, params); !skip {
				eqs = append(eqs, equation{resolved, t})
			}
			continue
		}
		if tv, ok := t.(*Var); ok && tv.IsParam() {
			if resolved, skip := resolveParam(tv, params); !skip {
				eqs = append(eqs, equation{s, resolved})
			}
			continue
		}

		sv, sIsVar := s.(*Var)
		tv, tIsVar := t.(*Var)
		if (sIsVar && sv.IsGenericVar()) || (tIsVar && tv.IsGenericVar()) {
			diag.Violation("generic type-variables must be instantiated before unification: %s ~ %s", TypeString(s), TypeString(t))
		}
		if sIsVar && tIsVar && sv.id == tv.id {
			continue
		}
		if sIsVar {
			bind(sv, t, subst)
			continue
		}
		if tIsVar {
			bind(tv, s, subst)
			continue
		}

		sf, tf := s.(*Fun), t.(*Fun)
		if sf.Name != tf.Name || len(sf.Args) != len(tf.Args) {
			return false
		}
		for i := len(sf.Args) - 1; i >= 0; i-- {
			eqs = append(eqs, equation{sf.Args[i], tf.Args[i]})
		}
	}
	return true
}

// UnifyPure unifies a and b without mutating any type-variable, returning the substitution which
// makes them equal.
func UnifyPure(a, b Type, params ParamScope) (Subst, bool) {
	subst := make(Subst)
	if !Unify(a, b, params, subst) {
		return nil, false
	}
	return subst, true
}

func resolveParam(p *Var, params ParamScope) (resolved Type, skip bool) {
	if params != nil {
		if t, ok := params.Lookup(p.name); ok {
			if rv, isVar := t.(*Var); isVar && rv.IsParam() && rv.name == p.name {
				diag.Violation("type parameter %s resolves to itself", p.name)
			}
			return t, false
		}
	}
	if p.IsWildcard() {
		return nil, true
	}
	diag.Violation("unknown type parameter %s", p.name)
	return nil, true
}

func bind(v *Var, t Type, subst Subst) {
	OccursCheckAdjustLevels(v.id, v.level, t, subst)
	if subst != nil {
		subst[v.id] = t
		return
	}
	v.SetLink(t)
}

// deref follows links, and (when subst is non-nil) recorded substitutions of unbound type-variables.
func deref(t Type, subst Subst) Type {
	for {
		t = Unlink(t)
		if subst == nil {
			return t
		}
		tv, ok := t.(*Var)
		if !ok || !tv.IsUnboundVar() {
			return t
		}
		next, ok := subst[tv.id]
		if !ok {
			return t
		}
		t = next
	}
}

// See "Efficient Generalization with Levels" (Oleg Kiselyov)
// http://okmij.org/ftp/ML/generalization.html#levels
//
// This implementation follows the sound_eager algorithm. Levels are only adjusted when subst is nil.
func OccursCheckAdjustLevels(id, level int, t Type, subst Subst) {
	switch t := deref(t, subst).(type) {
	case *Var:
		switch {
		case t.IsGenericVar():
			diag.Violation("types must be instantiated before checking for recursion")
		case t.IsUnboundVar():
			if t.id == id {
				diag.Violation("recursive types are not supported (occurs check)")
			}
			if subst == nil && t.level > level {
				t.SetLevel(level)
			}
		}
	case *Fun:
		for _, arg := range t.Args {
			OccursCheckAdjustLevels(id, level, arg, subst)
		}
	}
}
