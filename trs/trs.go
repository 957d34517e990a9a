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

// Package trs implements the type-level term-rewriting system: user-declared rewrite rules
// (`type Lhs = Rhs`) chained through nested scopes, and a normalizer which reduces types under those
// rules and a set of built-in external functions (names prefixed with `@`).
//
// Rules are tried in declaration order and the first match wins, so the result of normalization
// depends on declaration order when left-hand sides overlap.
//
// External functions report a wrong number of arguments as a user error (ArityMismatch), since their
// applications come from user-written rules.
package trs

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/internal/scope"
	"github.com/nathsou/poy-sub000/types"
)

// tracer traces with key 'poy.trs'.
func tracer() tracing.Trace {
	return tracing.Select("poy.trs")
}

// Rewrite rule: `type Lhs = Rhs`
type Rule struct {
	Pub bool
	Lhs *types.Fun
	Rhs types.Type
	// Ids of the type-variables of Rhs which do not occur in Lhs (wildcards, `@fun` and `@let`
	// parameters). They are renamed every time the rule is applied.
	Locals []int
}

// TRS is a scope of rewrite rules keyed by the head constructor name of their left-hand side.
// Lookups search the scope's own rules first, then delegate to the parent scope.
type TRS struct {
	parent *TRS
	rules  *scope.Multi[*Rule]
}

// New creates a rule scope inheriting rules from parent (which may be nil).
func New(parent *TRS) *TRS {
	t := &TRS{parent: parent}
	if parent != nil {
		t.rules = scope.NewMulti(parent.rules)
	} else {
		t.rules = scope.NewMulti[*Rule](nil)
	}
	return t
}

// Parent returns the enclosing rule scope, or nil.
func (t *TRS) Parent() *TRS { return t.parent }

// Add declares a rule. The left-hand side must be a type constructor application.
func (t *TRS) Add(lhs, rhs types.Type, pub bool) *Rule {
	f, ok := types.RealType(lhs).(*types.Fun)
	if !ok {
		diag.Violation("the left-hand side of a rewrite rule must be a type constructor, got %s", types.TypeString(lhs))
	}
	r := &Rule{Pub: pub, Lhs: f, Rhs: rhs}
	r.Locals = types.FreeVars(rhs).Difference(types.FreeVars(f)).Slice()
	t.rules.Add(f.Name, r)
	tracer().Debugf("rule %s = %s", types.TypeString(f), types.TypeString(rhs))
	return r
}

// Lookup returns the rules for name from the innermost scope which declares rules for name.
func (t *TRS) Lookup(name string) []*Rule {
	if t == nil {
		return nil
	}
	return t.rules.Lookup(name)
}

// Own returns the rules declared for name in this scope.
func (t *TRS) Own(name string) []*Rule { return t.rules.Own(name) }

// Exported returns the public rules declared in this scope, in name then declaration order.
func (t *TRS) Exported() []*Rule {
	var rules []*Rule
	t.rules.Range(func(_ string, r *Rule) bool {
		if r.Pub {
			rules = append(rules, r)
		}
		return true
	})
	return rules
}

// Empty reports whether no rule is visible from this scope.
func (t *TRS) Empty() bool {
	for s := t; s != nil; s = s.parent {
		empty := true
		s.rules.Range(func(string, *Rule) bool {
			empty = false
			return false
		})
		if !empty {
			return false
		}
	}
	return true
}

// Env gives externals access to the types of runtime variables (for `@typeOf`).
type Env interface {
	LookupVarType(name string) (types.Type, bool)
}

// Normalize reduces t under the rules visible from this scope. See Normalizer.
func (t *TRS) Normalize(ty types.Type, env Env, maxSteps int) (types.Type, error) {
	n := Normalizer{TRS: t, Env: env, MaxSteps: maxSteps}
	return n.Normalize(ty)
}

// Normalizer reduces types to a normal form. The step counter is shared across every reduction
// performed by the normalizer, bounding non-terminating rules.
//
// When Vars is set, the local type-variables of an applied rule are replaced with fresh type-variables
// at binding-level Level, so separate applications of a rule never share them.
type Normalizer struct {
	TRS      *TRS
	Env      Env
	MaxSteps int
	Trace    tracing.Trace
	Vars     *types.VarTracker
	Level    int

	steps int
}

// Steps returns the number of reduction steps performed so far.
func (n *Normalizer) Steps() int { return n.steps }

// normalizeArgs rebuilds f with normalized arguments. f is returned as is when every argument is
// already normal.
func (n *Normalizer) normalizeArgs(f *types.Fun) (*types.Fun, error) {
	var args []types.Type
	for i, arg := range f.Args {
		res, err := n.normalize(arg)
		if err != nil {
			return nil, err
		}
		if args == nil && res != arg {
			args = make([]types.Type, len(f.Args))
			copy(args, f.Args[:i])
		}
		if args != nil {
			args[i] = res
		}
	}
	if args == nil {
		return f, nil
	}
	return &types.Fun{Name: f.Name, Args: args, Path: f.Path}, nil
}

// Normalize reduces t to a normal form. Type-variables are already normal; arguments are reduced
// before rules are applied to the reconstructed term, and the right-hand side of an applied rule is
// reduced again.
func (n *Normalizer) Normalize(t types.Type) (types.Type, error) {
	if n.Trace == nil {
		n.Trace = tracer()
	}
	return n.normalize(t)
}

func (n *Normalizer) normalize(t types.Type) (types.Type, error) {
	for {
		n.steps++
		if n.MaxSteps > 0 && n.steps > n.MaxSteps {
			return nil, diag.Errorf(diag.CodeNoNormalForm, "type %s did not reach a normal form after %d steps", types.TypeString(t), n.MaxSteps)
		}
		f, ok := types.RealType(t).(*types.Fun)
		if !ok {
			return t, nil
		}

		if strings.HasPrefix(f.Name, "@") {
			reduced, ok, err := n.external(f)
			if err != nil {
				return nil, err
			}
			if !ok {
				return n.normalizeArgs(f)
			}
			t = reduced
			continue
		}

		rec, err := n.normalizeArgs(f)
		if err != nil {
			return nil, err
		}

		matched := false
		for _, r := range n.TRS.Lookup(rec.Name) {
			subst, ok := types.UnifyPure(r.Lhs, rec, nil)
			if !ok {
				continue
			}
			if n.Vars != nil {
				for _, id := range r.Locals {
					subst[id] = n.Vars.New(n.Level)
				}
			}
			t = types.Substitute(r.Rhs, subst)
			n.Trace.Debugf("%s -> %s", types.TypeString(rec), types.TypeString(t))
			matched = true
			break
		}
		if !matched {
			return rec, nil
		}
	}
}
