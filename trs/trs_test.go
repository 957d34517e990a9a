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
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

type varEnv map[string]types.Type

func (e varEnv) LookupVarType(name string) (types.Type, bool) {
	t, ok := e[name]
	return t, ok
}

func normalize(t *testing.T, rules *TRS, ty types.Type) types.Type {
	t.Helper()
	n := Normalizer{TRS: rules, MaxSteps: 10000, Trace: gotestingadapter.New(t)}
	res, err := n.Normalize(ty)
	require.NoError(t, err)
	return res
}

func TestAlias(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	a := vt.New(0)
	rules.Add(types.NewFun("Vec", a), types.Array(a), true)

	res := normalize(t, rules, types.Tuple(types.NewFun("Vec", types.Num), types.Str))
	assert.Equal(t, "(Array<Num>, Str)", types.TypeString(res))
	assert.True(t, a.IsUnboundVar(), "rule variables must not be linked by matching")

	v := vt.New(1)
	assert.Same(t, v, normalize(t, rules, v), "type-variables are already normal")
}

func TestNonTerminatingRule(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	a := vt.New(0)
	rules.Add(types.NewFun("Loop", a), types.NewFun("Loop", a), false)

	_, err := rules.Normalize(types.NewFun("Loop", types.Num), nil, 100)
	require.Error(t, err)
	assert.Equal(t, diag.CodeNoNormalForm, diag.CodeOf(err))
	assert.Equal(t, diag.Resource, diag.ClassOf(err))
	assert.Contains(t, err.Error(), "Loop<Num>")
	assert.Contains(t, err.Error(), "did not reach a normal form")
}

func TestFirstMatchWins(t *testing.T) {
	var vt types.VarTracker
	isNum := func(arg types.Type) types.Type { return types.NewFun("IsNum", arg) }

	specificFirst := New(nil)
	specificFirst.Add(isNum(types.Num), types.True, false)
	specificFirst.Add(isNum(vt.New(0)), types.False, false)
	assert.Equal(t, "True", types.TypeString(normalize(t, specificFirst, isNum(types.Num))))
	assert.Equal(t, "False", types.TypeString(normalize(t, specificFirst, isNum(types.Str))))

	// overlapping rules depend on declaration order:
	genericFirst := New(nil)
	genericFirst.Add(isNum(vt.New(0)), types.False, false)
	genericFirst.Add(isNum(types.Num), types.True, false)
	assert.Equal(t, "False", types.TypeString(normalize(t, genericFirst, isNum(types.Num))))
}

func TestIndependentRuleOrder(t *testing.T) {
	A, B, C := types.NewFun("A"), types.NewFun("B"), types.NewFun("C")
	forward := New(nil)
	forward.Add(A, B, false)
	forward.Add(B, C, false)
	backward := New(nil)
	backward.Add(B, C, false)
	backward.Add(A, B, false)

	ty := types.Array(types.Tuple(A, B))
	assert.True(t, types.Eq(normalize(t, forward, ty), normalize(t, backward, ty)))
	assert.Equal(t, "Array<(C, C)>", types.TypeString(normalize(t, forward, ty)))
}

func TestScopes(t *testing.T) {
	outer := New(nil)
	outer.Add(types.NewFun("T"), types.Num, true)
	outer.Add(types.NewFun("U"), types.Str, false)
	inner := New(outer)
	inner.Add(types.NewFun("T"), types.Bool, false)

	assert.Equal(t, "Bool", types.TypeString(normalize(t, inner, types.NewFun("T"))))
	assert.Equal(t, "Str", types.TypeString(normalize(t, inner, types.NewFun("U"))))
	assert.Equal(t, "Num", types.TypeString(normalize(t, outer, types.NewFun("T"))))
	assert.Len(t, outer.Exported(), 1)
	assert.False(t, inner.Empty())
	assert.True(t, New(nil).Empty())
}

func TestExternals(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	fn := func(name string, args ...types.Type) types.Type { return types.NewFun(name, args...) }

	cases := []struct {
		ty   types.Type
		want string
	}{
		{fn("@eq", types.Num, types.Num), "True"},
		{fn("@eq", types.Num, types.Str), "False"},
		{fn("@if", fn("@eq", types.Num, types.Num), types.Str, types.Bool), "Str"},
		{fn("@if", fn("@eq", types.Num, types.Str), types.Str, types.Bool), "Bool"},
		{fn("@symb", types.Array(types.Num)), "Array"},
		{fn("@args", fn("Pair", types.Num, types.Str)), "[Num, Str]"},
		{fn("@thunk", types.Num), "@thunk<Num>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, types.TypeString(normalize(t, rules, c.ty)))
	}

	x := vt.New(0)
	lambda := fn("@fun", x, types.Array(x))
	assert.Equal(t, "Array<Num>", types.TypeString(normalize(t, rules, fn("@app", lambda, types.Num))))
	assert.Equal(t, "Pair<Num, Str>", types.TypeString(normalize(t, rules, fn("@app", fn("Pair"), types.Num, types.Str))))

	y := vt.New(0)
	assert.Equal(t, "(True, True)", types.TypeString(normalize(t, rules, fn("@let", y, fn("@eq", types.Num, types.Num), types.Tuple(y, y)))))

	// conditions which cannot be decided yet keep their literal form:
	undecided := fn("@if", vt.New(0), types.Str, types.Bool)
	assert.Same(t, undecided, normalize(t, rules, undecided))
}

func TestTypeOf(t *testing.T) {
	rules := New(nil)
	env := varEnv{"x": types.Array(types.Num)}
	res, err := rules.Normalize(types.NewFun("@typeOf", types.NewFun("x")), env, 100)
	require.NoError(t, err)
	assert.Equal(t, "Array<Num>", types.TypeString(res))

	_, err = rules.Normalize(types.NewFun("@typeOf", types.NewFun("y")), env, 100)
	assert.Equal(t, diag.CodeUndefinedVariable, diag.CodeOf(err))
}

func TestExternalErrors(t *testing.T) {
	rules := New(nil)
	_, err := rules.Normalize(types.NewFun("@eq", types.Num), nil, 100)
	assert.Equal(t, diag.CodeArityMismatch, diag.CodeOf(err))

	_, err = rules.Normalize(types.NewFun("@nope", types.Num), nil, 100)
	assert.Equal(t, diag.CodeUnknownExternal, diag.CodeOf(err))
	assert.Equal(t, diag.User, diag.ClassOf(err))
}

func TestRuleLhsMustBeConstructor(t *testing.T) {
	var vt types.VarTracker
	assert.Panics(t, func() { New(nil).Add(vt.New(0), types.Num, false) })
}

func TestIrreducibleExternalArgsAreNormalized(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	a := vt.New(0)
	rules.Add(types.NewFun("Vec", a), types.Array(a), false)

	res := normalize(t, rules, types.NewFun("@if", vt.New(0), types.NewFun("Vec", types.Num), types.Str))
	f, ok := res.(*types.Fun)
	require.True(t, ok)
	assert.Equal(t, "@if", f.Name)
	assert.Equal(t, "Array<Num>", types.TypeString(f.Args[1]))
	assert.Equal(t, "Str", types.TypeString(f.Args[2]))
}

func TestRuleLocalsAreFreshPerApplication(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	w := vt.New(0)
	r := rules.Add(types.NewFun("AnyArr"), types.Array(w), false)
	assert.Equal(t, []int{w.Id()}, r.Locals)

	n := Normalizer{TRS: rules, MaxSteps: 100, Trace: gotestingadapter.New(t), Vars: &vt, Level: 2}
	elem := func() *types.Var {
		res, err := n.Normalize(types.NewFun("AnyArr"))
		require.NoError(t, err)
		v, ok := res.(*types.Fun).Args[0].(*types.Var)
		require.True(t, ok)
		return v
	}
	first, second := elem(), elem()
	assert.NotEqual(t, first.Id(), second.Id())
	assert.NotEqual(t, w.Id(), first.Id())
	assert.Equal(t, 2, first.Level())
	assert.True(t, w.IsUnboundVar())
	assert.Greater(t, n.Steps(), 0)
}

func TestRuleWithBinders(t *testing.T) {
	var vt types.VarTracker
	rules := New(nil)
	a, x := vt.New(0), vt.New(0)
	// type Apply<a> = @app<@fun<x, Array<x>>, a>
	r := rules.Add(types.NewFun("Apply", a), types.NewFun("@app", types.NewFun("@fun", x, types.Array(x)), a), false)
	assert.Equal(t, []int{x.Id()}, r.Locals)

	n := Normalizer{TRS: rules, MaxSteps: 100, Trace: gotestingadapter.New(t), Vars: &vt, Level: 1}
	res, err := n.Normalize(types.NewFun("Apply", types.Num))
	require.NoError(t, err)
	assert.Equal(t, "Array<Num>", types.TypeString(res))
	assert.True(t, x.IsUnboundVar())
}
