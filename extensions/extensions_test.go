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

package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

// generic returns a generalized type-variable, as found in the subject of `extend<a> ...`.
func generic(vt *types.VarTracker, name string) types.Type {
	return types.Generalize(vt.NewNamed(1, name), 0)
}

func TestMostSpecificCandidate(t *testing.T) {
	var vt types.VarTracker
	s := NewScope(nil)
	a := generic(&vt, "a")
	generalLen := s.Declare(&ExtensionInfo{Subject: types.Array(a), Member: "len", Ty: types.Num})
	numLen := s.Declare(&ExtensionInfo{Subject: types.Array(types.Num), Member: "len", Ty: types.Num})
	require.NotEmpty(t, generalLen.UUID)
	require.NotEqual(t, generalLen.UUID, numLen.UUID)

	c, err := s.Lookup(types.Array(types.Num), "len", 1, &vt)
	require.NoError(t, err)
	assert.Same(t, numLen, c.Ext)
	assert.Equal(t, 0, c.Specificity())

	c, err = s.Lookup(types.Array(types.Str), "len", 1, &vt)
	require.NoError(t, err)
	assert.Same(t, generalLen, c.Ext)
}

func TestAmbiguousCandidates(t *testing.T) {
	var vt types.VarTracker
	s := NewScope(nil)
	s.Declare(&ExtensionInfo{Subject: generic(&vt, "a"), Member: "show", Ty: types.Str})
	s.Declare(&ExtensionInfo{Subject: generic(&vt, "b"), Member: "show", Ty: types.Str})

	_, err := s.Lookup(types.Num, "show", 1, &vt)
	require.Error(t, err)
	assert.Equal(t, diag.CodeAmbiguousExtension, diag.CodeOf(err))
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestNoCandidate(t *testing.T) {
	var vt types.VarTracker
	s := NewScope(nil)
	s.Declare(&ExtensionInfo{Subject: types.Str, Member: "len", Ty: types.Num})

	_, err := s.Lookup(types.Num, "len", 1, &vt)
	assert.Equal(t, diag.CodeNoExtension, diag.CodeOf(err))
	_, err = s.Lookup(types.Str, "size", 1, &vt)
	assert.Equal(t, diag.CodeNoExtension, diag.CodeOf(err))
}

func TestCandidatesFromEnclosingScopes(t *testing.T) {
	var vt types.VarTracker
	outer := NewScope(nil)
	outer.Declare(&ExtensionInfo{Subject: types.Num, Member: "abs", Ty: types.Num, Pub: true})
	inner := NewScope(outer)
	a := generic(&vt, "a")
	inner.Declare(&ExtensionInfo{Subject: types.Array(a), Member: "first", Ty: a})

	c, err := inner.Lookup(types.Num, "abs", 1, &vt)
	require.NoError(t, err)
	assert.Equal(t, "Num", types.TypeString(c.Ty))

	// generic type-variables shared between subject and member type are instantiated together:
	c, err = inner.Lookup(types.Array(types.Bool), "first", 1, &vt)
	require.NoError(t, err)
	require.True(t, types.Unify(c.Subject, types.Array(types.Bool), nil, nil))
	assert.Equal(t, "Bool", types.TypeString(c.Ty))

	assert.Len(t, outer.Exported(), 1)
	assert.Empty(t, inner.Exported())
}

func TestMatchingIsPure(t *testing.T) {
	var vt types.VarTracker
	s := NewScope(nil)
	s.Declare(&ExtensionInfo{Subject: types.Array(types.Num), Member: "sum", Ty: types.Num})

	receiver := types.Array(vt.New(1))
	candidates := s.MatchingCandidates(receiver, "sum", 1, &vt)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Array<?1>", types.TypeString(receiver))
}
