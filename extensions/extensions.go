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

// Package extensions resolves ad-hoc members attached to types by `extend` blocks.
//
// Extensions are registered in lexically chained scopes, keyed by member name. A member access on a
// receiver selects, among every visible extension whose subject unifies with the receiver's type,
// the one requiring the narrowest substitution. Candidates which tie are reported as ambiguous; this
// approximates the most specific applicable instance without proving coherence.
package extensions

import (
	"strings"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing"
	"github.com/samber/lo"

	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/internal/scope"
	"github.com/nathsou/poy-sub000/types"
)

// tracer traces with key 'poy.ext'.
func tracer() tracing.Trace {
	return tracing.Select("poy.ext")
}

// ExtensionInfo describes a member attached to a subject type.
type ExtensionInfo struct {
	// Receiver type. Type-variables bound by the extend block are generic.
	Subject types.Type
	Member  string
	// Member type, generalized together with Subject.
	Ty types.Type
	// Names of the type parameters declared on the extend block, and the ids of their (generic)
	// type-variables
	Generics   []string
	GenericIds []int
	Pub        bool
	// Declared (ambient) members are implemented natively.
	Declared bool
	// Static members are accessed without a receiver value.
	Static bool
	// Unique identifier, used by later stages to refer to the implementation.
	UUID string
}

// Scope is a lexically chained multimap from member names to extensions.
type Scope struct {
	parent *Scope
	exts   *scope.Multi[*ExtensionInfo]
}

// NewScope creates an extension scope inheriting extensions from parent (which may be nil).
func NewScope(parent *Scope) *Scope {
	s := &Scope{parent: parent}
	if parent != nil {
		s.exts = scope.NewMulti(parent.exts)
	} else {
		s.exts = scope.NewMulti[*ExtensionInfo](nil)
	}
	return s
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope { return s.parent }

// Declare registers an extension, assigning it a UUID when it has none.
func (s *Scope) Declare(ext *ExtensionInfo) *ExtensionInfo {
	if ext.UUID == "" {
		ext.UUID = uuid.NewString()
	}
	s.exts.Add(ext.Member, ext)
	tracer().Debugf("extension %s::%s : %s", types.TypeString(ext.Subject), ext.Member, types.TypeString(ext.Ty))
	return ext
}

// Exported returns the public extensions declared in this scope.
func (s *Scope) Exported() []*ExtensionInfo {
	var exts []*ExtensionInfo
	s.exts.Range(func(_ string, ext *ExtensionInfo) bool {
		if ext.Pub {
			exts = append(exts, ext)
		}
		return true
	})
	return exts
}

// Candidate is an extension whose subject matched a receiver type.
type Candidate struct {
	Ext *ExtensionInfo
	// Instantiated subject and member types
	Subject types.Type
	Ty      types.Type
	// Substitution unifying Subject with the receiver type
	Subst types.Subst
	// Instances of the extension's generic type-variables, by id
	Inst types.Subst
}

// Specificity sums the specificity of the substitution's image. Lower is more specific.
func (c *Candidate) Specificity() int {
	return lo.SumBy(lo.Values(c.Subst), types.Specificity)
}

// MatchingCandidates collects every extension for member, in this scope and all enclosing scopes,
// whose subject unifies with subject. Unification is pure; neither subject nor the extension types
// are mutated. Generic type-variables of each extension are instantiated at level.
func (s *Scope) MatchingCandidates(subject types.Type, member string, level int, vt *types.VarTracker) []*Candidate {
	var candidates []*Candidate
	for _, ext := range s.exts.Collect(member) {
		inst, instSubst := types.Instantiate(types.NewFun("@ext", ext.Subject, ext.Ty), level, nil, vt)
		pair := inst.(*types.Fun)
		subst, ok := types.UnifyPure(pair.Args[0], subject, nil)
		if !ok {
			continue
		}
		candidates = append(candidates, &Candidate{Ext: ext, Subject: pair.Args[0], Ty: pair.Args[1], Subst: subst, Inst: instSubst})
	}
	return candidates
}

// Lookup selects the most specific extension for member on subject.
func (s *Scope) Lookup(subject types.Type, member string, level int, vt *types.VarTracker) (*Candidate, error) {
	candidates := s.MatchingCandidates(subject, member, level, vt)
	switch len(candidates) {
	case 0:
		return nil, diag.Errorf(diag.CodeNoExtension, "no extension found for %s::%s", types.TypeString(subject), member)
	case 1:
		return candidates[0], nil
	}

	scores := lo.Map(candidates, func(c *Candidate, _ int) int { return c.Specificity() })
	best := lo.Min(scores)
	tied := lo.Filter(candidates, func(_ *Candidate, i int) bool { return scores[i] == best })
	tracer().Debugf("%d candidates for %s::%s, best score %d", len(candidates), types.TypeString(subject), member, best)
	if len(tied) > 1 {
		subjects := lo.Map(tied, func(c *Candidate, _ int) string { return types.TypeString(c.Ext.Subject) })
		return nil, diag.Errorf(diag.CodeAmbiguousExtension, "ambiguous extension %s::%s, candidates: %s",
			types.TypeString(subject), member, strings.Join(subjects, ", "))
	}
	return tied[0], nil
}
