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

package match

import (
	set "github.com/hashicorp/go-set/v3"
	"github.com/npillmayer/schuko/tracing"
	"github.com/samber/lo"

	"github.com/nathsou/poy-sub000/diag"
)

// tracer traces with key 'poy.match'.
func tracer() tracing.Trace {
	return tracing.Select("poy.match")
}

// Occurrence is a path of field indices from the match subject to a sub-value.
type Occurrence []int

func (o Occurrence) child(i int) Occurrence {
	c := make(Occurrence, len(o)+1)
	copy(c, o)
	c[len(o)] = i
	return c
}

// ClauseMatrix holds one row of patterns per match case; row i selects Actions[i].
type ClauseMatrix struct {
	Rows    [][]Pattern
	Actions []int
}

// NewClauseMatrix builds a matrix whose actions are the row indices.
func NewClauseMatrix(rows [][]Pattern) ClauseMatrix {
	return ClauseMatrix{Rows: rows, Actions: lo.Range(len(rows))}
}

func (m ClauseMatrix) height() int { return len(m.Rows) }

// DecisionTree is a *Leaf, *Fail or *Switch.
type DecisionTree interface {
	decisionTree()
}

// Leaf selects the action of a match case.
type Leaf struct {
	Action int
}

// Fail is reached when no case matches.
type Fail struct{}

// Switch tests the constructor of the value at Occurrence.
type Switch struct {
	Occurrence Occurrence
	Tests      []Test
	// Taken when no test succeeds; nil when the tests cover the signature
	Default DecisionTree
}

// Test is a branch of a Switch.
type Test struct {
	Ctor  string
	Meta  Meta
	Arity int
	Tree  DecisionTree
}

func (*Leaf) decisionTree()   {}
func (*Fail) decisionTree()   {}
func (*Switch) decisionTree() {}

// Head is a distinct constructor found in a column.
type Head struct {
	Name      string
	Arity     int
	Meta      Meta
	Signature []string
}

// SignaturePolicy decides whether the heads of a column cover every constructor of their type.
type SignaturePolicy func(heads []Head) bool

// ColumnPolicy selects the column to branch on in a matrix whose first row is not all wildcards.
type ColumnPolicy func(m ClauseMatrix) int

// Options for Compile. Zero values select the default policies.
type Options struct {
	IsSignature  SignaturePolicy
	SelectColumn ColumnPolicy
}

// IsSignature is the default signature policy: Unit, Tuple and Struct have a single constructor,
// Bool is complete when both true and false are present, Num and Str are never complete and a
// Variant column is complete when every variant of the enum is present.
//
// Mixing constructor families within one column violates an invariant.
func IsSignature(heads []Head) bool {
	if len(heads) == 0 {
		return false
	}
	meta := heads[0].Meta
	for _, h := range heads[1:] {
		if h.Meta != meta {
			diag.Violation("constructors %s and %s of a column have different kinds (%s, %s)", heads[0].Name, h.Name, meta, h.Meta)
		}
	}
	names := set.From(lo.Map(heads, func(h Head, _ int) string { return h.Name }))
	switch meta {
	case MetaUnit, MetaTuple, MetaStruct:
		return true
	case MetaBool:
		return names.Contains("true") && names.Contains("false")
	case MetaVariant:
		sig := heads[0].Signature
		return len(sig) > 0 && names.ContainsSlice(sig)
	}
	return false
}

// FirstNonWildcardColumn is the default column policy.
func FirstNonWildcardColumn(m ClauseMatrix) int {
	for col, p := range m.Rows[0] {
		if !isWildcard(p) {
			return col
		}
	}
	diag.Violation("no column to branch on")
	return -1
}

// Compile compiles a clause matrix into a decision tree. occurrences holds one occurrence per column.
func Compile(m ClauseMatrix, occurrences []Occurrence, opts Options) DecisionTree {
	if opts.IsSignature == nil {
		opts.IsSignature = IsSignature
	}
	if opts.SelectColumn == nil {
		opts.SelectColumn = FirstNonWildcardColumn
	}
	for _, row := range m.Rows {
		if len(row) != len(occurrences) {
			diag.Violation("clause matrix row has %d columns, expected %d", len(row), len(occurrences))
		}
	}
	tree := compile(m, occurrences, opts)
	tracer().Debugf("compiled %d rows into a tree with %d leaves", m.height(), Reachable(tree).Size())
	return tree
}

func compile(m ClauseMatrix, occurrences []Occurrence, opts Options) DecisionTree {
	if m.height() == 0 {
		return &Fail{}
	}
	if lo.EveryBy(m.Rows[0], isWildcard) {
		return &Leaf{Action: m.Actions[0]}
	}

	col := opts.SelectColumn(m)
	if col != 0 {
		m = m.swapColumns(0, col)
		occurrences = swapped(occurrences, 0, col)
	}

	heads := m.heads()
	sw := &Switch{Occurrence: occurrences[0]}
	for _, h := range heads {
		sub := make([]Occurrence, 0, h.Arity+len(occurrences)-1)
		for i := 0; i < h.Arity; i++ {
			sub = append(sub, occurrences[0].child(i))
		}
		sub = append(sub, occurrences[1:]...)
		sw.Tests = append(sw.Tests, Test{
			Ctor:  h.Name,
			Meta:  h.Meta,
			Arity: h.Arity,
			Tree:  compile(m.specialize(h), sub, opts),
		})
	}
	if !opts.IsSignature(heads) {
		sw.Default = compile(m.defaulted(), occurrences[1:], opts)
	}
	return sw
}

func swapped(occurrences []Occurrence, i, j int) []Occurrence {
	s := make([]Occurrence, len(occurrences))
	copy(s, occurrences)
	s[i], s[j] = s[j], s[i]
	return s
}

func (m ClauseMatrix) swapColumns(i, j int) ClauseMatrix {
	rows := make([][]Pattern, len(m.Rows))
	for r, row := range m.Rows {
		rows[r] = make([]Pattern, len(row))
		copy(rows[r], row)
		rows[r][i], rows[r][j] = rows[r][j], rows[r][i]
	}
	return ClauseMatrix{Rows: rows, Actions: m.Actions}
}

// heads returns the distinct constructors of the first column, in order of appearance.
func (m ClauseMatrix) heads() []Head {
	seen := set.New[string](m.height())
	var heads []Head
	for _, row := range m.Rows {
		c, ok := row[0].(*Ctor)
		if !ok || !seen.Insert(c.Name) {
			continue
		}
		heads = append(heads, Head{Name: c.Name, Arity: len(c.Args), Meta: c.Meta, Signature: c.Signature})
	}
	return heads
}

// specialize keeps the rows whose first column matches h, replacing it with its sub-patterns.
func (m ClauseMatrix) specialize(h Head) ClauseMatrix {
	var out ClauseMatrix
	for r, row := range m.Rows {
		var fields []Pattern
		switch p := row[0].(type) {
		case *Any:
			fields = make([]Pattern, h.Arity)
			for i := range fields {
				fields[i] = Wildcard
			}
		case *Ctor:
			if p.Name != h.Name {
				continue
			}
			if len(p.Args) != h.Arity {
				diag.Violation("constructor %s used with %d and %d arguments", h.Name, h.Arity, len(p.Args))
			}
			fields = p.Args
		}
		out.Rows = append(out.Rows, append(append(make([]Pattern, 0, len(fields)+len(row)-1), fields...), row[1:]...))
		out.Actions = append(out.Actions, m.Actions[r])
	}
	return out
}

// defaulted keeps the rows whose first column is a wildcard, dropping that column.
func (m ClauseMatrix) defaulted() ClauseMatrix {
	var out ClauseMatrix
	for r, row := range m.Rows {
		if isWildcard(row[0]) {
			out.Rows = append(out.Rows, row[1:])
			out.Actions = append(out.Actions, m.Actions[r])
		}
	}
	return out
}

// Reachable returns the actions of every leaf in the tree.
func Reachable(tree DecisionTree) *set.Set[int] {
	actions := set.New[int](4)
	walk(tree, func(t DecisionTree) {
		if leaf, ok := t.(*Leaf); ok {
			actions.Insert(leaf.Action)
		}
	})
	return actions
}

// HasFail reports whether the tree contains a Fail node, i.e. whether some value matches no case.
func HasFail(tree DecisionTree) bool {
	found := false
	walk(tree, func(t DecisionTree) {
		if _, ok := t.(*Fail); ok {
			found = true
		}
	})
	return found
}

func walk(tree DecisionTree, f func(DecisionTree)) {
	f(tree)
	if sw, ok := tree.(*Switch); ok {
		for _, test := range sw.Tests {
			walk(test.Tree, f)
		}
		if sw.Default != nil {
			walk(sw.Default, f)
		}
	}
}

// Dump traces the structure of a decision tree at debug level.
func Dump(tree DecisionTree) {
	tracing.With(tracer()).Dump("decision tree", tree)
}
