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

package ast

import (
	"github.com/nathsou/poy-sub000/match"
	"github.com/nathsou/poy-sub000/types"
)

// Pattern is the base for all patterns (in let-bindings, function parameters and match cases).
type Pattern interface {
	PatternName() string
	// Type returns the inferred type of the pattern. Pattern types are only available after type-inference.
	Type() types.Type
	SetType(t types.Type)
}

var (
	_ Pattern = (*AnyPattern)(nil)
	_ Pattern = (*VariablePattern)(nil)
	_ Pattern = (*CtorPattern)(nil)
	_ Pattern = (*VariantPattern)(nil)
	_ Pattern = (*StructPattern)(nil)
)

// Wildcard: `_`
type AnyPattern struct {
	inferred types.Type
}

func (p *AnyPattern) PatternName() string  { return "Any" }
func (p *AnyPattern) Type() types.Type     { return realType(p.inferred) }
func (p *AnyPattern) SetType(t types.Type) { p.inferred = t }

// Binding: `x`, `mut x`
type VariablePattern struct {
	Name     string
	Mut      bool
	inferred types.Type
}

func (p *VariablePattern) PatternName() string  { return "Variable" }
func (p *VariablePattern) Type() types.Type     { return realType(p.inferred) }
func (p *VariablePattern) SetType(t types.Type) { p.inferred = t }

// Literal or tuple pattern: `0`, `"a"`, `true`, `()`, `(p, q)`.
//
// Meta identifies the family of the constructor; Name is the literal syntax (or "Tuple").
type CtorPattern struct {
	Name     string
	Args     []Pattern
	Meta     match.Meta
	inferred types.Type
}

func (p *CtorPattern) PatternName() string  { return "Ctor" }
func (p *CtorPattern) Type() types.Type     { return realType(p.inferred) }
func (p *CtorPattern) SetType(t types.Type) { p.inferred = t }

// Enum variant pattern: `Option.Some(x)`, or `Some(x)` when the variant name is unique.
type VariantPattern struct {
	Enum    string
	Variant string
	Args    []Pattern
	// ResolvedEnum is set during inference.
	ResolvedEnum *EnumDecl
	inferred     types.Type
}

func (p *VariantPattern) PatternName() string  { return "Variant" }
func (p *VariantPattern) Type() types.Type     { return realType(p.inferred) }
func (p *VariantPattern) SetType(t types.Type) { p.inferred = t }

// Struct pattern: `Point { x, y: 0 }`. Omitted fields match anything.
type StructPattern struct {
	Path     []string
	Name     string
	Fields   []StructPatternField
	inferred types.Type
}

// A field without a pattern binds a variable named after the field.
type StructPatternField struct {
	Name string
	Pat  Pattern
}

func (p *StructPattern) PatternName() string  { return "Struct" }
func (p *StructPattern) Type() types.Type     { return realType(p.inferred) }
func (p *StructPattern) SetType(t types.Type) { p.inferred = t }

// PatternVars returns the names bound by p, in order of appearance.
func PatternVars(p Pattern) []string {
	var names []string
	WalkPattern(p, func(p Pattern) {
		switch p := p.(type) {
		case *VariablePattern:
			names = append(names, p.Name)
		case *StructPattern:
			for _, f := range p.Fields {
				if f.Pat == nil {
					names = append(names, f.Name)
				}
			}
		}
	})
	return names
}
