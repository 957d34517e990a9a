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

// Package match compiles pattern matrices into decision trees, following Maranget's "Compiling
// Pattern Matching to Good Decision Trees" (ML 2008).
//
// Patterns are simplified beforehand to wildcards and constructor applications; literals, tuples,
// structs and enum variants are all encoded as constructors tagged with a Meta kind, so the
// compiler stays generic over constructor names and arities.
package match

import (
	"strings"

	"github.com/samber/lo"
)

// Meta identifies the family of a constructor pattern.
type Meta uint8

const (
	MetaUnit Meta = iota
	MetaBool
	MetaNum
	MetaStr
	MetaTuple
	MetaVariant
	MetaStruct
)

var metaNames = [...]string{"Unit", "Bool", "Num", "Str", "Tuple", "Variant", "Struct"}

func (m Meta) String() string {
	if int(m) < len(metaNames) {
		return metaNames[m]
	}
	return "Meta(?)"
}

// Pattern is a simplified pattern: either *Any or *Ctor.
type Pattern interface {
	patternNode()
}

// Wildcard pattern: `_`. Variable patterns simplify to wildcards.
type Any struct{}

// Constructor pattern: `true`, `0`, `"a"`, `(p, q)`, `Some(p)`, `Point { x: p, y: q }`
type Ctor struct {
	Name string
	Args []Pattern
	Meta Meta
	// Names of every constructor of the enum, for MetaVariant patterns
	Signature []string
}

func (*Any) patternNode()  {}
func (*Ctor) patternNode() {}

// Wildcard is the shared wildcard pattern.
var Wildcard Pattern = &Any{}

func isWildcard(p Pattern) bool {
	_, ok := p.(*Any)
	return ok
}

// PatternString returns a debug representation of p.
func PatternString(p Pattern) string {
	switch p := p.(type) {
	case *Any:
		return "_"
	case *Ctor:
		if len(p.Args) == 0 {
			return p.Name
		}
		return p.Name + "(" + strings.Join(lo.Map(p.Args, func(arg Pattern, _ int) string { return PatternString(arg) }), ", ") + ")"
	}
	return "?"
}
