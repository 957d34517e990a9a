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
	"github.com/nathsou/poy-sub000/types"
)

// Decl is the base for all module-level declarations.
type Decl interface {
	DeclName() string
}

var (
	_ Decl = (*LetDecl)(nil)
	_ Decl = (*TypeDecl)(nil)
	_ Decl = (*StructDecl)(nil)
	_ Decl = (*EnumDecl)(nil)
	_ Decl = (*ExtendDecl)(nil)
	_ Decl = (*DeclareVar)(nil)
	_ Decl = (*DeclareExtension)(nil)
	_ Decl = (*ModuleDecl)(nil)
	_ Decl = (*ImportDecl)(nil)
)

// Module-level binding: `pub let x = 1`, `fun f(x) { x }`
type LetDecl struct {
	Pub   bool
	Mut   bool
	Name  string
	Ann   types.Type
	Value Expr
}

func (d *LetDecl) DeclName() string { return "LetDecl" }

// Type-level rewrite rule: `type Vec<a> = Array<a>`. Lhs must be a type constructor application.
type TypeDecl struct {
	Pub bool
	Lhs types.Type
	Rhs types.Type
}

func (d *TypeDecl) DeclName() string { return "TypeDecl" }

// `struct Point<T> { x: T, mut y: T }`
type StructDecl struct {
	Pub      bool
	Name     string
	Generics []string
	Fields   []StructDeclField
}

type StructDeclField struct {
	Mut  bool
	Name string
	Ty   types.Type
}

func (d *StructDecl) DeclName() string { return "StructDecl" }

// Field returns the declared field with the given name.
func (d *StructDecl) Field(name string) (StructDeclField, int, bool) {
	for i, f := range d.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return StructDeclField{}, -1, false
}

// `enum Option<T> { None, Some(T) }`
type EnumDecl struct {
	Pub      bool
	Name     string
	Generics []string
	Variants []EnumVariant
}

type EnumVariant struct {
	Name string
	Args []types.Type
}

func (d *EnumDecl) DeclName() string { return "EnumDecl" }

// Variant returns the variant with the given name.
func (d *EnumDecl) Variant(name string) (EnumVariant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// VariantNames returns the names of every variant, in declaration order.
func (d *EnumDecl) VariantNames() []string {
	names := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		names[i] = v.Name
	}
	return names
}

// Extension block:
//
//	extend<T> Array<T> {
//	    fun len() { ... }
//	    static fun empty() { ... }
//	}
type ExtendDecl struct {
	Generics []string
	Subject  types.Type
	Members  []ExtendMember
}

type ExtendMember struct {
	Pub    bool
	Static bool
	Name   string
	Ann    types.Type
	Value  Expr
	// UUID is set during inference.
	UUID string
}

func (d *ExtendDecl) DeclName() string { return "ExtendDecl" }

// Ambient value implemented natively: `declare fun sqrt(x: Num): Num`
type DeclareVar struct {
	Pub      bool
	Name     string
	Generics []string
	Ty       types.Type
}

func (d *DeclareVar) DeclName() string { return "DeclareVar" }

// Ambient extension members implemented natively: `declare<T> Array<T> { len: Num }`
type DeclareExtension struct {
	Generics []string
	Subject  types.Type
	Members  []DeclareMember
}

type DeclareMember struct {
	Static bool
	Name   string
	Ty     types.Type
	UUID   string
}

func (d *DeclareExtension) DeclName() string { return "DeclareExtension" }

// Nested module: `pub module Geo { ... }`
type ModuleDecl struct {
	Pub   bool
	Name  string
	Decls []Decl
}

func (d *ModuleDecl) DeclName() string { return "ModuleDecl" }

// `import Geo.Shapes { Point, area }`; an empty member list imports every public member.
type ImportDecl struct {
	Path    string
	Members []string
}

func (d *ImportDecl) DeclName() string { return "ImportDecl" }
