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

// Type-variable cell. A cell may be aliased by any number of types; linking a cell is visible through
// every alias.
type Var struct {
	link  Type
	name  string
	id    int
	level int
	kind  VarKind
}

// Instance of a type-variable
type VarKind uint8

const (
	// Unbound type-variable
	UnboundVar VarKind = iota
	// Linked type-variable
	LinkVar
	// Generic type-variable
	GenericVar
	// Named type-parameter, pending resolution against a generics scope
	ParamVar
)

// Create a new unbound type-variable with the given id and binding-level.
func NewVar(id, level int) *Var {
	return &Var{id: id, level: level}
}

// Create a new named unbound type-variable with the given id and binding-level.
func NewNamedVar(id, level int, name string) *Var {
	return &Var{id: id, level: level, name: name}
}

// Create a new generic type-variable.
func NewGenericVar(id int, name string) *Var {
	return &Var{id: id, name: name, kind: GenericVar}
}

// Create a named type-parameter.
func NewParam(name string) *Var {
	return &Var{name: name, kind: ParamVar}
}

// Kind indicates whether the type-variable is unbound, linked, generic or a named parameter.
func (tv *Var) Kind() VarKind { return tv.kind }

// Id returns the unique identifier of the type-variable (0 for parameters).
func (tv *Var) Id() int { return tv.id }

// Level returns the adjusted binding-level of an unbound type-variable.
func (tv *Var) Level() int { return tv.level }

// Name returns the (optional) name of the type-variable.
func (tv *Var) Name() string { return tv.name }

// Link returns the type which the type-variable is bound to, if the type-variable is linked.
func (tv *Var) Link() Type { return tv.link }

func (tv *Var) IsUnboundVar() bool { return tv.kind == UnboundVar }
func (tv *Var) IsLinkVar() bool    { return tv.kind == LinkVar }
func (tv *Var) IsGenericVar() bool { return tv.kind == GenericVar }
func (tv *Var) IsParam() bool      { return tv.kind == ParamVar }

// IsWildcard reports whether the type-variable is a parameter whose name starts with an underscore.
func (tv *Var) IsWildcard() bool {
	return tv.kind == ParamVar && len(tv.name) > 0 && tv.name[0] == '_'
}

// Set the adjusted binding-level of an unbound type-variable.
func (tv *Var) SetLevel(level int) { tv.level = level }

// Set the type which the type-variable is bound to.
func (tv *Var) SetLink(t Type) { tv.link, tv.kind = t, LinkVar }

// VarTracker allocates type-variables with unique ids. A tracker replaces a process-wide counter;
// every inference session owns exactly one tracker, and all environments of the session share it.
type VarTracker struct {
	NextId int
}

// New creates an unbound type-variable at the given binding-level.
func (vt *VarTracker) New(level int) *Var {
	vt.NextId++
	return NewVar(vt.NextId, level)
}

// NewNamed creates a named unbound type-variable at the given binding-level.
func (vt *VarTracker) NewNamed(level int, name string) *Var {
	vt.NextId++
	return NewNamedVar(vt.NextId, level, name)
}

// NewGeneric creates a generic type-variable.
func (vt *VarTracker) NewGeneric(name string) *Var {
	vt.NextId++
	return NewGenericVar(vt.NextId, name)
}

// NewList creates count unbound type-variables at the given binding-level.
func (vt *VarTracker) NewList(level, count int) []Type {
	vars := make([]Type, count)
	for i := range vars {
		vars[i] = vt.New(level)
	}
	return vars
}
