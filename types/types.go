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

// Type is the base interface for all types: either a type-variable (*Var) or an applied type
// constructor (*Fun).
type Type interface {
	TypeName() string
}

func (t *Var) TypeName() string { return "Var" }
func (t *Fun) TypeName() string { return "Fun" }

// Applied type constructor: `Num`, `Array<Str>`, `@if<c, a, b>`
//
// Fun values are immutable once constructed; only type-variable cells are mutated.
type Fun struct {
	Name string
	Args []Type
	// Optional path of the defining module, for qualified display
	Path []string
}

// Names of built-in type constructors:
const (
	NumName      = "Num"
	BoolName     = "Bool"
	StrName      = "Str"
	UnitName     = "Unit"
	ArrayName    = "Array"
	TupleName    = "Tuple"
	FunctionName = "Function"
	IteratorName = "Iterator"
	ConsName     = "Cons"
	NilName      = "Nil"
	TrueName     = "True"
	FalseName    = "False"
)

var (
	Num   = &Fun{Name: NumName}
	Bool  = &Fun{Name: BoolName}
	Str   = &Fun{Name: StrName}
	Unit  = &Fun{Name: UnitName}
	Nil   = &Fun{Name: NilName}
	True  = &Fun{Name: TrueName}
	False = &Fun{Name: FalseName}
)

// Create a type constructor application.
func NewFun(name string, args ...Type) *Fun {
	return &Fun{Name: name, Args: args}
}

// Array type: `Array<a>`
func Array(elem Type) *Fun { return &Fun{Name: ArrayName, Args: []Type{elem}} }

// Iterator type: `Iterator<a>`
func Iterator(elem Type) *Fun { return &Fun{Name: IteratorName, Args: []Type{elem}} }

// Cons-list cell: `Cons<head, tail>`
func Cons(head, tail Type) *Fun { return &Fun{Name: ConsName, Args: []Type{head, tail}} }

// List builds a cons-list type from a slice of types.
func List(elems []Type) Type {
	var list Type = Nil
	for i := len(elems) - 1; i >= 0; i-- {
		list = Cons(elems[i], list)
	}
	return list
}

// ListElems decodes a cons-list type. ok is false when the list is not terminated by Nil.
func ListElems(t Type) (elems []Type, ok bool) {
	for {
		f, isFun := RealType(t).(*Fun)
		if !isFun {
			return elems, false
		}
		switch {
		case f.Name == NilName && len(f.Args) == 0:
			return elems, true
		case f.Name == ConsName && len(f.Args) == 2:
			elems = append(elems, f.Args[0])
			t = f.Args[1]
		default:
			return elems, false
		}
	}
}

// Tuple type: `(a, b)`. Elements are stored as a cons-list.
func Tuple(elems ...Type) *Fun { return &Fun{Name: TupleName, Args: []Type{List(elems)}} }

// Function type: `(a, b) -> c`. Arguments are stored as a cons-list.
func Function(args []Type, ret Type) *Fun {
	return &Fun{Name: FunctionName, Args: []Type{List(args), ret}}
}

// FunctionParts decodes a function type. ok is false when t is not a function type with a closed
// argument list.
func FunctionParts(t Type) (args []Type, ret Type, ok bool) {
	f, isFun := RealType(t).(*Fun)
	if !isFun || f.Name != FunctionName || len(f.Args) != 2 {
		return nil, nil, false
	}
	args, ok = ListElems(f.Args[0])
	return args, f.Args[1], ok
}

// TupleElems decodes a tuple type.
func TupleElems(t Type) (elems []Type, ok bool) {
	f, isFun := RealType(t).(*Fun)
	if !isFun || f.Name != TupleName || len(f.Args) != 1 {
		return nil, false
	}
	return ListElems(f.Args[0])
}

// Get the underlying type for a chain of linked type-variables, when applicable.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || !tv.IsLinkVar() {
			return t
		}
		t = tv.Link()
	}
}

// Unlink dereferences a chain of linked type-variables, compressing the chain so that every
// variable along it links directly to the result.
func Unlink(t Type) Type {
	tv, ok := t.(*Var)
	if !ok || !tv.IsLinkVar() {
		return t
	}
	real := RealType(t)
	for {
		next, ok := t.(*Var)
		if !ok || !next.IsLinkVar() {
			return real
		}
		t = next.link
		next.link = real
	}
}

// Eq reports whether two types are structurally equal after dereferencing links.
func Eq(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	switch a := a.(type) {
	case *Var:
		b, ok := b.(*Var)
		if !ok || a.kind != b.kind {
			return false
		}
		if a.kind == ParamVar {
			return a.name == b.name
		}
		return a.id == b.id
	case *Fun:
		b, ok := b.(*Fun)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Eq(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsFun reports whether t dereferences to a type constructor with the given name.
func IsFun(t Type, name string) bool {
	f, ok := RealType(t).(*Fun)
	return ok && f.Name == name
}

// Specificity is a crude metric used to rank competing extension candidates; lower is more specific.
func Specificity(t Type) int {
	switch t := RealType(t).(type) {
	case *Fun:
		n := 1000
		for _, arg := range t.Args {
			n += Specificity(arg)
		}
		return n
	default:
		return 1
	}
}
