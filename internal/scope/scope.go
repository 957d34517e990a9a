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

// Package scope provides lexically chained scopes backed by persistent maps.
package scope

import (
	"github.com/benbjohnson/immutable"
)

// Scope is a lexically chained mapping from names to values. Lookups search the scope's own
// table first, then delegate to the parent scope.
//
// A Scope cannot be used concurrently.
type Scope[T any] struct {
	parent  *Scope[T]
	members *immutable.SortedMap[string, T]
}

// New creates a scope inheriting bindings from parent (which may be nil).
func New[T any](parent *Scope[T]) *Scope[T] {
	return &Scope[T]{parent: parent, members: immutable.NewSortedMap[string, T](nil)}
}

// Child creates a new scope whose parent is s.
func (s *Scope[T]) Child() *Scope[T] { return New(s) }

// Parent returns the enclosing scope, or nil.
func (s *Scope[T]) Parent() *Scope[T] { return s.parent }

// Declare binds name to v in the scope's own table, shadowing any binding in an enclosing scope.
func (s *Scope[T]) Declare(name string, v T) { s.members = s.members.Set(name, v) }

// Lookup searches the scope chain for name.
func (s *Scope[T]) Lookup(name string) (v T, ok bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok = sc.members.Get(name); ok {
			return v, true
		}
	}
	return v, false
}

// LookupOwn searches only the scope's own table.
func (s *Scope[T]) LookupOwn(name string) (v T, ok bool) {
	if s == nil {
		return v, false
	}
	return s.members.Get(name)
}

// Has reports whether name is bound anywhere within the scope chain.
func (s *Scope[T]) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Len returns the number of bindings in the scope's own table.
func (s *Scope[T]) Len() int { return s.members.Len() }

// Range calls f for each binding in the scope's own table, in name order, until f returns false.
func (s *Scope[T]) Range(f func(name string, v T) bool) {
	itr := s.members.Iterator()
	for !itr.Done() {
		name, v, _ := itr.Next()
		if !f(name, v) {
			return
		}
	}
}

// RangeAll calls f for each visible binding within the scope chain (innermost scopes first, shadowed
// bindings skipped), until f returns false.
func (s *Scope[T]) RangeAll(f func(name string, v T) bool) {
	seen := make(map[string]bool)
	for sc := s; sc != nil; sc = sc.parent {
		done := false
		sc.Range(func(name string, v T) bool {
			if seen[name] {
				return true
			}
			seen[name] = true
			if !f(name, v) {
				done = true
				return false
			}
			return true
		})
		if done {
			return
		}
	}
}

// Multi is a lexically chained multimap from names to lists of values, appended in declaration order.
type Multi[T any] struct {
	parent  *Multi[T]
	members *immutable.SortedMap[string, *immutable.List[T]]
}

// NewMulti creates a multimap inheriting entries from parent (which may be nil).
func NewMulti[T any](parent *Multi[T]) *Multi[T] {
	return &Multi[T]{parent: parent, members: immutable.NewSortedMap[string, *immutable.List[T]](nil)}
}

// Parent returns the enclosing multimap, or nil.
func (m *Multi[T]) Parent() *Multi[T] { return m.parent }

// Add appends v to the list of values for name in the multimap's own table.
func (m *Multi[T]) Add(name string, v T) {
	list, ok := m.members.Get(name)
	if !ok {
		list = immutable.NewList[T]()
	}
	m.members = m.members.Set(name, list.Append(v))
}

// Own returns the values declared for name in the multimap's own table, in declaration order.
func (m *Multi[T]) Own(name string) []T {
	list, ok := m.members.Get(name)
	if !ok {
		return nil
	}
	vs := make([]T, 0, list.Len())
	itr := list.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		vs = append(vs, v)
	}
	return vs
}

// Lookup returns the values for name from the innermost multimap which declares name.
func (m *Multi[T]) Lookup(name string) []T {
	for mm := m; mm != nil; mm = mm.parent {
		if vs := mm.Own(name); len(vs) > 0 {
			return vs
		}
	}
	return nil
}

// Collect returns the values for name from every multimap within the chain, innermost first.
func (m *Multi[T]) Collect(name string) []T {
	var vs []T
	for mm := m; mm != nil; mm = mm.parent {
		vs = append(vs, mm.Own(name)...)
	}
	return vs
}

// Range calls f for each name and value in the multimap's own table until f returns false.
func (m *Multi[T]) Range(f func(name string, v T) bool) {
	itr := m.members.Iterator()
	for !itr.Done() {
		name, list, _ := itr.Next()
		litr := list.Iterator()
		for !litr.Done() {
			_, v := litr.Next()
			if !f(name, v) {
				return
			}
		}
	}
}
