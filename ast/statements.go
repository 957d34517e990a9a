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

// Stmt is the base for all statements within blocks.
type Stmt interface {
	StmtName() string
}

var (
	_ Stmt = (*Let)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*For)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*Yield)(nil)
	_ Stmt = (*Break)(nil)
)

// Local binding: `let (a, b) = value`, `let mut x: Num = 0`
type Let struct {
	Mut   bool
	Lhs   Pattern
	Ann   types.Type
	Value Expr
}

func (s *Let) StmtName() string { return "Let" }

// Expression evaluated for its effect
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) StmtName() string { return "ExprStmt" }

// Assignment: `x = 1`, `p.x += 2`
type Assign struct {
	Lhs Expr
	// "=", "+=", "-=", ...
	Op  string
	Rhs Expr
}

func (s *Assign) StmtName() string { return "Assign" }

// Loop: `while cond { body }`
type While struct {
	Cond Expr
	Body Expr
}

func (s *While) StmtName() string { return "While" }

// Loop over the elements of an array or iterator: `for x in xs { body }`
type For struct {
	Name     string
	Iterator Expr
	Body     Expr
}

func (s *For) StmtName() string { return "For" }

// `return expr`. Expr may be nil.
type Return struct {
	Expr Expr
}

func (s *Return) StmtName() string { return "Return" }

// `yield expr` turns the enclosing function into an iterator.
type Yield struct {
	Expr Expr
}

func (s *Yield) StmtName() string { return "Yield" }

// `break`
type Break struct{}

func (s *Break) StmtName() string { return "Break" }
