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

// poy provides type inference for a polymorphic language with structs, enums, extensions and
// type-level rewrite rules.
//
// The type-system is Hindley-Milner with let-polymorphism. Generalization uses binding-levels
// instead of scanning the environment for free type-variables.
//
//
// Supported Features:
//
//   * Mutually-recursive (generic) function declarations within grouped let bindings
//   * Explicit generics, with explicit type arguments at use sites
//   * Generic structs and enums, with tuple, variant and struct patterns
//   * Extensions: members attached to any type, resolved by the most specific subject
//   * Type-level rewrite rules (aliases and type-level computation through `@` externals)
//   * Pattern-matching compiled to decision trees, with exhaustiveness checking
//   * Iterators through `yield`
//   * Mutable bindings and struct fields with the value restriction
//   * Nested modules and imports with public/private visibility
//
//
// Links:
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Compiling Pattern Matching to Good Decision Trees (Luc Maranget): http://moscova.inria.fr/~maranget/papers/ml05e-maranget.pdf
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Value restriction: https://en.wikipedia.org/wiki/Value_restriction
package poy
