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

package poy

import (
	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/extensions"
	"github.com/nathsou/poy-sub000/internal/scope"
	"github.com/nathsou/poy-sub000/trs"
	"github.com/nathsou/poy-sub000/types"
)

// VarInfo describes a variable binding.
type VarInfo struct {
	// Declared type, possibly generalized. Named parameters listed in Generics are instantiated on use.
	Ty       types.Type
	Mut      bool
	Pub      bool
	Generics []string
	// Declared (ambient) values are implemented natively.
	Native bool
}

// ModuleInfo describes a nested or imported module.
type ModuleInfo struct {
	Name string
	Pub  bool
	Env  *TypeEnv
}

// StructInfo describes a declared struct.
type StructInfo struct {
	Decl *ast.StructDecl
	// Path of the declaring module
	Path []string
	// Field types in declaration order; the struct's generics appear as named parameters.
	Fields []types.Type
}

// EnumInfo describes a declared enum.
type EnumInfo struct {
	Decl *ast.EnumDecl
	// Path of the declaring module
	Path []string
	// Argument types of each variant in declaration order; the enum's generics appear as named
	// parameters.
	Variants [][]types.Type
}

// Slot for the return type of the function being inferred.
type functionFrame struct {
	ret        types.Type
	isIterator bool
}

// TypeEnv is a type-environment containing mappings from identifiers to declared types, structs,
// enums, modules, type-rules and extensions. Each kind of binding is held in its own lexically
// chained scope.
//
// A type-environment cannot be used concurrently for inference.
type TypeEnv struct {
	parent *TypeEnv
	ctx    *InferenceContext

	variables   *scope.Scope[*VarInfo]
	modules     *scope.Scope[*ModuleInfo]
	structs     *scope.Scope[*StructInfo]
	enums       *scope.Scope[*EnumInfo]
	generics    *scope.Scope[types.Type]
	typeImports *scope.Scope[[]string]
	typeRules   *trs.TRS
	extensions  *extensions.Scope

	modulePath []string
	letLevel   int
	fn         *functionFrame
	loopDepth  int
}

// Create a type-environment. The new environment will inherit bindings from the parent, if the
// parent is not nil.
func (ti *InferenceContext) NewTypeEnv(parent *TypeEnv) *TypeEnv {
	if parent != nil {
		return parent.child()
	}
	return &TypeEnv{
		ctx:         ti,
		variables:   scope.New[*VarInfo](nil),
		modules:     scope.New[*ModuleInfo](nil),
		structs:     scope.New[*StructInfo](nil),
		enums:       scope.New[*EnumInfo](nil),
		generics:    scope.New[types.Type](nil),
		typeImports: scope.New[[]string](nil),
		typeRules:   trs.New(nil),
		extensions:  extensions.NewScope(nil),
	}
}

func (env *TypeEnv) child() *TypeEnv {
	return &TypeEnv{
		parent:      env,
		ctx:         env.ctx,
		variables:   env.variables.Child(),
		modules:     env.modules.Child(),
		structs:     env.structs.Child(),
		enums:       env.enums.Child(),
		generics:    env.generics.Child(),
		typeImports: env.typeImports.Child(),
		typeRules:   trs.New(env.typeRules),
		extensions:  extensions.NewScope(env.extensions),
		modulePath:  env.modulePath,
		letLevel:    env.letLevel,
		fn:          env.fn,
		loopDepth:   env.loopDepth,
	}
}

// Parent returns the enclosing environment, or nil.
func (env *TypeEnv) Parent() *TypeEnv { return env.parent }

// Context returns the inference context which created the environment.
func (env *TypeEnv) Context() *InferenceContext { return env.ctx }

// Path returns the path of the module the environment belongs to.
func (env *TypeEnv) Path() []string { return env.modulePath }

// Declare a (possibly generalized) type for an identifier within the type-environment.
func (env *TypeEnv) Declare(name string, t types.Type) {
	env.variables.Declare(name, &VarInfo{Ty: t, Pub: true})
}

// Lookup the binding for an identifier within the type-environment or its ancestors.
func (env *TypeEnv) Lookup(name string) (*VarInfo, bool) { return env.variables.Lookup(name) }

// LookupVarType returns the declared type of a variable.
func (env *TypeEnv) LookupVarType(name string) (types.Type, bool) {
	info, ok := env.variables.Lookup(name)
	if !ok {
		return nil, false
	}
	return info.Ty, true
}

// LookupStruct returns the struct declared with the given name.
func (env *TypeEnv) LookupStruct(name string) (*StructInfo, bool) { return env.structs.Lookup(name) }

// LookupEnum returns the enum declared with the given name.
func (env *TypeEnv) LookupEnum(name string) (*EnumInfo, bool) { return env.enums.Lookup(name) }

// LookupModule returns the module declared or imported with the given name.
func (env *TypeEnv) LookupModule(name string) (*ModuleInfo, bool) { return env.modules.Lookup(name) }

// Rules returns the type-level rewrite rules of the environment.
func (env *TypeEnv) Rules() *trs.TRS { return env.typeRules }

// Extensions returns the extension scope of the environment.
func (env *TypeEnv) Extensions() *extensions.Scope { return env.extensions }

func (env *TypeEnv) newVar() *types.Var { return env.ctx.vt.New(env.letLevel) }

func (env *TypeEnv) declareAll(vars map[string]*VarInfo) {
	for name, info := range vars {
		env.variables.Declare(name, info)
	}
}

var _ trs.Env = (*TypeEnv)(nil)
