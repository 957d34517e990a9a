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
	"strings"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/extensions"
	"github.com/nathsou/poy-sub000/types"
)

// Infer the type of e within env. Every sub-expression of e is annotated with its type; expressions
// which already carry a type are not inferred again.
func (env *TypeEnv) Infer(e ast.Expr) (types.Type, error) { return env.inferExpr(e) }

func (env *TypeEnv) inferExpr(e ast.Expr) (types.Type, error) {
	if t := e.Type(); t != nil {
		return t, nil
	}
	t, err := env.infer(e)
	if err != nil {
		return nil, err
	}
	e.SetType(t)
	return t, nil
}

func (env *TypeEnv) inferExprs(es []ast.Expr) ([]types.Type, error) {
	ts := make([]types.Type, len(es))
	for i, e := range es {
		var err error
		if ts[i], err = env.inferExpr(e); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func (env *TypeEnv) infer(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Literal:
		switch e.Kind {
		case ast.UnitLit:
			return types.Unit, nil
		case ast.BoolLit:
			return types.Bool, nil
		case ast.NumLit:
			return types.Num, nil
		case ast.StrLit:
			return types.Str, nil
		}
		diag.Violation("unknown literal kind %d", e.Kind)

	case *ast.Variable:
		info, ok := env.variables.Lookup(e.Name)
		if !ok {
			return nil, diag.Errorf(diag.CodeUndefinedVariable, "undefined variable %s", e.Name)
		}
		return env.instantiateVar(e.Name, info, e.TypeArgs)

	case *ast.Unary:
		return env.inferUnary(e)

	case *ast.Binary:
		return env.inferBinary(e)

	case *ast.Block:
		block := env.child()
		for _, s := range e.Stmts {
			if err := block.inferStmt(s); err != nil {
				return nil, err
			}
		}
		if e.Ret == nil {
			return types.Unit, nil
		}
		return block.inferExpr(e.Ret)

	case *ast.Tuple:
		elems, err := env.inferExprs(e.Elems)
		if err != nil {
			return nil, err
		}
		return types.Tuple(elems...), nil

	case *ast.Array:
		elem := env.newVar()
		for _, x := range e.Elems {
			t, err := env.inferExpr(x)
			if err != nil {
				return nil, err
			}
			if err := env.unify(elem, t); err != nil {
				return nil, err
			}
		}
		return types.Array(elem), nil

	case *ast.Fun:
		return env.inferFun(e, nil)

	case *ast.Call:
		return env.inferCall(e)

	case *ast.If:
		cond, err := env.inferExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		if err := env.unify(cond, types.Bool); err != nil {
			return nil, err
		}
		then, err := env.inferExpr(e.Then)
		if err != nil {
			return nil, err
		}
		if e.Else == nil {
			if err := env.unify(then, types.Unit); err != nil {
				return nil, err
			}
			return types.Unit, nil
		}
		els, err := env.inferExpr(e.Else)
		if err != nil {
			return nil, err
		}
		if err := env.unify(then, els); err != nil {
			return nil, err
		}
		return then, nil

	case *ast.UseIn:
		t, _, err := env.inferBinding("", e.Value, e.Ann, false)
		if err != nil {
			return nil, err
		}
		rhs := env.child()
		vars := make(map[string]*VarInfo)
		if err := rhs.inferPattern(e.Lhs, t, vars); err != nil {
			return nil, err
		}
		rhs.declareAll(vars)
		return rhs.inferExpr(e.Rhs)

	case *ast.Match:
		return env.inferMatch(e)

	case *ast.FieldAccess:
		return env.inferFieldAccess(e)

	case *ast.ExtensionAccess:
		return env.inferExtensionAccess(e)

	case *ast.ModuleAccess:
		mod, err := env.lookupModulePath(e.Path)
		if err != nil {
			return nil, err
		}
		info, ok := mod.Env.variables.LookupOwn(e.Member)
		if !ok {
			return nil, diag.Errorf(diag.CodeUndefinedMember, "module %s has no member %s", strings.Join(e.Path, "."), e.Member)
		}
		if !info.Pub {
			return nil, diag.Errorf(diag.CodePrivateAccess, "%s.%s is private", strings.Join(e.Path, "."), e.Member)
		}
		return env.instantiateVar(e.Member, info, nil)

	case *ast.Struct:
		return env.inferStruct(e)

	case *ast.TupleAccess:
		lhs, err := env.inferExpr(e.Lhs)
		if err != nil {
			return nil, err
		}
		elems, ok := types.TupleElems(lhs)
		if !ok {
			return nil, diag.Errorf(diag.CodeTypeMismatch, "cannot access element %d of non-tuple type %s", e.Index, types.TypeString(lhs))
		}
		if e.Index < 0 || e.Index >= len(elems) {
			return nil, diag.Errorf(diag.CodeArityMismatch, "tuple index %d out of range for %s", e.Index, types.TypeString(lhs))
		}
		return elems[e.Index], nil

	case *ast.VariantShorthand:
		return env.inferVariant(e)
	}
	diag.Violation("unhandled expression %T", e)
	return nil, nil
}

// instantiateVar instantiates the type of a binding. Explicit type arguments must match the generics
// of the binding; without type arguments, each generic is instantiated with a fresh type-variable.
func (env *TypeEnv) instantiateVar(name string, info *VarInfo, typeArgs []types.Type) (types.Type, error) {
	if len(typeArgs) > 0 && len(typeArgs) != len(info.Generics) {
		return nil, diag.Errorf(diag.CodeArityMismatch, "%s expects %d type arguments, got %d", name, len(info.Generics), len(typeArgs))
	}
	if len(info.Generics) == 0 {
		t, _ := types.Instantiate(info.Ty, env.letLevel, env.generics, &env.ctx.vt)
		return t, nil
	}
	args := make([]types.Type, len(info.Generics))
	for i := range args {
		if len(typeArgs) == 0 {
			args[i] = env.newVar()
			continue
		}
		var err error
		if args[i], err = env.ResolveType(typeArgs[i]); err != nil {
			return nil, err
		}
	}
	return env.instantiateWith(info.Ty, info.Generics, args), nil
}

// inferFun infers a function. gvars holds the type-variables bound to the function's generics; when
// nil, fresh type-variables are created.
func (env *TypeEnv) inferFun(e *ast.Fun, gvars []*types.Var) (types.Type, error) {
	fenv := env.child()
	fenv.fn = &functionFrame{ret: env.newVar()}
	fenv.loopDepth = 0
	for i, g := range e.Generics {
		if gvars != nil {
			fenv.generics.Declare(g, gvars[i])
		} else {
			fenv.generics.Declare(g, env.ctx.vt.NewNamed(env.letLevel, g))
		}
	}

	args := make([]types.Type, len(e.Args))
	vars := make(map[string]*VarInfo)
	for i, arg := range e.Args {
		if arg.Ann != nil {
			var err error
			if args[i], err = fenv.ResolveType(arg.Ann); err != nil {
				return nil, err
			}
		} else {
			args[i] = env.newVar()
		}
		if err := fenv.inferPattern(arg.Pat, args[i], vars); err != nil {
			return nil, err
		}
	}
	fenv.declareAll(vars)

	body, err := fenv.inferExpr(e.Body)
	if err != nil {
		return nil, err
	}
	var ret types.Type
	if fenv.fn.isIterator {
		e.IsIterator = true
		ret = types.Iterator(fenv.fn.ret)
	} else {
		if err := fenv.unify(fenv.fn.ret, body); err != nil {
			return nil, err
		}
		ret = fenv.fn.ret
	}
	if e.Ret != nil {
		ann, err := fenv.ResolveType(e.Ret)
		if err != nil {
			return nil, err
		}
		if err := fenv.unify(ann, ret); err != nil {
			return nil, err
		}
	}
	return types.Function(args, ret), nil
}

func (env *TypeEnv) inferCall(e *ast.Call) (types.Type, error) {
	ft, err := env.inferExpr(e.Fun)
	if err != nil {
		return nil, err
	}
	args, err := env.inferExprs(e.Args)
	if err != nil {
		return nil, err
	}
	if params, _, ok := types.FunctionParts(ft); ok && len(params) != len(args) {
		return nil, diag.Errorf(diag.CodeArityMismatch, "%s expects %d arguments, got %d", ast.ExprString(e.Fun), len(params), len(args))
	}
	ret := env.newVar()
	if err := env.unify(ft, types.Function(args, ret)); err != nil {
		return nil, err
	}
	return ret, nil
}

// Binding helpers:

// inferBinding infers a bound value one let-level deeper, generalizing the result when generalize is
// set. A function bound to a name may refer to itself.
func (env *TypeEnv) inferBinding(name string, value ast.Expr, ann types.Type, generalize bool) (types.Type, []string, error) {
	env.letLevel++
	var self *types.Var
	if _, isFun := value.(*ast.Fun); isFun && name != "" {
		self = env.newVar()
		env.variables.Declare(name, &VarInfo{Ty: self})
	}
	t, gvars, err := env.inferBound(value, ann)
	if err == nil && self != nil {
		err = env.unify(self, t)
	}
	env.letLevel--
	if err != nil {
		return nil, nil, err
	}
	if !generalize {
		// monomorphic: later bindings must not generalize its type-variables
		types.LowerLevels(t, env.letLevel)
		return t, nil, nil
	}
	t, generics := env.generalize(t, gvars)
	return t, generics, nil
}

// inferBound infers a bound value and unifies it with its annotation, returning the type-variables
// bound to the generics of a function value.
func (env *TypeEnv) inferBound(value ast.Expr, ann types.Type) (types.Type, []*types.Var, error) {
	var (
		t     types.Type
		err   error
		gvars []*types.Var
	)
	benv := env
	if fn, ok := value.(*ast.Fun); ok && len(fn.Generics) > 0 && fn.Type() == nil {
		benv = env.child()
		gvars = make([]*types.Var, len(fn.Generics))
		for i, g := range fn.Generics {
			gvars[i] = env.ctx.vt.NewNamed(env.letLevel, g)
			benv.generics.Declare(g, gvars[i])
		}
		if t, err = benv.inferFun(fn, gvars); err == nil {
			fn.SetType(t)
		}
	} else {
		t, err = env.inferExpr(value)
	}
	if err != nil {
		return nil, nil, err
	}
	if ann != nil {
		at, err := benv.ResolveType(ann)
		if err != nil {
			return nil, nil, err
		}
		if err := benv.unify(at, t); err != nil {
			return nil, nil, err
		}
	}
	return t, gvars, nil
}

// Member access:

func (env *TypeEnv) inferFieldAccess(e *ast.FieldAccess) (types.Type, error) {
	lhs, err := env.inferExpr(e.Lhs)
	if err != nil {
		return nil, err
	}
	var structName string
	if f, ok := types.RealType(lhs).(*types.Fun); ok {
		if info, ok := env.structs.Lookup(f.Name); ok {
			structName = f.Name
			if _, idx, ok := info.Decl.Field(e.Field); ok {
				return env.fieldType(info, idx, f)
			}
		}
	}

	cand, err := env.extensions.Lookup(lhs, e.Field, env.letLevel, &env.ctx.vt)
	if err != nil {
		if structName != "" && diag.CodeOf(err) == diag.CodeNoExtension {
			return nil, diag.Errorf(diag.CodeUndefinedMember, "struct %s has no field or extension %s", structName, e.Field)
		}
		return nil, err
	}
	if err := env.unify(cand.Subject, lhs); err != nil {
		return nil, err
	}
	e.ExtensionUUID, e.IsNative, e.IsStatic = cand.Ext.UUID, cand.Ext.Declared, cand.Ext.Static
	return cand.Ty, nil
}

// fieldType instantiates the type of a struct field for a struct type.
func (env *TypeEnv) fieldType(info *StructInfo, idx int, t *types.Fun) (types.Type, error) {
	if len(t.Args) != len(info.Decl.Generics) {
		return nil, diag.Errorf(diag.CodeArityMismatch, "struct %s expects %d type arguments, got %d", info.Decl.Name, len(info.Decl.Generics), len(t.Args))
	}
	return env.instantiateWith(info.Fields[idx], info.Decl.Generics, t.Args), nil
}

func (env *TypeEnv) inferExtensionAccess(e *ast.ExtensionAccess) (types.Type, error) {
	subject, err := env.ResolveType(e.Subject)
	if err != nil {
		return nil, err
	}
	cand, err := env.extensions.Lookup(subject, e.Member, env.letLevel, &env.ctx.vt)
	if err != nil {
		return nil, err
	}
	if cand.Ext.Declared {
		return nil, diag.Errorf(diag.CodeUndefinedMember, "declared member %s::%s cannot be accessed directly", types.TypeString(subject), e.Member)
	}
	if err := env.bindTypeArgs(cand, e.TypeArgs); err != nil {
		return nil, err
	}
	if err := env.unify(cand.Subject, subject); err != nil {
		return nil, err
	}
	e.ExtensionUUID = cand.Ext.UUID

	t := cand.Ty
	if !cand.Ext.Static {
		if args, ret, ok := types.FunctionParts(t); ok {
			t = types.Function(append([]types.Type{cand.Subject}, args...), ret)
		}
	}
	return t, nil
}

// bindTypeArgs unifies explicit type arguments with the instances of an extension's generics.
func (env *TypeEnv) bindTypeArgs(cand *extensions.Candidate, typeArgs []types.Type) error {
	if len(typeArgs) == 0 {
		return nil
	}
	ext := cand.Ext
	if len(typeArgs) != len(ext.GenericIds) {
		return diag.Errorf(diag.CodeArityMismatch, "%s::%s expects %d type arguments, got %d",
			types.TypeString(ext.Subject), ext.Member, len(ext.GenericIds), len(typeArgs))
	}
	for i, arg := range typeArgs {
		inst, ok := cand.Inst[ext.GenericIds[i]]
		if !ok {
			continue
		}
		t, err := env.ResolveType(arg)
		if err != nil {
			return err
		}
		if err := env.unify(inst, t); err != nil {
			return err
		}
	}
	return nil
}

// Modules, structs and enums:

// lookupModulePath resolves a module path. The first segment is looked up lexically; every following
// segment must be public.
func (env *TypeEnv) lookupModulePath(path []string) (*ModuleInfo, error) {
	if len(path) == 0 {
		diag.Violation("empty module path")
	}
	mod, ok := env.modules.Lookup(path[0])
	if !ok {
		return nil, diag.Errorf(diag.CodeUndefinedModule, "undefined module %s", path[0])
	}
	for i, name := range path[1:] {
		sub, ok := mod.Env.modules.LookupOwn(name)
		if !ok {
			return nil, diag.Errorf(diag.CodeUndefinedModule, "module %s has no submodule %s", strings.Join(path[:i+1], "."), name)
		}
		if !sub.Pub {
			return nil, diag.Errorf(diag.CodePrivateAccess, "%s is private", strings.Join(path[:i+2], "."))
		}
		mod = sub
	}
	return mod, nil
}

func (env *TypeEnv) lookupStruct(path []string, name string) (*StructInfo, error) {
	if len(path) == 0 {
		info, ok := env.structs.Lookup(name)
		if !ok {
			return nil, diag.Errorf(diag.CodeUndefinedType, "undefined struct %s", name)
		}
		return info, nil
	}
	mod, err := env.lookupModulePath(path)
	if err != nil {
		return nil, err
	}
	info, ok := mod.Env.structs.LookupOwn(name)
	if !ok {
		return nil, diag.Errorf(diag.CodeUndefinedType, "undefined struct %s.%s", strings.Join(path, "."), name)
	}
	if !info.Decl.Pub {
		return nil, diag.Errorf(diag.CodePrivateAccess, "%s.%s is private", strings.Join(path, "."), name)
	}
	return info, nil
}

// lookupVariant resolves the enum of a variant, by enum name or, when enumName is empty, by the
// variant name among every visible enum.
func (env *TypeEnv) lookupVariant(enumName, variant string) (*EnumInfo, int, error) {
	if enumName != "" {
		info, ok := env.enums.Lookup(enumName)
		if !ok {
			return nil, -1, diag.Errorf(diag.CodeUndefinedType, "undefined enum %s", enumName)
		}
		for i, v := range info.Decl.Variants {
			if v.Name == variant {
				return info, i, nil
			}
		}
		return nil, -1, diag.Errorf(diag.CodeUndefinedMember, "enum %s has no variant %s", enumName, variant)
	}

	var (
		found []*EnumInfo
		index int
	)
	env.enums.RangeAll(func(_ string, info *EnumInfo) bool {
		for i, v := range info.Decl.Variants {
			if v.Name == variant {
				found = append(found, info)
				index = i
			}
		}
		return true
	})
	switch len(found) {
	case 0:
		return nil, -1, diag.Errorf(diag.CodeUndefinedMember, "undefined variant %s", variant)
	case 1:
		return found[0], index, nil
	}
	names := make([]string, len(found))
	for i, info := range found {
		names[i] = info.Decl.Name
	}
	return nil, -1, diag.Errorf(diag.CodeAmbiguousVariant, "variant %s is ambiguous, found in enums %s", variant, strings.Join(names, ", "))
}

func (env *TypeEnv) inferStruct(e *ast.Struct) (types.Type, error) {
	info, err := env.lookupStruct(e.Path, e.Name)
	if err != nil {
		return nil, err
	}
	decl := info.Decl
	args := env.ctx.vt.NewList(env.letLevel, len(decl.Generics))
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		_, idx, ok := decl.Field(f.Name)
		if !ok {
			return nil, diag.Errorf(diag.CodeExtraField, "struct %s has no field %s", decl.Name, f.Name)
		}
		if seen[f.Name] {
			return nil, diag.Errorf(diag.CodeExtraField, "field %s of struct %s is defined more than once", f.Name, decl.Name)
		}
		seen[f.Name] = true
		t, err := env.inferExpr(f.Value)
		if err != nil {
			return nil, err
		}
		if err := env.unify(env.instantiateWith(info.Fields[idx], decl.Generics, args), t); err != nil {
			return nil, err
		}
	}
	for _, f := range decl.Fields {
		if !seen[f.Name] {
			return nil, diag.Errorf(diag.CodeMissingField, "missing field %s in struct %s", f.Name, decl.Name)
		}
	}
	return &types.Fun{Name: decl.Name, Args: args, Path: info.Path}, nil
}

func (env *TypeEnv) inferVariant(e *ast.VariantShorthand) (types.Type, error) {
	info, idx, err := env.lookupVariant(e.Enum, e.Variant)
	if err != nil {
		return nil, err
	}
	decl := info.Decl
	params := info.Variants[idx]
	if len(params) != len(e.Args) {
		return nil, diag.Errorf(diag.CodeArityMismatch, "variant %s.%s expects %d arguments, got %d", decl.Name, e.Variant, len(params), len(e.Args))
	}
	args := env.ctx.vt.NewList(env.letLevel, len(decl.Generics))
	for i, arg := range e.Args {
		t, err := env.inferExpr(arg)
		if err != nil {
			return nil, err
		}
		if err := env.unify(env.instantiateWith(params[i], decl.Generics, args), t); err != nil {
			return nil, err
		}
	}
	e.ResolvedEnum = decl
	return &types.Fun{Name: decl.Name, Args: args, Path: info.Path}, nil
}
