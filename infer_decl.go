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
	"context"
	"path"
	"strings"

	"github.com/samber/lo"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/extensions"
	"github.com/nathsou/poy-sub000/internal/astutil"
	"github.com/nathsou/poy-sub000/types"
)

// InferDecls infers module-level declarations in order. Consecutive function declarations are
// grouped and inferred in dependency order, so they may be mutually recursive. ctx is only used to
// resolve imports.
func (env *TypeEnv) InferDecls(ctx context.Context, decls []ast.Decl) error {
	for i := 0; i < len(decls); {
		if isFunDecl(decls[i]) {
			var group []*ast.LetDecl
			for ; i < len(decls) && isFunDecl(decls[i]); i++ {
				group = append(group, decls[i].(*ast.LetDecl))
			}
			if err := env.inferLetGroup(group); err != nil {
				return err
			}
			continue
		}
		if err := env.inferDecl(ctx, decls[i]); err != nil {
			return err
		}
		i++
	}
	return nil
}

func isFunDecl(d ast.Decl) bool {
	let, ok := d.(*ast.LetDecl)
	if !ok || let.Mut {
		return false
	}
	_, ok = let.Value.(*ast.Fun)
	return ok
}

func (env *TypeEnv) inferDecl(ctx context.Context, d ast.Decl) error {
	switch d := d.(type) {
	case *ast.LetDecl:
		t, generics, err := env.inferBinding(d.Name, d.Value, d.Ann, !d.Mut)
		if err != nil {
			return err
		}
		env.variables.Declare(d.Name, &VarInfo{Ty: t, Mut: d.Mut, Pub: d.Pub, Generics: generics})
		env.ctx.trace.Infof("let %s : %s", d.Name, types.TypeString(t))
		return nil

	case *ast.TypeDecl:
		return env.inferTypeRule(d)

	case *ast.StructDecl:
		return env.inferStructDecl(d)

	case *ast.EnumDecl:
		return env.inferEnumDecl(d)

	case *ast.ExtendDecl:
		return env.inferExtend(d)

	case *ast.DeclareVar:
		denv := env.child()
		denv.letLevel++
		gvars := denv.bindGenerics(d.Generics)
		t, err := denv.ResolveType(d.Ty)
		if err != nil {
			return err
		}
		t, generics := env.generalize(t, gvars)
		env.variables.Declare(d.Name, &VarInfo{Ty: t, Pub: d.Pub, Generics: generics, Native: true})
		env.ctx.trace.Infof("declare %s : %s", d.Name, types.TypeString(t))
		return nil

	case *ast.DeclareExtension:
		return env.inferDeclareExtension(d)

	case *ast.ModuleDecl:
		menv := env.child()
		menv.modulePath = append(append([]string{}, env.modulePath...), d.Name)
		env.modules.Declare(d.Name, &ModuleInfo{Name: d.Name, Pub: d.Pub, Env: menv})
		if err := menv.InferDecls(ctx, d.Decls); err != nil {
			return err
		}
		env.importRulesAndExtensions(menv)
		return nil

	case *ast.ImportDecl:
		return env.inferImport(ctx, d)
	}
	diag.Violation("unhandled declaration %T", d)
	return nil
}

// inferLetGroup infers consecutive function declarations. Each strongly-connected component is
// inferred one let-level deeper with monomorphic bindings for its members, then generalized as a
// whole. Annotated functions are declared with their annotation up-front.
func (env *TypeEnv) inferLetGroup(decls []*ast.LetDecl) error {
	for _, d := range decls {
		if d.Ann == nil {
			continue
		}
		aenv := env.child()
		aenv.letLevel++
		gvars := aenv.bindGenerics(d.Value.(*ast.Fun).Generics)
		t, err := aenv.ResolveType(d.Ann)
		if err != nil {
			return err
		}
		t, generics := env.generalize(t, gvars)
		env.variables.Declare(d.Name, &VarInfo{Ty: t, Pub: d.Pub, Generics: generics})
	}

	for _, component := range astutil.GroupBindings(decls) {
		tys := make([]types.Type, len(component))
		gvars := make([][]*types.Var, len(component))
		err := func() error {
			env.letLevel++
			defer func() { env.letLevel-- }()
			selfs := make([]*types.Var, len(component))
			for k, idx := range component {
				if d := decls[idx]; d.Ann == nil {
					selfs[k] = env.newVar()
					env.variables.Declare(d.Name, &VarInfo{Ty: selfs[k], Pub: d.Pub})
				}
			}
			for k, idx := range component {
				d := decls[idx]
				t, gv, err := env.inferBound(d.Value, d.Ann)
				if err != nil {
					return err
				}
				if selfs[k] != nil {
					if err := env.unify(selfs[k], t); err != nil {
						return err
					}
				}
				tys[k], gvars[k] = t, gv
			}
			return nil
		}()
		if err != nil {
			return err
		}
		for k, idx := range component {
			d := decls[idx]
			t, generics := env.generalize(tys[k], gvars[k])
			env.variables.Declare(d.Name, &VarInfo{Ty: t, Pub: d.Pub, Generics: generics})
			env.ctx.trace.Infof("fun %s : %s", d.Name, types.TypeString(t))
		}
	}
	return nil
}

// bindGenerics binds named type-variables for generics at the current let-level.
func (env *TypeEnv) bindGenerics(names []string) []*types.Var {
	gvars := make([]*types.Var, len(names))
	for i, name := range names {
		gvars[i] = env.ctx.vt.NewNamed(env.letLevel, name)
		env.generics.Declare(name, gvars[i])
	}
	return gvars
}

// Type-rules:

// inferTypeRule adds a rewrite rule. Each parameter name of the rule becomes one type-variable shared
// by both sides. A parameter of the right-hand side must occur in the left-hand side, be bound by an
// enclosing `@fun` or `@let`, or be a wildcard.
func (env *TypeEnv) inferTypeRule(d *ast.TypeDecl) error {
	lhs, ok := types.RealType(d.Lhs).(*types.Fun)
	if !ok || strings.HasPrefix(lhs.Name, "@") {
		return diag.Errorf(diag.CodeInvalidTypeRule, "the left-hand side of a type rule must be a type constructor, got %s", types.TypeString(d.Lhs))
	}
	params := make(map[string]types.Type)
	l, err := env.ruleTerm(lhs, params, nil, true)
	if err != nil {
		return err
	}
	r, err := env.ruleTerm(d.Rhs, params, nil, false)
	if err != nil {
		return err
	}
	rule := env.typeRules.Add(l, r, d.Pub)
	env.ctx.trace.Infof("type %s = %s", types.TypeString(rule.Lhs), types.TypeString(rule.Rhs))
	return nil
}

// ruleTerm resolves the named parameters of a rule side. On the left-hand side every name introduces a
// parameter; on the right-hand side a name must be a left-hand side parameter or be bound by an
// enclosing `@fun` or `@let`. Each `_` is a distinct type-variable.
func (env *TypeEnv) ruleTerm(t types.Type, params, bound map[string]types.Type, lhs bool) (types.Type, error) {
	switch t := types.RealType(t).(type) {
	case *types.Var:
		if !t.IsParam() {
			return t, nil
		}
		name := t.Name()
		if name == "_" {
			return env.ctx.vt.New(0), nil
		}
		if v, ok := bound[name]; ok {
			return v, nil
		}
		if v, ok := params[name]; ok {
			return v, nil
		}
		if !lhs && !t.IsWildcard() {
			return nil, diag.Errorf(diag.CodeInvalidTypeRule, "type variable %s does not occur in the left-hand side of the rule", name)
		}
		v := env.ctx.vt.NewNamed(0, name)
		params[name] = v
		return v, nil

	case *types.Fun:
		if binders := ruleBinders(t); !lhs && len(binders) > 0 {
			scoped := make(map[string]types.Type, len(binders))
			for _, name := range binders {
				scoped[name] = env.ctx.vt.NewNamed(0, name)
			}
			bound = lo.Assign(bound, scoped)
		}
		f := &types.Fun{Name: t.Name, Path: env.typePath(t)}
		if len(t.Args) > 0 {
			f.Args = make([]types.Type, len(t.Args))
			for i, arg := range t.Args {
				var err error
				if f.Args[i], err = env.ruleTerm(arg, params, bound, lhs); err != nil {
					return nil, err
				}
			}
		}
		return f, nil
	}
	return t, nil
}

// ruleBinders returns the parameter names bound by a `@fun<params..., body>` or `@let<x, value, body>`.
func ruleBinders(f *types.Fun) []string {
	var binders []types.Type
	switch {
	case f.Name == "@fun" && len(f.Args) >= 2:
		binders = f.Args[:len(f.Args)-1]
	case f.Name == "@let" && len(f.Args) == 3:
		binders = f.Args[:1]
	}
	return lo.FilterMap(binders, func(b types.Type, _ int) (string, bool) {
		v, ok := types.RealType(b).(*types.Var)
		if !ok || !v.IsParam() || v.Name() == "_" {
			return "", false
		}
		return v.Name(), true
	})
}

// Data types:

// paramScope returns a child environment binding each generic to a named parameter.
func (env *TypeEnv) paramScope(generics []string) *TypeEnv {
	penv := env.child()
	for _, g := range generics {
		penv.generics.Declare(g, types.NewParam(g))
	}
	return penv
}

func (env *TypeEnv) inferStructDecl(d *ast.StructDecl) error {
	penv := env.paramScope(d.Generics)
	fields := make([]types.Type, len(d.Fields))
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if seen[f.Name] {
			return diag.Errorf(diag.CodeDuplicateBinding, "field %s of struct %s is declared more than once", f.Name, d.Name)
		}
		seen[f.Name] = true
		var err error
		if fields[i], err = penv.resolveParams(f.Ty); err != nil {
			return err
		}
	}
	env.structs.Declare(d.Name, &StructInfo{Decl: d, Path: env.modulePath, Fields: fields})
	return nil
}

func (env *TypeEnv) inferEnumDecl(d *ast.EnumDecl) error {
	info := &EnumInfo{Decl: d, Path: env.modulePath, Variants: make([][]types.Type, len(d.Variants))}
	// Declared first, so variants may refer to the enum.
	env.enums.Declare(d.Name, info)
	penv := env.paramScope(d.Generics)
	seen := make(map[string]bool, len(d.Variants))
	for i, v := range d.Variants {
		if seen[v.Name] {
			return diag.Errorf(diag.CodeDuplicateBinding, "variant %s of enum %s is declared more than once", v.Name, d.Name)
		}
		seen[v.Name] = true
		args := make([]types.Type, len(v.Args))
		for j, arg := range v.Args {
			var err error
			if args[j], err = penv.resolveParams(arg); err != nil {
				return err
			}
		}
		info.Variants[i] = args
	}
	return nil
}

// Extensions:

// inferExtend infers the members of an extend block. The generics of the block are bound one
// let-level deeper; once every member is inferred, each member type is generalized together with the
// subject.
func (env *TypeEnv) inferExtend(d *ast.ExtendDecl) error {
	eenv := env.child()
	eenv.letLevel++
	gvars := eenv.bindGenerics(d.Generics)
	subject, err := eenv.ResolveType(d.Subject)
	if err != nil {
		return err
	}

	infos := make([]*extensions.ExtensionInfo, len(d.Members))
	for i, m := range d.Members {
		var ty types.Type
		if m.Ann != nil {
			if ty, err = eenv.ResolveType(m.Ann); err != nil {
				return err
			}
		} else {
			ty = eenv.newVar()
		}
		infos[i] = env.extensions.Declare(&extensions.ExtensionInfo{
			Subject:  subject,
			Member:   m.Name,
			Ty:       ty,
			Generics: d.Generics,
			Pub:      m.Pub,
			Static:   m.Static,
			UUID:     m.UUID,
		})
	}

	for i, m := range d.Members {
		menv := eenv.child()
		if !m.Static {
			menv.variables.Declare("self", &VarInfo{Ty: subject})
		}
		t, _, err := menv.inferBound(m.Value, nil)
		if err != nil {
			return err
		}
		if err := menv.unify(infos[i].Ty, t); err != nil {
			return err
		}
	}

	ids := genericIds(gvars)
	for i, info := range infos {
		gen := types.Generalize(types.NewFun("@ext", subject, info.Ty), env.letLevel).(*types.Fun)
		info.Subject, info.Ty, info.GenericIds = gen.Args[0], gen.Args[1], ids
		d.Members[i].UUID = info.UUID
		env.ctx.trace.Infof("extend %s::%s : %s", types.TypeString(info.Subject), info.Member, types.TypeString(info.Ty))
	}
	return nil
}

// inferDeclareExtension declares natively implemented extension members.
func (env *TypeEnv) inferDeclareExtension(d *ast.DeclareExtension) error {
	eenv := env.child()
	eenv.letLevel++
	gvars := eenv.bindGenerics(d.Generics)
	subject, err := eenv.ResolveType(d.Subject)
	if err != nil {
		return err
	}
	ids := genericIds(gvars)
	for i, m := range d.Members {
		ty, err := eenv.ResolveType(m.Ty)
		if err != nil {
			return err
		}
		gen := types.Generalize(types.NewFun("@ext", subject, ty), env.letLevel).(*types.Fun)
		info := env.extensions.Declare(&extensions.ExtensionInfo{
			Subject:    gen.Args[0],
			Member:     m.Name,
			Ty:         gen.Args[1],
			Generics:   d.Generics,
			GenericIds: ids,
			Pub:        true,
			Declared:   true,
			Static:     m.Static,
			UUID:       m.UUID,
		})
		d.Members[i].UUID = info.UUID
	}
	return nil
}

func genericIds(gvars []*types.Var) []int {
	ids := make([]int, len(gvars))
	for i, g := range gvars {
		ids[i] = g.Id()
		if tv, ok := types.RealType(g).(*types.Var); ok {
			ids[i] = tv.Id()
		}
	}
	return ids
}

// Modules:

// importRulesAndExtensions makes the public type-rules and extensions of a module visible in env.
func (env *TypeEnv) importRulesAndExtensions(mod *TypeEnv) {
	for _, r := range mod.typeRules.Exported() {
		env.typeRules.Add(r.Lhs, r.Rhs, r.Pub)
	}
	for _, ext := range mod.extensions.Exported() {
		env.extensions.Declare(ext)
	}
}

// inferImport declares an imported module under the last segment of its path, along with the
// imported members. Without an explicit member list, every public member is imported.
func (env *TypeEnv) inferImport(ctx context.Context, d *ast.ImportDecl) error {
	if env.ctx.resolver == nil {
		return diag.Errorf(diag.CodeImportFailed, "cannot import %s: no module resolver", d.Path)
	}
	mod, err := env.ctx.resolver.Resolve(ctx, d.Path)
	if err != nil {
		return diag.Errorf(diag.CodeImportFailed, "cannot import %s: %v", d.Path, err)
	}
	menv := mod.Env
	name := strings.TrimSuffix(path.Base(d.Path), path.Ext(d.Path))
	env.modules.Declare(name, &ModuleInfo{Name: name, Env: menv})

	members := d.Members
	if len(members) == 0 {
		members = exportedMembers(menv)
	}
	alias := []string{name}
	for _, member := range members {
		v, isVar := menv.variables.LookupOwn(member)
		s, isStruct := menv.structs.LookupOwn(member)
		e, isEnum := menv.enums.LookupOwn(member)
		m, isModule := menv.modules.LookupOwn(member)
		if !isVar && !isStruct && !isEnum && !isModule {
			return diag.Errorf(diag.CodeUndefinedMember, "module %s has no member %s", d.Path, member)
		}
		if (isVar && !v.Pub) || (isStruct && !s.Decl.Pub) || (isEnum && !e.Decl.Pub) || (isModule && !m.Pub) {
			return diag.Errorf(diag.CodePrivateAccess, "%s.%s is private", name, member)
		}
		if isVar {
			env.variables.Declare(member, v)
		}
		if isStruct {
			env.structs.Declare(member, s)
			env.typeImports.Declare(member, alias)
		}
		if isEnum {
			env.enums.Declare(member, e)
			env.typeImports.Declare(member, alias)
		}
		if isModule {
			env.modules.Declare(member, m)
		}
	}
	env.importRulesAndExtensions(menv)
	env.ctx.trace.Infof("import %s (%d members)", d.Path, len(members))
	return nil
}

// exportedMembers returns the names of the public members declared in the own scopes of env.
func exportedMembers(env *TypeEnv) []string {
	var names []string
	env.variables.Range(func(name string, v *VarInfo) bool {
		if v.Pub {
			names = append(names, name)
		}
		return true
	})
	env.structs.Range(func(name string, s *StructInfo) bool {
		if s.Decl.Pub {
			names = append(names, name)
		}
		return true
	})
	env.enums.Range(func(name string, e *EnumInfo) bool {
		if e.Decl.Pub {
			names = append(names, name)
		}
		return true
	})
	env.modules.Range(func(name string, m *ModuleInfo) bool {
		if m.Pub {
			names = append(names, name)
		}
		return true
	})
	return names
}
