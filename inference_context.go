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

	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"

	"github.com/nathsou/poy-sub000/ast"
	"github.com/nathsou/poy-sub000/config"
	"github.com/nathsou/poy-sub000/diag"
	"github.com/nathsou/poy-sub000/types"
)

// tracer traces with key 'poy.infer'.
func tracer() tracing.Trace {
	return tracing.Select("poy.infer")
}

// InferenceContext is an inference session. Every environment created by the context shares its
// type-variable counter, so type-variables of modules inferred within one context never alias.
//
// An inference context cannot be used concurrently.
type InferenceContext struct {
	// Prelude, when set, is the parent of every module environment created by InferModule.
	Prelude *TypeEnv

	vt       types.VarTracker
	cfg      *config.Config
	resolver Resolver
	trace    tracing.Trace
	ops      operators
}

// Create a new type-inference context. A nil cfg selects the default configuration; a nil resolver
// rejects every import.
func NewContext(cfg *config.Config, resolver Resolver) *InferenceContext {
	if cfg == nil {
		cfg = config.Default()
	}
	ti := &InferenceContext{cfg: cfg, resolver: resolver}
	ti.ops = newOperators(&ti.vt)
	ti.SetTracer(tracer())
	return ti
}

// Config returns the configuration of the context.
func (ti *InferenceContext) Config() *config.Config { return ti.cfg }

// VarTracker returns the type-variable allocator shared by every environment of the context.
func (ti *InferenceContext) VarTracker() *types.VarTracker { return &ti.vt }

// SetTracer replaces the tracer of the context. The configured trace level is applied to t.
func (ti *InferenceContext) SetTracer(t tracing.Trace) {
	t.SetTraceLevel(ti.cfg.Level())
	ti.trace = t
}

// InferModule infers the declarations of a module in a new environment. Invariant violations raised
// during inference are recovered and returned as errors; diag.ClassOf reports them as internal.
func (ti *InferenceContext) InferModule(ctx context.Context, path string, decls []ast.Decl) (mod *Module, err error) {
	env := ti.NewTypeEnv(ti.Prelude)
	defer ti.recoverViolation(&err, "module "+path)
	ti.trace.Infof("inferring module %s (%d declarations)", path, len(decls))
	if err := env.InferDecls(ctx, decls); err != nil {
		return nil, err
	}
	return &Module{Path: path, Env: env, Decls: decls}, nil
}

// InferExpr infers the type of e within env, recovering invariant violations like InferModule.
func (ti *InferenceContext) InferExpr(env *TypeEnv, e ast.Expr) (t types.Type, err error) {
	defer ti.recoverViolation(&err, ast.ExprString(e))
	return env.Infer(e)
}

func (ti *InferenceContext) recoverViolation(err *error, what string) {
	r := recover()
	if r == nil {
		return
	}
	violation, ok := diag.AsViolation(r)
	if !ok {
		panic(r)
	}
	ti.trace.Errorf("%s: %v", what, violation)
	*err = errors.Wrapf(violation, "inferring %s", what)
}
