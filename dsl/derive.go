package dsl

import (
	"context"
	"fmt"

	kensa "github.com/hayate/kensa"
)

// Derive layers a new context on top of an existing context-aware schema: the
// chain factory receives the base schema's resolved payload plus the raw
// value and produces the enriched payload. Per root call the base payload is
// resolved exactly once and shared by both layers; the derived layer's own
// checks see the enriched payload.
func Derive[T, C1, C2 any](base kensa.SchemaC[T, C1], chain func(ctx context.Context, v T, prev C1) (C2, error)) *DerivedBuilder[T, C1, C2] {
	if base == nil {
		panic("dsl: Derive requires a base schema")
	}
	if chain == nil {
		panic("dsl: Derive requires a chain factory")
	}
	return &DerivedBuilder[T, C1, C2]{base: base, chain: chain}
}

// DerivedBuilder accumulates the derived layer's own validators.
type DerivedBuilder[T, C1, C2 any] struct {
	base     kensa.SchemaC[T, C1]
	chain    func(ctx context.Context, v T, prev C1) (C2, error)
	rules    kensa.RuleSetC[T, C2]
	fields   []CheckC[T, C2]
	branches []*BranchC[T, C2]
}

// Fields registers derived-layer field validators.
func (b *DerivedBuilder[T, C1, C2]) Fields(checks ...CheckC[T, C2]) *DerivedBuilder[T, C1, C2] {
	b.fields = append(b.fields, checks...)
	return b
}

// Refine adds a derived-layer object-level rule.
func (b *DerivedBuilder[T, C1, C2]) Refine(name string, fn func(ctx context.Context, v T, c C2) kensa.Issues) *DerivedBuilder[T, C1, C2] {
	if fn == nil {
		return b
	}
	b.rules.Add(kensa.RuleC[T, C2]{Name: name, Check: fn})
	return b
}

// Branches registers derived-layer conditional branches.
func (b *DerivedBuilder[T, C1, C2]) Branches(brs ...*BranchC[T, C2]) *DerivedBuilder[T, C1, C2] {
	b.branches = append(b.branches, brs...)
	return b
}

// Build returns the layered schema.
func (b *DerivedBuilder[T, C1, C2]) Build() (kensa.SchemaC[T, C2], error) {
	s := &derivedSchema[T, C1, C2]{
		base:     b.base,
		chain:    b.chain,
		fields:   append([]CheckC[T, C2](nil), b.fields...),
		branches: append([]*BranchC[T, C2](nil), b.branches...),
	}
	s.rules.Add(b.rules.Rules()...)
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *DerivedBuilder[T, C1, C2]) MustBuild() kensa.SchemaC[T, C2] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type derivedSchema[T, C1, C2 any] struct {
	base     kensa.SchemaC[T, C1]
	chain    func(ctx context.Context, v T, prev C1) (C2, error)
	rules    kensa.RuleSetC[T, C2]
	fields   []CheckC[T, C2]
	branches []*BranchC[T, C2]
}

// layer is the internal chaining capability: resolve the schema's payload
// once, validate with it, and hand the payload upward for further enrichment.
type layer[T, C any] interface {
	validateLayer(ctx context.Context, v T) (C, kensa.Issues, error)
}

// runLayer resolves and validates one schema layer. Chained schemas recurse
// through their own validateLayer so every payload in the chain resolves
// exactly once per call.
func runLayer[T, C any](ctx context.Context, s kensa.SchemaC[T, C], v T) (C, kensa.Issues, error) {
	if l, ok := any(s).(layer[T, C]); ok {
		return l.validateLayer(ctx, v)
	}
	p, ok := any(s).(kensa.ContextProvider[T, C])
	if !ok {
		panic(fmt.Sprintf("dsl: schema %T has no context factory", s))
	}
	c, err := p.ResolveContext(ctx, v)
	if err != nil {
		var zero C
		return zero, nil, err
	}
	return c, kensa.IssuesFromErr("", s.ValidateCtx(ctx, v, c)), nil
}

func (d *derivedSchema[T, C1, C2]) validateLayer(ctx context.Context, v T) (C2, kensa.Issues, error) {
	var zero C2
	prev, baseIss, err := runLayer(ctx, d.base, v)
	if err != nil {
		return zero, nil, err
	}
	c2, err := d.chain(ctx, v, prev)
	if err != nil {
		return zero, nil, err
	}
	iss := kensa.AppendIssues(nil, baseIss...)
	if out := d.ownIssues(ctx, v, c2); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if len(iss) == 0 {
		iss = nil
	}
	return c2, iss, nil
}

// ValidateResolved lets kensa.Resolve run the whole chain with single
// resolution per layer.
func (d *derivedSchema[T, C1, C2]) ValidateResolved(ctx context.Context, v T) error {
	_, iss, err := d.validateLayer(ctx, v)
	if err != nil {
		return kensa.DependencyIssues(err)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// ValidateCtx validates with an externally supplied enriched payload. The
// base layer still needs its own payload and resolves it once for this call.
func (d *derivedSchema[T, C1, C2]) ValidateCtx(ctx context.Context, v T, c2 C2) error {
	_, baseIss, err := runLayer(ctx, d.base, v)
	if err != nil {
		return kensa.DependencyIssues(err)
	}
	iss := kensa.AppendIssues(nil, baseIss...)
	if out := d.ownIssues(ctx, v, c2); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// ResolveContext resolves the full chain without validating. Note the primary
// entry point is kensa.Resolve, which goes through ValidateResolved instead
// to keep single resolution when validation follows.
func (d *derivedSchema[T, C1, C2]) ResolveContext(ctx context.Context, v T) (C2, error) {
	var zero C2
	p, ok := any(d.base).(kensa.ContextProvider[T, C1])
	if !ok {
		panic(fmt.Sprintf("dsl: base schema %T has no context factory", d.base))
	}
	prev, err := p.ResolveContext(ctx, v)
	if err != nil {
		return zero, err
	}
	return d.chain(ctx, v, prev)
}

func (d *derivedSchema[T, C1, C2]) ownIssues(ctx context.Context, v T, c2 C2) kensa.Issues {
	var iss kensa.Issues
	if out := d.rules.Run(ctx, v, c2); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if out := runChecksCtx(ctx, v, c2, d.fields); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	for _, br := range d.branches {
		if out := br.runCtx(ctx, v, c2); len(out) > 0 {
			iss = kensa.AppendIssues(iss, out...)
		}
	}
	return iss
}
