package dsl

import (
	"context"
	"fmt"
	"reflect"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// Factory builds the context payload from the value under validation. Ambient
// collaborators come from kensa.WithService on the context; cancellation is
// the context's.
type Factory[T, C any] func(ctx context.Context, v T) (C, error)

// factoryEntry associates a factory with the value type it can build from.
type factoryEntry[C any] struct {
	typ reflect.Type
	fn  func(ctx context.Context, v any) (C, error)
}

// ObjectBuilderC accumulates a context-aware composite schema for T with
// payload type C.
type ObjectBuilderC[T, C any] struct {
	rules     kensa.RuleSetC[T, C]
	fields    []CheckC[T, C]
	narrows   []CheckC[T, C]
	branches  []*BranchC[T, C]
	factories []factoryEntry[C]
	allowNil  bool
}

// ObjectCtx creates a new context-aware builder for instances of T.
func ObjectCtx[T, C any]() *ObjectBuilderC[T, C] {
	return &ObjectBuilderC[T, C]{}
}

// Fields registers field validators in order.
func (b *ObjectBuilderC[T, C]) Fields(checks ...CheckC[T, C]) *ObjectBuilderC[T, C] {
	b.fields = append(b.fields, checks...)
	return b
}

// Refine adds an object-level context-aware rule.
func (b *ObjectBuilderC[T, C]) Refine(name string, fn func(ctx context.Context, v T, c C) kensa.Issues) *ObjectBuilderC[T, C] {
	if fn == nil {
		return b
	}
	b.rules.Add(kensa.RuleC[T, C]{Name: name, Check: fn})
	return b
}

// Narrow registers type assertion branches built with AsCtx or IfCtx.
func (b *ObjectBuilderC[T, C]) Narrow(checks ...CheckC[T, C]) *ObjectBuilderC[T, C] {
	b.narrows = append(b.narrows, checks...)
	return b
}

// Branches registers conditional branches built with WhenCtx.
func (b *ObjectBuilderC[T, C]) Branches(brs ...*BranchC[T, C]) *ObjectBuilderC[T, C] {
	b.branches = append(b.branches, brs...)
	return b
}

// AllowNil makes a nil instance a trivial success.
func (b *ObjectBuilderC[T, C]) AllowNil() *ObjectBuilderC[T, C] {
	b.allowNil = true
	return b
}

// ContextFactory registers the payload factory for the schema's static type.
func (b *ObjectBuilderC[T, C]) ContextFactory(f Factory[T, C]) *ObjectBuilderC[T, C] {
	if f == nil {
		panic("dsl: ContextFactory requires a factory")
	}
	b.factories = append(b.factories, factoryEntry[C]{
		typ: typeFor[T](),
		fn: func(ctx context.Context, v any) (C, error) {
			return f(ctx, v.(T))
		},
	})
	return b
}

// FactoryFor registers a payload factory for a specific runtime type D,
// letting a narrowing branch resolve context for values the schema was not
// statically built for.
func FactoryFor[D any, T, C any](b *ObjectBuilderC[T, C], f Factory[D, C]) *ObjectBuilderC[T, C] {
	if f == nil {
		panic("dsl: FactoryFor requires a factory")
	}
	b.factories = append(b.factories, factoryEntry[C]{
		typ: typeFor[D](),
		fn: func(ctx context.Context, v any) (C, error) {
			d, ok := v.(D)
			if !ok {
				panic(fmt.Sprintf("dsl: context factory for %v invoked with %T", typeFor[D](), v))
			}
			return f(ctx, d)
		},
	})
	return b
}

// Build validates the builder and returns the composite schema.
func (b *ObjectBuilderC[T, C]) Build() (kensa.SchemaC[T, C], error) {
	s := &objectSchemaC[T, C]{
		fields:    append([]CheckC[T, C](nil), b.fields...),
		narrows:   append([]CheckC[T, C](nil), b.narrows...),
		branches:  append([]*BranchC[T, C](nil), b.branches...),
		factories: append([]factoryEntry[C](nil), b.factories...),
		allowNil:  b.allowNil,
	}
	s.rules.Add(b.rules.Rules()...)
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilderC[T, C]) MustBuild() kensa.SchemaC[T, C] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchemaC[T, C any] struct {
	rules     kensa.RuleSetC[T, C]
	fields    []CheckC[T, C]
	narrows   []CheckC[T, C]
	branches  []*BranchC[T, C]
	factories []factoryEntry[C]
	allowNil  bool
}

var _ kensa.SchemaC[any, any] = (*objectSchemaC[any, any])(nil)

// ValidateCtx mirrors the contextless execution order with the shared payload
// threaded through rules, fields, assertions and branches.
func (o *objectSchemaC[T, C]) ValidateCtx(ctx context.Context, v T, c C) error {
	if isNilValue(v) {
		if o.allowNil {
			return nil
		}
		return kensa.Issues{kensa.Issue{Code: kensa.CodeNullValue, Message: i18n.T(kensa.CodeNullValue, nil)}}
	}
	var iss kensa.Issues
	if out := o.rules.Run(ctx, v, c); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if out := runChecksCtx(ctx, v, c, o.fields); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if out := runChecksCtx(ctx, v, c, o.narrows); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	for _, br := range o.branches {
		if out := br.runCtx(ctx, v, c); len(out) > 0 {
			iss = kensa.AppendIssues(iss, out...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// ResolveContext selects the factory matching the value's runtime type and
// invokes it once. Zero or more than one matching factory is a broken schema
// definition and panics.
func (o *objectSchemaC[T, C]) ResolveContext(ctx context.Context, v T) (C, error) {
	rt := reflect.TypeOf(v)
	var match *factoryEntry[C]
	for i := range o.factories {
		e := &o.factories[i]
		if rt == nil || !rt.AssignableTo(e.typ) {
			continue
		}
		if match != nil {
			panic(fmt.Sprintf("dsl: ambiguous context factories for %v (%v and %v)", rt, match.typ, e.typ))
		}
		match = e
	}
	if match == nil {
		panic(fmt.Sprintf("dsl: no context factory resolvable for %T", v))
	}
	return match.fn(ctx, any(v))
}
