package dsl

import (
	"context"
	"reflect"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// ObjectBuilder accumulates the parts of a composite schema for T. Build
// snapshots the registered lists, so appending to a builder after Build can
// never retroactively change a schema already handed out.
type ObjectBuilder[T any] struct {
	rules    kensa.RuleSet[T]
	fields   []Check[T]
	narrows  []Check[T]
	branches []*Branch[T]
	allowNil bool
}

// Object creates a new builder for instances of T.
func Object[T any]() *ObjectBuilder[T] {
	return &ObjectBuilder[T]{}
}

// Fields registers field validators in order.
func (b *ObjectBuilder[T]) Fields(checks ...Check[T]) *ObjectBuilder[T] {
	b.fields = append(b.fields, checks...)
	return b
}

// Refine adds an object-level rule for cross-field constraints. It runs
// before field validators with the path unchanged.
func (b *ObjectBuilder[T]) Refine(name string, fn func(ctx context.Context, v T) kensa.Issues) *ObjectBuilder[T] {
	if fn == nil {
		return b
	}
	b.rules.Add(kensa.Rule[T]{Name: name, Check: fn})
	return b
}

// Narrow registers type assertion branches built with As or If.
func (b *ObjectBuilder[T]) Narrow(checks ...Check[T]) *ObjectBuilder[T] {
	b.narrows = append(b.narrows, checks...)
	return b
}

// Branches registers conditional branches built with When.
func (b *ObjectBuilder[T]) Branches(brs ...*Branch[T]) *ObjectBuilder[T] {
	b.branches = append(b.branches, brs...)
	return b
}

// AllowNil makes a nil instance (for pointer, interface, map or slice T) a
// trivial success instead of a null_value failure.
func (b *ObjectBuilder[T]) AllowNil() *ObjectBuilder[T] {
	b.allowNil = true
	return b
}

// Build validates the builder and returns the composite schema.
func (b *ObjectBuilder[T]) Build() (kensa.Schema[T], error) {
	s := &objectSchema[T]{
		fields:   append([]Check[T](nil), b.fields...),
		narrows:  append([]Check[T](nil), b.narrows...),
		branches: append([]*Branch[T](nil), b.branches...),
		allowNil: b.allowNil,
	}
	s.rules.Add(b.rules.Rules()...)
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder[T]) MustBuild() kensa.Schema[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchema[T any] struct {
	rules    kensa.RuleSet[T]
	fields   []Check[T]
	narrows  []Check[T]
	branches []*Branch[T]
	allowNil bool
}

var _ kensa.Schema[any] = (*objectSchema[any])(nil)

// Validate runs the fixed execution order: nil check, object-level rules,
// field validators, type assertions, conditional branches; all issue lists
// concatenate in that order.
func (o *objectSchema[T]) Validate(ctx context.Context, v T) error {
	if isNilValue(v) {
		if o.allowNil {
			return nil
		}
		return kensa.Issues{kensa.Issue{Code: kensa.CodeNullValue, Message: i18n.T(kensa.CodeNullValue, nil)}}
	}
	var iss kensa.Issues
	if out := o.rules.Run(ctx, v); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if out := runChecks(ctx, v, o.fields); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	if out := runChecks(ctx, v, o.narrows); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	for _, br := range o.branches {
		if out := br.run(ctx, v); len(out) > 0 {
			iss = kensa.AppendIssues(iss, out...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// isNilValue reports nil-ness for nilable kinds without panicking on value
// kinds (struct instances are never nil).
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
