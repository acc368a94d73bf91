package kensa

import (
	"context"
	"fmt"

	"github.com/hayate/kensa/i18n"
)

// Ptr wraps a schema for T so it can validate *T (the reference-type
// nullability strategy). A nil value yields exactly one null_value issue
// unless AllowNil was set, in which case it succeeds without running any
// inner rule. A present value delegates verbatim; wrapping adds no path
// segment.
func Ptr[T any](inner Schema[T]) *PtrSchema[T] {
	return &PtrSchema[T]{inner: inner}
}

type PtrSchema[T any] struct {
	inner    Schema[T]
	allowNil bool
}

// AllowNil makes absence a trivial success.
func (s *PtrSchema[T]) AllowNil() *PtrSchema[T] {
	s.allowNil = true
	return s
}

func (s *PtrSchema[T]) Validate(ctx context.Context, v *T) error {
	if v == nil {
		if s.allowNil {
			return nil
		}
		return Issues{Issue{Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	return s.inner.Validate(ctx, *v)
}

// PtrC is the context-aware twin of Ptr. Its context resolution is strict: a
// factory built for a non-nil T cannot produce a payload from absence, so
// resolving against nil is a schema-definition error and panics rather than
// silently skipping.
func PtrC[T, C any](inner SchemaC[T, C]) *PtrSchemaC[T, C] {
	return &PtrSchemaC[T, C]{inner: inner}
}

type PtrSchemaC[T, C any] struct {
	inner    SchemaC[T, C]
	allowNil bool
}

// AllowNil makes absence a trivial success.
func (s *PtrSchemaC[T, C]) AllowNil() *PtrSchemaC[T, C] {
	s.allowNil = true
	return s
}

func (s *PtrSchemaC[T, C]) ValidateCtx(ctx context.Context, v *T, c C) error {
	if v == nil {
		if s.allowNil {
			return nil
		}
		return Issues{Issue{Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	return s.inner.ValidateCtx(ctx, *v, c)
}

// ResolveContext adapts the inner schema's factories to the nullable view.
func (s *PtrSchemaC[T, C]) ResolveContext(ctx context.Context, v *T) (C, error) {
	if v == nil {
		panic("kensa: context factory invoked with nil value")
	}
	p, ok := any(s.inner).(ContextProvider[T, C])
	if !ok {
		panic(fmt.Sprintf("kensa: inner schema %T has no context factory", s.inner))
	}
	return p.ResolveContext(ctx, *v)
}

// Optional is the value-type nullability wrapper: absence is modeled as
// Valid=false instead of a nil pointer, in the manner of database/sql's Null
// types.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Valid: true} }

// None is the absent value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Opt wraps a schema for T so it can validate Optional[T] (the value-type
// nullability strategy). Contract matches Ptr, keyed on Valid.
func Opt[T any](inner Schema[T]) *OptSchema[T] {
	return &OptSchema[T]{inner: inner}
}

type OptSchema[T any] struct {
	inner    Schema[T]
	allowNil bool
}

// AllowNil makes absence a trivial success.
func (s *OptSchema[T]) AllowNil() *OptSchema[T] {
	s.allowNil = true
	return s
}

func (s *OptSchema[T]) Validate(ctx context.Context, v Optional[T]) error {
	if !v.Valid {
		if s.allowNil {
			return nil
		}
		return Issues{Issue{Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	return s.inner.Validate(ctx, v.Value)
}

// OptC is the context-aware twin of Opt with the same strict factory policy
// as PtrC.
func OptC[T, C any](inner SchemaC[T, C]) *OptSchemaC[T, C] {
	return &OptSchemaC[T, C]{inner: inner}
}

type OptSchemaC[T, C any] struct {
	inner    SchemaC[T, C]
	allowNil bool
}

// AllowNil makes absence a trivial success.
func (s *OptSchemaC[T, C]) AllowNil() *OptSchemaC[T, C] {
	s.allowNil = true
	return s
}

func (s *OptSchemaC[T, C]) ValidateCtx(ctx context.Context, v Optional[T], c C) error {
	if !v.Valid {
		if s.allowNil {
			return nil
		}
		return Issues{Issue{Code: CodeNullValue, Message: i18n.T(CodeNullValue, nil)}}
	}
	return s.inner.ValidateCtx(ctx, v.Value, c)
}

// ResolveContext adapts the inner schema's factories to the optional view.
func (s *OptSchemaC[T, C]) ResolveContext(ctx context.Context, v Optional[T]) (C, error) {
	if !v.Valid {
		panic("kensa: context factory invoked with absent value")
	}
	p, ok := any(s.inner).(ContextProvider[T, C])
	if !ok {
		panic(fmt.Sprintf("kensa: inner schema %T has no context factory", s.inner))
	}
	return p.ResolveContext(ctx, v.Value)
}
