package kensa

import "context"

// Lift promotes a contextless schema into a context-aware one; the payload is
// ignored. The type parameter order lets callers name only the payload type:
// kensa.Lift[AccountCtx](s).
func Lift[C, T any](s Schema[T]) SchemaC[T, C] {
	return liftedSchema[T, C]{inner: s}
}

type liftedSchema[T, C any] struct {
	inner Schema[T]
}

func (l liftedSchema[T, C]) ValidateCtx(ctx context.Context, v T, _ C) error {
	return l.inner.Validate(ctx, v)
}

// Bind fixes the payload of a context-aware schema, yielding a contextless
// view. The bound payload is shared by reference across every call.
func Bind[T, C any](s SchemaC[T, C], c C) Schema[T] {
	return boundSchema[T, C]{inner: s, payload: c}
}

type boundSchema[T, C any] struct {
	inner   SchemaC[T, C]
	payload C
}

func (b boundSchema[T, C]) Validate(ctx context.Context, v T) error {
	return b.inner.ValidateCtx(ctx, v, b.payload)
}
