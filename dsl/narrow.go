package dsl

import (
	"context"
	"fmt"
	"reflect"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// As declares an unconditional type assertion: the value's runtime type must
// be D. On mismatch it contributes exactly one type_mismatch issue; on match
// it delegates fully to the derived schema, whose issues stay anchored at the
// same parent path (the cast itself adds no segment).
func As[T, D any](d kensa.Schema[D]) Check[T] {
	if d == nil {
		panic("dsl: As requires a schema")
	}
	want := typeFor[D]()
	return checkFunc[T](func(ctx context.Context, v T) kensa.Issues {
		dv, ok := any(v).(D)
		if !ok {
			return kensa.Issues{kensa.Issue{
				Code:    kensa.CodeTypeMismatch,
				Message: i18n.T(kensa.CodeTypeMismatch, nil),
				Params:  map[string]any{"want": want.String(), "got": fmt.Sprintf("%T", v)},
			}}
		}
		return kensa.IssuesFromErr("", d.Validate(ctx, dv))
	})
}

// If declares a conditional narrowing: the branch applies only when the
// value's runtime type is D, and a mismatch contributes zero issues.
func If[T, D any](d kensa.Schema[D]) Check[T] {
	if d == nil {
		panic("dsl: If requires a schema")
	}
	return checkFunc[T](func(ctx context.Context, v T) kensa.Issues {
		dv, ok := any(v).(D)
		if !ok {
			return nil
		}
		return kensa.IssuesFromErr("", d.Validate(ctx, dv))
	})
}

// AsCtx is As for a context-aware derived schema.
func AsCtx[T, D, C any](d kensa.SchemaC[D, C]) CheckC[T, C] {
	if d == nil {
		panic("dsl: AsCtx requires a schema")
	}
	want := typeFor[D]()
	return checkFuncC[T, C](func(ctx context.Context, v T, c C) kensa.Issues {
		dv, ok := any(v).(D)
		if !ok {
			return kensa.Issues{kensa.Issue{
				Code:    kensa.CodeTypeMismatch,
				Message: i18n.T(kensa.CodeTypeMismatch, nil),
				Params:  map[string]any{"want": want.String(), "got": fmt.Sprintf("%T", v)},
			}}
		}
		return kensa.IssuesFromErr("", d.ValidateCtx(ctx, dv, c))
	})
}

// IfCtx is If for a context-aware derived schema.
func IfCtx[T, D, C any](d kensa.SchemaC[D, C]) CheckC[T, C] {
	if d == nil {
		panic("dsl: IfCtx requires a schema")
	}
	return checkFuncC[T, C](func(ctx context.Context, v T, c C) kensa.Issues {
		dv, ok := any(v).(D)
		if !ok {
			return nil
		}
		return kensa.IssuesFromErr("", d.ValidateCtx(ctx, dv, c))
	})
}

// typeFor reports the static type of a type parameter, including interface
// types, for which reflect.TypeOf of a zero value would yield nil.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
