package dsl

import (
	"context"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// Check connects a composite schema to one piece of validation work against
// the whole instance: a field validator, a conditional branch, or a
// type-narrowing branch. Checks report issue paths relative to the parent.
type Check[T any] interface {
	run(ctx context.Context, v T) kensa.Issues
}

// CheckC is the context-aware Check.
type CheckC[T, C any] interface {
	runCtx(ctx context.Context, v T, c C) kensa.Issues
}

type checkFunc[T any] func(ctx context.Context, v T) kensa.Issues

func (f checkFunc[T]) run(ctx context.Context, v T) kensa.Issues { return f(ctx, v) }

type checkFuncC[T, C any] func(ctx context.Context, v T, c C) kensa.Issues

func (f checkFuncC[T, C]) runCtx(ctx context.Context, v T, c C) kensa.Issues { return f(ctx, v, c) }

// Field binds a named sub-value to an inner schema. The getter is extracted
// exactly once per validation; the inner schema's issues come back rebased
// under the field name, codes and messages untouched.
func Field[T, F any](name string, get func(T) F, s kensa.Schema[F]) Check[T] {
	if name == "" {
		panic("dsl: Field requires a name")
	}
	if get == nil {
		panic("dsl: Field requires a getter")
	}
	if s == nil {
		panic("dsl: Field requires a schema")
	}
	return checkFunc[T](func(ctx context.Context, v T) kensa.Issues {
		return kensa.Rebase(kensa.IssuesFromErr("", s.Validate(ctx, get(v))), name)
	})
}

// FieldCtx is Field for a context-aware inner schema.
func FieldCtx[T, F, C any](name string, get func(T) F, s kensa.SchemaC[F, C]) CheckC[T, C] {
	if name == "" {
		panic("dsl: FieldCtx requires a name")
	}
	if get == nil {
		panic("dsl: FieldCtx requires a getter")
	}
	if s == nil {
		panic("dsl: FieldCtx requires a schema")
	}
	return checkFuncC[T, C](func(ctx context.Context, v T, c C) kensa.Issues {
		return kensa.Rebase(kensa.IssuesFromErr("", s.ValidateCtx(ctx, get(v), c)), name)
	})
}

// Required emits a single required issue when the field is absent. It is
// independent of any inner schema registered for the same field.
func Required[T any](name string, present func(T) bool) Check[T] {
	if name == "" {
		panic("dsl: Required requires a name")
	}
	if present == nil {
		panic("dsl: Required requires a presence predicate")
	}
	return checkFunc[T](func(ctx context.Context, v T) kensa.Issues {
		if present(v) {
			return nil
		}
		return kensa.Issues{kensa.Issue{Path: name, Code: kensa.CodeRequired, Message: i18n.T(kensa.CodeRequired, nil)}}
	})
}

// Lift promotes a contextless check into a context-aware one; the payload is
// ignored.
func Lift[C, T any](c Check[T]) CheckC[T, C] {
	return checkFuncC[T, C](func(ctx context.Context, v T, _ C) kensa.Issues {
		return c.run(ctx, v)
	})
}

func runChecks[T any](ctx context.Context, v T, checks []Check[T]) kensa.Issues {
	var iss kensa.Issues
	for _, c := range checks {
		if out := c.run(ctx, v); len(out) > 0 {
			iss = kensa.AppendIssues(iss, out...)
		}
	}
	return iss
}

func runChecksCtx[T, C any](ctx context.Context, v T, c C, checks []CheckC[T, C]) kensa.Issues {
	var iss kensa.Issues
	for _, ch := range checks {
		if out := ch.runCtx(ctx, v, c); len(out) > 0 {
			iss = kensa.AppendIssues(iss, out...)
		}
	}
	return iss
}
