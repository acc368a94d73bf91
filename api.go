package kensa

import (
	"context"
	"fmt"
	"time"
)

// Schema is a composed validator for one value type. Validate returns nil on
// success or Issues with paths relative to the value itself; composite
// parents rebase those paths on the way up. Implementations never stop at the
// first issue.
type Schema[T any] interface {
	Validate(ctx context.Context, v T) error
}

// SchemaC is a context-aware Schema: validation may additionally consult a
// payload of type C resolved exactly once per root call and shared read-only
// across the whole schema tree for that call.
type SchemaC[T, C any] interface {
	ValidateCtx(ctx context.Context, v T, c C) error
}

// ContextProvider is an optional capability of context-aware schemas that
// know how to build their own payload from the value under validation.
// Implementations may suspend (e.g. load an entity) and must honor ctx
// cancellation.
type ContextProvider[T, C any] interface {
	ResolveContext(ctx context.Context, v T) (C, error)
}

// ResolvedValidator is an optional capability of schemas that manage layered
// payload resolution themselves (see dsl.Derive). Resolve prefers it over
// ContextProvider so chained contexts resolve exactly once per call.
type ResolvedValidator[T any] interface {
	ValidateResolved(ctx context.Context, v T) error
}

// Check validates v against a contextless schema and returns the Result with
// root-anchored paths.
func Check[T any](ctx context.Context, s Schema[T], v T) Result[T] {
	return resultFromErr(v, s.Validate(ctx, v))
}

// CheckCtx validates v against a context-aware schema with an
// already-resolved payload.
func CheckCtx[T, C any](ctx context.Context, s SchemaC[T, C], v T, c C) Result[T] {
	return resultFromErr(v, s.ValidateCtx(ctx, v, c))
}

// Resolve validates v against a context-aware schema, resolving the payload
// through the schema's registered factories exactly once for the whole call.
// A schema without any factory is a broken definition and panics. A factory
// that fails at runtime maps to a single dependency_unavailable issue.
func Resolve[T, C any](ctx context.Context, s SchemaC[T, C], v T) Result[T] {
	if sr, ok := any(s).(ResolvedValidator[T]); ok {
		return resultFromErr(v, sr.ValidateResolved(ctx, v))
	}
	p, ok := any(s).(ContextProvider[T, C])
	if !ok {
		panic(fmt.Sprintf("kensa: schema %T has no context factory; use CheckCtx with an explicit payload", s))
	}
	c, err := p.ResolveContext(ctx, v)
	if err != nil {
		return Failure[T](finalizePaths(DependencyIssues(err)))
	}
	return CheckCtx(ctx, s, v, c)
}

// DependencyIssues maps a factory or context-rule runtime failure to the
// issue hosts surface as a 5xx rather than a 422. Issues pass through
// unchanged.
func DependencyIssues(err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Code: CodeDependencyUnavailable, Message: err.Error(), Cause: err}}
}

// ---- Call-scoped options (context wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyClock contextKey = iota
)

// WithClock returns a child context carrying the time source used by
// time-based rules. Tests pin it to a fixed instant.
func WithClock(ctx context.Context, now func() time.Time) context.Context {
	return context.WithValue(ctx, _ctxKeyClock, now)
}

// Now returns the call's time source, falling back to time.Now.
func Now(ctx context.Context) time.Time {
	if f, ok := ctx.Value(_ctxKeyClock).(func() time.Time); ok && f != nil {
		return f()
	}
	return time.Now()
}
