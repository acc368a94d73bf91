package kensa_test

import (
	"context"
	"errors"
	"testing"
	"time"

	kensa "github.com/hayate/kensa"
)

// schemaFunc adapts a function to kensa.Schema for tests.
type schemaFunc[T any] func(ctx context.Context, v T) error

func (f schemaFunc[T]) Validate(ctx context.Context, v T) error { return f(ctx, v) }

// ctxSchema is a context-aware schema with an optional factory.
type ctxSchema struct {
	validate func(ctx context.Context, v string, c int) error
	factory  func(ctx context.Context, v string) (int, error)
}

func (s *ctxSchema) ValidateCtx(ctx context.Context, v string, c int) error {
	return s.validate(ctx, v, c)
}

func (s *ctxSchema) ResolveContext(ctx context.Context, v string) (int, error) {
	return s.factory(ctx, v)
}

func TestCheck_SuccessReturnsValue(t *testing.T) {
	ctx := context.Background()
	s := schemaFunc[string](func(ctx context.Context, v string) error { return nil })
	res := kensa.Check[string](ctx, s, "ok")
	if !res.Ok() || res.Value() != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCheck_FinalizesRootPaths(t *testing.T) {
	ctx := context.Background()
	s := schemaFunc[string](func(ctx context.Context, v string) error {
		return kensa.Issues{
			{Path: "", Code: kensa.CodeBusinessRule},
			{Path: "[b]", Code: kensa.CodeMinValue},
			{Path: "a.b", Code: kensa.CodeRequired},
		}
	})
	res := kensa.Check[string](ctx, s, "v")
	iss := res.Issues()
	if iss[0].Path != "$" || iss[1].Path != "$[b]" || iss[2].Path != "a.b" {
		t.Fatalf("paths not finalized: %v", iss)
	}
}

func TestCheck_WrapsForeignError(t *testing.T) {
	ctx := context.Background()
	s := schemaFunc[string](func(ctx context.Context, v string) error { return errors.New("boom") })
	res := kensa.Check[string](ctx, s, "v")
	if res.Ok() || res.Issues()[0].Code != kensa.CodeBusinessRule {
		t.Fatalf("foreign error not folded: %+v", res.Issues())
	}
}

func TestResolve_UsesFactoryOnce(t *testing.T) {
	ctx := context.Background()
	calls := 0
	s := &ctxSchema{
		factory: func(ctx context.Context, v string) (int, error) {
			calls++
			return len(v), nil
		},
		validate: func(ctx context.Context, v string, c int) error {
			if c != len(v) {
				return kensa.Issues{{Code: kensa.CodeBusinessRule}}
			}
			return nil
		},
	}
	res := kensa.Resolve[string, int](ctx, s, "abc")
	if !res.Ok() {
		t.Fatalf("unexpected issues: %v", res.Issues())
	}
	if calls != 1 {
		t.Fatalf("factory invoked %d times, want 1", calls)
	}
}

func TestResolve_FactoryFailureMapsToDependencyIssue(t *testing.T) {
	ctx := context.Background()
	s := &ctxSchema{
		factory: func(ctx context.Context, v string) (int, error) {
			return 0, errors.New("db down")
		},
		validate: func(ctx context.Context, v string, c int) error { return nil },
	}
	res := kensa.Resolve[string, int](ctx, s, "x")
	if res.Ok() {
		t.Fatalf("expected failure")
	}
	iss := res.Issues()
	if len(iss) != 1 || iss[0].Code != kensa.CodeDependencyUnavailable {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

// bareCtxSchema has no factory at all.
type bareCtxSchema struct{}

func (bareCtxSchema) ValidateCtx(ctx context.Context, v string, c int) error { return nil }

func TestResolve_PanicsWithoutFactory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for schema without factory")
		}
	}()
	kensa.Resolve[string, int](context.Background(), bareCtxSchema{}, "x")
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := kensa.WithClock(context.Background(), func() time.Time { return fixed })
	if !kensa.Now(ctx).Equal(fixed) {
		t.Fatalf("clock not honored")
	}
	// fallback
	before := time.Now()
	got := kensa.Now(context.Background())
	if got.Before(before.Add(-time.Minute)) {
		t.Fatalf("fallback clock suspicious: %v", got)
	}
}
