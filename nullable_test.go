package kensa_test

import (
	"context"
	"testing"

	kensa "github.com/hayate/kensa"
)

// countingSchema records how many times inner validation ran.
type countingSchema struct {
	calls int
	iss   kensa.Issues
}

func (s *countingSchema) Validate(ctx context.Context, v string) error {
	s.calls++
	if len(s.iss) > 0 {
		return s.iss
	}
	return nil
}

func TestPtr_NilDisallowed(t *testing.T) {
	ctx := context.Background()
	inner := &countingSchema{}
	s := kensa.Ptr[string](inner)

	err := s.Validate(ctx, nil)
	iss, _ := kensa.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != kensa.CodeNullValue {
		t.Fatalf("expected exactly one null_value issue, got %v", iss)
	}
	if inner.calls != 0 {
		t.Fatalf("inner rules must not run for absent value")
	}
}

func TestPtr_NilAllowed(t *testing.T) {
	ctx := context.Background()
	inner := &countingSchema{iss: kensa.Issues{{Code: kensa.CodeMinLength}}}
	s := kensa.Ptr[string](inner).AllowNil()

	if err := s.Validate(ctx, nil); err != nil {
		t.Fatalf("allowed nil must succeed, got %v", err)
	}
	if inner.calls != 0 {
		t.Fatalf("inner rules must not run for allowed nil")
	}
}

func TestPtr_PresentDelegatesVerbatim(t *testing.T) {
	ctx := context.Background()
	inner := &countingSchema{iss: kensa.Issues{{Path: "sub", Code: kensa.CodeMinLength}}}
	s := kensa.Ptr[string](inner)

	v := "hello"
	err := s.Validate(ctx, &v)
	iss, _ := kensa.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "sub" {
		t.Fatalf("wrapping must not touch paths: %v", iss)
	}
	if inner.calls != 1 {
		t.Fatalf("inner must run once, ran %d", inner.calls)
	}
}

func TestOpt_ValueStrategy(t *testing.T) {
	ctx := context.Background()
	inner := &countingSchema{}

	strict := kensa.Opt[string](inner)
	err := strict.Validate(ctx, kensa.None[string]())
	iss, _ := kensa.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != kensa.CodeNullValue {
		t.Fatalf("expected null_value, got %v", iss)
	}

	lenient := kensa.Opt[string](inner).AllowNil()
	if err := lenient.Validate(ctx, kensa.None[string]()); err != nil {
		t.Fatalf("allowed absence must succeed: %v", err)
	}
	if inner.calls != 0 {
		t.Fatalf("inner must not have run yet")
	}

	if err := lenient.Validate(ctx, kensa.Some("v")); err != nil {
		t.Fatalf("present value should delegate: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner must run for present value")
	}
}

// ctxInner is a context-aware inner schema with a factory that requires a
// concrete value.
type ctxInner struct{ factoryCalls int }

func (s *ctxInner) ValidateCtx(ctx context.Context, v string, c int) error { return nil }
func (s *ctxInner) ResolveContext(ctx context.Context, v string) (int, error) {
	s.factoryCalls++
	return len(v), nil
}

func TestPtrC_ResolvePanicsOnNil(t *testing.T) {
	s := kensa.PtrC[string, int](&ctxInner{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when resolving context for nil value")
		}
	}()
	_, _ = s.ResolveContext(context.Background(), nil)
}

func TestPtrC_ResolveDelegatesForPresentValue(t *testing.T) {
	inner := &ctxInner{}
	s := kensa.PtrC[string, int](inner)
	v := "abcd"
	c, err := s.ResolveContext(context.Background(), &v)
	if err != nil || c != 4 || inner.factoryCalls != 1 {
		t.Fatalf("delegation wrong: c=%d err=%v calls=%d", c, err, inner.factoryCalls)
	}
}

func TestOptC_ResolvePanicsOnAbsent(t *testing.T) {
	s := kensa.OptC[string, int](&ctxInner{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when resolving context for absent value")
		}
	}()
	_, _ = s.ResolveContext(context.Background(), kensa.None[string]())
}
