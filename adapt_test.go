package kensa_test

import (
	"context"
	"testing"

	kensa "github.com/hayate/kensa"
)

func TestLift_IgnoresPayload(t *testing.T) {
	ctx := context.Background()
	inner := schemaFunc[string](func(ctx context.Context, v string) error {
		if v == "" {
			return kensa.Issues{{Code: kensa.CodeRequired}}
		}
		return nil
	})
	s := kensa.Lift[int](kensa.Schema[string](inner))

	if err := s.ValidateCtx(ctx, "ok", 99); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := s.ValidateCtx(ctx, "", 99)
	if iss, _ := kensa.AsIssues(err); len(iss) != 1 {
		t.Fatalf("inner issues lost: %v", err)
	}
}

func TestBind_FixesPayload(t *testing.T) {
	ctx := context.Background()
	var seen []int
	inner := &ctxSchema{
		validate: func(ctx context.Context, v string, c int) error {
			seen = append(seen, c)
			return nil
		},
	}
	s := kensa.Bind[string, int](inner, 7)
	_ = s.Validate(ctx, "a")
	_ = s.Validate(ctx, "b")
	if len(seen) != 2 || seen[0] != 7 || seen[1] != 7 {
		t.Fatalf("bound payload not forwarded: %v", seen)
	}
}
