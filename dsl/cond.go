package dsl

import (
	"context"

	kensa "github.com/hayate/kensa"
)

// Branch gates a group of checks on a predicate over the instance. The
// predicate runs exactly once per validation call; the selected side runs in
// registration order and contributes its issues at the parent's own path
// (the branch adds no segment). Branches nest freely: a Then list may hold
// further branches or narrowing checks.
type Branch[T any] struct {
	pred func(T) bool
	then []Check[T]
	els  []Check[T]
}

// When starts a conditional branch.
func When[T any](pred func(T) bool) *Branch[T] {
	if pred == nil {
		panic("dsl: When requires a predicate")
	}
	return &Branch[T]{pred: pred}
}

// Then registers the checks to run when the predicate holds.
func (b *Branch[T]) Then(checks ...Check[T]) *Branch[T] {
	b.then = append(b.then, checks...)
	return b
}

// Else registers the checks to run when the predicate does not hold.
func (b *Branch[T]) Else(checks ...Check[T]) *Branch[T] {
	b.els = append(b.els, checks...)
	return b
}

func (b *Branch[T]) run(ctx context.Context, v T) kensa.Issues {
	if b.pred(v) {
		return runChecks(ctx, v, b.then)
	}
	return runChecks(ctx, v, b.els)
}

// BranchC is the context-aware Branch; its predicate may also consult the
// resolved payload.
type BranchC[T, C any] struct {
	pred func(T, C) bool
	then []CheckC[T, C]
	els  []CheckC[T, C]
}

// WhenCtx starts a context-aware conditional branch.
func WhenCtx[T, C any](pred func(T, C) bool) *BranchC[T, C] {
	if pred == nil {
		panic("dsl: WhenCtx requires a predicate")
	}
	return &BranchC[T, C]{pred: pred}
}

// Then registers the checks to run when the predicate holds.
func (b *BranchC[T, C]) Then(checks ...CheckC[T, C]) *BranchC[T, C] {
	b.then = append(b.then, checks...)
	return b
}

// Else registers the checks to run when the predicate does not hold.
func (b *BranchC[T, C]) Else(checks ...CheckC[T, C]) *BranchC[T, C] {
	b.els = append(b.els, checks...)
	return b
}

func (b *BranchC[T, C]) runCtx(ctx context.Context, v T, c C) kensa.Issues {
	if b.pred(v, c) {
		return runChecksCtx(ctx, v, c, b.then)
	}
	return runChecksCtx(ctx, v, c, b.els)
}
