package dsl

import (
	"context"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// Slice returns a schema for []E: element iteration with [i] path segments
// plus slice-level rules. Length bounds and refinements run before elements,
// in registration order.
func Slice[E any](elem kensa.Schema[E]) *SliceSchema[E] {
	if elem == nil {
		panic("dsl: Slice requires an element schema")
	}
	return &SliceSchema[E]{elem: elem}
}

type SliceSchema[E any] struct {
	elem  kensa.Schema[E]
	rules kensa.RuleSet[[]E]
}

// MinItems requires at least n elements.
func (s *SliceSchema[E]) MinItems(n int) *SliceSchema[E] {
	s.rules.Add(kensa.Rule[[]E]{Name: "min_items", Check: func(ctx context.Context, v []E) kensa.Issues {
		if len(v) >= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinItems,
			Message: i18n.T(kensa.CodeMinItems, nil),
			Params:  map[string]any{"min": n, "got": len(v)},
		}}
	}})
	return s
}

// MaxItems allows at most n elements.
func (s *SliceSchema[E]) MaxItems(n int) *SliceSchema[E] {
	s.rules.Add(kensa.Rule[[]E]{Name: "max_items", Check: func(ctx context.Context, v []E) kensa.Issues {
		if len(v) <= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMaxItems,
			Message: i18n.T(kensa.CodeMaxItems, nil),
			Params:  map[string]any{"max": n, "got": len(v)},
		}}
	}})
	return s
}

// Refine adds a slice-level rule.
func (s *SliceSchema[E]) Refine(name string, fn func(ctx context.Context, v []E) kensa.Issues) *SliceSchema[E] {
	if fn == nil {
		return s
	}
	s.rules.Add(kensa.Rule[[]E]{Name: name, Check: fn})
	return s
}

func (s *SliceSchema[E]) Validate(ctx context.Context, v []E) error {
	var iss kensa.Issues
	if out := s.rules.Run(ctx, v); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	for i := range v {
		child := kensa.IssuesFromErr("", s.elem.Validate(ctx, v[i]))
		if len(child) > 0 {
			iss = kensa.AppendIssues(iss, kensa.Rebase(child, kensa.IndexSeg(i))...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
