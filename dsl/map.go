package dsl

import (
	"context"
	"fmt"
	"sort"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// MapOf returns a schema for map[K]V dictionaries. Keys are visited in the
// sorted order of their rendered form for deterministic issue ordering; every
// key, value, and entry issue is anchored at the entry's [key] segment
// (rendered as $[key] at the root).
func MapOf[K comparable, V any]() *MapSchema[K, V] {
	return &MapSchema[K, V]{}
}

type MapSchema[K comparable, V any] struct {
	keys    kensa.Schema[K]
	vals    kensa.Schema[V]
	entries []entryRule[K, V]
	rules   kensa.RuleSet[map[K]V]
}

type entryRule[K comparable, V any] struct {
	name string
	fn   func(ctx context.Context, k K, v V) kensa.Issues
}

// Keys sets the schema every key must satisfy.
func (m *MapSchema[K, V]) Keys(s kensa.Schema[K]) *MapSchema[K, V] {
	m.keys = s
	return m
}

// Values sets the schema every value must satisfy.
func (m *MapSchema[K, V]) Values(s kensa.Schema[V]) *MapSchema[K, V] {
	m.vals = s
	return m
}

// RefineEntry adds a per-entry rule observing key and value together.
func (m *MapSchema[K, V]) RefineEntry(name string, fn func(ctx context.Context, k K, v V) kensa.Issues) *MapSchema[K, V] {
	if fn == nil {
		return m
	}
	m.entries = append(m.entries, entryRule[K, V]{name: name, fn: fn})
	return m
}

// Refine adds a dictionary-level rule.
func (m *MapSchema[K, V]) Refine(name string, fn func(ctx context.Context, v map[K]V) kensa.Issues) *MapSchema[K, V] {
	if fn == nil {
		return m
	}
	m.rules.Add(kensa.Rule[map[K]V]{Name: name, Check: fn})
	return m
}

// MinItems requires at least n entries.
func (m *MapSchema[K, V]) MinItems(n int) *MapSchema[K, V] {
	m.rules.Add(kensa.Rule[map[K]V]{Name: "min_items", Check: func(ctx context.Context, v map[K]V) kensa.Issues {
		if len(v) >= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinItems,
			Message: i18n.T(kensa.CodeMinItems, nil),
			Params:  map[string]any{"min": n, "got": len(v)},
		}}
	}})
	return m
}

func (m *MapSchema[K, V]) Validate(ctx context.Context, v map[K]V) error {
	var iss kensa.Issues
	if out := m.rules.Run(ctx, v); len(out) > 0 {
		iss = kensa.AppendIssues(iss, out...)
	}
	for _, k := range sortedKeys(v) {
		seg := kensa.KeySeg(k)
		if m.keys != nil {
			child := kensa.IssuesFromErr("", m.keys.Validate(ctx, k))
			if len(child) > 0 {
				iss = kensa.AppendIssues(iss, kensa.Rebase(child, seg)...)
			}
		}
		if m.vals != nil {
			child := kensa.IssuesFromErr("", m.vals.Validate(ctx, v[k]))
			if len(child) > 0 {
				iss = kensa.AppendIssues(iss, kensa.Rebase(child, seg)...)
			}
		}
		for _, er := range m.entries {
			out := er.fn(ctx, k, v[k])
			if len(out) == 0 {
				continue
			}
			for i := range out {
				if out[i].Rule == "" {
					out[i].Rule = er.name
				}
			}
			iss = kensa.AppendIssues(iss, kensa.Rebase(out, seg)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// sortedKeys returns map keys in the ascending order of their rendered form.
func sortedKeys[K comparable, V any](v map[K]V) []K {
	ks := make([]K, 0, len(v))
	for k := range v {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool {
		return fmt.Sprint(ks[i]) < fmt.Sprint(ks[j])
	})
	return ks
}
