package dsl_test

import (
	"context"
	"testing"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/dsl"
)

func TestMap_KeyedPaths(t *testing.T) {
	ctx := context.Background()
	s := dsl.MapOf[string, int]().Values(dsl.Number[int]().Min(0))

	iss := kensa.Check[map[string]int](ctx, s, map[string]int{"a": 1, "b": -1}).Issues()
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", iss)
	}
	if iss[0].Path != "$[b]" {
		t.Fatalf("path = %q, want $[b]", iss[0].Path)
	}
}

func TestMap_RefineEntry(t *testing.T) {
	ctx := context.Background()
	s := dsl.MapOf[string, int]().
		RefineEntry("even_values", func(ctx context.Context, k string, v int) kensa.Issues {
			if v%2 == 0 {
				return nil
			}
			return kensa.Issues{{Code: kensa.CodeBusinessRule, Message: "must be even"}}
		})

	iss := kensa.Check[map[string]int](ctx, s, map[string]int{"a": 2, "b": 3}).Issues()
	if len(iss) != 1 || iss[0].Path != "$[b]" {
		t.Fatalf("entry issue must live under its key: %v", iss)
	}
	if iss[0].Rule != "even_values" {
		t.Fatalf("rule tag missing: %+v", iss[0])
	}
}

func TestMap_KeysAndValuesBothChecked(t *testing.T) {
	ctx := context.Background()
	s := dsl.MapOf[string, int]().
		Keys(dsl.String().MinLen(2)).
		Values(dsl.Number[int]().Min(0))

	iss := kensa.Check[map[string]int](ctx, s, map[string]int{"x": -1}).Issues()
	if len(iss) != 2 {
		t.Fatalf("expected key and value issues, got %v", iss)
	}
	for _, it := range iss {
		if it.Path != "$[x]" {
			t.Fatalf("issues must share the entry path: %+v", it)
		}
	}
}

func TestMap_DeterministicIssueOrder(t *testing.T) {
	ctx := context.Background()
	s := dsl.MapOf[string, int]().Values(dsl.Number[int]().Min(0))
	in := map[string]int{"c": -1, "a": -1, "b": -1}

	for i := 0; i < 5; i++ {
		iss := kensa.Check[map[string]int](ctx, s, in).Issues()
		if len(iss) != 3 {
			t.Fatalf("expected three issues, got %v", iss)
		}
		if iss[0].Path != "$[a]" || iss[1].Path != "$[b]" || iss[2].Path != "$[c]" {
			t.Fatalf("issue order must follow sorted keys: %v", iss)
		}
	}
}

func TestMap_NestedUnderField(t *testing.T) {
	ctx := context.Background()
	type prefs struct{ Flags map[string]int }
	s := dsl.Object[prefs]().
		Fields(dsl.Field("flags", func(p prefs) map[string]int { return p.Flags }, dsl.MapOf[string, int]().Values(dsl.Number[int]().Min(0)))).
		MustBuild()

	iss := kensa.Check(ctx, s, prefs{Flags: map[string]int{"dark": -1}}).Issues()
	if len(iss) != 1 || iss[0].Path != "flags[dark]" {
		t.Fatalf("nested entry path wrong: %v", iss)
	}
}

func TestMap_MinItems(t *testing.T) {
	ctx := context.Background()
	s := dsl.MapOf[string, int]().MinItems(1)
	iss := kensa.Check[map[string]int](ctx, s, map[string]int{}).Issues()
	if len(iss) != 1 || iss[0].Code != kensa.CodeMinItems {
		t.Fatalf("expected min_items, got %v", iss)
	}
}
