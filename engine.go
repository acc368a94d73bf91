package kensa

import "context"

// Rule is the smallest unit of validation: a named function from a value to
// an optional issue list. A nil return means the rule passed. Rules must not
// depend on another rule's outcome; cross-field logic belongs to conditional
// branches on composite schemas.
type Rule[T any] struct {
	Name  string
	Check func(ctx context.Context, v T) Issues
}

// RuleC is the context-aware twin of Rule: it additionally receives the
// payload resolved once per root validation call.
type RuleC[T, C any] struct {
	Name  string
	Check func(ctx context.Context, v T, c C) Issues
}

// RuleSet holds an ordered list of rules for one value type and executes all
// of them against one value. Rules run strictly in registration order, each
// against the unmodified original value; every issue is collected (no
// short-circuit) and the all-pass path returns nil without allocating.
type RuleSet[T any] struct {
	rules []Rule[T]
}

// Add appends rules in order.
func (rs *RuleSet[T]) Add(rules ...Rule[T]) *RuleSet[T] {
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Len reports the number of registered rules.
func (rs *RuleSet[T]) Len() int { return len(rs.rules) }

// Rules returns a copy of the registered rules in order.
func (rs *RuleSet[T]) Rules() []Rule[T] {
	return append([]Rule[T](nil), rs.rules...)
}

// Run executes every rule in sequence, awaiting each before the next.
func (rs *RuleSet[T]) Run(ctx context.Context, v T) Issues {
	var iss Issues
	for _, r := range rs.rules {
		if r.Check == nil {
			continue
		}
		out := r.Check(ctx, v)
		if len(out) == 0 {
			continue
		}
		iss = AppendIssues(iss, tagRule(out, r.Name)...)
	}
	return iss
}

// RuleSetC is the context-aware RuleSet.
type RuleSetC[T, C any] struct {
	rules []RuleC[T, C]
}

// Add appends rules in order.
func (rs *RuleSetC[T, C]) Add(rules ...RuleC[T, C]) *RuleSetC[T, C] {
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Len reports the number of registered rules.
func (rs *RuleSetC[T, C]) Len() int { return len(rs.rules) }

// Rules returns a copy of the registered rules in order.
func (rs *RuleSetC[T, C]) Rules() []RuleC[T, C] {
	return append([]RuleC[T, C](nil), rs.rules...)
}

// Run executes every rule in sequence against the value and the shared
// payload. The payload is read-only by contract; no rule runs concurrently
// with another.
func (rs *RuleSetC[T, C]) Run(ctx context.Context, v T, c C) Issues {
	var iss Issues
	for _, r := range rs.rules {
		if r.Check == nil {
			continue
		}
		out := r.Check(ctx, v, c)
		if len(out) == 0 {
			continue
		}
		iss = AppendIssues(iss, tagRule(out, r.Name)...)
	}
	return iss
}

// tagRule records the producing rule name on each issue for observability.
func tagRule(iss Issues, name string) Issues {
	if name == "" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		if it.Rule == "" {
			it.Rule = name
		}
		if it.Params == nil {
			it.Params = map[string]any{"rule": name}
		} else if _, ok := it.Params["rule"]; !ok {
			// copy before inserting; the map belongs to the rule
			params := make(map[string]any, len(it.Params)+1)
			for k, v := range it.Params {
				params[k] = v
			}
			params["rule"] = name
			it.Params = params
		}
		out = append(out, it)
	}
	return out
}
