package dsl

import (
	"context"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	kensa "github.com/hayate/kensa"
	"github.com/hayate/kensa/i18n"
)

// Numeric is the constraint union accepted by Number schemas.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// String returns a fluent string schema. Constraint methods append rules in
// call order and mutate the receiver; snapshot semantics for composites come
// from the object builders.
func String() *StringSchema { return &StringSchema{} }

type StringSchema struct {
	rules kensa.RuleSet[string]
}

// MinLen requires at least n characters. Length is counted in runes so
// multi-byte text is not penalized.
func (s *StringSchema) MinLen(n int) *StringSchema {
	s.rules.Add(kensa.Rule[string]{Name: "min_len", Check: func(ctx context.Context, v string) kensa.Issues {
		got := utf8.RuneCountInString(v)
		if got >= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinLength,
			Message: i18n.T(kensa.CodeMinLength, nil),
			Params:  map[string]any{"min": n, "got": got},
		}}
	}})
	return s
}

// MaxLen allows at most n characters.
func (s *StringSchema) MaxLen(n int) *StringSchema {
	s.rules.Add(kensa.Rule[string]{Name: "max_len", Check: func(ctx context.Context, v string) kensa.Issues {
		got := utf8.RuneCountInString(v)
		if got <= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMaxLength,
			Message: i18n.T(kensa.CodeMaxLength, nil),
			Params:  map[string]any{"max": n, "got": got},
		}}
	}})
	return s
}

// NonEmpty is MinLen(1) under the min_length code.
func (s *StringSchema) NonEmpty() *StringSchema { return s.MinLen(1) }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema {
	if re == nil {
		panic("dsl: Pattern requires a compiled expression")
	}
	s.rules.Add(kensa.Rule[string]{Name: "pattern", Check: func(ctx context.Context, v string) kensa.Issues {
		if re.MatchString(v) {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodePattern,
			Message: i18n.T(kensa.CodePattern, nil),
			Params:  map[string]any{"pattern": re.String()},
		}}
	}})
	return s
}

// OneOf restricts the value to the allowed set.
func (s *StringSchema) OneOf(allowed ...string) *StringSchema {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	s.rules.Add(kensa.Rule[string]{Name: "one_of", Check: func(ctx context.Context, v string) kensa.Issues {
		if _, ok := set[v]; ok {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeInvalidEnum,
			Message: i18n.T(kensa.CodeInvalidEnum, nil),
			Params:  map[string]any{"allowed": allowed, "got": v},
		}}
	}})
	return s
}

// Refine appends a custom rule.
func (s *StringSchema) Refine(name string, fn func(ctx context.Context, v string) kensa.Issues) *StringSchema {
	if fn == nil {
		return s
	}
	s.rules.Add(kensa.Rule[string]{Name: name, Check: fn})
	return s
}

func (s *StringSchema) Validate(ctx context.Context, v string) error {
	if iss := s.rules.Run(ctx, v); len(iss) > 0 {
		return iss
	}
	return nil
}

// UUID returns a string schema requiring RFC 4122 form. Length and hyphen
// positions are checked before the full parse to keep the reject path cheap.
func UUID() *StringSchema {
	s := String()
	s.rules.Add(kensa.Rule[string]{Name: "uuid", Check: func(ctx context.Context, v string) kensa.Issues {
		ok := len(v) == 36 &&
			v[8] == '-' && v[13] == '-' && v[18] == '-' && v[23] == '-'
		if ok {
			_, err := uuid.Parse(v)
			ok = err == nil
		}
		if ok {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeInvalidFormat,
			Message: i18n.T(kensa.CodeInvalidFormat, nil),
			Params:  map[string]any{"format": "uuid"},
		}}
	}})
	return s
}

// Number returns a fluent numeric schema over any Numeric type.
func Number[N Numeric]() *NumberSchema[N] { return &NumberSchema[N]{} }

type NumberSchema[N Numeric] struct {
	rules kensa.RuleSet[N]
}

// Min requires v >= n.
func (s *NumberSchema[N]) Min(n N) *NumberSchema[N] {
	s.rules.Add(kensa.Rule[N]{Name: "min", Check: func(ctx context.Context, v N) kensa.Issues {
		if v >= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinValue,
			Message: i18n.T(kensa.CodeMinValue, nil),
			Params:  map[string]any{"min": n, "got": v},
		}}
	}})
	return s
}

// Max requires v <= n.
func (s *NumberSchema[N]) Max(n N) *NumberSchema[N] {
	s.rules.Add(kensa.Rule[N]{Name: "max", Check: func(ctx context.Context, v N) kensa.Issues {
		if v <= n {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMaxValue,
			Message: i18n.T(kensa.CodeMaxValue, nil),
			Params:  map[string]any{"max": n, "got": v},
		}}
	}})
	return s
}

// Positive requires v > 0.
func (s *NumberSchema[N]) Positive() *NumberSchema[N] {
	s.rules.Add(kensa.Rule[N]{Name: "positive", Check: func(ctx context.Context, v N) kensa.Issues {
		if v > 0 {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinValue,
			Message: i18n.T(kensa.CodeMinValue, nil),
			Params:  map[string]any{"min": "exclusive 0", "got": v},
		}}
	}})
	return s
}

// Refine appends a custom rule.
func (s *NumberSchema[N]) Refine(name string, fn func(ctx context.Context, v N) kensa.Issues) *NumberSchema[N] {
	if fn == nil {
		return s
	}
	s.rules.Add(kensa.Rule[N]{Name: name, Check: fn})
	return s
}

func (s *NumberSchema[N]) Validate(ctx context.Context, v N) error {
	if iss := s.rules.Run(ctx, v); len(iss) > 0 {
		return iss
	}
	return nil
}

// Bool returns a fluent bool schema.
func Bool() *BoolSchema { return &BoolSchema{} }

type BoolSchema struct {
	rules kensa.RuleSet[bool]
}

// Refine appends a custom rule.
func (s *BoolSchema) Refine(name string, fn func(ctx context.Context, v bool) kensa.Issues) *BoolSchema {
	if fn == nil {
		return s
	}
	s.rules.Add(kensa.Rule[bool]{Name: name, Check: fn})
	return s
}

func (s *BoolSchema) Validate(ctx context.Context, v bool) error {
	if iss := s.rules.Run(ctx, v); len(iss) > 0 {
		return iss
	}
	return nil
}

// Time returns a fluent time schema. Relative constraints (Past/Future) read
// the call's time source via kensa.Now, so tests can pin the clock with
// kensa.WithClock.
func Time() *TimeSchema { return &TimeSchema{} }

type TimeSchema struct {
	rules kensa.RuleSet[time.Time]
}

// NotZero rejects the zero time.
func (s *TimeSchema) NotZero() *TimeSchema {
	s.rules.Add(kensa.Rule[time.Time]{Name: "not_zero", Check: func(ctx context.Context, v time.Time) kensa.Issues {
		if !v.IsZero() {
			return nil
		}
		return kensa.Issues{kensa.Issue{Code: kensa.CodeRequired, Message: i18n.T(kensa.CodeRequired, nil)}}
	}})
	return s
}

// Before requires v < t.
func (s *TimeSchema) Before(t time.Time) *TimeSchema {
	s.rules.Add(kensa.Rule[time.Time]{Name: "before", Check: func(ctx context.Context, v time.Time) kensa.Issues {
		if v.Before(t) {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMaxValue,
			Message: i18n.T(kensa.CodeMaxValue, nil),
			Params:  map[string]any{"before": t, "got": v},
		}}
	}})
	return s
}

// After requires v > t.
func (s *TimeSchema) After(t time.Time) *TimeSchema {
	s.rules.Add(kensa.Rule[time.Time]{Name: "after", Check: func(ctx context.Context, v time.Time) kensa.Issues {
		if v.After(t) {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinValue,
			Message: i18n.T(kensa.CodeMinValue, nil),
			Params:  map[string]any{"after": t, "got": v},
		}}
	}})
	return s
}

// Past requires v to be before the call's current time.
func (s *TimeSchema) Past() *TimeSchema {
	s.rules.Add(kensa.Rule[time.Time]{Name: "past", Check: func(ctx context.Context, v time.Time) kensa.Issues {
		if v.Before(kensa.Now(ctx)) {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMaxValue,
			Message: i18n.T(kensa.CodeMaxValue, nil),
			Params:  map[string]any{"before": "now", "got": v},
		}}
	}})
	return s
}

// Future requires v to be after the call's current time.
func (s *TimeSchema) Future() *TimeSchema {
	s.rules.Add(kensa.Rule[time.Time]{Name: "future", Check: func(ctx context.Context, v time.Time) kensa.Issues {
		if v.After(kensa.Now(ctx)) {
			return nil
		}
		return kensa.Issues{kensa.Issue{
			Code:    kensa.CodeMinValue,
			Message: i18n.T(kensa.CodeMinValue, nil),
			Params:  map[string]any{"after": "now", "got": v},
		}}
	}})
	return s
}

// Refine appends a custom rule.
func (s *TimeSchema) Refine(name string, fn func(ctx context.Context, v time.Time) kensa.Issues) *TimeSchema {
	if fn == nil {
		return s
	}
	s.rules.Add(kensa.Rule[time.Time]{Name: name, Check: fn})
	return s
}

func (s *TimeSchema) Validate(ctx context.Context, v time.Time) error {
	if iss := s.rules.Run(ctx, v); len(iss) > 0 {
		return iss
	}
	return nil
}
