package kensa

// Result is the outcome of one root validation call: either the validated
// value, or the complete ordered list of issues found. There is no partial
// state; construction enforces the invariant that a failure carries at least
// one issue and a success carries none.
type Result[T any] struct {
	value  T
	issues Issues
}

// Success wraps a value that satisfied every registered rule.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps a non-empty issue list. An empty list is a programmer error
// and panics; use Success for the all-pass outcome.
func Failure[T any](iss Issues) Result[T] {
	if len(iss) == 0 {
		panic("kensa: Failure requires at least one issue")
	}
	return Result[T]{issues: iss}
}

// Ok reports whether the validation succeeded.
func (r Result[T]) Ok() bool { return len(r.issues) == 0 }

// Value returns the validated value. It is the zero value on failure.
func (r Result[T]) Value() T { return r.value }

// Issues returns the ordered issue list; nil on success.
func (r Result[T]) Issues() Issues { return r.issues }

// Err returns the issue list as an error, or nil on success.
func (r Result[T]) Err() error {
	if len(r.issues) == 0 {
		return nil
	}
	return r.issues
}

// resultFromErr folds a schema-level error into a Result, finalizing paths
// for root display.
func resultFromErr[T any](v T, err error) Result[T] {
	if err == nil {
		return Success(v)
	}
	if iss, ok := AsIssues(err); ok && len(iss) > 0 {
		return Failure[T](finalizePaths(iss))
	}
	return Failure[T](finalizePaths(IssuesFromErr("", err)))
}
