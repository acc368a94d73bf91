package kensa

import (
	"context"
	"reflect"

	"github.com/hayate/kensa/i18n"
)

// serviceKey is a unique context key per requested type T.
type serviceKey[T any] struct{}

// WithService stores a typed collaborator in the context for use by context
// factories and context-aware rules. It is the dependency-resolution hook:
// supplied at the root call and forwarded unchanged to every factory
// invocation within that call.
func WithService[T any](ctx context.Context, svc T) context.Context {
	return context.WithValue(ctx, serviceKey[T]{}, svc)
}

// Service retrieves a typed collaborator from the context.
func Service[T any](ctx context.Context) (T, bool) {
	svc, ok := ctx.Value(serviceKey[T]{}).(T)
	return svc, ok
}

// RequireService returns the collaborator, or a dependency_unavailable Issues
// value identifying the requested type so factories can return it as-is.
func RequireService[T any](ctx context.Context) (T, error) {
	svc, ok := Service[T](ctx)
	if ok {
		return svc, nil
	}
	return svc, Issues{Issue{
		Code:    CodeDependencyUnavailable,
		Message: i18n.T(CodeDependencyUnavailable, nil),
		Params:  map[string]any{"service": reflect.TypeOf((*T)(nil)).Elem().String()},
	}}
}
