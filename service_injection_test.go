package kensa_test

import (
	"context"
	"testing"

	kensa "github.com/hayate/kensa"
)

type userStore interface {
	Exists(id string) bool
}

type fakeStore map[string]bool

func (f fakeStore) Exists(id string) bool { return f[id] }

func TestWithService_RoundTrip(t *testing.T) {
	ctx := kensa.WithService[userStore](context.Background(), fakeStore{"u1": true})

	svc, ok := kensa.Service[userStore](ctx)
	if !ok {
		t.Fatalf("service not found")
	}
	if !svc.Exists("u1") || svc.Exists("u2") {
		t.Fatalf("wrong service instance")
	}
}

func TestService_MissingReturnsFalse(t *testing.T) {
	if _, ok := kensa.Service[userStore](context.Background()); ok {
		t.Fatalf("expected missing service")
	}
}

func TestRequireService(t *testing.T) {
	ctx := kensa.WithService[userStore](context.Background(), fakeStore{})
	if _, err := kensa.RequireService[userStore](ctx); err != nil {
		t.Fatalf("unexpected: %v", err)
	}

	_, err := kensa.RequireService[userStore](context.Background())
	iss, ok := kensa.AsIssues(err)
	if !ok || iss[0].Code != kensa.CodeDependencyUnavailable {
		t.Fatalf("expected dependency_unavailable, got %v", err)
	}
	if got, _ := iss[0].Params["service"].(string); got != "kensa_test.userStore" {
		t.Fatalf("missing service type not identified: %+v", iss[0].Params)
	}
}
