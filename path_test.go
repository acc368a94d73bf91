package kensa_test

import (
	"testing"

	kensa "github.com/hayate/kensa"
)

func TestPathRef_Chaining(t *testing.T) {
	p := kensa.Root().Field("user").Field("addresses").Index(0).Field("zip")
	if got := p.String(); got != "user.addresses[0].zip" {
		t.Fatalf("got %q", got)
	}
}

func TestPathRef_StructuralSharing(t *testing.T) {
	base := kensa.Root().Field("a")
	left := base.Field("b")
	right := base.Index(3)
	if base.String() != "a" {
		t.Fatalf("parent mutated: %q", base.String())
	}
	if left.String() != "a.b" || right.String() != "a[3]" {
		t.Fatalf("branches wrong: %q %q", left.String(), right.String())
	}
}

func TestPathRef_Key(t *testing.T) {
	if got := kensa.Root().Field("env").Key("HOME").String(); got != "env[HOME]" {
		t.Fatalf("got %q", got)
	}
}

func TestPathRef_Issue(t *testing.T) {
	it := kensa.Root().Field("age").Issue(kensa.CodeMinValue, "too small", "min", 0, "got", -1)
	if it.Path != "age" || it.Code != kensa.CodeMinValue {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Params["min"] != 0 || it.Params["got"] != -1 {
		t.Fatalf("params not captured: %+v", it.Params)
	}
}

func TestRebase(t *testing.T) {
	iss := kensa.Issues{
		{Path: "", Code: kensa.CodeBusinessRule},
		{Path: "zip", Code: kensa.CodeRequired},
		{Path: "[0].c", Code: kensa.CodeMinLength},
	}
	got := kensa.Rebase(iss, "addr")
	wantPaths := []string{"addr", "addr.zip", "addr[0].c"}
	for i, w := range wantPaths {
		if got[i].Path != w {
			t.Fatalf("issue %d path = %q, want %q", i, got[i].Path, w)
		}
	}
	// originals untouched
	if iss[0].Path != "" || iss[1].Path != "zip" {
		t.Fatalf("rebase mutated input: %+v", iss)
	}
}

func TestSegmentHelpers(t *testing.T) {
	if kensa.IndexSeg(12) != "[12]" {
		t.Fatalf("IndexSeg wrong")
	}
	if kensa.KeySeg("myKey") != "[myKey]" {
		t.Fatalf("KeySeg wrong")
	}
	if kensa.KeySeg(7) != "[7]" {
		t.Fatalf("KeySeg for non-string wrong")
	}
}
