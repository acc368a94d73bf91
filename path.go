package kensa

import (
	"fmt"
	"strconv"
)

// PathRef builds dotted/bracket value locations in a chain-safe way and
// creates Issues anchored at them. Every step returns a new ref; the parent
// is never mutated, so refs can be held and branched freely.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Key(k any) PathRef
	String() string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the empty path ref (rendered as "$").
func Root() PathRef { return pathRef{} }

type pathRef struct {
	path string
}

func (p pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return pathRef{path: joinPath(p.path, name)}
}

func (p pathRef) Index(i int) PathRef {
	return pathRef{path: p.path + "[" + strconv.Itoa(i) + "]"}
}

func (p pathRef) Key(k any) PathRef {
	return pathRef{path: p.path + "[" + fmt.Sprint(k) + "]"}
}

func (p pathRef) String() string { return p.path }

// Issue creates an Issue at this path. kv are alternating param key/values.
func (p pathRef) Issue(code, msg string, kv ...any) Issue {
	it := Issue{Path: p.path, Code: code, Message: msg}
	if len(kv) >= 2 {
		params := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				params[k] = kv[i+1]
			}
		}
		it.Params = params
	}
	return it
}

// IndexSeg renders a collection index segment, e.g. "[2]".
func IndexSeg(i int) string { return "[" + strconv.Itoa(i) + "]" }

// KeySeg renders a dictionary key segment using the key's string
// representation, e.g. "[myKey]".
func KeySeg(k any) string { return "[" + fmt.Sprint(k) + "]" }

// joinPath prefixes one segment onto a child-relative path. Bracket segments
// attach directly; field segments join with a dot.
func joinPath(seg, rel string) string {
	switch {
	case seg == "":
		return rel
	case rel == "":
		return seg
	case rel[0] == '[':
		return seg + rel
	default:
		return seg + "." + rel
	}
}

// Rebase prefixes one path segment onto every issue of a child schema. Child
// schemas report paths relative to themselves; composite parents rebase on
// the way up, which keeps leaf schemas reusable at any depth.
func Rebase(iss Issues, seg string) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = joinPath(seg, it.Path)
		out = append(out, it)
	}
	return out
}

// finalizePaths anchors root-relative paths for display: the empty path
// becomes "$" and a leading bracket segment gains the "$" anchor so that a
// dictionary entry at the root renders as "$[key]".
func finalizePaths(iss Issues) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "":
			it.Path = "$"
		case it.Path[0] == '[':
			it.Path = "$" + it.Path
		}
		out = append(out, it)
	}
	return out
}
