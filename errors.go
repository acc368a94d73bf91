package kensa

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNullValue     = "null_value"
	CodeRequired      = "required"
	CodeTypeMismatch  = "type_mismatch"
	CodeMinLength     = "min_length"
	CodeMaxLength     = "max_length"
	CodeMinValue      = "min_value"
	CodeMaxValue      = "max_value"
	CodeMinItems      = "min_items"
	CodeMaxItems      = "max_items"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	// Refinements and entry-level checks (business semantics)
	CodeBusinessRule = "business_rule"
	// Dependency temporary/unavailable errors (for mapping to 5xx at API layer)
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted/bracket location (for example: items[2].price, $[key]).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		p := it.Path
		if p == "" {
			p = "$"
		}
		// e.g. type_mismatch at items[2].price
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IssuesFromErr converts an error into Issues, wrapping a foreign error as a
// single business_rule entry at the given path.
func IssuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Path: path, Code: CodeBusinessRule, Message: err.Error(), Cause: err}}
}
