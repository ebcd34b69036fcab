package binmeta

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeInvalidType marks a node whose shape does not fit the operation,
	// e.g. a non-Object node handed to a top-level decode.
	CodeInvalidType = "invalid_type"
	// CodeSchemaMissing marks a type with no registered descriptor. Fatal to
	// the decode/encode call that needed it.
	CodeSchemaMissing = "schema_missing"
	// CodeClassMismatch marks a class hash that does not match the requested
	// or declared type. Fatal.
	CodeClassMismatch = "class_mismatch"
	// CodeIdentityConflict marks a path hash already bound to an instance of
	// an incompatible type. Fatal; the first instance is unaffected.
	CodeIdentityConflict = "identity_conflict"
	// CodeDuplicateKey marks a repeated map key, reported only when the
	// decode options escalate duplicates to an error.
	CodeDuplicateKey = "duplicate_key"
	// CodeMaxDepth marks recursion beyond the configured depth limit.
	CodeMaxDepth = "max_depth"
)

// Issue represents a single codec failure.
type Issue struct {
	Path    string // slash-separated property path (for example: /items/2/name)
	Code    string // one of the codes listed above
	Message string
	Hint    string // optional: remediation hints
	Cause   error  // optional: underlying error
}

// Issues is a collection of codec errors that implements error.
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
		// e.g. class_mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
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
