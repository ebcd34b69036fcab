package binmeta_test

import (
	"fmt"
	"testing"

	"github.com/LoL-Fantome/binmeta"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := binmeta.Issues{
		{Path: "/a", Code: binmeta.CodeClassMismatch},
		{Path: "/b", Code: binmeta.CodeSchemaMissing},
		{Path: "/c", Code: binmeta.CodeMaxDepth},
		{Path: "/d", Code: binmeta.CodeDuplicateKey},
	}
	s := iss.Error()
	if s != "class_mismatch at /a; schema_missing at /b; max_depth at /c; ... (total 4)" {
		t.Fatalf("summary = %q", s)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	inner := binmeta.Issues{{Path: "/", Code: binmeta.CodeInvalidType}}
	wrapped := fmt.Errorf("decoding save file: %w", inner)

	iss, ok := binmeta.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != binmeta.CodeInvalidType {
		t.Fatalf("AsIssues = %v, %t", iss, ok)
	}
	if _, ok := binmeta.AsIssues(nil); ok {
		t.Fatalf("nil error must not produce issues")
	}
}
