package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "saving order")

	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable with errors.Is")
	}
	if err.Error() != "DEPENDENCY_ERROR: saving order" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestAsUnwrapsThroughFmtChain(t *testing.T) {
	inner := New(CodeOrderLocked, "order is not editable")
	wrapped := fmt.Errorf("updating draft: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeOrderLocked {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestHasCode(t *testing.T) {
	err := New(CodeTerminalState, "order already shipped")
	if !HasCode(err, CodeTerminalState) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodeValidation) {
		t.Fatal("expected HasCode to reject other codes")
	}
	if HasCode(stdErrors.New("plain"), CodeValidation) {
		t.Fatal("expected HasCode to reject untyped errors")
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != 500 {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeStateConflict, stdErrors.New("stage mismatch"), "advance label")
	dump := Dump(err)
	if dump.Code != CodeStateConflict {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 entries in chain, got %d", len(dump.Chain))
	}
}
