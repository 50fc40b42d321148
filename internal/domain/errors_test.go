package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	err := NewDomainError("Engine.Execute", ErrSessionNotFound, "web:abc")
	want := "Engine.Execute: web:abc: session not found"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewDomainError("Manager.Get", ErrSessionNotFound, "")
	if bare.Error() != "Manager.Get: session not found" {
		t.Fatalf("Error() = %q", bare.Error())
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NewDomainError("sysinfo.Terminate", ErrProcessNotFound, "pid 42")
	if !errors.Is(err, ErrProcessNotFound) {
		t.Fatal("errors.Is should see through DomainError")
	}
	if errors.Is(err, ErrPermissionDenied) {
		t.Fatal("errors.Is matched the wrong sentinel")
	}
}

func TestWrapOp(t *testing.T) {
	if WrapOp("op", nil) != nil {
		t.Fatal("WrapOp(nil) must be nil")
	}

	inner := fmt.Errorf("boom")
	err := WrapOp("SQLiteStore.Append", inner)
	if !errors.Is(err, inner) {
		t.Fatal("WrapOp must wrap the original error")
	}
	if err.Error() != "SQLiteStore.Append: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestCommandResultSentinels(t *testing.T) {
	exit := CommandResult{Output: ExitSignal, ExitCode: ExitOK}
	if !exit.IsExit() {
		t.Fatal("exit sentinel not recognized")
	}
	if !exit.OK() {
		t.Fatal("exit result should report OK")
	}

	fail := CommandResult{Output: "nope", ExitCode: ExitFailure}
	if fail.OK() || fail.IsExit() {
		t.Fatal("failure result misclassified")
	}
}
