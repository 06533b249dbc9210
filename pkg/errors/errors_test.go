package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGrid, "rows must be at least %d", 1)

	if err.Code != ErrCodeInvalidGrid {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidGrid)
	}
	if err.Message != "rows must be at least 1" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
	want := "INVALID_GRID: rows must be at least 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := Wrap(ErrCodeAssetRead, cause, "decode %s", "forest_2.png")

	if err.Cause != cause {
		t.Error("Wrap should preserve the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	want := "ASSET_READ: decode forest_2.png: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePoolLoad, "missing sidecar")

	if !Is(err, ErrCodePoolLoad) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeAssetRead) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodePoolLoad) {
		t.Error("Is should not match non-structured errors")
	}

	// Code matching must survive wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("load pool: %w", err)
	if !Is(wrapped, ErrCodePoolLoad) {
		t.Error("Is should unwrap the error chain")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeOutputExists, "dir not empty")); got != ErrCodeOutputExists {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeOutputExists)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidChance, "chance must be between 0 and 1")
	if got := UserMessage(err); got != "chance must be between 0 and 1" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
