package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := NewNotFoundError("photo.png")
	if !IsNotFound(err) {
		t.Error("IsNotFound(direct) = false")
	}
	if !IsNotFound(fmt.Errorf("converting: %w", err)) {
		t.Error("IsNotFound(wrapped) = false")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound matched unrelated error")
	}
	if !strings.Contains(err.Error(), "photo.png") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestIsNoSelection(t *testing.T) {
	err := &NoSelectionError{}
	if !IsNoSelection(err) {
		t.Error("IsNoSelection(direct) = false")
	}
	if !IsNoSelection(fmt.Errorf("export: %w", err)) {
		t.Error("IsNoSelection(wrapped) = false")
	}
	if IsNoSelection(errors.New("other")) {
		t.Error("IsNoSelection matched unrelated error")
	}
}

func TestCopyErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewCopyError("a.png", "b.png", cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	msg := err.Error()
	if !strings.Contains(msg, "a.png") || !strings.Contains(msg, "b.png") {
		t.Errorf("message = %q", msg)
	}
}

func TestWriteErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewWriteError("/site/content/doc.md", cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "/site/content/doc.md") {
		t.Errorf("message = %q", err.Error())
	}
}
