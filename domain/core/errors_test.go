package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestConsistencyError(t *testing.T) {
	err := NewConsistencyError("sample 3 matches 0 episode flags")
	if !IsConsistencyError(err) {
		t.Errorf("IsConsistencyError(%v) = false, want true", err)
	}
	if !errors.Is(err, ErrInconsistentState) {
		t.Errorf("error %v does not unwrap to ErrInconsistentState", err)
	}

	wrapped := fmt.Errorf("pipeline: %w", err)
	if !IsConsistencyError(wrapped) {
		t.Errorf("IsConsistencyError should see through wrapping")
	}
	if IsConsistencyError(errors.New("plain")) {
		t.Errorf("IsConsistencyError matched an unrelated error")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("run_manifest", "input_path cannot be empty")
	if err == nil {
		t.Fatal("expected an error")
	}
	if IsConsistencyError(err) {
		t.Errorf("validation error must not be a consistency error")
	}
}
