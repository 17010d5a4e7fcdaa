package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

func TestRequestIDsDiffer(t *testing.T) {
	if NewRequestID().String() == NewRequestID().String() {
		t.Error("Expected request IDs to be distinct")
	}
}

func TestParseListingID(t *testing.T) {
	id, err := ParseListingID(" 42 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != 42 {
		t.Errorf("Expected 42, got %d", id)
	}
	if id.String() != "42" {
		t.Errorf("Expected '42', got '%s'", id.String())
	}

	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, err := ParseListingID(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for %q, got %v", bad, err)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFoundError(NewNotFoundError("listing", "7")) {
		t.Error("Expected not-found error to be detected")
	}
	if !IsValidationError(ErrInvalidPeriod) {
		t.Error("Expected invalid period to be a validation error")
	}
	if IsValidationError(ErrNoData) {
		t.Error("Expected no-data not to be a validation error")
	}
}
