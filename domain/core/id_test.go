package core

import (
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

// TestParseVariableKey tests variable key parsing
func TestParseVariableKey(t *testing.T) {
	tests := []struct {
		input    string
		expected VariableKey
		hasError bool
	}{
		{"loss_severity", VariableKey("loss_severity"), false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tt := range tests {
		key, err := ParseVariableKey(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("Expected error for input %q", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input %q: %v", tt.input, err)
		}
		if key != tt.expected {
			t.Errorf("Expected key %q, got %q", tt.expected, key)
		}
	}
}

// TestDomainIDEmptiness tests the IsEmpty conversions on typed IDs
func TestDomainIDEmptiness(t *testing.T) {
	if !VariableKey("").IsEmpty() {
		t.Error("Expected empty variable key to report empty")
	}
	if VariableKey("loss_severity").IsEmpty() {
		t.Error("Expected non-empty variable key to report non-empty")
	}
	if !RunID("").IsEmpty() {
		t.Error("Expected empty run ID to report empty")
	}
	if RunID("run-1").IsEmpty() {
		t.Error("Expected non-empty run ID to report non-empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID(""); err == nil {
		t.Error("Expected error for empty run ID")
	}
	id, err := ParseRunID("run-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != RunID("run-1") {
		t.Errorf("Expected run-1, got %s", id)
	}
}

// TestComputeBatchHashDeterminism tests that identical columns hash identically
func TestComputeBatchHashDeterminism(t *testing.T) {
	keys := []VariableKey{"a", "b"}
	cols := [][]float64{{1, 2, 3}, {4, 5, 6}}

	h1 := ComputeBatchHash(keys, cols)
	h2 := ComputeBatchHash(keys, cols)
	if h1 != h2 {
		t.Errorf("Expected identical hashes, got %s and %s", h1, h2)
	}

	cols[1][2] = 6.000001
	h3 := ComputeBatchHash(keys, cols)
	if h3 == h1 {
		t.Error("Expected hash to change when a sample changes")
	}
}
