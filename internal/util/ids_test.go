package util

import "testing"

func TestNewCorrelationID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewCorrelationID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != 12 {
			t.Fatalf("expected 12 characters, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
