package ids

import "testing"

func TestNewIsUUID(t *testing.T) {
	id := New()
	if !IsUUID(id) {
		t.Fatalf("expected UUID, got %q", id)
	}
	if id != Normalize(id) {
		t.Fatalf("expected lowercase ID, got %q", id)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}
