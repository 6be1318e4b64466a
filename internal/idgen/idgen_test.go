package idgen

import "testing"

func TestSequence(t *testing.T) {
	t.Parallel()

	ids := NewSequence("webinar")

	if got := ids.NewID(); got != "webinar-1" {
		t.Fatalf("expected webinar-1, got %q", got)
	}
	if got := ids.NewID(); got != "webinar-2" {
		t.Fatalf("expected webinar-2, got %q", got)
	}
	if got := ids.Issued(); got != 2 {
		t.Fatalf("expected 2 issued, got %d", got)
	}
}

func TestUUIDGeneratorIsUnique(t *testing.T) {
	t.Parallel()

	gen := NewUUID()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		if id == "" {
			t.Fatalf("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
