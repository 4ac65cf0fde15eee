package component

import (
	"regexp"
	"testing"
)

func TestIDGenerator(t *testing.T) {
	var gen IDGenerator

	shape := regexp.MustCompile(`^` + IDPrefix + `-\d+$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := gen.Next()

		if !shape.MatchString(id) {
			t.Fatalf("identifier %q does not match the expected shape", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("identifier %q generated twice", id)
		}

		seen[id] = struct{}{}
	}

	if gen.Next() != IDPrefix+"-100" {
		t.Error("counter did not advance monotonically")
	}
}

func TestNextID(t *testing.T) {
	if NextID() == NextID() {
		t.Error("process-wide generator returned the same identifier twice")
	}
}
