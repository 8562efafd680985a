package random

import (
	"strings"
	"testing"
)

func TestReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := Reference("ORD", 8)
		if !strings.HasPrefix(ref, "ORD-") || len(ref) != 12 {
			t.Fatalf("malformed reference %q", ref)
		}
		for _, c := range ref[4:] {
			if !strings.ContainsRune(charset, c) {
				t.Fatalf("unexpected character %q in %q", c, ref)
			}
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestString(t *testing.T) {
	if got := String(16); len(got) != 16 {
		t.Fatalf("unexpected length %d", len(got))
	}
}
