package bundle

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func known(ids ...string) func(string) bool {
	m := make(map[string]bool)
	for _, id := range ids {
		m[id] = true
	}
	return func(id string) bool { return m[id] }
}

func TestCheck(t *testing.T) {
	exists := known("book1", "book4", "book7")

	tests := []struct {
		name string
		b    Bundle
		want error
	}{
		{"ok", Bundle{ID: "p", BookCount: 2, Books: []string{"book1", "book4"}}, nil},
		{"empty", Bundle{ID: "p", BookCount: 0}, ErrEmpty},
		{"unknown", Bundle{ID: "p", BookCount: 1, Books: []string{"book9"}}, ErrUnknownBook},
		{"mismatch", Bundle{ID: "p", BookCount: 5, Books: []string{"book1", "book4", "book7"}}, ErrCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Check(exists)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckDuplicate(t *testing.T) {
	b := Bundle{ID: "p", BookCount: 2, Books: []string{"book1", "book1"}}
	if err := b.Check(known("book1")); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestPricing(t *testing.T) {
	b := Bundle{ID: "package1", Price: 64500, Discount: 20, BookCount: 5, Books: []string{"book1", "book4", "book7"}}

	if got := b.EffectivePrice(); !got.Equal(decimal.NewFromInt(51600)) {
		t.Fatalf("effective price: got %s", got)
	}
	if got := b.Savings(); !got.Equal(decimal.NewFromInt(12900)) {
		t.Fatalf("savings: got %s", got)
	}
	if b.Count() != 3 {
		t.Fatalf("count: got %d", b.Count())
	}
}
