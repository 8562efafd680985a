package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/prelobook/core/bundle"
)

func TestDefault(t *testing.T) {
	var warnings []error
	s, err := Default(Options{Warn: func(err error) { warnings = append(warnings, err) }})
	if err != nil {
		t.Fatalf("loading default catalog: %v", err)
	}

	if n := len(s.Books()); n != 8 {
		t.Fatalf("expected 8 books, got %d", n)
	}
	if n := len(s.Categories()); n != 8 {
		t.Fatalf("expected 8 categories, got %d", n)
	}
	if n := len(s.Bundles()); n != 3 {
		t.Fatalf("expected 3 bundles, got %d", n)
	}
	if n := len(s.Promos()); n != 3 {
		t.Fatalf("expected 3 promos, got %d", n)
	}

	// Every fixture package declares more books than it lists.
	if len(warnings) != 3 {
		t.Fatalf("expected 3 count warnings, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if !errors.Is(w, bundle.ErrCountMismatch) {
			t.Fatalf("unexpected warning: %v", w)
		}
	}
}

func TestDefaultStrict(t *testing.T) {
	_, err := Default(Options{StrictBundles: true})
	if !errors.Is(err, bundle.ErrCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
}

func TestLookups(t *testing.T) {
	s := fixtureStore(t)

	b, err := s.Book("book2")
	if err != nil {
		t.Fatal(err)
	}
	if b.Title != "Pulang" {
		t.Fatalf("unexpected title %q", b.Title)
	}

	if _, err := s.Book("book99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.Bundle("package9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.Seller("seller9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	c, err := s.Category("cat2")
	if err != nil || c.Name != "Novel" {
		t.Fatalf("category: %+v, %v", c, err)
	}

	books, err := s.BundleBooks("package2")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"book4", "book1"}, ids(books)); diff != "" {
		t.Fatalf("bundle books (-want +got):\n%s", diff)
	}
}

func TestBooksIsACopy(t *testing.T) {
	s := fixtureStore(t)

	books := s.Books()
	books[0].Title = "changed"

	b, _ := s.Book(books[0].ID)
	if b.Title == "changed" {
		t.Fatal("store mutated through Books()")
	}
}

func TestLoadRejects(t *testing.T) {
	base := `
sellers: [{id: s1, name: S}]
categories: [{id: c1, name: C}]
`
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad discount", base + `books: [{id: b1, price: 10, discount: 120, category: c1, condition: Baru, sellerId: s1}]`, "discount"},
		{"bad condition", base + `books: [{id: b1, price: 10, category: c1, condition: Rusak, sellerId: s1}]`, "condition"},
		{"unknown category", base + `books: [{id: b1, price: 10, category: c9, condition: Baru, sellerId: s1}]`, "category"},
		{"unknown seller", base + `books: [{id: b1, price: 10, category: c1, condition: Baru, sellerId: s9}]`, "seller"},
		{"duplicate id", base + `books: [{id: b1, price: 10, category: c1, condition: Baru, sellerId: s1}, {id: b1, price: 10, category: c1, condition: Baru, sellerId: s1}]`, "duplicate"},
		{"dangling bundle", base + "books: []\nbundles: [{id: p1, bookCount: 1, books: [b9]}]", "unknown book"},
		{"unknown field", base + "shelves: []", "field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
