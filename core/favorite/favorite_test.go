package favorite

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/prelobook/core/catalog"
)

func TestStore(t *testing.T) {
	s := NewStore()

	want := List{Books: []string{"book1", "book4", "book6"}, Bundles: []string{"package1", "package2"}}
	if diff := cmp.Diff(want, s.Get("u1")); diff != "" {
		t.Fatalf("seeded list mismatch (-want +got):\n%s", diff)
	}

	s.Add("u1", Book, "book2")
	got := s.Add("u1", Book, "book2")
	want.Books = append(want.Books, "book2")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list after add mismatch (-want +got):\n%s", diff)
	}

	got, err := s.Remove("u1", Bundle, "package1")
	if err != nil {
		t.Fatal(err)
	}
	want.Bundles = []string{"package2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list after remove mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Remove("u1", Bundle, "package1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// Other users keep their own list.
	if n := len(s.Get("u2").Books); n != 3 {
		t.Fatalf("expected a fresh seeded list, got %d books", n)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()

	l := s.Get("u1")
	l.Books[0] = "changed"

	if got := s.Get("u1").Books[0]; got != "book1" {
		t.Fatalf("store was mutated through a returned list: %q", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"buku", "paket"} {
		if _, err := ParseKind(in); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
	}
	if _, err := ParseKind("penulis"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected invalid kind, got %v", err)
	}
}

func TestNewViewSkipsUnknown(t *testing.T) {
	cat, err := catalog.Default(catalog.Options{})
	if err != nil {
		t.Fatal(err)
	}

	v := NewView(cat, List{Books: []string{"book2", "hilang"}, Bundles: []string{"hilang", "package3"}})

	if len(v.Books) != 1 || v.Books[0].ID != "book2" {
		t.Fatalf("unexpected books %+v", v.Books)
	}
	if len(v.Bundles) != 1 || v.Bundles[0].ID != "package3" {
		t.Fatalf("unexpected bundles %+v", v.Bundles)
	}
}
