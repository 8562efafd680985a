package exchange

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/catalog"
)

func ids(books []book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestBrowse(t *testing.T) {
	s, err := catalog.Default(catalog.Options{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		text  string
		conds []book.Condition
		want  []string
	}{
		{"capped", "", nil, []string{"book3", "book6", "book1", "book4", "book2", "book7"}},
		{"condition", "", []book.Condition{book.Good}, []string{"book2", "book7", "book5"}},
		{"conditions", "", []book.Condition{book.New, book.Fair}, []string{"book3", "book6", "book8"}},
		{"filter not capped", "", []book.Condition{book.New, book.VeryGood, book.Good}, []string{"book3", "book6", "book1", "book4", "book2", "book7", "book5"}},
		{"text and condition", "laskar", []book.Condition{book.Good}, []string{"book5"}},
		{"no match", "laskar", []book.Condition{book.New}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Browse(s.Books(), tt.text, tt.conds))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("browse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		actions []Action
		want    Status
		wantErr bool
	}{
		{"accept pending", "1", []Action{Accept}, Accepted, false},
		{"reject pending", "1", []Action{Reject}, Rejected, false},
		{"complete accepted", "2", []Action{Complete}, Completed, false},
		{"accept then complete", "1", []Action{Accept, Complete}, Completed, false},
		{"complete pending", "1", []Action{Complete}, "", true},
		{"reject accepted", "2", []Action{Reject}, "", true},
		{"accept completed", "3", []Action{Accept}, "", true},
		{"accept rejected", "1", []Action{Reject, Accept}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()

			var (
				got Request
				err error
			)
			for _, a := range tt.actions {
				if got, err = b.Apply("seller", tt.id, a); err != nil {
					break
				}
			}

			if tt.wantErr {
				var te *TransitionError
				if !errors.As(err, &te) {
					t.Fatalf("expected transition error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Status)
			}
		})
	}
}

func TestApplyUnknown(t *testing.T) {
	b := NewBoard()

	if _, err := b.Apply("seller", "42", Accept); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := b.Apply("seller", "1", Action("batal")); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected invalid action, got %v", err)
	}
	if _, err := ParseAction("batal"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected invalid action, got %v", err)
	}
}

func TestList(t *testing.T) {
	b := NewBoard()

	if _, err := b.Apply("s1", "1", Accept); err != nil {
		t.Fatal(err)
	}

	pending, history := b.List("s1")
	if len(pending) != 0 || len(history) != 3 {
		t.Fatalf("s1: %d pending, %d history", len(pending), len(history))
	}

	pending, history = b.List("s2")
	if len(pending) != 1 || pending[0].ID != "1" || len(history) != 2 {
		t.Fatalf("s2 should keep the seeded requests: %d pending, %d history", len(pending), len(history))
	}
}
