package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/shopspring/decimal"
)

type books map[string]book.Book

func (b books) Lookup(id string) (book.Book, bool) {
	v, ok := b[id]
	return v, ok
}

func intp(v int) *int { return &v }

var shelf = books{
	"book1": {ID: "book1", Price: 64000, Discount: intp(15)},
	"book2": {ID: "book2", Price: 55000},
	"book5": {ID: "book5", Price: 45000, Discount: intp(20)},
}

func TestAddMergesLines(t *testing.T) {
	var c Cart

	if err := c.Add(shelf, "book2", 1); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(shelf, "book2", 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(shelf, "book1", 3); err != nil {
		t.Fatal(err)
	}

	want := []Line{{BookID: "book2", Quantity: 2}, {BookID: "book1", Quantity: 3}}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	var c Cart

	err := c.Add(shelf, "book99", 1)
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected unknown product, got %v", err)
	}
	if !c.Empty() {
		t.Fatalf("dangling line created: %+v", c.Lines)
	}
}

func TestQuantityUpdates(t *testing.T) {
	c := Cart{Lines: []Line{{BookID: "book1", Quantity: 1}, {BookID: "book5", Quantity: 2}}}

	c.Decrement("book1")
	c.Decrement("book1")
	c.Increment("book5")
	c.Decrement("book5")
	c.Decrement("book5")
	c.Decrement("book5")

	c.Increment("book99")
	c.Decrement("book99")
	c.Remove("book99")

	want := []Line{{BookID: "book1", Quantity: 1}, {BookID: "book5", Quantity: 1}}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}

	c.Increment("book1")
	c.Remove("book5")

	want = []Line{{BookID: "book1", Quantity: 2}}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	c := Cart{Lines: []Line{{"book1", 1}, {"book2", 1}, {"book5", 1}}}
	saved := c.Lines

	c.Remove("book2")

	want := []Line{{"book1", 1}, {"book5", 1}}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
	if saved[1].BookID != "book2" {
		t.Fatal("remove modified a previously shared backing array")
	}
}

func TestTotals(t *testing.T) {
	c := Cart{Lines: []Line{{BookID: "book2", Quantity: 2}}}

	s := c.Totals(shelf, 15000)
	if !s.Total.Equal(decimal.NewFromInt(125000)) {
		t.Fatalf("expected total 125000, got %s", s.Total)
	}
	if !s.Subtotal.Equal(decimal.NewFromInt(110000)) {
		t.Fatalf("expected subtotal 110000, got %s", s.Subtotal)
	}
	if s.Items != 2 {
		t.Fatalf("expected 2 items, got %d", s.Items)
	}
}

func TestTotalsSkipsUnresolvable(t *testing.T) {
	c := Cart{Lines: []Line{
		{BookID: "book1", Quantity: 1},
		{BookID: "gone", Quantity: 4},
		{BookID: "book5", Quantity: 2},
	}}

	s := c.Totals(shelf, 15000)

	// 54400 + 2 × 36000
	if !s.Subtotal.Equal(decimal.NewFromInt(126400)) {
		t.Fatalf("unexpected subtotal %s", s.Subtotal)
	}
	if !s.Total.Equal(decimal.NewFromInt(141400)) {
		t.Fatalf("unexpected total %s", s.Total)
	}
	if len(s.Lines) != 2 {
		t.Fatalf("expected 2 priced lines, got %d", len(s.Lines))
	}
	if s.Items != 7 {
		t.Fatalf("expected 7 items, got %d", s.Items)
	}
}

func TestTotalsEmpty(t *testing.T) {
	var c Cart
	s := c.Totals(shelf, 15000)

	if !s.Subtotal.IsZero() || !s.Total.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("unexpected empty totals: %s / %s", s.Subtotal, s.Total)
	}
}

func TestNewView(t *testing.T) {
	c := Cart{Lines: []Line{{BookID: "book1", Quantity: 2}}}
	v := NewView(c.Totals(shelf, 15000))

	if len(v.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(v.Lines))
	}
	l := v.Lines[0]
	if l.Discount != 15 || l.UnitPrice.Formatted != "Rp 54.400" || l.LineTotal.Formatted != "Rp 108.800" {
		t.Fatalf("unexpected line view %+v", l)
	}
	if v.Total.Formatted != "Rp 123.800" {
		t.Fatalf("unexpected total %s", v.Total.Formatted)
	}
}

func TestQuantityLimit(t *testing.T) {
	var c Cart

	if err := c.Add(shelf, "book2", math.MaxInt); !errors.Is(err, ErrQuantityLimit) {
		t.Fatalf("expected quantity limit, got %v", err)
	}
	if !c.Empty() {
		t.Fatalf("rejected add changed the cart: %+v", c.Lines)
	}

	if err := c.Add(shelf, "book2", MaxQuantity-1); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(shelf, "book2", 2); !errors.Is(err, ErrQuantityLimit) {
		t.Fatalf("expected quantity limit, got %v", err)
	}

	c.Increment("book2")
	c.Increment("book2")
	if got := c.Lines[0].Quantity; got != MaxQuantity {
		t.Fatalf("expected quantity to stop at %d, got %d", MaxQuantity, got)
	}

	s := c.Totals(shelf, 15000)
	if want := decimal.NewFromInt(55000*MaxQuantity + 15000); !s.Total.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, s.Total)
	}
}
