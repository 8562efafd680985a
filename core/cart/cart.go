package cart

import (
	"errors"
	"fmt"

	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrQuantityLimit  = fmt.Errorf("a cart line holds at most %d copies", MaxQuantity)
)

// MaxQuantity caps the copies of one book in a cart.
const MaxQuantity = 999

// Resolver looks up books by id. The catalog store satisfies it.
type Resolver interface {
	Lookup(id string) (book.Book, bool)
}

type Line struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// Cart is the ledger owned by a single session. The zero value is an empty
// cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

type ItemNew struct {
	BookID   string `json:"bookId" validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1,lte=999"`
}

func (c *Cart) find(id string) int {
	for i := range c.Lines {
		if c.Lines[i].BookID == id {
			return i
		}
	}
	return -1
}

// Add puts qty copies of a book in the cart, merging with an existing line.
// A qty below 1 adds a single copy. A line never grows past MaxQuantity; the
// cart is left unchanged when it would.
func (c *Cart) Add(r Resolver, id string, qty int) error {
	if _, ok := r.Lookup(id); !ok {
		return fmt.Errorf("book[%s]: %w", id, ErrUnknownProduct)
	}
	if qty < 1 {
		qty = 1
	}
	if qty > MaxQuantity {
		return fmt.Errorf("book[%s]: %w", id, ErrQuantityLimit)
	}

	if i := c.find(id); i >= 0 {
		if c.Lines[i].Quantity > MaxQuantity-qty {
			return fmt.Errorf("book[%s]: %w", id, ErrQuantityLimit)
		}
		c.Lines[i].Quantity += qty
		return nil
	}

	c.Lines = append(c.Lines, Line{BookID: id, Quantity: qty})
	return nil
}

// Increment raises the quantity of a line, stopping at MaxQuantity.
func (c *Cart) Increment(id string) {
	if i := c.find(id); i >= 0 && c.Lines[i].Quantity < MaxQuantity {
		c.Lines[i].Quantity++
	}
}

// Decrement lowers the quantity of a line but never below 1.
func (c *Cart) Decrement(id string) {
	if i := c.find(id); i >= 0 && c.Lines[i].Quantity > 1 {
		c.Lines[i].Quantity--
	}
}

func (c *Cart) Remove(id string) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i:i], c.Lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Priced is a cart line joined with its book.
type Priced struct {
	Book      book.Book
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Summary struct {
	Items    int
	Lines    []Priced
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Totals prices the cart. Lines whose book no longer resolves are left out of
// Lines and Subtotal but still count toward Items.
func (c *Cart) Totals(r Resolver, shipping int64) Summary {
	s := Summary{
		Lines:    make([]Priced, 0, len(c.Lines)),
		Subtotal: decimal.Zero,
		Shipping: decimal.NewFromInt(shipping),
	}

	for _, l := range c.Lines {
		s.Items += l.Quantity

		b, ok := r.Lookup(l.BookID)
		if !ok {
			continue
		}

		unit := b.EffectivePrice()
		total := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		s.Lines = append(s.Lines, Priced{Book: b, Quantity: l.Quantity, UnitPrice: unit, LineTotal: total})
		s.Subtotal = s.Subtotal.Add(total)
	}

	s.Total = s.Subtotal.Add(s.Shipping)
	return s
}
