package bundle

import (
	"errors"
	"fmt"

	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/shopspring/decimal"
)

var (
	ErrEmpty         = errors.New("bundle has no books")
	ErrCountMismatch = errors.New("declared book count differs from constituent books")
	ErrUnknownBook   = errors.New("bundle references an unknown book")
)

type Bundle struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Price      int64    `json:"price" yaml:"price"`
	Discount   int      `json:"discount" yaml:"discount"`
	BookCount  int      `json:"-" yaml:"bookCount"`
	Category   string   `json:"category" yaml:"category"`
	CoverImage string   `json:"coverImage" yaml:"coverImage"`
	Books      []string `json:"books" yaml:"books"`
}

// Count is the number of constituent books. The declared BookCount is
// only used for integrity checks.
func (b Bundle) Count() int { return len(b.Books) }

func (b Bundle) EffectivePrice() decimal.Decimal {
	return book.Discounted(b.Price, b.Discount)
}

func (b Bundle) Savings() decimal.Decimal {
	return decimal.NewFromInt(b.Price).Sub(b.EffectivePrice())
}

// Check validates the bundle against the catalog. A count mismatch is
// reported last so callers can downgrade it to a warning.
func (b Bundle) Check(exists func(id string) bool) error {
	if b.Discount < 0 || b.Discount > 100 {
		return fmt.Errorf("bundle[%s]: discount %d outside [0,100]", b.ID, b.Discount)
	}
	if len(b.Books) == 0 {
		return fmt.Errorf("bundle[%s]: %w", b.ID, ErrEmpty)
	}

	seen := make(map[string]bool, len(b.Books))
	for _, id := range b.Books {
		if seen[id] {
			return fmt.Errorf("bundle[%s]: duplicate book %s", b.ID, id)
		}
		seen[id] = true

		if !exists(id) {
			return fmt.Errorf("bundle[%s]: book[%s]: %w", b.ID, id, ErrUnknownBook)
		}
	}

	if b.BookCount != len(b.Books) {
		return fmt.Errorf("bundle[%s]: declared %d, has %d: %w", b.ID, b.BookCount, len(b.Books), ErrCountMismatch)
	}

	return nil
}
