package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/bundle"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("not found in catalog")

//go:embed fixtures/catalog.yaml
var defaultFixture []byte

type fixture struct {
	Sellers    []book.Seller   `yaml:"sellers"`
	Categories []book.Category `yaml:"categories"`
	Books      []book.Book     `yaml:"books"`
	Bundles    []bundle.Bundle `yaml:"bundles"`
	Promos     []book.Promo    `yaml:"promos"`
}

type Options struct {
	// StrictBundles turns a bundle count mismatch into a load error.
	StrictBundles bool

	// Warn receives integrity problems that do not abort the load.
	Warn func(err error)
}

// Store is the read-only catalog. It is never mutated after Load and is
// safe for concurrent use.
type Store struct {
	books      []book.Book
	bundles    []bundle.Bundle
	categories []book.Category
	sellers    []book.Seller
	promos     []book.Promo

	bookIdx     map[string]int
	bundleIdx   map[string]int
	categoryIdx map[string]int
	sellerIdx   map[string]int
}

// Default loads the embedded fixture.
func Default(opts Options) (*Store, error) {
	return Load(bytes.NewReader(defaultFixture), opts)
}

func Load(r io.Reader, opts Options) (*Store, error) {
	var fx fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decoding catalog fixture: %w", err)
	}

	s := &Store{
		books:       fx.Books,
		bundles:     fx.Bundles,
		categories:  fx.Categories,
		sellers:     fx.Sellers,
		promos:      fx.Promos,
		bookIdx:     make(map[string]int, len(fx.Books)),
		bundleIdx:   make(map[string]int, len(fx.Bundles)),
		categoryIdx: make(map[string]int, len(fx.Categories)),
		sellerIdx:   make(map[string]int, len(fx.Sellers)),
	}

	for i, c := range s.categories {
		if err := index(s.categoryIdx, "category", c.ID, i); err != nil {
			return nil, err
		}
	}
	for i, sl := range s.sellers {
		if err := index(s.sellerIdx, "seller", sl.ID, i); err != nil {
			return nil, err
		}
	}

	for i, b := range s.books {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("invalid book: %w", err)
		}
		if _, ok := s.categoryIdx[b.Category]; !ok {
			return nil, fmt.Errorf("book[%s]: unknown category %q", b.ID, b.Category)
		}
		if _, ok := s.sellerIdx[b.SellerID]; !ok {
			return nil, fmt.Errorf("book[%s]: unknown seller %q", b.ID, b.SellerID)
		}
		if err := index(s.bookIdx, "book", b.ID, i); err != nil {
			return nil, err
		}
	}

	exists := func(id string) bool {
		_, ok := s.bookIdx[id]
		return ok
	}
	for i, p := range s.bundles {
		if err := index(s.bundleIdx, "bundle", p.ID, i); err != nil {
			return nil, err
		}

		err := p.Check(exists)
		switch {
		case err == nil:
		case errors.Is(err, bundle.ErrCountMismatch) && !opts.StrictBundles:
			if opts.Warn != nil {
				opts.Warn(err)
			}
		default:
			return nil, fmt.Errorf("invalid bundle: %w", err)
		}
	}

	return s, nil
}

func index(idx map[string]int, kind, id string, i int) error {
	if id == "" {
		return fmt.Errorf("%s at position %d has no id", kind, i)
	}
	if _, dup := idx[id]; dup {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	idx[id] = i
	return nil
}

// Books returns a copy of all books in fixture order.
func (s *Store) Books() []book.Book {
	out := make([]book.Book, len(s.books))
	copy(out, s.books)
	return out
}

func (s *Store) Book(id string) (book.Book, error) {
	i, ok := s.bookIdx[id]
	if !ok {
		return book.Book{}, fmt.Errorf("book[%s]: %w", id, ErrNotFound)
	}
	return s.books[i], nil
}

// Lookup is the non-error form of Book used by the cart ledger.
func (s *Store) Lookup(id string) (book.Book, bool) {
	i, ok := s.bookIdx[id]
	if !ok {
		return book.Book{}, false
	}
	return s.books[i], true
}

func (s *Store) Bundles() []bundle.Bundle {
	out := make([]bundle.Bundle, len(s.bundles))
	copy(out, s.bundles)
	return out
}

func (s *Store) Bundle(id string) (bundle.Bundle, error) {
	i, ok := s.bundleIdx[id]
	if !ok {
		return bundle.Bundle{}, fmt.Errorf("bundle[%s]: %w", id, ErrNotFound)
	}
	return s.bundles[i], nil
}

// BundleBooks resolves the constituents of a bundle in declared order.
func (s *Store) BundleBooks(id string) ([]book.Book, error) {
	p, err := s.Bundle(id)
	if err != nil {
		return nil, err
	}

	out := make([]book.Book, 0, len(p.Books))
	for _, bid := range p.Books {
		if b, ok := s.Lookup(bid); ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) Categories() []book.Category {
	out := make([]book.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Category(id string) (book.Category, error) {
	i, ok := s.categoryIdx[id]
	if !ok {
		return book.Category{}, fmt.Errorf("category[%s]: %w", id, ErrNotFound)
	}
	return s.categories[i], nil
}

func (s *Store) Seller(id string) (book.Seller, error) {
	i, ok := s.sellerIdx[id]
	if !ok {
		return book.Seller{}, fmt.Errorf("seller[%s]: %w", id, ErrNotFound)
	}
	return s.sellers[i], nil
}

func (s *Store) Promos() []book.Promo {
	out := make([]book.Promo, len(s.promos))
	copy(out, s.promos)
	return out
}
