package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/bundle"
	"github.com/irsalhamdi/prelobook/core/money"
)

type BookView struct {
	book.Book
	EffectivePrice money.Amount `json:"effectivePrice"`
	ListPrice      money.Amount `json:"listPrice"`
}

func NewBookView(b book.Book) BookView {
	return BookView{
		Book:           b,
		EffectivePrice: money.NewAmount(b.EffectivePrice()),
		ListPrice:      money.FromInt(b.Price),
	}
}

func NewBookViews(books []book.Book) []BookView {
	out := make([]BookView, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookView(b))
	}
	return out
}

type BookDetail struct {
	BookView
	CategoryName string       `json:"categoryName"`
	Seller       *book.Seller `json:"seller,omitempty"`
}

type BundleView struct {
	bundle.Bundle
	Count          int          `json:"bookCount"`
	EffectivePrice money.Amount `json:"effectivePrice"`
	ListPrice      money.Amount `json:"listPrice"`
	Savings        money.Amount `json:"savings"`
}

func NewBundleView(p bundle.Bundle) BundleView {
	return BundleView{
		Bundle:         p,
		Count:          p.Count(),
		EffectivePrice: money.NewAmount(p.EffectivePrice()),
		ListPrice:      money.FromInt(p.Price),
		Savings:        money.NewAmount(p.Savings()),
	}
}

type BundleDetail struct {
	BundleView
	Contents []BookView `json:"contents"`
}

type ListView struct {
	Sort      Sort       `json:"sort"`
	SortLabel string     `json:"sortLabel"`
	Count     int        `json:"count"`
	Books     []BookView `json:"books"`
}

// ParseQuery reads the catalog filters from the query string:
// q, kategori, urut and any number of kondisi values.
func ParseQuery(r *http.Request) (Query, error) {
	v := r.URL.Query()

	srt, err := ParseSort(v.Get("urut"))
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Text:     v.Get("q"),
		Category: v.Get("kategori"),
		Sort:     srt,
	}

	for _, s := range v["kondisi"] {
		c, err := book.ParseCondition(s)
		if err != nil {
			return Query{}, err
		}
		q.Conditions = append(q.Conditions, c)
	}

	return q, nil
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return weberr.NotFound(err)
	}
	return err
}

func HandleList(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		q, err := ParseQuery(r)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing catalog query: %w", err))
		}

		books := Search(s.Books(), q)
		lv := ListView{
			Sort:      q.Sort,
			SortLabel: q.Sort.Label(),
			Count:     len(books),
			Books:     NewBookViews(books),
		}
		return web.Respond(ctx, w, lv, http.StatusOK)
	}
}

func HandleShowBook(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		b, err := s.Book(web.Param(r, "id"))
		if err != nil {
			return notFound(err)
		}

		d := BookDetail{BookView: NewBookView(b), CategoryName: "Umum"}
		if c, err := s.Category(b.Category); err == nil {
			d.CategoryName = c.Name
		}
		if sl, err := s.Seller(b.SellerID); err == nil {
			d.Seller = &sl
		}

		return web.Respond(ctx, w, d, http.StatusOK)
	}
}

func HandleListCategories(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, s.Categories(), http.StatusOK)
	}
}

func HandleListBundles(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		bundles := s.Bundles()
		out := make([]BundleView, 0, len(bundles))
		for _, p := range bundles {
			out = append(out, NewBundleView(p))
		}
		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

func HandleShowBundle(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		p, err := s.Bundle(id)
		if err != nil {
			return notFound(err)
		}

		books, err := s.BundleBooks(id)
		if err != nil {
			return notFound(err)
		}

		d := BundleDetail{BundleView: NewBundleView(p), Contents: NewBookViews(books)}
		return web.Respond(ctx, w, d, http.StatusOK)
	}
}

type HomeView struct {
	Promos     []book.Promo    `json:"promos"`
	Categories []book.Category `json:"categories"`
	Newest     []BookView      `json:"newest"`
	Popular    []BookView      `json:"popular"`
	Bundles    []BundleView    `json:"bundles"`
}

const homeShelfSize = 4

func first(books []book.Book, n int) []book.Book {
	if len(books) > n {
		return books[:n]
	}
	return books
}

func HandleHome(s *Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		hv := HomeView{
			Promos:     s.Promos(),
			Categories: s.Categories(),
			Newest:     NewBookViews(first(Search(s.Books(), Query{Sort: Newest}), homeShelfSize)),
			Popular:    NewBookViews(first(Search(s.Books(), Query{Sort: BestSeller}), homeShelfSize)),
		}
		for _, p := range s.Bundles() {
			hv.Bundles = append(hv.Bundles, NewBundleView(p))
		}
		return web.Respond(ctx, w, hv, http.StatusOK)
	}
}
