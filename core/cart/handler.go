package cart

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/irsalhamdi/prelobook/validate"
	"github.com/sirupsen/logrus"
)

const sessionKey = "cart"

func init() {
	gob.Register(Cart{})
}

// Load returns the cart stored in the session, empty if there is none.
func Load(ctx context.Context, sm *scs.SessionManager) Cart {
	c, _ := sm.Get(ctx, sessionKey).(Cart)
	return c
}

func Save(ctx context.Context, sm *scs.SessionManager, c Cart) {
	sm.Put(ctx, sessionKey, c)
}

type LineView struct {
	BookID     string       `json:"bookId"`
	Title      string       `json:"title"`
	Author     string       `json:"author"`
	CoverImage string       `json:"coverImage"`
	Discount   int          `json:"discount,omitempty"`
	Price      money.Amount `json:"price"`
	UnitPrice  money.Amount `json:"unitPrice"`
	Quantity   int          `json:"quantity"`
	LineTotal  money.Amount `json:"lineTotal"`
}

type View struct {
	Items    int          `json:"items"`
	Lines    []LineView   `json:"lines"`
	Subtotal money.Amount `json:"subtotal"`
	Shipping money.Amount `json:"shipping"`
	Total    money.Amount `json:"total"`
}

func NewView(s Summary) View {
	v := View{
		Items:    s.Items,
		Lines:    make([]LineView, 0, len(s.Lines)),
		Subtotal: money.NewAmount(s.Subtotal),
		Shipping: money.NewAmount(s.Shipping),
		Total:    money.NewAmount(s.Total),
	}

	for _, l := range s.Lines {
		v.Lines = append(v.Lines, LineView{
			BookID:     l.Book.ID,
			Title:      l.Book.Title,
			Author:     l.Book.Author,
			CoverImage: l.Book.CoverImage,
			Discount:   l.Book.DiscountPercent(),
			Price:      money.FromInt(l.Book.Price),
			UnitPrice:  money.NewAmount(l.UnitPrice),
			Quantity:   l.Quantity,
			LineTotal:  money.NewAmount(l.LineTotal),
		})
	}

	return v
}

func respond(ctx context.Context, w http.ResponseWriter, c Cart, res Resolver, shipping int64, status int) error {
	return web.Respond(ctx, w, NewView(c.Totals(res, shipping)), status)
}

func HandleShow(sm *scs.SessionManager, res Resolver, shipping int64) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return respond(ctx, w, Load(ctx, sm), res, shipping, http.StatusOK)
	}
}

func HandleDelete(sm *scs.SessionManager, res Resolver, shipping int64) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := Load(ctx, sm)
		c.Clear()
		Save(ctx, sm, c)

		return respond(ctx, w, c, res, shipping, http.StatusOK)
	}
}

func HandleCreateItem(sm *scs.SessionManager, res Resolver, shipping int64) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode cart item: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Unprocessable(err, "data keranjang tidak valid")
		}

		c := Load(ctx, sm)
		if err := c.Add(res, in.BookID, in.Quantity); err != nil {
			switch {
			case errors.Is(err, ErrUnknownProduct):
				return weberr.Unprocessable(err, "buku tidak ditemukan", weberr.WithFields(logrus.Fields{"book_id": in.BookID}))
			case errors.Is(err, ErrQuantityLimit):
				return weberr.Unprocessable(err, fmt.Sprintf("jumlah per buku maksimal %d", MaxQuantity), weberr.WithFields(logrus.Fields{"book_id": in.BookID}))
			}
			return fmt.Errorf("adding book[%s] to cart: %w", in.BookID, err)
		}
		Save(ctx, sm, c)

		return respond(ctx, w, c, res, shipping, http.StatusOK)
	}
}

// HandleUpdateItem applies one of the in-place line operations. Unknown
// lines are left alone.
func HandleUpdateItem(sm *scs.SessionManager, res Resolver, shipping int64, op func(*Cart, string)) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := Load(ctx, sm)
		op(&c, web.Param(r, "book_id"))
		Save(ctx, sm, c)

		return respond(ctx, w, c, res, shipping, http.StatusOK)
	}
}
