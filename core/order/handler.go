package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/cart"
	"github.com/irsalhamdi/prelobook/core/claims"
	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/irsalhamdi/prelobook/core/submit"
	"github.com/irsalhamdi/prelobook/random"
	"github.com/sirupsen/logrus"
)

var ErrEmptyCart = errors.New("no items to checkout")

// prepare turns a priced cart into a new order.
func prepare(userID string, s cart.Summary) (Order, error) {
	if len(s.Lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	now := time.Now().UTC()
	ord := Order{
		ID:        random.Reference("ORD", 8),
		UserID:    userID,
		Status:    Processing,
		Items:     make([]Item, 0, len(s.Lines)),
		Subtotal:  s.Subtotal,
		Shipping:  s.Shipping,
		Total:     s.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, l := range s.Lines {
		ord.Items = append(ord.Items, Item{
			BookID:    l.Book.ID,
			Title:     l.Book.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	return ord, nil
}

type View struct {
	Order
	StatusLabel string       `json:"statusLabel"`
	TotalPrice  money.Amount `json:"totalPrice"`
}

func NewView(o Order) View {
	return View{Order: o, StatusLabel: o.Status.Label(), TotalPrice: money.NewAmount(o.Total)}
}

func HandleCheckout(sm *scs.SessionManager, hist *History, res cart.Resolver, shipping int64, delay time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		c := cart.Load(ctx, sm)
		ord, err := prepare(clm.UserID, c.Totals(res, shipping))
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				return weberr.NewError(err, "Keranjang kosong. Tambahkan buku ke keranjang terlebih dahulu.", http.StatusUnprocessableEntity,
					weberr.WithFields(logrus.Fields{"user_id": clm.UserID}))
			}
			return fmt.Errorf("preparing order for user[%s]: %w", clm.UserID, err)
		}

		if err := submit.Delay(ctx, delay); err != nil {
			return fmt.Errorf("checkout interrupted: %w", err)
		}

		hist.Create(ord)

		c.Clear()
		cart.Save(ctx, sm, c)

		return web.Respond(ctx, w, NewView(ord), http.StatusCreated)
	}
}

func HandleList(hist *History) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		status, err := ParseStatus(r.URL.Query().Get("status"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		orders := hist.QueryByUser(clm.UserID, status)
		out := make([]View, 0, len(orders))
		for _, o := range orders {
			out = append(out, NewView(o))
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}

// HandleAdvance moves an order along its fulfilment steps. The account that
// placed an order is the one that fulfils it, so lookups are scoped to the
// signed-in user.
func HandleAdvance(hist *History) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		act, err := ParseAction(web.Param(r, "action"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		id := web.Param(r, "id")
		fields := weberr.WithFields(logrus.Fields{"order_id": id, "user_id": clm.UserID})

		ord, err := hist.Advance(clm.UserID, id, act, time.Now().UTC())
		if err != nil {
			var te *TransitionError
			switch {
			case errors.Is(err, ErrNotFound):
				return weberr.NotFound(fmt.Errorf("order[%s]: %w", id, err), fields)
			case errors.As(err, &te):
				return weberr.Conflict(err, fields)
			}
			return fmt.Errorf("applying %s to order[%s]: %w", act, id, err)
		}

		return web.Respond(ctx, w, NewView(ord), http.StatusOK)
	}
}
