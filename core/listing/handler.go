package listing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/claims"
	"github.com/irsalhamdi/prelobook/core/money"
	"github.com/irsalhamdi/prelobook/validate"
	"github.com/sirupsen/logrus"
)

type View struct {
	Listing
	PriceFormatted string `json:"priceFormatted"`
}

func NewView(l Listing) View {
	return View{Listing: l, PriceFormatted: money.FromInt(l.Price).Formatted}
}

type DashboardView struct {
	Stats
	Recent []View `json:"recent"`
}

// recentLimit is the number of listings shown on the dashboard.
const recentLimit = 3

func seller(ctx context.Context) (string, error) {
	clm, err := claims.Require(ctx)
	if err != nil {
		return "", err
	}
	return clm.UserID, nil
}

func mapErr(err error, id string) error {
	fields := weberr.WithFields(logrus.Fields{"listing_id": id})
	switch {
	case errors.Is(err, ErrNotFound):
		return weberr.NotFound(fmt.Errorf("listing[%s]: %w", id, err), fields)
	case errors.Is(err, ErrLocked), errors.Is(err, ErrNotAvailable):
		return weberr.Conflict(err, fields)
	}
	return fmt.Errorf("listing[%s]: %w", id, err)
}

func views(ls []Listing) []View {
	out := make([]View, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewView(l))
	}
	return out
}

func HandleList(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, views(s.List(sid)), http.StatusOK)
	}
}

func decode(w http.ResponseWriter, r *http.Request) (ListingNew, error) {
	var n ListingNew
	if err := web.Decode(w, r, &n); err != nil {
		return ListingNew{}, weberr.BadRequest(fmt.Errorf("unable to decode listing: %w", err))
	}

	if err := validate.Check(n); err != nil {
		return ListingNew{}, weberr.Unprocessable(err, "data buku tidak valid")
	}
	return n, nil
}

func HandleCreate(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		n, err := decode(w, r)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, NewView(s.Create(sid, n)), http.StatusCreated)
	}
}

func HandleUpdate(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		n, err := decode(w, r)
		if err != nil {
			return err
		}

		id := web.Param(r, "id")
		l, err := s.Update(sid, id, n)
		if err != nil {
			return mapErr(err, id)
		}

		return web.Respond(ctx, w, NewView(l), http.StatusOK)
	}
}

func HandleMarkSold(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		id := web.Param(r, "id")
		l, err := s.MarkSold(sid, id)
		if err != nil {
			return mapErr(err, id)
		}

		return web.Respond(ctx, w, NewView(l), http.StatusOK)
	}
}

func HandleDelete(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		id := web.Param(r, "id")
		l, err := s.Delete(sid, id)
		if err != nil {
			return mapErr(err, id)
		}

		return web.Respond(ctx, w, NewView(l), http.StatusOK)
	}
}

func HandleDashboard(s *Shelf) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		sid, err := seller(ctx)
		if err != nil {
			return err
		}

		recent := s.List(sid)
		if len(recent) > recentLimit {
			recent = recent[:recentLimit]
		}

		dv := DashboardView{Stats: s.Stats(sid), Recent: views(recent)}
		return web.Respond(ctx, w, dv, http.StatusOK)
	}
}
