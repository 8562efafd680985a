package exchange

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/claims"
)

type BrowseView struct {
	Count int                `json:"count"`
	Books []catalog.BookView `json:"books"`
}

func HandleBrowse(s *catalog.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		v := r.URL.Query()

		var conds []book.Condition
		for _, raw := range v["kondisi"] {
			c, err := book.ParseCondition(raw)
			if err != nil {
				return weberr.BadRequest(fmt.Errorf("parsing exchange query: %w", err))
			}
			conds = append(conds, c)
		}

		books := Browse(s.Books(), v.Get("q"), conds)
		return web.Respond(ctx, w, BrowseView{Count: len(books), Books: catalog.NewBookViews(books)}, http.StatusOK)
	}
}

type BoardView struct {
	Pending []Request `json:"pending"`
	History []Request `json:"history"`
}

func HandleListRequests(b *Board) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		pending, history := b.List(clm.UserID)
		bv := BoardView{Pending: pending, History: history}
		if bv.Pending == nil {
			bv.Pending = []Request{}
		}
		if bv.History == nil {
			bv.History = []Request{}
		}
		return web.Respond(ctx, w, bv, http.StatusOK)
	}
}

func HandleApply(b *Board) web.Handler {
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
		req, err := b.Apply(clm.UserID, id, act)
		if err != nil {
			var te *TransitionError
			switch {
			case errors.Is(err, ErrNotFound):
				return weberr.NotFound(fmt.Errorf("exchange request[%s]: %w", id, err))
			case errors.As(err, &te):
				return weberr.Conflict(err)
			}
			return fmt.Errorf("applying %s to exchange request[%s]: %w", act, id, err)
		}

		return web.Respond(ctx, w, req, http.StatusOK)
	}
}
