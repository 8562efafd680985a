package favorite

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/claims"
	"github.com/sirupsen/logrus"
)

type View struct {
	Books   []catalog.BookView   `json:"books"`
	Bundles []catalog.BundleView `json:"bundles"`
}

// NewView resolves a list against the catalog. Ids the catalog no longer
// knows are left out.
func NewView(cat *catalog.Store, l List) View {
	v := View{
		Books:   make([]catalog.BookView, 0, len(l.Books)),
		Bundles: make([]catalog.BundleView, 0, len(l.Bundles)),
	}
	for _, id := range l.Books {
		if b, ok := cat.Lookup(id); ok {
			v.Books = append(v.Books, catalog.NewBookView(b))
		}
	}
	for _, id := range l.Bundles {
		if p, err := cat.Bundle(id); err == nil {
			v.Bundles = append(v.Bundles, catalog.NewBundleView(p))
		}
	}
	return v
}

func exists(cat *catalog.Store, k Kind, id string) error {
	if k == Bundle {
		_, err := cat.Bundle(id)
		return err
	}
	_, err := cat.Book(id)
	return err
}

func HandleList(fs *Store, cat *catalog.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, NewView(cat, fs.Get(clm.UserID)), http.StatusOK)
	}
}

func HandleAdd(fs *Store, cat *catalog.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		k, err := ParseKind(web.Param(r, "kind"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		id := web.Param(r, "id")
		if err := exists(cat, k, id); err != nil {
			return weberr.NotFound(err, weberr.WithFields(logrus.Fields{"user_id": clm.UserID, "kind": k}))
		}

		return web.Respond(ctx, w, NewView(cat, fs.Add(clm.UserID, k, id)), http.StatusOK)
	}
}

func HandleRemove(fs *Store, cat *catalog.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Require(ctx)
		if err != nil {
			return err
		}

		k, err := ParseKind(web.Param(r, "kind"))
		if err != nil {
			return weberr.BadRequest(err)
		}

		id := web.Param(r, "id")
		l, err := fs.Remove(clm.UserID, k, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err, weberr.WithFields(logrus.Fields{"user_id": clm.UserID, "kind": k}))
			}
			return fmt.Errorf("removing favorite %s[%s]: %w", k, id, err)
		}

		return web.Respond(ctx, w, NewView(cat, l), http.StatusOK)
	}
}
