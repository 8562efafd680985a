package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/prelobook/api/middleware"
	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/auth"
	"github.com/irsalhamdi/prelobook/core/cart"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/chat"
	"github.com/irsalhamdi/prelobook/core/exchange"
	"github.com/irsalhamdi/prelobook/core/favorite"
	"github.com/irsalhamdi/prelobook/core/listing"
	"github.com/irsalhamdi/prelobook/core/order"
	"github.com/irsalhamdi/prelobook/core/user"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin  string
	Log         logrus.FieldLogger
	Session     *scs.SessionManager
	Catalog     *catalog.Store
	Users       *user.Directory
	Limiter     auth.Limiter
	Orders      *order.History
	Inbox       *chat.Inbox
	Exchanges   *exchange.Board
	Listings    *listing.Shelf
	Favorites   *favorite.Store
	ShippingFee int64
	SubmitDelay time.Duration
	LoginURL    string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session, cfg.LoginURL)
	books := cfg.Catalog
	fee := cfg.ShippingFee

	a.Handle(http.MethodGet, "/beranda", catalog.HandleHome(books))
	a.Handle(http.MethodGet, "/katalog", catalog.HandleList(books))
	a.Handle(http.MethodGet, "/buku/{id}", catalog.HandleShowBook(books))
	a.Handle(http.MethodGet, "/kategori", catalog.HandleListCategories(books))
	a.Handle(http.MethodGet, "/paket", catalog.HandleListBundles(books))
	a.Handle(http.MethodGet, "/paket/{id}", catalog.HandleShowBundle(books))
	a.Handle(http.MethodGet, "/tukar", exchange.HandleBrowse(books))

	a.Handle(http.MethodPost, "/login", auth.HandleLogin(cfg.Session, cfg.Users, cfg.Limiter, cfg.SubmitDelay))
	a.Handle(http.MethodPost, "/register", auth.HandleRegister(cfg.Session, cfg.Users, cfg.Limiter, cfg.SubmitDelay))
	a.Handle(http.MethodPost, "/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/profil", user.HandleShowCurrent(cfg.Users), authen)

	a.Handle(http.MethodGet, "/keranjang", cart.HandleShow(cfg.Session, books, fee), authen)
	a.Handle(http.MethodDelete, "/keranjang", cart.HandleDelete(cfg.Session, books, fee), authen)
	a.Handle(http.MethodPost, "/keranjang/items", cart.HandleCreateItem(cfg.Session, books, fee), authen)
	a.Handle(http.MethodPost, "/keranjang/items/{book_id}/tambah", cart.HandleUpdateItem(cfg.Session, books, fee, (*cart.Cart).Increment), authen)
	a.Handle(http.MethodPost, "/keranjang/items/{book_id}/kurang", cart.HandleUpdateItem(cfg.Session, books, fee, (*cart.Cart).Decrement), authen)
	a.Handle(http.MethodDelete, "/keranjang/items/{book_id}", cart.HandleUpdateItem(cfg.Session, books, fee, (*cart.Cart).Remove), authen)

	a.Handle(http.MethodPost, "/checkout", order.HandleCheckout(cfg.Session, cfg.Orders, books, fee, cfg.SubmitDelay), authen)
	a.Handle(http.MethodGet, "/pesanan", order.HandleList(cfg.Orders), authen)
	a.Handle(http.MethodPost, "/seller/pesanan/{id}/{action}", order.HandleAdvance(cfg.Orders), authen)

	a.Handle(http.MethodGet, "/favorit", favorite.HandleList(cfg.Favorites, books), authen)
	a.Handle(http.MethodPost, "/favorit/{kind}/{id}", favorite.HandleAdd(cfg.Favorites, books), authen)
	a.Handle(http.MethodDelete, "/favorit/{kind}/{id}", favorite.HandleRemove(cfg.Favorites, books), authen)

	a.Handle(http.MethodGet, "/chat", chat.HandleList(cfg.Inbox), authen)
	a.Handle(http.MethodGet, "/chat/{id}", chat.HandleShow(cfg.Inbox), authen)
	a.Handle(http.MethodPost, "/chat/{id}", chat.HandleSend(cfg.Inbox), authen)

	a.Handle(http.MethodGet, "/seller/buku", listing.HandleList(cfg.Listings), authen)
	a.Handle(http.MethodPost, "/seller/buku", listing.HandleCreate(cfg.Listings), authen)
	a.Handle(http.MethodPut, "/seller/buku/{id}", listing.HandleUpdate(cfg.Listings), authen)
	a.Handle(http.MethodPost, "/seller/buku/{id}/terjual", listing.HandleMarkSold(cfg.Listings), authen)
	a.Handle(http.MethodDelete, "/seller/buku/{id}", listing.HandleDelete(cfg.Listings), authen)
	a.Handle(http.MethodGet, "/seller/dashboard", listing.HandleDashboard(cfg.Listings), authen)
	a.Handle(http.MethodGet, "/seller/tukar", exchange.HandleListRequests(cfg.Exchanges), authen)
	a.Handle(http.MethodPost, "/seller/tukar/{id}/{action}", exchange.HandleApply(cfg.Exchanges), authen)

	notFound := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return weberr.NewError(errors.New("route not found: "+r.URL.Path), "Halaman tidak ditemukan", http.StatusNotFound)
	}
	a.Router.NotFoundHandler = a.wrap(notFound)

	methodNotAllowed := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		err := fmt.Errorf("method %s not allowed on %s", r.Method, r.URL.Path)
		return weberr.NewError(err, "Metode tidak diizinkan", http.StatusMethodNotAllowed)
	}
	a.Router.MethodNotAllowedHandler = a.wrap(methodNotAllowed)

	return a.Router
}

func (a *api) wrap(handler web.Handler, mw ...web.Middleware) http.Handler {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	a.Router.Handle(path, a.wrap(handler, mw...)).Methods(method)
}
