package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/prelobook/api"
	"github.com/irsalhamdi/prelobook/core/catalog"
	"github.com/irsalhamdi/prelobook/core/chat"
	"github.com/irsalhamdi/prelobook/core/exchange"
	"github.com/irsalhamdi/prelobook/core/favorite"
	"github.com/irsalhamdi/prelobook/core/listing"
	"github.com/irsalhamdi/prelobook/core/order"
	"github.com/irsalhamdi/prelobook/core/user"
	"github.com/sirupsen/logrus"
)

const (
	userEmail = "rani@prelobook.id"
	userPass  = "rahasia123"
)

type allowAll struct{}

func (allowAll) Check(string) bool { return true }

type TestEnv struct {
	*httptest.Server
}

// NewTestEnv starts the full router with a cookie aware client that does
// not follow redirects.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	books, err := catalog.Default(catalog.Options{})
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	mux := api.APIMux(api.APIConfig{
		Log:         log,
		Session:     scs.New(),
		Catalog:     books,
		Users:       user.NewDirectory(),
		Limiter:     allowAll{},
		Orders:      order.NewHistory(),
		Inbox:       chat.NewInbox(),
		Exchanges:   exchange.NewBoard(),
		Listings:    listing.NewShelf(),
		Favorites:   favorite.NewStore(),
		ShippingFee: 15000,
		LoginURL:    "/login",
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	cl := srv.Client()
	cl.Jar = jar
	cl.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &TestEnv{Server: srv}
}

// do sends body as JSON and decodes the response into out when out is set.
func (env *TestEnv) do(t *testing.T, method, path string, body, out interface{}) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
	return w
}

func (env *TestEnv) expect(t *testing.T, method, path string, body, out interface{}, status int) {
	t.Helper()

	if w := env.do(t, method, path, body, out); w.StatusCode != status {
		t.Fatalf("%s %s: expected status %d, got %s", method, path, status, w.Status)
	}
}

func Login(t *testing.T, env *TestEnv) {
	t.Helper()

	in := map[string]interface{}{"email": userEmail, "password": userPass}
	env.expect(t, http.MethodPost, "/login", in, nil, http.StatusOK)
}

func Logout(t *testing.T, env *TestEnv) {
	t.Helper()
	env.expect(t, http.MethodPost, "/logout", nil, nil, http.StatusOK)
}

func itemPath(id, action string) string {
	if action == "" {
		return fmt.Sprintf("/keranjang/items/%s", id)
	}
	return fmt.Sprintf("/keranjang/items/%s/%s", id, action)
}
