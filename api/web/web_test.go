package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWrapMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(h Handler) Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return h(ctx, w, r)
			}
		}
	}

	h := WrapMiddleware([]Middleware{mark("outer"), nil, mark("inner")}, func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		order = append(order, "handler")
		return nil
	})

	if err := h(context.Background(), httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(order, ","); got != "outer,inner,handler" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	if err := Redirect(context.Background(), w, "/login", map[string]string{"redirect": "/login"}); err != nil {
		t.Fatal(err)
	}

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected location %q", loc)
	}
	if !strings.Contains(w.Body.String(), `"redirect":"/login"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	var v struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","admin":true}`))
	err := Decode(httptest.NewRecorder(), r, &v)
	if err == nil {
		t.Fatal("expected error")
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c"}`))
	if err := Decode(httptest.NewRecorder(), r, &v); err != nil {
		t.Fatal(err)
	}
	if v.Email != "a@b.c" {
		t.Fatalf("unexpected value %q", v.Email)
	}
}

func TestDecodeBody(t *testing.T) {
	var v map[string]int

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := Decode(httptest.NewRecorder(), r, &v); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected empty body error, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1} {"a":2}`))
	if err := Decode(httptest.NewRecorder(), r, &v); err == nil {
		t.Fatal("expected error for trailing data")
	}
}
