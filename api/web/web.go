// Package web holds the handler signature shared by every route and the
// JSON helpers handlers answer with.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler is an http handler that reports failures instead of writing them.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

type Middleware func(Handler) Handler

// WrapMiddleware applies mw so that mw[0] runs first. Nil entries are
// skipped.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}

func Respond(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// Redirect answers with 303 See Other and a JSON body naming the target.
func Redirect(ctx context.Context, w http.ResponseWriter, location string, data any) error {
	w.Header().Set("Location", location)
	return Respond(ctx, w, data, http.StatusSeeOther)
}

const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

// Decode reads a single JSON object into val. Unknown fields and trailing
// data are rejected.
func Decode(w http.ResponseWriter, r *http.Request, val any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(val); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if dec.More() {
		return errors.New("request body holds more than one JSON value")
	}
	return nil
}

// Param returns a path variable captured by the router.
func Param(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
