package weberr

import (
	"errors"
	"net/http"

	"github.com/irsalhamdi/prelobook/validate"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type RequestError struct {
	Err error
}

func (r *RequestError) Error() string { return r.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

func NewError(err error, msg string, status int, opts ...Opt) error {
	e := &RequestError{Err: err}
	opts = append(opts, WithResponse(
		&ErrorResponse{Error: msg},
		status,
	))

	return Wrap(e, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(
		err,
		"data tidak ditemukan",
		http.StatusNotFound,
		opts...,
	)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(
		err,
		"silakan login terlebih dahulu",
		http.StatusUnauthorized,
		opts...,
	)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"terjadi kesalahan pada server",
		http.StatusInternalServerError,
		opts...,
	)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(
		err,
		"permintaan tidak valid",
		http.StatusBadRequest,
		opts...,
	)
}

func Conflict(err error, opts ...Opt) error {
	return NewError(
		err,
		err.Error(),
		http.StatusConflict,
		opts...,
	)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(
		err,
		"terlalu banyak percobaan, coba lagi nanti",
		http.StatusTooManyRequests,
		opts...,
	)
}

// Unprocessable reports a rejected form. Field messages from validate.Check
// are passed through to the response body.
func Unprocessable(err error, msg string, opts ...Opt) error {
	body := &ErrorResponse{Error: msg}

	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		body.Fields = fe
	}

	opts = append(opts, WithResponse(body, http.StatusUnprocessableEntity))
	return Wrap(&RequestError{Err: err}, opts...)
}
