// Package weberr attaches HTTP responses and log fields to errors returned
// by handlers.
package weberr

import (
	"errors"

	"github.com/sirupsen/logrus"
)

type Opt func(error) error

func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Unwrap() error { return e.error }

type fieldsError struct {
	error
	fields logrus.Fields
}

func (e *fieldsError) Unwrap() error { return e.error }

func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

func WithFields(fields logrus.Fields) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// Response returns the outermost response attached to err.
func Response(err error) (body any, status int, ok bool) {
	var re *responseError
	if errors.As(err, &re) {
		return re.body, re.status, true
	}
	return nil, 0, false
}

// Fields collects the log fields attached anywhere along err's chain. When a
// key is set twice the outer value wins.
func Fields(err error) (logrus.Fields, bool) {
	var out logrus.Fields
	for ; err != nil; err = errors.Unwrap(err) {
		fe, ok := err.(*fieldsError)
		if !ok {
			continue
		}
		if out == nil {
			out = make(logrus.Fields, len(fe.fields))
		}
		for k, v := range fe.fields {
			if _, set := out[k]; !set {
				out[k] = v
			}
		}
	}
	return out, out != nil
}
