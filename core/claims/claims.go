package claims

import (
	"context"
	"errors"

	"github.com/irsalhamdi/prelobook/api/weberr"
)

var ErrMissing = errors.New("claims missing from context")

// Claims identify the signed-in user of the current request.
type Claims struct {
	UserID string
	Name   string
	Email  string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, ErrMissing
	}
	return v, nil
}

// Require is Get for handlers mounted behind the session gate. A request
// that slipped through without an identity is answered with 401.
func Require(ctx context.Context) (Claims, error) {
	c, err := Get(ctx)
	if err != nil {
		return Claims{}, weberr.NotAuthorized(err)
	}
	return c, nil
}
