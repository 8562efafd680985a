package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/claims"
	"github.com/irsalhamdi/prelobook/validate"
)

type MessageNew struct {
	Text string `json:"text" validate:"required"`
}

func currentUser(ctx context.Context) (string, error) {
	clm, err := claims.Require(ctx)
	if err != nil {
		return "", err
	}
	return clm.UserID, nil
}

func HandleList(in *Inbox) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := currentUser(ctx)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, in.List(uid), http.StatusOK)
	}
}

func HandleShow(in *Inbox) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := currentUser(ctx)
		if err != nil {
			return err
		}

		id := web.Param(r, "id")
		t, err := in.Read(uid, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(fmt.Errorf("thread[%s]: %w", id, err))
			}
			return err
		}

		return web.Respond(ctx, w, t, http.StatusOK)
	}
}

func HandleSend(in *Inbox) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		uid, err := currentUser(ctx)
		if err != nil {
			return err
		}

		var mn MessageNew
		if err := web.Decode(w, r, &mn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode message: %w", err))
		}

		if err := validate.Check(mn); err != nil {
			return weberr.Unprocessable(err, "pesan tidak valid")
		}

		id := web.Param(r, "id")
		m, err := in.Send(uid, id, mn.Text)
		switch {
		case errors.Is(err, ErrNotFound):
			return weberr.NotFound(fmt.Errorf("thread[%s]: %w", id, err))
		case errors.Is(err, ErrEmpty):
			return weberr.Unprocessable(err, "pesan tidak boleh kosong")
		case err != nil:
			return fmt.Errorf("sending to thread[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, m, http.StatusCreated)
	}
}
