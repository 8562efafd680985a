package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/submit"
	"github.com/irsalhamdi/prelobook/core/user"
	"github.com/irsalhamdi/prelobook/validate"
)

type response struct {
	Message  string     `json:"message"`
	User     *user.User `json:"user,omitempty"`
	Redirect string     `json:"redirect,omitempty"`
}

func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func throttle(lim Limiter, r *http.Request) error {
	if lim == nil || lim.Check(clientID(r)) {
		return nil
	}
	return weberr.TooManyRequests(fmt.Errorf("client[%s] exceeded the submission rate", clientID(r)))
}

func HandleLogin(sm *scs.SessionManager, dir *user.Directory, lim Limiter, delay time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := throttle(lim, r); err != nil {
			return err
		}

		var in Login
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode login form: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Unprocessable(err, "data login tidak valid")
		}

		if err := submit.Delay(ctx, delay); err != nil {
			return fmt.Errorf("login submission interrupted: %w", err)
		}

		u := dir.SignIn(in.Email)
		if err := signIn(ctx, sm, u, in.RememberMe); err != nil {
			return err
		}

		resp := response{
			Message:  fmt.Sprintf("Login berhasil. Selamat datang kembali, %s!", u.Name),
			User:     &u,
			Redirect: "/",
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleRegister(sm *scs.SessionManager, dir *user.Directory, lim Limiter, delay time.Duration) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := throttle(lim, r); err != nil {
			return err
		}

		var in Register
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode registration form: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Unprocessable(err, "data pendaftaran tidak valid")
		}

		if err := submit.Delay(ctx, delay); err != nil {
			return fmt.Errorf("registration submission interrupted: %w", err)
		}

		u := dir.Register(in.Name, in.Email)
		if err := signIn(ctx, sm, u, false); err != nil {
			return err
		}

		resp := response{
			Message:  "Pendaftaran berhasil. Akun Anda telah berhasil dibuat",
			User:     &u,
			Redirect: "/",
		}
		return web.Respond(ctx, w, resp, http.StatusCreated)
	}
}

func HandleLogout(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if !Authenticated(ctx, sm) {
			return weberr.NotAuthorized(errors.New("logout without a session"))
		}

		if err := sm.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, response{Message: "Anda telah keluar", Redirect: "/"}, http.StatusOK)
	}
}
