package auth

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/irsalhamdi/prelobook/api/weberr"
	"github.com/irsalhamdi/prelobook/core/claims"
	"github.com/irsalhamdi/prelobook/core/user"
)

const (
	keyUserID     = "user_id"
	keyUserName   = "user_name"
	keyUserEmail  = "user_email"
	keyRememberMe = "remember_me"
)

// bufferedWriter holds the response until the session is committed, since
// the session cookie must be written before the status line.
type bufferedWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.code == 0 {
		bw.code = code
	}
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}

// LoadAndSave loads the session named by the request cookie into the
// context and commits it once the handler returns.
func LoadAndSave(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.Header().Add("Vary", "Cookie")

			var token string
			if c, err := r.Cookie(sm.Cookie.Name); err == nil {
				token = c.Value
			}

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				return sessionFailed(r.Context(), w, fmt.Errorf("loading session: %w", err))
			}

			bw := &bufferedWriter{ResponseWriter: w}
			herr := handler(ctx, bw, r.WithContext(ctx))

			switch sm.Status(ctx) {
			case scs.Modified:
				token, expiry, err := sm.Commit(ctx)
				if err != nil {
					return sessionFailed(ctx, w, fmt.Errorf("committing session: %w", err))
				}
				writeCookie(ctx, sm, w, token, expiry)
			case scs.Destroyed:
				writeCookie(ctx, sm, w, "", time.Time{})
			}

			if bw.code == 0 {
				bw.code = http.StatusOK
			}
			w.WriteHeader(bw.code)
			if _, err := w.Write(bw.buf.Bytes()); err != nil {
				return fmt.Errorf("flushing response: %w", err)
			}

			return herr
		}
		return h
	}
	return m
}

// sessionFailed answers with the JSON 500 body directly. LoadAndSave runs
// outside the Errors middleware, so nothing else would render it.
func sessionFailed(ctx context.Context, w http.ResponseWriter, err error) error {
	err = weberr.InternalError(err)
	body, code, _ := weberr.Response(err)
	if rerr := web.Respond(ctx, w, body, code); rerr != nil {
		return fmt.Errorf("%w: %v", err, rerr)
	}
	return err
}

// writeCookie sets the session cookie. It only outlives the browser session
// when the user asked to be remembered at login; Cookie.Persist is ignored.
func writeCookie(ctx context.Context, sm *scs.SessionManager, w http.ResponseWriter, token string, expiry time.Time) {
	c := &http.Cookie{
		Name:     sm.Cookie.Name,
		Value:    token,
		Path:     sm.Cookie.Path,
		Domain:   sm.Cookie.Domain,
		Secure:   sm.Cookie.Secure,
		HttpOnly: sm.Cookie.HttpOnly,
		SameSite: sm.Cookie.SameSite,
	}

	switch {
	case expiry.IsZero():
		c.Expires = time.Unix(1, 0)
		c.MaxAge = -1
	case sm.GetBool(ctx, keyRememberMe):
		c.Expires = time.Unix(expiry.Unix()+1, 0)
		c.MaxAge = int(time.Until(expiry).Seconds() + 1)
	}

	w.Header().Add("Set-Cookie", c.String())
	w.Header().Add("Cache-Control", `no-cache="Set-Cookie"`)
}

// Authenticated reports whether the session belongs to a signed-in user.
func Authenticated(ctx context.Context, sm *scs.SessionManager) bool {
	return sm.GetString(ctx, keyUserID) != ""
}

func signIn(ctx context.Context, sm *scs.SessionManager, u user.User, remember bool) error {
	if err := sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	sm.Put(ctx, keyUserID, u.ID)
	sm.Put(ctx, keyUserName, u.Name)
	sm.Put(ctx, keyUserEmail, u.Email)
	sm.Put(ctx, keyRememberMe, remember)
	return nil
}

// Authenticate guards a route. Anonymous requests are redirected to
// loginURL with 303 and never reach the handler.
func Authenticate(sm *scs.SessionManager, loginURL string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !Authenticated(ctx, sm) {
				body := struct {
					Error    string `json:"error"`
					Redirect string `json:"redirect"`
				}{
					"Silakan login atau buat akun terlebih dahulu",
					loginURL,
				}
				return web.Redirect(ctx, w, loginURL, body)
			}

			ctx = claims.Set(ctx, claims.Claims{
				UserID: sm.GetString(ctx, keyUserID),
				Name:   sm.GetString(ctx, keyUserName),
				Email:  sm.GetString(ctx, keyUserEmail),
			})

			return handler(ctx, w, r.WithContext(ctx))
		}
		return h
	}
	return m
}
