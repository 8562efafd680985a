package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irsalhamdi/prelobook/api/web"
	"github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web/mutil"
)

// Logger writes one entry when a request starts and one when it completes.
// Completed entries are logged at Warn for 4xx and Error for 5xx.
func Logger(log logrus.FieldLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			entry := log.WithFields(logrus.Fields{
				"req_id": ContextRequestID(ctx),
				"method": r.Method,
				"path":   r.URL.Path,
			})
			if q := r.URL.RawQuery; q != "" {
				entry = entry.WithField("query", q)
			}

			entry.WithField("remoteaddr", r.RemoteAddr).Info("started")
			start := time.Now()

			lw := mutil.WrapWriter(w)
			err := handler(ctx, lw, r)

			entry = entry.WithFields(logrus.Fields{
				"status":   lw.Status(),
				"bytes":    lw.BytesWritten(),
				"duration": time.Since(start).String(),
			})

			switch code := lw.Status(); {
			case code >= http.StatusInternalServerError:
				entry.Error("completed")
			case code >= http.StatusBadRequest:
				entry.Warn("completed")
			default:
				entry.Info("completed")
			}
			return err
		}
		return h
	}
	return m
}
