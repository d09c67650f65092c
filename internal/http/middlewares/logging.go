package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
)

// WithLogging loguea método, path, status y duración de cada request.
func WithLogging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.From(r.Context()).Info("http request",
				logger.Layer("http"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(status),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
