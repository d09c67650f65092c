package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
)

type ctxKey string

const ctxRequestIDKey ctxKey = "request_id"

// WithRequestID respeta X-Request-ID entrante o genera uno, lo expone en la
// respuesta y deja un logger scoped en el contexto.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			ctx := context.WithValue(r.Context(), ctxRequestIDKey, rid)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.RequestID(rid)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID retorna el request ID o "" si el middleware no se aplicó.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxRequestIDKey).(string)
	return v
}
