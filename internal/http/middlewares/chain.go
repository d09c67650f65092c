package middlewares

import "net/http"

// Middleware es compatible con chi.Router.Use.
type Middleware func(http.Handler) http.Handler

// chain aplica mws en orden: el primero queda más afuera.
func chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
