// Package router arma el chi.Router de la API de contactos.
package router

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clientsctrl "github.com/dropDatabas3/contacts/internal/http/controllers/clients"
	healthctrl "github.com/dropDatabas3/contacts/internal/http/controllers/health"
	mw "github.com/dropDatabas3/contacts/internal/http/middlewares"
)

// Store es lo que el router necesita del store de contactos.
type Store interface {
	clientsctrl.Reader
	Ping(ctx context.Context) error
}

type Deps struct {
	Store Store

	// Gatherer para /metrics; nil = prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// New registra:
//
//	GET /healthz
//	GET /metrics
//	GET /v1/clients
//	GET /v1/clients/{id}
func New(deps Deps) http.Handler {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Un solo mutex para todo acceso al store (una conexión).
	mu := &sync.Mutex{}
	clients := clientsctrl.NewController(deps.Store, mu)
	health := healthctrl.NewController(deps.Store, mu)

	r := chi.NewRouter()
	r.Use(mw.WithRecover(), mw.WithRequestID())

	// Sin logging para health/metrics (muy frecuentes)
	r.Get("/healthz", health.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1/clients", func(r chi.Router) {
		r.Use(mw.WithLogging())
		r.Get("/", clients.List)
		r.Get("/{id}", clients.Get)
	})
	return r
}
