// Package health contiene el controller de health check.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	mu *sync.Mutex
	db Pinger
}

// NewController: mu es el mutex compartido del store (ver clients.NewController).
func NewController(db Pinger, mu *sync.Mutex) *Controller {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Controller{mu: mu, db: db}
}

type response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Healthz maneja GET /healthz: 200 si la DB responde, 503 si no.
//
// Sin timeout ni cancelación: pgx cierra la conexión si el ctx se cancela a
// mitad de una query, y el store tiene una sola.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	c.mu.Lock()
	err := c.db.Ping(ctx)
	c.mu.Unlock()

	resp, status := response{Status: "ready"}, http.StatusOK
	if err != nil {
		logger.From(ctx).Warn("health check failed", logger.Layer("controller"), logger.Err(err))
		resp, status = response{Status: "unavailable", Error: err.Error()}, http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
