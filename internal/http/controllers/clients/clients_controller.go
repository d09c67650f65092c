// Package clients expone lecturas del store de contactos por HTTP.
package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/contacts/internal/http/errors"
	"github.com/dropDatabas3/contacts/internal/observability/logger"
	"github.com/dropDatabas3/contacts/internal/store/core"
)

// Reader es el subconjunto del store que usa el controller.
type Reader interface {
	ListAll(ctx context.Context) ([]core.ClientRow, error)
	FindClients(ctx context.Context, f core.ClientFilter) ([]core.ClientRow, error)
	GetClient(ctx context.Context, clientID int64) (*core.Client, error)
}

// Controller maneja /v1/clients. El store usa una sola conexión, así que
// las llamadas se serializan con mu y nunca reciben un ctx cancelable
// (pgx cerraría la conexión si el cliente HTTP corta a mitad de query).
type Controller struct {
	mu    *sync.Mutex
	store Reader
}

// NewController: mu debe ser el mismo mutex que usan los demás controllers
// que comparten el store.
func NewController(store Reader, mu *sync.Mutex) *Controller {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Controller{mu: mu, store: store}
}

type listResponse struct {
	Count int              `json:"count"`
	Rows  []core.ClientRow `json:"rows"`
}

// List maneja GET /v1/clients. Sin filtros lista todo; con
// first_name/last_name/email/phone usa FindClients (match=last|all).
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := storeCtx(r)
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("clients.List"))

	q := r.URL.Query()
	f := core.ClientFilter{
		FirstName: strings.TrimSpace(q.Get("first_name")),
		LastName:  strings.TrimSpace(q.Get("last_name")),
		Email:     strings.TrimSpace(q.Get("email")),
		Phone:     strings.TrimSpace(q.Get("phone")),
		Mode:      core.MatchMode(strings.ToLower(strings.TrimSpace(q.Get("match")))),
	}

	var (
		rows []core.ClientRow
		err  error
	)
	c.mu.Lock()
	if f.Empty() {
		rows, err = c.store.ListAll(ctx)
	} else {
		rows, err = c.store.FindClients(ctx, f)
	}
	c.mu.Unlock()
	if err != nil {
		log.Error("list clients failed", logger.Err(err))
		httperrors.WriteError(w, err)
		return
	}
	if rows == nil {
		rows = []core.ClientRow{}
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(rows), Rows: rows})
}

// Get maneja GET /v1/clients/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("id must be a positive integer"))
		return
	}

	c.mu.Lock()
	client, err := c.store.GetClient(storeCtx(r), id)
	c.mu.Unlock()
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// storeCtx conserva los valores del request (logger, request id) sin su
// cancelación.
func storeCtx(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
