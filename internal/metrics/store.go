package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

// Métricas del store de contactos. Paquete aparte para que store y http
// no se importen entre sí.

var (
	StoreOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "contacts_store_op_duration_seconds",
		Help:    "Latencia de las operaciones del store",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"op"})

	StoreOpErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contacts_store_op_errors_total",
		Help: "Errores de operaciones del store por tipo",
	}, []string{"op", "kind"})
)

// Register registra las métricas del store en reg (o en el default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{StoreOpDuration, StoreOpErrors} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// ObserveStoreOp registra latencia y, si hubo error, lo cuenta por tipo.
func ObserveStoreOp(op string, seconds float64, err error) {
	StoreOpDuration.WithLabelValues(op).Observe(seconds)
	if err != nil {
		StoreOpErrors.WithLabelValues(op, ErrorKind(err)).Inc()
	}
}

// ErrorKind clasifica un error del store para la label "kind".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrConstraintViolation):
		return "constraint"
	case errors.Is(err, core.ErrForeignKeyViolation):
		return "foreign_key"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrInvalid):
		return "invalid"
	default:
		return "other"
	}
}
