// Package pg implementa el store de contactos sobre PostgreSQL con pgx.
//
// El store trabaja sobre una única conexión (*pgx.Conn) y ejecuta cada
// sentencia en auto-commit. InTx permite agrupar operaciones en una transacción.
package pg

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/contacts/internal/metrics"
	"github.com/dropDatabas3/contacts/internal/observability/logger"
	"github.com/dropDatabas3/contacts/internal/store/core"
)

// DBTX abstrae *pgx.Conn, *pgxpool.Pool y pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ DBTX = (*pgx.Conn)(nil)
	_ DBTX = (*pgxpool.Pool)(nil)
	_ DBTX = (pgx.Tx)(nil)

	_ core.ContactRepository = (*Store)(nil)
)

type Store struct {
	db DBTX

	// conn es nil si el store se construyó con New (el caller es dueño de db).
	conn      *pgx.Conn
	closeOnce sync.Once
	closeErr  error
}

// Open abre una conexión nueva a dsn. El caller debe llamar Close.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	logger.From(ctx).Info("pg connection ready",
		logger.Layer("store"),
		logger.String("host", cfg.Host),
		logger.String("database", cfg.Database),
	)
	return &Store{db: conn, conn: conn}, nil
}

// New envuelve un DBTX existente. Close no lo cierra.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// DB expone el ejecutor subyacente (migraciones, tests).
func (s *Store) DB() DBTX { return s.db }

// Close libera la conexión abierta por Open. Es idempotente.
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if s.conn != nil {
			s.closeErr = s.conn.Close(ctx)
		}
	})
	return s.closeErr
}

func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	_, err := s.db.Exec(ctx, "SELECT 1")
	return err
}

// track registra métricas y log de una operación. Se usa con defer y
// retornos nombrados: defer s.track(ctx, "Op", time.Now(), &n, &err).
func (s *Store) track(ctx context.Context, op string, start time.Time, n *int64, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	elapsed := time.Since(start)
	metrics.ObserveStoreOp(op, elapsed.Seconds(), err)

	log := logger.From(ctx).With(logger.Layer("store"), logger.Op(op))
	switch {
	case err == nil:
		if n != nil {
			log.Debug("store op done", logger.Affected(*n), logger.Duration(elapsed))
		} else {
			log.Debug("store op done", logger.Duration(elapsed))
		}
	case core.IsConstraintViolation(err), core.IsForeignKeyViolation(err):
		log.Warn("store op rejected by database", logger.Err(err))
	default:
		log.Error("store op failed", logger.Err(err))
	}
}
