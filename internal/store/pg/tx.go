package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// InTx ejecuta fn con un Store ligado a una transacción: commit si fn retorna
// nil, rollback si retorna error. Sirve para que AddClient + sus teléfonos o
// los varios UPDATE de UpdateClient sean todo-o-nada.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	defer s.track(ctx, "InTx", time.Now(), nil, &err)

	b, ok := s.db.(beginner)
	if !ok {
		return fmt.Errorf("InTx: %T does not support transactions", s.db)
	}
	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}
