package pg

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

// SQLSTATE relevantes (clase 23, integrity constraint violation).
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// wrapErr clasifica errores de Postgres en los sentinels de core sin perder
// el *pgconn.PgError original (errors.As sigue funcionando).
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeCheckViolation, codeUniqueViolation, codeNotNullViolation:
			return fmt.Errorf("%s: %w: %w", op, core.ErrConstraintViolation, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, core.ErrForeignKeyViolation, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
