package core

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")

	// ErrConstraintViolation cubre CHECK (formato de email/teléfono), UNIQUE y NOT NULL.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrForeignKeyViolation: el teléfono referencia un client inexistente
	// o se intentó borrar un client que todavía tiene teléfonos.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// IsConstraintViolation helper para verificar violaciones de CHECK/UNIQUE/NOT NULL.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// IsForeignKeyViolation helper para verificar violaciones de FK.
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, ErrForeignKeyViolation)
}
