package pg

import (
	"context"
	"fmt"
	"time"

	migrations "github.com/dropDatabas3/contacts/migrations/postgres"
)

// InitializeSchema crea client y phone si no existen.
func (s *Store) InitializeSchema(ctx context.Context) (err error) {
	defer s.track(ctx, "InitializeSchema", time.Now(), nil, &err)
	return s.execMigration(ctx, "InitializeSchema", migrations.ContactsUp)
}

// ResetSchema borra phone y luego client; no falla si no existen.
func (s *Store) ResetSchema(ctx context.Context) (err error) {
	defer s.track(ctx, "ResetSchema", time.Now(), nil, &err)
	return s.execMigration(ctx, "ResetSchema", migrations.ContactsDown)
}

// execMigration ejecuta un archivo embebido completo. Sin argumentos pgx usa
// el protocolo simple, que admite varias sentencias por llamada.
func (s *Store) execMigration(ctx context.Context, op, name string) error {
	b, err := migrations.FS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%s: read %s: %w", op, name, err)
	}
	if _, err := s.db.Exec(ctx, string(b)); err != nil {
		return wrapErr(op, err)
	}
	return nil
}
