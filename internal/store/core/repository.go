package core

import "context"

// ContactRepository es el contrato del store de contactos.
// Cada operación es auto-commit por sentencia salvo que se ejecute dentro de InTx.
type ContactRepository interface {
	Ping(ctx context.Context) error

	// Schema
	InitializeSchema(ctx context.Context) error
	ResetSchema(ctx context.Context) error

	// Escrituras
	AddClient(ctx context.Context, firstName, lastName, email string, phones ...string) (int64, error)
	AddPhone(ctx context.Context, clientID int64, phone string) (int64, error)
	DeletePhone(ctx context.Context, id int64, phone string) (int64, error)
	DeletePhoneByOwner(ctx context.Context, clientID int64, phone string) (int64, error)
	DeleteClient(ctx context.Context, clientID int64) (int64, error)
	UpdateClient(ctx context.Context, clientID int64, upd ClientUpdate) (int64, error)

	// Lecturas
	FindClients(ctx context.Context, f ClientFilter) ([]ClientRow, error)
	ListAll(ctx context.Context) ([]ClientRow, error)
	GetClient(ctx context.Context, clientID int64) (*Client, error)
}
