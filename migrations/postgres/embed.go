// Package migrations embeds the PostgreSQL DDL for the contacts schema.
package migrations

import "embed"

// FS contiene los archivos *_up.sql / *_down.sql.
//
//go:embed *.sql
var FS embed.FS

const (
	// ContactsUp crea client y phone (idempotente).
	ContactsUp = "0001_contacts_up.sql"
	// ContactsDown borra phone y luego client.
	ContactsDown = "0001_contacts_down.sql"
)
