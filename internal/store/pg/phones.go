package pg

import (
	"context"
	"time"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
)

// AddPhone inserta un teléfono para clientID y retorna su id.
// Formato inválido o número repetido => core.ErrConstraintViolation;
// client inexistente => core.ErrForeignKeyViolation.
func (s *Store) AddPhone(ctx context.Context, clientID int64, phone string) (id int64, err error) {
	defer s.track(ctx, "AddPhone", time.Now(), nil, &err)

	const q = `INSERT INTO phone(phone_num, user_id) VALUES($1, $2) RETURNING id`
	if err := s.db.QueryRow(ctx, q, phone, clientID).Scan(&id); err != nil {
		return 0, wrapErr("AddPhone", err)
	}
	logger.From(ctx).Debug("phone inserted", logger.Layer("store"), logger.ClientID(clientID), logger.Phone(phone))
	return id, nil
}

// DeletePhone borra la fila de phone con ese id Y ese número.
//
// Ojo: id se compara contra phone.id (la PK del teléfono), no contra
// phone.user_id, aunque los callers históricos pasan el id del client.
// Se mantiene así a propósito; para borrar por dueño usar DeletePhoneByOwner.
func (s *Store) DeletePhone(ctx context.Context, id int64, phone string) (n int64, err error) {
	defer s.track(ctx, "DeletePhone", time.Now(), &n, &err)

	tag, err := s.db.Exec(ctx, `DELETE FROM phone WHERE id = $1 AND phone_num = $2`, id, phone)
	if err != nil {
		return 0, wrapErr("DeletePhone", err)
	}
	return tag.RowsAffected(), nil
}

// DeletePhoneByOwner borra el teléfono phone si pertenece a clientID.
func (s *Store) DeletePhoneByOwner(ctx context.Context, clientID int64, phone string) (n int64, err error) {
	defer s.track(ctx, "DeletePhoneByOwner", time.Now(), &n, &err)

	tag, err := s.db.Exec(ctx, `DELETE FROM phone WHERE user_id = $1 AND phone_num = $2`, clientID, phone)
	if err != nil {
		return 0, wrapErr("DeletePhoneByOwner", err)
	}
	return tag.RowsAffected(), nil
}
