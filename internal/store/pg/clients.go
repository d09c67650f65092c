package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
	"github.com/dropDatabas3/contacts/internal/store/core"
)

// ---------- ESCRITURAS ----------

// AddClient inserta el client y luego cada teléfono, uno por sentencia.
// Si un teléfono falla, los anteriores quedan commiteados y se retorna el id
// del client junto con el error.
func (s *Store) AddClient(ctx context.Context, firstName, lastName, email string, phones ...string) (id int64, err error) {
	defer s.track(ctx, "AddClient", time.Now(), nil, &err)

	const q = `INSERT INTO client(first_name, last_name, email) VALUES($1, $2, $3) RETURNING id`
	if err := s.db.QueryRow(ctx, q, firstName, lastName, email).Scan(&id); err != nil {
		return 0, wrapErr("AddClient", err)
	}
	logger.From(ctx).Debug("client inserted", logger.Layer("store"), logger.ClientID(id), logger.Count(len(phones)))
	for _, p := range phones {
		if _, err := s.AddPhone(ctx, id, p); err != nil {
			return id, err
		}
	}
	return id, nil
}

// DeleteClient borra los teléfonos del client y después el client.
// Retorna las filas de client borradas (0 si no existía).
func (s *Store) DeleteClient(ctx context.Context, clientID int64) (n int64, err error) {
	defer s.track(ctx, "DeleteClient", time.Now(), &n, &err)

	if _, err := s.db.Exec(ctx, `DELETE FROM phone WHERE user_id = $1`, clientID); err != nil {
		return 0, wrapErr("DeleteClient", err)
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM client WHERE id = $1`, clientID)
	if err != nil {
		return 0, wrapErr("DeleteClient", err)
	}
	return tag.RowsAffected(), nil
}

// clientColumns: columnas actualizables, en el orden en que se aplican.
var clientColumns = []string{"first_name", "last_name", "email"}

// UpdateClient aplica un UPDATE por cada campo no vacío y, si vienen
// OldPhone y NewPhone, renumera ese teléfono del client. Cada sentencia
// commitea por separado: si una falla, las anteriores quedan aplicadas.
// Retorna el total de filas afectadas.
func (s *Store) UpdateClient(ctx context.Context, clientID int64, upd core.ClientUpdate) (n int64, err error) {
	defer s.track(ctx, "UpdateClient", time.Now(), &n, &err)

	values := map[string]string{
		"first_name": upd.FirstName,
		"last_name":  upd.LastName,
		"email":      upd.Email,
	}
	for _, col := range clientColumns {
		v := values[col]
		if v == "" {
			continue
		}
		q := fmt.Sprintf(`UPDATE client SET %s = $1 WHERE id = $2`, pgx.Identifier{col}.Sanitize())
		tag, err := s.db.Exec(ctx, q, v, clientID)
		if err != nil {
			return n, wrapErr("UpdateClient", err)
		}
		logger.From(ctx).Debug("client column updated",
			logger.Layer("store"), logger.ClientID(clientID), logger.Column(col), logger.Affected(tag.RowsAffected()))
		n += tag.RowsAffected()
	}

	if upd.OldPhone != "" && upd.NewPhone != "" {
		const q = `UPDATE phone SET phone_num = $1 WHERE user_id = $2 AND phone_num = $3`
		tag, err := s.db.Exec(ctx, q, upd.NewPhone, clientID, upd.OldPhone)
		if err != nil {
			return n, wrapErr("UpdateClient", err)
		}
		n += tag.RowsAffected()
	}
	return n, nil
}

// ---------- LECTURAS ----------

// GetClient retorna el client con sus teléfonos ordenados por id.
func (s *Store) GetClient(ctx context.Context, clientID int64) (c *core.Client, err error) {
	defer s.track(ctx, "GetClient", time.Now(), nil, &err)

	c = &core.Client{}
	const q = `SELECT id, first_name, last_name, email FROM client WHERE id = $1`
	if err := s.db.QueryRow(ctx, q, clientID).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetClient %d: %w", clientID, core.ErrNotFound)
		}
		return nil, wrapErr("GetClient", err)
	}

	rows, err := s.db.Query(ctx, `SELECT phone_num FROM phone WHERE user_id = $1 ORDER BY id`, clientID)
	if err != nil {
		return nil, wrapErr("GetClient", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, wrapErr("GetClient", err)
		}
		c.Phones = append(c.Phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("GetClient", err)
	}
	return c, nil
}
