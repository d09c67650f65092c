package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

const selectJoined = `
SELECT cl.id, cl.first_name, cl.last_name, cl.email, p.phone_num
FROM client cl
LEFT JOIN phone p ON cl.id = p.user_id`

const orderJoined = `
ORDER BY cl.id ASC, p.id ASC`

type filterTerm struct {
	col   pgx.Identifier
	value string
}

// terms retorna los filtros no vacíos en orden fijo:
// first_name, last_name, email, phone_num.
func terms(f core.ClientFilter) []filterTerm {
	all := []filterTerm{
		{pgx.Identifier{"cl", "first_name"}, f.FirstName},
		{pgx.Identifier{"cl", "last_name"}, f.LastName},
		{pgx.Identifier{"cl", "email"}, f.Email},
		{pgx.Identifier{"p", "phone_num"}, f.Phone},
	}
	out := all[:0]
	for _, t := range all {
		if t.value != "" {
			out = append(out, t)
		}
	}
	return out
}

// FindClients busca clients (left join con phone) según f.
//
// Con MatchLast (default) se ejecuta un SELECT por cada filtro no vacío y solo
// se retorna el resultado del último; los filtros no se combinan.
// Con MatchAll se combinan todos con AND en un único SELECT.
// Sin filtros no se consulta nada y el resultado es vacío.
func (s *Store) FindClients(ctx context.Context, f core.ClientFilter) (out []core.ClientRow, err error) {
	defer s.track(ctx, "FindClients", time.Now(), nil, &err)

	ts := terms(f)
	if len(ts) == 0 {
		return nil, nil
	}

	switch f.Mode {
	case "", core.MatchLast:
		for _, t := range ts {
			q := selectJoined + "\nWHERE " + t.col.Sanitize() + " = $1" + orderJoined
			out, err = s.queryRows(ctx, "FindClients", q, t.value)
			if err != nil {
				return nil, err
			}
		}
		return out, nil

	case core.MatchAll:
		conds := make([]string, 0, len(ts))
		args := make([]any, 0, len(ts))
		for i, t := range ts {
			conds = append(conds, fmt.Sprintf("%s = $%d", t.col.Sanitize(), i+1))
			args = append(args, t.value)
		}
		q := selectJoined + "\nWHERE " + strings.Join(conds, " AND ") + orderJoined
		return s.queryRows(ctx, "FindClients", q, args...)

	default:
		return nil, fmt.Errorf("FindClients: match mode %q: %w", f.Mode, core.ErrInvalid)
	}
}

// ListAll retorna todos los clients con sus teléfonos, ordenados por id de client.
// Un client con N teléfonos aparece N veces; sin teléfonos, una vez con Phone nil.
func (s *Store) ListAll(ctx context.Context) (out []core.ClientRow, err error) {
	defer s.track(ctx, "ListAll", time.Now(), nil, &err)
	return s.queryRows(ctx, "ListAll", selectJoined+orderJoined)
}

func (s *Store) queryRows(ctx context.Context, op, q string, args ...any) ([]core.ClientRow, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var out []core.ClientRow
	for rows.Next() {
		var r core.ClientRow
		if err := rows.Scan(&r.ClientID, &r.FirstName, &r.LastName, &r.Email, &r.Phone); err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}
