package pg

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/contacts/internal/observability/logger"
	"github.com/dropDatabas3/contacts/internal/store/core"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Env: "test"})
	os.Exit(m.Run())
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0, "%q not found in %q", sub, s)
	return i
}

func TestInitializeSchema_CreatesClientBeforePhone(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, New(db).InitializeSchema(context.Background()))

	require.Len(t, db.calls, 1)
	sql := db.calls[0].sql
	assert.Empty(t, db.calls[0].args)
	client := indexOf(t, sql, "CREATE TABLE IF NOT EXISTS client")
	phone := indexOf(t, sql, "CREATE TABLE IF NOT EXISTS phone")
	assert.Less(t, client, phone)
	assert.Contains(t, sql, "REFERENCES client(id)")
	assert.Contains(t, sql, "phone_num TEXT UNIQUE")
	assert.Contains(t, sql, "'^[0-9]{10}$'")
}

func TestResetSchema_DropsPhoneFirst(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, New(db).ResetSchema(context.Background()))

	require.Len(t, db.calls, 1)
	sql := db.calls[0].sql
	assert.Less(t, indexOf(t, sql, "DROP TABLE IF EXISTS phone"), indexOf(t, sql, "DROP TABLE IF EXISTS client"))
}

func TestAddClient_InsertsPhonesSequentially(t *testing.T) {
	db := &fakeDB{
		onQueryRow: func(n int, _ string, _ []any) ([]any, error) {
			return []any{int64(7 + n*10)}, nil
		},
	}
	id, err := New(db).AddClient(context.Background(), "cl1", "cl_last1", "abc@d.ef", "1234567895", "9876543214")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	require.Len(t, db.calls, 3)
	assert.Contains(t, db.calls[0].sql, "INSERT INTO client(first_name, last_name, email)")
	assert.Equal(t, []any{"cl1", "cl_last1", "abc@d.ef"}, db.calls[0].args)
	assert.Contains(t, db.calls[1].sql, "INSERT INTO phone(phone_num, user_id)")
	assert.Equal(t, []any{"1234567895", int64(7)}, db.calls[1].args)
	assert.Equal(t, []any{"9876543214", int64(7)}, db.calls[2].args)
}

func TestAddClient_PhoneFailureKeepsClientID(t *testing.T) {
	db := &fakeDB{
		onQueryRow: func(n int, _ string, _ []any) ([]any, error) {
			if n == 2 {
				return nil, pgError(codeUniqueViolation)
			}
			return []any{int64(n + 1)}, nil
		},
	}
	id, err := New(db).AddClient(context.Background(), "a", "b", "a@b.cd", "1111111111", "1111111111", "2222222222")
	require.Error(t, err)
	assert.Equal(t, int64(1), id)
	assert.True(t, core.IsConstraintViolation(err))
	// el tercer teléfono no se intenta
	assert.Len(t, db.calls, 3)
}

func TestAddPhone_ErrorMapping(t *testing.T) {
	cases := []struct {
		code string
		is   error
	}{
		{codeCheckViolation, core.ErrConstraintViolation},
		{codeUniqueViolation, core.ErrConstraintViolation},
		{codeNotNullViolation, core.ErrConstraintViolation},
		{codeForeignKeyViolation, core.ErrForeignKeyViolation},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			db := &fakeDB{onQueryRow: func(int, string, []any) ([]any, error) { return nil, pgError(tc.code) }}
			_, err := New(db).AddPhone(context.Background(), 99, "123")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.is)

			var pgErr *pgconn.PgError
			require.True(t, errors.As(err, &pgErr))
			assert.Equal(t, tc.code, pgErr.Code)
		})
	}
}

func TestWrapErr_PassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	err := wrapErr("ListAll", boom)
	assert.ErrorIs(t, err, boom)
	assert.False(t, core.IsConstraintViolation(err))
	assert.False(t, core.IsForeignKeyViolation(err))
	assert.Nil(t, wrapErr("ListAll", nil))
}

func TestDeleteClient_DeletesPhonesFirst(t *testing.T) {
	db := &fakeDB{
		onExec: func(n int, _ string, _ []any) (pgconn.CommandTag, error) {
			if n == 0 {
				return tag("DELETE 2"), nil
			}
			return tag("DELETE 1"), nil
		},
	}
	n, err := New(db).DeleteClient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, db.calls, 2)
	assert.Equal(t, "DELETE FROM phone WHERE user_id = $1", db.calls[0].sql)
	assert.Equal(t, "DELETE FROM client WHERE id = $1", db.calls[1].sql)
	assert.Equal(t, []any{int64(1)}, db.calls[1].args)
}

func TestDeleteClient_StopsIfPhoneDeleteFails(t *testing.T) {
	db := &fakeDB{onExec: func(int, string, []any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("conn lost")
	}}
	_, err := New(db).DeleteClient(context.Background(), 1)
	require.Error(t, err)
	assert.Len(t, db.calls, 1)
}

func TestDeletePhone_FiltersOnPhoneID(t *testing.T) {
	db := &fakeDB{onExec: func(int, string, []any) (pgconn.CommandTag, error) { return tag("DELETE 1"), nil }}
	n, err := New(db).DeletePhone(context.Background(), 1, "1234567895")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "DELETE FROM phone WHERE id = $1 AND phone_num = $2", db.calls[0].sql)
	assert.Equal(t, []any{int64(1), "1234567895"}, db.calls[0].args)
}

func TestDeletePhoneByOwner_FiltersOnUserID(t *testing.T) {
	db := &fakeDB{onExec: func(int, string, []any) (pgconn.CommandTag, error) { return tag("DELETE 0"), nil }}
	n, err := New(db).DeletePhoneByOwner(context.Background(), 3, "1234567895")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "DELETE FROM phone WHERE user_id = $1 AND phone_num = $2", db.calls[0].sql)
}

func TestUpdateClient_OnlyLastName(t *testing.T) {
	db := &fakeDB{onExec: func(int, string, []any) (pgconn.CommandTag, error) { return tag("UPDATE 1"), nil }}
	n, err := New(db).UpdateClient(context.Background(), 2, core.ClientUpdate{LastName: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.Len(t, db.calls, 1)
	assert.Equal(t, `UPDATE client SET "last_name" = $1 WHERE id = $2`, db.calls[0].sql)
	assert.Equal(t, []any{"X", int64(2)}, db.calls[0].args)
}

func TestUpdateClient_AllFieldsAndPhone(t *testing.T) {
	db := &fakeDB{onExec: func(int, string, []any) (pgconn.CommandTag, error) { return tag("UPDATE 1"), nil }}
	n, err := New(db).UpdateClient(context.Background(), 2, core.ClientUpdate{
		FirstName: "f", LastName: "l", Email: "e@x.io",
		OldPhone: "1111111111", NewPhone: "2222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	assert.Equal(t, []string{
		`UPDATE client SET "first_name" = $1 WHERE id = $2`,
		`UPDATE client SET "last_name" = $1 WHERE id = $2`,
		`UPDATE client SET "email" = $1 WHERE id = $2`,
		`UPDATE phone SET phone_num = $1 WHERE user_id = $2 AND phone_num = $3`,
	}, db.sqls())
	assert.Equal(t, []any{"2222222222", int64(2), "1111111111"}, db.calls[3].args)
}

func TestUpdateClient_PhoneNeedsBothNumbers(t *testing.T) {
	db := &fakeDB{}
	n, err := New(db).UpdateClient(context.Background(), 2, core.ClientUpdate{OldPhone: "1111111111"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, db.calls)
}

func TestUpdateClient_PartialApplyOnFailure(t *testing.T) {
	db := &fakeDB{onExec: func(n int, _ string, _ []any) (pgconn.CommandTag, error) {
		if n == 1 {
			return pgconn.CommandTag{}, pgError(codeCheckViolation)
		}
		return tag("UPDATE 1"), nil
	}}
	n, err := New(db).UpdateClient(context.Background(), 2, core.ClientUpdate{FirstName: "ok", Email: "bad"})
	require.Error(t, err)
	assert.True(t, core.IsConstraintViolation(err))
	assert.Equal(t, int64(1), n)
	assert.Len(t, db.calls, 2)
}

var (
	row1a = []any{int64(1), "cl1", "cl_last1", "abc@d.ef", "1234567895"}
	row1b = []any{int64(1), "cl1", "cl_last1", "abc@d.ef", "9876543214"}
	row2  = []any{int64(2), "cl2", "cl_last2", "abcd@g.fa", nil}
)

func TestFindClients_MatchLastReturnsLastFilterOnly(t *testing.T) {
	db := &fakeDB{onQuery: func(n int, _ string, _ []any) ([][]any, error) {
		if n == 0 {
			return [][]any{row1a, row1b}, nil
		}
		return [][]any{row2}, nil
	}}
	out, err := New(db).FindClients(context.Background(), core.ClientFilter{LastName: "cl_last1", Phone: "0000000000"})
	require.NoError(t, err)

	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].sql, `WHERE "cl"."last_name" = $1`)
	assert.Equal(t, []any{"cl_last1"}, db.calls[0].args)
	assert.Contains(t, db.calls[1].sql, `WHERE "p"."phone_num" = $1`)
	assert.Contains(t, db.calls[1].sql, "LEFT JOIN phone p ON cl.id = p.user_id")

	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ClientID)
	assert.Nil(t, out[0].Phone)
}

func TestFindClients_MatchAllIsConjunctive(t *testing.T) {
	db := &fakeDB{onQuery: func(int, string, []any) ([][]any, error) { return [][]any{row1a}, nil }}
	out, err := New(db).FindClients(context.Background(), core.ClientFilter{
		FirstName: "cl1", Email: "abc@d.ef", Mode: core.MatchAll,
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, `WHERE "cl"."first_name" = $1 AND "cl"."email" = $2`)
	assert.Equal(t, []any{"cl1", "abc@d.ef"}, db.calls[0].args)
	require.Len(t, out, 1)
	assert.Equal(t, "1234567895", out[0].PhoneNum())
}

func TestFindClients_NoFilters(t *testing.T) {
	db := &fakeDB{}
	out, err := New(db).FindClients(context.Background(), core.ClientFilter{Mode: core.MatchAll})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, db.calls)
}

func TestFindClients_UnknownMode(t *testing.T) {
	_, err := New(&fakeDB{}).FindClients(context.Background(), core.ClientFilter{Email: "x@y.z", Mode: "any"})
	assert.ErrorIs(t, err, core.ErrInvalid)
}

func TestListAll_OrderedLeftJoin(t *testing.T) {
	db := &fakeDB{onQuery: func(int, string, []any) ([][]any, error) {
		return [][]any{row1a, row1b, row2}, nil
	}}
	out, err := New(db).ListAll(context.Background())
	require.NoError(t, err)

	assert.Contains(t, db.sqls()[0], "ORDER BY cl.id ASC, p.id ASC")
	assert.Equal(t, []core.ClientRow{
		{ClientID: 1, FirstName: "cl1", LastName: "cl_last1", Email: "abc@d.ef", Phone: strp("1234567895")},
		{ClientID: 1, FirstName: "cl1", LastName: "cl_last1", Email: "abc@d.ef", Phone: strp("9876543214")},
		{ClientID: 2, FirstName: "cl2", LastName: "cl_last2", Email: "abcd@g.fa"},
	}, out)
}

func TestGetClient(t *testing.T) {
	db := &fakeDB{
		onQueryRow: func(int, string, []any) ([]any, error) {
			return []any{int64(1), "cl1", "cl_last1", "abc@d.ef"}, nil
		},
		onQuery: func(int, string, []any) ([][]any, error) {
			return [][]any{{"1234567895"}, {"9876543214"}}, nil
		},
	}
	c, err := New(db).GetClient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &core.Client{
		ID: 1, FirstName: "cl1", LastName: "cl_last1", Email: "abc@d.ef",
		Phones: []string{"1234567895", "9876543214"},
	}, c)
}

func TestGetClient_NotFound(t *testing.T) {
	_, err := New(&fakeDB{}).GetClient(context.Background(), 42)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, pgx.ErrNoRows)
}

func TestInTx_RequiresBeginner(t *testing.T) {
	called := false
	err := New(&fakeDB{}).InTx(context.Background(), func(*Store) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestClose_WithoutOwnedConn(t *testing.T) {
	s := New(&fakeDB{})
	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	var nilStore *Store
	assert.NoError(t, nilStore.Close(context.Background()))
}

func TestPing_FallsBackToSelect(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, New(db).Ping(context.Background()))
	assert.Equal(t, []string{"SELECT 1"}, db.sqls())
}
