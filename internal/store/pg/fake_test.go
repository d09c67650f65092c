package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	kind string // exec | query | queryrow
	sql  string
	args []any
}

// fakeDB es un DBTX en memoria que registra cada sentencia y responde con
// los handlers configurados.
type fakeDB struct {
	calls []call

	onExec     func(n int, sql string, args []any) (pgconn.CommandTag, error)
	onQuery    func(n int, sql string, args []any) ([][]any, error)
	onQueryRow func(n int, sql string, args []any) ([]any, error)

	nExec, nQuery, nQueryRow int
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, call{"exec", sql, args})
	n := f.nExec
	f.nExec++
	if f.onExec == nil {
		return pgconn.NewCommandTag("OK 0"), nil
	}
	return f.onExec(n, sql, args)
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, call{"query", sql, args})
	n := f.nQuery
	f.nQuery++
	if f.onQuery == nil {
		return &fakeRows{}, nil
	}
	data, err := f.onQuery(n, sql, args)
	if err != nil {
		return nil, err
	}
	return &fakeRows{data: data}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, call{"queryrow", sql, args})
	n := f.nQueryRow
	f.nQueryRow++
	if f.onQueryRow == nil {
		return fakeRow{err: pgx.ErrNoRows}
	}
	vals, err := f.onQueryRow(n, sql, args)
	return fakeRow{vals: vals, err: err}
}

func (f *fakeDB) sqls() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = strings.Join(strings.Fields(c.sql), " ")
	}
	return out
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

type fakeRows struct {
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.data[r.pos-1]) }

func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("fake: %d dest for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = vals[i].(int64)
		case *string:
			*p = vals[i].(string)
		case **string:
			if vals[i] == nil {
				*p = nil
				continue
			}
			s := vals[i].(string)
			*p = &s
		default:
			return fmt.Errorf("fake: unsupported dest %T", d)
		}
	}
	return nil
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "fake " + code}
}

func tag(s string) pgconn.CommandTag { return pgconn.NewCommandTag(s) }

func strp(s string) *string { return &s }
