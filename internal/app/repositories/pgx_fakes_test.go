package repositories

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeConn stands in for *pgxpool.Pool. Every statement is recorded, and
// queries are answered by the handler set by the test.
type fakeConn struct {
	mu         sync.Mutex
	statements []statement
	onQuery    func(sql string, args []any) (pgx.Rows, error)
	onQueryRow func(sql string, args []any) pgx.Row
	execErr    error
	begins     int
	commits    int
	rollbacks  int
}

type statement struct {
	sql  string
	args []any
	inTx bool
}

func (c *fakeConn) record(sql string, args []any, inTx bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = append(c.statements, statement{sql: sql, args: args, inTx: inTx})
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.record(sql, args, false)
	return pgconn.CommandTag{}, c.execErr
}

func (c *fakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.record(sql, args, false)
	return c.onQuery(sql, args)
}

func (c *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	c.record(sql, args, false)
	return c.onQueryRow(sql, args)
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	c.mu.Lock()
	c.begins++
	c.mu.Unlock()
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) executed() []statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]statement{}, c.statements...)
}

// fakeTx routes statements back to its conn. Methods the repositories never
// call are left to the embedded nil interface.
type fakeTx struct {
	pgx.Tx
	conn *fakeConn
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.conn.record(sql, args, true)
	return pgconn.CommandTag{}, t.conn.execErr
}

func (t *fakeTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.conn.record(sql, args, true)
	return t.conn.onQuery(sql, args)
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.conn.record(sql, args, true)
	return t.conn.onQueryRow(sql, args)
}

func (t *fakeTx) Commit(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.conn.mu.Lock()
	defer t.conn.mu.Unlock()
	t.conn.rollbacks++
	return nil
}

// fakeRows serves fixed rows; err is reported by Err once iteration ends.
type fakeRows struct {
	pgx.Rows
	data   [][]any
	pos    int
	err    error
	closed bool
}

func rowsOf(data ...[]any) *fakeRows { return &fakeRows{data: data} }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return scanInto(r.data[r.pos-1], dest) }
func (r *fakeRows) Close()                 { r.closed = true }
func (r *fakeRows) Err() error             { return r.err }

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.values, dest)
}

// scanInto copies values into dest pointers whose element type matches, as
// pgx does for already-decoded values. nil leaves the zero value.
func scanInto(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		if !v.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: column %d: cannot assign %T to %s", i, values[i], target.Type())
		}
		target.Set(v)
	}
	return nil
}
