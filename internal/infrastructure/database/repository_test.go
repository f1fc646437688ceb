package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/record"
)

type widget struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Hits int    `db:"hits"`
	Note string // not a column
}

var widgetTable = record.Table{
	Name:    "widgets",
	OrderBy: []record.Order{{Column: "name", Desc: true}},
	Take:    50,
}

// querier records every statement. Query always fails so List and FindOne
// stop before scanning.
type querier struct {
	sql     []string
	args    [][]any
	tag     pgconn.CommandTag
	execErr error
	row     row
}

type row struct {
	n   int
	err error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.n
	return nil
}

var errStop = errors.New("stop")

func (q *querier) record(sql string, args []any) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
}

func (q *querier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return q.tag, q.execErr
}

func (q *querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	return nil, errStop
}

func (q *querier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	return q.row
}

func TestWhereClause_NumbersPlaceholdersFromStart(t *testing.T) {
	where, args := whereClause([]record.Filter{record.Eq("name", "a"), record.EqFold("email", "B@x.com")}, 3)
	assert.Equal(t, ` WHERE "name" = $3 AND LOWER("email") = LOWER($4)`, where)
	assert.Equal(t, []any{"a", "B@x.com"}, args)

	where, args = whereClause(nil, 1)
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestRepository_List(t *testing.T) {
	q := &querier{}
	repo := NewRepository[widget](q, widgetTable)

	_, err := repo.List(context.Background(), record.ListOptions{Filters: []record.Filter{record.Eq("hits", 2)}, Limit: 10})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, `SELECT "id", "name", "hits" FROM "widgets" WHERE "hits" = $1 ORDER BY "name" DESC LIMIT 10`, q.sql[0])
	assert.Equal(t, []any{2}, q.args[0])

	// no limit requested falls back to the table cap
	_, _ = repo.List(context.Background(), record.ListOptions{})
	assert.Equal(t, `SELECT "id", "name", "hits" FROM "widgets" ORDER BY "name" DESC LIMIT 50`, q.sql[1])
}

func TestRepository_CreateMapsUniqueViolation(t *testing.T) {
	q := &querier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewRepository[widget](q, widgetTable)

	require.NoError(t, repo.Create(context.Background(), &widget{ID: "w1", Name: "gear", Hits: 0}))
	assert.Equal(t, `INSERT INTO "widgets" ("id", "name", "hits") VALUES ($1, $2, $3)`, q.sql[0])
	assert.Equal(t, []any{"w1", "gear", 0}, q.args[0])

	q.execErr = &pgconn.PgError{Code: uniqueViolation}
	assert.ErrorIs(t, repo.Create(context.Background(), &widget{ID: "w1"}), record.ErrConflict)
}

func TestRepository_UpdatePutsIDLast(t *testing.T) {
	q := &querier{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewRepository[widget](q, widgetTable)

	require.NoError(t, repo.Update(context.Background(), &widget{ID: "w1", Name: "gear", Hits: 3}))
	assert.Equal(t, `UPDATE "widgets" SET "name" = $1, "hits" = $2 WHERE "id" = $3`, q.sql[0])
	assert.Equal(t, []any{"gear", 3, "w1"}, q.args[0])

	q.tag = pgconn.NewCommandTag("UPDATE 0")
	assert.ErrorIs(t, repo.Update(context.Background(), &widget{ID: "missing"}), record.ErrNotFound)
}

func TestRepository_IncrementIsSingleStatement(t *testing.T) {
	q := &querier{row: row{n: 4}}
	repo := NewRepository[widget](q, widgetTable)

	n, err := repo.Increment(context.Background(), "w1", "hits")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.Len(t, q.sql, 1)
	assert.Equal(t, `UPDATE "widgets" SET "hits" = "hits" + 1 WHERE "id" = $1 RETURNING "hits"`, q.sql[0])
	assert.Equal(t, []any{"w1"}, q.args[0])

	q.row = row{err: pgx.ErrNoRows}
	_, err = repo.Increment(context.Background(), "missing", "hits")
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestRepository_CountAndDelete(t *testing.T) {
	q := &querier{row: row{n: 7}, tag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewRepository[widget](q, widgetTable)

	n, err := repo.Count(context.Background(), record.EqFold("name", "Gear"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, `SELECT COUNT(*) FROM "widgets" WHERE LOWER("name") = LOWER($1)`, q.sql[0])

	require.NoError(t, repo.Delete(context.Background(), "w1"))
	assert.Equal(t, `DELETE FROM "widgets" WHERE "id" = $1`, q.sql[1])

	q.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, repo.Delete(context.Background(), "w1"), record.ErrNotFound)
}
