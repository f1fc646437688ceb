package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"consulting-backend/internal/domains/record"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

// Repository is the Postgres implementation of record.Repository. SQL is
// generated from T's `db` tags; every identifier is quoted.
type Repository[T any] struct {
	db    Querier
	table record.Table
	cols  []string
}

func NewRepository[T any](db Querier, table record.Table) *Repository[T] {
	return &Repository[T]{db: db, table: table, cols: record.ColumnNames[T]()}
}

func (r *Repository[T]) List(ctx context.Context, opts record.ListOptions) ([]*T, error) {
	where, args := whereClause(opts.Filters, 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", r.selectList(), r.name(), where)
	if len(r.table.OrderBy) > 0 {
		terms := make([]string, len(r.table.OrderBy))
		for i, o := range r.table.OrderBy {
			terms[i] = pq.QuoteIdentifier(o.Column)
			if o.Desc {
				terms[i] += " DESC"
			}
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}
	if limit := r.table.Limit(opts.Limit); limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.Name, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.table.Name, err)
	}
	return records, nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, record.Eq("id", id))
}

func (r *Repository[T]) FindOne(ctx context.Context, filters ...record.Filter) (*T, error) {
	where, args := whereClause(filters, 1)
	sql := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", r.selectList(), r.name(), where)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.table.Name, err)
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.table.Name, err)
	}
	return rec, nil
}

func (r *Repository[T]) Create(ctx context.Context, rec *T) error {
	quoted := make([]string, len(r.cols))
	params := make([]string, len(r.cols))
	for i, c := range r.cols {
		quoted[i] = pq.QuoteIdentifier(c)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.name(), strings.Join(quoted, ", "), strings.Join(params, ", "))

	if _, err := r.db.Exec(ctx, sql, record.Args(rec, r.cols)...); err != nil {
		return r.wrap("insert", err)
	}
	return nil
}

func (r *Repository[T]) Update(ctx context.Context, rec *T) error {
	var (
		sets []string
		cols []string
	)
	for _, c := range r.cols {
		if c == "id" {
			continue
		}
		cols = append(cols, c)
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), len(cols)))
	}
	args := append(record.Args(rec, cols), record.Args(rec, []string{"id"})...)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		r.name(), strings.Join(sets, ", "), pq.QuoteIdentifier("id"), len(args))

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return r.wrap("update", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.name(), pq.QuoteIdentifier("id"))

	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return r.wrap("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Count(ctx context.Context, filters ...record.Filter) (int, error) {
	where, args := whereClause(filters, 1)
	sql := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.name(), where)

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.Name, err)
	}
	return n, nil
}

// Increment is a single UPDATE ... RETURNING, so concurrent callers never
// lose an update.
func (r *Repository[T]) Increment(ctx context.Context, id, column string) (int, error) {
	col := pq.QuoteIdentifier(column)
	sql := fmt.Sprintf("UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s",
		r.name(), col, col, pq.QuoteIdentifier("id"), col)

	var n int
	err := r.db.QueryRow(ctx, sql, id).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, record.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment %s.%s: %w", r.table.Name, column, err)
	}
	return n, nil
}

func (r *Repository[T]) name() string {
	return pq.QuoteIdentifier(r.table.Name)
}

func (r *Repository[T]) selectList() string {
	quoted := make([]string, len(r.cols))
	for i, c := range r.cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}

func (r *Repository[T]) wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %s: %w", op, r.table.Name, record.ErrConflict)
	}
	return fmt.Errorf("%s %s: %w", op, r.table.Name, err)
}

// whereClause renders filters as AND-ed equality predicates with
// placeholders numbered from start.
func whereClause(filters []record.Filter, start int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	terms := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		col := pq.QuoteIdentifier(f.Column)
		if f.Fold {
			terms[i] = fmt.Sprintf("LOWER(%s) = LOWER($%d)", col, start+i)
		} else {
			terms[i] = fmt.Sprintf("%s = $%d", col, start+i)
		}
		args[i] = f.Value
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}
