// Package filestore persists records as JSON arrays on disk. It backs every
// resource when no DATABASE_URL is configured.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sync"

	"consulting-backend/internal/domains/record"
)

// Store keeps all records of one resource in <dir>/<table file>. Every
// operation re-reads the file under the lock, so callers always get fresh
// copies they are free to mutate.
type Store[T any] struct {
	mu    sync.Mutex
	path  string
	table record.Table
}

func New[T any](dir string, table record.Table) (*Store[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store[T]{path: filepath.Join(dir, table.FileName()), table: table}, nil
}

// Path is the backing file.
func (s *Store[T]) Path() string { return s.path }

func (s *Store[T]) List(ctx context.Context, opts record.ListOptions) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(all))
	for _, rec := range all {
		if matchAll(rec, opts.Filters) {
			out = append(out, rec)
		}
	}
	if len(s.table.OrderBy) > 0 {
		slices.SortStableFunc(out, func(a, b *T) int {
			for _, o := range s.table.OrderBy {
				va, _ := record.Value(a, o.Column)
				vb, _ := record.Value(b, o.Column)
				c := record.Compare(va, vb)
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}
	if limit := s.table.Limit(opts.Limit); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.FindOne(ctx, record.Eq("id", id))
}

func (s *Store[T]) FindOne(ctx context.Context, filters ...record.Filter) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range all {
		if matchAll(rec, filters) {
			return rec, nil
		}
	}
	return nil, record.ErrNotFound
}

func (s *Store[T]) Create(ctx context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	if err := s.checkUnique(all, rec, -1); err != nil {
		return err
	}

	cp, err := clone(rec)
	if err != nil {
		return err
	}
	return s.save(append(all, cp))
}

func (s *Store[T]) Update(ctx context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(all, idOf(rec))
	if i < 0 {
		return record.ErrNotFound
	}
	if err := s.checkUnique(all, rec, i); err != nil {
		return err
	}

	cp, err := clone(rec)
	if err != nil {
		return err
	}
	all[i] = cp
	return s.save(all)
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return record.ErrNotFound
	}
	return s.save(slices.Delete(all, i, i+1))
}

func (s *Store[T]) Count(ctx context.Context, filters ...record.Filter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, rec := range all {
		if matchAll(rec, filters) {
			n++
		}
	}
	return n, nil
}

// Increment bumps an integer column while holding the store lock.
func (s *Store[T]) Increment(ctx context.Context, id, column string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return 0, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return 0, record.ErrNotFound
	}

	field, err := intField(all[i], column)
	if err != nil {
		return 0, err
	}
	field.SetInt(field.Int() + 1)

	if err := s.save(all); err != nil {
		return 0, err
	}
	return int(field.Int()), nil
}

func (s *Store[T]) load() ([]*T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var all []*T
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return all, nil
}

// save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial file.
func (s *Store[T]) save(all []*T) error {
	if all == nil {
		all = []*T{}
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// checkUnique rejects rec if the id or a unique column (compared
// case-insensitively) collides with another record. skip is rec's own index.
func (s *Store[T]) checkUnique(all []*T, rec *T, skip int) error {
	id := idOf(rec)
	for i, other := range all {
		if i == skip {
			continue
		}
		if skip < 0 && idOf(other) == id {
			return record.ErrConflict
		}
		for _, col := range s.table.Unique {
			v, _ := record.Value(rec, col)
			if v == nil {
				continue
			}
			f := record.Filter{Column: col, Value: v}
			if _, isString := v.(string); isString {
				f.Fold = true
			}
			if record.Matches(other, f) {
				return record.ErrConflict
			}
		}
	}
	return nil
}

func matchAll(rec any, filters []record.Filter) bool {
	for _, f := range filters {
		if !record.Matches(rec, f) {
			return false
		}
	}
	return true
}

func indexOf[T any](all []*T, id string) int {
	return slices.IndexFunc(all, func(rec *T) bool { return idOf(rec) == id })
}

func idOf(rec any) string {
	v, _ := record.Value(rec, "id")
	s, _ := v.(string)
	return s
}

func clone[T any](rec *T) (*T, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("clone record: %w", err)
	}
	cp := new(T)
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, fmt.Errorf("clone record: %w", err)
	}
	return cp, nil
}

func intField[T any](rec *T, column string) (reflect.Value, error) {
	for _, c := range record.Columns[T]() {
		if c.Name != column {
			continue
		}
		f := reflect.ValueOf(rec).Elem().Field(c.Index)
		switch f.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			return f, nil
		}
		return reflect.Value{}, fmt.Errorf("column %q is not an integer", column)
	}
	return reflect.Value{}, fmt.Errorf("unknown column %q", column)
}
