package record

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Column maps a `db` struct tag to its field.
type Column struct {
	Name  string
	Index int
}

var columnCache sync.Map // reflect.Type -> []Column

// Columns lists the `db`-tagged fields of T in declaration order.
func Columns[T any]() []Column {
	return columnsOf(reflect.TypeFor[T]())
}

// ColumnNames returns just the column names of T.
func ColumnNames[T any]() []string {
	cols := Columns[T]()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func columnsOf(t reflect.Type) []Column {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]Column)
	}

	var cols []Column
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, Column{Name: name, Index: i})
	}
	columnCache.Store(t, cols)
	return cols
}

// Value returns the raw field value for column. Pointer fields are
// dereferenced; a nil pointer yields nil.
func Value(rec any, column string) (any, bool) {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	for _, c := range columnsOf(v.Type()) {
		if c.Name != column {
			continue
		}
		f := v.Field(c.Index)
		if f.Kind() == reflect.Pointer {
			if f.IsNil() {
				return nil, true
			}
			f = f.Elem()
		}
		return f.Interface(), true
	}
	return nil, false
}

// Args returns the field values of rec for the given columns, as bind
// arguments (pointers left intact so NULLs survive).
func Args(rec any, columns []string) []any {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	index := make(map[string]int)
	for _, c := range columnsOf(v.Type()) {
		index[c.Name] = c.Index
	}
	args := make([]any, len(columns))
	for i, name := range columns {
		args[i] = v.Field(index[name]).Interface()
	}
	return args
}

// Matches evaluates f against rec in memory.
func Matches(rec any, f Filter) bool {
	got, ok := Value(rec, f.Column)
	if !ok {
		return false
	}
	if f.Fold {
		gv, wv := reflect.ValueOf(got), reflect.ValueOf(f.Value)
		return gv.Kind() == reflect.String && wv.Kind() == reflect.String &&
			strings.EqualFold(gv.String(), wv.String())
	}
	return Compare(got, f.Value) == 0
}

// Compare orders two column values. nil sorts first; values of different
// kinds compare by their string form.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isInt(va) && isInt(vb):
		return cmp3(va.Int(), vb.Int())
	case isNumber(va) && isNumber(vb):
		return cmp3(asFloat(va), asFloat(vb))
	case va.Kind() == reflect.Bool && vb.Kind() == reflect.Bool:
		return cmp3(boolInt(va.Bool()), boolInt(vb.Bool()))
	case va.Kind() == reflect.String && vb.Kind() == reflect.String:
		return strings.Compare(va.String(), vb.String())
	}
	return strings.Compare(reflectString(va), reflectString(vb))
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func asFloat(v reflect.Value) float64 {
	if isInt(v) {
		return float64(v.Int())
	}
	return v.Float()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func reflectString(v reflect.Value) string {
	return fmt.Sprint(v.Interface())
}

type ordered interface {
	~int | ~int64 | ~float64
}

func cmp3[N ordered](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
