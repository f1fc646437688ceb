package record

import "context"

// Filter is an equality predicate on a column. Fold compares strings
// case-insensitively.
type Filter struct {
	Column string
	Value  any
	Fold   bool
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

func EqFold(column, value string) Filter {
	return Filter{Column: column, Value: value, Fold: true}
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// ListOptions narrows a List call. Limit 0 falls back to the table's Take cap.
type ListOptions struct {
	Filters []Filter
	Limit   int
}

// Table describes where and how a resource is stored.
type Table struct {
	Name    string   // SQL table name
	File    string   // JSON file name in degraded mode, defaults to Name + ".json"
	OrderBy []Order  // default list ordering
	Take    int      // hard cap on list size, 0 = unlimited
	Unique  []string // columns that must be unique (case-insensitive for strings)
}

// FileName returns the JSON file used when no database is configured.
func (t Table) FileName() string {
	if t.File != "" {
		return t.File
	}
	return t.Name + ".json"
}

// Limit resolves the effective row cap for a list request.
func (t Table) Limit(requested int) int {
	switch {
	case requested > 0 && (t.Take == 0 || requested < t.Take):
		return requested
	default:
		return t.Take
	}
}

// Repository is the uniform persistence contract shared by the Postgres
// store and the JSON-file store.
type Repository[T any] interface {
	List(ctx context.Context, opts ListOptions) ([]*T, error)
	Get(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, filters ...Filter) (*T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filters ...Filter) (int, error)

	// Increment adds one to an integer column in a single step and returns
	// the new value.
	Increment(ctx context.Context, id, column string) (int, error)
}
