package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/filestore"
)

type note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Hits      int       `json:"hits" db:"hits"`
	Public    bool      `json:"public" db:"public"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (n *note) GetID() string   { return n.ID }
func (n *note) SetID(id string) { n.ID = id }

func (n *note) Normalize() { n.Title = strings.TrimSpace(n.Title) }

func (n *note) Validate() error {
	if n.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

func (n *note) BeforeCreate(now time.Time) {
	n.CreatedAt = now
	n.UpdatedAt = now
}

func (n *note) BeforeUpdate(now time.Time) { n.UpdatedAt = now }

var notes = record.Table{Name: "notes", OrderBy: []record.Order{{Column: "created_at", Desc: true}}}

func newNoteService(t *testing.T) *record.Service[note, *note] {
	t.Helper()
	store, err := filestore.New[note](t.TempDir(), notes)
	require.NoError(t, err)
	return record.NewService[note, *note]("notes", store)
}

func TestService_CreateAssignsIDAndTimestamps(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := newNoteService(t).WithClock(func() time.Time { return fixed })

	n := &note{Title: "  hello  "}
	require.NoError(t, svc.Create(context.Background(), n))

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "hello", n.Title)
	assert.Equal(t, fixed, n.CreatedAt)
	assert.Equal(t, fixed, n.UpdatedAt)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	svc := newNoteService(t)

	err := svc.Create(context.Background(), &note{Title: "   "})
	require.Error(t, err)
	assert.True(t, record.IsValidation(err))

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_UpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	svc := newNoteService(t)
	n := &note{Title: "first"}
	require.NoError(t, svc.Create(ctx, n))

	updated, err := svc.Update(ctx, n.ID, func(rec *note) error {
		rec.ID = "hijack"
		rec.Title = "second"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, n.ID, updated.ID)
	assert.Equal(t, "second", updated.Title)

	_, err = svc.Get(ctx, "hijack")
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestService_UpdateMissing(t *testing.T) {
	_, err := newNoteService(t).Update(context.Background(), "nope", func(*note) error { return nil })
	assert.ErrorIs(t, err, record.ErrNotFound)
}

// A read-then-write counter loses updates when two callers interleave;
// Increment does not.
func TestService_ReadModifyWriteLosesUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newNoteService(t)
	n := &note{Title: "counter"}
	require.NoError(t, svc.Create(ctx, n))

	first, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	second, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)

	first.Hits++
	require.NoError(t, svc.Save(ctx, first))
	second.Hits++
	require.NoError(t, svc.Save(ctx, second))

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Hits, "second write overwrote the first")

	hits, err := svc.Increment(ctx, n.ID, "hits")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestTable_Limit(t *testing.T) {
	capped := record.Table{Take: 50}
	assert.Equal(t, 10, capped.Limit(10))
	assert.Equal(t, 50, capped.Limit(0))
	assert.Equal(t, 50, capped.Limit(500))

	open := record.Table{}
	assert.Equal(t, 0, open.Limit(0))
	assert.Equal(t, 7, open.Limit(7))
}

func TestCompare(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, record.Compare(nil, "a"))
	assert.Equal(t, 1, record.Compare(2, 1))
	assert.Equal(t, 0, record.Compare(int64(3), 3))
	assert.Equal(t, -1, record.Compare(1.5, 2))
	assert.Equal(t, -1, record.Compare(early, early.Add(time.Second)))
	assert.Equal(t, 1, record.Compare(true, false))
	assert.Equal(t, -1, record.Compare("apple", "banana"))
}
