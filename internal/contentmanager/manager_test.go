package contentmanager_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	cm "consulting-backend/internal/contentmanager"
)

// fakeClient is an in-memory record API. Deletes of ids in failDelete fail.
type fakeClient struct {
	mu         sync.Mutex
	rows       []cm.Record
	nextID     int
	failDelete map[string]bool
	failCreate bool
	deletes    []string
	lists      int
}

func newFakeClient(rows ...cm.Record) *fakeClient {
	return &fakeClient{rows: rows, failDelete: map[string]bool{}}
}

func (f *fakeClient) List(context.Context, string) ([]cm.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]cm.Record, len(f.rows))
	for i, r := range f.rows {
		out[i] = r.Clone()
	}
	return out, nil
}

func (f *fakeClient) Create(_ context.Context, _ string, values cm.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return &cm.APIError{Status: 500, Message: "boom"}
	}
	f.nextID++
	rec := values.Clone()
	rec["id"] = fmt.Sprintf("new-%d", f.nextID)
	f.rows = append(f.rows, rec)
	return nil
}

func (f *fakeClient) Update(_ context.Context, _ string, id string, values cm.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID() == id {
			for k, v := range values {
				r[k] = v
			}
			return nil
		}
	}
	return &cm.APIError{Status: 404, Message: "not found"}
}

func (f *fakeClient) Delete(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.failDelete[id] {
		return &cm.APIError{Status: 500, Message: "boom"}
	}
	for i, r := range f.rows {
		if r.ID() == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return &cm.APIError{Status: 404, Message: "not found"}
}

var leadSchema = cm.Schema{
	cm.Text("name", "Name").Require(),
	cm.Email("email", "Email").Require(),
	cm.Select("status", "Status", cm.Choices("new", "done")...),
	cm.Number("score", "Score"),
}

type notes struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notes) Notify(m string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
}

func newManager(t *testing.T, client cm.Client, n cm.Notifier) *cm.Manager {
	t.Helper()
	m := cm.NewManager(cm.Config{
		Title:    "Leads",
		Endpoint: "/api/admin/contact",
		Schema:   leadSchema,
		Display:  []string{"name", "email"},
	}, client, n)
	require.Equal(t, cm.StateIdle, m.State())
	require.NoError(t, m.Load(context.Background()))
	require.Equal(t, cm.StateLoaded, m.State())
	return m
}

func ids(rows []cm.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}

func TestExportCSV_QuotesEveryField(t *testing.T) {
	client := newFakeClient(
		cm.Record{"id": "1", "name": "Jo,e", "email": "j@x.com"},
		cm.Record{"id": "2", "name": "Ann", "email": "a@y.com"},
		cm.Record{"id": "3", "name": "Zed", "email": "z@z.org"},
	)
	m := newManager(t, client, nil)
	m.Search(".com")

	var buf bytes.Buffer
	require.NoError(t, m.ExportCSV(&buf))

	assert.Equal(t,
		"\"Name\",\"Email\"\r\n\"Jo,e\",\"j@x.com\"\r\n\"Ann\",\"a@y.com\"\r\n",
		buf.String())
}

func TestWriteCSV_EscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cm.WriteCSV(&buf, []string{"a"}, [][]string{{`say "hi"`}}))
	assert.Equal(t, "\"a\"\r\n\"say \"\"hi\"\"\"\r\n", buf.String())
}

func TestExportXLSX_WritesRows(t *testing.T) {
	client := newFakeClient(cm.Record{"id": "1", "name": "Jo,e", "email": "j@x.com"})
	m := newManager(t, client, nil)

	var buf bytes.Buffer
	require.NoError(t, m.ExportXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Email"}, {"Jo,e", "j@x.com"}}, rows)
}

func TestBulkDelete_PartialFailureReportsAggregateAndClearsSelection(t *testing.T) {
	client := newFakeClient(
		cm.Record{"id": "a", "name": "A"},
		cm.Record{"id": "b", "name": "B"},
		cm.Record{"id": "c", "name": "C"},
		cm.Record{"id": "d", "name": "D"},
	)
	client.failDelete["b"] = true
	n := &notes{}
	m := newManager(t, client, n)

	m.Toggle("a")
	m.Toggle("b")
	m.Toggle("c")
	listsBefore := client.lists

	err := m.BulkDelete(context.Background())

	assert.ErrorIs(t, err, cm.ErrBulkDelete)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, client.deletes)
	assert.Empty(t, m.Selected())
	assert.Equal(t, listsBefore+1, client.lists)
	assert.Equal(t, cm.StateLoaded, m.State())
	assert.ElementsMatch(t, []string{"b", "d"}, ids(m.Rows()))
	require.Len(t, n.msgs, 1)
	assert.NotContains(t, n.msgs[0], "b")
}

func TestSortBy_NewColumnStartsDescendingThenToggles(t *testing.T) {
	client := newFakeClient(
		cm.Record{"id": "1", "name": "Bea", "score": float64(2)},
		cm.Record{"id": "2", "name": "Al", "score": float64(10)},
		cm.Record{"id": "3", "name": "Cy", "score": float64(1)},
	)
	m := newManager(t, client, nil)

	m.SortBy("score")
	assert.Equal(t, []string{"2", "1", "3"}, ids(m.Rows()))

	m.SortBy("score")
	assert.Equal(t, []string{"3", "1", "2"}, ids(m.Rows()))

	m.SortBy("name")
	key, desc := m.Sort()
	assert.Equal(t, "name", key)
	assert.True(t, desc)
	assert.Equal(t, []string{"3", "1", "2"}, ids(m.Rows()))
}

func TestSearch_CaseInsensitiveOverDisplayFields(t *testing.T) {
	client := newFakeClient(
		cm.Record{"id": "1", "name": "Alice", "email": "alice@firm.vn", "status": "MATCH"},
		cm.Record{"id": "2", "name": "Bob", "email": "BOB@FIRM.VN"},
		cm.Record{"id": "3", "name": "Carol", "email": "carol@other.com"},
	)
	m := newManager(t, client, nil)

	m.Search("  Firm.VN ")
	assert.Equal(t, []string{"1", "2"}, ids(m.Rows()))

	// status is not a display field
	m.Search("match")
	assert.Empty(t, m.Rows())

	m.Search("")
	assert.Len(t, m.Rows(), 3)
}

func TestSelectAll_TogglesFilteredRows(t *testing.T) {
	client := newFakeClient(
		cm.Record{"id": "1", "name": "Alice"},
		cm.Record{"id": "2", "name": "Alan"},
		cm.Record{"id": "3", "name": "Bob"},
	)
	m := newManager(t, client, nil)

	m.Search("al")
	m.SelectAll()
	assert.Equal(t, []string{"1", "2"}, m.Selected())

	m.Toggle("3")
	m.SelectAll()
	assert.Equal(t, []string{"3"}, m.Selected())
}

func TestFormLifecycle(t *testing.T) {
	client := newFakeClient(cm.Record{"id": "1", "name": "Alice", "email": "a@x.com"})
	m := newManager(t, client, nil)
	ctx := context.Background()

	assert.ErrorIs(t, m.Submit(ctx), cm.ErrInvalidState)

	require.NoError(t, m.OpenCreate())
	assert.Equal(t, cm.StateFormOpen, m.State())
	assert.ErrorIs(t, m.Load(ctx), cm.ErrInvalidState)

	require.NoError(t, m.Set("name", "Bob"))
	require.NoError(t, m.Set("email", "not-an-email"))
	err := m.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, cm.StateFormOpen, m.State())

	require.NoError(t, m.Set("email", "bob@x.com"))
	require.NoError(t, m.Set("score", "7"))
	require.NoError(t, m.Submit(ctx))
	assert.Equal(t, cm.StateLoaded, m.State())
	require.Len(t, m.Rows(), 2)
	assert.Equal(t, float64(7), client.rows[1]["score"])

	require.NoError(t, m.OpenEdit("1"))
	require.NoError(t, m.Cancel())
	assert.Equal(t, cm.StateLoaded, m.State())
	assert.ErrorIs(t, m.OpenEdit("missing"), cm.ErrUnknownRow)
}

func TestSubmit_FailedRequestNotifiesAndKeepsFormOpen(t *testing.T) {
	client := newFakeClient()
	client.failCreate = true
	n := &notes{}
	m := newManager(t, client, n)

	require.NoError(t, m.OpenCreate())
	require.NoError(t, m.Set("name", "Bob"))
	require.NoError(t, m.Set("email", "bob@x.com"))

	err := m.Submit(context.Background())
	var apiErr *cm.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, cm.StateFormOpen, m.State())
	assert.Len(t, n.msgs, 1)
}

func TestNoCreate_OnlyEditsExistingRows(t *testing.T) {
	client := newFakeClient(cm.Record{"id": "1", "name": "Alice", "email": "a@x.com"})
	m := cm.NewManager(cm.Config{
		Title:    "Applications",
		Endpoint: "/api/applications",
		Schema:   leadSchema,
		Display:  []string{"name"},
		NoCreate: true,
	}, client, nil)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	assert.ErrorIs(t, m.OpenCreate(), cm.ErrInvalidState)
	assert.Equal(t, cm.StateLoaded, m.State())

	require.NoError(t, m.OpenEdit("1"))
	require.NoError(t, m.Set("name", "Alicia"))
	require.NoError(t, m.Submit(ctx))
	assert.Equal(t, "Alicia", client.rows[0]["name"])
}
