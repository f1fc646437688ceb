package contentmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"consulting-backend/internal/domains/record"
)

type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateFormOpen State = "formOpen"
	StateSaving   State = "saving"
)

var (
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrUnknownRow   = errors.New("no row with that id")
	ErrBulkDelete   = errors.New("some deletions failed")
)

// Notifier surfaces failed requests to the operator.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type logNotifier struct{ title string }

func (n logNotifier) Notify(message string) {
	log.Warn().Str("manager", n.title).Msg(message)
}

// Config binds a Manager to one resource. Writes go to Endpoint; the list
// is read from ListEndpoint when set, so admin views can see inactive rows.
type Config struct {
	Title        string   `json:"title"`
	Endpoint     string   `json:"endpoint"`
	ListEndpoint string   `json:"listEndpoint,omitempty"`
	Schema       Schema   `json:"schema"`
	Display      []string `json:"display"`
	// NoCreate hides the create form for resources that are only created
	// elsewhere (e.g. applications through the careers form).
	NoCreate bool `json:"noCreate,omitempty"`
}

func (c Config) listEndpoint() string {
	if c.ListEndpoint != "" {
		return c.ListEndpoint
	}
	return c.Endpoint
}

// Manager holds the table and form state of one admin tab. Every mutation
// reloads the full list from the API.
type Manager struct {
	cfg      Config
	client   Client
	notifier Notifier

	mu        sync.Mutex
	state     State
	records   []Record
	query     string
	sortKey   string
	sortDesc  bool
	selected  map[string]bool
	form      Record
	editingID string
}

// NewManager starts in StateIdle. A nil notifier logs.
func NewManager(cfg Config, client Client, notifier Notifier) *Manager {
	if notifier == nil {
		notifier = logNotifier{title: cfg.Title}
	}
	return &Manager{
		cfg:      cfg,
		client:   client,
		notifier: notifier,
		state:    StateIdle,
		selected: make(map[string]bool),
	}
}

func (m *Manager) Title() string { return m.cfg.Title }

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Load fetches the full list. Allowed from idle and loaded.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateIdle && m.state != StateLoaded {
		m.mu.Unlock()
		return ErrInvalidState
	}
	m.state = StateLoading
	m.mu.Unlock()

	return m.reload(ctx)
}

func (m *Manager) reload(ctx context.Context) error {
	records, err := m.client.List(ctx, m.cfg.listEndpoint())

	if err != nil {
		m.mu.Lock()
		m.state = StateLoaded
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Failed to load %s: %v", m.cfg.Title, err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateLoaded
	m.records = records

	// Drop selections for rows that no longer exist.
	live := make(map[string]bool, len(records))
	for _, r := range records {
		live[r.ID()] = true
	}
	for id := range m.selected {
		if !live[id] {
			delete(m.selected, id)
		}
	}
	return nil
}

// Search sets the case-insensitive substring filter over display fields.
func (m *Manager) Search(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = strings.ToLower(strings.TrimSpace(q))
}

// SortBy sorts on key, toggling direction when key is already the sort
// column. A new column starts descending.
func (m *Manager) SortBy(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sortKey == key {
		m.sortDesc = !m.sortDesc
		return
	}
	m.sortKey = key
	m.sortDesc = true
}

// Sort reports the current sort column and direction.
func (m *Manager) Sort() (key string, desc bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortKey, m.sortDesc
}

// Rows returns the filtered and sorted records.
func (m *Manager) Rows() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows()
}

func (m *Manager) rows() []Record {
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if m.matches(r) {
			out = append(out, r)
		}
	}
	if m.sortKey != "" {
		key, desc := m.sortKey, m.sortDesc
		slices.SortStableFunc(out, func(a, b Record) int {
			c := record.Compare(a[key], b[key])
			if desc {
				return -c
			}
			return c
		})
	}
	return out
}

func (m *Manager) matches(r Record) bool {
	if m.query == "" {
		return true
	}
	for _, key := range m.cfg.Display {
		if strings.Contains(strings.ToLower(r.Text(key)), m.query) {
			return true
		}
	}
	return false
}

// Toggle flips the selection of one row.
func (m *Manager) Toggle(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected[id] {
		delete(m.selected, id)
		return
	}
	m.selected[id] = true
}

// SelectAll selects every filtered row, or clears them when all are
// already selected.
func (m *Manager) SelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows()
	all := len(rows) > 0
	for _, r := range rows {
		if !m.selected[r.ID()] {
			all = false
			break
		}
	}
	for _, r := range rows {
		if all {
			delete(m.selected, r.ID())
		} else {
			m.selected[r.ID()] = true
		}
	}
}

// Selected returns the selected ids in sorted order.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BulkDelete issues one DELETE per selected id concurrently and waits for
// all of them. The selection is cleared and the list reloaded whatever the
// outcome; failures are reported only in aggregate.
func (m *Manager) BulkDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateLoaded {
		m.mu.Unlock()
		return ErrInvalidState
	}
	ids := make([]string, 0, len(m.selected))
	for id := range m.selected {
		ids = append(ids, id)
	}
	m.selected = make(map[string]bool)
	m.state = StateLoading
	m.mu.Unlock()

	var failed atomic.Int32
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			if err := m.client.Delete(ctx, m.cfg.Endpoint, id); err != nil {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	var deleteErr error
	if failed.Load() > 0 {
		deleteErr = ErrBulkDelete
		m.notifier.Notify(fmt.Sprintf("Failed to delete some %s", m.cfg.Title))
	}

	if err := m.reload(ctx); err != nil {
		return errors.Join(deleteErr, err)
	}
	return deleteErr
}

// OpenCreate opens an empty form.
func (m *Manager) OpenCreate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateLoaded || m.cfg.NoCreate {
		return ErrInvalidState
	}
	m.form = Record{}
	m.editingID = ""
	m.state = StateFormOpen
	return nil
}

// OpenEdit opens the form prefilled with the row's values.
func (m *Manager) OpenEdit(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateLoaded {
		return ErrInvalidState
	}
	for _, r := range m.records {
		if r.ID() == id {
			m.form = r.Clone()
			m.editingID = id
			m.state = StateFormOpen
			return nil
		}
	}
	return ErrUnknownRow
}

// Form renders the open form.
func (m *Manager) Form() []Control {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateFormOpen {
		return nil
	}
	return RenderForm(m.cfg.Schema, m.form)
}

// Set changes one form value.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateFormOpen {
		return ErrInvalidState
	}
	m.form[key] = value
	return nil
}

// Cancel closes the form without saving.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateFormOpen {
		return ErrInvalidState
	}
	m.form = nil
	m.editingID = ""
	m.state = StateLoaded
	return nil
}

// Submit validates the form, then creates or updates and reloads. An
// invalid form or a failed request leaves the form open.
func (m *Manager) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateFormOpen {
		m.mu.Unlock()
		return ErrInvalidState
	}
	if err := Validate(m.cfg.Schema, m.form); err != nil {
		m.mu.Unlock()
		return err
	}
	values := m.payload()
	id := m.editingID
	m.state = StateSaving
	m.mu.Unlock()

	var err error
	if id == "" {
		err = m.client.Create(ctx, m.cfg.Endpoint, values)
	} else {
		err = m.client.Update(ctx, m.cfg.Endpoint, id, values)
	}
	if err != nil {
		m.mu.Lock()
		m.state = StateFormOpen
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Failed to save %s: %v", m.cfg.Title, err))
		return err
	}

	m.mu.Lock()
	m.form = nil
	m.editingID = ""
	m.mu.Unlock()
	return m.reload(ctx)
}

// payload keeps only schema fields. Number and yes/no fields are sent as
// JSON numbers and bools; a blank number is left out.
func (m *Manager) payload() Record {
	out := make(Record, len(m.cfg.Schema))
	for _, f := range m.cfg.Schema {
		v, ok := m.form[f.Key]
		if !ok {
			continue
		}
		switch {
		case f.Kind == KindNumber:
			n, err := toNumber(v)
			if err != nil {
				continue
			}
			v = n
		case f.boolean():
			if b, err := strconv.ParseBool(fmt.Sprint(v)); err == nil {
				v = b
			}
		}
		out[f.Key] = v
	}
	return out
}

// header returns the display labels.
func (m *Manager) header() []string {
	h := make([]string, len(m.cfg.Display))
	for i, key := range m.cfg.Display {
		h[i] = m.cfg.Schema.Label(key)
	}
	return h
}

// ExportCSV writes the filtered and sorted rows with display fields as
// columns.
func (m *Manager) ExportCSV(w io.Writer) error {
	m.mu.Lock()
	header, rows := m.header(), Table(m.rows(), m.cfg.Display)
	m.mu.Unlock()
	return WriteCSV(w, header, rows)
}

// ExportXLSX is ExportCSV as a workbook.
func (m *Manager) ExportXLSX(w io.Writer) error {
	m.mu.Lock()
	header, rows := m.header(), Table(m.rows(), m.cfg.Display)
	m.mu.Unlock()
	return WriteXLSX(w, m.cfg.Title, header, rows)
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}
