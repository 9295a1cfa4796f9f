package store

import (
	"context"
	"sync"
	"time"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/dateutil"
	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/service"
)

const (
	msgFetchFailed  = "failed to load time records"
	msgCreateFailed = "failed to create time record"
	msgUpdateFailed = "failed to update time record"
	msgDeleteFailed = "failed to delete time record"
)

// CalendarState is a point-in-time snapshot of the calendar store.
// Records is keyed by YYYY-MM-DD; at most one record per date.
type CalendarState struct {
	Current        time.Time
	Records        map[string]domain.TimeRecord
	IsLoading      bool
	Err            string
	SelectedDate   string
	SelectedRecord *domain.TimeRecord
	SelectionOpen  bool
}

// CalendarStore caches the signed-in user's records for the displayed
// month and hosts the single shared create/edit selection. The cache
// only ever reflects server-confirmed state: mutations upsert the
// record the server returned, never the locally submitted one.
type CalendarStore struct {
	svc service.TimeRecordService

	mu      sync.Mutex
	current time.Time
	records map[string]domain.TimeRecord
	loading bool
	err     string
	selKey  string
	selRec  *domain.TimeRecord
	selOpen bool
}

// NewCalendarStore creates a CalendarStore anchored at now's month.
func NewCalendarStore(svc service.TimeRecordService, now time.Time) *CalendarStore {
	return &CalendarStore{
		svc:     svc,
		current: now,
		records: map[string]domain.TimeRecord{},
	}
}

// Snapshot returns a copy of the current state. The records map is
// copied so callers can iterate without racing mutations.
func (s *CalendarStore) Snapshot() CalendarState {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make(map[string]domain.TimeRecord, len(s.records))
	for k, v := range s.records {
		records[k] = v
	}
	return CalendarState{
		Current:        s.current,
		Records:        records,
		IsLoading:      s.loading,
		Err:            s.err,
		SelectedDate:   s.selKey,
		SelectedRecord: s.selRec,
		SelectionOpen:  s.selOpen,
	}
}

// Fetch loads all records in the displayed month's window and rebuilds
// the cache from scratch, so records deleted server-side disappear.
func (s *CalendarStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	first, last := dateutil.MonthWindow(s.current)
	s.mu.Unlock()

	records, err := s.svc.List(ctx, service.TimeRecordFilter{
		From: dateutil.FormatWire(first),
		To:   dateutil.FormatWire(last),
	})
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = api.UserMessage(err, msgFetchFailed)
		s.mu.Unlock()
		return err
	}

	rebuilt := make(map[string]domain.TimeRecord, len(records))
	for _, rec := range records {
		key, err := dateutil.WireToKey(rec.Date)
		if err != nil {
			continue
		}
		rebuilt[key] = rec
	}

	s.mu.Lock()
	s.records = rebuilt
	s.loading = false
	s.mu.Unlock()
	return nil
}

// SetCurrentDate moves the displayed month and refetches.
func (s *CalendarStore) SetCurrentDate(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// GoToPreviousMonth steps back one month, anchored to the 1st.
func (s *CalendarStore) GoToPreviousMonth(ctx context.Context) error {
	return s.shiftMonth(ctx, -1)
}

// GoToNextMonth steps forward one month, anchored to the 1st.
func (s *CalendarStore) GoToNextMonth(ctx context.Context) error {
	return s.shiftMonth(ctx, 1)
}

func (s *CalendarStore) shiftMonth(ctx context.Context, n int) error {
	s.mu.Lock()
	s.current = dateutil.AddMonths(s.current, n)
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// OpenSelection selects the date (YYYY-MM-DD key) for create or edit.
// There is one shared selection; opening replaces any previous one.
func (s *CalendarStore) OpenSelection(dateKey string, rec *domain.TimeRecord) {
	s.mu.Lock()
	s.selKey = dateKey
	s.selRec = rec
	s.selOpen = true
	s.mu.Unlock()
}

// CloseSelection clears the active selection.
func (s *CalendarStore) CloseSelection() {
	s.mu.Lock()
	s.clearSelectionLocked()
	s.mu.Unlock()
}

func (s *CalendarStore) clearSelectionLocked() {
	s.selKey = ""
	s.selRec = nil
	s.selOpen = false
}

// Create logs a record for the given date key. On success the
// server-returned record is upserted under its date and the selection
// closes; on failure the selection stays open for correction.
func (s *CalendarStore) Create(ctx context.Context, dateKey string, hours float64, description string) error {
	wire, err := dateutil.KeyToWire(dateKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	created, err := s.svc.Create(ctx, domain.CreateTimeRecord{
		Date:        wire,
		Hours:       hours,
		Description: description,
	})
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = api.UserMessage(err, msgCreateFailed)
		s.mu.Unlock()
		return err
	}
	return s.reconcile(created)
}

// Update edits an existing record; same reconciliation as Create.
func (s *CalendarStore) Update(ctx context.Context, id int, dateKey string, hours float64, description string) error {
	wire, err := dateutil.KeyToWire(dateKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	updated, err := s.svc.Update(ctx, id, domain.UpdateTimeRecord{
		Date:        wire,
		Hours:       &hours,
		Description: description,
	})
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = api.UserMessage(err, msgUpdateFailed)
		s.mu.Unlock()
		return err
	}
	return s.reconcile(updated)
}

func (s *CalendarStore) reconcile(rec *domain.TimeRecord) error {
	key, err := dateutil.WireToKey(rec.Date)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = *rec
	s.loading = false
	s.clearSelectionLocked()
	s.mu.Unlock()
	return nil
}

// Delete removes a record by id. The cache is keyed by date, so the
// entry is found by scanning values for the matching id.
func (s *CalendarStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	if err := s.svc.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.loading = false
		s.err = api.UserMessage(err, msgDeleteFailed)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	for key, rec := range s.records {
		if rec.ID == id {
			delete(s.records, key)
		}
	}
	s.loading = false
	s.clearSelectionLocked()
	s.mu.Unlock()
	return nil
}

// ClearError drops the current error message.
func (s *CalendarStore) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}
