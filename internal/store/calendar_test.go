package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/service"
)

// fakeRecordService scripts time-record outcomes and captures calls.
type fakeRecordService struct {
	listRecords []domain.TimeRecord
	listErr     error
	lastFilter  service.TimeRecordFilter

	createRecord *domain.TimeRecord
	createErr    error
	lastCreate   domain.CreateTimeRecord

	updateRecord *domain.TimeRecord
	updateErr    error

	deleteErr error
	deletedID int
}

func (f *fakeRecordService) List(_ context.Context, filter service.TimeRecordFilter) ([]domain.TimeRecord, error) {
	f.lastFilter = filter
	return f.listRecords, f.listErr
}

func (f *fakeRecordService) Create(_ context.Context, rec domain.CreateTimeRecord) (*domain.TimeRecord, error) {
	f.lastCreate = rec
	return f.createRecord, f.createErr
}

func (f *fakeRecordService) Update(_ context.Context, id int, upd domain.UpdateTimeRecord) (*domain.TimeRecord, error) {
	return f.updateRecord, f.updateErr
}

func (f *fakeRecordService) Delete(_ context.Context, id int) error {
	f.deletedID = id
	return f.deleteErr
}

func juneStore(svc service.TimeRecordService) *CalendarStore {
	return NewCalendarStore(svc, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))
}

func TestCalendarStore_Fetch_RebuildsCache(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "02.06.2025", Hours: 8, Description: "a"},
		{ID: 2, Date: "03.06.2025", Hours: 4, Description: "b"},
	}}
	s := juneStore(svc)

	require.NoError(t, s.Fetch(context.Background()))

	assert.Equal(t, "01.06.2025", svc.lastFilter.From, "window is the full month")
	assert.Equal(t, "30.06.2025", svc.lastFilter.To)

	state := s.Snapshot()
	require.Len(t, state.Records, 2)
	assert.Equal(t, 1, state.Records["2025-06-02"].ID)
	assert.Equal(t, 2, state.Records["2025-06-03"].ID)
	assert.False(t, state.IsLoading)
}

func TestCalendarStore_Fetch_ReplacesStaleEntries(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "02.06.2025", Hours: 8, Description: "a"},
	}}
	s := juneStore(svc)
	require.NoError(t, s.Fetch(context.Background()))

	// The server no longer has the record for the 2nd; after refetch
	// neither does the cache.
	svc.listRecords = []domain.TimeRecord{
		{ID: 3, Date: "05.06.2025", Hours: 2, Description: "c"},
	}
	require.NoError(t, s.Fetch(context.Background()))

	state := s.Snapshot()
	require.Len(t, state.Records, 1)
	_, stale := state.Records["2025-06-02"]
	assert.False(t, stale)
}

func TestCalendarStore_Fetch_ErrorKeepsCache(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "02.06.2025", Hours: 8, Description: "a"},
	}}
	s := juneStore(svc)
	require.NoError(t, s.Fetch(context.Background()))

	svc.listErr = errors.New("boom")
	require.Error(t, s.Fetch(context.Background()))

	state := s.Snapshot()
	assert.Len(t, state.Records, 1, "failed refetch keeps the last good cache")
	assert.Equal(t, msgFetchFailed, state.Err)
}

func TestCalendarStore_MonthNavigation_AnchorsToFirst(t *testing.T) {
	svc := &fakeRecordService{}
	s := NewCalendarStore(svc, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, s.GoToNextMonth(context.Background()))
	current := s.Snapshot().Current
	assert.Equal(t, time.February, current.Month(), "Jan 31 steps into February, not March")
	assert.Equal(t, 1, current.Day())
	assert.Equal(t, "01.02.2025", svc.lastFilter.From, "navigation triggers a refetch for the new window")
	assert.Equal(t, "28.02.2025", svc.lastFilter.To)

	require.NoError(t, s.GoToPreviousMonth(context.Background()))
	current = s.Snapshot().Current
	assert.Equal(t, time.January, current.Month())
	assert.Equal(t, 1, current.Day())
}

func TestCalendarStore_Create_UpsertsServerRecord(t *testing.T) {
	svc := &fakeRecordService{
		createRecord: &domain.TimeRecord{ID: 7, Date: "10.06.2025", Hours: 8, Description: "server copy"},
	}
	s := juneStore(svc)
	s.OpenSelection("2025-06-10", nil)

	require.NoError(t, s.Create(context.Background(), "2025-06-10", 8, "local copy"))

	assert.Equal(t, "10.06.2025", svc.lastCreate.Date, "cache key converted to wire format")

	state := s.Snapshot()
	rec, ok := state.Records["2025-06-10"]
	require.True(t, ok)
	assert.Equal(t, "server copy", rec.Description, "cache holds the server-authoritative record")
	assert.False(t, state.SelectionOpen, "selection closes on success")
}

func TestCalendarStore_Create_ReplacesExistingDateEntry(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "10.06.2025", Hours: 4, Description: "old"},
	}}
	s := juneStore(svc)
	require.NoError(t, s.Fetch(context.Background()))

	svc.createRecord = &domain.TimeRecord{ID: 2, Date: "10.06.2025", Hours: 8, Description: "new"}
	require.NoError(t, s.Create(context.Background(), "2025-06-10", 8, "new"))

	state := s.Snapshot()
	require.Len(t, state.Records, 1, "one record per date, replaced not duplicated")
	assert.Equal(t, 2, state.Records["2025-06-10"].ID)
}

func TestCalendarStore_Create_FailureKeepsSelectionOpen(t *testing.T) {
	svc := &fakeRecordService{createErr: errors.New("boom")}
	s := juneStore(svc)
	s.OpenSelection("2025-06-10", nil)

	require.Error(t, s.Create(context.Background(), "2025-06-10", 8, "x"))

	state := s.Snapshot()
	assert.True(t, state.SelectionOpen, "user can correct input")
	assert.Equal(t, msgCreateFailed, state.Err)
	assert.Empty(t, state.Records, "no optimistic insert")
}

func TestCalendarStore_Update_MovesRecordToNewDate(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "10.06.2025", Hours: 4, Description: "old"},
	}}
	s := juneStore(svc)
	require.NoError(t, s.Fetch(context.Background()))

	svc.updateRecord = &domain.TimeRecord{ID: 1, Date: "11.06.2025", Hours: 4, Description: "moved"}
	require.NoError(t, s.Update(context.Background(), 1, "2025-06-11", 4, "moved"))

	state := s.Snapshot()
	assert.Contains(t, state.Records, "2025-06-11", "upserted under the returned date")
}

func TestCalendarStore_Delete_RemovesByID(t *testing.T) {
	svc := &fakeRecordService{listRecords: []domain.TimeRecord{
		{ID: 1, Date: "02.06.2025", Hours: 8, Description: "a"},
		{ID: 2, Date: "03.06.2025", Hours: 4, Description: "b"},
	}}
	s := juneStore(svc)
	require.NoError(t, s.Fetch(context.Background()))
	s.OpenSelection("2025-06-03", nil)

	require.NoError(t, s.Delete(context.Background(), 2))

	assert.Equal(t, 2, svc.deletedID)
	state := s.Snapshot()
	require.Len(t, state.Records, 1)
	assert.Contains(t, state.Records, "2025-06-02", "only the matching id's entry is removed")
	assert.False(t, state.SelectionOpen)
}

func TestCalendarStore_Selection_SingleShared(t *testing.T) {
	s := juneStore(&fakeRecordService{})

	rec := &domain.TimeRecord{ID: 1, Date: "02.06.2025"}
	s.OpenSelection("2025-06-02", rec)
	state := s.Snapshot()
	assert.True(t, state.SelectionOpen)
	assert.Equal(t, "2025-06-02", state.SelectedDate)
	assert.Equal(t, rec, state.SelectedRecord)

	// Opening another selection replaces the first.
	s.OpenSelection("2025-06-05", nil)
	state = s.Snapshot()
	assert.Equal(t, "2025-06-05", state.SelectedDate)
	assert.Nil(t, state.SelectedRecord)

	s.CloseSelection()
	state = s.Snapshot()
	assert.False(t, state.SelectionOpen)
	assert.Empty(t, state.SelectedDate)
}
