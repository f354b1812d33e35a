package service

import (
	"context"
	"testing"
	"time"

	"calendar-insights/core/errors"
	meetingentity "calendar-insights/modules/meeting/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchCall struct {
	start, end time.Time
	maxResults int
}

type fakeSource struct {
	authErr     error
	authCalls   int
	calls       []fetchCall
	failWindows map[int]error
	perWindow   []meetingentity.Meeting
}

func (f *fakeSource) Authenticate(context.Context) error {
	f.authCalls++
	return f.authErr
}

func (f *fakeSource) FetchRange(_ context.Context, start, end time.Time, maxResults int) ([]meetingentity.Meeting, error) {
	index := len(f.calls)
	f.calls = append(f.calls, fetchCall{start: start, end: end, maxResults: maxResults})
	if err, ok := f.failWindows[index]; ok {
		return nil, err
	}
	return f.perWindow, nil
}

type storeCall struct {
	meetings []meetingentity.Meeting
	mode     meetingentity.StoreMode
}

type fakeStore struct {
	calls    []storeCall
	storeErr error
	result   meetingentity.StoreResult
	total    int
}

func (f *fakeStore) StoreBatch(_ context.Context, meetings []meetingentity.Meeting, mode meetingentity.StoreMode) (meetingentity.StoreResult, error) {
	f.calls = append(f.calls, storeCall{meetings: meetings, mode: mode})
	if f.storeErr != nil {
		return meetingentity.StoreResult{}, f.storeErr
	}
	if f.result == (meetingentity.StoreResult{}) {
		return meetingentity.StoreResult{Inserted: len(meetings)}, nil
	}
	return f.result, nil
}

func (f *fakeStore) CountMeetings(context.Context) (int, error) { return f.total, nil }

func (f *fakeStore) MeetingsByYear(context.Context, int) ([]meetingentity.YearCount, error) {
	return nil, nil
}

type fakeEnricher struct {
	batches int
}

func (f *fakeEnricher) Enrich(_ context.Context, _ []meetingentity.Meeting) { f.batches++ }

type fakeRuns struct {
	runs []meetingentity.FetchRun
}

func (f *fakeRuns) Record(_ context.Context, run *meetingentity.FetchRun) error {
	f.runs = append(f.runs, *run)
	return nil
}

func newTestService(source *fakeSource, store *fakeStore) (*FetchService, *fakeEnricher, *fakeRuns) {
	enricher := &fakeEnricher{}
	runs := &fakeRuns{}
	svc := NewFetchService(source, store, enricher, runs)
	svc.delay = 0
	return svc, enricher, runs
}

func TestFetchHistoricalStoresFullReplace(t *testing.T) {
	source := &fakeSource{perWindow: []meetingentity.Meeting{{EventID: "e1"}}}
	store := &fakeStore{}
	svc, enricher, runs := newTestService(source, store)

	err := svc.FetchHistorical(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	assert.Equal(t, meetingentity.StoreModeHistorical, store.calls[0].mode)
	assert.Equal(t, 1, enricher.batches)

	// One year splits into 31-day windows, each contributing one meeting.
	assert.Equal(t, len(source.calls), len(store.calls[0].meetings))

	require.Len(t, runs.runs, 1)
	assert.Equal(t, meetingentity.FetchTypeHistorical, runs.runs[0].FetchType)
	assert.Equal(t, meetingentity.FetchStatusCompleted, runs.runs[0].Status)
	assert.NotEmpty(t, runs.runs[0].RunID)
}

func TestFetchHistoricalToleratesWindowFailure(t *testing.T) {
	source := &fakeSource{
		perWindow: []meetingentity.Meeting{{EventID: "e1"}},
		failWindows: map[int]error{
			2: errors.NewAppError(errors.ErrWindowFetch, "rate limited", nil),
		},
	}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchHistorical(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	assert.Equal(t, len(source.calls)-1, len(store.calls[0].meetings))
	assert.Equal(t, meetingentity.FetchStatusCompleted, runs.runs[0].Status)
}

func TestFetchHistoricalAllWindowsFailed(t *testing.T) {
	source := &fakeSource{failWindows: map[int]error{}}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	// Fail every window the planner could produce.
	for i := 0; i < 20; i++ {
		source.failWindows[i] = errors.NewAppError(errors.ErrWindowFetch, "boom", nil)
	}

	err := svc.FetchHistorical(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrWindowFetch))
	assert.Empty(t, store.calls)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, meetingentity.FetchStatusFailed, runs.runs[0].Status)
}

func TestFetchHistoricalEmptyResultFails(t *testing.T) {
	source := &fakeSource{}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchHistorical(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrWindowFetch))
	assert.Empty(t, store.calls)
	assert.Equal(t, meetingentity.FetchStatusFailed, runs.runs[0].Status)
}

func TestFetchHistoricalAuthFailureSkipsStore(t *testing.T) {
	source := &fakeSource{authErr: errors.NewAppError(errors.ErrAuthentication, "bad token", nil)}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchHistorical(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAuthentication))
	assert.Empty(t, source.calls)
	assert.Empty(t, store.calls)
	assert.Equal(t, meetingentity.FetchStatusFailed, runs.runs[0].Status)
}

func TestFetchWindowedAbortsOnAuthExpiry(t *testing.T) {
	source := &fakeSource{
		perWindow: []meetingentity.Meeting{{EventID: "e1"}},
		failWindows: map[int]error{
			1: errors.NewAppError(errors.ErrAuthentication, "token expired", nil),
		},
	}
	store := &fakeStore{}
	svc, _, _ := newTestService(source, store)

	err := svc.FetchHistorical(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAuthentication))
	assert.Len(t, source.calls, 2)
	assert.Empty(t, store.calls)
}

func TestFetchIncrementalMergesWithoutDelete(t *testing.T) {
	source := &fakeSource{perWindow: []meetingentity.Meeting{{EventID: "e1"}, {EventID: "e2"}}}
	store := &fakeStore{result: meetingentity.StoreResult{Inserted: 1, Updated: 1}}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchIncremental(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	assert.Equal(t, meetingentity.StoreModeIncremental, store.calls[0].mode)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, 2, runs.runs[0].RecordsFetched)
	assert.Equal(t, meetingentity.FetchTypeIncremental, runs.runs[0].FetchType)
}

func TestFetchModesUseFullResultCap(t *testing.T) {
	source := &fakeSource{perWindow: []meetingentity.Meeting{{EventID: "e1"}}}
	store := &fakeStore{}
	svc, _, _ := newTestService(source, store)

	// A busy calendar must never be truncated by a smaller incremental cap.
	require.NoError(t, svc.FetchIncremental(context.Background(), 30))
	require.NoError(t, svc.FetchHistorical(context.Background(), 1))

	for _, call := range source.calls {
		assert.Equal(t, 2500, call.maxResults)
	}
}

func TestFetchIncrementalEmptyIsSuccess(t *testing.T) {
	source := &fakeSource{}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchIncremental(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, store.calls)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, meetingentity.FetchStatusCompleted, runs.runs[0].Status)
	assert.Equal(t, 0, runs.runs[0].RecordsFetched)
}

func TestFetchDateRangeIsManualAndNonDestructive(t *testing.T) {
	source := &fakeSource{perWindow: []meetingentity.Meeting{{EventID: "e1"}}}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	start := day("2024-01-01")
	end := day("2024-03-01")
	err := svc.FetchDateRange(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	assert.Equal(t, meetingentity.StoreModeIncremental, store.calls[0].mode)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, meetingentity.FetchTypeManual, runs.runs[0].FetchType)
	assert.Equal(t, start, runs.runs[0].StartDate)
	assert.Equal(t, end, runs.runs[0].EndDate)
}

func TestFetchDateRangeRejectsInvertedRange(t *testing.T) {
	source := &fakeSource{}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchDateRange(context.Background(), day("2024-03-01"), day("2024-01-01"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
	assert.Zero(t, source.authCalls)
	assert.Empty(t, runs.runs)
}

func TestFetchDailyIsOneDayIncremental(t *testing.T) {
	source := &fakeSource{perWindow: []meetingentity.Meeting{{EventID: "e1"}}}
	store := &fakeStore{}
	svc, _, runs := newTestService(source, store)

	err := svc.FetchDaily(context.Background())
	require.NoError(t, err)

	require.Len(t, source.calls, 1)
	span := source.calls[0].end.Sub(source.calls[0].start)
	assert.Equal(t, 24*time.Hour, span)
	assert.Equal(t, meetingentity.FetchTypeIncremental, runs.runs[0].FetchType)
}
