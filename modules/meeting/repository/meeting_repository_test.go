package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"calendar-insights/modules/meeting/entity"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execResult int64

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return int64(r), nil }

// fakeDB tracks meetings rows by event_id and simulates the insert, update
// and conflict paths the store relies on.
type fakeDB struct {
	rows        map[string]bool
	inserts     []string
	updates     []string
	deleteCalls int
	failIDs     map[string]error
	conflictIDs map[string]bool
}

func newFakeDB(existing ...string) *fakeDB {
	db := &fakeDB{
		rows:        map[string]bool{},
		failIDs:     map[string]error{},
		conflictIDs: map[string]bool{},
	}
	for _, id := range existing {
		db.rows[id] = true
	}
	return db
}

func (f *fakeDB) ExecContext(_ context.Context, query string, _ ...any) error {
	if strings.Contains(query, "DELETE FROM meetings") {
		f.deleteCalls++
		f.rows = map[string]bool{}
	}
	return nil
}

func (f *fakeDB) GetContext(_ context.Context, dest any, query string, args ...any) error {
	if strings.Contains(query, "WHERE event_id") {
		eventID := args[0].(string)
		if !f.rows[eventID] {
			return sql.ErrNoRows
		}
		*(dest.(*int64)) = 1
		return nil
	}
	if strings.Contains(query, "COUNT(*)") {
		*(dest.(*int)) = len(f.rows)
		return nil
	}
	return sql.ErrNoRows
}

func (f *fakeDB) SelectContext(context.Context, any, string, ...any) error { return nil }

func (f *fakeDB) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }

func (f *fakeDB) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDB) NamedQueryContext(context.Context, string, any) (*sqlx.Rows, error) {
	return nil, nil
}

func (f *fakeDB) NamedExecContext(_ context.Context, query string, arg any) (sql.Result, error) {
	meeting := arg.(*entity.Meeting)
	if err, ok := f.failIDs[meeting.EventID]; ok {
		return nil, err
	}

	if strings.Contains(query, "UPDATE meetings") {
		f.updates = append(f.updates, meeting.EventID)
		return execResult(1), nil
	}

	// ON CONFLICT DO NOTHING reports zero affected rows.
	if f.rows[meeting.EventID] || f.conflictIDs[meeting.EventID] {
		return execResult(0), nil
	}
	f.rows[meeting.EventID] = true
	f.inserts = append(f.inserts, meeting.EventID)
	return execResult(1), nil
}

func (f *fakeDB) PingContext(context.Context) error { return nil }

func meetingsWithIDs(ids ...string) []entity.Meeting {
	meetings := make([]entity.Meeting, len(ids))
	for i, id := range ids {
		meetings[i] = entity.Meeting{EventID: id, Summary: "Sync"}
	}
	return meetings
}

func TestStoreBatchIncrementalInsertsNew(t *testing.T) {
	db := newFakeDB()
	repo := NewMeetingRepository(db)

	result, err := repo.StoreBatch(context.Background(), meetingsWithIDs("e1", "e2"), entity.StoreModeIncremental)
	require.NoError(t, err)

	assert.Equal(t, entity.StoreResult{Inserted: 2}, result)
	assert.Equal(t, []string{"e1", "e2"}, db.inserts)
	assert.Zero(t, db.deleteCalls)
}

func TestStoreBatchIncrementalUpdatesExisting(t *testing.T) {
	db := newFakeDB("abc123")
	repo := NewMeetingRepository(db)

	meetings := meetingsWithIDs("abc123")
	meetings[0].Summary = "Sync (Rescheduled)"

	result, err := repo.StoreBatch(context.Background(), meetings, entity.StoreModeIncremental)
	require.NoError(t, err)

	assert.Equal(t, entity.StoreResult{Updated: 1}, result)
	assert.Equal(t, []string{"abc123"}, db.updates)
	assert.Empty(t, db.inserts)
	assert.Len(t, db.rows, 1)
}

func TestStoreBatchIncrementalIsIdempotent(t *testing.T) {
	db := newFakeDB()
	repo := NewMeetingRepository(db)
	batch := meetingsWithIDs("e1", "e2", "e3")

	first, err := repo.StoreBatch(context.Background(), batch, entity.StoreModeIncremental)
	require.NoError(t, err)
	assert.Equal(t, entity.StoreResult{Inserted: 3}, first)

	second, err := repo.StoreBatch(context.Background(), batch, entity.StoreModeIncremental)
	require.NoError(t, err)
	assert.Equal(t, entity.StoreResult{Updated: 3}, second)
	assert.Len(t, db.rows, 3)
}

func TestStoreBatchInsertConflictCountsSkipped(t *testing.T) {
	db := newFakeDB()
	// Simulates a concurrent run inserting the row between the existence
	// check and the insert.
	db.conflictIDs["e2"] = true
	repo := NewMeetingRepository(db)

	result, err := repo.StoreBatch(context.Background(), meetingsWithIDs("e1", "e2"), entity.StoreModeIncremental)
	require.NoError(t, err)

	assert.Equal(t, entity.StoreResult{Inserted: 1, Skipped: 1}, result)
}

func TestStoreBatchHistoricalClearsThenInserts(t *testing.T) {
	db := newFakeDB("old1", "old2")
	repo := NewMeetingRepository(db)

	result, err := repo.StoreBatch(context.Background(), meetingsWithIDs("new1"), entity.StoreModeHistorical)
	require.NoError(t, err)

	assert.Equal(t, 1, db.deleteCalls)
	assert.Equal(t, entity.StoreResult{Inserted: 1}, result)
	assert.Equal(t, map[string]bool{"new1": true}, db.rows)
}

func TestStoreBatchPerRecordFailureDoesNotAbort(t *testing.T) {
	db := newFakeDB()
	db.failIDs["e2"] = errors.New("null value in required column")
	repo := NewMeetingRepository(db)

	result, err := repo.StoreBatch(context.Background(), meetingsWithIDs("e1", "e2", "e3"), entity.StoreModeIncremental)
	require.NoError(t, err)

	assert.Equal(t, entity.StoreResult{Inserted: 2, Skipped: 1}, result)
	assert.Equal(t, []string{"e1", "e3"}, db.inserts)
}

func TestCountMeetingsReflectsStoredRows(t *testing.T) {
	db := newFakeDB("e1", "e2")
	repo := NewMeetingRepository(db)

	count, err := repo.CountMeetings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
