package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/model"
	"studyplanner/internal/core/taskstore"
)

var today = time.Date(2026, time.August, 30, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*Ledger, *taskstore.Store) {
	t.Helper()
	store := taskstore.New(taskstore.Config{Now: func() time.Time { return today }})
	return New(store, Config{Now: func() time.Time { return today }}), store
}

func TestRecordRejectsInvalidAmount(t *testing.T) {
	ledger, _ := newFixture(t)
	require.ErrorIs(t, ledger.Record(0, ""), model.ErrInvalidAmount)
	require.ErrorIs(t, ledger.Record(-5, ""), model.ErrInvalidAmount)
	assert.Empty(t, ledger.Snapshot())
}

func TestRecordCreditsExistingTask(t *testing.T) {
	ledger, store := newFixture(t)
	task, err := store.Add(taskstore.Fields{Name: "Thesis", DueDate: "2026-09-01"})
	require.NoError(t, err)

	require.NoError(t, ledger.Record(10, task.ID))

	assert.Equal(t, 10, ledger.MinutesOn(today))
	credited, err := store.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, credited.StudyMinutes)
}

func TestRecordToleratesDanglingTask(t *testing.T) {
	ledger, _ := newFixture(t)

	require.NoError(t, ledger.Record(10, "missing"))
	assert.Equal(t, 10, ledger.MinutesOn(today))
}

func TestRecordWithoutAttribution(t *testing.T) {
	ledger, _ := newFixture(t)
	require.NoError(t, ledger.Record(25, ""))
	require.NoError(t, ledger.Record(5, ""))
	assert.Equal(t, 30, ledger.MinutesOn(today))
	assert.Zero(t, ledger.MinutesOn(today.AddDate(0, 0, -1)))
}

func TestTrailingDailyTotalsZeroFills(t *testing.T) {
	ledger, _ := newFixture(t)
	ledger.Replace([]model.Session{
		{Date: "2026-08-30", Minutes: 25},
		{Date: "2026-08-30", Minutes: 10},
		{Date: "2026-08-27", Minutes: 40},
		{Date: "2026-01-01", Minutes: 99},
	})

	totals := ledger.TrailingDailyTotals(7, today)
	require.Len(t, totals, 7)
	assert.Equal(t, "2026-08-24", totals[0].Date)
	assert.Equal(t, "2026-08-30", totals[6].Date)
	assert.Equal(t, 35, totals[6].Minutes)
	assert.Equal(t, 40, totals[3].Minutes)
	for _, offset := range []int{0, 1, 2, 4, 5} {
		assert.Zero(t, totals[offset].Minutes, totals[offset].Date)
	}

	assert.Nil(t, ledger.TrailingDailyTotals(0, today))
}

func TestMergedByDateIsIdempotent(t *testing.T) {
	ledger, _ := newFixture(t)
	ledger.Replace([]model.Session{
		{Date: "2026-08-29", Minutes: 25, TaskID: "a"},
		{Date: "2026-08-30", Minutes: 10},
		{Date: "2026-08-29", Minutes: 5, TaskID: "b"},
	})

	merged := ledger.MergedByDate()
	require.Equal(t, []model.Session{
		{Date: "2026-08-29", Minutes: 30},
		{Date: "2026-08-30", Minutes: 10},
	}, merged)

	// merging the merged view changes nothing
	ledger.Replace(merged)
	assert.Equal(t, merged, ledger.MergedByDate())
	assert.Equal(t, 30, ledger.MinutesOn(time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)))
}
