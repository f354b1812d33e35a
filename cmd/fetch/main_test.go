package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectModeNoFlagsIsUsageError(t *testing.T) {
	_, err := selectMode(0, false, 0, "", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specify one of")
}

func TestSelectModeHalfRangeIsUsageError(t *testing.T) {
	_, err := selectMode(0, false, 0, "2024-01-01", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "given together")

	_, err = selectMode(0, false, 0, "", "2024-02-01", false)
	require.Error(t, err)
}

func TestSelectModeBadDateIsUsageError(t *testing.T) {
	_, err := selectMode(0, false, 0, "01/02/2024", "2024-02-01", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid -start-date")
}

func TestSelectModeResolvesEachMode(t *testing.T) {
	mode, err := selectMode(3, false, 0, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, 3, mode.historicalYears)

	mode, err = selectMode(0, true, 0, "", "", false)
	require.NoError(t, err)
	assert.True(t, mode.daily)

	mode, err = selectMode(0, false, 7, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, 7, mode.incrementalDays)

	mode, err = selectMode(0, false, 0, "", "", true)
	require.NoError(t, err)
	assert.True(t, mode.listCalendars)
}

func TestSelectModeRangeEndIsInclusive(t *testing.T) {
	mode, err := selectMode(0, false, 0, "2024-01-01", "2024-01-31", false)
	require.NoError(t, err)
	require.True(t, mode.useRange)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), mode.rangeStart)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), mode.rangeEnd)
}
