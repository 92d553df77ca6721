package daywindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const istOffset = 5*time.Hour + 30*time.Minute

func TestToday_ISTBoundaries(t *testing.T) {
	// 2024-06-01 08:00 UTC is 13:30 IST, so the IST day is 2024-06-01.
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	w := Today(now, istOffset)

	// IST midnight is 18:30 UTC of the previous day.
	assert.Equal(t, time.Date(2024, 5, 31, 18, 30, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 29, 59, int(999*time.Millisecond), time.UTC), w.End)
}

func TestToday_DoesNotAlignWithUTCMidnight(t *testing.T) {
	// 20:00 UTC is already 01:30 IST of the next day.
	now := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	w := Today(now, istOffset)
	assert.Equal(t, time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC), w.Start)
}

func TestContains_InclusiveBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	w := Today(now, istOffset)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.End.Add(time.Millisecond)))
	assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
}

func TestToday_Deterministic(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)
	require.Equal(t, Today(now, istOffset), Today(now, istOffset))
}

func TestToday_ZeroOffset(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	w := Today(now, 0)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(now))
}

func TestToday_NonUTCInput(t *testing.T) {
	// The same instant expressed in a different zone yields the same window.
	utc := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	ist := utc.In(time.FixedZone("IST", 19800))
	assert.Equal(t, Today(utc, istOffset), Today(ist, istOffset))
}
