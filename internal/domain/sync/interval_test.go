package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSplitRange(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		intervals, err := SplitRange(day(1), day(4), 24*time.Hour)
		require.NoError(t, err)
		require.Len(t, intervals, 3)

		assert.Equal(t, day(1), intervals[0].Start)
		assert.Equal(t, day(2), intervals[0].End)
		assert.Equal(t, day(4), intervals[2].End)

		for i := 1; i < len(intervals); i++ {
			assert.Equal(t, intervals[i-1].End, intervals[i].Start, "intervals must be contiguous")
		}
	})

	t.Run("last interval is clamped", func(t *testing.T) {
		end := day(3).Add(6 * time.Hour)
		intervals, err := SplitRange(day(1), end, 24*time.Hour)
		require.NoError(t, err)
		require.Len(t, intervals, 3)

		last := intervals[2]
		assert.Equal(t, end, last.End)
		assert.Equal(t, 6*time.Hour, last.Duration())
	})

	t.Run("equal bounds yield nothing", func(t *testing.T) {
		intervals, err := SplitRange(day(5), day(5), 24*time.Hour)
		require.NoError(t, err)
		assert.Empty(t, intervals)
	})

	t.Run("inverted bounds are rejected", func(t *testing.T) {
		_, err := SplitRange(day(5), day(1), 24*time.Hour)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("non-positive step falls back to the default window", func(t *testing.T) {
		intervals, err := SplitRange(day(1), day(3), 0)
		require.NoError(t, err)
		assert.Len(t, intervals, 2)
	})
}

func TestIntervalString(t *testing.T) {
	i := Interval{Start: day(1), End: day(2)}
	assert.Equal(t, "[2024-03-01T00:00:00Z, 2024-03-02T00:00:00Z)", i.String())
}

func TestStoreName(t *testing.T) {
	assert.Equal(t, "UK", StoreName("rdx-sports-store.myshopify.com"))
	assert.Equal(t, "USA", StoreName("rdx-sports-store-usa.myshopify.com"))
	assert.Equal(t, "", StoreName("unknown.myshopify.com"))
}
