package timeslot

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		start     string
		end       string
		expectErr bool
	}{
		{name: "valid window", start: "08:00", end: "18:00", expectErr: false},
		{name: "one minute", start: "23:58", end: "23:59", expectErr: false},
		{name: "midnight start", start: "00:00", end: "00:01", expectErr: false},
		{name: "inverted", start: "11:00", end: "10:00", expectErr: true},
		{name: "zero length", start: "10:00", end: "10:00", expectErr: true},
		{name: "hour out of range", start: "24:00", end: "25:00", expectErr: true},
		{name: "minute out of range", start: "10:60", end: "11:00", expectErr: true},
		{name: "not zero padded", start: "9:00", end: "10:00", expectErr: true},
		{name: "garbage", start: "morning", end: "noon", expectErr: true},
		{name: "empty", start: "", end: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iv, err := New(tc.start, tc.end)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInterval))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.start, iv.Start)
			assert.Equal(t, tc.end, iv.End)
		})
	}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{
			name:     "back to back does not overlap",
			a:        Interval{"10:00", "11:00"},
			b:        Interval{"11:00", "12:00"},
			overlaps: false,
		},
		{
			name:     "partial overlap",
			a:        Interval{"10:00", "11:00"},
			b:        Interval{"10:30", "11:30"},
			overlaps: true,
		},
		{
			name:     "containment",
			a:        Interval{"09:00", "17:00"},
			b:        Interval{"12:00", "13:00"},
			overlaps: true,
		},
		{
			name:     "identical",
			a:        Interval{"10:00", "11:00"},
			b:        Interval{"10:00", "11:00"},
			overlaps: true,
		},
		{
			name:     "disjoint",
			a:        Interval{"08:00", "09:00"},
			b:        Interval{"15:00", "16:00"},
			overlaps: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			// Overlap is symmetric.
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

// TestOverlapsSymmetry checks overlap symmetry over a generated population of
// valid intervals.
func TestOverlapsSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randomInterval := func() Interval {
		start := rng.Intn(24*60 - 1)
		end := start + 1 + rng.Intn(24*60-start-1)
		return Interval{
			Start: fmt.Sprintf("%02d:%02d", start/60, start%60),
			End:   fmt.Sprintf("%02d:%02d", end/60, end%60),
		}
	}

	for i := 0; i < 500; i++ {
		a, b := randomInterval(), randomInterval()
		assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%s b=%s", a, b)
	}
}

func TestTouchesAndContains(t *testing.T) {
	a := Interval{"10:00", "11:00"}

	assert.True(t, a.Touches(Interval{"11:00", "12:00"}))
	assert.True(t, a.Touches(Interval{"09:00", "10:00"}))
	assert.False(t, a.Touches(Interval{"10:30", "11:30"}))

	assert.True(t, a.Contains("10:00"))
	assert.True(t, a.Contains("10:59"))
	// Half-open: the end boundary is outside.
	assert.False(t, a.Contains("11:00"))
	assert.False(t, a.Contains("09:59"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-02-28"))
	assert.True(t, ValidDate("2024-02-29")) // leap day
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate("2026-2-28"))
	assert.False(t, ValidDate("28-02-2026"))
	assert.False(t, ValidDate(""))
}

func TestDateRange(t *testing.T) {
	days, err := DateRange("2026-01-30", "2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, days)

	days, err = DateRange("2026-03-15", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-15"}, days)

	_, err = DateRange("2026-03-16", "2026-03-15")
	assert.Error(t, err)

	_, err = DateRange("not-a-date", "2026-03-15")
	assert.Error(t, err)
}
