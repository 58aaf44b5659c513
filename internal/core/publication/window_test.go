package publication

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestComputeWindow(t *testing.T) {
	london := mustLoad(t, "Europe/London")
	newYork := mustLoad(t, "America/New_York")
	tokyo := mustLoad(t, "Asia/Tokyo")

	tests := []struct {
		name      string
		now       time.Time
		loc       *time.Location
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "before cutover selects yesterday in UTC",
			now:       time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC),
			loc:       time.UTC,
			wantStart: time.Date(2016, 12, 31, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2017, 1, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "after cutover selects today",
			now:       time.Date(2018, 1, 2, 12, 0, 0, 0, time.UTC),
			loc:       london,
			wantStart: time.Date(2018, 1, 1, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 1, 2, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "midnight selects yesterday",
			now:       time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC),
			loc:       london,
			wantStart: time.Date(2017, 12, 31, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 1, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly at cutover is inclusive",
			now:       time.Date(2018, 1, 2, 6, 0, 0, 0, time.UTC),
			loc:       london,
			wantStart: time.Date(2018, 1, 1, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 1, 2, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "spring forward produces a 23 hour window",
			now:       time.Date(2018, 3, 25, 12, 0, 0, 0, time.UTC),
			loc:       london,
			wantStart: time.Date(2018, 3, 24, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 3, 25, 5, 0, 0, 0, time.UTC),
		},
		{
			name:      "fall back produces a 25 hour window",
			now:       time.Date(2018, 10, 28, 12, 0, 0, 0, time.UTC),
			loc:       london,
			wantStart: time.Date(2018, 10, 27, 5, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 10, 28, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "negative offset crosses UTC date",
			now:       time.Date(2018, 1, 2, 3, 0, 0, 0, time.UTC),
			loc:       newYork,
			wantStart: time.Date(2017, 12, 31, 11, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 1, 1, 11, 0, 0, 0, time.UTC),
		},
		{
			name:      "positive offset ahead of UTC",
			now:       time.Date(2018, 1, 1, 22, 0, 0, 0, time.UTC),
			loc:       tokyo,
			wantStart: time.Date(2017, 12, 31, 21, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 1, 1, 21, 0, 0, 0, time.UTC),
		},
		{
			name:      "month boundary",
			now:       time.Date(2018, 3, 1, 2, 0, 0, 0, time.UTC),
			loc:       time.UTC,
			wantStart: time.Date(2018, 2, 27, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2018, 2, 28, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(tt.now, tt.loc)
			assert.True(t, tt.wantStart.Equal(w.Start), "start: want %s, got %s", tt.wantStart, w.Start)
			assert.True(t, tt.wantEnd.Equal(w.End), "end: want %s, got %s", tt.wantEnd, w.End)
			assert.Equal(t, time.UTC, w.Start.Location())
			assert.Equal(t, time.UTC, w.End.Location())
		})
	}
}

func TestComputeWindowDSTDurations(t *testing.T) {
	london := mustLoad(t, "Europe/London")

	spring := ComputeWindow(time.Date(2018, 3, 25, 12, 0, 0, 0, time.UTC), london)
	assert.Equal(t, 23*time.Hour, spring.Duration())

	autumn := ComputeWindow(time.Date(2018, 10, 28, 12, 0, 0, 0, time.UTC), london)
	assert.Equal(t, 25*time.Hour, autumn.Duration())

	plain := ComputeWindow(time.Date(2018, 6, 10, 12, 0, 0, 0, time.UTC), london)
	assert.Equal(t, 24*time.Hour, plain.Duration())
}

func TestComputeWindowSameBucketIsIdentical(t *testing.T) {
	loc := mustLoad(t, "Asia/Shanghai")

	// 07:00 and 07:59 local on the same day
	a := ComputeWindow(time.Date(2020, 5, 5, 23, 0, 0, 0, time.UTC), loc)
	b := ComputeWindow(time.Date(2020, 5, 5, 23, 59, 59, 0, time.UTC), loc)
	assert.Equal(t, a, b)

	// 01:00 and 05:59 local fall before the cutover of the same day
	c := ComputeWindow(time.Date(2020, 5, 5, 17, 0, 0, 0, time.UTC), loc)
	d := ComputeWindow(time.Date(2020, 5, 5, 21, 59, 0, 0, time.UTC), loc)
	assert.Equal(t, c, d)
	assert.NotEqual(t, a, c)
}

func TestComputeWindowNilLocationDefaultsToUTC(t *testing.T) {
	now := time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ComputeWindow(now, time.UTC), ComputeWindow(now, nil))
}

func TestComputeWindowForZone(t *testing.T) {
	now := time.Date(2018, 1, 2, 12, 0, 0, 0, time.UTC)

	w, err := ComputeWindowForZone(now, "Europe/London")
	require.NoError(t, err)
	assert.True(t, time.Date(2018, 1, 2, 6, 0, 0, 0, time.UTC).Equal(w.End))

	_, err = ComputeWindowForZone(now, "Not/A_Zone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")
}
