package lesson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/models"
)

func TestResolveBoundaries(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	at := func(h, m, s int) time.Time { return time.Date(2024, 9, 2, h, m, s, 0, loc) }

	cases := []struct {
		now  time.Time
		want Status
	}{
		{at(10, 0, 0), Current},
		{at(11, 20, 0), Current},
		{at(11, 20, 1), Completed},
		{at(9, 59, 59), Upcoming},
		{at(10, 45, 0), Current},
	}
	for _, tc := range cases {
		got, err := Resolve(tc.now, "2024-09-02", "10:00", "11:20", loc)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.now.String())
	}
}

func TestResolveUsesViewerDayForTimestamps(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	// 21:00Z on the 1st is already the 2nd at UTC+3.
	now := time.Date(2024, 9, 2, 10, 30, 0, 0, loc)
	got, err := Resolve(now, "2024-09-01T21:00:00.000Z", "10:00", "11:20", loc)
	require.NoError(t, err)
	assert.Equal(t, Current, got)
	assert.Equal(t, "2024-09-02", DayKey("2024-09-01T21:00:00.000Z", loc))
}

func TestResolveAcceptsClockSeconds(t *testing.T) {
	now := time.Date(2024, 9, 2, 10, 30, 0, 0, time.UTC)
	got, err := Resolve(now, "2024-09-02", "10:00:00", "11:20:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Current, got)

	_, err = Resolve(now, "2024-09-02", "10:00:75", "11:20", time.UTC)
	assert.Error(t, err)
	_, err = Resolve(now, "2024-09-02", "10:00:00:00", "11:20", time.UTC)
	assert.Error(t, err)
}

func TestResolveRejectsMalformedInput(t *testing.T) {
	now := time.Now()
	_, err := Resolve(now, "02.09.2024", "10:00", "11:20", time.UTC)
	assert.Error(t, err)
	_, err = Resolve(now, "2024-09-02", "25:00", "11:20", time.UTC)
	assert.Error(t, err)
	_, err = Resolve(now, "2024-09-02", "10:00", "1120", time.UTC)
	assert.Error(t, err)
	assert.Equal(t, "", DayKey("garbage", time.UTC))
}

func TestResolveInstanceIgnoresServerStatus(t *testing.T) {
	l := models.LessonInstance{Date: "2024-09-02", StartTime: "08:00", EndTime: "09:20", Status: models.LessonPlanned}
	got, err := ResolveInstance(time.Date(2024, 9, 2, 12, 0, 0, 0, time.UTC), l, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, Completed, got)
	assert.Equal(t, models.LessonPlanned, l.Status)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, ActionStart, ActionFor(Current, false))
	assert.Equal(t, ActionStart, ActionFor(Current, true))
	assert.Equal(t, ActionView, ActionFor(Upcoming, false))
	assert.Equal(t, ActionMarkAttendance, ActionFor(Completed, false))
	assert.Equal(t, ActionNone, ActionFor(Completed, true))
}
