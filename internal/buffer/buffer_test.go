package buffer

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

type fakeSubmitter struct {
	mu            sync.Mutex
	calls         []string
	attendance    []models.AttendanceData
	grades        []models.GradeData
	attendanceErr error
	block         chan struct{}
	entered       chan struct{}
}

func (f *fakeSubmitter) MarkAttendance(_ context.Context, lessonID string, data []models.AttendanceData) error {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "attendance:"+lessonID)
	f.attendance = data
	return f.attendanceErr
}

func (f *fakeSubmitter) SubmitGrades(_ context.Context, lessonID string, data []models.GradeData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "grades:"+lessonID)
	f.grades = data
	return nil
}

func roster(n int) []models.RosterStudent {
	students := make([]models.RosterStudent, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		students = append(students, models.RosterStudent{ID: id, Name: "Student " + id})
	}
	return students
}

func TestSeedDefaults(t *testing.T) {
	b := Seed("lesson-1", roster(1))
	e, ok := b.Entry("a")
	require.True(t, ok)
	assert.Equal(t, AttendanceDraft{Status: models.AttendanceAbsent, AttendedHours: 0, MissedHours: 4}, e.Attendance)
	assert.Nil(t, e.Grade.Value)
	assert.Equal(t, models.GradeCurrent, e.Grade.GradeType)
	assert.Empty(t, e.Grade.Notes)
}

func TestSeedCopiesStoredRecords(t *testing.T) {
	students := roster(1)
	students[0].Attendance = &models.AttendanceRecord{Status: models.AttendanceLate, AttendedHours: 2, MissedHours: 2, Notes: "n"}
	students[0].Grades = []models.GradeRecord{
		{Value: 5, GradeType: models.GradeCurrent, Notes: "old"},
		{Value: 9, GradeType: models.GradeTest, Notes: "latest"},
	}

	e, ok := Seed("lesson-1", students).Entry("a")
	require.True(t, ok)
	assert.Equal(t, AttendanceDraft{Status: models.AttendanceLate, AttendedHours: 2, MissedHours: 2, Notes: "n"}, e.Attendance)
	require.NotNil(t, e.Grade.Value)
	assert.Equal(t, 9, *e.Grade.Value)
	assert.Equal(t, models.GradeTest, e.Grade.GradeType)
	assert.Equal(t, "latest", e.Grade.Notes)
}

func TestQuickStatusTableHoldsFromAnyPriorState(t *testing.T) {
	want := map[models.AttendanceStatus][2]int{
		models.AttendancePresent:   {4, 0},
		models.AttendanceAbsent:    {0, 4},
		models.AttendanceLate:      {2, 2},
		models.AttendanceLeftEarly: {2, 2},
	}
	for prior := range want {
		for next, hours := range want {
			b := Seed("lesson-1", roster(1))
			_, err := b.SetStatus("a", prior)
			require.NoError(t, err)
			e, err := b.SetStatus("a", next)
			require.NoError(t, err)
			assert.Equal(t, next, e.Attendance.Status)
			assert.Equal(t, hours[0], e.Attendance.AttendedHours, "%s -> %s", prior, next)
			assert.Equal(t, hours[1], e.Attendance.MissedHours, "%s -> %s", prior, next)
		}
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	b := Seed("lesson-1", roster(1))
	_, err := b.SetStatus("a", models.AttendanceStatus("Болен"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = b.SetStatus("zz", models.AttendancePresent)
	assert.True(t, errors.Is(err, appErrors.ErrUnknownStudent))
}

func TestMarkAllLeavesGradesAlone(t *testing.T) {
	b := Seed("lesson-1", roster(3))
	_, err := b.SetGradeInput("b", "8")
	require.NoError(t, err)
	_, err = b.SetAttendanceNotes("c", "справка")
	require.NoError(t, err)

	require.NoError(t, b.MarkAll(models.AttendancePresent))
	for _, e := range b.Entries() {
		assert.Equal(t, AttendanceDraft{Status: models.AttendancePresent, AttendedHours: 4, MissedHours: 0, Notes: e.Attendance.Notes}, e.Attendance)
	}
	e, _ := b.Entry("b")
	require.NotNil(t, e.Grade.Value)
	assert.Equal(t, 8, *e.Grade.Value)
	e, _ = b.Entry("c")
	assert.Equal(t, "справка", e.Attendance.Notes)

	require.NoError(t, b.MarkAll(models.AttendanceAbsent))
	e, _ = b.Entry("a")
	assert.Equal(t, 0, e.Attendance.AttendedHours)
	assert.Equal(t, 4, e.Attendance.MissedHours)
}

func TestGradeCoercion(t *testing.T) {
	for _, raw := range []string{"0", "11", "abc", "", "-3", "  "} {
		assert.Nil(t, CoerceGrade(raw), raw)
	}
	for v := 1; v <= 10; v++ {
		got := CoerceGrade(strconv.Itoa(v))
		require.NotNil(t, got, v)
		assert.Equal(t, v, *got)
	}
	got := CoerceGrade(" 7.5")
	require.NotNil(t, got)
	assert.Equal(t, 7, *got)

	b := Seed("lesson-1", roster(1))
	_, err := b.SetGradeInput("a", "9")
	require.NoError(t, err)
	e, err := b.SetGradeInput("a", "11")
	require.NoError(t, err)
	assert.Nil(t, e.Grade.Value)
}

func TestFlushFiltersUnsetGrades(t *testing.T) {
	b := Seed("lesson-1", roster(5))
	for id, raw := range map[string]string{"a": "7", "b": "10", "c": "1", "d": "abc"} {
		_, err := b.SetGradeInput(id, raw)
		require.NoError(t, err)
	}

	sub := &fakeSubmitter{}
	result, err := b.Flush(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, FlushResult{Attendance: 5, Grades: 3}, result)
	assert.Equal(t, []string{"attendance:lesson-1", "grades:lesson-1"}, sub.calls)
	require.Len(t, sub.attendance, 5)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, []string{
		sub.attendance[0].StudentID, sub.attendance[1].StudentID, sub.attendance[2].StudentID,
		sub.attendance[3].StudentID, sub.attendance[4].StudentID,
	})
	require.Len(t, sub.grades, 3)
	for _, g := range sub.grades {
		require.NotNil(t, g.Value)
		assert.Greater(t, *g.Value, 0)
	}
	assert.False(t, b.Saving())
}

func TestFlushSkipsGradeCallWhenNoneSet(t *testing.T) {
	b := Seed("lesson-1", roster(2))
	sub := &fakeSubmitter{}
	result, err := b.Flush(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, FlushResult{Attendance: 2}, result)
	assert.Equal(t, []string{"attendance:lesson-1"}, sub.calls)
}

func TestFlushStopsWhenAttendanceFails(t *testing.T) {
	b := Seed("lesson-1", roster(2))
	_, err := b.SetGradeInput("a", "6")
	require.NoError(t, err)

	sub := &fakeSubmitter{attendanceErr: appErrors.Clone(appErrors.ErrUpstream, "Занятие отменено")}
	_, err = b.Flush(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, []string{"attendance:lesson-1"}, sub.calls)
	assert.False(t, b.Saving())
}

func TestFlushRejectsConcurrentSave(t *testing.T) {
	b := Seed("lesson-1", roster(1))
	sub := &fakeSubmitter{block: make(chan struct{}), entered: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		_, err := b.Flush(context.Background(), sub)
		done <- err
	}()
	<-sub.entered

	assert.True(t, b.Saving())
	_, err := b.Flush(context.Background(), &fakeSubmitter{})
	assert.True(t, errors.Is(err, appErrors.ErrSaveInProgress))

	close(sub.block)
	require.NoError(t, <-done)
}

func TestEntriesAreCopies(t *testing.T) {
	b := Seed("lesson-1", roster(1))
	_, err := b.SetGradeInput("a", "5")
	require.NoError(t, err)

	entries := b.Entries()
	*entries[0].Grade.Value = 1
	entries[0].Attendance.Status = models.AttendancePresent

	e, _ := b.Entry("a")
	assert.Equal(t, 5, *e.Grade.Value)
	assert.Equal(t, models.AttendanceAbsent, e.Attendance.Status)
}
