package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/models"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 80.0, Percentage(8, 10))
	assert.InDelta(t, 33.333, Percentage(1, 3), 0.001)
}

func TestAverageIsUnrounded(t *testing.T) {
	avg := Average([]int{7, 8, 8})
	assert.InDelta(t, 7.6666, avg, 0.0001)
	assert.Equal(t, 7.7, Round1(avg))
	assert.Equal(t, 0.0, Average(nil))
}

func TestGradeBand(t *testing.T) {
	assert.Equal(t, "success", GradeBand(10))
	assert.Equal(t, "success", GradeBand(9))
	assert.Equal(t, "warning", GradeBand(7))
	assert.Equal(t, "info", GradeBand(5))
	assert.Equal(t, "error", GradeBand(4))
}

func TestWeekStartIsMonday(t *testing.T) {
	loc := time.UTC
	sunday := time.Date(2024, 9, 8, 15, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 9, 2, 0, 0, 0, 0, loc), WeekStart(sunday, loc))
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, loc)
	assert.Equal(t, monday, WeekStart(monday, loc))
	assert.Equal(t, time.Date(2024, 9, 8, 0, 0, 0, 0, loc), WeekEnd(monday, loc))
}

func TestGroupByWeekday(t *testing.T) {
	lessons := []models.LessonInstance{
		{ID: "late", Date: "2024-09-03", StartTime: "13:00"},
		{ID: "early", Date: "2024-09-03T00:00:00.000Z", StartTime: "08:30"},
		{ID: "mid", Date: "2024-09-03", StartTime: "10:40"},
		{ID: "sunday", Date: "2024-09-08", StartTime: "09:00"},
		{ID: "next-week", Date: "2024-09-09", StartTime: "09:00"},
	}
	days := GroupByWeekday(time.Date(2024, 9, 4, 12, 0, 0, 0, time.UTC), lessons, time.UTC)

	require.Len(t, days, 7)
	assert.Equal(t, "2024-09-02", days[0].Date)
	assert.Equal(t, "понедельник", days[0].DayName)
	assert.Empty(t, days[0].Lessons)

	require.Len(t, days[1].Lessons, 3)
	assert.Equal(t, []string{"early", "mid", "late"}, []string{days[1].Lessons[0].ID, days[1].Lessons[1].ID, days[1].Lessons[2].ID})
	require.Len(t, days[6].Lessons, 1)
	assert.Equal(t, 8, days[6].DayNumber)

	assert.Equal(t, "late", lessons[0].ID)
}

func grade(subject string, value int, date string, gt models.GradeType) models.GradeRecord {
	return models.GradeRecord{Subject: models.Reference(subject), Value: value, Date: date, GradeType: gt}
}

func TestGroupGradesBySubject(t *testing.T) {
	grades := []models.GradeRecord{
		grade("math", 6, "2024-09-02T10:00:00Z", models.GradeCurrent),
		grade("phys", 9, "2024-09-03T10:00:00Z", models.GradeExam),
		grade("math", 10, "2024-09-05T10:00:00Z", models.GradeTest),
		grade("math", 8, "2024-09-04T10:00:00Z", models.GradeCurrent),
	}
	groups := GroupGradesBySubject(grades)

	require.Len(t, groups, 2)
	math := groups[0]
	assert.Equal(t, "math", math.Subject.ID())
	assert.Equal(t, []int{10, 8, 6}, []int{math.Grades[0].Value, math.Grades[1].Value, math.Grades[2].Value})
	assert.Equal(t, 3, math.Stats.Total)
	assert.Equal(t, 8.0, math.Stats.Average)
	assert.Equal(t, 10, math.Stats.Highest)
	assert.Equal(t, 6, math.Stats.Lowest)
	assert.Equal(t, []int{6, 8}, math.Stats.ByType[models.GradeCurrent])

	assert.Equal(t, "2024-09-02T10:00:00Z", grades[0].Date)
}

func TestOverviewOf(t *testing.T) {
	overview := OverviewOf([]models.GradeRecord{
		grade("math", 7, "2024-09-02", models.GradeCurrent),
		grade("phys", 8, "2024-09-03", models.GradeCurrent),
		grade("phys", 8, "2024-09-04", models.GradeCurrent),
	})
	assert.Equal(t, 3, overview.Count)
	assert.Equal(t, 2, overview.Subjects)
	assert.Equal(t, 8, overview.Highest)
	assert.Equal(t, 7.7, overview.Display)

	assert.Equal(t, GradeOverview{}, OverviewOf(nil))
}

func TestTotalAttendance(t *testing.T) {
	totals := TotalAttendance([]models.StudentAttendanceBySubject{
		{Stats: models.SubjectAttendanceStats{TotalLessons: 6, PresentCount: 5, TotalAttendedHours: 20, TotalMissedHours: 4}},
		{Stats: models.SubjectAttendanceStats{TotalLessons: 4, PresentCount: 3, TotalAttendedHours: 12, TotalMissedHours: 4}},
	})
	assert.Equal(t, AttendanceTotals{
		TotalLessons:         10,
		AttendedLessons:      8,
		MissedLessons:        2,
		AttendancePercentage: 80,
		TotalHours:           40,
		AttendedHours:        32,
	}, totals)

	assert.Equal(t, 0.0, TotalAttendance(nil).AttendancePercentage)
}

func TestSortAttendanceByDateDescCopies(t *testing.T) {
	in := []models.StudentAttendanceBySubject{{
		Records: []models.AttendanceDetail{{ID: "old", Date: "2024-09-02"}, {ID: "new", Date: "2024-09-10"}},
	}}
	out := SortAttendanceByDateDesc(in)
	assert.Equal(t, "new", out[0].Records[0].ID)
	assert.Equal(t, "old", in[0].Records[0].ID)
}
