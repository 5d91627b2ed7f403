package aggregate

import (
	"sort"

	"github.com/noah-isme/journal-portal/internal/models"
)

// AttendanceTotals sums the per-subject statistics of a student.
type AttendanceTotals struct {
	TotalLessons         int     `json:"totalLessons"`
	AttendedLessons      int     `json:"attendedLessons"`
	MissedLessons        int     `json:"missedLessons"`
	AttendancePercentage float64 `json:"attendancePercentage"`
	TotalHours           int     `json:"totalHours"`
	AttendedHours        int     `json:"attendedHours"`
}

// TotalAttendance adds up the server-computed subject statistics.
func TotalAttendance(subjects []models.StudentAttendanceBySubject) AttendanceTotals {
	var totals AttendanceTotals
	for _, s := range subjects {
		totals.TotalLessons += s.Stats.TotalLessons
		totals.AttendedLessons += s.Stats.PresentCount
		totals.TotalHours += s.Stats.TotalAttendedHours + s.Stats.TotalMissedHours
		totals.AttendedHours += s.Stats.TotalAttendedHours
	}
	totals.MissedLessons = totals.TotalLessons - totals.AttendedLessons
	totals.AttendancePercentage = Percentage(totals.AttendedLessons, totals.TotalLessons)
	return totals
}

// SortAttendanceByDateDesc returns a copy of subjects whose records are most recent first.
func SortAttendanceByDateDesc(subjects []models.StudentAttendanceBySubject) []models.StudentAttendanceBySubject {
	out := make([]models.StudentAttendanceBySubject, len(subjects))
	for i, s := range subjects {
		records := append([]models.AttendanceDetail(nil), s.Records...)
		sort.SliceStable(records, func(a, b int) bool {
			return parseDate(records[a].Date).After(parseDate(records[b].Date))
		})
		s.Records = records
		out[i] = s
	}
	return out
}
