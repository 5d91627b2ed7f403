package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/journal-portal/internal/models"
)

// AttendanceReport downloads the attendance spreadsheet. Kind is the lesson type.
func (s *Session) AttendanceReport(ctx context.Context, filter ReportFilter) (*Blob, error) {
	return s.download(ctx, call{op: "attendance_report", method: http.MethodGet, path: "/reports/attendance/excel", query: filter.values("lessonType")})
}

// GradesReport downloads the grades spreadsheet. Kind is the grade type.
func (s *Session) GradesReport(ctx context.Context, filter ReportFilter) (*Blob, error) {
	return s.download(ctx, call{op: "grades_report", method: http.MethodGet, path: "/reports/grades/excel", query: filter.values("gradeType")})
}

// GroupAttendanceStats loads a group's attendance report.
func (s *Session) GroupAttendanceStats(ctx context.Context, filter GroupStatsFilter) (*models.GroupAttendanceStats, error) {
	var env statsEnvelope[models.GroupAttendanceStats]
	if err := s.do(ctx, call{op: "group_attendance_stats", method: http.MethodGet, path: "/reports/group/attendance", query: filter.values()}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GroupGradeStats loads a group's grade report.
func (s *Session) GroupGradeStats(ctx context.Context, filter GroupStatsFilter) (*models.GroupGradeStats, error) {
	var env statsEnvelope[models.GroupGradeStats]
	if err := s.do(ctx, call{op: "group_grade_stats", method: http.MethodGet, path: "/reports/group/grades", query: filter.values()}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// StudentAnalytics loads analytics for one student.
func (s *Session) StudentAnalytics(ctx context.Context, studentID, semesterID string) (models.Analytics, error) {
	q := url.Values{}
	setIf(q, "semesterId", semesterID)
	var env statsEnvelope[models.Analytics]
	if err := s.do(ctx, call{op: "student_analytics", method: http.MethodGet, path: "/reports/student/" + url.PathEscape(studentID) + "/analytics", query: q}, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// SemesterAnalytics loads analytics for a semester.
func (s *Session) SemesterAnalytics(ctx context.Context, semesterID string) (models.Analytics, error) {
	var env statsEnvelope[models.Analytics]
	if err := s.do(ctx, call{op: "semester_analytics", method: http.MethodGet, path: "/reports/semester/" + url.PathEscape(semesterID) + "/analytics"}, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
