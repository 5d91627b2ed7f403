package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/journal-portal/internal/models"
)

type statsEnvelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// LessonStudents loads the roster of a lesson with existing marks attached.
func (s *Session) LessonStudents(ctx context.Context, lessonID string) (*models.LessonRoster, error) {
	var roster models.LessonRoster
	if err := s.do(ctx, call{op: "lesson_students", method: http.MethodGet, path: "/teacher/lessons/" + url.PathEscape(lessonID) + "/students"}, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

// MarkAttendance submits attendance for every roster student of a lesson.
func (s *Session) MarkAttendance(ctx context.Context, lessonID string, data []models.AttendanceData) error {
	_, err := s.ack(ctx, "mark_attendance", http.MethodPost, "/teacher/lessons/"+url.PathEscape(lessonID)+"/attendance",
		map[string]interface{}{"attendanceData": data})
	return err
}

// SubmitGrades submits the defined grades of a lesson.
func (s *Session) SubmitGrades(ctx context.Context, lessonID string, data []models.GradeData) error {
	_, err := s.ack(ctx, "submit_grades", http.MethodPost, "/teacher/lessons/"+url.PathEscape(lessonID)+"/grades",
		map[string]interface{}{"gradesData": data})
	return err
}

// TeacherStats loads the teacher dashboard summary.
func (s *Session) TeacherStats(ctx context.Context, semesterID string) (*models.TeacherStats, error) {
	q := url.Values{}
	setIf(q, "semesterId", semesterID)
	var env statsEnvelope[models.TeacherStats]
	if err := s.do(ctx, call{op: "teacher_stats", method: http.MethodGet, path: "/teacher/stats", query: q}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// StudentAttendance loads attendance grouped by subject and the total record count.
func (s *Session) StudentAttendance(ctx context.Context, filter SubjectFilter) ([]models.StudentAttendanceBySubject, int, error) {
	var resp struct {
		AttendanceBySubject []models.StudentAttendanceBySubject `json:"attendanceBySubject"`
		TotalRecords        int                                 `json:"totalRecords"`
	}
	if err := s.do(ctx, call{op: "student_attendance", method: http.MethodGet, path: "/student/attendance", query: filter.values()}, &resp); err != nil {
		return nil, 0, err
	}
	if resp.AttendanceBySubject == nil {
		resp.AttendanceBySubject = []models.StudentAttendanceBySubject{}
	}
	return resp.AttendanceBySubject, resp.TotalRecords, nil
}

// StudentGrades loads the signed-in student's grades.
func (s *Session) StudentGrades(ctx context.Context, filter SubjectFilter) ([]models.GradeRecord, error) {
	var env statsEnvelope[[]models.GradeRecord]
	if err := s.do(ctx, call{op: "student_grades", method: http.MethodGet, path: "/student/grades", query: filter.values()}, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []models.GradeRecord{}, nil
	}
	return env.Data, nil
}

// StudentStats loads the signed-in student's statistics.
func (s *Session) StudentStats(ctx context.Context, semesterID string) (models.Analytics, error) {
	q := url.Values{}
	setIf(q, "semesterId", semesterID)
	var env statsEnvelope[models.Analytics]
	if err := s.do(ctx, call{op: "student_stats", method: http.MethodGet, path: "/student/stats", query: q}, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
