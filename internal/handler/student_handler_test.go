package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
)

type fakeStudentSrv struct {
	filter   gateway.SubjectFilter
	format   service.ExportFormat
	semester string
}

func (f *fakeStudentSrv) Dashboard(context.Context, service.StudentAPI) (*dto.StudentDashboard, error) {
	return &dto.StudentDashboard{}, nil
}

func (f *fakeStudentSrv) Grades(_ context.Context, _ service.StudentAPI, filter gateway.SubjectFilter) (*dto.GradesPage, error) {
	f.filter = filter
	return &dto.GradesPage{}, nil
}

func (f *fakeStudentSrv) Attendance(_ context.Context, _ service.StudentAPI, filter gateway.SubjectFilter) (*dto.AttendancePage, error) {
	f.filter = filter
	return &dto.AttendancePage{}, nil
}

func (f *fakeStudentSrv) Stats(_ context.Context, _ service.StudentAPI, semesterID string) (models.Analytics, error) {
	f.semester = semesterID
	return models.Analytics{"averageGrade": 8.5}, nil
}

func (f *fakeStudentSrv) ExportGrades(_ context.Context, _ service.StudentAPI, format service.ExportFormat, filter gateway.SubjectFilter) (*service.ExportFile, error) {
	f.format = format
	f.filter = filter
	return &service.ExportFile{Data: []byte("date,subject\n"), ContentType: "text/csv; charset=utf-8", Filename: "grades-20240903.csv"}, nil
}

func TestStudentHandlerGradesBindsFilter(t *testing.T) {
	svc := &fakeStudentSrv{}
	handler := NewStudentHandler(upstream(), svc)
	rec, c := newContext(http.MethodGet, "/student/my-grades?semesterId=sem-1&subjectId=sub-2", "", signedIn(t, models.RoleStudent))

	handler.Grades(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gateway.SubjectFilter{SemesterID: "sem-1", SubjectID: "sub-2"}, svc.filter)
}

func TestStudentHandlerExportGrades(t *testing.T) {
	svc := &fakeStudentSrv{}
	handler := NewStudentHandler(upstream(), svc)
	rec, c := newContext(http.MethodGet, "/student/my-grades/export?format=CSV", "", signedIn(t, models.RoleStudent))

	handler.ExportGrades(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportCSV, svc.format)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades-20240903.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "date,subject\n", rec.Body.String())
}

func TestStudentHandlerExportRejectsUnknownFormat(t *testing.T) {
	handler := NewStudentHandler(upstream(), &fakeStudentSrv{})
	rec, c := newContext(http.MethodGet, "/student/my-grades/export?format=docx", "", signedIn(t, models.RoleStudent))

	handler.ExportGrades(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerStats(t *testing.T) {
	svc := &fakeStudentSrv{}
	handler := NewStudentHandler(upstream(), svc)
	rec, c := newContext(http.MethodGet, "/student/stats?semesterId=sem-1", "", signedIn(t, models.RoleStudent))

	handler.Stats(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sem-1", svc.semester)
	assert.JSONEq(t, `{"averageGrade":8.5}`, string(decode(t, rec).Data))
}

type fakeScheduleSrv struct {
	view   string
	role   models.Role
	anchor time.Time
}

func (f *fakeScheduleSrv) Day(_ context.Context, _ service.ScheduleAPI, role models.Role, date time.Time) (*dto.DayView, error) {
	f.view, f.role, f.anchor = "day", role, date
	return &dto.DayView{Date: date.Format("2006-01-02")}, nil
}

func (f *fakeScheduleSrv) Week(_ context.Context, _ service.ScheduleAPI, role models.Role, anchor time.Time) (*dto.WeekView, error) {
	f.view, f.role, f.anchor = "week", role, anchor
	return &dto.WeekView{}, nil
}

func (f *fakeScheduleSrv) ParseAnchor(raw string) (time.Time, error) {
	return service.NewScheduleService(time.UTC, nil, nil).ParseAnchor(raw)
}

func TestScheduleHandlerViews(t *testing.T) {
	svc := &fakeScheduleSrv{}
	handler := NewScheduleHandler(upstream(), svc)

	rec, c := newContext(http.MethodGet, "/teacher/schedule?date=2024-09-03", "", signedIn(t, models.RoleTeacher))
	handler.Schedule(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "day", svc.view)
	assert.Equal(t, models.RoleTeacher, svc.role)
	assert.Equal(t, 3, svc.anchor.Day())

	rec, c = newContext(http.MethodGet, "/student/schedule?view=week&date=2024-09-03", "", signedIn(t, models.RoleStudent))
	handler.Schedule(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "week", svc.view)
	assert.Equal(t, models.RoleStudent, svc.role)
}

func TestScheduleHandlerRejectsBadQuery(t *testing.T) {
	handler := NewScheduleHandler(upstream(), &fakeScheduleSrv{})

	rec, c := newContext(http.MethodGet, "/teacher/schedule?view=month", "", signedIn(t, models.RoleTeacher))
	handler.Schedule(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, c = newContext(http.MethodGet, "/teacher/schedule?date=03.09.2024", "", signedIn(t, models.RoleTeacher))
	handler.Schedule(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
