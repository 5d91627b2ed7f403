package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

type fakeReportSrv struct {
	kind    service.ReportKind
	filter  gateway.ReportFilter
	group   gateway.GroupStatsFilter
	student string
}

func (f *fakeReportSrv) Download(_ context.Context, _ service.ReportAPI, kind service.ReportKind, filter gateway.ReportFilter) (*gateway.Blob, error) {
	f.kind, f.filter = kind, filter
	return &gateway.Blob{Data: []byte("PK"), ContentType: "application/vnd.ms-excel", Filename: "attendance.xlsx"}, nil
}

func (f *fakeReportSrv) GroupAttendance(_ context.Context, _ service.ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupAttendanceStats, error) {
	f.group = filter
	return &models.GroupAttendanceStats{}, nil
}

func (f *fakeReportSrv) GroupGrades(_ context.Context, _ service.ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupGradeStats, error) {
	if filter.GroupID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid group filter")
	}
	f.group = filter
	return &models.GroupGradeStats{}, nil
}

func (f *fakeReportSrv) StudentAnalytics(_ context.Context, _ service.ReportAPI, studentID, _ string) (models.Analytics, error) {
	f.student = studentID
	return models.Analytics{}, nil
}

func (f *fakeReportSrv) SemesterAnalytics(context.Context, service.ReportAPI, string) (models.Analytics, error) {
	return models.Analytics{}, nil
}

func TestReportHandlerDownloadStreamsSpreadsheet(t *testing.T) {
	svc := &fakeReportSrv{}
	handler := NewReportHandler(upstream(), svc)
	rec, c := newContext(http.MethodGet, "/admin/reports/attendance?groupId=g1&subjectId=s1&semesterId=sem1&kind=Лекция", "", signedIn(t, models.RoleAdmin))

	handler.Download(service.ReportAttendance)(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ReportAttendance, svc.kind)
	assert.Equal(t, gateway.ReportFilter{GroupID: "g1", SubjectID: "s1", SemesterID: "sem1", Kind: "Лекция"}, svc.filter)
	assert.Equal(t, `attachment; filename="attendance.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}

func TestReportHandlerGroupStats(t *testing.T) {
	svc := &fakeReportSrv{}
	handler := NewReportHandler(upstream(), svc)

	rec, c := newContext(http.MethodGet, "/teacher/reports/group-attendance?groupId=g1&semesterId=sem1", "", signedIn(t, models.RoleTeacher))
	handler.GroupAttendance(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "g1", svc.group.GroupID)

	rec, c = newContext(http.MethodGet, "/teacher/reports/group-grades", "", signedIn(t, models.RoleTeacher))
	handler.GroupGrades(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandlerStudentAnalytics(t *testing.T) {
	svc := &fakeReportSrv{}
	handler := NewReportHandler(upstream(), svc)
	rec, c := newContext(http.MethodGet, "/admin/reports/students/st-1", "", signedIn(t, models.RoleAdmin))
	c.Params = gin.Params{{Key: "studentId", Value: "st-1"}}

	handler.StudentAnalytics(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "st-1", svc.student)
}
