package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type reportService interface {
	Download(ctx context.Context, api service.ReportAPI, kind service.ReportKind, filter gateway.ReportFilter) (*gateway.Blob, error)
	GroupAttendance(ctx context.Context, api service.ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupAttendanceStats, error)
	GroupGrades(ctx context.Context, api service.ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupGradeStats, error)
	StudentAnalytics(ctx context.Context, api service.ReportAPI, studentID, semesterID string) (models.Analytics, error)
	SemesterAnalytics(ctx context.Context, api service.ReportAPI, semesterID string) (models.Analytics, error)
}

// ReportHandler exposes report downloads and statistics to admins and teachers.
type ReportHandler struct {
	api     APIFactory
	service reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(api APIFactory, svc reportService) *ReportHandler {
	return &ReportHandler{api: api, service: svc}
}

// Download returns a handler streaming the attendance or grades spreadsheet.
//
// @Summary Download a spreadsheet report
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param groupId query string true "Group ID"
// @Param subjectId query string true "Subject ID"
// @Param semesterId query string true "Semester ID"
// @Param kind query string false "Lesson type (attendance) or grade type (grades)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/reports/attendance [get]
// @Router /admin/reports/grades [get]
// @Router /teacher/reports/attendance [get]
// @Router /teacher/reports/grades [get]
func (h *ReportHandler) Download(kind service.ReportKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter gateway.ReportFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report filter"))
			return
		}
		api, _, ok := apiFromContext(c, h.api)
		if !ok {
			return
		}
		blob, err := h.service.Download(c.Request.Context(), api, kind, filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Blob(c, blob.ContentType, blob.Filename, blob.Data)
	}
}

// GroupAttendance godoc
// @Summary Group attendance statistics
// @Tags Reports
// @Produce json
// @Param groupId query string true "Group ID"
// @Param semesterId query string false "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/group-attendance [get]
// @Router /teacher/reports/group-attendance [get]
func (h *ReportHandler) GroupAttendance(c *gin.Context) {
	api, filter, ok := h.groupRequest(c)
	if !ok {
		return
	}
	stats, err := h.service.GroupAttendance(c.Request.Context(), api, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// GroupGrades godoc
// @Summary Group grade statistics
// @Tags Reports
// @Produce json
// @Param groupId query string true "Group ID"
// @Param semesterId query string false "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/group-grades [get]
// @Router /teacher/reports/group-grades [get]
func (h *ReportHandler) GroupGrades(c *gin.Context) {
	api, filter, ok := h.groupRequest(c)
	if !ok {
		return
	}
	stats, err := h.service.GroupGrades(c.Request.Context(), api, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// StudentAnalytics godoc
// @Summary Student analytics
// @Tags Reports
// @Produce json
// @Param studentId path string true "Student ID"
// @Param semesterId query string false "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/students/{studentId} [get]
// @Router /teacher/reports/students/{studentId} [get]
func (h *ReportHandler) StudentAnalytics(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	stats, err := h.service.StudentAnalytics(c.Request.Context(), api, c.Param("studentId"), c.Query("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// SemesterAnalytics godoc
// @Summary Semester analytics
// @Tags Reports
// @Produce json
// @Param semesterId path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /admin/reports/semesters/{semesterId} [get]
func (h *ReportHandler) SemesterAnalytics(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	stats, err := h.service.SemesterAnalytics(c.Request.Context(), api, c.Param("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *ReportHandler) groupRequest(c *gin.Context) (*gateway.Session, gateway.GroupStatsFilter, bool) {
	var filter gateway.GroupStatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group filter"))
		return nil, filter, false
	}
	api, _, ok := apiFromContext(c, h.api)
	return api, filter, ok
}
