package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type studentService interface {
	Dashboard(ctx context.Context, api service.StudentAPI) (*dto.StudentDashboard, error)
	Grades(ctx context.Context, api service.StudentAPI, filter gateway.SubjectFilter) (*dto.GradesPage, error)
	Attendance(ctx context.Context, api service.StudentAPI, filter gateway.SubjectFilter) (*dto.AttendancePage, error)
	Stats(ctx context.Context, api service.StudentAPI, semesterID string) (models.Analytics, error)
	ExportGrades(ctx context.Context, api service.StudentAPI, format service.ExportFormat, filter gateway.SubjectFilter) (*service.ExportFile, error)
}

// StudentHandler serves the student pages.
type StudentHandler struct {
	api     APIFactory
	service studentService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(api APIFactory, svc studentService) *StudentHandler {
	return &StudentHandler{api: api, service: svc}
}

// Dashboard godoc
// @Summary Student dashboard
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student [get]
func (h *StudentHandler) Dashboard(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	page, err := h.service.Dashboard(c.Request.Context(), api)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Grades godoc
// @Summary My grades
// @Description Grades grouped by subject with per-subject and overall averages
// @Tags Student
// @Produce json
// @Param semesterId query string false "Semester ID"
// @Param subjectId query string false "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /student/my-grades [get]
func (h *StudentHandler) Grades(c *gin.Context) {
	api, filter, ok := h.subjectRequest(c)
	if !ok {
		return
	}
	page, err := h.service.Grades(c.Request.Context(), api, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// ExportGrades godoc
// @Summary Export my grades
// @Tags Student
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param semesterId query string false "Semester ID"
// @Param subjectId query string false "Subject ID"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /student/my-grades/export [get]
func (h *StudentHandler) ExportGrades(c *gin.Context) {
	format, valid := service.ParseExportFormat(c.Query("format"))
	if !valid {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	api, filter, ok := h.subjectRequest(c)
	if !ok {
		return
	}
	file, err := h.service.ExportGrades(c.Request.Context(), api, format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Blob(c, file.ContentType, file.Filename, file.Data)
}

// Attendance godoc
// @Summary My attendance
// @Description Attendance per subject for the selected semester, the active one by default
// @Tags Student
// @Produce json
// @Param semesterId query string false "Semester ID"
// @Param subjectId query string false "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /student/my-attendance [get]
func (h *StudentHandler) Attendance(c *gin.Context) {
	api, filter, ok := h.subjectRequest(c)
	if !ok {
		return
	}
	page, err := h.service.Attendance(c.Request.Context(), api, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// Stats godoc
// @Summary My statistics
// @Tags Student
// @Produce json
// @Param semesterId query string false "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /student/stats [get]
func (h *StudentHandler) Stats(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), api, c.Query("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *StudentHandler) subjectRequest(c *gin.Context) (*gateway.Session, gateway.SubjectFilter, bool) {
	var filter gateway.SubjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return nil, filter, false
	}
	api, _, ok := apiFromContext(c, h.api)
	return api, filter, ok
}
