package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type adminService interface {
	Dashboard(ctx context.Context, api service.AdminAPI) (*dto.AdminDashboard, error)
	List(ctx context.Context, api service.AdminAPI, entity gateway.Entity) (*dto.EntityPage, error)
	Create(ctx context.Context, api service.AdminAPI, entity gateway.Entity, payload []byte) (*gateway.Ack, error)
	Update(ctx context.Context, api service.AdminAPI, entity gateway.Entity, id string, payload []byte) (*gateway.Ack, error)
	Delete(ctx context.Context, api service.AdminAPI, entity gateway.Entity, id string) (*gateway.Ack, error)
	ActivateSemester(ctx context.Context, api service.AdminAPI, id string) (*gateway.Ack, error)
	ImportStudents(ctx context.Context, api service.AdminAPI, groupID, filename string, content []byte) (*dto.ImportReport, error)
	ScheduleManagement(ctx context.Context, api service.AdminAPI, filter gateway.ScheduleFilter) (*dto.ScheduleManagementPage, error)
	SaveSchedule(ctx context.Context, api service.AdminAPI, id string, form models.ScheduleForm) (*gateway.Ack, error)
	DeleteSchedule(ctx context.Context, api service.AdminAPI, id string) (*gateway.Ack, error)
	UpdateInstance(ctx context.Context, api service.AdminAPI, id string, update models.LessonInstanceUpdate) (*gateway.Ack, error)
	CancelInstance(ctx context.Context, api service.AdminAPI, id string, form models.CancelLessonForm) (*gateway.Ack, error)
}

// AdminHandler serves the administrator pages.
type AdminHandler struct {
	api       APIFactory
	service   adminService
	maxUpload int64
}

// NewAdminHandler creates a new handler. maxUpload bounds how much of an uploaded file is read.
func NewAdminHandler(api APIFactory, svc adminService, maxUpload int64) *AdminHandler {
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &AdminHandler{api: api, service: svc, maxUpload: maxUpload}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Description Counts departments, teachers, subjects, groups, students and semesters
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
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

// List godoc
// @Summary List an admin collection
// @Tags Admin
// @Produce json
// @Param entity path string true "departments, teachers, subjects, groups or semesters"
// @Success 200 {object} response.Envelope
// @Router /admin/{entity} [get]
func (h *AdminHandler) List(entity gateway.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		api, _, ok := apiFromContext(c, h.api)
		if !ok {
			return
		}
		page, err := h.service.List(c.Request.Context(), api, entity)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, page)
	}
}

// Create godoc
// @Summary Create an admin record
// @Tags Admin
// @Accept json
// @Produce json
// @Param entity path string true "departments, teachers, subjects, groups or semesters"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/{entity} [post]
func (h *AdminHandler) Create(entity gateway.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		api, _, ok := apiFromContext(c, h.api)
		if !ok {
			return
		}
		payload, ok := h.readBody(c)
		if !ok {
			return
		}
		ack, err := h.service.Create(c.Request.Context(), api, entity, payload)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, ack)
	}
}

// Update godoc
// @Summary Update an admin record
// @Tags Admin
// @Accept json
// @Produce json
// @Param entity path string true "departments, teachers, subjects, groups or semesters"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/{entity}/{id} [put]
func (h *AdminHandler) Update(entity gateway.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		api, _, ok := apiFromContext(c, h.api)
		if !ok {
			return
		}
		payload, ok := h.readBody(c)
		if !ok {
			return
		}
		ack, err := h.service.Update(c.Request.Context(), api, entity, c.Param("id"), payload)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, ack)
	}
}

// Delete godoc
// @Summary Delete an admin record
// @Tags Admin
// @Produce json
// @Param entity path string true "departments, teachers, subjects, groups or semesters"
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /admin/{entity}/{id} [delete]
func (h *AdminHandler) Delete(entity gateway.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		api, _, ok := apiFromContext(c, h.api)
		if !ok {
			return
		}
		ack, err := h.service.Delete(c.Request.Context(), api, entity, c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, ack)
	}
}

// ActivateSemester godoc
// @Summary Activate a semester
// @Tags Admin
// @Produce json
// @Param id path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /admin/semesters/{id}/activate [post]
func (h *AdminHandler) ActivateSemester(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	ack, err := h.service.ActivateSemester(c.Request.Context(), api, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

// ImportStudents godoc
// @Summary Import students from a spreadsheet
// @Description Two columns on the first sheet (full name, password) below a header row
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Group ID"
// @Param file formData file true "Spreadsheet (.xlsx or .xls)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/groups/{id}/import-students [post]
func (h *AdminHandler) ImportStudents(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is unreadable"))
		return
	}
	defer file.Close() //nolint:errcheck

	// one byte past the limit so the validator can tell an oversized file apart
	content, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is unreadable"))
		return
	}

	report, err := h.service.ImportStudents(c.Request.Context(), api, c.Param("id"), header.Filename, content)
	if err != nil {
		var importErr *service.ImportError
		if errors.As(err, &importErr) {
			appErr := appErrors.FromError(err)
			c.JSON(appErr.Status, response.Envelope{Error: appErr, Meta: map[string]interface{}{"rows": importErr.Problems}})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// ScheduleManagement godoc
// @Summary Schedule templates with editor lookups
// @Tags Admin
// @Produce json
// @Param semesterId query string false "Semester; defaults to the active one"
// @Param teacherId query string false "Teacher"
// @Param groupId query string false "Group"
// @Param subjectId query string false "Subject"
// @Success 200 {object} response.Envelope
// @Router /admin/schedule-management [get]
func (h *AdminHandler) ScheduleManagement(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	var filter gateway.ScheduleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid filter"))
		return
	}
	page, err := h.service.ScheduleManagement(c.Request.Context(), api, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// SaveSchedule godoc
// @Summary Create or update a schedule template
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string false "Schedule ID when updating"
// @Param payload body models.ScheduleForm true "Schedule"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/schedule-management/{id} [put]
func (h *AdminHandler) SaveSchedule(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	var form models.ScheduleForm
	if !bindJSON(c, &form, "schedule") {
		return
	}
	id := c.Param("id")
	ack, err := h.service.SaveSchedule(c.Request.Context(), api, id, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	if id == "" {
		response.Created(c, ack)
		return
	}
	response.OK(c, ack)
}

// DeleteSchedule godoc
// @Summary Delete a schedule template
// @Tags Admin
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /admin/schedule-management/{id} [delete]
func (h *AdminHandler) DeleteSchedule(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	ack, err := h.service.DeleteSchedule(c.Request.Context(), api, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

// UpdateInstance godoc
// @Summary Edit a lesson instance
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Lesson instance ID"
// @Param payload body models.LessonInstanceUpdate true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /admin/schedule-instances/{id} [put]
func (h *AdminHandler) UpdateInstance(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	var update models.LessonInstanceUpdate
	if !bindJSON(c, &update, "lesson") {
		return
	}
	ack, err := h.service.UpdateInstance(c.Request.Context(), api, c.Param("id"), update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

// CancelInstance godoc
// @Summary Cancel a lesson instance
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Lesson instance ID"
// @Param payload body models.CancelLessonForm false "Reason"
// @Success 200 {object} response.Envelope
// @Router /admin/schedule-instances/{id}/cancel [post]
func (h *AdminHandler) CancelInstance(c *gin.Context) {
	api, _, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	var form models.CancelLessonForm
	if c.Request.ContentLength != 0 && !bindJSON(c, &form, "cancel") {
		return
	}
	ack, err := h.service.CancelInstance(c.Request.Context(), api, c.Param("id"), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}

func (h *AdminHandler) readBody(c *gin.Context) ([]byte, bool) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "request body is unreadable"))
		return nil, false
	}
	return payload, true
}
