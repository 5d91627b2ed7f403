package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/buffer"
	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type teacherService interface {
	Dashboard(ctx context.Context, api service.TeacherAPI) (*dto.TeacherDashboard, error)
}

type lessonWorkspace interface {
	Open(ctx context.Context, clientID string, api service.LessonAPI, lessonID string) (*dto.LessonPage, error)
	Page(clientID, lessonID string) (*dto.LessonPage, error)
	SetStatus(clientID, lessonID, studentID string, status models.AttendanceStatus) (buffer.Entry, error)
	SetAttendanceNotes(clientID, lessonID, studentID, notes string) (buffer.Entry, error)
	MarkAll(clientID, lessonID string, status models.AttendanceStatus) (*dto.LessonPage, error)
	EditGrade(clientID, lessonID, studentID string, edit service.GradeEdit) (buffer.Entry, error)
	Save(ctx context.Context, clientID, lessonID string, api buffer.Submitter) (*dto.SaveResult, error)
	Discard(clientID string)
}

// TeacherHandler serves the teacher dashboard and the lesson workspace.
type TeacherHandler struct {
	api       APIFactory
	service   teacherService
	workspace lessonWorkspace
}

// NewTeacherHandler creates a new handler.
func NewTeacherHandler(api APIFactory, svc teacherService, workspace lessonWorkspace) *TeacherHandler {
	return &TeacherHandler{api: api, service: svc, workspace: workspace}
}

type attendanceRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type markAllRequest struct {
	Status string `json:"status" binding:"required"`
}

// Dashboard godoc
// @Summary Teacher dashboard
// @Description Today's lessons with their time-derived status and action, plus teaching statistics
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher [get]
func (h *TeacherHandler) Dashboard(c *gin.Context) {
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

// Lesson godoc
// @Summary Open a lesson
// @Description Loads the roster and starts a fresh edit buffer. An already open lesson is returned as is unless reload is set.
// @Tags Teacher
// @Produce json
// @Param lessonId path string true "Lesson instance ID"
// @Param reload query bool false "Discard unsaved edits and reload"
// @Success 200 {object} response.Envelope
// @Router /teacher/lesson/{lessonId} [get]
func (h *TeacherHandler) Lesson(c *gin.Context) {
	api, store, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	clientID, lessonID := store.ClientID(), c.Param("lessonId")
	if c.Query("reload") != "true" {
		if page, err := h.workspace.Page(clientID, lessonID); err == nil {
			response.OK(c, page)
			return
		}
	}
	page, err := h.workspace.Open(c.Request.Context(), clientID, api, lessonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// SetAttendance godoc
// @Summary Edit one student's attendance
// @Description A status applies the quick-fill hours; notes are stored as typed
// @Tags Teacher
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson instance ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher/lesson/{lessonId}/attendance/{studentId} [post]
func (h *TeacherHandler) SetAttendance(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	var req attendanceRequest
	if !bindJSON(c, &req, "attendance") {
		return
	}
	clientID, lessonID, studentID := store.ClientID(), c.Param("lessonId"), c.Param("studentId")

	var (
		entry buffer.Entry
		err   error
	)
	if req.Status == nil && req.Notes == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status or notes is required"))
		return
	}
	if req.Status != nil {
		status, valid := models.ParseAttendanceStatus(*req.Status)
		if !valid {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status"))
			return
		}
		if entry, err = h.workspace.SetStatus(clientID, lessonID, studentID, status); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.Notes != nil {
		if entry, err = h.workspace.SetAttendanceNotes(clientID, lessonID, studentID, *req.Notes); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.OK(c, entry)
}

// MarkAll godoc
// @Summary Mark every student present or absent
// @Tags Teacher
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson instance ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/lesson/{lessonId}/mark-all [post]
func (h *TeacherHandler) MarkAll(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	var req markAllRequest
	if !bindJSON(c, &req, "mark-all") {
		return
	}
	status, valid := models.ParseAttendanceStatus(req.Status)
	if !valid || (status != models.AttendancePresent && status != models.AttendanceAbsent) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status must be present or absent"))
		return
	}
	page, err := h.workspace.MarkAll(store.ClientID(), c.Param("lessonId"), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// EditGrade godoc
// @Summary Edit one student's grade
// @Description The value is read like a numeric field; anything outside 1-10 leaves the grade unset
// @Tags Teacher
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson instance ID"
// @Param studentId path string true "Student ID"
// @Param payload body service.GradeEdit true "Changed grade fields"
// @Success 200 {object} response.Envelope
// @Router /teacher/lesson/{lessonId}/grades/{studentId} [put]
func (h *TeacherHandler) EditGrade(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	var edit service.GradeEdit
	if !bindJSON(c, &edit, "grade") {
		return
	}
	if edit.GradeType != nil && !edit.GradeType.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown grade type"))
		return
	}
	entry, err := h.workspace.EditGrade(store.ClientID(), c.Param("lessonId"), c.Param("studentId"), edit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// Save godoc
// @Summary Save attendance and grades
// @Description Sends attendance for every student, then any set grades. A second save while one runs is refused.
// @Tags Teacher
// @Produce json
// @Param lessonId path string true "Lesson instance ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teacher/lesson/{lessonId}/save [post]
func (h *TeacherHandler) Save(c *gin.Context) {
	api, store, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	result, err := h.workspace.Save(c.Request.Context(), store.ClientID(), c.Param("lessonId"), api)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Close godoc
// @Summary Leave a lesson
// @Description Drops unsaved edits
// @Tags Teacher
// @Param lessonId path string true "Lesson instance ID"
// @Success 204
// @Router /teacher/lesson/{lessonId} [delete]
func (h *TeacherHandler) Close(c *gin.Context) {
	store, ok := storeFromContext(c)
	if !ok {
		return
	}
	h.workspace.Discard(store.ClientID())
	response.NoContent(c)
}
