package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/service"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/response"
)

type scheduleService interface {
	Day(ctx context.Context, api service.ScheduleAPI, role models.Role, date time.Time) (*dto.DayView, error)
	Week(ctx context.Context, api service.ScheduleAPI, role models.Role, anchor time.Time) (*dto.WeekView, error)
	ParseAnchor(raw string) (time.Time, error)
}

// ScheduleHandler serves the day and week schedule of whoever is signed in.
type ScheduleHandler struct {
	api     APIFactory
	service scheduleService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(api APIFactory, svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{api: api, service: svc}
}

// Schedule godoc
// @Summary Schedule view
// @Description Day or week view around a date. Teachers and students see their own lessons, admins every lesson instance.
// @Tags Schedule
// @Produce json
// @Param view query string false "day (default) or week"
// @Param date query string false "Anchor date YYYY-MM-DD, defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher/schedule [get]
// @Router /student/schedule [get]
// @Router /admin/schedule [get]
func (h *ScheduleHandler) Schedule(c *gin.Context) {
	api, store, ok := apiFromContext(c, h.api)
	if !ok {
		return
	}
	anchor, err := h.service.ParseAnchor(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	role := store.Snapshot().Role()

	switch c.DefaultQuery("view", "day") {
	case "day":
		view, err := h.service.Day(c.Request.Context(), api, role, anchor)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, view)
	case "week":
		view, err := h.service.Week(c.Request.Context(), api, role, anchor)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, view)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "view must be day or week"))
	}
}
