package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/aggregate"
	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

const dateLayout = "2006-01-02"

// ScheduleAPI is the part of the journal API the schedule views read.
type ScheduleAPI interface {
	TeacherSchedule(ctx context.Context, filter gateway.DateFilter) ([]models.LessonInstance, error)
	StudentSchedule(ctx context.Context, filter gateway.DateFilter) ([]models.LessonInstance, error)
	ScheduleInstances(ctx context.Context, filter gateway.InstanceFilter) ([]models.LessonInstance, error)
}

// ScheduleService renders day and week schedule views. The lesson source depends on the
// viewer's role: teachers and students see their own schedule, admins every instance.
type ScheduleService struct {
	loc    *time.Location
	clock  Clock
	logger *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(loc *time.Location, clock Clock, logger *zap.Logger) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{loc: loc, clock: clock, logger: logger}
}

// Day lists the lessons of one date ordered by start time.
func (s *ScheduleService) Day(ctx context.Context, api ScheduleAPI, role models.Role, date time.Time) (*dto.DayView, error) {
	key := date.In(s.loc).Format(dateLayout)
	lessons, err := s.fetch(ctx, api, role, gateway.DateFilter{Date: key})
	if err != nil {
		return nil, err
	}
	aggregate.SortByStartTime(lessons)
	return &dto.DayView{Date: key, Lessons: annotateLessons(s.clock.now(), lessons, s.loc, s.logger)}, nil
}

// Week lists the Monday-to-Sunday week containing anchor.
func (s *ScheduleService) Week(ctx context.Context, api ScheduleAPI, role models.Role, anchor time.Time) (*dto.WeekView, error) {
	start := aggregate.WeekStart(anchor, s.loc)
	end := aggregate.WeekEnd(anchor, s.loc)
	lessons, err := s.fetch(ctx, api, role, gateway.DateFilter{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)})
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	days := aggregate.GroupByWeekday(anchor, lessons, s.loc)
	view := &dto.WeekView{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout), Days: make([]dto.WeekDayView, 0, len(days))}
	for _, day := range days {
		view.Days = append(view.Days, dto.WeekDayView{
			Date:      day.Date,
			DayName:   day.DayName,
			DayNumber: day.DayNumber,
			Lessons:   annotateLessons(now, day.Lessons, s.loc, s.logger),
		})
	}
	return view, nil
}

// ParseAnchor reads an optional YYYY-MM-DD query value in the viewer timezone, defaulting to today.
func (s *ScheduleService) ParseAnchor(raw string) (time.Time, error) {
	if raw == "" {
		return s.clock.now().In(s.loc), nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return t, nil
}

func (s *ScheduleService) fetch(ctx context.Context, api ScheduleAPI, role models.Role, filter gateway.DateFilter) ([]models.LessonInstance, error) {
	switch role {
	case models.RoleTeacher:
		return api.TeacherSchedule(ctx, filter)
	case models.RoleStudent:
		return api.StudentSchedule(ctx, filter)
	case models.RoleAdmin:
		return api.ScheduleInstances(ctx, gateway.InstanceFilter{DateFilter: filter})
	}
	return nil, appErrors.ErrForbidden
}
