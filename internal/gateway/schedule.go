package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/journal-portal/internal/models"
)

// Schedules lists recurring schedule templates.
func (s *Session) Schedules(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, error) {
	return list[models.Schedule](ctx, s, "list_schedules", "/schedules", "schedules", filter.values())
}

// CreateSchedule adds a schedule template.
func (s *Session) CreateSchedule(ctx context.Context, form models.ScheduleForm) (*Ack, error) {
	return s.ack(ctx, "create_schedule", http.MethodPost, "/schedules", form)
}

// UpdateSchedule edits a schedule template.
func (s *Session) UpdateSchedule(ctx context.Context, id string, form models.ScheduleForm) (*Ack, error) {
	return s.ack(ctx, "update_schedule", http.MethodPut, "/schedules/"+url.PathEscape(id), form)
}

// DeleteSchedule removes a schedule template.
func (s *Session) DeleteSchedule(ctx context.Context, id string) (*Ack, error) {
	return s.ack(ctx, "delete_schedule", http.MethodDelete, "/schedules/"+url.PathEscape(id), nil)
}

// ScheduleInstances lists materialised lessons.
func (s *Session) ScheduleInstances(ctx context.Context, filter InstanceFilter) ([]models.LessonInstance, error) {
	return list[models.LessonInstance](ctx, s, "list_instances", "/schedule-instances", "instances", filter.values())
}

// UpdateScheduleInstance edits one lesson.
func (s *Session) UpdateScheduleInstance(ctx context.Context, id string, update models.LessonInstanceUpdate) (*Ack, error) {
	return s.ack(ctx, "update_instance", http.MethodPut, "/schedule-instances/"+url.PathEscape(id), update)
}

// CancelScheduleInstance cancels one lesson.
func (s *Session) CancelScheduleInstance(ctx context.Context, id string, form models.CancelLessonForm) (*Ack, error) {
	return s.ack(ctx, "cancel_instance", http.MethodPost, "/schedule-instances/"+url.PathEscape(id)+"/cancel", form)
}

// TeacherSchedule lists the signed-in teacher's lessons.
func (s *Session) TeacherSchedule(ctx context.Context, filter DateFilter) ([]models.LessonInstance, error) {
	return list[models.LessonInstance](ctx, s, "teacher_schedule", "/teacher/schedule", "schedule", filter.values())
}

// TeacherScheduleToday lists the signed-in teacher's lessons for today.
func (s *Session) TeacherScheduleToday(ctx context.Context) ([]models.LessonInstance, error) {
	return list[models.LessonInstance](ctx, s, "teacher_schedule_today", "/teacher/schedule/today", "schedule", nil)
}

// StudentSchedule lists the signed-in student's lessons.
func (s *Session) StudentSchedule(ctx context.Context, filter DateFilter) ([]models.LessonInstance, error) {
	return list[models.LessonInstance](ctx, s, "student_schedule", "/student/schedule", "schedule", filter.values())
}

// StudentScheduleToday lists the signed-in student's lessons for today.
func (s *Session) StudentScheduleToday(ctx context.Context) ([]models.LessonInstance, error) {
	return list[models.LessonInstance](ctx, s, "student_schedule_today", "/student/schedule/today", "schedule", nil)
}
