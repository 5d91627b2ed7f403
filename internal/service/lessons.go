package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/lesson"
	"github.com/noah-isme/journal-portal/internal/models"
)

// Clock supplies the current instant. Services take one so lesson statuses are testable.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// annotateLessons derives the time-based status of every lesson at now. A lesson whose
// date or times cannot be read keeps an empty derived status.
func annotateLessons(now time.Time, lessons []models.LessonInstance, loc *time.Location, logger *zap.Logger) []dto.LessonView {
	views := make([]dto.LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, annotateLesson(now, l, loc, logger))
	}
	return views
}

func annotateLesson(now time.Time, l models.LessonInstance, loc *time.Location, logger *zap.Logger) dto.LessonView {
	view := dto.LessonView{LessonInstance: l}
	status, err := lesson.ResolveInstance(now, l, loc)
	if err != nil {
		logger.Debug("lesson status unresolved", zap.String("lesson_id", l.ID), zap.Error(err))
		return view
	}
	view.DerivedStatus = status
	view.Action = lesson.ActionFor(status, l.AttendanceMarked)
	return view
}
