package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/journal-portal/internal/aggregate"
	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
)

// TeacherAPI is the part of the journal API the teacher dashboard reads.
type TeacherAPI interface {
	TeacherScheduleToday(ctx context.Context) ([]models.LessonInstance, error)
	TeacherStats(ctx context.Context, semesterID string) (*models.TeacherStats, error)
}

// TeacherService builds the teacher dashboard.
type TeacherService struct {
	loc    *time.Location
	clock  Clock
	logger *zap.Logger
}

// NewTeacherService constructs the service.
func NewTeacherService(loc *time.Location, clock Clock, logger *zap.Logger) *TeacherService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{loc: loc, clock: clock, logger: logger}
}

// Dashboard joins today's lessons with the teacher statistics. Either failure fails the page.
func (s *TeacherService) Dashboard(ctx context.Context, api TeacherAPI) (*dto.TeacherDashboard, error) {
	var (
		today []models.LessonInstance
		stats *models.TeacherStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		today, err = api.TeacherScheduleToday(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = api.TeacherStats(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggregate.SortByStartTime(today)
	if stats != nil {
		stats.AvgAttendance = aggregate.Round1(stats.AvgAttendance)
		for i := range stats.SubjectStats {
			stats.SubjectStats[i].AvgAttendance = aggregate.Round1(stats.SubjectStats[i].AvgAttendance)
		}
	}
	now := s.clock.now()
	return &dto.TeacherDashboard{
		Date:  now.In(s.loc).Format(dateLayout),
		Today: annotateLessons(now, today, s.loc, s.logger),
		Stats: stats,
	}, nil
}
