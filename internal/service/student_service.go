package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/journal-portal/internal/aggregate"
	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/lesson"
	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
	"github.com/noah-isme/journal-portal/pkg/export"
)

// StudentAPI is the part of the journal API the student pages read.
type StudentAPI interface {
	StudentScheduleToday(ctx context.Context) ([]models.LessonInstance, error)
	StudentGrades(ctx context.Context, filter gateway.SubjectFilter) ([]models.GradeRecord, error)
	StudentAttendance(ctx context.Context, filter gateway.SubjectFilter) ([]models.StudentAttendanceBySubject, int, error)
	Semesters(ctx context.Context) ([]models.Semester, error)
	StudentStats(ctx context.Context, semesterID string) (models.Analytics, error)
}

// ExportFormat selects the rendering of a student export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, summary ...string) ([]byte, error)
}

// StudentService builds the student dashboard, grade and attendance views.
type StudentService struct {
	loc    *time.Location
	clock  Clock
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(loc *time.Location, clock Clock, logger *zap.Logger) *StudentService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		loc:    loc,
		clock:  clock,
		csv:    export.NewCSVExporter(export.WithBOM()),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Dashboard joins today's lessons with grade and attendance summaries.
func (s *StudentService) Dashboard(ctx context.Context, api StudentAPI) (*dto.StudentDashboard, error) {
	var (
		today      []models.LessonInstance
		grades     []models.GradeRecord
		attendance []models.StudentAttendanceBySubject
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		today, err = api.StudentScheduleToday(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		grades, err = api.StudentGrades(gctx, gateway.SubjectFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		attendance, _, err = api.StudentAttendance(gctx, gateway.SubjectFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggregate.SortByStartTime(today)
	now := s.clock.now()
	return &dto.StudentDashboard{
		Date:       now.In(s.loc).Format(dateLayout),
		Today:      annotateLessons(now, today, s.loc, s.logger),
		Grades:     aggregate.OverviewOf(grades),
		Attendance: aggregate.TotalAttendance(attendance),
	}, nil
}

// Grades groups the student's grades by subject.
func (s *StudentService) Grades(ctx context.Context, api StudentAPI, filter gateway.SubjectFilter) (*dto.GradesPage, error) {
	var (
		grades    []models.GradeRecord
		semesters []models.Semester
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		grades, err = api.StudentGrades(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		semesters, err = api.Semesters(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.GradesPage{
		Overview:         aggregate.OverviewOf(grades),
		Subjects:         aggregate.GroupGradesBySubject(grades),
		Semesters:        semesters,
		SelectedSemester: filter.SemesterID,
	}, nil
}

// Attendance lists attendance by subject. Without an explicit semester the active one
// (else the first) is selected.
func (s *StudentService) Attendance(ctx context.Context, api StudentAPI, filter gateway.SubjectFilter) (*dto.AttendancePage, error) {
	semesters, err := api.Semesters(ctx)
	if err != nil {
		return nil, err
	}
	if filter.SemesterID == "" {
		if active := models.ActiveSemester(semesters); active != nil {
			filter.SemesterID = active.ID
		}
	}
	subjects, total, err := api.StudentAttendance(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.AttendancePage{
		Subjects:         aggregate.SortAttendanceByDateDesc(subjects),
		Totals:           aggregate.TotalAttendance(subjects),
		TotalRecords:     total,
		Semesters:        semesters,
		SelectedSemester: filter.SemesterID,
	}, nil
}

// Stats passes the server-computed student statistics through for one semester, or all
// semesters when semesterID is empty.
func (s *StudentService) Stats(ctx context.Context, api StudentAPI, semesterID string) (models.Analytics, error) {
	stats, err := api.StudentStats(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = models.Analytics{}
	}
	return stats, nil
}

// ExportGrades renders the student's grades as CSV or PDF.
func (s *StudentService) ExportGrades(ctx context.Context, api StudentAPI, format ExportFormat, filter gateway.SubjectFilter) (*ExportFile, error) {
	grades, err := api.StudentGrades(ctx, filter)
	if err != nil {
		return nil, err
	}
	aggregate.SortGradesByDateDesc(grades)
	dataset := export.Dataset{Headers: []string{"date", "subject", "gradeType", "value", "notes"}}
	for _, g := range grades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"date":      lesson.DayKey(g.Date, s.loc),
			"subject":   g.Subject.Name(),
			"gradeType": string(g.GradeType),
			"value":     strconv.Itoa(g.Value),
			"notes":     g.Notes,
		})
	}

	stamp := s.clock.now().In(s.loc).Format("20060102")
	switch format {
	case ExportCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render grades csv")
		}
		return &ExportFile{Data: data, ContentType: "text/csv; charset=utf-8", Filename: "grades-" + stamp + ".csv"}, nil
	case ExportPDF:
		overview := aggregate.OverviewOf(grades)
		summary := []string{
			fmt.Sprintf("Grades: %d", overview.Count),
			fmt.Sprintf("Average: %.1f", overview.Display),
			fmt.Sprintf("Subjects: %d", overview.Subjects),
		}
		data, err := s.pdf.Render(dataset, "Grades", summary...)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render grades pdf")
		}
		return &ExportFile{Data: data, ContentType: "application/pdf", Filename: "grades-" + stamp + ".pdf"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

// ParseExportFormat validates a format query value.
func ParseExportFormat(raw string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExportCSV:
		return ExportCSV, true
	case ExportPDF:
		return ExportPDF, true
	}
	return "", false
}
