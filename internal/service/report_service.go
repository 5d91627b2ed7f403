package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// ReportAPI is the part of the journal API the report pages use.
type ReportAPI interface {
	AttendanceReport(ctx context.Context, filter gateway.ReportFilter) (*gateway.Blob, error)
	GradesReport(ctx context.Context, filter gateway.ReportFilter) (*gateway.Blob, error)
	GroupAttendanceStats(ctx context.Context, filter gateway.GroupStatsFilter) (*models.GroupAttendanceStats, error)
	GroupGradeStats(ctx context.Context, filter gateway.GroupStatsFilter) (*models.GroupGradeStats, error)
	StudentAnalytics(ctx context.Context, studentID, semesterID string) (models.Analytics, error)
	SemesterAnalytics(ctx context.Context, semesterID string) (models.Analytics, error)
}

// ReportKind selects a spreadsheet report.
type ReportKind string

const (
	ReportAttendance ReportKind = "attendance"
	ReportGrades     ReportKind = "grades"
)

const spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService validates report filters and proxies downloads.
type ReportService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{validator: validate, logger: logger}
}

// Download fetches a spreadsheet report, filling in a content type and filename when the
// server omits them.
func (s *ReportService) Download(ctx context.Context, api ReportAPI, kind ReportKind, filter gateway.ReportFilter) (*gateway.Blob, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report filter")
	}
	var (
		blob *gateway.Blob
		err  error
	)
	switch kind {
	case ReportAttendance:
		if filter.Kind != "" && !models.LessonType(filter.Kind).Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown lesson type")
		}
		blob, err = api.AttendanceReport(ctx, filter)
	case ReportGrades:
		if filter.Kind != "" && !models.GradeType(filter.Kind).Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown grade type")
		}
		blob, err = api.GradesReport(ctx, filter)
	default:
		return nil, appErrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if blob.ContentType == "" {
		blob.ContentType = spreadsheetContentType
	}
	if blob.Filename == "" {
		blob.Filename = string(kind) + "-report.xlsx"
	}
	s.logger.Debug("report downloaded", zap.String("kind", string(kind)), zap.Int("bytes", len(blob.Data)))
	return blob, nil
}

// GroupAttendance loads a group attendance report.
func (s *ReportService) GroupAttendance(ctx context.Context, api ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupAttendanceStats, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group filter")
	}
	return api.GroupAttendanceStats(ctx, filter)
}

// GroupGrades loads a group grade report.
func (s *ReportService) GroupGrades(ctx context.Context, api ReportAPI, filter gateway.GroupStatsFilter) (*models.GroupGradeStats, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group filter")
	}
	return api.GroupGradeStats(ctx, filter)
}

// StudentAnalytics loads analytics for one student.
func (s *ReportService) StudentAnalytics(ctx context.Context, api ReportAPI, studentID, semesterID string) (models.Analytics, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	return api.StudentAnalytics(ctx, studentID, semesterID)
}

// SemesterAnalytics loads analytics for one semester.
func (s *ReportService) SemesterAnalytics(ctx context.Context, api ReportAPI, semesterID string) (models.Analytics, error) {
	if semesterID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester id is required")
	}
	return api.SemesterAnalytics(ctx, semesterID)
}
