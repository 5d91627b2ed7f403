package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// AdminAPI is the part of the journal API the admin pages use.
type AdminAPI interface {
	Departments(ctx context.Context) ([]models.Department, error)
	Teachers(ctx context.Context) ([]models.Teacher, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Groups(ctx context.Context) ([]models.Group, error)
	Semesters(ctx context.Context) ([]models.Semester, error)
	Create(ctx context.Context, entity gateway.Entity, form interface{}) (*gateway.Ack, error)
	Update(ctx context.Context, entity gateway.Entity, id string, form interface{}) (*gateway.Ack, error)
	Delete(ctx context.Context, entity gateway.Entity, id string) (*gateway.Ack, error)
	ActivateSemester(ctx context.Context, id string) (*gateway.Ack, error)
	ImportStudents(ctx context.Context, groupID, filename string, content []byte) (*gateway.Ack, error)
	Schedules(ctx context.Context, filter gateway.ScheduleFilter) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, form models.ScheduleForm) (*gateway.Ack, error)
	UpdateSchedule(ctx context.Context, id string, form models.ScheduleForm) (*gateway.Ack, error)
	DeleteSchedule(ctx context.Context, id string) (*gateway.Ack, error)
	UpdateScheduleInstance(ctx context.Context, id string, update models.LessonInstanceUpdate) (*gateway.Ack, error)
	CancelScheduleInstance(ctx context.Context, id string, form models.CancelLessonForm) (*gateway.Ack, error)
}

// AdminService validates admin forms before they reach the journal API and joins the
// lookups admin pages need.
type AdminService struct {
	validator *validator.Validate
	imports   *ImportValidator
	logger    *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(validate *validator.Validate, imports *ImportValidator, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if imports == nil {
		imports = NewImportValidator(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{validator: validate, imports: imports, logger: logger}
}

// Dashboard counts every admin-managed collection. Any failed fetch fails the page.
func (s *AdminService) Dashboard(ctx context.Context, api AdminAPI) (*dto.AdminDashboard, error) {
	var (
		departments []models.Department
		teachers    []models.Teacher
		subjects    []models.Subject
		groups      []models.Group
		semesters   []models.Semester
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { departments, err = api.Departments(gctx); return })
	g.Go(func() (err error) { teachers, err = api.Teachers(gctx); return })
	g.Go(func() (err error) { subjects, err = api.Subjects(gctx); return })
	g.Go(func() (err error) { groups, err = api.Groups(gctx); return })
	g.Go(func() (err error) { semesters, err = api.Semesters(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	students := 0
	for _, group := range groups {
		students += len(group.Students)
	}
	return &dto.AdminDashboard{
		Departments:    len(departments),
		Teachers:       len(teachers),
		Subjects:       len(subjects),
		Groups:         len(groups),
		Students:       students,
		Semesters:      len(semesters),
		ActiveSemester: models.ActiveSemester(semesters),
	}, nil
}

// List returns one admin collection. Teacher and subject pages also carry the departments.
func (s *AdminService) List(ctx context.Context, api AdminAPI, entity gateway.Entity) (*dto.EntityPage, error) {
	page := &dto.EntityPage{Entity: string(entity)}
	switch entity {
	case gateway.EntityDepartments:
		items, err := api.Departments(ctx)
		if err != nil {
			return nil, err
		}
		page.Items = items
	case gateway.EntityTeachers:
		var (
			items       []models.Teacher
			departments []models.Department
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { items, err = api.Teachers(gctx); return })
		g.Go(func() (err error) { departments, err = api.Departments(gctx); return })
		if err := g.Wait(); err != nil {
			return nil, err
		}
		lookup := departmentIndex(departments)
		for i := range items {
			items[i].Department = resolveRef(items[i].Department, lookup)
		}
		page.Items, page.Departments = items, departments
	case gateway.EntitySubjects:
		var (
			items       []models.Subject
			departments []models.Department
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { items, err = api.Subjects(gctx); return })
		g.Go(func() (err error) { departments, err = api.Departments(gctx); return })
		if err := g.Wait(); err != nil {
			return nil, err
		}
		lookup := departmentIndex(departments)
		for i := range items {
			items[i].Department = resolveRef(items[i].Department, lookup)
		}
		page.Items, page.Departments = items, departments
	case gateway.EntityGroups:
		items, err := api.Groups(ctx)
		if err != nil {
			return nil, err
		}
		page.Items = items
	case gateway.EntitySemesters:
		items, err := api.Semesters(ctx)
		if err != nil {
			return nil, err
		}
		page.Items = items
	default:
		return nil, appErrors.ErrNotFound
	}
	return page, nil
}

// Create validates and submits a new entity. The payload is the raw JSON body.
func (s *AdminService) Create(ctx context.Context, api AdminAPI, entity gateway.Entity, payload []byte) (*gateway.Ack, error) {
	form, err := s.decodeForm(entity, payload)
	if err != nil {
		return nil, err
	}
	return api.Create(ctx, entity, form)
}

// Update validates and submits an entity edit.
func (s *AdminService) Update(ctx context.Context, api AdminAPI, entity gateway.Entity, id string, payload []byte) (*gateway.Ack, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	form, err := s.decodeForm(entity, payload)
	if err != nil {
		return nil, err
	}
	return api.Update(ctx, entity, id, form)
}

// Delete removes an entity.
func (s *AdminService) Delete(ctx context.Context, api AdminAPI, entity gateway.Entity, id string) (*gateway.Ack, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return api.Delete(ctx, entity, id)
}

// ActivateSemester makes a semester the active one.
func (s *AdminService) ActivateSemester(ctx context.Context, api AdminAPI, id string) (*gateway.Ack, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return api.ActivateSemester(ctx, id)
}

// ImportStudents pre-validates the spreadsheet and forwards it.
func (s *AdminService) ImportStudents(ctx context.Context, api AdminAPI, groupID, filename string, content []byte) (*dto.ImportReport, error) {
	if groupID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group id is required")
	}
	check, err := s.imports.Validate(filename, content)
	if err != nil {
		return nil, err
	}
	ack, err := api.ImportStudents(ctx, groupID, filename, content)
	if err != nil {
		return nil, err
	}
	s.logger.Info("students imported",
		zap.String("group_id", groupID),
		zap.Int("rows", check.Rows),
		zap.Bool("checked", check.Checked),
		zap.Int("warnings", len(check.Warnings)),
	)
	return &dto.ImportReport{Rows: check.Rows, Checked: check.Checked, Warnings: check.Warnings, Message: ack.Message}, nil
}

// ScheduleManagement joins schedule templates with every lookup the editor needs. Without
// an explicit semester the active one (else the first) is selected.
func (s *AdminService) ScheduleManagement(ctx context.Context, api AdminAPI, filter gateway.ScheduleFilter) (*dto.ScheduleManagementPage, error) {
	page := &dto.ScheduleManagementPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { page.Subjects, err = api.Subjects(gctx); return })
	g.Go(func() (err error) { page.Teachers, err = api.Teachers(gctx); return })
	g.Go(func() (err error) { page.Groups, err = api.Groups(gctx); return })
	g.Go(func() (err error) { page.Semesters, err = api.Semesters(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if filter.SemesterID == "" {
		if active := models.ActiveSemester(page.Semesters); active != nil {
			filter.SemesterID = active.ID
		}
	}
	schedules, err := api.Schedules(ctx, filter)
	if err != nil {
		return nil, err
	}
	page.Schedules = schedules
	page.SelectedSemester = filter.SemesterID
	return page, nil
}

// SaveSchedule validates a schedule template and creates it, or updates it when id is set.
func (s *AdminService) SaveSchedule(ctx context.Context, api AdminAPI, id string, form models.ScheduleForm) (*gateway.Ack, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if form.StartTime >= form.EndTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startTime must be before endTime")
	}
	if id == "" {
		return api.CreateSchedule(ctx, form)
	}
	return api.UpdateSchedule(ctx, id, form)
}

// DeleteSchedule removes a schedule template.
func (s *AdminService) DeleteSchedule(ctx context.Context, api AdminAPI, id string) (*gateway.Ack, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return api.DeleteSchedule(ctx, id)
}

// UpdateInstance edits one lesson instance.
func (s *AdminService) UpdateInstance(ctx context.Context, api AdminAPI, id string, update models.LessonInstanceUpdate) (*gateway.Ack, error) {
	if err := s.validator.Struct(update); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson payload")
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown lesson status %q", *update.Status))
	}
	return api.UpdateScheduleInstance(ctx, id, update)
}

// CancelInstance cancels one lesson instance.
func (s *AdminService) CancelInstance(ctx context.Context, api AdminAPI, id string, form models.CancelLessonForm) (*gateway.Ack, error) {
	return api.CancelScheduleInstance(ctx, id, form)
}

func (s *AdminService) decodeForm(entity gateway.Entity, payload []byte) (interface{}, error) {
	var form interface{}
	switch entity {
	case gateway.EntityDepartments:
		form = &models.DepartmentForm{}
	case gateway.EntityTeachers:
		form = &models.TeacherForm{}
	case gateway.EntitySubjects:
		form = &models.SubjectForm{}
	case gateway.EntityGroups:
		form = &models.GroupForm{}
	case gateway.EntitySemesters:
		form = &models.SemesterForm{}
	default:
		return nil, appErrors.ErrNotFound
	}
	if err := json.Unmarshal(payload, form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid json payload")
	}
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid %s payload", entity))
	}
	return form, nil
}

func departmentIndex(departments []models.Department) map[string]models.Department {
	index := make(map[string]models.Department, len(departments))
	for _, d := range departments {
		index[d.ID] = d
	}
	return index
}

// resolveRef populates a bare department reference from the lookup.
func resolveRef(ref models.Ref, lookup map[string]models.Department) models.Ref {
	if ref.IsPopulated() || ref.IsZero() {
		return ref
	}
	if d, ok := lookup[ref.ID()]; ok {
		return models.Populated(models.Named{ID: d.ID, Name: d.Name})
	}
	return ref
}
