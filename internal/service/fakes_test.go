package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/journal-portal/internal/gateway"
	"github.com/noah-isme/journal-portal/internal/models"
)

var testNow = time.Date(2024, 9, 3, 10, 0, 0, 0, time.UTC)

func fixedClock() Clock { return func() time.Time { return testNow } }

// fakeAPI implements every service-facing slice of the journal API.
type fakeAPI struct {
	mu sync.Mutex

	departments []models.Department
	teachers    []models.Teacher
	subjects    []models.Subject
	groups      []models.Group
	semesters   []models.Semester
	schedules   []models.Schedule
	lessons     []models.LessonInstance
	grades      []models.GradeRecord
	attendance  []models.StudentAttendanceBySubject
	stats       *models.TeacherStats
	roster      *models.LessonRoster
	blob        *gateway.Blob

	failOn map[string]error
	calls  []string

	dateFilters     []gateway.DateFilter
	subjectFilters  []gateway.SubjectFilter
	scheduleFilters []gateway.ScheduleFilter
	created         []interface{}
	imported        []byte

	rosterGate          chan struct{}
	attendanceSubmitted []models.AttendanceData
	gradesSubmitted     []models.GradeData
}

func (f *fakeAPI) hit(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.failOn[op]
}

func (f *fakeAPI) called(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (f *fakeAPI) Departments(context.Context) ([]models.Department, error) {
	return f.departments, f.hit("departments")
}

func (f *fakeAPI) Teachers(context.Context) ([]models.Teacher, error) {
	return f.teachers, f.hit("teachers")
}

func (f *fakeAPI) Subjects(context.Context) ([]models.Subject, error) {
	return f.subjects, f.hit("subjects")
}

func (f *fakeAPI) Groups(context.Context) ([]models.Group, error) {
	return f.groups, f.hit("groups")
}

func (f *fakeAPI) Semesters(context.Context) ([]models.Semester, error) {
	return f.semesters, f.hit("semesters")
}

func (f *fakeAPI) Create(_ context.Context, entity gateway.Entity, form interface{}) (*gateway.Ack, error) {
	f.mu.Lock()
	f.created = append(f.created, form)
	f.mu.Unlock()
	return &gateway.Ack{Message: "created"}, f.hit("create_" + string(entity))
}

func (f *fakeAPI) Update(_ context.Context, entity gateway.Entity, _ string, form interface{}) (*gateway.Ack, error) {
	f.mu.Lock()
	f.created = append(f.created, form)
	f.mu.Unlock()
	return &gateway.Ack{Message: "updated"}, f.hit("update_" + string(entity))
}

func (f *fakeAPI) Delete(_ context.Context, entity gateway.Entity, _ string) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "deleted"}, f.hit("delete_" + string(entity))
}

func (f *fakeAPI) ActivateSemester(context.Context, string) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "activated"}, f.hit("activate_semester")
}

func (f *fakeAPI) ImportStudents(_ context.Context, _, _ string, content []byte) (*gateway.Ack, error) {
	f.mu.Lock()
	f.imported = content
	f.mu.Unlock()
	return &gateway.Ack{Message: "imported"}, f.hit("import_students")
}

func (f *fakeAPI) Schedules(_ context.Context, filter gateway.ScheduleFilter) ([]models.Schedule, error) {
	f.mu.Lock()
	f.scheduleFilters = append(f.scheduleFilters, filter)
	f.mu.Unlock()
	return f.schedules, f.hit("schedules")
}

func (f *fakeAPI) CreateSchedule(context.Context, models.ScheduleForm) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "created"}, f.hit("create_schedule")
}

func (f *fakeAPI) UpdateSchedule(context.Context, string, models.ScheduleForm) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "updated"}, f.hit("update_schedule")
}

func (f *fakeAPI) DeleteSchedule(context.Context, string) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "deleted"}, f.hit("delete_schedule")
}

func (f *fakeAPI) UpdateScheduleInstance(context.Context, string, models.LessonInstanceUpdate) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "updated"}, f.hit("update_instance")
}

func (f *fakeAPI) CancelScheduleInstance(context.Context, string, models.CancelLessonForm) (*gateway.Ack, error) {
	return &gateway.Ack{Message: "cancelled"}, f.hit("cancel_instance")
}

func (f *fakeAPI) TeacherSchedule(_ context.Context, filter gateway.DateFilter) ([]models.LessonInstance, error) {
	f.mu.Lock()
	f.dateFilters = append(f.dateFilters, filter)
	f.mu.Unlock()
	return f.lessons, f.hit("teacher_schedule")
}

func (f *fakeAPI) StudentSchedule(_ context.Context, filter gateway.DateFilter) ([]models.LessonInstance, error) {
	f.mu.Lock()
	f.dateFilters = append(f.dateFilters, filter)
	f.mu.Unlock()
	return f.lessons, f.hit("student_schedule")
}

func (f *fakeAPI) ScheduleInstances(_ context.Context, filter gateway.InstanceFilter) ([]models.LessonInstance, error) {
	f.mu.Lock()
	f.dateFilters = append(f.dateFilters, filter.DateFilter)
	f.mu.Unlock()
	return f.lessons, f.hit("instances")
}

func (f *fakeAPI) TeacherScheduleToday(context.Context) ([]models.LessonInstance, error) {
	return f.lessons, f.hit("teacher_today")
}

func (f *fakeAPI) TeacherStats(context.Context, string) (*models.TeacherStats, error) {
	return f.stats, f.hit("teacher_stats")
}

func (f *fakeAPI) StudentScheduleToday(context.Context) ([]models.LessonInstance, error) {
	return f.lessons, f.hit("student_today")
}

func (f *fakeAPI) StudentGrades(_ context.Context, filter gateway.SubjectFilter) ([]models.GradeRecord, error) {
	f.mu.Lock()
	f.subjectFilters = append(f.subjectFilters, filter)
	f.mu.Unlock()
	out := make([]models.GradeRecord, len(f.grades))
	copy(out, f.grades)
	return out, f.hit("student_grades")
}

func (f *fakeAPI) StudentAttendance(_ context.Context, filter gateway.SubjectFilter) ([]models.StudentAttendanceBySubject, int, error) {
	f.mu.Lock()
	f.subjectFilters = append(f.subjectFilters, filter)
	f.mu.Unlock()
	return f.attendance, len(f.attendance), f.hit("student_attendance")
}

func (f *fakeAPI) StudentStats(context.Context, string) (models.Analytics, error) {
	return models.Analytics{"averageGrade": 8.5}, f.hit("student_stats")
}

func (f *fakeAPI) LessonStudents(ctx context.Context, _ string) (*models.LessonRoster, error) {
	if f.rosterGate != nil {
		select {
		case <-f.rosterGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.roster, f.hit("lesson_students")
}

func (f *fakeAPI) MarkAttendance(_ context.Context, _ string, data []models.AttendanceData) error {
	f.mu.Lock()
	f.attendanceSubmitted = data
	f.mu.Unlock()
	return f.hit("mark_attendance")
}

func (f *fakeAPI) SubmitGrades(_ context.Context, _ string, data []models.GradeData) error {
	f.mu.Lock()
	f.gradesSubmitted = data
	f.mu.Unlock()
	return f.hit("submit_grades")
}

func (f *fakeAPI) AttendanceReport(context.Context, gateway.ReportFilter) (*gateway.Blob, error) {
	return f.blob, f.hit("attendance_report")
}

func (f *fakeAPI) GradesReport(context.Context, gateway.ReportFilter) (*gateway.Blob, error) {
	return f.blob, f.hit("grades_report")
}

func (f *fakeAPI) GroupAttendanceStats(context.Context, gateway.GroupStatsFilter) (*models.GroupAttendanceStats, error) {
	return &models.GroupAttendanceStats{}, f.hit("group_attendance")
}

func (f *fakeAPI) GroupGradeStats(context.Context, gateway.GroupStatsFilter) (*models.GroupGradeStats, error) {
	return &models.GroupGradeStats{}, f.hit("group_grades")
}

func (f *fakeAPI) StudentAnalytics(context.Context, string, string) (models.Analytics, error) {
	return models.Analytics{}, f.hit("student_analytics")
}

func (f *fakeAPI) SemesterAnalytics(context.Context, string) (models.Analytics, error) {
	return models.Analytics{}, f.hit("semester_analytics")
}

var (
	_ AdminAPI    = (*fakeAPI)(nil)
	_ ScheduleAPI = (*fakeAPI)(nil)
	_ TeacherAPI  = (*fakeAPI)(nil)
	_ StudentAPI  = (*fakeAPI)(nil)
	_ LessonAPI   = (*fakeAPI)(nil)
	_ ReportAPI   = (*fakeAPI)(nil)

	_ AdminAPI    = (*gateway.Session)(nil)
	_ ScheduleAPI = (*gateway.Session)(nil)
	_ TeacherAPI  = (*gateway.Session)(nil)
	_ StudentAPI  = (*gateway.Session)(nil)
	_ LessonAPI   = (*gateway.Session)(nil)
	_ ReportAPI   = (*gateway.Session)(nil)
)
