package dto

import (
	"github.com/noah-isme/journal-portal/internal/aggregate"
	"github.com/noah-isme/journal-portal/internal/buffer"
	"github.com/noah-isme/journal-portal/internal/lesson"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
)

// SessionView is the public projection of a client session. The token never leaves the portal.
type SessionView struct {
	User            *models.Identity    `json:"user"`
	Loading         bool                `json:"loading"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	Role            models.Role         `json:"role,omitempty"`
	Permissions     session.Permissions `json:"permissions"`
	Redirect        string              `json:"redirect,omitempty"`
}

// NewSessionView projects a session state.
func NewSessionView(st session.State) SessionView {
	return SessionView{
		User:            st.Identity,
		Loading:         st.Loading,
		IsAuthenticated: st.IsAuthenticated(),
		Role:            st.Role(),
		Permissions:     st.Permissions(),
	}
}

// LessonView is a lesson instance with its time-derived status. Status (server) and
// DerivedStatus are independent.
type LessonView struct {
	models.LessonInstance
	DerivedStatus lesson.Status `json:"derivedStatus,omitempty"`
	Action        lesson.Action `json:"action,omitempty"`
}

// DayView lists the lessons of one day ordered by start time.
type DayView struct {
	Date    string       `json:"date"`
	Lessons []LessonView `json:"lessons"`
}

// WeekDayView is one column of the week grid.
type WeekDayView struct {
	Date      string       `json:"date"`
	DayName   string       `json:"dayName"`
	DayNumber int          `json:"dayNumber"`
	Lessons   []LessonView `json:"lessons"`
}

// WeekView is the Monday-to-Sunday grid around the anchor date.
type WeekView struct {
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      []WeekDayView `json:"days"`
}

// AdminDashboard holds the entity counts of the admin landing page.
type AdminDashboard struct {
	Departments    int              `json:"departments"`
	Teachers       int              `json:"teachers"`
	Subjects       int              `json:"subjects"`
	Groups         int              `json:"groups"`
	Students       int              `json:"students"`
	Semesters      int              `json:"semesters"`
	ActiveSemester *models.Semester `json:"activeSemester,omitempty"`
}

// EntityPage is an admin listing with the lookups its forms need.
type EntityPage struct {
	Entity      string              `json:"entity"`
	Items       interface{}         `json:"items"`
	Departments []models.Department `json:"departments,omitempty"`
}

// ScheduleManagementPage joins schedule templates with every lookup the editor needs.
type ScheduleManagementPage struct {
	Schedules        []models.Schedule `json:"schedules"`
	Subjects         []models.Subject  `json:"subjects"`
	Teachers         []models.Teacher  `json:"teachers"`
	Groups           []models.Group    `json:"groups"`
	Semesters        []models.Semester `json:"semesters"`
	SelectedSemester string            `json:"selectedSemester,omitempty"`
}

// ImportReport is the outcome of a student spreadsheet import. Rows is only counted
// when Checked is set; legacy .xls files are forwarded as is.
type ImportReport struct {
	Rows     int              `json:"rows"`
	Checked  bool             `json:"checked"`
	Warnings []ImportRowError `json:"warnings,omitempty"`
	Message  string           `json:"message"`
}

// ImportRowError describes a spreadsheet row the import would reject.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// TeacherDashboard is the teacher landing page.
type TeacherDashboard struct {
	Date  string               `json:"date"`
	Today []LessonView         `json:"today"`
	Stats *models.TeacherStats `json:"stats,omitempty"`
}

// LessonPage is the open lesson workspace.
type LessonPage struct {
	Lesson             LessonView     `json:"lesson"`
	Entries            []buffer.Entry `json:"entries"`
	Saving             bool           `json:"saving"`
	IsAttendanceMarked bool           `json:"isAttendanceMarked"`
	IsGradesMarked     bool           `json:"isGradesMarked"`
	TotalStudents      int            `json:"totalStudents"`
	GradeTypes         []string       `json:"gradeTypes"`
}

// SaveResult reports a successful lesson save.
type SaveResult struct {
	LessonID string             `json:"lessonId"`
	Saved    buffer.FlushResult `json:"saved"`
	Message  string             `json:"message"`
}

// StudentDashboard is the student landing page.
type StudentDashboard struct {
	Date       string                     `json:"date"`
	Today      []LessonView               `json:"today"`
	Grades     aggregate.GradeOverview    `json:"grades"`
	Attendance aggregate.AttendanceTotals `json:"attendance"`
}

// GradesPage lists the student's grades grouped by subject.
type GradesPage struct {
	Overview         aggregate.GradeOverview   `json:"overview"`
	Subjects         []aggregate.SubjectGrades `json:"subjects"`
	Semesters        []models.Semester         `json:"semesters"`
	SelectedSemester string                    `json:"selectedSemester,omitempty"`
}

// AttendancePage lists the student's attendance grouped by subject.
type AttendancePage struct {
	Subjects         []models.StudentAttendanceBySubject `json:"subjects"`
	Totals           aggregate.AttendanceTotals          `json:"totals"`
	TotalRecords     int                                 `json:"totalRecords"`
	Semesters        []models.Semester                   `json:"semesters"`
	SelectedSemester string                              `json:"selectedSemester,omitempty"`
}

// MetricsSnapshot summarises portal traffic for the readiness endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64  `json:"requestsTotal"`
	AverageRequestDurationMs float64 `json:"averageRequestDurationMs"`
	UpstreamCalls            uint64  `json:"upstreamCalls"`
	UpstreamFailures         uint64  `json:"upstreamFailures"`
	AverageUpstreamMs        float64 `json:"averageUpstreamMs"`
	ActiveClients            int     `json:"activeClients"`
	AuthenticatedClients     int     `json:"authenticatedClients"`
	Goroutines               int     `json:"goroutines"`
}
