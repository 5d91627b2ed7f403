package gateway

import "net/url"

// DateFilter narrows schedule queries to one date or a range (YYYY-MM-DD).
type DateFilter struct {
	Date      string
	StartDate string
	EndDate   string
}

func (f DateFilter) values() url.Values {
	q := url.Values{}
	setIf(q, "date", f.Date)
	setIf(q, "startDate", f.StartDate)
	setIf(q, "endDate", f.EndDate)
	return q
}

// ScheduleFilter narrows schedule template queries.
type ScheduleFilter struct {
	SemesterID string `form:"semesterId"`
	TeacherID  string `form:"teacherId"`
	GroupID    string `form:"groupId"`
	SubjectID  string `form:"subjectId"`
}

func (f ScheduleFilter) values() url.Values {
	q := url.Values{}
	setIf(q, "semesterId", f.SemesterID)
	setIf(q, "teacherId", f.TeacherID)
	setIf(q, "groupId", f.GroupID)
	setIf(q, "subjectId", f.SubjectID)
	return q
}

// InstanceFilter narrows lesson instance queries.
type InstanceFilter struct {
	SemesterID string
	TeacherID  string
	GroupID    string
	DateFilter
}

func (f InstanceFilter) values() url.Values {
	q := f.DateFilter.values()
	setIf(q, "semesterId", f.SemesterID)
	setIf(q, "teacherId", f.TeacherID)
	setIf(q, "groupId", f.GroupID)
	return q
}

// SubjectFilter narrows the student's attendance and grade queries.
type SubjectFilter struct {
	SemesterID string `form:"semesterId"`
	SubjectID  string `form:"subjectId"`
}

func (f SubjectFilter) values() url.Values {
	q := url.Values{}
	setIf(q, "semesterId", f.SemesterID)
	setIf(q, "subjectId", f.SubjectID)
	return q
}

// ReportFilter selects the spreadsheet report. Kind is the lesson type for attendance
// reports and the grade type for grade reports.
type ReportFilter struct {
	GroupID    string `form:"groupId" validate:"required"`
	SubjectID  string `form:"subjectId" validate:"required"`
	SemesterID string `form:"semesterId" validate:"required"`
	Kind       string `form:"kind"`
}

func (f ReportFilter) values(kindKey string) url.Values {
	q := url.Values{}
	setIf(q, "groupId", f.GroupID)
	setIf(q, "subjectId", f.SubjectID)
	setIf(q, "semesterId", f.SemesterID)
	setIf(q, kindKey, f.Kind)
	return q
}

// GroupStatsFilter selects a group report.
type GroupStatsFilter struct {
	GroupID    string `form:"groupId" validate:"required"`
	SemesterID string `form:"semesterId"`
	SubjectID  string `form:"subjectId"`
}

func (f GroupStatsFilter) values() url.Values {
	q := url.Values{}
	setIf(q, "groupId", f.GroupID)
	setIf(q, "semesterId", f.SemesterID)
	setIf(q, "subjectId", f.SubjectID)
	return q
}
