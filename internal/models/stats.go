package models

// TeacherStats is the teacher dashboard summary.
type TeacherStats struct {
	TotalLessons     int                   `json:"totalLessons"`
	CompletedLessons int                   `json:"completedLessons"`
	AvgAttendance    float64               `json:"avgAttendance"`
	SubjectStats     []TeacherSubjectStats `json:"subjectStats"`
	RecentActivity   []TeacherActivity     `json:"recentActivity"`
}

// TeacherSubjectStats summarises one subject a teacher teaches.
type TeacherSubjectStats struct {
	SubjectName   string  `json:"subjectName"`
	TotalLessons  int     `json:"totalLessons"`
	AvgAttendance float64 `json:"avgAttendance"`
	TotalStudents int     `json:"totalStudents"`
}

// TeacherActivity is one recent lesson of a teacher.
type TeacherActivity struct {
	Date             string   `json:"date"`
	Subject          string   `json:"subject"`
	Groups           []string `json:"groups"`
	AttendanceMarked bool     `json:"attendanceMarked"`
}

// GroupAttendanceStats is the group attendance report.
type GroupAttendanceStats struct {
	TotalLessons         int                          `json:"totalLessons"`
	AttendedLessons      int                          `json:"attendedLessons"`
	AttendancePercentage float64                      `json:"attendancePercentage"`
	BySubject            map[string]SubjectAttendance `json:"bySubject"`
}

// SubjectAttendance is an entry of GroupAttendanceStats.BySubject.
type SubjectAttendance struct {
	Total      int     `json:"total"`
	Attended   int     `json:"attended"`
	Percentage float64 `json:"percentage"`
}

// GroupGradeStats is the group grade report.
type GroupGradeStats struct {
	AverageGrade float64                 `json:"averageGrade"`
	GradeCount   int                     `json:"gradeCount"`
	BySubject    map[string]SubjectGrade `json:"bySubject"`
}

// SubjectGrade is an entry of GroupGradeStats.BySubject.
type SubjectGrade struct {
	Average float64       `json:"average"`
	Count   int           `json:"count"`
	Grades  []GradeRecord `json:"grades"`
}

// Analytics carries free-form analytics payloads the portal passes through untouched.
type Analytics map[string]interface{}
