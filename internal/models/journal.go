package models

// AttendanceRecord is a stored attendance mark as attached to a lesson roster.
type AttendanceRecord struct {
	ID               string           `json:"_id,omitempty"`
	ScheduleInstance Ref              `json:"scheduleInstance"`
	Student          Ref              `json:"student"`
	Teacher          Ref              `json:"teacher"`
	Subject          Ref              `json:"subject"`
	Group            Ref              `json:"group"`
	Semester         Ref              `json:"semester"`
	Date             string           `json:"date,omitempty"`
	LessonType       LessonType       `json:"lessonType,omitempty"`
	Status           AttendanceStatus `json:"status"`
	AttendedHours    int              `json:"attendedHours"`
	MissedHours      int              `json:"missedHours"`
	Notes            string           `json:"notes"`
	MarkedBy         string           `json:"markedBy,omitempty"`
	MarkedAt         string           `json:"markedAt,omitempty"`
}

// GradeRecord is a stored grade.
type GradeRecord struct {
	ID               string    `json:"_id,omitempty"`
	Student          Ref       `json:"student"`
	Subject          Ref       `json:"subject"`
	Teacher          Ref       `json:"teacher"`
	Group            Ref       `json:"group"`
	Semester         Ref       `json:"semester"`
	ScheduleInstance Ref       `json:"scheduleInstance"`
	GradeType        GradeType `json:"gradeType"`
	Value            int       `json:"value"`
	Date             string    `json:"date"`
	Description      string    `json:"description,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	MarkedBy         string    `json:"markedBy,omitempty"`
}

// RosterStudent is a student of a lesson with any attendance and grades already stored.
type RosterStudent struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	Group         Ref               `json:"group"`
	StudentNumber string            `json:"studentNumber,omitempty"`
	IsActive      bool              `json:"isActive"`
	Attendance    *AttendanceRecord `json:"attendance,omitempty"`
	Grades        []GradeRecord     `json:"grades,omitempty"`
}

// LessonRoster is the lesson students response.
type LessonRoster struct {
	Message            string          `json:"message,omitempty"`
	ScheduleInstance   LessonInstance  `json:"scheduleInstance"`
	Students           []RosterStudent `json:"students"`
	IsAttendanceMarked bool            `json:"isAttendanceMarked"`
	IsGradesMarked     bool            `json:"isGradesMarked"`
	TotalStudents      int             `json:"totalStudents"`
	AttendanceCount    int             `json:"attendanceCount"`
	GradesCount        int             `json:"gradesCount"`
}

// AttendanceData is one element of the attendance submission.
type AttendanceData struct {
	StudentID     string           `json:"studentId"`
	Status        AttendanceStatus `json:"status"`
	AttendedHours int              `json:"attendedHours"`
	MissedHours   int              `json:"missedHours"`
	Notes         string           `json:"notes"`
}

// GradeData is one element of the grade submission.
type GradeData struct {
	StudentID   string    `json:"studentId"`
	Value       *int      `json:"value,omitempty"`
	GradeType   GradeType `json:"gradeType"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes"`
}

// AttendanceDetail is a student's attendance record with the lesson embedded.
type AttendanceDetail struct {
	ID               string           `json:"_id"`
	ScheduleInstance LessonSlot       `json:"scheduleInstance"`
	Teacher          Ref              `json:"teacher"`
	Subject          Ref              `json:"subject"`
	Date             string           `json:"date"`
	LessonType       LessonType       `json:"lessonType"`
	Status           AttendanceStatus `json:"status"`
	AttendedHours    int              `json:"attendedHours"`
	MissedHours      int              `json:"missedHours"`
	Notes            string           `json:"notes"`
}

// SubjectAttendanceStats is the per-subject summary computed by the journal server.
type SubjectAttendanceStats struct {
	TotalLessons         int     `json:"totalLessons"`
	PresentCount         int     `json:"presentCount"`
	AbsentCount          int     `json:"absentCount"`
	TotalAttendedHours   int     `json:"totalAttendedHours"`
	TotalMissedHours     int     `json:"totalMissedHours"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// StudentAttendanceBySubject groups a student's attendance for one subject.
type StudentAttendanceBySubject struct {
	Subject Ref                    `json:"subject"`
	Records []AttendanceDetail     `json:"records"`
	Stats   SubjectAttendanceStats `json:"stats"`
}
