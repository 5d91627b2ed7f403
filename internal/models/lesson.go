package models

// Schedule is a recurring weekly lesson template.
type Schedule struct {
	ID           string     `json:"_id"`
	Subject      Ref        `json:"subject"`
	Teacher      Ref        `json:"teacher"`
	Groups       []Ref      `json:"groups"`
	Semester     Ref        `json:"semester"`
	DayOfWeek    int        `json:"dayOfWeek"`
	WeeksOfMonth []int      `json:"weeksOfMonth"`
	StartTime    string     `json:"startTime"`
	EndTime      string     `json:"endTime"`
	LessonType   LessonType `json:"lessonType"`
	Classroom    string     `json:"classroom"`
	Duration     int        `json:"duration"`
	IsRecurring  bool       `json:"isRecurring"`
	IsActive     bool       `json:"isActive"`
}

// LessonInstance is one dated occurrence of a schedule. Status is the server's view
// and is never replaced by the time-derived status.
type LessonInstance struct {
	ID               string       `json:"_id"`
	Schedule         Ref          `json:"schedule"`
	Subject          Ref          `json:"subject"`
	Teacher          Ref          `json:"teacher"`
	Groups           []Ref        `json:"groups"`
	Semester         Ref          `json:"semester"`
	Date             string       `json:"date"`
	StartTime        string       `json:"startTime"`
	EndTime          string       `json:"endTime"`
	Classroom        string       `json:"classroom"`
	LessonType       LessonType   `json:"lessonType"`
	Status           LessonStatus `json:"status"`
	AttendanceMarked bool         `json:"attendanceMarked"`
	Notes            string       `json:"notes,omitempty"`
	CancelReason     string       `json:"cancelReason,omitempty"`
}

// GroupNames joins the display names of the lesson groups.
func (l LessonInstance) GroupNames() []string {
	names := make([]string, 0, len(l.Groups))
	for _, g := range l.Groups {
		names = append(names, g.Name())
	}
	return names
}

// LessonSlot is the lesson summary embedded in student attendance records.
type LessonSlot struct {
	ID        string `json:"_id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Classroom string `json:"classroom"`
}
