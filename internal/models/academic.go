package models

import "time"

// Department is a faculty department.
type Department struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Head        string `json:"head,omitempty"`
	Teachers    []Ref  `json:"teachers,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// Teacher is a teaching staff member. Department arrives populated on admin listings.
type Teacher struct {
	ID         string     `json:"_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Department Ref        `json:"department"`
	Subjects   []Ref      `json:"subjects,omitempty"`
	IsActive   bool       `json:"isActive"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

// SubjectHours splits the subject load by activity.
type SubjectHours struct {
	LectureHours   *int `json:"lectureHours,omitempty" validate:"omitempty,min=0"`
	PracticalHours *int `json:"practicalHours,omitempty" validate:"omitempty,min=0"`
	LabHours       *int `json:"labHours,omitempty" validate:"omitempty,min=0"`
}

// Subject is a taught discipline.
type Subject struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Code        string        `json:"code,omitempty"`
	Description string        `json:"description,omitempty"`
	Department  Ref           `json:"department"`
	TotalHours  *SubjectHours `json:"totalHours,omitempty"`
	IsActive    bool          `json:"isActive"`
}

// Group is a student group. Students arrive populated on admin listings.
type Group struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Course    int    `json:"course"`
	Students  []Ref  `json:"students"`
	IsActive  bool   `json:"isActive"`
}

// Semester is an academic half-year. At most one is active.
type Semester struct {
	ID            string       `json:"_id"`
	Name          SemesterName `json:"name"`
	Year          int          `json:"year"`
	StartDate     string       `json:"startDate"`
	EndDate       string       `json:"endDate"`
	IsActive      bool         `json:"isActive"`
	ExamStartDate string       `json:"examStartDate,omitempty"`
	ExamEndDate   string       `json:"examEndDate,omitempty"`
}

// ActiveSemester returns the active semester, else the first one, else nil.
func ActiveSemester(semesters []Semester) *Semester {
	for i := range semesters {
		if semesters[i].IsActive {
			return &semesters[i]
		}
	}
	if len(semesters) > 0 {
		return &semesters[0]
	}
	return nil
}
