package models

// AdminLoginForm holds admin credentials.
type AdminLoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// TeacherLoginForm holds teacher credentials.
type TeacherLoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// StudentLoginForm holds student credentials. Students sign in by name and group.
type StudentLoginForm struct {
	Name      string `json:"name" validate:"required,min=2"`
	GroupName string `json:"groupName" validate:"required,min=1"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Credentials is the union of login fields accepted by the portal.
type Credentials struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	GroupName string `json:"groupName"`
	Password  string `json:"password"`
}

// ForRole projects the credentials onto the role-specific login form.
func (c Credentials) ForRole(role Role) (interface{}, bool) {
	switch role {
	case RoleAdmin:
		return AdminLoginForm{Email: c.Email, Password: c.Password}, true
	case RoleTeacher:
		return TeacherLoginForm{Email: c.Email, Password: c.Password}, true
	case RoleStudent:
		return StudentLoginForm{Name: c.Name, GroupName: c.GroupName, Password: c.Password}, true
	}
	return nil, false
}

// ChangePasswordForm is the change-password payload.
type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// RegisterAdminForm bootstraps the first administrator.
type RegisterAdminForm struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DepartmentForm creates or updates a department.
type DepartmentForm struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description,omitempty"`
	Head        string `json:"head,omitempty"`
}

// TeacherForm creates or updates a teacher.
type TeacherForm struct {
	Name       string `json:"name" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department" validate:"required"`
}

// SubjectForm creates or updates a subject.
type SubjectForm struct {
	Name        string        `json:"name" validate:"required,min=1"`
	Code        string        `json:"code,omitempty"`
	Description string        `json:"description,omitempty"`
	Department  string        `json:"department" validate:"required"`
	TotalHours  *SubjectHours `json:"totalHours,omitempty" validate:"omitempty"`
}

// GroupForm creates or updates a group.
type GroupForm struct {
	Name      string `json:"name" validate:"required,min=1"`
	Specialty string `json:"specialty" validate:"required,min=1"`
	Course    int    `json:"course" validate:"min=1,max=6"`
}

// SemesterForm creates a semester.
type SemesterForm struct {
	Name          SemesterName `json:"name" validate:"required,oneof=Осенний Весенний"`
	Year          int          `json:"year" validate:"min=2020,max=2030"`
	StartDate     string       `json:"startDate" validate:"required"`
	EndDate       string       `json:"endDate" validate:"required"`
	ExamStartDate string       `json:"examStartDate,omitempty"`
	ExamEndDate   string       `json:"examEndDate,omitempty"`
}

// ScheduleForm creates or updates a recurring schedule template.
type ScheduleForm struct {
	Subject      string     `json:"subject" validate:"required"`
	Teacher      string     `json:"teacher" validate:"required"`
	Groups       []string   `json:"groups" validate:"min=1,dive,required"`
	Semester     string     `json:"semester" validate:"required"`
	DayOfWeek    int        `json:"dayOfWeek" validate:"min=1,max=7"`
	WeeksOfMonth []int      `json:"weeksOfMonth" validate:"min=1,dive,min=1,max=5"`
	StartTime    string     `json:"startTime" validate:"required,datetime=15:04"`
	EndTime      string     `json:"endTime" validate:"required,datetime=15:04"`
	LessonType   LessonType `json:"lessonType" validate:"required,oneof='Лекция' 'Практическое занятие' 'Лабораторная работа' 'Кураторский час' 'Зачет' 'Экзамен'"`
	Classroom    string     `json:"classroom" validate:"required,min=1"`
	Duration     int        `json:"duration,omitempty" validate:"omitempty,min=1"`
	IsRecurring  *bool      `json:"isRecurring,omitempty"`
}

// LessonInstanceUpdate edits a materialised lesson.
type LessonInstanceUpdate struct {
	Date       *string       `json:"date,omitempty"`
	StartTime  *string       `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime    *string       `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Classroom  *string       `json:"classroom,omitempty"`
	LessonType *LessonType   `json:"lessonType,omitempty"`
	Status     *LessonStatus `json:"status,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
}

// CancelLessonForm is the lesson cancellation payload.
type CancelLessonForm struct {
	CancelReason string `json:"cancelReason,omitempty"`
}
