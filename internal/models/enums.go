package models

import "strings"

// AttendanceStatus is the per-student mark for one lesson. Values are the wire strings.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "Присутствует"
	AttendanceAbsent    AttendanceStatus = "Отсутствует"
	AttendanceLate      AttendanceStatus = "Опоздал"
	AttendanceLeftEarly AttendanceStatus = "Ушел раньше"
)

var attendanceAliases = map[string]AttendanceStatus{
	"present":    AttendancePresent,
	"absent":     AttendanceAbsent,
	"late":       AttendanceLate,
	"leftearly":  AttendanceLeftEarly,
	"left_early": AttendanceLeftEarly,
}

// Valid reports whether s is one of the four attendance marks.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeftEarly:
		return true
	}
	return false
}

// ParseAttendanceStatus accepts the wire value or an English alias.
func ParseAttendanceStatus(raw string) (AttendanceStatus, bool) {
	raw = strings.TrimSpace(raw)
	if s := AttendanceStatus(raw); s.Valid() {
		return s, true
	}
	s, ok := attendanceAliases[strings.ToLower(raw)]
	return s, ok
}

// LessonStatus is the status the journal server keeps for a lesson instance.
type LessonStatus string

const (
	LessonPlanned     LessonStatus = "Запланировано"
	LessonCompleted   LessonStatus = "Проведено"
	LessonCancelled   LessonStatus = "Отменено"
	LessonRescheduled LessonStatus = "Перенесено"
)

// Valid reports whether s is a known server status.
func (s LessonStatus) Valid() bool {
	switch s {
	case LessonPlanned, LessonCompleted, LessonCancelled, LessonRescheduled:
		return true
	}
	return false
}

// GradeType classifies a grade.
type GradeType string

const (
	GradeCurrent GradeType = "Текущая"
	GradeTest    GradeType = "Контрольная"
	GradeLab     GradeType = "Лабораторная"
	GradeCredit  GradeType = "Зачет"
	GradeExam    GradeType = "Экзамен"
)

// GradeTypes lists the grade types in display order.
var GradeTypes = []GradeType{GradeCurrent, GradeTest, GradeLab, GradeCredit, GradeExam}

// Valid reports whether t is a known grade type.
func (t GradeType) Valid() bool {
	for _, known := range GradeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LessonType classifies a scheduled lesson.
type LessonType string

const (
	LessonLecture    LessonType = "Лекция"
	LessonPractical  LessonType = "Практическое занятие"
	LessonLabWork    LessonType = "Лабораторная работа"
	LessonCurator    LessonType = "Кураторский час"
	LessonCreditTest LessonType = "Зачет"
	LessonExam       LessonType = "Экзамен"
)

// Valid reports whether t is a known lesson type.
func (t LessonType) Valid() bool {
	switch t {
	case LessonLecture, LessonPractical, LessonLabWork, LessonCurator, LessonCreditTest, LessonExam:
		return true
	}
	return false
}

// SemesterName is the season of a semester.
type SemesterName string

const (
	SemesterAutumn SemesterName = "Осенний"
	SemesterSpring SemesterName = "Весенний"
)
