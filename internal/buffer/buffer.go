// Package buffer holds the uncommitted attendance and grade edits of one open lesson.
package buffer

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// LessonHours is the hour quota every attendance mark splits between attended and missed.
const LessonHours = 4

const (
	minGrade = 1
	maxGrade = 10
)

// Hours returns the fixed attended/missed split for a status.
func Hours(status models.AttendanceStatus) (attended, missed int) {
	switch status {
	case models.AttendancePresent:
		return LessonHours, 0
	case models.AttendanceLate, models.AttendanceLeftEarly:
		return LessonHours / 2, LessonHours / 2
	default:
		return 0, LessonHours
	}
}

// CoerceGrade reads raw the way a numeric input field does: leading integer digits are
// taken and anything outside [1,10] or non-numeric is unset.
func CoerceGrade(raw string) *int {
	raw = strings.TrimLeftFunc(raw, unicode.IsSpace)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return nil
	}
	v, err := strconv.Atoi(raw[:end])
	if err != nil || v < minGrade || v > maxGrade {
		return nil
	}
	return &v
}

// AttendanceDraft is the buffered attendance of one student.
type AttendanceDraft struct {
	Status        models.AttendanceStatus `json:"status"`
	AttendedHours int                     `json:"attendedHours"`
	MissedHours   int                     `json:"missedHours"`
	Notes         string                  `json:"notes"`
}

// GradeDraft is the buffered grade of one student. A nil Value is unset.
type GradeDraft struct {
	Value       *int             `json:"value"`
	GradeType   models.GradeType `json:"gradeType"`
	Notes       string           `json:"notes"`
	Description string           `json:"description,omitempty"`
}

// Entry is the draft of one roster student.
type Entry struct {
	StudentID   string          `json:"studentId"`
	StudentName string          `json:"studentName"`
	Attendance  AttendanceDraft `json:"attendance"`
	Grade       GradeDraft      `json:"grade"`
}

// Submitter sends a flush to the journal API.
type Submitter interface {
	MarkAttendance(ctx context.Context, lessonID string, data []models.AttendanceData) error
	SubmitGrades(ctx context.Context, lessonID string, data []models.GradeData) error
}

// FlushResult reports what a flush sent.
type FlushResult struct {
	Attendance int `json:"attendance"`
	Grades     int `json:"grades"`
}

// Buffer is the edit buffer of one lesson. Entries keep roster order.
type Buffer struct {
	lessonID string

	mu      sync.Mutex
	order   []string
	entries map[string]*Entry
	saving  bool
}

// Seed builds a buffer from a lesson roster. Stored attendance is copied verbatim; without
// it the student starts absent. The last stored grade seeds the grade draft; without one
// the draft is an unset current grade.
func Seed(lessonID string, students []models.RosterStudent) *Buffer {
	b := &Buffer{
		lessonID: lessonID,
		order:    make([]string, 0, len(students)),
		entries:  make(map[string]*Entry, len(students)),
	}
	for _, s := range students {
		if _, dup := b.entries[s.ID]; dup {
			continue
		}
		entry := &Entry{StudentID: s.ID, StudentName: s.Name}

		if s.Attendance != nil {
			entry.Attendance = AttendanceDraft{
				Status:        s.Attendance.Status,
				AttendedHours: s.Attendance.AttendedHours,
				MissedHours:   s.Attendance.MissedHours,
				Notes:         s.Attendance.Notes,
			}
		} else {
			attended, missed := Hours(models.AttendanceAbsent)
			entry.Attendance = AttendanceDraft{Status: models.AttendanceAbsent, AttendedHours: attended, MissedHours: missed}
		}

		if n := len(s.Grades); n > 0 {
			last := s.Grades[n-1]
			value := last.Value
			entry.Grade = GradeDraft{Value: &value, GradeType: last.GradeType, Notes: last.Notes, Description: last.Description}
			if entry.Grade.GradeType == "" {
				entry.Grade.GradeType = models.GradeCurrent
			}
		} else {
			entry.Grade = GradeDraft{GradeType: models.GradeCurrent}
		}

		b.order = append(b.order, s.ID)
		b.entries[s.ID] = entry
	}
	return b
}

// LessonID returns the lesson the buffer belongs to.
func (b *Buffer) LessonID() string { return b.lessonID }

// Entries returns a copy of every entry in roster order.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, copyEntry(b.entries[id]))
	}
	return out
}

// Entry returns a copy of one student's entry.
func (b *Buffer) Entry(studentID string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[studentID]
	if !ok {
		return Entry{}, false
	}
	return copyEntry(e), true
}

// Saving reports whether a flush is in flight.
func (b *Buffer) Saving() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saving
}

// SetStatus applies the quick-status table to one student.
func (b *Buffer) SetStatus(studentID string, status models.AttendanceStatus) (Entry, error) {
	if !status.Valid() {
		return Entry{}, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	return b.update(studentID, func(e *Entry) {
		e.Attendance.Status = status
		e.Attendance.AttendedHours, e.Attendance.MissedHours = Hours(status)
	})
}

// SetAttendanceNotes replaces one student's attendance notes.
func (b *Buffer) SetAttendanceNotes(studentID, notes string) (Entry, error) {
	return b.update(studentID, func(e *Entry) { e.Attendance.Notes = notes })
}

// MarkAll applies the quick-status table to every student. Grade drafts are untouched.
func (b *Buffer) MarkAll(status models.AttendanceStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	attended, missed := Hours(status)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range b.order {
		a := &b.entries[id].Attendance
		a.Status, a.AttendedHours, a.MissedHours = status, attended, missed
	}
	return nil
}

// SetGradeInput coerces raw into the student's grade value.
func (b *Buffer) SetGradeInput(studentID, raw string) (Entry, error) {
	value := CoerceGrade(raw)
	return b.update(studentID, func(e *Entry) { e.Grade.Value = value })
}

// SetGradeType changes the type of one student's grade draft.
func (b *Buffer) SetGradeType(studentID string, gradeType models.GradeType) (Entry, error) {
	if !gradeType.Valid() {
		return Entry{}, appErrors.Clone(appErrors.ErrValidation, "unknown grade type")
	}
	return b.update(studentID, func(e *Entry) { e.Grade.GradeType = gradeType })
}

// SetGradeNotes replaces one student's grade notes.
func (b *Buffer) SetGradeNotes(studentID, notes string) (Entry, error) {
	return b.update(studentID, func(e *Entry) { e.Grade.Notes = notes })
}

// Payload builds the two submissions: every attendance entry, and only grades with a
// positive value.
func (b *Buffer) Payload() ([]models.AttendanceData, []models.GradeData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.payloadLocked()
}

// Flush submits attendance, then grades when any are set. Only one flush runs at a time.
func (b *Buffer) Flush(ctx context.Context, submitter Submitter) (FlushResult, error) {
	b.mu.Lock()
	if b.saving {
		b.mu.Unlock()
		return FlushResult{}, appErrors.ErrSaveInProgress
	}
	b.saving = true
	attendance, grades := b.payloadLocked()
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.saving = false
		b.mu.Unlock()
	}()

	if err := submitter.MarkAttendance(ctx, b.lessonID, attendance); err != nil {
		return FlushResult{}, err
	}
	result := FlushResult{Attendance: len(attendance)}
	if len(grades) == 0 {
		return result, nil
	}
	if err := submitter.SubmitGrades(ctx, b.lessonID, grades); err != nil {
		return result, err
	}
	result.Grades = len(grades)
	return result, nil
}

func (b *Buffer) payloadLocked() ([]models.AttendanceData, []models.GradeData) {
	attendance := make([]models.AttendanceData, 0, len(b.order))
	grades := make([]models.GradeData, 0, len(b.order))
	for _, id := range b.order {
		e := b.entries[id]
		attendance = append(attendance, models.AttendanceData{
			StudentID:     id,
			Status:        e.Attendance.Status,
			AttendedHours: e.Attendance.AttendedHours,
			MissedHours:   e.Attendance.MissedHours,
			Notes:         e.Attendance.Notes,
		})
		if e.Grade.Value == nil || *e.Grade.Value <= 0 {
			continue
		}
		value := *e.Grade.Value
		grades = append(grades, models.GradeData{
			StudentID:   id,
			Value:       &value,
			GradeType:   e.Grade.GradeType,
			Description: e.Grade.Description,
			Notes:       e.Grade.Notes,
		})
	}
	return attendance, grades
}

func (b *Buffer) update(studentID string, fn func(*Entry)) (Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[studentID]
	if !ok {
		return Entry{}, appErrors.ErrUnknownStudent
	}
	fn(e)
	return copyEntry(e), nil
}

func copyEntry(e *Entry) Entry {
	out := *e
	if e.Grade.Value != nil {
		v := *e.Grade.Value
		out.Grade.Value = &v
	}
	return out
}
