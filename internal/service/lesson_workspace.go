package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/buffer"
	"github.com/noah-isme/journal-portal/internal/dto"
	"github.com/noah-isme/journal-portal/internal/models"
	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// LessonAPI is the part of the journal API the lesson workspace uses.
type LessonAPI interface {
	LessonStudents(ctx context.Context, lessonID string) (*models.LessonRoster, error)
	buffer.Submitter
}

// SaveRecorder counts lesson saves by result.
type SaveRecorder interface {
	RecordLessonSave(result string)
}

type openLesson struct {
	seq    uint64
	id     string
	cancel context.CancelFunc
	roster *models.LessonRoster
	buf    *buffer.Buffer
}

// LessonWorkspace holds at most one open lesson per client instance. Opening another
// lesson discards the previous one and cancels its roster load. Nothing is persisted.
type LessonWorkspace struct {
	loc      *time.Location
	clock    Clock
	recorder SaveRecorder
	logger   *zap.Logger

	mu       sync.Mutex
	seq      uint64
	open     map[string]*openLesson
	watching map[string]func()
}

// NewLessonWorkspace constructs the workspace.
func NewLessonWorkspace(loc *time.Location, clock Clock, recorder SaveRecorder, logger *zap.Logger) *LessonWorkspace {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonWorkspace{
		loc:      loc,
		clock:    clock,
		recorder: recorder,
		logger:   logger,
		open:     make(map[string]*openLesson),
		watching: make(map[string]func()),
	}
}

// Open loads the lesson roster and seeds a fresh buffer, replacing whatever the client had open.
func (w *LessonWorkspace) Open(ctx context.Context, clientID string, api LessonAPI, lessonID string) (*dto.LessonPage, error) {
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.mu.Lock()
	w.seq++
	current := &openLesson{seq: w.seq, id: lessonID, cancel: cancel}
	if prev, ok := w.open[clientID]; ok && prev.cancel != nil {
		prev.cancel()
	}
	w.open[clientID] = current
	w.mu.Unlock()

	roster, err := api.LessonStudents(loadCtx, lessonID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.open[clientID] != current {
		// superseded by a later open or discarded meanwhile
		return nil, appErrors.Clone(appErrors.ErrNoOpenLesson, "lesson load was superseded")
	}
	if err != nil {
		delete(w.open, clientID)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil, appErrors.Clone(appErrors.ErrNoOpenLesson, "lesson load was superseded")
		}
		return nil, err
	}
	current.cancel = nil
	current.roster = roster
	current.buf = buffer.Seed(lessonID, roster.Students)
	w.logger.Debug("lesson opened", zap.String("client_id", clientID), zap.String("lesson_id", lessonID), zap.Int("students", len(roster.Students)))
	return w.pageLocked(current), nil
}

// Page returns the open lesson.
func (w *LessonWorkspace) Page(clientID, lessonID string) (*dto.LessonPage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ol, err := w.lookupLocked(clientID, lessonID)
	if err != nil {
		return nil, err
	}
	return w.pageLocked(ol), nil
}

// SetStatus applies a quick attendance status to one student.
func (w *LessonWorkspace) SetStatus(clientID, lessonID, studentID string, status models.AttendanceStatus) (buffer.Entry, error) {
	buf, err := w.buffer(clientID, lessonID)
	if err != nil {
		return buffer.Entry{}, err
	}
	return buf.SetStatus(studentID, status)
}

// SetAttendanceNotes edits the attendance notes of one student.
func (w *LessonWorkspace) SetAttendanceNotes(clientID, lessonID, studentID, notes string) (buffer.Entry, error) {
	buf, err := w.buffer(clientID, lessonID)
	if err != nil {
		return buffer.Entry{}, err
	}
	return buf.SetAttendanceNotes(studentID, notes)
}

// MarkAll applies status to every student's attendance.
func (w *LessonWorkspace) MarkAll(clientID, lessonID string, status models.AttendanceStatus) (*dto.LessonPage, error) {
	buf, err := w.buffer(clientID, lessonID)
	if err != nil {
		return nil, err
	}
	if err := buf.MarkAll(status); err != nil {
		return nil, err
	}
	return w.Page(clientID, lessonID)
}

// GradeEdit carries the grade fields a teacher changed. Nil fields are left alone.
type GradeEdit struct {
	Value     *string           `json:"value"`
	GradeType *models.GradeType `json:"gradeType"`
	Notes     *string           `json:"notes"`
}

// EditGrade applies a grade edit to one student.
func (w *LessonWorkspace) EditGrade(clientID, lessonID, studentID string, edit GradeEdit) (buffer.Entry, error) {
	buf, err := w.buffer(clientID, lessonID)
	if err != nil {
		return buffer.Entry{}, err
	}
	entry, ok := buf.Entry(studentID)
	if !ok {
		return buffer.Entry{}, appErrors.ErrUnknownStudent
	}
	if edit.GradeType != nil {
		if entry, err = buf.SetGradeType(studentID, *edit.GradeType); err != nil {
			return buffer.Entry{}, err
		}
	}
	if edit.Notes != nil {
		if entry, err = buf.SetGradeNotes(studentID, *edit.Notes); err != nil {
			return buffer.Entry{}, err
		}
	}
	if edit.Value != nil {
		if entry, err = buf.SetGradeInput(studentID, *edit.Value); err != nil {
			return buffer.Entry{}, err
		}
	}
	return entry, nil
}

// Save flushes the buffer. A successful save destroys it; a failed one keeps it for a retry.
func (w *LessonWorkspace) Save(ctx context.Context, clientID, lessonID string, api buffer.Submitter) (*dto.SaveResult, error) {
	buf, err := w.buffer(clientID, lessonID)
	if err != nil {
		return nil, err
	}
	result, err := buf.Flush(ctx, api)
	if err != nil {
		if errors.Is(err, appErrors.ErrSaveInProgress) {
			w.record("conflict")
		} else {
			w.record("failed")
		}
		return nil, err
	}
	w.record("saved")

	w.mu.Lock()
	if ol, ok := w.open[clientID]; ok && ol.buf == buf {
		delete(w.open, clientID)
	}
	w.mu.Unlock()
	w.logger.Info("lesson saved", zap.String("client_id", clientID), zap.String("lesson_id", lessonID),
		zap.Int("attendance", result.Attendance), zap.Int("grades", result.Grades))
	return &dto.SaveResult{LessonID: lessonID, Saved: result, Message: "Данные успешно сохранены"}, nil
}

// Discard drops the client's open lesson, cancelling its load if still in flight.
func (w *LessonWorkspace) Discard(clientID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ol, ok := w.open[clientID]; ok {
		if ol.cancel != nil {
			ol.cancel()
		}
		delete(w.open, clientID)
	}
}

// OpenLessonID reports which lesson the client has open, if any.
func (w *LessonWorkspace) OpenLessonID(clientID string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ol, ok := w.open[clientID]
	if !ok {
		return "", false
	}
	return ol.id, true
}

// Watch discards the open lesson whenever the store loses its user. It subscribes once
// per client instance.
func (w *LessonWorkspace) Watch(store *session.Store) {
	clientID := store.ClientID()
	w.mu.Lock()
	if _, ok := w.watching[clientID]; ok {
		w.mu.Unlock()
		return
	}
	w.watching[clientID] = func() {}
	w.mu.Unlock()

	unsubscribe := store.Subscribe(func(st session.State) {
		if !st.IsAuthenticated() {
			w.Discard(clientID)
		}
	})
	w.mu.Lock()
	w.watching[clientID] = unsubscribe
	w.mu.Unlock()
}

// Forget drops everything held for a client instance.
func (w *LessonWorkspace) Forget(clientID string) {
	w.Discard(clientID)
	w.mu.Lock()
	unsubscribe := w.watching[clientID]
	delete(w.watching, clientID)
	w.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (w *LessonWorkspace) buffer(clientID, lessonID string) (*buffer.Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ol, err := w.lookupLocked(clientID, lessonID)
	if err != nil {
		return nil, err
	}
	return ol.buf, nil
}

func (w *LessonWorkspace) lookupLocked(clientID, lessonID string) (*openLesson, error) {
	ol, ok := w.open[clientID]
	if !ok || ol.buf == nil || ol.id != lessonID {
		return nil, appErrors.ErrNoOpenLesson
	}
	return ol, nil
}

func (w *LessonWorkspace) pageLocked(ol *openLesson) *dto.LessonPage {
	types := make([]string, 0, len(models.GradeTypes))
	for _, t := range models.GradeTypes {
		types = append(types, string(t))
	}
	return &dto.LessonPage{
		Lesson:             annotateLesson(w.clock.now(), ol.roster.ScheduleInstance, w.loc, w.logger),
		Entries:            ol.buf.Entries(),
		Saving:             ol.buf.Saving(),
		IsAttendanceMarked: ol.roster.IsAttendanceMarked,
		IsGradesMarked:     ol.roster.IsGradesMarked,
		TotalStudents:      len(ol.roster.Students),
		GradeTypes:         types,
	}
}

func (w *LessonWorkspace) record(result string) {
	if w.recorder != nil {
		w.recorder.RecordLessonSave(result)
	}
}
