package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// Entity names an admin-managed collection. Its value is both the path segment and the
// list response key.
type Entity string

const (
	EntityDepartments Entity = "departments"
	EntityTeachers    Entity = "teachers"
	EntitySubjects    Entity = "subjects"
	EntityGroups      Entity = "groups"
	EntitySemesters   Entity = "semesters"
)

// Entities lists every admin-managed collection.
var Entities = []Entity{EntityDepartments, EntityTeachers, EntitySubjects, EntityGroups, EntitySemesters}

// ParseEntity validates a path segment.
func ParseEntity(raw string) (Entity, bool) {
	for _, e := range Entities {
		if string(e) == raw {
			return e, true
		}
	}
	return "", false
}

// list decodes a response of the form {message, <key>: [...]}.
func list[T any](ctx context.Context, s *Session, op, path, key string, query url.Values) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := s.do(ctx, call{op: op, method: http.MethodGet, path: path, query: query}, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[key]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, http.StatusBadGateway, fmt.Sprintf("decode %s list", key))
	}
	return items, nil
}

// Departments lists departments.
func (s *Session) Departments(ctx context.Context) ([]models.Department, error) {
	return list[models.Department](ctx, s, "list_departments", "/admin/departments", "departments", nil)
}

// Teachers lists teachers with their department populated.
func (s *Session) Teachers(ctx context.Context) ([]models.Teacher, error) {
	return list[models.Teacher](ctx, s, "list_teachers", "/admin/teachers", "teachers", nil)
}

// Subjects lists subjects with their department populated.
func (s *Session) Subjects(ctx context.Context) ([]models.Subject, error) {
	return list[models.Subject](ctx, s, "list_subjects", "/admin/subjects", "subjects", nil)
}

// Groups lists groups with their students.
func (s *Session) Groups(ctx context.Context) ([]models.Group, error) {
	return list[models.Group](ctx, s, "list_groups", "/admin/groups", "groups", nil)
}

// Semesters lists semesters.
func (s *Session) Semesters(ctx context.Context) ([]models.Semester, error) {
	return list[models.Semester](ctx, s, "list_semesters", "/admin/semesters", "semesters", nil)
}

// Create posts a new entity.
func (s *Session) Create(ctx context.Context, entity Entity, form interface{}) (*Ack, error) {
	return s.ack(ctx, "create_"+string(entity), http.MethodPost, "/admin/"+string(entity), form)
}

// Update replaces the fields of an entity.
func (s *Session) Update(ctx context.Context, entity Entity, id string, form interface{}) (*Ack, error) {
	return s.ack(ctx, "update_"+string(entity), http.MethodPut, "/admin/"+string(entity)+"/"+url.PathEscape(id), form)
}

// Delete removes an entity.
func (s *Session) Delete(ctx context.Context, entity Entity, id string) (*Ack, error) {
	return s.ack(ctx, "delete_"+string(entity), http.MethodDelete, "/admin/"+string(entity)+"/"+url.PathEscape(id), nil)
}

// ActivateSemester makes id the active semester; the server deactivates the previous one.
func (s *Session) ActivateSemester(ctx context.Context, id string) (*Ack, error) {
	return s.ack(ctx, "activate_semester", http.MethodPost, "/admin/semesters/"+url.PathEscape(id)+"/activate", nil)
}

// ImportStudents uploads a student spreadsheet into a group.
func (s *Session) ImportStudents(ctx context.Context, groupID, filename string, content []byte) (*Ack, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build import upload")
	}
	if _, err := part.Write(content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build import upload")
	}
	if err := writer.Close(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build import upload")
	}

	var ack Ack
	err = s.do(ctx, call{
		op:          "import_students",
		method:      http.MethodPost,
		path:        "/admin/groups/" + url.PathEscape(groupID) + "/import-students",
		raw:         &buf,
		contentType: writer.FormDataContentType(),
	}, &ack)
	if err != nil {
		return nil, err
	}
	return &ack, nil
}
