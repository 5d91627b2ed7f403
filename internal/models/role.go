package models

import "strings"

// Role enumerates the journal roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Slug returns the lowercase form used in upstream login paths and portal roots.
func (r Role) Slug() string {
	return strings.ToLower(string(r))
}

// ParseRole accepts either the wire value or its lowercase slug.
func ParseRole(raw string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(raw, string(r)) {
			return r, true
		}
	}
	return "", false
}
