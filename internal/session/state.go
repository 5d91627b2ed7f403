package session

import "github.com/noah-isme/journal-portal/internal/models"

// State is a point-in-time view of a client instance's session.
type State struct {
	Identity *models.Identity `json:"user,omitempty"`
	Token    string           `json:"-"`
	Loading  bool             `json:"loading"`
}

// IsAuthenticated reports an adopted identity with a token.
func (s State) IsAuthenticated() bool {
	return s.Identity != nil && s.Token != ""
}

// Role returns the session role, empty when signed out.
func (s State) Role() models.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

func (s State) IsAdmin() bool   { return s.Role() == models.RoleAdmin }
func (s State) IsTeacher() bool { return s.Role() == models.RoleTeacher }
func (s State) IsStudent() bool { return s.Role() == models.RoleStudent }

// Permissions are the role-derived capabilities shown to the user.
type Permissions struct {
	CanManageUsers     bool `json:"canManageUsers"`
	CanManageSchedule  bool `json:"canManageSchedule"`
	CanMarkAttendance  bool `json:"canMarkAttendance"`
	CanViewReports     bool `json:"canViewReports"`
	CanViewOwnSchedule bool `json:"canViewOwnSchedule"`
}

// Permissions derives the capability set from the session role.
func (s State) Permissions() Permissions {
	role := s.Role()
	staff := role == models.RoleAdmin || role == models.RoleTeacher
	return Permissions{
		CanManageUsers:     role == models.RoleAdmin,
		CanManageSchedule:  role == models.RoleAdmin,
		CanMarkAttendance:  staff,
		CanViewReports:     staff,
		CanViewOwnSchedule: s.IsAuthenticated(),
	}
}
