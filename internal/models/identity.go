package models

import "time"

// Identity is the signed-in user as returned by the journal login endpoints.
type Identity struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Role          Role       `json:"role"`
	Department    *Ref       `json:"department,omitempty"`
	Group         *Ref       `json:"group,omitempty"`
	Subjects      []Ref      `json:"subjects,omitempty"`
	StudentNumber string     `json:"studentNumber,omitempty"`
	IsActive      bool       `json:"isActive,omitempty"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
}

// IdentityPatch lists the identity fields a signed-in user may change. There is no role field.
type IdentityPatch struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	StudentNumber *string `json:"studentNumber,omitempty"`
}

// Apply merges the patch into a copy of id.
func (p IdentityPatch) Apply(id Identity) Identity {
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.StudentNumber != nil {
		id.StudentNumber = *p.StudentNumber
	}
	return id
}

// Empty reports whether the patch changes nothing.
func (p IdentityPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.StudentNumber == nil
}

// LoginResponse is the journal login response.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    Identity `json:"user"`
}
