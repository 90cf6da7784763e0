package models

import "time"

// Role is a named permission set assignable to users. Names are unique.
type Role struct {
	ID          RoleID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRole constructs a Role with a freshly minted ID.
func NewRole(name, description string) *Role {
	now := time.Now().UTC()
	return &Role{
		ID:          NewID[roleTag](),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateDetails replaces the role's name and description.
func (r *Role) UpdateDetails(name, description string) {
	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now().UTC()
}

func (r *Role) Identity() RoleID    { return r.ID }
func (r *Role) DisplayName() string { return r.Name }
