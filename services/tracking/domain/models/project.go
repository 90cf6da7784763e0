package models

import "time"

// Project is the top-level aggregate that tasks, memberships and time entries hang off.
// Names are unique across all projects.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject constructs a Project with a freshly minted ID.
func NewProject(name, description string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          NewID[projectTag](),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateDetails replaces all mutable fields at once.
func (p *Project) UpdateDetails(name, description string) {
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
}

func (p *Project) Identity() ProjectID { return p.ID }
func (p *Project) DisplayName() string { return p.Name }
