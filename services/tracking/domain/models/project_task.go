package models

import "time"

// ProjectTask is a unit of work inside a project. Names are unique per project.
type ProjectTask struct {
	ID          ProjectTaskID
	ProjectID   ProjectID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProjectTask constructs a ProjectTask under projectID.
func NewProjectTask(projectID ProjectID, name, description string) *ProjectTask {
	now := time.Now().UTC()
	return &ProjectTask{
		ID:          NewID[projectTaskTag](),
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateDetails replaces the task's name and description. The owning project never changes.
func (t *ProjectTask) UpdateDetails(name, description string) {
	t.Name = name
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
}

func (t *ProjectTask) Identity() ProjectTaskID { return t.ID }
func (t *ProjectTask) DisplayName() string     { return t.Name }
