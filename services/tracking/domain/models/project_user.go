package models

import "time"

// ProjectUser is a user's membership in a project. A user joins a project at most once.
type ProjectUser struct {
	ID              ProjectUserID
	ProjectID       ProjectID
	UserID          UserID
	HourlyRateCents int64
	IsManager       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProjectUser constructs a membership of userID in projectID.
func NewProjectUser(projectID ProjectID, userID UserID, hourlyRateCents int64, isManager bool) *ProjectUser {
	now := time.Now().UTC()
	return &ProjectUser{
		ID:              NewID[projectUserTag](),
		ProjectID:       projectID,
		UserID:          userID,
		HourlyRateCents: hourlyRateCents,
		IsManager:       isManager,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// UpdateDetails replaces the membership terms.
func (pu *ProjectUser) UpdateDetails(hourlyRateCents int64, isManager bool) {
	pu.HourlyRateCents = hourlyRateCents
	pu.IsManager = isManager
	pu.UpdatedAt = time.Now().UTC()
}
