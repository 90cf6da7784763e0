package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the tracking repositories.
const (
	TopicProjectCreated    = "project.created"
	TopicTimeEntryRecorded = "time_entry.recorded"
	TopicUserRegistered    = "user.registered"
)

const currentSchemaVersion = 1

// Metadata carried on every event message, alongside the trace context.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// ProjectCreatedEvent is published after a new Project is persisted.
type ProjectCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ProjectID  uuid.UUID `json:"project_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TimeEntryRecordedEvent is published when a time entry is created or updated.
type TimeEntryRecordedEvent struct {
	EventID       uuid.UUID  `json:"event_id"`
	Version       int        `json:"version"`
	TimeEntryID   uuid.UUID  `json:"time_entry_id"`
	UserID        uuid.UUID  `json:"user_id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	ProjectTaskID *uuid.UUID `json:"project_task_id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Minutes       int        `json:"minutes"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// UserRegisteredEvent is published after a new User is persisted. The worker
// starts the onboarding workflow from it.
type UserRegisteredEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProjectCreated builds a ProjectCreatedEvent with a fresh event ID.
func NewProjectCreated(projectID uuid.UUID, name string, at time.Time) ProjectCreatedEvent {
	return ProjectCreatedEvent{
		EventID:    uuid.New(),
		Version:    currentSchemaVersion,
		ProjectID:  projectID,
		Name:       name,
		OccurredAt: at,
	}
}

// NewUserRegistered builds a UserRegisteredEvent with a fresh event ID.
func NewUserRegistered(userID uuid.UUID, email, firstName string, at time.Time) UserRegisteredEvent {
	return UserRegisteredEvent{
		EventID:    uuid.New(),
		Version:    currentSchemaVersion,
		UserID:     userID,
		Email:      email,
		FirstName:  firstName,
		OccurredAt: at,
	}
}

// NewTimeEntryRecorded builds a TimeEntryRecordedEvent with a fresh event ID.
// taskID is nil when the entry is not booked against a task.
func NewTimeEntryRecorded(entryID, userID, projectID uuid.UUID, taskID *uuid.UUID, start, end time.Time, minutes int, at time.Time) TimeEntryRecordedEvent {
	return TimeEntryRecordedEvent{
		EventID:       uuid.New(),
		Version:       currentSchemaVersion,
		TimeEntryID:   entryID,
		UserID:        userID,
		ProjectID:     projectID,
		ProjectTaskID: taskID,
		StartTime:     start,
		EndTime:       end,
		Minutes:       minutes,
		OccurredAt:    at,
	}
}
