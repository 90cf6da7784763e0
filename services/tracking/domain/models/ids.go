package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is a typed identifier. The type parameter only distinguishes entities at
// compile time: a ProjectID cannot be passed where a UserID is expected.
// The zero ID is the empty sentinel used before an entity exists.
type ID[T any] struct{ uuid.UUID }

type (
	projectTag     struct{}
	projectTaskTag struct{}
	projectUserTag struct{}
	timeEntryTag   struct{}
	roleTag        struct{}
	userTag        struct{}
	userTaskTag    struct{}
)

type (
	ProjectID     = ID[projectTag]
	ProjectTaskID = ID[projectTaskTag]
	ProjectUserID = ID[projectUserTag]
	TimeEntryID   = ID[timeEntryTag]
	RoleID        = ID[roleTag]
	UserID        = ID[userTag]
	UserTaskID    = ID[userTaskTag]
)

// Empty sentinels, attached to errors raised before an entity has an identity.
var (
	EmptyProjectID     ProjectID
	EmptyProjectTaskID ProjectTaskID
	EmptyProjectUserID ProjectUserID
	EmptyTimeEntryID   TimeEntryID
	EmptyRoleID        RoleID
	EmptyUserID        UserID
	EmptyUserTaskID    UserTaskID
)

// NewID mints a fresh random identifier.
func NewID[T any]() ID[T] {
	return ID[T]{UUID: uuid.New()}
}

// IDFrom wraps an existing UUID, e.g. one read from the database.
func IDFrom[T any](u uuid.UUID) ID[T] {
	return ID[T]{UUID: u}
}

// ParseID parses the canonical string form.
func ParseID[T any](s string) (ID[T], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ID[T]{UUID: u}, nil
}

// IsEmpty reports whether id is the empty sentinel.
func (id ID[T]) IsEmpty() bool {
	return id.UUID == uuid.Nil
}
