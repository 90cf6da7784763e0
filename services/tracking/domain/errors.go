// Package domain holds the tracking bounded context's error taxonomy.
//
// Every entity family is a closed set of variants: the family interface has an
// unexported method, so only the types below satisfy it. Each variant embeds
// one domainerr kind marker, which is what transport layers classify on.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/domainerr"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// Sentinel errors for conditions that are not entity variants.
var (
	// ErrInvalidCredentials indicates a login with an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated indicates a request without a valid session or token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// --- Project ---------------------------------------------------------------

// ProjectError is the closed family of project failures.
type ProjectError interface {
	domainerr.Error
	projectError()
}

// ProjectNotFound reports a project id with no stored project.
type ProjectNotFound struct {
	domainerr.NotFound
	ID models.ProjectID
}

func (e ProjectNotFound) Error() string      { return fmt.Sprintf("project %s not found", e.ID) }
func (e ProjectNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectNotFound) projectError()        {}

// ProjectAlreadyExists reports a name already held by another project.
type ProjectAlreadyExists struct {
	domainerr.AlreadyExists
	ID   models.ProjectID
	Name string
}

func (e ProjectAlreadyExists) Error() string {
	return fmt.Sprintf("project named %q already exists", e.Name)
}
func (e ProjectAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectAlreadyExists) projectError()        {}

// ProjectUnknown wraps a failed project write.
type ProjectUnknown struct {
	domainerr.Unknown
	ID    models.ProjectID
	Cause error
}

func (e ProjectUnknown) Error() string      { return fmt.Sprintf("project %s: %v", e.ID, e.Cause) }
func (e ProjectUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e ProjectUnknown) Unwrap() error      { return e.Cause }
func (ProjectUnknown) projectError()        {}

// --- ProjectTask -----------------------------------------------------------

// ProjectTaskError is the closed family of project task failures.
type ProjectTaskError interface {
	domainerr.Error
	projectTaskError()
}

// ProjectTaskNotFound reports a task id with no stored task.
type ProjectTaskNotFound struct {
	domainerr.NotFound
	ID models.ProjectTaskID
}

func (e ProjectTaskNotFound) Error() string      { return fmt.Sprintf("project task %s not found", e.ID) }
func (e ProjectTaskNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectTaskNotFound) projectTaskError()    {}

// ProjectTaskAlreadyExists reports a task name already used within the project.
type ProjectTaskAlreadyExists struct {
	domainerr.AlreadyExists
	ID        models.ProjectTaskID
	ProjectID models.ProjectID
	Name      string
}

func (e ProjectTaskAlreadyExists) Error() string {
	return fmt.Sprintf("task named %q already exists in project %s", e.Name, e.ProjectID)
}
func (e ProjectTaskAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectTaskAlreadyExists) projectTaskError()    {}

// ProjectForTaskNotFound reports that the task's project does not exist.
type ProjectForTaskNotFound struct {
	domainerr.RelatedNotFound
	ID        models.ProjectTaskID
	ProjectID models.ProjectID
}

func (e ProjectForTaskNotFound) Error() string {
	return fmt.Sprintf("project %s for task not found", e.ProjectID)
}
func (e ProjectForTaskNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectForTaskNotFound) projectTaskError()    {}

// ProjectTaskUnknown wraps a failed task write.
type ProjectTaskUnknown struct {
	domainerr.Unknown
	ID    models.ProjectTaskID
	Cause error
}

func (e ProjectTaskUnknown) Error() string      { return fmt.Sprintf("project task %s: %v", e.ID, e.Cause) }
func (e ProjectTaskUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e ProjectTaskUnknown) Unwrap() error      { return e.Cause }
func (ProjectTaskUnknown) projectTaskError()    {}

// --- ProjectUser -----------------------------------------------------------

// ProjectUserError is the closed family of project membership failures.
type ProjectUserError interface {
	domainerr.Error
	projectUserError()
}

// ProjectUserNotFound reports a membership id with no stored membership.
type ProjectUserNotFound struct {
	domainerr.NotFound
	ID models.ProjectUserID
}

func (e ProjectUserNotFound) Error() string      { return fmt.Sprintf("project user %s not found", e.ID) }
func (e ProjectUserNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectUserNotFound) projectUserError()    {}

// ProjectUserAlreadyExists reports a user who is already a member of the project.
type ProjectUserAlreadyExists struct {
	domainerr.AlreadyExists
	ID        models.ProjectUserID
	ProjectID models.ProjectID
	UserID    models.UserID
}

func (e ProjectUserAlreadyExists) Error() string {
	return fmt.Sprintf("user %s is already a member of project %s", e.UserID, e.ProjectID)
}
func (e ProjectUserAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectUserAlreadyExists) projectUserError()    {}

// ProjectUserProjectNotFound reports a membership naming a missing project.
type ProjectUserProjectNotFound struct {
	domainerr.RelatedNotFound
	ID        models.ProjectUserID
	ProjectID models.ProjectID
}

func (e ProjectUserProjectNotFound) Error() string {
	return fmt.Sprintf("project %s for membership not found", e.ProjectID)
}
func (e ProjectUserProjectNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectUserProjectNotFound) projectUserError()    {}

// ProjectUserUserNotFound reports a membership naming a missing user.
type ProjectUserUserNotFound struct {
	domainerr.RelatedNotFound
	ID     models.ProjectUserID
	UserID models.UserID
}

func (e ProjectUserUserNotFound) Error() string {
	return fmt.Sprintf("user %s for membership not found", e.UserID)
}
func (e ProjectUserUserNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (ProjectUserUserNotFound) projectUserError()    {}

// ProjectUserUnknown wraps a failed membership write.
type ProjectUserUnknown struct {
	domainerr.Unknown
	ID    models.ProjectUserID
	Cause error
}

func (e ProjectUserUnknown) Error() string      { return fmt.Sprintf("project user %s: %v", e.ID, e.Cause) }
func (e ProjectUserUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e ProjectUserUnknown) Unwrap() error      { return e.Cause }
func (ProjectUserUnknown) projectUserError()    {}

// --- TimeEntry -------------------------------------------------------------

// TimeEntryError is the closed family of time entry failures.
type TimeEntryError interface {
	domainerr.Error
	timeEntryError()
}

// TimeEntryNotFound reports an entry id with no stored entry.
type TimeEntryNotFound struct {
	domainerr.NotFound
	ID models.TimeEntryID
}

func (e TimeEntryNotFound) Error() string      { return fmt.Sprintf("time entry %s not found", e.ID) }
func (e TimeEntryNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (TimeEntryNotFound) timeEntryError()      {}

// TimeEntryUserNotFound reports an entry for a missing user.
type TimeEntryUserNotFound struct {
	domainerr.RelatedNotFound
	ID     models.TimeEntryID
	UserID models.UserID
}

func (e TimeEntryUserNotFound) Error() string {
	return fmt.Sprintf("user %s for time entry not found", e.UserID)
}
func (e TimeEntryUserNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (TimeEntryUserNotFound) timeEntryError()      {}

// TimeEntryProjectNotFound reports an entry against a missing project.
type TimeEntryProjectNotFound struct {
	domainerr.RelatedNotFound
	ID        models.TimeEntryID
	ProjectID models.ProjectID
}

func (e TimeEntryProjectNotFound) Error() string {
	return fmt.Sprintf("project %s for time entry not found", e.ProjectID)
}
func (e TimeEntryProjectNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (TimeEntryProjectNotFound) timeEntryError()      {}

// TimeEntryProjectTaskNotFound is also returned when the task exists but
// belongs to a different project than the entry.
type TimeEntryProjectTaskNotFound struct {
	domainerr.RelatedNotFound
	ID            models.TimeEntryID
	ProjectTaskID models.ProjectTaskID
}

func (e TimeEntryProjectTaskNotFound) Error() string {
	return fmt.Sprintf("project task %s for time entry not found", e.ProjectTaskID)
}
func (e TimeEntryProjectTaskNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (TimeEntryProjectTaskNotFound) timeEntryError()      {}

// EndDateMustBeAfterStartDate reports an interval whose end is not after its start.
type EndDateMustBeAfterStartDate struct {
	domainerr.InvariantViolation
	ID    models.TimeEntryID
	Start time.Time
	End   time.Time
}

func (e EndDateMustBeAfterStartDate) Error() string {
	return fmt.Sprintf("end %s must be after start %s", e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
}
func (e EndDateMustBeAfterStartDate) Subject() uuid.UUID { return e.ID.UUID }
func (EndDateMustBeAfterStartDate) timeEntryError()      {}

// TimeEntryOverlap reports a candidate interval intersecting one of the user's
// entries. ConflictingID is empty when the store, not the validator, rejected it.
type TimeEntryOverlap struct {
	domainerr.InvariantViolation
	ID            models.TimeEntryID
	ConflictingID models.TimeEntryID
	Start         time.Time
	End           time.Time
}

func (e TimeEntryOverlap) Error() string {
	return fmt.Sprintf("time entry %s - %s overlaps an existing entry",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}
func (e TimeEntryOverlap) Subject() uuid.UUID { return e.ID.UUID }
func (TimeEntryOverlap) timeEntryError()      {}

// TimeEntryUnknown wraps a failed time entry write.
type TimeEntryUnknown struct {
	domainerr.Unknown
	ID    models.TimeEntryID
	Cause error
}

func (e TimeEntryUnknown) Error() string      { return fmt.Sprintf("time entry %s: %v", e.ID, e.Cause) }
func (e TimeEntryUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e TimeEntryUnknown) Unwrap() error      { return e.Cause }
func (TimeEntryUnknown) timeEntryError()      {}

// --- Role ------------------------------------------------------------------

// RoleError is the closed family of role failures.
type RoleError interface {
	domainerr.Error
	roleError()
}

// RoleNotFound reports a role id with no stored role.
type RoleNotFound struct {
	domainerr.NotFound
	ID models.RoleID
}

func (e RoleNotFound) Error() string      { return fmt.Sprintf("role %s not found", e.ID) }
func (e RoleNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (RoleNotFound) roleError()           {}

// RoleAlreadyExists reports a name already held by another role.
type RoleAlreadyExists struct {
	domainerr.AlreadyExists
	ID   models.RoleID
	Name string
}

func (e RoleAlreadyExists) Error() string      { return fmt.Sprintf("role named %q already exists", e.Name) }
func (e RoleAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (RoleAlreadyExists) roleError()           {}

// RoleUnknown wraps a failed role write.
type RoleUnknown struct {
	domainerr.Unknown
	ID    models.RoleID
	Cause error
}

func (e RoleUnknown) Error() string      { return fmt.Sprintf("role %s: %v", e.ID, e.Cause) }
func (e RoleUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e RoleUnknown) Unwrap() error      { return e.Cause }
func (RoleUnknown) roleError()           {}

// --- User ------------------------------------------------------------------

// UserError is the closed family of user failures.
type UserError interface {
	domainerr.Error
	userError()
}

// UserNotFound reports a user id with no stored user.
type UserNotFound struct {
	domainerr.NotFound
	ID models.UserID
}

func (e UserNotFound) Error() string      { return fmt.Sprintf("user %s not found", e.ID) }
func (e UserNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (UserNotFound) userError()           {}

// UserAlreadyExists reports an email already registered by another user.
type UserAlreadyExists struct {
	domainerr.AlreadyExists
	ID    models.UserID
	Email string
}

func (e UserAlreadyExists) Error() string {
	return fmt.Sprintf("user with email %q already exists", e.Email)
}
func (e UserAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (UserAlreadyExists) userError()           {}

// UserRoleNotFound reports a missing role, or a role the user does not hold
// when unassigning.
type UserRoleNotFound struct {
	domainerr.RelatedNotFound
	ID     models.UserID
	RoleID models.RoleID
}

func (e UserRoleNotFound) Error() string {
	return fmt.Sprintf("role %s for user %s not found", e.RoleID, e.ID)
}
func (e UserRoleNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (UserRoleNotFound) userError()           {}

// UserRoleAlreadyAssigned reports a role the user already holds.
type UserRoleAlreadyAssigned struct {
	domainerr.AlreadyExists
	ID     models.UserID
	RoleID models.RoleID
}

func (e UserRoleAlreadyAssigned) Error() string {
	return fmt.Sprintf("role %s is already assigned to user %s", e.RoleID, e.ID)
}
func (e UserRoleAlreadyAssigned) Subject() uuid.UUID { return e.ID.UUID }
func (UserRoleAlreadyAssigned) userError()           {}

// UserUnknown wraps a failed user write.
type UserUnknown struct {
	domainerr.Unknown
	ID    models.UserID
	Cause error
}

func (e UserUnknown) Error() string      { return fmt.Sprintf("user %s: %v", e.ID, e.Cause) }
func (e UserUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e UserUnknown) Unwrap() error      { return e.Cause }
func (UserUnknown) userError()           {}

// --- UserTask --------------------------------------------------------------

// UserTaskError is the closed family of task assignment failures.
type UserTaskError interface {
	domainerr.Error
	userTaskError()
}

// UserTaskNotFound reports a task assignment id with no stored assignment.
type UserTaskNotFound struct {
	domainerr.NotFound
	ID models.UserTaskID
}

func (e UserTaskNotFound) Error() string      { return fmt.Sprintf("user task %s not found", e.ID) }
func (e UserTaskNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (UserTaskNotFound) userTaskError()       {}

// UserTaskAlreadyExists reports a task already assigned to the user.
type UserTaskAlreadyExists struct {
	domainerr.AlreadyExists
	ID            models.UserTaskID
	UserID        models.UserID
	ProjectTaskID models.ProjectTaskID
}

func (e UserTaskAlreadyExists) Error() string {
	return fmt.Sprintf("task %s is already assigned to user %s", e.ProjectTaskID, e.UserID)
}
func (e UserTaskAlreadyExists) Subject() uuid.UUID { return e.ID.UUID }
func (UserTaskAlreadyExists) userTaskError()       {}

// UserTaskUserNotFound reports an assignment for a missing user.
type UserTaskUserNotFound struct {
	domainerr.RelatedNotFound
	ID     models.UserTaskID
	UserID models.UserID
}

func (e UserTaskUserNotFound) Error() string {
	return fmt.Sprintf("user %s for task assignment not found", e.UserID)
}
func (e UserTaskUserNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (UserTaskUserNotFound) userTaskError()       {}

// UserTaskProjectTaskNotFound reports an assignment of a missing task.
type UserTaskProjectTaskNotFound struct {
	domainerr.RelatedNotFound
	ID            models.UserTaskID
	ProjectTaskID models.ProjectTaskID
}

func (e UserTaskProjectTaskNotFound) Error() string {
	return fmt.Sprintf("project task %s for assignment not found", e.ProjectTaskID)
}
func (e UserTaskProjectTaskNotFound) Subject() uuid.UUID { return e.ID.UUID }
func (UserTaskProjectTaskNotFound) userTaskError()       {}

// UserTaskUnknown wraps a failed task assignment write.
type UserTaskUnknown struct {
	domainerr.Unknown
	ID    models.UserTaskID
	Cause error
}

func (e UserTaskUnknown) Error() string      { return fmt.Sprintf("user task %s: %v", e.ID, e.Cause) }
func (e UserTaskUnknown) Subject() uuid.UUID { return e.ID.UUID }
func (e UserTaskUnknown) Unwrap() error      { return e.Cause }
func (UserTaskUnknown) userTaskError()       {}
