package commands

import (
	"context"
	"time"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/domain/services"
)

// CreateTimeEntry records work by UserID on ProjectID between StartTime and
// EndTime. Minutes is stored as given.
type CreateTimeEntry struct {
	UserID        models.UserID
	ProjectID     models.ProjectID
	ProjectTaskID option.Option[models.ProjectTaskID]
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Minutes       int
}

func (c CreateTimeEntry) details() models.TimeEntryDetails {
	return models.TimeEntryDetails{
		ProjectID:     c.ProjectID,
		ProjectTaskID: c.ProjectTaskID,
		Description:   c.Description,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Minutes:       c.Minutes,
	}
}

// UpdateTimeEntry replaces every mutable field of an entry. The owning user
// cannot be changed.
type UpdateTimeEntry struct {
	ID            models.TimeEntryID
	ProjectID     models.ProjectID
	ProjectTaskID option.Option[models.ProjectTaskID]
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Minutes       int
}

func (c UpdateTimeEntry) details() models.TimeEntryDetails {
	return models.TimeEntryDetails{
		ProjectID:     c.ProjectID,
		ProjectTaskID: c.ProjectTaskID,
		Description:   c.Description,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Minutes:       c.Minutes,
	}
}

// DeleteTimeEntry removes entry ID.
type DeleteTimeEntry struct {
	ID models.TimeEntryID
}

// TimeEntryResult is the outcome of every time entry command.
type TimeEntryResult = result.Result[*models.TimeEntry, domain.TimeEntryError]

func timeEntryNotFound(id models.TimeEntryID) func() domain.TimeEntryError {
	return func() domain.TimeEntryError { return domain.TimeEntryNotFound{ID: id} }
}

func timeEntryUnknown(id models.TimeEntryID) func(error) domain.TimeEntryError {
	return func(err error) domain.TimeEntryError { return domain.TimeEntryUnknown{ID: id, Cause: err} }
}

// overlapRejected is the variant for an overlap the store caught after the
// validator passed, e.g. a concurrent insert.
func overlapRejected(id models.TimeEntryID, iv models.Interval) func() domain.TimeEntryError {
	return func() domain.TimeEntryError { return domain.TimeEntryOverlap{ID: id, Start: iv.Start, End: iv.End} }
}

// timeEntryRules holds the collaborators behind the time entry invariants.
type timeEntryRules struct {
	projects repositories.ProjectQueries
	tasks    repositories.ProjectTaskQueries
	entries  repositories.TimeEntryQueries
}

// checks returns the gates for an entry of userID with details d: project
// exists, task (if any) belongs to the project, start < end, no overlap with
// the user's other entries.
func (r timeEntryRules) checks(self models.TimeEntryID, userID models.UserID, d models.TimeEntryDetails, exclude option.Option[models.TimeEntryID]) []result.Check[domain.TimeEntryError] {
	iv := models.Interval{Start: d.StartTime, End: d.EndTime}
	return []result.Check[domain.TimeEntryError]{
		exists(d.ProjectID, r.projects.GetByID, func() domain.TimeEntryError {
			return domain.TimeEntryProjectNotFound{ID: self, ProjectID: d.ProjectID}
		}),
		when(d.ProjectTaskID, func(taskID models.ProjectTaskID) result.Check[domain.TimeEntryError] {
			return r.taskInProject(self, taskID, d.ProjectID)
		}),
		func(ctx context.Context) (result.Result[result.Unit, domain.TimeEntryError], error) {
			entries, err := r.entries.ListByUserID(ctx, userID)
			if err != nil {
				return result.Result[result.Unit, domain.TimeEntryError]{}, err
			}
			return services.ValidateInterval(self, iv, entries, exclude), nil
		},
	}
}

// taskInProject fails unless taskID exists and belongs to projectID.
func (r timeEntryRules) taskInProject(self models.TimeEntryID, taskID models.ProjectTaskID, projectID models.ProjectID) result.Check[domain.TimeEntryError] {
	inProject := func(ctx context.Context, id models.ProjectTaskID) (option.Option[*models.ProjectTask], error) {
		found, err := r.tasks.GetByID(ctx, id)
		if err != nil {
			return found, err
		}
		return option.Filter(found, func(t *models.ProjectTask) bool { return t.ProjectID == projectID }), nil
	}
	return exists(taskID, inProject, func() domain.TimeEntryError {
		return domain.TimeEntryProjectTaskNotFound{ID: self, ProjectTaskID: taskID}
	})
}

// CreateTimeEntryHandler records time for a user against a project and,
// optionally, one of its tasks.
type CreateTimeEntryHandler struct {
	users repositories.UserQueries
	rules timeEntryRules
	repo  repositories.TimeEntryRepository
}

// NewCreateTimeEntryHandler returns a CreateTimeEntryHandler.
func NewCreateTimeEntryHandler(
	users repositories.UserQueries,
	projects repositories.ProjectQueries,
	tasks repositories.ProjectTaskQueries,
	entries repositories.TimeEntryQueries,
	repo repositories.TimeEntryRepository,
) *CreateTimeEntryHandler {
	return &CreateTimeEntryHandler{
		users: users,
		rules: timeEntryRules{projects: projects, tasks: tasks, entries: entries},
		repo:  repo,
	}
}

// Handle validates before minting an id, so overlap and ordering failures
// carry the empty id.
func (h *CreateTimeEntryHandler) Handle(ctx context.Context, cmd CreateTimeEntry) (TimeEntryResult, error) {
	self := models.EmptyTimeEntryID
	d := cmd.details()

	checks := append([]result.Check[domain.TimeEntryError]{
		exists(cmd.UserID, h.users.GetByID, func() domain.TimeEntryError {
			return domain.TimeEntryUserNotFound{ID: self, UserID: cmd.UserID}
		}),
	}, h.rules.checks(self, cmd.UserID, d, option.None[models.TimeEntryID]())...)

	checked, err := result.Validate(ctx, cmd, checks...)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd CreateTimeEntry) (TimeEntryResult, error) {
		e := models.NewTimeEntry(cmd.UserID, d)
		return persist(ctx, e,
			func(ctx context.Context) error { return h.repo.Add(ctx, e) },
			overlapRejected(self, e.Interval()),
			timeEntryUnknown(self),
		)
	})
}

// UpdateTimeEntryHandler replaces an entry's details. The entry's own stored
// interval is excluded from the overlap scan.
type UpdateTimeEntryHandler struct {
	entries repositories.TimeEntryQueries
	rules   timeEntryRules
	repo    repositories.TimeEntryRepository
}

// NewUpdateTimeEntryHandler returns an UpdateTimeEntryHandler.
func NewUpdateTimeEntryHandler(
	projects repositories.ProjectQueries,
	tasks repositories.ProjectTaskQueries,
	entries repositories.TimeEntryQueries,
	repo repositories.TimeEntryRepository,
) *UpdateTimeEntryHandler {
	return &UpdateTimeEntryHandler{
		entries: entries,
		rules:   timeEntryRules{projects: projects, tasks: tasks, entries: entries},
		repo:    repo,
	}
}

// Handle re-runs the interval checks with the entry itself excluded from the
// overlap scan.
func (h *UpdateTimeEntryHandler) Handle(ctx context.Context, cmd UpdateTimeEntry) (TimeEntryResult, error) {
	d := cmd.details()
	found, err := resolve(ctx, cmd.ID, h.entries.GetByID, timeEntryNotFound(cmd.ID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, e *models.TimeEntry) (TimeEntryResult, error) {
		return result.Validate(ctx, e, h.rules.checks(e.ID, e.UserID, d, option.Some(e.ID))...)
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, e *models.TimeEntry) (TimeEntryResult, error) {
		e.UpdateDetails(d)
		return persist(ctx, e,
			func(ctx context.Context) error { return h.repo.Update(ctx, e) },
			overlapRejected(e.ID, e.Interval()),
			timeEntryUnknown(e.ID),
		)
	})
}

// DeleteTimeEntryHandler deletes time entries.
type DeleteTimeEntryHandler struct {
	entries repositories.TimeEntryQueries
	repo    repositories.TimeEntryRepository
}

// NewDeleteTimeEntryHandler returns a DeleteTimeEntryHandler.
func NewDeleteTimeEntryHandler(entries repositories.TimeEntryQueries, repo repositories.TimeEntryRepository) *DeleteTimeEntryHandler {
	return &DeleteTimeEntryHandler{entries: entries, repo: repo}
}

// Handle fails with TimeEntryNotFound for an unknown id.
func (h *DeleteTimeEntryHandler) Handle(ctx context.Context, cmd DeleteTimeEntry) (TimeEntryResult, error) {
	found, err := resolve(ctx, cmd.ID, h.entries.GetByID, timeEntryNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, e *models.TimeEntry) (TimeEntryResult, error) {
		return persist(ctx, e,
			func(ctx context.Context) error { return h.repo.Delete(ctx, e) },
			nil,
			timeEntryUnknown(e.ID),
		)
	})
}
