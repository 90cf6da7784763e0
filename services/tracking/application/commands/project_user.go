package commands

import (
	"context"

	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// AddProjectUser makes UserID a member of ProjectID.
type AddProjectUser struct {
	ProjectID       models.ProjectID
	UserID          models.UserID
	HourlyRateCents int64
	IsManager       bool
}

// UpdateProjectUser changes the rate and manager flag of membership ID.
type UpdateProjectUser struct {
	ID              models.ProjectUserID
	HourlyRateCents int64
	IsManager       bool
}

// RemoveProjectUser ends membership ID.
type RemoveProjectUser struct {
	ID models.ProjectUserID
}

// ProjectUserResult is the outcome of every project membership command.
type ProjectUserResult = result.Result[*models.ProjectUser, domain.ProjectUserError]

func projectUserNotFound(id models.ProjectUserID) func() domain.ProjectUserError {
	return func() domain.ProjectUserError { return domain.ProjectUserNotFound{ID: id} }
}

func projectUserUnknown(id models.ProjectUserID) func(error) domain.ProjectUserError {
	return func(err error) domain.ProjectUserError { return domain.ProjectUserUnknown{ID: id, Cause: err} }
}

// AddProjectUserHandler makes a user a member of a project. A user is a
// member of a project at most once.
type AddProjectUserHandler struct {
	projects repositories.ProjectQueries
	users    repositories.UserQueries
	members  repositories.ProjectUserQueries
	repo     repositories.ProjectUserRepository
}

// NewAddProjectUserHandler returns an AddProjectUserHandler.
func NewAddProjectUserHandler(
	projects repositories.ProjectQueries,
	users repositories.UserQueries,
	members repositories.ProjectUserQueries,
	repo repositories.ProjectUserRepository,
) *AddProjectUserHandler {
	return &AddProjectUserHandler{projects: projects, users: users, members: members, repo: repo}
}

// Handle resolves the project and the user, then rejects a second membership.
func (h *AddProjectUserHandler) Handle(ctx context.Context, cmd AddProjectUser) (ProjectUserResult, error) {
	self := models.EmptyProjectUserID
	alreadyMember := func() domain.ProjectUserError {
		return domain.ProjectUserAlreadyExists{ID: self, ProjectID: cmd.ProjectID, UserID: cmd.UserID}
	}
	members := func(ctx context.Context) ([]*models.ProjectUser, error) {
		return h.members.ListByProjectID(ctx, cmd.ProjectID)
	}

	checked, err := result.Validate(ctx, cmd,
		exists(cmd.ProjectID, h.projects.GetByID, func() domain.ProjectUserError {
			return domain.ProjectUserProjectNotFound{ID: self, ProjectID: cmd.ProjectID}
		}),
		exists(cmd.UserID, h.users.GetByID, func() domain.ProjectUserError {
			return domain.ProjectUserUserNotFound{ID: self, UserID: cmd.UserID}
		}),
		unique(members,
			func(m *models.ProjectUser) bool { return m.UserID == cmd.UserID },
			func(*models.ProjectUser) domain.ProjectUserError { return alreadyMember() },
		),
	)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd AddProjectUser) (ProjectUserResult, error) {
		pu := models.NewProjectUser(cmd.ProjectID, cmd.UserID, cmd.HourlyRateCents, cmd.IsManager)
		return persist(ctx, pu,
			func(ctx context.Context) error { return h.repo.Add(ctx, pu) },
			alreadyMember,
			projectUserUnknown(self),
		)
	})
}

// UpdateProjectUserHandler changes a member's hourly rate and manager flag.
type UpdateProjectUserHandler struct {
	members repositories.ProjectUserQueries
	repo    repositories.ProjectUserRepository
}

// NewUpdateProjectUserHandler returns an UpdateProjectUserHandler.
func NewUpdateProjectUserHandler(members repositories.ProjectUserQueries, repo repositories.ProjectUserRepository) *UpdateProjectUserHandler {
	return &UpdateProjectUserHandler{members: members, repo: repo}
}

// Handle fails with ProjectUserNotFound for an unknown membership.
func (h *UpdateProjectUserHandler) Handle(ctx context.Context, cmd UpdateProjectUser) (ProjectUserResult, error) {
	found, err := resolve(ctx, cmd.ID, h.members.GetByID, projectUserNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, pu *models.ProjectUser) (ProjectUserResult, error) {
		pu.UpdateDetails(cmd.HourlyRateCents, cmd.IsManager)
		return persist(ctx, pu,
			func(ctx context.Context) error { return h.repo.Update(ctx, pu) },
			nil,
			projectUserUnknown(pu.ID),
		)
	})
}

// RemoveProjectUserHandler ends a membership.
type RemoveProjectUserHandler struct {
	members repositories.ProjectUserQueries
	repo    repositories.ProjectUserRepository
}

// NewRemoveProjectUserHandler returns a RemoveProjectUserHandler.
func NewRemoveProjectUserHandler(members repositories.ProjectUserQueries, repo repositories.ProjectUserRepository) *RemoveProjectUserHandler {
	return &RemoveProjectUserHandler{members: members, repo: repo}
}

// Handle deletes the membership. Time entries already recorded are kept.
func (h *RemoveProjectUserHandler) Handle(ctx context.Context, cmd RemoveProjectUser) (ProjectUserResult, error) {
	found, err := resolve(ctx, cmd.ID, h.members.GetByID, projectUserNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, pu *models.ProjectUser) (ProjectUserResult, error) {
		return persist(ctx, pu,
			func(ctx context.Context) error { return h.repo.Delete(ctx, pu) },
			nil,
			projectUserUnknown(pu.ID),
		)
	})
}
