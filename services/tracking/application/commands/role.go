package commands

import (
	"context"

	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// CreateRole asks for a new role.
type CreateRole struct {
	Name        string
	Description string
}

// UpdateRole replaces the name and description of role ID.
type UpdateRole struct {
	ID          models.RoleID
	Name        string
	Description string
}

// DeleteRole removes role ID.
type DeleteRole struct {
	ID models.RoleID
}

// RoleResult is the outcome of every role command.
type RoleResult = result.Result[*models.Role, domain.RoleError]

func roleNotFound(id models.RoleID) func() domain.RoleError {
	return func() domain.RoleError { return domain.RoleNotFound{ID: id} }
}

func roleNameTaken(id models.RoleID, name string) func(*models.Role) domain.RoleError {
	return func(*models.Role) domain.RoleError { return domain.RoleAlreadyExists{ID: id, Name: name} }
}

func roleUnknown(id models.RoleID) func(error) domain.RoleError {
	return func(err error) domain.RoleError { return domain.RoleUnknown{ID: id, Cause: err} }
}

// CreateRoleHandler creates a role with a globally unique name.
type CreateRoleHandler struct {
	roles repositories.RoleQueries
	repo  repositories.RoleRepository
}

// NewCreateRoleHandler returns a CreateRoleHandler.
func NewCreateRoleHandler(roles repositories.RoleQueries, repo repositories.RoleRepository) *CreateRoleHandler {
	return &CreateRoleHandler{roles: roles, repo: repo}
}

// Handle rejects a taken name with RoleAlreadyExists.
func (h *CreateRoleHandler) Handle(ctx context.Context, cmd CreateRole) (RoleResult, error) {
	taken := roleNameTaken(models.EmptyRoleID, cmd.Name)
	checked, err := result.Validate(ctx, cmd,
		uniqueName(h.roles.List, cmd.Name, models.EmptyRoleID, taken),
	)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd CreateRole) (RoleResult, error) {
		r := models.NewRole(cmd.Name, cmd.Description)
		return persist(ctx, r,
			func(ctx context.Context) error { return h.repo.Add(ctx, r) },
			func() domain.RoleError { return taken(r) },
			roleUnknown(models.EmptyRoleID),
		)
	})
}

// UpdateRoleHandler renames a role.
type UpdateRoleHandler struct {
	roles repositories.RoleQueries
	repo  repositories.RoleRepository
}

// NewUpdateRoleHandler returns an UpdateRoleHandler.
func NewUpdateRoleHandler(roles repositories.RoleQueries, repo repositories.RoleRepository) *UpdateRoleHandler {
	return &UpdateRoleHandler{roles: roles, repo: repo}
}

// Handle resolves the role and checks the name against every other role.
func (h *UpdateRoleHandler) Handle(ctx context.Context, cmd UpdateRole) (RoleResult, error) {
	found, err := resolve(ctx, cmd.ID, h.roles.GetByID, roleNotFound(cmd.ID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, r *models.Role) (RoleResult, error) {
		return result.Validate(ctx, r,
			uniqueName(h.roles.List, cmd.Name, r.ID, roleNameTaken(r.ID, cmd.Name)),
		)
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, r *models.Role) (RoleResult, error) {
		r.UpdateDetails(cmd.Name, cmd.Description)
		return persist(ctx, r,
			func(ctx context.Context) error { return h.repo.Update(ctx, r) },
			func() domain.RoleError { return domain.RoleAlreadyExists{ID: r.ID, Name: r.Name} },
			roleUnknown(r.ID),
		)
	})
}

// DeleteRoleHandler deletes a role and unassigns it from every user.
type DeleteRoleHandler struct {
	roles repositories.RoleQueries
	repo  repositories.RoleRepository
}

// NewDeleteRoleHandler returns a DeleteRoleHandler.
func NewDeleteRoleHandler(roles repositories.RoleQueries, repo repositories.RoleRepository) *DeleteRoleHandler {
	return &DeleteRoleHandler{roles: roles, repo: repo}
}

// Handle fails with RoleNotFound for an unknown id.
func (h *DeleteRoleHandler) Handle(ctx context.Context, cmd DeleteRole) (RoleResult, error) {
	found, err := resolve(ctx, cmd.ID, h.roles.GetByID, roleNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, r *models.Role) (RoleResult, error) {
		return persist(ctx, r,
			func(ctx context.Context) error { return h.repo.Delete(ctx, r) },
			nil,
			roleUnknown(r.ID),
		)
	})
}
