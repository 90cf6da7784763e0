package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// CreateUser registers a user. Password is plain text and is hashed before storage.
type CreateUser struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UpdateUser replaces a user's details. An empty Password keeps the current one.
type UpdateUser struct {
	ID        models.UserID
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// DeleteUser removes user ID.
type DeleteUser struct {
	ID models.UserID
}

// AssignUserRole grants RoleID to UserID.
type AssignUserRole struct {
	UserID models.UserID
	RoleID models.RoleID
}

// UnassignUserRole takes RoleID away from UserID.
type UnassignUserRole struct {
	UserID models.UserID
	RoleID models.RoleID
}

// UserResult is the outcome of every user command.
type UserResult = result.Result[*models.User, domain.UserError]

func userNotFound(id models.UserID) func() domain.UserError {
	return func() domain.UserError { return domain.UserNotFound{ID: id} }
}

func userEmailTaken(id models.UserID, email string) func(*models.User) domain.UserError {
	return func(*models.User) domain.UserError { return domain.UserAlreadyExists{ID: id, Email: email} }
}

func userUnknown(id models.UserID) func(error) domain.UserError {
	return func(err error) domain.UserError { return domain.UserUnknown{ID: id, Cause: err} }
}

// uniqueEmail fails when another user already registered email. Emails are
// compared exactly, like names.
func uniqueEmail(users repositories.UserQueries, email string, self models.UserID) result.Check[domain.UserError] {
	holders := func(ctx context.Context) ([]*models.User, error) {
		found, err := users.GetByEmail(ctx, email)
		return option.Match(found,
			func(u *models.User) []*models.User { return []*models.User{u} },
			func() []*models.User { return nil },
		), err
	}
	return uniqueName(holders, email, self, userEmailTaken(self, email))
}

// hashPassword returns the bcrypt hash of password, or "" for an empty one.
func hashPassword(hasher repositories.PasswordHasher, password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// CreateUserHandler registers users with unique emails.
type CreateUserHandler struct {
	users  repositories.UserQueries
	repo   repositories.UserRepository
	hasher repositories.PasswordHasher
}

// NewCreateUserHandler returns a CreateUserHandler.
func NewCreateUserHandler(users repositories.UserQueries, repo repositories.UserRepository, hasher repositories.PasswordHasher) *CreateUserHandler {
	return &CreateUserHandler{users: users, repo: repo, hasher: hasher}
}

// Handle rejects a registered email with UserAlreadyExists, then hashes the password and adds the user.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUser) (UserResult, error) {
	checked, err := result.Validate(ctx, cmd, uniqueEmail(h.users, cmd.Email, models.EmptyUserID))
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd CreateUser) (UserResult, error) {
		hash, err := hashPassword(h.hasher, cmd.Password)
		if err != nil {
			return UserResult{}, err
		}
		u := models.NewUser(cmd.Email, cmd.FirstName, cmd.LastName, hash)
		return persist(ctx, u,
			func(ctx context.Context) error { return h.repo.Add(ctx, u) },
			func() domain.UserError { return userEmailTaken(models.EmptyUserID, u.Email)(u) },
			userUnknown(models.EmptyUserID),
		)
	})
}

// UpdateUserHandler edits a user's profile and password.
type UpdateUserHandler struct {
	users  repositories.UserQueries
	repo   repositories.UserRepository
	hasher repositories.PasswordHasher
}

// NewUpdateUserHandler returns an UpdateUserHandler.
func NewUpdateUserHandler(users repositories.UserQueries, repo repositories.UserRepository, hasher repositories.PasswordHasher) *UpdateUserHandler {
	return &UpdateUserHandler{users: users, repo: repo, hasher: hasher}
}

// Handle resolves the user and checks that the email is not registered to anyone else.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUser) (UserResult, error) {
	found, err := resolve(ctx, cmd.ID, h.users.GetByID, userNotFound(cmd.ID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		return result.Validate(ctx, u, uniqueEmail(h.users, cmd.Email, u.ID))
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		hash, err := hashPassword(h.hasher, cmd.Password)
		if err != nil {
			return UserResult{}, err
		}
		u.UpdateDetails(cmd.Email, cmd.FirstName, cmd.LastName, hash)
		return persist(ctx, u,
			func(ctx context.Context) error { return h.repo.Update(ctx, u) },
			func() domain.UserError { return userEmailTaken(u.ID, u.Email)(u) },
			userUnknown(u.ID),
		)
	})
}

// DeleteUserHandler deletes a user with their memberships, assignments and
// time entries.
type DeleteUserHandler struct {
	users repositories.UserQueries
	repo  repositories.UserRepository
}

// NewDeleteUserHandler returns a DeleteUserHandler.
func NewDeleteUserHandler(users repositories.UserQueries, repo repositories.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{users: users, repo: repo}
}

// Handle fails with UserNotFound for an unknown id.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUser) (UserResult, error) {
	found, err := resolve(ctx, cmd.ID, h.users.GetByID, userNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		return persist(ctx, u,
			func(ctx context.Context) error { return h.repo.Delete(ctx, u) },
			nil,
			userUnknown(u.ID),
		)
	})
}

// AssignUserRoleHandler grants roles to users.
type AssignUserRoleHandler struct {
	users repositories.UserQueries
	roles repositories.RoleQueries
	repo  repositories.UserRepository
}

// NewAssignUserRoleHandler returns an AssignUserRoleHandler.
func NewAssignUserRoleHandler(users repositories.UserQueries, roles repositories.RoleQueries, repo repositories.UserRepository) *AssignUserRoleHandler {
	return &AssignUserRoleHandler{users: users, roles: roles, repo: repo}
}

// Handle requires both user and role to exist and the role not to be held yet.
func (h *AssignUserRoleHandler) Handle(ctx context.Context, cmd AssignUserRole) (UserResult, error) {
	alreadyAssigned := func() domain.UserError {
		return domain.UserRoleAlreadyAssigned{ID: cmd.UserID, RoleID: cmd.RoleID}
	}

	found, err := resolve(ctx, cmd.UserID, h.users.GetByID, userNotFound(cmd.UserID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		return result.Validate(ctx, u,
			exists(cmd.RoleID, h.roles.GetByID, func() domain.UserError {
				return domain.UserRoleNotFound{ID: u.ID, RoleID: cmd.RoleID}
			}),
			func(context.Context) (result.Result[result.Unit, domain.UserError], error) {
				if u.HasRole(cmd.RoleID) {
					return result.Failure[result.Unit](alreadyAssigned()), nil
				}
				return result.Ok[domain.UserError](), nil
			},
		)
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		u.AssignRole(cmd.RoleID)
		return persist(ctx, u,
			func(ctx context.Context) error { return h.repo.Update(ctx, u) },
			alreadyAssigned,
			userUnknown(u.ID),
		)
	})
}

// UnassignUserRoleHandler revokes roles from users.
type UnassignUserRoleHandler struct {
	users repositories.UserQueries
	repo  repositories.UserRepository
}

// NewUnassignUserRoleHandler returns an UnassignUserRoleHandler.
func NewUnassignUserRoleHandler(users repositories.UserQueries, repo repositories.UserRepository) *UnassignUserRoleHandler {
	return &UnassignUserRoleHandler{users: users, repo: repo}
}

// Handle fails with UserRoleNotFound when the user does not hold the role.
func (h *UnassignUserRoleHandler) Handle(ctx context.Context, cmd UnassignUserRole) (UserResult, error) {
	found, err := resolve(ctx, cmd.UserID, h.users.GetByID, userNotFound(cmd.UserID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		if !u.HasRole(cmd.RoleID) {
			return result.Failure[*models.User](domain.UserError(domain.UserRoleNotFound{ID: u.ID, RoleID: cmd.RoleID})), nil
		}
		return result.Success[*models.User, domain.UserError](u), nil
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, u *models.User) (UserResult, error) {
		u.UnassignRole(cmd.RoleID)
		return persist(ctx, u,
			func(ctx context.Context) error { return h.repo.Update(ctx, u) },
			nil,
			userUnknown(u.ID),
		)
	})
}
