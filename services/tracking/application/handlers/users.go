package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/errhttp"
	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	FirstName string `json:"first_name" validate:"required,notblank,max=255" example:"Ada"`
	LastName  string `json:"last_name" validate:"required,notblank,max=255" example:"Lovelace"`
	Password  string `json:"password" validate:"required,min=8,max=72" example:"correct-horse-battery"`
} // @name CreateUserRequest

// UpdateUserRequest is the body of PUT /users/{id}. An empty password keeps
// the current one.
type UpdateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=255" example:"ada@example.com"`
	FirstName string `json:"first_name" validate:"required,notblank,max=255" example:"Ada"`
	LastName  string `json:"last_name" validate:"required,notblank,max=255" example:"Lovelace"`
	Password  string `json:"password" validate:"omitempty,min=8,max=72" example:""`
} // @name UpdateUserRequest

// UserResponse is a user. The password hash is never returned.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"         example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Email     string      `json:"email"      example:"ada@example.com"`
	FirstName string      `json:"first_name" example:"Ada"`
	LastName  string      `json:"last_name"  example:"Lovelace"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
	CreatedAt time.Time   `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time   `json:"updated_at" example:"2024-01-15T10:30:00Z"`
} // @name UserResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.UUID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleIDs:   mapSlice(u.RoleIDs, func(id models.RoleID) uuid.UUID { return id.UUID }),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userView(u *models.User) any { return toUserResponse(u) }

// CreateUser registers a user.
//
//	@Summary		Create user
//	@Description	Registers a user. Emails are unique. Does not require authentication.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"User"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/users [post]
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := pkgvalidator.ValidateRequest[CreateUserRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.CreateUser.Handle(r.Context(), commands.CreateUser{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	respond(h, w, r, "create_user", start, res, err, http.StatusCreated, userView)
}

// UpdateUser replaces a user's details.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User ID"
//	@Param		request	body		UpdateUserRequest	true	"User"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/users/{id} [put]
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateUserRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UpdateUser.Handle(r.Context(), commands.UpdateUser{
		ID:        models.UserID{UUID: id},
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	respond(h, w, r, "update_user", start, res, err, http.StatusOK, userView)
}

// DeleteUser deletes a user.
//
//	@Summary	Delete user
//	@Tags		users
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Commands.DeleteUser.Handle(r.Context(), commands.DeleteUser{ID: models.UserID{UUID: id}})
	if err == nil {
		result.Do(res,
			func(u *models.User) { h.revokeSessions(r, u.ID.UUID) },
			func(domain.UserError) {},
		)
	}
	respond(h, w, r, "delete_user", start, res, err, http.StatusNoContent, nil)
}

// revokeSessions ends the deleted user's cookie sessions. Bearer tokens run
// until they expire; RequireAuth does not look users up.
func (h *Handlers) revokeSessions(r *http.Request, userID uuid.UUID) {
	revoker, ok := h.store.(auth.SessionRevoker)
	if !ok {
		return
	}
	if err := revoker.RevokeUser(r.Context(), userID); err != nil {
		h.log.WarnContext(r.Context(), "revoke sessions failed", "user_id", userID, "error", err)
	}
}

// GetUser returns a user.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	UserResponse
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/users/{id} [get]
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	userID := models.UserID{UUID: id}
	found, err := h.svc.Users.GetByID(r.Context(), userID)
	if err != nil {
		h.readFault(w, r, "user", err)
		return
	}
	option.Do(found,
		func(u *models.User) { httpx.JSON(w, http.StatusOK, toUserResponse(u)) },
		func() { errhttp.WriteDomainError(w, domain.UserNotFound{ID: userID}) },
	)
}

// AssignRole grants a role to a user.
//
//	@Summary	Assign role
//	@Tags		users
//	@Produce	json
//	@Param		id		path		string	true	"User ID"
//	@Param		roleID	path		string	true	"Role ID"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Router		/users/{id}/roles/{roleID} [post]
func (h *Handlers) AssignRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, roleID, ok := userRolePath(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.AssignUserRole.Handle(r.Context(), commands.AssignUserRole{UserID: userID, RoleID: roleID})
	respond(h, w, r, "assign_user_role", start, res, err, http.StatusOK, userView)
}

// UnassignRole revokes a role from a user. Revoking a role the user does not
// hold is a 404.
//
//	@Summary	Unassign role
//	@Tags		users
//	@Produce	json
//	@Param		id		path		string	true	"User ID"
//	@Param		roleID	path		string	true	"Role ID"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Router		/users/{id}/roles/{roleID} [delete]
func (h *Handlers) UnassignRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, roleID, ok := userRolePath(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UnassignUserRole.Handle(r.Context(), commands.UnassignUserRole{UserID: userID, RoleID: roleID})
	respond(h, w, r, "unassign_user_role", start, res, err, http.StatusOK, userView)
}

func userRolePath(w http.ResponseWriter, r *http.Request) (models.UserID, models.RoleID, bool) {
	userID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return models.EmptyUserID, models.EmptyRoleID, false
	}
	roleID, ok := httpx.PathUUID(w, r, "roleID")
	if !ok {
		return models.EmptyUserID, models.EmptyRoleID, false
	}
	return models.UserID{UUID: userID}, models.RoleID{UUID: roleID}, true
}
