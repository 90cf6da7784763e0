package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/httpx"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// RoleRequest is the body of POST /roles and PUT /roles/{id}.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255" example:"admin"`
	Description string `json:"description" validate:"max=2000" example:"Full access"`
} // @name RoleRequest

// RoleResponse is a role.
type RoleResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string    `json:"name"        example:"admin"`
	Description string    `json:"description" example:"Full access"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name RoleResponse

func toRoleResponse(role *models.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID.UUID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func roleView(role *models.Role) any { return toRoleResponse(role) }

// CreateRole creates a role.
//
//	@Summary	Create role
//	@Tags		roles
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RoleRequest	true	"Role"
//	@Success	201		{object}	RoleResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/roles [post]
func (h *Handlers) CreateRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := pkgvalidator.ValidateRequest[RoleRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.CreateRole.Handle(r.Context(), commands.CreateRole{
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "create_role", start, res, err, http.StatusCreated, roleView)
}

// UpdateRole renames a role.
//
//	@Summary	Update role
//	@Tags		roles
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Role ID"
//	@Param		request	body		RoleRequest	true	"Role"
//	@Success	200		{object}	RoleResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/roles/{id} [put]
func (h *Handlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RoleRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UpdateRole.Handle(r.Context(), commands.UpdateRole{
		ID:          models.RoleID{UUID: id},
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "update_role", start, res, err, http.StatusOK, roleView)
}

// DeleteRole deletes a role and its assignments.
//
//	@Summary	Delete role
//	@Tags		roles
//	@Param		id	path	string	true	"Role ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/roles/{id} [delete]
func (h *Handlers) DeleteRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Commands.DeleteRole.Handle(r.Context(), commands.DeleteRole{ID: models.RoleID{UUID: id}})
	respond(h, w, r, "delete_role", start, res, err, http.StatusNoContent, nil)
}

// ListRoles returns every role.
//
//	@Summary	List roles
//	@Tags		roles
//	@Produce	json
//	@Success	200	{array}	RoleResponse
//	@Router		/roles [get]
func (h *Handlers) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.Roles.List(r.Context())
	if err != nil {
		h.readFault(w, r, "roles", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(roles, toRoleResponse))
}
