package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/domainerr"
	"github.com/ghuser/hourglass/pkg/errhttp"
	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/telemetry"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// AddMemberRequest is the body of POST /projects/{id}/users.
type AddMemberRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	HourlyRateCents int64     `json:"hourly_rate_cents" validate:"gte=0" example:"8500"`
	IsManager       bool      `json:"is_manager" example:"false"`
} // @name AddMemberRequest

// UpdateMemberRequest is the body of PUT /projects/{id}/users/{projectUserID}.
type UpdateMemberRequest struct {
	HourlyRateCents int64 `json:"hourly_rate_cents" validate:"gte=0" example:"9000"`
	IsManager       bool  `json:"is_manager" example:"true"`
} // @name UpdateMemberRequest

// MemberResponse is a project membership.
type MemberResponse struct {
	ID              uuid.UUID `json:"id"                example:"123e4567-e89b-12d3-a456-426614174000"`
	ProjectID       uuid.UUID `json:"project_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID          uuid.UUID `json:"user_id"           example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	HourlyRateCents int64     `json:"hourly_rate_cents" example:"8500"`
	IsManager       bool      `json:"is_manager"        example:"false"`
	CreatedAt       time.Time `json:"created_at"        example:"2024-01-15T10:30:00Z"`
	UpdatedAt       time.Time `json:"updated_at"        example:"2024-01-15T10:30:00Z"`
} // @name MemberResponse

func toMemberResponse(pu *models.ProjectUser) MemberResponse {
	return MemberResponse{
		ID:              pu.ID.UUID,
		ProjectID:       pu.ProjectID.UUID,
		UserID:          pu.UserID.UUID,
		HourlyRateCents: pu.HourlyRateCents,
		IsManager:       pu.IsManager,
		CreatedAt:       pu.CreatedAt,
		UpdatedAt:       pu.UpdatedAt,
	}
}

func memberView(pu *models.ProjectUser) any { return toMemberResponse(pu) }

// AddMember adds a user to a project.
//
//	@Summary		Add project member
//	@Description	A user is a member of a project at most once.
//	@Tags			members
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Project ID"
//	@Param			request	body		AddMemberRequest	true	"Membership"
//	@Success		201		{object}	MemberResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/projects/{id}/users [post]
func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	projectID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[AddMemberRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.AddProjectUser.Handle(r.Context(), commands.AddProjectUser{
		ProjectID:       models.ProjectID{UUID: projectID},
		UserID:          models.UserID{UUID: req.UserID},
		HourlyRateCents: req.HourlyRateCents,
		IsManager:       req.IsManager,
	})
	respond(h, w, r, "add_project_user", start, res, err, http.StatusCreated, memberView)
}

// UpdateMember changes a member's rate and manager flag.
//
//	@Summary	Update project member
//	@Tags		members
//	@Accept		json
//	@Produce	json
//	@Param		id				path		string				true	"Project ID"
//	@Param		projectUserID	path		string				true	"Membership ID"
//	@Param		request			body		UpdateMemberRequest	true	"Membership"
//	@Success	200				{object}	MemberResponse
//	@Failure	400				{object}	errhttp.ErrorResponse
//	@Failure	404				{object}	errhttp.ErrorResponse
//	@Failure	422				{object}	errhttp.ErrorResponse
//	@Router		/projects/{id}/users/{projectUserID} [put]
func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	const command = "update_project_user"
	start := time.Now()
	id, ok := h.memberPath(w, r, command, start)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateMemberRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UpdateProjectUser.Handle(r.Context(), commands.UpdateProjectUser{
		ID:              id,
		HourlyRateCents: req.HourlyRateCents,
		IsManager:       req.IsManager,
	})
	respond(h, w, r, command, start, res, err, http.StatusOK, memberView)
}

// RemoveMember removes a user from a project.
//
//	@Summary	Remove project member
//	@Tags		members
//	@Param		id				path	string	true	"Project ID"
//	@Param		projectUserID	path	string	true	"Membership ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/projects/{id}/users/{projectUserID} [delete]
func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	const command = "remove_project_user"
	start := time.Now()
	id, ok := h.memberPath(w, r, command, start)
	if !ok {
		return
	}
	res, err := h.svc.Commands.RemoveProjectUser.Handle(r.Context(), commands.RemoveProjectUser{ID: id})
	respond(h, w, r, command, start, res, err, http.StatusNoContent, nil)
}

// ListMembers returns the memberships of a project.
//
//	@Summary	List project members
//	@Tags		members
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"
//	@Success	200	{array}	MemberResponse
//	@Router		/projects/{id}/users [get]
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	ms, err := h.svc.Members.ListByProjectID(r.Context(), models.ProjectID{UUID: projectID})
	if err != nil {
		h.readFault(w, r, "project members", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(ms, toMemberResponse))
}

// memberPath parses both path ids and checks the membership belongs to the
// project. A membership of another project is reported as not found.
func (h *Handlers) memberPath(w http.ResponseWriter, r *http.Request, command string, start time.Time) (models.ProjectUserID, bool) {
	projectID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return models.EmptyProjectUserID, false
	}
	raw, ok := httpx.PathUUID(w, r, "projectUserID")
	if !ok {
		return models.EmptyProjectUserID, false
	}
	id := models.ProjectUserID{UUID: raw}

	found, err := h.svc.Members.GetByID(r.Context(), id)
	if err != nil {
		h.fault(w, r, command, start, err)
		return models.EmptyProjectUserID, false
	}
	inProject := option.Filter(found, func(pu *models.ProjectUser) bool { return pu.ProjectID.UUID == projectID })
	member := option.Match(inProject,
		func(*models.ProjectUser) bool { return true },
		func() bool {
			notFound := domain.ProjectUserNotFound{ID: id}
			h.record(r.Context(), command, telemetry.OutcomeRejected, string(domainerr.KindOf(notFound)), start)
			errhttp.WriteDomainError(w, notFound)
			return false
		},
	)
	if !member {
		return models.EmptyProjectUserID, false
	}
	return id, true
}
