package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/option"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// TimeEntryRequest is the body of POST /time-entries and PUT /time-entries/{id}.
// UserID is only read on create and defaults to the caller.
type TimeEntryRequest struct {
	UserID        *uuid.UUID `json:"user_id,omitempty" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	ProjectID     uuid.UUID  `json:"project_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProjectTaskID *uuid.UUID `json:"project_task_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Description   string     `json:"description" validate:"max=2000" example:"Landing page copy"`
	StartTime     time.Time  `json:"start_time" validate:"required" example:"2024-01-15T09:00:00Z"`
	EndTime       time.Time  `json:"end_time" validate:"required" example:"2024-01-15T10:30:00Z"`
	Minutes       int        `json:"minutes" validate:"gte=0" example:"90"`
} // @name TimeEntryRequest

// TimeEntryResponse is a time entry.
type TimeEntryResponse struct {
	ID            uuid.UUID  `json:"id"                        example:"123e4567-e89b-12d3-a456-426614174000"`
	UserID        uuid.UUID  `json:"user_id"                   example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	ProjectID     uuid.UUID  `json:"project_id"                example:"550e8400-e29b-41d4-a716-446655440000"`
	ProjectTaskID *uuid.UUID `json:"project_task_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Description   string     `json:"description"               example:"Landing page copy"`
	StartTime     time.Time  `json:"start_time"                example:"2024-01-15T09:00:00Z"`
	EndTime       time.Time  `json:"end_time"                  example:"2024-01-15T10:30:00Z"`
	Minutes       int        `json:"minutes"                   example:"90"`
	CreatedAt     time.Time  `json:"created_at"                example:"2024-01-15T10:30:00Z"`
	UpdatedAt     time.Time  `json:"updated_at"                example:"2024-01-15T10:30:00Z"`
} // @name TimeEntryResponse

func toTimeEntryResponse(e *models.TimeEntry) TimeEntryResponse {
	taskID := option.Map(e.ProjectTaskID, func(id models.ProjectTaskID) uuid.UUID { return id.UUID })
	return TimeEntryResponse{
		ID:            e.ID.UUID,
		UserID:        e.UserID.UUID,
		ProjectID:     e.ProjectID.UUID,
		ProjectTaskID: option.ToPtr(taskID),
		Description:   e.Description,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Minutes:       e.Minutes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func timeEntryView(e *models.TimeEntry) any { return toTimeEntryResponse(e) }

func taskIDFrom(p *uuid.UUID) option.Option[models.ProjectTaskID] {
	return option.Map(option.FromPtr(p), func(u uuid.UUID) models.ProjectTaskID {
		return models.ProjectTaskID{UUID: u}
	})
}

// CreateTimeEntry records time against a project.
//
//	@Summary		Create time entry
//	@Description	Entries of one user never overlap. user_id defaults to the caller.
//	@Tags			time-entries
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TimeEntryRequest	true	"Time entry"
//	@Success		201		{object}	TimeEntryResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/time-entries [post]
func (h *Handlers) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	const command = "create_time_entry"
	start := time.Now()
	req, ok := pkgvalidator.ValidateRequest[TimeEntryRequest](w, r)
	if !ok {
		return
	}

	var userID uuid.UUID
	if req.UserID != nil {
		userID = *req.UserID
	} else {
		caller, err := auth.UserIDFromCtx(r.Context())
		if err != nil {
			h.fault(w, r, command, start, err)
			return
		}
		userID = caller
	}

	res, err := h.svc.Commands.CreateTimeEntry.Handle(r.Context(), commands.CreateTimeEntry{
		UserID:        models.UserID{UUID: userID},
		ProjectID:     models.ProjectID{UUID: req.ProjectID},
		ProjectTaskID: taskIDFrom(req.ProjectTaskID),
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Minutes:       req.Minutes,
	})
	respond(h, w, r, command, start, res, err, http.StatusCreated, timeEntryView)
}

// UpdateTimeEntry replaces a time entry. Its user cannot change.
//
//	@Summary	Update time entry
//	@Tags		time-entries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Time entry ID"
//	@Param		request	body		TimeEntryRequest	true	"Time entry"
//	@Success	200		{object}	TimeEntryResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/time-entries/{id} [put]
func (h *Handlers) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[TimeEntryRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UpdateTimeEntry.Handle(r.Context(), commands.UpdateTimeEntry{
		ID:            models.TimeEntryID{UUID: id},
		ProjectID:     models.ProjectID{UUID: req.ProjectID},
		ProjectTaskID: taskIDFrom(req.ProjectTaskID),
		Description:   req.Description,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Minutes:       req.Minutes,
	})
	respond(h, w, r, "update_time_entry", start, res, err, http.StatusOK, timeEntryView)
}

// DeleteTimeEntry deletes a time entry.
//
//	@Summary	Delete time entry
//	@Tags		time-entries
//	@Param		id	path	string	true	"Time entry ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/time-entries/{id} [delete]
func (h *Handlers) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Commands.DeleteTimeEntry.Handle(r.Context(), commands.DeleteTimeEntry{ID: models.TimeEntryID{UUID: id}})
	respond(h, w, r, "delete_time_entry", start, res, err, http.StatusNoContent, nil)
}

// ListUserTimeEntries returns a user's entries ordered by start time.
//
//	@Summary	List time entries of a user
//	@Tags		time-entries
//	@Produce	json
//	@Param		id	path	string	true	"User ID"
//	@Success	200	{array}	TimeEntryResponse
//	@Router		/users/{id}/time-entries [get]
func (h *Handlers) ListUserTimeEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	es, err := h.svc.TimeEntries.ListByUserID(r.Context(), models.UserID{UUID: userID})
	if err != nil {
		h.readFault(w, r, "time entries", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(es, toTimeEntryResponse))
}
