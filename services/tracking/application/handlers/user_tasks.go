package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// UserTaskResponse is a task assignment.
type UserTaskResponse struct {
	ID            uuid.UUID `json:"id"              example:"123e4567-e89b-12d3-a456-426614174000"`
	UserID        uuid.UUID `json:"user_id"         example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	ProjectTaskID uuid.UUID `json:"project_task_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt     time.Time `json:"created_at"      example:"2024-01-15T10:30:00Z"`
} // @name UserTaskResponse

func toUserTaskResponse(ut *models.UserTask) UserTaskResponse {
	return UserTaskResponse{
		ID:            ut.ID.UUID,
		UserID:        ut.UserID.UUID,
		ProjectTaskID: ut.ProjectTaskID.UUID,
		CreatedAt:     ut.CreatedAt,
	}
}

// AssignTask assigns a project task to a user.
//
//	@Summary	Assign task
//	@Tags		users
//	@Produce	json
//	@Param		id		path		string	true	"User ID"
//	@Param		taskID	path		string	true	"Task ID"
//	@Success	201		{object}	UserTaskResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Router		/users/{id}/tasks/{taskID} [post]
func (h *Handlers) AssignTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, taskID, ok := userTaskPath(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.AssignUserTask.Handle(r.Context(), commands.AssignUserTask{UserID: userID, ProjectTaskID: taskID})
	respond(h, w, r, "assign_user_task", start, res, err, http.StatusCreated, func(ut *models.UserTask) any {
		return toUserTaskResponse(ut)
	})
}

// UnassignTask removes a task assignment.
//
//	@Summary	Unassign task
//	@Tags		users
//	@Param		id		path	string	true	"User ID"
//	@Param		taskID	path	string	true	"Task ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/users/{id}/tasks/{taskID} [delete]
func (h *Handlers) UnassignTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID, taskID, ok := userTaskPath(w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UnassignUserTask.Handle(r.Context(), commands.UnassignUserTask{UserID: userID, ProjectTaskID: taskID})
	respond(h, w, r, "unassign_user_task", start, res, err, http.StatusNoContent, nil)
}

// ListUserTasks returns a user's task assignments.
//
//	@Summary	List task assignments of a user
//	@Tags		users
//	@Produce	json
//	@Param		id	path	string	true	"User ID"
//	@Success	200	{array}	UserTaskResponse
//	@Router		/users/{id}/tasks [get]
func (h *Handlers) ListUserTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	uts, err := h.svc.UserTasks.ListByUserID(r.Context(), models.UserID{UUID: userID})
	if err != nil {
		h.readFault(w, r, "user tasks", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(uts, toUserTaskResponse))
}

func userTaskPath(w http.ResponseWriter, r *http.Request) (models.UserID, models.ProjectTaskID, bool) {
	userID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return models.EmptyUserID, models.EmptyProjectTaskID, false
	}
	taskID, ok := httpx.PathUUID(w, r, "taskID")
	if !ok {
		return models.EmptyUserID, models.EmptyProjectTaskID, false
	}
	return models.UserID{UUID: userID}, models.ProjectTaskID{UUID: taskID}, true
}
