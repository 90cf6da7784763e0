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

// TaskRequest is the body of POST /projects/{id}/tasks and PUT /tasks/{id}.
type TaskRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255" example:"Design review"`
	Description string `json:"description" validate:"max=2000" example:"Review the landing page mockups"`
} // @name TaskRequest

// TaskResponse is a project task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	ProjectID   uuid.UUID `json:"project_id"  example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string    `json:"name"        example:"Design review"`
	Description string    `json:"description" example:"Review the landing page mockups"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name TaskResponse

func toTaskResponse(t *models.ProjectTask) TaskResponse {
	return TaskResponse{
		ID:          t.ID.UUID,
		ProjectID:   t.ProjectID.UUID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func taskView(t *models.ProjectTask) any { return toTaskResponse(t) }

// CreateTask adds a task to a project.
//
//	@Summary		Create task
//	@Description	Task names are unique within their project.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Project ID"
//	@Param			request	body		TaskRequest	true	"Task"
//	@Success		201		{object}	TaskResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		404		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/projects/{id}/tasks [post]
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	projectID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[TaskRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.CreateProjectTask.Handle(r.Context(), commands.CreateProjectTask{
		ProjectID:   models.ProjectID{UUID: projectID},
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "create_project_task", start, res, err, http.StatusCreated, taskView)
}

// UpdateTask renames a task.
//
//	@Summary	Update task
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Task ID"
//	@Param		request	body		TaskRequest	true	"Task"
//	@Success	200		{object}	TaskResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/tasks/{id} [put]
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[TaskRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Commands.UpdateProjectTask.Handle(r.Context(), commands.UpdateProjectTask{
		ID:          models.ProjectTaskID{UUID: id},
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "update_project_task", start, res, err, http.StatusOK, taskView)
}

// DeleteTask deletes a task. Time entries booked on it keep their project.
//
//	@Summary	Delete task
//	@Tags		tasks
//	@Param		id	path	string	true	"Task ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/tasks/{id} [delete]
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Commands.DeleteProjectTask.Handle(r.Context(), commands.DeleteProjectTask{ID: models.ProjectTaskID{UUID: id}})
	respond(h, w, r, "delete_project_task", start, res, err, http.StatusNoContent, nil)
}

// ListTasks returns the tasks of a project.
//
//	@Summary	List project tasks
//	@Tags		tasks
//	@Produce	json
//	@Param		id	path	string	true	"Project ID"
//	@Success	200	{array}	TaskResponse
//	@Router		/projects/{id}/tasks [get]
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	ts, err := h.svc.Tasks.ListByProjectID(r.Context(), models.ProjectID{UUID: projectID})
	if err != nil {
		h.readFault(w, r, "project tasks", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(ts, toTaskResponse))
}
