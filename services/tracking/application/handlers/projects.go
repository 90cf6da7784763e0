package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/errhttp"
	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/option"
	pkgvalidator "github.com/ghuser/hourglass/pkg/validator"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// ProjectRequest is the body of POST /projects and PUT /projects/{id}.
type ProjectRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=255" example:"Website relaunch"`
	Description string `json:"description" validate:"max=2000" example:"Q3 marketing site"`
} // @name ProjectRequest

// ProjectResponse is a project.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string    `json:"name"        example:"Website relaunch"`
	Description string    `json:"description" example:"Q3 marketing site"`
	CreatedAt   time.Time `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at"  example:"2024-01-15T10:30:00Z"`
} // @name ProjectResponse

func projectView(p *models.Project) any {
	return toProjectResponse(p)
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.UUID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProject creates a project.
//
//	@Summary		Create project
//	@Description	Creates a project. Names are unique.
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProjectRequest	true	"Project"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	errhttp.ErrorResponse
//	@Failure		401		{object}	errhttp.ErrorResponse
//	@Failure		409		{object}	errhttp.ErrorResponse
//	@Failure		422		{object}	errhttp.ErrorResponse
//	@Router			/projects [post]
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := pkgvalidator.ValidateRequest[ProjectRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Projects.Create(r.Context(), commands.CreateProject{
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "create_project", start, res, err, http.StatusCreated, projectView)
}

// UpdateProject replaces a project's name and description.
//
//	@Summary	Update project
//	@Tags		projects
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Project ID"
//	@Param		request	body		ProjectRequest	true	"Project"
//	@Success	200		{object}	ProjectResponse
//	@Failure	400		{object}	errhttp.ErrorResponse
//	@Failure	404		{object}	errhttp.ErrorResponse
//	@Failure	409		{object}	errhttp.ErrorResponse
//	@Failure	422		{object}	errhttp.ErrorResponse
//	@Router		/projects/{id} [put]
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ProjectRequest](w, r)
	if !ok {
		return
	}
	res, err := h.svc.Projects.Update(r.Context(), commands.UpdateProject{
		ID:          models.ProjectID{UUID: id},
		Name:        req.Name,
		Description: req.Description,
	})
	respond(h, w, r, "update_project", start, res, err, http.StatusOK, projectView)
}

// DeleteProject deletes a project with its tasks, members and time entries.
//
//	@Summary	Delete project
//	@Tags		projects
//	@Param		id	path	string	true	"Project ID"
//	@Success	204
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/projects/{id} [delete]
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.svc.Projects.Delete(r.Context(), commands.DeleteProject{ID: models.ProjectID{UUID: id}})
	respond(h, w, r, "delete_project", start, res, err, http.StatusNoContent, nil)
}

// GetProject returns a project, served from the read cache when possible.
//
//	@Summary	Get project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	ProjectResponse
//	@Failure	400	{object}	errhttp.ErrorResponse
//	@Failure	404	{object}	errhttp.ErrorResponse
//	@Router		/projects/{id} [get]
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	projectID := models.ProjectID{UUID: id}
	found, err := h.svc.Projects.Get(r.Context(), projectID)
	if err != nil {
		h.readFault(w, r, "project", err)
		return
	}
	option.Do(found,
		func(p *models.Project) { httpx.JSON(w, http.StatusOK, toProjectResponse(p)) },
		func() { errhttp.WriteDomainError(w, domain.ProjectNotFound{ID: projectID}) },
	)
}

// ListProjects returns every project ordered by name.
//
//	@Summary	List projects
//	@Tags		projects
//	@Produce	json
//	@Success	200	{array}	ProjectResponse
//	@Router		/projects [get]
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.Projects.List(r.Context())
	if err != nil {
		h.readFault(w, r, "projects", err)
		return
	}
	httpx.JSON(w, http.StatusOK, mapSlice(ps, toProjectResponse))
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
