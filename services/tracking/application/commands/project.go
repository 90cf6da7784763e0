package commands

import (
	"context"

	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// CreateProject asks for a new project.
type CreateProject struct {
	Name        string
	Description string
}

// UpdateProject replaces the name and description of project ID.
type UpdateProject struct {
	ID          models.ProjectID
	Name        string
	Description string
}

// DeleteProject removes project ID.
type DeleteProject struct {
	ID models.ProjectID
}

// ProjectResult is the outcome of every project command.
type ProjectResult = result.Result[*models.Project, domain.ProjectError]

func projectNotFound(id models.ProjectID) func() domain.ProjectError {
	return func() domain.ProjectError { return domain.ProjectNotFound{ID: id} }
}

func projectNameTaken(id models.ProjectID, name string) func(*models.Project) domain.ProjectError {
	return func(*models.Project) domain.ProjectError { return domain.ProjectAlreadyExists{ID: id, Name: name} }
}

func projectUnknown(id models.ProjectID) func(error) domain.ProjectError {
	return func(err error) domain.ProjectError { return domain.ProjectUnknown{ID: id, Cause: err} }
}

// CreateProjectHandler creates a project with a globally unique name.
type CreateProjectHandler struct {
	projects repositories.ProjectQueries
	repo     repositories.ProjectRepository
}

// NewCreateProjectHandler returns a CreateProjectHandler.
func NewCreateProjectHandler(projects repositories.ProjectQueries, repo repositories.ProjectRepository) *CreateProjectHandler {
	return &CreateProjectHandler{projects: projects, repo: repo}
}

// Handle rejects a taken name with ProjectAlreadyExists, then adds the project.
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd CreateProject) (ProjectResult, error) {
	taken := projectNameTaken(models.EmptyProjectID, cmd.Name)
	checked, err := result.Validate(ctx, cmd,
		uniqueName(h.projects.List, cmd.Name, models.EmptyProjectID, taken),
	)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd CreateProject) (ProjectResult, error) {
		p := models.NewProject(cmd.Name, cmd.Description)
		return persist(ctx, p,
			func(ctx context.Context) error { return h.repo.Add(ctx, p) },
			func() domain.ProjectError { return taken(p) },
			projectUnknown(models.EmptyProjectID),
		)
	})
}

// UpdateProjectHandler renames a project and replaces its description.
type UpdateProjectHandler struct {
	projects repositories.ProjectQueries
	repo     repositories.ProjectRepository
}

// NewUpdateProjectHandler returns an UpdateProjectHandler.
func NewUpdateProjectHandler(projects repositories.ProjectQueries, repo repositories.ProjectRepository) *UpdateProjectHandler {
	return &UpdateProjectHandler{projects: projects, repo: repo}
}

// Handle resolves the project and checks the new name against every other project.
func (h *UpdateProjectHandler) Handle(ctx context.Context, cmd UpdateProject) (ProjectResult, error) {
	found, err := resolve(ctx, cmd.ID, h.projects.GetByID, projectNotFound(cmd.ID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, p *models.Project) (ProjectResult, error) {
		return result.Validate(ctx, p,
			uniqueName(h.projects.List, cmd.Name, p.ID, projectNameTaken(p.ID, cmd.Name)),
		)
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, p *models.Project) (ProjectResult, error) {
		p.UpdateDetails(cmd.Name, cmd.Description)
		return persist(ctx, p,
			func(ctx context.Context) error { return h.repo.Update(ctx, p) },
			func() domain.ProjectError { return domain.ProjectAlreadyExists{ID: p.ID, Name: p.Name} },
			projectUnknown(p.ID),
		)
	})
}

// DeleteProjectHandler deletes a project. Its tasks, memberships and time
// entries go with it.
type DeleteProjectHandler struct {
	projects repositories.ProjectQueries
	repo     repositories.ProjectRepository
}

// NewDeleteProjectHandler returns a DeleteProjectHandler.
func NewDeleteProjectHandler(projects repositories.ProjectQueries, repo repositories.ProjectRepository) *DeleteProjectHandler {
	return &DeleteProjectHandler{projects: projects, repo: repo}
}

// Handle fails with ProjectNotFound for an unknown id.
func (h *DeleteProjectHandler) Handle(ctx context.Context, cmd DeleteProject) (ProjectResult, error) {
	found, err := resolve(ctx, cmd.ID, h.projects.GetByID, projectNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, p *models.Project) (ProjectResult, error) {
		return persist(ctx, p,
			func(ctx context.Context) error { return h.repo.Delete(ctx, p) },
			nil,
			projectUnknown(p.ID),
		)
	})
}
