package commands

import (
	"context"

	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// CreateProjectTask asks for a new task in ProjectID.
type CreateProjectTask struct {
	ProjectID   models.ProjectID
	Name        string
	Description string
}

// UpdateProjectTask renames task ID. The task stays in its project.
type UpdateProjectTask struct {
	ID          models.ProjectTaskID
	Name        string
	Description string
}

// DeleteProjectTask removes task ID.
type DeleteProjectTask struct {
	ID models.ProjectTaskID
}

// ProjectTaskResult is the outcome of every project task command.
type ProjectTaskResult = result.Result[*models.ProjectTask, domain.ProjectTaskError]

func projectTaskNotFound(id models.ProjectTaskID) func() domain.ProjectTaskError {
	return func() domain.ProjectTaskError { return domain.ProjectTaskNotFound{ID: id} }
}

func projectForTaskNotFound(id models.ProjectTaskID, projectID models.ProjectID) func() domain.ProjectTaskError {
	return func() domain.ProjectTaskError { return domain.ProjectForTaskNotFound{ID: id, ProjectID: projectID} }
}

func projectTaskNameTaken(id models.ProjectTaskID, projectID models.ProjectID, name string) func(*models.ProjectTask) domain.ProjectTaskError {
	return func(*models.ProjectTask) domain.ProjectTaskError {
		return domain.ProjectTaskAlreadyExists{ID: id, ProjectID: projectID, Name: name}
	}
}

func projectTaskUnknown(id models.ProjectTaskID) func(error) domain.ProjectTaskError {
	return func(err error) domain.ProjectTaskError { return domain.ProjectTaskUnknown{ID: id, Cause: err} }
}

// projectTaskScope checks the parent project exists and that no other task of
// that project uses name. Siblings are only listed once the parent is found.
func projectTaskScope(
	projects repositories.ProjectQueries,
	tasks repositories.ProjectTaskQueries,
	self models.ProjectTaskID,
	projectID models.ProjectID,
	name string,
) []result.Check[domain.ProjectTaskError] {
	siblings := func(ctx context.Context) ([]*models.ProjectTask, error) {
		return tasks.ListByProjectID(ctx, projectID)
	}
	return []result.Check[domain.ProjectTaskError]{
		exists(projectID, projects.GetByID, projectForTaskNotFound(self, projectID)),
		uniqueName(siblings, name, self, projectTaskNameTaken(self, projectID, name)),
	}
}

// CreateProjectTaskHandler adds a task to a project.
type CreateProjectTaskHandler struct {
	projects repositories.ProjectQueries
	tasks    repositories.ProjectTaskQueries
	repo     repositories.ProjectTaskRepository
}

// NewCreateProjectTaskHandler returns a CreateProjectTaskHandler.
func NewCreateProjectTaskHandler(
	projects repositories.ProjectQueries,
	tasks repositories.ProjectTaskQueries,
	repo repositories.ProjectTaskRepository,
) *CreateProjectTaskHandler {
	return &CreateProjectTaskHandler{projects: projects, tasks: tasks, repo: repo}
}

// Handle requires the project to exist and the name to be free within it.
func (h *CreateProjectTaskHandler) Handle(ctx context.Context, cmd CreateProjectTask) (ProjectTaskResult, error) {
	checked, err := result.Validate(ctx, cmd,
		projectTaskScope(h.projects, h.tasks, models.EmptyProjectTaskID, cmd.ProjectID, cmd.Name)...,
	)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd CreateProjectTask) (ProjectTaskResult, error) {
		t := models.NewProjectTask(cmd.ProjectID, cmd.Name, cmd.Description)
		return persist(ctx, t,
			func(ctx context.Context) error { return h.repo.Add(ctx, t) },
			func() domain.ProjectTaskError {
				return projectTaskNameTaken(models.EmptyProjectTaskID, t.ProjectID, t.Name)(t)
			},
			projectTaskUnknown(models.EmptyProjectTaskID),
		)
	})
}

// UpdateProjectTaskHandler renames a task within its project.
type UpdateProjectTaskHandler struct {
	projects repositories.ProjectQueries
	tasks    repositories.ProjectTaskQueries
	repo     repositories.ProjectTaskRepository
}

// NewUpdateProjectTaskHandler returns an UpdateProjectTaskHandler.
func NewUpdateProjectTaskHandler(
	projects repositories.ProjectQueries,
	tasks repositories.ProjectTaskQueries,
	repo repositories.ProjectTaskRepository,
) *UpdateProjectTaskHandler {
	return &UpdateProjectTaskHandler{projects: projects, tasks: tasks, repo: repo}
}

// Handle checks the new name against the task's siblings, excluding itself.
func (h *UpdateProjectTaskHandler) Handle(ctx context.Context, cmd UpdateProjectTask) (ProjectTaskResult, error) {
	found, err := resolve(ctx, cmd.ID, h.tasks.GetByID, projectTaskNotFound(cmd.ID))
	checked, err := result.Then(ctx, found, err, func(ctx context.Context, t *models.ProjectTask) (ProjectTaskResult, error) {
		return result.Validate(ctx, t, projectTaskScope(h.projects, h.tasks, t.ID, t.ProjectID, cmd.Name)...)
	})
	return result.Then(ctx, checked, err, func(ctx context.Context, t *models.ProjectTask) (ProjectTaskResult, error) {
		t.UpdateDetails(cmd.Name, cmd.Description)
		return persist(ctx, t,
			func(ctx context.Context) error { return h.repo.Update(ctx, t) },
			func() domain.ProjectTaskError { return projectTaskNameTaken(t.ID, t.ProjectID, t.Name)(t) },
			projectTaskUnknown(t.ID),
		)
	})
}

// DeleteProjectTaskHandler deletes a task. Time entries that referenced it
// keep their project and lose the task.
type DeleteProjectTaskHandler struct {
	tasks repositories.ProjectTaskQueries
	repo  repositories.ProjectTaskRepository
}

// NewDeleteProjectTaskHandler returns a DeleteProjectTaskHandler.
func NewDeleteProjectTaskHandler(tasks repositories.ProjectTaskQueries, repo repositories.ProjectTaskRepository) *DeleteProjectTaskHandler {
	return &DeleteProjectTaskHandler{tasks: tasks, repo: repo}
}

// Handle fails with ProjectTaskNotFound for an unknown id.
func (h *DeleteProjectTaskHandler) Handle(ctx context.Context, cmd DeleteProjectTask) (ProjectTaskResult, error) {
	found, err := resolve(ctx, cmd.ID, h.tasks.GetByID, projectTaskNotFound(cmd.ID))
	return result.Then(ctx, found, err, func(ctx context.Context, t *models.ProjectTask) (ProjectTaskResult, error) {
		return persist(ctx, t,
			func(ctx context.Context) error { return h.repo.Delete(ctx, t) },
			nil,
			projectTaskUnknown(t.ID),
		)
	})
}
