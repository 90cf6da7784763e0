package repositories

import (
	"context"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// ProjectQueries reads projects.
type ProjectQueries interface {
	GetByID(ctx context.Context, id models.ProjectID) (option.Option[*models.Project], error)
	// List returns every project, ordered by name.
	List(ctx context.Context) ([]*models.Project, error)
}

// ProjectRepository persists the Project aggregate.
// Update inserts the project when its ID is not stored yet.
type ProjectRepository interface {
	Add(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, p *models.Project) error
	// Delete removes the project together with its tasks, memberships and time entries.
	Delete(ctx context.Context, p *models.Project) error
}

// ProjectTaskQueries reads project tasks.
type ProjectTaskQueries interface {
	GetByID(ctx context.Context, id models.ProjectTaskID) (option.Option[*models.ProjectTask], error)
	ListByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.ProjectTask, error)
}

// ProjectTaskRepository persists the ProjectTask aggregate.
type ProjectTaskRepository interface {
	Add(ctx context.Context, t *models.ProjectTask) error
	Update(ctx context.Context, t *models.ProjectTask) error
	Delete(ctx context.Context, t *models.ProjectTask) error
}

// ProjectUserQueries reads project memberships.
type ProjectUserQueries interface {
	GetByID(ctx context.Context, id models.ProjectUserID) (option.Option[*models.ProjectUser], error)
	ListByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.ProjectUser, error)
}

// ProjectUserRepository persists the ProjectUser aggregate.
type ProjectUserRepository interface {
	Add(ctx context.Context, pu *models.ProjectUser) error
	Update(ctx context.Context, pu *models.ProjectUser) error
	Delete(ctx context.Context, pu *models.ProjectUser) error
}
