package postgres

import (
	"context"

	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.ProjectTaskQueries    = (*ProjectTaskRepository)(nil)
	_ repositories.ProjectTaskRepository = (*ProjectTaskRepository)(nil)
)

// ProjectTaskRepository implements project task queries and persistence.
type ProjectTaskRepository struct {
	db *database.Database
}

func NewProjectTaskRepository(database *database.Database) *ProjectTaskRepository {
	return &ProjectTaskRepository{db: database}
}

func (r *ProjectTaskRepository) GetByID(ctx context.Context, id models.ProjectTaskID) (option.Option[*models.ProjectTask], error) {
	row, err := db.New(r.db.DB()).GetProjectTaskByID(ctx, id.UUID)
	return fetchOne("query project task", row, err, rowToProjectTask)
}

func (r *ProjectTaskRepository) ListByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.ProjectTask, error) {
	rows, err := db.New(r.db.DB()).ListProjectTasksByProjectID(ctx, projectID.UUID)
	return fetchMany("list project tasks", rows, err, rowToProjectTask)
}

func (r *ProjectTaskRepository) Add(ctx context.Context, t *models.ProjectTask) error {
	if err := db.New(r.db.DB()).UpsertProjectTask(ctx, projectTaskParams(t)); err != nil {
		return writeErr("insert project task", err)
	}
	return nil
}

func (r *ProjectTaskRepository) Update(ctx context.Context, t *models.ProjectTask) error {
	if err := db.New(r.db.DB()).UpsertProjectTask(ctx, projectTaskParams(t)); err != nil {
		return writeErr("update project task", err)
	}
	return nil
}

// Delete removes t. Time entries booked against it keep their project and lose the task.
func (r *ProjectTaskRepository) Delete(ctx context.Context, t *models.ProjectTask) error {
	if err := db.New(r.db.DB()).DeleteProjectTask(ctx, t.ID.UUID); err != nil {
		return writeErr("delete project task", err)
	}
	return nil
}

func projectTaskParams(t *models.ProjectTask) db.UpsertProjectTaskParams {
	return db.UpsertProjectTaskParams{
		ID:          t.ID.UUID,
		ProjectID:   t.ProjectID.UUID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func rowToProjectTask(row db.TrackingProjectTask) *models.ProjectTask {
	return &models.ProjectTask{
		ID:          models.ProjectTaskID{UUID: row.ID},
		ProjectID:   models.ProjectID{UUID: row.ProjectID},
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
