package postgres

import (
	"context"

	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.UserTaskQueries    = (*UserTaskRepository)(nil)
	_ repositories.UserTaskRepository = (*UserTaskRepository)(nil)
)

// UserTaskRepository implements task assignment queries and persistence.
type UserTaskRepository struct {
	db *database.Database
}

func NewUserTaskRepository(database *database.Database) *UserTaskRepository {
	return &UserTaskRepository{db: database}
}

func (r *UserTaskRepository) ListByUserID(ctx context.Context, userID models.UserID) ([]*models.UserTask, error) {
	rows, err := db.New(r.db.DB()).ListUserTasksByUserID(ctx, userID.UUID)
	return fetchMany("list user tasks", rows, err, rowToUserTask)
}

func (r *UserTaskRepository) Add(ctx context.Context, ut *models.UserTask) error {
	if err := db.New(r.db.DB()).InsertUserTask(ctx, db.InsertUserTaskParams{
		ID:            ut.ID.UUID,
		UserID:        ut.UserID.UUID,
		ProjectTaskID: ut.ProjectTaskID.UUID,
		CreatedAt:     ut.CreatedAt,
	}); err != nil {
		return writeErr("insert user task", err)
	}
	return nil
}

func (r *UserTaskRepository) Delete(ctx context.Context, ut *models.UserTask) error {
	if err := db.New(r.db.DB()).DeleteUserTask(ctx, ut.ID.UUID); err != nil {
		return writeErr("delete user task", err)
	}
	return nil
}

func rowToUserTask(row db.TrackingUserTask) *models.UserTask {
	return &models.UserTask{
		ID:            models.UserTaskID{UUID: row.ID},
		UserID:        models.UserID{UUID: row.UserID},
		ProjectTaskID: models.ProjectTaskID{UUID: row.ProjectTaskID},
		CreatedAt:     row.CreatedAt,
	}
}
