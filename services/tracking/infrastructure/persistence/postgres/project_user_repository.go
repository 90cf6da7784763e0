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
	_ repositories.ProjectUserQueries    = (*ProjectUserRepository)(nil)
	_ repositories.ProjectUserRepository = (*ProjectUserRepository)(nil)
)

// ProjectUserRepository implements project membership queries and persistence.
type ProjectUserRepository struct {
	db *database.Database
}

func NewProjectUserRepository(database *database.Database) *ProjectUserRepository {
	return &ProjectUserRepository{db: database}
}

func (r *ProjectUserRepository) GetByID(ctx context.Context, id models.ProjectUserID) (option.Option[*models.ProjectUser], error) {
	row, err := db.New(r.db.DB()).GetProjectUserByID(ctx, id.UUID)
	return fetchOne("query project user", row, err, rowToProjectUser)
}

func (r *ProjectUserRepository) ListByProjectID(ctx context.Context, projectID models.ProjectID) ([]*models.ProjectUser, error) {
	rows, err := db.New(r.db.DB()).ListProjectUsersByProjectID(ctx, projectID.UUID)
	return fetchMany("list project users", rows, err, rowToProjectUser)
}

func (r *ProjectUserRepository) Add(ctx context.Context, pu *models.ProjectUser) error {
	if err := db.New(r.db.DB()).UpsertProjectUser(ctx, projectUserParams(pu)); err != nil {
		return writeErr("insert project user", err)
	}
	return nil
}

func (r *ProjectUserRepository) Update(ctx context.Context, pu *models.ProjectUser) error {
	if err := db.New(r.db.DB()).UpsertProjectUser(ctx, projectUserParams(pu)); err != nil {
		return writeErr("update project user", err)
	}
	return nil
}

func (r *ProjectUserRepository) Delete(ctx context.Context, pu *models.ProjectUser) error {
	if err := db.New(r.db.DB()).DeleteProjectUser(ctx, pu.ID.UUID); err != nil {
		return writeErr("delete project user", err)
	}
	return nil
}

func projectUserParams(pu *models.ProjectUser) db.UpsertProjectUserParams {
	return db.UpsertProjectUserParams{
		ID:              pu.ID.UUID,
		ProjectID:       pu.ProjectID.UUID,
		UserID:          pu.UserID.UUID,
		HourlyRateCents: pu.HourlyRateCents,
		IsManager:       pu.IsManager,
		CreatedAt:       pu.CreatedAt,
		UpdatedAt:       pu.UpdatedAt,
	}
}

func rowToProjectUser(row db.TrackingProjectUser) *models.ProjectUser {
	return &models.ProjectUser{
		ID:              models.ProjectUserID{UUID: row.ID},
		ProjectID:       models.ProjectID{UUID: row.ProjectID},
		UserID:          models.UserID{UUID: row.UserID},
		HourlyRateCents: row.HourlyRateCents,
		IsManager:       row.IsManager,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
