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
	_ repositories.RoleQueries    = (*RoleRepository)(nil)
	_ repositories.RoleRepository = (*RoleRepository)(nil)
)

// RoleRepository implements role queries and persistence.
type RoleRepository struct {
	db *database.Database
}

func NewRoleRepository(database *database.Database) *RoleRepository {
	return &RoleRepository{db: database}
}

func (r *RoleRepository) GetByID(ctx context.Context, id models.RoleID) (option.Option[*models.Role], error) {
	row, err := db.New(r.db.DB()).GetRoleByID(ctx, id.UUID)
	return fetchOne("query role", row, err, rowToRole)
}

func (r *RoleRepository) List(ctx context.Context) ([]*models.Role, error) {
	rows, err := db.New(r.db.DB()).ListRoles(ctx)
	return fetchMany("list roles", rows, err, rowToRole)
}

func (r *RoleRepository) Add(ctx context.Context, role *models.Role) error {
	if err := db.New(r.db.DB()).UpsertRole(ctx, roleParams(role)); err != nil {
		return writeErr("insert role", err)
	}
	return nil
}

func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	if err := db.New(r.db.DB()).UpsertRole(ctx, roleParams(role)); err != nil {
		return writeErr("update role", err)
	}
	return nil
}

// Delete removes role and every assignment of it.
func (r *RoleRepository) Delete(ctx context.Context, role *models.Role) error {
	if err := db.New(r.db.DB()).DeleteRole(ctx, role.ID.UUID); err != nil {
		return writeErr("delete role", err)
	}
	return nil
}

func roleParams(role *models.Role) db.UpsertRoleParams {
	return db.UpsertRoleParams{
		ID:          role.ID.UUID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

func rowToRole(row db.TrackingRole) *models.Role {
	return &models.Role{
		ID:          models.RoleID{UUID: row.ID},
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
