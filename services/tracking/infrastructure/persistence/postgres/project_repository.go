package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/pkg/events"
	"github.com/ghuser/hourglass/pkg/option"
	domainevents "github.com/ghuser/hourglass/services/tracking/domain/events"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.ProjectQueries    = (*ProjectRepository)(nil)
	_ repositories.ProjectRepository = (*ProjectRepository)(nil)
)

// ProjectRepository implements project queries and persistence against PostgreSQL.
type ProjectRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewProjectRepository returns a ProjectRepository backed by the given pool.
// The bus receives a ProjectCreatedEvent for every Add.
func NewProjectRepository(database *database.Database, bus *events.EventBus) *ProjectRepository {
	return &ProjectRepository{db: database, bus: bus}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id models.ProjectID) (option.Option[*models.Project], error) {
	row, err := db.New(r.db.DB()).GetProjectByID(ctx, id.UUID)
	return fetchOne("query project", row, err, rowToProject)
}

func (r *ProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	rows, err := db.New(r.db.DB()).ListProjects(ctx)
	return fetchMany("list projects", rows, err, rowToProject)
}

// Add inserts p and publishes ProjectCreatedEvent in the same transaction.
func (r *ProjectRepository) Add(ctx context.Context, p *models.Project) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).UpsertProject(ctx, projectParams(p)); err != nil {
			return writeErr("insert project", err)
		}
		evt := domainevents.NewProjectCreated(p.ID.UUID, p.Name, p.CreatedAt)
		if err := publish(ctx, tx, r.bus, domainevents.TopicProjectCreated, evt.EventID, evt); err != nil {
			return fmt.Errorf("publish project created: %w", err)
		}
		return nil
	})
}

func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	if err := db.New(r.db.DB()).UpsertProject(ctx, projectParams(p)); err != nil {
		return writeErr("update project", err)
	}
	return nil
}

// Delete removes p; tasks, memberships and time entries go with it (ON DELETE CASCADE).
func (r *ProjectRepository) Delete(ctx context.Context, p *models.Project) error {
	if err := db.New(r.db.DB()).DeleteProject(ctx, p.ID.UUID); err != nil {
		return writeErr("delete project", err)
	}
	return nil
}

func projectParams(p *models.Project) db.UpsertProjectParams {
	return db.UpsertProjectParams{
		ID:          p.ID.UUID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func rowToProject(row db.TrackingProject) *models.Project {
	return &models.Project{
		ID:          models.ProjectID{UUID: row.ID},
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
