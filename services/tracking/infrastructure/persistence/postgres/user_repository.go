package postgres

import (
	"context"
	"database/sql"
	"errors"
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
	_ repositories.UserQueries    = (*UserRepository)(nil)
	_ repositories.UserRepository = (*UserRepository)(nil)
)

// UserRepository implements user queries and persistence. Role assignments
// live in tracking.user_roles and are loaded and replaced with the user.
type UserRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewUserRepository returns a UserRepository backed by the given pool.
// The bus receives a UserRegisteredEvent for every Add.
func NewUserRepository(database *database.Database, bus *events.EventBus) *UserRepository {
	return &UserRepository{db: database, bus: bus}
}

func (r *UserRepository) GetByID(ctx context.Context, id models.UserID) (option.Option[*models.User], error) {
	q := db.New(r.db.DB())
	row, err := q.GetUserByID(ctx, id.UUID)
	return loadUser(ctx, q, row, err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (option.Option[*models.User], error) {
	q := db.New(r.db.DB())
	row, err := q.GetUserByEmail(ctx, email)
	return loadUser(ctx, q, row, err)
}

// Add inserts u with its roles and publishes UserRegisteredEvent in the same transaction.
func (r *UserRepository) Add(ctx context.Context, u *models.User) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.UpsertUser(ctx, userParams(u)); err != nil {
			return writeErr("insert user", err)
		}
		if err := replaceRoles(ctx, q, u); err != nil {
			return err
		}
		evt := domainevents.NewUserRegistered(u.ID.UUID, u.Email, u.FirstName, u.CreatedAt)
		if err := publish(ctx, tx, r.bus, domainevents.TopicUserRegistered, evt.EventID, evt); err != nil {
			return fmt.Errorf("publish user registered: %w", err)
		}
		return nil
	})
}

// Update upserts u and replaces its stored role assignments with u.RoleIDs.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.UpsertUser(ctx, userParams(u)); err != nil {
			return writeErr("update user", err)
		}
		return replaceRoles(ctx, q, u)
	})
}

// Delete removes u with its roles, memberships, task assignments and time entries.
func (r *UserRepository) Delete(ctx context.Context, u *models.User) error {
	if err := db.New(r.db.DB()).DeleteUser(ctx, u.ID.UUID); err != nil {
		return writeErr("delete user", err)
	}
	return nil
}

func replaceRoles(ctx context.Context, q *db.Queries, u *models.User) error {
	if err := q.DeleteUserRoles(ctx, u.ID.UUID); err != nil {
		return writeErr("clear user roles", err)
	}
	for _, roleID := range u.RoleIDs {
		if err := q.InsertUserRole(ctx, db.InsertUserRoleParams{UserID: u.ID.UUID, RoleID: roleID.UUID}); err != nil {
			return writeErr("insert user role", err)
		}
	}
	return nil
}

func loadUser(ctx context.Context, q *db.Queries, row db.TrackingUser, err error) (option.Option[*models.User], error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return option.None[*models.User](), nil
		}
		return option.None[*models.User](), fmt.Errorf("query user: %w", err)
	}
	roleIDs, err := q.ListUserRoleIDs(ctx, row.ID)
	if err != nil {
		return option.None[*models.User](), fmt.Errorf("list user roles: %w", err)
	}
	u := rowToUser(row)
	u.RoleIDs = make([]models.RoleID, len(roleIDs))
	for i, id := range roleIDs {
		u.RoleIDs[i] = models.RoleID{UUID: id}
	}
	return option.Some(u), nil
}

func userParams(u *models.User) db.UpsertUserParams {
	return db.UpsertUserParams{
		ID:           u.ID.UUID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func rowToUser(row db.TrackingUser) *models.User {
	return &models.User{
		ID:           models.UserID{UUID: row.ID},
		Email:        row.Email,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
