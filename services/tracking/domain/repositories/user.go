package repositories

import (
	"context"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// RoleQueries reads roles.
type RoleQueries interface {
	GetByID(ctx context.Context, id models.RoleID) (option.Option[*models.Role], error)
	List(ctx context.Context) ([]*models.Role, error)
}

// RoleRepository persists the Role aggregate.
type RoleRepository interface {
	Add(ctx context.Context, r *models.Role) error
	Update(ctx context.Context, r *models.Role) error
	Delete(ctx context.Context, r *models.Role) error
}

// UserQueries reads users, including their assigned role IDs.
type UserQueries interface {
	GetByID(ctx context.Context, id models.UserID) (option.Option[*models.User], error)
	GetByEmail(ctx context.Context, email string) (option.Option[*models.User], error)
}

// UserRepository persists the User aggregate. Update replaces the stored role
// assignments with u.RoleIDs.
type UserRepository interface {
	Add(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, u *models.User) error
}

// UserTaskQueries reads task assignments.
type UserTaskQueries interface {
	ListByUserID(ctx context.Context, userID models.UserID) ([]*models.UserTask, error)
}

// UserTaskRepository persists the UserTask aggregate.
type UserTaskRepository interface {
	Add(ctx context.Context, ut *models.UserTask) error
	Delete(ctx context.Context, ut *models.UserTask) error
}
