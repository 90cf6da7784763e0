package repositories

import (
	"context"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// TimeEntryQueries reads time entries.
type TimeEntryQueries interface {
	GetByID(ctx context.Context, id models.TimeEntryID) (option.Option[*models.TimeEntry], error)
	// ListByUserID returns all of the user's entries ordered by start time.
	// The overlap validator scans this list.
	ListByUserID(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error)
}

// TimeEntryRepository persists the TimeEntry aggregate.
// Add and Update return ErrConflict when the entry overlaps another of the
// same user's entries at the database level.
type TimeEntryRepository interface {
	Add(ctx context.Context, e *models.TimeEntry) error
	Update(ctx context.Context, e *models.TimeEntry) error
	Delete(ctx context.Context, e *models.TimeEntry) error
}
