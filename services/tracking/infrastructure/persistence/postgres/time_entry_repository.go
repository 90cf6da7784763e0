package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/pkg/events"
	"github.com/ghuser/hourglass/pkg/option"
	domainevents "github.com/ghuser/hourglass/services/tracking/domain/events"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/infrastructure/persistence/postgres/db"
)

var (
	_ repositories.TimeEntryQueries    = (*TimeEntryRepository)(nil)
	_ repositories.TimeEntryRepository = (*TimeEntryRepository)(nil)
)

// TimeEntryRepository implements time entry queries and persistence.
// The time_entries_no_overlap exclusion constraint backs the overlap check;
// a violation surfaces as repositories.ErrConflict.
type TimeEntryRepository struct {
	db  *database.Database
	bus *events.EventBus
}

func NewTimeEntryRepository(database *database.Database, bus *events.EventBus) *TimeEntryRepository {
	return &TimeEntryRepository{db: database, bus: bus}
}

func (r *TimeEntryRepository) GetByID(ctx context.Context, id models.TimeEntryID) (option.Option[*models.TimeEntry], error) {
	row, err := db.New(r.db.DB()).GetTimeEntryByID(ctx, id.UUID)
	return fetchOne("query time entry", row, err, rowToTimeEntry)
}

func (r *TimeEntryRepository) ListByUserID(ctx context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	rows, err := db.New(r.db.DB()).ListTimeEntriesByUserID(ctx, userID.UUID)
	return fetchMany("list time entries", rows, err, rowToTimeEntry)
}

func (r *TimeEntryRepository) Add(ctx context.Context, e *models.TimeEntry) error {
	return r.save(ctx, "insert time entry", e)
}

func (r *TimeEntryRepository) Update(ctx context.Context, e *models.TimeEntry) error {
	return r.save(ctx, "update time entry", e)
}

func (r *TimeEntryRepository) Delete(ctx context.Context, e *models.TimeEntry) error {
	if err := db.New(r.db.DB()).DeleteTimeEntry(ctx, e.ID.UUID); err != nil {
		return writeErr("delete time entry", err)
	}
	return nil
}

// save upserts e and publishes TimeEntryRecordedEvent in the same transaction.
func (r *TimeEntryRepository) save(ctx context.Context, op string, e *models.TimeEntry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := db.New(tx).UpsertTimeEntry(ctx, timeEntryParams(e)); err != nil {
			return writeErr(op, err)
		}
		evt := domainevents.NewTimeEntryRecorded(
			e.ID.UUID, e.UserID.UUID, e.ProjectID.UUID,
			option.ToPtr(option.Map(e.ProjectTaskID, func(id models.ProjectTaskID) uuid.UUID { return id.UUID })),
			e.StartTime, e.EndTime, e.Minutes, e.UpdatedAt,
		)
		if err := publish(ctx, tx, r.bus, domainevents.TopicTimeEntryRecorded, evt.EventID, evt); err != nil {
			return fmt.Errorf("publish time entry recorded: %w", err)
		}
		return nil
	})
}

func timeEntryParams(e *models.TimeEntry) db.UpsertTimeEntryParams {
	return db.UpsertTimeEntryParams{
		ID:        e.ID.UUID,
		UserID:    e.UserID.UUID,
		ProjectID: e.ProjectID.UUID,
		ProjectTaskID: option.Match(e.ProjectTaskID,
			func(id models.ProjectTaskID) uuid.NullUUID { return uuid.NullUUID{UUID: id.UUID, Valid: true} },
			func() uuid.NullUUID { return uuid.NullUUID{} },
		),
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Minutes:     int32(e.Minutes), //nolint:gosec
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func rowToTimeEntry(row db.TrackingTimeEntry) *models.TimeEntry {
	taskID := option.None[models.ProjectTaskID]()
	if row.ProjectTaskID.Valid {
		taskID = option.Some(models.ProjectTaskID{UUID: row.ProjectTaskID.UUID})
	}
	return &models.TimeEntry{
		ID:            models.TimeEntryID{UUID: row.ID},
		UserID:        models.UserID{UUID: row.UserID},
		ProjectID:     models.ProjectID{UUID: row.ProjectID},
		ProjectTaskID: taskID,
		Description:   row.Description,
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		Minutes:       int(row.Minutes),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
