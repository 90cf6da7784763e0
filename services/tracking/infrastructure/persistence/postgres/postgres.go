// Package postgres implements the tracking repositories and queries on
// PostgreSQL. Mutations run in a transaction; creation events are written to
// the Watermill outbox inside the same transaction.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/hourglass/pkg/events"
	"github.com/ghuser/hourglass/pkg/option"
	domainevents "github.com/ghuser/hourglass/services/tracking/domain/events"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// PostgreSQL error codes mapped to repositories.ErrConflict.
const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

// writeErr wraps a failed mutation. Constraint violations that mean "another
// row already claims this" become repositories.ErrConflict.
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeExclusionViolation:
			return fmt.Errorf("%s: %w (%s)", op, repositories.ErrConflict, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// fetchOne runs a single-row query and maps sql.ErrNoRows to None.
func fetchOne[R, T any](op string, row R, err error, toModel func(R) T) (option.Option[T], error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return option.None[T](), nil
		}
		return option.None[T](), fmt.Errorf("%s: %w", op, err)
	}
	return option.Some(toModel(row)), nil
}

// fetchMany maps the rows of a list query.
func fetchMany[R, T any](op string, rows []R, err error, toModel func(R) T) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = toModel(row)
	}
	return out, nil
}

// publish writes event to the outbox on tx. A nil bus disables publishing.
func publish(ctx context.Context, tx *sql.Tx, bus *events.EventBus, topic string, eventID uuid.UUID, event any) error {
	if bus == nil {
		return nil
	}
	msg, err := events.NewMessage(event, map[string]string{
		domainevents.MetadataEventID:      eventID.String(),
		domainevents.MetadataEventVersion: "1",
	})
	if err != nil {
		return err
	}
	if err := bus.PublishTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
