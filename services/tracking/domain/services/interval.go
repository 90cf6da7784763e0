package services

import (
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// CheckOrdering fails with EndDateMustBeAfterStartDate unless iv.Start < iv.End.
func CheckOrdering(id models.TimeEntryID, iv models.Interval) result.Result[result.Unit, domain.TimeEntryError] {
	if iv.Ordered() {
		return result.Ok[domain.TimeEntryError]()
	}
	return result.Failure[result.Unit](domain.TimeEntryError(domain.EndDateMustBeAfterStartDate{
		ID: id, Start: iv.Start, End: iv.End,
	}))
}

// FindOverlap returns the first entry in entries whose interval intersects iv,
// skipping the entry named by exclude. Entries are assumed to belong to a
// single user.
func FindOverlap(iv models.Interval, entries []*models.TimeEntry, exclude option.Option[models.TimeEntryID]) option.Option[*models.TimeEntry] {
	excluded := func(id models.TimeEntryID) bool {
		return option.Match(exclude,
			func(x models.TimeEntryID) bool { return x == id },
			func() bool { return false },
		)
	}
	return FindFirst(entries, func(e *models.TimeEntry) bool {
		return !excluded(e.ID) && e.Interval().Overlaps(iv)
	})
}

// CheckOverlap fails with TimeEntryOverlap when iv intersects one of entries.
// Pass the entry's own ID as exclude on update so an unchanged interval never
// conflicts with itself.
func CheckOverlap(id models.TimeEntryID, iv models.Interval, entries []*models.TimeEntry, exclude option.Option[models.TimeEntryID]) result.Result[result.Unit, domain.TimeEntryError] {
	return option.Match(FindOverlap(iv, entries, exclude),
		func(conflict *models.TimeEntry) result.Result[result.Unit, domain.TimeEntryError] {
			return result.Failure[result.Unit](domain.TimeEntryError(domain.TimeEntryOverlap{
				ID: id, ConflictingID: conflict.ID, Start: iv.Start, End: iv.End,
			}))
		},
		result.Ok[domain.TimeEntryError],
	)
}

// ValidateInterval runs the ordering check and then the overlap check against
// the user's entries. An unordered interval is reported as such even when it
// also overlaps.
func ValidateInterval(id models.TimeEntryID, iv models.Interval, entries []*models.TimeEntry, exclude option.Option[models.TimeEntryID]) result.Result[result.Unit, domain.TimeEntryError] {
	return result.Bind(CheckOrdering(id, iv), func(result.Unit) result.Result[result.Unit, domain.TimeEntryError] {
		return CheckOverlap(id, iv, entries, exclude)
	})
}
