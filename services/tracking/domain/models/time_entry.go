package models

import (
	"time"

	"github.com/ghuser/hourglass/pkg/option"
)

// TimeEntry is a booked interval [StartTime, EndTime) of a user's work on a project.
//
// Minutes is stored as supplied by the caller and is not derived from the
// interval; the two may disagree.
type TimeEntry struct {
	ID            TimeEntryID
	UserID        UserID
	ProjectID     ProjectID
	ProjectTaskID option.Option[ProjectTaskID]
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Minutes       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TimeEntryDetails are the mutable fields of a TimeEntry.
type TimeEntryDetails struct {
	ProjectID     ProjectID
	ProjectTaskID option.Option[ProjectTaskID]
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	Minutes       int
}

// NewTimeEntry constructs a TimeEntry owned by userID.
func NewTimeEntry(userID UserID, d TimeEntryDetails) *TimeEntry {
	now := time.Now().UTC()
	e := &TimeEntry{
		ID:        NewID[timeEntryTag](),
		UserID:    userID,
		CreatedAt: now,
	}
	e.apply(d, now)
	return e
}

// UpdateDetails replaces every mutable field. The owning user never changes.
func (e *TimeEntry) UpdateDetails(d TimeEntryDetails) {
	e.apply(d, time.Now().UTC())
}

// Interval returns the entry's booked span.
func (e *TimeEntry) Interval() Interval {
	return Interval{Start: e.StartTime, End: e.EndTime}
}

func (e *TimeEntry) apply(d TimeEntryDetails, now time.Time) {
	e.ProjectID = d.ProjectID
	e.ProjectTaskID = d.ProjectTaskID
	e.Description = d.Description
	e.StartTime = d.StartTime
	e.EndTime = d.EndTime
	e.Minutes = d.Minutes
	e.UpdatedAt = now
}
