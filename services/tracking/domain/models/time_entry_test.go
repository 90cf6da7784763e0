package models

import (
	"testing"
	"time"

	"github.com/ghuser/hourglass/pkg/option"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func TestNewTimeEntry(t *testing.T) {
	userID := NewID[userTag]()
	projectID := NewID[projectTag]()
	e := NewTimeEntry(userID, TimeEntryDetails{
		ProjectID:   projectID,
		Description: "Design review",
		StartTime:   at(9, 0),
		EndTime:     at(10, 30),
		Minutes:     90,
	})

	if e.ID.IsEmpty() {
		t.Fatal("expected minted ID")
	}
	if e.UserID != userID || e.ProjectID != projectID {
		t.Fatalf("unexpected owner fields: %+v", e)
	}
	if option.ToPtr(e.ProjectTaskID) != nil {
		t.Fatal("expected no task")
	}
	if e.Minutes != 90 {
		t.Fatalf("expected 90 minutes, got %d", e.Minutes)
	}
}

func TestTimeEntry_MinutesNotDerived(t *testing.T) {
	e := NewTimeEntry(NewID[userTag](), TimeEntryDetails{
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
		Minutes:   15,
	})
	if e.Minutes != 15 {
		t.Fatalf("Minutes must be kept as supplied, got %d", e.Minutes)
	}
}

func TestTimeEntry_UpdateDetailsKeepsOwner(t *testing.T) {
	userID := NewID[userTag]()
	e := NewTimeEntry(userID, TimeEntryDetails{StartTime: at(9, 0), EndTime: at(10, 0)})
	taskID := NewID[projectTaskTag]()

	e.UpdateDetails(TimeEntryDetails{
		ProjectID:     NewID[projectTag](),
		ProjectTaskID: option.Some(taskID),
		StartTime:     at(11, 0),
		EndTime:       at(12, 0),
		Minutes:       60,
	})

	if e.UserID != userID {
		t.Fatal("owner must not change")
	}
	if got := option.ToPtr(e.ProjectTaskID); got == nil || *got != taskID {
		t.Fatalf("expected task %v, got %v", taskID, got)
	}
	if !e.Interval().Start.Equal(at(11, 0)) {
		t.Fatalf("unexpected interval: %+v", e.Interval())
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{"partial overlap", Interval{at(10, 0), at(12, 0)}, Interval{at(11, 0), at(13, 0)}, true},
		{"touching end is not overlap", Interval{at(10, 0), at(12, 0)}, Interval{at(12, 0), at(13, 0)}, false},
		{"touching start is not overlap", Interval{at(10, 0), at(12, 0)}, Interval{at(9, 0), at(10, 0)}, false},
		{"containment", Interval{at(10, 0), at(12, 0)}, Interval{at(10, 30), at(11, 0)}, true},
		{"identical", Interval{at(10, 0), at(12, 0)}, Interval{at(10, 0), at(12, 0)}, true},
		{"disjoint", Interval{at(8, 0), at(9, 0)}, Interval{at(10, 0), at(11, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.overlaps {
				t.Errorf("a.Overlaps(b) = %v, want %v", got, tt.overlaps)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.overlaps {
				t.Errorf("b.Overlaps(a) = %v, want %v (symmetry)", got, tt.overlaps)
			}
		})
	}
}

func TestInterval_Ordered(t *testing.T) {
	if !(Interval{at(9, 0), at(10, 0)}).Ordered() {
		t.Fatal("start before end must be ordered")
	}
	if (Interval{at(10, 0), at(10, 0)}).Ordered() {
		t.Fatal("equal bounds must not be ordered")
	}
	if (Interval{at(10, 0), at(9, 0)}).Ordered() {
		t.Fatal("inverted bounds must not be ordered")
	}
}
