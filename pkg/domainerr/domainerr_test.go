package domainerr_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/domainerr"
)

type widgetMissing struct {
	domainerr.NotFound
	id uuid.UUID
}

func (e widgetMissing) Error() string      { return "widget missing" }
func (e widgetMissing) Subject() uuid.UUID { return e.id }

type widgetParentMissing struct{ domainerr.RelatedNotFound }

func (widgetParentMissing) Error() string      { return "parent missing" }
func (widgetParentMissing) Subject() uuid.UUID { return uuid.Nil }

type widgetTaken struct{ domainerr.AlreadyExists }

func (widgetTaken) Error() string      { return "taken" }
func (widgetTaken) Subject() uuid.UUID { return uuid.Nil }

type widgetBroken struct{ domainerr.InvariantViolation }

func (widgetBroken) Error() string      { return "broken" }
func (widgetBroken) Subject() uuid.UUID { return uuid.Nil }

type widgetUnknown struct{ domainerr.Unknown }

func (widgetUnknown) Error() string      { return "unknown" }
func (widgetUnknown) Subject() uuid.UUID { return uuid.Nil }

type statusClassifier struct{}

func (statusClassifier) NotFound(domainerr.Error) int           { return 404 }
func (statusClassifier) RelatedNotFound(domainerr.Error) int    { return 404 }
func (statusClassifier) AlreadyExists(domainerr.Error) int      { return 409 }
func (statusClassifier) InvariantViolation(domainerr.Error) int { return 409 }
func (statusClassifier) Unknown(domainerr.Error) int            { return 500 }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      domainerr.Error
		wantKind domainerr.Kind
		wantCode int
	}{
		{"not found", widgetMissing{id: uuid.New()}, domainerr.KindNotFound, 404},
		{"related not found", widgetParentMissing{}, domainerr.KindRelatedNotFound, 404},
		{"already exists", widgetTaken{}, domainerr.KindAlreadyExists, 409},
		{"invariant violation", widgetBroken{}, domainerr.KindInvariantViolation, 409},
		{"unknown", widgetUnknown{}, domainerr.KindUnknown, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domainerr.KindOf(tt.err); got != tt.wantKind {
				t.Errorf("KindOf: got %q, want %q", got, tt.wantKind)
			}
			if got := domainerr.Classify[int](tt.err, statusClassifier{}); got != tt.wantCode {
				t.Errorf("Classify: got %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestSubjectCarriesIdentifier(t *testing.T) {
	id := uuid.New()
	var err domainerr.Error = widgetMissing{id: id}
	if err.Subject() != id {
		t.Fatalf("expected subject %v, got %v", id, err.Subject())
	}
}
