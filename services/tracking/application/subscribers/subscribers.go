// Package subscribers reacts to the tracking domain events in the worker.
//
// Every handler is idempotent: the bus retries a failed handler and may
// redeliver a message after a crash.
package subscribers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/hourglass/pkg/events"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/workflows"
	trackingEvents "github.com/ghuser/hourglass/services/tracking/domain/events"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// Bus is the subscribing half of events.EventBus.
type Bus interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// ProjectWarmer loads a project into the read cache.
type ProjectWarmer interface {
	Warm(ctx context.Context, id models.ProjectID) error
}

// OnboardingStarter starts the onboarding workflow of a user.
type OnboardingStarter interface {
	StartOnboarding(ctx context.Context, taskQueue string, in workflows.OnboardingInput) error
}

// Subscribers holds the collaborators of the event handlers. Warmer and
// Onboarding may be nil, which turns the matching handler into a no-op.
type Subscribers struct {
	Warmer     ProjectWarmer
	Onboarding OnboardingStarter
	TaskQueue  string
	Log        logger.Logger
}

// Register subscribes every handler on bus. Handler errors that survive the
// bus retries are logged.
func (s *Subscribers) Register(ctx context.Context, bus Bus) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		trackingEvents.TopicProjectCreated:    s.ProjectCreated,
		trackingEvents.TopicUserRegistered:    s.UserRegistered,
		trackingEvents.TopicTimeEntryRecorded: s.TimeEntryRecorded,
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go s.drain(ctx, topic, errCh)
		topics = append(topics, topic)
	}

	s.Log.Info("event subscribers registered", "topics", topics)
	return nil
}

// drain keeps the error channel from filling up.
func (s *Subscribers) drain(ctx context.Context, topic string, errCh <-chan error) {
	for err := range errCh {
		s.Log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}

// ProjectCreated warms the project read cache. Warming is best-effort: a
// failure is logged and the message is acked.
func (s *Subscribers) ProjectCreated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[trackingEvents.ProjectCreatedEvent](msg)
	if err != nil {
		return err
	}
	if s.Warmer == nil {
		return nil
	}
	if err := s.Warmer.Warm(ctx, models.ProjectID{UUID: evt.ProjectID}); err != nil {
		s.Log.WarnContext(ctx, "cache warm failed for project.created",
			"project_id", evt.ProjectID, "error", err)
		return nil
	}
	s.Log.InfoContext(ctx, "cache warmed", "project_id", evt.ProjectID)
	return nil
}

// UserRegistered starts the onboarding workflow. Starting it twice for the
// same user is a no-op, so redelivery is safe.
func (s *Subscribers) UserRegistered(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[trackingEvents.UserRegisteredEvent](msg)
	if err != nil {
		return err
	}
	if s.Onboarding == nil {
		s.Log.DebugContext(ctx, "onboarding disabled", "user_id", evt.UserID)
		return nil
	}
	in := workflows.OnboardingInput{
		UserID:    evt.UserID.String(),
		Email:     evt.Email,
		FirstName: evt.FirstName,
	}
	if err := s.Onboarding.StartOnboarding(ctx, s.TaskQueue, in); err != nil {
		return fmt.Errorf("start onboarding for %s: %w", evt.UserID, err)
	}
	s.Log.InfoContext(ctx, "onboarding started", "user_id", evt.UserID)
	return nil
}

// TimeEntryRecorded logs the recorded entry.
func (s *Subscribers) TimeEntryRecorded(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[trackingEvents.TimeEntryRecordedEvent](msg)
	if err != nil {
		return err
	}
	s.Log.InfoContext(ctx, "time entry recorded",
		"time_entry_id", evt.TimeEntryID,
		"user_id", evt.UserID,
		"project_id", evt.ProjectID,
		"minutes", evt.Minutes,
	)
	return nil
}
