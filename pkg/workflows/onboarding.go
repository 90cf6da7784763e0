package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/hourglass/pkg/logger"
)

// OnboardingInput identifies the newly registered user.
type OnboardingInput struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Notifier delivers onboarding messages to users.
type Notifier interface {
	SendWelcome(ctx context.Context, email, firstName string) error
}

// LogNotifier records welcome messages in the log instead of delivering them.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) SendWelcome(ctx context.Context, email, firstName string) error {
	n.Log.InfoContext(ctx, "welcome message", "email", email, "first_name", firstName)
	return nil
}

// OnboardingActivities holds the activities of UserOnboardingWorkflow.
type OnboardingActivities struct {
	Notifier Notifier
}

// SendWelcome sends the welcome message for in.
func (a *OnboardingActivities) SendWelcome(ctx context.Context, in OnboardingInput) error {
	activity.GetLogger(ctx).Info("sending welcome", "user_id", in.UserID)
	if err := a.Notifier.SendWelcome(ctx, in.Email, in.FirstName); err != nil {
		return fmt.Errorf("send welcome to %s: %w", in.UserID, err)
	}
	return nil
}

// UserOnboardingWorkflow runs once per registered user.
func UserOnboardingWorkflow(ctx workflow.Context, in OnboardingInput) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	var a *OnboardingActivities
	if err := workflow.ExecuteActivity(ctx, a.SendWelcome, in).Get(ctx, nil); err != nil {
		return err
	}
	workflow.GetLogger(ctx).Info("user onboarded", "user_id", in.UserID)
	return nil
}

// OnboardingWorkflowID is the workflow id for userID. One id per user makes
// redelivered user.registered events start the workflow at most once.
func OnboardingWorkflowID(userID string) string {
	return "user-onboarding-" + userID
}

// StartOnboarding starts UserOnboardingWorkflow on taskQueue. A workflow that
// was already started for the user is not an error.
func (tc *TemporalClient) StartOnboarding(ctx context.Context, taskQueue string, in OnboardingInput) error {
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                    OnboardingWorkflowID(in.UserID),
		TaskQueue:             taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, UserOnboardingWorkflow, in)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			tc.log.InfoContext(ctx, "onboarding already started", "user_id", in.UserID)
			return nil
		}
		return fmt.Errorf("start onboarding for %s: %w", in.UserID, err)
	}
	return nil
}

// NewWorker returns a worker on taskQueue with the onboarding workflow and
// its activities registered. The caller runs it.
func (tc *TemporalClient) NewWorker(taskQueue string, notifier Notifier) worker.Worker {
	w := worker.New(tc.Client, taskQueue, worker.Options{})
	w.RegisterWorkflow(UserOnboardingWorkflow)
	w.RegisterActivity(&OnboardingActivities{Notifier: notifier})
	return w
}
