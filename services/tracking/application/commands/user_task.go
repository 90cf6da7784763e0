package commands

import (
	"context"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/domain/services"
)

// AssignUserTask assigns ProjectTaskID to UserID.
type AssignUserTask struct {
	UserID        models.UserID
	ProjectTaskID models.ProjectTaskID
}

// UnassignUserTask removes the assignment of ProjectTaskID to UserID.
type UnassignUserTask struct {
	UserID        models.UserID
	ProjectTaskID models.ProjectTaskID
}

// UserTaskResult is the outcome of every task assignment command.
type UserTaskResult = result.Result[*models.UserTask, domain.UserTaskError]

func userTaskUnknown(id models.UserTaskID) func(error) domain.UserTaskError {
	return func(err error) domain.UserTaskError { return domain.UserTaskUnknown{ID: id, Cause: err} }
}

func userTaskUserNotFound(id models.UserTaskID, userID models.UserID) func() domain.UserTaskError {
	return func() domain.UserTaskError { return domain.UserTaskUserNotFound{ID: id, UserID: userID} }
}

// AssignUserTaskHandler assigns a project task to a user, at most once.
type AssignUserTaskHandler struct {
	users       repositories.UserQueries
	tasks       repositories.ProjectTaskQueries
	assignments repositories.UserTaskQueries
	repo        repositories.UserTaskRepository
}

// NewAssignUserTaskHandler returns an AssignUserTaskHandler.
func NewAssignUserTaskHandler(
	users repositories.UserQueries,
	tasks repositories.ProjectTaskQueries,
	assignments repositories.UserTaskQueries,
	repo repositories.UserTaskRepository,
) *AssignUserTaskHandler {
	return &AssignUserTaskHandler{users: users, tasks: tasks, assignments: assignments, repo: repo}
}

// Handle resolves the user and the task, then rejects a duplicate assignment.
func (h *AssignUserTaskHandler) Handle(ctx context.Context, cmd AssignUserTask) (UserTaskResult, error) {
	self := models.EmptyUserTaskID
	alreadyAssigned := func() domain.UserTaskError {
		return domain.UserTaskAlreadyExists{ID: self, UserID: cmd.UserID, ProjectTaskID: cmd.ProjectTaskID}
	}
	assigned := func(ctx context.Context) ([]*models.UserTask, error) {
		return h.assignments.ListByUserID(ctx, cmd.UserID)
	}

	checked, err := result.Validate(ctx, cmd,
		exists(cmd.UserID, h.users.GetByID, userTaskUserNotFound(self, cmd.UserID)),
		exists(cmd.ProjectTaskID, h.tasks.GetByID, func() domain.UserTaskError {
			return domain.UserTaskProjectTaskNotFound{ID: self, ProjectTaskID: cmd.ProjectTaskID}
		}),
		unique(assigned,
			func(ut *models.UserTask) bool { return ut.ProjectTaskID == cmd.ProjectTaskID },
			func(*models.UserTask) domain.UserTaskError { return alreadyAssigned() },
		),
	)
	return result.Then(ctx, checked, err, func(ctx context.Context, cmd AssignUserTask) (UserTaskResult, error) {
		ut := models.NewUserTask(cmd.UserID, cmd.ProjectTaskID)
		return persist(ctx, ut,
			func(ctx context.Context) error { return h.repo.Add(ctx, ut) },
			alreadyAssigned,
			userTaskUnknown(self),
		)
	})
}

// UnassignUserTaskHandler removes the assignment of a task to a user.
type UnassignUserTaskHandler struct {
	users       repositories.UserQueries
	assignments repositories.UserTaskQueries
	repo        repositories.UserTaskRepository
}

// NewUnassignUserTaskHandler returns an UnassignUserTaskHandler.
func NewUnassignUserTaskHandler(
	users repositories.UserQueries,
	assignments repositories.UserTaskQueries,
	repo repositories.UserTaskRepository,
) *UnassignUserTaskHandler {
	return &UnassignUserTaskHandler{users: users, assignments: assignments, repo: repo}
}

// Handle fails with UserTaskNotFound when the task is not assigned to the user.
func (h *UnassignUserTaskHandler) Handle(ctx context.Context, cmd UnassignUserTask) (UserTaskResult, error) {
	assignment := func(ctx context.Context, cmd UnassignUserTask) (option.Option[*models.UserTask], error) {
		assigned, err := h.assignments.ListByUserID(ctx, cmd.UserID)
		if err != nil {
			return option.None[*models.UserTask](), err
		}
		return services.FindFirst(assigned, func(ut *models.UserTask) bool {
			return ut.ProjectTaskID == cmd.ProjectTaskID
		}), nil
	}

	checked, err := result.Validate(ctx, cmd,
		exists(cmd.UserID, h.users.GetByID, userTaskUserNotFound(models.EmptyUserTaskID, cmd.UserID)),
	)
	found, err := result.Then(ctx, checked, err, func(ctx context.Context, cmd UnassignUserTask) (UserTaskResult, error) {
		return resolve(ctx, cmd, assignment, func() domain.UserTaskError {
			return domain.UserTaskNotFound{ID: models.EmptyUserTaskID}
		})
	})
	return result.Then(ctx, found, err, func(ctx context.Context, ut *models.UserTask) (UserTaskResult, error) {
		return persist(ctx, ut,
			func(ctx context.Context) error { return h.repo.Delete(ctx, ut) },
			nil,
			userTaskUnknown(ut.ID),
		)
	})
}
