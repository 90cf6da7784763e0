package models

import "time"

// UserTask assigns a user to a project task.
type UserTask struct {
	ID            UserTaskID
	UserID        UserID
	ProjectTaskID ProjectTaskID
	CreatedAt     time.Time
}

// NewUserTask constructs an assignment of userID to taskID.
func NewUserTask(userID UserID, taskID ProjectTaskID) *UserTask {
	return &UserTask{
		ID:            NewID[userTaskTag](),
		UserID:        userID,
		ProjectTaskID: taskID,
		CreatedAt:     time.Now().UTC(),
	}
}
