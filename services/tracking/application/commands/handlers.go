package commands

import "github.com/ghuser/hourglass/services/tracking/domain/repositories"

// Deps are the collaborators every handler is built from.
type Deps struct {
	Projects     repositories.ProjectQueries
	ProjectRepo  repositories.ProjectRepository
	Tasks        repositories.ProjectTaskQueries
	TaskRepo     repositories.ProjectTaskRepository
	Members      repositories.ProjectUserQueries
	MemberRepo   repositories.ProjectUserRepository
	Entries      repositories.TimeEntryQueries
	EntryRepo    repositories.TimeEntryRepository
	Roles        repositories.RoleQueries
	RoleRepo     repositories.RoleRepository
	Users        repositories.UserQueries
	UserRepo     repositories.UserRepository
	UserTasks    repositories.UserTaskQueries
	UserTaskRepo repositories.UserTaskRepository
	Hasher       repositories.PasswordHasher
}

// Handlers groups one handler per command.
type Handlers struct {
	CreateProject *CreateProjectHandler
	UpdateProject *UpdateProjectHandler
	DeleteProject *DeleteProjectHandler

	CreateProjectTask *CreateProjectTaskHandler
	UpdateProjectTask *UpdateProjectTaskHandler
	DeleteProjectTask *DeleteProjectTaskHandler

	AddProjectUser    *AddProjectUserHandler
	UpdateProjectUser *UpdateProjectUserHandler
	RemoveProjectUser *RemoveProjectUserHandler

	CreateTimeEntry *CreateTimeEntryHandler
	UpdateTimeEntry *UpdateTimeEntryHandler
	DeleteTimeEntry *DeleteTimeEntryHandler

	CreateRole *CreateRoleHandler
	UpdateRole *UpdateRoleHandler
	DeleteRole *DeleteRoleHandler

	CreateUser       *CreateUserHandler
	UpdateUser       *UpdateUserHandler
	DeleteUser       *DeleteUserHandler
	AssignUserRole   *AssignUserRoleHandler
	UnassignUserRole *UnassignUserRoleHandler

	AssignUserTask   *AssignUserTaskHandler
	UnassignUserTask *UnassignUserTaskHandler
}

// New builds every handler from d.
func New(d Deps) *Handlers {
	return &Handlers{
		CreateProject: NewCreateProjectHandler(d.Projects, d.ProjectRepo),
		UpdateProject: NewUpdateProjectHandler(d.Projects, d.ProjectRepo),
		DeleteProject: NewDeleteProjectHandler(d.Projects, d.ProjectRepo),

		CreateProjectTask: NewCreateProjectTaskHandler(d.Projects, d.Tasks, d.TaskRepo),
		UpdateProjectTask: NewUpdateProjectTaskHandler(d.Projects, d.Tasks, d.TaskRepo),
		DeleteProjectTask: NewDeleteProjectTaskHandler(d.Tasks, d.TaskRepo),

		AddProjectUser:    NewAddProjectUserHandler(d.Projects, d.Users, d.Members, d.MemberRepo),
		UpdateProjectUser: NewUpdateProjectUserHandler(d.Members, d.MemberRepo),
		RemoveProjectUser: NewRemoveProjectUserHandler(d.Members, d.MemberRepo),

		CreateTimeEntry: NewCreateTimeEntryHandler(d.Users, d.Projects, d.Tasks, d.Entries, d.EntryRepo),
		UpdateTimeEntry: NewUpdateTimeEntryHandler(d.Projects, d.Tasks, d.Entries, d.EntryRepo),
		DeleteTimeEntry: NewDeleteTimeEntryHandler(d.Entries, d.EntryRepo),

		CreateRole: NewCreateRoleHandler(d.Roles, d.RoleRepo),
		UpdateRole: NewUpdateRoleHandler(d.Roles, d.RoleRepo),
		DeleteRole: NewDeleteRoleHandler(d.Roles, d.RoleRepo),

		CreateUser:       NewCreateUserHandler(d.Users, d.UserRepo, d.Hasher),
		UpdateUser:       NewUpdateUserHandler(d.Users, d.UserRepo, d.Hasher),
		DeleteUser:       NewDeleteUserHandler(d.Users, d.UserRepo),
		AssignUserRole:   NewAssignUserRoleHandler(d.Users, d.Roles, d.UserRepo),
		UnassignUserRole: NewUnassignUserRoleHandler(d.Users, d.UserRepo),

		AssignUserTask:   NewAssignUserTaskHandler(d.Users, d.Tasks, d.UserTasks, d.UserTaskRepo),
		UnassignUserTask: NewUnassignUserTaskHandler(d.Users, d.UserTasks, d.UserTaskRepo),
	}
}
