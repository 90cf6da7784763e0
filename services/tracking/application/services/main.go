// Package services wires the tracking command handlers to their
// infrastructure and adds the read side the HTTP layer needs.
package services

import (
	"github.com/ghuser/hourglass/pkg/app"
	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/cache"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the tracking context.
type Services struct {
	Commands    *commands.Handlers
	Projects    *ProjectService
	Tasks       repositories.ProjectTaskQueries
	Members     repositories.ProjectUserQueries
	TimeEntries repositories.TimeEntryQueries
	Roles       repositories.RoleQueries
	Users       repositories.UserQueries
	UserTasks   repositories.UserTaskQueries
	Auth        *AuthService
}

// Deps are the collaborators Build wires together. Cache and Tokens may be nil.
type Deps struct {
	commands.Deps
	Cache  ProjectCache
	Tokens *auth.TokenIssuer
	Log    logger.Logger
}

// New wires the tracking services with the Postgres repositories, the outbox
// and the Redis project cache from the Application container.
func New(a *app.Application) *Services {
	projects := postgres.NewProjectRepository(a.Db, a.EventBus)
	tasks := postgres.NewProjectTaskRepository(a.Db)
	members := postgres.NewProjectUserRepository(a.Db)
	entries := postgres.NewTimeEntryRepository(a.Db, a.EventBus)
	roles := postgres.NewRoleRepository(a.Db)
	users := postgres.NewUserRepository(a.Db, a.EventBus)
	userTasks := postgres.NewUserTaskRepository(a.Db)

	d := Deps{
		Deps: commands.Deps{
			Projects:     projects,
			ProjectRepo:  projects,
			Tasks:        tasks,
			TaskRepo:     tasks,
			Members:      members,
			MemberRepo:   members,
			Entries:      entries,
			EntryRepo:    entries,
			Roles:        roles,
			RoleRepo:     roles,
			Users:        users,
			UserRepo:     users,
			UserTasks:    userTasks,
			UserTaskRepo: userTasks,
			Hasher:       auth.NewBcryptHasher(0),
		},
		Tokens: a.Tokens,
		Log:    a.Logger,
	}
	if a.Redis != nil {
		d.Cache = cache.NewProjectCache(a.Redis, a.Config.ProjectCacheTTL)
	}
	return Build(d)
}

// Build assembles Services from d.
func Build(d Deps) *Services {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	h := commands.New(d.Deps)
	return &Services{
		Commands:    h,
		Projects:    NewProjectService(h, d.Projects, d.Cache, d.Log),
		Tasks:       d.Tasks,
		Members:     d.Members,
		TimeEntries: d.Entries,
		Roles:       d.Roles,
		Users:       d.Users,
		UserTasks:   d.UserTasks,
		Auth:        NewAuthService(d.Users, d.Hasher, d.Tokens),
	}
}
