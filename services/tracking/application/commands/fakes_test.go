package commands

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// store is an in-memory table shared by the fakes. It counts mutations so
// tests can assert that a rejected command never reached persistence.
type store[ID comparable, T any] struct {
	key       func(T) ID
	rows      []T
	adds      int
	updates   int
	deletes   int
	mutateErr error
	queryErr  error
}

func newStore[ID comparable, T any](key func(T) ID) *store[ID, T] {
	return &store[ID, T]{key: key}
}

func (s *store[ID, T]) seed(rows ...T) { s.rows = append(s.rows, rows...) }

func (s *store[ID, T]) mutations() int { return s.adds + s.updates + s.deletes }

func (s *store[ID, T]) get(id ID) (option.Option[T], error) {
	if s.queryErr != nil {
		return option.None[T](), s.queryErr
	}
	for _, r := range s.rows {
		if s.key(r) == id {
			return option.Some(r), nil
		}
	}
	return option.None[T](), nil
}

func (s *store[ID, T]) where(keep func(T) bool) ([]T, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []T
	for _, r := range s.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *store[ID, T]) add(v T) error {
	s.adds++
	if s.mutateErr != nil {
		return s.mutateErr
	}
	s.rows = append(s.rows, v)
	return nil
}

func (s *store[ID, T]) update(v T) error {
	s.updates++
	if s.mutateErr != nil {
		return s.mutateErr
	}
	for i, r := range s.rows {
		if s.key(r) == s.key(v) {
			s.rows[i] = v
			return nil
		}
	}
	s.rows = append(s.rows, v)
	return nil
}

func (s *store[ID, T]) delete(v T) error {
	s.deletes++
	if s.mutateErr != nil {
		return s.mutateErr
	}
	s.rows = slices.DeleteFunc(s.rows, func(r T) bool { return s.key(r) == s.key(v) })
	return nil
}

type fakeProjects struct {
	*store[models.ProjectID, *models.Project]
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{newStore(func(p *models.Project) models.ProjectID { return p.ID })}
}

func (f *fakeProjects) GetByID(_ context.Context, id models.ProjectID) (option.Option[*models.Project], error) {
	return f.get(id)
}
func (f *fakeProjects) List(context.Context) ([]*models.Project, error) {
	return f.where(func(*models.Project) bool { return true })
}
func (f *fakeProjects) Add(_ context.Context, p *models.Project) error    { return f.add(p) }
func (f *fakeProjects) Update(_ context.Context, p *models.Project) error { return f.update(p) }
func (f *fakeProjects) Delete(_ context.Context, p *models.Project) error { return f.delete(p) }

type fakeTasks struct {
	*store[models.ProjectTaskID, *models.ProjectTask]
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{newStore(func(t *models.ProjectTask) models.ProjectTaskID { return t.ID })}
}

func (f *fakeTasks) GetByID(_ context.Context, id models.ProjectTaskID) (option.Option[*models.ProjectTask], error) {
	return f.get(id)
}
func (f *fakeTasks) ListByProjectID(_ context.Context, projectID models.ProjectID) ([]*models.ProjectTask, error) {
	return f.where(func(t *models.ProjectTask) bool { return t.ProjectID == projectID })
}
func (f *fakeTasks) Add(_ context.Context, t *models.ProjectTask) error    { return f.add(t) }
func (f *fakeTasks) Update(_ context.Context, t *models.ProjectTask) error { return f.update(t) }
func (f *fakeTasks) Delete(_ context.Context, t *models.ProjectTask) error { return f.delete(t) }

type fakeMembers struct {
	*store[models.ProjectUserID, *models.ProjectUser]
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{newStore(func(pu *models.ProjectUser) models.ProjectUserID { return pu.ID })}
}

func (f *fakeMembers) GetByID(_ context.Context, id models.ProjectUserID) (option.Option[*models.ProjectUser], error) {
	return f.get(id)
}
func (f *fakeMembers) ListByProjectID(_ context.Context, projectID models.ProjectID) ([]*models.ProjectUser, error) {
	return f.where(func(pu *models.ProjectUser) bool { return pu.ProjectID == projectID })
}
func (f *fakeMembers) Add(_ context.Context, pu *models.ProjectUser) error    { return f.add(pu) }
func (f *fakeMembers) Update(_ context.Context, pu *models.ProjectUser) error { return f.update(pu) }
func (f *fakeMembers) Delete(_ context.Context, pu *models.ProjectUser) error { return f.delete(pu) }

type fakeEntries struct {
	*store[models.TimeEntryID, *models.TimeEntry]
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{newStore(func(e *models.TimeEntry) models.TimeEntryID { return e.ID })}
}

func (f *fakeEntries) GetByID(_ context.Context, id models.TimeEntryID) (option.Option[*models.TimeEntry], error) {
	return f.get(id)
}
func (f *fakeEntries) ListByUserID(_ context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	return f.where(func(e *models.TimeEntry) bool { return e.UserID == userID })
}
func (f *fakeEntries) Add(_ context.Context, e *models.TimeEntry) error    { return f.add(e) }
func (f *fakeEntries) Update(_ context.Context, e *models.TimeEntry) error { return f.update(e) }
func (f *fakeEntries) Delete(_ context.Context, e *models.TimeEntry) error { return f.delete(e) }

type fakeRoles struct {
	*store[models.RoleID, *models.Role]
}

func newFakeRoles() *fakeRoles {
	return &fakeRoles{newStore(func(r *models.Role) models.RoleID { return r.ID })}
}

func (f *fakeRoles) GetByID(_ context.Context, id models.RoleID) (option.Option[*models.Role], error) {
	return f.get(id)
}
func (f *fakeRoles) List(context.Context) ([]*models.Role, error) {
	return f.where(func(*models.Role) bool { return true })
}
func (f *fakeRoles) Add(_ context.Context, r *models.Role) error    { return f.add(r) }
func (f *fakeRoles) Update(_ context.Context, r *models.Role) error { return f.update(r) }
func (f *fakeRoles) Delete(_ context.Context, r *models.Role) error { return f.delete(r) }

type fakeUsers struct {
	*store[models.UserID, *models.User]
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{newStore(func(u *models.User) models.UserID { return u.ID })}
}

func (f *fakeUsers) GetByID(_ context.Context, id models.UserID) (option.Option[*models.User], error) {
	return f.get(id)
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (option.Option[*models.User], error) {
	found, err := f.where(func(u *models.User) bool { return u.Email == email })
	if err != nil || len(found) == 0 {
		return option.None[*models.User](), err
	}
	return option.Some(found[0]), nil
}
func (f *fakeUsers) Add(_ context.Context, u *models.User) error    { return f.add(u) }
func (f *fakeUsers) Update(_ context.Context, u *models.User) error { return f.update(u) }
func (f *fakeUsers) Delete(_ context.Context, u *models.User) error { return f.delete(u) }

type fakeUserTasks struct {
	*store[models.UserTaskID, *models.UserTask]
}

func newFakeUserTasks() *fakeUserTasks {
	return &fakeUserTasks{newStore(func(ut *models.UserTask) models.UserTaskID { return ut.ID })}
}

func (f *fakeUserTasks) ListByUserID(_ context.Context, userID models.UserID) ([]*models.UserTask, error) {
	return f.where(func(ut *models.UserTask) bool { return ut.UserID == userID })
}
func (f *fakeUserTasks) Add(_ context.Context, ut *models.UserTask) error    { return f.add(ut) }
func (f *fakeUserTasks) Delete(_ context.Context, ut *models.UserTask) error { return f.delete(ut) }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return errMismatch
	}
	return nil
}

var errMismatch = errors.New("password mismatch")

type fixture struct {
	projects  *fakeProjects
	tasks     *fakeTasks
	members   *fakeMembers
	entries   *fakeEntries
	roles     *fakeRoles
	users     *fakeUsers
	userTasks *fakeUserTasks
	h         *Handlers
}

func newFixture() *fixture {
	f := &fixture{
		projects:  newFakeProjects(),
		tasks:     newFakeTasks(),
		members:   newFakeMembers(),
		entries:   newFakeEntries(),
		roles:     newFakeRoles(),
		users:     newFakeUsers(),
		userTasks: newFakeUserTasks(),
	}
	f.h = New(Deps{
		Projects:     f.projects,
		ProjectRepo:  f.projects,
		Tasks:        f.tasks,
		TaskRepo:     f.tasks,
		Members:      f.members,
		MemberRepo:   f.members,
		Entries:      f.entries,
		EntryRepo:    f.entries,
		Roles:        f.roles,
		RoleRepo:     f.roles,
		Users:        f.users,
		UserRepo:     f.users,
		UserTasks:    f.userTasks,
		UserTaskRepo: f.userTasks,
		Hasher:       fakeHasher{},
	})
	return f
}

func (f *fixture) seedUser(email string) *models.User {
	u := models.NewUser(email, "Test", "User", "hashed:secret")
	f.users.seed(u)
	return u
}

func (f *fixture) seedProject(name string) *models.Project {
	p := models.NewProject(name, "")
	f.projects.seed(p)
	return p
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

type outcome[V any, E error] struct {
	r   result.Result[V, E]
	err error
}

// of captures a handler's two return values so they can be passed on as one.
func of[V any, E error](r result.Result[V, E], err error) outcome[V, E] {
	return outcome[V, E]{r: r, err: err}
}

// mustSucceed returns the success value or fails the test.
func mustSucceed[V any, E error](t *testing.T, o outcome[V, E]) V {
	t.Helper()
	if o.err != nil {
		t.Fatalf("unexpected fault: %v", o.err)
	}
	return result.Match(o.r,
		func(v V) V { return v },
		func(e E) V {
			t.Fatalf("expected success, got failure: %v", e)
			var zero V
			return zero
		},
	)
}

// mustFail returns the failure variant or fails the test.
func mustFail[V any, E error](t *testing.T, o outcome[V, E]) E {
	t.Helper()
	if o.err != nil {
		t.Fatalf("unexpected fault: %v", o.err)
	}
	return result.Match(o.r,
		func(v V) E {
			t.Fatalf("expected failure, got success: %v", v)
			var zero E
			return zero
		},
		func(e E) E { return e },
	)
}
