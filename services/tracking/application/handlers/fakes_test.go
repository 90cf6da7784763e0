package handlers_test

import (
	"context"
	"slices"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

// table is an in-memory store shared by the fakes.
type table[ID comparable, T any] struct {
	key      func(T) ID
	rows     []T
	updates  int
	queryErr error
}

func (t *table[ID, T]) seed(rows ...T) { t.rows = append(t.rows, rows...) }

func (t *table[ID, T]) get(id ID) (option.Option[T], error) {
	if t.queryErr != nil {
		return option.None[T](), t.queryErr
	}
	for _, r := range t.rows {
		if t.key(r) == id {
			return option.Some(r), nil
		}
	}
	return option.None[T](), nil
}

func (t *table[ID, T]) where(keep func(T) bool) ([]T, error) {
	if t.queryErr != nil {
		return nil, t.queryErr
	}
	out := []T{}
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *table[ID, T]) all(T) bool { return true }

func (t *table[ID, T]) add(v T) error {
	t.rows = append(t.rows, v)
	return nil
}

func (t *table[ID, T]) update(v T) error {
	t.updates++
	for i, r := range t.rows {
		if t.key(r) == t.key(v) {
			t.rows[i] = v
			return nil
		}
	}
	t.rows = append(t.rows, v)
	return nil
}

func (t *table[ID, T]) remove(v T) error {
	t.rows = slices.DeleteFunc(t.rows, func(r T) bool { return t.key(r) == t.key(v) })
	return nil
}

type fakeProjects struct {
	table[models.ProjectID, *models.Project]
}

func newFakeProjects() *fakeProjects {
	f := &fakeProjects{}
	f.key = func(p *models.Project) models.ProjectID { return p.ID }
	return f
}

func (f *fakeProjects) GetByID(_ context.Context, id models.ProjectID) (option.Option[*models.Project], error) {
	return f.get(id)
}

func (f *fakeProjects) List(context.Context) ([]*models.Project, error) { return f.where(f.all) }

func (f *fakeProjects) Add(_ context.Context, p *models.Project) error    { return f.add(p) }
func (f *fakeProjects) Update(_ context.Context, p *models.Project) error { return f.update(p) }
func (f *fakeProjects) Delete(_ context.Context, p *models.Project) error { return f.remove(p) }

type fakeTasks struct {
	table[models.ProjectTaskID, *models.ProjectTask]
}

func newFakeTasks() *fakeTasks {
	f := &fakeTasks{}
	f.key = func(t *models.ProjectTask) models.ProjectTaskID { return t.ID }
	return f
}

func (f *fakeTasks) GetByID(_ context.Context, id models.ProjectTaskID) (option.Option[*models.ProjectTask], error) {
	return f.get(id)
}

func (f *fakeTasks) ListByProjectID(_ context.Context, projectID models.ProjectID) ([]*models.ProjectTask, error) {
	return f.where(func(t *models.ProjectTask) bool { return t.ProjectID == projectID })
}

func (f *fakeTasks) Add(_ context.Context, t *models.ProjectTask) error    { return f.add(t) }
func (f *fakeTasks) Update(_ context.Context, t *models.ProjectTask) error { return f.update(t) }
func (f *fakeTasks) Delete(_ context.Context, t *models.ProjectTask) error { return f.remove(t) }

type fakeMembers struct {
	table[models.ProjectUserID, *models.ProjectUser]
}

func newFakeMembers() *fakeMembers {
	f := &fakeMembers{}
	f.key = func(pu *models.ProjectUser) models.ProjectUserID { return pu.ID }
	return f
}

func (f *fakeMembers) GetByID(_ context.Context, id models.ProjectUserID) (option.Option[*models.ProjectUser], error) {
	return f.get(id)
}

func (f *fakeMembers) ListByProjectID(_ context.Context, projectID models.ProjectID) ([]*models.ProjectUser, error) {
	return f.where(func(pu *models.ProjectUser) bool { return pu.ProjectID == projectID })
}

func (f *fakeMembers) Add(_ context.Context, pu *models.ProjectUser) error    { return f.add(pu) }
func (f *fakeMembers) Update(_ context.Context, pu *models.ProjectUser) error { return f.update(pu) }
func (f *fakeMembers) Delete(_ context.Context, pu *models.ProjectUser) error { return f.remove(pu) }

type fakeEntries struct {
	table[models.TimeEntryID, *models.TimeEntry]
}

func newFakeEntries() *fakeEntries {
	f := &fakeEntries{}
	f.key = func(e *models.TimeEntry) models.TimeEntryID { return e.ID }
	return f
}

func (f *fakeEntries) GetByID(_ context.Context, id models.TimeEntryID) (option.Option[*models.TimeEntry], error) {
	return f.get(id)
}

func (f *fakeEntries) ListByUserID(_ context.Context, userID models.UserID) ([]*models.TimeEntry, error) {
	return f.where(func(e *models.TimeEntry) bool { return e.UserID == userID })
}

func (f *fakeEntries) Add(_ context.Context, e *models.TimeEntry) error    { return f.add(e) }
func (f *fakeEntries) Update(_ context.Context, e *models.TimeEntry) error { return f.update(e) }
func (f *fakeEntries) Delete(_ context.Context, e *models.TimeEntry) error { return f.remove(e) }

type fakeRoles struct {
	table[models.RoleID, *models.Role]
}

func newFakeRoles() *fakeRoles {
	f := &fakeRoles{}
	f.key = func(r *models.Role) models.RoleID { return r.ID }
	return f
}

func (f *fakeRoles) GetByID(_ context.Context, id models.RoleID) (option.Option[*models.Role], error) {
	return f.get(id)
}

func (f *fakeRoles) List(context.Context) ([]*models.Role, error) { return f.where(f.all) }

func (f *fakeRoles) Add(_ context.Context, r *models.Role) error    { return f.add(r) }
func (f *fakeRoles) Update(_ context.Context, r *models.Role) error { return f.update(r) }
func (f *fakeRoles) Delete(_ context.Context, r *models.Role) error { return f.remove(r) }

type fakeUsers struct {
	table[models.UserID, *models.User]
}

func newFakeUsers() *fakeUsers {
	f := &fakeUsers{}
	f.key = func(u *models.User) models.UserID { return u.ID }
	return f
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
func (f *fakeUsers) Delete(_ context.Context, u *models.User) error { return f.remove(u) }

type fakeUserTasks struct {
	table[models.UserTaskID, *models.UserTask]
}

func newFakeUserTasks() *fakeUserTasks {
	f := &fakeUserTasks{}
	f.key = func(ut *models.UserTask) models.UserTaskID { return ut.ID }
	return f
}

func (f *fakeUserTasks) ListByUserID(_ context.Context, userID models.UserID) ([]*models.UserTask, error) {
	return f.where(func(ut *models.UserTask) bool { return ut.UserID == userID })
}

func (f *fakeUserTasks) Add(_ context.Context, ut *models.UserTask) error    { return f.add(ut) }
func (f *fakeUserTasks) Delete(_ context.Context, ut *models.UserTask) error { return f.remove(ut) }
