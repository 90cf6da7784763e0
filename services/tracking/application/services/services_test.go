package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/hourglass/pkg/auth"
	pkgcache "github.com/ghuser/hourglass/pkg/cache"
	"github.com/ghuser/hourglass/pkg/config"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
)

type fakeProjects struct {
	rows  map[models.ProjectID]*models.Project
	reads int
}

func newFakeProjects(ps ...*models.Project) *fakeProjects {
	f := &fakeProjects{rows: map[models.ProjectID]*models.Project{}}
	for _, p := range ps {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakeProjects) GetByID(_ context.Context, id models.ProjectID) (option.Option[*models.Project], error) {
	f.reads++
	if p, ok := f.rows[id]; ok {
		return option.Some(p), nil
	}
	return option.None[*models.Project](), nil
}

func (f *fakeProjects) List(context.Context) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjects) Add(_ context.Context, p *models.Project) error {
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProjects) Update(_ context.Context, p *models.Project) error {
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, p *models.Project) error {
	delete(f.rows, p.ID)
	return nil
}

type fakeCache struct {
	rows    map[uuid.UUID]*pkgcache.CachedProject
	getErr  error
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{rows: map[uuid.UUID]*pkgcache.CachedProject{}}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedProject, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if p, ok := c.rows[id]; ok {
		return p, nil
	}
	return nil, redis.Nil
}

func (c *fakeCache) Set(_ context.Context, p *pkgcache.CachedProject) error {
	c.rows[p.ID] = p
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uuid.UUID) error {
	c.deletes++
	delete(c.rows, id)
	return nil
}

func quietLogger() logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

func newProjectService(projects *fakeProjects, c ProjectCache) *ProjectService {
	h := commands.New(commands.Deps{Projects: projects, ProjectRepo: projects})
	return NewProjectService(h, projects, c, quietLogger())
}

func name(o option.Option[*models.Project]) string {
	return option.Match(o, func(p *models.Project) string { return p.Name }, func() string { return "" })
}

func TestProjectService_GetReadsThrough(t *testing.T) {
	ctx := context.Background()
	p := models.NewProject("Alpha", "")
	projects := newFakeProjects(p)
	c := newFakeCache()
	svc := newProjectService(projects, c)

	first, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name(first) != "Alpha" {
		t.Fatalf("expected Alpha, got %q", name(first))
	}
	if _, ok := c.rows[p.ID.UUID]; !ok {
		t.Fatal("expected project to be cached after a miss")
	}

	second, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name(second) != "Alpha" || projects.reads != 1 {
		t.Fatalf("expected cache hit, got %q after %d reads", name(second), projects.reads)
	}
}

func TestProjectService_GetFallsBackOnCacheError(t *testing.T) {
	p := models.NewProject("Alpha", "")
	projects := newFakeProjects(p)
	c := newFakeCache()
	c.getErr = errors.New("connection refused")
	svc := newProjectService(projects, c)

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name(got) != "Alpha" || projects.reads != 1 {
		t.Fatalf("expected database read, got %q after %d reads", name(got), projects.reads)
	}
}

func TestProjectService_GetMissing(t *testing.T) {
	c := newFakeCache()
	svc := newProjectService(newFakeProjects(), c)

	got, err := svc.Get(context.Background(), models.ProjectID{UUID: uuid.New()})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name(got) != "" {
		t.Fatalf("expected None, got %q", name(got))
	}
	if len(c.rows) != 0 {
		t.Fatal("a missing project must not be cached")
	}
}

func TestProjectService_UpdateEvicts(t *testing.T) {
	ctx := context.Background()
	p := models.NewProject("Alpha", "")
	c := newFakeCache()
	svc := newProjectService(newFakeProjects(p), c)

	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	r, err := svc.Update(ctx, commands.UpdateProject{ID: p.ID, Name: "Beta"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !succeeded(r) {
		t.Fatal("expected update to succeed")
	}
	if _, ok := c.rows[p.ID.UUID]; ok {
		t.Fatal("expected cached project to be evicted")
	}

	got, _ := svc.Get(ctx, p.ID)
	if name(got) != "Beta" {
		t.Fatalf("expected fresh read after eviction, got %q", name(got))
	}
}

func TestProjectService_FailedCommandKeepsCache(t *testing.T) {
	c := newFakeCache()
	svc := newProjectService(newFakeProjects(), c)

	r, err := svc.Delete(context.Background(), commands.DeleteProject{ID: models.ProjectID{UUID: uuid.New()}})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if succeeded(r) {
		t.Fatal("expected not found")
	}
	if c.deletes != 0 {
		t.Fatalf("expected no eviction, got %d", c.deletes)
	}
}

func TestProjectService_Warm(t *testing.T) {
	p := models.NewProject("Alpha", "first")
	c := newFakeCache()
	svc := newProjectService(newFakeProjects(p), c)

	if err := svc.Warm(context.Background(), p.ID); err != nil {
		t.Fatalf("Warm: %v", err)
	}
	cached, ok := c.rows[p.ID.UUID]
	if !ok || cached.Description != "first" {
		t.Fatalf("expected warmed entry, got %+v", cached)
	}
	if err := svc.Warm(context.Background(), models.ProjectID{UUID: uuid.New()}); err != nil {
		t.Fatalf("warming a deleted project: %v", err)
	}
}

func succeeded(r commands.ProjectResult) bool {
	return result.Match(r,
		func(*models.Project) bool { return true },
		func(domain.ProjectError) bool { return false },
	)
}

// --- AuthService ---

type fakeUsers struct {
	byEmail map[string]*models.User
	err     error
}

func (f *fakeUsers) GetByID(_ context.Context, id models.UserID) (option.Option[*models.User], error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return option.Some(u), nil
		}
	}
	return option.None[*models.User](), f.err
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (option.Option[*models.User], error) {
	if f.err != nil {
		return option.None[*models.User](), f.err
	}
	if u, ok := f.byEmail[email]; ok {
		return option.Some(u), nil
	}
	return option.None[*models.User](), nil
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ada := models.NewUser("ada@example.com", "Ada", "Lovelace", hash)
	noPassword := models.NewUser("grace@example.com", "Grace", "Hopper", "")
	users := &fakeUsers{byEmail: map[string]*models.User{ada.Email: ada, noPassword.Email: noPassword}}
	tokens := auth.NewTokenIssuer("test-secret-at-least-32-bytes-long!!", "hourglass", time.Hour)
	svc := NewAuthService(users, hasher, tokens)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "nobody@example.com", "correct horse", domain.ErrInvalidCredentials},
		{"wrong password", "ada@example.com", "battery staple", domain.ErrInvalidCredentials},
		{"no password set", "grace@example.com", "", domain.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("success issues a token for the user", func(t *testing.T) {
		sess, err := svc.Login(context.Background(), "ada@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if sess.User.ID != ada.ID {
			t.Fatalf("expected user %s, got %s", ada.ID, sess.User.ID)
		}
		sub, err := tokens.Parse(sess.Token)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if sub != ada.ID.UUID {
			t.Fatalf("expected subject %s, got %s", ada.ID, sub)
		}
	})

	t.Run("lookup fault is not a credential error", func(t *testing.T) {
		broken := NewAuthService(&fakeUsers{err: errors.New("db down")}, hasher, tokens)
		_, err := broken.Login(context.Background(), "ada@example.com", "correct horse")
		if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected a fault, got %v", err)
		}
	})
}

type countingHasher struct {
	*auth.BcryptHasher
	compares int
}

func (h *countingHasher) Compare(hash, password string) error {
	h.compares++
	return h.BcryptHasher.Compare(hash, password)
}

func TestAuthService_LoginComparesOnEveryPath(t *testing.T) {
	hasher := &countingHasher{BcryptHasher: auth.NewBcryptHasher(4)}
	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	ada := models.NewUser("ada@example.com", "Ada", "Lovelace", hash)
	noPassword := models.NewUser("grace@example.com", "Grace", "Hopper", "")
	users := &fakeUsers{byEmail: map[string]*models.User{ada.Email: ada, noPassword.Email: noPassword}}
	svc := NewAuthService(users, hasher, nil)

	for _, email := range []string{"nobody@example.com", "ada@example.com", "grace@example.com"} {
		t.Run(email, func(t *testing.T) {
			hasher.compares = 0
			if _, err := svc.Login(context.Background(), email, "battery staple"); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected invalid credentials, got %v", err)
			}
			if hasher.compares != 1 {
				t.Fatalf("expected 1 password comparison, got %d", hasher.compares)
			}
		})
	}
}
