package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ghuser/hourglass/pkg/config"
	"github.com/ghuser/hourglass/pkg/database"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/migrator"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

func matchInt(o option.Option[int]) int {
	return option.Match(o, func(n int) int { return n }, func() int { return -1 })
}

func isSome[T any](o option.Option[T]) bool {
	return option.Match(o, func(T) bool { return true }, func() bool { return false })
}

// Integration tests: skipped unless DATABASE_URL is set. Rows are created with
// fresh ids and unique names, so the suite can run against a shared database.
func TestRepositoriesIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	if _, err := migrator.RunMigrations(ctx, url, "tracking_goose_version", os.DirFS("../../../../../migrations/tracking")); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := database.NewPool(ctx, url, logger.New(&config.Config{LogLevel: "error"}))
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	projects := NewProjectRepository(pool, nil)
	users := NewUserRepository(pool, nil)
	roles := NewRoleRepository(pool)
	entries := NewTimeEntryRepository(pool, nil)
	suffix := time.Now().Format("150405.000000")

	project := models.NewProject("Integration "+suffix, "")
	if err := projects.Add(ctx, project); err != nil {
		t.Fatalf("add project: %v", err)
	}
	user := models.NewUser("it-"+suffix+"@example.com", "Ada", "Lovelace", "hash")
	if err := users.Add(ctx, user); err != nil {
		t.Fatalf("add user: %v", err)
	}
	t.Cleanup(func() {
		_ = users.Delete(ctx, user)
		_ = projects.Delete(ctx, project)
	})

	t.Run("GetByID round trip", func(t *testing.T) {
		o, err := projects.GetByID(ctx, project.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		name := option.Match(o, func(p *models.Project) string { return p.Name }, func() string { return "" })
		if name != project.Name {
			t.Fatalf("expected %q, got %q", project.Name, name)
		}
	})

	t.Run("missing id is None", func(t *testing.T) {
		o, err := projects.GetByID(ctx, models.NewProject("x", "").ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if isSome(o) {
			t.Fatal("expected None")
		}
	})

	t.Run("duplicate project name is ErrConflict", func(t *testing.T) {
		err := projects.Add(ctx, models.NewProject(project.Name, ""))
		if !errors.Is(err, repositories.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("Update inserts an unknown id", func(t *testing.T) {
		p := models.NewProject("Upserted "+suffix, "")
		if err := projects.Update(ctx, p); err != nil {
			t.Fatalf("update: %v", err)
		}
		defer projects.Delete(ctx, p) //nolint:errcheck
		o, err := projects.GetByID(ctx, p.ID)
		if err != nil || !isSome(o) {
			t.Fatalf("expected upserted row, got %v, %v", o, err)
		}
	})

	t.Run("user roles are replaced on update", func(t *testing.T) {
		role := models.NewRole("role-"+suffix, "")
		if err := roles.Add(ctx, role); err != nil {
			t.Fatalf("add role: %v", err)
		}
		defer roles.Delete(ctx, role) //nolint:errcheck

		user.AssignRole(role.ID)
		if err := users.Update(ctx, user); err != nil {
			t.Fatalf("update user: %v", err)
		}
		o, err := users.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		has := option.Match(o, func(u *models.User) bool { return u.HasRole(role.ID) }, func() bool { return false })
		if !has {
			t.Fatal("expected stored role assignment")
		}
	})

	t.Run("overlapping entries hit the exclusion constraint", func(t *testing.T) {
		day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		first := models.NewTimeEntry(user.ID, models.TimeEntryDetails{
			ProjectID: project.ID,
			StartTime: day.Add(9 * time.Hour),
			EndTime:   day.Add(10*time.Hour + 30*time.Minute),
			Minutes:   90,
		})
		if err := entries.Add(ctx, first); err != nil {
			t.Fatalf("add entry: %v", err)
		}
		second := models.NewTimeEntry(user.ID, models.TimeEntryDetails{
			ProjectID: project.ID,
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(11 * time.Hour),
			Minutes:   60,
		})
		if err := entries.Add(ctx, second); !errors.Is(err, repositories.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		touching := models.NewTimeEntry(user.ID, models.TimeEntryDetails{
			ProjectID: project.ID,
			StartTime: day.Add(10*time.Hour + 30*time.Minute),
			EndTime:   day.Add(11 * time.Hour),
			Minutes:   30,
		})
		if err := entries.Add(ctx, touching); err != nil {
			t.Fatalf("touching entry must be accepted: %v", err)
		}
		list, err := entries.ListByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(list))
		}
	})
}
