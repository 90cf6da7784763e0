package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/hourglass/pkg/cache"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/application/commands"
	domain "github.com/ghuser/hourglass/services/tracking/domain"
	"github.com/ghuser/hourglass/services/tracking/domain/models"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
)

// ProjectCache is the read-model cache consulted by ProjectService.Get.
// Get returns redis.Nil on a miss.
type ProjectCache interface {
	Get(ctx context.Context, id uuid.UUID) (*pkgcache.CachedProject, error)
	Set(ctx context.Context, p *pkgcache.CachedProject) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectService runs the project commands and serves project reads through a
// read-through cache. Updates and deletes evict the cached read model.
// Cache failures are logged and never fail a request.
type ProjectService struct {
	handlers *commands.Handlers
	projects repositories.ProjectQueries
	cache    ProjectCache
	log      logger.Logger
}

// NewProjectService returns a ProjectService. A nil cache serves every read
// from projects.
func NewProjectService(h *commands.Handlers, projects repositories.ProjectQueries, cache ProjectCache, log logger.Logger) *ProjectService {
	return &ProjectService{handlers: h, projects: projects, cache: cache, log: log}
}

func (s *ProjectService) Create(ctx context.Context, cmd commands.CreateProject) (commands.ProjectResult, error) {
	return s.handlers.CreateProject.Handle(ctx, cmd)
}

func (s *ProjectService) Update(ctx context.Context, cmd commands.UpdateProject) (commands.ProjectResult, error) {
	r, err := s.handlers.UpdateProject.Handle(ctx, cmd)
	if err == nil {
		s.evict(ctx, r)
	}
	return r, err
}

func (s *ProjectService) Delete(ctx context.Context, cmd commands.DeleteProject) (commands.ProjectResult, error) {
	r, err := s.handlers.DeleteProject.Handle(ctx, cmd)
	if err == nil {
		s.evict(ctx, r)
	}
	return r, err
}

// Get returns the project with id:
//  1. from the cache when present;
//  2. otherwise from the database, storing the result in the cache.
func (s *ProjectService) Get(ctx context.Context, id models.ProjectID) (option.Option[*models.Project], error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id.UUID)
		if err == nil {
			return option.Some(fromCached(cached)), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "project cache read failed", "project_id", id, "error", err)
		}
	}

	found, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return option.None[*models.Project](), fmt.Errorf("get project: %w", err)
	}
	return option.Match(found,
		func(p *models.Project) option.Option[*models.Project] {
			s.store(ctx, p)
			return found
		},
		option.None[*models.Project],
	), nil
}

// List returns every project from the database, ordered by name.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	ps, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

// Warm loads the project with id into the cache. A project deleted in the
// meantime is skipped.
func (s *ProjectService) Warm(ctx context.Context, id models.ProjectID) error {
	if s.cache == nil {
		return nil
	}
	found, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("warm project %s: %w", id, err)
	}
	return option.Match(found,
		func(p *models.Project) error {
			if err := s.cache.Set(ctx, toCached(p)); err != nil {
				return fmt.Errorf("warm project %s: %w", id, err)
			}
			return nil
		},
		func() error { return nil },
	)
}

func (s *ProjectService) store(ctx context.Context, p *models.Project) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(p)); err != nil {
		s.log.WarnContext(ctx, "project cache write failed", "project_id", p.ID, "error", err)
	}
}

func (s *ProjectService) evict(ctx context.Context, r commands.ProjectResult) {
	if s.cache == nil {
		return
	}
	result.Match(r,
		func(p *models.Project) result.Unit {
			if err := s.cache.Delete(ctx, p.ID.UUID); err != nil {
				s.log.WarnContext(ctx, "project cache evict failed", "project_id", p.ID, "error", err)
			}
			return result.Unit{}
		},
		func(domain.ProjectError) result.Unit { return result.Unit{} },
	)
}

func toCached(p *models.Project) *pkgcache.CachedProject {
	return &pkgcache.CachedProject{
		ID:          p.ID.UUID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromCached(c *pkgcache.CachedProject) *models.Project {
	return &models.Project{
		ID:          models.ProjectID{UUID: c.ID},
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
