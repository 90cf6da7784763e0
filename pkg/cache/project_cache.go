package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultProjectCacheTTL is used when NewProjectCache gets a non-positive ttl.
	DefaultProjectCacheTTL = 24 * time.Hour

	projectCacheKeyPrefix = "project"
)

// CachedProject is the denormalized project read model stored in Redis.
type CachedProject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectCache reads and writes project read models as Redis hashes.
// Key format: "project:{projectID}"
type ProjectCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewProjectCache creates a ProjectCache backed by r. Entries expire after ttl.
func NewProjectCache(r *RedisClient, ttl time.Duration) *ProjectCache {
	if ttl <= 0 {
		ttl = DefaultProjectCacheTTL
	}
	return &ProjectCache{client: r, ttl: ttl}
}

// Get retrieves a cached project.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ProjectCache) Get(ctx context.Context, id uuid.UUID) (*CachedProject, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeProject(vals)
}

// Set writes p as a Redis hash and refreshes its TTL in one pipeline.
func (c *ProjectCache) Set(ctx context.Context, p *CachedProject) error {
	key := c.key(p.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, encodeProject(p)...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached project. Deleting a missing key is not an error.
func (c *ProjectCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ProjectCache) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", projectCacheKeyPrefix, id)
}

func encodeProject(p *CachedProject) []any {
	return []any{
		"id", p.ID.String(),
		"name", p.Name,
		"description", p.Description,
		"created_at", p.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeProject(vals map[string]string) (*CachedProject, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return &CachedProject{
		ID:          id,
		Name:        vals["name"],
		Description: vals["description"],
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
