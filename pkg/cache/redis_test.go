package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/hourglass/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantPool int
		wantIdle int
	}{
		{"config sizing", config.Config{RedisURL: "redis://localhost:6379/0", RedisPoolSize: 25, RedisMinIdleConns: 5}, 25, 5},
		{"url wins", config.Config{RedisURL: "redis://localhost:6379/0?pool_size=7&min_idle_conns=1", RedisPoolSize: 25, RedisMinIdleConns: 5}, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := options(&tt.cfg)
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			if opts.PoolSize != tt.wantPool || opts.MinIdleConns != tt.wantIdle {
				t.Errorf("got pool=%d idle=%d, want pool=%d idle=%d", opts.PoolSize, opts.MinIdleConns, tt.wantPool, tt.wantIdle)
			}
			if opts.MaxRetries != 3 {
				t.Errorf("max retries: got %d", opts.MaxRetries)
			}
		})
	}
}

func TestProjectEncoding_RoundTrip(t *testing.T) {
	in := &CachedProject{
		ID:          uuid.New(),
		Name:        "Alpha",
		Description: "first project",
		CreatedAt:   time.Date(2025, 3, 1, 9, 0, 0, 123, time.UTC),
		UpdatedAt:   time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	fields := encodeProject(in)
	vals := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		vals[fields[i].(string)] = fields[i+1].(string)
	}

	out, err := decodeProject(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID != in.ID || out.Name != in.Name || out.Description != in.Description ||
		!out.CreatedAt.Equal(in.CreatedAt) || !out.UpdatedAt.Equal(in.UpdatedAt) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestDecodeProject_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		vals map[string]string
	}{
		{"bad id", map[string]string{"id": "nope"}},
		{"bad created_at", map[string]string{"id": uuid.NewString(), "created_at": "yesterday"}},
		{"bad updated_at", map[string]string{
			"id":         uuid.NewString(),
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
			"updated_at": "",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeProject(tt.vals); err == nil {
				t.Fatal("expected decode error")
			}
		})
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	rc, err := NewRedisClient(ctx, newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	t.Run("Ping_Success", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("ProjectCache_SetGetDelete", func(t *testing.T) {
		c := NewProjectCache(rc, time.Minute)
		p := &CachedProject{ID: uuid.New(), Name: "Alpha", CreatedAt: time.Now(), UpdatedAt: time.Now()}

		if err := c.Set(ctx, p); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := c.Get(ctx, p.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Alpha" {
			t.Fatalf("expected Alpha, got %q", got.Name)
		}
		if err := c.Delete(ctx, p.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := c.Get(ctx, p.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after delete, got %v", err)
		}
	})
}
