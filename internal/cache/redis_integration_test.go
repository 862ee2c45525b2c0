//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tasknest/tasknest/internal/testutil"
)

func TestIntegrationCache_UserProfile(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("cache"))

	if _, err := c.GetUser(ctx, user.ID); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("GetUser before set: expected ErrCacheMiss, got %v", err)
	}

	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	got, err := c.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", got.Email, user.Email)
	}

	ttl, err := c.Client().TTL(ctx, userKey(user.ID)).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > UserProfileTTL {
		t.Errorf("TTL = %v, want within (0, %v]", ttl, UserProfileTTL)
	}

	if err := c.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := c.GetUser(ctx, user.ID); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("GetUser after delete: expected ErrCacheMiss, got %v", err)
	}
}

func TestIntegrationCache_CorruptEntryIsMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if err := c.Client().Set(ctx, userKey("corrupt"), "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	if _, err := c.GetUser(ctx, "corrupt"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss for corrupt entry, got %v", err)
	}
}

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}
