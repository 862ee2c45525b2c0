package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tasknest/tasknest/internal/model"
)

const (
	// userKeyPrefix is the Redis key prefix for cached user profiles.
	userKeyPrefix = "user:profile:"

	// UserProfileTTL is the time-to-live for cached user profiles.
	UserProfileTTL = 10 * time.Minute
)

// ErrCacheMiss is returned when a key is absent or unreadable.
var ErrCacheMiss = errors.New("cache miss")

// cachedUser is the Redis representation of a user profile.
// The password digest is never cached.
type cachedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func encodeUser(user *model.User) ([]byte, error) {
	return json.Marshal(cachedUser{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}

func decodeUser(data []byte) (*model.User, error) {
	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	if cached.ID == "" {
		return nil, ErrCacheMiss
	}
	return &model.User{
		ID:        cached.ID,
		Email:     cached.Email,
		Name:      cached.Name,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

// GetUser retrieves a cached user profile by id.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	user, err := decodeUser(data)
	if err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return user, nil
}

// SetUser caches a user profile.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return c.client.Set(ctx, userKey(user.ID), data, UserProfileTTL).Err()
}

// DeleteUser removes a cached user profile.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	return c.client.Del(ctx, userKey(id)).Err()
}
