package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mutual-aid/internal/domain/user"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - user:{user_id} - 5m TTL, profile cache
// - contact:{contact_key} - 5m TTL, contact -> user_id

// CacheConfig contains configuration for caching
type CacheConfig struct {
	UserTTL time.Duration // TTL for user cache (default 5m)
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		UserTTL: 5 * time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

// UserCache is the cached form of a user profile. Users never change after
// registration, so entries only expire.
type UserCache struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	ContactKey  string    `json:"contact_key"`
	Location    string    `json:"location"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func contactKey(key string) string {
	return fmt.Sprintf("contact:%s", key)
}

// GetUser retrieves a user from cache. A miss returns (nil, nil).
func (c *CacheStore) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Result()
	if err == goredis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var cached UserCache
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, err
	}
	u := user.User{
		ID:          cached.ID,
		Name:        cached.Name,
		ContactInfo: cached.ContactInfo,
		ContactKey:  cached.ContactKey,
		Location:    cached.Location,
		Role:        user.Role(cached.Role),
		CreatedAt:   cached.CreatedAt,
	}
	return &u, nil
}

// GetUserIDByContact resolves a normalized contact key. A miss returns uuid.Nil.
func (c *CacheStore) GetUserIDByContact(ctx context.Context, key string) (uuid.UUID, error) {
	data, err := c.client.Get(ctx, contactKey(key)).Result()
	if err == goredis.Nil {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(data)
}

// SetUser stores a user and its contact index.
func (c *CacheStore) SetUser(ctx context.Context, u user.User) error {
	data, err := json.Marshal(UserCache{
		ID:          u.ID,
		Name:        u.Name,
		ContactInfo: u.ContactInfo,
		ContactKey:  u.ContactKey,
		Location:    u.Location,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	})
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, userKey(u.ID), data, c.config.UserTTL)
	if u.ContactKey != "" {
		pipe.Set(ctx, contactKey(u.ContactKey), u.ID.String(), c.config.UserTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}
