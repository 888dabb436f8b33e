package redis

import (
	"context"
	"testing"
	"time"

	"mutual-aid/internal/domain/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheStoreUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	cache := NewCacheStore(client, DefaultCacheConfig())

	u := user.User{
		ID:          uuid.New(),
		Name:        "Bob",
		ContactInfo: "Bob@Example.com",
		ContactKey:  "bob@example.com",
		Location:    "Elm Street",
		Role:        user.RoleHelper,
		CreatedAt:   time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
	}

	miss, err := cache.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, cache.SetUser(ctx, u))

	got, err := cache.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Name, got.Name)
	assert.Equal(t, user.RoleHelper, got.Role)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	id, err := cache.GetUserIDByContact(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	mr.FastForward(6 * time.Minute)
	expired, err := cache.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestRateLimiterAuthWindow(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{
		AuthLimit:     2,
		AuthWindow:    time.Minute,
		MessageLimit:  1,
		MessageWindow: time.Minute,
	})

	first, err := limiter.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 2, first.Limit)

	second, err := limiter.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)

	other, err := limiter.AllowAuth(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "limits are per ip")

	mr.FastForward(61 * time.Second)
	again, err := limiter.AllowAuth(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
}

func TestRateLimiterMessages(t *testing.T) {
	ctx := context.Background()
	_, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{MessageLimit: 1, MessageWindow: time.Minute})

	ok, err := limiter.AllowMessage(ctx, "sender")
	require.NoError(t, err)
	assert.True(t, ok.Allowed)

	blocked, err := limiter.AllowMessage(ctx, "sender")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Greater(t, blocked.ResetIn, time.Duration(0))
}
