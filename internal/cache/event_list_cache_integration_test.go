//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"gin-event-calendar/internal/cache"
	"gin-event-calendar/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		log.Fatalf("Failed to get redis port: %v", err)
	}

	testRdb = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})

	code := m.Run()

	testRdb.Close()
	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v", err)
	}
	os.Exit(code)
}

func clearRedis(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, testRdb.FlushDB(ctx).Err())
}

func TestRedisEventListCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewRedisEventListCache(testRdb, time.Minute)

	t.Run("Miss", func(t *testing.T) {
		clearRedis(t, ctx)

		events, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, events)
	})

	t.Run("Set then Get", func(t *testing.T) {
		clearRedis(t, ctx)
		want := []*model.Event{
			{ID: "e1", EventName: "Car Meet", DateCreated: "2025-03-15", DayChosen: 15},
			{ID: "e2", EventName: "Picnic", DateCreated: "2025-03-31", DayChosen: 31},
		}

		require.NoError(t, c.Set(ctx, 0, want))
		got, ok, err := c.Get(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)

		ttl, err := testRdb.TTL(ctx, cache.EventListKey).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("Empty list is a hit", func(t *testing.T) {
		clearRedis(t, ctx)

		require.NoError(t, c.Set(ctx, 0, nil))
		got, ok, err := c.Get(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		clearRedis(t, ctx)
		require.NoError(t, c.Set(ctx, 0, []*model.Event{{ID: "e1"}}))

		require.NoError(t, c.Invalidate(ctx))
		_, ok, err := c.Get(ctx)

		require.NoError(t, err)
		assert.False(t, ok)

		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)
	})

	t.Run("Set with an old generation is skipped", func(t *testing.T) {
		clearRedis(t, ctx)

		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx))

		require.NoError(t, c.Set(ctx, gen, []*model.Event{{ID: "deleted"}}))
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		gen, err = c.Generation(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, gen, []*model.Event{{ID: "fresh"}}))
		events, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, events, 1)
		assert.Equal(t, "fresh", events[0].ID)
	})

	t.Run("Corrupt payload is dropped", func(t *testing.T) {
		clearRedis(t, ctx)
		require.NoError(t, testRdb.Set(ctx, cache.EventListKey, "not json", time.Minute).Err())

		_, ok, err := c.Get(ctx)

		assert.Error(t, err)
		assert.False(t, ok)
		exists, err := testRdb.Exists(ctx, cache.EventListKey).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}
