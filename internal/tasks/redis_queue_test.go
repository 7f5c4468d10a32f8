package tasks

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisQueue(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	key := "tutorq:test:" + t.Name()
	require.NoError(t, client.Del(ctx, key).Err())
	q := NewRedisQueue(client, key)

	base := time.Now().Truncate(time.Millisecond)
	require.NoError(t, q.Schedule(ctx, NewTask("reap", base.Add(time.Second), map[string]string{"user_id": "u1"})))
	require.NoError(t, q.Schedule(ctx, NewTask("reap", base.Add(time.Hour), map[string]string{"user_id": "u2"})))

	due, err := q.PopDue(ctx, base.Add(2*time.Second))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "u1", due[0].Payload["user_id"])

	// claimed tasks are gone
	due, err = q.PopDue(ctx, base.Add(2*time.Second))
	require.NoError(t, err)
	assert.Empty(t, due)

	n, err := client.ZCard(ctx, key).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
