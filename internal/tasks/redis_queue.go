package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const defaultRedisKey = "tutorq:delayed_tasks"

// RedisQueue keeps delayed tasks in a sorted set scored by fire time, so
// pending reapers survive a restart.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Schedule(ctx context.Context, t Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode task %s: %w", t.Name, err)
	}
	err = q.client.ZAdd(ctx, q.key, &redis.Z{
		Score:  float64(t.RunAt.UnixMilli()),
		Member: string(data),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to schedule task %s: %w", t.Name, err)
	}
	return nil
}

func (q *RedisQueue) PopDue(ctx context.Context, now time.Time) ([]Task, error) {
	members, err := q.client.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read due tasks: %w", err)
	}

	var due []Task
	for _, member := range members {
		// ZREM claims the task; another poller that removed it first wins.
		removed, err := q.client.ZRem(ctx, q.key, member).Result()
		if err != nil {
			return due, fmt.Errorf("failed to claim task: %w", err)
		}
		if removed == 0 {
			continue
		}
		var t Task
		if err := json.Unmarshal([]byte(member), &t); err != nil {
			log.Printf("[WARN] Задача пропущена, ошибка декодирования: %v", err)
			continue
		}
		due = append(due, t)
	}
	return due, nil
}
