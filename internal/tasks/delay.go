package tasks

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is a unit of deferred work. Handlers must re-validate state when the
// task fires; nothing cancels a task once scheduled.
type Task struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	RunAt   time.Time         `json:"run_at"`
	Payload map[string]string `json:"payload,omitempty"`
}

// NewTask builds a task with a fresh ID.
func NewTask(name string, runAt time.Time, payload map[string]string) Task {
	return Task{
		ID:      uuid.NewString(),
		Name:    name,
		RunAt:   runAt,
		Payload: payload,
	}
}

// DelayQueue stores tasks until they are due.
type DelayQueue interface {
	Schedule(ctx context.Context, t Task) error
	// PopDue removes and returns every task with RunAt <= now, oldest first.
	PopDue(ctx context.Context, now time.Time) ([]Task, error)
}

// MemoryQueue is an in-process DelayQueue backed by a min-heap.
type MemoryQueue struct {
	mu    sync.Mutex
	items taskHeap
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Schedule(_ context.Context, t Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	q.mu.Lock()
	heap.Push(&q.items, t)
	q.mu.Unlock()
	return nil
}

func (q *MemoryQueue) PopDue(_ context.Context, now time.Time) ([]Task, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []Task
	for q.items.Len() > 0 && !q.items[0].RunAt.After(now) {
		due = append(due, heap.Pop(&q.items).(Task))
	}
	return due, nil
}

// Len reports the number of pending tasks.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

type taskHeap []Task

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].RunAt.Before(h[j].RunAt) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x interface{}) {
	*h = append(*h, x.(Task))
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
