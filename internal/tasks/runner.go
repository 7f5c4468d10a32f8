package tasks

import (
	"context"
	"log"
	"sync"
)

// Handler executes one fired task.
type Handler func(ctx context.Context, t Task) error

// Runner pops due tasks from a DelayQueue and dispatches them by name.
type Runner struct {
	queue DelayQueue
	clock Clock

	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRunner(queue DelayQueue, clock Clock) *Runner {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Runner{
		queue:    queue,
		clock:    clock,
		handlers: make(map[string]Handler),
	}
}

func (r *Runner) Handle(name string, h Handler) {
	r.mu.Lock()
	r.handlers[name] = h
	r.mu.Unlock()
}

// RunDue executes every task that is due at the runner's current time and
// returns how many were dispatched. Handler failures are logged, not retried.
func (r *Runner) RunDue(ctx context.Context) (int, error) {
	due, err := r.queue.PopDue(ctx, r.clock.Now())
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, t := range due {
		r.mu.RLock()
		h, ok := r.handlers[t.Name]
		r.mu.RUnlock()
		if !ok {
			log.Printf("[WARN] Нет обработчика для задачи %s (%s)", t.Name, t.ID)
			continue
		}
		if err := h(ctx, t); err != nil {
			log.Printf("[ERROR] Ошибка задачи %s (%s): %v", t.Name, t.ID, err)
		}
		ran++
	}
	return ran, nil
}
