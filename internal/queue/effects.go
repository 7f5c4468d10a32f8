package queue

import (
	"log"
	"sync"
)

// effectQueue runs side effects on a single worker in the order they were
// pushed, so notifications and events leave in commit order.
type effectQueue struct {
	mu      sync.Mutex
	jobs    []func()
	wake    chan struct{}
	pending sync.WaitGroup
}

func newEffectQueue() *effectQueue {
	q := &effectQueue{wake: make(chan struct{}, 1)}
	go q.run()
	return q
}

func (q *effectQueue) push(job func()) {
	q.pending.Add(1)
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *effectQueue) run() {
	for range q.wake {
		for {
			job, ok := q.next()
			if !ok {
				break
			}
			q.exec(job)
		}
	}
}

func (q *effectQueue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return nil, false
	}
	job := q.jobs[0]
	q.jobs[0] = nil
	q.jobs = q.jobs[1:]
	return job, true
}

func (q *effectQueue) exec(job func()) {
	defer q.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Паника в побочном действии: %v", r)
		}
	}()
	job()
}

func (q *effectQueue) wait() {
	q.pending.Wait()
}
