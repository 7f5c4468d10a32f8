// Package queue implements queue membership, tutor sessions and the weekly
// auto-lock schedule on top of an abstract transactional Store.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"tutorq/internal/models"
	"tutorq/internal/tasks"
)

const (
	DefaultGracePeriod = 60 * time.Second

	// TaskReapMember is the delayed task that purges a membership row once
	// its grace period has expired.
	TaskReapMember = "reap_member"
)

// Options wires a Service. Store is required; every other dependency falls
// back to a no-op or in-process default.
type Options struct {
	Store    Store
	Notifier Notifier
	Rooms    RoomProvisioner
	Roles    RolePermissionGrantor
	Events   EventPublisher
	Tasks    tasks.DelayQueue
	Clock    tasks.Clock

	Location     *time.Location
	GracePeriod  time.Duration
	VerifiedRole string
	SessionRole  string
}

// Service exposes the queue, session and schedule operations.
type Service struct {
	store    Store
	notifier Notifier
	rooms    RoomProvisioner
	roles    RolePermissionGrantor
	events   EventPublisher
	tasks    tasks.DelayQueue
	clock    tasks.Clock

	loc          *time.Location
	grace        time.Duration
	verifiedRole string
	sessionRole  string

	evaluations singleflight.Group
	effects     *effectQueue
}

func New(opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		notifier:     opts.Notifier,
		rooms:        opts.Rooms,
		roles:        opts.Roles,
		events:       opts.Events,
		tasks:        opts.Tasks,
		clock:        opts.Clock,
		loc:          opts.Location,
		grace:        opts.GracePeriod,
		verifiedRole: opts.VerifiedRole,
		sessionRole:  opts.SessionRole,
		effects:      newEffectQueue(),
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.roles == nil {
		s.roles = NopGrantor{}
	}
	if s.tasks == nil {
		s.tasks = tasks.NewMemoryQueue()
	}
	if s.clock == nil {
		s.clock = tasks.SystemClock{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.grace <= 0 {
		s.grace = DefaultGracePeriod
	}
	return s
}

// GracePeriod is the rejoin window after leaving a queue.
func (s *Service) GracePeriod() time.Duration { return s.grace }

// Wait blocks until every queued best-effort side effect has finished.
func (s *Service) Wait() { s.effects.wait() }

// afterCommit queues best-effort side effects detached from the caller's
// cancellation. They run one at a time in commit order; panics and errors
// never reach the caller.
func (s *Service) afterCommit(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	s.effects.push(func() { fn(detached) })
}

func warnIf(what string, err error) {
	if err != nil {
		log.Printf("[WARN] Ошибка (%s): %v", what, err)
	}
}

func (s *Service) publish(ev Event) {
	if s.events == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = s.clock.Now()
	}
	s.events.Publish(ev)
}

func (s *Service) queueByName(ctx context.Context, st Store, guildID, name string) (*models.Queue, error) {
	q, err := st.GetQueue(ctx, guildID, name)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrQueueNotFound.with(fmt.Sprintf("queue %q not found", name), nil)
	}
	if err != nil {
		return nil, storeFailure("failed to load queue", err)
	}
	return q, nil
}

func mention(userID string) string { return fmt.Sprintf("<@%s>", userID) }

func channelMention(ref string) string { return fmt.Sprintf("<#%s>", ref) }
