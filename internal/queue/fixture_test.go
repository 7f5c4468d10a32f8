package queue_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tutorq/internal/models"
	"tutorq/internal/queue"
	"tutorq/internal/storage"
	"tutorq/internal/tasks"
)

const (
	guild       = "g1"
	waitingRoom = "wr1"
)

// Monday 2024-01-01 10:00 UTC
var monday10 = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *queue.Service
	store  *storage.MemoryStore
	clock  *tasks.FakeClock
	runner *tasks.Runner
	notes  *recNotifier
	rooms  *recRooms
	roles  *recRoles
	events *recEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  storage.NewMemoryStore(),
		clock:  tasks.NewFakeClock(monday10),
		notes:  &recNotifier{},
		rooms:  &recRooms{},
		roles:  &recRoles{},
		events: &recEvents{},
	}
	delays := tasks.NewMemoryQueue()
	f.svc = queue.New(queue.Options{
		Store:        f.store,
		Notifier:     f.notes,
		Rooms:        f.rooms,
		Roles:        f.roles,
		Events:       f.events,
		Tasks:        delays,
		Clock:        f.clock,
		Location:     time.UTC,
		VerifiedRole: "Verified",
		SessionRole:  "Active Session",
	})
	f.runner = tasks.NewRunner(delays, f.clock)
	f.runner.Handle(queue.TaskReapMember, f.svc.HandleReapTask)
	return f
}

// newQueue creates an unlocked queue wired to the waiting room.
func (f *fixture) newQueue(t *testing.T, name string) *models.Queue {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.CreateQueue(ctx, guild, name, "")
	require.NoError(t, err)
	room := waitingRoom
	q, err := f.svc.SetQueueChannels(ctx, guild, name, queue.ChannelUpdate{WaitingRoom: &room})
	require.NoError(t, err)
	return q
}

func (f *fixture) join(t *testing.T, name, user string) *models.QueueMember {
	t.Helper()
	m, err := f.svc.JoinQueue(context.Background(), guild, name, user)
	require.NoError(t, err)
	return m
}

func (f *fixture) position(t *testing.T, q *models.Queue, user string) int {
	t.Helper()
	pos, err := f.svc.GetQueuePosition(context.Background(), q.ID, user)
	require.NoError(t, err)
	return pos
}

type recNotifier struct {
	mu      sync.Mutex
	dms     map[string][]string
	private []string
	public  []queue.Severity
	fail    bool
}

func (n *recNotifier) NotifyUser(_ context.Context, userID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("dm closed")
	}
	if n.dms == nil {
		n.dms = map[string][]string{}
	}
	n.dms[userID] = append(n.dms[userID], message)
	return nil
}

func (n *recNotifier) LogPrivate(_ context.Context, _ *models.Queue, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("log channel gone")
	}
	n.private = append(n.private, message)
	return nil
}

func (n *recNotifier) LogPublic(_ context.Context, _ *models.Queue, _ string, severity queue.Severity) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("log channel gone")
	}
	n.public = append(n.public, severity)
	return nil
}

func (n *recNotifier) dmsTo(user string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.dms[user]...)
}

type createdRoom struct {
	Name         string
	Participants []string
	Parent       string
}

type recRooms struct {
	mu          sync.Mutex
	created     []createdRoom
	moves       map[string]string
	deleted     []string
	disconnects []string
	failCreate  bool
	failMove    bool
}

func (r *recRooms) CreatePrivateRoom(_ context.Context, _, name string, participants []string, parent string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return "", errors.New("missing permissions")
	}
	r.created = append(r.created, createdRoom{Name: name, Participants: participants, Parent: parent})
	return fmt.Sprintf("room-%d", len(r.created)), nil
}

func (r *recRooms) MovePresence(_ context.Context, _, userID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMove {
		return errors.New("user not in voice")
	}
	if r.moves == nil {
		r.moves = map[string]string{}
	}
	r.moves[userID] = room
	return nil
}

func (r *recRooms) CategoryOf(_ context.Context, _, room string) (string, error) {
	return "cat-" + room, nil
}

func (r *recRooms) DeleteRoom(_ context.Context, _, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, room)
	return nil
}

func (r *recRooms) Disconnect(_ context.Context, _, userID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disconnects = append(r.disconnects, userID)
	return nil
}

type permission struct {
	Channel string
	Role    string
	Allowed bool
}

type recRoles struct {
	mu      sync.Mutex
	granted []string
	revoked []string
	perms   []permission
}

func (r *recRoles) Grant(_ context.Context, _, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.granted = append(r.granted, userID+":"+role)
	return nil
}

func (r *recRoles) Revoke(_ context.Context, _, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked = append(r.revoked, userID+":"+role)
	return nil
}

func (r *recRoles) SetConnectPermission(_ context.Context, _, channel, role string, allowed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.perms = append(r.perms, permission{Channel: channel, Role: role, Allowed: allowed})
	return nil
}

type recEvents struct {
	mu     sync.Mutex
	events []queue.Event
}

func (e *recEvents) Publish(ev queue.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *recEvents) types() []queue.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]queue.EventType, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}
