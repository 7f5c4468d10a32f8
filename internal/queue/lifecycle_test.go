package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorq/internal/queue"
)

func TestJoinQueueAssignsPositions(t *testing.T) {
	f := newFixture(t)
	q := f.newQueue(t, "help")

	f.join(t, "help", "u1")
	f.clock.Advance(time.Second)
	f.join(t, "help", "u2")
	f.svc.Wait()

	assert.Equal(t, 1, f.position(t, q, "u1"))
	assert.Equal(t, 2, f.position(t, q, "u2"))
	assert.Equal(t, 0, f.position(t, q, "u3"))
	assert.Equal(t, []queue.EventType{queue.EventMemberJoined, queue.EventMemberJoined}, f.events.types())
	assert.Len(t, f.notes.dmsTo("u2"), 1)
}

func TestJoinQueueErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newQueue(t, "help")
	f.join(t, "help", "u1")

	_, err := f.svc.JoinQueue(ctx, guild, "help", "u1")
	assert.ErrorIs(t, err, queue.ErrAlreadyInQueue)
	assert.Equal(t, queue.KindConflict, queue.KindOf(err))

	_, err = f.svc.JoinQueue(ctx, guild, "missing", "u1")
	assert.ErrorIs(t, err, queue.ErrQueueNotFound)
	assert.Equal(t, queue.KindNotFound, queue.KindOf(err))

	_, err = f.svc.JoinQueue(ctx, "other-guild", "help", "u1")
	assert.ErrorIs(t, err, queue.ErrQueueNotFound)
}

func TestJoinLockedQueueWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")
	_, err := f.svc.SetQueueLockState(ctx, guild, "help", true)
	require.NoError(t, err)
	writes := f.store.Writes()

	_, err = f.svc.JoinQueue(ctx, guild, "help", "u1")
	assert.ErrorIs(t, err, queue.ErrQueueLocked)
	assert.Equal(t, queue.KindLocked, queue.KindOf(err))
	assert.Equal(t, writes, f.store.Writes())
	assert.Equal(t, 0, f.position(t, q, "u1"))
}

func TestTutorWithSessionCannotJoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newQueue(t, "help")
	f.newQueue(t, "labs")
	_, err := f.svc.CreateSession(ctx, guild, "labs", "t1")
	require.NoError(t, err)

	_, err = f.svc.JoinQueue(ctx, guild, "help", "t1")
	assert.ErrorIs(t, err, queue.ErrTutorCannotJoinQueue)
	assert.Equal(t, queue.KindPolicyViolation, queue.KindOf(err))
}

func TestRejoinWithinGraceKeepsPlace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")

	first := f.join(t, "help", "u1")
	f.clock.Advance(time.Second)
	f.join(t, "help", "u2")

	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))
	assert.Equal(t, 0, f.position(t, q, "u1"))
	assert.Equal(t, 1, f.position(t, q, "u2"))

	f.clock.Advance(30 * time.Second)
	again := f.join(t, "help", "u1")
	f.svc.Wait()

	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.JoinedAt.Equal(again.JoinedAt))
	assert.Equal(t, 1, f.position(t, q, "u1"))
	assert.Equal(t, 2, f.position(t, q, "u2"))
	assert.Contains(t, f.events.types(), queue.EventMemberRejoined)
}

func TestRejoinAfterGraceGoesToBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")

	first := f.join(t, "help", "u1")
	f.clock.Advance(time.Second)
	f.join(t, "help", "u2")

	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))
	f.clock.Advance(61 * time.Second)
	again := f.join(t, "help", "u1")

	assert.NotEqual(t, first.ID, again.ID)
	assert.True(t, again.JoinedAt.Equal(f.clock.Now()))
	assert.Equal(t, 2, f.position(t, q, "u1"))

	_, err := f.store.GetLeftMember(ctx, q.ID, "u1")
	assert.ErrorIs(t, err, queue.ErrRecordNotFound)
}

func TestLeaveQueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newQueue(t, "help")

	err := f.svc.LeaveQueue(ctx, guild, "help", "u1")
	assert.ErrorIs(t, err, queue.ErrNotInQueue)

	f.join(t, "help", "u1")
	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))
	f.svc.Wait()

	f.rooms.mu.Lock()
	assert.Equal(t, []string{"u1"}, f.rooms.disconnects)
	f.rooms.mu.Unlock()
	assert.Contains(t, f.events.types(), queue.EventMemberLeft)

	err = f.svc.LeaveQueue(ctx, guild, "help", "u1")
	assert.ErrorIs(t, err, queue.ErrNotInQueue)
}

func TestReaperPurgesExpiredMembership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")
	f.join(t, "help", "u1")
	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))

	f.clock.Advance(30 * time.Second)
	ran, err := f.runner.RunDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, ran)

	f.clock.Advance(30 * time.Second)
	ran, err = f.runner.RunDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	f.svc.Wait()

	_, err = f.store.GetLeftMember(ctx, q.ID, "u1")
	assert.ErrorIs(t, err, queue.ErrRecordNotFound)
	assert.Contains(t, f.events.types(), queue.EventMemberReaped)
}

func TestReaperIgnoresRejoinedMember(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")
	f.join(t, "help", "u1")
	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))

	f.clock.Advance(10 * time.Second)
	f.join(t, "help", "u1")
	f.clock.Advance(time.Minute)

	ran, err := f.runner.RunDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ran)

	assert.Equal(t, 1, f.position(t, q, "u1"))
	removed, err := f.svc.ReapMember(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestReaperWaitsForLatestLeave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")
	f.join(t, "help", "u1")

	// leave, rejoin and leave again: the first task fires while the
	// second leave is still inside its grace period
	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))
	f.clock.Advance(40 * time.Second)
	f.join(t, "help", "u1")
	require.NoError(t, f.svc.LeaveQueue(ctx, guild, "help", "u1"))
	f.clock.Advance(20 * time.Second)

	_, err := f.runner.RunDue(ctx)
	require.NoError(t, err)

	left, err := f.store.GetLeftMember(ctx, q.ID, "u1")
	require.NoError(t, err)
	assert.NotNil(t, left.LeftAt)

	f.clock.Advance(5 * time.Second)
	f.join(t, "help", "u1")
	assert.Equal(t, 1, f.position(t, q, "u1"))
}

func TestSetQueueLockState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newQueue(t, "help")

	q, err := f.svc.SetQueueLockState(ctx, guild, "help", true)
	require.NoError(t, err)
	assert.True(t, q.IsLocked)
	f.svc.Wait()

	f.roles.mu.Lock()
	assert.Equal(t, []permission{{Channel: waitingRoom, Role: "Verified", Allowed: false}}, f.roles.perms)
	f.roles.mu.Unlock()
	f.notes.mu.Lock()
	assert.Equal(t, []queue.Severity{queue.SeverityError}, f.notes.public)
	f.notes.mu.Unlock()

	_, err = f.svc.SetQueueLockState(ctx, guild, "help", false)
	require.NoError(t, err)
	f.svc.Wait()
	assert.Equal(t, []queue.EventType{queue.EventQueueLocked, queue.EventQueueUnlocked}, f.events.types())
}

func TestSetQueueLockStateSameStateWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.newQueue(t, "help")
	writes := f.store.Writes()

	_, err := f.svc.SetQueueLockState(ctx, guild, "help", false)
	assert.ErrorIs(t, err, queue.ErrAlreadyInState)
	assert.Equal(t, queue.KindConflict, queue.KindOf(err))
	assert.Equal(t, writes, f.store.Writes())

	f.svc.Wait()
	assert.Empty(t, f.events.types())
}

func TestSideEffectFailuresDoNotFailJoin(t *testing.T) {
	f := newFixture(t)
	q := f.newQueue(t, "help")
	f.notes.fail = true

	f.join(t, "help", "u1")
	f.svc.Wait()
	assert.Equal(t, 1, f.position(t, q, "u1"))
}

func TestStoreFailureRollsBackJoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")
	f.store.FailOn("CreateMember", assert.AnError)

	_, err := f.svc.JoinQueue(ctx, guild, "help", "u1")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, queue.KindOperationFailed, queue.KindOf(err))
	assert.Equal(t, 0, f.position(t, q, "u1"))
}

func TestConcurrentJoinsAdmitOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q := f.newQueue(t, "help")

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.JoinQueue(ctx, guild, "help", "u1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
				return
			}
			assert.ErrorIs(t, err, queue.ErrAlreadyInQueue)
			rejected++
		}()
	}
	wg.Wait()
	f.svc.Wait()

	assert.Equal(t, 1, admitted)
	assert.Equal(t, workers-1, rejected)
	_, members, err := f.svc.ListMembers(ctx, guild, "help")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "u1", members[0].Member.UserID)
	assert.Equal(t, 1, f.position(t, q, "u1"))
}
