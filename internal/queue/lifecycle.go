package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tutorq/internal/models"
	"tutorq/internal/tasks"
)

// JoinQueue adds userID to the queue. A user who left less than a grace
// period ago gets their old row, and therefore their old position, back.
func (s *Service) JoinQueue(ctx context.Context, guildID, queueName, userID string) (*models.QueueMember, error) {
	var (
		q        *models.Queue
		member   *models.QueueMember
		rejoined bool
		pos      int
	)

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, queueName)
		if err != nil {
			return err
		}
		if q.IsLocked {
			return ErrQueueLocked.with(fmt.Sprintf("queue %q is locked", q.Name), nil)
		}

		if _, err := tx.GetActiveSession(ctx, guildID, userID); err == nil {
			return ErrTutorCannotJoinQueue
		} else if !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to check sessions", err)
		}

		if _, err := tx.GetActiveMember(ctx, q.ID, userID); err == nil {
			return ErrAlreadyInQueue
		} else if !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to check membership", err)
		}

		now := s.clock.Now()
		left, err := tx.GetLeftMember(ctx, q.ID, userID)
		switch {
		case err == nil && now.Sub(*left.LeftAt) < s.grace:
			if err := tx.SetMemberLeftAt(ctx, left.ID, nil); err != nil {
				if errors.Is(err, ErrDuplicate) {
					return ErrAlreadyInQueue
				}
				return storeFailure("failed to restore membership", err)
			}
			left.LeftAt = nil
			member = left
			rejoined = true
			pos, err = rankIn(ctx, tx, q.ID, userID)
			return err
		case err == nil:
			if err := tx.DeleteMember(ctx, left.ID); err != nil {
				return storeFailure("failed to purge stale membership", err)
			}
		case !errors.Is(err, ErrRecordNotFound):
			return storeFailure("failed to check previous membership", err)
		}

		member = &models.QueueMember{QueueID: q.ID, UserID: userID, JoinedAt: now}
		if err := tx.CreateMember(ctx, member); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return ErrAlreadyInQueue
			}
			return storeFailure("failed to join queue", err)
		}
		pos, err = rankIn(ctx, tx, q.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		evType, verb := EventMemberJoined, "joined"
		if rejoined {
			evType, verb = EventMemberRejoined, "rejoined"
		}
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("%s %s **%s** (position %d)", mention(userID), verb, q.Name, pos)))
		warnIf("уведомление о вступлении", s.notifier.NotifyUser(ctx, userID, fmt.Sprintf("You %s the **%s** queue. Your position is %d.", verb, q.Name, pos)))
		s.publish(Event{
			Type:      evType,
			GuildID:   q.GuildID,
			QueueID:   q.ID,
			QueueName: q.Name,
			UserID:    userID,
			Data:      map[string]interface{}{"position": pos},
		})
	})
	return member, nil
}

// LeaveQueue soft-deletes the user's membership, starting the grace period,
// and schedules the reaper that purges the row if they do not come back.
func (s *Service) LeaveQueue(ctx context.Context, guildID, queueName, userID string) error {
	var q *models.Queue

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, queueName)
		if err != nil {
			return err
		}

		m, err := tx.GetActiveMember(ctx, q.ID, userID)
		if errors.Is(err, ErrRecordNotFound) {
			return ErrNotInQueue
		}
		if err != nil {
			return storeFailure("failed to load membership", err)
		}

		// Only one row may sit in its grace period.
		if old, err := tx.GetLeftMember(ctx, q.ID, userID); err == nil {
			if err := tx.DeleteMember(ctx, old.ID); err != nil {
				return storeFailure("failed to purge stale membership", err)
			}
		} else if !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to check previous membership", err)
		}

		now := s.clock.Now()
		if err := tx.SetMemberLeftAt(ctx, m.ID, &now); err != nil {
			return storeFailure("failed to leave queue", err)
		}

		task := tasks.NewTask(TaskReapMember, now.Add(s.grace), map[string]string{
			"queue_id": strconv.FormatUint(uint64(q.ID), 10),
			"user_id":  userID,
		})
		if err := s.tasks.Schedule(ctx, task); err != nil {
			return storeFailure("failed to schedule membership expiry", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		if room := models.Ref(q.WaitingRoomRef); room != "" && s.rooms != nil {
			warnIf("отключение от комнаты ожидания", s.rooms.Disconnect(ctx, guildID, userID, room))
		}
		warnIf("уведомление о выходе", s.notifier.NotifyUser(ctx, userID, fmt.Sprintf(
			"You left the **%s** queue. Rejoin within %s to keep your place.", q.Name, s.grace)))
		s.publish(Event{Type: EventMemberLeft, GuildID: q.GuildID, QueueID: q.ID, QueueName: q.Name, UserID: userID})
	})
	return nil
}

// ReapMember purges the user's soft-deleted row if it is still stale. It is a
// no-op when the user rejoined or when the row left less than a grace period
// ago. Reports whether a row was removed.
func (s *Service) ReapMember(ctx context.Context, queueID uint, userID string) (bool, error) {
	var q *models.Queue

	err := s.store.WithTx(ctx, func(tx Store) error {
		m, err := tx.GetLeftMember(ctx, queueID, userID)
		if errors.Is(err, ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return storeFailure("failed to load membership", err)
		}
		if s.clock.Now().Sub(*m.LeftAt) < s.grace {
			return nil
		}
		if err := tx.DeleteMember(ctx, m.ID); err != nil {
			return storeFailure("failed to purge membership", err)
		}
		q, err = tx.GetQueueByID(ctx, queueID)
		if err != nil && !errors.Is(err, ErrRecordNotFound) {
			return storeFailure("failed to load queue", err)
		}
		if q == nil {
			q = &models.Queue{ID: queueID}
		}
		return nil
	})
	if err != nil || q == nil {
		return false, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("%s left **%s**", mention(userID), q.Name)))
		s.publish(Event{Type: EventMemberReaped, GuildID: q.GuildID, QueueID: q.ID, QueueName: q.Name, UserID: userID})
	})
	return true, nil
}

// HandleReapTask adapts ReapMember to the delayed-task runner.
func (s *Service) HandleReapTask(ctx context.Context, t tasks.Task) error {
	id, err := strconv.ParseUint(t.Payload["queue_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("bad queue_id in task %s: %w", t.ID, err)
	}
	_, err = s.ReapMember(ctx, uint(id), t.Payload["user_id"])
	return err
}

// GetQueuePosition returns the user's 1-based rank among active members, or
// 0 when the user is not an active member.
func (s *Service) GetQueuePosition(ctx context.Context, queueID uint, userID string) (int, error) {
	return rankIn(ctx, s.store, queueID, userID)
}

func rankIn(ctx context.Context, st Store, queueID uint, userID string) (int, error) {
	members, err := st.ListActiveMembers(ctx, queueID)
	if err != nil {
		return 0, storeFailure("failed to list members", err)
	}
	for i, m := range members {
		if m.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, nil
}

// SetQueueLockState locks or unlocks a queue. Asking for the current state
// fails with ErrAlreadyInState and writes nothing.
func (s *Service) SetQueueLockState(ctx context.Context, guildID, queueName string, locked bool) (*models.Queue, error) {
	var q *models.Queue

	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, queueName)
		if err != nil {
			return err
		}
		if q.IsLocked == locked {
			return alreadyInState(locked)
		}
		q.IsLocked = locked
		if err := tx.SaveQueue(ctx, q); err != nil {
			return storeFailure("failed to update queue", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := *q
	s.afterCommit(ctx, func(ctx context.Context) {
		if room := models.Ref(snapshot.WaitingRoomRef); room != "" && s.verifiedRole != "" {
			warnIf("права комнаты ожидания", s.roles.SetConnectPermission(ctx, guildID, room, s.verifiedRole, !locked))
		}

		state, severity, evType := "unlocked", SeveritySuccess, EventQueueUnlocked
		if locked {
			state, severity, evType = "locked", SeverityError, EventQueueLocked
		}
		warnIf("публичный журнал", s.notifier.LogPublic(ctx, &snapshot, fmt.Sprintf("The **%s** queue is now %s.", snapshot.Name, state), severity))
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, &snapshot, fmt.Sprintf("Queue **%s** %s at %s", snapshot.Name, state, s.clock.Now().In(s.loc).Format(time.RFC3339))))
		s.publish(Event{Type: evType, GuildID: snapshot.GuildID, QueueID: snapshot.ID, QueueName: snapshot.Name})
	})
	return q, nil
}
