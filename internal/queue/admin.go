package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutorq/internal/models"
)

// MemberPosition pairs an active membership with its 1-based rank.
type MemberPosition struct {
	Member   models.QueueMember
	Position int
}

// QueuePosition pairs a queue with a user's rank in it.
type QueuePosition struct {
	Queue    models.Queue
	Position int
}

// ChannelUpdate changes queue channel references. A nil field is left as is,
// an empty string clears the reference.
type ChannelUpdate struct {
	WaitingRoom *string
	PrivateLog  *string
	PublicLog   *string
}

func (s *Service) CreateQueue(ctx context.Context, guildID, name, description string) (*models.Queue, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	q := &models.Queue{
		GuildID:     guildID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.store.CreateQueue(ctx, q); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrQueueExists.with(fmt.Sprintf("queue %q already exists", name), nil)
		}
		return nil, storeFailure("failed to create queue", err)
	}
	return q, nil
}

// DeleteQueue removes a queue together with its members and schedules.
func (s *Service) DeleteQueue(ctx context.Context, guildID, name string) error {
	return s.store.WithTx(ctx, func(tx Store) error {
		q, err := s.queueByName(ctx, tx, guildID, name)
		if err != nil {
			return err
		}
		if err := tx.DeleteQueue(ctx, q.ID); err != nil {
			return storeFailure("failed to delete queue", err)
		}
		return nil
	})
}

func (s *Service) GetQueue(ctx context.Context, guildID, name string) (*models.Queue, error) {
	return s.queueByName(ctx, s.store, guildID, name)
}

func (s *Service) ListQueues(ctx context.Context, guildID string) ([]models.Queue, error) {
	queues, err := s.store.ListQueues(ctx, guildID)
	if err != nil {
		return nil, storeFailure("failed to list queues", err)
	}
	return queues, nil
}

// QueueByWaitingRoom resolves the queue whose waiting room is roomRef.
func (s *Service) QueueByWaitingRoom(ctx context.Context, guildID, roomRef string) (*models.Queue, error) {
	q, err := s.store.GetQueueByWaitingRoom(ctx, guildID, roomRef)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, ErrQueueNotFound
	}
	if err != nil {
		return nil, storeFailure("failed to load queue", err)
	}
	return q, nil
}

func (s *Service) SetQueueChannels(ctx context.Context, guildID, name string, upd ChannelUpdate) (*models.Queue, error) {
	var q *models.Queue
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, name)
		if err != nil {
			return err
		}
		apply := func(dst **string, v *string) {
			if v == nil {
				return
			}
			if *v == "" {
				*dst = nil
				return
			}
			ref := *v
			*dst = &ref
		}
		apply(&q.WaitingRoomRef, upd.WaitingRoom)
		apply(&q.PrivateLogRef, upd.PrivateLog)
		apply(&q.PublicLogRef, upd.PublicLog)
		if err := tx.SaveQueue(ctx, q); err != nil {
			return storeFailure("failed to update queue", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ClearQueue removes every membership row, including rows in their grace
// period, and reports how many were removed.
func (s *Service) ClearQueue(ctx context.Context, guildID, name string) (int64, error) {
	var (
		q       *models.Queue
		removed int64
	)
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		q, err = s.queueByName(ctx, tx, guildID, name)
		if err != nil {
			return err
		}
		removed, err = tx.DeleteMembers(ctx, q.ID)
		if err != nil {
			return storeFailure("failed to clear queue", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		warnIf("закрытый журнал", s.notifier.LogPrivate(ctx, q, fmt.Sprintf("Queue **%s** cleared (%d removed)", q.Name, removed)))
	})
	return removed, nil
}

// ListMembers returns active members of a queue in queue order.
func (s *Service) ListMembers(ctx context.Context, guildID, name string) (*models.Queue, []MemberPosition, error) {
	q, err := s.queueByName(ctx, s.store, guildID, name)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.ListActiveMembers(ctx, q.ID)
	if err != nil {
		return nil, nil, storeFailure("failed to list members", err)
	}
	out := make([]MemberPosition, 0, len(members))
	for i, m := range members {
		out = append(out, MemberPosition{Member: m, Position: i + 1})
	}
	return q, out, nil
}

// UserQueues lists the queues of a guild in which the user is active.
func (s *Service) UserQueues(ctx context.Context, guildID, userID string) ([]QueuePosition, error) {
	memberships, err := s.store.ListActiveMemberships(ctx, guildID, userID)
	if err != nil {
		return nil, storeFailure("failed to list memberships", err)
	}
	out := make([]QueuePosition, 0, len(memberships))
	for _, m := range memberships {
		q, err := s.store.GetQueueByID(ctx, m.QueueID)
		if err != nil {
			return nil, storeFailure("failed to load queue", err)
		}
		pos, err := s.GetQueuePosition(ctx, m.QueueID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, QueuePosition{Queue: *q, Position: pos})
	}
	return out, nil
}
