package discord

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"tutorq/internal/models"
	"tutorq/internal/queue"
)

// Queues is the part of the queue service the waiting-room listener drives.
type Queues interface {
	QueueByWaitingRoom(ctx context.Context, guildID, roomRef string) (*models.Queue, error)
	JoinQueue(ctx context.Context, guildID, queueName, userID string) (*models.QueueMember, error)
	LeaveQueue(ctx context.Context, guildID, queueName, userID string) error
}

// Listener joins users to a queue when they enter its waiting room and
// starts their grace period when they leave it.
type Listener struct {
	queues Queues
}

// voiceEventTimeout bounds the queue calls made for one voice state update.
const voiceEventTimeout = 10 * time.Second

func (l *Listener) voiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if vs.Member != nil && vs.Member.User != nil && vs.Member.User.Bot {
		return
	}
	prev := ""
	if vs.BeforeUpdate != nil {
		prev = vs.BeforeUpdate.ChannelID
	}

	ctx, cancel := context.WithTimeout(context.Background(), voiceEventTimeout)
	defer cancel()

	l.handleMove(ctx, vs.GuildID, vs.UserID, prev, vs.ChannelID)
}

func (l *Listener) handleMove(ctx context.Context, guildID, userID, from, to string) {
	if from == to {
		return
	}
	if from != "" {
		if q := l.waitingRoomQueue(ctx, guildID, from); q != nil {
			logOutcome("выход из", q.Name, userID, l.queues.LeaveQueue(ctx, guildID, q.Name, userID))
		}
	}
	if to != "" {
		if q := l.waitingRoomQueue(ctx, guildID, to); q != nil {
			_, err := l.queues.JoinQueue(ctx, guildID, q.Name, userID)
			logOutcome("вступление в", q.Name, userID, err)
		}
	}
}

func (l *Listener) waitingRoomQueue(ctx context.Context, guildID, roomRef string) *models.Queue {
	q, err := l.queues.QueueByWaitingRoom(ctx, guildID, roomRef)
	if err != nil {
		if !errors.Is(err, queue.ErrQueueNotFound) {
			log.Printf("[ERROR] Ошибка поиска очереди по комнате ожидания %s: %v", roomRef, err)
		}
		return nil
	}
	return q
}

func logOutcome(action, queueName, userID string, err error) {
	switch {
	case err == nil:
		log.Printf("[INFO] %s: %s очередь %s через комнату ожидания", userID, action, queueName)
	case queue.KindOf(err) == queue.KindOperationFailed || queue.KindOf(err) == queue.KindUnknown:
		log.Printf("[ERROR] Ошибка: %s очередь %s для %s: %v", action, queueName, userID, err)
	default:
		log.Printf("[INFO] Отказано: %s очередь %s для %s: %v", action, queueName, userID, err)
	}
}
