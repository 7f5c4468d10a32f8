package queue

import (
	"context"
	"errors"
	"time"

	"tutorq/internal/models"
)

// Errors a Store returns for missing rows and unique-constraint violations.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
)

// Store is the persistence contract of the core. Implementations enforce
// (guildID, name) uniqueness on queues, (queueID, dayOfWeek) on schedules,
// one active membership per (queueID, userID) and one open session per
// (guildID, tutorID), reporting violations as ErrDuplicate.
type Store interface {
	// WithTx runs fn inside one transaction; any error rolls back every write.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateQueue(ctx context.Context, q *models.Queue) error
	GetQueue(ctx context.Context, guildID, name string) (*models.Queue, error)
	GetQueueByID(ctx context.Context, id uint) (*models.Queue, error)
	GetQueueByWaitingRoom(ctx context.Context, guildID, roomRef string) (*models.Queue, error)
	ListQueues(ctx context.Context, guildID string) ([]models.Queue, error)
	ListScheduledQueues(ctx context.Context) ([]models.Queue, error)
	SaveQueue(ctx context.Context, q *models.Queue) error
	DeleteQueue(ctx context.Context, id uint) error

	CreateMember(ctx context.Context, m *models.QueueMember) error
	GetActiveMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error)
	GetLeftMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error)
	ListActiveMembers(ctx context.Context, queueID uint) ([]models.QueueMember, error)
	ListActiveMemberships(ctx context.Context, guildID, userID string) ([]models.QueueMember, error)
	SetMemberLeftAt(ctx context.Context, id uint, leftAt *time.Time) error
	DeleteMember(ctx context.Context, id uint) error
	DeleteMembers(ctx context.Context, queueID uint) (int64, error)

	UpsertSchedule(ctx context.Context, s *models.QueueSchedule) error
	GetSchedule(ctx context.Context, queueID uint, day int) (*models.QueueSchedule, error)
	ListSchedules(ctx context.Context, queueID uint) ([]models.QueueSchedule, error)
	DeleteSchedule(ctx context.Context, queueID uint, day int) error

	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id uint) (*models.Session, error)
	GetActiveSession(ctx context.Context, guildID, tutorID string) (*models.Session, error)
	EndSession(ctx context.Context, id uint, at time.Time) error

	CreateSessionStudent(ctx context.Context, s *models.SessionStudent) error
	ListOpenSessionStudents(ctx context.Context, sessionID uint) ([]models.SessionStudent, error)
	EndSessionStudent(ctx context.Context, id uint, at time.Time) error
}
