package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tutorq/internal/models"
	"tutorq/internal/queue"
)

const uniqueViolation = "23505"

// GormStore is the PostgreSQL implementation of queue.Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ queue.Store = (*GormStore)(nil)

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return queue.ErrRecordNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", queue.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return queue.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx queue.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// Queues

func (s *GormStore) CreateQueue(ctx context.Context, q *models.Queue) error {
	return mapErr(s.db.WithContext(ctx).Omit(clause.Associations).Create(q).Error)
}

func (s *GormStore) GetQueue(ctx context.Context, guildID, name string) (*models.Queue, error) {
	var q models.Queue
	err := s.db.WithContext(ctx).Where("guild_id = ? AND name = ?", guildID, name).First(&q).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &q, nil
}

func (s *GormStore) GetQueueByID(ctx context.Context, id uint) (*models.Queue, error) {
	var q models.Queue
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &q, nil
}

func (s *GormStore) GetQueueByWaitingRoom(ctx context.Context, guildID, roomRef string) (*models.Queue, error) {
	var q models.Queue
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND waiting_room_ref = ?", guildID, roomRef).
		Order("id").
		First(&q).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &q, nil
}

func (s *GormStore) ListQueues(ctx context.Context, guildID string) ([]models.Queue, error) {
	var queues []models.Queue
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).Order("name").Find(&queues).Error
	return queues, mapErr(err)
}

func (s *GormStore) ListScheduledQueues(ctx context.Context) ([]models.Queue, error) {
	var queues []models.Queue
	err := s.db.WithContext(ctx).Where("schedule_enabled = ?", true).Order("id").Find(&queues).Error
	return queues, mapErr(err)
}

func (s *GormStore) SaveQueue(ctx context.Context, q *models.Queue) error {
	return mapErr(s.db.WithContext(ctx).Omit(clause.Associations).Save(q).Error)
}

// DeleteQueue relies on ON DELETE CASCADE for members and schedules.
func (s *GormStore) DeleteQueue(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Queue{}, id))
}

// Members

func (s *GormStore) CreateMember(ctx context.Context, m *models.QueueMember) error {
	return mapErr(s.db.WithContext(ctx).Create(m).Error)
}

func (s *GormStore) GetActiveMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error) {
	var m models.QueueMember
	err := s.db.WithContext(ctx).
		Where("queue_id = ? AND user_id = ? AND left_at IS NULL", queueID, userID).
		First(&m).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (s *GormStore) GetLeftMember(ctx context.Context, queueID uint, userID string) (*models.QueueMember, error) {
	var m models.QueueMember
	err := s.db.WithContext(ctx).
		Where("queue_id = ? AND user_id = ? AND left_at IS NOT NULL", queueID, userID).
		Order("left_at DESC").
		First(&m).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (s *GormStore) ListActiveMembers(ctx context.Context, queueID uint) ([]models.QueueMember, error) {
	var members []models.QueueMember
	err := s.db.WithContext(ctx).
		Where("queue_id = ? AND left_at IS NULL", queueID).
		Order("joined_at, id").
		Find(&members).Error
	return members, mapErr(err)
}

func (s *GormStore) ListActiveMemberships(ctx context.Context, guildID, userID string) ([]models.QueueMember, error) {
	var members []models.QueueMember
	err := s.db.WithContext(ctx).
		Joins("JOIN queues ON queues.id = queue_members.queue_id").
		Where("queues.guild_id = ? AND queue_members.user_id = ? AND queue_members.left_at IS NULL", guildID, userID).
		Order("queue_members.joined_at").
		Find(&members).Error
	return members, mapErr(err)
}

func (s *GormStore) SetMemberLeftAt(ctx context.Context, id uint, leftAt *time.Time) error {
	return affected(s.db.WithContext(ctx).Model(&models.QueueMember{}).Where("id = ?", id).Update("left_at", leftAt))
}

func (s *GormStore) DeleteMember(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.QueueMember{}, id))
}

func (s *GormStore) DeleteMembers(ctx context.Context, queueID uint) (int64, error) {
	res := s.db.WithContext(ctx).Where("queue_id = ?", queueID).Delete(&models.QueueMember{})
	return res.RowsAffected, mapErr(res.Error)
}

// Schedules

func (s *GormStore) UpsertSchedule(ctx context.Context, sched *models.QueueSchedule) error {
	return mapErr(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "queue_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time"}),
	}).Create(sched).Error)
}

func (s *GormStore) GetSchedule(ctx context.Context, queueID uint, day int) (*models.QueueSchedule, error) {
	var sched models.QueueSchedule
	err := s.db.WithContext(ctx).Where("queue_id = ? AND day_of_week = ?", queueID, day).First(&sched).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &sched, nil
}

func (s *GormStore) ListSchedules(ctx context.Context, queueID uint) ([]models.QueueSchedule, error) {
	var scheds []models.QueueSchedule
	err := s.db.WithContext(ctx).Where("queue_id = ?", queueID).Order("day_of_week").Find(&scheds).Error
	return scheds, mapErr(err)
}

func (s *GormStore) DeleteSchedule(ctx context.Context, queueID uint, day int) error {
	return affected(s.db.WithContext(ctx).
		Where("queue_id = ? AND day_of_week = ?", queueID, day).
		Delete(&models.QueueSchedule{}))
}

// Sessions

func (s *GormStore) CreateSession(ctx context.Context, sess *models.Session) error {
	return mapErr(s.db.WithContext(ctx).Omit(clause.Associations).Create(sess).Error)
}

func (s *GormStore) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).First(&sess, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &sess, nil
}

func (s *GormStore) GetActiveSession(ctx context.Context, guildID, tutorID string) (*models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND tutor_id = ? AND end_time IS NULL", guildID, tutorID).
		First(&sess).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &sess, nil
}

func (s *GormStore) EndSession(ctx context.Context, id uint, at time.Time) error {
	return affected(s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND end_time IS NULL", id).
		Update("end_time", at))
}

func (s *GormStore) CreateSessionStudent(ctx context.Context, st *models.SessionStudent) error {
	return mapErr(s.db.WithContext(ctx).Create(st).Error)
}

func (s *GormStore) ListOpenSessionStudents(ctx context.Context, sessionID uint) ([]models.SessionStudent, error) {
	var out []models.SessionStudent
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND end_time IS NULL", sessionID).
		Order("id").
		Find(&out).Error
	return out, mapErr(err)
}

func (s *GormStore) EndSessionStudent(ctx context.Context, id uint, at time.Time) error {
	return affected(s.db.WithContext(ctx).Model(&models.SessionStudent{}).
		Where("id = ? AND end_time IS NULL", id).
		Update("end_time", at))
}
