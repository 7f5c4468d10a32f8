package models

import "time"

// Session is a tutor's helping period. GuildID is denormalised from the queue
// so the store can enforce one open session per (guild, tutor).
type Session struct {
	ID        uint       `gorm:"primaryKey"`
	GuildID   string     `gorm:"uniqueIndex:idx_session_active,where:end_time IS NULL;not null"`
	QueueID   uint       `gorm:"index;not null"`
	TutorID   string     `gorm:"uniqueIndex:idx_session_active,where:end_time IS NULL;not null"`
	StartTime time.Time  `gorm:"not null"`
	EndTime   *time.Time // nil: сессия активна

	Students []SessionStudent `gorm:"constraint:OnDelete:CASCADE"`
}

func (s Session) Active() bool {
	return s.EndTime == nil
}

// SessionStudent records a student pulled into a session and the private room
// created for them.
type SessionStudent struct {
	ID        uint       `gorm:"primaryKey"`
	SessionID uint       `gorm:"index;not null"`
	StudentID string     `gorm:"index;not null"`
	ChannelID string     `gorm:"not null"`
	PickedAt  time.Time  `gorm:"not null"`
	EndTime   *time.Time // комната удалена
}
