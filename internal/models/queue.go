package models

import (
	"time"
)

type Queue struct {
	ID                   uint   `gorm:"primaryKey"`
	GuildID              string `gorm:"uniqueIndex:idx_queue_guild_name;not null"`
	Name                 string `gorm:"uniqueIndex:idx_queue_guild_name;not null"`
	Description          string
	IsLocked             bool    `gorm:"not null;default:false"`
	WaitingRoomRef       *string `gorm:"index"` // голосовой канал ожидания
	PrivateLogRef        *string
	PublicLogRef         *string
	ScheduleEnabled      bool `gorm:"not null;default:false"`
	ScheduleShiftMinutes int  `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Members   []QueueMember   `gorm:"constraint:OnDelete:CASCADE"`
	Schedules []QueueSchedule `gorm:"constraint:OnDelete:CASCADE"`
}

// Ref returns the dereferenced value of an optional channel reference.
func Ref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// QueueMember is a place in a queue. LeftAt != nil marks a row inside the
// rejoin grace period; at most one row per (queue, user) has LeftAt == nil.
type QueueMember struct {
	ID       uint       `gorm:"primaryKey"`
	QueueID  uint       `gorm:"uniqueIndex:idx_member_active,where:left_at IS NULL;index;not null"`
	UserID   string     `gorm:"uniqueIndex:idx_member_active,where:left_at IS NULL;index;not null"`
	JoinedAt time.Time  `gorm:"index;not null"`
	LeftAt   *time.Time // время выхода; nil у активного участника
}

func (m QueueMember) Active() bool {
	return m.LeftAt == nil
}
