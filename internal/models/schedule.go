package models

// QueueSchedule is the weekly open window of a queue for one weekday.
type QueueSchedule struct {
	ID        uint   `gorm:"primaryKey"`
	QueueID   uint   `gorm:"uniqueIndex:idx_schedule_queue_day;not null"`
	DayOfWeek int    `gorm:"uniqueIndex:idx_schedule_queue_day;not null"` // 0 = воскресенье
	StartTime string `gorm:"size:5;not null"`                             // "HH:mm"
	EndTime   string `gorm:"size:5;not null"`                             // "HH:mm"
}
