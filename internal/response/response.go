package response

import "time"

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: QUEUE_LOCKED
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: queue "help" is locked
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	Details string `json:"details,omitempty"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type QueueResponse struct {
	ID                   uint    `json:"id"`
	GuildID              string  `json:"guild_id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	IsLocked             bool    `json:"is_locked"`
	WaitingRoom          *string `json:"waiting_room,omitempty"`
	PrivateLog           *string `json:"private_log,omitempty"`
	PublicLog            *string `json:"public_log,omitempty"`
	ScheduleEnabled      bool    `json:"schedule_enabled"`
	ScheduleShiftMinutes int     `json:"schedule_shift_minutes"`
}

type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Position int       `json:"position"`
	JoinedAt time.Time `json:"joined_at"`
}

type PositionResponse struct {
	Queue    string `json:"queue"`
	UserID   string `json:"user_id"`
	Position int    `json:"position" example:"3"`
}

type UserQueueResponse struct {
	Queue    QueueResponse `json:"queue"`
	Position int           `json:"position"`
}

type ScheduleResponse struct {
	DayOfWeek int    `json:"day_of_week" example:"1"`
	StartTime string `json:"start_time" example:"08:00"`
	EndTime   string `json:"end_time" example:"20:00"`
}

type SessionResponse struct {
	ID        uint       `json:"id"`
	QueueID   uint       `json:"queue_id"`
	TutorID   string     `json:"tutor_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type PickResponse struct {
	SessionID uint   `json:"session_id"`
	Queue     string `json:"queue"`
	StudentID string `json:"student_id"`
	Room      string `json:"room"`
}

type ClearResponse struct {
	Removed int64 `json:"removed"`
}
