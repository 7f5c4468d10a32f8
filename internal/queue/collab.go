package queue

import (
	"context"
	"time"

	"tutorq/internal/models"
)

// Severity colours public log entries.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier delivers messages to users and queue log channels. Every call is
// best-effort from the core's point of view.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, message string) error
	LogPrivate(ctx context.Context, q *models.Queue, message string) error
	LogPublic(ctx context.Context, q *models.Queue, message string, severity Severity) error
}

// RoomProvisioner creates and tears down private session rooms and moves
// people between them.
type RoomProvisioner interface {
	CreatePrivateRoom(ctx context.Context, guildID, name string, participantIDs []string, parentRef string) (string, error)
	MovePresence(ctx context.Context, guildID, userID, roomRef string) error
	// CategoryOf returns the grouping parent of a room, or "" if it has none.
	CategoryOf(ctx context.Context, guildID, roomRef string) (string, error)
	DeleteRoom(ctx context.Context, guildID, roomRef string) error
	// Disconnect drops the user from voice only if they are in fromRoomRef.
	Disconnect(ctx context.Context, guildID, userID, fromRoomRef string) error
}

// RolePermissionGrantor manages roles and channel permission overrides.
type RolePermissionGrantor interface {
	Grant(ctx context.Context, guildID, userID, roleRef string) error
	Revoke(ctx context.Context, guildID, userID, roleRef string) error
	SetConnectPermission(ctx context.Context, guildID, channelRef, roleRef string, allowed bool) error
}

type EventType string

const (
	EventMemberJoined   EventType = "member_joined"
	EventMemberRejoined EventType = "member_rejoined"
	EventMemberLeft     EventType = "member_left"
	EventMemberReaped   EventType = "member_reaped"
	EventMemberPicked   EventType = "member_picked"
	EventQueueLocked    EventType = "queue_locked"
	EventQueueUnlocked  EventType = "queue_unlocked"
	EventSessionStarted EventType = "session_started"
	EventSessionEnded   EventType = "session_ended"
)

// Event describes a committed state change.
type Event struct {
	Type      EventType              `json:"event_type"`
	GuildID   string                 `json:"guild_id"`
	QueueID   uint                   `json:"queue_id"`
	QueueName string                 `json:"queue_name"`
	UserID    string                 `json:"user_id,omitempty"`
	At        time.Time              `json:"at"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventPublisher receives committed state changes, e.g. for live dashboards.
type EventPublisher interface {
	Publish(ev Event)
}

// NopNotifier discards everything.
type NopNotifier struct{}

func (NopNotifier) NotifyUser(context.Context, string, string) error                 { return nil }
func (NopNotifier) LogPrivate(context.Context, *models.Queue, string) error          { return nil }
func (NopNotifier) LogPublic(context.Context, *models.Queue, string, Severity) error { return nil }

// NopGrantor ignores every role and permission change.
type NopGrantor struct{}

func (NopGrantor) Grant(context.Context, string, string, string) error                      { return nil }
func (NopGrantor) Revoke(context.Context, string, string, string) error                     { return nil }
func (NopGrantor) SetConnectPermission(context.Context, string, string, string, bool) error { return nil }
