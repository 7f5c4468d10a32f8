package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"tutorq/internal/models"
	"tutorq/internal/queue"
)

const (
	colorInfo    = 0x5865F2
	colorSuccess = 0x57F287
	colorWarning = 0xFEE75C
	colorError   = 0xED4245
)

// Notifier sends direct messages and writes to the queue log channels.
type Notifier struct {
	session *discordgo.Session
}

var _ queue.Notifier = (*Notifier)(nil)

func (n *Notifier) NotifyUser(ctx context.Context, userID, message string) error {
	ch, err := n.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM with %s: %w", userID, err)
	}
	if _, err := n.session.ChannelMessageSend(ch.ID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM to %s: %w", userID, err)
	}
	return nil
}

// LogPrivate is a no-op for queues without a private log channel.
func (n *Notifier) LogPrivate(ctx context.Context, q *models.Queue, message string) error {
	ref := models.Ref(q.PrivateLogRef)
	if ref == "" {
		return nil
	}
	_, err := n.session.ChannelMessageSend(ref, message, discordgo.WithContext(ctx))
	return err
}

func (n *Notifier) LogPublic(ctx context.Context, q *models.Queue, message string, severity queue.Severity) error {
	ref := models.Ref(q.PublicLogRef)
	if ref == "" {
		return nil
	}
	_, err := n.session.ChannelMessageSendEmbed(ref, logEmbed(q.Name, message, severity, time.Now()), discordgo.WithContext(ctx))
	return err
}

func logEmbed(title, message string, severity queue.Severity, at time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: message,
		Color:       severityColor(severity),
		Timestamp:   at.Format(time.RFC3339),
	}
}

func severityColor(s queue.Severity) int {
	switch s {
	case queue.SeveritySuccess:
		return colorSuccess
	case queue.SeverityWarning:
		return colorWarning
	case queue.SeverityError:
		return colorError
	}
	return colorInfo
}
