package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"tutorq/internal/queue"
)

const (
	roomAccess = discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect
	roomMember = roomAccess | discordgo.PermissionVoiceSpeak
)

// Rooms provisions private voice channels for tutoring sessions.
type Rooms struct {
	session *discordgo.Session
}

var _ queue.RoomProvisioner = (*Rooms)(nil)

func (r *Rooms) CreatePrivateRoom(ctx context.Context, guildID, name string, participantIDs []string, parentRef string) (string, error) {
	ch, err := r.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildVoice,
		ParentID:             parentRef,
		PermissionOverwrites: privateOverwrites(guildID, participantIDs),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create channel %s: %w", name, err)
	}
	return ch.ID, nil
}

// privateOverwrites hides the room from @everyone, whose role ID equals the
// guild ID, and opens it to the participants.
func privateOverwrites(guildID string, participantIDs []string) []*discordgo.PermissionOverwrite {
	out := []*discordgo.PermissionOverwrite{{
		ID:   guildID,
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: roomAccess,
	}}
	for _, id := range participantIDs {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: roomMember,
		})
	}
	return out
}

func (r *Rooms) MovePresence(ctx context.Context, guildID, userID, roomRef string) error {
	return r.session.GuildMemberMove(guildID, userID, &roomRef, discordgo.WithContext(ctx))
}

func (r *Rooms) CategoryOf(ctx context.Context, guildID, roomRef string) (string, error) {
	ch, err := r.session.Channel(roomRef, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return ch.ParentID, nil
}

func (r *Rooms) DeleteRoom(ctx context.Context, guildID, roomRef string) error {
	_, err := r.session.ChannelDelete(roomRef, discordgo.WithContext(ctx))
	return err
}

// Disconnect leaves users alone who already moved elsewhere.
func (r *Rooms) Disconnect(ctx context.Context, guildID, userID, fromRoomRef string) error {
	vs, err := r.session.State.VoiceState(guildID, userID)
	if err != nil || vs.ChannelID != fromRoomRef {
		return nil
	}
	return r.session.GuildMemberMove(guildID, userID, nil, discordgo.WithContext(ctx))
}
