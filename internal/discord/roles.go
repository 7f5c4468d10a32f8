package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tutorq/internal/queue"
)

// Roles grants roles and edits connect permissions. Role references may be
// IDs or role names.
type Roles struct {
	session *discordgo.Session
}

var _ queue.RolePermissionGrantor = (*Roles)(nil)

func (r *Roles) Grant(ctx context.Context, guildID, userID, roleRef string) error {
	roleID, err := r.resolve(ctx, guildID, roleRef)
	if err != nil {
		return err
	}
	return r.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (r *Roles) Revoke(ctx context.Context, guildID, userID, roleRef string) error {
	roleID, err := r.resolve(ctx, guildID, roleRef)
	if err != nil {
		return err
	}
	return r.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (r *Roles) SetConnectPermission(ctx context.Context, guildID, channelRef, roleRef string, allowed bool) error {
	roleID, err := r.resolve(ctx, guildID, roleRef)
	if err != nil {
		return err
	}
	allow, deny := connectOverwrite(allowed)
	return r.session.ChannelPermissionSet(channelRef, roleID, discordgo.PermissionOverwriteTypeRole, allow, deny, discordgo.WithContext(ctx))
}

func (r *Roles) resolve(ctx context.Context, guildID, ref string) (string, error) {
	roles, err := r.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to list roles: %w", err)
	}
	id, ok := findRole(roles, ref)
	if !ok {
		return "", fmt.Errorf("role %q not found in guild %s", ref, guildID)
	}
	return id, nil
}

func findRole(roles []*discordgo.Role, ref string) (string, bool) {
	for _, role := range roles {
		if role.ID == ref {
			return role.ID, true
		}
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, ref) {
			return role.ID, true
		}
	}
	return "", false
}

func connectOverwrite(allowed bool) (allow, deny int64) {
	if allowed {
		return discordgo.PermissionVoiceConnect, 0
	}
	return 0, discordgo.PermissionVoiceConnect
}
