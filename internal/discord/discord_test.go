package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"tutorq/internal/models"
	"tutorq/internal/queue"
)

type fakeQueues struct {
	rooms  map[string]string
	joined []string
	left   []string
}

func (f *fakeQueues) QueueByWaitingRoom(_ context.Context, _, roomRef string) (*models.Queue, error) {
	name, ok := f.rooms[roomRef]
	if !ok {
		return nil, queue.ErrQueueNotFound
	}
	return &models.Queue{Name: name}, nil
}

func (f *fakeQueues) JoinQueue(_ context.Context, _, queueName, userID string) (*models.QueueMember, error) {
	f.joined = append(f.joined, queueName+":"+userID)
	return &models.QueueMember{UserID: userID}, nil
}

func (f *fakeQueues) LeaveQueue(_ context.Context, _, queueName, userID string) error {
	f.left = append(f.left, queueName+":"+userID)
	return nil
}

func TestListenerMoves(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		joined   []string
		left     []string
	}{
		{name: "enter waiting room", to: "wr-help", joined: []string{"help:u1"}},
		{name: "leave waiting room", from: "wr-help", left: []string{"help:u1"}},
		{name: "switch queues", from: "wr-help", to: "wr-labs", joined: []string{"labs:u1"}, left: []string{"help:u1"}},
		{name: "unrelated channel", from: "lobby", to: "music"},
		{name: "mute toggle", from: "wr-help", to: "wr-help"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQueues{rooms: map[string]string{"wr-help": "help", "wr-labs": "labs"}}
			l := &Listener{queues: q}

			l.handleMove(context.Background(), "g1", "u1", tc.from, tc.to)
			assert.Equal(t, tc.joined, q.joined)
			assert.Equal(t, tc.left, q.left)
		})
	}
}

func TestPrivateOverwrites(t *testing.T) {
	ow := privateOverwrites("g1", []string{"t1", "s1"})
	if assert.Len(t, ow, 3) {
		assert.Equal(t, "g1", ow[0].ID)
		assert.Equal(t, discordgo.PermissionOverwriteTypeRole, ow[0].Type)
		assert.NotZero(t, ow[0].Deny&discordgo.PermissionVoiceConnect)
		assert.Equal(t, "t1", ow[1].ID)
		assert.Equal(t, discordgo.PermissionOverwriteTypeMember, ow[1].Type)
		assert.NotZero(t, ow[2].Allow&discordgo.PermissionVoiceSpeak)
	}
}

func TestFindRole(t *testing.T) {
	roles := []*discordgo.Role{{ID: "1", Name: "Verified"}, {ID: "2", Name: "Active Session"}}

	id, ok := findRole(roles, "verified")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	id, ok = findRole(roles, "2")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	_, ok = findRole(roles, "Admin")
	assert.False(t, ok)
}

func TestConnectOverwrite(t *testing.T) {
	allow, deny := connectOverwrite(true)
	assert.EqualValues(t, discordgo.PermissionVoiceConnect, allow)
	assert.Zero(t, deny)

	allow, deny = connectOverwrite(false)
	assert.Zero(t, allow)
	assert.EqualValues(t, discordgo.PermissionVoiceConnect, deny)
}

func TestLogEmbedColour(t *testing.T) {
	assert.Equal(t, colorError, logEmbed("help", "locked", queue.SeverityError, time.Now()).Color)
	assert.Equal(t, colorSuccess, severityColor(queue.SeveritySuccess))
	assert.Equal(t, colorInfo, severityColor(queue.SeverityInfo))
}

type deadlineQueues struct {
	fakeQueues
	remaining time.Duration
}

func (d *deadlineQueues) JoinQueue(ctx context.Context, guildID, queueName, userID string) (*models.QueueMember, error) {
	if deadline, ok := ctx.Deadline(); ok {
		d.remaining = time.Until(deadline)
	}
	return d.fakeQueues.JoinQueue(ctx, guildID, queueName, userID)
}

func TestVoiceStateUpdateBoundsQueueCalls(t *testing.T) {
	q := &deadlineQueues{fakeQueues: fakeQueues{rooms: map[string]string{"wr-help": "help"}}}
	l := &Listener{queues: q}

	l.voiceStateUpdate(nil, &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{GuildID: "g1", UserID: "u1", ChannelID: "wr-help"},
	})
	assert.Equal(t, []string{"help:u1"}, q.joined)
	assert.Greater(t, q.remaining, time.Duration(0))
	assert.LessOrEqual(t, q.remaining, voiceEventTimeout)

	// боты в очередь не попадают
	l.voiceStateUpdate(nil, &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{
			GuildID:   "g1",
			UserID:    "bot",
			ChannelID: "wr-help",
			Member:    &discordgo.Member{User: &discordgo.User{ID: "bot", Bot: true}},
		},
	})
	assert.Equal(t, []string{"help:u1"}, q.joined)
}
