package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the Discord gateway connection shared by every adapter.
type Bot struct {
	session *discordgo.Session
}

// New creates a new Discord bot
func New(token string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsDirectMessages

	return &Bot{session: session}, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	log.Println("[INFO] Бот Discord подключен")
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) Notifier() *Notifier {
	return &Notifier{session: b.session}
}

func (b *Bot) Rooms() *Rooms {
	return &Rooms{session: b.session}
}

func (b *Bot) Roles() *Roles {
	return &Roles{session: b.session}
}

// Listen routes waiting-room voice activity into the queues. Must be called
// before Start.
func (b *Bot) Listen(queues Queues) {
	l := &Listener{queues: queues}
	b.session.AddHandler(l.voiceStateUpdate)
}
