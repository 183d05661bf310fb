// Package bot owns the Discord session and the chat command surface.
package bot

import (
	"fmt"
	"valorant-notifier/internal/config"

	"github.com/bwmarrin/discordgo"
)

// NewSession builds the gateway session. It is opened and closed by the
// application lifecycle, not here.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return session, nil
}
