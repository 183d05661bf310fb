// Package notify delivers match notifications as Discord direct messages.
package notify

import (
	"context"
	"fmt"
	"valorant-notifier/internal/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	colorVictory = 0x2ecc71
	colorDefeat  = 0xe74c3c
	colorDraw    = 0x95a5a6
)

type DiscordNotifier struct {
	session *discordgo.Session
	logger  zerolog.Logger
}

func NewDiscordNotifier(session *discordgo.Session, logger zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		session: session,
		logger:  logger,
	}
}

// NotifyMatch DMs the owning user one embed for the recorded match. Failures
// (closed DMs, unknown user) are returned to the caller, which treats them
// as non-fatal: the match row already exists and will not be re-sent.
func (n *DiscordNotifier) NotifyMatch(ctx context.Context, ownerID string, record *domain.MatchRecord) error {
	channel, err := n.session.UserChannelCreate(ownerID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel for user %s: %w", ownerID, err)
	}

	_, err = n.session.ChannelMessageSendEmbed(channel.ID, BuildMatchEmbed(record), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send match notification to user %s: %w", ownerID, err)
	}

	n.logger.Info().
		Str("owner_id", ownerID).
		Str("match_id", record.MatchID).
		Msg("match notification delivered")
	return nil
}

// BuildMatchEmbed renders the full stat line for one match.
func BuildMatchEmbed(record *domain.MatchRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎮 New Match Detected!",
		Description: fmt.Sprintf("**%s#%s** just finished a match!", record.Name, record.Tag),
		Color:       resultColor(record.Result),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Agent", Value: record.Agent, Inline: true},
			{Name: "Map", Value: record.MapName, Inline: true},
			{Name: "Result", Value: record.Result, Inline: true},
			{Name: "Score", Value: record.Score, Inline: true},
			{Name: "K/D/A", Value: fmt.Sprintf("%d/%d/%d", record.Kills, record.Deaths, record.Assists), Inline: true},
			{Name: "K/D Ratio", Value: fmt.Sprintf("%.2f", record.KDRatio), Inline: true},
			{Name: "ACS", Value: fmt.Sprintf("%.1f", record.ACS), Inline: true},
			{Name: "ADR", Value: fmt.Sprintf("%.1f", record.ADR), Inline: true},
			{Name: "HS%", Value: fmt.Sprintf("%.1f%%", record.HeadshotPct), Inline: true},
			{Name: "Damage Δ", Value: fmt.Sprintf("%+d", record.DamageDelta), Inline: true},
			{Name: "Team Rank", Value: fmt.Sprintf("#%d/5", record.TeamPlacement), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Match ID: " + record.MatchID,
		},
	}
}

func resultColor(result string) int {
	switch result {
	case domain.ResultVictory:
		return colorVictory
	case domain.ResultDefeat:
		return colorDefeat
	default:
		return colorDraw
	}
}
