package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"valorant-notifier/internal/config"
	"valorant-notifier/internal/constants"
	"valorant-notifier/internal/domain"
	"valorant-notifier/internal/identity"
	"valorant-notifier/internal/repository"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const commandPrefix = "!track"

const usageText = "**Valorant Tracker Bot**\n" +
	"`!track add <name>#<tag> [region]` - track a player\n" +
	"`!track remove <name>#<tag>` - stop tracking a player\n" +
	"`!track list` - show your tracked players\n" +
	"`!track ping` - liveness check"

var validRegions = map[string]bool{
	"na": true, "eu": true, "ap": true, "kr": true, "latam": true, "br": true,
}

// CommandHandler parses chat commands and delegates to the player store. It
// holds no state of its own.
type CommandHandler struct {
	players       *repository.PlayerRepository
	defaultRegion string
	logger        zerolog.Logger
}

func NewCommandHandler(cfg *config.Config, players *repository.PlayerRepository, logger zerolog.Logger) *CommandHandler {
	return &CommandHandler{
		players:       players,
		defaultRegion: cfg.DefaultRegion,
		logger:        logger,
	}
}

// Register attaches the message handler to the session.
func (h *CommandHandler) Register(session *discordgo.Session) {
	session.AddHandler(h.onMessage)
}

func (h *CommandHandler) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	fields := strings.Fields(m.Content)
	if len(fields) == 0 || fields[0] != commandPrefix {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	var reply string
	if len(fields) == 1 {
		reply = usageText
	} else {
		switch strings.ToLower(fields[1]) {
		case "add":
			reply = h.handleAdd(ctx, m.Author.ID, fields[2:])
		case "remove":
			reply = h.handleRemove(ctx, m.Author.ID, fields[2:])
		case "list":
			reply = h.handleList(ctx, m.Author.ID)
		case "ping":
			reply = fmt.Sprintf("🏓 Pong! Latency: %dms", s.HeartbeatLatency().Milliseconds())
		default:
			reply = fmt.Sprintf("❌ Unknown action: `%s`\n%s", fields[1], usageText)
		}
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		h.logger.Warn().Err(err).Str("channel_id", m.ChannelID).Msg("failed to send command reply")
	}
}

func (h *CommandHandler) handleAdd(ctx context.Context, ownerID string, args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a player name in the format: `name#tag`"
	}

	name, tag, err := ParseRiotID(args[0])
	if err != nil {
		return "❌ " + err.Error()
	}

	region := ""
	if len(args) > 1 {
		region = strings.ToLower(args[1])
		if !validRegions[region] {
			return fmt.Sprintf("❌ Unknown region: `%s` (valid: na, eu, ap, kr, latam, br)", region)
		}
	}

	player := &domain.TrackedPlayer{
		Fingerprint: identity.PlayerFingerprint(name, tag, ownerID),
		Name:        name,
		Tag:         tag,
		OwnerID:     ownerID,
		Region:      region,
		CreatedAt:   time.Now(),
	}

	created, err := h.players.Upsert(ctx, player)
	if err != nil {
		h.logger.Error().Err(err).Str("riot_id", player.RiotID()).Msg("failed to add player")
		return "❌ An error occurred while adding the player. Please try again later."
	}

	if !created {
		return fmt.Sprintf("ℹ️ **%s#%s** is already being tracked.", name, tag)
	}

	h.logger.Info().Str("riot_id", player.RiotID()).Str("owner_id", ownerID).Msg("player registered")
	return fmt.Sprintf("✅ Successfully added **%s#%s** to tracking!\n"+
		"You will receive a DM when a new competitive match is detected.", name, tag)
}

func (h *CommandHandler) handleRemove(ctx context.Context, ownerID string, args []string) string {
	if len(args) == 0 {
		return "❌ Please provide a player name in the format: `name#tag`"
	}

	name, tag, err := ParseRiotID(args[0])
	if err != nil {
		return "❌ " + err.Error()
	}

	removed, err := h.players.Remove(ctx, identity.PlayerFingerprint(name, tag, ownerID))
	if err != nil {
		h.logger.Error().Err(err).Str("riot_id", name+"#"+tag).Msg("failed to remove player")
		return "❌ An error occurred while removing the player. Please try again later."
	}

	if !removed {
		return fmt.Sprintf("ℹ️ **%s#%s** is not being tracked.", name, tag)
	}

	h.logger.Info().Str("riot_id", name+"#"+tag).Str("owner_id", ownerID).Msg("player removed")
	return fmt.Sprintf("✅ Stopped tracking **%s#%s**.", name, tag)
}

func (h *CommandHandler) handleList(ctx context.Context, ownerID string) string {
	players, err := h.players.ListByOwner(ctx, ownerID)
	if err != nil {
		h.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list players")
		return "❌ An error occurred while listing your players. Please try again later."
	}

	if len(players) == 0 {
		return "You are not tracking any players yet. Use `!track add <name>#<tag>` to start."
	}

	var b strings.Builder
	b.WriteString("**Your tracked players:**\n")
	for _, p := range players {
		region := p.Region
		if region == "" {
			region = h.defaultRegion
		}
		fmt.Fprintf(&b, "• **%s** (%s)\n", p.RiotID(), region)
	}
	return b.String()
}

// ParseRiotID splits "name#tag" into its parts.
func ParseRiotID(raw string) (name, tag string, err error) {
	name, tag, found := strings.Cut(raw, "#")
	if !found {
		return "", "", errors.New("invalid format, please use: `name#tag` (e.g. `AGreenFruit#PEPE`)")
	}

	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if name == "" || tag == "" {
		return "", "", errors.New("both name and tag are required")
	}
	return name, tag, nil
}
