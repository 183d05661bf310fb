package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
	"valorant-notifier/internal/api"
	"valorant-notifier/internal/config"
	"valorant-notifier/internal/constants"
	"valorant-notifier/internal/domain"
	"valorant-notifier/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MatchFetcher is the read side of the data source.
type MatchFetcher interface {
	GetLatestCompetitiveMatch(ctx context.Context, region, name, tag string) (*api.V4MatchData, error)
}

// Notifier delivers a recorded match to its owning user.
type Notifier interface {
	NotifyMatch(ctx context.Context, ownerID string, record *domain.MatchRecord) error
}

// TrackerService runs polling passes over the tracked roster. A pass checks
// every player once, records at most one new match per player and notifies
// the owning user on a fresh insert. Passes never fail as a whole.
type TrackerService struct {
	fetcher       MatchFetcher
	players       *repository.PlayerRepository
	matches       *repository.MatchRepository
	notifier      Notifier
	defaultRegion string
	logger        zerolog.Logger

	mu          sync.RWMutex
	lastSummary *domain.PassSummary
}

func NewTrackerService(
	cfg *config.Config,
	fetcher MatchFetcher,
	players *repository.PlayerRepository,
	matches *repository.MatchRepository,
	notifier Notifier,
	logger zerolog.Logger,
) *TrackerService {
	return &TrackerService{
		fetcher:       fetcher,
		players:       players,
		matches:       matches,
		notifier:      notifier,
		defaultRegion: cfg.DefaultRegion,
		logger:        logger,
	}
}

// LastSummary returns the most recent completed pass, or nil before the
// first one finishes.
func (s *TrackerService) LastSummary() *domain.PassSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSummary
}

// RunPass iterates the whole roster once. Per-player failures are logged and
// counted, never propagated; the returned summary is the only outcome.
func (s *TrackerService) RunPass(ctx context.Context) domain.PassSummary {
	passID, _ := gonanoid.New()
	start := time.Now()

	logger := s.logger.With().Str("pass_id", passID).Logger()
	logger.Info().Msg("starting tracker pass")

	summary := domain.PassSummary{
		PassID:    passID,
		StartedAt: start,
	}

	ctx, cancel := context.WithTimeout(ctx, constants.PassTimeout)
	defer cancel()

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	players, err := s.players.ListAll(dbCtx)
	dbCancel()
	if err != nil {
		logger.Error().Err(err).Msg("failed to list tracked players, aborting pass")
		summary.Errors++
		s.finishPass(&summary, logger)
		return summary
	}

	summary.Players = len(players)

	var newMatches, errCount atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(constants.PassWorkers)

	for _, player := range players {
		if ctx.Err() != nil {
			logger.Warn().Err(ctx.Err()).Msg("pass deadline reached, remaining players skipped")
			errCount.Add(1)
			break
		}

		g.Go(func() error {
			recorded, err := s.checkPlayer(ctx, logger, player)
			if err != nil {
				errCount.Add(1)
			}
			if recorded {
				newMatches.Add(1)
			}
			// per-player failures are isolated, never fail the group
			return nil
		})
	}

	g.Wait()

	summary.NewMatches = int(newMatches.Load())
	summary.Errors = int(errCount.Load())
	s.finishPass(&summary, logger)
	return summary
}

func (s *TrackerService) finishPass(summary *domain.PassSummary, logger zerolog.Logger) {
	summary.Duration = time.Since(summary.StartedAt).Round(time.Millisecond).String()

	s.mu.Lock()
	s.lastSummary = summary
	s.mu.Unlock()

	logger.Info().
		Int("players", summary.Players).
		Int("new_matches", summary.NewMatches).
		Int("errors", summary.Errors).
		Str("duration", summary.Duration).
		Msg("tracker pass completed")
}

// checkPlayer fetches the player's latest competitive match and records it
// if unseen. Returns whether a new match was recorded. A data-source miss
// (no matches, private account) is a quiet skip, not an error.
func (s *TrackerService) checkPlayer(ctx context.Context, logger zerolog.Logger, player domain.TrackedPlayer) (bool, error) {
	region := player.Region
	if region == "" {
		region = s.defaultRegion
	}

	plog := logger.With().Str("riot_id", player.RiotID()).Str("region", region).Logger()

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	match, err := s.fetcher.GetLatestCompetitiveMatch(apiCtx, region, player.Name, player.Tag)
	apiCancel()
	if errors.Is(err, api.ErrNoMatches) {
		plog.Debug().Msg("no competitive matches for player")
		return false, nil
	}
	if err != nil {
		plog.Warn().Err(err).Msg("failed to fetch latest match")
		return false, err
	}

	record, err := BuildMatchRecord(match, player.Name, player.Tag)
	if err != nil {
		plog.Warn().Err(err).Msg("failed to build match record")
		return false, err
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	inserted, err := s.matches.TryInsert(dbCtx, record)
	dbCancel()
	if err != nil {
		plog.Error().Err(err).Str("match_id", record.MatchID).Msg("failed to record match")
		return false, err
	}
	if !inserted {
		plog.Debug().Str("match_id", record.MatchID).Msg("match already recorded")
		return false, nil
	}

	plog.Info().
		Str("match_id", record.MatchID).
		Str("result", record.Result).
		Str("score", record.Score).
		Msg("new match recorded")

	notifyCtx, notifyCancel := context.WithTimeout(ctx, constants.NotifyTimeout)
	err = s.notifier.NotifyMatch(notifyCtx, player.OwnerID, record)
	notifyCancel()
	if err != nil {
		// The match stays recorded, so the notification is not retried
		// on the next pass: at-most-once delivery.
		plog.Warn().Err(err).Str("owner_id", player.OwnerID).Msg("failed to deliver match notification")
	}

	return true, nil
}
