// Package server exposes the operator-facing status endpoints. End users
// interact through chat commands only; this surface exists for health checks
// and polling diagnostics.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"valorant-notifier/internal/api"
	"valorant-notifier/internal/constants"
	"valorant-notifier/internal/domain"
	"valorant-notifier/internal/repository"
	"valorant-notifier/internal/service"

	"github.com/rs/zerolog"
)

type StatusServer struct {
	tracker *service.TrackerService
	hdev    *api.HDevClient
	players *repository.PlayerRepository
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewStatusServer(
	tracker *service.TrackerService,
	hdev *api.HDevClient,
	players *repository.PlayerRepository,
	matches *repository.MatchRepository,
	logger zerolog.Logger,
) *StatusServer {
	return &StatusServer{
		tracker: tracker,
		hdev:    hdev,
		players: players,
		matches: matches,
		logger:  logger,
	}
}

type statusResponse struct {
	LastPass       *domain.PassSummary `json:"last_pass"`
	TrackedPlayers int                 `json:"tracked_players"`
	RecordedGames  int                 `json:"recorded_matches"`
	RateLimit      api.RateLimitInfo   `json:"rate_limit"`
}

func (s *StatusServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /status", s.handleStatus)
}

func (s *StatusServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *StatusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	resp := statusResponse{
		LastPass:  s.tracker.LastSummary(),
		RateLimit: s.hdev.GetRateLimitInfo(),
	}

	players, err := s.players.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load roster for status")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp.TrackedPlayers = len(players)

	count, err := s.matches.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count matches for status")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp.RecordedGames = count

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode status response")
	}
}
