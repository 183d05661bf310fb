package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"valorant-notifier/internal/api"
	"valorant-notifier/internal/domain"
)

// BuildMatchRecord turns an upstream match payload into a typed MatchRecord
// for the given player. It fails when the player does not appear in the
// payload, which counts as malformed upstream data.
func BuildMatchRecord(match *api.V4MatchData, name, tag string) (*domain.MatchRecord, error) {
	player := findPlayer(match.Players, name, tag)
	if player == nil {
		return nil, fmt.Errorf("player %s#%s not present in match %s", name, tag, match.Metadata.MatchID)
	}

	roundsWon, roundsLost := teamRounds(match.Teams, player.TeamID)
	totalRounds := roundsWon + roundsLost
	if totalRounds < 1 {
		totalRounds = 1
	}

	dealt := player.Stats.Damage.Dealt
	received := player.Stats.Damage.Received

	return &domain.MatchRecord{
		MatchID:       match.Metadata.MatchID,
		Name:          player.Name,
		Tag:           player.Tag,
		Agent:         player.Agent.Name,
		Score:         fmt.Sprintf("%d-%d", roundsWon, roundsLost),
		Kills:         player.Stats.Kills,
		Deaths:        player.Stats.Deaths,
		Assists:       player.Stats.Assists,
		KDRatio:       kdRatio(player.Stats.Kills, player.Stats.Deaths),
		DamageDelta:   dealt - received,
		HeadshotPct:   headshotPct(player.Stats.Headshots, player.Stats.Bodyshots, player.Stats.Legshots),
		ADR:           round1(float64(dealt) / float64(totalRounds)),
		ACS:           round1(float64(player.Stats.Score) / float64(totalRounds)),
		TeamPlacement: teamPlacement(match.Players, player),
		MapName:       match.Metadata.Map.Name,
		Result:        matchResult(match.Teams, player.TeamID),
		CreatedAt:     time.Now(),
	}, nil
}

func findPlayer(players []api.V4Player, name, tag string) *api.V4Player {
	for i := range players {
		if strings.EqualFold(players[i].Name, name) && strings.EqualFold(players[i].Tag, tag) {
			return &players[i]
		}
	}
	return nil
}

func teamRounds(teams []api.V4Team, teamID string) (won, lost int) {
	for _, t := range teams {
		if t.TeamID == teamID {
			return t.Rounds.Won, t.Rounds.Lost
		}
	}
	return 0, 0
}

func matchResult(teams []api.V4Team, teamID string) string {
	var anyWon bool
	for _, t := range teams {
		if t.Won {
			anyWon = true
		}
		if t.TeamID == teamID && t.Won {
			return domain.ResultVictory
		}
	}
	if anyWon {
		return domain.ResultDefeat
	}
	return domain.ResultDraw
}

// teamPlacement ranks the player among teammates by combat score, 1 being
// the top fragger. Ties keep upstream order.
func teamPlacement(players []api.V4Player, target *api.V4Player) int {
	var teammates []api.V4Player
	for _, p := range players {
		if p.TeamID == target.TeamID {
			teammates = append(teammates, p)
		}
	}

	sort.SliceStable(teammates, func(i, j int) bool {
		return teammates[i].Stats.Score > teammates[j].Stats.Score
	})

	for i, p := range teammates {
		if p.Puuid == target.Puuid {
			return i + 1
		}
	}
	return len(teammates)
}

func kdRatio(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return math.Round(float64(kills)/float64(deaths)*100) / 100
}

func headshotPct(headshots, bodyshots, legshots int) float64 {
	total := headshots + bodyshots + legshots
	if total == 0 {
		return 0
	}
	return round1(float64(headshots) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
