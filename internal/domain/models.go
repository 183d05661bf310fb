package domain

import (
	"time"
)

type TrackedPlayer struct {
	Fingerprint string
	Name        string
	Tag         string
	OwnerID     string

	// Region overrides the global default when set; empty means "use the
	// configured region".
	Region    string
	CreatedAt time.Time
}

// RiotID renders the in-game identity, e.g. "AGreenFruit#PEPE".
func (p TrackedPlayer) RiotID() string {
	return p.Name + "#" + p.Tag
}

type MatchRecord struct {
	MatchID       string
	Name          string
	Tag           string
	Agent         string
	Score         string // rounds won-lost, e.g. "13-11"
	Kills         int
	Deaths        int
	Assists       int
	KDRatio       float64
	DamageDelta   int
	HeadshotPct   float64
	ADR           float64
	ACS           float64
	TeamPlacement int // 1-5 within the player's team, by combat score
	MapName       string
	Result        string
	CreatedAt     time.Time
}

const (
	ResultVictory = "Victory"
	ResultDefeat  = "Defeat"
	ResultDraw    = "Draw"
)

// PassSummary reports one polling pass over the roster.
type PassSummary struct {
	PassID     string    `json:"pass_id"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
	Players    int       `json:"players"`
	NewMatches int       `json:"new_matches"`
	Errors     int       `json:"errors"`
}
