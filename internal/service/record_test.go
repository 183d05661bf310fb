package service

import (
	"testing"
	"valorant-notifier/internal/api"
	"valorant-notifier/internal/domain"
)

type playerStats struct {
	name, tag, team string
	score           int
	kills, deaths   int
	assists         int
	headshots       int
	bodyshots       int
	legshots        int
	dealt, received int
}

func buildPayload(matchID, mapName string, redWon, blueWon bool, redRounds, blueRounds int, players []playerStats) *api.V4MatchData {
	match := &api.V4MatchData{}
	match.Metadata.MatchID = matchID
	match.Metadata.Map.Name = mapName

	match.Teams = []api.V4Team{
		{TeamID: "Red", Won: redWon},
		{TeamID: "Blue", Won: blueWon},
	}
	match.Teams[0].Rounds.Won = redRounds
	match.Teams[0].Rounds.Lost = blueRounds
	match.Teams[1].Rounds.Won = blueRounds
	match.Teams[1].Rounds.Lost = redRounds

	for _, p := range players {
		player := api.V4Player{
			Puuid:  "puuid-" + p.name,
			Name:   p.name,
			Tag:    p.tag,
			TeamID: p.team,
		}
		player.Agent.Name = "Jett"
		player.Stats.Score = p.score
		player.Stats.Kills = p.kills
		player.Stats.Deaths = p.deaths
		player.Stats.Assists = p.assists
		player.Stats.Headshots = p.headshots
		player.Stats.Bodyshots = p.bodyshots
		player.Stats.Legshots = p.legshots
		player.Stats.Damage.Dealt = p.dealt
		player.Stats.Damage.Received = p.received
		match.Players = append(match.Players, player)
	}
	return match
}

func TestBuildMatchRecordVictoryScenario(t *testing.T) {
	payload := buildPayload("M1", "Ascent", true, false, 13, 11, []playerStats{
		{name: "Foo", tag: "123", team: "Red", score: 5808, kills: 20, deaths: 10, assists: 5,
			headshots: 10, bodyshots: 28, legshots: 2, dealt: 3750, received: 3000},
		{name: "Mate", tag: "456", team: "Red", score: 4200, kills: 15, deaths: 12},
		{name: "Enemy", tag: "789", team: "Blue", score: 6000, kills: 25, deaths: 14},
	})

	record, err := BuildMatchRecord(payload, "Foo", "123")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if record.MatchID != "M1" {
		t.Errorf("match id = %q, want M1", record.MatchID)
	}
	if record.Result != domain.ResultVictory {
		t.Errorf("result = %q, want %q", record.Result, domain.ResultVictory)
	}
	if record.Score != "13-11" {
		t.Errorf("score = %q, want 13-11", record.Score)
	}
	if record.Kills != 20 || record.Deaths != 10 || record.Assists != 5 {
		t.Errorf("K/D/A = %d/%d/%d, want 20/10/5", record.Kills, record.Deaths, record.Assists)
	}
	if record.KDRatio != 2.0 {
		t.Errorf("kd ratio = %v, want 2.0", record.KDRatio)
	}
	if record.DamageDelta != 750 {
		t.Errorf("damage delta = %d, want 750", record.DamageDelta)
	}
	// 10 of 40 shots
	if record.HeadshotPct != 25.0 {
		t.Errorf("headshot pct = %v, want 25.0", record.HeadshotPct)
	}
	// 3750 damage over 24 rounds
	if record.ADR != 156.3 {
		t.Errorf("adr = %v, want 156.3", record.ADR)
	}
	// 5808 combat score over 24 rounds
	if record.ACS != 242.0 {
		t.Errorf("acs = %v, want 242.0", record.ACS)
	}
	// top combat score on the Red team
	if record.TeamPlacement != 1 {
		t.Errorf("team placement = %d, want 1", record.TeamPlacement)
	}
	if record.MapName != "Ascent" {
		t.Errorf("map = %q, want Ascent", record.MapName)
	}
	if record.Agent != "Jett" {
		t.Errorf("agent = %q, want Jett", record.Agent)
	}
}

func TestBuildMatchRecordDefeatAndPlacement(t *testing.T) {
	payload := buildPayload("M2", "Bind", false, true, 9, 13, []playerStats{
		{name: "Foo", tag: "123", team: "Red", score: 3000, kills: 10, deaths: 15},
		{name: "Better", tag: "1", team: "Red", score: 5000, kills: 20, deaths: 10},
		{name: "Best", tag: "2", team: "Red", score: 6000, kills: 22, deaths: 9},
	})

	record, err := BuildMatchRecord(payload, "Foo", "123")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if record.Result != domain.ResultDefeat {
		t.Errorf("result = %q, want %q", record.Result, domain.ResultDefeat)
	}
	if record.Score != "9-13" {
		t.Errorf("score = %q, want 9-13", record.Score)
	}
	if record.TeamPlacement != 3 {
		t.Errorf("team placement = %d, want 3", record.TeamPlacement)
	}
}

func TestBuildMatchRecordDraw(t *testing.T) {
	payload := buildPayload("M3", "Haven", false, false, 13, 13, []playerStats{
		{name: "Foo", tag: "123", team: "Red", score: 3000, kills: 12, deaths: 12},
	})

	record, err := BuildMatchRecord(payload, "Foo", "123")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if record.Result != domain.ResultDraw {
		t.Errorf("result = %q, want %q", record.Result, domain.ResultDraw)
	}
}

func TestBuildMatchRecordZeroDeaths(t *testing.T) {
	payload := buildPayload("M4", "Lotus", true, false, 13, 0, []playerStats{
		{name: "Foo", tag: "123", team: "Red", score: 4000, kills: 17, deaths: 0},
	})

	record, err := BuildMatchRecord(payload, "Foo", "123")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if record.KDRatio != 17.0 {
		t.Errorf("kd ratio with zero deaths = %v, want 17.0", record.KDRatio)
	}
	if record.HeadshotPct != 0 {
		t.Errorf("headshot pct with no shots = %v, want 0", record.HeadshotPct)
	}
}

func TestBuildMatchRecordCaseInsensitiveLookup(t *testing.T) {
	payload := buildPayload("M5", "Pearl", true, false, 13, 5, []playerStats{
		{name: "FooBar", tag: "ABC", team: "Red", score: 4000, kills: 10, deaths: 5},
	})

	record, err := BuildMatchRecord(payload, "foobar", "abc")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	// keeps upstream casing
	if record.Name != "FooBar" || record.Tag != "ABC" {
		t.Errorf("record identity = %s#%s, want FooBar#ABC", record.Name, record.Tag)
	}
}

func TestBuildMatchRecordPlayerMissing(t *testing.T) {
	payload := buildPayload("M6", "Split", true, false, 13, 5, []playerStats{
		{name: "SomeoneElse", tag: "999", team: "Red", score: 4000},
	})

	if _, err := BuildMatchRecord(payload, "Foo", "123"); err == nil {
		t.Fatal("expected an error when the player is absent from the payload")
	}
}
