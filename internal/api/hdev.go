// Package api wraps the HenrikDev Valorant HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"
	"valorant-notifier/internal/config"

	"github.com/valyala/fasthttp"
)

const baseURL = "https://api.henrikdev.xyz"

// ErrNoMatches marks the quiet case: the account exists but has no
// competitive history visible to us (404, private account, empty result).
var ErrNoMatches = errors.New("no competitive matches available")

// Error is returned for any other non-success upstream status.
type Error struct {
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

type HDevClient struct {
	apiKey      string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Bucket    string `json:"bucket"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewHDevClient(cfg *config.Config) *HDevClient {
	return &HDevClient{
		apiKey: cfg.HDevAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:     30,
			Remaining: 30,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *HDevClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *HDevClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if bucket := string(resp.Header.Peek("X-Ratelimit-Bucket")); bucket != "" {
		c.rateLimit.Bucket = bucket
	}
	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetLatestCompetitiveMatch fetches the single most recent competitive match
// for the given Riot ID. Returns ErrNoMatches when the player has no visible
// competitive history.
func (c *HDevClient) GetLatestCompetitiveMatch(ctx context.Context, region, name, tag string) (*V4MatchData, error) {
	reqURL := fmt.Sprintf("%s/valorant/v4/matches/%s/pc/%s/%s?mode=competitive&size=1",
		baseURL, region, url.PathEscape(name), url.PathEscape(tag))

	resp, err := doRequest[V4MatchesResponse](ctx, c, reqURL)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusNotFound {
			return nil, ErrNoMatches
		}
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoMatches
	}
	return &resp.Data[0], nil
}

func doRequest[T any](ctx context.Context, client *HDevClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode()}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("malformed API response: %w", err)
	}
	return &result, nil
}

type V4MatchesResponse struct {
	Status int           `json:"status"`
	Data   []V4MatchData `json:"data"`
}

type V4MatchData struct {
	Metadata V4MatchMetadata `json:"metadata"`
	Players  []V4Player      `json:"players"`
	Teams    []V4Team        `json:"teams"`
}

type V4MatchMetadata struct {
	MatchID string `json:"match_id"`
	Region  string `json:"region"`
	Cluster string `json:"cluster"`
	Map     struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"map"`
	StartedAt time.Time `json:"started_at"`
	Season    struct {
		ID    string `json:"id"`
		Short string `json:"short"`
	} `json:"season"`
	GameVersion string `json:"game_version"`
}

type V4Player struct {
	Puuid string `json:"puuid"`
	Name  string `json:"name"`
	Tag   string `json:"tag"`
	Agent struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"agent"`
	Stats struct {
		Score     int `json:"score"`
		Kills     int `json:"kills"`
		Deaths    int `json:"deaths"`
		Assists   int `json:"assists"`
		Headshots int `json:"headshots"`
		Bodyshots int `json:"bodyshots"`
		Legshots  int `json:"legshots"`
		Damage    struct {
			Dealt    int `json:"dealt"`
			Received int `json:"received"`
		} `json:"damage"`
	} `json:"stats"`
	TeamID string `json:"team_id"`
}

type V4Team struct {
	TeamID string `json:"team_id"`
	Won    bool   `json:"won"`
	Rounds struct {
		Won  int `json:"won"`
		Lost int `json:"lost"`
	} `json:"rounds"`
}
