// Package sportsdata looks up teams and players on TheSportsDB. Responses
// pass through an optional TTL store so repeated slip analyses for the same
// teams stay off the network.
package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	requestsPerMinute = 30
	requestTimeout    = 10 * time.Second
	maxRetries        = 3
)

// Store caches raw API responses. *cache.Cache satisfies it; a nil Store
// disables caching.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Client handles API communication with TheSportsDB
type Client struct {
	baseURL string
	client  *retryClient
	store   Store
}

// NewClient creates a client against baseURL (which includes the API key
// path segment). store may be nil.
func NewClient(baseURL string, store Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newRetryClient(requestsPerMinute, requestTimeout, maxRetries),
		store:   store,
	}
}

// Team is a single team record from searchteams.php.
type Team struct {
	ID          string `json:"idTeam"`
	Name        string `json:"strTeam"`
	League      string `json:"strLeague"`
	Sport       string `json:"strSport"`
	Stadium     string `json:"strStadium"`
	Country     string `json:"strCountry"`
	FormedYear  string `json:"intFormedYear"`
	Description string `json:"strDescriptionEN"`
}

// Player is a single player record from searchplayers.php.
type Player struct {
	ID          string `json:"idPlayer"`
	Name        string `json:"strPlayer"`
	Team        string `json:"strTeam"`
	Sport       string `json:"strSport"`
	Position    string `json:"strPosition"`
	Nationality string `json:"strNationality"`
	BornDate    string `json:"dateBorn"`
	Description string `json:"strDescriptionEN"`
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type playersResponse struct {
	Players []Player `json:"player"`
}

// SearchTeam returns the best match for name, or nil when the API knows no
// such team.
func (c *Client) SearchTeam(ctx context.Context, name string) (*Team, error) {
	body, err := c.fetch(ctx, "searchteams.php", url.Values{"t": {name}})
	if err != nil {
		return nil, fmt.Errorf("searching team %q: %w", name, err)
	}

	var resp teamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding team response: %w", err)
	}
	if len(resp.Teams) == 0 {
		return nil, nil
	}
	return &resp.Teams[0], nil
}

// SearchPlayer returns the best match for name, or nil when unknown.
func (c *Client) SearchPlayer(ctx context.Context, name string) (*Player, error) {
	body, err := c.fetch(ctx, "searchplayers.php", url.Values{"p": {name}})
	if err != nil {
		return nil, fmt.Errorf("searching player %q: %w", name, err)
	}

	var resp playersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}
	if len(resp.Players) == 0 {
		return nil, nil
	}
	return &resp.Players[0], nil
}

// fetch goes to the store first, then the network. Store failures degrade to
// a plain fetch rather than failing the lookup.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	key := cacheKey(endpoint, params)
	if c.store != nil {
		if body, ok, err := c.store.Get(key); err == nil && ok {
			return body, nil
		}
	}

	body, err := c.client.get(ctx, u)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		_ = c.store.Set(key, body)
	}
	return body, nil
}

func cacheKey(endpoint string, params url.Values) string {
	return "sportsdb:" + endpoint + ":" + strings.ToLower(params.Encode())
}
