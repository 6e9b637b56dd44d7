// Package client is the thin HTTP boundary to the game server: registering
// a session and the decide-and-next call that submits one decision and
// reveals the next candidate. No retry or backoff — a failed call surfaces
// as an error and the caller decides what to do with the attempt.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public game endpoint.
const DefaultBaseURL = "https://berghain.challenges.listenlabs.ai"

const requestTimeout = 30 * time.Second

// Client talks to the game server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a Client for the given base URL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

// NewGame registers a new game session for the player and scenario,
// returning the game ID, the constraint set, and the advertised statistics.
func (c *Client) NewGame(ctx context.Context, playerID string, scenarioID int) (*NewGameResponse, error) {
	params := url.Values{}
	params.Set("playerId", playerID)
	params.Set("scenario", strconv.Itoa(scenarioID))

	var out NewGameResponse
	if err := c.post(ctx, "/new-game", params, &out); err != nil {
		return nil, fmt.Errorf("new-game: %w", err)
	}
	logrus.Infof("registered game %s: %d constraints", out.GameID, len(out.Constraints))
	return &out, nil
}

// DecideAndNext submits the decision for personIndex and fetches the next
// candidate. accept must be nil only for the very first call (index 0),
// which reveals the first candidate without a prior decision.
func (c *Client) DecideAndNext(ctx context.Context, gameID string, personIndex int, accept *bool) (*DecideResponse, error) {
	if personIndex > 0 && accept == nil {
		return nil, fmt.Errorf("decide-and-next: decision required for person %d", personIndex)
	}
	params := url.Values{}
	params.Set("gameId", gameID)
	params.Set("personIndex", strconv.Itoa(personIndex))
	if accept != nil {
		params.Set("accept", strconv.FormatBool(*accept))
	}

	var out DecideResponse
	if err := c.post(ctx, "/decide-and-next", params, &out); err != nil {
		return nil, fmt.Errorf("decide-and-next: %w", err)
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %s: %s", resp.Status, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
