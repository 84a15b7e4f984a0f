// Package backend is the client for an external full-strength engine,
// consumed only through a "best move for a given position" request and
// response. Positions travel as FEN; moves come back in long algebraic
// form. Callers verify the returned move against their own rules engine.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to a remote best-move service over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the service at baseURL. Requests are
// timeout-bounded; the remote engine applies its own search limits.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// bestMoveResponse is the service's reply.
type bestMoveResponse struct {
	Move  string  `json:"move"`
	Score float64 `json:"score"`
}

// BestMove asks the remote engine for the best move in the given position
// at the given depth. Returns the move in long algebraic form.
func (c *Client) BestMove(ctx context.Context, fen string, depth int) (string, error) {
	u := fmt.Sprintf("%s/bestmove?fen=%s&depth=%d", c.baseURL, url.QueryEscape(fen), depth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var result bestMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode backend response: %w", err)
	}
	if result.Move == "" {
		return "", fmt.Errorf("backend returned no move")
	}

	return result.Move, nil
}
