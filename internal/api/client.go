// Package api issues the one-shot request/response calls of the game
// server's HTTP interface. Each operation is a single request with a bounded
// timeout and one retry on transport failure; HTTP-level rejections are
// returned as typed failures and never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

const requestTimeout = 5 * time.Second

type Client struct {
	base string
	hc   *http.Client
	log  *zap.Logger
}

func NewClient(base string, log *zap.Logger) *Client {
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

// ListGames fetches the current game list once. The same payload also
// arrives on the list stream; this exists for the initial load and for
// refreshing after a create.
func (c *Client) ListGames(ctx context.Context) ([]types.GameSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/games", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, url: c.base + "/games"}
	}
	var games []types.GameSummary
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("api: decoding game list: %w", err)
	}
	return games, nil
}

// CreateGame asks the server for a new game. Some servers answer 201 with
// the new summary, some with an empty body; either way the list push is the
// source of truth, so the summary is best-effort.
func (c *Client) CreateGame(ctx context.Context) (types.GameSummary, error) {
	resp, err := c.do(ctx, http.MethodPost, "/games", nil)
	if err != nil {
		return types.GameSummary{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return types.GameSummary{}, &statusError{status: resp.StatusCode, url: c.base + "/games"}
	}

	var summary types.GameSummary
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return types.GameSummary{}, nil
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		c.log.Warn("create response was not a game summary", zap.Error(err))
		return types.GameSummary{}, nil
	}
	return summary, nil
}

// JoinGame claims a seat. A 4xx answer means the seat is taken and comes
// back as *ConflictError carrying the server's message.
func (c *Client) JoinGame(ctx context.Context, gameID string, seat types.Seat) error {
	path := fmt.Sprintf("/games/%s/players/%s", gameID, seat)
	resp, err := c.do(ctx, http.MethodPut, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ConflictError{Message: readMessage(resp.Body, "seat is not available")}
	default:
		return &statusError{status: resp.StatusCode, url: c.base + path}
	}
}

// PlaceShip submits one ship placement. On success the response body is the
// authoritative post-placement state, which the caller adopts verbatim.
func (c *Client) PlaceShip(ctx context.Context, gameID string, seat types.Seat, x, y int, orientation types.Orientation, kind types.ShipKind) (types.GameState, error) {
	path := fmt.Sprintf("/games/%s/players/%s/ships", gameID, seat)
	body, err := json.Marshal(types.PlaceShipRequest{X: x, Y: y, Direction: orientation, Type: kind})
	if err != nil {
		return types.GameState{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return types.GameState{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var state types.GameState
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			return types.GameState{}, fmt.Errorf("api: decoding game state: %w", err)
		}
		return state, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return types.GameState{}, &ValidationError{Message: readMessage(resp.Body, "placement rejected")}
	default:
		return types.GameState{}, &statusError{status: resp.StatusCode, url: c.base + path}
	}
}

// do sends one request, retrying exactly once on transport failure. Bodies
// are small byte slices so rebuilding the request is cheap.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.hc.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		c.log.Warn("request failed, retrying once",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
	}
	return nil, fmt.Errorf("api: %s %s: %w", method, path, lastErr)
}

func readMessage(r io.Reader, fallback string) string {
	var body types.ErrorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.Message == "" {
		return fallback
	}
	return body.Message
}
