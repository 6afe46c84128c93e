// Package stream wraps a one-way server-push subscription (Server-Sent
// Events) to a single resource. A channel delivers parsed JSON payloads in
// arrival order until it is closed or the transport fails; there is no
// automatic reconnect — callers must open a fresh channel if they want one.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

type State int32

const (
	StateIdle State = iota
	StateOpen
	StateClosed // graceful close, terminal
	StateFailed // transport error, terminal
)

var ErrBadStatus = errors.New("stream: unexpected response status")

// Channel is a live subscription handle. Close is idempotent and safe to
// call concurrently with message delivery.
type Channel struct {
	url    string
	log    *zap.Logger
	cancel context.CancelFunc
	state  atomic.Int32
}

// Open dials url with an SSE accept header and starts a reader goroutine.
// A dial failure is returned synchronously and no channel is created.
// onMessage receives each event payload in order; onError fires at most
// once, on transport failure only (never on Close).
//
// The http.Client must not carry a request timeout, or the subscription
// would be cut off mid-stream.
func Open(ctx context.Context, hc *http.Client, log *zap.Logger, url string, onMessage func(json.RawMessage), onError func(error)) (*Channel, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := hc.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, url)
	}

	c := &Channel{url: url, log: log, cancel: cancel}
	c.state.Store(int32(StateOpen))

	go c.readLoop(resp, onMessage, onError)
	return c, nil
}

func (c *Channel) State() State { return State(c.state.Load()) }

// Close ends the subscription. The channel moves to StateClosed unless it
// already failed.
func (c *Channel) Close() {
	c.state.CompareAndSwap(int32(StateOpen), int32(StateClosed))
	c.cancel()
}

func (c *Channel) readLoop(resp *http.Response, onMessage func(json.RawMessage), onError func(error)) {
	defer resp.Body.Close()
	defer c.cancel()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var data []string
	for scanner.Scan() {
		line := scanner.Text()

		// Blank line terminates one SSE event.
		if line == "" {
			if len(data) > 0 {
				payload := strings.Join(data, "\n")
				data = data[:0]
				onMessage(json.RawMessage(payload))
			}
			continue
		}
		if value, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(value, " "))
		}
		// event:/id:/retry: and comment lines carry nothing we use.
	}

	err := scanner.Err()
	if err == nil {
		err = errors.New("stream: server closed the connection")
	}

	// Only an unrequested termination counts as failure. If Close already
	// ran, the CAS loses and we stay in StateClosed without onError.
	if c.state.CompareAndSwap(int32(StateOpen), int32(StateFailed)) {
		c.log.Warn("stream failed", zap.String("url", c.url), zap.Error(err))
		onError(err)
	}
}
