package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/internal/api"
	"github.com/arnokoehler/battleship-frontend/internal/app"
	"github.com/arnokoehler/battleship-frontend/internal/stream"
)

func main() {
	cfg := loadConfig()

	log, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open log file:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	client := api.NewClient(cfg.ServerURL, log)

	// The stream client must not carry a request timeout or long-lived
	// subscriptions would be cut off.
	streamHC := &http.Client{}
	open := func(path string, onMessage func(json.RawMessage), onError func(error)) (app.Subscription, error) {
		return stream.Open(ctx, streamHC, log, cfg.ServerURL+path, onMessage, onError)
	}

	store := app.NewStore(ctx, client, open, log, cfg.PageSize)
	if err := store.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach the game server at %s: %v\n", cfg.ServerURL, err)
		os.Exit(1)
	}

	views := make(chan app.View, 64)
	store.Inbox() <- app.Subscribe{ID: "tui", Outbox: views}

	p := tea.NewProgram(newModel(store), tea.WithAltScreen())
	go func() {
		for v := range views {
			p.Send(viewMsg(v))
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Error("ui stopped", zap.Error(err))
	}
	store.Inbox() <- app.Shutdown{}
}

// newLogger writes structured logs to a file so stdout stays free for the
// terminal UI.
func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
