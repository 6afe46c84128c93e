// Package devserver is an in-memory stand-in for the real battleship
// backend, good enough to develop and test the client against: it speaks
// the same five-endpoint contract, pushes full snapshots over SSE, and does
// only the bookkeeping the contract needs (seat occupancy, ship cells).
// Rule enforcement — collisions, shot legality, win detection — belongs to
// the real server and is deliberately absent here.
package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

type game struct {
	summary types.GameSummary
	boards  map[types.Seat]types.Board
	subs    map[chan []byte]struct{}
}

type Server struct {
	log *zap.Logger

	mu       sync.Mutex
	games    []*game
	byID     map[string]*game
	listSubs map[chan []byte]struct{}
}

func New(log *zap.Logger) *Server {
	return &Server{
		log:      log,
		byID:     make(map[string]*game),
		listSubs: make(map[chan []byte]struct{}),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/games", s.handleGames)
	r.Post("/games", s.handleCreate)
	r.Get("/games/{id}", s.handleGameStream)
	r.Put("/games/{id}/players/{seat}", s.handleJoin)
	r.Post("/games/{id}/players/{seat}/ships", s.handlePlaceShip)

	return r
}

// handleGames serves the list as plain JSON, or as an SSE stream when the
// client asks for text/event-stream (the way EventSource does).
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.mu.Lock()
		payload := s.listPayload()
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	s.mu.Lock()
	sub := make(chan []byte, 8)
	s.listSubs[sub] = struct{}{}
	first := s.listPayload()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.listSubs, sub)
		s.mu.Unlock()
	}()

	serveSSE(w, r, first, sub)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	id := strconv.Itoa(len(s.games) + 1)
	g := &game{
		summary: types.GameSummary{
			ID:      id,
			Status:  types.StatusWaiting,
			Turn:    types.SeatA,
			Players: make(map[types.Seat]bool),
		},
		boards: map[types.Seat]types.Board{
			types.SeatA: types.NewBoard(),
			types.SeatB: types.NewBoard(),
		},
		subs: make(map[chan []byte]struct{}),
	}
	s.games = append(s.games, g)
	s.byID[id] = g
	summary := g.summary
	s.broadcastListLocked()
	s.mu.Unlock()

	s.log.Info("game created", zap.String("game", id))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(summary)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	seat, ok := types.ParseSeat(chi.URLParam(r, "seat"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown seat")
		return
	}

	s.mu.Lock()
	g := s.byID[chi.URLParam(r, "id")]
	if g == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "no such game")
		return
	}
	if g.summary.Players[seat] {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "Seat taken")
		return
	}
	g.summary.Players[seat] = true
	if g.summary.Players[types.SeatA] && g.summary.Players[types.SeatB] {
		g.summary.Status = types.StatusInProgress
	}
	s.broadcastListLocked()
	s.broadcastGameLocked(g)
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGameStream(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	g := s.byID[chi.URLParam(r, "id")]
	if g == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "no such game")
		return
	}
	sub := make(chan []byte, 8)
	g.subs[sub] = struct{}{}
	first := statePayload(g)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(g.subs, sub)
		s.mu.Unlock()
	}()

	serveSSE(w, r, first, sub)
}

func (s *Server) handlePlaceShip(w http.ResponseWriter, r *http.Request) {
	seat, ok := types.ParseSeat(chi.URLParam(r, "seat"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown seat")
		return
	}
	var req types.PlaceShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	length := req.Type.Length()
	if length == 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown ship type %q", req.Type))
		return
	}

	s.mu.Lock()
	g := s.byID[chi.URLParam(r, "id")]
	if g == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "no such game")
		return
	}

	dx, dy := 1, 0
	if req.Direction == types.Vertical {
		dx, dy = 0, 1
	}
	endX, endY := req.X+dx*(length-1), req.Y+dy*(length-1)
	if req.X < 0 || req.Y < 0 || endX >= types.BoardSize || endY >= types.BoardSize {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "ship out of bounds")
		return
	}

	board := g.boards[seat]
	for i := 0; i < length; i++ {
		board[req.Y+dy*i][req.X+dx*i] = types.CellShip
	}
	payload := statePayload(g)
	s.broadcastGameLocked(g)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *Server) listPayload() []byte {
	summaries := make([]types.GameSummary, len(s.games))
	for i, g := range s.games {
		summaries[i] = g.summary
	}
	payload, _ := json.Marshal(summaries)
	return payload
}

// TODO: mask unhit opponent ships the way the real server does, so the
// stub can't leak positions the client should never see.
func statePayload(g *game) []byte {
	state := types.GameState{
		Status: g.summary.Status,
		Turn:   g.summary.Turn,
		Boards: g.boards,
	}
	payload, _ := json.Marshal(state)
	return payload
}

func (s *Server) broadcastListLocked() {
	payload := s.listPayload()
	for sub := range s.listSubs {
		select {
		case sub <- payload:
		default:
		}
	}
}

func (s *Server) broadcastGameLocked(g *game) {
	payload := statePayload(g)
	for sub := range g.subs {
		select {
		case sub <- payload:
		default:
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorBody{Message: message})
}

// serveSSE pushes the first payload and then every broadcast until the
// client goes away.
func serveSSE(w http.ResponseWriter, r *http.Request, first []byte, sub <-chan []byte) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "data: %s\n\n", first)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case payload := <-sub:
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
