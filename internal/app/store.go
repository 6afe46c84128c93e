// Package app holds the client's synchronization core: one store goroutine
// owns the whole UI state aggregate (game list, joined session, ship
// inventory, pagination, error dialog) and applies every mutation — server
// push, user command, or completed action call — as a run-to-completion
// message. No locks; snapshots replace state wholesale.
package app

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/internal/api"
	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

// API is the slice of the action client the store depends on.
type API interface {
	ListGames(ctx context.Context) ([]types.GameSummary, error)
	CreateGame(ctx context.Context) (types.GameSummary, error)
	JoinGame(ctx context.Context, gameID string, seat types.Seat) error
	PlaceShip(ctx context.Context, gameID string, seat types.Seat, x, y int, orientation types.Orientation, kind types.ShipKind) (types.GameState, error)
}

// Subscription is a cancellable push-channel handle.
type Subscription interface{ Close() }

// Opener opens a push subscription on a resource path ("/games" or
// "/games/{id}"). Callbacks may fire from the transport goroutine; they must
// only post messages back into the store inbox.
type Opener func(path string, onMessage func(json.RawMessage), onError func(error)) (Subscription, error)

type Store struct {
	inbox  chan Msg
	api    API
	open   Opener
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	list      listSync
	pager     pager
	session   session
	placement placement
	dialog    errorDialog

	listChannel Subscription
	nextGen     int

	version     int
	subscribers map[string]chan View
}

func NewStore(parent context.Context, a API, open Opener, log *zap.Logger, pageSize int) *Store {
	ctx, cancel := context.WithCancel(parent)
	s := &Store{
		inbox:       make(chan Msg, 64),
		api:         a,
		open:        open,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
		list:        newListSync(),
		pager:       pager{size: pageSize},
		placement:   newPlacement(),
		subscribers: make(map[string]chan View),
	}
	go s.loop()
	return s
}

func (s *Store) Inbox() chan<- Msg { return s.inbox }

// Start fetches the initial game list and opens the always-on list stream.
// The stream is never reopened automatically; a failure leaves the list
// stale until the program restarts. The open itself runs on the loop so it
// never races other messages.
func (s *Store) Start() error {
	reply := make(chan error, 1)
	s.inbox <- startList{reply: reply}
	return <-reply
}

func (s *Store) openListChannel() error {
	ch, err := s.open("/games",
		func(raw json.RawMessage) {
			var games []types.GameSummary
			if err := json.Unmarshal(raw, &games); err != nil {
				s.log.Warn("bad game list payload", zap.Error(err))
				return
			}
			s.post(listSnapshot{games: games})
		},
		func(err error) { s.post(listFailed{err: err}) },
	)
	if err != nil {
		return err
	}
	s.listChannel = ch
	s.list.live = true

	go func() {
		games, err := s.api.ListGames(s.ctx)
		if err != nil {
			s.log.Warn("initial game list fetch failed", zap.Error(err))
			return
		}
		s.post(listSnapshot{games: games})
	}()
	return nil
}

// post delivers an internal event unless the store already shut down.
func (s *Store) post(m Msg) {
	select {
	case s.inbox <- m:
	case <-s.ctx.Done():
	}
}

func (s *Store) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Subscribe:
				s.subscribers[msg.ID] = msg.Outbox
				msg.Outbox <- s.view()
				continue
			case Unsubscribe:
				delete(s.subscribers, msg.ID)
				continue
			case GetView:
				msg.Reply <- s.view()
				continue
			case startList:
				msg.reply <- s.openListChannel()
				continue
			case Shutdown:
				s.shutdown()
				return
			}

			if s.handle(m) {
				s.version++
				s.broadcast()
			}
		}
	}
}

// handle applies one message and reports whether anything the UI can see
// changed. Every branch runs to completion before the next message.
func (s *Store) handle(m Msg) bool {
	switch msg := m.(type) {

	case listSnapshot:
		s.list.applySnapshot(msg.games)
		s.pager.clamp(len(msg.games))
		return true

	case listFailed:
		s.list.live = false
		s.listChannel = nil
		s.dialog.show("Lost connection to the game list: " + msg.err.Error())
		return true

	case CreateGame:
		go func() {
			summary, err := s.api.CreateGame(s.ctx)
			s.post(createDone{summary: summary, err: err})
		}()
		return false

	case createDone:
		if msg.err != nil {
			s.dialog.show("Could not create game: " + msg.err.Error())
			return true
		}
		if msg.summary.ID != "" {
			s.log.Info("game created", zap.String("game", msg.summary.ID))
		}
		// The push stream will carry the new game; refresh once anyway in
		// case the server does not push on create.
		go func() {
			games, err := s.api.ListGames(s.ctx)
			if err != nil {
				s.log.Warn("list refresh after create failed", zap.Error(err))
				return
			}
			s.post(listSnapshot{games: games})
		}()
		return false

	case JoinGame:
		go func() {
			err := s.api.JoinGame(s.ctx, msg.GameID, msg.Seat)
			s.post(joinDone{gameID: msg.GameID, seat: msg.Seat, err: err})
		}()
		return false

	case joinDone:
		if msg.err != nil {
			var conflict *api.ConflictError
			if errors.As(msg.err, &conflict) {
				// The seat stays disabled locally even though the next list
				// snapshot may not reflect the occupancy yet.
				s.list.markTaken(msg.gameID, msg.seat)
			}
			s.dialog.show(msg.err.Error())
			return true
		}
		s.list.markTaken(msg.gameID, msg.seat)
		s.startSession(msg.gameID, msg.seat)
		return true

	case sessionSnapshot:
		if msg.gen != s.session.gen {
			s.log.Debug("dropping stale session push", zap.Int("gen", msg.gen))
			return false
		}
		state := msg.state
		s.session.state = &state
		return true

	case sessionFailed:
		if msg.gen != s.session.gen {
			return false
		}
		s.session.channel = nil
		s.dialog.show("Lost connection to the game: " + msg.err.Error())
		return true

	case LeaveGame:
		if !s.session.active() {
			return false
		}
		s.stopSession()
		return true

	case SelectShip:
		if !s.placement.selectShip(msg.Kind) {
			return false
		}
		return true

	case SetOrientation:
		s.placement.setOrientation(msg.Orientation)
		return true

	case CellClick:
		if !s.session.active() {
			return false
		}
		kind, ok := s.placement.take()
		if !ok {
			return false
		}
		gen, gameID, seat := s.session.gen, s.session.gameID, s.session.seat
		orientation := s.placement.orientation
		go func() {
			state, err := s.api.PlaceShip(s.ctx, gameID, seat, msg.X, msg.Y, orientation, kind)
			s.post(placeDone{gen: gen, kind: kind, state: state, err: err})
		}()
		return true // intent cleared; UI unlocks immediately

	case placeDone:
		if msg.gen != s.session.gen {
			s.log.Debug("dropping placement result from an old session")
			return false
		}
		if msg.err != nil {
			// The ship was never placed: it stays in inventory, unselected.
			s.dialog.show(msg.err.Error())
			return true
		}
		s.placement.confirm(msg.kind)
		state := msg.state
		s.session.state = &state
		return true

	case NextPage:
		return s.pager.next(len(s.list.games))

	case PrevPage:
		return s.pager.prev()

	case DismissError:
		s.dialog.dismiss()
		return true

	default:
		return false
	}
}

// startSession tears down any previous session channel before opening the
// new one, so two live subscriptions never race on the same session slot.
func (s *Store) startSession(gameID string, seat types.Seat) {
	s.stopSession()

	s.nextGen++
	gen := s.nextGen
	s.session = session{gameID: gameID, seat: seat, gen: gen}
	s.placement = newPlacement()

	ch, err := s.open("/games/"+gameID,
		func(raw json.RawMessage) {
			var state types.GameState
			if err := json.Unmarshal(raw, &state); err != nil {
				s.log.Warn("bad game state payload", zap.Error(err))
				return
			}
			s.post(sessionSnapshot{gen: gen, state: state})
		},
		func(err error) { s.post(sessionFailed{gen: gen, err: err}) },
	)
	if err != nil {
		s.dialog.show("Could not subscribe to the game: " + err.Error())
		return
	}
	s.session.channel = ch
	s.log.Info("session started", zap.String("game", gameID), zap.String("seat", string(seat)))
}

func (s *Store) stopSession() {
	if s.session.channel != nil {
		s.session.channel.Close()
	}
	// Bump the generation so anything still queued from the old channel (or
	// an in-flight placement) can never match again.
	s.nextGen++
	s.session = session{gen: s.nextGen}
	s.placement = newPlacement()
}

func (s *Store) broadcast() {
	v := s.view()
	for id, out := range s.subscribers {
		select {
		case out <- v:
		default:
			// Subscriber stopped draining - drop it.
			close(out)
			delete(s.subscribers, id)
		}
	}
}

func (s *Store) shutdown() {
	s.stopSession()
	if s.listChannel != nil {
		s.listChannel.Close()
		s.listChannel = nil
	}
	for id, out := range s.subscribers {
		close(out)
		delete(s.subscribers, id)
	}
	s.cancel()
}
