package app

import "github.com/arnokoehler/battleship-frontend/pkg/types"

// session is the state of the one joined game: identity, the live push
// channel, and the latest wholesale snapshot. At most one session channel is
// live at any time; each start bumps the generation so events queued by an
// older channel are recognizably stale.
type session struct {
	gameID  string
	seat    types.Seat
	gen     int
	channel Subscription
	state   *types.GameState
}

func (s *session) active() bool { return s.gameID != "" }

// myBoard is the local player's own grid, nil until the first push.
func (s *session) myBoard() types.Board {
	if s.state == nil {
		return nil
	}
	return s.state.Boards[s.seat]
}

// opponentBoard passes the server-provided opponent grid through untouched.
// The server masks unhit ships; the client never infers or reveals ship
// positions on its own.
func (s *session) opponentBoard() types.Board {
	if s.state == nil {
		return nil
	}
	return s.state.Boards[s.seat.Other()]
}
