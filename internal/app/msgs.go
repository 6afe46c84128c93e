package app

import (
	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

// Msg is anything the store loop can handle. Exported messages are user
// commands and introspection; unexported ones are internal events posted by
// stream callbacks and completed action calls.
type Msg interface{ isStoreMsg() }

// CreateGame asks the server for a new game and refreshes the list.
type CreateGame struct{}

// JoinGame claims a seat and, on success, starts the game session.
type JoinGame struct {
	GameID string
	Seat   types.Seat
}

// LeaveGame tears down the current session, if any.
type LeaveGame struct{}

// SelectShip records the placement intent for a ship still in inventory.
type SelectShip struct{ Kind types.ShipKind }

// SetOrientation flips the placement orientation. Always valid.
type SetOrientation struct{ Orientation types.Orientation }

// CellClick turns the current placement intent into a placement request
// aimed at the clicked own-board cell. No-op without intent or session.
type CellClick struct{ X, Y int }

type NextPage struct{}
type PrevPage struct{}

// DismissError hides the error dialog. The message is kept around.
type DismissError struct{}

// Subscribe registers an outbox that receives a View after every change.
type Subscribe struct {
	ID     string
	Outbox chan View
}

type Unsubscribe struct{ ID string }

// GetView reads the current view without racing the loop.
type GetView struct{ Reply chan View }

type Shutdown struct{}

func (CreateGame) isStoreMsg()     {}
func (JoinGame) isStoreMsg()       {}
func (LeaveGame) isStoreMsg()      {}
func (SelectShip) isStoreMsg()     {}
func (SetOrientation) isStoreMsg() {}
func (CellClick) isStoreMsg()      {}
func (NextPage) isStoreMsg()       {}
func (PrevPage) isStoreMsg()       {}
func (DismissError) isStoreMsg()   {}
func (Subscribe) isStoreMsg()      {}
func (Unsubscribe) isStoreMsg()    {}
func (GetView) isStoreMsg()        {}
func (Shutdown) isStoreMsg()       {}

// Internal events.

type startList struct{ reply chan error }

type listSnapshot struct{ games []types.GameSummary }

type listFailed struct{ err error }

type sessionSnapshot struct {
	gen   int
	state types.GameState
}

type sessionFailed struct {
	gen int
	err error
}

type createDone struct {
	summary types.GameSummary
	err     error
}

type joinDone struct {
	gameID string
	seat   types.Seat
	err    error
}

type placeDone struct {
	gen   int
	kind  types.ShipKind
	state types.GameState
	err   error
}

func (startList) isStoreMsg()       {}
func (listSnapshot) isStoreMsg()    {}
func (listFailed) isStoreMsg()      {}
func (sessionSnapshot) isStoreMsg() {}
func (sessionFailed) isStoreMsg()   {}
func (createDone) isStoreMsg()      {}
func (joinDone) isStoreMsg()        {}
func (placeDone) isStoreMsg()       {}
