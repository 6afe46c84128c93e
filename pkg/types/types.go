// Package types holds the wire contract between the battleship client and
// the game server: seats, boards, cell codes, and the JSON payloads the
// server pushes or returns.
package types

import "encoding/json"

// BoardSize is the fixed grid dimension (rows and columns).
const BoardSize = 10

type Seat string

const (
	SeatA Seat = "A"
	SeatB Seat = "B"
)

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

func ParseSeat(raw string) (Seat, bool) {
	switch raw {
	case "A":
		return SeatA, true
	case "B":
		return SeatB, true
	default:
		return "", false
	}
}

type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
)

// ParseStatus maps a wire status onto the known set. Unknown values read as
// waiting rather than failing; the server may grow statuses we don't know.
func ParseStatus(raw string) GameStatus {
	switch GameStatus(raw) {
	case StatusInProgress:
		return StatusInProgress
	case StatusFinished:
		return StatusFinished
	default:
		return StatusWaiting
	}
}

func (s *GameStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

type Cell int

const (
	CellEmpty Cell = iota
	CellShip
	CellHit
	CellMiss
)

// Wire codes: "A" own ship, "X" hit, "O" miss. Anything else is empty.
const (
	codeShip = "A"
	codeHit  = "X"
	codeMiss = "O"
)

func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case codeShip:
		*c = CellShip
	case codeHit:
		*c = CellHit
	case codeMiss:
		*c = CellMiss
	default:
		*c = CellEmpty
	}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c {
	case CellShip:
		return json.Marshal(codeShip)
	case CellHit:
		return json.Marshal(codeHit)
	case CellMiss:
		return json.Marshal(codeMiss)
	default:
		return json.Marshal("")
	}
}

// Board is a fixed-size grid, rows then columns.
type Board [][]Cell

func NewBoard() Board {
	b := make(Board, BoardSize)
	for i := range b {
		b[i] = make([]Cell, BoardSize)
	}
	return b
}

// At returns the cell at column x, row y, or CellEmpty when the server sent
// a smaller grid than expected.
func (b Board) At(x, y int) Cell {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return CellEmpty
	}
	return b[y][x]
}

// GameSummary is one element of the game-list payload.
type GameSummary struct {
	ID      string        `json:"id"`
	Status  GameStatus    `json:"status"`
	Turn    Seat          `json:"turn"`
	Players map[Seat]bool `json:"players"`
}

// GameState is the full session snapshot pushed on the per-game stream and
// returned by ship placement. The client replaces its copy wholesale.
type GameState struct {
	Status GameStatus     `json:"status"`
	Turn   Seat           `json:"turn"`
	Winner *Seat          `json:"winner,omitempty"`
	Boards map[Seat]Board `json:"boards"`
}

type ShipKind string

const (
	Carrier    ShipKind = "carrier"
	Battleship ShipKind = "battleship"
	Destroyer  ShipKind = "destroyer"
	Submarine  ShipKind = "submarine"
	PatrolBoat ShipKind = "patrol_boat"
)

var shipLengths = map[ShipKind]int{
	Carrier:    5,
	Battleship: 4,
	Destroyer:  3,
	Submarine:  3,
	PatrolBoat: 2,
}

// Length returns the canonical length for the kind, 0 for unknown kinds.
func (k ShipKind) Length() int { return shipLengths[k] }

// Fleet returns the five ships every player starts with, longest first.
func Fleet() []ShipKind {
	return []ShipKind{Carrier, Battleship, Destroyer, Submarine, PatrolBoat}
}

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// PlaceShipRequest is the body of POST /games/{id}/players/{seat}/ships.
type PlaceShipRequest struct {
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Direction Orientation `json:"direction"`
	Type      ShipKind    `json:"type"`
}

// ErrorBody is the JSON shape of 4xx responses.
type ErrorBody struct {
	Message string `json:"message"`
}
