package app

import (
	"fmt"

	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

// listSync keeps the latest game-list snapshot plus a local overlay of seat
// occupancy the server has told us about out-of-band (a SeatTaken conflict,
// or our own successful join) that the next snapshot may not reflect yet.
type listSync struct {
	games   []types.GameSummary
	overlay map[string]bool
	live    bool
}

func newListSync() listSync {
	return listSync{overlay: make(map[string]bool)}
}

// SeatKey is the disabled-map key for one join affordance.
func SeatKey(gameID string, seat types.Seat) string {
	return fmt.Sprintf("%s-%s", gameID, seat)
}

// applySnapshot replaces the list wholesale. No diffing; snapshots are small
// and the server sends the full ordered sequence every time. Overlay entries
// that the snapshot now reflects are dropped as redundant.
func (l *listSync) applySnapshot(games []types.GameSummary) {
	l.games = games
	for _, g := range games {
		for seat, present := range g.Players {
			if present {
				delete(l.overlay, SeatKey(g.ID, seat))
			}
		}
	}
}

// markTaken records locally observed occupancy for (game, seat). It sticks
// across snapshots until one of them reports the seat occupied itself.
func (l *listSync) markTaken(gameID string, seat types.Seat) {
	l.overlay[SeatKey(gameID, seat)] = true
}

// disabled is the union of server-reported occupancy and the local overlay.
func (l *listSync) disabled() map[string]bool {
	m := make(map[string]bool, len(l.overlay))
	for k := range l.overlay {
		m[k] = true
	}
	for _, g := range l.games {
		for seat, present := range g.Players {
			if present {
				m[SeatKey(g.ID, seat)] = true
			}
		}
	}
	return m
}
