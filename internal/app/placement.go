package app

import "github.com/arnokoehler/battleship-frontend/pkg/types"

// placement owns the local player's remaining ship inventory and the
// transient "which ship, which orientation" intent. The inventory only ever
// shrinks, and only on a successful placement acknowledgment — never
// speculatively while a request is in flight.
type placement struct {
	inventory   []types.ShipKind
	selected    *types.ShipKind
	orientation types.Orientation
}

func newPlacement() placement {
	return placement{
		inventory:   types.Fleet(),
		orientation: types.Horizontal,
	}
}

func (p *placement) has(kind types.ShipKind) bool {
	for _, k := range p.inventory {
		if k == kind {
			return true
		}
	}
	return false
}

// selectShip sets the intent iff the ship is still in inventory. Selecting
// only ever sets; re-clicking the same ship does not toggle it off.
func (p *placement) selectShip(kind types.ShipKind) bool {
	if !p.has(kind) {
		return false
	}
	k := kind
	p.selected = &k
	return true
}

func (p *placement) setOrientation(o types.Orientation) {
	p.orientation = o
}

// take clears the intent and hands back the selected ship, unlocking the UI
// while the placement request is in flight.
func (p *placement) take() (types.ShipKind, bool) {
	if p.selected == nil {
		return "", false
	}
	kind := *p.selected
	p.selected = nil
	return kind, true
}

// confirm removes an acknowledged ship from inventory, exactly once.
func (p *placement) confirm(kind types.ShipKind) {
	for i, k := range p.inventory {
		if k == kind {
			p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
			return
		}
	}
}
