package app

import "github.com/arnokoehler/battleship-frontend/pkg/types"

// SessionView is the render-facing slice of the joined game, if any.
type SessionView struct {
	GameID string
	Seat   types.Seat
	Live   bool // push channel still open
	Status types.GameStatus
	Turn   types.Seat
	Winner *types.Seat

	// Boards are shared with the store but never mutated in place — state
	// arrives by wholesale replacement — so reading them off-loop is safe.
	MyBoard       types.Board
	OpponentBoard types.Board
}

// View is a self-contained snapshot of everything the UI renders. Slices
// and maps are copies; readers never observe a half-applied transition.
type View struct {
	Version int

	Games      []types.GameSummary // visible window only
	TotalGames int
	Page       int
	PageSize   int
	Disabled   map[string]bool // SeatKey -> join affordance disabled
	ListLive   bool

	Session *SessionView

	Inventory   []types.ShipKind
	Selected    *types.ShipKind
	Orientation types.Orientation

	ErrorMessage string
	ErrorVisible bool
}

func (s *Store) view() View {
	v := View{
		Version:      s.version,
		Games:        append([]types.GameSummary(nil), s.pager.slice(s.list.games)...),
		TotalGames:   len(s.list.games),
		Page:         s.pager.page,
		PageSize:     s.pager.size,
		Disabled:     s.list.disabled(),
		ListLive:     s.list.live,
		Inventory:    append([]types.ShipKind(nil), s.placement.inventory...),
		Orientation:  s.placement.orientation,
		ErrorMessage: s.dialog.message,
		ErrorVisible: s.dialog.visible,
	}
	if s.placement.selected != nil {
		k := *s.placement.selected
		v.Selected = &k
	}
	if s.session.active() {
		sv := SessionView{
			GameID:        s.session.gameID,
			Seat:          s.session.seat,
			Live:          s.session.channel != nil,
			Status:        types.StatusWaiting, // until the first push lands
			MyBoard:       s.session.myBoard(),
			OpponentBoard: s.session.opponentBoard(),
		}
		if st := s.session.state; st != nil {
			sv.Status = st.Status
			sv.Turn = st.Turn
			sv.Winner = st.Winner
		}
		v.Session = &sv
	}
	return v
}
