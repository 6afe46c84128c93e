package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arnokoehler/battleship-frontend/internal/app"
	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

// viewMsg carries a fresh store snapshot into the tea loop.
type viewMsg app.View

type model struct {
	store *app.Store
	view  app.View

	selectedRow      int // lobby list row
	cursorX, cursorY int // board cursor
}

func newModel(store *app.Store) model {
	return model{store: store}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = app.View(msg)
		if max := len(m.view.Games) - 1; m.selectedRow > max {
			if max < 0 {
				max = 0
			}
			m.selectedRow = max
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view.ErrorVisible {
			switch msg.String() {
			case "enter", "esc", " ":
				m.store.Inbox() <- app.DismissError{}
			}
			return m, nil
		}
		if m.view.Session == nil {
			return m.updateLobby(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c":
		m.store.Inbox() <- app.CreateGame{}
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.view.Games)-1 {
			m.selectedRow++
		}
	case "right", "n":
		m.store.Inbox() <- app.NextPage{}
	case "left", "p":
		m.store.Inbox() <- app.PrevPage{}
	case "a", "b":
		if m.selectedRow >= len(m.view.Games) {
			break
		}
		seat := types.SeatA
		if msg.String() == "b" {
			seat = types.SeatB
		}
		game := m.view.Games[m.selectedRow]
		if m.view.Disabled[app.SeatKey(game.ID, seat)] {
			break
		}
		m.store.Inbox() <- app.JoinGame{GameID: game.ID, Seat: seat}
	}
	return m, nil
}

func (m model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.store.Inbox() <- app.LeaveGame{}
	case "up":
		if m.cursorY > 0 {
			m.cursorY--
		}
	case "down":
		if m.cursorY < types.BoardSize-1 {
			m.cursorY++
		}
	case "left":
		if m.cursorX > 0 {
			m.cursorX--
		}
	case "right":
		if m.cursorX < types.BoardSize-1 {
			m.cursorX++
		}
	case "r":
		next := types.Vertical
		if m.view.Orientation == types.Vertical {
			next = types.Horizontal
		}
		m.store.Inbox() <- app.SetOrientation{Orientation: next}
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.view.Inventory) {
			m.store.Inbox() <- app.SelectShip{Kind: m.view.Inventory[idx]}
		}
	case "enter", " ":
		m.store.Inbox() <- app.CellClick{X: m.cursorX, Y: m.cursorY}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	if m.view.Session == nil {
		m.renderLobby(&b)
	} else {
		m.renderBoard(&b)
	}
	if m.view.ErrorVisible {
		fmt.Fprintf(&b, "\n  !! %s  (enter to dismiss)\n", m.view.ErrorMessage)
	}
	return b.String()
}

func (m model) renderLobby(b *strings.Builder) {
	b.WriteString("  Battleship — open games\n\n")
	if !m.view.ListLive {
		b.WriteString("  (list connection lost, showing last known games)\n\n")
	}
	if len(m.view.Games) == 0 {
		b.WriteString("  no games yet — press c to create one\n")
	}
	for i, g := range m.view.Games {
		marker := "  "
		if i == m.selectedRow {
			marker = "> "
		}
		fmt.Fprintf(b, "  %sgame %-4s %-12s turn %s  %s %s\n",
			marker, g.ID, g.Status, g.Turn,
			seatLabel(m.view.Disabled, g.ID, types.SeatA),
			seatLabel(m.view.Disabled, g.ID, types.SeatB))
	}
	totalPages := 1
	if m.view.PageSize > 0 && m.view.TotalGames > 0 {
		totalPages = (m.view.TotalGames + m.view.PageSize - 1) / m.view.PageSize
	}
	fmt.Fprintf(b, "\n  page %d/%d (%d games)\n", m.view.Page+1, totalPages, m.view.TotalGames)
	b.WriteString("\n  c create · a/b join seat · ←/→ page · ↑/↓ select · q quit\n")
}

func seatLabel(disabled map[string]bool, gameID string, seat types.Seat) string {
	if disabled[app.SeatKey(gameID, seat)] {
		return fmt.Sprintf("[%s taken]", seat)
	}
	return fmt.Sprintf("[%s open ]", seat)
}

func (m model) renderBoard(b *strings.Builder) {
	s := m.view.Session
	fmt.Fprintf(b, "  Game %s — you are seat %s\n", s.GameID, s.Seat)
	switch {
	case s.Winner != nil:
		fmt.Fprintf(b, "  finished — player %s wins\n", *s.Winner)
	case s.Status == types.StatusInProgress:
		fmt.Fprintf(b, "  in progress — player %s to move\n", s.Turn)
	default:
		b.WriteString("  waiting for the second player\n")
	}
	if !s.Live {
		b.WriteString("  (game connection lost, showing last known state)\n")
	}

	b.WriteString("\n  your board                 opponent\n")
	for y := 0; y < types.BoardSize; y++ {
		b.WriteString("  ")
		for x := 0; x < types.BoardSize; x++ {
			b.WriteString(m.cellRune(s.MyBoard, x, y, true))
			b.WriteByte(' ')
		}
		b.WriteString("       ")
		for x := 0; x < types.BoardSize; x++ {
			b.WriteString(m.cellRune(s.OpponentBoard, x, y, false))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n  fleet: ")
	for i, k := range m.view.Inventory {
		sel := " "
		if m.view.Selected != nil && *m.view.Selected == k {
			sel = "*"
		}
		fmt.Fprintf(b, "%s%d:%s(%d) ", sel, i+1, k, k.Length())
	}
	if len(m.view.Inventory) == 0 {
		b.WriteString("all placed")
	}
	fmt.Fprintf(b, "\n  orientation: %s\n", m.view.Orientation)
	b.WriteString("\n  1-5 select ship · r rotate · arrows aim · enter place · esc lobby · q quit\n")
}

func (m model) cellRune(board types.Board, x, y int, own bool) string {
	if own && x == m.cursorX && y == m.cursorY {
		return "+"
	}
	switch board.At(x, y) {
	case types.CellShip:
		return "#"
	case types.CellHit:
		return "X"
	case types.CellMiss:
		return "o"
	default:
		return "."
	}
}
