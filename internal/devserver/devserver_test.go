package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/internal/stream"
	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(zap.NewNop()).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func createGame(t *testing.T, srv *httptest.Server) types.GameSummary {
	t.Helper()
	resp, err := http.Post(srv.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary types.GameSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	return summary
}

func join(t *testing.T, srv *httptest.Server, id string, seat types.Seat) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/games/"+id+"/players/"+string(seat), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateAndList(t *testing.T) {
	srv := newTestServer(t)

	first := createGame(t, srv)
	require.Equal(t, "1", first.ID)
	require.Equal(t, types.StatusWaiting, first.Status)

	createGame(t, srv)

	resp, err := http.Get(srv.URL + "/games")
	require.NoError(t, err)
	defer resp.Body.Close()

	var games []types.GameSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
	require.Len(t, games, 2)
	require.Equal(t, "2", games[1].ID)
}

func TestJoin_SeatConflict(t *testing.T) {
	srv := newTestServer(t)
	g := createGame(t, srv)

	require.Equal(t, http.StatusOK, join(t, srv, g.ID, types.SeatA).StatusCode)

	resp := join(t, srv, g.ID, types.SeatA)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body types.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Seat taken", body.Message)
}

func TestJoin_BothSeatsStartTheGame(t *testing.T) {
	srv := newTestServer(t)
	g := createGame(t, srv)

	join(t, srv, g.ID, types.SeatA)
	join(t, srv, g.ID, types.SeatB)

	resp, err := http.Get(srv.URL + "/games")
	require.NoError(t, err)
	defer resp.Body.Close()

	var games []types.GameSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
	require.Equal(t, types.StatusInProgress, games[0].Status)
}

func TestPlaceShip_WritesCellsAndRejectsOutOfBounds(t *testing.T) {
	srv := newTestServer(t)
	g := createGame(t, srv)
	join(t, srv, g.ID, types.SeatB)

	place := func(req types.PlaceShipRequest) *http.Response {
		body, err := json.Marshal(req)
		require.NoError(t, err)
		resp, err := http.Post(srv.URL+"/games/"+g.ID+"/players/B/ships", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := place(types.PlaceShipRequest{X: 0, Y: 0, Direction: types.Horizontal, Type: types.PatrolBoat})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state types.GameState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	require.Equal(t, types.CellShip, state.Boards[types.SeatB].At(0, 0))
	require.Equal(t, types.CellShip, state.Boards[types.SeatB].At(1, 0))
	require.Equal(t, types.CellEmpty, state.Boards[types.SeatB].At(2, 0))

	resp = place(types.PlaceShipRequest{X: 9, Y: 9, Direction: types.Vertical, Type: types.Carrier})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = place(types.PlaceShipRequest{X: 0, Y: 0, Direction: types.Horizontal, Type: "frigate"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListStream_PushesOnCreate(t *testing.T) {
	srv := newTestServer(t)

	snapshots := make(chan []types.GameSummary, 8)
	ch, err := stream.Open(context.Background(), srv.Client(), zap.NewNop(), srv.URL+"/games",
		func(raw json.RawMessage) {
			var games []types.GameSummary
			if json.Unmarshal(raw, &games) == nil {
				snapshots <- games
			}
		},
		func(err error) { t.Errorf("list stream failed: %v", err) },
	)
	require.NoError(t, err)
	defer ch.Close()

	recv := func() []types.GameSummary {
		select {
		case s := <-snapshots:
			return s
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a list push")
			return nil
		}
	}

	require.Empty(t, recv(), "initial snapshot is the empty list")

	createGame(t, srv)
	require.Len(t, recv(), 1)
}
