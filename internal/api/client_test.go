package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

func TestJoinGame_SeatConflictIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/games/7/players/A", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(types.ErrorBody{Message: "Seat taken"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	err := c.JoinGame(context.Background(), "7", types.SeatA)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "Seat taken", conflict.Message)
}

func TestJoinGame_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	require.NoError(t, c.JoinGame(context.Background(), "1", types.SeatB))
}

func TestPlaceShip_SuccessReturnsAuthoritativeState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/games/3/players/B/ships", r.URL.Path)

		var req types.PlaceShipRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, types.PlaceShipRequest{X: 0, Y: 0, Direction: types.Horizontal, Type: types.PatrolBoat}, req)

		w.Write([]byte(`{"status":"waiting","turn":"A","boards":{"B":[["A","A"]]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	state, err := c.PlaceShip(context.Background(), "3", types.SeatB, 0, 0, types.Horizontal, types.PatrolBoat)
	require.NoError(t, err)
	require.Equal(t, types.CellShip, state.Boards[types.SeatB].At(0, 0))
	require.Equal(t, types.CellShip, state.Boards[types.SeatB].At(1, 0))
}

func TestPlaceShip_RejectionIsValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(types.ErrorBody{Message: "ship out of bounds"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	_, err := c.PlaceShip(context.Background(), "3", types.SeatA, 9, 9, types.Horizontal, types.Carrier)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "ship out of bounds", validation.Message)
}

func TestCreateGame_EmptyBodyIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	_, err := c.CreateGame(context.Background())
	require.NoError(t, err)
}

func TestListGames_DecodesSummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","status":"waiting","turn":"A","players":{"A":true}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	games, err := c.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, "1", games[0].ID)
	require.True(t, games[0].Players[types.SeatA])
}

func TestDo_ConflictIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())
	err := c.JoinGame(context.Background(), "1", types.SeatA)
	require.Error(t, err)
	require.EqualValues(t, 1, calls.Load())
}

func TestDo_TransportFailureRetriesThenSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every attempt fails at dial

	c := NewClient(srv.URL, zap.NewNop())
	_, err := c.ListGames(context.Background())
	require.Error(t, err)

	var conflict *ConflictError
	require.False(t, errors.As(err, &conflict), "transport failures must not look like conflicts")
}
