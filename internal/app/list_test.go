package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnokoehler/battleship-frontend/pkg/types"
)

func TestListSync_SnapshotReplacesWholesale(t *testing.T) {
	l := newListSync()

	l.applySnapshot(summaries(3))
	require.Len(t, l.games, 3)

	l.applySnapshot(summaries(1))
	require.Len(t, l.games, 1, "no accumulation across snapshots")
}

func TestListSync_DisabledFromServerOccupancy(t *testing.T) {
	l := newListSync()
	l.applySnapshot([]types.GameSummary{
		{ID: "1", Players: map[types.Seat]bool{types.SeatA: true}},
		{ID: "2", Players: map[types.Seat]bool{}},
	})

	d := l.disabled()
	require.True(t, d[SeatKey("1", types.SeatA)])
	require.False(t, d[SeatKey("1", types.SeatB)])
	require.False(t, d[SeatKey("2", types.SeatA)])
}

func TestListSync_OverlaySurvivesStaleSnapshots(t *testing.T) {
	l := newListSync()
	l.applySnapshot([]types.GameSummary{{ID: "7", Players: map[types.Seat]bool{}}})

	l.markTaken("7", types.SeatA)
	require.True(t, l.disabled()[SeatKey("7", types.SeatA)])

	// A snapshot that has not caught up with the occupancy must not clear
	// the locally observed conflict.
	l.applySnapshot([]types.GameSummary{{ID: "7", Players: map[types.Seat]bool{}}})
	require.True(t, l.disabled()[SeatKey("7", types.SeatA)])
}

func TestListSync_OverlayDroppedOnceSnapshotReflectsIt(t *testing.T) {
	l := newListSync()
	l.markTaken("7", types.SeatA)

	l.applySnapshot([]types.GameSummary{{ID: "7", Players: map[types.Seat]bool{types.SeatA: true}}})
	require.Empty(t, l.overlay, "overlay entry is redundant once the server reports it")
	require.True(t, l.disabled()[SeatKey("7", types.SeatA)], "still disabled via occupancy")
}
