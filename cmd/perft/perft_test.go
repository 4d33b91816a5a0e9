package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/engine"
)

// testPerft runs a depth-by-depth comparison against a table of expected
// leaf counts.
func testPerft(t *testing.T, fen string, expected []uint64) {
	for depth, want := range expected {
		if testing.Short() && want > 1_000_000 {
			return
		}
		b, err := engine.FromFEN(fen)
		require.NoError(t, err)
		require.Equal(t, want, perft(b, depth), "fen %q depth %d", fen, depth)
	}
}

func TestPerftInitialPosition(t *testing.T) {
	testPerft(t, engine.FENStartPos, []uint64{1, 20, 400, 8902, 197281, 4865609})
}

func TestPerftKiwipete(t *testing.T) {
	testPerft(t, engine.FENKiwipete, []uint64{1, 48, 2039, 97862, 4085603})
}

func TestPerftDuplain(t *testing.T) {
	testPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{1, 14, 191, 2812, 43238, 674624})
}

func TestRootParallelPerftMatchesSingleThreaded(t *testing.T) {
	b, err := engine.FromFEN(engine.FENKiwipete)
	require.NoError(t, err)
	want := perft(b, 3)
	got := rootParallelPerft(b, 3, 4)
	require.Equal(t, want, got)
}
