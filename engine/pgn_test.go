package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSANDisambiguatesByFileThenRank(t *testing.T) {
	// Two white knights, both able to reach d2: the one on b1 needs no
	// qualifier once the one on f3 is off the board, but with both present
	// the file alone resolves it (Nbd2 vs Nfd2).
	b, err := FromFEN("4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1")
	require.NoError(t, err)

	m, err := b.ParseMove("b1d2")
	require.NoError(t, err)
	require.Equal(t, "Nbd2", b.SAN(m))

	m, err = b.ParseMove("f3d2")
	require.NoError(t, err)
	require.Equal(t, "Nfd2", b.SAN(m))
}

func TestSANDisambiguatesByRankWhenFilesMatch(t *testing.T) {
	// Two white rooks share the a-file and can both reach a4: file alone
	// doesn't resolve it, so the rank is used instead (R1a4 vs R8a4).
	b, err := FromFEN("R7/8/8/4k3/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	m, err := b.ParseMove("a1a4")
	require.NoError(t, err)
	require.Equal(t, "R1a4", b.SAN(m))
}

func TestSANMarksCheckAndMate(t *testing.T) {
	// A ladder mate: Rb1-b8 checks along the back rank while Ra7 denies
	// every rank-7 flight square.
	b, err := FromFEN("7k/R7/8/8/8/8/8/1R5K w - - 0 1")
	require.NoError(t, err)

	m, err := b.ParseMove("b1b8")
	require.NoError(t, err)
	require.Equal(t, "Rb8#", b.SAN(m))
}

func TestSANPawnCaptureAndPromotion(t *testing.T) {
	b, err := FromFEN("2n1k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m, err := b.ParseMove("b7c8q")
	require.NoError(t, err)
	require.Equal(t, "bxc8=Q+", b.SAN(m))
}

func TestParseSANRoundTripsThroughGeneratedMoves(t *testing.T) {
	b, err := FromFEN(FENKiwipete)
	require.NoError(t, err)

	for _, m := range b.GenerateMoves() {
		san := b.SAN(m)
		got, err := b.ParseSAN(san)
		require.NoError(t, err, "san %q", san)
		require.Equal(t, m, got, "san %q", san)
	}
}

func TestFromPGNReplaysMovetext(t *testing.T) {
	b, err := FromPGN(`[Event "Test"]
[Site "?"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 *`)
	require.NoError(t, err)

	want, err := FromFEN("r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4")
	require.NoError(t, err)
	require.Equal(t, want.Hash(), b.Hash())
}

func TestFromPGNHonorsFENTag(t *testing.T) {
	b, err := FromPGN(`[FEN "7k/R7/8/8/8/8/8/1R5K w - - 0 1"]
[SetUp "1"]

1. Rb8# *`)
	require.NoError(t, err)
	require.True(t, b.IsCheck())
	require.Empty(t, b.GenerateMoves())
}

func TestToPGNRoundTripsThroughFromPGN(t *testing.T) {
	b, err := FromFEN(FENStartPos)
	require.NoError(t, err)
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		m, err := b.ParseMove(s)
		require.NoError(t, err)
		b.MakeMove(m)
	}

	pgn := b.ToPGN()
	replayed, err := FromPGN(pgn)
	require.NoError(t, err)
	require.Equal(t, b.Hash(), replayed.Hash())
}
