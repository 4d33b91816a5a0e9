// hce_params.go collects every tunable weight the handcrafted evaluator
// uses into one struct, the way original_source/HCEParameters.h keeps a
// single flat parameter block instead of scattering magic numbers through
// the evaluation code. Unlike the C++ original this isn't laid out as a
// packed array indexed by a computed offset -- Go has no use for that
// trick -- but the categories (material, PSQT, pawn structure, king
// safety, mobility, tempo) are the same ones HCEParameters.h groups under
// comment banners.
package engine

// Score is a tapered (midgame, endgame) evaluation term, blended by game
// phase in Evaluate.
type Score struct {
	MG int32
	EG int32
}

func (s Score) Add(o Score) Score { return Score{s.MG + o.MG, s.EG + o.EG} }
func (s Score) Sub(o Score) Score { return Score{s.MG - o.MG, s.EG - o.EG} }
func (s Score) Neg() Score        { return Score{-s.MG, -s.EG} }
func (s Score) Mul(n int32) Score { return Score{s.MG * n, s.EG * n} }

// HCEParams bundles every weight the evaluator reads. Params is the
// package-level set the evaluator uses; nothing in this repository loads
// an alternate set.
type HCEParams struct {
	PieceValue [7]Score // indexed by Figure; NoFigure unused

	PawnShieldBonus   [4]int32 // 0..3 shield pawns in front of the king
	KingOpenFilePenalty [2]int32 // semi-open, fully-open
	PawnStormBonus    [8]int32 // indexed by attacker pawn's rank

	IsolatedPawnPenalty Score
	DoubledPawnPenalty  Score
	BackwardPawnPenalty Score
	ConnectedPawnBonus  Score
	PassedPawnBonus     [8]Score // indexed by rank from own side's perspective

	KnightMobility Score
	BishopMobility Score
	RookMobility   Score
	QueenMobility  Score

	BishopPairBonus     Score
	RookOpenFileBonus   Score
	RookSemiOpenFileBonus Score

	KingAttackerWeight [5]int32 // indexed by number of attacking pieces, clamped

	TempoBonus Score

	KingProximityPassedPawnWeight int32
}

// Params is the default weight set, tuned to roughly the Michniewski
// simplified-evaluation values.
var Params = HCEParams{
	PieceValue: [7]Score{
		{0, 0}, {100, 120}, {320, 330}, {330, 340}, {500, 560}, {950, 970}, {0, 0},
	},

	PawnShieldBonus:     [4]int32{-20, 0, 8, 14},
	KingOpenFilePenalty: [2]int32{-10, -24},
	PawnStormBonus:      [8]int32{0, 0, -4, -8, -16, -24, -10, 0},

	IsolatedPawnPenalty: Score{-10, -18},
	DoubledPawnPenalty:  Score{-8, -20},
	BackwardPawnPenalty: Score{-6, -10},
	ConnectedPawnBonus:  Score{6, 10},
	PassedPawnBonus: [8]Score{
		{0, 0}, {0, 0}, {4, 8}, {8, 16}, {18, 28}, {32, 48}, {54, 78}, {0, 0},
	},

	KnightMobility: Score{4, 4},
	BishopMobility: Score{5, 5},
	RookMobility:   Score{2, 4},
	QueenMobility:  Score{1, 2},

	BishopPairBonus:       Score{30, 45},
	RookOpenFileBonus:     Score{18, 6},
	RookSemiOpenFileBonus: Score{10, 4},

	KingAttackerWeight: [5]int32{0, 10, 30, 55, 80},

	TempoBonus: Score{12, 6},

	KingProximityPassedPawnWeight: 5,
}
