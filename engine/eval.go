// eval.go assembles material, piece-square, pawn-structure, king-safety,
// mobility and rook-file terms into the final tapered evaluation, wrapped
// in an Evaluator so search workers each keep their own pawn and
// whole-position caches.
package engine

// Evaluator owns the caches that make repeated evaluation cheap during
// search. It is not safe for concurrent use -- each search worker should
// use its own Evaluator, mirroring how the transposition table is the
// only cache shared across workers.
type Evaluator struct {
	pawns pawnsTable
	cache evalCache
}

func NewEvaluator() *Evaluator { return &Evaluator{} }

// Evaluate returns a heuristic score for the current position from the
// point of view of the side to move: positive favors the side to move.
func (e *Evaluator) Evaluate(b *Board) int32 {
	if v, ok := e.cache.get(b.hash); ok {
		return v
	}
	v := evaluate(b, &e.pawns)
	e.cache.put(b.hash, v)
	return v
}

func evaluate(b *Board, pc *pawnsTable) int32 {
	if b.isInsufficientMaterial() {
		return 0
	}

	phase := b.Phase()
	white := b.materialAndPSQT(White).Add(b.mobility(White)).Add(b.kingSafety(White)).Add(rookFileBonus(b, White))
	black := b.materialAndPSQT(Black).Add(b.mobility(Black)).Add(b.kingSafety(Black)).Add(rookFileBonus(b, Black))

	wp, bp := b.loadPawns(pc)
	white = white.Add(wp)
	black = black.Add(bp)

	score := taper(white.Sub(black), phase)
	if b.likelyDrawish() {
		score /= 2
	}
	if b.side == Black {
		score = -score
	}
	score += taper(Params.TempoBonus, phase)
	return score
}

// rookFileBonus rewards rooks on files with no own pawn (semi-open) or no
// pawn at all (open), where they have the most scope.
func rookFileBonus(b *Board, side Color) Score {
	opp := side.Other()
	own := b.pieceBB[MakePiece(side, Pawn)]
	enemy := b.pieceBB[MakePiece(opp, Pawn)]

	var s Score
	for bb := b.pieceBB[MakePiece(side, Rook)]; bb != 0; {
		sq := bb.Pop()
		file := FileBb(sq.File())
		switch {
		case own&file == 0 && enemy&file == 0:
			s = s.Add(Params.RookOpenFileBonus)
		case own&file == 0:
			s = s.Add(Params.RookSemiOpenFileBonus)
		}
	}
	return s
}

// isInsufficientMaterial reports known draws by insufficient mating
// material: king and at most one minor piece per side, with no pawns,
// rooks or queens on the board.
func (b *Board) isInsufficientMaterial() bool {
	for _, c := range [2]Color{White, Black} {
		if b.pieceBB[MakePiece(c, Pawn)] != 0 || b.pieceBB[MakePiece(c, Rook)] != 0 || b.pieceBB[MakePiece(c, Queen)] != 0 {
			return false
		}
	}
	whiteMinors := b.pieceBB[WhiteKnight].Count() + b.pieceBB[WhiteBishop].Count()
	blackMinors := b.pieceBB[BlackKnight].Count() + b.pieceBB[BlackBishop].Count()
	return whiteMinors <= 1 && blackMinors <= 1
}

// likelyDrawish reports positions that are materially unbalanced on paper
// but hard to convert in practice: opposite-colored bishops as the only
// remaining minor pieces, with no rooks or queens on the board.
func (b *Board) likelyDrawish() bool {
	wb, bb := b.pieceBB[WhiteBishop], b.pieceBB[BlackBishop]
	if wb.Count() != 1 || bb.Count() != 1 {
		return false
	}
	if b.pieceBB[WhiteKnight] != 0 || b.pieceBB[BlackKnight] != 0 {
		return false
	}
	if b.pieceBB[WhiteRook] != 0 || b.pieceBB[BlackRook] != 0 || b.pieceBB[WhiteQueen] != 0 || b.pieceBB[BlackQueen] != 0 {
		return false
	}
	wSq, bSq := wb.AsSquare(), bb.AsSquare()
	wDark := (wSq.Rank()+wSq.File())%2 == 0
	bDark := (bSq.Rank()+bSq.File())%2 == 0
	return wDark != bDark
}
