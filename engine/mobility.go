// mobility.go scores how many squares each minor/major piece can move to,
// excluding squares occupied by its own side and squares attacked by an
// enemy pawn (moving there just loses the piece, so it shouldn't count as
// usable mobility).
package engine

func (b *Board) mobility(side Color) Score {
	opp := side.Other()
	occ := b.Occupied()
	own := b.ByColor(side) | b.kingSquare[colorIndex(side)].Bitboard()

	var pawnControlled Bitboard
	for bb := b.pieceBB[MakePiece(opp, Pawn)]; bb != 0; {
		pawnControlled |= pawnAttackFrom(bb.Pop(), opp)
	}
	safe := ^own &^ pawnControlled

	var s Score
	weight := func(fig Figure) Score {
		switch fig {
		case Knight:
			return Params.KnightMobility
		case Bishop:
			return Params.BishopMobility
		case Rook:
			return Params.RookMobility
		case Queen:
			return Params.QueenMobility
		}
		return Score{}
	}

	for _, fig := range [4]Figure{Knight, Bishop, Rook, Queen} {
		w := weight(fig)
		for bb := b.pieceBB[MakePiece(side, fig)]; bb != 0; {
			sq := bb.Pop()
			n := int32((b.pseudoAttack(fig, sq, occ) & safe).Count())
			s = s.Add(w.Mul(n))
		}
	}
	return s
}
