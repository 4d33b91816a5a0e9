// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// see.go implements static exchange evaluation: the minimax value of a
// sequence of captures on a single square, used to order captures and to
// prune clearly-losing ones during quiescence search.
package engine

// seeBonus gives the piece values used only for the exchange evaluation --
// fixed approximations of material value, not the live evaluation weights
// in hce_params.go. SEE only needs the relative ordering of figures.
var seeBonus = [7]int32{0, 100, 325, 325, 500, 975, 20000}

// SEE returns the static exchange evaluation of m: the net material gain
// for the side to move if every possible recapture on m.To() is played out
// in order of increasing attacker value. b is the position before m is
// played.
//
// https://www.chessprogramming.org/Static_Exchange_Evaluation
func SEE(b *Board, m Move) int32 {
	us := b.side
	sq := m.To()

	var occ [2]Bitboard
	occ[0] = b.ByColor(White) | b.kingSquare[0].Bitboard()
	occ[1] = b.ByColor(Black) | b.kingSquare[1].Bitboard()

	capturedSq := sq
	if m.IsEnPassant() {
		capturedSq = RankFile(m.From().Rank(), m.To().File())
	}
	target := b.pieces[capturedSq]
	moving := b.pieces[m.From()]

	ci := colorIndex(us)
	occ[ci] = (occ[ci] &^ m.From().Bitboard()) | sq.Bitboard()
	occ[1-ci] &^= capturedSq.Bitboard()
	us = us.Other()

	score := seeBonus[target.Figure()]
	lastAttacker := moving.Figure()
	if m.IsPromotion() {
		score += seeBonus[Queen] - seeBonus[Pawn]
		lastAttacker = Queen
	}

	gain := make([]int32, 1, 16)
	gain[0] = score

	for {
		all := occ[0] | occ[1]
		ci = colorIndex(us)
		ours := occ[ci]

		var fig Figure
		var att Bitboard
		promo := false

		if a := pawnAttackFrom(sq, us.Other()) & ours & b.pieceBB[MakePiece(us, Pawn)]; a != 0 {
			fig, att = Pawn, a
			promo = sq.Rank() == 0 || sq.Rank() == 7
			goto found
		}
		if a := BbKnightAttack[sq] & ours & b.pieceBB[MakePiece(us, Knight)]; a != 0 {
			fig, att = Knight, a
			goto found
		}
		if BbSuperAttack[sq]&ours == 0 {
			// No bishop, rook, queen or king can reach sq; give up early.
			break
		}
		if a := BishopAttack(sq, all) & ours & b.pieceBB[MakePiece(us, Bishop)]; a != 0 {
			fig, att = Bishop, a
			goto found
		}
		if a := RookAttack(sq, all) & ours & b.pieceBB[MakePiece(us, Rook)]; a != 0 {
			fig, att = Rook, a
			goto found
		}
		if a := (BishopAttack(sq, all) | RookAttack(sq, all)) & ours & b.pieceBB[MakePiece(us, Queen)]; a != 0 {
			fig, att = Queen, a
			goto found
		}
		if a := BbKingAttack[sq] & ours & b.kingSquare[ci].Bitboard(); a != 0 {
			fig, att = King, a
			goto found
		}
		break

	found:
		from := att.LSB()
		occ[ci] &^= from
		score = seeBonus[lastAttacker] - score
		if promo {
			score += seeBonus[Queen] - seeBonus[Pawn]
			lastAttacker = Queen
		} else {
			lastAttacker = fig
		}
		gain = append(gain, score)
		us = us.Other()
	}

	for i := len(gain) - 2; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}

// SEESign reports whether SEE(b, m) < 0 without necessarily running the
// full swap algorithm: if the moving piece is worth no more than what it
// captures, the exchange can't lose material.
func SEESign(b *Board, m Move) bool {
	moving := b.pieces[m.From()]
	captured := b.pieces[m.To()]
	if seeBonus[moving.Figure()] <= seeBonus[captured.Figure()] {
		return false
	}
	return SEE(b, m) < 0
}
