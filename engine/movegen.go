// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// movegen.go generates fully-legal moves directly, without a
// pseudo-legal-then-filter pass: checkers are counted up front, pinned
// pieces are restricted to their pin axis, and in single check every
// non-king move is restricted to capturing the checker or blocking its
// ray.
package engine

import "fmt"

// MoveList is an appendable sequence of moves.
type MoveList []Move

func isSlider(fig Figure) bool { return fig == Bishop || fig == Rook || fig == Queen }

func alignedOrtho(a, b Square) bool { return a.Rank() == b.Rank() || a.File() == b.File() }

func alignedDiag(a, b Square) bool {
	dr, df := a.Rank()-b.Rank(), a.File()-b.File()
	if dr < 0 {
		dr = -dr
	}
	if df < 0 {
		df = -df
	}
	return dr == df && dr != 0
}

// attackersTo returns every piece, either color, attacking sq given occ.
func (b *Board) attackersTo(sq Square, occ Bitboard) Bitboard {
	var attackers Bitboard
	attackers |= pawnAttackFrom(sq, White) & b.pieceBB[BlackPawn]
	attackers |= pawnAttackFrom(sq, Black) & b.pieceBB[WhitePawn]
	attackers |= BbKnightAttack[sq] & (b.pieceBB[WhiteKnight] | b.pieceBB[BlackKnight])
	attackers |= BbKingAttack[sq] & (b.kingSquare[0].Bitboard() | b.kingSquare[1].Bitboard())
	bishops := b.pieceBB[WhiteBishop] | b.pieceBB[BlackBishop] | b.pieceBB[WhiteQueen] | b.pieceBB[BlackQueen]
	attackers |= BishopAttack(sq, occ) & bishops
	rooks := b.pieceBB[WhiteRook] | b.pieceBB[BlackRook] | b.pieceBB[WhiteQueen] | b.pieceBB[BlackQueen]
	attackers |= RookAttack(sq, occ) & rooks
	return attackers
}

// computePins returns side's pieces pinned to their own king and, for each
// pinned square, the ray (including the pinning piece itself) the piece may
// still legally move along.
func (b *Board) computePins(side Color) (Bitboard, [64]Bitboard) {
	king := b.kingSquare[colorIndex(side)]
	opp := side.Other()
	occ := b.Occupied()
	own := b.ByColor(side)

	var pinned Bitboard
	var pinRay [64]Bitboard

	scan := func(sliders Bitboard, aligned func(a, b Square) bool) {
		for bb := sliders; bb != 0; {
			sq := bb.Pop()
			if !aligned(king, sq) {
				continue
			}
			between := Between(king, sq)
			blockers := between & occ
			if blockers.Count() != 1 || blockers&own == 0 {
				continue
			}
			pinnedSq := blockers.AsSquare()
			pinned |= blockers
			pinRay[pinnedSq] = between | sq.Bitboard()
		}
	}
	scan(b.pieceBB[MakePiece(opp, Bishop)]|b.pieceBB[MakePiece(opp, Queen)], alignedDiag)
	scan(b.pieceBB[MakePiece(opp, Rook)]|b.pieceBB[MakePiece(opp, Queen)], alignedOrtho)

	return pinned, pinRay
}

func (b *Board) pseudoAttack(fig Figure, sq Square, occ Bitboard) Bitboard {
	switch fig {
	case Knight:
		return BbKnightAttack[sq]
	case Bishop:
		return BishopAttack(sq, occ)
	case Rook:
		return RookAttack(sq, occ)
	case Queen:
		return QueenAttack(sq, occ)
	case King:
		return BbKingAttack[sq]
	}
	return 0
}

// GenerateMoves returns every legal move in the current position.
func (b *Board) GenerateMoves() MoveList { return b.generateMoves(false) }

// GenerateCaptures returns every legal capture and promotion (used by
// quiescence search); if the side to move is in check it returns every
// legal evasion instead, since a capture-only filter on the side in check
// could hide checkmate.
func (b *Board) GenerateCaptures() MoveList { return b.generateMoves(true) }

// ParseMove resolves long-algebraic text ("e2e4", "e7e8q") against the
// board's current legal moves -- the form the UCI "position ... moves ..."
// command takes on input.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) < 4 {
		return NullMove, fmt.Errorf("move %q too short", s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	var promo Figure = NoFigure
	if len(s) >= 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, fmt.Errorf("move %q has unknown promotion figure %q", s, s[4])
		}
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && (!m.IsPromotion() || m.PromotionFigure() == promo) {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%q is not a legal move", s)
}

func (b *Board) generateMoves(capturesOnly bool) MoveList {
	side := b.side
	opp := side.Other()
	occ := b.Occupied()
	own := b.ByColor(side) | b.kingSquare[colorIndex(side)].Bitboard()
	enemy := b.ByColor(opp) | b.kingSquare[colorIndex(opp)].Bitboard()
	king := b.kingSquare[colorIndex(side)]

	checkers := b.attackersTo(king, occ) & enemy
	numCheckers := checkers.Count()
	effectiveCapturesOnly := capturesOnly && numCheckers == 0

	pinned, pinRay := b.computePins(side)

	moves := make(MoveList, 0, 48)

	occNoKing := occ &^ king.Bitboard()
	for t := BbKingAttack[king] &^ own; t != 0; {
		to := t.Pop()
		if effectiveCapturesOnly && !enemy.Has(to) {
			continue
		}
		if b.SquareAttacked(to, opp, occNoKing) {
			continue
		}
		flag := FlagQuiet
		if enemy.Has(to) {
			flag = FlagCapture
		}
		moves = append(moves, NewMove(king, to, flag))
	}

	if numCheckers >= 2 {
		return moves
	}

	checkerSq := NoSquare
	targetMask := ^own
	if numCheckers == 1 {
		checkerSq = checkers.AsSquare()
		targetMask = checkers
		if isSlider(b.pieces[checkerSq].Figure()) {
			targetMask |= Between(king, checkerSq)
		}
	} else if !capturesOnly {
		moves = b.appendCastles(moves, side, occ)
	}

	generateTarget := targetMask
	if effectiveCapturesOnly {
		generateTarget &= enemy
	}

	for _, fig := range [4]Figure{Knight, Bishop, Rook, Queen} {
		for bb := b.pieceBB[MakePiece(side, fig)]; bb != 0; {
			sq := bb.Pop()
			allowed := generateTarget
			if pinned.Has(sq) {
				allowed &= pinRay[sq]
			}
			for t := b.pseudoAttack(fig, sq, occ) & allowed; t != 0; {
				to := t.Pop()
				flag := FlagQuiet
				if enemy.Has(to) {
					flag = FlagCapture
				}
				moves = append(moves, NewMove(sq, to, flag))
			}
		}
	}

	moves = b.generatePawnMoves(moves, side, occ, enemy, targetMask, pinned, pinRay, effectiveCapturesOnly, numCheckers, checkerSq)
	return moves
}

func (b *Board) appendCastles(moves MoveList, side Color, occ Bitboard) MoveList {
	opp := side.Other()
	clear := func(squares ...Square) bool {
		for _, sq := range squares {
			if occ.Has(sq) {
				return false
			}
		}
		return true
	}
	safe := func(squares ...Square) bool {
		for _, sq := range squares {
			if b.SquareAttacked(sq, opp, occ) {
				return false
			}
		}
		return true
	}
	if side == White {
		if b.castling&WhiteOO != 0 && clear(SquareF1, SquareG1) && safe(SquareE1, SquareF1, SquareG1) {
			moves = append(moves, NewMove(SquareE1, SquareG1, FlagKingCastle))
		}
		if b.castling&WhiteOOO != 0 && clear(SquareB1, SquareC1, SquareD1) && safe(SquareE1, SquareD1, SquareC1) {
			moves = append(moves, NewMove(SquareE1, SquareC1, FlagQueenCastle))
		}
	} else {
		if b.castling&BlackOO != 0 && clear(SquareF8, SquareG8) && safe(SquareE8, SquareF8, SquareG8) {
			moves = append(moves, NewMove(SquareE8, SquareG8, FlagKingCastle))
		}
		if b.castling&BlackOOO != 0 && clear(SquareB8, SquareC8, SquareD8) && safe(SquareE8, SquareD8, SquareC8) {
			moves = append(moves, NewMove(SquareE8, SquareC8, FlagQueenCastle))
		}
	}
	return moves
}

func appendPawnMove(moves MoveList, from, to Square, promoRank int, capture bool) MoveList {
	if to.Rank() == promoRank {
		if capture {
			return append(moves,
				NewMove(from, to, FlagPromoQueenCap), NewMove(from, to, FlagPromoRookCap),
				NewMove(from, to, FlagPromoBishopCap), NewMove(from, to, FlagPromoKnightCap))
		}
		return append(moves,
			NewMove(from, to, FlagPromoQueen), NewMove(from, to, FlagPromoRook),
			NewMove(from, to, FlagPromoBishop), NewMove(from, to, FlagPromoKnight))
	}
	flag := FlagQuiet
	if capture {
		flag = FlagCapture
	}
	return append(moves, NewMove(from, to, flag))
}

// enPassantExposesKing detects the rare discovered-check case where
// removing both the capturing and captured pawn from a shared rank opens a
// rook/queen attack on the king -- a pin across two squares at once, which
// the single-piece pin table can't represent.
func (b *Board) enPassantExposesKing(side Color, from, capturedSq Square) bool {
	king := b.kingSquare[colorIndex(side)]
	if king.Rank() != from.Rank() {
		return false
	}
	occ := b.Occupied() &^ from.Bitboard() &^ capturedSq.Bitboard()
	opp := side.Other()
	rooksQueens := b.pieceBB[MakePiece(opp, Rook)] | b.pieceBB[MakePiece(opp, Queen)]
	return RookAttack(king, occ)&rooksQueens != 0
}

func (b *Board) generatePawnMoves(
	moves MoveList, side Color, occ, enemy, targetMask, pinned Bitboard, pinRay [64]Bitboard,
	capturesOnly bool, numCheckers int, checkerSq Square,
) MoveList {
	forward := 8
	startRank, promoRank := 1, 7
	if side == Black {
		forward, startRank, promoRank = -8, 6, 0
	}

	for bb := b.pieceBB[MakePiece(side, Pawn)]; bb != 0; {
		from := bb.Pop()
		allowed := targetMask
		if pinned.Has(from) {
			allowed &= pinRay[from]
		}

		to := Square(int(from) + forward)
		if to < 64 && !occ.Has(to) {
			if allowed.Has(to) {
				if to.Rank() == promoRank {
					moves = appendPawnMove(moves, from, to, promoRank, false)
				} else if !capturesOnly {
					moves = append(moves, NewMove(from, to, FlagQuiet))
				}
			}
			if !capturesOnly && from.Rank() == startRank {
				to2 := Square(int(from) + 2*forward)
				if !occ.Has(to2) && allowed.Has(to2) {
					moves = append(moves, NewMove(from, to2, FlagDoublePawnPush))
				}
			}
		}

		for t := pawnAttackFrom(from, side) & enemy & allowed; t != 0; {
			capTo := t.Pop()
			moves = appendPawnMove(moves, from, capTo, promoRank, true)
		}

		if b.epSquare != NoSquare && pawnAttackFrom(from, side).Has(b.epSquare) {
			capturedSq := Square(int(b.epSquare) - forward)
			resolvesCheck := numCheckers == 0 || capturedSq == checkerSq || b.epSquare == checkerSq
			pinOK := !pinned.Has(from) || pinRay[from].Has(b.epSquare)
			if resolvesCheck && pinOK && !b.enPassantExposesKing(side, from, capturedSq) {
				moves = append(moves, NewMove(from, b.epSquare, FlagEnPassant))
			}
		}
	}
	return moves
}
