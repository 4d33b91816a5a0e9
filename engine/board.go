// Copyright 2014-2017 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// board.go implements the board representation: piece placement,
// incrementally maintained bitboards and attack maps, Zobrist hash,
// castling/en-passant/fifty-move state, and make/undo of moves.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Aggregate slots living in the otherwise-unused corners of the 4-bit piece
// code space (see types.go): White|NoFigure=0, Black|NoFigure=8 and the two
// figure-overflow codes 7 and 15 are never real pieces.
const (
	aggWhiteNonKing Piece = 7
	aggAllNonKing   Piece = 8
	aggBlackNonKing Piece = 15
)

var symbolToPiece = map[rune]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// boardState is a full snapshot of everything makeMove mutates. Move history
// keeps one of these per ply so undo can restore by copy instead of
// recomputing incremental updates in reverse -- cheaper and much less
// error-prone than hand-written inverse bitboard edits.
type boardState struct {
	pieces        [64]Piece
	pieceBB       [16]Bitboard
	kingSquare    [2]Square
	whiteAttack   Bitboard
	blackAttack   Bitboard
	pieceAttackBB [16]Bitboard
	side          Color
	castling      Castle
	epSquare      Square
	halfmoveClock int
	hash          uint64
}

// historyEntry is one frame of the move-history stack.
type historyEntry struct {
	move     Move
	captured Piece
	prev     boardState
}

// Board is the mutable chess position. It is created via NewBoard,
// FromFEN or Clone and thereafter mutated only by MakeMove/UndoMove/
// MakeNullMove/UndoNullMove.
type Board struct {
	boardState
	ply     int // total halfmoves played since the position was created
	history []historyEntry
}

// NewBoard returns the standard initial position.
func NewBoard() *Board {
	b, err := FromFEN(FENStartPos)
	if err != nil {
		panic(err) // the startpos FEN is a compile-time constant
	}
	return b
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	nb := &Board{boardState: b.boardState, ply: b.ply}
	nb.history = make([]historyEntry, len(b.history))
	copy(nb.history, b.history)
	return nb
}

func colorIndex(c Color) int {
	if c == White {
		return 0
	}
	return 1
}

// Side returns the side to move.
func (b *Board) Side() Color { return b.side }

// EnPassant returns the en-passant target square, or NoSquare.
func (b *Board) EnPassant() Square { return b.epSquare }

// CastlingRights returns the current castling permission bitmask.
func (b *Board) CastlingRights() Castle { return b.castling }

// HalfmoveClock returns the fifty-move-rule counter.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// Ply returns the number of halfmoves played since this Board was created.
func (b *Board) Ply() int { return b.ply }

// Hash returns the incrementally maintained Zobrist hash.
func (b *Board) Hash() uint64 { return b.hash }

// PieceAt returns the piece occupying sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[sq] }

// KingSquare returns the square of c's king.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare[colorIndex(c)] }

// ByColor returns all of c's non-king pieces.
func (b *Board) ByColor(c Color) Bitboard {
	if c == White {
		return b.pieceBB[aggWhiteNonKing]
	}
	return b.pieceBB[aggBlackNonKing]
}

// ByPiece returns the bitboard of a specific colored piece.
func (b *Board) ByPiece(p Piece) Bitboard { return b.pieceBB[p] }

// Occupied returns every occupied square, kings included.
func (b *Board) Occupied() Bitboard {
	return b.pieceBB[aggAllNonKing] | b.kingSquare[0].Bitboard() | b.kingSquare[1].Bitboard()
}

// OccupiedExcludingKing returns every occupied square excluding both kings --
// the occupancy used by sliding-piece lookups, so that a slider can "see
// through" a king when the generator evaluates king-move legality.
func (b *Board) OccupiedExcludingKing() Bitboard { return b.pieceBB[aggAllNonKing] }

// AttackBB returns c's union of pseudo-legal attacks.
func (b *Board) AttackBB(c Color) Bitboard {
	if c == White {
		return b.whiteAttack
	}
	return b.blackAttack
}

// recomputeAttacks rebuilds whiteAttack/blackAttack and the per-piece-type
// attack bitboards from scratch. Spec §4.2 allows a selective rebuild of
// only the piece types whose attacking surface changed; this rebuilds all
// of them every move, which is the "simplest correct implementation" the
// spec explicitly sanctions.
func (b *Board) recomputeAttacks() {
	occ := b.Occupied()
	for p := Piece(0); p < 16; p++ {
		b.pieceAttackBB[p] = 0
	}
	b.whiteAttack, b.blackAttack = 0, 0

	for _, c := range [2]Color{White, Black} {
		var union Bitboard
		for bb := b.pieceBB[MakePiece(c, Pawn)]; bb != 0; {
			sq := bb.Pop()
			a := pawnAttackFrom(sq, c)
			b.pieceAttackBB[MakePiece(c, Pawn)] |= a
			union |= a
		}
		for bb := b.pieceBB[MakePiece(c, Knight)]; bb != 0; {
			sq := bb.Pop()
			a := BbKnightAttack[sq]
			b.pieceAttackBB[MakePiece(c, Knight)] |= a
			union |= a
		}
		for bb := b.pieceBB[MakePiece(c, Bishop)]; bb != 0; {
			sq := bb.Pop()
			a := BishopAttack(sq, occ)
			b.pieceAttackBB[MakePiece(c, Bishop)] |= a
			union |= a
		}
		for bb := b.pieceBB[MakePiece(c, Rook)]; bb != 0; {
			sq := bb.Pop()
			a := RookAttack(sq, occ)
			b.pieceAttackBB[MakePiece(c, Rook)] |= a
			union |= a
		}
		for bb := b.pieceBB[MakePiece(c, Queen)]; bb != 0; {
			sq := bb.Pop()
			a := QueenAttack(sq, occ)
			b.pieceAttackBB[MakePiece(c, Queen)] |= a
			union |= a
		}
		a := BbKingAttack[b.kingSquare[colorIndex(c)]]
		b.pieceAttackBB[MakePiece(c, King)] |= a
		union |= a

		if c == White {
			b.whiteAttack = union
		} else {
			b.blackAttack = union
		}
	}
}

// put places piece p on sq, updating bitboards and hash. sq must be empty.
func (b *Board) put(sq Square, p Piece) {
	b.pieces[sq] = p
	bb := sq.Bitboard()
	if p.Figure() == King {
		b.kingSquare[colorIndex(p.Color())] = sq
	} else {
		b.pieceBB[p] |= bb
		if p.Color() == White {
			b.pieceBB[aggWhiteNonKing] |= bb
		} else {
			b.pieceBB[aggBlackNonKing] |= bb
		}
		b.pieceBB[aggAllNonKing] |= bb
	}
	b.hash ^= zobristPiece[p][sq]
}

// remove removes the piece known to be on sq.
func (b *Board) remove(sq Square, p Piece) {
	b.pieces[sq] = NoPiece
	bb := ^sq.Bitboard()
	if p.Figure() != King {
		b.pieceBB[p] &= bb
		if p.Color() == White {
			b.pieceBB[aggWhiteNonKing] &= bb
		} else {
			b.pieceBB[aggBlackNonKing] &= bb
		}
		b.pieceBB[aggAllNonKing] &= bb
	}
	b.hash ^= zobristPiece[p][sq]
}

func (b *Board) setCastling(c Castle) {
	b.hash ^= zobristCastle[b.castling]
	b.castling = c
	b.hash ^= zobristCastle[b.castling]
}

func (b *Board) setEnPassant(sq Square) {
	if b.epSquare != NoSquare {
		b.hash ^= zobristEnpassant[b.epSquare]
	}
	b.epSquare = sq
	if b.epSquare != NoSquare {
		b.hash ^= zobristEnpassant[b.epSquare]
	}
}

func (b *Board) setSide(c Color) {
	b.side = c
	b.hash ^= zobristColor
}

// rookCastleSquares returns the rook's start and end squares for a castle
// move ending with the king on kingTo.
func rookCastleSquares(kingTo Square) (rookFrom, rookTo Square) {
	switch kingTo {
	case SquareG1:
		return SquareH1, SquareF1
	case SquareC1:
		return SquareA1, SquareD1
	case SquareG8:
		return SquareH8, SquareF8
	case SquareC8:
		return SquareA8, SquareD8
	}
	panic(fmt.Sprintf("rookCastleSquares: bad king destination %v", kingTo))
}

// MakeMove mutates the board in place, pushing an undo record. The caller
// must ensure m is legal (or the null move).
func (b *Board) MakeMove(m Move) {
	prev := b.boardState
	from, to, flag := m.From(), m.To(), m.Flag()
	moving := b.pieces[from]
	captured := NoPiece

	b.setCastling(b.castling &^ lostCastleRights[from] &^ lostCastleRights[to])

	switch flag {
	case FlagEnPassant:
		capSq := RankFile(from.Rank(), to.File())
		captured = b.pieces[capSq]
		b.remove(capSq, captured)
		b.remove(from, moving)
		b.put(to, moving)
	case FlagKingCastle, FlagQueenCastle:
		rookFrom, rookTo := rookCastleSquares(to)
		rook := b.pieces[rookFrom]
		b.remove(from, moving)
		b.put(to, moving)
		b.remove(rookFrom, rook)
		b.put(rookTo, rook)
	default:
		if m.IsCapture() {
			captured = b.pieces[to]
			b.remove(to, captured)
		}
		b.remove(from, moving)
		if m.IsPromotion() {
			b.put(to, MakePiece(moving.Color(), m.PromotionFigure()))
		} else {
			b.put(to, moving)
		}
	}

	if flag == FlagDoublePawnPush {
		b.setEnPassant((from + to) / 2)
	} else {
		b.setEnPassant(NoSquare)
	}

	if moving.Figure() == Pawn || captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	b.recomputeAttacks()
	b.setSide(b.side.Other())
	b.ply++

	b.history = append(b.history, historyEntry{move: m, captured: captured, prev: prev})
}

// UndoMove pops the most recent undo record and restores the prior state
// byte-for-byte.
func (b *Board) UndoMove() {
	n := len(b.history) - 1
	entry := b.history[n]
	b.history = b.history[:n]
	b.boardState = entry.prev
	b.ply--
}

// MakeNullMove flips the side to move, clearing en-passant. It pushes an
// undo record so it can be reversed like any other move.
func (b *Board) MakeNullMove() {
	prev := b.boardState
	b.setEnPassant(NoSquare)
	b.setSide(b.side.Other())
	b.ply++
	b.history = append(b.history, historyEntry{move: NullMove, captured: NoPiece, prev: prev})
}

// UndoNullMove reverses MakeNullMove.
func (b *Board) UndoNullMove() { b.UndoMove() }

// LastMove returns the most recently made move, or NullMove if there is none.
func (b *Board) LastMove() Move {
	if len(b.history) == 0 {
		return NullMove
	}
	return b.history[len(b.history)-1].move
}

// LastCapture returns the piece captured by the most recent move, if any.
func (b *Board) LastCapture() Piece {
	if len(b.history) == 0 {
		return NoPiece
	}
	return b.history[len(b.history)-1].captured
}

// IsCheck reports whether the side to move is in check.
func (b *Board) IsCheck() bool {
	return b.SquareAttacked(b.kingSquare[colorIndex(b.side)], b.side.Other(), b.Occupied())
}

// SquareAttacked reports whether sq is attacked by bySide, given occupied as
// the blocker set (callers computing king-move legality pass an occupancy
// with the moving king removed, so sliders see through it).
func (b *Board) SquareAttacked(sq Square, bySide Color, occupied Bitboard) bool {
	ci := colorIndex(bySide)
	enemyPawns := b.pieceBB[MakePiece(bySide, Pawn)]
	if pawnAttackFrom(sq, bySide.Other())&enemyPawns != 0 {
		return true
	}
	if BbKnightAttack[sq]&b.pieceBB[MakePiece(bySide, Knight)] != 0 {
		return true
	}
	if BbKingAttack[sq]&b.kingSquare[ci].Bitboard() != 0 {
		return true
	}
	if BbSuperAttack[sq]&(b.ByColor(bySide)|b.kingSquare[ci].Bitboard())&^enemyPawns == 0 {
		return false
	}
	bishops := b.pieceBB[MakePiece(bySide, Bishop)] | b.pieceBB[MakePiece(bySide, Queen)]
	if bishops != 0 && bishops&BishopAttack(sq, occupied) != 0 {
		return true
	}
	rooks := b.pieceBB[MakePiece(bySide, Rook)] | b.pieceBB[MakePiece(bySide, Queen)]
	if rooks != 0 && rooks&RookAttack(sq, occupied) != 0 {
		return true
	}
	return false
}

// NumSquareAttackers returns how many of bySide's pieces attack sq.
func (b *Board) NumSquareAttackers(sq Square, bySide Color, occupied Bitboard) int {
	n := 0
	n += (pawnAttackFrom(sq, bySide.Other()) & b.pieceBB[MakePiece(bySide, Pawn)]).Count()
	n += (BbKnightAttack[sq] & b.pieceBB[MakePiece(bySide, Knight)]).Count()
	n += (BbKingAttack[sq] & b.kingSquare[colorIndex(bySide)].Bitboard()).Count()
	n += (BishopAttack(sq, occupied) & (b.pieceBB[MakePiece(bySide, Bishop)] | b.pieceBB[MakePiece(bySide, Queen)])).Count()
	n += (RookAttack(sq, occupied) & (b.pieceBB[MakePiece(bySide, Rook)] | b.pieceBB[MakePiece(bySide, Queen)])).Count()
	return n
}

// RepetitionCount scans the move history backward at stride 2 (same side to
// move) within the span covered by the fifty-move counter and counts how
// many prior positions share the current Zobrist hash, including the
// current position itself.
func (b *Board) RepetitionCount() int {
	count := 1
	n := len(b.history)
	limit := b.halfmoveClock
	if limit > n {
		limit = n
	}
	for i := 2; i <= limit; i += 2 {
		if b.history[n-i].prev.hash == b.hash {
			count++
		}
	}
	return count
}

// IsFiftyMoveDraw reports whether the fifty-move rule permits a draw claim.
func (b *Board) IsFiftyMoveDraw() bool { return b.halfmoveClock >= 100 }

// --- FEN ---------------------------------------------------------------

// FromFEN parses a FEN string into a new Board, validating every invariant
// from spec.md §3 and returning a structured error on the first violation.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	b := &Board{}
	for p := Piece(0); p < 16; p++ {
		b.pieceBB[p] = 0
	}
	for i := range b.pieces {
		b.pieces[i] = NoPiece
	}
	b.kingSquare = [2]Square{NoSquare, NoSquare}
	b.epSquare = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pi, ok := symbolToPiece[ch]
			if !ok {
				return nil, fmt.Errorf("fen: invalid piece symbol %q", ch)
			}
			if file >= 8 {
				return nil, fmt.Errorf("fen: rank %d overflows", rank+1)
			}
			sq := RankFile(rank, file)
			if (pi.Figure() == Pawn) && (rank == 0 || rank == 7) {
				return nil, fmt.Errorf("fen: pawn on rank %d", rank+1)
			}
			if pi.Figure() == King && b.kingSquare[colorIndex(pi.Color())] != NoSquare {
				return nil, fmt.Errorf("fen: both sides must have exactly one king")
			}
			b.put(sq, pi)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %d has %d files, want 8", rank+1, file)
		}
	}

	if b.kingSquare[0] == NoSquare || b.kingSquare[1] == NoSquare {
		return nil, fmt.Errorf("fen: both sides must have exactly one king")
	}

	switch fields[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
		b.hash ^= zobristColor
	default:
		return nil, fmt.Errorf("fen: bad side to move %q", fields[1])
	}

	for _, ch := range fields[2] {
		switch ch {
		case 'K':
			b.castling |= WhiteOO
		case 'Q':
			b.castling |= WhiteOOO
		case 'k':
			b.castling |= BlackOO
		case 'q':
			b.castling |= BlackOOO
		case '-':
		default:
			return nil, fmt.Errorf("fen: bad castling field %q", fields[2])
		}
	}
	b.hash ^= zobristCastle[b.castling]

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen: bad en-passant square %q: %w", fields[3], err)
		}
		wantRank := 5
		if b.side == Black {
			wantRank = 2
		}
		if sq.Rank() != wantRank {
			return nil, fmt.Errorf("fen: en-passant square %v inconsistent with side to move", sq)
		}
		pawnSq, pawn := sq-8, BlackPawn
		if b.side == Black {
			pawnSq, pawn = sq+8, WhitePawn
		}
		if b.PieceAt(pawnSq) != pawn {
			return nil, fmt.Errorf("fen: no pawn behind en-passant square %v", sq)
		}
		b.epSquare = sq
		b.hash ^= zobristEnpassant[sq]
	}

	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.halfmoveClock = n
		}
	}
	fullmove := 1
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			fullmove = n
		}
	}
	b.ply = (fullmove - 1) * 2
	if b.side == Black {
		b.ply++
	}

	b.recomputeAttacks()

	if b.SquareAttacked(b.kingSquare[colorIndex(b.side.Other())], b.side, b.Occupied()) {
		return nil, fmt.Errorf("fen: the side not to move is in check")
	}

	return b, nil
}

// ToFEN serializes the board back to FEN. ToFEN(FromFEN(s)) round-trips s
// modulo halfmove/fullmove defaults when they were omitted from s.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := RankFile(rank, file)
			pi := b.pieces[sq]
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pi.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(b.epSquare.String())

	fullmove := b.ply/2 + 1
	fmt.Fprintf(&sb, " %d %d", b.halfmoveClock, fullmove)
	return sb.String()
}
