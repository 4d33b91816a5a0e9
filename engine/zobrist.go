// zobrist.go holds the random keys used to incrementally maintain the
// position's Zobrist hash: one key per (piece, square), one per
// en-passant square, one per castling-rights state, and one for side to move.
package engine

import "math/rand"

var (
	zobristPiece     [16][64]uint64 // indexed by Piece code (0..15)
	zobristEnpassant [64]uint64
	zobristCastle    [16]uint64 // indexed by Castle bitmask (0..15)
	zobristColor     uint64     // XORed in whenever it's Black to move
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for _, p := range []Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	} {
		for sq := SquareA1; sq <= SquareH8; sq++ {
			zobristPiece[p][sq] = rand64(r)
		}
	}
	for sq := SquareA1; sq <= SquareH8; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for c := 0; c < 16; c++ {
		zobristCastle[c] = rand64(r)
	}
	zobristColor = rand64(r)
}
