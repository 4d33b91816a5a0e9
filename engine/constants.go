package engine

// Square name constants, a1=0 .. h8=63.
const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

// Well known colored pieces.
var (
	WhitePawn   = MakePiece(White, Pawn)
	WhiteKnight = MakePiece(White, Knight)
	WhiteBishop = MakePiece(White, Bishop)
	WhiteRook   = MakePiece(White, Rook)
	WhiteQueen  = MakePiece(White, Queen)
	WhiteKing   = MakePiece(White, King)

	BlackPawn   = MakePiece(Black, Pawn)
	BlackKnight = MakePiece(Black, Knight)
	BlackBishop = MakePiece(Black, Bishop)
	BlackRook   = MakePiece(Black, Rook)
	BlackQueen  = MakePiece(Black, Queen)
	BlackKing   = MakePiece(Black, King)
)

const (
	BbEmpty  Bitboard = 0
	BbFull   Bitboard = 0xffffffffffffffff
	BbRank1  Bitboard = 0x00000000000000ff
	BbRank2  Bitboard = 0x000000000000ff00
	BbRank3  Bitboard = 0x0000000000ff0000
	BbRank4  Bitboard = 0x00000000ff000000
	BbRank5  Bitboard = 0x000000ff00000000
	BbRank6  Bitboard = 0x0000ff0000000000
	BbRank7  Bitboard = 0x00ff000000000000
	BbRank8  Bitboard = 0xff00000000000000
	BbFileA  Bitboard = 0x0101010101010101
	BbFileB  Bitboard = 0x0202020202020202
	BbFileG  Bitboard = 0x4040404040404040
	BbFileH  Bitboard = 0x8080808080808080

	BbPawnLeftAttack  Bitboard = 0x00fefefefefefe00
	BbPawnRightAttack Bitboard = 0x007f7f7f7f7f7f00
	BbPawnStartRank   Bitboard = 0x00ff00000000ff00
	BbPawnDoubleRank  Bitboard = 0x000000ffff000000
)

// Well known FEN strings used by tests and by the UCI "startpos" shortcut.
var (
	FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	FENKiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)
