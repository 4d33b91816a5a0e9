// pgn.go implements algebraic move text: Board.SAN renders a move the way
// a game record would, Board.ParseSAN resolves a SAN token by generating
// the legal moves and matching the token against each one's own rendering,
// and FromPGN/ToPGN apply that to a full game transcript.
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// sanFigureLetter is the uppercase letter FIDE algebraic notation uses for
// each non-pawn figure; pawns carry no letter.
var sanFigureLetter = [7]byte{
	Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K',
}

// SAN renders m in Standard Algebraic Notation as played from the current
// position. m must be one of b.GenerateMoves().
func (b *Board) SAN(m Move) string {
	if m.IsCastle() {
		san := "O-O"
		if m.Flag() == FlagQueenCastle {
			san = "O-O-O"
		}
		return san + b.sanCheckSuffix(m)
	}

	from, to := m.From(), m.To()
	fig := b.pieces[from].Figure()
	capture := m.IsCapture() || m.IsEnPassant()

	var sb strings.Builder
	if fig == Pawn {
		if capture {
			sb.WriteByte(byte('a' + from.File()))
		}
	} else {
		sb.WriteByte(sanFigureLetter[fig])
		sb.WriteString(b.sanDisambiguation(m, fig))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(sanFigureLetter[m.PromotionFigure()])
	}
	sb.WriteString(b.sanCheckSuffix(m))
	return sb.String()
}

// sanDisambiguation returns the minimal file/rank/square qualifier needed
// to distinguish m from any other legal move of the same figure to the
// same destination, per the usual FIDE rule: file alone if that resolves
// it, else rank alone, else the full origin square.
func (b *Board) sanDisambiguation(m Move, fig Figure) string {
	from, to := m.From(), m.To()
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range b.GenerateMoves() {
		if other.From() == from || other.To() != to {
			continue
		}
		if b.pieces[other.From()].Figure() != fig {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return strconv.Itoa(from.Rank() + 1)
	default:
		return from.String()
	}
}

// sanCheckSuffix makes m, inspects the resulting position for check and
// mate, then undoes it, leaving b exactly as it found it.
func (b *Board) sanCheckSuffix(m Move) string {
	b.MakeMove(m)
	suffix := ""
	if b.IsCheck() {
		if len(b.GenerateMoves()) == 0 {
			suffix = "#"
		} else {
			suffix = "+"
		}
	}
	b.UndoMove()
	return suffix
}

// sanCore strips the trailing check/mate annotation, so tokens can be
// matched whether or not a transcript bothered to include it.
func sanCore(san string) string {
	for len(san) > 0 {
		c := san[len(san)-1]
		if c != '+' && c != '#' {
			break
		}
		san = san[:len(san)-1]
	}
	return san
}

// ParseSAN resolves a single SAN token against the position's legal moves.
func (b *Board) ParseSAN(token string) (Move, error) {
	token = sanCore(strings.TrimSpace(token))
	if token == "0-0" {
		token = "O-O"
	} else if token == "0-0-0" {
		token = "O-O-O"
	}
	for _, m := range b.GenerateMoves() {
		if sanCore(b.SAN(m)) == token {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("san: %q is not a legal move", token)
}

// stripPGNMarkup removes tag pairs ([...]), brace comments ({...}),
// semicolon-to-end-of-line comments and parenthesized recursive
// variations, leaving only the mainline move text.
func stripPGNMarkup(s string) string {
	var sb strings.Builder
	ravDepth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '{':
			for i < len(s) && s[i] != '}' {
				i++
			}
		case c == '[':
			for i < len(s) && s[i] != ']' {
				i++
			}
		case c == ';':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '(':
			ravDepth++
		case c == ')':
			if ravDepth > 0 {
				ravDepth--
			}
		case ravDepth == 0:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// stripMoveNumber removes a leading "12." or "12..." move-number marker
// from a movetext token, if present.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 {
		return tok
	}
	j := i
	for j < len(tok) && tok[j] == '.' {
		j++
	}
	if j == i {
		return tok
	}
	return tok[j:]
}

// stripAnnotation removes trailing NAG-style "!"/"?" move-quality marks
// (e.g. "Nf3!?") that a transcript may glue directly onto a SAN token.
func stripAnnotation(tok string) string {
	end := len(tok)
	for end > 0 && (tok[end-1] == '!' || tok[end-1] == '?') {
		end--
	}
	return tok[:end]
}

func isGameResultToken(tok string) bool {
	return tok == "1-0" || tok == "0-1" || tok == "1/2-1/2" || tok == "*"
}

// pgnTag extracts the quoted value of a "[name "value"]" tag pair, or ""
// if the tag isn't present.
func pgnTag(pgn, name string) string {
	prefix := "[" + name + " \""
	idx := strings.Index(pgn, prefix)
	if idx == -1 {
		return ""
	}
	rest := pgn[idx+len(prefix):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// FromPGN builds a Board by replaying a game transcript: an optional [FEN
// "..."] tag sets the starting position (the standard position otherwise),
// and every SAN token in the movetext is matched, in order, against the
// legal moves generated from the position it's played in.
func FromPGN(pgn string) (*Board, error) {
	fen := FENStartPos
	if tag := pgnTag(pgn, "FEN"); tag != "" {
		fen = tag
	}
	b, err := FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("pgn: FEN tag: %w", err)
	}

	moveNum := 0
	for _, tok := range strings.Fields(stripPGNMarkup(pgn)) {
		tok = stripMoveNumber(tok)
		tok = stripAnnotation(tok)
		if tok == "" || strings.HasPrefix(tok, "$") {
			continue
		}
		if isGameResultToken(tok) {
			break
		}
		moveNum++
		m, err := b.ParseSAN(tok)
		if err != nil {
			return nil, fmt.Errorf("pgn: move %d (%q): %w", moveNum, tok, err)
		}
		b.MakeMove(m)
	}
	return b, nil
}

// ToPGN serializes the moves played since b was created as SAN movetext,
// replaying them from scratch on a scratch board so each token reflects
// the position it was actually played in. A non-standard starting
// position is recorded as a [FEN] tag, per usual PGN practice.
func (b *Board) ToPGN() string {
	cur := b.Clone()
	for len(cur.history) > 0 {
		cur.UndoMove()
	}

	var sb strings.Builder
	if startFEN := cur.ToFEN(); startFEN != FENStartPos {
		fmt.Fprintf(&sb, "[FEN %q]\n[SetUp \"1\"]\n\n", startFEN)
	}

	firstToken := true
	for _, entry := range b.history {
		if entry.move == NullMove {
			continue
		}
		if cur.side == White {
			fmt.Fprintf(&sb, "%d. ", cur.ply/2+1)
		} else if firstToken {
			fmt.Fprintf(&sb, "%d... ", cur.ply/2+1)
		}
		sb.WriteString(cur.SAN(entry.move))
		sb.WriteByte(' ')
		cur.MakeMove(entry.move)
		firstToken = false
	}
	sb.WriteByte('*')
	return strings.TrimSpace(sb.String())
}
