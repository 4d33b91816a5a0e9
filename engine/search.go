// search.go drives iterative-deepening Principal Variation Search:
// negamax with a transposition table, null-move pruning, late-move
// reductions, search extensions, quiescence at the leaves, and a
// periodic checkup callback for time control. A depth-by-depth loop
// reports after every completed iteration and returns the last
// completed iteration's move once time runs out.
package engine

import (
	"sync/atomic"
	"time"
)

// Depth is tracked in fractional ply units so that extensions and
// reductions smaller than a full ply are representable.
const (
	OnePly   int16 = 6
	HalfPly  int16 = 3
	ThirdPly int16 = 2
)

const nodesPerCheckup = 4096

// Info is one reportable snapshot of search progress, emitted after each
// completed depth for the uci package to format as protocol output.
// Search emits no separate snapshot when it returns.
type Info struct {
	Depth   int
	Score   int32
	Mate    int // non-zero: score represents mate in this many moves (negative: being mated)
	Nodes   uint64
	Elapsed time.Duration
	PV      string
}

// Searcher runs PVS against one Board. It is not safe for concurrent
// use; each concurrent search (e.g. one per self-play worker) should
// have its own Searcher and Evaluator but may share a TranspositionTable
// only when the caller has opted into that.
type Searcher struct {
	Board *Board
	TT    *TranspositionTable
	Eval  *Evaluator
	OnInfo func(Info)

	killers [MaxPly + 1]killers
	history historyTable
	pv      [MaxPly + 1]pvLine

	nodes        uint64
	nextCheckup  uint64
	stopped      bool
	externalStop atomic.Bool
	clock        *searchClock
}

// RequestStop asks a running search to stop at its next checkup. Safe to
// call from another goroutine; it is the only sanctioned cancellation path.
func (s *Searcher) RequestStop() { s.externalStop.Store(true) }

// NewSearcher builds a Searcher around an existing board, table and
// evaluator -- all three are owned by the caller and may be reused
// across searches within one game.
func NewSearcher(b *Board, tt *TranspositionTable, eval *Evaluator) *Searcher {
	return &Searcher{Board: b, TT: tt, Eval: eval}
}

// Search runs iterative deepening under tc and returns the best move and
// score found by the last fully completed (or usefully partial) depth.
func (s *Searcher) Search(tc TimeControl) (Move, int32) {
	s.externalStop.Store(false)
	s.TT.NewGeneration()
	legalMoves := s.Board.GenerateMoves()
	if len(legalMoves) == 0 {
		return NullMove, 0
	}
	if len(legalMoves) == 1 {
		// Forced move: still run one shallow search so a score is available,
		// but there is no need to burn the clock deliberating.
		tc.MoveTime = 1
	}

	s.clock = newSearchClock(tc, len(legalMoves))
	s.stopped = false
	s.nodes = 0
	s.nextCheckup = nodesPerCheckup

	var bestMove Move
	var bestScore int32
	for ply := int16(1); ; ply++ {
		depth := ply * OnePly
		s.pv[0].clear()
		score := s.pvs(depth, 0, -InfinityScore, InfinityScore, false, true)
		if s.Board.RepetitionCount() >= 3 || s.Board.IsFiftyMoveDraw() {
			score = 0
		}
		if s.stopped && ply > 1 {
			break
		}
		bestScore = score
		if len(s.pv[0].moves) > 0 {
			bestMove = s.pv[0].moves[0]
		}
		if s.OnInfo != nil {
			s.OnInfo(s.makeInfo(int(ply), bestScore))
		}
		if !s.clock.shouldStartIteration(int(ply), bestMove, bestScore) {
			break
		}
		if s.stopped {
			break
		}
	}
	return bestMove, bestScore
}

func (s *Searcher) makeInfo(depth int, score int32) Info {
	info := Info{Depth: depth, Score: score, Nodes: s.nodes, Elapsed: s.clock.elapsed(), PV: s.pv[0].String()}
	if IsMateScore(score) {
		if score > 0 {
			info.Mate = int(MateScore-score+1) / 2
		} else {
			info.Mate = -int(MateScore+score+1) / 2
		}
	}
	return info
}

// checkup polls the node-counter checkpoint and the hard clock deadline,
// a cooperative-yield scheme in place of any blocking I/O.
func (s *Searcher) checkup() bool {
	if s.nodes < s.nextCheckup {
		return s.stopped
	}
	s.nextCheckup = s.nodes + nodesPerCheckup
	if s.externalStop.Load() || (s.clock != nil && s.clock.expired()) {
		s.stopped = true
	}
	return s.stopped
}

// contextualDrawScore damps score toward the draw value 0 as a draw
// looms: it is halved once the position has occurred twice, and scaled
// by (100 - halfmove clock) / 80 once the halfmove clock passes 20.
func (s *Searcher) contextualDrawScore(score int32) int32 {
	b := s.Board
	if b.RepetitionCount() >= 2 {
		score /= 2
	}
	if c := b.HalfmoveClock(); c > 20 {
		score = score * (100 - int32(c)) / 80
	}
	return score
}

// pvs is the negamax PVS driver. alpha/beta and the returned score are
// always from the point of view of the side to move at this node.
func (s *Searcher) pvs(depth int16, ply int, alpha, beta int32, allowNull, isPV bool) int32 {
	s.nodes++
	s.pv[ply].clear()
	if s.checkup() {
		return 0
	}

	b := s.Board
	if ply > 0 {
		if b.RepetitionCount() >= 3 || b.IsFiftyMoveDraw() {
			return 0
		}
	}

	var hashMove Move
	if entry, ok := s.TT.Probe(b.Hash(), ply); ok {
		hashMove = entry.Move
		if !isPV && int16(entry.Depth) >= depth {
			switch entry.Bound {
			case ExactBound:
				return entry.Score
			case LowerBound:
				if entry.Score >= beta {
					return entry.Score
				}
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case UpperBound:
				if entry.Score <= alpha {
					return entry.Score
				}
				if entry.Score < beta {
					beta = entry.Score
				}
			}
		}
	}

	inCheck := b.IsCheck()
	if depth <= 0 || ply >= MaxPly {
		return s.quiescence(ply, alpha, beta)
	}

	// Null-move pruning: skip a move entirely and see if the opponent is
	// still in trouble even with a free tempo; if so the real move is
	// certainly good enough to cut.
	if allowNull && !inCheck && depth > OnePly && ply > 0 && s.hasNonPawnMaterial(b.Side()) {
		b.MakeNullMove()
		r := nullMoveReduction(depth)
		nullScore := -s.pvs(depth-OnePly-r, ply+1, -beta, -beta+1, false, false)
		b.UndoNullMove()
		if s.stopped {
			return 0
		}
		if nullScore >= beta {
			return nullScore
		}
		if staticEval := s.Eval.Evaluate(b); nullScore < staticEval-300 {
			depth += ThirdPly
		}
	}

	moves := b.GenerateMoves()
	if len(moves) == 0 {
		if inCheck {
			return MatedIn(ply)
		}
		return 0
	}

	mo := newMoveOrder(b, moves, hashMove, &s.killers[ply], &s.history)
	origAlpha := alpha
	var bestMove Move
	bestScore := -InfinityScore
	searched := 0

	for {
		m, ok := mo.next()
		if !ok {
			break
		}

		givesCheckOrEscapes := inCheck
		ext := int16(0)
		if givesCheckOrEscapes {
			ext = HalfPly
		} else if isRecapture(b, m) || m.IsPromotion() || isPassedPawnPush(b, m) {
			ext = ThirdPly
		}

		b.MakeMove(m)
		childInCheck := b.IsCheck()
		if ext == 0 && childInCheck {
			ext = HalfPly
		}

		var score int32
		childDepth := depth - OnePly + ext
		if searched == 0 {
			score = -s.pvs(childDepth, ply+1, -beta, -alpha, true, isPV)
		} else {
			reduction := int16(0)
			if ext == 0 && depth > OnePly*2 && searched >= 3 && !m.IsCapture() {
				reduction = lateMoveReduction(depth, s.history.get(b.Side().Other(), m.From(), m.To()))
			}
			score = -s.pvs(childDepth-reduction, ply+1, -alpha-1, -alpha, true, false)
			if score > alpha && (reduction > 0 || score < beta) && !s.stopped {
				score = -s.pvs(childDepth, ply+1, -beta, -alpha, true, false)
			}
		}
		b.UndoMove()
		searched++

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pv[ply].update(m, &s.pv[ply+1])
			}
		}

		if alpha >= beta {
			if !m.IsCapture() {
				s.killers[ply].add(m)
				s.history.bonus(b.Side(), m.From(), m.To(), depth/OnePly)
			}
			s.TT.Store(b.Hash(), m, bestScore, int16(depth), LowerBound, ply)
			return bestScore
		}
		if !m.IsCapture() {
			s.history.penalize(b.Side(), m.From(), m.To(), depth/OnePly)
		}
	}

	bestScore = s.contextualDrawScoreIfApplicable(bestScore)

	bound := ExactBound
	if bestScore <= origAlpha {
		bound = UpperBound
	}
	s.TT.Store(b.Hash(), bestMove, bestScore, int16(depth), bound, ply)
	return bestScore
}

// contextualDrawScoreIfApplicable applies the repetition/fifty-move
// damping only to scores that aren't already a mate score, since halving
// or scaling a mate distance would corrupt it.
func (s *Searcher) contextualDrawScoreIfApplicable(score int32) int32 {
	if IsMateScore(score) {
		return score
	}
	return s.contextualDrawScore(score)
}

// quiescence extends the search along captures (and, while in check, all
// legal evasions) until the position is quiet, per spec 4.7.
func (s *Searcher) quiescence(ply int, alpha, beta int32) int32 {
	s.nodes++
	if s.checkup() {
		return 0
	}

	b := s.Board
	inCheck := b.IsCheck()
	if !inCheck {
		standPat := s.Eval.Evaluate(b)
		if standPat >= beta {
			return standPat
		}
		const deltaMargin int32 = 1175
		if standPat+deltaMargin < alpha {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	minScore := int32(0)
	if inCheck {
		minScore = -InfinityScore
	}
	moves := b.GenerateCaptures()
	qo := newQuietOrder(b, moves, minScore)

	legal := 0
	for {
		m, ok := qo.next()
		if !ok {
			break
		}
		legal++
		b.MakeMove(m)
		score := -s.quiescence(ply+1, -beta, -alpha)
		b.UndoMove()
		if s.stopped {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	if inCheck && legal == 0 {
		return MatedIn(ply)
	}
	return alpha
}

// hasNonPawnMaterial reports whether side has at least a queen, a rook,
// or two minor pieces -- the null-move safety gate against zugzwang-prone
// endgames where a free tempo isn't actually free.
func (s *Searcher) hasNonPawnMaterial(side Color) bool {
	b := s.Board
	if b.ByPiece(MakePiece(side, Queen)) != 0 {
		return true
	}
	if b.ByPiece(MakePiece(side, Rook)) != 0 {
		return true
	}
	minors := b.ByPiece(MakePiece(side, Knight)).Count() + b.ByPiece(MakePiece(side, Bishop)).Count()
	return minors >= 2
}

// nullMoveReduction picks R(depth): deeper searches can afford a larger
// null-move reduction.
func nullMoveReduction(depth int16) int16 {
	if depth > OnePly*6 {
		return OnePly * 3
	}
	return OnePly * 2
}

// lateMoveReduction computes the late-move reduction for the searched-th
// quiet move at this depth, nudged by history score, clamped to at most
// half the current depth.
func lateMoveReduction(depth int16, hist int32) int16 {
	r := OnePly
	if hist > killerMoveScore/2 {
		r -= HalfPly
	} else if hist < -(killerMoveScore / 2) {
		r += HalfPly
	}
	if r < 0 {
		r = 0
	}
	if max := depth / 2; r > max {
		r = max
	}
	return r
}

// isRecapture reports whether m recaptures on the square the opponent's
// last move captured on.
func isRecapture(b *Board, m Move) bool {
	last := b.LastMove()
	return last != NullMove && last.IsCapture() && m.IsCapture() && m.To() == last.To()
}

// isPassedPawnPush reports whether m advances a pawn that has no enemy
// pawn able to stop it on its file or the adjacent files ahead of it.
func isPassedPawnPush(b *Board, m Move) bool {
	moving := b.PieceAt(m.From())
	if moving.Figure() != Pawn {
		return false
	}
	side := moving.Color()
	opp := side.Other()
	enemy := b.ByPiece(MakePiece(opp, Pawn))
	file := m.To().File()
	rank := m.To().Rank()

	var aheadRanks Bitboard
	if side == White {
		for r := rank + 1; r < 8; r++ {
			aheadRanks |= RankBb(r)
		}
	} else {
		for r := rank - 1; r >= 0; r-- {
			aheadRanks |= RankBb(r)
		}
	}
	threeFiles := FileBb(file)
	if file > 0 {
		threeFiles |= FileBb(file - 1)
	}
	if file < 7 {
		threeFiles |= FileBb(file + 1)
	}
	return enemy&threeFiles&aheadRanks == 0
}
