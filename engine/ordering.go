// ordering.go scores and selects moves for the search driver: the hash
// move first, then a best-next linear scan over SEE-scored captures,
// killer moves, and history-scored quiets.
package engine

const killerMoveScore int32 = 10000

// historyTable scores quiet moves by how often they have caused a
// beta-cutoff in the past, indexed directly by side/from/to -- the direct
// index trades a little memory for guaranteed collision-free lookup.
type historyTable [2][64][64]int32

func (h *historyTable) get(side Color, from, to Square) int32 {
	return h[colorIndex(side)][from][to]
}

// bonus increases a quiet move's history score on beta-cutoff, scaled by
// depth squared, clamped to keep it below killerMoveScore so a fresh
// killer is never outscored by stale history.
func (h *historyTable) bonus(side Color, from, to Square, depth int16) {
	v := &h[colorIndex(side)][from][to]
	*v += int32(depth) * int32(depth)
	if *v > killerMoveScore-1 {
		*v = killerMoveScore - 1
	}
}

// penalize decrements a quiet move's history score when it was searched
// but did not cause a cutoff, so moves that are merely tried often
// without succeeding don't keep climbing.
func (h *historyTable) penalize(side Color, from, to Square, depth int16) {
	v := &h[colorIndex(side)][from][to]
	*v -= int32(depth)
	if *v < -(killerMoveScore - 1) {
		*v = -(killerMoveScore - 1)
	}
}

// killers holds the two most-recently-cutting quiet moves for one ply,
// acting as a 2-element most-recently-used list.
type killers [2]Move

func (k *killers) has(m Move) bool { return m == k[0] || m == k[1] }

func (k *killers) add(m Move) {
	if m == k[0] {
		return
	}
	k[1] = k[0]
	k[0] = m
}

// moveOrder scores and yields the legal moves of one node in priority
// order: the hash move, then a repeated best-next linear scan over the
// rest, cheaper than sorting the whole list since most nodes cut off
// well before the tail of a 30-40 move list is reached.
type moveOrder struct {
	b        *Board
	moves    MoveList
	scores   []int32
	hash     Move
	killer   *killers
	hist     *historyTable
	side     Color
	returned int
}

func newMoveOrder(b *Board, moves MoveList, hash Move, k *killers, h *historyTable) *moveOrder {
	mo := &moveOrder{b: b, moves: moves, scores: make([]int32, len(moves)), hash: hash, killer: k, hist: h, side: b.Side()}
	for i, m := range moves {
		mo.scores[i] = mo.score(m)
	}
	return mo
}

func (mo *moveOrder) score(m Move) int32 {
	if m == mo.hash {
		return 1 << 30
	}
	if m.IsCapture() || m.IsEnPassant() {
		return 1<<20 + SEE(mo.b, m)
	}
	if mo.killer != nil && mo.killer.has(m) {
		return killerMoveScore
	}
	if mo.hist != nil {
		return mo.hist.get(mo.side, m.From(), m.To())
	}
	return 0
}

// next returns the highest-scoring move not yet returned, or false when
// the list is exhausted.
func (mo *moveOrder) next() (Move, bool) {
	if mo.returned >= len(mo.moves) {
		return 0, false
	}
	best := mo.returned
	for i := mo.returned + 1; i < len(mo.moves); i++ {
		if mo.scores[i] > mo.scores[best] {
			best = i
		}
	}
	mo.moves[mo.returned], mo.moves[best] = mo.moves[best], mo.moves[mo.returned]
	mo.scores[mo.returned], mo.scores[best] = mo.scores[best], mo.scores[mo.returned]
	m := mo.moves[mo.returned]
	mo.returned++
	return m, true
}

// quietOrder scores and yields quiescence-search moves: captures (and,
// when in check, every legal evasion) scored by SEE, filtered to those
// meeting minScore.
type quietOrder struct {
	b        *Board
	moves    MoveList
	scores   []int32
	minScore int32
	returned int
}

func newQuietOrder(b *Board, moves MoveList, minScore int32) *quietOrder {
	qo := &quietOrder{b: b, moves: moves, scores: make([]int32, len(moves)), minScore: minScore}
	for i, m := range moves {
		qo.scores[i] = SEE(b, m)
	}
	return qo
}

func (qo *quietOrder) next() (Move, bool) {
	for {
		if qo.returned >= len(qo.moves) {
			return 0, false
		}
		best := qo.returned
		for i := qo.returned + 1; i < len(qo.moves); i++ {
			if qo.scores[i] > qo.scores[best] {
				best = i
			}
		}
		qo.moves[qo.returned], qo.moves[best] = qo.moves[best], qo.moves[qo.returned]
		qo.scores[qo.returned], qo.scores[best] = qo.scores[best], qo.scores[qo.returned]
		m, s := qo.moves[qo.returned], qo.scores[qo.returned]
		qo.returned++
		if s >= qo.minScore {
			return m, true
		}
	}
}
