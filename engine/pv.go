// pv.go tracks the principal variation: the best line found at each ply,
// rebuilt from each node's own PV plus the move that led into it, for the
// full line the UCI "info ... pv ..." output needs.
package engine

// pvLine is the sequence of moves making up the best line found from one
// node onward.
type pvLine struct {
	moves []Move
}

func (pv *pvLine) clear() { pv.moves = pv.moves[:0] }

// update replaces this node's line with m followed by child's line, the
// standard "collect the PV on the way back up" construction.
func (pv *pvLine) update(m Move, child *pvLine) {
	pv.moves = append(pv.moves[:0], m)
	pv.moves = append(pv.moves, child.moves...)
}

func (pv *pvLine) String() string {
	s := ""
	for i, m := range pv.moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
