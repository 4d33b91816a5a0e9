// timecontrol.go turns a UCI clock-with-increment (or a fixed movetime,
// or a fixed depth) into a soft/hard time budget for iterative deepening,
// using an exponential-decay min/max formula and an iteration-stability
// continuation rule, and decides after each completed depth whether
// another iteration is worth starting.
package engine

import (
	"math"
	"time"
)

// TimeControl mirrors the information a UCI "go" command can supply.
type TimeControl struct {
	Time      time.Duration // remaining time on the clock
	Inc       time.Duration // increment applied after each move
	MovesToGo int           // moves left before the next time control, 0 if unknown
	MoveTime  time.Duration // fixed time for this move, 0 if not requested
	Depth     int           // fixed search depth, 0 if not requested
	Infinite  bool          // "go infinite": search until told to stop
}

// searchClock tracks the time budget and iteration-stability signals
// needed to decide whether to start another iterative-deepening pass.
type searchClock struct {
	start           time.Time
	minTime         time.Duration
	maxTime         time.Duration
	fixedDepth      int
	infinite        bool
	lastBestMove    Move
	scores          []int32
	stabilityMisses int
}

const searchClockStabilityWindow = 5

// newSearchClock computes minTime/maxTime from an exponential-decay
// formula using legalMoves as n_moves, or fixes both to MoveTime, or
// leaves the clock unbounded for a fixed-depth or infinite search.
func newSearchClock(tc TimeControl, legalMoves int) *searchClock {
	c := &searchClock{start: time.Now(), fixedDepth: tc.Depth, infinite: tc.Infinite}

	switch {
	case tc.MoveTime > 0:
		c.minTime, c.maxTime = tc.MoveTime, tc.MoveTime
	case tc.Infinite || tc.Depth > 0 && tc.Time == 0:
		c.minTime, c.maxTime = time.Hour, time.Hour
	case tc.Time > 0:
		decay := 1 - math.Exp(-0.05*float64(legalMoves))
		t := float64(tc.Time)
		c.minTime = time.Duration(t / 30 * decay)
		c.maxTime = time.Duration(t / 4 * decay)
		if tc.MovesToGo > 0 {
			perMove := tc.Time / time.Duration(tc.MovesToGo)
			if perMove < c.maxTime {
				c.maxTime = perMove
			}
		}
		c.minTime += tc.Inc / 2
		c.maxTime += tc.Inc
	default:
		c.minTime, c.maxTime = time.Hour, time.Hour
	}
	return c
}

func (c *searchClock) elapsed() time.Duration { return time.Since(c.start) }

// atMaxDepth reports whether a fixed-depth search has reached its limit.
func (c *searchClock) atMaxDepth(depth int) bool {
	return c.fixedDepth > 0 && depth >= c.fixedDepth
}

// shouldStartIteration decides, after completing depth, whether to begin
// the next one: always stop past maxTime, always continue below minTime,
// and in between continue only while the best move is still moving
// around or the recent score trend is unstable -- a stability gate
// against spending a full extra iteration to confirm an answer that has
// already settled.
func (c *searchClock) shouldStartIteration(depth int, bestMove Move, score int32) bool {
	if c.atMaxDepth(depth) {
		return false
	}
	moveChanged := bestMove != c.lastBestMove
	c.lastBestMove = bestMove
	c.scores = append(c.scores, score)
	if len(c.scores) > searchClockStabilityWindow {
		c.scores = c.scores[len(c.scores)-searchClockStabilityWindow:]
	}

	if c.fixedDepth > 0 || c.infinite {
		return true
	}

	elapsed := c.elapsed()
	if elapsed >= c.maxTime {
		return false
	}
	if elapsed < c.minTime {
		return true
	}

	closeness := float64(elapsed) / float64(c.maxTime)
	threshold := int32(50 * (1 + closeness))
	return moveChanged || c.scoreVariance() > threshold
}

// scoreVariance returns the spread (max-min) of the recent per-iteration
// scores, a cheap instability signal that doesn't require floating-point
// statistics to be useful here.
func (c *searchClock) scoreVariance() int32 {
	if len(c.scores) < 2 {
		return 0
	}
	lo, hi := c.scores[0], c.scores[0]
	for _, s := range c.scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return hi - lo
}

// expired reports whether the hard deadline has passed, used by the
// per-node checkup callback mid-iteration.
func (c *searchClock) expired() bool {
	if c.fixedDepth > 0 || c.infinite {
		return false
	}
	return c.elapsed() >= c.maxTime
}
