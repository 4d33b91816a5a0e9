// Command perft counts leaf nodes of the legal move tree to a given
// depth from a FEN position, checking the result against the well-known
// published counts when the position is one of them. Root moves are
// split across worker goroutines via golang.org/x/sync/errgroup, since
// root-parallel perft is the one place outside the single-threaded
// search that benefits from splitting work this way.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/corvidchess/corvid/engine"
)

var (
	fenFlag   = flag.String("fen", "startpos", "position to search")
	minFlag   = flag.Int("min", 1, "min depth to search (inclusive)")
	maxFlag   = flag.Int("max", 5, "max depth to search (inclusive)")
	depthFlag = flag.Int("depth", 0, "if non-zero, search only this depth")
	threads   = flag.Int("threads", runtime.NumCPU(), "worker goroutines for root-parallel perft")
)

var knownPositions = map[string]string{
	"startpos": engine.FENStartPos,
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
}

var expectedCounts = map[string][]uint64{
	engine.FENStartPos: {1, 20, 400, 8902, 197281, 4865609, 119060324},
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -": {
		1, 48, 2039, 97862, 4085603, 193690690,
	},
}

// perft recursively counts leaf nodes at depth below b, single-threaded.
func perft(b *engine.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateMoves() {
		b.MakeMove(m)
		nodes += perft(b, depth-1)
		b.UndoMove()
	}
	return nodes
}

// rootParallelPerft splits the root move list across worker goroutines,
// each owning a disjoint subset of root moves and its own cloned Board,
// so there is no shared mutable state between workers at all.
func rootParallelPerft(b *engine.Board, depth, workers int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateMoves()
	if workers < 1 {
		workers = 1
	}
	if workers > len(moves) {
		workers = len(moves)
	}
	if workers <= 1 {
		return perft(b, depth)
	}

	results := make([]uint64, len(moves))
	g, _ := errgroup.WithContext(context.Background())
	chunk := (len(moves) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(moves) {
			break
		}
		if hi > len(moves) {
			hi = len(moves)
		}
		g.Go(func() error {
			worker := b.Clone()
			for i := lo; i < hi; i++ {
				worker.MakeMove(moves[i])
				results[i] = perft(worker, depth-1)
				worker.UndoMove()
			}
			return nil
		})
	}
	_ = g.Wait()

	var total uint64
	for _, r := range results {
		total += r
	}
	return total
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	fen := *fenFlag
	var expected []uint64
	if known, ok := knownPositions[fen]; ok {
		fen = known
	}
	if e, ok := expectedCounts[fen]; ok {
		expected = e
	}

	min, max := *minFlag, *maxFlag
	if *depthFlag != 0 {
		min, max = *depthFlag, *depthFlag
	}

	fmt.Printf("Searching FEN %q with %d workers\n", fen, *threads)
	b, err := engine.FromFEN(fen)
	if err != nil {
		log.Fatalln("cannot parse --fen:", err)
	}

	fmt.Printf("depth        nodes  result   KNps elapsed\n")
	fmt.Printf("-----+------------+------+------+-------\n")
	for d := min; d <= max; d++ {
		start := time.Now()
		nodes := rootParallelPerft(b, d, *threads)
		elapsed := time.Since(start)

		result := ""
		if d < len(expected) {
			if nodes == expected[d] {
				result = "good"
			} else {
				result = "bad"
			}
		}

		fmt.Printf("   %2d %12d   %4s %6.f %v\n",
			d, nodes, result, float64(nodes)/elapsed.Seconds()/1e3, elapsed)

		if result == "bad" {
			fmt.Printf("expected %d, got %d\n", expected[d], nodes)
			break
		}
	}
}
